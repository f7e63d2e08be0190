package main

import (
	"fmt"
	"path/filepath"

	"github.com/packdash/backend-go/internal/config"
	"github.com/packdash/backend-go/internal/service"
	"github.com/packdash/backend-go/internal/storage"
	"github.com/packdash/backend-go/pkg/logger"
	"github.com/urfave/cli/v2"
)

func runSnapshot(c *cli.Context, cfg *config.Config) error {
	now, err := evaluationTime(c)
	if err != nil {
		return err
	}

	store, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		return err
	}
	db, err := dbFrom(c)
	if err != nil {
		return err
	}

	reports := service.NewReportService(newServices(db, cfg).insights, store, cfg.Storage.ReportPrefix)
	key, err := reports.Snapshot(c.Context, now)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, key)
	return nil
}

func runListReports(c *cli.Context, cfg *config.Config) error {
	store, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		return err
	}

	objects, err := service.NewReportService(nil, store, cfg.Storage.ReportPrefix).List(c.Context)
	if err != nil {
		return err
	}
	for _, o := range objects {
		fmt.Fprintf(c.App.Writer, "%-40s %d\n", o.Key, o.Size)
	}
	return nil
}

func runFetch(c *cli.Context, cfg *config.Config) error {
	key := c.Args().First()
	if key == "" {
		return fmt.Errorf("an object key is required")
	}

	store, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		return err
	}

	dest := filepath.Join(c.String("dest"), filepath.Base(key))
	if err := store.DownloadObject(c.Context, key, dest); err != nil {
		return err
	}

	logger.Log.Info().Str("key", key).Str("path", dest).Msg("object downloaded")
	return nil
}
