package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/packdash/backend-go/internal/alerts"
	"github.com/packdash/backend-go/internal/cache"
	"github.com/packdash/backend-go/internal/config"
	"github.com/packdash/backend-go/internal/prediction"
	"github.com/packdash/backend-go/internal/repository/sqlstore"
	"github.com/packdash/backend-go/internal/service"
	"github.com/packdash/backend-go/pkg/logger"
	"github.com/urfave/cli/v2"
)

type ctxKey string

const dbKey ctxKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "db-url",
		Usage:   "Database connection string",
		EnvVars: []string{"DATABASE_URL"},
	}
}

func newDriverFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "driver",
		Usage:   "Database driver (postgres or mysql)",
		Value:   "postgres",
		EnvVars: []string{"DB_DRIVER"},
	}
}

func newNowFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "now",
		Usage: "Evaluate predictions as of this day (YYYY-MM-DD)",
	}
}

// openDB connects through the pgx stdlib driver for postgres and the
// go-sql-driver for mysql.
func openDB(driver, url string) (*sqlx.DB, error) {
	switch strings.ToLower(driver) {
	case sqlstore.DriverMySQL:
		dsn, err := sqlstore.ToMySQLDSN(url)
		if err != nil {
			return nil, err
		}
		return sqlx.Connect(sqlstore.DriverMySQL, dsn)
	case sqlstore.DriverPostgres, "pgx", "":
		return sqlx.Connect("pgx", url)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func initDB(c *cli.Context) error {
	url := c.String("db-url")
	if url == "" {
		return fmt.Errorf("--db-url or DATABASE_URL is required")
	}

	db, err := openDB(c.String("driver"), url)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey, sqlstore.Wrap(db))
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sqlstore.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFrom(c *cli.Context) (*sqlstore.DB, error) {
	db, ok := c.Context.Value(dbKey).(*sqlstore.DB)
	if !ok || db == nil {
		return nil, fmt.Errorf("database connection not found in context")
	}
	return db, nil
}

// services wires the repositories and services the commands share. The CLI
// never caches insights.
type services struct {
	clients  *service.ClientService
	orders   *service.OrderService
	insights *service.InsightService
}

func newServices(db *sqlstore.DB, cfg *config.Config) *services {
	clientRepo := sqlstore.NewClientRepository(db)
	orderRepo := sqlstore.NewOrderRepository(db)
	noCache := cache.NewNoopInsightCache()
	calc := prediction.NewCalculator(prediction.ParamsFromConfig(cfg.Prediction))

	return &services{
		clients: service.NewClientService(clientRepo, noCache, service.SystemClock),
		orders:  service.NewOrderService(orderRepo, clientRepo, noCache),
		insights: service.NewInsightService(clientRepo, orderRepo, calc,
			alerts.ThresholdsFromConfig(cfg.Alerts), alerts.NewInbox(), noCache, cfg.Alerts.Workers),
	}
}

func evaluationTime(c *cli.Context) (time.Time, error) {
	raw := strings.TrimSpace(c.String("now"))
	if raw == "" {
		return time.Now(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q: expected YYYY-MM-DD", raw)
	}
	return t, nil
}

func main() {
	cfg := config.Load()
	logger.Setup(cfg.Log.Level, cfg.Log.Format)

	dbFlags := []cli.Flag{newDBURLFlag(), newDriverFlag()}

	app := &cli.App{
		Name:  "packdash",
		Usage: "Manage clients and orders and inspect reorder predictions",
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Create the database tables",
				Flags:  dbFlags,
				Before: initDB,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					db, err := dbFrom(c)
					if err != nil {
						return err
					}
					if err := sqlstore.Migrate(c.Context, db.DB); err != nil {
						return err
					}
					logger.Log.Info().Str("driver", db.DriverName()).Msg("database migrated")
					return nil
				},
			},
			{
				Name:  "import",
				Usage: "Import clients and orders from CSV files",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "clients", Usage: "Clients CSV file"},
					&cli.StringFlag{Name: "orders", Usage: "Orders CSV file, one row per product line"},
				}, dbFlags...),
				Before: initDB,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					return runImport(c, cfg)
				},
			},
			{
				Name:  "predict",
				Usage: "Print the statistics and product predictions of a client",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "client", Usage: "Client id", Required: true},
					newNowFlag(),
				}, dbFlags...),
				Before: initDB,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					return runPredict(c, cfg)
				},
			},
			{
				Name:  "notifications",
				Usage: "Print the notifications raised for every client",
				Flags: append([]cli.Flag{
					newNowFlag(),
					&cli.StringFlag{Name: "type", Usage: "Only show overdue, upcoming or inactive notifications"},
				}, dbFlags...),
				Before: initDB,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					return runNotifications(c, cfg)
				},
			},
			{
				Name:   "snapshot",
				Usage:  "Upload the prediction report of the current week to object storage",
				Flags:  append([]cli.Flag{newNowFlag()}, dbFlags...),
				Before: initDB,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					return runSnapshot(c, cfg)
				},
			},
			{
				Name:  "reports",
				Usage: "List the archived prediction reports",
				Action: func(c *cli.Context) error {
					return runListReports(c, cfg)
				},
			},
			{
				Name:      "fetch",
				Usage:     "Download an object from storage",
				ArgsUsage: "<key>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "dest", Usage: "Destination directory", Value: "./data/downloads"},
				},
				Action: func(c *cli.Context) error {
					return runFetch(c, cfg)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("packdash failed")
	}
}
