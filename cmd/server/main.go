// backend-go/cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/packdash/backend-go/internal/alerts"
	"github.com/packdash/backend-go/internal/api"
	"github.com/packdash/backend-go/internal/cache"
	"github.com/packdash/backend-go/internal/config"
	"github.com/packdash/backend-go/internal/prediction"
	"github.com/packdash/backend-go/internal/repository/sqlstore"
	"github.com/packdash/backend-go/internal/service"
	"github.com/packdash/backend-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.Setup(cfg.Log.Level, cfg.Log.Format)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := sqlstore.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()
	if err := sqlstore.Migrate(ctx, db.DB); err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	insightCache, err := cache.NewInsightCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Insight cache unavailable, continuing without cache")
		insightCache = cache.NewNoopInsightCache()
	}

	// Initialize repositories and services
	clientRepo := sqlstore.NewClientRepository(db)
	orderRepo := sqlstore.NewOrderRepository(db)

	calc := prediction.NewCalculator(prediction.ParamsFromConfig(cfg.Prediction))
	services := &api.Services{
		Clients: service.NewClientService(clientRepo, insightCache, service.SystemClock),
		Orders:  service.NewOrderService(orderRepo, clientRepo, insightCache),
		Insights: service.NewInsightService(clientRepo, orderRepo, calc,
			alerts.ThresholdsFromConfig(cfg.Alerts), alerts.NewInbox(), insightCache, cfg.Alerts.Workers),
		Clock: service.SystemClock,
	}

	// Initialize HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      api.NewRouter(services, cfg.Server.AllowedOrigins),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Str("driver", db.DriverName()).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
