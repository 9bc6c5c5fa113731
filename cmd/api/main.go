package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/PAlucas/investsite/internal/api/handlers"
	"github.com/PAlucas/investsite/internal/api/router"
	"github.com/PAlucas/investsite/internal/infra/database/postgres"
	"github.com/PAlucas/investsite/internal/infra/external/infomoney"
	"github.com/PAlucas/investsite/internal/pkg/config"
	"github.com/PAlucas/investsite/internal/pkg/logger"
	"github.com/PAlucas/investsite/internal/scheduler"
	historyservice "github.com/PAlucas/investsite/internal/service/history"
	"github.com/PAlucas/investsite/internal/service/ingest"
	newsservice "github.com/PAlucas/investsite/internal/service/news"
	stocksservice "github.com/PAlucas/investsite/internal/service/stocks"
)

const (
	serviceName    = "investsite-api"
	serviceVersion = "1.0.0"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	if err := logger.Init(logger.Config{
		Level:          cfg.Logging.Level,
		Format:         cfg.Logging.Format,
		FileEnabled:    cfg.Logging.FileEnabled,
		FilePath:       cfg.Logging.FilePath,
		RotationSize:   cfg.Logging.RotationSize,
		RetentionDays:  cfg.Logging.RetentionDays,
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load timezone")
	}

	log.Info().
		Str("version", serviceVersion).
		Str("tz", loc.String()).
		Msg("Starting investsite API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	dbPool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	if err := postgres.Migrate(ctx, dbPool); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	// Repositories
	stockRepo := postgres.NewStockRepository(dbPool)
	historyRepo := postgres.NewHistoryRepository(dbPool)
	newsRepo := postgres.NewNewsRepository(dbPool)

	// External clients
	imClient := infomoney.NewClient(cfg.Infomoney)
	historyClient := infomoney.NewHistoryClient(imClient)
	stockListClient := infomoney.NewStockListClient(imClient)
	newsClient := infomoney.NewNewsClient(imClient)

	// Services
	stocksSvc := stocksservice.NewService(stockRepo, stockListClient)
	newsSvc := newsservice.NewService(newsRepo, stockRepo, newsClient)
	historySvc := historyservice.NewService(stockRepo, historyRepo)
	coordinator := ingest.NewCoordinator(historyRepo, stockRepo, historyClient, loc)

	// Scheduler
	pipeline := scheduler.NewPipeline(cfg.Scheduler, loc, stocksSvc, newsSvc, coordinator)
	if cfg.Scheduler.Enabled {
		if err := pipeline.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start pipeline scheduler")
		}
		defer pipeline.Stop()
	}

	// HTTP server
	handler := router.NewRouter(&router.Config{
		HealthHandler:  handlers.NewHealthHandler(dbPool, serviceVersion),
		StockHandler:   handlers.NewStockHandler(stocksSvc),
		HistoryHandler: handlers.NewHistoryHandler(historySvc, coordinator, loc),
		NewsHandler:    handlers.NewNewsHandler(newsSvc),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}

	log.Info().Msg("Server stopped")
}
