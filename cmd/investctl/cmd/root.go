// Package cmd - investctl CLI commands
package cmd

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/PAlucas/investsite/internal/infra/database/postgres"
	"github.com/PAlucas/investsite/internal/infra/external/infomoney"
	"github.com/PAlucas/investsite/internal/pkg/config"
	"github.com/PAlucas/investsite/internal/pkg/logger"
	historyservice "github.com/PAlucas/investsite/internal/service/history"
	"github.com/PAlucas/investsite/internal/service/ingest"
	newsservice "github.com/PAlucas/investsite/internal/service/news"
	stocksservice "github.com/PAlucas/investsite/internal/service/stocks"
)

var verbose bool

// app bundles the wired-up services the subcommands run against.
type app struct {
	cfg         *config.Config
	loc         *time.Location
	pool        *postgres.Pool
	stocksSvc   *stocksservice.Service
	newsSvc     *newsservice.Service
	historySvc  *historyservice.Service
	coordinator *ingest.Coordinator
}

func (a *app) close() {
	a.pool.Close()
}

// newApp loads config, connects to the database and wires the services.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	if err := logger.Init(logger.Config{
		Level:          level,
		Format:         "pretty",
		ServiceName:    "investctl",
		ServiceVersion: "1.0.0",
	}); err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	stockRepo := postgres.NewStockRepository(pool)
	historyRepo := postgres.NewHistoryRepository(pool)
	newsRepo := postgres.NewNewsRepository(pool)

	imClient := infomoney.NewClient(cfg.Infomoney)

	return &app{
		cfg:         cfg,
		loc:         loc,
		pool:        pool,
		stocksSvc:   stocksservice.NewService(stockRepo, infomoney.NewStockListClient(imClient)),
		newsSvc:     newsservice.NewService(newsRepo, stockRepo, infomoney.NewNewsClient(imClient)),
		historySvc:  historyservice.NewService(stockRepo, historyRepo),
		coordinator: ingest.NewCoordinator(historyRepo, stockRepo, infomoney.NewHistoryClient(imClient), loc),
	}, nil
}

var rootCmd = &cobra.Command{
	Use:   "investctl",
	Short: "investsite data pipeline CLI",
	Long: `investsite data pipeline CLI

Commands:
    fetch stocks     - ingest the external stock listing
    fetch news       - discover news URLs, collect and enrich articles
    fetch history    - ingest price history pages
    pipeline         - run the full daily pipeline once
`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(pipelineCmd)
}

// runWithApp wires the app, runs fn and tears down.
func runWithApp(fn func(ctx context.Context, a *app) error) error {
	ctx := context.Background()

	a, err := newApp(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize")
		return err
	}
	defer a.close()

	return fn(ctx, a)
}
