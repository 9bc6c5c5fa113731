// Package scheduler runs the daily data pipeline on a cron schedule.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/PAlucas/investsite/internal/pkg/config"
	"github.com/PAlucas/investsite/internal/service/ingest"
	"github.com/PAlucas/investsite/internal/service/news"
	"github.com/PAlucas/investsite/internal/service/stocks"
)

// Pipeline refreshes the tracked universe end to end: stock listing, news URL
// discovery, article collection, article enrichment, then price history. The
// stages run in that order because the later ones feed on what the earlier
// ones persisted; a failed stage is logged and the remaining stages still
// run.
type Pipeline struct {
	cfg config.SchedulerConfig
	loc *time.Location

	stocksSvc   *stocks.Service
	newsSvc     *news.Service
	coordinator *ingest.Coordinator

	cron *cron.Cron
}

func NewPipeline(cfg config.SchedulerConfig, loc *time.Location, stocksSvc *stocks.Service, newsSvc *news.Service, coordinator *ingest.Coordinator) *Pipeline {
	return &Pipeline{
		cfg:         cfg,
		loc:         loc,
		stocksSvc:   stocksSvc,
		newsSvc:     newsSvc,
		coordinator: coordinator,
	}
}

// Start registers the cron entry and starts the scheduler. The schedule is
// evaluated in the pipeline's location, so "0 0 * * *" means local midnight.
func (p *Pipeline) Start() error {
	p.cron = cron.New(cron.WithLocation(p.loc))

	if _, err := p.cron.AddFunc(p.cfg.Spec, func() {
		p.RunOnce(context.Background())
	}); err != nil {
		return err
	}

	p.cron.Start()
	log.Info().Str("spec", p.cfg.Spec).Str("tz", p.loc.String()).Msg("Pipeline scheduler started")
	return nil
}

// Stop stops the scheduler and waits for a running pipeline to finish.
func (p *Pipeline) Stop() {
	if p.cron == nil {
		return
	}
	<-p.cron.Stop().Done()
	log.Info().Msg("Pipeline scheduler stopped")
}

// RunOnce executes the full pipeline immediately.
func (p *Pipeline) RunOnce(ctx context.Context) {
	started := time.Now()
	log.Info().Msg("Pipeline run started")

	if _, err := p.stocksSvc.FetchAndSaveStocks(ctx); err != nil {
		log.Error().Err(err).Msg("Pipeline stage failed: stock listing")
	}

	if _, err := p.newsSvc.DiscoverNewsURLs(ctx); err != nil {
		log.Error().Err(err).Msg("Pipeline stage failed: news URL discovery")
	}

	if _, err := p.newsSvc.CollectArticles(ctx); err != nil {
		log.Error().Err(err).Msg("Pipeline stage failed: article collection")
	}

	if _, err := p.newsSvc.EnrichArticles(ctx); err != nil {
		log.Error().Err(err).Msg("Pipeline stage failed: article enrichment")
	}

	if _, err := p.coordinator.RunAll(ctx, p.cfg.HistoryPages); err != nil {
		log.Error().Err(err).Msg("Pipeline stage failed: history ingestion")
	}

	log.Info().Dur("elapsed", time.Since(started)).Msg("Pipeline run finished")
}
