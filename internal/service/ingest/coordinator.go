// Package ingest implements incremental price history ingestion with
// day-level deduplication.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/PAlucas/investsite/internal/domain/history"
	"github.com/PAlucas/investsite/internal/domain/query"
	"github.com/PAlucas/investsite/internal/domain/stock"
)

// Result summarizes one ingestion run for one stock. A run counts as
// successful when it saved something or proved everything was already
// persisted; a run that produced neither failed.
type Result struct {
	StockCode         string   `json:"stock_code"`
	StockID           string   `json:"stock_id"`
	EntriesSaved      int      `json:"entries_saved"`
	DuplicatesSkipped int      `json:"duplicates_skipped"`
	PagesFetched      int      `json:"pages_fetched"`
	Errors            []string `json:"errors,omitempty"`
}

func (r *Result) Success() bool {
	return r.EntriesSaved > 0 || r.DuplicatesSkipped > 0
}

// Coordinator drives paginated history ingestion. It is safe to re-run at any
// time: already-persisted trading days are skipped, so repeated runs converge
// instead of duplicating.
type Coordinator struct {
	historyRepo history.Repository
	stockRepo   stock.Repository
	fetcher     history.PageFetcher
	loc         *time.Location
}

func NewCoordinator(historyRepo history.Repository, stockRepo stock.Repository, fetcher history.PageFetcher, loc *time.Location) *Coordinator {
	return &Coordinator{
		historyRepo: historyRepo,
		stockRepo:   stockRepo,
		fetcher:     fetcher,
		loc:         loc,
	}
}

// IngestStock fetches up to pages pages of history for s and persists the
// entries whose trading day is not yet stored. Dedup works on calendar days
// in the coordinator's location: against the persisted baseline, within a
// page, and across pages of the same run. A failed page is recorded in the
// result and the run moves on; each page's survivors are persisted as one
// batch so a later failure cannot undo earlier pages.
func (c *Coordinator) IngestStock(ctx context.Context, s *stock.Stock, pages int) (*Result, error) {
	result := &Result{StockCode: s.Code, StockID: s.ID, PagesFetched: pages}

	knownDays, err := c.loadKnownDays(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("stock", s.Code).
		Int("known_days", len(knownDays)).
		Int("pages", pages).
		Msg("Starting history ingestion")

	for page := 0; page < pages; page++ {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		raws, err := c.fetcher.FetchPage(ctx, s.Code, page)
		if err != nil {
			log.Error().Str("stock", s.Code).Int("page", page).Err(err).Msg("Failed to fetch history page")
			result.Errors = append(result.Errors, fmt.Sprintf("page %d: %v", page, err))
			continue
		}

		batch := make([]*history.Entry, 0, len(raws))
		duplicatesInPage := 0

		for _, raw := range raws {
			tradingDate := raw.TradingDate(c.loc)
			day := history.DayKey(tradingDate, c.loc)
			if _, dup := knownDays[day]; dup {
				duplicatesInPage++
				continue
			}
			// Claim the day immediately so a repeat within this page or a
			// later page counts as a duplicate.
			knownDays[day] = struct{}{}

			batch = append(batch, &history.Entry{
				StockID:     s.ID,
				TradingDate: tradingDate,
				OpenPrice:   raw.OpenPrice,
				ClosePrice:  raw.ClosePrice,
				Variation:   raw.Variation,
				MinPrice:    raw.MinPrice,
				MaxPrice:    raw.MaxPrice,
				Volume:      raw.Volume,
			})
		}

		result.DuplicatesSkipped += duplicatesInPage

		if len(batch) > 0 {
			if err := c.historyRepo.CreateMany(ctx, batch); err != nil {
				log.Error().Str("stock", s.Code).Int("page", page).Err(err).Msg("Failed to persist history page")
				result.Errors = append(result.Errors, fmt.Sprintf("page %d: %v", page, err))
				// The batch never landed, release its days so a retry can
				// save them.
				for _, e := range batch {
					delete(knownDays, history.DayKey(e.TradingDate, c.loc))
				}
				continue
			}
			result.EntriesSaved += len(batch)
		}

		log.Info().
			Str("stock", s.Code).
			Int("page", page).
			Int("entries", len(raws)).
			Int("saved", len(batch)).
			Int("duplicates", duplicatesInPage).
			Msg("Processed history page")
	}

	return result, nil
}

// RunAll ingests history for every stock with a discovered news URL, the same
// population the daily pipeline tracks. Per-stock failures are logged and do
// not stop the run.
func (c *Coordinator) RunAll(ctx context.Context, pages int) ([]*Result, error) {
	stocks, err := c.stockRepo.FindBy(ctx, query.Where(stock.FieldURLNews, query.IsNotNull()))
	if err != nil {
		return nil, err
	}

	results := make([]*Result, 0, len(stocks))
	for _, s := range stocks {
		result, err := c.IngestStock(ctx, s, pages)
		if err != nil {
			if ctx.Err() != nil {
				return results, err
			}
			log.Error().Str("stock", s.Code).Err(err).Msg("History ingestion failed")
			continue
		}
		results = append(results, result)
	}

	return results, nil
}

func (c *Coordinator) loadKnownDays(ctx context.Context, stockID string) (map[string]struct{}, error) {
	existing, err := c.historyRepo.FindByStockID(ctx, stockID)
	if err != nil {
		return nil, fmt.Errorf("load persisted trading days: %w", err)
	}

	known := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		known[history.DayKey(e.TradingDate, c.loc)] = struct{}{}
	}
	return known, nil
}
