// Package history serves price history queries over persisted entries.
package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PAlucas/investsite/internal/domain/history"
	"github.com/PAlucas/investsite/internal/domain/stock"
)

// DateRange is the span of persisted history for one stock.
type DateRange struct {
	OldestDate *time.Time `json:"oldest_date"`
	NewestDate *time.Time `json:"newest_date"`
	HasData    bool       `json:"has_data"`
}

// Service is the history query service.
type Service struct {
	stockRepo   stock.Repository
	historyRepo history.Repository
}

func NewService(stockRepo stock.Repository, historyRepo history.Repository) *Service {
	return &Service{stockRepo: stockRepo, historyRepo: historyRepo}
}

// GetHistoryByCode returns the stock and its full history, oldest first.
func (s *Service) GetHistoryByCode(ctx context.Context, code string) (*stock.Stock, []*history.Entry, error) {
	st, err := s.stockRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	entries, err := s.historyRepo.FindByStockID(ctx, st.ID)
	if err != nil {
		return nil, nil, err
	}
	return st, entries, nil
}

// GetHistoryByDateRange returns the stock's entries with trading_date in
// [start, end] inclusive. The caller is responsible for extending end to the
// end of its calendar day.
func (s *Service) GetHistoryByDateRange(ctx context.Context, code string, start, end time.Time) (*stock.Stock, []*history.Entry, error) {
	st, err := s.stockRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	entries, err := s.historyRepo.FindByStockIDAndDateRange(ctx, st.ID, start, end)
	if err != nil {
		return nil, nil, err
	}
	return st, entries, nil
}

// GetLatestPrice returns the stock and its most recent entry.
func (s *Service) GetLatestPrice(ctx context.Context, code string) (*stock.Stock, *history.Entry, error) {
	st, err := s.stockRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	entry, err := s.historyRepo.FindLatestByStockID(ctx, st.ID)
	if err != nil {
		return nil, nil, err
	}
	return st, entry, nil
}

// GetDateRange reports the oldest and newest persisted trading dates.
func (s *Service) GetDateRange(ctx context.Context, code string) (*stock.Stock, *DateRange, error) {
	st, err := s.stockRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	oldest, err := s.historyRepo.FindOldestByStockID(ctx, st.ID)
	if err != nil {
		if errors.Is(err, history.ErrEntryNotFound) {
			return st, &DateRange{}, nil
		}
		return nil, nil, err
	}

	newest, err := s.historyRepo.FindLatestByStockID(ctx, st.ID)
	if err != nil {
		return nil, nil, err
	}

	return st, &DateRange{
		OldestDate: &oldest.TradingDate,
		NewestDate: &newest.TradingDate,
		HasData:    true,
	}, nil
}

// GetVariation computes the price change over the trailing window of days,
// anchored at the most recent entry. The window's earliest entry provides the
// start quote. No entries at all maps to history.ErrEntryNotFound; an empty
// window maps to history.ErrNoDataInWindow.
func (s *Service) GetVariation(ctx context.Context, code string, days int) (*stock.Stock, *history.Variation, error) {
	st, err := s.stockRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	latest, err := s.historyRepo.FindLatestByStockID(ctx, st.ID)
	if err != nil {
		return nil, nil, err
	}

	end := latest.TradingDate
	start := end.AddDate(0, 0, -days)

	window, err := s.historyRepo.FindByStockIDAndDateRange(ctx, st.ID, start, end)
	if err != nil {
		return nil, nil, err
	}
	if len(window) == 0 {
		return nil, nil, fmt.Errorf("%w: last %d days", history.ErrNoDataInWindow, days)
	}

	variation, err := history.ComputeVariation(window[0], latest, days)
	if err != nil {
		return nil, nil, err
	}
	return st, variation, nil
}
