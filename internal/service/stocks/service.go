// Package stocks manages the tracked stock universe.
package stocks

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/PAlucas/investsite/internal/domain/stock"
)

// Lister fetches the external stock listing.
type Lister interface {
	FetchAll(ctx context.Context) ([]*stock.Stock, error)
}

// Service is the stock service.
type Service struct {
	stockRepo stock.Repository
	lister    Lister
}

func NewService(stockRepo stock.Repository, lister Lister) *Service {
	return &Service{stockRepo: stockRepo, lister: lister}
}

// GetAllStocks returns every tracked stock.
func (s *Service) GetAllStocks(ctx context.Context) ([]*stock.Stock, error) {
	return s.stockRepo.FindAll(ctx)
}

// GetStockByCode looks a stock up by its ticker.
func (s *Service) GetStockByCode(ctx context.Context, code string) (*stock.Stock, error) {
	return s.stockRepo.FindByCode(ctx, code)
}

// CreateStock registers a single stock. The code must be present; an
// already-tracked code is rejected as a duplicate.
func (s *Service) CreateStock(ctx context.Context, in *stock.Stock) (*stock.Stock, error) {
	if strings.TrimSpace(in.Code) == "" {
		return nil, stock.ErrMissingCode
	}

	if _, err := s.stockRepo.FindByCode(ctx, in.Code); err == nil {
		return nil, stock.ErrDuplicateCode
	} else if !errors.Is(err, stock.ErrStockNotFound) {
		return nil, err
	}

	if err := s.stockRepo.Create(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

// FetchAndSaveStocks pulls the external listing and persists the stocks that
// are not tracked yet. Returns the newly created stocks.
func (s *Service) FetchAndSaveStocks(ctx context.Context) ([]*stock.Stock, error) {
	listed, err := s.lister.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(listed) == 0 {
		log.Warn().Msg("External stock listing came back empty")
		return nil, nil
	}

	created, err := s.stockRepo.CreateManySkippingDuplicates(ctx, listed)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("listed", len(listed)).
		Int("created", len(created)).
		Msg("Stock listing ingested")

	return created, nil
}
