package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/PAlucas/investsite/internal/domain/history"
	"github.com/PAlucas/investsite/internal/domain/query"
)

// HistoryRepository implements history.Repository on PostgreSQL.
type HistoryRepository struct {
	repo[history.Entry]
}

func NewHistoryRepository(pool *Pool) *HistoryRepository {
	return &HistoryRepository{repo[history.Entry]{
		pool: pool,
		meta: entityMeta[history.Entry]{
			table:      "historical_entries",
			selectCols: "id, stock_id, trading_date, open_price, close_price, variation, min_price, max_price, volume, created_at, updated_at, deleted_at",
			insertCols: []string{"id", "stock_id", "trading_date", "open_price", "close_price", "variation", "min_price", "max_price", "volume", "created_at", "updated_at"},
			insertVals: func(e *history.Entry) []any {
				return []any{e.ID, e.StockID, e.TradingDate, e.OpenPrice, e.ClosePrice, e.Variation, e.MinPrice, e.MaxPrice, e.Volume, e.CreatedAt, e.UpdatedAt}
			},
			queryable: map[string]string{
				history.FieldStockID:     "stock_id",
				history.FieldTradingDate: "trading_date",
			},
			updatable:   map[string]string{},
			errNotFound: history.ErrEntryNotFound,
			prepare: func(e *history.Entry, now time.Time) {
				if e.ID == "" {
					e.ID = uuid.NewString()
				}
				if e.CreatedAt.IsZero() {
					e.CreatedAt = now
				}
				e.UpdatedAt = now
			},
		},
	}}
}

func (r *HistoryRepository) Create(ctx context.Context, e *history.Entry) error {
	return r.create(ctx, e)
}

func (r *HistoryRepository) CreateMany(ctx context.Context, entries []*history.Entry) error {
	return r.createMany(ctx, entries)
}

func (r *HistoryRepository) FindByID(ctx context.Context, id string) (*history.Entry, error) {
	return r.findByID(ctx, id)
}

func (r *HistoryRepository) FindBy(ctx context.Context, f *query.Filter) ([]*history.Entry, error) {
	return r.findBy(ctx, f)
}

// FindByStockID returns the stock's entries ordered oldest first.
func (r *HistoryRepository) FindByStockID(ctx context.Context, stockID string) ([]*history.Entry, error) {
	f := query.Where(history.FieldStockID, query.Equals(stockID)).
		OrderBy(history.FieldTradingDate, query.Asc)
	return r.findBy(ctx, f)
}

// FindByStockIDAndDateRange returns entries with trading_date in [start, end]
// inclusive, ordered oldest first.
func (r *HistoryRepository) FindByStockIDAndDateRange(ctx context.Context, stockID string, start, end time.Time) ([]*history.Entry, error) {
	f := query.Where(history.FieldStockID, query.Equals(stockID)).
		And(history.FieldTradingDate, query.AtLeast(start)).
		And(history.FieldTradingDate, query.AtMost(end)).
		OrderBy(history.FieldTradingDate, query.Asc)
	return r.findBy(ctx, f)
}

func (r *HistoryRepository) FindLatestByStockID(ctx context.Context, stockID string) (*history.Entry, error) {
	f := query.Where(history.FieldStockID, query.Equals(stockID)).
		OrderBy(history.FieldTradingDate, query.Desc)
	return r.findOneBy(ctx, f)
}

func (r *HistoryRepository) FindOldestByStockID(ctx context.Context, stockID string) (*history.Entry, error) {
	f := query.Where(history.FieldStockID, query.Equals(stockID)).
		OrderBy(history.FieldTradingDate, query.Asc)
	return r.findOneBy(ctx, f)
}

func (r *HistoryRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	return r.softDelete(ctx, id)
}

func (r *HistoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.delete(ctx, id)
}
