package history

import (
	"context"
	"time"

	"github.com/PAlucas/investsite/internal/domain/query"
)

// Repository defines the interface for historical entry data access.
// All read paths exclude soft-deleted rows.
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	// CreateMany persists a batch in a single insert. The ingestion
	// coordinator calls this once per fetched page.
	CreateMany(ctx context.Context, entries []*Entry) error

	FindByID(ctx context.Context, id string) (*Entry, error)
	FindBy(ctx context.Context, filter *query.Filter) ([]*Entry, error)

	FindByStockID(ctx context.Context, stockID string) ([]*Entry, error)
	// FindByStockIDAndDateRange returns entries with trading_date in
	// [start, end] inclusive.
	FindByStockIDAndDateRange(ctx context.Context, stockID string, start, end time.Time) ([]*Entry, error)
	FindLatestByStockID(ctx context.Context, stockID string) (*Entry, error)
	FindOldestByStockID(ctx context.Context, stockID string) (*Entry, error)

	SoftDelete(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
