package stock

import (
	"context"

	"github.com/PAlucas/investsite/internal/domain/query"
)

// Repository defines the interface for stock data access. All read paths
// exclude soft-deleted rows, including FindByID.
type Repository interface {
	Create(ctx context.Context, s *Stock) error
	CreateMany(ctx context.Context, stocks []*Stock) error

	FindByID(ctx context.Context, id string) (*Stock, error)
	FindByCode(ctx context.Context, code string) (*Stock, error)
	FindAll(ctx context.Context) ([]*Stock, error)
	FindBy(ctx context.Context, filter *query.Filter) ([]*Stock, error)
	FindOneBy(ctx context.Context, filter *query.Filter) (*Stock, error)

	// Update applies a partial update; unknown attribute keys are ignored.
	// Returns the re-read stock so callers observe generated fields.
	Update(ctx context.Context, id string, attrs map[string]any) (*Stock, error)

	// SoftDelete marks the stock deleted; false when already deleted or absent.
	SoftDelete(ctx context.Context, id string) (bool, error)
	// Delete removes the row physically.
	Delete(ctx context.Context, id string) (bool, error)

	// CreateManySkippingDuplicates inserts only stocks whose code is not yet
	// persisted, backfilling blank company fields on existing rows per the
	// MergeFrom policy. Intra-batch code duplicates are filtered before the
	// insert. Returns only the newly created stocks.
	CreateManySkippingDuplicates(ctx context.Context, stocks []*Stock) ([]*Stock, error)
}
