package news

import (
	"context"

	"github.com/PAlucas/investsite/internal/domain/query"
)

// Repository defines the interface for news article data access.
// All read paths exclude soft-deleted rows.
type Repository interface {
	Create(ctx context.Context, a *Article) error
	CreateMany(ctx context.Context, articles []*Article) error

	FindByID(ctx context.Context, id string) (*Article, error)
	FindAll(ctx context.Context) ([]*Article, error)
	FindBy(ctx context.Context, filter *query.Filter) ([]*Article, error)
	FindOneBy(ctx context.Context, filter *query.Filter) (*Article, error)

	// FindByURL returns every non-deleted article with the given URL; the
	// column is not unique so more than one row may match.
	FindByURL(ctx context.Context, url string) ([]*Article, error)
	FindByStockID(ctx context.Context, stockID string) ([]*Article, error)
	// FindWithoutDate returns articles still awaiting enrichment.
	FindWithoutDate(ctx context.Context) ([]*Article, error)
	FindWithoutContent(ctx context.Context) ([]*Article, error)

	Update(ctx context.Context, id string, attrs map[string]any) (*Article, error)
	SoftDelete(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
