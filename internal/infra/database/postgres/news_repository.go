package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/PAlucas/investsite/internal/domain/news"
	"github.com/PAlucas/investsite/internal/domain/query"
)

// NewsRepository implements news.Repository on PostgreSQL.
type NewsRepository struct {
	repo[news.Article]
}

func NewNewsRepository(pool *Pool) *NewsRepository {
	return &NewsRepository{repo[news.Article]{
		pool: pool,
		meta: entityMeta[news.Article]{
			table:      "news_articles",
			selectCols: "id, stock_id, url, title, content, published_date, created_at, updated_at, deleted_at",
			insertCols: []string{"id", "stock_id", "url", "title", "content", "published_date", "created_at", "updated_at"},
			insertVals: func(a *news.Article) []any {
				return []any{a.ID, a.StockID, a.URL, a.Title, a.Content, a.PublishedDate, a.CreatedAt, a.UpdatedAt}
			},
			queryable: map[string]string{
				news.FieldStockID:       "stock_id",
				news.FieldURL:           "url",
				news.FieldPublishedDate: "published_date",
				news.FieldContent:       "content",
				"created_at":            "created_at",
			},
			updatable: map[string]string{
				news.FieldTitle:         "title",
				news.FieldContent:       "content",
				news.FieldPublishedDate: "published_date",
				news.FieldStockID:       "stock_id",
			},
			errNotFound: news.ErrArticleNotFound,
			prepare: func(a *news.Article, now time.Time) {
				if a.ID == "" {
					a.ID = uuid.NewString()
				}
				if a.CreatedAt.IsZero() {
					a.CreatedAt = now
				}
				a.UpdatedAt = now
			},
		},
	}}
}

func (r *NewsRepository) Create(ctx context.Context, a *news.Article) error {
	return r.create(ctx, a)
}

func (r *NewsRepository) CreateMany(ctx context.Context, articles []*news.Article) error {
	return r.createMany(ctx, articles)
}

func (r *NewsRepository) FindByID(ctx context.Context, id string) (*news.Article, error) {
	return r.findByID(ctx, id)
}

func (r *NewsRepository) FindAll(ctx context.Context) ([]*news.Article, error) {
	return r.findBy(ctx, query.All().OrderBy("created_at", query.Desc))
}

func (r *NewsRepository) FindBy(ctx context.Context, f *query.Filter) ([]*news.Article, error) {
	return r.findBy(ctx, f)
}

func (r *NewsRepository) FindOneBy(ctx context.Context, f *query.Filter) (*news.Article, error) {
	return r.findOneBy(ctx, f)
}

func (r *NewsRepository) FindByURL(ctx context.Context, url string) ([]*news.Article, error) {
	return r.findBy(ctx, query.Where(news.FieldURL, query.Equals(url)))
}

func (r *NewsRepository) FindByStockID(ctx context.Context, stockID string) ([]*news.Article, error) {
	f := query.Where(news.FieldStockID, query.Equals(stockID)).
		OrderBy("created_at", query.Desc)
	return r.findBy(ctx, f)
}

func (r *NewsRepository) FindWithoutDate(ctx context.Context) ([]*news.Article, error) {
	return r.findBy(ctx, query.Where(news.FieldPublishedDate, query.IsNull()))
}

func (r *NewsRepository) FindWithoutContent(ctx context.Context) ([]*news.Article, error) {
	return r.findBy(ctx, query.Where(news.FieldContent, query.IsNull()))
}

func (r *NewsRepository) Update(ctx context.Context, id string, attrs map[string]any) (*news.Article, error) {
	return r.update(ctx, id, attrs)
}

func (r *NewsRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	return r.softDelete(ctx, id)
}

func (r *NewsRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.delete(ctx, id)
}
