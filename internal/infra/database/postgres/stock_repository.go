package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/PAlucas/investsite/internal/domain/query"
	"github.com/PAlucas/investsite/internal/domain/stock"
)

// StockRepository implements stock.Repository on PostgreSQL.
type StockRepository struct {
	repo[stock.Stock]
}

func NewStockRepository(pool *Pool) *StockRepository {
	return &StockRepository{repo[stock.Stock]{
		pool: pool,
		meta: entityMeta[stock.Stock]{
			table:      "stocks",
			selectCols: "id, code, name, company, url, url_news, created_at, updated_at, deleted_at",
			insertCols: []string{"id", "code", "name", "company", "url", "url_news", "created_at", "updated_at"},
			insertVals: func(s *stock.Stock) []any {
				return []any{s.ID, s.Code, s.Name, s.Company, s.URL, s.URLNews, s.CreatedAt, s.UpdatedAt}
			},
			queryable: map[string]string{
				stock.FieldCode:    "code",
				stock.FieldName:    "name",
				stock.FieldCompany: "company",
				stock.FieldURL:     "url",
				stock.FieldURLNews: "url_news",
				"created_at":       "created_at",
			},
			updatable: map[string]string{
				stock.FieldCode:    "code",
				stock.FieldName:    "name",
				stock.FieldCompany: "company",
				stock.FieldURL:     "url",
				stock.FieldURLNews: "url_news",
			},
			errNotFound: stock.ErrStockNotFound,
			prepare: func(s *stock.Stock, now time.Time) {
				if s.ID == "" {
					s.ID = uuid.NewString()
				}
				if s.CreatedAt.IsZero() {
					s.CreatedAt = now
				}
				s.UpdatedAt = now
			},
		},
	}}
}

func (r *StockRepository) Create(ctx context.Context, s *stock.Stock) error {
	if strings.TrimSpace(s.Code) == "" {
		return stock.ErrMissingCode
	}
	return r.create(ctx, s)
}

func (r *StockRepository) CreateMany(ctx context.Context, stocks []*stock.Stock) error {
	for _, s := range stocks {
		if strings.TrimSpace(s.Code) == "" {
			return stock.ErrMissingCode
		}
	}
	return r.createMany(ctx, stocks)
}

func (r *StockRepository) FindByID(ctx context.Context, id string) (*stock.Stock, error) {
	return r.findByID(ctx, id)
}

func (r *StockRepository) FindByCode(ctx context.Context, code string) (*stock.Stock, error) {
	return r.findOneBy(ctx, query.Where(stock.FieldCode, query.Equals(code)))
}

func (r *StockRepository) FindAll(ctx context.Context) ([]*stock.Stock, error) {
	return r.findBy(ctx, query.All().OrderBy(stock.FieldCode, query.Asc))
}

func (r *StockRepository) FindBy(ctx context.Context, f *query.Filter) ([]*stock.Stock, error) {
	return r.findBy(ctx, f)
}

func (r *StockRepository) FindOneBy(ctx context.Context, f *query.Filter) (*stock.Stock, error) {
	return r.findOneBy(ctx, f)
}

func (r *StockRepository) Update(ctx context.Context, id string, attrs map[string]any) (*stock.Stock, error) {
	return r.update(ctx, id, attrs)
}

func (r *StockRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	return r.softDelete(ctx, id)
}

func (r *StockRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.delete(ctx, id)
}

// CreateManySkippingDuplicates inserts only stocks whose code is not already
// persisted. Existing rows get blank secondary fields backfilled per the
// MergeFrom policy; intra-batch code duplicates keep the first occurrence.
// Entries without a code are skipped. Returns the newly created stocks only.
func (r *StockRepository) CreateManySkippingDuplicates(ctx context.Context, stocks []*stock.Stock) ([]*stock.Stock, error) {
	seen := make(map[string]*stock.Stock, len(stocks))
	codes := make([]any, 0, len(stocks))
	ordered := make([]*stock.Stock, 0, len(stocks))

	for _, s := range stocks {
		code := strings.TrimSpace(s.Code)
		if code == "" {
			log.Warn().Str("name", s.Name).Msg("Skipping stock without code")
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = s
		codes = append(codes, code)
		ordered = append(ordered, s)
	}

	if len(ordered) == 0 {
		return nil, nil
	}

	existing, err := r.findBy(ctx, query.Where(stock.FieldCode, query.In(codes...)))
	if err != nil {
		return nil, err
	}

	existingByCode := make(map[string]*stock.Stock, len(existing))
	for _, s := range existing {
		existingByCode[s.Code] = s
	}

	toCreate := make([]*stock.Stock, 0, len(ordered))
	for _, s := range ordered {
		current, ok := existingByCode[strings.TrimSpace(s.Code)]
		if !ok {
			toCreate = append(toCreate, s)
			continue
		}
		if current.MergeFrom(s) {
			if _, err := r.update(ctx, current.ID, map[string]any{stock.FieldCompany: current.Company}); err != nil {
				return nil, err
			}
		}
	}

	if err := r.createMany(ctx, toCreate); err != nil {
		return nil, err
	}

	log.Info().
		Int("created", len(toCreate)).
		Int("skipped", len(ordered)-len(toCreate)).
		Msg("Bulk stock create finished")

	return toCreate, nil
}
