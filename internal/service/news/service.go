// Package news manages article discovery, collection and enrichment.
package news

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/PAlucas/investsite/internal/domain/news"
	"github.com/PAlucas/investsite/internal/domain/query"
	"github.com/PAlucas/investsite/internal/domain/stock"
)

// Fetcher scrapes the external news pages.
type Fetcher interface {
	DiscoverNewsURL(ctx context.Context, profileURL string) (string, error)
	FetchArticleURLs(ctx context.Context, indexURL string) ([]string, error)
	FetchArticle(ctx context.Context, articleURL string) (*news.PageContent, error)
}

// Service is the news service.
type Service struct {
	newsRepo  news.Repository
	stockRepo stock.Repository
	fetcher   Fetcher
}

func NewService(newsRepo news.Repository, stockRepo stock.Repository, fetcher Fetcher) *Service {
	return &Service{newsRepo: newsRepo, stockRepo: stockRepo, fetcher: fetcher}
}

// GetAllNews returns every article, newest first.
func (s *Service) GetAllNews(ctx context.Context) ([]*news.Article, error) {
	return s.newsRepo.FindAll(ctx)
}

// GetNewsByID returns a single article.
func (s *Service) GetNewsByID(ctx context.Context, id string) (*news.Article, error) {
	return s.newsRepo.FindByID(ctx, id)
}

// GetNewsByStock returns the stock's articles, newest first.
func (s *Service) GetNewsByStock(ctx context.Context, st *stock.Stock) ([]*news.Article, error) {
	return s.newsRepo.FindByStockID(ctx, st.ID)
}

// DiscoverNewsURLs scrapes the profile page of every stock that has no news
// index yet and stores the discovered URL. Stocks whose profile carries no
// news link, and per-stock scrape failures, are skipped. Returns how many
// stocks gained a news URL.
func (s *Service) DiscoverNewsURLs(ctx context.Context) (int, error) {
	pending, err := s.stockRepo.FindBy(ctx, query.Where(stock.FieldURLNews, query.IsNull()))
	if err != nil {
		return 0, err
	}
	log.Info().Int("stocks", len(pending)).Msg("Discovering news URLs")

	updated := 0
	for _, st := range pending {
		if ctx.Err() != nil {
			return updated, ctx.Err()
		}
		if st.URL == nil || *st.URL == "" {
			continue
		}

		newsURL, err := s.fetcher.DiscoverNewsURL(ctx, *st.URL)
		if err != nil {
			log.Error().Str("stock", st.Code).Err(err).Msg("Failed to scrape stock profile")
			continue
		}
		if newsURL == "" {
			log.Debug().Str("stock", st.Code).Msg("Profile page has no news link")
			continue
		}

		if _, err := s.stockRepo.Update(ctx, st.ID, map[string]any{stock.FieldURLNews: newsURL}); err != nil {
			log.Error().Str("stock", st.Code).Err(err).Msg("Failed to store news URL")
			continue
		}
		updated++
	}

	log.Info().Int("updated", updated).Msg("News URL discovery finished")
	return updated, nil
}

// CollectArticles scrapes the news index of every stock with a discovered
// news URL and stores the article links it has not seen for that stock yet.
// Articles are created URL-only; enrichment happens separately. Returns how
// many articles were created.
func (s *Service) CollectArticles(ctx context.Context) (int, error) {
	tracked, err := s.stockRepo.FindBy(ctx, query.Where(stock.FieldURLNews, query.IsNotNull()))
	if err != nil {
		return 0, err
	}
	log.Info().Int("stocks", len(tracked)).Msg("Collecting news articles")

	created := 0
	for _, st := range tracked {
		if ctx.Err() != nil {
			return created, ctx.Err()
		}
		if !st.HasNewsURL() {
			continue
		}

		urls, err := s.fetcher.FetchArticleURLs(ctx, *st.URLNews)
		if err != nil {
			log.Error().Str("stock", st.Code).Err(err).Msg("Failed to scrape news index")
			continue
		}
		if len(urls) == 0 {
			continue
		}

		existing, err := s.newsRepo.FindByStockID(ctx, st.ID)
		if err != nil {
			return created, err
		}
		known := make(map[string]struct{}, len(existing))
		for _, a := range existing {
			known[a.URL] = struct{}{}
		}

		batch := []*news.Article{}
		for _, u := range urls {
			if _, dup := known[u]; dup {
				continue
			}
			known[u] = struct{}{}
			stockID := st.ID
			batch = append(batch, &news.Article{StockID: &stockID, URL: u})
		}

		if len(batch) > 0 {
			if err := s.newsRepo.CreateMany(ctx, batch); err != nil {
				return created, err
			}
			created += len(batch)
		}

		log.Info().
			Str("stock", st.Code).
			Int("found", len(urls)).
			Int("new", len(batch)).
			Msg("Collected news index")
	}

	return created, nil
}

// EnrichArticles fetches the page of every article still lacking a published
// date and fills in title, content and date. Each distinct URL is fetched
// once; every article sharing that URL is updated. Pages that fail or come
// back incomplete are skipped and retried on the next run, since the article
// keeps its null date. Returns how many articles were enriched.
func (s *Service) EnrichArticles(ctx context.Context) (int, error) {
	pending, err := s.newsRepo.FindWithoutDate(ctx)
	if err != nil {
		return 0, err
	}
	log.Info().Int("articles", len(pending)).Msg("Enriching news articles")

	byURL := map[string][]*news.Article{}
	for _, a := range pending {
		byURL[a.URL] = append(byURL[a.URL], a)
	}

	enriched := 0
	for url, articles := range byURL {
		if ctx.Err() != nil {
			return enriched, ctx.Err()
		}

		page, err := s.fetcher.FetchArticle(ctx, url)
		if err != nil {
			log.Warn().Str("url", url).Err(err).Msg("Failed to fetch article page")
			continue
		}

		attrs := map[string]any{
			news.FieldTitle:         page.Title,
			news.FieldContent:       page.Content,
			news.FieldPublishedDate: page.PublishedDate,
		}
		for _, a := range articles {
			if _, err := s.newsRepo.Update(ctx, a.ID, attrs); err != nil {
				log.Error().Str("id", a.ID).Err(err).Msg("Failed to update article")
				continue
			}
			enriched++
		}
	}

	log.Info().Int("enriched", enriched).Msg("Article enrichment finished")
	return enriched, nil
}
