package news

import "time"

// Article represents a news article scraped from the external news index.
// Maps to the news_articles table. Articles are created URL-only from a
// listing page and later enriched with title, content and published date
// from the article page itself; "needs enrichment" means PublishedDate is
// still nil. URL is deliberately not unique in storage (the same URL recurs
// across fetch passes); the service guards against duplicates at write time.
type Article struct {
	ID            string     `json:"id" db:"id"`
	StockID       *string    `json:"stock_id" db:"stock_id"`
	URL           string     `json:"url" db:"url"`
	Title         *string    `json:"title" db:"title"`
	Content       *string    `json:"content" db:"content"`
	PublishedDate *time.Time `json:"published_date" db:"published_date"`

	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// Queryable field names accepted by the news repository filters.
const (
	FieldStockID       = "stock_id"
	FieldURL           = "url"
	FieldTitle         = "title"
	FieldPublishedDate = "published_date"
	FieldContent       = "content"
)

// NeedsEnrichment reports whether the article still awaits content from its
// page.
func (a *Article) NeedsEnrichment() bool {
	return a.PublishedDate == nil
}

// Content scraped from one article page.
type PageContent struct {
	Title         string
	Content       string
	PublishedDate time.Time
}
