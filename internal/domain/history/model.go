package history

import (
	"context"
	"time"
)

// Entry represents one day of externally sourced price history for a stock.
// Maps to the historical_entries table. Price fields keep the source's
// locale-formatted strings (comma decimal separator, "-" for missing);
// numeric interpretation happens only in the variation calculator.
//
// Invariant: at most one entry per (stock_id, trading day). The table carries
// no unique constraint; the ingestion coordinator upholds this at write time.
type Entry struct {
	ID          string    `json:"id" db:"id"`
	StockID     string    `json:"stock_id" db:"stock_id"`
	TradingDate time.Time `json:"trading_date" db:"trading_date"`
	OpenPrice   string    `json:"open_price" db:"open_price"`
	ClosePrice  string    `json:"close_price" db:"close_price"`
	Variation   string    `json:"variation" db:"variation"` // closing quote, decimal-formatted string
	MinPrice    string    `json:"min_price" db:"min_price"`
	MaxPrice    string    `json:"max_price" db:"max_price"`
	Volume      string    `json:"volume" db:"volume"`

	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// Queryable field names accepted by the history repository filters.
const (
	FieldStockID     = "stock_id"
	FieldTradingDate = "trading_date"
)

// RawEntry is one row of a fetched history page, exactly as the external
// source emits it: an opaque 7-tuple plus the date pair.
type RawEntry struct {
	DateDisplay   string
	DateTimestamp int64
	OpenPrice     string
	ClosePrice    string
	Variation     string
	MinPrice      string
	MaxPrice      string
	Volume        string
}

// TradingDate converts the external Unix timestamp to a point in time in loc.
// The calendar day in loc is the entry's trading day.
func (r RawEntry) TradingDate(loc *time.Location) time.Time {
	return time.Unix(r.DateTimestamp, 0).In(loc)
}

// DayKey formats the calendar day of t in loc. Ingestion dedup and baseline
// loading must use the same location or days can be off by one.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// PageFetcher is the external-fetch collaborator contract. Implementations
// own retries, backoff and header rotation; a returned error marks the whole
// page as failed.
type PageFetcher interface {
	FetchPage(ctx context.Context, stockCode string, page int) ([]RawEntry, error)
}
