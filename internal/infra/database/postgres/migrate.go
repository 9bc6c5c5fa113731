package postgres

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Migrate ensures the tables and indexes exist. historical_entries carries no
// unique (stock_id, trading_date) constraint on purpose: the ingestion
// coordinator upholds the one-entry-per-day invariant at write time.
func Migrate(ctx context.Context, pool *Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS stocks (
			id         TEXT PRIMARY KEY,
			code       TEXT NOT NULL,
			name       TEXT NOT NULL,
			company    TEXT,
			url        TEXT,
			url_news   TEXT,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_stocks_code ON stocks (code)`,
		`CREATE TABLE IF NOT EXISTS historical_entries (
			id           TEXT PRIMARY KEY,
			stock_id     TEXT NOT NULL REFERENCES stocks (id),
			trading_date TIMESTAMPTZ NOT NULL,
			open_price   TEXT NOT NULL,
			close_price  TEXT NOT NULL,
			variation    TEXT NOT NULL,
			min_price    TEXT NOT NULL,
			max_price    TEXT NOT NULL,
			volume       TEXT NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL,
			updated_at   TIMESTAMPTZ NOT NULL,
			deleted_at   TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_historical_entries_stock_id ON historical_entries (stock_id)`,
		`CREATE INDEX IF NOT EXISTS idx_historical_entries_trading_date ON historical_entries (trading_date)`,
		`CREATE TABLE IF NOT EXISTS news_articles (
			id             TEXT PRIMARY KEY,
			stock_id       TEXT REFERENCES stocks (id),
			url            TEXT NOT NULL,
			title          TEXT,
			content        TEXT,
			published_date TIMESTAMPTZ,
			created_at     TIMESTAMPTZ NOT NULL,
			updated_at     TIMESTAMPTZ NOT NULL,
			deleted_at     TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_news_articles_stock_id ON news_articles (stock_id)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	log.Info().Msg("Database schema ensured")
	return nil
}
