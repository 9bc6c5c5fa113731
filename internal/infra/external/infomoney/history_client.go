package infomoney

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/PAlucas/investsite/internal/domain/history"
)

// HistoryClient fetches paginated price history. Implements
// history.PageFetcher.
type HistoryClient struct {
	*Client
}

func NewHistoryClient(c *Client) *HistoryClient {
	return &HistoryClient{Client: c}
}

// quoteDate is the first cell of a history row.
type quoteDate struct {
	Display   string `json:"display"`
	Timestamp int64  `json:"timestamp"`
}

// FetchPage fetches one page of history for stockCode. The response is a JSON
// array of 7-element rows: a date object followed by six quote strings (open,
// close, variation, min, max, volume). Rows that do not fit that shape are
// skipped with a warning; the page itself still succeeds.
func (c *HistoryClient) FetchPage(ctx context.Context, stockCode string, page int) ([]history.RawEntry, error) {
	if err := c.throttle(ctx); err != nil {
		return nil, err
	}

	url := c.cfg.BaseURL + c.cfg.HistoryPath
	referer := fmt.Sprintf("%s/cotacoes/b3/acao/%s/historico/", c.cfg.BaseURL, strings.ToLower(stockCode))

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("User-Agent", c.userAgent()).
		SetHeader("Accept", "application/json, text/javascript, */*; q=0.01").
		SetHeader("Referer", referer).
		SetHeader("Origin", c.cfg.BaseURL).
		SetHeader("X-Requested-With", "XMLHttpRequest").
		SetFormData(map[string]string{
			"page":        strconv.Itoa(page),
			"numberItems": strconv.Itoa(c.cfg.PageSize),
			"symbol":      stockCode,
		}).
		Post(url)
	if err != nil {
		return nil, fmt.Errorf("fetch history page %d for %s: %w", page, stockCode, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("fetch history page %d for %s: status %d", page, stockCode, resp.StatusCode())
	}

	var rows [][]json.RawMessage
	if err := json.Unmarshal(resp.Body(), &rows); err != nil {
		return nil, fmt.Errorf("decode history page %d for %s: %w", page, stockCode, err)
	}

	entries := make([]history.RawEntry, 0, len(rows))
	for i, row := range rows {
		entry, err := parseHistoryRow(row)
		if err != nil {
			log.Warn().
				Str("stock", stockCode).
				Int("page", page).
				Int("row", i).
				Err(err).
				Msg("Skipping malformed history row")
			continue
		}
		entries = append(entries, entry)
	}

	log.Debug().
		Str("stock", stockCode).
		Int("page", page).
		Int("entries", len(entries)).
		Msg("Fetched history page")

	return entries, nil
}

func parseHistoryRow(row []json.RawMessage) (history.RawEntry, error) {
	if len(row) != 7 {
		return history.RawEntry{}, fmt.Errorf("expected 7 cells, got %d", len(row))
	}

	var date quoteDate
	if err := json.Unmarshal(row[0], &date); err != nil {
		return history.RawEntry{}, fmt.Errorf("date cell: %w", err)
	}

	cells := make([]string, 6)
	for i := 1; i < 7; i++ {
		s, err := cellString(row[i])
		if err != nil {
			return history.RawEntry{}, fmt.Errorf("cell %d: %w", i, err)
		}
		cells[i-1] = s
	}

	return history.RawEntry{
		DateDisplay:   date.Display,
		DateTimestamp: date.Timestamp,
		OpenPrice:     cells[0],
		ClosePrice:    cells[1],
		Variation:     cells[2],
		MinPrice:      cells[3],
		MaxPrice:      cells[4],
		Volume:        cells[5],
	}, nil
}

// cellString decodes a quote cell, which is usually a string but occasionally
// a bare number.
func cellString(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("unsupported cell %s", string(raw))
}
