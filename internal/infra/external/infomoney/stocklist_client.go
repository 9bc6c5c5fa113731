package infomoney

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/PAlucas/investsite/internal/domain/stock"
)

// listPageSize matches the page size the InfoMoney listing endpoint serves.
const listPageSize = 15

// defaultListPages is the fallback page count used until the first page
// reports the real total.
const defaultListPages = 40

// StockListClient fetches the full stock listing from the high-low XML
// endpoint.
type StockListClient struct {
	*Client
}

func NewStockListClient(c *Client) *StockListClient {
	return &StockListClient{Client: c}
}

type listedQuote struct {
	StockCode string
	StockName string
}

// FetchAll walks the paginated listing and returns one stock per distinct
// code, first occurrence wins. A failed page is logged and skipped; the walk
// continues so one bad page does not lose the rest of the listing.
func (c *StockListClient) FetchAll(ctx context.Context) ([]*stock.Stock, error) {
	seen := make(map[string]struct{})
	stocks := []*stock.Stock{}
	totalPages := defaultListPages

	for page := 1; page <= totalPages; page++ {
		if err := c.throttle(ctx); err != nil {
			return stocks, err
		}

		quotes, reportedTotal, err := c.fetchListPage(ctx, page)
		if err != nil {
			log.Error().Int("page", page).Err(err).Msg("Failed to fetch stock list page")
			continue
		}
		if page == 1 && reportedTotal > 0 {
			totalPages = reportedTotal
		}

		for _, q := range quotes {
			if q.StockCode == "" {
				continue
			}
			if _, dup := seen[q.StockCode]; dup {
				continue
			}
			seen[q.StockCode] = struct{}{}

			name := q.StockName
			stocks = append(stocks, &stock.Stock{
				Code:    q.StockCode,
				Name:    name,
				Company: &name,
				URL:     stockURL(q.StockCode),
			})
		}

		log.Info().
			Int("page", page).
			Int("total_pages", totalPages).
			Int("stocks", len(stocks)).
			Msg("Processed stock list page")
	}

	return stocks, nil
}

func (c *StockListClient) fetchListPage(ctx context.Context, page int) ([]listedQuote, int, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("User-Agent", c.userAgent()).
		SetHeader("Referer", c.cfg.BaseURL+"/").
		SetQueryParams(map[string]string{
			"sector":         "Todos",
			"orderAtributte": "Volume",
			"pageIndex":      strconv.Itoa(page),
			"pageSize":       strconv.Itoa(listPageSize),
		}).
		Get(c.cfg.StockListURL)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch stock list page %d: %w", page, err)
	}
	if resp.StatusCode() != 200 {
		return nil, 0, fmt.Errorf("fetch stock list page %d: status %d", page, resp.StatusCode())
	}

	return parseListXML(resp.Body())
}

// parseListXML walks the token stream instead of mapping the document shape,
// so namespace prefixes and wrapper elements around QuoteHighLow do not
// matter.
func parseListXML(body []byte) ([]listedQuote, int, error) {
	decoder := xml.NewDecoder(bytes.NewReader(body))
	quotes := []listedQuote{}
	totalPages := 0

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("parse stock list xml: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "QuoteHighLow":
			var q struct {
				StockCode string `xml:"StockCode"`
				StockName string `xml:"StockName"`
			}
			if err := decoder.DecodeElement(&q, &start); err != nil {
				log.Warn().Err(err).Msg("Skipping malformed stock list quote")
				continue
			}
			quotes = append(quotes, listedQuote{StockCode: q.StockCode, StockName: q.StockName})
		case "TotalPages":
			var n int
			if err := decoder.DecodeElement(&n, &start); err == nil {
				totalPages = n
			}
		}
	}

	return quotes, totalPages, nil
}

func stockURL(code string) *string {
	u := fmt.Sprintf("https://infomoney.com.br/%s", code)
	return &u
}
