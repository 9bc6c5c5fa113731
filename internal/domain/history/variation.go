package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Variation is the price change over a trailing window, computed from the
// variation quotes of the window's earliest and latest entries.
type Variation struct {
	StockID    string          `json:"stock_id"`
	Days       int             `json:"days"`
	StartDate  time.Time       `json:"start_date"`
	EndDate    time.Time       `json:"end_date"`
	StartQuote string          `json:"start_price"`
	EndQuote   string          `json:"end_price"`
	Absolute   decimal.Decimal `json:"absolute_variation"`
	Percentage decimal.Decimal `json:"percentage_variation"`
}

// ParseQuote parses a source-formatted quote string, tolerating the comma
// decimal separator the external source emits ("10,00" -> 10.00).
func ParseQuote(s string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedQuote, s)
	}
	return d, nil
}

// ComputeVariation derives the absolute and percentage change between the
// start and end entries, both rounded to two decimal places. A zero start
// quote yields percentage 0 rather than an error; a non-numeric quote on
// either endpoint surfaces ErrMalformedQuote.
func ComputeVariation(start, end *Entry, days int) (*Variation, error) {
	startQuote, err := ParseQuote(start.Variation)
	if err != nil {
		return nil, err
	}
	endQuote, err := ParseQuote(end.Variation)
	if err != nil {
		return nil, err
	}

	absolute := endQuote.Sub(startQuote)
	percentage := decimal.Zero
	if !startQuote.IsZero() {
		percentage = absolute.Div(startQuote).Mul(decimal.NewFromInt(100))
	}

	return &Variation{
		StockID:    end.StockID,
		Days:       days,
		StartDate:  start.TradingDate,
		EndDate:    end.TradingDate,
		StartQuote: start.Variation,
		EndQuote:   end.Variation,
		Absolute:   absolute.Round(2),
		Percentage: percentage.Round(2),
	}, nil
}
