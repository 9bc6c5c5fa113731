package history

import (
	"errors"
	"testing"
	"time"
)

func TestParseQuote(t *testing.T) {
	t.Run("comma decimal separator", func(t *testing.T) {
		d, err := ParseQuote("10,00")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.String() != "10" {
			t.Errorf("expected 10, got %s", d.String())
		}
	})

	t.Run("dot decimal separator", func(t *testing.T) {
		d, err := ParseQuote("12.5")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.String() != "12.5" {
			t.Errorf("expected 12.5, got %s", d.String())
		}
	})

	t.Run("surrounding whitespace", func(t *testing.T) {
		if _, err := ParseQuote("  7,25 "); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing value marker", func(t *testing.T) {
		_, err := ParseQuote("-")
		if !errors.Is(err, ErrMalformedQuote) {
			t.Errorf("expected ErrMalformedQuote, got %v", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseQuote("abc")
		if !errors.Is(err, ErrMalformedQuote) {
			t.Errorf("expected ErrMalformedQuote, got %v", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParseQuote("")
		if !errors.Is(err, ErrMalformedQuote) {
			t.Errorf("expected ErrMalformedQuote, got %v", err)
		}
	})
}

func TestComputeVariation(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
	}
	entry := func(d int, variation string) *Entry {
		return &Entry{StockID: "stock-1", TradingDate: day(d), Variation: variation}
	}

	t.Run("absolute and percentage", func(t *testing.T) {
		v, err := ComputeVariation(entry(1, "10,00"), entry(30, "12,50"), 30)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v.Absolute.String() != "2.5" {
			t.Errorf("expected absolute 2.5, got %s", v.Absolute.String())
		}
		if v.Percentage.String() != "25" {
			t.Errorf("expected percentage 25, got %s", v.Percentage.String())
		}
		if v.StartQuote != "10,00" || v.EndQuote != "12,50" {
			t.Errorf("expected raw quotes preserved, got %q -> %q", v.StartQuote, v.EndQuote)
		}
	})

	t.Run("negative change", func(t *testing.T) {
		v, err := ComputeVariation(entry(1, "20,00"), entry(30, "15,00"), 30)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v.Absolute.String() != "-5" {
			t.Errorf("expected absolute -5, got %s", v.Absolute.String())
		}
		if v.Percentage.String() != "-25" {
			t.Errorf("expected percentage -25, got %s", v.Percentage.String())
		}
	})

	t.Run("rounded to two places", func(t *testing.T) {
		v, err := ComputeVariation(entry(1, "3,00"), entry(30, "4,00"), 30)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v.Percentage.String() != "33.33" {
			t.Errorf("expected percentage 33.33, got %s", v.Percentage.String())
		}
	})

	t.Run("zero start quote guards division", func(t *testing.T) {
		v, err := ComputeVariation(entry(1, "0,00"), entry(30, "5,00"), 30)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !v.Percentage.IsZero() {
			t.Errorf("expected percentage 0, got %s", v.Percentage.String())
		}
		if v.Absolute.String() != "5" {
			t.Errorf("expected absolute 5, got %s", v.Absolute.String())
		}
	})

	t.Run("malformed start quote surfaces", func(t *testing.T) {
		_, err := ComputeVariation(entry(1, "n/a"), entry(30, "5,00"), 30)
		if !errors.Is(err, ErrMalformedQuote) {
			t.Errorf("expected ErrMalformedQuote, got %v", err)
		}
	})

	t.Run("malformed end quote surfaces", func(t *testing.T) {
		_, err := ComputeVariation(entry(1, "5,00"), entry(30, "-"), 30)
		if !errors.Is(err, ErrMalformedQuote) {
			t.Errorf("expected ErrMalformedQuote, got %v", err)
		}
	})
}
