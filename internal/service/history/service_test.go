package history

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/PAlucas/investsite/internal/domain/history"
	"github.com/PAlucas/investsite/internal/domain/query"
	"github.com/PAlucas/investsite/internal/domain/stock"
)

var testLoc = time.FixedZone("BRT", -3*3600)

type stubStockRepo struct {
	byCode map[string]*stock.Stock
}

func (s *stubStockRepo) Create(context.Context, *stock.Stock) error       { return nil }
func (s *stubStockRepo) CreateMany(context.Context, []*stock.Stock) error { return nil }
func (s *stubStockRepo) FindByID(context.Context, string) (*stock.Stock, error) {
	return nil, stock.ErrStockNotFound
}
func (s *stubStockRepo) FindByCode(_ context.Context, code string) (*stock.Stock, error) {
	if st, ok := s.byCode[code]; ok {
		return st, nil
	}
	return nil, stock.ErrStockNotFound
}
func (s *stubStockRepo) FindAll(context.Context) ([]*stock.Stock, error) { return nil, nil }
func (s *stubStockRepo) FindBy(context.Context, *query.Filter) ([]*stock.Stock, error) {
	return nil, nil
}
func (s *stubStockRepo) FindOneBy(context.Context, *query.Filter) (*stock.Stock, error) {
	return nil, stock.ErrStockNotFound
}
func (s *stubStockRepo) Update(context.Context, string, map[string]any) (*stock.Stock, error) {
	return nil, stock.ErrStockNotFound
}
func (s *stubStockRepo) SoftDelete(context.Context, string) (bool, error) { return false, nil }
func (s *stubStockRepo) Delete(context.Context, string) (bool, error)     { return false, nil }
func (s *stubStockRepo) CreateManySkippingDuplicates(context.Context, []*stock.Stock) ([]*stock.Stock, error) {
	return nil, nil
}

type stubHistoryRepo struct {
	entries []*history.Entry
}

func (s *stubHistoryRepo) forStock(stockID string) []*history.Entry {
	out := []*history.Entry{}
	for _, e := range s.entries {
		if e.StockID == stockID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TradingDate.Before(out[j].TradingDate) })
	return out
}

func (s *stubHistoryRepo) Create(_ context.Context, e *history.Entry) error {
	s.entries = append(s.entries, e)
	return nil
}

func (s *stubHistoryRepo) CreateMany(_ context.Context, entries []*history.Entry) error {
	s.entries = append(s.entries, entries...)
	return nil
}

func (s *stubHistoryRepo) FindByID(context.Context, string) (*history.Entry, error) {
	return nil, history.ErrEntryNotFound
}

func (s *stubHistoryRepo) FindBy(context.Context, *query.Filter) ([]*history.Entry, error) {
	return nil, nil
}

func (s *stubHistoryRepo) FindByStockID(_ context.Context, stockID string) ([]*history.Entry, error) {
	return s.forStock(stockID), nil
}

func (s *stubHistoryRepo) FindByStockIDAndDateRange(_ context.Context, stockID string, start, end time.Time) ([]*history.Entry, error) {
	out := []*history.Entry{}
	for _, e := range s.forStock(stockID) {
		if !e.TradingDate.Before(start) && !e.TradingDate.After(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubHistoryRepo) FindLatestByStockID(_ context.Context, stockID string) (*history.Entry, error) {
	entries := s.forStock(stockID)
	if len(entries) == 0 {
		return nil, history.ErrEntryNotFound
	}
	return entries[len(entries)-1], nil
}

func (s *stubHistoryRepo) FindOldestByStockID(_ context.Context, stockID string) (*history.Entry, error) {
	entries := s.forStock(stockID)
	if len(entries) == 0 {
		return nil, history.ErrEntryNotFound
	}
	return entries[0], nil
}

func (s *stubHistoryRepo) SoftDelete(context.Context, string) (bool, error) { return false, nil }
func (s *stubHistoryRepo) Delete(context.Context, string) (bool, error)     { return false, nil }

func entryOn(stockID string, day int, quote string) *history.Entry {
	return &history.Entry{
		StockID:     stockID,
		TradingDate: time.Date(2024, 3, day, 18, 0, 0, 0, testLoc),
		OpenPrice:   quote,
		ClosePrice:  quote,
		Variation:   quote,
		MinPrice:    quote,
		MaxPrice:    quote,
		Volume:      "1M",
	}
}

func newTestService(entries ...*history.Entry) *Service {
	stocks := &stubStockRepo{byCode: map[string]*stock.Stock{
		"BBSE3": {ID: "stock-1", Code: "BBSE3", Name: "BB Seguridade"},
	}}
	return NewService(stocks, &stubHistoryRepo{entries: entries})
}

func TestGetHistoryByCode(t *testing.T) {
	t.Run("returns stock and entries oldest first", func(t *testing.T) {
		svc := newTestService(
			entryOn("stock-1", 10, "11,00"),
			entryOn("stock-1", 5, "10,00"),
			entryOn("stock-2", 7, "99,00"),
		)

		st, entries, err := svc.GetHistoryByCode(context.Background(), "BBSE3")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if st.ID != "stock-1" {
			t.Errorf("unexpected stock: %+v", st)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if !entries[0].TradingDate.Before(entries[1].TradingDate) {
			t.Error("entries not ordered oldest first")
		}
	})

	t.Run("unknown code surfaces ErrStockNotFound", func(t *testing.T) {
		svc := newTestService()
		_, _, err := svc.GetHistoryByCode(context.Background(), "XXXX9")
		if !errors.Is(err, stock.ErrStockNotFound) {
			t.Errorf("expected ErrStockNotFound, got %v", err)
		}
	})
}

func TestGetLatestPrice(t *testing.T) {
	svc := newTestService(
		entryOn("stock-1", 5, "10,00"),
		entryOn("stock-1", 10, "11,00"),
	)

	_, entry, err := svc.GetLatestPrice(context.Background(), "BBSE3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Variation != "11,00" {
		t.Errorf("expected the newest entry, got %+v", entry)
	}
}

func TestGetDateRange(t *testing.T) {
	t.Run("reports oldest and newest", func(t *testing.T) {
		svc := newTestService(
			entryOn("stock-1", 5, "10,00"),
			entryOn("stock-1", 10, "11,00"),
		)

		_, dr, err := svc.GetDateRange(context.Background(), "BBSE3")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !dr.HasData {
			t.Fatal("expected has_data")
		}
		if dr.OldestDate.Day() != 5 || dr.NewestDate.Day() != 10 {
			t.Errorf("unexpected range: %+v", dr)
		}
	})

	t.Run("no data yields an empty range, not an error", func(t *testing.T) {
		svc := newTestService()

		_, dr, err := svc.GetDateRange(context.Background(), "BBSE3")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dr.HasData || dr.OldestDate != nil || dr.NewestDate != nil {
			t.Errorf("expected empty range, got %+v", dr)
		}
	})
}

func TestGetVariation(t *testing.T) {
	t.Run("computes change over the trailing window", func(t *testing.T) {
		svc := newTestService(
			entryOn("stock-1", 1, "8,00"),
			entryOn("stock-1", 15, "10,00"),
			entryOn("stock-1", 25, "12,50"),
		)

		// A 15-day window from day 25 reaches back to day 10, so day 15 is
		// the window's earliest entry and day 1 stays outside it.
		_, v, err := svc.GetVariation(context.Background(), "BBSE3", 15)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v.StartQuote != "10,00" || v.EndQuote != "12,50" {
			t.Errorf("unexpected endpoints: %+v", v)
		}
		if v.Absolute.String() != "2.5" {
			t.Errorf("unexpected absolute variation: %s", v.Absolute)
		}
		if v.Percentage.String() != "25" {
			t.Errorf("unexpected percentage variation: %s", v.Percentage)
		}
		if v.Days != 15 {
			t.Errorf("unexpected days: %d", v.Days)
		}
	})

	t.Run("no entries at all", func(t *testing.T) {
		svc := newTestService()
		_, _, err := svc.GetVariation(context.Background(), "BBSE3", 30)
		if !errors.Is(err, history.ErrEntryNotFound) {
			t.Errorf("expected ErrEntryNotFound, got %v", err)
		}
	})

	t.Run("malformed quote surfaces ErrMalformedQuote", func(t *testing.T) {
		svc := newTestService(
			entryOn("stock-1", 10, "-"),
			entryOn("stock-1", 25, "12,50"),
		)
		_, _, err := svc.GetVariation(context.Background(), "BBSE3", 30)
		if !errors.Is(err, history.ErrMalformedQuote) {
			t.Errorf("expected ErrMalformedQuote, got %v", err)
		}
	})
}
