package postgres

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/PAlucas/investsite/internal/domain/query"
)

var testColumns = map[string]string{
	"code":         "code",
	"stock_id":     "stock_id",
	"trading_date": "trading_date",
	"content":      "content",
}

func TestBuildFilterSQL(t *testing.T) {
	t.Run("empty filter still excludes deleted rows", func(t *testing.T) {
		sql, args, err := buildFilterSQL(query.All(), testColumns)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sql != "WHERE deleted_at IS NULL" {
			t.Errorf("unexpected sql: %s", sql)
		}
		if len(args) != 0 {
			t.Errorf("expected no args, got %v", args)
		}
	})

	t.Run("nil filter behaves like the empty filter", func(t *testing.T) {
		sql, _, err := buildFilterSQL(nil, testColumns)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sql != "WHERE deleted_at IS NULL" {
			t.Errorf("unexpected sql: %s", sql)
		}
	})

	t.Run("equals", func(t *testing.T) {
		sql, args, err := buildFilterSQL(query.Where("code", query.Equals("BBSE3")), testColumns)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "WHERE deleted_at IS NULL AND code = $1"
		if sql != want {
			t.Errorf("got %q, want %q", sql, want)
		}
		if !reflect.DeepEqual(args, []any{"BBSE3"}) {
			t.Errorf("unexpected args: %v", args)
		}
	})

	t.Run("in expands placeholders", func(t *testing.T) {
		sql, args, err := buildFilterSQL(query.Where("code", query.In("BBSE3", "PETR4")), testColumns)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "WHERE deleted_at IS NULL AND code IN ($1, $2)"
		if sql != want {
			t.Errorf("got %q, want %q", sql, want)
		}
		if !reflect.DeepEqual(args, []any{"BBSE3", "PETR4"}) {
			t.Errorf("unexpected args: %v", args)
		}
	})

	t.Run("empty in matches nothing", func(t *testing.T) {
		sql, args, err := buildFilterSQL(query.Where("code", query.In()), testColumns)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "WHERE deleted_at IS NULL AND FALSE"
		if sql != want {
			t.Errorf("got %q, want %q", sql, want)
		}
		if len(args) != 0 {
			t.Errorf("expected no args, got %v", args)
		}
	})

	t.Run("empty not-in excludes nothing", func(t *testing.T) {
		sql, _, err := buildFilterSQL(query.Where("code", query.NotIn()), testColumns)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sql != "WHERE deleted_at IS NULL" {
			t.Errorf("unexpected sql: %s", sql)
		}
	})

	t.Run("null checks take no args", func(t *testing.T) {
		f := query.Where("content", query.IsNull()).And("code", query.IsNotNull())
		sql, args, err := buildFilterSQL(f, testColumns)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "WHERE deleted_at IS NULL AND content IS NULL AND code IS NOT NULL"
		if sql != want {
			t.Errorf("got %q, want %q", sql, want)
		}
		if len(args) != 0 {
			t.Errorf("expected no args, got %v", args)
		}
	})

	t.Run("inclusive range with ordering and limit", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
		f := query.Where("stock_id", query.Equals("abc")).
			And("trading_date", query.AtLeast(start)).
			And("trading_date", query.AtMost(end)).
			OrderBy("trading_date", query.Desc).
			Limit(1)

		sql, args, err := buildFilterSQL(f, testColumns)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "WHERE deleted_at IS NULL AND stock_id = $1 AND trading_date >= $2 AND trading_date <= $3 ORDER BY trading_date DESC LIMIT 1"
		if sql != want {
			t.Errorf("got %q, want %q", sql, want)
		}
		if !reflect.DeepEqual(args, []any{"abc", start, end}) {
			t.Errorf("unexpected args: %v", args)
		}
	})

	t.Run("placeholder numbering continues after in list", func(t *testing.T) {
		f := query.Where("code", query.In("A", "B", "C")).And("stock_id", query.Equals("x"))
		sql, args, err := buildFilterSQL(f, testColumns)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "WHERE deleted_at IS NULL AND code IN ($1, $2, $3) AND stock_id = $4"
		if sql != want {
			t.Errorf("got %q, want %q", sql, want)
		}
		if len(args) != 4 {
			t.Errorf("expected 4 args, got %v", args)
		}
	})

	t.Run("unknown predicate field fails fast", func(t *testing.T) {
		_, _, err := buildFilterSQL(query.Where("nope", query.Equals(1)), testColumns)
		if !errors.Is(err, query.ErrUnknownField) {
			t.Errorf("expected ErrUnknownField, got %v", err)
		}
	})

	t.Run("unknown order field fails fast", func(t *testing.T) {
		_, _, err := buildFilterSQL(query.All().OrderBy("nope", query.Asc), testColumns)
		if !errors.Is(err, query.ErrUnknownField) {
			t.Errorf("expected ErrUnknownField, got %v", err)
		}
	})
}
