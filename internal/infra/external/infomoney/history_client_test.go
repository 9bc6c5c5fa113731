package infomoney

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PAlucas/investsite/internal/pkg/config"
)

func testConfig(serverURL string) config.InfomoneyConfig {
	return config.InfomoneyConfig{
		BaseURL:      serverURL,
		HistoryPath:  "/wp-json/infomoney/v1/quotes/history",
		StockListURL: serverURL + "/ativos/top-alta-baixa-por-ativo/acao",
		PageSize:     50,
		RetryCount:   0,
		MinDelay:     0,
		MaxDelay:     0,
	}
}

func TestHistoryClientFetchPage(t *testing.T) {
	t.Run("parses rows and skips malformed ones", func(t *testing.T) {
		body := `[
			[{"display":"02/01/2024","timestamp":1704164400},"10,00","10,50","10,50","9,90","10,60","1,2M"],
			["not a date cell","x"],
			[{"display":"03/01/2024","timestamp":1704250800},"10,50","10,80","10,80","10,40","10,90","900K"]
		]`
		var gotForm map[string]string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			if err := r.ParseForm(); err != nil {
				t.Fatalf("parse form: %v", err)
			}
			gotForm = map[string]string{
				"page":        r.PostFormValue("page"),
				"numberItems": r.PostFormValue("numberItems"),
				"symbol":      r.PostFormValue("symbol"),
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(body))
		}))
		defer server.Close()

		client := NewHistoryClient(NewClient(testConfig(server.URL)))

		entries, err := client.FetchPage(context.Background(), "BBSE3", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}

		first := entries[0]
		if first.DateDisplay != "02/01/2024" || first.DateTimestamp != 1704164400 {
			t.Errorf("unexpected date cell: %+v", first)
		}
		if first.OpenPrice != "10,00" || first.ClosePrice != "10,50" || first.Variation != "10,50" {
			t.Errorf("unexpected quote cells: %+v", first)
		}
		if first.MinPrice != "9,90" || first.MaxPrice != "10,60" || first.Volume != "1,2M" {
			t.Errorf("unexpected quote cells: %+v", first)
		}

		if gotForm["page"] != "0" || gotForm["numberItems"] != "50" || gotForm["symbol"] != "BBSE3" {
			t.Errorf("unexpected form payload: %v", gotForm)
		}
	})

	t.Run("numeric cells are stringified", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[[{"display":"02/01/2024","timestamp":1704164400},10.5,"10,80","10,80","10,40","10,90",1200000]]`))
		}))
		defer server.Close()

		client := NewHistoryClient(NewClient(testConfig(server.URL)))

		entries, err := client.FetchPage(context.Background(), "PETR4", 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		if entries[0].OpenPrice != "10.5" {
			t.Errorf("expected stringified number, got %q", entries[0].OpenPrice)
		}
		if entries[0].Volume != "1200000" {
			t.Errorf("expected stringified number, got %q", entries[0].Volume)
		}
	})

	t.Run("non-200 status fails the page", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client := NewHistoryClient(NewClient(testConfig(server.URL)))

		if _, err := client.FetchPage(context.Background(), "BBSE3", 0); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("non-JSON body fails the page", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>blocked</html>"))
		}))
		defer server.Close()

		client := NewHistoryClient(NewClient(testConfig(server.URL)))

		if _, err := client.FetchPage(context.Background(), "BBSE3", 0); err == nil {
			t.Fatal("expected an error")
		}
	})
}
