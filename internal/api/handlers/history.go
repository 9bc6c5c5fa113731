package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/PAlucas/investsite/internal/api/response"
	"github.com/PAlucas/investsite/internal/service/history"
	"github.com/PAlucas/investsite/internal/service/ingest"
)

const (
	defaultVariationDays = 30
	defaultFetchPages    = 1
	maxFetchPages        = 20
)

// HistoryHandler handles price history HTTP requests
type HistoryHandler struct {
	historySvc  *history.Service
	coordinator *ingest.Coordinator
	loc         *time.Location
}

func NewHistoryHandler(historySvc *history.Service, coordinator *ingest.Coordinator, loc *time.Location) *HistoryHandler {
	return &HistoryHandler{historySvc: historySvc, coordinator: coordinator, loc: loc}
}

// GetByCode returns the full history for a stock, oldest first.
// GET /api/historical-data/{code}
func (h *HistoryHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	st, entries, err := h.historySvc.GetHistoryByCode(r.Context(), code)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.SuccessList(w, r, map[string]any{
		"stock":   st,
		"history": entries,
	}, len(entries))
}

// GetByDateRange returns history between start and end, inclusive.
// GET /api/historical-data/{code}/range?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *HistoryHandler) GetByDateRange(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	start, err := time.ParseInLocation("2006-01-02", r.URL.Query().Get("start"), h.loc)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "invalid start date, expected YYYY-MM-DD")
		return
	}
	end, err := time.ParseInLocation("2006-01-02", r.URL.Query().Get("end"), h.loc)
	if err != nil {
		response.Error(w, r, http.StatusBadRequest, "invalid end date, expected YYYY-MM-DD")
		return
	}
	// The end bound covers its whole calendar day.
	end = end.Add(24*time.Hour - time.Second)

	st, entries, err := h.historySvc.GetHistoryByDateRange(r.Context(), code, start, end)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.SuccessList(w, r, map[string]any{
		"stock":   st,
		"history": entries,
	}, len(entries))
}

// GetLatest returns the most recent entry for a stock.
// GET /api/historical-data/{code}/latest
func (h *HistoryHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	st, entry, err := h.historySvc.GetLatestPrice(r.Context(), code)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.Success(w, r, map[string]any{
		"stock":        st,
		"latest_price": entry,
	})
}

// GetVariation returns the price change over a trailing window.
// GET /api/historical-data/{code}/variation?days=30
func (h *HistoryHandler) GetVariation(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	days := defaultVariationDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.Error(w, r, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	st, variation, err := h.historySvc.GetVariation(r.Context(), code, days)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.Success(w, r, map[string]any{
		"stock":     st,
		"variation": variation,
	})
}

// GetDateRange returns the span of persisted history for a stock.
// GET /api/historical-data/{code}/date-range
func (h *HistoryHandler) GetDateRange(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	st, dateRange, err := h.historySvc.GetDateRange(r.Context(), code)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.Success(w, r, map[string]any{
		"stock":      st,
		"date_range": dateRange,
	})
}

// Fetch ingests history pages for every tracked stock with a news URL.
// POST /api/historical-data/fetch?pages=2
func (h *HistoryHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	pages := defaultFetchPages
	if raw := r.URL.Query().Get("pages"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxFetchPages {
			response.Error(w, r, http.StatusBadRequest, "pages must be between 1 and 20")
			return
		}
		pages = parsed
	}

	results, err := h.coordinator.RunAll(r.Context(), pages)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.SuccessList(w, r, results, len(results))
}
