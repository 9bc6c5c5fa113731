package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/PAlucas/investsite/internal/api/response"
	"github.com/PAlucas/investsite/internal/domain/stock"
	"github.com/PAlucas/investsite/internal/service/stocks"
)

// StockHandler handles stock-related HTTP requests
type StockHandler struct {
	stocksSvc *stocks.Service
}

func NewStockHandler(stocksSvc *stocks.Service) *StockHandler {
	return &StockHandler{stocksSvc: stocksSvc}
}

// List returns every tracked stock.
// GET /api/stocks
func (h *StockHandler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.stocksSvc.GetAllStocks(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.SuccessList(w, r, all, len(all))
}

// GetByCode returns one stock by ticker.
// GET /api/stocks/{code}
func (h *StockHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	st, err := h.stocksSvc.GetStockByCode(r.Context(), code)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.Success(w, r, st)
}

// Create registers a single stock.
// POST /api/stocks
func (h *StockHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code    string  `json:"code"`
		Name    string  `json:"name"`
		Company *string `json:"company"`
		URL     *string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.stocksSvc.CreateStock(r.Context(), &stock.Stock{
		Code:    req.Code,
		Name:    req.Name,
		Company: req.Company,
		URL:     req.URL,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.Created(w, r, created, "stock created")
}

// Fetch pulls the external stock listing and persists new stocks.
// POST /api/stocks/fetch
func (h *StockHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	created, err := h.stocksSvc.FetchAndSaveStocks(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.SuccessWithMessage(w, r, created, "stock listing ingested")
}
