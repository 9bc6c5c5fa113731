package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/PAlucas/investsite/internal/api/response"
	"github.com/PAlucas/investsite/internal/service/news"
)

// NewsHandler handles news article HTTP requests
type NewsHandler struct {
	newsSvc *news.Service
}

func NewNewsHandler(newsSvc *news.Service) *NewsHandler {
	return &NewsHandler{newsSvc: newsSvc}
}

// List returns every article, newest first.
// GET /api/news
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	articles, err := h.newsSvc.GetAllNews(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.SuccessList(w, r, articles, len(articles))
}

// GetByID returns one article.
// GET /api/news/{id}
func (h *NewsHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	article, err := h.newsSvc.GetNewsByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.Success(w, r, article)
}

// SaveStockURLs discovers the news index URL for stocks that lack one.
// POST /api/news/save-stock-urls
func (h *NewsHandler) SaveStockURLs(w http.ResponseWriter, r *http.Request) {
	updated, err := h.newsSvc.DiscoverNewsURLs(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.SuccessWithMessage(w, r, map[string]int{"updated": updated}, "news URLs discovered")
}

// Fetch collects article links for every stock with a news URL.
// POST /api/news/fetch
func (h *NewsHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	created, err := h.newsSvc.CollectArticles(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.SuccessWithMessage(w, r, map[string]int{"created": created}, "articles collected")
}

// UpdateContent enriches pending articles with title, content and date.
// POST /api/news/update-content
func (h *NewsHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	enriched, err := h.newsSvc.EnrichArticles(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	response.SuccessWithMessage(w, r, map[string]int{"enriched": enriched}, "articles enriched")
}
