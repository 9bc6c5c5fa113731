// Package handlers implements the HTTP handlers for the API.
package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/PAlucas/investsite/internal/api/response"
	"github.com/PAlucas/investsite/internal/domain/history"
	"github.com/PAlucas/investsite/internal/domain/news"
	"github.com/PAlucas/investsite/internal/domain/query"
	"github.com/PAlucas/investsite/internal/domain/stock"
)

// writeDomainError maps domain errors onto HTTP statuses. Anything unmapped
// is an internal error and its detail stays out of the response.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, stock.ErrStockNotFound),
		errors.Is(err, history.ErrEntryNotFound),
		errors.Is(err, news.ErrArticleNotFound),
		errors.Is(err, history.ErrNoDataInWindow):
		response.Error(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, stock.ErrMissingCode),
		errors.Is(err, query.ErrUnknownField):
		response.Error(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, stock.ErrDuplicateCode):
		response.Error(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, history.ErrMalformedQuote):
		response.Error(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		response.Error(w, r, http.StatusInternalServerError, "internal server error")
	}
}
