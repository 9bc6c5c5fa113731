package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/PAlucas/investsite/internal/api/response"
	"github.com/PAlucas/investsite/internal/infra/database/postgres"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	pool    *postgres.Pool
	version string
}

func NewHealthHandler(pool *postgres.Pool, version string) *HealthHandler {
	return &HealthHandler{pool: pool, version: version}
}

// Health reports service liveness and database reachability.
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	pingCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.pool.Ping(pingCtx); err != nil {
		response.Error(w, r, http.StatusServiceUnavailable, "database unreachable")
		return
	}

	response.Success(w, r, map[string]any{
		"status":   "ok",
		"version":  h.version,
		"database": "up",
	})
}
