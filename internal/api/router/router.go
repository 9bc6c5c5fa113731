// Package router wires the HTTP routes and middleware.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/PAlucas/investsite/internal/api/handlers"
)

// Config holds router configuration
type Config struct {
	HealthHandler  *handlers.HealthHandler
	StockHandler   *handlers.StockHandler
	HistoryHandler *handlers.HistoryHandler
	NewsHandler    *handlers.NewsHandler
}

// NewRouter creates a new HTTP router
func NewRouter(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", cfg.HealthHandler.Health)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Stocks
		r.Route("/stocks", func(r chi.Router) {
			r.Get("/", cfg.StockHandler.List)
			r.Post("/", cfg.StockHandler.Create)
			r.Post("/fetch", cfg.StockHandler.Fetch)
			r.Get("/{code}", cfg.StockHandler.GetByCode)
		})

		// Price history
		r.Route("/historical-data", func(r chi.Router) {
			r.Post("/fetch", cfg.HistoryHandler.Fetch)
			r.Get("/{code}", cfg.HistoryHandler.GetByCode)
			r.Get("/{code}/range", cfg.HistoryHandler.GetByDateRange)
			r.Get("/{code}/latest", cfg.HistoryHandler.GetLatest)
			r.Get("/{code}/variation", cfg.HistoryHandler.GetVariation)
			r.Get("/{code}/date-range", cfg.HistoryHandler.GetDateRange)
		})

		// News
		r.Route("/news", func(r chi.Router) {
			r.Get("/", cfg.NewsHandler.List)
			r.Post("/fetch", cfg.NewsHandler.Fetch)
			r.Post("/save-stock-urls", cfg.NewsHandler.SaveStockURLs)
			r.Post("/update-content", cfg.NewsHandler.UpdateContent)
			r.Get("/{id}", cfg.NewsHandler.GetByID)
		})
	})

	return r
}
