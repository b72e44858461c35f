package main

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shard-legends/codex-service/internal/config"
	"github.com/shard-legends/codex-service/internal/handlers"
	customMiddleware "github.com/shard-legends/codex-service/internal/middleware"
)

func baseRouter(requestTimeout time.Duration) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Recovery())
	r.Use(customMiddleware.Logging())
	r.Use(customMiddleware.Metrics())
	r.Use(middleware.Timeout(requestTimeout))
	return r
}

// newPublicRouter builds the /codex API served on the public port
func newPublicRouter(cfg *config.Config, h *handlers.Handlers) *chi.Mux {
	r := baseRouter(cfg.Timeouts.HTTPMiddleware)

	// CORS for the game page and userscripts
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         cfg.CORS.MaxAge,
	}))

	r.Route("/codex", func(r chi.Router) {
		r.Get("/items", h.Codex.GetItems)
		r.Get("/items/{name}", h.Codex.GetItem)
		r.Get("/recipes", h.Codex.GetRecipes)
		r.Get("/search", h.Codex.Search)
		r.Get("/page/{query}", h.Codex.GetPage)
		r.Get("/categories", h.Codex.GetCategories)

		r.Route("/inventory", func(r chi.Router) {
			r.Post("/craftable", h.Inventory.Craftable)
			r.Post("/appraise", h.Inventory.Appraise)
			r.Post("/scrape", h.Inventory.Scrape)
		})

		r.Route("/snapshots", func(r chi.Router) {
			r.Post("/", h.Snapshot.Create)
			r.Get("/", h.Snapshot.List)
			r.Get("/{id}", h.Snapshot.Get)
			r.Delete("/{id}", h.Snapshot.Delete)
			r.Get("/{id}/craftable", h.Snapshot.Craftable)
		})
	})

	return r
}

// newInternalRouter builds health, metrics and admin endpoints served on the internal port
func newInternalRouter(cfg *config.Config, h *handlers.Handlers) *chi.Mux {
	r := baseRouter(cfg.Timeouts.HTTPMiddleware)

	r.Get("/health", h.Health.Health)
	r.Get("/ready", h.Health.Ready)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/admin/reload", h.Admin.Reload)

	return r
}
