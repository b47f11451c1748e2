package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/msgram/internal/compare"
	"github.com/MikeSquared-Agency/msgram/internal/hermes"
	"github.com/MikeSquared-Agency/msgram/internal/scoring"
	"github.com/MikeSquared-Agency/msgram/internal/store"
)

// NewRouter serves the quality API. s may be nil when no database is
// configured; calculations are then not persisted.
func NewRouter(e *scoring.Engine, c *compare.Comparator, s store.Store, em *hermes.Emitter, adminToken string, rateLimit int, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(rateLimit))

	quality := NewQualityHandler(e, c, s, em, logger)
	releases := NewReleasesHandler(s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(AdminAuthMiddleware(adminToken))

		r.Post("/calculate", quality.Calculate)
		r.Post("/compare", quality.Compare)
		r.Get("/model", quality.Model)

		r.Get("/releases", releases.List)
		r.Get("/releases/{id}", releases.Get)
	})

	return r
}

// NewMetricsRouter serves /health and /metrics. s may be nil.
func NewMetricsRouter(s store.Store) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if s != nil {
			if err := s.Ping(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": err.Error()})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
