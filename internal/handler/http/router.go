package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/catalog-engine/internal/engine"
	"github.com/utafrali/catalog-engine/pkg/health"
	"github.com/utafrali/catalog-engine/pkg/middleware"
)

// NewRouter creates a chi router with all engine routes registered.
func NewRouter(
	eng *engine.Engine,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(CORS)
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.Tracing("catalog-engine"))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("catalog-engine"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	searchHandler := NewSearchHandler(eng, logger)
	recommendationHandler := NewRecommendationHandler(eng, logger)
	interactionHandler := NewInteractionHandler(eng, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/search", func(r chi.Router) {
			r.Get("/", searchHandler.Search)
			r.Get("/autocomplete", searchHandler.Autocomplete)
			r.Get("/suggestions", searchHandler.Suggestions)
			r.Get("/trending", searchHandler.Trending)
			r.Post("/reindex", searchHandler.Reindex)
		})

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/personalized", recommendationHandler.Personalized)
			r.Get("/category/{categoryId}", recommendationHandler.Category)
			r.Route("/{productId}", func(r chi.Router) {
				r.Get("/related", recommendationHandler.Related)
				r.Get("/bought-together", recommendationHandler.BoughtTogether)
				r.Get("/similar", recommendationHandler.Similar)
				r.Get("/bundles", recommendationHandler.Bundles)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON)
			r.Post("/interactions", interactionHandler.Track)
		})
	})

	return r
}
