package httpapi

import (
	"github.com/flexliving/reviews-service/internal/middleware"
	"github.com/flexliving/reviews-service/internal/platform/logger"
	"github.com/flexliving/reviews-service/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
)

// NewRouter wires the dashboard routes with tracing, logging and metrics
// middleware. mm may be nil when metrics are disabled.
func NewRouter(h *Handler, serviceName string, log *logger.Logger, mm *metrics.Manager) *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(middleware.Tracing(serviceName))
	mux.Use(middleware.RequestLogger(log))
	mux.Use(middleware.HTTPMetrics(mm))

	mux.Get("/healthz", h.HandleHealth)

	// Moderation surface: full snapshot including reply drafts and flags.
	mux.Get("/api/reviews", h.HandleListReviews)
	mux.Post("/api/reviews", h.HandleMutateReview)
	mux.Get("/api/listings", h.HandleListRollups)
	mux.Get("/api/listings/{listingID}/reviews", h.HandleListingReviews)
	mux.Get("/api/analytics", h.HandleAnalytics)

	// Public surface: approved reviews only, moderation fields stripped.
	mux.Get("/api/listings/{listingID}/public", h.HandlePublicListing)

	return mux
}
