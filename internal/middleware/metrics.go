package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/flexliving/reviews-service/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// HTTPMetrics records per-route latency and error counts. The route label is
// the chi pattern (e.g. /api/listings/{listingID}/public), not the raw path,
// to keep label cardinality bounded.
func HTTPMetrics(mm *metrics.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if mm == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			mm.HTTPLatency.WithLabelValues(route).Observe(time.Since(startTime).Seconds())
			if ww.Status() >= http.StatusBadRequest {
				mm.HTTPErrorsTotal.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
			}
		})
	}
}
