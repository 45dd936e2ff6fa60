package controller

import (
	"net/http"
	"osintscan/pkg/metrics"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// WithMetrics returns a middleware that observes request latency labelled by
// the matched chi route pattern, so path parameters do not explode cardinality.
func WithMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		metrics.HTTPRequests.
			WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}

// WithTimeout returns a middleware that bounds the handler by d and answers
// with a JSON error once it elapses. Streaming routes must not use it.
func WithTimeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.TimeoutHandler(next, d, `{"code":"TIMEOUT","message":"request timed out"}`)
	}
}
