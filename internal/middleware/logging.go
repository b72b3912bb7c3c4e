package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mkale/dishpoll/internal/metrics"
)

// statusWriter captures the response status for logging and metrics.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Logging logs every request and records its latency histogram.
// It logs at Warn for 4xx/5xx responses so failures stand out.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			duration := time.Since(start)
			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = r.URL.Path
			}
			metrics.RequestDuration.WithLabelValues(
				r.Method, route, strconv.Itoa(sw.status),
			).Observe(duration.Seconds())

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration_ms", duration.Milliseconds(),
				"request_id", GetRequestID(r.Context()),
			}

			if sw.status >= http.StatusBadRequest {
				logger.Warn("request failed", attrs...)
			} else {
				logger.Info("request completed", attrs...)
			}
		})
	}
}
