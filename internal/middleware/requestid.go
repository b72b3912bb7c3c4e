package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestID assigns a correlation ID to every request and echoes it in
// the X-Request-ID response header. Incoming X-Request-ID values are
// preserved so IDs survive proxies.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set("X-Request-ID", requestID)
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
