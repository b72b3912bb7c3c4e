package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mkale/dishpoll/internal/auth"
	"github.com/mkale/dishpoll/internal/httpjson"
)

// RequireAuth validates the Bearer token on every request and adds the
// user ID and username to the request context. Requests without a valid
// session are rejected with 401.
func RequireAuth(tokens *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, auth.ErrMissingToken.Error())
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, auth.ErrInvalidToken.Error())
				return
			}

			claims, err := tokens.Validate(parts[1])
			if err != nil {
				unauthorized(w, auth.ErrInvalidToken.Error())
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			ctx = context.WithValue(ctx, usernameKey, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	httpjson.Error(w, http.StatusUnauthorized, message)
}
