// Package middleware provides the HTTP middleware chain: request IDs,
// request logging with metrics, and JWT session authentication.
package middleware

import "context"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// userIDKey is the context key for the authenticated user ID.
	userIDKey contextKey = "user_id"
	// usernameKey is the context key for the authenticated username.
	usernameKey contextKey = "username"
	// requestIDKey is the context key for the per-request correlation ID.
	requestIDKey contextKey = "request_id"
)

// GetUserID extracts the authenticated user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}

// GetUsername extracts the authenticated username from the context.
// Returns empty string if not found.
func GetUsername(ctx context.Context) string {
	username, _ := ctx.Value(usernameKey).(string)
	return username
}

// GetRequestID extracts the correlation ID from the context.
// Returns empty string if not found.
func GetRequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDKey).(string)
	return requestID
}
