// Package httpjson holds the JSON request/response helpers shared by the
// HTTP handlers and middleware, so every endpoint emits the same error
// envelope.
package httpjson

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// errorResponse is the uniform error envelope for the JSON API.
type errorResponse struct {
	Error string `json:"error"`
}

// Write sends v as a JSON response with the given status. A nil v writes
// the status with an empty body.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error sends the uniform error envelope with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	Write(w, status, errorResponse{Error: message})
}

// Decode reads the request body as JSON, rejecting unknown fields.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
