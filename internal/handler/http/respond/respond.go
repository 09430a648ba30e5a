// Package respond provides helpers for writing JSON HTTP responses with
// stable, machine-readable error codes.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Error codes returned to clients. These are part of the API contract, so the
// underlying error detail is logged rather than serialized.
const (
	CodeInvalidQuery      = "invalid_query"
	CodeUnauthorized      = "unauthorized"
	CodeNotFound          = "not_found"
	CodeRateLimitExceeded = "rate_limit_exceeded"
	CodeInternalError     = "internal_error"
)

// JSON writes a JSON response with the given status code and body.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Headers are already sent; the failure can only be logged.
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes a JSON error body carrying one of the stable error codes.
func Error(w http.ResponseWriter, code int, errorCode string) {
	JSON(w, code, map[string]string{"error": errorCode})
}
