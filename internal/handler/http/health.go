// Package http wires the handlers and middleware for the news search API.
package http

import (
	"net/http"
	"time"

	"newssearch/internal/handler/http/respond"
)

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version,omitempty"`
}

// HealthHandler serves GET /health. It is intentionally unauthenticated and
// exempt from rate limiting so load balancers can always probe it.
type HealthHandler struct {
	Version string
}

func (h HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.Version,
	})
}
