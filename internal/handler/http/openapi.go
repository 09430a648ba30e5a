package http

import (
	"log/slog"
	"net/http"
	"os"

	"newssearch/internal/handler/http/respond"
)

// OpenAPIHandler serves the static OpenAPI document from disk. A missing or
// unreadable file yields 404 rather than 500 so deployments without the
// document stay healthy.
type OpenAPIHandler struct {
	// Path is the filesystem location of the document.
	Path string
}

func (h OpenAPIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, err := os.ReadFile(h.Path)
	if err != nil {
		slog.Warn("openapi document unavailable",
			slog.String("path", h.Path),
			slog.Any("error", err))
		respond.Error(w, http.StatusNotFound, respond.CodeNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}
