// Package news exposes the aggregated news search endpoint.
package news

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"newssearch/internal/common/pagination"
	"newssearch/internal/domain/entity"
	"newssearch/internal/handler/http/respond"
	"newssearch/internal/observability/logging"
	"newssearch/internal/usecase/search"
)

// Resolver is the aggregation capability the handler depends on.
type Resolver interface {
	Resolve(ctx context.Context, in search.Input) (*entity.AggregateResult, error)
}

// SearchHandler serves GET /search.
type SearchHandler struct {
	Svc Resolver

	// OfflineDefault forces offline mode for every request, used when the
	// deployment has no provider credentials at all.
	OfflineDefault bool
}

// ServeHTTP validates the request, resolves the aggregate, and writes the
// result page.
//
// Resolution is two-phase: a resolve error triggers one retry with offline
// mode forced, serving a degraded 200 flagged with "offline": true. Only a
// failure of that second attempt surfaces as a 500.
func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("query")
	if err := validateQuery(keyword); err != nil {
		respond.Error(w, http.StatusBadRequest, respond.CodeInvalidQuery)
		return
	}

	city := clampCity(r.URL.Query().Get("city"))
	params := pagination.ClampParams(
		intParam(r, "page", pagination.DefaultPage),
		intParam(r, "page_size", pagination.DefaultPageSize),
	)
	offline := h.OfflineDefault || boolParam(r, "offline")

	start := time.Now()
	in := search.Input{
		Query:    keyword,
		Page:     params.Page,
		PageSize: params.PageSize,
		Offline:  offline,
	}

	result, err := h.Svc.Resolve(r.Context(), in)
	if err != nil {
		logger := logging.FromContext(r.Context())
		logger.Error("resolve failed, retrying in offline mode",
			slog.String("query", keyword),
			slog.Any("error", err))

		in.Offline = true
		offline = true
		result, err = h.Svc.Resolve(r.Context(), in)
		if err != nil {
			logger.Error("offline resolve failed",
				slog.String("query", keyword),
				slog.Any("error", err))
			respond.Error(w, http.StatusInternalServerError, respond.CodeInternalError)
			return
		}
	}

	respond.JSON(w, http.StatusOK, SearchResponse{
		Keyword:             keyword,
		City:                city,
		Page:                params.Page,
		PageSize:            params.PageSize,
		TotalEstimatedPages: result.TotalEstimatedPages,
		TimeTakenMs:         time.Since(start).Milliseconds(),
		Offline:             offline,
		Links:               buildLinks(r.URL.Path, keyword, params.Page, params.PageSize, result.TotalEstimatedPages),
		Items:               result.Items,
	})
}

// intParam parses an integer query parameter, returning def when absent or
// malformed. Out-of-range values are clamped by the caller, not here.
func intParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// boolParam reports whether a flag parameter is set ("1" or "true").
func boolParam(r *http.Request, name string) bool {
	v := r.URL.Query().Get(name)
	return v == "1" || v == "true"
}
