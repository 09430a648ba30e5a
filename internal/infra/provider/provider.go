// Package provider implements the resilient upstream clients for news
// content providers.
//
// Each client wraps its provider's HTTP API with an egress-limiter check, a
// circuit breaker, bounded retry, and a guaranteed offline-dataset fallback:
// a live-path failure of any kind (egress denial, breaker open, timeout,
// non-2xx status, malformed payload, retry exhaustion) degrades to the
// provider's canned dataset instead of surfacing an error. New providers are
// added by implementing the Provider interface; no shared state exists
// between clients.
package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"newssearch/internal/domain/entity"
)

// FetchInput carries the logical search parameters for one provider fetch.
// Page and PageSize arrive pre-clamped by the caller.
type FetchInput struct {
	Query    string
	Page     int
	PageSize int
	Offline  bool
}

// Provider is the capability interface implemented by each upstream client.
type Provider interface {
	// Name returns the provider's stable identifier, used for egress limiter
	// scopes, metrics labels, and offline dataset lookup.
	Name() string

	// Fetch resolves a query against the provider, degrading to its offline
	// dataset on any upstream failure. The returned result is always
	// structurally valid; a non-nil error indicates a programming fault and
	// is guarded against (logged and excluded) by the aggregator.
	Fetch(ctx context.Context, in FetchInput) (*entity.ProviderResult, error)
}

// defaultTimeout is the per-call HTTP timeout for upstream requests.
// Exceeding it counts as a failure for retry and breaker purposes.
const defaultTimeout = 6 * time.Second

// defaultHTTPClient returns the client used when none is injected.
func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}

// resolveBaseURL prefers an override endpoint over the provider default.
func resolveBaseURL(override, def string) string {
	if override != "" {
		return override
	}
	return def
}

// getJSON issues a GET and returns the response body, treating any non-2xx
// status as an error so it feeds the retry and breaker machinery.
func getJSON(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d", ErrUpstreamStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return body, nil
}
