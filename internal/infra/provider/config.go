package provider

import (
	"net/http"

	"newssearch/internal/resilience/circuitbreaker"
	"newssearch/internal/resilience/retry"
	"newssearch/pkg/ratelimit"
)

// Config holds the construction parameters shared by provider clients.
// Zero-valued fields fall back to the provider's defaults.
type Config struct {
	// APIKey is the provider credential. When empty the client serves its
	// offline dataset unconditionally.
	APIKey string

	// BaseURL overrides the provider's API endpoint, used in tests to point
	// the client at a local transport.
	BaseURL string

	// OfflineDir is an extra directory searched first for the provider's
	// offline dataset file.
	OfflineDir string

	// HTTPClient overrides the default 6-second-timeout client.
	HTTPClient *http.Client

	// Egress limits this provider's outbound call volume. Nil disables the
	// check.
	Egress *ratelimit.Limiter

	// Retry overrides the provider's retry policy when MaxAttempts > 0.
	Retry retry.Config

	// Breaker overrides the provider's breaker settings when Name is set.
	Breaker circuitbreaker.Config
}

// httpClient resolves the HTTP client for a config.
func (c Config) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return defaultHTTPClient()
}

// retryConfig resolves the retry policy, preferring the override.
func (c Config) retryConfig(def retry.Config) retry.Config {
	if c.Retry.MaxAttempts > 0 {
		return c.Retry
	}
	return def
}

// breakerConfig resolves the breaker settings, preferring the override.
func (c Config) breakerConfig(def circuitbreaker.Config) circuitbreaker.Config {
	if c.Breaker.Name != "" {
		return c.Breaker
	}
	return def
}
