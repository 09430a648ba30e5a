package ratelimit

import "time"

// Config holds the configuration for one limiter scope.
type Config struct {
	// Scope namespaces the counter keys, e.g. "ingress" or "egress:guardian".
	Scope string

	// Rate is the number of requests admitted per identity per window.
	Rate int

	// Window is the fixed window length.
	Window time.Duration
}

// IngressConfig returns the default ingress admission policy:
// 60 requests per minute per API key or client IP.
func IngressConfig() Config {
	return Config{
		Scope:  "ingress",
		Rate:   60,
		Window: time.Minute,
	}
}

// EgressConfig returns the default outbound policy for a provider scope.
// Providers share the same default volume; the scope keeps their counters
// independent.
func EgressConfig(provider string) Config {
	return Config{
		Scope:  "egress:" + provider,
		Rate:   30,
		Window: time.Minute,
	}
}

// Build constructs a Limiter from the config over the given store.
func (c Config) Build(store CounterStore) *Limiter {
	return NewLimiter(store, c.Scope, c.Rate, c.Window)
}
