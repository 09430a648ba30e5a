package metrics

import (
	"time"

	"github.com/sony/gobreaker"
)

// RecordSearch records one resolve invocation with its final status and
// duration. Status should be "ok" or "error".
func RecordSearch(status string, duration time.Duration) {
	SearchRequestsTotal.WithLabelValues(status).Inc()
	SearchDuration.Observe(duration.Seconds())
}

// RecordCacheHit records a result cache hit.
func RecordCacheHit() {
	SearchCacheEventsTotal.WithLabelValues("hit").Inc()
}

// RecordCacheMiss records a result cache miss.
func RecordCacheMiss() {
	SearchCacheEventsTotal.WithLabelValues("miss").Inc()
}

// RecordProviderFetch records a provider fetch outcome.
// Outcome is one of "live" (upstream call served the request), "offline"
// (offline dataset requested directly), "fallback" (live path failed and the
// offline dataset served instead), or "excluded" (the aggregator dropped the
// provider's result).
func RecordProviderFetch(provider, outcome string) {
	ProviderFetchTotal.WithLabelValues(provider, outcome).Inc()
}

// RecordBreakerState updates the breaker state gauge for a provider.
func RecordBreakerState(provider string, state gobreaker.State) {
	var v float64
	switch state {
	case gobreaker.StateClosed:
		v = 0
	case gobreaker.StateHalfOpen:
		v = 1
	case gobreaker.StateOpen:
		v = 2
	}
	ProviderBreakerState.WithLabelValues(provider).Set(v)
}

// RecordRateLimitDecision records one limiter verdict for a scope.
func RecordRateLimitDecision(scope string, allowed bool) {
	decision := "allowed"
	if !allowed {
		decision = "denied"
	}
	RateLimitDecisionsTotal.WithLabelValues(scope, decision).Inc()
}
