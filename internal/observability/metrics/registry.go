// Package metrics provides centralized Prometheus metrics for the
// application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Search pipeline metrics track request resolution outcomes and latency.
var (
	// SearchRequestsTotal counts resolve invocations by final status
	// ("ok", "error").
	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_requests_total",
			Help: "Total number of search resolutions by status",
		},
		[]string{"status"},
	)

	// SearchDuration measures end-to-end resolve latency in seconds.
	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "search_duration_seconds",
			Help:    "Search resolution duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// SearchCacheEventsTotal counts result cache hits and misses.
	SearchCacheEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_cache_events_total",
			Help: "Result cache lookups by event (hit/miss)",
		},
		[]string{"event"},
	)
)

// Provider metrics track upstream call outcomes and breaker health.
var (
	// ProviderFetchTotal counts provider fetches by outcome
	// ("live", "offline", "fallback", "excluded").
	ProviderFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_fetch_total",
			Help: "Provider fetches by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	// ProviderBreakerState exposes the breaker state per provider
	// (0=closed, 1=half-open, 2=open).
	ProviderBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "provider_breaker_state",
			Help: "Circuit breaker state per provider (0=closed, 1=half-open, 2=open)",
		},
		[]string{"provider"},
	)
)

// Rate limiting metrics track admission and egress decisions.
var (
	// RateLimitDecisionsTotal counts limiter decisions by scope and verdict.
	RateLimitDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratelimit_decisions_total",
			Help: "Rate limiter decisions by scope and decision (allowed/denied)",
		},
		[]string{"scope", "decision"},
	)
)
