package provider

import "errors"

// Sentinel errors for provider clients. All of them are absorbed inside
// Fetch by the offline fallback; they exist so logs and tests can tell the
// failure modes apart.
var (
	// ErrEgressLimited indicates the provider's outbound rate limit denied
	// the call. It is deliberately treated like any other upstream failure,
	// so denials count toward the circuit breaker's trip threshold.
	ErrEgressLimited = errors.New("egress rate limit exceeded")

	// ErrUpstreamStatus indicates a non-2xx upstream response.
	ErrUpstreamStatus = errors.New("unexpected upstream status")

	// ErrOfflineDataNotFound indicates no offline dataset file exists on the
	// provider's search path.
	ErrOfflineDataNotFound = errors.New("offline dataset not found")
)
