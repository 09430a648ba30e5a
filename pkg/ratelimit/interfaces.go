// Package ratelimit provides fixed-window rate limiting over a shared
// counter store.
//
// The limiter counts requests per (scope, identity) key within a wall-clock
// window that starts at the identity's first request. It is used both for
// ingress admission control (per API key or client IP) and for egress
// limiting of outbound provider calls, with independent Limiter instances
// sharing one store.
package ratelimit

import (
	"context"
	"time"
)

// CounterStore defines the storage backend for fixed-window counters.
//
// Implementations can use in-memory storage, Redis, or other shared
// key-value stores. All methods must be safe for concurrent use.
type CounterStore interface {
	// IncrWithExpire atomically increments the counter for key and, if the
	// counter was just created, sets its expiry to the window length. The
	// increment and the expiry-if-absent must behave as a single atomic
	// operation with respect to concurrent callers of the same key.
	//
	// Returns the post-increment count.
	IncrWithExpire(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Clock provides an abstraction for time operations to enable testing.
//
// Production implementations should return time.Now(); test implementations
// can return fixed or controlled times.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// SystemClock is a Clock implementation that uses the system time.
type SystemClock struct{}

// Now returns the current system time.
func (c *SystemClock) Now() time.Time {
	return time.Now()
}
