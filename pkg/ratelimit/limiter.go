package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Limiter is a fixed-window rate limiter scoped to one concern (for example
// "ingress" or "egress:guardian"). Multiple limiters may share a single
// CounterStore; their keys are namespaced by scope.
//
// This is deliberately a fixed-window counter, not a smoothed token bucket:
// an identity may burst up to 2x the configured rate across a window
// boundary. That approximation is part of the observable contract and must
// not be silently upgraded to a sliding-window algorithm.
type Limiter struct {
	store  CounterStore
	scope  string
	rate   int64
	window time.Duration
}

// NewLimiter creates a fixed-window limiter allowing rate requests per
// identity per window within the given scope.
func NewLimiter(store CounterStore, scope string, rate int, window time.Duration) *Limiter {
	return &Limiter{
		store:  store,
		scope:  scope,
		rate:   int64(rate),
		window: window,
	}
}

// Allow reports whether a request by identity is admitted.
//
// It performs one atomic increment-with-expiry against the counter store and
// compares the post-increment count to the configured rate: exactly rate
// requests per window are admitted, and the (rate+1)-th is denied. The window
// starts at the identity's first request after the previous window expired.
//
// When the counter store is unreachable the limiter fails open: the error is
// logged and the request is admitted. The providers behind the limiter carry
// their own breaker and offline fallback, so over-admission degrades
// gracefully, while failing closed would turn a store outage into a total
// outage.
func (l *Limiter) Allow(ctx context.Context, identity string) bool {
	key := l.Key(identity)

	count, err := l.store.IncrWithExpire(ctx, key, l.window)
	if err != nil {
		slog.Error("rate limit store unreachable, failing open",
			slog.String("scope", l.scope),
			slog.String("key", key),
			slog.Any("error", err))
		return true
	}

	if count > l.rate {
		slog.Warn("rate limit exceeded",
			slog.String("scope", l.scope),
			slog.String("key", key),
			slog.Int64("count", count),
			slog.Int64("rate", l.rate))
		return false
	}
	return true
}

// Key returns the store key for an identity within this limiter's scope.
func (l *Limiter) Key(identity string) string {
	return fmt.Sprintf("rl:%s:%s", l.scope, identity)
}

// Scope returns the limiter's scope label.
func (l *Limiter) Scope() string {
	return l.scope
}

// Window returns the configured window length.
func (l *Limiter) Window() time.Duration {
	return l.window
}
