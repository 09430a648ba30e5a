// Package cache provides the short-lived result cache for aggregated search
// responses, backed by a pluggable key-value store.
package cache

import (
	"context"
	"time"
)

// Store defines a byte-oriented key-value store with per-key TTL.
// All methods must be safe for concurrent use.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key with the given time-to-live.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
