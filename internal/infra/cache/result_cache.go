package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"newssearch/internal/domain/entity"
)

// ResultCache maps a normalized query signature to a previously computed,
// page-sliced aggregate. Entries are immutable once stored and simply expire
// at their TTL.
//
// Every backing-store failure is absorbed: a read error behaves as a miss and
// a write error as a no-op, so the aggregation pipeline stays fully
// functional (just slower) when the cache is unavailable.
type ResultCache struct {
	store Store
	ttl   time.Duration
}

// NewResultCache creates a result cache over the given store with a fixed TTL.
func NewResultCache(store Store, ttl time.Duration) *ResultCache {
	return &ResultCache{store: store, ttl: ttl}
}

// Key builds the composite cache key for a query shape.
func Key(query string, page, pageSize int, offline bool) string {
	return fmt.Sprintf("agg:%s:%d:%d:%t", query, page, pageSize, offline)
}

// Get returns the cached aggregate for key, or nil on a miss. Store and
// decode failures are logged and reported as misses.
func (c *ResultCache) Get(ctx context.Context, key string) *entity.AggregateResult {
	raw, found, err := c.store.Get(ctx, key)
	if err != nil {
		slog.Error("cache read failed, treating as miss",
			slog.String("key", key),
			slog.Any("error", err))
		return nil
	}
	if !found {
		return nil
	}

	var result entity.AggregateResult
	if err := json.Unmarshal(raw, &result); err != nil {
		slog.Error("cache entry undecodable, treating as miss",
			slog.String("key", key),
			slog.Any("error", err))
		return nil
	}
	return &result
}

// Set stores the aggregate under key with the configured TTL. Failures are
// logged and otherwise ignored.
func (c *ResultCache) Set(ctx context.Context, key string, result *entity.AggregateResult) {
	raw, err := json.Marshal(result)
	if err != nil {
		slog.Error("cache encode failed, skipping store",
			slog.String("key", key),
			slog.Any("error", err))
		return
	}
	if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
		slog.Error("cache write failed, skipping store",
			slog.String("key", key),
			slog.Any("error", err))
	}
}

// TTL returns the configured entry time-to-live.
func (c *ResultCache) TTL() time.Duration {
	return c.ttl
}
