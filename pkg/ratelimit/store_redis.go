package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCounterStore is a CounterStore backed by a shared Redis instance.
// It is the production store: counters are visible to every process sharing
// the same Redis, so ingress and egress limits hold across replicas.
type RedisCounterStore struct {
	client redis.Cmdable
}

// NewRedisCounterStore creates a counter store on top of an existing Redis
// client. The client's lifecycle is owned by the caller.
func NewRedisCounterStore(client redis.Cmdable) *RedisCounterStore {
	return &RedisCounterStore{client: client}
}

// IncrWithExpire increments the counter and sets its expiry only when the key
// has no TTL yet, so the window is anchored to the first request. Both
// commands run in a single pipeline round trip.
func (s *RedisCounterStore) IncrWithExpire(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := s.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
