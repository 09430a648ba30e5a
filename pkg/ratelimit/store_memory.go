package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryCounterStore is a thread-safe in-memory implementation of
// CounterStore, used in tests and single-process deployments where a shared
// Redis store is unnecessary.
//
// Each counter carries its own expiry; an expired counter is recreated on
// the next increment, which starts a fresh window at that request.
type MemoryCounterStore struct {
	mu       sync.Mutex
	counters map[string]*windowCounter
	clock    Clock
}

// windowCounter holds the count and window expiry for a single key.
type windowCounter struct {
	count     int64
	expiresAt time.Time
}

// NewMemoryCounterStore creates a new in-memory counter store.
// If clock is nil, the system clock is used.
func NewMemoryCounterStore(clock Clock) *MemoryCounterStore {
	if clock == nil {
		clock = &SystemClock{}
	}
	return &MemoryCounterStore{
		counters: make(map[string]*windowCounter),
		clock:    clock,
	}
}

// IncrWithExpire atomically increments the counter for key, creating it with
// an expiry of window from now when absent or expired.
func (s *MemoryCounterStore) IncrWithExpire(ctx context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	c, ok := s.counters[key]
	if !ok || !now.Before(c.expiresAt) {
		// First request of a fresh window; expiry is anchored to this request,
		// not to a calendar boundary.
		c = &windowCounter{expiresAt: now.Add(window)}
		s.counters[key] = c
	}

	c.count++
	return c.count, nil
}

// Cleanup removes expired counters. It should be called periodically in
// long-lived processes to keep the map bounded.
func (s *MemoryCounterStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	removed := 0
	for key, c := range s.counters {
		if !now.Before(c.expiresAt) {
			delete(s.counters, key)
			removed++
		}
	}
	return removed
}

// KeyCount returns the number of counters currently held, expired or not.
func (s *MemoryCounterStore) KeyCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.counters)
}
