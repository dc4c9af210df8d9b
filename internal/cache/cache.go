package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"nba-scoreboard-service/internal/logging"
	"nba-scoreboard-service/internal/metrics"
)

// FetchFunc loads a fresh value for a key.
type FetchFunc[V any] func(ctx context.Context) (V, error)

type entry[V any] struct {
	value     V
	fetchedAt time.Time
}

// Cache is an in-memory stale-while-revalidate cache keyed by string.
//
// Readers get the cached value immediately when present; once past the
// freshness threshold the read still serves the stale value and triggers a
// background refresh. Concurrent fetches for the same key are coalesced into
// one in-flight call, and a failed refresh never evicts a cached value
// (last-completed-wins per key).
type Cache[V any] struct {
	mu       sync.RWMutex
	entries  map[string]entry[V]
	freshFor time.Duration
	flight   singleflight.Group
	logger   *slog.Logger
	metrics  *metrics.Recorder
	clock    func() time.Time
}

// New constructs a Cache whose values stay fresh for freshFor.
func New[V any](freshFor time.Duration, logger *slog.Logger, recorder *metrics.Recorder) *Cache[V] {
	if freshFor <= 0 {
		freshFor = 2 * time.Minute
	}
	return &Cache[V]{
		entries:  make(map[string]entry[V]),
		freshFor: freshFor,
		logger:   logger,
		metrics:  recorder,
		clock:    time.Now,
	}
}

// Get returns the value for key, fetching it when absent. A stale value is
// returned immediately while a coalesced background refresh runs.
func (c *Cache[V]) Get(ctx context.Context, key string, fetch FetchFunc[V]) (V, error) {
	c.mu.RLock()
	ent, ok := c.entries[key]
	fresh := ok && c.clock().Sub(ent.fetchedAt) < c.freshFor
	c.mu.RUnlock()

	if ok {
		if fresh {
			c.record(metrics.CacheHit)
			return ent.value, nil
		}
		c.record(metrics.CacheStaleServe)
		c.refreshAsync(key, fetch)
		return ent.value, nil
	}

	c.record(metrics.CacheMiss)
	value, err, shared := c.flight.Do(key, func() (any, error) {
		v, fetchErr := fetch(ctx)
		if fetchErr != nil {
			return nil, fetchErr
		}
		c.store(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	if shared {
		c.record(metrics.CacheCoalesced)
	}
	return value.(V), nil
}

// Peek returns the cached value and fetch time without triggering a refresh.
func (c *Cache[V]) Peek(key string) (V, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ent, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, time.Time{}, false
	}
	return ent.value, ent.fetchedAt, true
}

// Invalidate drops exactly the given key.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len reports the number of cached entries.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache[V]) store(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, fetchedAt: c.clock()}
}

// refreshAsync revalidates key in the background, detached from the caller's
// request context so navigation away does not cancel the refresh.
func (c *Cache[V]) refreshAsync(key string, fetch FetchFunc[V]) {
	go func() {
		_, err, _ := c.flight.Do(key, func() (any, error) {
			v, fetchErr := fetch(context.Background())
			if fetchErr != nil {
				return nil, fetchErr
			}
			c.store(key, v)
			return v, nil
		})
		if err != nil {
			logging.Warn(c.logger, "background refresh failed",
				slog.String(logging.FieldCacheKey, key), "error", err)
		}
	}()
}

func (c *Cache[V]) record(event string) {
	if c.metrics != nil {
		c.metrics.RecordCacheEvent(event)
	}
}
