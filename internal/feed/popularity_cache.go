package feed

import (
	"context"
	"sync"
	"time"
)

// PopularityCache holds a process-wide snapshot of ranked article titles with
// its fetch timestamp. The snapshot is replaced wholesale, never mutated, so
// concurrent requests racing through the expiry window may both refresh;
// last writer wins and both computed an equally valid list.
type PopularityCache struct {
	mu        sync.RWMutex
	titles    []string
	fetchedAt time.Time

	ttl time.Duration
	now func() time.Time
}

// NewPopularityCache creates an empty cache. A nil clock defaults to
// time.Now; tests inject their own.
func NewPopularityCache(ttl time.Duration, now func() time.Time) *PopularityCache {
	if now == nil {
		now = time.Now
	}
	return &PopularityCache{ttl: ttl, now: now}
}

// GetOrRefresh returns the cached snapshot when younger than the TTL,
// otherwise calls refresh outside the lock and stores the result. A failed
// or empty refresh falls back to the stale snapshot when one exists.
func (c *PopularityCache) GetOrRefresh(ctx context.Context, refresh func(context.Context) ([]string, error)) ([]string, error) {
	c.mu.RLock()
	titles, fetchedAt := c.titles, c.fetchedAt
	c.mu.RUnlock()

	if len(titles) > 0 && c.now().Sub(fetchedAt) < c.ttl {
		return titles, nil
	}

	fresh, err := refresh(ctx)
	if err != nil || len(fresh) == 0 {
		if len(titles) > 0 {
			return titles, nil
		}
		return nil, err
	}

	c.mu.Lock()
	c.titles = fresh
	c.fetchedAt = c.now()
	c.mu.Unlock()

	return fresh, nil
}

// Size returns the number of cached titles, zero when the cache is cold.
func (c *PopularityCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.titles)
}

// Age returns how long ago the snapshot was fetched, zero when cold.
func (c *PopularityCache) Age() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.fetchedAt.IsZero() {
		return 0
	}
	return c.now().Sub(c.fetchedAt)
}
