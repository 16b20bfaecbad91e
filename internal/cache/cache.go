// Package cache provides a small bounded TTL cache keyed by string. It backs
// guardrail verdict memoization, where the same document is screened many
// times per training run.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a fixed-capacity map with optional expiry. Eviction is insertion
// ordered. Safe for concurrent use.
type Cache[V any] struct {
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
	entries    map[string]entry[V]
	order      []string

	now func() time.Time
}

// New creates a cache holding at most maxEntries values. A ttl of zero
// disables expiry.
func New[V any](maxEntries int, ttl time.Duration) *Cache[V] {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &Cache[V]{
		maxEntries: maxEntries,
		ttl:        ttl,
		entries:    make(map[string]entry[V], maxEntries),
		now:        time.Now,
	}
}

// Get returns the cached value for key, if present and unexpired.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		c.remove(key)
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *Cache[V]) remove(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// Set stores value under key, evicting the oldest entry when full.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = c.now().Add(c.ttl)
	}

	if _, exists := c.entries[key]; exists {
		c.entries[key] = entry[V]{value: value, expiresAt: expiresAt}
		return
	}

	for len(c.entries) >= c.maxEntries && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = entry[V]{value: value, expiresAt: expiresAt}
	c.order = append(c.order, key)
}

// Len reports the number of unexpired entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ttl > 0 {
		now := c.now()
		kept := c.order[:0]
		for _, key := range c.order {
			e, ok := c.entries[key]
			if !ok {
				continue
			}
			if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
				delete(c.entries, key)
				continue
			}
			kept = append(kept, key)
		}
		c.order = kept
	}
	return len(c.entries)
}
