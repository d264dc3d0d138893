package idempotency

import (
	"sync"
	"time"
)

// Cache provides a time-bounded idempotency store keyed by request id.
type Cache[V any] struct {
	mu    sync.Mutex
	items map[string]entry[V]
	ttl   time.Duration
	now   func() time.Time
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// NewCache returns a cache with the provided ttl.
func NewCache[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		items: make(map[string]entry[V]),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns the stored value if present and not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if item, ok := c.items[key]; ok {
		if c.now().Before(item.expiresAt) {
			return item.value, true
		}
		delete(c.items, key)
	}
	return zero, false
}

// PutIfAbsent stores value under key unless a live entry exists. It returns
// the stored value and whether it was already there, in one critical section
// so two concurrent submissions with the same key cannot both win.
func (c *Cache[V]) PutIfAbsent(key string, value V) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if item, ok := c.items[key]; ok && now.Before(item.expiresAt) {
		return item.value, true
	}
	c.items[key] = entry[V]{value: value, expiresAt: now.Add(c.ttl)}
	return value, false
}

// Sweep removes expired entries and returns how many were dropped.
func (c *Cache[V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	dropped := 0
	for k, item := range c.items {
		if !now.Before(item.expiresAt) {
			delete(c.items, k)
			dropped++
		}
	}
	return dropped
}

func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
