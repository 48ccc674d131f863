// Package cache provides bounded, thread-safe LRU caches shared across
// concurrent requests. Caches are per-process and best-effort: an entry is
// never returned after eviction, and losing the cache on restart is safe.
package cache

import (
	"container/list"
	"sync"

	"github.com/bazaarlabs/khoj/internal/metrics"
)

// Cache is a bounded LRU cache keyed by string. Get promotes the entry;
// Set evicts the least-recently-used entry once capacity is reached.
type Cache[V any] struct {
	name     string
	capacity int
	entries  map[string]*list.Element
	lru      *list.List
	hits     uint64
	misses   uint64
	mu       sync.Mutex
}

type entry[V any] struct {
	key   string
	value V
}

// New creates a named cache with the given capacity. The name labels the
// cache's Prometheus hit/miss counters and response metadata.
func New[V any](name string, capacity int) *Cache[V] {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Cache[V]{
		name:     name,
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		lru:      list.New(),
	}
}

// Name returns the cache's name.
func (c *Cache[V]) Name() string {
	return c.name
}

// Get returns the cached value for key if present.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.lru.MoveToFront(elem)
		c.hits++
		metrics.CacheTotal.WithLabelValues(c.name, "hit").Inc()
		return elem.Value.(*entry[V]).value, true
	}
	c.misses++
	metrics.CacheTotal.WithLabelValues(c.name, "miss").Inc()
	var zero V
	return zero, false
}

// Set stores the value for key, evicting the oldest entry if at capacity.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.lru.MoveToFront(elem)
		elem.Value.(*entry[V]).value = value
		return
	}

	elem := c.lru.PushFront(&entry[V]{key: key, value: value})
	c.entries[key] = elem

	if c.lru.Len() > c.capacity {
		oldest := c.lru.Back()
		if oldest != nil {
			c.lru.Remove(oldest)
			delete(c.entries, oldest.Value.(*entry[V]).key)
		}
	}
}

// Len returns the current number of entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Stats returns cumulative hit and miss counts.
func (c *Cache[V]) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
