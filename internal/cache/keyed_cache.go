package cache

import "sync"

// KeyedCache is a concurrency-safe string-keyed cache. Entries live until
// Delete or Clear; there is no expiry, which suits memoization of values that
// never go stale within one client instance.
type KeyedCache[T any] struct {
	entries map[string]T
	mu      sync.RWMutex
}

func NewKeyedCache[T any]() *KeyedCache[T] {
	return &KeyedCache[T]{
		entries: make(map[string]T),
	}
}

func (c *KeyedCache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

func (c *KeyedCache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, exists := c.entries[key]
	return value, exists
}

// GetOrSet returns the cached value for key, or stores and returns the result
// of compute. compute runs outside the lock; when two callers race, the first
// stored value wins and both see it.
func (c *KeyedCache[T]) GetOrSet(key string, compute func() T) T {
	if value, exists := c.Get(key); exists {
		return value
	}
	value := compute()
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, exists := c.entries[key]; exists {
		return existing
	}
	c.entries[key] = value
	return value
}

func (c *KeyedCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *KeyedCache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]T)
}

func (c *KeyedCache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
