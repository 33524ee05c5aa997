package cache

import (
	"context"
	"sync"
)

// MemoryCache is an unbounded in-process cache without expiration.
// It is safe for concurrent use.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]byte)}
}

// Get returns a copy of the stored data so callers cannot mutate the entry.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	data, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	return clone(data), true, nil
}

// Set stores a copy of data under key.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte) error {
	c.mu.Lock()
	c.entries[key] = clone(data)
	c.mu.Unlock()
	return nil
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Len returns the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close drops all entries.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	c.entries = make(map[string][]byte)
	c.mu.Unlock()
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Ensure MemoryCache implements Cache.
var _ Cache = (*MemoryCache)(nil)
