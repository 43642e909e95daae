package dashboard

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is the in-process StatsCache used as the default and in tests.
// Entries are dropped lazily on read after their deadline passes.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	stats    *Stats
	deadline time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*Stats, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.deadline) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, nil
	}
	return entry.stats, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, stats *Stats, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[key] = memoryEntry{stats: stats, deadline: time.Now().Add(ttl)}
	c.mu.Unlock()
	return nil
}
