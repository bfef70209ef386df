// Package cache provides the in-memory session cache for raw analyzer
// replies. Entries are keyed by "user:command" and live until the process
// exits or the cache is cleared.
package cache

import (
	"sync"

	"github.com/iotguard/iotguard/internal/domain"
	"github.com/iotguard/iotguard/internal/ports"
)

// MemoryCache is a mutex-guarded map cache. Identical resubmissions of a
// command by the same user are answered from here without spending another
// analyzer call.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]domain.CacheEntry
}

// NewMemory returns an empty session cache.
func NewMemory() *MemoryCache {
	return &MemoryCache{entries: make(map[string]domain.CacheEntry)}
}

// Get retrieves a cached reply.
func (c *MemoryCache) Get(key string) (domain.CacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	return entry, ok
}

// Set stores a reply, overwriting any entry under the same key.
func (c *MemoryCache) Set(entry domain.CacheEntry) {
	if entry.Key == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[entry.Key] = entry
}

// Len reports the number of cached replies.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops all cached replies.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]domain.CacheEntry)
}

var _ ports.CacheRepository = (*MemoryCache)(nil)
