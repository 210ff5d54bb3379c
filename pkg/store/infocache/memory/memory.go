// Package memory implements infocache.Cache with a process-local map.
//
// Entries do not survive a restart. Suitable for short-lived tools and
// tests; long-running file managers should prefer the badger backend.
package memory

import (
	"sync"

	"github.com/evandroforks/xfce4-thunar/pkg/store/infocache"
)

// Config holds memory cache options.
type Config struct {
	// MaxEntries bounds the cache size; 0 means unbounded. When the bound
	// is hit the cache is cleared wholesale rather than evicting entries
	// one by one, trading precision for zero bookkeeping.
	MaxEntries int `mapstructure:"max_entries"`
}

// Cache is an in-memory infocache.Cache.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]infocache.Entry
	max     int
}

// New creates an in-memory cache.
func New(cfg Config) *Cache {
	return &Cache{
		entries: make(map[string]infocache.Entry),
		max:     cfg.MaxEntries,
	}
}

// Get implements infocache.Cache.
func (c *Cache) Get(path string) (infocache.Entry, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[path]
	return entry, ok, nil
}

// Put implements infocache.Cache.
func (c *Cache) Put(entry infocache.Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.max > 0 && len(c.entries) >= c.max {
		if _, ok := c.entries[entry.Path]; !ok {
			c.entries = make(map[string]infocache.Entry)
		}
	}

	c.entries[entry.Path] = entry
	return nil
}

// Forget implements infocache.Cache.
func (c *Cache) Forget(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, path)
	return nil
}

// Close implements infocache.Cache.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = nil
	return nil
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
