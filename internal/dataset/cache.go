package dataset

import (
	"context"
	"sync"

	"fcdash/pkg/contracts/domain"
)

// pathKey identifies one load by its input-path triple.
type pathKey [3]string

// Cache memoizes unified tables per distinct input-path triple. Source files
// are treated as immutable for the process lifetime, so entries are never
// invalidated; a restart is the only way to pick up changed files.
type Cache struct {
	mu      sync.RWMutex
	entries map[pathKey][]domain.IndicatorRecord

	hits   int64
	misses int64
}

// NewCache creates an empty load cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[pathKey][]domain.IndicatorRecord),
	}
}

// Load returns the unified table for the given path triple, building it on
// first access. The second return reports whether the result came from the
// cache. The returned slice is shared and must not be mutated; filtering
// always works on copies.
func (c *Cache) Load(ctx context.Context, pathA, pathB, pathC string) ([]domain.IndicatorRecord, bool, error) {
	key := pathKey{pathA, pathB, pathC}

	c.mu.RLock()
	records, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return records, true, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Re-check under the write lock; another request may have loaded it
	if records, ok := c.entries[key]; ok {
		c.hits++
		return records, true, nil
	}

	records, err := Load(ctx, pathA, pathB, pathC)
	if err != nil {
		return nil, false, err
	}

	c.entries[key] = records
	c.misses++

	return records, false, nil
}

// Stats returns the cache hit and miss counters.
func (c *Cache) Stats() (hits, misses int64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

// Len returns the number of cached path triples.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
