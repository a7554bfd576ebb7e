package memory

import (
	"sync"

	"github.com/versewell/lumen/internal/core/ports/driven"
)

// Ensure IntelCache implements the interface.
var _ driven.IntelCache = (*IntelCache)(nil)

// IntelCache is an in-memory implementation of driven.IntelCache. Upserts
// are single map writes under the lock, so readers never observe a
// half-written entry.
type IntelCache struct {
	mu      sync.RWMutex
	entries map[driven.IntelKey]driven.IntelEntry
}

// NewIntelCache creates a new in-memory intelligence cache.
func NewIntelCache() *IntelCache {
	return &IntelCache{entries: make(map[driven.IntelKey]driven.IntelEntry)}
}

// Get returns the entry for a key, if present.
func (c *IntelCache) Get(key driven.IntelKey) (driven.IntelEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	return entry, ok
}

// Upsert stores an entry, overwriting any existing entry for the key.
func (c *IntelCache) Upsert(key driven.IntelKey, entry driven.IntelEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry
}

// Invalidate removes all entries for a subject, across models.
func (c *IntelCache) Invalidate(subjectID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if key.SubjectID == subjectID {
			delete(c.entries, key)
		}
	}
}

// Len returns the number of cached entries. Used by tests.
func (c *IntelCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
