// Caching for resolved fact sets.
package xbrl

import (
	"crypto/md5"
	"fmt"
	"sync"
)

// FactCache is a bounded, caller-owned cache of resolved fact sets keyed by a
// fingerprint of the document content. Because the key is the content hash,
// changed content can never return a stale entry. Eviction is oldest-first.
type FactCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]FactSet
	order    []string
}

// DefaultCacheCapacity bounds the cache when no explicit capacity is given.
const DefaultCacheCapacity = 10

// NewFactCache creates a cache holding at most capacity entries.
// A non-positive capacity falls back to DefaultCacheCapacity.
func NewFactCache(capacity int) *FactCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &FactCache{
		capacity: capacity,
		entries:  make(map[string]FactSet),
	}
}

// Get returns the cached facts for this exact document content.
func (c *FactCache) Get(documentText string) (FactSet, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fs, ok := c.entries[ContentHash(documentText)]
	return fs, ok
}

// Put stores facts for this document content, evicting the oldest entry when
// the cache is full.
func (c *FactCache) Put(documentText string, facts FactSet) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := ContentHash(documentText)
	if _, exists := c.entries[key]; exists {
		c.entries[key] = facts
		return
	}

	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = facts
	c.order = append(c.order, key)
}

// Len returns the number of cached fact sets.
func (c *FactCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// ContentHash returns the MD5 fingerprint of document content.
func ContentHash(content string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(content)))
}
