package contentapi

import (
	"sync"
	"time"
)

// entry is one cached upstream response body.
type entry struct {
	body     []byte
	storedAt time.Time
}

// Cache is a concurrency-safe TTL cache of upstream bodies keyed by request
// path. A non-positive TTL disables it: Get always misses and Set does
// nothing.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewCache returns an empty cache whose entries live for ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{entries: make(map[string]entry), ttl: ttl, now: time.Now}
}

// Get returns a copy of the cached body for key if it has not expired.
func (c *Cache) Get(key string) ([]byte, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || c.expiredLocked(e) {
		return nil, false
	}
	return append([]byte(nil), e.body...), true
}

// Set stores a copy of body under key.
func (c *Cache) Set(key string, body []byte) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		body:     append([]byte(nil), body...),
		storedAt: c.now(),
	}
}

// Len drops expired entries and returns how many remain. Used for metrics.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		if c.expiredLocked(e) {
			delete(c.entries, key)
		}
	}
	return len(c.entries)
}

// expiredLocked reports whether e is past its TTL.
// Caller must hold c.mu.
func (c *Cache) expiredLocked(e entry) bool {
	return c.now().Sub(e.storedAt) >= c.ttl
}
