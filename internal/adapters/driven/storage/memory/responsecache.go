package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
	"github.com/custodia-labs/ghmcp/internal/core/ports/driven"
)

// Ensure ResponseCache implements the interface.
var _ driven.ResponseCache = (*ResponseCache)(nil)

type cacheEntry struct {
	value     domain.Value
	expiresAt time.Time
}

// ResponseCache is an in-memory TTL cache of gateway results. Expired
// entries are evicted lazily on lookup; there is no background sweeper.
type ResponseCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewResponseCache creates an empty cache using the wall clock.
func NewResponseCache() *ResponseCache {
	return NewResponseCacheWithClock(time.Now)
}

// NewResponseCacheWithClock creates an empty cache reading time from now.
func NewResponseCacheWithClock(now func() time.Time) *ResponseCache {
	return &ResponseCache{
		entries: make(map[string]cacheEntry),
		now:     now,
	}
}

// Get returns the value stored under key. An expired entry is removed and
// reported as absent.
func (c *ResponseCache) Get(key string) (domain.Value, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return domain.Null(), false
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return domain.Null(), false
	}
	return entry.value, true
}

// Set stores value under key. A non-positive ttl uses driven.DefaultCacheTTL.
func (c *ResponseCache) Set(key string, value domain.Value, ttl time.Duration) {
	if ttl <= 0 {
		ttl = driven.DefaultCacheTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, expiresAt: c.now().Add(ttl)}
}

// Clear removes every entry whose key starts with prefix and returns the
// number removed. Entries that expired but were never looked up again still
// count.
func (c *ResponseCache) Clear(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prefix == "" {
		n := len(c.entries)
		c.entries = make(map[string]cacheEntry)
		return n
	}

	removed := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired ones included.
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
