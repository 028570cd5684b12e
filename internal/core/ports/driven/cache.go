package driven

import (
	"time"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
)

// DefaultCacheTTL is used when Set is called with a non-positive ttl.
const DefaultCacheTTL = 300 * time.Second

// ResponseCache memoizes gateway results by request fingerprint.
// Implementations must be safe for concurrent use. A cache is optional: a
// nil ResponseCache disables memoization without changing results.
type ResponseCache interface {
	// Get returns the cached value, treating expired entries as absent.
	Get(key string) (domain.Value, bool)

	// Set stores value under key for ttl.
	Set(key string, value domain.Value, ttl time.Duration)

	// Clear removes entries whose key starts with prefix ("" removes all)
	// and returns how many were removed.
	Clear(prefix string) int
}
