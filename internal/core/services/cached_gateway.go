package services

import (
	"context"
	"net/http"
	"time"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
	"github.com/custodia-labs/ghmcp/internal/core/ports/driven"
	"github.com/custodia-labs/ghmcp/internal/logger"
)

// Ensure CachedGateway implements the Gateway interface.
var _ driven.Gateway = (*CachedGateway)(nil)

// CachedGateway memoizes successful GET dispatches by request fingerprint.
// Errors and /rate_limit responses are never cached. Two concurrent misses for the same key both
// reach the upstream.
type CachedGateway struct {
	next  driven.Gateway
	cache driven.ResponseCache
	ttl   time.Duration
}

// NewCachedGateway wraps next. A nil cache returns next unchanged.
func NewCachedGateway(next driven.Gateway, cache driven.ResponseCache, ttl time.Duration) driven.Gateway {
	if cache == nil {
		return next
	}
	return &CachedGateway{next: next, cache: cache, ttl: ttl}
}

// Dispatch serves GET requests from the cache when possible. The quota
// endpoint always goes upstream.
func (g *CachedGateway) Dispatch(ctx context.Context, req domain.Request) (domain.Value, error) {
	if req.EffectiveMethod() != http.MethodGet || req.Endpoint == domain.RateLimitPath {
		return g.next.Dispatch(ctx, req)
	}

	key := req.Fingerprint()
	if v, ok := g.cache.Get(key); ok {
		logger.Debug("cache hit: %s", key)
		return v, nil
	}

	v, err := g.next.Dispatch(ctx, req)
	if err != nil {
		return domain.Null(), err
	}
	g.cache.Set(key, v, g.ttl)
	return v, nil
}

// Invalidate drops cached entries for endpoint and everything below it.
func (g *CachedGateway) Invalidate(endpoint string) int {
	return g.cache.Clear(http.MethodGet + " " + endpoint)
}
