package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ghmcp/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ghmcp/internal/core/domain"
)

func TestCachedGateway_NilCacheReturnsNext(t *testing.T) {
	next := &mockGateway{}
	assert.Same(t, next, NewCachedGateway(next, nil, time.Minute))
}

func TestCachedGateway_HitSkipsUpstream(t *testing.T) {
	next := &mockGateway{value: domain.Map(domain.F("name", domain.String("react")))}
	gw := NewCachedGateway(next, memory.NewResponseCache(), time.Minute)
	req := domain.NewRequest("/repos/facebook/react")

	first, err := gw.Dispatch(context.Background(), req)
	require.NoError(t, err)
	second, err := gw.Dispatch(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.Equal(t, 1, next.calls())
}

func TestCachedGateway_ParamsSeparateEntries(t *testing.T) {
	next := &mockGateway{value: domain.Seq()}
	gw := NewCachedGateway(next, memory.NewResponseCache(), time.Minute)

	_, err := gw.Dispatch(context.Background(), domain.NewRequest("/search/issues", domain.P("q", "a")))
	require.NoError(t, err)
	_, err = gw.Dispatch(context.Background(), domain.NewRequest("/search/issues", domain.P("q", "b")))
	require.NoError(t, err)

	assert.Equal(t, 2, next.calls())
}

func TestCachedGateway_ExpiredEntryRefetches(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	cache := memory.NewResponseCacheWithClock(func() time.Time { return now })
	next := &mockGateway{value: domain.Bool(true)}
	gw := NewCachedGateway(next, cache, 10*time.Second)
	req := domain.NewRequest("/rate_limit")

	_, err := gw.Dispatch(context.Background(), req)
	require.NoError(t, err)

	now = now.Add(10 * time.Second)
	_, err = gw.Dispatch(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 2, next.calls())
}

func TestCachedGateway_ErrorsAreNotCached(t *testing.T) {
	next := &mockGateway{err: domain.NotFound("missing", nil)}
	cache := memory.NewResponseCache()
	gw := NewCachedGateway(next, cache, time.Minute)
	req := domain.NewRequest("/repos/a/b")

	_, err := gw.Dispatch(context.Background(), req)
	require.Error(t, err)
	_, err = gw.Dispatch(context.Background(), req)
	require.Error(t, err)

	assert.Equal(t, 2, next.calls())
	assert.Equal(t, 0, cache.Len())
}

func TestCachedGateway_NonGetBypassesCache(t *testing.T) {
	next := &mockGateway{value: domain.Null()}
	cache := memory.NewResponseCache()
	gw := NewCachedGateway(next, cache, time.Minute)
	req := domain.Request{Method: "POST", Endpoint: "/markdown"}

	_, _ = gw.Dispatch(context.Background(), req)
	_, _ = gw.Dispatch(context.Background(), req)

	assert.Equal(t, 2, next.calls())
	assert.Equal(t, 0, cache.Len())
}

func TestCachedGateway_RateLimitAlwaysUpstream(t *testing.T) {
	next := &mockGateway{value: domain.Map(domain.F("rate", domain.Map()))}
	cache := memory.NewResponseCache()
	gw := NewCachedGateway(next, cache, time.Minute)

	_, _ = gw.Dispatch(context.Background(), domain.NewRequest(domain.RateLimitPath))
	_, _ = gw.Dispatch(context.Background(), domain.NewRequest(domain.RateLimitPath))

	assert.Equal(t, 2, next.calls())
	assert.Equal(t, 0, cache.Len())
}

func TestCachedGateway_Invalidate(t *testing.T) {
	next := &mockGateway{value: domain.Seq()}
	gw := NewCachedGateway(next, memory.NewResponseCache(), time.Minute).(*CachedGateway)

	_, _ = gw.Dispatch(context.Background(), domain.NewRequest("/repos/a/b/pulls"))
	_, _ = gw.Dispatch(context.Background(), domain.NewRequest("/repos/a/b/issues/1"))
	_, _ = gw.Dispatch(context.Background(), domain.NewRequest("/repos/c/d/pulls"))

	assert.Equal(t, 2, gw.Invalidate("/repos/a/b"))

	_, _ = gw.Dispatch(context.Background(), domain.NewRequest("/repos/c/d/pulls"))
	assert.Equal(t, 3, next.calls())
}

// Cached and uncached pipelines render the same text for the same request.
func TestCachedGateway_TransparentToRendering(t *testing.T) {
	payload := domain.Map(
		domain.F("total_count", domain.Int(1)),
		domain.F("items", domain.Seq(domain.Map(domain.F("title", domain.String("x"))))),
	)
	plain := NewGitHubService(&mockGateway{value: payload}, 0)
	cached := NewGitHubService(
		NewCachedGateway(&mockGateway{value: payload}, memory.NewResponseCache(), time.Minute), 0)

	params := domain.SearchIssuesParams{Query: "x"}
	want, err := plain.SearchIssues(context.Background(), params)
	require.NoError(t, err)

	for range 2 {
		got, err := cached.SearchIssues(context.Background(), params)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
