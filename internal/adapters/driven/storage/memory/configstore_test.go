package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("github.api_url", "https://api.github.com/"))

	val, ok := store.Get("github.api_url")
	assert.True(t, ok)
	assert.Equal(t, "https://api.github.com/", val)
	assert.Equal(t, "https://api.github.com/", store.GetString("github.api_url"))
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStoreFrom(map[string]any{
		"articles.concurrency":       int64(8),
		"github.requests_per_second": 1.5,
		"cache.enabled":              true,
		"cache.ttl":                  "2m",
		"github.timeout":             45,
	})

	assert.Equal(t, 8, store.GetInt("articles.concurrency"))
	assert.InDelta(t, 1.5, store.GetFloat("github.requests_per_second"), 0.0001)
	assert.True(t, store.GetBool("cache.enabled"))
	assert.Equal(t, 2*time.Minute, store.GetDuration("cache.ttl"))
	assert.Equal(t, 45*time.Second, store.GetDuration("github.timeout"))
}

func TestConfigStore_MissingAndWrongTypes(t *testing.T) {
	store := NewConfigStoreFrom(map[string]any{"s": "text"})

	_, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, "", store.GetString("missing"))
	assert.Equal(t, 0, store.GetInt("s"))
	assert.Zero(t, store.GetFloat("s"))
	assert.False(t, store.GetBool("s"))
	assert.Zero(t, store.GetDuration("s"))
}

func TestConfigStore_NoOps(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Keys(t *testing.T) {
	store := NewConfigStoreFrom(map[string]any{"b": 1, "a": 2})
	assert.Equal(t, []string{"a", "b"}, store.Keys())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = store.Set("cache.ttl", i)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("cache.ttl")
		}()
	}
	wg.Wait()

	_, ok := store.Get("cache.ttl")
	assert.True(t, ok)
}
