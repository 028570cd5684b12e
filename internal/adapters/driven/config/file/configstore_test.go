package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(filepath.Join(t.TempDir(), "ghmcp", "config.toml"))
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_MissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	store, err := NewConfigStore(path)

	require.NoError(t, err)
	assert.Equal(t, path, store.Path())
	assert.Empty(t, store.Keys())

	_, err = os.Stat(filepath.Dir(path))
	assert.True(t, os.IsNotExist(err), "constructor must not create directories")
}

func TestNewConfigStore_DefaultPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".ghmcp", "config.toml"), path)
}

func TestConfigStore_ReadsTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[github]
api_url = "https://ghe.example.com/api/v3"
timeout = "45s"
requests_per_second = 2

[cache]
enabled = false
ttl = 120

[articles]
concurrency = 8
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	store, err := NewConfigStore(path)
	require.NoError(t, err)

	assert.Equal(t, "https://ghe.example.com/api/v3", store.GetString("github.api_url"))
	assert.Equal(t, 45*time.Second, store.GetDuration("github.timeout"))
	assert.InDelta(t, 2.0, store.GetFloat("github.requests_per_second"), 0.0001)
	assert.False(t, store.GetBool("cache.enabled"))
	_, present := store.Get("cache.enabled")
	assert.True(t, present)
	assert.Equal(t, 120*time.Second, store.GetDuration("cache.ttl"))
	assert.Equal(t, 8, store.GetInt("articles.concurrency"))
}

func TestConfigStore_TypedGettersRejectWrongTypes(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("s", "hello"))
	require.NoError(t, store.Set("n", 42))

	assert.Equal(t, "", store.GetString("n"))
	assert.Equal(t, 0, store.GetInt("s"))
	assert.False(t, store.GetBool("s"))
	assert.Zero(t, store.GetFloat("s"))
	assert.Zero(t, store.GetDuration("s"))
	assert.Equal(t, "", store.GetString("missing"))
}

func TestConfigStore_PersistsAsTables(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("cache.ttl", "10m"))
	require.NoError(t, store.Set("github.api_url", "https://api.github.com/"))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[cache]")
	assert.Contains(t, string(raw), "[github]")

	reloaded, err := NewConfigStore(store.Path())
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, reloaded.GetDuration("cache.ttl"))
	assert.Equal(t, []string{"cache.ttl", "github.api_url"}, reloaded.Keys())
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("github.token", "ghp_secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestConfigStore_LoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("this is = = not toml"), 0o600))

	_, err := NewConfigStore(path)
	assert.Error(t, err)
}

func TestConfigStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	store, err := NewConfigStore(path)
	require.NoError(t, err)
	assert.Empty(t, store.Keys())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Set("cache.ttl", i)
			_ = store.GetInt("cache.ttl")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("cache.ttl")
	assert.True(t, ok)
}
