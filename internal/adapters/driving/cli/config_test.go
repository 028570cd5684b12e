package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigShowCmd(t *testing.T) {
	svcs := setupTestServices(t)
	svcs.settings.settings.GitHub.Token = "ghp_1234567890abcdef"
	svcs.settings.settings.Cache.TTL = 2 * time.Minute

	stdout, _, err := execute(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, stdout, "ghp_...cdef")
	assert.NotContains(t, stdout, "1234567890")
	assert.Contains(t, stdout, "2m0s")
	assert.Contains(t, stdout, "https://api.github.com/")
	assert.NotContains(t, stdout, "anonymous")
}

func TestConfigCmd_DefaultsToShow(t *testing.T) {
	setupTestServices(t)

	stdout, _, err := execute(t, "config")

	require.NoError(t, err)
	assert.Contains(t, stdout, "(not set)")
	assert.Contains(t, stdout, "Requests are anonymous.")
}

func TestConfigShowCmd_InvalidSettings(t *testing.T) {
	svcs := setupTestServices(t)
	svcs.settings.getErr = errors.New("invalid settings: log_level")

	_, _, err := execute(t, "config", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestConfigSetCmd(t *testing.T) {
	svcs := setupTestServices(t)

	stdout, _, err := execute(t, "config", "set", "cache.ttl", "60")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Set cache.ttl")
	assert.Equal(t, "60", svcs.settings.set["cache.ttl"])

	_, _, err = execute(t, "config", "set", "unknown", "x")
	require.Error(t, err)

	_, _, err = execute(t, "config", "set", "cache.ttl")
	require.Error(t, err)
}

func TestConfigKeysCmd(t *testing.T) {
	setupTestServices(t)

	stdout, _, err := execute(t, "config", "keys")

	require.NoError(t, err)
	assert.Equal(t, "cache.ttl\ngithub.token\n", stdout)
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "****", maskToken("short"))
	assert.Equal(t, "abcd...wxyz", maskToken("abcdefghijklmnopqrstuvwxyz"))
}
