package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetVerbose(t *testing.T) {
	defer func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	}()

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	}()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("dispatch %s", "/search/issues")
	assert.Contains(t, buf.String(), "dispatch /search/issues")
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	defer SetOutput(os.Stderr)

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("hidden")
	Section("Hidden")
	assert.Empty(t, buf.String())
}

func TestWarn_AlwaysEmitted(t *testing.T) {
	defer SetOutput(os.Stderr)

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Warn("rate limit getting low: %d remaining", 3)
	assert.Contains(t, buf.String(), "rate limit getting low: 3 remaining")
	assert.Contains(t, buf.String(), "WARN")
}

func TestSetLevel(t *testing.T) {
	defer func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	}()

	var buf bytes.Buffer
	SetOutput(&buf)

	require.NoError(t, SetLevel("error"))
	Warn("suppressed")
	assert.Empty(t, buf.String())

	require.Error(t, SetLevel("chatty"))
}
