package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
)

func TestArticlesReadCmd(t *testing.T) {
	svcs := setupTestServices(t)
	svcs.articles.out = `{"total_count": 2}`

	stdout, _, err := execute(t, "articles", "read", "https://a", "https://b",
		"-o", "out", "--account", "acc", "-c", "2")

	require.NoError(t, err)
	assert.Contains(t, stdout, `{"total_count": 2}`)
	require.NotNil(t, svcs.articles.read)
	assert.Equal(t, []string{"https://a", "https://b"}, svcs.articles.read.URLs)
	assert.Equal(t, "out", svcs.articles.read.OutputDir)
	assert.Equal(t, "acc", svcs.articles.read.AccountName)
	assert.Equal(t, 2, svcs.articles.read.Concurrency)
	assert.Equal(t, domain.DetailDetailed, svcs.articles.read.Render.Detail)
}

func TestArticlesReadCmd_RequiresURL(t *testing.T) {
	setupTestServices(t)

	_, _, err := execute(t, "articles", "read")

	require.Error(t, err)
}

func TestArticlesSummarizeCmd(t *testing.T) {
	svcs := setupTestServices(t)
	svcs.articles.out = `{"saved": true}`

	_, _, err := execute(t, "articles", "summarize", "saved", "--pattern", "**/*.md", "--language", "en")

	require.NoError(t, err)
	require.NotNil(t, svcs.articles.summarize)
	assert.Equal(t, "saved", svcs.articles.summarize.InputDir)
	assert.Equal(t, "**/*.md", svcs.articles.summarize.Pattern)
	assert.Equal(t, "en", svcs.articles.summarize.Language)
}

func TestArticlesSummarizeCmd_DefaultDir(t *testing.T) {
	svcs := setupTestServices(t)

	_, _, err := execute(t, "articles", "summarize")

	require.NoError(t, err)
	assert.Empty(t, svcs.articles.summarize.InputDir)
}

func TestArticlesCmd_ServiceNotConfigured(t *testing.T) {
	setupTestServices(t)
	articleService = nil

	_, _, err := execute(t, "articles", "summarize")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "article service not configured")
}

func TestArticlesCmd_ReportsError(t *testing.T) {
	svcs := setupTestServices(t)
	svcs.articles.err = domain.NotFound("Directory not found: x", nil).
		WithSuggestion("Check the input directory path, or run read_articles first.")

	_, stderr, err := execute(t, "articles", "summarize", "x")

	require.Error(t, err)
	assert.Contains(t, stderr, "run read_articles first")

	svcs.articles.err = errors.New("disk on fire")
	_, _, err = execute(t, "articles", "summarize", "x")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInternal))
	assert.NotContains(t, err.Error(), "disk on fire")
}
