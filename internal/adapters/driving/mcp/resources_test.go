package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
)

func TestExtractRepository(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want domain.Repository
		ok   bool
	}{
		{
			name: "valid repository URI",
			uri:  "ghmcp://repos/octocat/hello-world",
			want: domain.Repository{Owner: "octocat", Name: "hello-world"},
			ok:   true,
		},
		{name: "invalid prefix", uri: "file://repos/octocat/hello-world"},
		{name: "missing repo", uri: "ghmcp://repos/octocat"},
		{name: "extra segment", uri: "ghmcp://repos/octocat/hello/world"},
		{name: "empty URI", uri: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractRepository(tt.uri)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleErrorsResource(t *testing.T) {
	server := newTestServer(t, &mockGitHubService{}, nil)

	result, err := server.handleErrorsResource(context.Background(), makeReadResourceRequest("ghmcp://errors"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)

	var kinds []map[string]string
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &kinds))
	require.Len(t, kinds, len(domain.Kinds))
	assert.Equal(t, "invalid_argument", kinds[0]["kind"])
	assert.Equal(t, domain.Suggestion(domain.KindInvalidArgument), kinds[0]["suggestion"])
}

func TestServer_handleRateLimitResource(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches rate limit in detail", func(t *testing.T) {
		gh := &mockGitHubService{out: `{"rate": {}}`}
		server := newTestServer(t, gh, nil)

		result, err := server.handleRateLimitResource(ctx, makeReadResourceRequest("ghmcp://rate_limit"))

		require.NoError(t, err)
		assert.Equal(t, `{"rate": {}}`, result.Contents[0].Text)
		require.Len(t, gh.fetched, 1)
		assert.Equal(t, domain.RateLimitPath, gh.fetched[0].Endpoint)
		assert.Equal(t, domain.DetailDetailed, gh.fetchedOpts[0].Detail)
	})

	t.Run("returns error on fetch failure", func(t *testing.T) {
		gh := &mockGitHubService{err: errors.New("network down")}
		server := newTestServer(t, gh, nil)

		_, err := server.handleRateLimitResource(ctx, makeReadResourceRequest("ghmcp://rate_limit"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading rate limit")
	})
}

func TestServer_handleRepositoryResource(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches repository", func(t *testing.T) {
		gh := &mockGitHubService{out: `{"full_name": "o/r"}`}
		server := newTestServer(t, gh, nil)

		result, err := server.handleRepositoryResource(ctx, makeReadResourceRequest("ghmcp://repos/o/r"))

		require.NoError(t, err)
		assert.Equal(t, `{"full_name": "o/r"}`, result.Contents[0].Text)
		assert.Equal(t, "/repos/o/r", gh.fetched[0].Endpoint)
		assert.Equal(t, domain.DetailConcise, gh.fetchedOpts[0].Detail)
	})

	t.Run("invalid URI returns not found", func(t *testing.T) {
		gh := &mockGitHubService{}
		server := newTestServer(t, gh, nil)

		_, err := server.handleRepositoryResource(ctx, makeReadResourceRequest("ghmcp://repos/o"))

		require.Error(t, err)
		assert.Empty(t, gh.fetched)
	})

	t.Run("upstream not found returns not found", func(t *testing.T) {
		gh := &mockGitHubService{err: domain.NotFound("Not Found", nil)}
		server := newTestServer(t, gh, nil)

		_, err := server.handleRepositoryResource(ctx, makeReadResourceRequest("ghmcp://repos/o/r"))

		require.Error(t, err)
		assert.NotContains(t, err.Error(), "reading repository")
	})

	t.Run("other failures are wrapped", func(t *testing.T) {
		gh := &mockGitHubService{err: domain.Internal("boom", nil)}
		server := newTestServer(t, gh, nil)

		_, err := server.handleRepositoryResource(ctx, makeReadResourceRequest("ghmcp://repos/o/r"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading repository o/r")
	})
}
