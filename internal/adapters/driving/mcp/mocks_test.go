package mcp

import (
	"context"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
)

// mockGitHubService is a mock implementation of driving.GitHubService.
// It records the last params it received.
type mockGitHubService struct {
	out  string
	err  error
	last any

	fetched     []domain.Request
	fetchedOpts []domain.RenderOptions
}

func (m *mockGitHubService) SearchIssues(_ context.Context, p domain.SearchIssuesParams) (string, error) {
	m.last = p
	return m.out, m.err
}

func (m *mockGitHubService) ListPullRequests(_ context.Context, p domain.ListPullRequestsParams) (string, error) {
	m.last = p
	return m.out, m.err
}

func (m *mockGitHubService) GetFileContent(_ context.Context, p domain.GetFileContentParams) (string, error) {
	m.last = p
	return m.out, m.err
}

func (m *mockGitHubService) ListRepositoryContents(
	_ context.Context,
	p domain.ListRepositoryContentsParams,
) (string, error) {
	m.last = p
	return m.out, m.err
}

func (m *mockGitHubService) GetIssueDetails(_ context.Context, p domain.GetIssueDetailsParams) (string, error) {
	m.last = p
	return m.out, m.err
}

func (m *mockGitHubService) GetPullRequestDetails(
	_ context.Context,
	p domain.GetPullRequestDetailsParams,
) (string, error) {
	m.last = p
	return m.out, m.err
}

func (m *mockGitHubService) SearchCode(_ context.Context, p domain.SearchCodeParams) (string, error) {
	m.last = p
	return m.out, m.err
}

func (m *mockGitHubService) Fetch(
	_ context.Context,
	req domain.Request,
	opts domain.RenderOptions,
) (string, error) {
	m.fetched = append(m.fetched, req)
	m.fetchedOpts = append(m.fetchedOpts, opts)
	return m.out, m.err
}

// mockArticleService is a mock implementation of driving.ArticleService.
type mockArticleService struct {
	out  string
	err  error
	last any
}

func (m *mockArticleService) ReadArticles(_ context.Context, p domain.ReadArticlesParams) (string, error) {
	m.last = p
	return m.out, m.err
}

func (m *mockArticleService) SummarizeArticles(
	_ context.Context,
	p domain.SummarizeArticlesParams,
) (string, error) {
	m.last = p
	return m.out, m.err
}
