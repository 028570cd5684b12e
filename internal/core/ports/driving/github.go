package driving

import (
	"context"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
)

// GitHubService exposes the read-only GitHub tools. Every method returns
// either the rendered payload or a *domain.Error.
type GitHubService interface {
	SearchIssues(ctx context.Context, p domain.SearchIssuesParams) (string, error)
	ListPullRequests(ctx context.Context, p domain.ListPullRequestsParams) (string, error)
	GetFileContent(ctx context.Context, p domain.GetFileContentParams) (string, error)
	ListRepositoryContents(ctx context.Context, p domain.ListRepositoryContentsParams) (string, error)
	GetIssueDetails(ctx context.Context, p domain.GetIssueDetailsParams) (string, error)
	GetPullRequestDetails(ctx context.Context, p domain.GetPullRequestDetailsParams) (string, error)
	SearchCode(ctx context.Context, p domain.SearchCodeParams) (string, error)

	// Fetch runs the pipeline for an arbitrary read-only endpoint.
	Fetch(ctx context.Context, req domain.Request, opts domain.RenderOptions) (string, error)
}
