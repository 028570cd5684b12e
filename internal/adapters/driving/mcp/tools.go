package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
	"github.com/custodia-labs/ghmcp/internal/logger"
)

const (
	formatDescription = "output format: json (default) or markdown"
	detailDescription = "detail level: concise (default) keeps key fields only, detailed returns everything"
)

// SearchIssuesInput is the input schema for the search_issues tool.
type SearchIssuesInput struct {
	Query  string `json:"query" jsonschema:"GitHub issue search query, e.g. 'is:open label:bug repo:owner/name' (1-200 characters)"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of results, 1-100 (default 10)"`
	Sort   string `json:"sort,omitempty" jsonschema:"sort field: created (default), updated or comments"`
	Order  string `json:"order,omitempty" jsonschema:"sort order: desc (default) or asc"`
	Format string `json:"format,omitempty" jsonschema:"output format: json (default) or markdown"`
	Detail string `json:"detail,omitempty" jsonschema:"detail level: concise (default) or detailed"`
}

// ListPullRequestsInput is the input schema for the list_pull_requests tool.
type ListPullRequestsInput struct {
	Repository string `json:"repository" jsonschema:"repository in owner/repo form"`
	State      string `json:"state,omitempty" jsonschema:"pull request state: open (default), closed or all"`
	Limit      int    `json:"limit,omitempty" jsonschema:"maximum number of results, 1-100 (default 10)"`
	Sort       string `json:"sort,omitempty" jsonschema:"sort field: created (default), updated or popularity"`
	Direction  string `json:"direction,omitempty" jsonschema:"sort direction: desc (default) or asc"`
	Format     string `json:"format,omitempty" jsonschema:"output format: json (default) or markdown"`
	Detail     string `json:"detail,omitempty" jsonschema:"detail level: concise (default) or detailed"`
}

// GetFileContentInput is the input schema for the get_file_content tool.
type GetFileContentInput struct {
	Repository string `json:"repository" jsonschema:"repository in owner/repo form"`
	Path       string `json:"path" jsonschema:"file path inside the repository"`
	Ref        string `json:"ref,omitempty" jsonschema:"branch, tag or commit (default branch when empty)"`
	Format     string `json:"format,omitempty" jsonschema:"output format: json (default) or markdown"`
	Detail     string `json:"detail,omitempty" jsonschema:"detail level: concise (default) or detailed"`
}

// ListRepositoryContentsInput is the input schema for the
// list_repository_contents tool.
type ListRepositoryContentsInput struct {
	Repository string `json:"repository" jsonschema:"repository in owner/repo form"`
	Path       string `json:"path,omitempty" jsonschema:"directory path (repository root when empty)"`
	Ref        string `json:"ref,omitempty" jsonschema:"branch, tag or commit (default branch when empty)"`
	Recursive  bool   `json:"recursive,omitempty" jsonschema:"ask for a recursive listing"`
	Format     string `json:"format,omitempty" jsonschema:"output format: json (default) or markdown"`
	Detail     string `json:"detail,omitempty" jsonschema:"detail level: concise (default) or detailed"`
}

// GetIssueDetailsInput is the input schema for the get_issue_details tool.
type GetIssueDetailsInput struct {
	Repository  string `json:"repository" jsonschema:"repository in owner/repo form"`
	IssueNumber int    `json:"issue_number" jsonschema:"issue number (positive)"`
	Format      string `json:"format,omitempty" jsonschema:"output format: json (default) or markdown"`
	Detail      string `json:"detail,omitempty" jsonschema:"detail level: concise (default) or detailed"`
}

// GetPullRequestDetailsInput is the input schema for the
// get_pull_request_details tool.
type GetPullRequestDetailsInput struct {
	Repository string `json:"repository" jsonschema:"repository in owner/repo form"`
	PullNumber int    `json:"pull_number" jsonschema:"pull request number (positive)"`
	Format     string `json:"format,omitempty" jsonschema:"output format: json (default) or markdown"`
	Detail     string `json:"detail,omitempty" jsonschema:"detail level: concise (default) or detailed"`
}

// SearchCodeInput is the input schema for the search_code tool.
type SearchCodeInput struct {
	Query      string `json:"query" jsonschema:"code search query (1-200 characters)"`
	Repository string `json:"repository,omitempty" jsonschema:"restrict the search to this owner/repo"`
	Limit      int    `json:"limit,omitempty" jsonschema:"maximum number of results, 1-100 (default 10)"`
	Format     string `json:"format,omitempty" jsonschema:"output format: json (default) or markdown"`
	Detail     string `json:"detail,omitempty" jsonschema:"detail level: concise (default) or detailed"`
}

// ReadArticlesInput is the input schema for the read_articles tool.
type ReadArticlesInput struct {
	URLs        []string `json:"urls" jsonschema:"article URLs to fetch (at least one)"`
	OutputDir   string   `json:"output_dir,omitempty" jsonschema:"directory for the markdown files (configured default when empty)"`
	AccountName string   `json:"account_name,omitempty" jsonschema:"publishing account recorded in the front matter"`
	Language    string   `json:"language,omitempty" jsonschema:"language tag recorded in the front matter (default zh)"`
	Concurrency int      `json:"concurrency,omitempty" jsonschema:"parallel downloads, 1-16 (configured default when zero)"`
	Format      string   `json:"format,omitempty" jsonschema:"output format: json (default) or markdown"`
	Detail      string   `json:"detail,omitempty" jsonschema:"detail level: concise (default) or detailed"`
}

// SummarizeArticlesInput is the input schema for the summarize_articles tool.
type SummarizeArticlesInput struct {
	InputDir   string `json:"input_dir,omitempty" jsonschema:"directory of saved articles (configured default when empty)"`
	Pattern    string `json:"pattern,omitempty" jsonschema:"glob selecting files, matched against names and relative paths (default *.md)"`
	OutputFile string `json:"output_file,omitempty" jsonschema:"summary file path (default input_dir/SUMMARY.md)"`
	Language   string `json:"language,omitempty" jsonschema:"summary labels: zh (default) or en"`
	Format     string `json:"format,omitempty" jsonschema:"output format: json (default) or markdown"`
	Detail     string `json:"detail,omitempty" jsonschema:"detail level: concise (default) or detailed"`
}

// ptr is a helper to create a pointer to a value.
func ptr[T any](v T) *T {
	return &v
}

// githubAnnotations marks a tool as a read-only query of GitHub.
func githubAnnotations(title string) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		Title:          title,
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  ptr(true),
	}
}

// describe appends the shared format and detail notes to a tool summary.
func describe(summary string) string {
	return summary + " Format: " + formatDescription + ". Detail: " + detailDescription + "."
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_issues",
		Description: describe("Search GitHub issues and pull requests."),
		Annotations: githubAnnotations("Search issues"),
	}, s.handleSearchIssues)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_pull_requests",
		Description: describe("List pull requests of a repository."),
		Annotations: githubAnnotations("List pull requests"),
	}, s.handleListPullRequests)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "get_file_content",
		Description: describe("Get a file from a repository. Text content is decoded into decoded_content " +
			"with a language label; binary files are flagged with is_binary."),
		Annotations: githubAnnotations("Get file content"),
	}, s.handleGetFileContent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_repository_contents",
		Description: describe("List files and directories of a repository path."),
		Annotations: githubAnnotations("List repository contents"),
	}, s.handleListRepositoryContents)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_issue_details",
		Description: describe("Get one issue of a repository."),
		Annotations: githubAnnotations("Get issue details"),
	}, s.handleGetIssueDetails)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_pull_request_details",
		Description: describe("Get one pull request of a repository."),
		Annotations: githubAnnotations("Get pull request details"),
	}, s.handleGetPullRequestDetails)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_code",
		Description: describe("Search code on GitHub, optionally within one repository."),
		Annotations: githubAnnotations("Search code"),
	}, s.handleSearchCode)

	if s.ports.Articles == nil {
		return
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "read_articles",
		Description: describe("Fetch web articles, convert them to markdown with YAML front matter " +
			"and save them to a directory. Failed URLs are listed, not fatal."),
		Annotations: &mcp.ToolAnnotations{
			Title:           "Read articles",
			DestructiveHint: ptr(false),
			IdempotentHint:  true,
			OpenWorldHint:   ptr(true),
		},
	}, s.handleReadArticles)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "summarize_articles",
		Description: describe("Index saved markdown articles by their front matter into one summary file."),
		Annotations: &mcp.ToolAnnotations{
			Title:           "Summarize articles",
			DestructiveHint: ptr(false),
			IdempotentHint:  true,
			OpenWorldHint:   ptr(false),
		},
	}, s.handleSummarizeArticles)
}

// respond converts a service outcome into a tool result.
func respond(tool string, out string, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		logger.Debug("tool %s failed: %v", tool, err)
		return errorResult(err, "running "+tool), nil, nil
	}
	return textResult(out), nil, nil
}

func (s *Server) handleSearchIssues(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchIssuesInput,
) (*mcp.CallToolResult, any, error) {
	render, err := domain.ParseRenderOptions(input.Format, input.Detail)
	if err != nil {
		return respond("search_issues", "", err)
	}
	out, err := s.ports.GitHub.SearchIssues(ctx, domain.SearchIssuesParams{
		Query:  input.Query,
		Limit:  input.Limit,
		Sort:   input.Sort,
		Order:  input.Order,
		Render: render,
	})
	return respond("search_issues", out, err)
}

func (s *Server) handleListPullRequests(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListPullRequestsInput,
) (*mcp.CallToolResult, any, error) {
	render, err := domain.ParseRenderOptions(input.Format, input.Detail)
	if err != nil {
		return respond("list_pull_requests", "", err)
	}
	out, err := s.ports.GitHub.ListPullRequests(ctx, domain.ListPullRequestsParams{
		Repository: input.Repository,
		State:      input.State,
		Limit:      input.Limit,
		Sort:       input.Sort,
		Direction:  input.Direction,
		Render:     render,
	})
	return respond("list_pull_requests", out, err)
}

func (s *Server) handleGetFileContent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetFileContentInput,
) (*mcp.CallToolResult, any, error) {
	render, err := domain.ParseRenderOptions(input.Format, input.Detail)
	if err != nil {
		return respond("get_file_content", "", err)
	}
	out, err := s.ports.GitHub.GetFileContent(ctx, domain.GetFileContentParams{
		Repository: input.Repository,
		Path:       input.Path,
		Ref:        input.Ref,
		Render:     render,
	})
	return respond("get_file_content", out, err)
}

func (s *Server) handleListRepositoryContents(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListRepositoryContentsInput,
) (*mcp.CallToolResult, any, error) {
	render, err := domain.ParseRenderOptions(input.Format, input.Detail)
	if err != nil {
		return respond("list_repository_contents", "", err)
	}
	out, err := s.ports.GitHub.ListRepositoryContents(ctx, domain.ListRepositoryContentsParams{
		Repository: input.Repository,
		Path:       input.Path,
		Ref:        input.Ref,
		Recursive:  input.Recursive,
		Render:     render,
	})
	return respond("list_repository_contents", out, err)
}

func (s *Server) handleGetIssueDetails(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetIssueDetailsInput,
) (*mcp.CallToolResult, any, error) {
	render, err := domain.ParseRenderOptions(input.Format, input.Detail)
	if err != nil {
		return respond("get_issue_details", "", err)
	}
	out, err := s.ports.GitHub.GetIssueDetails(ctx, domain.GetIssueDetailsParams{
		Repository:  input.Repository,
		IssueNumber: input.IssueNumber,
		Render:      render,
	})
	return respond("get_issue_details", out, err)
}

func (s *Server) handleGetPullRequestDetails(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetPullRequestDetailsInput,
) (*mcp.CallToolResult, any, error) {
	render, err := domain.ParseRenderOptions(input.Format, input.Detail)
	if err != nil {
		return respond("get_pull_request_details", "", err)
	}
	out, err := s.ports.GitHub.GetPullRequestDetails(ctx, domain.GetPullRequestDetailsParams{
		Repository: input.Repository,
		PullNumber: input.PullNumber,
		Render:     render,
	})
	return respond("get_pull_request_details", out, err)
}

func (s *Server) handleSearchCode(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchCodeInput,
) (*mcp.CallToolResult, any, error) {
	render, err := domain.ParseRenderOptions(input.Format, input.Detail)
	if err != nil {
		return respond("search_code", "", err)
	}
	out, err := s.ports.GitHub.SearchCode(ctx, domain.SearchCodeParams{
		Query:      input.Query,
		Repository: input.Repository,
		Limit:      input.Limit,
		Render:     render,
	})
	return respond("search_code", out, err)
}

func (s *Server) handleReadArticles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReadArticlesInput,
) (*mcp.CallToolResult, any, error) {
	render, err := domain.ParseRenderOptions(input.Format, input.Detail)
	if err != nil {
		return respond("read_articles", "", err)
	}
	out, err := s.ports.Articles.ReadArticles(ctx, domain.ReadArticlesParams{
		URLs:        input.URLs,
		OutputDir:   input.OutputDir,
		AccountName: input.AccountName,
		Language:    input.Language,
		Concurrency: input.Concurrency,
		Render:      render,
	})
	return respond("read_articles", out, err)
}

func (s *Server) handleSummarizeArticles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SummarizeArticlesInput,
) (*mcp.CallToolResult, any, error) {
	render, err := domain.ParseRenderOptions(input.Format, input.Detail)
	if err != nil {
		return respond("summarize_articles", "", err)
	}
	out, err := s.ports.Articles.SummarizeArticles(ctx, domain.SummarizeArticlesParams{
		InputDir:   input.InputDir,
		Pattern:    input.Pattern,
		OutputFile: input.OutputFile,
		Language:   input.Language,
		Render:     render,
	})
	return respond("summarize_articles", out, err)
}
