package domain

import (
	"errors"
	"strconv"
)

// Parameters accepted by the GitHub tool operations. Validation happens in
// the service layer so that rejections never cost upstream quota.

// SearchIssuesParams are the inputs of search_issues.
type SearchIssuesParams struct {
	Query  string
	Limit  int
	Sort   string
	Order  string
	Render RenderOptions
}

// ListPullRequestsParams are the inputs of list_pull_requests.
type ListPullRequestsParams struct {
	Repository string
	State      string
	Limit      int
	Sort       string
	Direction  string
	Render     RenderOptions
}

// GetFileContentParams are the inputs of get_file_content.
type GetFileContentParams struct {
	Repository string
	Path       string
	Ref        string
	Render     RenderOptions
}

// ListRepositoryContentsParams are the inputs of list_repository_contents.
type ListRepositoryContentsParams struct {
	Repository string
	Path       string
	Ref        string
	Recursive  bool
	Render     RenderOptions
}

// GetIssueDetailsParams are the inputs of get_issue_details.
type GetIssueDetailsParams struct {
	Repository  string
	IssueNumber int
	Render      RenderOptions
}

// GetPullRequestDetailsParams are the inputs of get_pull_request_details.
type GetPullRequestDetailsParams struct {
	Repository string
	PullNumber int
	Render     RenderOptions
}

// SearchCodeParams are the inputs of search_code.
type SearchCodeParams struct {
	Query      string
	Repository string
	Limit      int
	Render     RenderOptions
}

// ReadArticlesParams are the inputs of read_articles.
type ReadArticlesParams struct {
	URLs        []string
	OutputDir   string
	AccountName string
	Language    string
	Concurrency int
	Render      RenderOptions
}

// SummarizeArticlesParams are the inputs of summarize_articles.
type SummarizeArticlesParams struct {
	InputDir   string
	Pattern    string
	OutputFile string
	Language   string
	Render     RenderOptions
}

// Article is the extracted form of one fetched page.
type Article struct {
	Title       string
	ContentHTML string
}

// ArticleFrontMatter is the YAML header written above each saved article.
type ArticleFrontMatter struct {
	Title     string `yaml:"title"`
	SourceURL string `yaml:"source_url"`
	Account   string `yaml:"account"`
	Published string `yaml:"published"`
	Language  string `yaml:"language"`
}

// Article fetch failures.
var (
	ErrInvalidArticleURL = errors.New("invalid article url")
	ErrArticleNotText    = errors.New("page content is not valid UTF-8")
)

// FetchStatusError reports a page that answered with a non-2xx status.
type FetchStatusError struct {
	StatusCode int
}

func (e *FetchStatusError) Error() string {
	return "unexpected status " + strconv.Itoa(e.StatusCode)
}
