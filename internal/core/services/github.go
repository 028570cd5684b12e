package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
	"github.com/custodia-labs/ghmcp/internal/core/ports/driven"
	"github.com/custodia-labs/ghmcp/internal/core/ports/driving"
	"github.com/custodia-labs/ghmcp/internal/logger"
	"github.com/custodia-labs/ghmcp/internal/output"
)

// Ensure GitHubService implements the interface.
var _ driving.GitHubService = (*GitHubService)(nil)

// Input bounds shared by the GitHub tools.
const (
	DefaultLimit        = 10
	MaxLimit            = 100
	MaxQueryLength      = 200
	MaxRepositoryLength = 100
	MaxPathLength       = 200
)

// BinaryPlaceholder replaces file content that is not valid UTF-8 text.
const BinaryPlaceholder = "[Binary file content not displayed]"

var languages = map[string]string{
	".py":         "Python",
	".js":         "JavaScript",
	".ts":         "TypeScript",
	".java":       "Java",
	".cpp":        "C++",
	".c":          "C",
	".go":         "Go",
	".rs":         "Rust",
	".rb":         "Ruby",
	".php":        "PHP",
	".html":       "HTML",
	".css":        "CSS",
	".json":       "JSON",
	".yml":        "YAML",
	".yaml":       "YAML",
	".md":         "Markdown",
	".txt":        "Text",
	".xml":        "XML",
	".sql":        "SQL",
	".sh":         "Shell",
	".dockerfile": "Dockerfile",
	".toml":       "TOML",
	".ini":        "INI",
}

// GitHubService runs the read-only GitHub tools through the response
// pipeline: validate, dispatch, shape, serialize, truncate.
type GitHubService struct {
	gateway driven.Gateway
	timeout time.Duration
}

// NewGitHubService creates a service over gateway. A non-positive timeout
// uses domain.DefaultTimeout.
func NewGitHubService(gateway driven.Gateway, timeout time.Duration) *GitHubService {
	if timeout <= 0 {
		timeout = domain.DefaultTimeout
	}
	return &GitHubService{gateway: gateway, timeout: timeout}
}

// SearchIssues searches issues and pull requests.
func (s *GitHubService) SearchIssues(ctx context.Context, p domain.SearchIssuesParams) (string, error) {
	const op = "searching issues"

	query, err := validateQuery(p.Query)
	if err != nil {
		return "", err
	}
	limit, err := validateLimit(p.Limit)
	if err != nil {
		return "", err
	}
	sort, err := validateEnum("sort", p.Sort, "created", "created", "updated", "comments")
	if err != nil {
		return "", err
	}
	order, err := validateEnum("order", p.Order, "desc", "asc", "desc")
	if err != nil {
		return "", err
	}

	req := s.request(domain.SearchIssuesPath,
		domain.P("q", query),
		domain.PInt("per_page", limit),
		domain.P("sort", sort),
		domain.P("order", order),
	)
	return s.run(ctx, op, req, p.Render, nil)
}

// ListPullRequests lists pull requests of a repository.
func (s *GitHubService) ListPullRequests(ctx context.Context, p domain.ListPullRequestsParams) (string, error) {
	const op = "listing pull requests"

	repo, err := validateRepository(p.Repository)
	if err != nil {
		return "", err
	}
	state, err := validateEnum("state", p.State, "open", "open", "closed", "all")
	if err != nil {
		return "", err
	}
	limit, err := validateLimit(p.Limit)
	if err != nil {
		return "", err
	}
	sort, err := validateEnum("sort", p.Sort, "created", "created", "updated", "popularity")
	if err != nil {
		return "", err
	}
	direction, err := validateEnum("direction", p.Direction, "desc", "asc", "desc")
	if err != nil {
		return "", err
	}

	req := s.request(domain.PullsPath(repo),
		domain.P("state", state),
		domain.PInt("per_page", limit),
		domain.P("sort", sort),
		domain.P("direction", direction),
	)
	return s.run(ctx, op, req, p.Render, nil)
}

// GetFileContent fetches one file and decodes its base64 content.
func (s *GitHubService) GetFileContent(ctx context.Context, p domain.GetFileContentParams) (string, error) {
	const op = "getting file content"

	repo, err := validateRepository(p.Repository)
	if err != nil {
		return "", err
	}
	filePath, err := validatePath(p.Path, true)
	if err != nil {
		return "", err
	}

	var params []domain.Param
	if ref := strings.TrimSpace(p.Ref); ref != "" {
		params = append(params, domain.P("ref", ref))
	}
	endpoint, err := domain.ContentsPath(repo, filePath)
	if err != nil {
		return "", err
	}
	req := s.request(endpoint, params...)
	return s.run(ctx, op, req, p.Render, decodeFileContent)
}

// ListRepositoryContents lists a directory of a repository.
func (s *GitHubService) ListRepositoryContents(
	ctx context.Context, p domain.ListRepositoryContentsParams,
) (string, error) {
	const op = "listing repository contents"

	repo, err := validateRepository(p.Repository)
	if err != nil {
		return "", err
	}
	dirPath, err := validatePath(p.Path, false)
	if err != nil {
		return "", err
	}

	var params []domain.Param
	if ref := strings.TrimSpace(p.Ref); ref != "" {
		params = append(params, domain.P("ref", ref))
	}
	if p.Recursive {
		params = append(params, domain.P("recursive", "true"))
	}
	endpoint, err := domain.ContentsPath(repo, dirPath)
	if err != nil {
		return "", err
	}
	req := s.request(endpoint, params...)
	return s.run(ctx, op, req, p.Render, nil)
}

// GetIssueDetails fetches one issue.
func (s *GitHubService) GetIssueDetails(ctx context.Context, p domain.GetIssueDetailsParams) (string, error) {
	const op = "getting issue details"

	repo, err := validateRepository(p.Repository)
	if err != nil {
		return "", err
	}
	if err := validateNumber("issue_number", p.IssueNumber); err != nil {
		return "", err
	}
	return s.run(ctx, op, s.request(domain.IssuePath(repo, p.IssueNumber)), p.Render, nil)
}

// GetPullRequestDetails fetches one pull request.
func (s *GitHubService) GetPullRequestDetails(
	ctx context.Context, p domain.GetPullRequestDetailsParams,
) (string, error) {
	const op = "getting pull request details"

	repo, err := validateRepository(p.Repository)
	if err != nil {
		return "", err
	}
	if err := validateNumber("pull_number", p.PullNumber); err != nil {
		return "", err
	}
	return s.run(ctx, op, s.request(domain.PullPath(repo, p.PullNumber)), p.Render, nil)
}

// SearchCode searches code, optionally scoped to one repository.
func (s *GitHubService) SearchCode(ctx context.Context, p domain.SearchCodeParams) (string, error) {
	const op = "searching code"

	query, err := validateQuery(p.Query)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(p.Repository) != "" {
		repo, err := validateRepository(p.Repository)
		if err != nil {
			return "", err
		}
		query += " repo:" + repo.String()
	}
	limit, err := validateLimit(p.Limit)
	if err != nil {
		return "", err
	}

	req := s.request(domain.SearchCodePath,
		domain.P("q", query),
		domain.PInt("per_page", limit),
	)
	return s.run(ctx, op, req, p.Render, nil)
}

// Fetch runs the pipeline for an arbitrary endpoint. Only GET is allowed.
func (s *GitHubService) Fetch(ctx context.Context, req domain.Request, opts domain.RenderOptions) (string, error) {
	const op = "fetching endpoint"

	if req.EffectiveMethod() != "GET" {
		return "", domain.InvalidArgument(
			fmt.Sprintf("Unsupported method: '%s'. Only GET is allowed.", req.Method),
			map[string]any{"method": req.Method},
		)
	}
	if !strings.HasPrefix(req.Endpoint, "/") {
		return "", domain.InvalidArgument(
			fmt.Sprintf("Invalid endpoint: '%s'. Endpoints start with '/'.", req.Endpoint),
			map[string]any{"endpoint": req.Endpoint},
		)
	}
	if req.Timeout <= 0 {
		req.Timeout = s.timeout
	}
	return s.run(ctx, op, req, opts, nil)
}

func (s *GitHubService) request(endpoint string, params ...domain.Param) domain.Request {
	req := domain.NewRequest(endpoint, params...)
	req.Timeout = s.timeout
	return req
}

// run dispatches req and renders the result. enrich, when set, rewrites the
// payload before shaping.
func (s *GitHubService) run(
	ctx context.Context,
	op string,
	req domain.Request,
	opts domain.RenderOptions,
	enrich func(domain.Value) domain.Value,
) (string, error) {
	log := logger.L().With(zap.String("op", op), zap.String("endpoint", req.Endpoint))

	v, err := s.gateway.Dispatch(ctx, req)
	if err != nil {
		derr := domain.AsError(err, op)
		log.Debug("tool call failed", zap.String("kind", string(derr.Kind)), zap.Int("code", derr.Code))
		if derr.Kind == domain.KindInternal {
			log.Warn("unexpected gateway failure", zap.Error(err))
		}
		return "", derr
	}

	if enrich != nil {
		v = enrich(v)
	}

	out, err := output.Render(v, opts)
	if err != nil {
		log.Warn("render failed", zap.Error(err))
		return "", domain.AsError(err, op)
	}
	return out, nil
}

func validateQuery(q string) (string, error) {
	q = strings.TrimSpace(q)
	n := utf8.RuneCountInString(q)
	if n == 0 || n > MaxQueryLength {
		return "", domain.InvalidArgument(
			fmt.Sprintf("Query must be between 1 and %d characters.", MaxQueryLength),
			map[string]any{"query_length": n},
		)
	}
	return q, nil
}

func validateLimit(limit int) (int, error) {
	if limit == 0 {
		return DefaultLimit, nil
	}
	if limit < 1 || limit > MaxLimit {
		return 0, domain.InvalidArgument(
			fmt.Sprintf("Limit must be between 1 and %d.", MaxLimit),
			map[string]any{"limit": limit},
		)
	}
	return limit, nil
}

// validateEnum returns def for an empty value and rejects anything outside
// allowed.
func validateEnum(name, value, def string, allowed ...string) (string, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return def, nil
	}
	for _, a := range allowed {
		if value == a {
			return value, nil
		}
	}
	return "", domain.InvalidArgument(
		fmt.Sprintf("Invalid %s: '%s'. Expected one of: %s.", name, value, strings.Join(allowed, ", ")),
		map[string]any{name: value},
	)
}

func validateNumber(name string, n int) error {
	if n < 1 {
		return domain.InvalidArgument(
			fmt.Sprintf("%s must be a positive integer.", name),
			map[string]any{name: n},
		)
	}
	return nil
}

func validateRepository(s string) (domain.Repository, error) {
	s = strings.TrimSpace(s)
	if n := utf8.RuneCountInString(s); n == 0 || n > MaxRepositoryLength {
		return domain.Repository{}, domain.InvalidArgument(
			fmt.Sprintf("Repository must be between 1 and %d characters.", MaxRepositoryLength),
			map[string]any{"repository": s},
		).WithSuggestion("Use the format 'owner/repo' (e.g., 'facebook/react').")
	}
	return domain.ParseRepository(s)
}

func validatePath(p string, required bool) (string, error) {
	p = strings.TrimSpace(p)
	n := utf8.RuneCountInString(p)
	if (required && n == 0) || n > MaxPathLength {
		lower := 0
		if required {
			lower = 1
		}
		return "", domain.InvalidArgument(
			fmt.Sprintf("Path must be between %d and %d characters.", lower, MaxPathLength),
			map[string]any{"path": p},
		)
	}
	return p, nil
}

// decodeFileContent adds decoded_content and language to a contents
// response carrying base64 content. Other payloads pass through.
func decodeFileContent(v domain.Value) domain.Value {
	if !v.IsMap() {
		return v
	}
	raw, ok := v.Get("content")
	if !ok || raw.Kind() != domain.KindString {
		return v
	}
	if enc, ok := v.Get("encoding"); ok && enc.Str() != "" && enc.Str() != "base64" {
		return v
	}

	name := ""
	if n, ok := v.Get("name"); ok {
		name = n.Str()
	} else if pth, ok := v.Get("path"); ok {
		name = path.Base(pth.Str())
	}

	cleaned := strings.NewReplacer("\n", "", "\r", "").Replace(raw.Str())
	decoded, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil || !utf8.Valid(decoded) {
		return v.With("decoded_content", domain.String(BinaryPlaceholder)).
			With("is_binary", domain.Bool(true))
	}
	return v.With("decoded_content", domain.String(string(decoded))).
		With("language", domain.String(DetectLanguage(name)))
}

// DetectLanguage maps a file name to a language label by extension.
func DetectLanguage(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" && strings.EqualFold(name, "Dockerfile") {
		return "Dockerfile"
	}
	if lang, ok := languages[ext]; ok {
		return lang
	}
	return "Unknown"
}
