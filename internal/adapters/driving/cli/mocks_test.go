package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
)

// mockGitHubService is a mock implementation of driving.GitHubService.
// Only Fetch is exercised by the commands.
type mockGitHubService struct {
	out string
	err error

	requests []domain.Request
	opts     []domain.RenderOptions
}

func (m *mockGitHubService) SearchIssues(context.Context, domain.SearchIssuesParams) (string, error) {
	return m.out, m.err
}

func (m *mockGitHubService) ListPullRequests(context.Context, domain.ListPullRequestsParams) (string, error) {
	return m.out, m.err
}

func (m *mockGitHubService) GetFileContent(context.Context, domain.GetFileContentParams) (string, error) {
	return m.out, m.err
}

func (m *mockGitHubService) ListRepositoryContents(
	context.Context,
	domain.ListRepositoryContentsParams,
) (string, error) {
	return m.out, m.err
}

func (m *mockGitHubService) GetIssueDetails(context.Context, domain.GetIssueDetailsParams) (string, error) {
	return m.out, m.err
}

func (m *mockGitHubService) GetPullRequestDetails(
	context.Context,
	domain.GetPullRequestDetailsParams,
) (string, error) {
	return m.out, m.err
}

func (m *mockGitHubService) SearchCode(context.Context, domain.SearchCodeParams) (string, error) {
	return m.out, m.err
}

func (m *mockGitHubService) Fetch(_ context.Context, req domain.Request, opts domain.RenderOptions) (string, error) {
	m.requests = append(m.requests, req)
	m.opts = append(m.opts, opts)
	return m.out, m.err
}

// mockArticleService is a mock implementation of driving.ArticleService.
type mockArticleService struct {
	out       string
	err       error
	read      *domain.ReadArticlesParams
	summarize *domain.SummarizeArticlesParams
}

func (m *mockArticleService) ReadArticles(_ context.Context, p domain.ReadArticlesParams) (string, error) {
	m.read = &p
	return m.out, m.err
}

func (m *mockArticleService) SummarizeArticles(_ context.Context, p domain.SummarizeArticlesParams) (string, error) {
	m.summarize = &p
	return m.out, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.AppSettings
	getErr   error
	set      map[string]string
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultAppSettings(), set: map[string]string{}}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if key == "unknown" {
		return errors.New(`unknown setting "unknown"`)
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) Keys() []string {
	return []string{"cache.ttl", "github.token"}
}

type testServices struct {
	github   *mockGitHubService
	articles *mockArticleService
	settings *mockSettingsService
}

// setupTestServices installs mocks and returns them. The previous state is
// restored when the test ends.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()
	svcs := &testServices{
		github:   &mockGitHubService{},
		articles: &mockArticleService{},
		settings: newMockSettingsService(),
	}

	oldGitHub, oldArticles, oldSettings, oldAuth, oldWiring := githubService, articleService, settingsService, authMethod, wiring
	githubService = svcs.github
	articleService = svcs.articles
	settingsService = svcs.settings
	authMethod = domain.AuthMethodNone
	wiring = Wiring{}

	t.Cleanup(func() {
		githubService, articleService, settingsService, authMethod, wiring = oldGitHub, oldArticles, oldSettings, oldAuth, oldWiring
		resetFlags(rootCmd)
	})
	return svcs
}

// resetFlags restores every flag of cmd and its children to its default so
// one Execute does not leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
