package domain

import (
	"fmt"
	"time"
)

// Settings bounds.
const (
	MinArticleConcurrency = 1
	MaxArticleConcurrency = 16
)

// GitHubSettings configures the upstream gateway.
type GitHubSettings struct {
	// Token is the personal access token. Empty means anonymous.
	Token string

	// APIURL is the REST root, overridable for GitHub Enterprise.
	APIURL string

	// Timeout bounds every upstream call.
	Timeout time.Duration

	// RequestsPerSecond enables client-side throttling when positive.
	RequestsPerSecond float64
}

// CacheSettings configures response memoization.
type CacheSettings struct {
	Enabled bool
	TTL     time.Duration
}

// ArticleSettings configures the article tools.
type ArticleSettings struct {
	// OutputDir is where read_articles saves files when the call names none.
	OutputDir string

	// Concurrency is the default number of parallel fetches.
	Concurrency int
}

// AppSettings holds all application settings.
type AppSettings struct {
	GitHub   GitHubSettings
	Cache    CacheSettings
	Articles ArticleSettings

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		GitHub: GitHubSettings{
			APIURL:  "https://api.github.com/",
			Timeout: DefaultTimeout,
		},
		Cache: CacheSettings{
			Enabled: true,
			TTL:     300 * time.Second,
		},
		Articles: ArticleSettings{
			OutputDir:   "articles",
			Concurrency: 4,
		},
		LogLevel: "info",
	}
}

// HasToken reports whether a usable credential is configured.
func (s AppSettings) HasToken() bool {
	return s.GitHub.Token != "" && s.GitHub.Token != PlaceholderToken
}

// Validate checks ranges that would otherwise fail at first use.
func (s AppSettings) Validate() error {
	if s.GitHub.APIURL == "" {
		return fmt.Errorf("github.api_url must not be empty")
	}
	if s.GitHub.Timeout <= 0 {
		return fmt.Errorf("github.timeout must be positive, got %s", s.GitHub.Timeout)
	}
	if s.GitHub.RequestsPerSecond < 0 {
		return fmt.Errorf("github.requests_per_second must not be negative, got %g", s.GitHub.RequestsPerSecond)
	}
	if s.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %s", s.Cache.TTL)
	}
	if c := s.Articles.Concurrency; c < MinArticleConcurrency || c > MaxArticleConcurrency {
		return fmt.Errorf("articles.concurrency must be between %d and %d, got %d",
			MinArticleConcurrency, MaxArticleConcurrency, c)
	}
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", s.LogLevel)
	}
	return nil
}
