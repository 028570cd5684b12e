package services

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/ghmcp/internal/core/domain"
	"github.com/custodia-labs/ghmcp/internal/core/ports/driven"
	"github.com/custodia-labs/ghmcp/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyGitHubToken     = "github.token"
	keyGitHubAPIURL    = "github.api_url"
	keyGitHubTimeout   = "github.timeout"
	keyGitHubRPS       = "github.requests_per_second"
	keyCacheEnabled    = "cache.enabled"
	keyCacheTTL        = "cache.ttl"
	keyArticlesDir     = "articles.output_dir"
	keyArticlesWorkers = "articles.concurrency"
	keyLogLevel        = "log_level"
)

// Environment variables that override the config file.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvGitHubToken  = "GITHUB_TOKEN"
	EnvGitHubAPIURL = "GITHUB_API_URL"
	EnvTimeout      = "GHMCP_TIMEOUT"
	EnvCacheTTL     = "GHMCP_CACHE_TTL"
	EnvCacheEnabled = "GHMCP_CACHE_ENABLED"
	EnvRPS          = "GHMCP_REQUESTS_PER_SECOND"
	EnvLogLevel     = "GHMCP_LOG_LEVEL"
	EnvArticlesDir  = "GHMCP_ARTICLES_DIR"
)

type keyKind int

const (
	kindString keyKind = iota
	kindDuration
	kindFloat
	kindInt
	kindBool
)

var knownKeys = map[string]keyKind{
	keyGitHubToken:     kindString,
	keyGitHubAPIURL:    kindString,
	keyGitHubTimeout:   kindDuration,
	keyGitHubRPS:       kindFloat,
	keyCacheEnabled:    kindBool,
	keyCacheTTL:        kindDuration,
	keyArticlesDir:     kindString,
	keyArticlesWorkers: kindInt,
	keyLogLevel:        kindString,
}

// SettingsService layers defaults, the config store and the environment.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service. A nil lookupEnv reads
// the process environment.
func NewSettingsService(configStore driven.ConfigStore, lookupEnv func(string) (string, bool)) *SettingsService {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   lookupEnv,
	}
}

// Get returns the effective settings: defaults, then the config file, then
// the environment. The result is validated.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := domain.DefaultAppSettings()

	settings.GitHub.Token = s.getString(keyGitHubToken, settings.GitHub.Token)
	settings.GitHub.APIURL = s.getString(keyGitHubAPIURL, settings.GitHub.APIURL)
	settings.GitHub.Timeout = s.getDuration(keyGitHubTimeout, settings.GitHub.Timeout)
	settings.GitHub.RequestsPerSecond = s.getFloat(keyGitHubRPS, settings.GitHub.RequestsPerSecond)
	settings.Cache.Enabled = s.getBool(keyCacheEnabled, settings.Cache.Enabled)
	settings.Cache.TTL = s.getDuration(keyCacheTTL, settings.Cache.TTL)
	settings.Articles.OutputDir = s.getString(keyArticlesDir, settings.Articles.OutputDir)
	settings.Articles.Concurrency = s.getInt(keyArticlesWorkers, settings.Articles.Concurrency)
	settings.LogLevel = s.getString(keyLogLevel, settings.LogLevel)

	if err := s.applyEnv(&settings); err != nil {
		return nil, err
	}
	settings.LogLevel = strings.ToLower(settings.LogLevel)

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &settings, nil
}

func (s *SettingsService) applyEnv(settings *domain.AppSettings) error {
	if v, ok := s.env(EnvGitHubToken); ok {
		settings.GitHub.Token = v
	}
	if v, ok := s.env(EnvGitHubAPIURL); ok {
		settings.GitHub.APIURL = v
	}
	if v, ok := s.env(EnvArticlesDir); ok {
		settings.Articles.OutputDir = v
	}
	if v, ok := s.env(EnvLogLevel); ok {
		settings.LogLevel = v
	}
	if v, ok := s.env(EnvTimeout); ok {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		settings.GitHub.Timeout = d
	}
	if v, ok := s.env(EnvCacheTTL); ok {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCacheTTL, err)
		}
		settings.Cache.TTL = d
	}
	if v, ok := s.env(EnvCacheEnabled); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCacheEnabled, err)
		}
		settings.Cache.Enabled = b
	}
	if v, ok := s.env(EnvRPS); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRPS, err)
		}
		settings.GitHub.RequestsPerSecond = f
	}
	return nil
}

// Set parses value according to key and stores it in the config store.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := knownKeys[key]
	if !ok {
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(s.Keys(), ", "))
	}

	var typed any
	switch kind {
	case kindString:
		typed = value
	case kindDuration:
		d, err := parseDuration(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		typed = d.String()
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		typed = f
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		typed = int64(n)
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		typed = b
	}

	if err := s.configStore.Set(key, typed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Keys lists the config file keys the service understands.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *SettingsService) env(name string) (string, bool) {
	v, ok := s.lookupEnv(name)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	if d := s.configStore.GetDuration(key); d > 0 {
		return d
	}
	return defaultVal
}

// parseDuration accepts Go duration syntax or a bare number of seconds.
func parseDuration(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", v)
	}
	return d, nil
}
