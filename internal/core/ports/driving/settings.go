package driving

import "github.com/custodia-labs/ghmcp/internal/core/domain"

// SettingsService resolves application settings from defaults, the config
// file and the environment.
type SettingsService interface {
	// Get returns the effective settings.
	Get() (*domain.AppSettings, error)

	// Set stores one config file key after checking it is known.
	Set(key, value string) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Keys lists the config file keys the service understands.
	Keys() []string
}
