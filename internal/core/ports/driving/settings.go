package driving

import "github.com/custodia-labs/ragdesk/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save validates and persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single setting by key.
	Set(key, value string) error

	// Validate checks settings against the accepted ranges.
	Validate(settings *domain.AppSettings) error

	// Keys returns the supported setting keys.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
