package driving

import "github.com/custodia-labs/docshelf/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the effective settings with defaults applied.
	Get() (*domain.Settings, error)

	// Save validates and persists settings.
	Save(settings *domain.Settings) error

	// GetDefaults returns the built-in defaults.
	GetDefaults() domain.Settings
}
