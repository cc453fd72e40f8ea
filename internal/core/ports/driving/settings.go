package driving

import "github.com/custodia-labs/plaza/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetStrategy updates the default ranking strategy.
	SetStrategy(strategy domain.RankingStrategy) error

	// SetCategories updates the default category selection.
	SetCategories(categories domain.CategorySet) error

	// SetTrust configures web-of-trust scoring.
	SetTrust(enabled bool, viewer string) error

	// Refresh re-reads stored settings and republishes the search preferences.
	Refresh() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
