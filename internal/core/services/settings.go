package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/plaza/internal/core/domain"
	"github.com/custodia-labs/plaza/internal/core/ports/driven"
	"github.com/custodia-labs/plaza/internal/core/ports/driving"
	"github.com/custodia-labs/plaza/internal/core/store"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keySearchStrategy   = "search.strategy"
	keySearchCategories = "search.categories"
	keySearchPageSize   = "search.page_size"
	keyTrustEnabled     = "trust.enabled"
	keyTrustViewer      = "trust.viewer"
)

// SettingsService maps configuration keys onto domain.AppSettings and keeps
// the shared search preferences in step with what is stored.
type SettingsService struct {
	configStore driven.ConfigStore
	prefs       *store.Store[domain.SearchPreferences]
}

// NewSettingsService creates a new settings service.
// The preference store is optional (can be nil).
func NewSettingsService(
	configStore driven.ConfigStore,
	prefs *store.Store[domain.SearchPreferences],
) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		prefs:       prefs,
	}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	return &domain.AppSettings{
		Search: domain.SearchSettings{
			Strategy:   s.getStrategy(defaults.Search.Strategy),
			Categories: s.getCategories(defaults.Search.Categories),
			PageSize:   s.getPageSize(defaults.Search.PageSize),
		},
		Trust: domain.TrustSettings{
			Enabled: s.getBool(keyTrustEnabled, defaults.Trust.Enabled),
			Viewer:  strings.TrimSpace(s.configStore.GetString(keyTrustViewer)),
		},
	}, nil
}

// Save persists application settings and publishes the new preferences.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings are required", domain.ErrInvalidInput)
	}
	if !settings.Search.Strategy.IsValid() {
		return fmt.Errorf("%w: strategy %q", domain.ErrInvalidInput, settings.Search.Strategy)
	}
	if settings.Search.Categories.IsEmpty() {
		return fmt.Errorf("%w: at least one category is required", domain.ErrInvalidInput)
	}
	if settings.Search.PageSize <= 0 {
		return fmt.Errorf("%w: page size must be positive", domain.ErrInvalidInput)
	}

	err := s.configStore.SetMany(map[string]any{
		keySearchStrategy:   settings.Search.Strategy.String(),
		keySearchCategories: settings.Search.Categories.Strings(),
		keySearchPageSize:   settings.Search.PageSize,
		keyTrustEnabled:     settings.Trust.Enabled,
		keyTrustViewer:      settings.Trust.Viewer,
	})
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	s.publish(settings)
	return nil
}

// SetStrategy updates the default ranking strategy.
func (s *SettingsService) SetStrategy(strategy domain.RankingStrategy) error {
	if !strategy.IsValid() {
		return fmt.Errorf("%w: strategy %q", domain.ErrInvalidInput, strategy)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Search.Strategy = strategy
	return s.Save(settings)
}

// SetCategories updates the default category selection.
func (s *SettingsService) SetCategories(categories domain.CategorySet) error {
	if categories.IsEmpty() {
		return fmt.Errorf("%w: at least one category is required", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Search.Categories = categories
	return s.Save(settings)
}

// SetTrust configures web-of-trust scoring. An empty viewer keeps the
// stored one; enabling trust without any viewer is rejected.
func (s *SettingsService) SetTrust(enabled bool, viewer string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if viewer = strings.TrimSpace(viewer); viewer != "" {
		settings.Trust.Viewer = viewer
	}
	if enabled && !settings.Trust.IsConfigured() {
		return fmt.Errorf("%w: trust requires a viewer pubkey", domain.ErrInvalidInput)
	}
	settings.Trust.Enabled = enabled
	return s.Save(settings)
}

// Refresh re-reads the configuration and republishes the preferences.
func (s *SettingsService) Refresh() error {
	if err := s.configStore.Load(); err != nil {
		return fmt.Errorf("reload settings: %w", err)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	s.publish(settings)
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) publish(settings *domain.AppSettings) {
	if s.prefs == nil {
		return
	}
	s.prefs.Set(settings.Preferences())
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getStrategy(defaultVal domain.RankingStrategy) domain.RankingStrategy {
	val := s.configStore.GetString(keySearchStrategy)
	if val == "" {
		return defaultVal
	}
	strategy, err := domain.ParseStrategy(val)
	if err != nil {
		return defaultVal
	}
	return strategy
}

func (s *SettingsService) getCategories(defaultVal domain.CategorySet) domain.CategorySet {
	names := s.configStore.GetStringSlice(keySearchCategories)
	if len(names) == 0 {
		return defaultVal
	}
	cats, err := domain.ParseCategorySet(names)
	if err != nil || cats.IsEmpty() {
		return defaultVal
	}
	return cats
}

func (s *SettingsService) getPageSize(defaultVal int) int {
	val := s.configStore.GetInt(keySearchPageSize)
	if val <= 0 {
		return defaultVal
	}
	return val
}
