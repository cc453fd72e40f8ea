package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/plaza/internal/core/domain"
	"github.com/custodia-labs/plaza/internal/core/ports/driving"
	"github.com/custodia-labs/plaza/internal/core/store"
)

// MockSearchService implements driving.SearchService for testing.
type MockSearchService struct {
	Pages [][]domain.SearchResult
}

func (m *MockSearchService) Search(
	_ context.Context, _ string, _ domain.SearchOptions,
) ([]domain.SearchResult, error) {
	return nil, nil
}

func (m *MockSearchService) Fetch(
	_ context.Context, _ string, _ domain.SearchOptions,
) (*domain.ResultSet, error) {
	return &domain.ResultSet{}, nil
}

func (m *MockSearchService) NewSession(query string, opts domain.SearchOptions) driving.SearchSession {
	return &MockSession{query: query, pages: m.Pages, strategy: opts.Strategy, categories: opts.Categories}
}

func (m *MockSearchService) Score(domain.RankingStrategy, domain.SearchResult) float64 {
	return 0
}

// MockSession serves a fixed set of pages.
type MockSession struct {
	query      string
	pages      [][]domain.SearchResult
	loaded     []domain.SearchResult
	strategy   domain.RankingStrategy
	categories domain.CategorySet
}

func (m *MockSession) ID() string    { return "session-" + m.query }
func (m *MockSession) Query() string { return m.query }

func (m *MockSession) LoadMore(_ context.Context) (int, error) {
	if len(m.pages) == 0 {
		return 0, domain.ErrSessionExhausted
	}
	page := m.pages[0]
	m.pages = m.pages[1:]
	m.loaded = append(m.loaded, page...)
	return len(page), nil
}

func (m *MockSession) Results() []domain.SearchResult {
	var out []domain.SearchResult
	for _, r := range m.loaded {
		if m.categories.Has(r.Category) {
			out = append(out, r)
		}
	}
	return out
}

func (m *MockSession) Exhausted() bool                      { return len(m.pages) == 0 }
func (m *MockSession) Strategy() domain.RankingStrategy     { return m.strategy }
func (m *MockSession) SetStrategy(s domain.RankingStrategy) { m.strategy = s }
func (m *MockSession) Categories() domain.CategorySet       { return m.categories }
func (m *MockSession) SetCategories(c domain.CategorySet)   { m.categories = c }

// MockSettingsService implements driving.SettingsService for testing.
type MockSettingsService struct {
	Settings domain.AppSettings
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.Settings
	return &s, nil
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	m.Settings = *settings
	return nil
}

func (m *MockSettingsService) SetStrategy(s domain.RankingStrategy) error {
	m.Settings.Search.Strategy = s
	return nil
}

func (m *MockSettingsService) SetCategories(c domain.CategorySet) error {
	m.Settings.Search.Categories = c
	return nil
}

func (m *MockSettingsService) SetTrust(enabled bool, viewer string) error {
	m.Settings.Trust.Enabled = enabled
	m.Settings.Trust.Viewer = viewer
	return nil
}

func (m *MockSettingsService) Refresh() error                  { return nil }
func (m *MockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{name: "nil ports", ports: nil, wantErr: ErrMissingSearchService},
		{name: "missing search", ports: &Ports{Settings: &MockSettingsService{}}, wantErr: ErrMissingSearchService},
		{name: "search only", ports: &Ports{Search: &MockSearchService{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPorts_PreferencesShared(t *testing.T) {
	prefs := store.New(domain.DefaultSearchPreferences())
	p := &Ports{Search: &MockSearchService{}, Preferences: prefs}

	assert.Same(t, prefs, p.preferences())
}

func TestPorts_PreferencesSeededFromSettings(t *testing.T) {
	settings := &MockSettingsService{Settings: domain.DefaultAppSettings()}
	settings.Settings.Search.Strategy = domain.StrategyName
	p := &Ports{Search: &MockSearchService{}, Settings: settings}

	prefs := p.preferences()
	require.NotNil(t, prefs)
	assert.Equal(t, domain.StrategyName, prefs.Get().Strategy)
}

func TestPorts_PreferencesDefault(t *testing.T) {
	p := &Ports{Search: &MockSearchService{}}

	assert.Equal(t, domain.DefaultSearchPreferences(), p.preferences().Get())
}
