package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/plaza/internal/core/domain"
	"github.com/custodia-labs/plaza/internal/core/ports/driving"
	"github.com/custodia-labs/plaza/internal/core/ranking"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results  []domain.SearchResult
	err      error
	lastOpts domain.SearchOptions
	now      time.Time
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastOpts = opts
	return m.results, m.err
}

func (m *mockSearchService) Fetch(
	_ context.Context,
	_ string,
	_ domain.SearchOptions,
) (*domain.ResultSet, error) {
	return &domain.ResultSet{}, m.err
}

func (m *mockSearchService) NewSession(_ string, _ domain.SearchOptions) driving.SearchSession {
	return nil
}

func (m *mockSearchService) Score(s domain.RankingStrategy, res domain.SearchResult) float64 {
	return ranking.Ranker{Now: func() time.Time { return m.now }}.Score(s, res)
}

// mockTrustService is a mock implementation of driving.TrustService.
type mockTrustService struct {
	score      float64
	err        error
	lastViewer string
}

func (m *mockTrustService) Score(_ context.Context, viewer, _ string) (float64, error) {
	m.lastViewer = viewer
	return m.score, m.err
}

func (m *mockTrustService) Scores(_ context.Context, _ string, targets []string) (map[string]float64, error) {
	out := make(map[string]float64, len(targets))
	for _, t := range targets {
		out[t] = m.score
	}
	return out, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Save(s *domain.AppSettings) error {
	m.settings = s
	return m.err
}

func (m *mockSettingsService) SetStrategy(_ domain.RankingStrategy) error { return m.err }

func (m *mockSettingsService) SetCategories(_ domain.CategorySet) error { return m.err }

func (m *mockSettingsService) SetTrust(_ bool, _ string) error { return m.err }

func (m *mockSettingsService) Refresh() error { return m.err }

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

var (
	_ driving.SearchService   = (*mockSearchService)(nil)
	_ driving.TrustService    = (*mockTrustService)(nil)
	_ driving.SettingsService = (*mockSettingsService)(nil)
)
