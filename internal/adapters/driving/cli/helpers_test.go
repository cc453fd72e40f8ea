package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/custodia-labs/plaza/internal/core/domain"
	"github.com/custodia-labs/plaza/internal/core/ports/driving"
)

// mockSearchService records the last options and returns canned results.
type mockSearchService struct {
	results  []domain.SearchResult
	pages    [][]domain.SearchResult
	err      error
	lastOpts domain.SearchOptions
	queries  []string
}

func (m *mockSearchService) Search(
	_ context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.queries = append(m.queries, query)
	m.lastOpts = opts
	return m.results, m.err
}

func (m *mockSearchService) Fetch(
	_ context.Context, _ string, _ domain.SearchOptions,
) (*domain.ResultSet, error) {
	return &domain.ResultSet{Profiles: m.results}, m.err
}

func (m *mockSearchService) NewSession(query string, opts domain.SearchOptions) driving.SearchSession {
	m.queries = append(m.queries, query)
	m.lastOpts = opts
	return &mockSession{query: query, pages: m.pages, strategy: opts.EffectiveStrategy()}
}

func (m *mockSearchService) Score(domain.RankingStrategy, domain.SearchResult) float64 {
	return 0
}

// mockSession hands out one page per LoadMore call.
type mockSession struct {
	query    string
	pages    [][]domain.SearchResult
	loaded   []domain.SearchResult
	next     int
	calls    int
	strategy domain.RankingStrategy
	cats     domain.CategorySet
}

func (s *mockSession) ID() string    { return "session-1" }
func (s *mockSession) Query() string { return s.query }

func (s *mockSession) LoadMore(_ context.Context) (int, error) {
	s.calls++
	if s.next >= len(s.pages) {
		return 0, domain.ErrSessionExhausted
	}
	page := s.pages[s.next]
	s.next++
	s.loaded = append(s.loaded, page...)
	return len(page), nil
}

func (s *mockSession) Results() []domain.SearchResult { return s.loaded }
func (s *mockSession) Exhausted() bool                { return s.next >= len(s.pages) }

func (s *mockSession) Strategy() domain.RankingStrategy      { return s.strategy }
func (s *mockSession) SetStrategy(st domain.RankingStrategy) { s.strategy = st }
func (s *mockSession) Categories() domain.CategorySet        { return s.cats }
func (s *mockSession) SetCategories(c domain.CategorySet)    { s.cats = c }

// mockSettingsService keeps settings in memory.
type mockSettingsService struct {
	settings domain.AppSettings
	err      error
}

func newMockSettings() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultAppSettings()}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(s *domain.AppSettings) error {
	if m.err != nil {
		return m.err
	}
	m.settings = *s
	return nil
}

func (m *mockSettingsService) SetStrategy(s domain.RankingStrategy) error {
	if m.err != nil {
		return m.err
	}
	m.settings.Search.Strategy = s
	return nil
}

func (m *mockSettingsService) SetCategories(c domain.CategorySet) error {
	if m.err != nil {
		return m.err
	}
	m.settings.Search.Categories = c
	return nil
}

func (m *mockSettingsService) SetTrust(enabled bool, viewer string) error {
	if m.err != nil {
		return m.err
	}
	if viewer != "" {
		m.settings.Trust.Viewer = viewer
	}
	if enabled && m.settings.Trust.Viewer == "" {
		return domain.ErrInvalidInput
	}
	m.settings.Trust.Enabled = enabled
	return nil
}

func (m *mockSettingsService) Refresh() error { return m.err }

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// mockImportService drains the reader and returns canned stats.
type mockImportService struct {
	stats domain.ImportStats
	err   error
	read  string
}

func (m *mockImportService) Import(_ context.Context, r io.Reader) (domain.ImportStats, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.ImportStats{}, err
	}
	m.read = string(data)
	return m.stats, m.err
}

// mockTrustService returns a fixed score.
type mockTrustService struct {
	score      float64
	err        error
	lastViewer string
	lastTarget string
}

func (m *mockTrustService) Score(_ context.Context, viewer, target string) (float64, error) {
	m.lastViewer = viewer
	m.lastTarget = target
	return m.score, m.err
}

func (m *mockTrustService) Scores(_ context.Context, _ string, targets []string) (map[string]float64, error) {
	out := make(map[string]float64, len(targets))
	for _, t := range targets {
		out[t] = m.score
	}
	return out, m.err
}

var (
	_ driving.SearchService   = (*mockSearchService)(nil)
	_ driving.SearchSession   = (*mockSession)(nil)
	_ driving.SettingsService = (*mockSettingsService)(nil)
	_ driving.ImportService   = (*mockImportService)(nil)
	_ driving.TrustService    = (*mockTrustService)(nil)
)

// testServices holds the mocks installed by setupTestServices.
type testServices struct {
	search   *mockSearchService
	settings *mockSettingsService
	importer *mockImportService
	trust    *mockTrustService
}

func sampleResults() []domain.SearchResult {
	return []domain.SearchResult{
		{
			ID:       "npub-alice",
			Category: domain.CategoryProfile,
			Title:    "Alice",
			Summary:  "Runs a relay",
			Metadata: domain.Metadata{FollowerCount: domain.Ptr(1234), Verified: domain.Ptr(true)},
		},
		{
			ID:       "note-1",
			Category: domain.CategoryContent,
			Title:    "gm relay people",
			Summary:  "gm relay people",
			Metadata: domain.Metadata{LikeCount: domain.Ptr(7)},
		},
	}
}

// setupTestServices installs fresh mocks and resets flag state.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	svc := &testServices{
		search:   &mockSearchService{results: sampleResults()},
		settings: newMockSettings(),
		importer: &mockImportService{},
		trust:    &mockTrustService{},
	}
	SetServices(Services{
		Search:   svc.search,
		Settings: svc.settings,
		Import:   svc.importer,
		Trust:    svc.trust,
	})
	resetFlags()

	t.Cleanup(func() {
		SetServices(Services{})
		resetFlags()
	})
	return svc
}

func resetFlags() {
	searchLimit, searchOffset, searchPages = 10, 0, 0
	searchSort, searchSince, searchFormat, searchViewer = "", "", formatTable, ""
	searchCategories = nil
	searchWoT = false
	trustViewer = ""
	settingsTrustViewer, settingsTrustDisable = "", false
	verbose = false

	for _, name := range []string{"limit", "offset", "pages", "sort", "category", "since", "format", "wot", "viewer"} {
		searchCmd.Flags().Lookup(name).Changed = false
	}
}

// execute runs the root command with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return buf.String(), err
}
