package search

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/plaza/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/plaza/internal/adapters/driving/tui/modal"
	"github.com/custodia-labs/plaza/internal/core/domain"
	"github.com/custodia-labs/plaza/internal/core/ports/driving"
	"github.com/custodia-labs/plaza/internal/core/store"
)

// mockSession pages through a fixed list of results.
type mockSession struct {
	id         string
	query      string
	pages      [][]domain.SearchResult
	loaded     []domain.SearchResult
	next       int
	err        error
	strategy   domain.RankingStrategy
	categories domain.CategorySet
}

func (m *mockSession) ID() string    { return m.id }
func (m *mockSession) Query() string { return m.query }

func (m *mockSession) LoadMore(_ context.Context) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.Exhausted() {
		return 0, domain.ErrSessionExhausted
	}
	page := m.pages[m.next]
	m.next++
	m.loaded = append(m.loaded, page...)
	return len(page), nil
}

func (m *mockSession) Results() []domain.SearchResult {
	out := make([]domain.SearchResult, 0, len(m.loaded))
	for _, r := range m.loaded {
		if m.categories.IsEmpty() || m.categories.Has(r.Category) {
			out = append(out, r)
		}
	}
	return out
}

func (m *mockSession) Exhausted() bool                      { return m.next >= len(m.pages) }
func (m *mockSession) Strategy() domain.RankingStrategy     { return m.strategy }
func (m *mockSession) SetStrategy(s domain.RankingStrategy) { m.strategy = s }
func (m *mockSession) Categories() domain.CategorySet       { return m.categories }
func (m *mockSession) SetCategories(c domain.CategorySet)   { m.categories = c }

// mockSearchService hands out mockSessions.
type mockSearchService struct {
	pages    [][]domain.SearchResult
	err      error
	sessions []*mockSession
	lastOpts domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context, _ string, _ domain.SearchOptions,
) ([]domain.SearchResult, error) {
	return nil, nil
}

func (m *mockSearchService) Fetch(
	_ context.Context, _ string, _ domain.SearchOptions,
) (*domain.ResultSet, error) {
	return &domain.ResultSet{}, nil
}

func (m *mockSearchService) NewSession(query string, opts domain.SearchOptions) driving.SearchSession {
	m.lastOpts = opts
	s := &mockSession{
		id:         query + "-" + string(rune('a'+len(m.sessions))),
		query:      query,
		pages:      m.pages,
		err:        m.err,
		strategy:   opts.Strategy,
		categories: opts.Categories,
	}
	m.sessions = append(m.sessions, s)
	return s
}

func (m *mockSearchService) Score(domain.RankingStrategy, domain.SearchResult) float64 {
	return 0
}

// mockSettingsService keeps settings in memory.
type mockSettingsService struct {
	settings domain.AppSettings
	saveErr  error
	saved    int
}

func newMockSettings() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultAppSettings()}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.settings = *settings
	m.saved++
	return nil
}

func (m *mockSettingsService) SetStrategy(s domain.RankingStrategy) error {
	m.settings.Search.Strategy = s
	return nil
}

func (m *mockSettingsService) SetCategories(c domain.CategorySet) error {
	m.settings.Search.Categories = c
	return nil
}

func (m *mockSettingsService) SetTrust(enabled bool, viewer string) error {
	m.settings.Trust.Enabled = enabled
	m.settings.Trust.Viewer = viewer
	return nil
}

func (m *mockSettingsService) Refresh() error                  { return nil }
func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

func testResults() []domain.SearchResult {
	return []domain.SearchResult{
		{ID: "alice", Category: domain.CategoryProfile, Title: "Alice", Summary: "builds relays"},
		{ID: "bob", Category: domain.CategoryProfile, Title: "Bob"},
		{ID: "note1", Category: domain.CategoryContent, Title: "gm", Summary: "gm nostr"},
	}
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestView(t *testing.T, svc *mockSearchService) (*View, *store.Store[domain.SearchPreferences]) {
	t.Helper()
	prefs := store.New(domain.DefaultSearchPreferences())
	v := NewView(nil, nil, svc, newMockSettings(), prefs, nil)
	v.SetMarkdownStyle("notty")
	v.SetDimensions(100, 40)
	return v, prefs
}

// run executes cmd and feeds the resulting message back into the view.
func run(t *testing.T, v *View, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	v.Update(msg)
	return msg
}

func searchFor(t *testing.T, v *View, query string) {
	t.Helper()
	v.SetQuery(query)
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := run(t, v, cmd)
	require.IsType(t, messages.SearchCompleted{}, msg)
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, nil, nil, nil, nil)
	require.NotNil(t, v)
	assert.True(t, v.InputFocused())
	assert.False(t, v.Ready())
	assert.Nil(t, v.Session())
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_Update_WindowSize(t *testing.T) {
	v := NewView(nil, nil, nil, nil, nil, nil)
	v.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.True(t, v.Ready())
}

func TestView_Search(t *testing.T) {
	svc := &mockSearchService{pages: [][]domain.SearchResult{testResults()}}
	v, _ := newTestView(t, svc)

	searchFor(t, v, "  alice ")

	require.Len(t, svc.sessions, 1)
	assert.Equal(t, "alice", svc.sessions[0].query)
	assert.Equal(t, domain.StrategyRelevance, svc.lastOpts.Strategy)
	assert.Equal(t, domain.DefaultPageSize, svc.lastOpts.Limit)
	assert.False(t, svc.lastOpts.WebOfTrust)
	assert.False(t, v.InputFocused())
	assert.False(t, v.Loading())
	// Default categories hide the note.
	assert.Len(t, v.Results(), 2)
	assert.Contains(t, v.View(), "Alice")
}

func TestView_Search_WebOfTrustNeedsViewer(t *testing.T) {
	svc := &mockSearchService{pages: [][]domain.SearchResult{testResults()}}
	prefs := store.New(domain.SearchPreferences{
		Strategy:   domain.StrategyTrust,
		Categories: domain.DefaultCategories(),
		WebOfTrust: true,
	})
	settings := newMockSettings()
	v := NewView(nil, nil, svc, settings, prefs, nil)
	v.SetDimensions(100, 40)

	searchFor(t, v, "first")
	assert.False(t, svc.lastOpts.WebOfTrust)

	settings.settings.Trust.Viewer = "npub-viewer"
	v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	searchFor(t, v, "second")
	assert.True(t, svc.lastOpts.WebOfTrust)
	assert.Equal(t, "npub-viewer", svc.lastOpts.Viewer)
	assert.Equal(t, domain.StrategyTrust, svc.lastOpts.Strategy)
}

func TestView_Search_EmptyQuery(t *testing.T) {
	svc := &mockSearchService{}
	v, _ := newTestView(t, svc)

	v.SetQuery("   ")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, svc.sessions)
}

func TestView_Search_NoService(t *testing.T) {
	v := NewView(nil, nil, nil, nil, nil, nil)
	v.SetDimensions(100, 40)
	v.SetQuery("alice")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := run(t, v, cmd)

	errMsg, ok := msg.(messages.ErrorOccurred)
	require.True(t, ok)
	assert.ErrorIs(t, errMsg.Err, ErrNoSearchService)
	assert.ErrorIs(t, v.Err(), ErrNoSearchService)
}

func TestView_Search_Error(t *testing.T) {
	boom := errors.New("index offline")
	svc := &mockSearchService{pages: [][]domain.SearchResult{testResults()}, err: boom}
	v, _ := newTestView(t, svc)

	searchFor(t, v, "alice")

	assert.ErrorIs(t, v.Err(), boom)
	assert.Contains(t, v.View(), "index offline")
}

func TestView_StaleSessionIgnored(t *testing.T) {
	svc := &mockSearchService{pages: [][]domain.SearchResult{testResults()}}
	v, _ := newTestView(t, svc)

	v.SetQuery("first")
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	searchFor(t, v, "second")
	require.Len(t, v.Results(), 2)

	v.Update(messages.SearchCompleted{SessionID: svc.sessions[0].ID(), Err: errors.New("late")})
	assert.NoError(t, v.Err())
	assert.Len(t, v.Results(), 2)
}

func TestView_EscWithoutResultsQuits(t *testing.T) {
	v, _ := newTestView(t, &mockSearchService{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.Quit{}, cmd())
}

func TestView_EscTogglesFocus(t *testing.T) {
	svc := &mockSearchService{pages: [][]domain.SearchResult{testResults()}}
	v, _ := newTestView(t, svc)
	searchFor(t, v, "alice")

	v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, v.InputFocused())

	v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, v.InputFocused())
}

func TestView_QuitFromResults(t *testing.T) {
	svc := &mockSearchService{pages: [][]domain.SearchResult{testResults()}}
	v, _ := newTestView(t, svc)
	searchFor(t, v, "alice")

	_, cmd := v.Update(runeKey("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.Quit{}, cmd())
}

func TestView_NewSearch(t *testing.T) {
	svc := &mockSearchService{pages: [][]domain.SearchResult{testResults()}}
	v, _ := newTestView(t, svc)
	searchFor(t, v, "alice")

	v.Update(runeKey("/"))
	assert.True(t, v.InputFocused())
	assert.Empty(t, v.Query())
}

func TestView_Navigation(t *testing.T) {
	svc := &mockSearchService{pages: [][]domain.SearchResult{testResults()}}
	v, _ := newTestView(t, svc)
	searchFor(t, v, "alice")

	require.NotNil(t, v.SelectedResult())
	assert.Equal(t, "alice", v.SelectedResult().ID)

	v.Update(runeKey("j"))
	assert.Equal(t, "bob", v.SelectedResult().ID)

	v.Update(runeKey("k"))
	assert.Equal(t, "alice", v.SelectedResult().ID)
}

func TestView_CycleStrategy(t *testing.T) {
	svc := &mockSearchService{pages: [][]domain.SearchResult{testResults()}}
	v, prefs := newTestView(t, svc)
	searchFor(t, v, "alice")

	v.Update(runeKey("s"))

	assert.Equal(t, domain.StrategyDate, prefs.Get().Strategy)
	assert.Equal(t, domain.StrategyDate, svc.sessions[0].Strategy())
	assert.Len(t, svc.sessions, 1, "re-ranking must not start a new session")
}

func TestView_ToggleContent(t *testing.T) {
	svc := &mockSearchService{pages: [][]domain.SearchResult{testResults()}}
	v, prefs := newTestView(t, svc)
	searchFor(t, v, "alice")

	v.Update(runeKey("c"))
	assert.True(t, prefs.Get().Categories.Has(domain.CategoryContent))
	assert.Len(t, v.Results(), 3)

	v.Update(runeKey("p"))
	assert.False(t, prefs.Get().Categories.Has(domain.CategoryProfile))
	assert.Len(t, v.Results(), 1)
	assert.Equal(t, "note1", v.Results()[0].ID)

	// The last category cannot be toggled off.
	v.Update(runeKey("c"))
	assert.True(t, prefs.Get().Categories.Has(domain.CategoryContent))
}

func TestView_StrategyPicker(t *testing.T) {
	svc := &mockSearchService{pages: [][]domain.SearchResult{testResults()}}
	v, prefs := newTestView(t, svc)
	searchFor(t, v, "alice")

	v.Update(runeKey("o"))
	assert.Contains(t, v.View(), "> "+domain.StrategyRelevance.Description())

	v.Update(runeKey("j"))
	v.Update(runeKey("j"))
	assert.Contains(t, v.View(), "> "+domain.StrategyPopularity.Description())

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, domain.StrategyPopularity, prefs.Get().Strategy)
	assert.Equal(t, domain.StrategyPopularity, svc.sessions[0].Strategy())
	assert.NotContains(t, v.View(), domain.StrategyName.Description())
}

func TestView_DetailModal(t *testing.T) {
	modals := modal.NewStack()
	svc := &mockSearchService{pages: [][]domain.SearchResult{testResults()}}
	v := NewView(nil, nil, svc, newMockSettings(), nil, modals)
	v.SetMarkdownStyle("notty")
	v.SetDimensions(100, 40)
	searchFor(t, v, "alice")

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	top, ok := modals.Top()
	require.True(t, ok)
	assert.Equal(t, modal.KindDetail, top.Kind)
	assert.Equal(t, "alice", top.Result.ID)
	assert.Contains(t, v.View(), "builds relays")

	// Navigation keys go to the modal, not the list.
	v.Update(runeKey("j"))
	assert.Equal(t, "alice", v.SelectedResult().ID)

	v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 0, modals.Len())
	assert.False(t, v.InputFocused())
}

func TestView_HelpModal(t *testing.T) {
	svc := &mockSearchService{pages: [][]domain.SearchResult{testResults()}}
	v, _ := newTestView(t, svc)
	searchFor(t, v, "alice")

	v.Update(runeKey("?"))
	assert.Contains(t, v.View(), "save defaults")

	v.Update(runeKey("?"))
	assert.NotContains(t, v.View(), "save defaults")
}

func TestView_LoadMore(t *testing.T) {
	pages := [][]domain.SearchResult{testResults()[:1], testResults()[1:]}
	svc := &mockSearchService{pages: pages}
	v, _ := newTestView(t, svc)
	searchFor(t, v, "alice")
	require.Len(t, v.Results(), 1)

	_, cmd := v.Update(runeKey("m"))
	msg := run(t, v, cmd)
	assert.IsType(t, messages.MoreLoaded{}, msg)
	assert.Len(t, v.Results(), 2)

	_, cmd = v.Update(runeKey("m"))
	assert.Nil(t, cmd)
	assert.Equal(t, "No more results", v.StatusMessage())
}

func TestView_PreferencesChanged(t *testing.T) {
	svc := &mockSearchService{pages: [][]domain.SearchResult{testResults()}}
	v, _ := newTestView(t, svc)
	searchFor(t, v, "alice")

	v.Update(messages.PreferencesChanged{Preferences: domain.SearchPreferences{
		Strategy:   domain.StrategyName,
		Categories: domain.AllCategories(),
	}})

	assert.Equal(t, domain.StrategyName, svc.sessions[0].Strategy())
	assert.Len(t, v.Results(), 3)
	assert.Contains(t, v.View(), "sort: name")
}

func TestView_SaveDefaults(t *testing.T) {
	svc := &mockSearchService{pages: [][]domain.SearchResult{testResults()}}
	prefs := store.New(domain.DefaultSearchPreferences())
	settings := newMockSettings()
	v := NewView(nil, nil, svc, settings, prefs, nil)
	v.SetDimensions(100, 40)
	searchFor(t, v, "alice")

	v.Update(runeKey("s"))
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	msg := run(t, v, cmd)

	saved, ok := msg.(messages.DefaultsSaved)
	require.True(t, ok)
	require.NoError(t, saved.Err)
	assert.Equal(t, 1, settings.saved)
	assert.Equal(t, domain.StrategyDate, settings.settings.Search.Strategy)
	assert.Equal(t, "Saved as defaults", v.StatusMessage())
}

func TestView_SaveDefaults_NoSettings(t *testing.T) {
	svc := &mockSearchService{pages: [][]domain.SearchResult{testResults()}}
	v := NewView(nil, nil, svc, nil, nil, nil)
	v.SetDimensions(100, 40)
	searchFor(t, v, "alice")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	run(t, v, cmd)
	assert.ErrorIs(t, v.Err(), ErrNoSettingsService)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "plaza", Title("  "))
	assert.Equal(t, "plaza: alice", Title(" alice "))
}
