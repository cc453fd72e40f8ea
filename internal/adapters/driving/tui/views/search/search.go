// Package search provides the main search view for the TUI.
package search

import (
	"context"
	"errors"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/plaza/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/plaza/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/plaza/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/plaza/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/plaza/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/plaza/internal/adapters/driving/tui/modal"
	"github.com/custodia-labs/plaza/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/plaza/internal/core/domain"
	"github.com/custodia-labs/plaza/internal/core/ports/driving"
	"github.com/custodia-labs/plaza/internal/core/store"
)

// View is the search screen: query input, ranked results, status bar and
// whatever modal sits on top of the stack.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	statusbar *status.Bar
	renderer  *modal.Renderer

	searchService   driving.SearchService
	settingsService driving.SettingsService
	prefs           *store.Store[domain.SearchPreferences]
	modals          *modal.Stack
	session         driving.SearchSession
	ctx             context.Context

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = typing a query, false = navigating results
	loading    bool
}

// NewView creates a new search view. A nil prefs or modals gets a private
// instance.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
	settingsService driving.SettingsService,
	prefs *store.Store[domain.SearchPreferences],
	modals *modal.Stack,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if prefs == nil {
		prefs = store.New(domain.DefaultSearchPreferences())
	}
	if modals == nil {
		modals = modal.NewStack()
	}

	bar := status.NewBar(s, km)
	bar.SetPreferences(prefs.Get())

	return &View{
		styles:          s,
		keymap:          km,
		input:           input.NewSearchInput(s),
		list:            list.NewResultList(s),
		statusbar:       bar,
		renderer:        modal.NewRenderer(s, km, ""),
		searchService:   searchService,
		settingsService: settingsService,
		prefs:           prefs,
		modals:          modals,
		ctx:             context.Background(),
		width:           80,
		height:          24,
		focusInput:      true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetMarkdownStyle selects the glamour style for result details.
func (v *View) SetMarkdownStyle(style string) {
	v.renderer = modal.NewRenderer(v.styles, v.keymap, style)
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleLoaded(msg.SessionID, msg.Added, msg.Err)
		return v, nil

	case messages.MoreLoaded:
		v.handleLoaded(msg.SessionID, msg.Added, msg.Err)
		return v, nil

	case messages.PreferencesChanged:
		v.ApplyPreferences(msg.Preferences)
		return v, nil

	case messages.DefaultsSaved:
		if msg.Err != nil {
			v.setError(msg.Err)
		} else {
			v.statusbar.SetMessage("Saved as defaults")
		}
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if _, open := v.modals.Top(); open {
		return v.handleModalKey(msg)
	}

	if msg.Type == tea.KeyEsc {
		if v.focusInput {
			if v.list.IsEmpty() {
				return v, quit
			}
			v.focusResults()
			return v, nil
		}
		v.focusInput = true
		return v, v.input.Focus()
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			query := v.input.Submit()
			if query == "" {
				return v, nil
			}
			return v, v.startSearch(query)
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	km := v.keymap
	key := msg.String()
	v.statusbar.SetMessage("")

	switch {
	case msg.Type == tea.KeyEnter:
		if res := v.list.SelectedResult(); res != nil {
			selected := *res
			v.modals.Push(modal.Modal{Kind: modal.KindDetail, Title: selected.Category.String(), Result: &selected})
		}
	case keymap.Matches(key, km.Quit):
		return v, quit
	case keymap.Matches(key, km.Help):
		v.modals.Push(modal.Modal{Kind: modal.KindHelp, Title: "Keys"})
	case keymap.Matches(key, km.NewSearch):
		v.focusInput = true
		v.input.Reset()
		return v, v.input.Focus()
	case keymap.Matches(key, km.CycleStrategy):
		v.updatePreferences(func(p domain.SearchPreferences) domain.SearchPreferences {
			p.Strategy = p.Strategy.Next()
			return p
		})
	case keymap.Matches(key, km.PickStrategy):
		cursor := max(0, slices.Index(domain.Strategies(), v.prefs.Get().Strategy))
		v.modals.Push(modal.Modal{Kind: modal.KindStrategy, Title: "Order by", Cursor: cursor})
	case keymap.Matches(key, km.ToggleProfiles):
		return v, v.toggleCategory(domain.CategoryProfile)
	case keymap.Matches(key, km.ToggleContent):
		return v, v.toggleCategory(domain.CategoryContent)
	case keymap.Matches(key, km.LoadMore):
		return v, v.loadMore()
	case keymap.Matches(key, km.SaveDefaults):
		return v, v.saveDefaults()
	default:
		v.list, _ = v.list.Update(msg)
	}
	return v, nil
}

// handleModalKey routes keys to the top modal.
func (v *View) handleModalKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	top, _ := v.modals.Top()
	key := msg.String()

	if msg.Type == tea.KeyEsc || keymap.Matches(key, v.keymap.Quit) {
		v.modals.Pop()
		return v, nil
	}

	switch top.Kind {
	case modal.KindStrategy:
		strategies := domain.Strategies()
		switch {
		case keymap.Matches(key, v.keymap.Up):
			top.Cursor = max(0, top.Cursor-1)
			v.modals.ReplaceTop(top)
		case keymap.Matches(key, v.keymap.Down):
			top.Cursor = min(len(strategies)-1, top.Cursor+1)
			v.modals.ReplaceTop(top)
		case msg.Type == tea.KeyEnter:
			chosen := strategies[top.Cursor]
			v.modals.Pop()
			v.updatePreferences(func(p domain.SearchPreferences) domain.SearchPreferences {
				p.Strategy = chosen
				return p
			})
		}
	case modal.KindHelp:
		if keymap.Matches(key, v.keymap.Help) {
			v.modals.Pop()
		}
	case modal.KindDetail:
		if msg.Type == tea.KeyEnter {
			v.modals.Pop()
		}
	}
	return v, nil
}

// startSearch opens a new session with the current preferences and loads
// its first page.
func (v *View) startSearch(query string) tea.Cmd {
	if v.searchService == nil {
		return func() tea.Msg { return messages.ErrorOccurred{Err: ErrNoSearchService} }
	}

	v.session = v.searchService.NewSession(query, v.searchOptions())
	v.err = nil
	v.loading = true
	v.list.SetResults(nil)
	v.statusbar.Clear()
	v.statusbar.SetState(status.StateSearching)
	v.focusResults()

	session := v.session
	ctx := v.ctx
	return func() tea.Msg {
		added, err := session.LoadMore(ctx)
		return messages.SearchCompleted{SessionID: session.ID(), Added: added, Err: err}
	}
}

// loadMore fetches the next page of the current session.
func (v *View) loadMore() tea.Cmd {
	if v.session == nil || v.loading {
		return nil
	}
	if v.session.Exhausted() {
		v.statusbar.SetExhausted(true)
		v.statusbar.SetMessage("No more results")
		return nil
	}

	v.loading = true
	v.statusbar.SetState(status.StateLoading)

	session := v.session
	ctx := v.ctx
	return func() tea.Msg {
		added, err := session.LoadMore(ctx)
		return messages.MoreLoaded{SessionID: session.ID(), Added: added, Err: err}
	}
}

// handleLoaded applies a finished page. Pages from replaced sessions are dropped.
func (v *View) handleLoaded(sessionID string, added int, err error) {
	if v.session == nil || v.session.ID() != sessionID {
		return
	}
	v.loading = false

	switch {
	case errors.Is(err, domain.ErrSessionExhausted):
		v.statusbar.SetMessage("No more results")
	case err != nil:
		v.setError(err)
		return
	case added == 0 && v.list.Count() > 0:
		v.statusbar.SetMessage("No new results")
	}

	v.err = nil
	v.refreshResults()
}

// refreshResults pulls the session's ranked results into the list.
func (v *View) refreshResults() {
	if v.session == nil {
		return
	}
	v.list.ReplaceResults(v.session.Results())
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(v.list.Count())
	v.statusbar.SetExhausted(v.session.Exhausted())
}

func (v *View) toggleCategory(c domain.Category) tea.Cmd {
	p := v.updatePreferences(func(p domain.SearchPreferences) domain.SearchPreferences {
		p.Categories = p.Categories.Toggle(c)
		return p
	})
	if p.Categories.Has(c) && v.list.IsEmpty() {
		return v.loadMore()
	}
	return nil
}

// updatePreferences publishes a change to the shared preferences and
// re-ranks the current session without refetching.
func (v *View) updatePreferences(
	fn func(domain.SearchPreferences) domain.SearchPreferences,
) domain.SearchPreferences {
	p := v.prefs.Update(fn)
	v.ApplyPreferences(p)
	return p
}

// ApplyPreferences re-ranks the current session with p.
func (v *View) ApplyPreferences(p domain.SearchPreferences) {
	v.statusbar.SetPreferences(p)
	if v.session == nil {
		return
	}
	v.session.SetStrategy(p.Strategy)
	v.session.SetCategories(p.Categories)
	if !v.loading {
		v.refreshResults()
	}
}

// searchOptions builds options for a new session from preferences and settings.
func (v *View) searchOptions() domain.SearchOptions {
	p := v.prefs.Get()
	opts := domain.SearchOptions{
		Limit:      domain.DefaultPageSize,
		Strategy:   p.Strategy,
		Categories: p.Categories,
		WebOfTrust: p.WebOfTrust,
	}
	if v.settingsService != nil {
		if settings, err := v.settingsService.Get(); err == nil && settings != nil {
			if settings.Search.PageSize > 0 {
				opts.Limit = settings.Search.PageSize
			}
			opts.Viewer = settings.Trust.Viewer
		}
	}
	if opts.Viewer == "" {
		opts.WebOfTrust = false
	}
	return opts
}

// saveDefaults persists the current strategy and categories.
func (v *View) saveDefaults() tea.Cmd {
	settingsService := v.settingsService
	p := v.prefs.Get()
	return func() tea.Msg {
		if settingsService == nil {
			return messages.DefaultsSaved{Err: ErrNoSettingsService}
		}
		settings, err := settingsService.Get()
		if err != nil {
			return messages.DefaultsSaved{Err: err}
		}
		settings.Search.Strategy = p.Strategy
		settings.Search.Categories = p.Categories
		return messages.DefaultsSaved{Err: settingsService.Save(settings)}
	}
}

func (v *View) focusResults() {
	v.focusInput = false
	v.input.Blur()
}

func (v *View) setError(err error) {
	v.err = err
	v.loading = false
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

func quit() tea.Msg {
	return messages.Quit{}
}

// View renders the search view with the top modal, if any, below the results.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if top, open := v.modals.Top(); open {
		sections = append(sections, v.renderer.Render(top, v.width))
	} else {
		sections = append(sections, v.list.View())
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-8)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current input value.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the input value.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Results returns the displayed results in ranked order.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// SelectedResult returns the highlighted result.
func (v *View) SelectedResult() *domain.SearchResult {
	return v.list.SelectedResult()
}

// Session returns the active session, or nil before the first search.
func (v *View) Session() driving.SearchSession {
	return v.session
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Loading reports whether a page is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// StatusMessage returns the status bar message.
func (v *View) StatusMessage() string {
	return v.statusbar.Message()
}

// Title returns the header line, used as the window title.
func Title(query string) string {
	if query = strings.TrimSpace(query); query == "" {
		return "plaza"
	}
	return "plaza: " + query
}
