package tui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/plaza/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/plaza/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/plaza/internal/adapters/driving/tui/modal"
	"github.com/custodia-labs/plaza/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/plaza/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/plaza/internal/core/domain"
	"github.com/custodia-labs/plaza/internal/core/store"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	// searchView is the only screen; everything else is a modal on top of it.
	searchView *search.View
	modals     *modal.Stack
	prefs      *store.Store[domain.SearchPreferences]

	// changes receives preferences published by other goroutines, such as
	// the config watcher. It holds at most the latest value.
	changes     chan domain.SearchPreferences
	done        chan struct{}
	closeOnce   sync.Once
	unsubscribe func()

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
// Call Close when the program exits.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	prefs := ports.preferences()
	modals := modal.NewStack()

	app := &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		searchView: search.NewView(s, keymap.DefaultKeyMap(), ports.Search, ports.Settings, prefs, modals),
		modals:     modals,
		prefs:      prefs,
		changes:    make(chan domain.SearchPreferences, 1),
		done:       make(chan struct{}),
	}
	app.unsubscribe = prefs.Subscribe(app.publish)
	return app, nil
}

// publish replaces any pending value with p. It never blocks.
func (a *App) publish(p domain.SearchPreferences) {
	select {
	case <-a.changes:
	default:
	}
	select {
	case a.changes <- p:
	default:
	}
}

// waitForPreferences delivers the next published preferences as a message.
func (a *App) waitForPreferences() tea.Msg {
	select {
	case p := <-a.changes:
		return messages.PreferencesChanged{Preferences: p}
	case <-a.done:
		return nil
	}
}

// Close stops listening for preference changes.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		a.unsubscribe()
		close(a.done)
	})
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(search.Title("")),
		a.searchView.Init(),
		a.waitForPreferences,
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case messages.PreferencesChanged:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, tea.Batch(cmd, a.waitForPreferences)

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, tea.Batch(cmd, tea.SetWindowTitle(search.Title(a.searchView.Query())))

	case messages.Quit:
		return a, tea.Quit
	}

	a.searchView, cmd = a.searchView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	return a.searchView.View()
}

// Query returns the current search query.
func (a *App) Query() string {
	return a.searchView.Query()
}

// Results returns the displayed results.
func (a *App) Results() []domain.SearchResult {
	return a.searchView.Results()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.searchView.Err()
}

// Modals returns the modal stack.
func (a *App) Modals() *modal.Stack {
	return a.modals
}

// Preferences returns the preferences store the app renders from.
func (a *App) Preferences() *store.Store[domain.SearchPreferences] {
	return a.prefs
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height)
}
