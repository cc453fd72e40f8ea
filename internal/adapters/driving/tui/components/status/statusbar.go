// Package status provides the status bar for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/plaza/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/plaza/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/plaza/internal/core/domain"
)

// State represents the current application state for display.
type State string

const (
	StateReady     State = "ready"
	StateSearching State = "searching"
	StateLoading   State = "loading"
	StateError     State = "error"
	StateResults   State = "results"
)

// Bar displays the search state, active preferences and keybinding hints.
type Bar struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	state       State
	message     string
	resultCount int
	exhausted   bool
	prefs       domain.SearchPreferences
	width       int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		prefs:  domain.DefaultSearchPreferences(),
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update is a no-op; the bar is driven through its setters.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	return s, nil
}

// View renders the bar as two lines: state plus preferences, then hints.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderPreferences()

	padding := max(1, s.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	top := s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", padding) + right)

	return top + "\n" + s.renderHints()
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateSearching:
		return s.styles.Muted.Render("Searching...")
	case StateLoading:
		return s.styles.Muted.Render(fmt.Sprintf("%d results, loading more...", s.resultCount))
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render("Error: " + s.message)
		}
		return s.styles.Error.Render("Error")
	case StateReady, StateResults:
	}

	if s.message != "" {
		return s.styles.Normal.Render(s.message)
	}
	if s.resultCount > 0 {
		text := fmt.Sprintf("%d results", s.resultCount)
		if s.exhausted {
			text += " (all loaded)"
		}
		return s.styles.Normal.Render(text)
	}
	return s.styles.Muted.Render("Ready")
}

func (s *Bar) renderPreferences() string {
	parts := []string{
		"sort: " + s.prefs.Strategy.String(),
		"show: " + s.prefs.Categories.String(),
	}
	if s.prefs.WebOfTrust {
		parts = append(parts, "wot")
	}
	return s.styles.Subtitle.Render(strings.Join(parts, "  "))
}

func (s *Bar) renderHints() string {
	var bindings []key.Binding
	if s.state == StateResults && s.resultCount > 0 {
		bindings = s.keymap.ResultsHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, h.Key+": "+h.Desc)
	}
	return s.styles.Help.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a transient message shown in place of the result count.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetResultCount sets the result count.
func (s *Bar) SetResultCount(count int) {
	s.resultCount = count
}

// ResultCount returns the current result count.
func (s *Bar) ResultCount() int {
	return s.resultCount
}

// SetExhausted marks whether the session has no further pages.
func (s *Bar) SetExhausted(exhausted bool) {
	s.exhausted = exhausted
}

// SetPreferences sets the strategy and categories shown on the right.
func (s *Bar) SetPreferences(p domain.SearchPreferences) {
	s.prefs = p
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.resultCount = 0
	s.exhausted = false
}
