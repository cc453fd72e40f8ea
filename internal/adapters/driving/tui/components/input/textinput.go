// Package input provides the query input for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/plaza/internal/adapters/driving/tui/styles"
)

const (
	charLimit  = 256
	maxHistory = 50
	minWidth   = 20
)

// SearchInput wraps a bubbles textinput and remembers submitted queries.
type SearchInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int

	history []string
	// cursor indexes history while recalling; len(history) means "not recalling".
	cursor int
	draft  string
}

// NewSearchInput creates a focused, empty query input.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Search profiles and notes..."
	ti.Prompt = "› "
	ti.CharLimit = charLimit
	ti.Width = 50
	ti.Focus()

	return &SearchInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init starts the cursor blinking.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles editing keys. Up and down walk the query history.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // only history keys are intercepted
		switch key.Type {
		case tea.KeyUp:
			s.recall(-1)
			return s, nil
		case tea.KeyDown:
			s.recall(1)
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

func (s *SearchInput) recall(step int) {
	if len(s.history) == 0 {
		return
	}
	if s.cursor == len(s.history) {
		s.draft = s.textinput.Value()
	}

	s.cursor = max(0, min(len(s.history), s.cursor+step))
	if s.cursor == len(s.history) {
		s.textinput.SetValue(s.draft)
	} else {
		s.textinput.SetValue(s.history[s.cursor])
	}
	s.textinput.CursorEnd()
}

// Submit returns the trimmed query and records it in the history.
// Blank input returns "" and is not recorded.
func (s *SearchInput) Submit() string {
	query := strings.TrimSpace(s.textinput.Value())
	if query == "" {
		return ""
	}

	if n := len(s.history); n == 0 || s.history[n-1] != query {
		s.history = append(s.history, query)
		if len(s.history) > maxHistory {
			s.history = s.history[len(s.history)-maxHistory:]
		}
	}
	s.cursor = len(s.history)
	s.draft = ""
	return query
}

// History returns submitted queries, oldest first.
func (s *SearchInput) History() []string {
	return s.history
}

// View renders the labelled input box.
func (s *SearchInput) View() string {
	label := s.styles.Title.Render("plaza ")
	field := s.styles.InputField.Render(s.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the current input value.
func (s *SearchInput) Value() string {
	return s.textinput.Value()
}

// SetValue sets the input value.
func (s *SearchInput) SetValue(value string) {
	s.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (s *SearchInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus from the input.
func (s *SearchInput) Blur() {
	s.textinput.Blur()
}

// Focused returns whether the input is focused.
func (s *SearchInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth sizes the text field to the terminal width minus the label.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	s.textinput.Width = max(minWidth, width-12)
}

// Width returns the current width.
func (s *SearchInput) Width() int {
	return s.width
}

// Reset clears the input without touching the history.
func (s *SearchInput) Reset() {
	s.textinput.Reset()
	s.cursor = len(s.history)
	s.draft = ""
}
