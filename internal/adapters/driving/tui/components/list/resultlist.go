// Package list provides the ranked result list for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/plaza/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/plaza/internal/core/domain"
)

// linesPerResult is the height of one rendered result.
const linesPerResult = 3

// ResultList displays ranked results in a navigable list.
type ResultList struct {
	results  []domain.SearchResult
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		case "home", "g":
			r.selected = 0
		case "end", "G":
			r.selected = max(0, len(r.results)-1)
		}
	}
	return r, nil
}

// View renders the visible window of results around the selection.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	visible := max(1, (r.height-2)/linesPerResult)
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := min(len(r.results), start+visible)

	lines := make([]string, 0, 2+(end-start))
	lines = append(lines,
		r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.results))),
		"")
	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, &r.results[i]))
	}

	return strings.Join(lines, "\n")
}

// renderResult formats a result as a title line, a signal line and a preview.
func (r *ResultList) renderResult(index int, res *domain.SearchResult) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	title := res.Title
	if title == "" {
		title = "(untitled)"
	}
	titleWidth := max(10, r.width-16)
	title = Truncate(title, titleWidth)

	badge := "[" + res.Category.String() + "]"
	var titleLine string
	if index == r.selected {
		titleLine = r.styles.Selected.Render(fmt.Sprintf("%s%-*s ", indicator, titleWidth, title)) +
			" " + r.styles.Badge.Render(badge)
	} else {
		titleLine = r.styles.Normal.Render(fmt.Sprintf("%s%-*s ", indicator, titleWidth, title)) +
			" " + r.styles.Badge.Render(badge)
	}

	signals := r.styles.Muted.Render("    " + Signals(res))
	if level := res.Metadata.TrustLevel; level != nil {
		signals += "  " + r.styles.Trust(*level).Render("trust "+level.String())
	}

	preview := Truncate(strings.Join(strings.Fields(res.Summary), " "), max(20, r.width-6))
	return titleLine + "\n" + signals + "\n" + r.styles.Muted.Render("    "+preview)
}

// Signals summarises the counters that drive ranking for the result's category.
func Signals(res *domain.SearchResult) string {
	m := res.Metadata
	var parts []string
	if res.Category == domain.CategoryProfile {
		parts = append(parts, humanize.Comma(int64(domain.Deref(m.FollowerCount)))+" followers")
		if domain.Deref(m.Verified) {
			parts = append(parts, "verified")
		}
	} else {
		parts = append(parts,
			humanize.Comma(int64(domain.Deref(m.LikeCount)))+" likes",
			humanize.Comma(int64(domain.Deref(m.ReplyCount)))+" replies")
	}
	if created := m.CreatedAt(); !created.IsZero() {
		parts = append(parts, humanize.Time(created))
	}
	return strings.Join(parts, " · ")
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 1 {
		return string(runes[:n])
	}
	return string(runes[:n-1]) + "…"
}

// SetResults replaces the list and resets the selection.
func (r *ResultList) SetResults(results []domain.SearchResult) {
	r.results = results
	r.selected = 0
}

// ReplaceResults swaps in a re-ranked list and keeps the selection on the
// same result when it is still present.
func (r *ResultList) ReplaceResults(results []domain.SearchResult) {
	var keep string
	if sel := r.SelectedResult(); sel != nil {
		keep = sel.ID
	}

	r.results = results
	r.selected = 0
	for i := range results {
		if results[i].ID == keep {
			r.selected = i
			break
		}
	}
}

// Results returns the current results.
func (r *ResultList) Results() []domain.SearchResult {
	return r.results
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.results) {
		r.selected = index
	}
}

// SelectedResult returns the currently selected result, or nil if none.
func (r *ResultList) SelectedResult() *domain.SearchResult {
	if r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}
