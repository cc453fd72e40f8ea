package modal

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/plaza/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/plaza/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/plaza/internal/core/domain"
)

// DefaultMarkdownStyle is the glamour style used for result bodies.
const DefaultMarkdownStyle = "dark"

// Renderer draws modals.
type Renderer struct {
	styles        *styles.Styles
	keymap        *keymap.KeyMap
	markdownStyle string
}

// NewRenderer creates a renderer. An empty markdownStyle selects
// DefaultMarkdownStyle.
func NewRenderer(s *styles.Styles, km *keymap.KeyMap, markdownStyle string) *Renderer {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	if markdownStyle == "" {
		markdownStyle = DefaultMarkdownStyle
	}
	return &Renderer{styles: s, keymap: km, markdownStyle: markdownStyle}
}

// Render draws m framed for a terminal of the given width.
func (r *Renderer) Render(m Modal, width int) string {
	inner := max(20, width-6)

	var body string
	switch m.Kind {
	case KindDetail:
		body = r.detail(m.Result, inner-4)
	case KindStrategy:
		body = r.strategies(m.Cursor)
	case KindHelp:
		body = r.help()
	}

	title := m.Title
	if title == "" {
		title = m.Kind.String()
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		r.styles.Title.Render(title),
		"",
		body,
		"",
		r.styles.Help.Render("esc: close"),
	)
	return r.styles.Modal.Width(inner).Render(content)
}

func (r *Renderer) detail(res *domain.SearchResult, width int) string {
	if res == nil {
		return r.styles.Muted.Render("Nothing selected")
	}

	source := Markdown(res)
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.markdownStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return source
	}
	out, err := renderer.Render(source)
	if err != nil {
		return source
	}
	return strings.TrimRight(out, "\n")
}

func (r *Renderer) strategies(cursor int) string {
	lines := make([]string, 0, len(domain.Strategies()))
	for i, s := range domain.Strategies() {
		if i == cursor {
			lines = append(lines, r.styles.Selected.Render("> "+s.Description()))
		} else {
			lines = append(lines, r.styles.Normal.Render("  "+s.Description()))
		}
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) help() string {
	var lines []string
	for _, group := range r.keymap.FullHelp() {
		for _, b := range group {
			lines = append(lines, helpLine(b))
		}
		lines = append(lines, "")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

func helpLine(b key.Binding) string {
	h := b.Help()
	return fmt.Sprintf("  %-8s %s", h.Key, h.Desc)
}

// Markdown renders a result as a markdown document.
func Markdown(res *domain.SearchResult) string {
	var b strings.Builder

	title := res.Title
	if title == "" {
		title = res.ID
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if res.Summary != "" {
		b.WriteString(res.Summary)
		b.WriteString("\n\n")
	}

	m := res.Metadata
	b.WriteString("| | |\n|---|---|\n")
	row := func(name, value string) {
		fmt.Fprintf(&b, "| %s | %s |\n", name, value)
	}
	row("category", res.Category.String())
	if res.Author != "" {
		row("author", "`"+res.Author+"`")
	}
	if created := m.CreatedAt(); !created.IsZero() {
		row("created", created.Format(time.RFC3339))
	}
	if res.Category == domain.CategoryProfile {
		row("followers", fmt.Sprint(domain.Deref(m.FollowerCount)))
		row("following", fmt.Sprint(domain.Deref(m.FollowingCount)))
		if domain.Deref(m.Verified) {
			row("verified", "yes")
		}
	} else {
		row("likes", fmt.Sprint(domain.Deref(m.LikeCount)))
		row("replies", fmt.Sprint(domain.Deref(m.ReplyCount)))
		row("reposts", fmt.Sprint(domain.Deref(m.RepostCount)))
	}
	if m.QualityScore != nil {
		row("quality", fmt.Sprintf("%.2f", *m.QualityScore))
	}
	if m.TrustLevel != nil {
		row("trust", fmt.Sprintf("%s (%g)", m.TrustLevel.String(), domain.Deref(m.TrustScore)))
	}

	return b.String()
}
