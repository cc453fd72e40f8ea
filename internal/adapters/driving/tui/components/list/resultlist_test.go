package list

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/plaza/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/plaza/internal/core/domain"
)

func sampleResults() []domain.SearchResult {
	level := domain.TrustHigh
	return []domain.SearchResult{
		{
			ID: "alice", Category: domain.CategoryProfile, Title: "Alice", Summary: "runs a relay",
			Metadata: domain.Metadata{FollowerCount: domain.Ptr(1500), Verified: domain.Ptr(true), TrustLevel: &level},
		},
		{
			ID: "note-1", Category: domain.CategoryContent, Title: "gm", Summary: "gm\nfrom the relay",
			Metadata: domain.Metadata{LikeCount: domain.Ptr(3), ReplyCount: domain.Ptr(1)},
		},
		{ID: "bob", Category: domain.CategoryProfile, Title: "Bob"},
	}
}

func TestNewResultList(t *testing.T) {
	list := NewResultList(styles.DefaultStyles())

	require.NotNil(t, list)
	assert.Equal(t, 0, list.Selected())
	assert.True(t, list.IsEmpty())
	assert.Nil(t, list.Init())
	assert.Nil(t, list.SelectedResult())
}

func TestNewResultList_NilStyles(t *testing.T) {
	list := NewResultList(nil)

	assert.NotNil(t, list.styles)
}

func TestResultList_SetResults(t *testing.T) {
	list := NewResultList(nil)
	list.SetResults(sampleResults())
	list.SetSelected(2)

	list.SetResults(sampleResults())

	assert.Equal(t, 3, list.Count())
	assert.Equal(t, 0, list.Selected())
}

func TestResultList_SetSelectedIgnoresOutOfRange(t *testing.T) {
	list := NewResultList(nil)
	list.SetResults(sampleResults())

	list.SetSelected(5)
	assert.Equal(t, 0, list.Selected())
	list.SetSelected(-1)
	assert.Equal(t, 0, list.Selected())
}

func TestResultList_Navigation(t *testing.T) {
	list := NewResultList(nil)
	list.SetResults(sampleResults())

	list.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, list.Selected())

	list.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	list.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, list.Selected(), "stops at the last result")

	list.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.Equal(t, 0, list.Selected())

	list.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, list.Selected(), "stops at the first result")

	list.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	assert.Equal(t, 2, list.Selected())
}

func TestResultList_ReplaceResultsKeepsSelection(t *testing.T) {
	list := NewResultList(nil)
	results := sampleResults()
	list.SetResults(results)
	list.SetSelected(1)

	reordered := []domain.SearchResult{results[2], results[1], results[0]}
	list.ReplaceResults(reordered)
	assert.Equal(t, "note-1", list.SelectedResult().ID)

	list.ReplaceResults([]domain.SearchResult{results[0]})
	assert.Equal(t, 0, list.Selected(), "missing selection resets to the top")
}

func TestResultList_View(t *testing.T) {
	list := NewResultList(nil)
	list.SetDimensions(100, 30)

	assert.Contains(t, list.View(), "No results")

	list.SetResults(sampleResults())
	view := list.View()

	assert.Contains(t, view, "Results (3)")
	assert.Contains(t, view, "Alice")
	assert.Contains(t, view, "[profile]")
	assert.Contains(t, view, "[content]")
	assert.Contains(t, view, "1,500 followers")
	assert.Contains(t, view, "trust high")
	assert.Contains(t, view, "gm from the relay")
}

func TestResultList_ViewScrollsToSelection(t *testing.T) {
	list := NewResultList(nil)
	list.SetDimensions(80, 5)
	list.SetResults(sampleResults())
	list.SetSelected(2)

	view := list.View()

	assert.Contains(t, view, "Bob")
	assert.NotContains(t, view, "Alice")
}

func TestSignals(t *testing.T) {
	results := sampleResults()

	assert.Equal(t, "1,500 followers · verified", Signals(&results[0]))
	assert.Equal(t, "3 likes · 1 replies", Signals(&results[1]))
	assert.Equal(t, "0 followers", Signals(&results[2]))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "héll…", Truncate("héllo wörld", 5))
	assert.Equal(t, "a", Truncate("abc", 1))
}
