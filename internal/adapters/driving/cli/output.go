package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/plaza/internal/core/domain"
)

// Output formats accepted by --format.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

const summaryWidth = 100

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	metaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	trustStyle = map[domain.TrustLevel]lipgloss.Style{
		domain.TrustHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		domain.TrustMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		domain.TrustLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		domain.TrustNegative: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
)

// colorEnabled reports whether w is an interactive terminal.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func validFormat(format string) error {
	switch format {
	case formatTable, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("%w: unknown format %q (want table, json or yaml)", domain.ErrInvalidInput, format)
	}
}

// writeStructured writes v as JSON or YAML.
func writeStructured(cmd *cobra.Command, format string, v any) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}
}

func outputResults(cmd *cobra.Command, format string, results []domain.SearchResult) error {
	if format != formatTable {
		if results == nil {
			results = []domain.SearchResult{}
		}
		return writeStructured(cmd, format, results)
	}
	return outputResultsTable(cmd, results)
}

func outputResultsTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	color := colorEnabled(cmd.OutOrStdout())
	render := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		res := &results[i]
		title := res.Title
		if title == "" {
			title = res.ID
		}

		cmd.Printf("  [%d] %s (%s)\n", i+1, render(titleStyle, title), res.Category)
		if meta := resultMeta(res, time.Now()); meta != "" {
			cmd.Printf("      %s\n", render(metaStyle, meta))
		}
		if res.Metadata.TrustLevel != nil {
			level := *res.Metadata.TrustLevel
			cmd.Printf("      trust: %s\n", render(trustStyle[level], level.String()))
		}
		if summary := oneLine(res.Summary); summary != "" && summary != title {
			cmd.Printf("      %s\n", summary)
		}
		cmd.Println()
	}
	return nil
}

// resultMeta renders the counters that apply to the result's category.
func resultMeta(res *domain.SearchResult, now time.Time) string {
	m := res.Metadata
	var parts []string
	if res.Category == domain.CategoryProfile {
		if m.FollowerCount != nil {
			parts = append(parts, humanize.Comma(int64(*m.FollowerCount))+" followers")
		}
		if m.FollowingCount != nil {
			parts = append(parts, humanize.Comma(int64(*m.FollowingCount))+" following")
		}
		if m.Verified != nil && *m.Verified {
			parts = append(parts, "verified")
		}
	} else {
		if m.LikeCount != nil {
			parts = append(parts, humanize.Comma(int64(*m.LikeCount))+" likes")
		}
		if m.ReplyCount != nil {
			parts = append(parts, humanize.Comma(int64(*m.ReplyCount))+" replies")
		}
		if m.RepostCount != nil {
			parts = append(parts, humanize.Comma(int64(*m.RepostCount))+" reposts")
		}
	}

	ts := m.RecentActivityTimestamp
	if ts == nil {
		ts = m.Timestamp
	}
	if ts != nil {
		parts = append(parts, humanize.RelTime(time.Unix(*ts, 0), now, "ago", "from now"))
	}
	return strings.Join(parts, " · ")
}

// oneLine collapses whitespace and truncates to summaryWidth runes.
func oneLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= summaryWidth {
		return s
	}
	return string(runes[:summaryWidth-1]) + "…"
}
