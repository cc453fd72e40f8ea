package cli

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/plaza/internal/core/domain"
	"github.com/custodia-labs/plaza/internal/core/ports/driving"
	"github.com/custodia-labs/plaza/internal/logger"
)

var (
	searchLimit      int
	searchOffset     int
	searchPages      int
	searchSort       string
	searchCategories []string
	searchSince      string
	searchFormat     string
	searchWoT        bool
	searchViewer     string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search cached profiles and notes",
	Long: heredoc.Doc(`
		Searches the local event cache for profiles and notes matching the
		query, then merges and ranks them.

		Strategies: relevance, date, popularity, trust, name.
		Categories: profile, content.

		Use --pages to load several pages incrementally; each page fetches
		--limit hits per selected category.
	`),
	Example: heredoc.Doc(`
		plaza search alice
		plaza search bitcoin --category content --sort popularity
		plaza search relay --wot --since "2 weeks ago" --format json
	`),
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	flags := searchCmd.Flags()
	flags.IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	flags.IntVar(&searchOffset, "offset", 0, "number of ranked results to skip")
	flags.IntVar(&searchPages, "pages", 0, "load this many pages incrementally instead of one ranked window")
	flags.StringVarP(&searchSort, "sort", "s", "", "ranking strategy (default from settings)")
	flags.StringSliceVarP(&searchCategories, "category", "c", nil, "categories to include (repeatable)")
	flags.StringVar(&searchSince, "since", "", "only results newer than this date")
	flags.StringVarP(&searchFormat, "format", "f", formatTable, "output format: table, json or yaml")
	flags.BoolVar(&searchWoT, "wot", false, "attach web-of-trust scores")
	flags.StringVar(&searchViewer, "viewer", "", "pubkey whose follows define trust (default from settings)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}
	if err := validFormat(searchFormat); err != nil {
		return err
	}

	opts, err := buildSearchOptions(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var results []domain.SearchResult
	if searchPages > 0 {
		results, err = loadPages(cmd, searchService.NewSession(query, opts), searchPages)
	} else {
		results, err = searchService.Search(ctx, query, opts)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	return outputResults(cmd, searchFormat, results)
}

// buildSearchOptions layers command flags over the stored settings.
func buildSearchOptions(cmd *cobra.Command) (domain.SearchOptions, error) {
	settings := loadSettings()
	opts := domain.SearchOptions{
		Limit:      searchLimit,
		Offset:     searchOffset,
		Strategy:   settings.Search.Strategy,
		Categories: settings.Search.Categories,
		WebOfTrust: settings.Trust.Enabled,
		Viewer:     settings.Trust.Viewer,
	}

	flags := cmd.Flags()
	if flags.Changed("sort") {
		strategy, err := domain.ParseStrategy(searchSort)
		if err != nil {
			return opts, err
		}
		opts.Strategy = strategy
	}
	if flags.Changed("category") {
		cats, err := domain.ParseCategorySet(searchCategories)
		if err != nil {
			return opts, err
		}
		opts.Categories = cats
	}
	if flags.Changed("wot") {
		opts.WebOfTrust = searchWoT
	}
	if searchViewer != "" {
		opts.Viewer = searchViewer
	}
	if opts.WebOfTrust && opts.Viewer == "" {
		return opts, fmt.Errorf("%w: web of trust needs a viewer (--viewer or 'plaza settings trust')",
			domain.ErrInvalidInput)
	}
	if searchSince != "" {
		since, err := dateparse.ParseLocal(searchSince)
		if err != nil {
			return opts, fmt.Errorf("%w: --since %q: %v", domain.ErrInvalidInput, searchSince, err)
		}
		opts.Since = since
	}

	return opts, nil
}

// loadPages pulls up to pages pages through the session.
func loadPages(cmd *cobra.Command, session driving.SearchSession, pages int) ([]domain.SearchResult, error) {
	for page := 1; page <= pages; page++ {
		added, err := session.LoadMore(cmd.Context())
		if errors.Is(err, domain.ErrSessionExhausted) {
			break
		}
		if err != nil {
			return nil, err
		}
		logger.Debug("session %s page %d: %d new results", session.ID(), page, added)
		if session.Exhausted() {
			break
		}
	}
	return session.Results(), nil
}
