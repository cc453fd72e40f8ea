package driving

import (
	"context"

	"github.com/custodia-labs/plaza/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search fetches, ranks and paginates results for query.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// Fetch returns the enriched but unranked profile and content lists.
	Fetch(ctx context.Context, query string, opts domain.SearchOptions) (*domain.ResultSet, error)

	// NewSession starts an incremental "load more" search for query.
	NewSession(query string, opts domain.SearchOptions) SearchSession

	// Score returns the key strategy orders res by, at the reference time
	// Search ranks with.
	Score(strategy domain.RankingStrategy, res domain.SearchResult) float64
}

// SearchSession accumulates pages of results for a single query.
// Changing the strategy or categories re-ranks locally without refetching.
type SearchSession interface {
	// ID identifies the session in logs.
	ID() string

	// Query returns the search term.
	Query() string

	// LoadMore fetches the next page and returns how many new results arrived.
	// It returns domain.ErrSessionExhausted once every category is drained.
	LoadMore(ctx context.Context) (int, error)

	// Results returns the accumulated results in ranked order.
	Results() []domain.SearchResult

	// Exhausted reports whether no further pages are available.
	Exhausted() bool

	// Strategy returns the current ranking strategy.
	Strategy() domain.RankingStrategy

	// SetStrategy changes the ranking strategy.
	SetStrategy(s domain.RankingStrategy)

	// Categories returns the current category selection.
	Categories() domain.CategorySet

	// SetCategories changes which categories are shown.
	SetCategories(c domain.CategorySet)
}
