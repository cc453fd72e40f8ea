package ranking

import (
	"slices"
	"time"

	"github.com/custodia-labs/plaza/internal/core/domain"
)

// Ranker merges and orders search results.
// The zero value is ready to use and reads the wall clock.
type Ranker struct {
	// Now supplies the reference time for recency bonuses.
	// Nil means time.Now.
	Now func() time.Time
}

// Rank orders results with the wall clock. See Ranker.Rank.
func Rank(
	profiles, contents []domain.SearchResult,
	cats domain.CategorySet,
	s domain.RankingStrategy,
) []domain.SearchResult {
	return Ranker{}.Rank(profiles, contents, cats, s)
}

// Rank concatenates profiles (if selected) then contents (if selected) and
// returns a new slice sorted by s. Inputs are never modified. Nothing is
// dropped or deduplicated; an empty selection yields an empty slice.
func (r Ranker) Rank(
	profiles, contents []domain.SearchResult,
	cats domain.CategorySet,
	s domain.RankingStrategy,
) []domain.SearchResult {
	merged := Merge(profiles, contents, cats)
	slices.SortStableFunc(merged, r.Comparator(s))
	return merged
}

// Merge concatenates the selected lists into a fresh slice in
// profile-then-content order.
func Merge(profiles, contents []domain.SearchResult, cats domain.CategorySet) []domain.SearchResult {
	size := 0
	if cats.Has(domain.CategoryProfile) {
		size += len(profiles)
	}
	if cats.Has(domain.CategoryContent) {
		size += len(contents)
	}

	merged := make([]domain.SearchResult, 0, size)
	if cats.Has(domain.CategoryProfile) {
		merged = append(merged, profiles...)
	}
	if cats.Has(domain.CategoryContent) {
		merged = append(merged, contents...)
	}
	return merged
}

func (r Ranker) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}
