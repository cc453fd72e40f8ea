// Package ranking merges profile and content search results and orders them
// by a user-selected strategy.
//
// Everything here is pure and synchronous: no I/O, no shared state, and no
// error returns. Missing metadata fields are read as zero, so any input,
// including empty slices, produces a valid ordering.
//
// # Components
//
//   - Quality scoring: ProfileQualityScore and ContentQualityScore map raw
//     engagement counters onto [0,1].
//   - Strategy selection: Comparator returns the ordering for one of the
//     closed set of domain.RankingStrategy values.
//   - Merge and rank: Rank concatenates the selected categories and sorts a
//     fresh copy, leaving the inputs untouched.
//
// Equal keys fall back to ascending ID, so results never depend on the
// stability of the underlying sort.
package ranking
