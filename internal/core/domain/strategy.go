package domain

import (
	"fmt"
	"strings"
)

const unknownDescription = "Unknown"

// RankingStrategy selects how merged search results are ordered.
type RankingStrategy string

// Available ranking strategies.
const (
	// StrategyRelevance is the default blend of network size, freshness and trust.
	StrategyRelevance RankingStrategy = "relevance"

	// StrategyDate orders newest first.
	StrategyDate RankingStrategy = "date"

	// StrategyPopularity weights engagement and quality.
	StrategyPopularity RankingStrategy = "popularity"

	// StrategyTrust orders by web-of-trust score.
	StrategyTrust RankingStrategy = "trust"

	// StrategyName orders alphabetically by title.
	StrategyName RankingStrategy = "name"
)

// Strategies lists every ranking strategy.
func Strategies() []RankingStrategy {
	return []RankingStrategy{
		StrategyRelevance,
		StrategyDate,
		StrategyPopularity,
		StrategyTrust,
		StrategyName,
	}
}

// IsValid returns true if the strategy is recognised.
func (s RankingStrategy) IsValid() bool {
	switch s {
	case StrategyRelevance, StrategyDate, StrategyPopularity, StrategyTrust, StrategyName:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s RankingStrategy) String() string {
	return string(s)
}

// Description returns a human-readable description of the strategy.
func (s RankingStrategy) Description() string {
	switch s {
	case StrategyRelevance:
		return "Relevance (followers, freshness, trust)"
	case StrategyDate:
		return "Date (newest first)"
	case StrategyPopularity:
		return "Popularity (engagement and quality)"
	case StrategyTrust:
		return "Trust (web of trust score)"
	case StrategyName:
		return "Name (A to Z)"
	default:
		return unknownDescription
	}
}

// Next returns the strategy after s in Strategies order, wrapping around.
func (s RankingStrategy) Next() RankingStrategy {
	all := Strategies()
	for i, candidate := range all {
		if candidate == s {
			return all[(i+1)%len(all)]
		}
	}
	return StrategyRelevance
}

// ParseStrategy converts user input into a RankingStrategy.
// An empty string yields the default, StrategyRelevance.
func ParseStrategy(s string) (RankingStrategy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return StrategyRelevance, nil
	}
	strategy := RankingStrategy(s)
	if !strategy.IsValid() {
		return "", fmt.Errorf("%w: unknown ranking strategy %q", ErrInvalidInput, s)
	}
	return strategy, nil
}
