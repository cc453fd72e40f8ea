package ranking

import (
	"cmp"
	"strings"
	"time"

	"github.com/custodia-labs/plaza/internal/core/domain"
)

// Tuning constants. These were chosen empirically and are kept exactly.
const (
	secondsPerDay = 24 * 60 * 60

	popularityFollowerWeight  = 2.0
	popularityFollowingWeight = 0.5
	popularityQualityWeight   = 100.0
	popularityRecencyDays     = 5
	popularityRecencyWeight   = 10.0
	popularityTrustWeight     = 0.3
	popularityContentQuality  = 50.0

	relevanceFollowerWeight = 0.1
	relevanceRecencyDays    = 10
	relevanceRecencyWeight  = 1.0
)

// Comparator returns a comparison function for s using the ranker's clock.
// The result is negative when a ranks before b. Name sorts ascending by
// title; every other strategy sorts its key descending. Ties fall back to
// ascending ID.
func (r Ranker) Comparator(s domain.RankingStrategy) func(a, b domain.SearchResult) int {
	if !s.IsValid() {
		s = domain.StrategyRelevance
	}
	now := r.now()

	return func(a, b domain.SearchResult) int {
		var c int
		if s == domain.StrategyName {
			c = strings.Compare(a.Title, b.Title)
		} else {
			c = cmp.Compare(sortKey(s, &b, now), sortKey(s, &a, now))
		}
		if c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	}
}

// Score returns the numeric key s orders by. Name has no numeric key and
// always returns 0.
func (r Ranker) Score(s domain.RankingStrategy, res domain.SearchResult) float64 {
	if !s.IsValid() {
		s = domain.StrategyRelevance
	}
	return sortKey(s, &res, r.now())
}

func sortKey(s domain.RankingStrategy, res *domain.SearchResult, now time.Time) float64 {
	m := &res.Metadata
	profile := res.Category == domain.CategoryProfile

	switch s {
	case domain.StrategyDate:
		if profile {
			return float64(activityTimestamp(m))
		}
		return float64(domain.Deref(m.Timestamp))

	case domain.StrategyPopularity:
		if profile {
			return float64(domain.Deref(m.FollowerCount))*popularityFollowerWeight +
				float64(domain.Deref(m.FollowingCount))*popularityFollowingWeight +
				domain.Deref(m.QualityScore)*popularityQualityWeight +
				recencyBonus(m, now, popularityRecencyDays, popularityRecencyWeight) +
				gatedTrust(m)*popularityTrustWeight
		}
		return float64(domain.Deref(m.LikeCount)) +
			domain.Deref(m.QualityScore)*popularityContentQuality

	case domain.StrategyTrust:
		return gatedTrust(m)

	case domain.StrategyName:
		return 0

	case domain.StrategyRelevance:
		if profile {
			return float64(domain.Deref(m.FollowerCount))*relevanceFollowerWeight +
				recencyBonus(m, now, relevanceRecencyDays, relevanceRecencyWeight) +
				gatedTrust(m)
		}
		return float64(domain.Deref(m.LikeCount))
	}
	return 0
}

// activityTimestamp is the most recent activity, falling back to creation.
func activityTimestamp(m *domain.Metadata) int64 {
	if m.RecentActivityTimestamp != nil {
		return *m.RecentActivityTimestamp
	}
	return domain.Deref(m.Timestamp)
}

// gatedTrust returns the trust score only when a trust level was assigned.
func gatedTrust(m *domain.Metadata) float64 {
	if m.TrustLevel == nil {
		return 0
	}
	return domain.Deref(m.TrustScore)
}

// recencyBonus decays linearly by whole days: (window-days)*weight while
// 0 <= days < window, zero afterwards.
func recencyBonus(m *domain.Metadata, now time.Time, window int64, weight float64) float64 {
	ts := activityTimestamp(m)
	if ts <= 0 {
		return 0
	}
	days := (now.Unix() - ts) / secondsPerDay
	if days < 0 || days >= window {
		return 0
	}
	return float64(window-days) * weight
}
