package domain

import "time"

// SearchOptions configures a search query.
type SearchOptions struct {
	// Limit is the maximum number of results.
	Limit int

	// Offset is the number of results to skip.
	Offset int

	// Strategy orders the merged results. Empty means StrategyRelevance.
	Strategy RankingStrategy

	// Categories selects which result lists are fetched and merged.
	// The zero value falls back to DefaultCategories.
	Categories CategorySet

	// WebOfTrust attaches trust scores and levels relative to the viewer.
	WebOfTrust bool

	// Viewer is the pubkey whose follow graph drives trust scoring.
	Viewer string

	// Since drops results created before it. Zero disables the filter.
	Since time.Time
}

// EffectiveStrategy returns the strategy to apply, defaulting to relevance.
func (o SearchOptions) EffectiveStrategy() RankingStrategy {
	if o.Strategy.IsValid() {
		return o.Strategy
	}
	return StrategyRelevance
}

// EffectiveCategories returns the categories to fetch, defaulting to {profile}.
func (o SearchOptions) EffectiveCategories() CategorySet {
	if o.Categories.IsEmpty() {
		return DefaultCategories()
	}
	return o.Categories
}

// SearchResult represents a single search hit.
// Results are immutable once constructed.
type SearchResult struct {
	// ID is the profile pubkey or the note id.
	ID string `json:"id" yaml:"id"`

	// Category determines which comparator branch applies.
	Category Category `json:"category" yaml:"category"`

	// Title is the display name for profiles or the first line of a note.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Summary is the profile bio or the note body.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Author is the pubkey of the account that published the result.
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// Metadata carries optional ranking signals.
	Metadata Metadata `json:"metadata" yaml:"metadata"`
}

// Metadata is a bag of optional ranking signals.
// A nil field is treated as its zero value by every consumer.
type Metadata struct {
	// Timestamp is the creation time in unix seconds.
	Timestamp *int64 `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`

	// RecentActivityTimestamp is the newest activity in unix seconds.
	RecentActivityTimestamp *int64 `json:"recent_activity,omitempty" yaml:"recent_activity,omitempty"`

	FollowerCount  *int `json:"followers,omitempty" yaml:"followers,omitempty"`
	FollowingCount *int `json:"following,omitempty" yaml:"following,omitempty"`
	LikeCount      *int `json:"likes,omitempty" yaml:"likes,omitempty"`
	ReplyCount     *int `json:"replies,omitempty" yaml:"replies,omitempty"`
	RepostCount    *int `json:"reposts,omitempty" yaml:"reposts,omitempty"`

	// TrustScore is only eligible for ranking when TrustLevel is also set.
	TrustScore *float64    `json:"trust_score,omitempty" yaml:"trust_score,omitempty"`
	TrustLevel *TrustLevel `json:"trust_level,omitempty" yaml:"trust_level,omitempty"`

	// QualityScore is a derived signal in [0,1].
	QualityScore *float64 `json:"quality,omitempty" yaml:"quality,omitempty"`

	// Verified is true when the profile carries a verification identifier.
	Verified *bool `json:"verified,omitempty" yaml:"verified,omitempty"`
}

// CreatedAt returns Timestamp as a time, or the zero time when absent.
func (m Metadata) CreatedAt() time.Time {
	if m.Timestamp == nil {
		return time.Time{}
	}
	return time.Unix(*m.Timestamp, 0).UTC()
}

// ResultSet holds the two independently sourced lists before merging.
type ResultSet struct {
	Profiles []SearchResult
	Contents []SearchResult
}

// Len returns the total number of results across both lists.
func (r *ResultSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Profiles) + len(r.Contents)
}

// Ptr returns a pointer to v. Handy for building Metadata literals.
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns *p, or the zero value when p is nil.
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
