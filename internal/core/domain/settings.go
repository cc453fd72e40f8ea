package domain

// DefaultPageSize is the number of hits fetched per category per page.
const DefaultPageSize = 20

// SearchPreferences holds the user-selected ranking inputs.
// They are shared between the settings service, the config watcher and the TUI.
type SearchPreferences struct {
	Strategy   RankingStrategy
	Categories CategorySet
	WebOfTrust bool
}

// DefaultSearchPreferences returns relevance over profiles without trust.
func DefaultSearchPreferences() SearchPreferences {
	return SearchPreferences{
		Strategy:   StrategyRelevance,
		Categories: DefaultCategories(),
	}
}

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// Strategy is the default ranking strategy.
	Strategy RankingStrategy

	// Categories is the default category selection.
	Categories CategorySet

	// PageSize is the number of hits per category per page.
	PageSize int
}

// TrustSettings holds web-of-trust configuration.
type TrustSettings struct {
	// Enabled attaches trust scores to search results.
	Enabled bool

	// Viewer is the pubkey whose follows define the trust graph.
	Viewer string
}

// IsConfigured reports whether trust scoring can run.
func (t TrustSettings) IsConfigured() bool {
	return t.Viewer != ""
}

// AppSettings is the full persisted configuration.
type AppSettings struct {
	Search SearchSettings
	Trust  TrustSettings
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Search: SearchSettings{
			Strategy:   StrategyRelevance,
			Categories: DefaultCategories(),
			PageSize:   DefaultPageSize,
		},
	}
}

// Preferences projects the settings onto the shared preference state.
func (s AppSettings) Preferences() SearchPreferences {
	return SearchPreferences{
		Strategy:   s.Search.Strategy,
		Categories: s.Search.Categories,
		WebOfTrust: s.Trust.Enabled && s.Trust.IsConfigured(),
	}
}
