// Package cli provides the cobra command tree for plaza.
package cli

import (
	"context"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/plaza/internal/core/domain"
	"github.com/custodia-labs/plaza/internal/core/ports/driving"
	"github.com/custodia-labs/plaza/internal/core/store"
	"github.com/custodia-labs/plaza/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

var verbose bool

// Services configured by the composition root.
var (
	searchService   driving.SearchService
	settingsService driving.SettingsService
	importService   driving.ImportService
	trustService    driving.TrustService
	preferences     *store.Store[domain.SearchPreferences]
	watchConfig     func(ctx context.Context) error
)

// Services bundles the driving ports the commands depend on.
type Services struct {
	Search   driving.SearchService
	Settings driving.SettingsService
	Import   driving.ImportService
	Trust    driving.TrustService

	// Preferences is the shared search preference state.
	Preferences *store.Store[domain.SearchPreferences]

	// WatchConfig blocks until ctx ends, reloading settings when the
	// config file changes. Long-running commands start it in the background.
	WatchConfig func(ctx context.Context) error
}

var rootCmd = &cobra.Command{
	Use:   "plaza",
	Short: "Search and rank a local cache of social events",
	Long: heredoc.Doc(`
		plaza imports signed social events into a local store and answers
		profile and note searches against it.

		Results are ranked by relevance, date, popularity, web-of-trust score
		or name. Defaults come from ~/.plaza/config.toml and can be changed
		with 'plaza settings'.
	`),
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logging to stderr")
}

// SetServices wires the driving ports used by every command.
func SetServices(s Services) {
	searchService = s.Search
	settingsService = s.Settings
	importService = s.Import
	trustService = s.Trust
	preferences = s.Preferences
	watchConfig = s.WatchConfig
}

// SetVersion sets the version reported by 'plaza version'.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// startConfigWatch runs the config watcher until the returned stop is called.
func startConfigWatch(ctx context.Context) (stop func()) {
	if watchConfig == nil {
		return func() {}
	}

	watchCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := watchConfig(watchCtx); err != nil {
			logger.Warn("config watcher stopped: %v", err)
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

// loadSettings returns stored settings, falling back to defaults.
func loadSettings() domain.AppSettings {
	if settingsService == nil {
		return domain.DefaultAppSettings()
	}
	settings, err := settingsService.Get()
	if err != nil || settings == nil {
		logger.Warn("using default settings: %v", err)
		return domain.DefaultAppSettings()
	}
	return *settings
}
