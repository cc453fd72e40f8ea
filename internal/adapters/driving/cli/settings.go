package cli

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/plaza/internal/core/domain"
)

var (
	settingsTrustViewer  string
	settingsTrustDisable bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and change default search settings",
	Long: heredoc.Doc(`
		Shows and edits the defaults stored in ~/.plaza/config.toml.
		Running TUI and MCP sessions pick up changes automatically.
	`),
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsStrategyCmd = &cobra.Command{
	Use:       "strategy [name]",
	Short:     "Set the default ranking strategy",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"relevance", "date", "popularity", "trust", "name"},
	RunE:      runSettingsStrategy,
}

var settingsCategoriesCmd = &cobra.Command{
	Use:   "categories [category...]",
	Short: "Set the default result categories",
	Long:  `Sets which categories are searched by default: profile, content or both.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSettingsCategories,
}

var settingsTrustCmd = &cobra.Command{
	Use:   "trust",
	Short: "Enable or disable web-of-trust scoring",
	Example: heredoc.Doc(`
		plaza settings trust --viewer npub1...
		plaza settings trust --disable
	`),
	Args: cobra.NoArgs,
	RunE: runSettingsTrust,
}

func init() {
	settingsTrustCmd.Flags().StringVar(&settingsTrustViewer, "viewer", "", "pubkey whose follows define trust")
	settingsTrustCmd.Flags().BoolVar(&settingsTrustDisable, "disable", false, "turn web-of-trust scoring off")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsStrategyCmd)
	settingsCmd.AddCommand(settingsCategoriesCmd)
	settingsCmd.AddCommand(settingsTrustCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Strategy: %s\n", settings.Search.Strategy.Description())
	cmd.Printf("  Categories: %s\n", settings.Search.Categories)
	cmd.Printf("  Page size: %d\n", settings.Search.PageSize)
	cmd.Println()

	cmd.Println("[Trust]")
	if settings.Trust.Enabled {
		cmd.Printf("  Enabled: yes\n")
	} else {
		cmd.Printf("  Enabled: no\n")
	}
	if settings.Trust.IsConfigured() {
		cmd.Printf("  Viewer: %s\n", settings.Trust.Viewer)
	} else {
		cmd.Printf("  Viewer: (not set)\n")
	}

	return nil
}

func runSettingsStrategy(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	strategy, err := domain.ParseStrategy(args[0])
	if err != nil {
		return err
	}
	if err := settingsService.SetStrategy(strategy); err != nil {
		return fmt.Errorf("failed to save strategy: %w", err)
	}

	cmd.Printf("Default strategy set to %s\n", strategy)
	return nil
}

func runSettingsCategories(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cats, err := domain.ParseCategorySet(args)
	if err != nil {
		return err
	}
	if err := settingsService.SetCategories(cats); err != nil {
		return fmt.Errorf("failed to save categories: %w", err)
	}

	cmd.Printf("Default categories set to %s\n", cats)
	return nil
}

func runSettingsTrust(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	enabled := !settingsTrustDisable
	if err := settingsService.SetTrust(enabled, settingsTrustViewer); err != nil {
		return fmt.Errorf("failed to save trust settings: %w", err)
	}

	if enabled {
		cmd.Println("Web of trust enabled")
	} else {
		cmd.Println("Web of trust disabled")
	}
	return nil
}
