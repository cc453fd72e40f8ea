package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var trustViewer string

var trustCmd = &cobra.Command{
	Use:   "trust [pubkey]",
	Short: "Show the web-of-trust score of an account",
	Long: `Counts how many accounts the viewer follows also follow the target,
minus how many of them mute it.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrust,
}

func init() {
	trustCmd.Flags().StringVar(&trustViewer, "viewer", "", "pubkey whose follows define trust (default from settings)")
	rootCmd.AddCommand(trustCmd)
}

func runTrust(cmd *cobra.Command, args []string) error {
	if trustService == nil {
		return errors.New("trust service not configured")
	}

	viewer := trustViewer
	if viewer == "" {
		viewer = loadSettings().Trust.Viewer
	}
	if viewer == "" {
		return errors.New("no viewer configured; pass --viewer or run 'plaza settings trust --viewer <pubkey>'")
	}

	score, err := trustService.Score(cmd.Context(), viewer, args[0])
	if err != nil {
		return fmt.Errorf("trust failed: %w", err)
	}

	cmd.Printf("%s: %g\n", args[0], score)
	return nil
}
