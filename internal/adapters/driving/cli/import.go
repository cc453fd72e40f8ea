package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import events from a JSONL file",
	Long: heredoc.Doc(`
		Imports newline-delimited JSON events into the local store.
		Reads standard input when no file is given or the file is "-".

		Profiles (kind 0), notes (1), contact lists (3), reposts (6),
		reactions (7) and mute lists (10000) are stored. Other kinds are
		skipped and malformed lines are counted.
	`),
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return errors.New("import service not configured")
	}

	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()
		r = f
	}

	stats, err := importService.Import(cmd.Context(), r)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Imported %d events\n", stats.Total())
	cmd.Printf("  Profiles:  %d\n", stats.Profiles)
	cmd.Printf("  Notes:     %d\n", stats.Notes)
	cmd.Printf("  Contacts:  %d\n", stats.Contacts)
	cmd.Printf("  Mutes:     %d\n", stats.Mutes)
	cmd.Printf("  Reactions: %d\n", stats.Reactions)
	cmd.Printf("  Reposts:   %d\n", stats.Reposts)
	if stats.Skipped > 0 {
		cmd.Printf("  Skipped:   %d\n", stats.Skipped)
	}
	if stats.Malformed > 0 {
		cmd.Printf("  Malformed: %d\n", stats.Malformed)
	}
	return nil
}
