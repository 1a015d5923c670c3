package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"fieldnotes/internal/application/commands"
)

var syncFull bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Bring the index up to date",
	Long: `Synchronize the SQLite index with the corpus on disk. By default
only files whose mtime changed since the last sync are re-read; --full
rebuilds the index from scratch.

The index is a cache: it is always safe to delete and resync.

Examples:
  fieldnotes-cli sync
  fieldnotes-cli sync --full`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		idx, err := GetIndex()
		if err != nil {
			return err
		}

		syncCmd := commands.NewSyncCommand(idx, syncFull)
		stats, err := syncCmd.Execute(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Scanned %d file(s) in %s: %d added, %d updated, %d deleted\n",
			stats.FilesScanned, stats.Duration.Round(time.Millisecond), stats.NotesAdded, stats.NotesUpdated, stats.NotesDeleted)
		return nil
	},
}

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus statistics",
	Long: `Print note counts by status and app, word totals, cross-reference
and citation counts, and the number of known-broken links.

Example:
  fieldnotes-cli stats --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		idx, err := GetIndex()
		if err != nil {
			return err
		}

		statsCmd := commands.NewStatsCommand(idx)
		stats, err := statsCmd.Execute(ctx)
		if err != nil {
			return err
		}

		if statsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		}

		fmt.Printf("Notes:       %d (%d words)\n", stats.Notes, stats.Words)
		for status, n := range stats.ByStatus {
			fmt.Printf("  %-12s %d\n", status, n)
		}
		if len(stats.ByApp) > 0 {
			fmt.Println("By app:")
			for app, n := range stats.ByApp {
				fmt.Printf("  %-12s %d\n", app, n)
			}
		}
		fmt.Printf("Edges:       %d\n", stats.Edges)
		fmt.Printf("Citations:   %d\n", stats.Citations)
		fmt.Printf("Broken:      %d\n", stats.BrokenLinks)
		return nil
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncFull, "full", false, "rebuild the index from scratch")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "emit stats as JSON")
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(statsCmd)
}
