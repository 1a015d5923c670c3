package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"fieldnotes/internal/adapters/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the corpus and re-lint on change",
	Long: `Watch the corpus for edits. Saved notes are re-indexed after a short
debounce and linted, with findings logged as they appear. Runs until
interrupted.

Example:
  fieldnotes-cli watch --debug`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		idx, err := GetIndex()
		if err != nil {
			return err
		}
		linter, err := NewLinter(true)
		if err != nil {
			return err
		}

		watcher, err := watch.NewWatcher(GetRepo(), idx, linter, logger)
		if err != nil {
			return err
		}
		if err := watcher.Start(ctx); err != nil {
			return err
		}
		defer watcher.Stop()

		fmt.Printf("Watching %s (ctrl-c to stop)\n", cfg.Corpus)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh

		stats := watcher.GetStats()
		fmt.Printf("%d event(s), %d sync(s), %d note(s) linted, %d finding(s)\n",
			stats.Events, stats.Syncs, stats.NotesLinted, stats.Findings)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
