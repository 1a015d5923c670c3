package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fieldnotes/internal/application/commands"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the corpus",
	Long: `Search notes by slug, title, or content.

Results are ranked: slug and title matches first, then content matches
with the matching line.

Examples:
  fieldnotes-cli search capture
  fieldnotes-cli search "quick entry"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		searchCmd := commands.NewSearchCommand(GetRepo(), args[0])
		results, err := searchCmd.Execute(ctx)
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("No results found")
			return nil
		}

		for _, r := range results {
			if r.Line > 0 {
				fmt.Printf("%s:%d  %s\n", r.Path, r.Line, r.MatchedText)
			} else {
				fmt.Printf("%s  %s\n", r.Path, r.MatchedText)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
