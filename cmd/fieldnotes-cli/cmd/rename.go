package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fieldnotes/internal/application/commands"
)

var renameCmd = &cobra.Command{
	Use:   "rename <slug> <new-slug>",
	Short: "Rename a note and rewrite references",
	Long: `Rename a note's slug. Every [[wikilink]] and relative .md link in
the corpus that points at the old slug is rewritten, and the index is
repointed in the same operation.

Example:
  fieldnotes-cli rename claude-desktop claude-desktop-app`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		idx, err := GetIndex()
		if err != nil {
			return err
		}

		renameCmd := commands.NewRenameCommand(GetRepo(), idx, args[0], args[1])
		result, err := renameCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
