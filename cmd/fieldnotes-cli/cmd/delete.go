package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fieldnotes/internal/application/commands"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <slug>",
	Short: "Delete a note",
	Long: `Delete a note from the corpus.

Warning: this cannot be undone, and references to the note go
unresolved. Prefer archive unless the note is truly disposable.

Example:
  fieldnotes-cli delete scratch-note`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		deleteCmd := commands.NewDeleteCommand(GetRepo(), args[0])
		result, err := deleteCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
