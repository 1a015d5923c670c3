package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fieldnotes/internal/application/commands"
)

var archiveCmd = &cobra.Command{
	Use:   "archive <slug>",
	Short: "Archive a note",
	Long: `Move a note to the archive section and set its status to archived.
References to the note keep working; archived notes stay indexed.

Example:
  fieldnotes-cli archive old-launcher`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		archiveCmd := commands.NewArchiveCommand(GetRepo(), args[0])
		result, err := archiveCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var unarchiveCmd = &cobra.Command{
	Use:   "unarchive <slug> <section>",
	Short: "Restore an archived note",
	Long: `Move a note out of the archive into the given section and mark it
needs-review, since it likely went stale while archived.

Example:
  fieldnotes-cli unarchive old-launcher apps`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		unarchiveCmd := commands.NewUnarchiveCommand(GetRepo(), args[0], args[1])
		result, err := unarchiveCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(unarchiveCmd)
}
