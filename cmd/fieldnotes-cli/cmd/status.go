package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fieldnotes/internal/application/commands"
)

var statusCmd = &cobra.Command{
	Use:   "status <slug> <current|needs-review|archived>",
	Short: "Set a note's review status",
	Long: `Update the status field in a note's frontmatter.

Examples:
  fieldnotes-cli status claude-desktop needs-review
  fieldnotes-cli status claude-desktop current`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		statusCmd := commands.NewSetStatusCommand(GetRepo(), args[0], args[1])
		result, err := statusCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
