package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fieldnotes/internal/application/commands"
)

var newApp string

var newCmd = &cobra.Command{
	Use:   "new <section> <title>",
	Short: "Create a new note",
	Long: `Create a note from the standard template. The slug is derived from
the title and must be unique across the whole corpus.

Examples:
  fieldnotes-cli new apps "Claude Desktop" --app "Claude Desktop"
  fieldnotes-cli new patterns "Quick Capture"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		newCmd := commands.NewNewNoteCommand(GetRepo(), args[0], args[1], newApp)
		result, err := newCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	newCmd.Flags().StringVar(&newApp, "app", "", "product the note studies (omit for synthesis notes)")
	rootCmd.AddCommand(newCmd)
}
