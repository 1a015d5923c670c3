package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fieldnotes/internal/adapters/render"
	"fieldnotes/internal/application/commands"
)

var showRaw bool

var showCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Show a note",
	Long: `Print a note rendered for the terminal, or the raw Markdown
with --raw.

Examples:
  fieldnotes-cli show claude-desktop
  fieldnotes-cli show claude-desktop --raw`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		showCmd := commands.NewShowCommand(GetRepo(), args[0])
		result, err := showCmd.Execute(ctx)
		if err != nil {
			return err
		}

		if showRaw {
			fmt.Print(string(result.Body))
			return nil
		}
		fmt.Print(render.NewRenderer(100).Render(string(result.Body)))
		return nil
	},
}

var outlineCmd = &cobra.Command{
	Use:   "outline <slug>",
	Short: "Show a note's heading structure",
	Long: `Print the heading tree of a note with the anchor for each heading,
for building section references like [[slug#anchor]].

Example:
  fieldnotes-cli outline claude-desktop`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		outlineCmd := commands.NewOutlineCommand(GetRepo(), args[0])
		outline, err := outlineCmd.Execute(ctx)
		if err != nil {
			return err
		}

		for _, h := range outline.Flatten() {
			indent := strings.Repeat("  ", h.Level-1)
			fmt.Printf("%s%s  #%s\n", indent, h.Text, h.Anchor)
		}
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "print raw Markdown without rendering")
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(outlineCmd)
}
