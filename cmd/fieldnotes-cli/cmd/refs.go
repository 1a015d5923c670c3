package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fieldnotes/internal/application/commands"
)

var refsCmd = &cobra.Command{
	Use:   "refs [slug]",
	Short: "Show inbound references for a note",
	Long: `With a slug, list every note referencing it and the line of each
reference. Without a slug, list every unresolved reference in the
corpus (links whose target slug does not exist).

Examples:
  fieldnotes-cli refs claude-desktop
  fieldnotes-cli refs`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slug := ""
		if len(args) > 0 {
			slug = args[0]
		}
		ctx := context.Background()

		idx, err := GetIndex()
		if err != nil {
			return err
		}

		refsCmd := commands.NewRefsCommand(idx, slug)
		result, err := refsCmd.Execute(ctx)
		if err != nil {
			return err
		}

		if slug != "" {
			if len(result.Backlinks) == 0 {
				fmt.Printf("No references to %s\n", slug)
				return nil
			}
			for _, e := range result.Backlinks {
				fmt.Printf("%s:%d  %s\n", e.SourcePath, e.Line, e.LinkText)
			}
			return nil
		}

		if len(result.Unresolved) == 0 {
			fmt.Println("No unresolved references")
			return nil
		}
		for _, e := range result.Unresolved {
			fmt.Printf("%s:%d  %s -> %s (missing)\n", e.SourcePath, e.Line, e.LinkText, e.TargetSlug)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refsCmd)
}
