package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fieldnotes/internal/application/commands"
	"fieldnotes/internal/domain"
)

var listCmd = &cobra.Command{
	Use:   "list [section]",
	Short: "List notes in the corpus",
	Long: `List notes, optionally restricted to one section.

Examples:
  fieldnotes-cli list
  fieldnotes-cli list apps
  fieldnotes-cli list patterns`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		section := ""
		if len(args) > 0 {
			section = args[0]
		}
		ctx := context.Background()

		listCmd := commands.NewListCommand(GetRepo(), section)
		notes, err := listCmd.Execute(ctx)
		if err != nil {
			return err
		}

		for _, n := range notes {
			fmt.Printf("%-32s %-14s %s\n", n.Path, n.Status, n.Title)
		}
		return nil
	},
}

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List corpus sections with note counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		sectionsCmd := commands.NewSectionsCommand(GetRepo())
		sections, err := sectionsCmd.Execute(ctx)
		if err != nil {
			return err
		}

		for _, s := range sections {
			fmt.Printf("%-12s %d note(s)\n", s.Name+"/", len(s.Notes))
		}
		return nil
	},
}

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Display the corpus as a tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		treeCmd := commands.NewTreeCommand(GetRepo())
		root, err := treeCmd.Execute(ctx)
		if err != nil {
			return err
		}

		printTree(root, 0)
		return nil
	},
}

func printTree(node *domain.TreeNode, depth int) {
	if node == nil {
		return
	}
	if node.Parent != nil {
		indent := strings.Repeat("  ", depth-1)
		if node.IsSection() {
			fmt.Printf("%s%s/\n", indent, node.Name)
		} else {
			fmt.Printf("%s%s (%s)\n", indent, node.Name, node.Status)
		}
	}
	for _, child := range node.Children {
		printTree(child, depth+1)
	}
}

var inboxCmd = &cobra.Command{
	Use:   "inbox",
	Short: "List unfiled clippings in the inbox",
	RunE: func(cmd *cobra.Command, args []string) error {
		clippings, err := GetRepo().Inbox()
		if err != nil {
			return err
		}
		if len(clippings) == 0 {
			fmt.Println("Inbox is empty")
			return nil
		}
		for _, c := range clippings {
			fmt.Printf("%-28s %6d bytes  %s\n", c.Name, c.Size, c.Preview)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(sectionsCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(inboxCmd)
}
