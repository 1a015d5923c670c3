package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"fieldnotes/internal/adapters/browser"
	"fieldnotes/internal/markdown"
)

var openCmd = &cobra.Command{
	Use:   "open <slug> [n]",
	Short: "Open a note's cited source in the browser",
	Long: `Open the nth entry of a note's Sources section in the system
browser. With no n, lists the citations so you can pick one.

Examples:
  fieldnotes-cli open claude-desktop
  fieldnotes-cli open claude-desktop 2`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := GetRepo()
		if _, err := repo.Get(args[0]); err != nil {
			return err
		}
		body, err := repo.ReadBody(args[0])
		if err != nil {
			return err
		}

		doc := markdown.Parse(body)
		if len(doc.Citations) == 0 {
			return fmt.Errorf("note %q has no citations", args[0])
		}

		if len(args) == 1 {
			for i, c := range doc.Citations {
				fmt.Printf("%d. %s  %s\n", i+1, c.Label, c.URL)
			}
			return nil
		}

		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 || n > len(doc.Citations) {
			return fmt.Errorf("citation number must be between 1 and %d", len(doc.Citations))
		}

		c := doc.Citations[n-1]
		fmt.Printf("Opening %s\n", c.URL)
		return browser.NewOpener().Open(c.URL)
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
