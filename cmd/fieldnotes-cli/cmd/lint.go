package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fieldnotes/internal/application/commands"
	"fieldnotes/internal/domain"
)

var (
	lintJSON    bool
	lintNoIndex bool
)

var lintCmd = &cobra.Command{
	Use:   "lint [slug]",
	Short: "Lint the corpus against the documentation conventions",
	Long: `Check notes for convention violations: frontmatter shape, title
agreement, heading structure, ragged tables, missing Sources sections,
malformed citation URLs, and unresolved cross-references.

Without a slug the whole corpus is linted, including corpus-wide rules
(duplicate slugs and titles). Inbox clippings are never linted.

Exits non-zero when any error-severity finding is reported, so it can
gate CI.

Examples:
  fieldnotes-cli lint
  fieldnotes-cli lint claude-desktop
  fieldnotes-cli lint --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slug := ""
		if len(args) > 0 {
			slug = args[0]
		}
		ctx := context.Background()

		linter, err := NewLinter(!lintNoIndex)
		if err != nil {
			return err
		}

		lintCmd := commands.NewLintCommand(GetRepo(), linter, slug)
		result, err := lintCmd.Execute(ctx)
		if err != nil {
			return err
		}

		if lintJSON {
			out := make([]map[string]any, 0, len(result.Findings))
			for _, f := range result.Findings {
				out = append(out, map[string]any{
					"rule":     f.Rule,
					"severity": f.Severity.String(),
					"path":     f.Path,
					"line":     f.Line,
					"message":  f.Message,
				})
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				return err
			}
		} else {
			for _, f := range result.Findings {
				fmt.Printf("%s:%d  %s  [%s] %s\n", f.Path, f.Line, f.Severity, f.Rule, f.Message)
			}
			fmt.Printf("%d note(s), %d error(s), %d warning(s)\n", result.Notes, result.Errors, result.Warnings)
		}

		if domain.CountErrors(result.Findings) > 0 {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	lintCmd.Flags().BoolVar(&lintJSON, "json", false, "emit findings as JSON")
	lintCmd.Flags().BoolVar(&lintNoIndex, "no-index", false, "skip cross-reference checks (no index needed)")
	rootCmd.AddCommand(lintCmd)
}
