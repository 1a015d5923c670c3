package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fieldnotes/internal/adapters/claudecli"
	"fieldnotes/internal/application/commands"
)

var assistantModel string

var triageCmd = &cobra.Command{
	Use:   "triage",
	Short: "Suggest destinations for inbox clippings",
	Long: `Ask the assistant where each inbox clipping belongs: which section,
whether it should merge into an existing note, and a proposed title for
new notes. Suggestions are printed for review; nothing is moved.

Requires the claude CLI on PATH.

Example:
  fieldnotes-cli triage --model sonnet`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		assistant := claudecli.NewAssistant(claudecli.WithModel(assistantModel))
		triageCmd := commands.NewTriageCommand(GetRepo(), assistant)
		result, err := triageCmd.Execute(ctx)
		if err != nil {
			return err
		}

		if len(result.Suggestions) == 0 {
			fmt.Println(result.Message)
			return nil
		}

		for _, s := range result.Suggestions {
			fmt.Printf("%s\n", s.Clipping)
			if s.Slug != "" {
				fmt.Printf("  merge into %s/%s\n", s.Section, s.Slug)
			} else {
				fmt.Printf("  new note in %s/: %q\n", s.Section, s.Title)
			}
			if s.Reasoning != "" {
				fmt.Printf("  %s\n", s.Reasoning)
			}
		}
		return nil
	},
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question about the corpus",
	Long: `Ask the assistant a free-form question grounded in the corpus
outline. The answer names relevant note slugs so you can follow up with
show.

Requires the claude CLI on PATH.

Example:
  fieldnotes-cli ask "which apps have a global quick-capture hotkey?"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		assistant := claudecli.NewAssistant(claudecli.WithModel(assistantModel))
		askCmd := commands.NewAskCommand(GetRepo(), assistant, args[0])
		result, err := askCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Answer)
		return nil
	},
}

func init() {
	triageCmd.PersistentFlags().StringVar(&assistantModel, "model", "haiku", "claude model to use")
	askCmd.Flags().StringVar(&assistantModel, "model", "haiku", "claude model to use")
	rootCmd.AddCommand(triageCmd)
	rootCmd.AddCommand(askCmd)
}
