package commands

import (
	"context"
	"fmt"
	"strings"

	"fieldnotes/internal/application"
	"fieldnotes/internal/domain"
	"fieldnotes/internal/ports"
)

// TriageResult contains filing suggestions for inbox clippings
type TriageResult struct {
	Clippings   []domain.Clipping
	Suggestions []domain.FilingSuggestion
	Message     string
}

// TriageCommand asks the assistant where inbox clippings belong
type TriageCommand struct {
	repo      ports.CorpusRepository
	assistant ports.ResearchAssistant
}

// NewTriageCommand creates a new TriageCommand
func NewTriageCommand(repo ports.CorpusRepository, assistant ports.ResearchAssistant) *TriageCommand {
	return &TriageCommand{
		repo:      repo,
		assistant: assistant,
	}
}

// Execute runs the triage command
func (c *TriageCommand) Execute(ctx context.Context) (*TriageResult, error) {
	clippings, err := c.repo.Inbox()
	if err != nil {
		return nil, fmt.Errorf("failed to read inbox: %w", err)
	}

	if len(clippings) == 0 {
		return &TriageResult{Message: "Inbox is empty"}, nil
	}

	if !c.assistant.IsAvailable() {
		return nil, application.ErrAssistantUnavailable
	}

	outline, err := corpusOutline(c.repo)
	if err != nil {
		return nil, err
	}

	suggestions, err := c.assistant.SuggestFiling(clippings, outline)
	if err != nil {
		return nil, fmt.Errorf("failed to get filing suggestions: %w", err)
	}

	return &TriageResult{
		Clippings:   clippings,
		Suggestions: suggestions,
		Message:     fmt.Sprintf("Got %d suggestions for %d clippings", len(suggestions), len(clippings)),
	}, nil
}

// corpusOutline builds a compact textual summary of the corpus for prompts
func corpusOutline(repo ports.CorpusRepository) (string, error) {
	sections, err := repo.Sections()
	if err != nil {
		return "", fmt.Errorf("failed to list sections: %w", err)
	}

	var b strings.Builder
	for _, section := range sections {
		fmt.Fprintf(&b, "## %s\n", section.Name)
		for _, note := range section.Notes {
			fmt.Fprintf(&b, "- %s: %s (status: %s)\n", note.Slug, note.Title, note.Status)
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}
