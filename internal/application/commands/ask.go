package commands

import (
	"context"
	"fmt"
	"strings"

	"fieldnotes/internal/application"
	"fieldnotes/internal/ports"
)

// AskResult contains the assistant's answer to a corpus question
type AskResult struct {
	Question string
	Answer   string
}

// AskCommand answers a natural-language question about the corpus
type AskCommand struct {
	repo      ports.CorpusRepository
	assistant ports.ResearchAssistant
	Question  string
}

// NewAskCommand creates a new AskCommand
func NewAskCommand(repo ports.CorpusRepository, assistant ports.ResearchAssistant, question string) *AskCommand {
	return &AskCommand{
		repo:      repo,
		assistant: assistant,
		Question:  question,
	}
}

// Validate checks if the question is usable
func (c *AskCommand) Validate() error {
	if strings.TrimSpace(c.Question) == "" {
		return &application.ValidationError{
			Field:   "question",
			Message: "question cannot be empty",
		}
	}
	return nil
}

// Execute runs the ask command
func (c *AskCommand) Execute(ctx context.Context) (*AskResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if !c.assistant.IsAvailable() {
		return nil, application.ErrAssistantUnavailable
	}

	outline, err := corpusOutline(c.repo)
	if err != nil {
		return nil, err
	}

	answer, err := c.assistant.Ask(c.Question, outline)
	if err != nil {
		return nil, fmt.Errorf("failed to get answer: %w", err)
	}

	return &AskResult{
		Question: c.Question,
		Answer:   answer,
	}, nil
}
