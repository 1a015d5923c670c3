package commands

import (
	"context"
	"fmt"
	"strings"

	"fieldnotes/internal/application"
	"fieldnotes/internal/ports"
)

// DeleteResult contains the result of a delete operation
type DeleteResult struct {
	Slug    string
	Message string
}

// DeleteCommand removes a note from the corpus
type DeleteCommand struct {
	repo ports.CorpusRepository
	Slug string
}

// NewDeleteCommand creates a new DeleteCommand
func NewDeleteCommand(repo ports.CorpusRepository, slug string) *DeleteCommand {
	return &DeleteCommand{
		repo: repo,
		Slug: slug,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteCommand) Validate() error {
	return application.ValidateSlug("slug", strings.TrimSpace(c.Slug))
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.repo.Delete(c.Slug); err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", c.Slug, err)
	}

	return &DeleteResult{
		Slug:    c.Slug,
		Message: fmt.Sprintf("Deleted %s", c.Slug),
	}, nil
}
