package commands

import (
	"context"
	"fmt"
	"strings"

	"fieldnotes/internal/application"
	"fieldnotes/internal/domain"
	"fieldnotes/internal/ports"
)

// SetStatusResult contains the result of a status change
type SetStatusResult struct {
	Note    *domain.Note
	Message string
}

// SetStatusCommand updates a note's review status in its frontmatter
type SetStatusCommand struct {
	repo   ports.CorpusRepository
	Slug   string
	Status string
}

// NewSetStatusCommand creates a new SetStatusCommand
func NewSetStatusCommand(repo ports.CorpusRepository, slug, status string) *SetStatusCommand {
	return &SetStatusCommand{
		repo:   repo,
		Slug:   slug,
		Status: status,
	}
}

// Validate checks if the status change is valid
func (c *SetStatusCommand) Validate() error {
	if err := application.ValidateSlug("slug", strings.TrimSpace(c.Slug)); err != nil {
		return err
	}
	if _, err := domain.ParseStatus(c.Status); err != nil {
		return &application.ValidationError{
			Field:   "status",
			Message: err.Error(),
		}
	}
	return nil
}

// Execute runs the set-status command
func (c *SetStatusCommand) Execute(ctx context.Context) (*SetStatusResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	status, _ := domain.ParseStatus(c.Status)
	note, err := c.repo.SetStatus(c.Slug, status)
	if err != nil {
		return nil, fmt.Errorf("failed to set status of %s: %w", c.Slug, err)
	}

	return &SetStatusResult{
		Note:    note,
		Message: fmt.Sprintf("Set %s to %s", c.Slug, status),
	}, nil
}
