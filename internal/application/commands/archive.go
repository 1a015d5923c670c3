package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fieldnotes/internal/application"
	"fieldnotes/internal/domain"
	"fieldnotes/internal/ports"
)

// ArchiveResult contains the result of an archive operation
type ArchiveResult struct {
	Note    *domain.Note
	Message string
}

// ArchiveCommand moves a note into the archive section
type ArchiveCommand struct {
	repo ports.CorpusRepository
	Slug string
}

// NewArchiveCommand creates a new ArchiveCommand
func NewArchiveCommand(repo ports.CorpusRepository, slug string) *ArchiveCommand {
	return &ArchiveCommand{
		repo: repo,
		Slug: slug,
	}
}

// Validate checks if the archive operation is valid
func (c *ArchiveCommand) Validate() error {
	return application.ValidateSlug("slug", strings.TrimSpace(c.Slug))
}

// Execute runs the archive command
func (c *ArchiveCommand) Execute(ctx context.Context) (*ArchiveResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	note, err := c.repo.Archive(c.Slug)
	if err != nil {
		if errors.Is(err, application.ErrAlreadyArchived) {
			return nil, &application.ArchiveError{Slug: c.Slug, Reason: "note is already archived"}
		}
		return nil, fmt.Errorf("failed to archive %s: %w", c.Slug, err)
	}

	return &ArchiveResult{
		Note:    note,
		Message: fmt.Sprintf("Archived %s", c.Slug),
	}, nil
}

// UnarchiveResult contains the result of an unarchive operation
type UnarchiveResult struct {
	Note    *domain.Note
	Message string
}

// UnarchiveCommand restores an archived note into a regular section
type UnarchiveCommand struct {
	repo    ports.CorpusRepository
	Slug    string
	Section string
}

// NewUnarchiveCommand creates a new UnarchiveCommand
func NewUnarchiveCommand(repo ports.CorpusRepository, slug, section string) *UnarchiveCommand {
	return &UnarchiveCommand{
		repo:    repo,
		Slug:    slug,
		Section: section,
	}
}

// Validate checks if the unarchive operation is valid
func (c *UnarchiveCommand) Validate() error {
	if err := application.ValidateSlug("slug", strings.TrimSpace(c.Slug)); err != nil {
		return err
	}
	return application.ValidateSection("section", c.Section)
}

// Execute runs the unarchive command
func (c *UnarchiveCommand) Execute(ctx context.Context) (*UnarchiveResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	note, err := c.repo.Unarchive(c.Slug, c.Section)
	if err != nil {
		return nil, fmt.Errorf("failed to unarchive %s: %w", c.Slug, err)
	}

	return &UnarchiveResult{
		Note:    note,
		Message: fmt.Sprintf("Restored %s to %s", c.Slug, c.Section),
	}, nil
}
