package commands

import (
	"context"
	"fmt"

	"fieldnotes/internal/application"
	"fieldnotes/internal/domain"
	"fieldnotes/internal/ports"
)

// NewNoteResult contains the result of scaffolding a note
type NewNoteResult struct {
	Note    *domain.Note
	Message string
}

// NewNoteCommand scaffolds a note in a section
type NewNoteCommand struct {
	repo    ports.CorpusRepository
	Section string
	Title   string
	App     string
}

// NewNewNoteCommand creates a new NewNoteCommand
func NewNewNoteCommand(repo ports.CorpusRepository, section, title, app string) *NewNoteCommand {
	return &NewNoteCommand{
		repo:    repo,
		Section: section,
		Title:   title,
		App:     app,
	}
}

// Validate checks if the create operation is valid
func (c *NewNoteCommand) Validate() error {
	if err := application.ValidateSection("section", c.Section); err != nil {
		return err
	}
	if err := application.ValidateRequired("title", c.Title); err != nil {
		return err
	}
	if domain.Slugify(c.Title) == "" {
		return &application.ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title %q yields an empty slug", c.Title),
		}
	}
	return nil
}

// Execute runs the create command
func (c *NewNoteCommand) Execute(ctx context.Context) (*NewNoteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	note, err := c.repo.Create(c.Section, c.Title, c.App)
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return &NewNoteResult{
		Note:    note,
		Message: fmt.Sprintf("Created %s (%s)", note.Slug, note.Path),
	}, nil
}
