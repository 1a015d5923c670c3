package commands

import (
	"context"
	"fmt"

	"fieldnotes/internal/application"
	"fieldnotes/internal/domain"
	"fieldnotes/internal/markdown"
	"fieldnotes/internal/ports"
)

// ShowResult contains a note and its raw body
type ShowResult struct {
	Note *domain.Note
	Body []byte
}

// ShowCommand reads one note for display
type ShowCommand struct {
	repo ports.CorpusRepository
	Slug string
}

// NewShowCommand creates a new ShowCommand
func NewShowCommand(repo ports.CorpusRepository, slug string) *ShowCommand {
	return &ShowCommand{repo: repo, Slug: slug}
}

// Validate checks if the show operation is valid
func (c *ShowCommand) Validate() error {
	return application.ValidateRequired("slug", c.Slug)
}

// Execute runs the show command
func (c *ShowCommand) Execute(ctx context.Context) (*ShowResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	note, err := c.repo.Get(c.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to read note %s: %w", c.Slug, err)
	}
	body, err := c.repo.ReadBody(c.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to read note %s: %w", c.Slug, err)
	}

	return &ShowResult{Note: note, Body: body}, nil
}

// OutlineCommand extracts the heading tree of a note
type OutlineCommand struct {
	repo ports.CorpusRepository
	Slug string
}

// NewOutlineCommand creates a new OutlineCommand
func NewOutlineCommand(repo ports.CorpusRepository, slug string) *OutlineCommand {
	return &OutlineCommand{repo: repo, Slug: slug}
}

// Validate checks if the outline operation is valid
func (c *OutlineCommand) Validate() error {
	return application.ValidateRequired("slug", c.Slug)
}

// Execute runs the outline command
func (c *OutlineCommand) Execute(ctx context.Context) (*domain.Outline, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	body, err := c.repo.ReadBody(c.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to read note %s: %w", c.Slug, err)
	}

	return markdown.Parse(body).Outline, nil
}
