package commands

import (
	"context"

	"fieldnotes/internal/domain"
	"fieldnotes/internal/ports"
)

// ListCommand lists notes, optionally restricted to one section
type ListCommand struct {
	repo    ports.CorpusRepository
	Section string // Empty lists the whole corpus
}

// NewListCommand creates a new ListCommand
func NewListCommand(repo ports.CorpusRepository, section string) *ListCommand {
	return &ListCommand{repo: repo, Section: section}
}

// Execute runs the list command; notes come back sorted by slug
func (c *ListCommand) Execute(ctx context.Context) ([]domain.Note, error) {
	var notes []domain.Note
	var err error

	if c.Section == "" {
		notes, err = c.repo.All()
	} else {
		notes, err = c.repo.List(c.Section)
	}
	if err != nil {
		return nil, err
	}

	domain.SortNotes(notes)
	return notes, nil
}

// SectionsCommand lists the corpus sections
type SectionsCommand struct {
	repo ports.CorpusRepository
}

// NewSectionsCommand creates a new SectionsCommand
func NewSectionsCommand(repo ports.CorpusRepository) *SectionsCommand {
	return &SectionsCommand{repo: repo}
}

// Execute runs the sections command
func (c *SectionsCommand) Execute(ctx context.Context) ([]domain.Section, error) {
	sections, err := c.repo.Sections()
	if err != nil {
		return nil, err
	}
	domain.SortSections(sections)
	return sections, nil
}

// TreeCommand builds the corpus tree for navigation
type TreeCommand struct {
	repo ports.CorpusRepository
}

// NewTreeCommand creates a new TreeCommand
func NewTreeCommand(repo ports.CorpusRepository) *TreeCommand {
	return &TreeCommand{repo: repo}
}

// Execute runs the tree command
func (c *TreeCommand) Execute(ctx context.Context) (*domain.TreeNode, error) {
	return c.repo.Tree()
}
