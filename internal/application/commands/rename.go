package commands

import (
	"context"
	"fmt"
	"strings"

	"fieldnotes/internal/application"
	"fieldnotes/internal/domain"
	"fieldnotes/internal/ports"
)

// RenameResult contains the result of a rename operation
type RenameResult struct {
	Note     *domain.Note
	OldSlug  string
	Rewrites int // Number of referring notes whose links were rewritten
	Message  string
}

// RenameCommand renames a note and rewrites inbound wikilinks
type RenameCommand struct {
	repo    ports.CorpusRepository
	index   ports.CorpusIndex
	Slug    string
	NewSlug string
}

// NewRenameCommand creates a new RenameCommand
func NewRenameCommand(repo ports.CorpusRepository, index ports.CorpusIndex, slug, newSlug string) *RenameCommand {
	return &RenameCommand{
		repo:    repo,
		index:   index,
		Slug:    slug,
		NewSlug: newSlug,
	}
}

// Validate checks if the rename operation is valid
func (c *RenameCommand) Validate() error {
	if err := application.ValidateSlug("slug", strings.TrimSpace(c.Slug)); err != nil {
		return err
	}
	if err := application.ValidateSlug("newSlug", strings.TrimSpace(c.NewSlug)); err != nil {
		return err
	}
	if c.Slug == c.NewSlug {
		return &application.ValidationError{
			Field:   "newSlug",
			Message: "new slug equals the current slug",
		}
	}
	return nil
}

// Execute runs the rename command
func (c *RenameCommand) Execute(ctx context.Context) (*RenameResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	// Inbound links come from the index so we know how many notes the
	// repository will rewrite.
	var rewrites int
	if c.index != nil {
		backlinks, err := c.index.Backlinks(c.Slug)
		if err == nil {
			seen := make(map[string]bool)
			for _, e := range backlinks {
				if !seen[e.SourcePath] {
					seen[e.SourcePath] = true
					rewrites++
				}
			}
		}
	}

	note, err := c.repo.Rename(c.Slug, c.NewSlug)
	if err != nil {
		return nil, &application.RenameError{Slug: c.Slug, NewSlug: c.NewSlug, Err: err}
	}

	// Keep the index consistent without a full rescan.
	if c.index != nil {
		if tx, err := c.index.BeginTx(); err == nil {
			if err := tx.UpdateEdgeTarget(c.Slug, c.NewSlug); err != nil {
				tx.Rollback()
			} else if err := tx.Commit(); err != nil {
				tx.Rollback()
			}
		}
	}

	return &RenameResult{
		Note:     note,
		OldSlug:  c.Slug,
		Rewrites: rewrites,
		Message:  fmt.Sprintf("Renamed %s to %s (%d referring notes updated)", c.Slug, c.NewSlug, rewrites),
	}, nil
}
