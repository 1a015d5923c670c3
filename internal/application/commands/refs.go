package commands

import (
	"context"
	"fmt"

	"fieldnotes/internal/application"
	"fieldnotes/internal/domain"
	"fieldnotes/internal/ports"
)

// RefsResult contains the backlinks for a note and, when requested
// corpus-wide, every unresolved reference
type RefsResult struct {
	Slug       string
	Backlinks  []domain.Edge
	Unresolved []domain.Edge
}

// RefsCommand reports inbound references for a slug, or every unresolved
// reference when no slug is given
type RefsCommand struct {
	index ports.CorpusIndex
	Slug  string
}

// NewRefsCommand creates a new RefsCommand
func NewRefsCommand(index ports.CorpusIndex, slug string) *RefsCommand {
	return &RefsCommand{index: index, Slug: slug}
}

// Validate checks if the refs operation is valid
func (c *RefsCommand) Validate() error {
	if c.Slug == "" {
		return nil
	}
	return application.ValidateSlug("slug", c.Slug)
}

// Execute runs the refs command
func (c *RefsCommand) Execute(ctx context.Context) (*RefsResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	result := &RefsResult{Slug: c.Slug}

	if c.Slug != "" {
		backlinks, err := c.index.Backlinks(c.Slug)
		if err != nil {
			return nil, fmt.Errorf("failed to query backlinks for %s: %w", c.Slug, err)
		}
		result.Backlinks = backlinks
		return result, nil
	}

	edges, err := c.index.AllEdges()
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		note, err := c.index.NoteBySlug(e.TargetSlug)
		if err != nil {
			return nil, err
		}
		if note == nil {
			result.Unresolved = append(result.Unresolved, e)
		}
	}
	return result, nil
}
