package commands

import (
	"context"
	"fmt"

	"fieldnotes/internal/domain"
	"fieldnotes/internal/lint"
	"fieldnotes/internal/markdown"
	"fieldnotes/internal/ports"
)

// LintResult contains lint findings plus summary counts
type LintResult struct {
	Findings []domain.Finding
	Notes    int
	Errors   int
	Warnings int
}

// LintCommand lints one note or the whole corpus
type LintCommand struct {
	repo   ports.CorpusRepository
	linter *lint.Linter
	Slug   string // Empty lints the whole corpus
}

// NewLintCommand creates a new LintCommand
func NewLintCommand(repo ports.CorpusRepository, linter *lint.Linter, slug string) *LintCommand {
	return &LintCommand{repo: repo, linter: linter, Slug: slug}
}

// Execute runs the lint command
func (c *LintCommand) Execute(ctx context.Context) (*LintResult, error) {
	var notes []domain.Note

	if c.Slug != "" {
		note, err := c.repo.Get(c.Slug)
		if err != nil {
			return nil, fmt.Errorf("failed to lint %s: %w", c.Slug, err)
		}
		notes = []domain.Note{*note}
	} else {
		all, err := c.repo.All()
		if err != nil {
			return nil, err
		}
		notes = all
	}

	docs := make([]*markdown.Document, 0, len(notes))
	kept := notes[:0]
	for _, note := range notes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		body, err := c.repo.ReadBody(note.Slug)
		if err != nil {
			continue // Deleted between listing and read
		}
		docs = append(docs, markdown.Parse(body))
		kept = append(kept, note)
	}
	notes = kept

	findings := c.linter.RunAll(docs, notes)

	result := &LintResult{Findings: findings, Notes: len(notes)}
	for _, f := range findings {
		if f.Severity == domain.SeverityError {
			result.Errors++
		} else {
			result.Warnings++
		}
	}
	return result, nil
}
