package lint

import (
	"strings"
	"testing"

	"fieldnotes/internal/domain"
	"fieldnotes/internal/markdown"
)

type fakeResolver struct {
	notes    map[string]bool
	headings map[string]bool // "slug#anchor"
}

func (f *fakeResolver) NoteExists(slug string) (bool, error) {
	return f.notes[slug], nil
}

func (f *fakeResolver) HeadingExists(slug, anchor string) (bool, error) {
	return f.headings[slug+"#"+anchor], nil
}

func lintNote(t *testing.T, content string, opts ...Option) []domain.Finding {
	t.Helper()
	doc := markdown.Parse([]byte(content))
	note := domain.Note{
		Slug:    "test-note",
		Path:    "apps/test-note.md",
		Section: "apps",
		Status:  domain.StatusCurrent,
	}
	return New(opts...).Run(doc, note)
}

func hasRule(findings []domain.Finding, rule string) bool {
	for _, f := range findings {
		if f.Rule == rule {
			return true
		}
	}
	return false
}

const goodNote = `---
title: Test Note
status: current
updated: 2025-11-04
---

# Test Note

Some prose.

## Sources

- [Ref](https://example.com/article)
`

func TestLintCleanNote(t *testing.T) {
	findings := lintNote(t, goodNote)
	if len(findings) != 0 {
		t.Errorf("expected no findings, got %v", findings)
	}
}

func TestLintRules(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantRule string
	}{
		{
			name:     "missing frontmatter",
			content:  "# Test Note\n\n## Sources\n\n- [r](https://example.com)\n",
			wantRule: RuleFrontmatterMissing,
		},
		{
			name: "missing title field",
			content: `---
status: current
updated: 2025-11-04
---

# Test Note

## Sources

- [r](https://example.com)
`,
			wantRule: RuleFrontmatterField,
		},
		{
			name:     "invalid status",
			content:  strings.Replace(goodNote, "status: current", "status: draft", 1),
			wantRule: RuleStatusInvalid,
		},
		{
			name:     "invalid updated date",
			content:  strings.Replace(goodNote, "updated: 2025-11-04", "updated: 04/11/2025", 1),
			wantRule: RuleUpdatedInvalid,
		},
		{
			name:     "no h1",
			content:  strings.Replace(goodNote, "# Test Note", "## Test Note", 1),
			wantRule: RuleTitleMissing,
		},
		{
			name:     "title mismatch",
			content:  strings.Replace(goodNote, "# Test Note", "# Different Title", 1),
			wantRule: RuleTitleMismatch,
		},
		{
			name:     "heading skip",
			content:  strings.Replace(goodNote, "Some prose.", "#### Deep heading\n", 1),
			wantRule: RuleHeadingSkip,
		},
		{
			name: "ragged table",
			content: strings.Replace(goodNote, "Some prose.",
				"| A | B |\n|---|---|\n| 1 | 2 | 3 |", 1),
			wantRule: RuleTableRagged,
		},
		{
			name: "sources missing",
			content: `---
title: Test Note
status: current
updated: 2025-11-04
---

# Test Note
`,
			wantRule: RuleSourcesMissing,
		},
		{
			name:     "sources empty",
			content:  strings.Replace(goodNote, "- [Ref](https://example.com/article)", "nothing cited", 1),
			wantRule: RuleSourcesEmpty,
		},
		{
			name:     "invalid url",
			content:  strings.Replace(goodNote, "https://example.com/article", "https://", 1),
			wantRule: RuleURLInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := lintNote(t, tt.content)
			if !hasRule(findings, tt.wantRule) {
				t.Errorf("expected rule %s, got %v", tt.wantRule, findings)
			}
		})
	}
}

func TestLintInvalidURLNotACitation(t *testing.T) {
	// ftp:// is not parsed as an external link, so the Sources section is
	// effectively empty rather than invalid.
	content := strings.Replace(goodNote, "https://example.com/article", "ftp://example.com/file", 1)
	findings := lintNote(t, content)
	if !hasRule(findings, RuleURLInvalid) && !hasRule(findings, RuleSourcesEmpty) {
		t.Errorf("expected url-invalid or sources-empty, got %v", findings)
	}
}

func TestLintArchivedNoteSkipsSources(t *testing.T) {
	doc := markdown.Parse([]byte(`---
title: Old Note
status: archived
updated: 2024-01-01
---

# Old Note
`))
	note := domain.Note{Slug: "old-note", Path: "archive/old-note.md", Status: domain.StatusArchived}
	findings := New().Run(doc, note)
	if hasRule(findings, RuleSourcesMissing) {
		t.Errorf("archived notes should not require sources, got %v", findings)
	}
}

func TestLintInvalidSlug(t *testing.T) {
	doc := markdown.Parse([]byte(goodNote))
	note := domain.Note{Slug: "Test_Note", Path: "apps/Test_Note.md", Status: domain.StatusCurrent}
	findings := New().Run(doc, note)
	if !hasRule(findings, RuleSlugInvalid) {
		t.Errorf("expected slug-invalid, got %v", findings)
	}
}

func TestLintRefs(t *testing.T) {
	resolver := &fakeResolver{
		notes:    map[string]bool{"alfred": true},
		headings: map[string]bool{"alfred#universal-actions": true},
	}

	content := strings.Replace(goodNote, "Some prose.",
		"See [[alfred]], [[alfred#universal-actions]], [[alfred#missing]] and [[ghost]].", 1)

	findings := lintNote(t, content, WithResolver(resolver))

	unresolved, anchors := 0, 0
	for _, f := range findings {
		switch f.Rule {
		case RuleRefUnresolved:
			unresolved++
		case RuleAnchorUnresolved:
			anchors++
		}
	}
	if unresolved != 1 {
		t.Errorf("expected 1 ref-unresolved ([[ghost]]), got %d: %v", unresolved, findings)
	}
	if anchors != 1 {
		t.Errorf("expected 1 anchor-unresolved ([[alfred#missing]]), got %d: %v", anchors, findings)
	}
}

func TestLintRefsSkippedWithoutResolver(t *testing.T) {
	content := strings.Replace(goodNote, "Some prose.", "See [[ghost]].", 1)
	findings := lintNote(t, content)
	if hasRule(findings, RuleRefUnresolved) {
		t.Error("refs should not be checked without a resolver")
	}
}

func TestSeverityOverrides(t *testing.T) {
	content := strings.Replace(goodNote, "Some prose.", "#### Deep\n", 1)

	findings := lintNote(t, content, WithSeverityOverrides(map[string]domain.Severity{
		RuleHeadingSkip: domain.SeverityError,
	}))

	for _, f := range findings {
		if f.Rule == RuleHeadingSkip && f.Severity != domain.SeverityError {
			t.Errorf("expected heading-skip promoted to error, got %v", f.Severity)
		}
	}
}

func TestRunAllDuplicates(t *testing.T) {
	noteA := domain.Note{Slug: "dup", Path: "apps/dup.md", Status: domain.StatusCurrent}
	noteB := domain.Note{Slug: "dup", Path: "patterns/dup.md", Status: domain.StatusCurrent}
	docA := markdown.Parse([]byte(goodNote))
	docB := markdown.Parse([]byte(goodNote))

	findings := New().RunAll(
		[]*markdown.Document{docA, docB},
		[]domain.Note{noteA, noteB},
	)

	dups := 0
	titleDups := 0
	for _, f := range findings {
		switch f.Rule {
		case RuleSlugDuplicate:
			dups++
		case RuleTitleDuplicate:
			titleDups++
		}
	}
	if dups != 2 {
		t.Errorf("expected slug-duplicate reported on both notes, got %d", dups)
	}
	if titleDups != 2 {
		t.Errorf("expected title-duplicate reported on both notes, got %d", titleDups)
	}
}
