// Package lint applies the corpus convention to parsed notes. Rule IDs are
// stable strings so severity overrides and CI suppressions can key on them.
package lint

import (
	"fmt"
	"strings"
	"time"

	"fieldnotes/internal/domain"
	"fieldnotes/internal/markdown"
)

// Rule IDs
const (
	RuleFrontmatterMissing = "frontmatter-missing"
	RuleFrontmatterField   = "frontmatter-field"
	RuleStatusInvalid      = "status-invalid"
	RuleUpdatedInvalid     = "updated-invalid"
	RuleTitleMissing       = "title-missing"
	RuleTitleMismatch      = "title-mismatch"
	RuleHeadingSkip        = "heading-skip"
	RuleTableRagged        = "table-ragged"
	RuleSourcesMissing     = "sources-missing"
	RuleSourcesEmpty       = "sources-empty"
	RuleURLInvalid         = "url-invalid"
	RuleRefUnresolved      = "ref-unresolved"
	RuleAnchorUnresolved   = "anchor-unresolved"
	RuleSlugInvalid        = "slug-invalid"
	RuleSlugDuplicate      = "slug-duplicate"
	RuleTitleDuplicate     = "title-duplicate"
)

// defaultSeverity maps each rule to its default severity. Warning-level
// rules can be promoted (and vice versa) via config overrides.
var defaultSeverity = map[string]domain.Severity{
	RuleFrontmatterMissing: domain.SeverityError,
	RuleFrontmatterField:   domain.SeverityError,
	RuleStatusInvalid:      domain.SeverityError,
	RuleUpdatedInvalid:     domain.SeverityError,
	RuleTitleMissing:       domain.SeverityError,
	RuleTitleMismatch:      domain.SeverityError,
	RuleHeadingSkip:        domain.SeverityWarning,
	RuleTableRagged:        domain.SeverityError,
	RuleSourcesMissing:     domain.SeverityError,
	RuleSourcesEmpty:       domain.SeverityError,
	RuleURLInvalid:         domain.SeverityError,
	RuleRefUnresolved:      domain.SeverityError,
	RuleAnchorUnresolved:   domain.SeverityWarning,
	RuleSlugInvalid:        domain.SeverityError,
	RuleSlugDuplicate:      domain.SeverityError,
	RuleTitleDuplicate:     domain.SeverityWarning,
}

// Resolver answers cross-reference questions during lint. The SQLite index
// implements it; tests use a map-backed fake.
type Resolver interface {
	NoteExists(slug string) (bool, error)
	HeadingExists(slug, anchor string) (bool, error)
}

// Linter applies the rule set with configurable severities
type Linter struct {
	severity map[string]domain.Severity
	resolver Resolver
}

// Option configures the Linter
type Option func(*Linter)

// WithSeverityOverrides replaces default severities for the given rules
func WithSeverityOverrides(overrides map[string]domain.Severity) Option {
	return func(l *Linter) {
		for rule, sev := range overrides {
			l.severity[rule] = sev
		}
	}
}

// WithResolver wires cross-reference resolution. Without it the
// ref-unresolved and anchor-unresolved rules are skipped.
func WithResolver(r Resolver) Option {
	return func(l *Linter) {
		l.resolver = r
	}
}

// New creates a Linter
func New(opts ...Option) *Linter {
	l := &Linter{severity: make(map[string]domain.Severity, len(defaultSeverity))}
	for rule, sev := range defaultSeverity {
		l.severity[rule] = sev
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Linter) finding(rule, path string, line int, format string, args ...any) domain.Finding {
	return domain.Finding{
		Rule:     rule,
		Severity: l.severity[rule],
		Path:     path,
		Line:     line,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Run applies the per-note rules to one parsed note.
func (l *Linter) Run(doc *markdown.Document, note domain.Note) []domain.Finding {
	var findings []domain.Finding

	findings = append(findings, l.checkSlug(note)...)
	findings = append(findings, l.checkFrontmatter(doc, note)...)
	findings = append(findings, l.checkHeadings(doc, note)...)
	findings = append(findings, l.checkTables(doc, note)...)
	findings = append(findings, l.checkSources(doc, note)...)
	findings = append(findings, l.checkRefs(doc, note)...)

	domain.SortFindings(findings)
	return findings
}

// RunAll lints every note and adds the corpus-level rules (duplicate slugs
// and titles). docs must be keyed like notes, by position.
func (l *Linter) RunAll(docs []*markdown.Document, notes []domain.Note) []domain.Finding {
	var findings []domain.Finding

	for i, doc := range docs {
		findings = append(findings, l.Run(doc, notes[i])...)
	}

	bySlug := make(map[string][]int)
	byTitle := make(map[string][]int)
	for i, n := range notes {
		bySlug[n.Slug] = append(bySlug[n.Slug], i)
		if t := docs[i].Frontmatter.Title; t != "" {
			byTitle[strings.ToLower(t)] = append(byTitle[strings.ToLower(t)], i)
		}
	}

	for slug, idxs := range bySlug {
		if len(idxs) < 2 {
			continue
		}
		for _, i := range idxs {
			findings = append(findings, l.finding(RuleSlugDuplicate, notes[i].Path, 0,
				"slug %q is used by %d notes", slug, len(idxs)))
		}
	}
	for title, idxs := range byTitle {
		if len(idxs) < 2 {
			continue
		}
		for _, i := range idxs {
			findings = append(findings, l.finding(RuleTitleDuplicate, notes[i].Path, 0,
				"title %q is used by %d notes", title, len(idxs)))
		}
	}

	domain.SortFindings(findings)
	return findings
}

func (l *Linter) checkSlug(note domain.Note) []domain.Finding {
	if domain.ValidSlug(note.Slug) {
		return nil
	}
	return []domain.Finding{l.finding(RuleSlugInvalid, note.Path, 0,
		"filename %q is not a valid slug (want lowercase letters, digits and hyphens)", note.Slug)}
}

func (l *Linter) checkFrontmatter(doc *markdown.Document, note domain.Note) []domain.Finding {
	var findings []domain.Finding

	if !doc.HasFrontmatter {
		findings = append(findings, l.finding(RuleFrontmatterMissing, note.Path, 1,
			"note has no YAML frontmatter"))
		return findings
	}
	for _, p := range doc.Problems {
		findings = append(findings, l.finding(RuleFrontmatterMissing, note.Path, 1, "%s", p))
	}

	fm := doc.Frontmatter
	if fm.Title == "" {
		findings = append(findings, l.finding(RuleFrontmatterField, note.Path, 1,
			"frontmatter is missing required field %q", "title"))
	}
	if fm.Status == "" {
		findings = append(findings, l.finding(RuleFrontmatterField, note.Path, 1,
			"frontmatter is missing required field %q", "status"))
	} else if _, err := domain.ParseStatus(fm.Status); err != nil {
		findings = append(findings, l.finding(RuleStatusInvalid, note.Path, 1, "%v", err))
	}
	if fm.Updated == "" {
		findings = append(findings, l.finding(RuleFrontmatterField, note.Path, 1,
			"frontmatter is missing required field %q", "updated"))
	} else if _, err := time.Parse("2006-01-02", fm.Updated); err != nil {
		findings = append(findings, l.finding(RuleUpdatedInvalid, note.Path, 1,
			"updated %q does not parse as YYYY-MM-DD", fm.Updated))
	}

	return findings
}

func (l *Linter) checkHeadings(doc *markdown.Document, note domain.Note) []domain.Finding {
	var findings []domain.Finding
	flat := doc.Outline.Flatten()

	var h1s []*domain.HeadingNode
	for _, h := range flat {
		if h.Level == 1 {
			h1s = append(h1s, h)
		}
	}

	switch {
	case len(h1s) == 0:
		findings = append(findings, l.finding(RuleTitleMissing, note.Path, doc.BodyOffset,
			"note has no H1 title"))
	case len(h1s) > 1:
		for _, h := range h1s[1:] {
			findings = append(findings, l.finding(RuleTitleMissing, note.Path, h.Line,
				"note has more than one H1 (%q)", h.Text))
		}
	}

	if len(h1s) > 0 && doc.HasFrontmatter && doc.Frontmatter.Title != "" &&
		h1s[0].Text != doc.Frontmatter.Title {
		findings = append(findings, l.finding(RuleTitleMismatch, note.Path, h1s[0].Line,
			"H1 %q does not match frontmatter title %q", h1s[0].Text, doc.Frontmatter.Title))
	}

	// Heading levels never skip: an H2 may not be followed directly by an H4.
	prev := 0
	for _, h := range flat {
		if prev > 0 && h.Level > prev+1 {
			findings = append(findings, l.finding(RuleHeadingSkip, note.Path, h.Line,
				"heading level jumps from H%d to H%d (%q)", prev, h.Level, h.Text))
		}
		prev = h.Level
	}

	return findings
}

func (l *Linter) checkTables(doc *markdown.Document, note domain.Note) []domain.Finding {
	var findings []domain.Finding
	for _, t := range doc.Tables {
		for _, line := range t.RaggedRows {
			findings = append(findings, l.finding(RuleTableRagged, note.Path, line,
				"table row has a different cell count than the header (%d columns)", t.HeaderCells))
		}
	}
	return findings
}

func (l *Linter) checkSources(doc *markdown.Document, note domain.Note) []domain.Finding {
	// Archived notes and anything outside note sections keep their sources
	// frozen; only live notes must cite.
	if note.Status == domain.StatusArchived {
		return nil
	}

	var findings []domain.Finding
	sources := doc.SourcesHeading()
	if sources == nil {
		findings = append(findings, l.finding(RuleSourcesMissing, note.Path, 0,
			"note has no ## Sources section"))
		return findings
	}

	if len(doc.Citations) == 0 {
		findings = append(findings, l.finding(RuleSourcesEmpty, note.Path, sources.Line,
			"Sources section has no [label](url) entries"))
		return findings
	}

	for _, c := range doc.Citations {
		if !domain.ValidCitationURL(c.URL) {
			findings = append(findings, l.finding(RuleURLInvalid, note.Path, c.Line,
				"citation URL %q is not absolute http(s)", c.URL))
		}
	}
	return findings
}

func (l *Linter) checkRefs(doc *markdown.Document, note domain.Note) []domain.Finding {
	if l.resolver == nil {
		return nil
	}

	var findings []domain.Finding
	for _, link := range doc.Links {
		if link.Kind != domain.LinkInternal {
			continue
		}
		if link.Target == note.Slug && link.Fragment == "" {
			continue // Self-reference is always fine
		}

		exists, err := l.resolver.NoteExists(link.Target)
		if err != nil {
			continue // Index unavailable; the sync command will surface it
		}
		if !exists {
			findings = append(findings, l.finding(RuleRefUnresolved, note.Path, link.Line,
				"reference %s points to unknown note %q", link.Raw, link.Target))
			continue
		}
		if link.Fragment == "" {
			continue
		}
		ok, err := l.resolver.HeadingExists(link.Target, link.Fragment)
		if err != nil {
			continue
		}
		if !ok {
			findings = append(findings, l.finding(RuleAnchorUnresolved, note.Path, link.Line,
				"reference %s points to missing heading %q in %q", link.Raw, link.Fragment, link.Target))
		}
	}
	return findings
}

// DefaultSeverity returns the built-in severity for a rule ID.
func DefaultSeverity(rule string) (domain.Severity, bool) {
	s, ok := defaultSeverity[rule]
	return s, ok
}
