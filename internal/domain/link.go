package domain

import (
	"net/url"
	"slices"
	"strings"
)

// LinkKind distinguishes cross-references from external links
type LinkKind int

const (
	LinkInternal LinkKind = iota // [[slug]] or (other.md)
	LinkExternal                 // http(s) URL
)

func (k LinkKind) String() string {
	if k == LinkExternal {
		return "external"
	}
	return "internal"
}

// Link is one outgoing reference from a note
type Link struct {
	Kind     LinkKind
	Raw      string // Original link text as written
	Target   string // Slug for internal links, URL for external
	Fragment string // Heading anchor, when given
	Line     int    // 1-based file line
}

// Citation is one entry of a Sources section
type Citation struct {
	Label string
	URL   string
	Line  int
}

// Table is a GFM table found in a note body
type Table struct {
	HeaderCells int
	Rows        int
	Line        int   // Line of the header row
	RaggedRows  []int // Lines of rows whose cell count differs from the header
}

// ValidCitationURL reports whether a citation URL is absolute http(s) with a host.
func ValidCitationURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Severity of a lint finding
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// ParseSeverity maps a configured severity string to a Severity. Anything
// other than "warning" maps to error, so a typo in config can only make a
// check stricter.
func ParseSeverity(s string) Severity {
	if strings.EqualFold(strings.TrimSpace(s), "warning") {
		return SeverityWarning
	}
	return SeverityError
}

// Finding is one lint result
type Finding struct {
	Rule     string // Stable rule ID, e.g., "title-mismatch"
	Severity Severity
	Path     string // Corpus-relative note path
	Line     int
	Message  string
}

// SortFindings orders findings by path, then line, then rule
func SortFindings(findings []Finding) {
	slices.SortFunc(findings, func(a, b Finding) int {
		if c := strings.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		if a.Line != b.Line {
			return a.Line - b.Line
		}
		return strings.Compare(a.Rule, b.Rule)
	})
}

// CountErrors returns the number of error-severity findings
func CountErrors(findings []Finding) int {
	n := 0
	for _, f := range findings {
		if f.Severity == SeverityError {
			n++
		}
	}
	return n
}
