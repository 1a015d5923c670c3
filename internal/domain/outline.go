package domain

import (
	"fmt"
	"strings"
)

// HeadingNode is one heading in a note's outline
type HeadingNode struct {
	Level    int // 1-6
	Text     string
	Anchor   string // GitHub-style anchor, unique within the note
	Line     int    // 1-based file line
	Children []*HeadingNode
}

// Outline is the heading tree of a note
type Outline struct {
	Headings []*HeadingNode // Top-level headings (usually the single H1)
}

// Flatten returns all headings in document order
func (o *Outline) Flatten() []*HeadingNode {
	var result []*HeadingNode
	for _, h := range o.Headings {
		flattenHeading(h, &result)
	}
	return result
}

func flattenHeading(h *HeadingNode, result *[]*HeadingNode) {
	*result = append(*result, h)
	for _, child := range h.Children {
		flattenHeading(child, result)
	}
}

// Find returns the first heading whose anchor matches, or nil.
func (o *Outline) Find(anchor string) *HeadingNode {
	for _, h := range o.Flatten() {
		if h.Anchor == anchor {
			return h
		}
	}
	return nil
}

// H1 returns the text of the first level-1 heading, or "".
func (o *Outline) H1() string {
	for _, h := range o.Flatten() {
		if h.Level == 1 {
			return h.Text
		}
	}
	return ""
}

// Anchor converts heading text to a GitHub-style anchor: lowercase,
// spaces become hyphens, punctuation other than hyphens is dropped.
// De-duplication suffixes are the caller's job (see AnchorSet).
func Anchor(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(text)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	return b.String()
}

// AnchorSet assigns unique anchors within one note, appending -1, -2, ...
// to repeats the way GitHub's renderer does.
type AnchorSet struct {
	seen map[string]int
}

// NewAnchorSet creates an empty anchor set
func NewAnchorSet() *AnchorSet {
	return &AnchorSet{seen: make(map[string]int)}
}

// Add returns the unique anchor for the given heading text
func (s *AnchorSet) Add(text string) string {
	base := Anchor(text)
	n, dup := s.seen[base]
	s.seen[base]++
	if !dup {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}
