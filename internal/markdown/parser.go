// Package markdown parses note files into the domain shapes: frontmatter,
// outline, links, citations and tables. Parsing is lenient on purpose —
// malformed input yields partial results plus Problems entries, never an
// error, so the linter can report everything it sees.
package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"fieldnotes/internal/domain"
)

// Frontmatter holds the YAML header of a note
type Frontmatter struct {
	Title   string   `yaml:"title"`
	App     string   `yaml:"app"`
	Status  string   `yaml:"status"`
	Updated string   `yaml:"updated"`
	Tags    []string `yaml:"tags"`
}

// Document is the parsed form of one note
type Document struct {
	Frontmatter    Frontmatter
	HasFrontmatter bool
	Outline        *domain.Outline
	Links          []domain.Link
	Citations      []domain.Citation
	Tables         []domain.Table
	BodyOffset     int // 1-based file line where the body starts
	Words          int
	Problems       []string // Frontmatter parse problems, reported by lint
}

var md = goldmark.New(
	goldmark.WithExtensions(extension.Table, extension.Strikethrough),
)

// Parse parses raw note content. It never fails: the worst case is a
// document with an empty outline and a Problems entry.
func Parse(content []byte) *Document {
	doc := &Document{
		Outline:    &domain.Outline{},
		BodyOffset: 1,
	}

	body := splitFrontmatter(content, doc)

	root := md.Parser().Parse(text.NewReader(body))
	walk(root, body, doc)

	doc.Words = countWords(body)
	return doc
}

// splitFrontmatter strips the YAML header between --- fences, if present,
// and records where the body starts so findings report file lines.
func splitFrontmatter(content []byte, doc *Document) []byte {
	if !bytes.HasPrefix(content, []byte("---\n")) && !bytes.HasPrefix(content, []byte("---\r\n")) {
		return content
	}

	rest := content[bytes.IndexByte(content, '\n')+1:]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		doc.Problems = append(doc.Problems, "frontmatter fence is never closed")
		return content
	}

	header := rest[:end]
	after := rest[end+len("\n---"):]
	if nl := bytes.IndexByte(after, '\n'); nl >= 0 {
		after = after[nl+1:]
	} else {
		after = nil
	}

	doc.HasFrontmatter = true
	doc.BodyOffset = bytes.Count(content[:len(content)-len(after)], []byte("\n")) + 1

	if err := yaml.Unmarshal(header, &doc.Frontmatter); err != nil {
		doc.Problems = append(doc.Problems, "frontmatter is not valid YAML: "+err.Error())
	}

	return after
}

func walk(root ast.Node, body []byte, doc *Document) {
	anchors := domain.NewAnchorSet()
	stack := []*domain.HeadingNode{}

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			h := &domain.HeadingNode{
				Level: node.Level,
				Text:  string(node.Text(body)),
				Line:  nodeLine(node, body, doc),
			}
			h.Anchor = anchors.Add(h.Text)
			placeHeading(h, &stack, doc.Outline)

		case *ast.Link:
			addLink(doc, string(node.Destination), string(node.Text(body)), nodeLine(node, body, doc))

		case *ast.AutoLink:
			url := string(node.URL(body))
			addLink(doc, url, url, nodeLine(node, body, doc))
		}

		return ast.WalkContinue, nil
	})

	collectWikilinks(body, doc)
	collectTables(body, doc)
	collectCitations(doc)
}

// placeHeading attaches a heading under the nearest shallower heading,
// keeping document order.
func placeHeading(h *domain.HeadingNode, stack *[]*domain.HeadingNode, outline *domain.Outline) {
	for len(*stack) > 0 && (*stack)[len(*stack)-1].Level >= h.Level {
		*stack = (*stack)[:len(*stack)-1]
	}
	if len(*stack) == 0 {
		outline.Headings = append(outline.Headings, h)
	} else {
		parent := (*stack)[len(*stack)-1]
		parent.Children = append(parent.Children, h)
	}
	*stack = append(*stack, h)
}

// addLink classifies a Markdown link destination as an internal
// cross-reference or an external URL.
func addLink(doc *Document, dest, label string, line int) {
	if dest == "" {
		return
	}

	if strings.HasPrefix(dest, "http://") || strings.HasPrefix(dest, "https://") {
		doc.Links = append(doc.Links, domain.Link{
			Kind:   domain.LinkExternal,
			Raw:    label,
			Target: dest,
			Line:   line,
		})
		return
	}

	// Relative .md links are cross-references: (other.md), (../apps/other.md#anchor)
	target, fragment, _ := strings.Cut(dest, "#")
	if !strings.HasSuffix(target, ".md") {
		return
	}
	doc.Links = append(doc.Links, domain.Link{
		Kind:     domain.LinkInternal,
		Raw:      dest,
		Target:   domain.SlugFromFilename(target),
		Fragment: fragment,
		Line:     line,
	})
}

// Wikilink pattern: [[slug]], [[slug#Heading]], [[slug|label]]
var wikilinkPattern = regexp.MustCompile(`\[\[([^\]|]+)(?:\|[^\]]+)?\]\]`)

// collectWikilinks scans the body for [[...]] references, which goldmark
// treats as plain text.
func collectWikilinks(body []byte, doc *Document) {
	for _, match := range wikilinkPattern.FindAllSubmatchIndex(body, -1) {
		inner := string(body[match[2]:match[3]])
		line := bytes.Count(body[:match[0]], []byte("\n")) + doc.BodyOffset

		target, fragment, _ := strings.Cut(inner, "#")
		if target == "" {
			continue
		}
		doc.Links = append(doc.Links, domain.Link{
			Kind:     domain.LinkInternal,
			Raw:      string(body[match[0]:match[1]]),
			Target:   target,
			Fragment: domain.Anchor(fragment),
			Line:     line,
		})
	}
}

// collectTables scans the body for pipe tables. Cell counts come from the
// source lines: the rendered AST pads every row to the header's width, so
// ragged rows are only visible in the raw text.
func collectTables(body []byte, doc *Document) {
	lines := strings.Split(string(body), "\n")

	for i := 0; i < len(lines); i++ {
		if !isTableLine(lines[i]) {
			continue
		}
		// A table is a header row with a delimiter row directly under it.
		if i+1 >= len(lines) || !isDelimiterLine(lines[i+1]) {
			continue
		}

		t := domain.Table{
			Line:        i + doc.BodyOffset,
			HeaderCells: countCells(lines[i]),
		}
		j := i + 2
		for ; j < len(lines) && isTableLine(lines[j]); j++ {
			t.Rows++
			if countCells(lines[j]) != t.HeaderCells {
				t.RaggedRows = append(t.RaggedRows, j+doc.BodyOffset)
			}
		}
		doc.Tables = append(doc.Tables, t)
		i = j
	}
}

func isTableLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "|")
}

// isDelimiterLine matches the |---|:---:| row between header and body.
func isDelimiterLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "|") {
		return false
	}
	return strings.Trim(trimmed, "|-: \t") == "" && strings.Contains(trimmed, "-")
}

// countCells counts the cells of a pipe-table row, honoring \| escapes.
func countCells(line string) int {
	row := strings.TrimSpace(line)
	row = strings.TrimPrefix(row, "|")
	row = strings.TrimSuffix(row, "|")

	cells := 1
	escaped := false
	for _, r := range row {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '|':
			cells++
		}
	}
	return cells
}

// collectCitations extracts Sources-section bullets of the form
// - [label](url) into Citations.
func collectCitations(doc *Document) {
	// Citations are the external links that appear after the Sources heading.
	sources := doc.SourcesHeading()
	if sources == nil {
		return
	}
	sourcesLine := sources.Line

	for _, l := range doc.Links {
		if l.Kind == domain.LinkExternal && l.Line > sourcesLine {
			doc.Citations = append(doc.Citations, domain.Citation{
				Label: l.Raw,
				URL:   l.Target,
				Line:  l.Line,
			})
		}
	}
}

// SourcesHeading returns the Sources heading of the outline, or nil.
func (d *Document) SourcesHeading() *domain.HeadingNode {
	for _, h := range d.Outline.Flatten() {
		if strings.EqualFold(h.Text, "Sources") {
			return h
		}
	}
	return nil
}

// Takeaways returns the bullet lines under a "## Takeaways" heading, if any.
func Takeaways(content []byte) []string {
	lines := strings.Split(string(content), "\n")
	var out []string
	in := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			in = strings.EqualFold(strings.TrimSpace(strings.TrimLeft(trimmed, "#")), "Takeaways")
			continue
		}
		if in && strings.HasPrefix(trimmed, "- ") {
			out = append(out, strings.TrimPrefix(trimmed, "- "))
		}
	}
	return out
}

func nodeLine(n ast.Node, body []byte, doc *Document) int {
	// Lines() panics on inline nodes; only block nodes carry line spans.
	if n.Type() != ast.TypeInline {
		if lines := n.Lines(); lines != nil && lines.Len() > 0 {
			seg := lines.At(0)
			return bytes.Count(body[:seg.Start], []byte("\n")) + doc.BodyOffset
		}
	}
	if p := n.Parent(); p != nil {
		return nodeLine(p, body, doc)
	}
	return doc.BodyOffset
}

func countWords(body []byte) int {
	return len(strings.Fields(string(body)))
}
