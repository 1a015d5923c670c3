package markdown

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldnotes/internal/domain"
)

const sampleNote = `---
title: Claude Desktop
app: Claude Desktop
status: current
updated: 2025-11-04
tags: [launcher, capture]
---

# Claude Desktop

Observed behaviors in the desktop client.

## Quick Entry

Global hotkey opens a floating capture bar, like [[apple-notes#quick-note]].

## Keyboard Shortcuts

| Shortcut | Action |
|----------|--------|
| Cmd+K | New chat |
| Cmd+Shift+Space | Quick entry |

## Takeaways

- Capture must be reachable without focusing the main window.
- See [Cursor's composer](../apps/cursor.md#composer) for a contrast.

## Sources

- [Claude Desktop overview](https://support.claude.com/en/articles/123)
- [Shortcut reference](https://support.claude.com/en/articles/456)
`

func TestParseFrontmatter(t *testing.T) {
	doc := Parse([]byte(sampleNote))

	require.True(t, doc.HasFrontmatter)
	require.Empty(t, doc.Problems)
	assert.Equal(t, "Claude Desktop", doc.Frontmatter.Title)
	assert.Equal(t, "Claude Desktop", doc.Frontmatter.App)
	assert.Equal(t, "current", doc.Frontmatter.Status)
	assert.Equal(t, "2025-11-04", doc.Frontmatter.Updated)
	assert.Equal(t, []string{"launcher", "capture"}, doc.Frontmatter.Tags)
	assert.Equal(t, 8, doc.BodyOffset)
}

func TestParseOutline(t *testing.T) {
	doc := Parse([]byte(sampleNote))

	require.Len(t, doc.Outline.Headings, 1)
	h1 := doc.Outline.Headings[0]
	assert.Equal(t, 1, h1.Level)
	assert.Equal(t, "Claude Desktop", h1.Text)
	assert.Equal(t, "claude-desktop", h1.Anchor)
	assert.Equal(t, 9, h1.Line)

	require.Len(t, h1.Children, 4)
	assert.Equal(t, "Quick Entry", h1.Children[0].Text)
	assert.Equal(t, "quick-entry", h1.Children[0].Anchor)
	assert.Equal(t, "keyboard-shortcuts", h1.Children[1].Anchor)
	assert.Equal(t, "takeaways", h1.Children[2].Anchor)
	assert.Equal(t, "sources", h1.Children[3].Anchor)

	assert.Equal(t, "Claude Desktop", doc.Outline.H1())
}

func TestParseLinks(t *testing.T) {
	doc := Parse([]byte(sampleNote))

	var wiki, relative *domain.Link
	for i := range doc.Links {
		l := &doc.Links[i]
		if l.Kind != domain.LinkInternal {
			continue
		}
		switch l.Target {
		case "apple-notes":
			wiki = l
		case "cursor":
			relative = l
		}
	}

	require.NotNil(t, wiki, "wikilink not collected")
	assert.Equal(t, "quick-note", wiki.Fragment)
	assert.Equal(t, "[[apple-notes#quick-note]]", wiki.Raw)

	require.NotNil(t, relative, "relative .md link not collected")
	assert.Equal(t, "composer", relative.Fragment)
}

func TestParseCitations(t *testing.T) {
	doc := Parse([]byte(sampleNote))

	want := []domain.Citation{
		{Label: "Claude Desktop overview", URL: "https://support.claude.com/en/articles/123", Line: 31},
		{Label: "Shortcut reference", URL: "https://support.claude.com/en/articles/456", Line: 32},
	}
	if diff := cmp.Diff(want, doc.Citations); diff != "" {
		t.Errorf("citations mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTables(t *testing.T) {
	doc := Parse([]byte(sampleNote))

	require.Len(t, doc.Tables, 1)
	table := doc.Tables[0]
	assert.Equal(t, 2, table.HeaderCells)
	assert.Equal(t, 2, table.Rows)
	assert.Empty(t, table.RaggedRows)
}

func TestParseRaggedTable(t *testing.T) {
	note := "# T\n\n| A | B |\n|---|---|\n| 1 | 2 |\n| 1 | 2 | 3 |\n"
	doc := Parse([]byte(note))

	require.Len(t, doc.Tables, 1)
	table := doc.Tables[0]
	assert.Equal(t, 2, table.HeaderCells)
	assert.Equal(t, 2, table.Rows)
	assert.Equal(t, []int{6}, table.RaggedRows)
}

func TestParseEscapedPipeCell(t *testing.T) {
	note := "# T\n\n| A | B |\n|---|---|\n| a \\| b | c |\n"
	doc := Parse([]byte(note))

	require.Len(t, doc.Tables, 1)
	assert.Empty(t, doc.Tables[0].RaggedRows)
}

func TestParseExternalLinkLine(t *testing.T) {
	note := "# T\n\nSee [the docs](https://example.com/docs) for details.\n"
	doc := Parse([]byte(note))

	require.Len(t, doc.Links, 1)
	link := doc.Links[0]
	assert.Equal(t, domain.LinkExternal, link.Kind)
	assert.Equal(t, "https://example.com/docs", link.Target)
	assert.Equal(t, 3, link.Line)
}

func TestParseWithoutFrontmatter(t *testing.T) {
	doc := Parse([]byte("# Loose Note\n\nJust text.\n"))

	assert.False(t, doc.HasFrontmatter)
	assert.Equal(t, 1, doc.BodyOffset)
	require.Len(t, doc.Outline.Headings, 1)
	assert.Equal(t, 1, doc.Outline.Headings[0].Line)
}

func TestParseUnclosedFrontmatter(t *testing.T) {
	doc := Parse([]byte("---\ntitle: Broken\n# Heading\n"))

	assert.False(t, doc.HasFrontmatter)
	assert.NotEmpty(t, doc.Problems)
}

func TestParseInvalidYAML(t *testing.T) {
	doc := Parse([]byte("---\ntitle: [unclosed\n---\n\n# H\n"))

	assert.True(t, doc.HasFrontmatter)
	assert.NotEmpty(t, doc.Problems)
	// Outline still parses
	assert.NotEmpty(t, doc.Outline.Headings)
}

func TestParseNeverFailsOnWeirdInput(t *testing.T) {
	for _, in := range []string{"", "---", "[[", "|||", "######### deep"} {
		doc := Parse([]byte(in))
		require.NotNil(t, doc, "input %q", in)
	}
}

func TestTakeaways(t *testing.T) {
	got := Takeaways([]byte(sampleNote))
	require.Len(t, got, 2)
	assert.Contains(t, got[0], "Capture must be reachable")
}

func TestDuplicateHeadingAnchors(t *testing.T) {
	note := "# T\n\n## Shortcuts\n\n## Shortcuts\n"
	doc := Parse([]byte(note))

	flat := doc.Outline.Flatten()
	require.Len(t, flat, 3)
	assert.Equal(t, "shortcuts", flat[1].Anchor)
	assert.Equal(t, "shortcuts-1", flat[2].Anchor)
}
