package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"fieldnotes/internal/application/commands"
	"fieldnotes/internal/domain"
	"fieldnotes/internal/lint"
	"fieldnotes/internal/markdown"
	"fieldnotes/internal/ports"
)

// RegisterReadTools adds all read-only corpus tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, repo ports.CorpusRepository, index ports.CorpusIndex, linter *lint.Linter) {
	s.AddTool(listNotesTool(), listNotesHandler(repo))
	s.AddTool(readNoteTool(), readNoteHandler(repo))
	s.AddTool(outlineTool(), outlineHandler(repo))
	s.AddTool(searchTool(), searchHandler(repo))
	s.AddTool(treeTool(), treeHandler(repo))
	s.AddTool(backlinksTool(), backlinksHandler(index))
	s.AddTool(citationsTool(), citationsHandler(index))
	s.AddTool(lintTool(), lintHandler(repo, linter))
	s.AddTool(takeawaysTool(), takeawaysHandler(repo))
	s.AddTool(inboxTool(), inboxHandler(repo))
}

// --- list_notes ---

func listNotesTool() mcp.Tool {
	return mcp.NewTool("list_notes",
		mcp.WithDescription("List notes in the research corpus. Without arguments lists every note grouped by section. With a section name lists only that section."),
		mcp.WithString("section",
			mcp.Description("Section directory to list (e.g. apps, patterns, archive). Omit to list everything."),
		),
	)
}

func listNotesHandler(repo ports.CorpusRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		section := req.GetString("section", "")

		cmd := commands.NewListCommand(repo, section)
		notes, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(notes, formatNote)
	}
}

// --- read_note ---

func readNoteTool() mcp.Tool {
	return mcp.NewTool("read_note",
		mcp.WithDescription("Read the full Markdown content of a note by its slug."),
		mcp.WithString("slug",
			mcp.Description("Note slug (filename without .md, e.g. claude-desktop)"),
			mcp.Required(),
		),
	)
}

func readNoteHandler(repo ports.CorpusRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		slug := req.GetString("slug", "")

		cmd := commands.NewShowCommand(repo, slug)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(string(result.Body)), nil
	}
}

// --- outline ---

func outlineTool() mcp.Tool {
	return mcp.NewTool("outline",
		mcp.WithDescription("Show a note's heading structure with anchors, for building section links like [[slug#anchor]]."),
		mcp.WithString("slug",
			mcp.Description("Note slug"),
			mcp.Required(),
		),
	)
}

func outlineHandler(repo ports.CorpusRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		slug := req.GetString("slug", "")

		cmd := commands.NewOutlineCommand(repo, slug)
		outline, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		headings := outline.Flatten()
		if len(headings) == 0 {
			return mcp.NewToolResultText("No headings."), nil
		}
		var sb strings.Builder
		for _, h := range headings {
			fmt.Fprintf(&sb, "%s%s  #%s\n", strings.Repeat("  ", h.Level-1), h.Text, h.Anchor)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Search the corpus by keyword. Matches slugs, titles and note content."),
		mcp.WithString("query",
			mcp.Description("Search query"),
			mcp.Required(),
		),
	)
}

func searchHandler(repo ports.CorpusRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")

		cmd := commands.NewSearchCommand(repo, query)
		results, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}
		var sb strings.Builder
		for _, r := range results {
			if r.Line > 0 {
				fmt.Fprintf(&sb, "%s:%d  %s\n", r.Path, r.Line, r.MatchedText)
			} else {
				fmt.Fprintf(&sb, "%s  %s\n", r.Path, r.MatchedText)
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display the corpus structure as a tree of sections and notes."),
	)
}

func treeHandler(repo ports.CorpusRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewTreeCommand(repo)
		root, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		var sb strings.Builder
		renderTree(&sb, root, "")
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func renderTree(sb *strings.Builder, node *domain.TreeNode, prefix string) {
	if node.Parent != nil {
		if node.IsSection() {
			fmt.Fprintf(sb, "%s%s/\n", prefix, node.Name)
		} else {
			fmt.Fprintf(sb, "%s%s (%s)\n", prefix, node.Name, node.Status)
		}
		prefix += "  "
	}
	for _, child := range node.Children {
		renderTree(sb, child, prefix)
	}
}

// --- backlinks ---

func backlinksTool() mcp.Tool {
	return mcp.NewTool("backlinks",
		mcp.WithDescription("List the notes that reference a slug, with the line each reference is on."),
		mcp.WithString("slug",
			mcp.Description("Note slug"),
			mcp.Required(),
		),
	)
}

func backlinksHandler(index ports.CorpusIndex) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		slug := req.GetString("slug", "")

		cmd := commands.NewRefsCommand(index, slug)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(result.Backlinks, formatEdge)
	}
}

// --- citations ---

func citationsTool() mcp.Tool {
	return mcp.NewTool("citations",
		mcp.WithDescription("List every cited URL in the corpus and the notes citing it, with the last reachability check result when one is cached."),
	)
}

func citationsHandler(index ports.CorpusIndex) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		citations, err := index.AllCitations()
		if err != nil {
			return toolError(err)
		}
		if len(citations) == 0 {
			return mcp.NewToolResultText("No citations."), nil
		}

		var sb strings.Builder
		for url, sources := range citations {
			status := "unchecked"
			if rec, err := index.ProbeFor(url); err == nil && rec != nil {
				if rec.OK {
					status = "ok"
				} else if rec.Error != "" {
					status = rec.Error
				} else {
					status = fmt.Sprintf("HTTP %d", rec.StatusCode)
				}
			}
			fmt.Fprintf(&sb, "%s  [%s]  cited by %s\n", url, status, strings.Join(sources, ", "))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- lint ---

func lintTool() mcp.Tool {
	return mcp.NewTool("lint",
		mcp.WithDescription("Lint the corpus (or one note) against the documentation conventions: frontmatter, titles, heading structure, tables, Sources sections and cross-references."),
		mcp.WithString("slug",
			mcp.Description("Note slug to lint. Omit to lint the whole corpus."),
		),
	)
}

func lintHandler(repo ports.CorpusRepository, linter *lint.Linter) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		slug := req.GetString("slug", "")

		cmd := commands.NewLintCommand(repo, linter, slug)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(result.Findings) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("Clean: %d note(s), no findings.", result.Notes)), nil
		}
		var sb strings.Builder
		for _, f := range result.Findings {
			fmt.Fprintf(&sb, "%s:%d  %s  [%s] %s\n", f.Path, f.Line, f.Severity, f.Rule, f.Message)
		}
		fmt.Fprintf(&sb, "\n%d error(s), %d warning(s) in %d note(s)\n", result.Errors, result.Warnings, result.Notes)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- takeaways ---

func takeawaysTool() mcp.Tool {
	return mcp.NewTool("takeaways",
		mcp.WithDescription("Collect the ## Takeaways section from every note, optionally filtered by the app a note covers. Gives a cross-corpus summary of findings."),
		mcp.WithString("app",
			mcp.Description("Only include notes about this app (matches the frontmatter app field)."),
		),
	)
}

func takeawaysHandler(repo ports.CorpusRepository) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		app := req.GetString("app", "")

		notes, err := repo.All()
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		for _, n := range notes {
			if app != "" && n.App != app {
				continue
			}
			body, err := repo.ReadBody(n.Slug)
			if err != nil {
				return toolError(err)
			}
			section := takeawaysSection(body)
			if section == "" {
				continue
			}
			fmt.Fprintf(&sb, "## %s (%s)\n%s\n", n.Title, n.Path, section)
		}
		if sb.Len() == 0 {
			return mcp.NewToolResultText("No Takeaways sections found."), nil
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// takeawaysSection returns the body of the "Takeaways" heading, without the
// heading line itself, up to the next heading of the same or higher level.
func takeawaysSection(content []byte) string {
	doc := markdown.Parse(content)

	var start, level int
	for _, h := range doc.Outline.Flatten() {
		if start == 0 {
			if h.Anchor == "takeaways" {
				start = h.Line
				level = h.Level
			}
			continue
		}
		if h.Level <= level {
			lines := strings.Split(string(content), "\n")
			return strings.TrimSpace(strings.Join(lines[start:h.Line-1], "\n"))
		}
	}
	if start == 0 {
		return ""
	}
	lines := strings.Split(string(content), "\n")
	return strings.TrimSpace(strings.Join(lines[start:], "\n"))
}

// --- inbox ---

func inboxTool() mcp.Tool {
	return mcp.NewTool("inbox",
		mcp.WithDescription("List unfiled clippings waiting in the inbox, with a content preview for each."),
	)
}

func inboxHandler(repo ports.CorpusRepository) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		clippings, err := repo.Inbox()
		if err != nil {
			return toolError(err)
		}
		return formatEntities(clippings, formatClipping)
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatNote(n domain.Note) string {
	return fmt.Sprintf("%s  %s  [%s]", n.Path, n.Title, n.Status)
}

func formatEdge(e domain.Edge) string {
	return fmt.Sprintf("%s:%d  %s", e.SourcePath, e.Line, e.LinkText)
}

func formatClipping(c domain.Clipping) string {
	return fmt.Sprintf("%s (%d bytes)  %s", c.Name, c.Size, c.Preview)
}
