package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"fieldnotes/internal/application/commands"
	"fieldnotes/internal/ports"
)

// RegisterWriteTools adds all write corpus tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, repo ports.CorpusRepository, index ports.CorpusIndex) {
	s.AddTool(newNoteTool(), newNoteHandler(repo))
	s.AddTool(setStatusTool(), setStatusHandler(repo))
	s.AddTool(renameTool(), renameHandler(repo, index))
	s.AddTool(archiveTool(), archiveHandler(repo))
	s.AddTool(unarchiveTool(), unarchiveHandler(repo))
	s.AddTool(deleteTool(), deleteHandler(repo))
}

// --- new_note ---

func newNoteTool() mcp.Tool {
	return mcp.NewTool("new_note",
		mcp.WithDescription("Create a new note from the standard template. The slug is derived from the title."),
		mcp.WithString("section",
			mcp.Description("Destination section (e.g. apps, patterns)"),
			mcp.Required(),
		),
		mcp.WithString("title",
			mcp.Description("Note title"),
			mcp.Required(),
		),
		mcp.WithString("app",
			mcp.Description("Product the note studies (e.g. Claude Desktop). Omit for synthesis notes."),
		),
	)
}

func newNoteHandler(repo ports.CorpusRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		section := req.GetString("section", "")
		title := req.GetString("title", "")
		app := req.GetString("app", "")

		cmd := commands.NewNewNoteCommand(repo, section, title, app)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- set_status ---

func setStatusTool() mcp.Tool {
	return mcp.NewTool("set_status",
		mcp.WithDescription("Set a note's review status in its frontmatter."),
		mcp.WithString("slug",
			mcp.Description("Note slug"),
			mcp.Required(),
		),
		mcp.WithString("status",
			mcp.Description("New status: current, needs-review or archived"),
			mcp.Required(),
		),
	)
}

func setStatusHandler(repo ports.CorpusRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		slug := req.GetString("slug", "")
		status := req.GetString("status", "")

		cmd := commands.NewSetStatusCommand(repo, slug, status)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- rename ---

func renameTool() mcp.Tool {
	return mcp.NewTool("rename",
		mcp.WithDescription("Rename a note's slug and rewrite every [[wikilink]] and relative link that points at it."),
		mcp.WithString("slug",
			mcp.Description("Current slug"),
			mcp.Required(),
		),
		mcp.WithString("new_slug",
			mcp.Description("New slug (lowercase letters, digits and hyphens)"),
			mcp.Required(),
		),
	)
}

func renameHandler(repo ports.CorpusRepository, index ports.CorpusIndex) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		slug := req.GetString("slug", "")
		newSlug := req.GetString("new_slug", "")

		cmd := commands.NewRenameCommand(repo, index, slug, newSlug)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- archive ---

func archiveTool() mcp.Tool {
	return mcp.NewTool("archive",
		mcp.WithDescription("Move a note to the archive section and mark it archived."),
		mcp.WithString("slug",
			mcp.Description("Note slug"),
			mcp.Required(),
		),
	)
}

func archiveHandler(repo ports.CorpusRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		slug := req.GetString("slug", "")

		cmd := commands.NewArchiveCommand(repo, slug)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- unarchive ---

func unarchiveTool() mcp.Tool {
	return mcp.NewTool("unarchive",
		mcp.WithDescription("Restore an archived note into a section and mark it needs-review."),
		mcp.WithString("slug",
			mcp.Description("Note slug"),
			mcp.Required(),
		),
		mcp.WithString("section",
			mcp.Description("Destination section (e.g. apps, patterns)"),
			mcp.Required(),
		),
	)
}

func unarchiveHandler(repo ports.CorpusRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		slug := req.GetString("slug", "")
		section := req.GetString("section", "")

		cmd := commands.NewUnarchiveCommand(repo, slug, section)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete",
		mcp.WithDescription("Delete a note from the corpus by its slug."),
		mcp.WithString("slug",
			mcp.Description("Note slug"),
			mcp.Required(),
		),
	)
}

func deleteHandler(repo ports.CorpusRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		slug := req.GetString("slug", "")

		cmd := commands.NewDeleteCommand(repo, slug)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
