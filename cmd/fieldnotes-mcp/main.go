package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"fieldnotes/internal/adapters/filesystem"
	mcpadapter "fieldnotes/internal/adapters/mcp"
	"fieldnotes/internal/adapters/sqlite"
	"fieldnotes/internal/config"
	"fieldnotes/internal/lint"
)

func main() {
	corpusFlag := flag.String("corpus", config.CorpusPath(), "path to the corpus")
	flag.Parse()

	repo := filesystem.NewRepository(*corpusFlag)

	index := sqlite.NewIndex()
	if err := index.Open(*corpusFlag); err != nil {
		log.Fatalf("fieldnotes-mcp: %v", err)
	}
	defer index.Close()
	if index.NeedsFullRebuild() {
		if _, err := index.SyncFull(); err != nil {
			log.Fatalf("fieldnotes-mcp: %v", err)
		}
	} else {
		if _, err := index.SyncIncremental(); err != nil {
			log.Fatalf("fieldnotes-mcp: %v", err)
		}
	}

	linter := lint.New(lint.WithResolver(index))

	mcpServer := server.NewMCPServer(
		"fieldnotes-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, repo, index, linter)
	mcpadapter.RegisterWriteTools(mcpServer, repo, index)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("fieldnotes-mcp: %v", err)
	}
}
