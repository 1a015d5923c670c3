package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"fieldnotes/internal/adapters/editor"
	"fieldnotes/internal/adapters/filesystem"
	"fieldnotes/internal/adapters/tui"
	"fieldnotes/internal/config"
)

func main() {
	// Initialize adapters
	repo := filesystem.NewRepository(config.CorpusPath())
	editorOpener := editor.NewOpener()

	// Create and run TUI app
	app := tui.NewApp(repo, editorOpener)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
