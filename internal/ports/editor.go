package ports

import "os/exec"

// EditorOpener defines the interface for opening a note in an external editor
type EditorOpener interface {
	// OpenFile opens the note file in the user's preferred editor,
	// using $EDITOR and falling back to common editors.
	OpenFile(path string) error

	// Command returns an exec.Cmd for opening the file, for integration
	// with bubbletea's ExecProcess.
	Command(path string) (*exec.Cmd, error)
}
