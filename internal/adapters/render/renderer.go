// Package render turns note Markdown into styled terminal output for the
// TUI preview and the CLI show command.
package render

import (
	"github.com/charmbracelet/glamour"
)

// Renderer renders note Markdown for the terminal
type Renderer struct {
	tr    *glamour.TermRenderer
	width int
}

// NewRenderer creates a renderer wrapped at the given width
func NewRenderer(width int) *Renderer {
	if width <= 0 {
		width = 80
	}
	tr, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	return &Renderer{tr: tr, width: width}
}

// Render renders Markdown content. On renderer failure the raw Markdown
// comes back unchanged; a note is still readable as plain text.
func (r *Renderer) Render(content string) string {
	if r.tr == nil {
		return content
	}
	out, err := r.tr.Render(content)
	if err != nil {
		return content
	}
	return out
}

// Resize rebuilds the renderer for a new terminal width
func (r *Renderer) Resize(width int) {
	if width <= 0 || width == r.width {
		return
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return
	}
	r.tr = tr
	r.width = width
}
