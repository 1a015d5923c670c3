package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"fieldnotes/internal/adapters/render"
	"fieldnotes/internal/adapters/tui/styles"
	"fieldnotes/internal/domain"
	"fieldnotes/internal/ports"
)

// PreviewKeyMap defines key bindings for the preview view
type PreviewKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	HalfPage key.Binding
	HalfBack key.Binding
	Edit     key.Binding
	Yank     key.Binding
	Close    key.Binding
}

var PreviewKeys = PreviewKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "scroll down"),
	),
	HalfPage: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "half page down"),
	),
	HalfBack: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("ctrl+u", "half page up"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Yank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy path"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc/q", "back"),
	),
}

// PreviewModel renders one note as styled Markdown
type PreviewModel struct {
	repo     ports.CorpusRepository
	renderer *render.Renderer

	slug    string
	note    *domain.Note
	lines   []string
	offset  int
	width   int
	height  int
	message string
}

// NewPreviewModel creates a new preview model
func NewPreviewModel(repo ports.CorpusRepository, renderer *render.Renderer) *PreviewModel {
	return &PreviewModel{
		repo:     repo,
		renderer: renderer,
	}
}

// Init initializes the preview view
func (m *PreviewModel) Init() tea.Cmd {
	return nil
}

// Load returns a command that reads and renders the given note
func (m *PreviewModel) Load(slug string) tea.Cmd {
	m.slug = slug
	m.offset = 0
	m.message = ""
	return func() tea.Msg {
		note, err := m.repo.Get(slug)
		if err != nil {
			return errMsg{err}
		}
		body, err := m.repo.ReadBody(slug)
		if err != nil {
			return errMsg{err}
		}
		return previewLoadedMsg{note: note, rendered: m.renderer.Render(string(body))}
	}
}

type previewLoadedMsg struct {
	note     *domain.Note
	rendered string
}

// Update handles messages for the preview view
func (m *PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case previewLoadedMsg:
		m.note = msg.note
		m.lines = strings.Split(msg.rendered, "\n")
		return m, nil

	case errMsg:
		m.message = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, PreviewKeys.Close):
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}

		case key.Matches(msg, PreviewKeys.Up):
			m.scroll(-1)
			return m, nil

		case key.Matches(msg, PreviewKeys.Down):
			m.scroll(1)
			return m, nil

		case key.Matches(msg, PreviewKeys.HalfPage):
			m.scroll(m.pageSize() / 2)
			return m, nil

		case key.Matches(msg, PreviewKeys.HalfBack):
			m.scroll(-m.pageSize() / 2)
			return m, nil

		case key.Matches(msg, PreviewKeys.Edit):
			if m.note != nil {
				return m, m.editNote()
			}
			return m, nil

		case key.Matches(msg, PreviewKeys.Yank):
			if m.note != nil {
				return m, m.yankPath()
			}
			return m, nil
		}
	}

	return m, nil
}

func (m *PreviewModel) editNote() tea.Cmd {
	return func() tea.Msg {
		path, err := m.repo.AbsPath(m.slug)
		if err != nil {
			return errMsg{err}
		}
		return OpenEditorMsg{Path: path}
	}
}

func (m *PreviewModel) yankPath() tea.Cmd {
	return func() tea.Msg {
		path, err := m.repo.AbsPath(m.slug)
		if err != nil {
			return errMsg{err}
		}
		if err := clipboard.WriteAll(path); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (m *PreviewModel) scroll(delta int) {
	m.offset += delta
	max := len(m.lines) - m.pageSize()
	if m.offset > max {
		m.offset = max
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// pageSize is the number of content lines that fit below the header
func (m *PreviewModel) pageSize() int {
	size := m.height - 6
	if size < 1 {
		size = 10
	}
	return size
}

// View renders the preview
func (m *PreviewModel) View() string {
	var b strings.Builder

	if m.note != nil {
		b.WriteString(styles.Title.Render(m.note.Title))
		b.WriteString("\n")
		b.WriteString(styles.Subtitle.Render(m.note.Path))
		b.WriteString("  ")
		b.WriteString(styles.StatusBadge(m.note.Status))
		b.WriteString("\n\n")
	}

	if m.message != "" {
		b.WriteString(styles.ErrorMsg.Render(m.message))
		b.WriteString("\n\n")
	}

	if len(m.lines) == 0 {
		b.WriteString(styles.MutedText.Render("Loading..."))
	} else {
		end := m.offset + m.pageSize()
		if end > len(m.lines) {
			end = len(m.lines)
		}
		b.WriteString(strings.Join(m.lines[m.offset:end], "\n"))
		if end < len(m.lines) {
			b.WriteString("\n")
			b.WriteString(styles.MutedText.Render(fmt.Sprintf("... %d more lines", len(m.lines)-end)))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(RenderHelpLine(
		PreviewKeys.Down, PreviewKeys.HalfPage, PreviewKeys.Edit, PreviewKeys.Yank, PreviewKeys.Close,
	))

	return styles.App.Render(b.String())
}

// SetSize updates the view dimensions
func (m *PreviewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.renderer != nil {
		m.renderer.Resize(width - 4)
	}
}
