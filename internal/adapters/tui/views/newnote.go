package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"fieldnotes/internal/adapters/tui/styles"
	"fieldnotes/internal/application/commands"
	"fieldnotes/internal/domain"
	"fieldnotes/internal/ports"
)

// NewNoteKeyMap defines key bindings for the new-note view
type NewNoteKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Tab    key.Binding
}

var NewNoteKeys = NewNoteKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "create"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
}

// NewNoteModel is the model for the new-note view
type NewNoteModel struct {
	repo         ports.CorpusRepository
	openInEditor bool

	sectionInput textinput.Model
	titleInput   textinput.Model
	appInput     textinput.Model
	focusedField int
	message      string
	messageErr   bool
	width        int
	height       int
}

// NewNewNoteModel creates a new new-note view model
func NewNewNoteModel(repo ports.CorpusRepository, openInEditor bool) *NewNoteModel {
	sectionInput := textinput.New()
	sectionInput.Placeholder = "apps"
	sectionInput.CharLimit = 40

	titleInput := textinput.New()
	titleInput.Placeholder = "Claude Desktop"
	titleInput.CharLimit = 100

	appInput := textinput.New()
	appInput.Placeholder = "Product name (optional)"
	appInput.CharLimit = 100

	return &NewNoteModel{
		repo:         repo,
		openInEditor: openInEditor,
		sectionInput: sectionInput,
		titleInput:   titleInput,
		appInput:     appInput,
	}
}

// SetSection prefills the destination section
func (m *NewNoteModel) SetSection(section string) {
	m.message = ""
	m.messageErr = false
	m.sectionInput.SetValue(section)
	m.titleInput.SetValue("")
	m.appInput.SetValue("")

	m.focusedField = 1 // Focus title by default
	m.titleInput.Focus()
	m.sectionInput.Blur()
	m.appInput.Blur()
}

// SetMessage sets a message to display in the view
func (m *NewNoteModel) SetMessage(msg string, isErr bool) {
	m.message = msg
	m.messageErr = isErr
}

// Init initializes the new-note view
func (m *NewNoteModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the new-note view
func (m *NewNoteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, NewNoteKeys.Cancel):
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}

		case key.Matches(msg, NewNoteKeys.Tab):
			m.focusedField = (m.focusedField + 1) % 3
			m.sectionInput.Blur()
			m.titleInput.Blur()
			m.appInput.Blur()
			switch m.focusedField {
			case 0:
				m.sectionInput.Focus()
			case 1:
				m.titleInput.Focus()
			case 2:
				m.appInput.Focus()
			}
			return m, nil

		case key.Matches(msg, NewNoteKeys.Submit):
			return m, m.create()
		}
	}

	var cmd tea.Cmd
	switch m.focusedField {
	case 0:
		m.sectionInput, cmd = m.sectionInput.Update(msg)
	case 1:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case 2:
		m.appInput, cmd = m.appInput.Update(msg)
	}
	return m, cmd
}

func (m *NewNoteModel) create() tea.Cmd {
	return func() tea.Msg {
		cmd := commands.NewNewNoteCommand(m.repo,
			strings.TrimSpace(m.sectionInput.Value()),
			strings.TrimSpace(m.titleInput.Value()),
			strings.TrimSpace(m.appInput.Value()))

		result, err := cmd.Execute(context.Background())
		if err != nil {
			return NewNoteErrMsg{Err: err}
		}
		if m.openInEditor {
			if path, err := m.repo.AbsPath(result.Note.Slug); err == nil {
				return OpenEditorMsg{Path: path}
			}
		}
		return NewNoteSuccessMsg{Note: result.Note}
	}
}

// View renders the new-note view
func (m *NewNoteModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("New Note"))
	b.WriteString("\n\n")

	b.WriteString(m.renderField("Section", m.sectionInput, m.focusedField == 0))
	b.WriteString(m.renderField("Title", m.titleInput, m.focusedField == 1))
	b.WriteString(m.renderField("App", m.appInput, m.focusedField == 2))

	slug := domain.Slugify(m.titleInput.Value())
	if slug != "" {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("Will create %s/%s.md", m.sectionInput.Value(), slug)))
		b.WriteString("\n")
	}

	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(RenderMessage(m.message, m.messageErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(RenderHelpLine(NewNoteKeys.Tab, NewNoteKeys.Submit, NewNoteKeys.Cancel))

	return styles.App.Render(b.String())
}

func (m *NewNoteModel) renderField(label string, input textinput.Model, focused bool) string {
	style := styles.InputField
	if focused {
		style = styles.InputFocused
	}
	return fmt.Sprintf("%s\n%s\n", styles.InputLabel.Render(label), style.Render(input.View()))
}

// SetSize updates the view dimensions
func (m *NewNoteModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// NewNoteSuccessMsg is sent when a note was created
type NewNoteSuccessMsg struct {
	Note *domain.Note
}

// NewNoteErrMsg is sent when note creation failed
type NewNoteErrMsg struct {
	Err error
}
