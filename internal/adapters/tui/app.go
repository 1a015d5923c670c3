package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"fieldnotes/internal/adapters/editor"
	"fieldnotes/internal/adapters/render"
	"fieldnotes/internal/adapters/tui/views"
	"fieldnotes/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewPreview
	ViewSearch
	ViewNewNote
	ViewHelp
)

// App is the main TUI application model
type App struct {
	repo   ports.CorpusRepository
	editor *editor.Opener

	state   ViewState
	browser *views.BrowserModel
	preview *views.PreviewModel
	search  *views.SearchModel
	newNote *views.NewNoteModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(repo ports.CorpusRepository, ed *editor.Opener) *App {
	return &App{
		repo:    repo,
		editor:  ed,
		state:   ViewBrowser,
		browser: views.NewBrowserModel(repo),
		preview: views.NewPreviewModel(repo, render.NewRenderer(80)),
		search:  views.NewSearchModel(repo),
		newNote: views.NewNewNoteModel(repo, ed != nil),
		help:    views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.preview.SetSize(msg.Width, msg.Height)
		a.search.SetSize(msg.Width, msg.Height)
		a.newNote.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.OpenPreviewMsg:
		a.state = ViewPreview
		return a, a.preview.Load(msg.Slug)

	case views.SwitchToSearchMsg:
		a.state = ViewSearch
		a.search.Reset()
		return a, a.search.Init()

	case views.SwitchToNewNoteMsg:
		a.state = ViewNewNote
		a.newNote.SetSection(msg.Section)
		return a, a.newNote.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, a.browser.Reload()

	// New-note view messages
	case views.NewNoteSuccessMsg:
		a.state = ViewBrowser
		return a, a.browser.Reload()

	case views.NewNoteErrMsg:
		a.newNote.SetMessage(msg.Err.Error(), true)
		return a, nil

	case views.OpenEditorMsg:
		// Return to browser, then open editor
		a.state = ViewBrowser
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		return a, a.browser.Reload()
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewPreview:
		_, cmd = a.preview.Update(msg)
	case ViewSearch:
		_, cmd = a.search.Update(msg)
	case ViewNewNote:
		_, cmd = a.newNote.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewPreview:
		return a.preview.View()
	case ViewSearch:
		return a.search.View()
	case ViewNewNote:
		return a.newNote.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
