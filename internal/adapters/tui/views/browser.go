package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"fieldnotes/internal/adapters/tui/styles"
	"fieldnotes/internal/domain"
	"fieldnotes/internal/ports"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Enter   key.Binding
	New     key.Binding
	Edit    key.Binding
	Archive key.Binding
	Status  key.Binding
	Yank    key.Binding
	Search  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "preview/toggle"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new note"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Archive: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "archive"),
	),
	Status: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "toggle status"),
	),
	Yank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy path"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// BrowserModel is the model for the corpus tree browser
type BrowserModel struct {
	repo       ports.CorpusRepository
	root       *domain.TreeNode
	flatNodes  []*domain.TreeNode
	cursor     int
	width      int
	height     int
	message    string
	messageErr bool
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(repo ports.CorpusRepository) *BrowserModel {
	return &BrowserModel{
		repo: repo,
	}
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return m.loadTree
}

func (m *BrowserModel) loadTree() tea.Msg {
	root, err := m.repo.Tree()
	if err != nil {
		return errMsg{err}
	}
	return treeLoadedMsg{root}
}

type treeLoadedMsg struct {
	root *domain.TreeNode
}

type errMsg struct {
	err error
}

type successMsg struct {
	message string
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case treeLoadedMsg:
		m.root = msg.root
		m.refreshFlatNodes()
		return m, nil

	case errMsg:
		m.message = msg.err.Error()
		m.messageErr = true
		return m, nil

	case successMsg:
		m.message = msg.message
		m.messageErr = false
		return m, m.Reload()

	case tea.KeyMsg:
		m.message = "" // Clear message on key press

		switch {
		case key.Matches(msg, BrowserKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, BrowserKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Down):
			if m.cursor < len(m.flatNodes)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Left):
			if node := m.selectedNode(); node != nil {
				if node.IsSection() && node.IsExpanded {
					node.Collapse()
					m.refreshFlatNodes()
				} else if !node.IsSection() {
					// Move to parent section
					for i, n := range m.flatNodes {
						if n == node.Parent {
							m.cursor = i
							break
						}
					}
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Right):
			if node := m.selectedNode(); node != nil && node.IsSection() && !node.IsExpanded {
				node.Expand()
				m.refreshFlatNodes()
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Enter):
			if node := m.selectedNode(); node != nil {
				if node.IsSection() {
					node.Toggle()
					m.refreshFlatNodes()
					return m, nil
				}
				return m, func() tea.Msg {
					return OpenPreviewMsg{Slug: node.Slug}
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.New):
			section := ""
			if node := m.selectedNode(); node != nil {
				if node.IsSection() {
					section = node.Name
				} else if node.Parent != nil {
					section = node.Parent.Name
				}
			}
			return m, func() tea.Msg {
				return SwitchToNewNoteMsg{Section: section}
			}

		case key.Matches(msg, BrowserKeys.Edit):
			if node := m.selectedNode(); node != nil && !node.IsSection() {
				return m, m.editNote(node)
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Archive):
			if node := m.selectedNode(); node != nil && !node.IsSection() {
				return m, m.archiveNote(node)
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Status):
			if node := m.selectedNode(); node != nil && !node.IsSection() {
				return m, m.toggleStatus(node)
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Yank):
			if node := m.selectedNode(); node != nil && !node.IsSection() {
				return m, m.yankPath(node)
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Search):
			return m, func() tea.Msg {
				return SwitchToSearchMsg{}
			}

		case key.Matches(msg, BrowserKeys.Help):
			return m, func() tea.Msg {
				return SwitchToHelpMsg{}
			}
		}
	}

	return m, nil
}

func (m *BrowserModel) editNote(node *domain.TreeNode) tea.Cmd {
	return func() tea.Msg {
		path, err := m.repo.AbsPath(node.Slug)
		if err != nil {
			return errMsg{err}
		}
		return OpenEditorMsg{Path: path}
	}
}

func (m *BrowserModel) archiveNote(node *domain.TreeNode) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.repo.Archive(node.Slug); err != nil {
			return errMsg{err}
		}
		return successMsg{fmt.Sprintf("Archived %s", node.Slug)}
	}
}

// toggleStatus flips a note between current and needs-review
func (m *BrowserModel) toggleStatus(node *domain.TreeNode) tea.Cmd {
	return func() tea.Msg {
		next := domain.StatusNeedsReview
		if node.Status == domain.StatusNeedsReview {
			next = domain.StatusCurrent
		}
		if _, err := m.repo.SetStatus(node.Slug, next); err != nil {
			return errMsg{err}
		}
		return successMsg{fmt.Sprintf("Set %s to %s", node.Slug, next)}
	}
}

func (m *BrowserModel) yankPath(node *domain.TreeNode) tea.Cmd {
	return func() tea.Msg {
		path, err := m.repo.AbsPath(node.Slug)
		if err != nil {
			return errMsg{err}
		}
		if err := clipboard.WriteAll(path); err != nil {
			return errMsg{err}
		}
		return successMsg{fmt.Sprintf("Copied %s", path)}
	}
}

func (m *BrowserModel) selectedNode() *domain.TreeNode {
	if m.cursor >= 0 && m.cursor < len(m.flatNodes) {
		return m.flatNodes[m.cursor]
	}
	return nil
}

func (m *BrowserModel) refreshFlatNodes() {
	if m.root == nil {
		return
	}
	m.flatNodes = m.root.Flatten()
	// Skip root node in display
	if len(m.flatNodes) > 0 {
		m.flatNodes = m.flatNodes[1:]
	}
	// Clamp cursor
	if m.cursor >= len(m.flatNodes) {
		m.cursor = len(m.flatNodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the browser
func (m *BrowserModel) View() string {
	if m.root == nil {
		return "Loading..."
	}

	var b strings.Builder

	// Title
	b.WriteString(styles.Title.Render("Fieldnotes"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("UX Research Corpus"))
	b.WriteString("\n\n")

	// Tree
	for i, node := range m.flatNodes {
		line := m.renderNode(node, i == m.cursor)
		b.WriteString(line)
		b.WriteString("\n")
	}

	// Message
	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(RenderMessage(m.message, m.messageErr))
	}

	// Help line
	b.WriteString("\n")
	b.WriteString(RenderHelpLine(
		BrowserKeys.Down, BrowserKeys.Enter, BrowserKeys.New, BrowserKeys.Edit,
		BrowserKeys.Archive, BrowserKeys.Search, BrowserKeys.Help, BrowserKeys.Quit,
	))

	return styles.App.Render(b.String())
}

func (m *BrowserModel) renderNode(node *domain.TreeNode, selected bool) string {
	depth := node.Depth() - 1
	if depth < 0 {
		depth = 0
	}
	indent := strings.Repeat("  ", depth)

	// Prefix (expand indicator)
	var prefix string
	switch {
	case !node.IsSection():
		prefix = styles.TreeLeaf
	case node.IsExpanded:
		prefix = styles.TreeExpanded
	default:
		prefix = styles.TreeCollapsed
	}

	var plain, styledText string
	if node.IsSection() {
		plain = node.Name + "/"
		styledText = styles.NodeSection.Render(plain)
	} else {
		plain = fmt.Sprintf("%s (%s)", node.Name, node.Status)
		nameStyle := styles.NodeNote
		if node.Status == domain.StatusArchived {
			nameStyle = styles.NodeArchived
		}
		styledText = nameStyle.Render(node.Name) + " " + styles.StatusBadge(node.Status)
	}

	if selected {
		styledText = styles.NodeSelected.Render(plain)
	}

	return fmt.Sprintf("%s%s%s", indent, styles.TreeBranch.Render(prefix), styledText)
}

// SetSize updates the view dimensions
func (m *BrowserModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Reload reloads the tree from disk
func (m *BrowserModel) Reload() tea.Cmd {
	m.root = nil
	m.flatNodes = nil
	m.cursor = 0
	return m.loadTree
}

// Messages for view switching
type SwitchToNewNoteMsg struct {
	Section string
}

type SwitchToSearchMsg struct{}

type SwitchToHelpMsg struct{}

type SwitchToBrowserMsg struct{}

// OpenPreviewMsg asks the app to show a rendered note
type OpenPreviewMsg struct {
	Slug string
}

// OpenEditorMsg asks the app to open a file in $EDITOR
type OpenEditorMsg struct {
	Path string
}
