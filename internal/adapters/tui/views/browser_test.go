package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"fieldnotes/internal/domain"
)

func testTree() *domain.TreeNode {
	root := &domain.TreeNode{
		Name:       "notes",
		IsExpanded: true,
	}
	apps := &domain.TreeNode{
		Name:       "apps",
		Path:       "apps",
		IsExpanded: true,
		Parent:     root,
	}
	apps.Children = []*domain.TreeNode{
		{
			Slug:   "alfred",
			Name:   "alfred",
			Path:   "apps/alfred.md",
			Status: domain.StatusCurrent,
			Parent: apps,
		},
		{
			Slug:   "cursor",
			Name:   "cursor",
			Path:   "apps/cursor.md",
			Status: domain.StatusNeedsReview,
			Parent: apps,
		},
	}
	patterns := &domain.TreeNode{
		Name:   "patterns",
		Path:   "patterns",
		Parent: root,
	}
	patterns.Children = []*domain.TreeNode{
		{
			Slug:   "quick-capture",
			Name:   "quick-capture",
			Path:   "patterns/quick-capture.md",
			Status: domain.StatusCurrent,
			Parent: patterns,
		},
	}
	root.Children = []*domain.TreeNode{apps, patterns}
	return root
}

func loadedBrowser() *BrowserModel {
	m := NewBrowserModel(nil)
	m.Update(treeLoadedMsg{root: testTree()})
	return m
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestBrowserFlattensVisibleNodes(t *testing.T) {
	m := loadedBrowser()

	// apps is expanded (2 notes), patterns is collapsed
	if len(m.flatNodes) != 4 {
		t.Fatalf("expected 4 visible nodes, got %d", len(m.flatNodes))
	}
	if !m.flatNodes[0].IsSection() || m.flatNodes[0].Name != "apps" {
		t.Errorf("expected apps section first, got %q", m.flatNodes[0].Name)
	}
	if m.flatNodes[1].Slug != "alfred" {
		t.Errorf("expected alfred second, got %q", m.flatNodes[1].Slug)
	}
	if !m.flatNodes[3].IsSection() || m.flatNodes[3].Name != "patterns" {
		t.Errorf("expected collapsed patterns last, got %q", m.flatNodes[3].Name)
	}
}

func TestBrowserCursorNavigation(t *testing.T) {
	m := loadedBrowser()

	m.Update(keyPress('j'))
	m.Update(keyPress('j'))
	if node := m.selectedNode(); node == nil || node.Slug != "cursor" {
		t.Fatalf("expected cursor on cursor note, got %+v", m.selectedNode())
	}

	m.Update(keyPress('k'))
	if node := m.selectedNode(); node == nil || node.Slug != "alfred" {
		t.Fatalf("expected cursor on alfred, got %+v", m.selectedNode())
	}

	// Up at the top stays put
	m.Update(keyPress('k'))
	m.Update(keyPress('k'))
	if m.cursor != 0 {
		t.Errorf("expected cursor clamped at 0, got %d", m.cursor)
	}
}

func TestBrowserExpandCollapse(t *testing.T) {
	m := loadedBrowser()

	// Collapse apps: its notes disappear
	m.Update(keyPress('h'))
	if len(m.flatNodes) != 2 {
		t.Fatalf("expected 2 visible nodes after collapse, got %d", len(m.flatNodes))
	}

	// Expand patterns
	m.Update(keyPress('j'))
	m.Update(keyPress('l'))
	if len(m.flatNodes) != 3 {
		t.Fatalf("expected 3 visible nodes after expand, got %d", len(m.flatNodes))
	}
	if m.flatNodes[2].Slug != "quick-capture" {
		t.Errorf("expected quick-capture visible, got %q", m.flatNodes[2].Slug)
	}
}

func TestBrowserLeftFromNoteMovesToSection(t *testing.T) {
	m := loadedBrowser()

	m.Update(keyPress('j')) // alfred
	m.Update(keyPress('h'))
	if node := m.selectedNode(); node == nil || !node.IsSection() || node.Name != "apps" {
		t.Fatalf("expected cursor on apps section, got %+v", m.selectedNode())
	}
}

func TestBrowserEnterOnNoteOpensPreview(t *testing.T) {
	m := loadedBrowser()

	m.Update(keyPress('j')) // alfred
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command from enter on a note")
	}
	msg := cmd()
	preview, ok := msg.(OpenPreviewMsg)
	if !ok {
		t.Fatalf("expected OpenPreviewMsg, got %T", msg)
	}
	if preview.Slug != "alfred" {
		t.Errorf("expected alfred preview, got %q", preview.Slug)
	}
}

func TestBrowserNewNotePrefillsSection(t *testing.T) {
	m := loadedBrowser()

	m.Update(keyPress('j')) // alfred, inside apps
	_, cmd := m.Update(keyPress('n'))
	if cmd == nil {
		t.Fatal("expected a command from new")
	}
	msg := cmd()
	switchMsg, ok := msg.(SwitchToNewNoteMsg)
	if !ok {
		t.Fatalf("expected SwitchToNewNoteMsg, got %T", msg)
	}
	if switchMsg.Section != "apps" {
		t.Errorf("expected apps section prefill, got %q", switchMsg.Section)
	}
}

func TestBrowserRenderNode(t *testing.T) {
	m := loadedBrowser()

	section := m.renderNode(m.flatNodes[0], false)
	if !strings.Contains(section, "apps/") {
		t.Errorf("expected section rendered with trailing slash, got %q", section)
	}

	note := m.renderNode(m.flatNodes[1], false)
	if !strings.Contains(note, "alfred") {
		t.Errorf("expected note name in output, got %q", note)
	}
	if !strings.Contains(note, "current") {
		t.Errorf("expected status badge in output, got %q", note)
	}
}

func TestBrowserErrMsgSetsMessage(t *testing.T) {
	m := loadedBrowser()

	m.Update(errMsg{err: errTest})
	if m.message != "boom" || !m.messageErr {
		t.Errorf("expected error message set, got %q (err=%v)", m.message, m.messageErr)
	}

	// Key press clears it
	m.Update(keyPress('j'))
	if m.message != "" {
		t.Errorf("expected message cleared on key press, got %q", m.message)
	}
}

type testError string

func (e testError) Error() string { return string(e) }

var errTest = testError("boom")
