package domain

import "testing"

func TestAnchor(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Takeaways", "takeaways"},
		{"Keyboard Shortcuts", "keyboard-shortcuts"},
		{"Quick Entry (Global Hotkey)", "quick-entry-global-hotkey"},
		{"What's New?", "whats-new"},
		{"  Sources  ", "sources"},
		{"CSV / TSV import", "csv--tsv-import"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := Anchor(tt.text); got != tt.want {
				t.Errorf("Anchor(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestAnchorSetDeduplicates(t *testing.T) {
	s := NewAnchorSet()

	if got := s.Add("Shortcuts"); got != "shortcuts" {
		t.Errorf("first Add = %q, want shortcuts", got)
	}
	if got := s.Add("Shortcuts"); got != "shortcuts-1" {
		t.Errorf("second Add = %q, want shortcuts-1", got)
	}
	if got := s.Add("Shortcuts"); got != "shortcuts-2" {
		t.Errorf("third Add = %q, want shortcuts-2", got)
	}
	if got := s.Add("Sources"); got != "sources" {
		t.Errorf("unrelated Add = %q, want sources", got)
	}
}

func TestOutlineFlattenAndFind(t *testing.T) {
	h1 := &HeadingNode{Level: 1, Text: "Alfred", Anchor: "alfred", Line: 8}
	h2a := &HeadingNode{Level: 2, Text: "Universal Actions", Anchor: "universal-actions", Line: 12}
	h2b := &HeadingNode{Level: 2, Text: "Sources", Anchor: "sources", Line: 40}
	h3 := &HeadingNode{Level: 3, Text: "Action Panel", Anchor: "action-panel", Line: 16}
	h2a.Children = []*HeadingNode{h3}
	h1.Children = []*HeadingNode{h2a, h2b}
	o := &Outline{Headings: []*HeadingNode{h1}}

	flat := o.Flatten()
	if len(flat) != 4 {
		t.Fatalf("expected 4 headings, got %d", len(flat))
	}
	// Document order
	if flat[0] != h1 || flat[1] != h2a || flat[2] != h3 || flat[3] != h2b {
		t.Error("Flatten did not preserve document order")
	}

	if got := o.Find("action-panel"); got != h3 {
		t.Errorf("Find(action-panel) = %v, want the H3", got)
	}
	if got := o.Find("missing"); got != nil {
		t.Errorf("Find(missing) = %v, want nil", got)
	}
	if got := o.H1(); got != "Alfred" {
		t.Errorf("H1() = %q, want Alfred", got)
	}
}

func TestTreeNodeFlatten(t *testing.T) {
	root := &TreeNode{Name: "Corpus", IsExpanded: true}
	apps := &TreeNode{Name: "apps", Parent: root}
	patterns := &TreeNode{Name: "patterns", Parent: root, IsExpanded: true}
	note := &TreeNode{Slug: "quick-capture", Name: "Quick Capture", Parent: patterns}
	hidden := &TreeNode{Slug: "alfred", Name: "Alfred", Parent: apps}
	apps.Children = []*TreeNode{hidden}
	patterns.Children = []*TreeNode{note}
	root.Children = []*TreeNode{apps, patterns}

	flat := root.Flatten()
	if len(flat) != 4 {
		t.Fatalf("expected 4 visible nodes (collapsed apps hides its child), got %d", len(flat))
	}

	apps.Expand()
	if len(root.Flatten()) != 5 {
		t.Error("expected expanded apps to reveal its child")
	}

	if note.Depth() != 2 {
		t.Errorf("note depth = %d, want 2", note.Depth())
	}
	if !apps.IsSection() {
		t.Error("section node misclassified")
	}
	if note.IsSection() {
		t.Error("note node classified as section")
	}
}
