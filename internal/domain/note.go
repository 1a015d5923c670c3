package domain

import (
	"slices"
	"strings"
	"time"
)

// Note represents one research note in the corpus
type Note struct {
	Slug    string // Filename without .md, unique across the corpus
	Title   string
	Path    string // Relative path from corpus root (e.g., "apps/claude-desktop.md")
	Section string // Top-level directory: "apps", "patterns", "archive", ...
	App     string // Product studied, when the note covers one
	Status  Status
	Updated time.Time
	Tags    []string
	Words   int
	Mtime   time.Time
}

// Section represents a top-level corpus directory holding notes
type Section struct {
	Name  string // e.g., "apps"
	Path  string // Absolute path
	Notes []Note
}

// SearchResult represents a search match
type SearchResult struct {
	Slug        string
	Title       string
	Path        string
	Section     string
	MatchedText string // The line (or title) that matched
	Line        int    // 0 when the match was on the filename or title
}

// TreeNode represents a node in the corpus tree for navigation
type TreeNode struct {
	Slug       string // Empty for section nodes and the root
	Name       string
	Path       string
	Status     Status
	Children   []*TreeNode
	IsExpanded bool
	Parent     *TreeNode
}

// IsSection reports whether the node is a section directory rather than a note.
func (n *TreeNode) IsSection() bool {
	return n.Slug == ""
}

// Flatten returns all visible nodes in the tree (for list rendering)
func (n *TreeNode) Flatten() []*TreeNode {
	var result []*TreeNode
	n.flattenRecursive(&result)
	return result
}

func (n *TreeNode) flattenRecursive(result *[]*TreeNode) {
	*result = append(*result, n)
	if n.IsExpanded {
		for _, child := range n.Children {
			child.flattenRecursive(result)
		}
	}
}

// Depth returns the depth of this node in the tree
func (n *TreeNode) Depth() int {
	depth := 0
	current := n.Parent
	for current != nil {
		depth++
		current = current.Parent
	}
	return depth
}

// Toggle expands or collapses the node
func (n *TreeNode) Toggle() {
	n.IsExpanded = !n.IsExpanded
}

// Expand sets the node as expanded
func (n *TreeNode) Expand() {
	n.IsExpanded = true
}

// Collapse sets the node as collapsed
func (n *TreeNode) Collapse() {
	n.IsExpanded = false
}

// SortNotes sorts notes by slug in ascending order
func SortNotes(notes []Note) {
	slices.SortFunc(notes, func(a, b Note) int {
		return strings.Compare(a.Slug, b.Slug)
	})
}

// SortSections sorts sections by name in ascending order
func SortSections(sections []Section) {
	slices.SortFunc(sections, func(a, b Section) int {
		return strings.Compare(a.Name, b.Name)
	})
}
