package application

import "fieldnotes/internal/domain"

// Re-export domain types for use by adapters
type (
	Note         = domain.Note
	Section      = domain.Section
	TreeNode     = domain.TreeNode
	SearchResult = domain.SearchResult
	Finding      = domain.Finding
	Status       = domain.Status
)

const (
	StatusCurrent     = domain.StatusCurrent
	StatusNeedsReview = domain.StatusNeedsReview
	StatusArchived    = domain.StatusArchived
)

// ParseStatus parses a frontmatter status value
func ParseStatus(s string) (domain.Status, error) {
	return domain.ParseStatus(s)
}

// Slugify converts a free-form title into a slug candidate
func Slugify(title string) string {
	return domain.Slugify(title)
}
