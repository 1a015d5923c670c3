package ports

import "fieldnotes/internal/domain"

// CorpusRepository defines the interface for corpus storage operations
type CorpusRepository interface {
	// List operations
	Sections() ([]domain.Section, error)
	List(section string) ([]domain.Note, error)
	All() ([]domain.Note, error)
	Get(slug string) (*domain.Note, error)
	ReadBody(slug string) ([]byte, error)

	// Write operations
	Create(section, title, app string) (*domain.Note, error)
	Rename(slug, newSlug string) (*domain.Note, error)
	SetStatus(slug string, status domain.Status) (*domain.Note, error)
	Archive(slug string) (*domain.Note, error)
	Unarchive(slug, section string) (*domain.Note, error)
	Delete(slug string) error

	// Search
	Search(query string) ([]domain.SearchResult, error)

	// Tree operations
	Tree() (*domain.TreeNode, error)

	// Inbox
	Inbox() ([]domain.Clipping, error)

	// Path resolution
	Root() string
	AbsPath(slug string) (string, error)
}
