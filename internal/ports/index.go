package ports

import (
	"time"

	"fieldnotes/internal/domain"
)

// CorpusIndex provides cached access to note metadata, the cross-reference
// graph and citation probe results. The corpus on disk stays the source of
// truth; the index is always safe to delete and rebuild.
type CorpusIndex interface {
	// Lifecycle
	Open(corpusPath string) error
	Close() error

	// Sync operations
	NeedsFullRebuild() bool
	SyncIncremental() (*domain.SyncStats, error)
	SyncFull() (*domain.SyncStats, error)

	// Note queries
	NoteBySlug(slug string) (*domain.IndexNote, error)
	HeadingExists(slug, anchor string) (bool, error)
	Outline(path string) ([]domain.IndexHeading, error)

	// Edge queries (cross-reference graph)
	Backlinks(slug string) ([]domain.Edge, error)
	EdgesFrom(sourcePath string) ([]domain.Edge, error)
	AllEdges() ([]domain.Edge, error)

	// Citations and probes
	// AllCitations maps each cited URL to the corpus-relative paths of the
	// notes citing it.
	AllCitations() (map[string][]string, error)
	StaleProbes(urls []string, ttl time.Duration) ([]string, error)
	RecordProbe(rec domain.ProbeRecord) error
	ProbeFor(url string) (*domain.ProbeRecord, error)
	RecordCheckRun(run domain.CheckRun) error

	// Stats
	Stats() (*domain.CorpusStats, error)

	// Batch updates (for rename/archive operations)
	BeginTx() (IndexTx, error)
}

// IndexTx represents a transaction for atomic cache updates
type IndexTx interface {
	UpsertNote(note *domain.IndexNote) error
	DeleteNote(path string) error
	RenameNote(oldPath, newPath string) error

	DeleteEdgesFrom(sourcePath string) error
	InsertEdge(edge *domain.Edge) error
	UpdateEdgeTarget(oldSlug, newSlug string) error

	Commit() error
	Rollback() error
}
