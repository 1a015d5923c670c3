package domain

import "time"

// IndexNote is a cached note row in the corpus index
type IndexNote struct {
	Path    string // Relative path from corpus root (primary key)
	Slug    string
	Title   string
	App     string
	Status  Status
	Updated string // YYYY-MM-DD as written in frontmatter
	Words   int
	Mtime   int64 // Unix timestamp for incremental sync
}

// IndexHeading is a cached heading row, used for outlines and
// fragment resolution
type IndexHeading struct {
	Path   string
	Anchor string
	Level  int
	Text   string
	Line   int
}

// Edge is a cross-reference between two notes
type Edge struct {
	SourcePath string // Note containing the link
	TargetSlug string // Referenced slug
	Fragment   string // Heading anchor, when given
	LinkText   string // Original link text
	Line       int
}

// ProbeRecord is the cached reachability result for one cited URL
type ProbeRecord struct {
	URL          string
	StatusCode   int
	OK           bool
	RedirectedTo string // Final URL after redirects, when it differs
	Error        string // Network/anchor error, empty when reachable
	Latency      time.Duration
	CheckedAt    time.Time
}

// CheckRun summarizes one link-check pass
type CheckRun struct {
	ID         string // uuid
	StartedAt  time.Time
	FinishedAt time.Time
	URLs       int
	Broken     int
}

// SyncStats holds statistics from a sync operation
type SyncStats struct {
	NotesAdded     int
	NotesUpdated   int
	NotesDeleted   int
	EdgesAdded     int
	CitationsAdded int
	FilesScanned   int
	Duration       time.Duration
}

// CorpusStats summarizes the indexed corpus
type CorpusStats struct {
	Notes       int
	ByStatus    map[string]int
	ByApp       map[string]int
	Words       int
	Edges       int
	Citations   int
	BrokenLinks int
}
