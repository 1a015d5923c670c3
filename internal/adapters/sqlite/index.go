package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fieldnotes/internal/domain"
	"fieldnotes/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Index implements ports.CorpusIndex using SQLite
type Index struct {
	db         *sql.DB
	corpusPath string
	dbPath     string
}

// Ensure Index implements CorpusIndex
var _ ports.CorpusIndex = (*Index)(nil)

// NewIndex creates a new SQLite index
func NewIndex() *Index {
	return &Index{}
}

// Open initializes the index for the given corpus path
func (idx *Index) Open(corpusPath string) error {
	// Expand ~ in path
	if len(corpusPath) > 0 && corpusPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		corpusPath = filepath.Join(home, corpusPath[1:])
	}

	idx.corpusPath = corpusPath
	idx.dbPath = databasePath(corpusPath)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(idx.dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", idx.dbPath+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	idx.db = db

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS notes (
			path TEXT PRIMARY KEY,
			slug TEXT NOT NULL,
			title TEXT NOT NULL,
			app TEXT,
			status TEXT,
			updated TEXT,
			words INTEGER NOT NULL DEFAULT 0,
			mtime INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS headings (
			path TEXT NOT NULL,
			anchor TEXT NOT NULL,
			level INTEGER NOT NULL,
			text TEXT NOT NULL,
			line INTEGER NOT NULL,
			PRIMARY KEY (path, anchor)
		);
		CREATE TABLE IF NOT EXISTS edges (
			source_path TEXT NOT NULL,
			target_slug TEXT NOT NULL,
			fragment TEXT NOT NULL DEFAULT '',
			link_text TEXT NOT NULL,
			line INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (source_path, link_text, line)
		);
		CREATE TABLE IF NOT EXISTS citations (
			source_path TEXT NOT NULL,
			url TEXT NOT NULL,
			label TEXT NOT NULL DEFAULT '',
			line INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (source_path, url, line)
		);
		CREATE TABLE IF NOT EXISTS probes (
			url TEXT PRIMARY KEY,
			status_code INTEGER NOT NULL DEFAULT 0,
			ok INTEGER NOT NULL DEFAULT 0,
			redirected_to TEXT NOT NULL DEFAULT '',
			error TEXT NOT NULL DEFAULT '',
			latency_ms INTEGER NOT NULL DEFAULT 0,
			checked_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS check_runs (
			id TEXT PRIMARY KEY,
			started_at INTEGER NOT NULL,
			finished_at INTEGER NOT NULL,
			urls INTEGER NOT NULL,
			broken INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_notes_slug ON notes(slug);
		CREATE INDEX IF NOT EXISTS idx_headings_path ON headings(path);
		CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target_slug);
		CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(source_path);
		CREATE INDEX IF NOT EXISTS idx_citations_url ON citations(url);
		CREATE INDEX IF NOT EXISTS idx_citations_source ON citations(source_path);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	// Update metadata
	if err := idx.updateMeta(); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// NeedsFullRebuild returns true if the index should be fully rebuilt
func (idx *Index) NeedsFullRebuild() bool {
	var version, corpusHash, lastSync string

	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'built_schema_version'").Scan(&version)
	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'corpus_path_hash'").Scan(&corpusHash)
	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'last_sync_time'").Scan(&lastSync)

	expectedHash := hashCorpusPath(idx.corpusPath)

	return version != schemaVersion || corpusHash != expectedHash || lastSync == ""
}

// databasePath returns the path for the SQLite database
func databasePath(corpusPath string) string {
	// XDG data directory
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}

	// Hash corpus path for unique DB name
	hash := hashCorpusPath(corpusPath)

	return filepath.Join(dataHome, "fieldnotes", hash+".db")
}

// hashCorpusPath returns a short hash of the corpus path
func hashCorpusPath(corpusPath string) string {
	h := sha256.Sum256([]byte(corpusPath))
	return hex.EncodeToString(h[:8]) // First 8 bytes = 16 hex chars
}

// updateMeta records the corpus path hash. The schema version only moves
// to built_schema_version once a sync has populated the tables.
func (idx *Index) updateMeta() error {
	_, err := idx.db.Exec(`
		INSERT OR REPLACE INTO meta (key, value) VALUES ('corpus_path_hash', ?);
	`, hashCorpusPath(idx.corpusPath))
	return err
}

// NoteBySlug retrieves a note row by slug
func (idx *Index) NoteBySlug(slug string) (*domain.IndexNote, error) {
	var note domain.IndexNote
	var status sql.NullString

	err := idx.db.QueryRow(`
		SELECT path, slug, title, app, status, updated, words, mtime
		FROM notes WHERE slug = ?
	`, slug).Scan(&note.Path, &note.Slug, &note.Title, &note.App, &status, &note.Updated, &note.Words, &note.Mtime)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if status.Valid {
		note.Status, _ = domain.ParseStatus(status.String)
	}

	return &note, nil
}

// NoteExists reports whether a note with the given slug is indexed.
// Together with HeadingExists this makes the index a lint resolver.
func (idx *Index) NoteExists(slug string) (bool, error) {
	var count int
	err := idx.db.QueryRow(`SELECT COUNT(*) FROM notes WHERE slug = ?`, slug).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// HeadingExists reports whether the note with the given slug has a
// heading with the given anchor
func (idx *Index) HeadingExists(slug, anchor string) (bool, error) {
	var count int
	err := idx.db.QueryRow(`
		SELECT COUNT(*)
		FROM headings h JOIN notes n ON n.path = h.path
		WHERE n.slug = ? AND h.anchor = ?
	`, slug, anchor).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Outline returns the cached headings of a note in document order
func (idx *Index) Outline(path string) ([]domain.IndexHeading, error) {
	rows, err := idx.db.Query(`
		SELECT path, anchor, level, text, line
		FROM headings WHERE path = ?
		ORDER BY line
	`, path)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var headings []domain.IndexHeading
	for rows.Next() {
		var h domain.IndexHeading
		if err := rows.Scan(&h.Path, &h.Anchor, &h.Level, &h.Text, &h.Line); err != nil {
			return nil, err
		}
		headings = append(headings, h)
	}

	return headings, rows.Err()
}

// Backlinks returns all edges pointing to a slug
func (idx *Index) Backlinks(slug string) ([]domain.Edge, error) {
	return idx.queryEdges(`
		SELECT source_path, target_slug, fragment, link_text, line
		FROM edges WHERE target_slug = ?
		ORDER BY source_path, line
	`, slug)
}

// EdgesFrom returns all edges from a source note
func (idx *Index) EdgesFrom(sourcePath string) ([]domain.Edge, error) {
	return idx.queryEdges(`
		SELECT source_path, target_slug, fragment, link_text, line
		FROM edges WHERE source_path = ?
		ORDER BY line
	`, sourcePath)
}

// AllEdges returns every edge in the index
func (idx *Index) AllEdges() ([]domain.Edge, error) {
	return idx.queryEdges(`
		SELECT source_path, target_slug, fragment, link_text, line
		FROM edges
		ORDER BY source_path, line
	`)
}

func (idx *Index) queryEdges(query string, args ...any) ([]domain.Edge, error) {
	rows, err := idx.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edges []domain.Edge
	for rows.Next() {
		var e domain.Edge
		if err := rows.Scan(&e.SourcePath, &e.TargetSlug, &e.Fragment, &e.LinkText, &e.Line); err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}

	return edges, rows.Err()
}

// AllCitations maps each cited URL to the notes citing it
func (idx *Index) AllCitations() (map[string][]string, error) {
	rows, err := idx.db.Query(`
		SELECT DISTINCT url, source_path
		FROM citations
		ORDER BY url, source_path
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	citations := make(map[string][]string)
	for rows.Next() {
		var url, sourcePath string
		if err := rows.Scan(&url, &sourcePath); err != nil {
			return nil, err
		}
		citations[url] = append(citations[url], sourcePath)
	}

	return citations, rows.Err()
}

// StaleProbes returns the subset of urls with no cached probe younger
// than ttl
func (idx *Index) StaleProbes(urls []string, ttl time.Duration) ([]string, error) {
	cutoff := time.Now().Add(-ttl).Unix()

	var stale []string
	for _, url := range urls {
		var checkedAt int64
		err := idx.db.QueryRow(`SELECT checked_at FROM probes WHERE url = ?`, url).Scan(&checkedAt)
		if err == sql.ErrNoRows || (err == nil && checkedAt < cutoff) {
			stale = append(stale, url)
			continue
		}
		if err != nil {
			return nil, err
		}
	}
	return stale, nil
}

// RecordProbe stores a probe result, replacing any previous one
func (idx *Index) RecordProbe(rec domain.ProbeRecord) error {
	_, err := idx.db.Exec(`
		INSERT OR REPLACE INTO probes (url, status_code, ok, redirected_to, error, latency_ms, checked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.URL, rec.StatusCode, boolInt(rec.OK), rec.RedirectedTo, rec.Error,
		rec.Latency.Milliseconds(), rec.CheckedAt.Unix())
	return err
}

// ProbeFor returns the cached probe for a URL, or nil
func (idx *Index) ProbeFor(url string) (*domain.ProbeRecord, error) {
	var rec domain.ProbeRecord
	var ok int
	var latencyMs, checkedAt int64

	err := idx.db.QueryRow(`
		SELECT url, status_code, ok, redirected_to, error, latency_ms, checked_at
		FROM probes WHERE url = ?
	`, url).Scan(&rec.URL, &rec.StatusCode, &ok, &rec.RedirectedTo, &rec.Error, &latencyMs, &checkedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rec.OK = ok != 0
	rec.Latency = time.Duration(latencyMs) * time.Millisecond
	rec.CheckedAt = time.Unix(checkedAt, 0)
	return &rec, nil
}

// RecordCheckRun stores the summary of a link-check pass
func (idx *Index) RecordCheckRun(run domain.CheckRun) error {
	_, err := idx.db.Exec(`
		INSERT INTO check_runs (id, started_at, finished_at, urls, broken)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.StartedAt.Unix(), run.FinishedAt.Unix(), run.URLs, run.Broken)
	return err
}

// Stats aggregates the indexed corpus
func (idx *Index) Stats() (*domain.CorpusStats, error) {
	stats := &domain.CorpusStats{
		ByStatus: make(map[string]int),
		ByApp:    make(map[string]int),
	}

	if err := idx.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(words), 0) FROM notes`).
		Scan(&stats.Notes, &stats.Words); err != nil {
		return nil, err
	}
	if err := idx.db.QueryRow(`SELECT COUNT(*) FROM edges`).Scan(&stats.Edges); err != nil {
		return nil, err
	}
	if err := idx.db.QueryRow(`SELECT COUNT(*) FROM citations`).Scan(&stats.Citations); err != nil {
		return nil, err
	}
	if err := idx.db.QueryRow(`
		SELECT COUNT(*) FROM probes p
		WHERE p.ok = 0 AND EXISTS (SELECT 1 FROM citations c WHERE c.url = p.url)
	`).Scan(&stats.BrokenLinks); err != nil {
		return nil, err
	}

	rows, err := idx.db.Query(`SELECT COALESCE(status, ''), COUNT(*) FROM notes GROUP BY status`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			rows.Close()
			return nil, err
		}
		stats.ByStatus[status] = count
	}
	rows.Close()

	rows, err = idx.db.Query(`SELECT app, COUNT(*) FROM notes WHERE app != '' GROUP BY app`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var app string
		var count int
		if err := rows.Scan(&app, &count); err != nil {
			return nil, err
		}
		stats.ByApp[app] = count
	}

	return stats, rows.Err()
}

// BeginTx starts a new transaction
func (idx *Index) BeginTx() (ports.IndexTx, error) {
	tx, err := idx.db.Begin()
	if err != nil {
		return nil, err
	}
	return &indexTx{tx: tx}, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
