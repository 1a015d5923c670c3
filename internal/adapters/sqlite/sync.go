package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"fieldnotes/internal/domain"
	"fieldnotes/internal/markdown"
)

// SyncFull performs a complete rebuild of the index
func (idx *Index) SyncFull() (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{}

	// Clear existing data
	if _, err := idx.db.Exec(`
		DELETE FROM notes;
		DELETE FROM headings;
		DELETE FROM edges;
		DELETE FROM citations;
	`); err != nil {
		return nil, err
	}

	err := idx.walkNotes(func(relPath string, info os.FileInfo) error {
		stats.FilesScanned++
		added, err := idx.indexFile(relPath, info, stats)
		if err != nil {
			return nil // Continue on error
		}
		if added {
			stats.NotesAdded++
		}
		return nil
	})
	if err != nil {
		return stats, err
	}

	idx.finishSync()
	stats.Duration = time.Since(start)
	return stats, nil
}

// SyncIncremental updates only files that changed since last sync
func (idx *Index) SyncIncremental() (*domain.SyncStats, error) {
	start := time.Now()
	stats := &domain.SyncStats{}

	// Get last sync time
	var lastSyncUnix int64
	idx.db.QueryRow(`SELECT value FROM meta WHERE key = 'last_sync_time'`).Scan(&lastSyncUnix)

	// Track existing paths to detect deletions
	existingPaths := make(map[string]bool)
	rows, err := idx.db.Query(`SELECT path FROM notes`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var path string
		rows.Scan(&path)
		existingPaths[path] = true
	}
	rows.Close()

	// Track paths we've seen during this walk
	seenPaths := make(map[string]bool)

	err = idx.walkNotes(func(relPath string, info os.FileInfo) error {
		seenPaths[relPath] = true
		stats.FilesScanned++

		mtime := info.ModTime().Unix()
		if existingPaths[relPath] && mtime <= lastSyncUnix {
			return nil
		}

		if _, err := idx.indexFile(relPath, info, stats); err != nil {
			return nil // Continue on error
		}
		if existingPaths[relPath] {
			stats.NotesUpdated++
		} else {
			stats.NotesAdded++
		}
		return nil
	})
	if err != nil {
		return stats, err
	}

	// Delete notes that no longer exist
	for path := range existingPaths {
		if !seenPaths[path] {
			idx.deleteFile(path)
			stats.NotesDeleted++
		}
	}

	idx.finishSync()
	stats.Duration = time.Since(start)
	return stats, nil
}

// walkNotes visits every note file in the corpus, skipping hidden
// directories and inbox/ (clippings are not indexed).
func (idx *Index) walkNotes(visit func(relPath string, info os.FileInfo) error) error {
	return filepath.Walk(idx.corpusPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}

		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") || info.Name() == "inbox" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(info.Name()), ".md") {
			return nil
		}

		relPath, _ := filepath.Rel(idx.corpusPath, path)
		return visit(relPath, info)
	})
}

// indexFile parses one note and replaces its rows: the note itself, its
// headings, its outgoing edges and its citations.
func (idx *Index) indexFile(relPath string, info os.FileInfo, stats *domain.SyncStats) (bool, error) {
	content, err := os.ReadFile(filepath.Join(idx.corpusPath, relPath))
	if err != nil {
		return false, err
	}

	doc := markdown.Parse(content)
	slug := domain.SlugFromFilename(relPath)
	status, _ := domain.ParseStatus(doc.Frontmatter.Status)

	title := doc.Frontmatter.Title
	if title == "" {
		if h1 := doc.Outline.H1(); h1 != "" {
			title = h1
		} else {
			title = slug
		}
	}

	if _, err := idx.db.Exec(`
		INSERT OR REPLACE INTO notes (path, slug, title, app, status, updated, words, mtime)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, relPath, slug, title, doc.Frontmatter.App, statusValue(status),
		doc.Frontmatter.Updated, doc.Words, info.ModTime().Unix()); err != nil {
		return false, err
	}

	// Replace derived rows wholesale; partial updates are not worth it
	// at corpus scale.
	idx.db.Exec(`DELETE FROM headings WHERE path = ?`, relPath)
	idx.db.Exec(`DELETE FROM edges WHERE source_path = ?`, relPath)
	idx.db.Exec(`DELETE FROM citations WHERE source_path = ?`, relPath)

	for _, h := range doc.Outline.Flatten() {
		idx.db.Exec(`
			INSERT OR REPLACE INTO headings (path, anchor, level, text, line)
			VALUES (?, ?, ?, ?, ?)
		`, relPath, h.Anchor, h.Level, h.Text, h.Line)
	}

	for _, l := range doc.Links {
		if l.Kind != domain.LinkInternal {
			continue
		}
		_, err := idx.db.Exec(`
			INSERT OR REPLACE INTO edges (source_path, target_slug, fragment, link_text, line)
			VALUES (?, ?, ?, ?, ?)
		`, relPath, l.Target, l.Fragment, l.Raw, l.Line)
		if err == nil {
			stats.EdgesAdded++
		}
	}

	for _, c := range doc.Citations {
		_, err := idx.db.Exec(`
			INSERT OR REPLACE INTO citations (source_path, url, label, line)
			VALUES (?, ?, ?, ?)
		`, relPath, c.URL, c.Label, c.Line)
		if err == nil {
			stats.CitationsAdded++
		}
	}

	return true, nil
}

// deleteFile removes a note and all its derived rows
func (idx *Index) deleteFile(relPath string) {
	idx.db.Exec(`DELETE FROM notes WHERE path = ?`, relPath)
	idx.db.Exec(`DELETE FROM headings WHERE path = ?`, relPath)
	idx.db.Exec(`DELETE FROM edges WHERE source_path = ?`, relPath)
	idx.db.Exec(`DELETE FROM citations WHERE source_path = ?`, relPath)
}

// finishSync stamps the meta rows a successful sync leaves behind
func (idx *Index) finishSync() {
	idx.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('last_sync_time', ?)`,
		time.Now().Unix())
	idx.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('built_schema_version', ?)`,
		schemaVersion)
}

// statusValue returns nil for unknown statuses (for the nullable column)
func statusValue(s domain.Status) interface{} {
	if s == domain.StatusUnknown {
		return nil
	}
	return s.String()
}
