package sqlite

import (
	"database/sql"

	"fieldnotes/internal/domain"
	"fieldnotes/internal/ports"
)

// indexTx implements ports.IndexTx
type indexTx struct {
	tx *sql.Tx
}

// Ensure indexTx implements IndexTx
var _ ports.IndexTx = (*indexTx)(nil)

// UpsertNote inserts or updates a note row
func (t *indexTx) UpsertNote(note *domain.IndexNote) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO notes (path, slug, title, app, status, updated, words, mtime)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, note.Path, note.Slug, note.Title, note.App, statusValue(note.Status),
		note.Updated, note.Words, note.Mtime)
	return err
}

// DeleteNote removes a note row and its derived rows by path
func (t *indexTx) DeleteNote(path string) error {
	for _, q := range []string{
		`DELETE FROM notes WHERE path = ?`,
		`DELETE FROM headings WHERE path = ?`,
		`DELETE FROM edges WHERE source_path = ?`,
		`DELETE FROM citations WHERE source_path = ?`,
	} {
		if _, err := t.tx.Exec(q, path); err != nil {
			return err
		}
	}
	return nil
}

// RenameNote updates a note's path
func (t *indexTx) RenameNote(oldPath, newPath string) error {
	for _, q := range []string{
		`UPDATE notes SET path = ? WHERE path = ?`,
		`UPDATE headings SET path = ? WHERE path = ?`,
		`UPDATE edges SET source_path = ? WHERE source_path = ?`,
		`UPDATE citations SET source_path = ? WHERE source_path = ?`,
	} {
		if _, err := t.tx.Exec(q, newPath, oldPath); err != nil {
			return err
		}
	}
	return nil
}

// DeleteEdgesFrom removes all edges from a source note
func (t *indexTx) DeleteEdgesFrom(sourcePath string) error {
	_, err := t.tx.Exec(`DELETE FROM edges WHERE source_path = ?`, sourcePath)
	return err
}

// InsertEdge adds a new edge
func (t *indexTx) InsertEdge(edge *domain.Edge) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO edges (source_path, target_slug, fragment, link_text, line)
		VALUES (?, ?, ?, ?, ?)
	`, edge.SourcePath, edge.TargetSlug, edge.Fragment, edge.LinkText, edge.Line)
	return err
}

// UpdateEdgeTarget repoints all edges at oldSlug after a rename
func (t *indexTx) UpdateEdgeTarget(oldSlug, newSlug string) error {
	_, err := t.tx.Exec(`
		UPDATE edges SET target_slug = ? WHERE target_slug = ?
	`, newSlug, oldSlug)
	return err
}

// Commit commits the transaction
func (t *indexTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *indexTx) Rollback() error {
	return t.tx.Rollback()
}
