package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fieldnotes/internal/adapters/filesystem"
	"fieldnotes/internal/adapters/sqlite"
	"fieldnotes/internal/lint"
)

func noteContent(title, status, body string) string {
	return "---\ntitle: " + title + "\nstatus: " + status + "\nupdated: 2026-08-01\ntags: []\n---\n\n# " + title + "\n\n" + body
}

func writeNote(t *testing.T, root, relPath, content string) {
	t.Helper()
	abs := filepath.Join(root, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0755))
	require.NoError(t, os.WriteFile(abs, []byte(content), 0644))
}

func setupWatcher(t *testing.T) (*Watcher, string) {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	root := t.TempDir()
	writeNote(t, root, "apps/alfred.md", noteContent("Alfred", "current",
		"Launcher notes.\n\n## Sources\n\n- [Alfred](https://www.alfredapp.com)\n"))

	repo := filesystem.NewRepository(root)
	index := sqlite.NewIndex()
	require.NoError(t, index.Open(root))
	t.Cleanup(func() { index.Close() })
	_, err := index.SyncFull()
	require.NoError(t, err)

	w, err := NewWatcher(repo, index, lint.New(), zap.NewNop())
	require.NoError(t, err)
	// Short debounce so tests settle quickly
	w.debounceDur = 50 * time.Millisecond
	return w, root
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return cond()
}

func eventFor(path string) fsnotify.Event {
	return fsnotify.Event{Name: path, Op: fsnotify.Write}
}

func TestWatcher_StartStop(t *testing.T) {
	w, _ := setupWatcher(t)

	assert.False(t, w.IsWatching())
	require.NoError(t, w.Start(context.Background()))
	assert.True(t, w.IsWatching())

	w.Stop()
	assert.False(t, w.IsWatching())
}

func TestWatcher_SyncsOnNoteWrite(t *testing.T) {
	w, root := setupWatcher(t)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	writeNote(t, root, "apps/cursor.md", noteContent("Cursor", "needs-review",
		"Editor notes. See [[alfred]].\n\n## Sources\n\n- [Cursor](https://docs.cursor.com)\n"))

	synced := waitFor(t, 3*time.Second, func() bool {
		return w.GetStats().Syncs > 0
	})
	require.True(t, synced, "expected an incremental sync after note write")

	note, err := w.index.NoteBySlug("cursor")
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, "Cursor", note.Title)
}

func TestWatcher_LintsChangedNote(t *testing.T) {
	w, root := setupWatcher(t)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	// No Sources section and a title that disagrees with the frontmatter
	writeNote(t, root, "apps/bear.md", noteContent("Bear", "current", "Tagging notes.\n"))

	linted := waitFor(t, 3*time.Second, func() bool {
		return w.GetStats().NotesLinted > 0
	})
	require.True(t, linted, "expected the changed note to be linted")
	assert.Greater(t, w.GetStats().Findings, 0)
}

func TestWatcher_IgnoresNonMarkdown(t *testing.T) {
	w, _ := setupWatcher(t)

	w.handleEvent(eventFor("apps/scratch.txt"))
	assert.Equal(t, 0, w.GetStats().Events)

	w.handleEvent(eventFor("apps/alfred.md"))
	assert.Equal(t, 1, w.GetStats().Events)
}

func TestWatcher_SkipsInboxClippings(t *testing.T) {
	w, root := setupWatcher(t)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	writeNote(t, root, "inbox/raycast-clip.md", "Raycast quicklinks.\n")

	synced := waitFor(t, 3*time.Second, func() bool {
		return w.GetStats().Syncs > 0
	})
	require.True(t, synced)
	assert.Equal(t, 0, w.GetStats().NotesLinted)
}

func TestWatcher_WatchesNewSection(t *testing.T) {
	w, root := setupWatcher(t)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.Mkdir(filepath.Join(root, "people"), 0755))
	// Give fsnotify a moment to register the new directory
	time.Sleep(200 * time.Millisecond)

	writeNote(t, root, "people/jakob-nielsen.md", noteContent("Jakob Nielsen", "current",
		"Heuristics.\n\n## Sources\n\n- [NNG](https://www.nngroup.com)\n"))

	synced := waitFor(t, 3*time.Second, func() bool {
		note, err := w.index.NoteBySlug("jakob-nielsen")
		return err == nil && note != nil
	})
	assert.True(t, synced, "note in a new section should be indexed")
}
