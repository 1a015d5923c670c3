// Package watch keeps the index and lint findings fresh while someone is
// editing notes: it watches the corpus, debounces rapid saves, re-syncs
// the index and re-lints the notes that settled.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"fieldnotes/internal/domain"
	"fieldnotes/internal/lint"
	"fieldnotes/internal/markdown"
	"fieldnotes/internal/ports"
)

// Watcher watches the corpus for note changes
type Watcher struct {
	mu          sync.RWMutex
	watcher     *fsnotify.Watcher
	repo        ports.CorpusRepository
	index       ports.CorpusIndex
	linter      *lint.Linter
	logger      *zap.Logger
	debounceMap map[string]time.Time
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool

	stats Stats
}

// Stats tracks watcher activity
type Stats struct {
	Events        int
	Syncs         int
	NotesLinted   int
	Findings      int
	Errors        int
	LastEventPath string
	LastEventTime time.Time
}

// NewWatcher creates a watcher over the repository's corpus
func NewWatcher(repo ports.CorpusRepository, index ports.CorpusIndex, linter *lint.Linter, logger *zap.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:     w,
		repo:        repo,
		index:       index,
		linter:      linter,
		logger:      logger,
		debounceMap: make(map[string]time.Time),
		debounceDur: 500 * time.Millisecond, // Debounce rapid saves
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; the event loop runs in a goroutine.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil // Already running
	}
	w.running = true
	w.mu.Unlock()

	// fsnotify watches are not recursive: watch the root plus each
	// section directory. New sections get added as they appear.
	root := w.repo.Root()
	if err := w.watcher.Add(root); err != nil {
		return err
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			if err := w.watcher.Add(filepath.Join(root, entry.Name())); err != nil {
				w.logger.Warn("failed to watch section", zap.String("dir", entry.Name()), zap.Error(err))
			}
		}
	}
	w.logger.Info("watching corpus", zap.String("root", root))

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to drain
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.logger.Error("failed to close watcher", zap.Error(err))
	}
	w.logger.Info("watcher stopped")
}

// IsWatching reports whether the event loop is running
func (w *Watcher) IsWatching() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// GetStats returns a snapshot of watcher activity
func (w *Watcher) GetStats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	debounceTicker := time.NewTicker(100 * time.Millisecond)
	defer debounceTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", zap.Error(err))
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-debounceTicker.C:
			w.processSettled(ctx)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// A new directory is a new section: watch it
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err == nil {
				w.logger.Debug("watching new section", zap.String("dir", event.Name))
			}
			return
		}
	}

	if !strings.HasSuffix(event.Name, ".md") {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return // Ignore chmod
	}

	w.logger.Debug("note changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))

	w.mu.Lock()
	w.stats.Events++
	w.stats.LastEventPath = event.Name
	w.stats.LastEventTime = time.Now()
	w.debounceMap[event.Name] = time.Now()
	w.mu.Unlock()
}

// processSettled handles events that are past the debounce window: one
// incremental sync for the batch, then a lint pass per surviving note.
func (w *Watcher) processSettled(ctx context.Context) {
	w.mu.Lock()
	now := time.Now()
	var settled []string
	for path, eventTime := range w.debounceMap {
		if now.Sub(eventTime) >= w.debounceDur {
			settled = append(settled, path)
			delete(w.debounceMap, path)
		}
	}
	w.mu.Unlock()

	if len(settled) == 0 {
		return
	}

	stats, err := w.index.SyncIncremental()
	if err != nil {
		w.logger.Error("incremental sync failed", zap.Error(err))
		w.mu.Lock()
		w.stats.Errors++
		w.mu.Unlock()
	} else {
		w.logger.Debug("index synced",
			zap.Int("added", stats.NotesAdded),
			zap.Int("updated", stats.NotesUpdated),
			zap.Int("deleted", stats.NotesDeleted))
		w.mu.Lock()
		w.stats.Syncs++
		w.mu.Unlock()
	}

	for _, path := range settled {
		if ctx.Err() != nil {
			return
		}
		w.lintNote(path)
	}
}

// lintNote re-lints one changed note and logs its findings
func (w *Watcher) lintNote(path string) {
	slug := domain.SlugFromFilename(path)

	// Clippings are exempt from note lint
	if filepath.Base(filepath.Dir(path)) == "inbox" {
		return
	}

	note, err := w.repo.Get(slug)
	if err != nil {
		return // Deleted or renamed away; sync already handled it
	}
	body, err := w.repo.ReadBody(slug)
	if err != nil {
		return
	}

	findings := w.linter.Run(markdown.Parse(body), *note)

	w.mu.Lock()
	w.stats.NotesLinted++
	w.stats.Findings += len(findings)
	w.mu.Unlock()

	if len(findings) == 0 {
		w.logger.Info("note clean", zap.String("note", note.Path))
		return
	}
	for _, f := range findings {
		w.logger.Warn("lint finding",
			zap.String("note", f.Path),
			zap.Int("line", f.Line),
			zap.String("rule", f.Rule),
			zap.String("severity", f.Severity.String()),
			zap.String("message", f.Message))
	}
}
