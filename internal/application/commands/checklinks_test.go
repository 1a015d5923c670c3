package commands

import (
	"context"
	"testing"
	"time"

	"fieldnotes/internal/domain"
	"fieldnotes/internal/ports"
)

// fakeIndex implements ports.CorpusIndex with in-memory maps. Only the
// methods the link-check path touches do real work.
type fakeIndex struct {
	citations map[string][]string
	probes    map[string]domain.ProbeRecord
	stale     []string
	runs      []domain.CheckRun
}

var _ ports.CorpusIndex = (*fakeIndex)(nil)

func (f *fakeIndex) Open(string) error  { return nil }
func (f *fakeIndex) Close() error       { return nil }
func (f *fakeIndex) NeedsFullRebuild() bool { return false }

func (f *fakeIndex) SyncIncremental() (*domain.SyncStats, error) { return &domain.SyncStats{}, nil }
func (f *fakeIndex) SyncFull() (*domain.SyncStats, error)        { return &domain.SyncStats{}, nil }

func (f *fakeIndex) NoteBySlug(string) (*domain.IndexNote, error)    { return nil, nil }
func (f *fakeIndex) HeadingExists(string, string) (bool, error)      { return false, nil }
func (f *fakeIndex) Outline(string) ([]domain.IndexHeading, error)   { return nil, nil }
func (f *fakeIndex) Backlinks(string) ([]domain.Edge, error)         { return nil, nil }
func (f *fakeIndex) EdgesFrom(string) ([]domain.Edge, error)         { return nil, nil }
func (f *fakeIndex) AllEdges() ([]domain.Edge, error)                { return nil, nil }

func (f *fakeIndex) AllCitations() (map[string][]string, error) { return f.citations, nil }

func (f *fakeIndex) StaleProbes(urls []string, ttl time.Duration) ([]string, error) {
	return f.stale, nil
}

func (f *fakeIndex) RecordProbe(rec domain.ProbeRecord) error {
	if f.probes == nil {
		f.probes = make(map[string]domain.ProbeRecord)
	}
	f.probes[rec.URL] = rec
	return nil
}

func (f *fakeIndex) ProbeFor(url string) (*domain.ProbeRecord, error) {
	if rec, ok := f.probes[url]; ok {
		return &rec, nil
	}
	return nil, nil
}

func (f *fakeIndex) RecordCheckRun(run domain.CheckRun) error {
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeIndex) Stats() (*domain.CorpusStats, error) { return &domain.CorpusStats{}, nil }
func (f *fakeIndex) BeginTx() (ports.IndexTx, error)     { return nil, nil }

// fakeProber marks URLs containing "dead" as broken
type fakeProber struct {
	probed []string
}

var _ ports.LinkProber = (*fakeProber)(nil)

func (f *fakeProber) Probe(ctx context.Context, url string) domain.ProbeRecord {
	f.probed = append(f.probed, url)
	rec := domain.ProbeRecord{URL: url, StatusCode: 200, OK: true, CheckedAt: time.Now()}
	if contains(url, "dead") {
		rec.StatusCode = 404
		rec.OK = false
	}
	return rec
}

func (f *fakeProber) ProbeAll(ctx context.Context, urls []string) []domain.ProbeRecord {
	records := make([]domain.ProbeRecord, 0, len(urls))
	for _, u := range urls {
		records = append(records, f.Probe(ctx, u))
	}
	return records
}

func TestCheckLinksCommand_Execute(t *testing.T) {
	index := &fakeIndex{
		citations: map[string][]string{
			"https://example.com/docs":  {"apps/alfred.md"},
			"https://example.com/dead":  {"apps/alfred.md", "apps/cursor.md"},
			"https://example.com/fresh": {"apps/cursor.md"},
		},
		stale: []string{"https://example.com/docs", "https://example.com/dead"},
		probes: map[string]domain.ProbeRecord{
			"https://example.com/fresh": {
				URL: "https://example.com/fresh", StatusCode: 200, OK: true,
				CheckedAt: time.Now().Add(-time.Hour),
			},
		},
	}
	prober := &fakeProber{}

	cmd := NewCheckLinksCommand(index, prober, 24*time.Hour, false)
	result, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(prober.probed) != 2 {
		t.Errorf("expected 2 probes (fresh one cached), got %d: %v", len(prober.probed), prober.probed)
	}
	if len(result.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(result.Results))
	}
	if result.Run.URLs != 3 {
		t.Errorf("expected run to cover 3 URLs, got %d", result.Run.URLs)
	}
	if result.Run.Broken != 1 {
		t.Errorf("expected 1 broken URL, got %d", result.Run.Broken)
	}
	if result.Run.ID == "" {
		t.Error("expected run ID to be set")
	}
	if len(index.runs) != 1 {
		t.Errorf("expected check run to be recorded, got %d", len(index.runs))
	}

	for _, r := range result.Results {
		switch r.Record.URL {
		case "https://example.com/fresh":
			if !r.Cached {
				t.Error("expected fresh URL to come from cache")
			}
		case "https://example.com/dead":
			if r.Record.OK {
				t.Error("expected dead URL to be broken")
			}
			if len(r.Notes) != 2 {
				t.Errorf("expected 2 citing notes, got %d", len(r.Notes))
			}
		default:
			if r.Cached {
				t.Errorf("expected %s to be freshly probed", r.Record.URL)
			}
		}
	}
}

func TestCheckLinksCommand_Force(t *testing.T) {
	index := &fakeIndex{
		citations: map[string][]string{
			"https://example.com/a": {"apps/alfred.md"},
			"https://example.com/b": {"apps/cursor.md"},
		},
		stale: nil, // everything looks fresh, force must override
	}
	prober := &fakeProber{}

	cmd := NewCheckLinksCommand(index, prober, 24*time.Hour, true)
	if _, err := cmd.Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(prober.probed) != 2 {
		t.Errorf("expected force to probe all 2 URLs, got %d", len(prober.probed))
	}
}
