package commands

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"fieldnotes/internal/domain"
	"fieldnotes/internal/ports"
)

// URLResult is the per-URL outcome of a link check
type URLResult struct {
	Record domain.ProbeRecord
	Notes  []string // Corpus-relative paths of notes citing the URL
	Cached bool     // True when the result came from the probe cache
}

// CheckLinksResult summarizes one link-check pass
type CheckLinksResult struct {
	Run     domain.CheckRun
	Results []URLResult
}

// CheckLinksCommand probes all cited URLs, re-using cached results that
// are younger than the recheck TTL
type CheckLinksCommand struct {
	index  ports.CorpusIndex
	prober ports.LinkProber
	TTL    time.Duration
	Force  bool // Probe everything, ignoring the cache
}

// NewCheckLinksCommand creates a new CheckLinksCommand
func NewCheckLinksCommand(index ports.CorpusIndex, prober ports.LinkProber, ttl time.Duration, force bool) *CheckLinksCommand {
	return &CheckLinksCommand{index: index, prober: prober, TTL: ttl, Force: force}
}

// Execute runs the link check
func (c *CheckLinksCommand) Execute(ctx context.Context) (*CheckLinksResult, error) {
	started := time.Now()

	citations, err := c.index.AllCitations()
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(citations))
	for url := range citations {
		urls = append(urls, url)
	}
	sort.Strings(urls)

	toProbe := urls
	if !c.Force {
		toProbe, err = c.index.StaleProbes(urls, c.TTL)
		if err != nil {
			return nil, err
		}
	}

	fresh := make(map[string]domain.ProbeRecord, len(toProbe))
	for _, rec := range c.prober.ProbeAll(ctx, toProbe) {
		if err := c.index.RecordProbe(rec); err != nil {
			return nil, err
		}
		fresh[rec.URL] = rec
	}

	result := &CheckLinksResult{}
	for _, url := range urls {
		ur := URLResult{}
		if rec, ok := fresh[url]; ok {
			ur.Record = rec
		} else {
			cached, err := c.index.ProbeFor(url)
			if err != nil || cached == nil {
				continue
			}
			ur.Record = *cached
			ur.Cached = true
		}
		ur.Notes = citations[url]
		result.Results = append(result.Results, ur)
		if !ur.Record.OK {
			result.Run.Broken++
		}
	}

	result.Run.ID = uuid.NewString()
	result.Run.StartedAt = started
	result.Run.FinishedAt = time.Now()
	result.Run.URLs = len(result.Results)

	if err := c.index.RecordCheckRun(result.Run); err != nil {
		return nil, err
	}
	return result, nil
}
