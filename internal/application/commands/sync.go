package commands

import (
	"context"

	"fieldnotes/internal/domain"
	"fieldnotes/internal/ports"
)

// SyncCommand rebuilds the corpus index
type SyncCommand struct {
	index ports.CorpusIndex
	Full  bool
}

// NewSyncCommand creates a new SyncCommand
func NewSyncCommand(index ports.CorpusIndex, full bool) *SyncCommand {
	return &SyncCommand{index: index, Full: full}
}

// Execute runs the sync. A full rebuild is forced when the index schema or
// corpus path changed since the last run.
func (c *SyncCommand) Execute(ctx context.Context) (*domain.SyncStats, error) {
	if c.Full || c.index.NeedsFullRebuild() {
		return c.index.SyncFull()
	}
	return c.index.SyncIncremental()
}

// StatsCommand reports corpus statistics from the index
type StatsCommand struct {
	index ports.CorpusIndex
}

// NewStatsCommand creates a new StatsCommand
func NewStatsCommand(index ports.CorpusIndex) *StatsCommand {
	return &StatsCommand{index: index}
}

// Execute runs the stats command
func (c *StatsCommand) Execute(ctx context.Context) (*domain.CorpusStats, error) {
	return c.index.Stats()
}
