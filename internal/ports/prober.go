package ports

import (
	"context"

	"fieldnotes/internal/domain"
)

// LinkProber checks whether cited URLs are reachable
type LinkProber interface {
	// Probe checks a single URL. Network failures are reported inside the
	// record, not as an error.
	Probe(ctx context.Context, url string) domain.ProbeRecord

	// ProbeAll checks many URLs with bounded concurrency.
	ProbeAll(ctx context.Context, urls []string) []domain.ProbeRecord
}
