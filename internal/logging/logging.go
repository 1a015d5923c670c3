// Package logging builds the zap loggers shared by the prober, watcher
// and long-running entry points. One-shot CLI commands print results to
// stdout; zap carries diagnostics only.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production logger. With debug set, the level drops to
// Debug and callers are annotated.
func New(debug bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		config.Development = true
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Quiet returns a logger that discards everything. Used by TUI entry
// points where log lines would corrupt the display.
func Quiet() *zap.Logger {
	return zap.NewNop()
}
