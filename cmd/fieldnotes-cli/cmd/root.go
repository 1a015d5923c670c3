package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fieldnotes/internal/adapters/filesystem"
	"fieldnotes/internal/adapters/sqlite"
	"fieldnotes/internal/config"
	"fieldnotes/internal/domain"
	"fieldnotes/internal/lint"
	"fieldnotes/internal/logging"
	"fieldnotes/internal/ports"
)

var (
	corpusPath string
	debug      bool

	cfg    *config.Config
	repo   ports.CorpusRepository
	index  *sqlite.Index
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "fieldnotes-cli",
	Short: "CLI for a Markdown corpus of UX research notes",
	Long: `fieldnotes-cli manages a Markdown corpus of UX research notes on
macOS applications: one note per product, synthesis notes for patterns,
an inbox for unfiled clippings.

It provides commands to browse, lint, cross-reference and check the
corpus, plus write operations that keep wikilinks intact.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if corpusPath != "" {
			cfg.Corpus = corpusPath
		}

		logger, err = logging.New(debug)
		if err != nil {
			return err
		}

		repo = filesystem.NewRepository(cfg.Corpus)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if index != nil {
			index.Close()
		}
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&corpusPath, "corpus", "c", "", "path to the corpus (default from .fieldnotes.yaml or $FIELDNOTES_CORPUS)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// GetRepo returns the initialized repository
func GetRepo() ports.CorpusRepository {
	return repo
}

// GetIndex opens the SQLite index and brings it up to date. A schema or
// corpus-path change forces a full rebuild; otherwise mtimes drive an
// incremental sync.
func GetIndex() (*sqlite.Index, error) {
	if index != nil {
		return index, nil
	}

	idx := sqlite.NewIndex()
	if err := idx.Open(cfg.Corpus); err != nil {
		return nil, err
	}
	if idx.NeedsFullRebuild() {
		if _, err := idx.SyncFull(); err != nil {
			idx.Close()
			return nil, err
		}
	} else {
		if _, err := idx.SyncIncremental(); err != nil {
			idx.Close()
			return nil, err
		}
	}
	index = idx
	return index, nil
}

// NewLinter builds a linter with configured severity overrides. When an
// index is available it resolves cross-references too.
func NewLinter(withResolver bool) (*lint.Linter, error) {
	opts := []lint.Option{}

	if len(cfg.Severity) > 0 {
		overrides := make(map[string]domain.Severity, len(cfg.Severity))
		for rule, level := range cfg.Severity {
			overrides[rule] = domain.ParseSeverity(level)
		}
		opts = append(opts, lint.WithSeverityOverrides(overrides))
	}

	if withResolver {
		idx, err := GetIndex()
		if err != nil {
			return nil, err
		}
		opts = append(opts, lint.WithResolver(idx))
	}

	return lint.New(opts...), nil
}
