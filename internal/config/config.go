// Package config loads fieldnotes settings from .fieldnotes.yaml, with
// environment overrides for scripting.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultCorpusPath is used when no config file or env override is set.
	DefaultCorpusPath = "./notes"

	configName = ".fieldnotes"
	envCorpus  = "FIELDNOTES_CORPUS"
)

// Config holds all tunable settings
type Config struct {
	Corpus           string            `mapstructure:"corpus"`
	ProbeTimeout     time.Duration     `mapstructure:"probe_timeout"`
	ProbeConcurrency int               `mapstructure:"probe_concurrency"`
	RecheckTTL       time.Duration     `mapstructure:"recheck_ttl"`
	Severity         map[string]string `mapstructure:"severity"` // rule -> error|warning
}

// Load reads .fieldnotes.yaml from the working directory or $HOME.
// A missing config file is not an error; defaults apply.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}

	v.SetDefault("corpus", DefaultCorpusPath)
	v.SetDefault("probe_timeout", 10*time.Second)
	v.SetDefault("probe_concurrency", 8)
	v.SetDefault("recheck_ttl", 24*time.Hour)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if env := os.Getenv(envCorpus); env != "" {
		cfg.Corpus = env
	}
	return &cfg, nil
}

// CorpusPath returns the corpus location without loading the full config.
// Used by entry points that only need the path.
func CorpusPath() string {
	if env := os.Getenv(envCorpus); env != "" {
		return env
	}
	cfg, err := Load()
	if err != nil {
		return DefaultCorpusPath
	}
	return cfg.Corpus
}
