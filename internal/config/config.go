// Package config loads phonix settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all phonix configuration.
type Config struct {
	Database   DatabaseConfig   `yaml:"database"`
	Vocabulary VocabularyConfig `yaml:"vocabulary"`
	Logging    LoggingConfig    `yaml:"logging"`
	Queue      QueueConfig      `yaml:"queue"`
	Selector   SelectorConfig   `yaml:"selector"`
	Ingest     IngestConfig     `yaml:"ingest"`
	Snapshots  SnapshotsConfig  `yaml:"snapshots"`
}

// DatabaseConfig locates the SQLite database. An empty Path resolves to
// the XDG data directory.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// VocabularyConfig locates the phoneme vocabulary used on first run.
type VocabularyConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	JSON  bool   `yaml:"json"`
}

// QueueConfig sizes the practice queue.
type QueueConfig struct {
	Watermark   int `yaml:"watermark"`
	HistorySize int `yaml:"history_size"`
}

// SelectorConfig tunes phrase selection.
type SelectorConfig struct {
	TargetPhonemes         int `yaml:"target_phonemes"`
	BatchSize              int `yaml:"batch_size"`
	RandomPicksPerCategory int `yaml:"random_picks_per_category"`
}

// IngestConfig tunes evaluation ingestion.
type IngestConfig struct {
	// ScoreScale is the upstream score of a perfect pronunciation.
	ScoreScale float64 `yaml:"score_scale"`
}

// SnapshotsConfig controls snapshot retention.
type SnapshotsConfig struct {
	Keep int `yaml:"keep"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Queue: QueueConfig{
			Watermark:   2,
			HistorySize: 50,
		},
		Selector: SelectorConfig{
			TargetPhonemes:         6,
			BatchSize:              5,
			RandomPicksPerCategory: 3,
		},
		Ingest:    IngestConfig{ScoreScale: 1},
		Snapshots: SnapshotsConfig{Keep: 5},
	}
}

// Load reads configuration from a YAML file on top of the defaults, then
// applies environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("PHONIX_DB"); path != "" {
		c.Database.Path = path
	}
	if path := os.Getenv("PHONIX_VOCAB"); path != "" {
		c.Vocabulary.Path = path
	}
	if level := os.Getenv("PHONIX_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Validate checks that every size is positive and the log level is known.
func (c *Config) Validate() error {
	positive := []struct {
		name string
		v    int
	}{
		{"queue.watermark", c.Queue.Watermark},
		{"queue.history_size", c.Queue.HistorySize},
		{"selector.target_phonemes", c.Selector.TargetPhonemes},
		{"selector.batch_size", c.Selector.BatchSize},
		{"selector.random_picks_per_category", c.Selector.RandomPicksPerCategory},
		{"snapshots.keep", c.Snapshots.Keep},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("config: %s must be positive, got %d", p.name, p.v)
		}
	}
	if c.Ingest.ScoreScale <= 0 {
		return fmt.Errorf("config: ingest.score_scale must be positive, got %g", c.Ingest.ScoreScale)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown logging.level %q", c.Logging.Level)
	}
	return nil
}

// DefaultPath returns the config file location under the XDG config home.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "phonix", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "phonix", "config.yaml")
}
