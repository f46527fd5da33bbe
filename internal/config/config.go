// Package config loads runtime configuration from .aura/config.yaml.
// A missing file means defaults; CLI flags override file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aura-cli/aura/internal/activity"
	"github.com/aura-cli/aura/internal/bloat"
	"github.com/aura-cli/aura/internal/carbon"
	"github.com/aura-cli/aura/internal/journal"
)

// Config is the file representation of runtime parameters.
type Config struct {
	// Activity analysis.
	WindowHours          int     `yaml:"window_hours"`
	IdleThresholdMinutes float64 `yaml:"idle_threshold_minutes"`

	// Bloat ranking.
	BloatTopN      int     `yaml:"bloat_top_n"`
	BloatMaxSizeMB float64 `yaml:"bloat_max_size_mb"`

	// Extra directory names to exclude from every walk, on top of the
	// built-in set.
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// Journal locations, relative to the workspace root unless absolute.
	CarbonJournal string `yaml:"carbon_journal"`
	StoryJournal  string `yaml:"story_journal"`

	Advisor AdvisorConfig `yaml:"advisor"`
}

// AdvisorConfig tunes the external AI collaborator.
type AdvisorConfig struct {
	Enabled bool   `yaml:"enabled"`
	Model   string `yaml:"model"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		WindowHours:          activity.DefaultWindowHours,
		IdleThresholdMinutes: activity.DefaultIdleThresholdMinutes,
		BloatTopN:            bloat.DefaultTopN,
		BloatMaxSizeMB:       bloat.DefaultMaxSizeMB,
		CarbonJournal:        carbon.DefaultJournalPath,
		StoryJournal:         journal.DefaultStoryPath,
		Advisor:              AdvisorConfig{Enabled: true},
	}
}

// Load reads .aura/config.yaml under root. A missing file returns the
// defaults; file values overlay the defaults, so a partial file is fine.
func Load(root string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(root, ".aura", "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// JournalPath resolves a configured journal path against the root.
func (c *Config) JournalPath(root, configured string) string {
	if filepath.IsAbs(configured) {
		return configured
	}
	return filepath.Join(root, configured)
}
