package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aura-cli/aura/internal/advisor"
	"github.com/aura-cli/aura/internal/config"
)

var (
	rootPath string
	noAI     bool
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "aura",
	Short: "Workspace audits and developer telemetry",
	Long: `Aura audits a software workspace and reports on it.

It produces four kinds of signal:
- Leaked credentials and unsafe .env permissions (aura check)
- Filesystem bloat ranked by size (aura fly)
- A carbon grade combining bloat with complexity commentary (aura eco)
- Developer activity and idle telemetry (aura pulse)

An AI assistant, when available, supplies remediation advice, complexity
commentary, and prose for the story journal. Every AI feature degrades to
a canned fallback when the assistant is missing or slow.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootPath, "root", ".", "Workspace root to audit")
	rootCmd.PersistentFlags().BoolVar(&noAI, "no-ai", false, "Disable the AI advisory collaborator")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// newLogger builds the diagnostic logger. User-facing output goes through
// the display helpers; this logger only carries warnings and, with
// --verbose, per-file debug noise.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// setup loads configuration and wires the advisor. Exits on a broken
// config file: that is user error, not a degradable condition.
func setup() (*config.Config, zerolog.Logger, advisor.Advisor) {
	logger := newLogger()

	cfg, err := config.Load(rootPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	adv := advisor.New(advisor.Config{
		Enabled: cfg.Advisor.Enabled && !noAI,
		Model:   cfg.Advisor.Model,
	}, logger)

	return cfg, logger, adv
}
