package advisor

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// CLIProbe is one candidate advisory command. The prompt is appended as
// the final argument.
type CLIProbe struct {
	Bin  string
	Args []string
}

// DefaultCLIProbes returns the ordered candidate commands. Probes run in
// order and the first one that exits zero with non-empty output wins.
func DefaultCLIProbes() []CLIProbe {
	return []CLIProbe{
		{Bin: "copilot", Args: []string{"explain"}},
		{Bin: "copilot", Args: []string{"-p"}},
		{Bin: "claude", Args: []string{"-p"}},
	}
}

// CLIAdvisor asks an AI assistant CLI on the local machine. Each probe is
// bounded by the caller's context; a missing binary, non-zero exit, or
// empty output moves on to the next probe.
type CLIAdvisor struct {
	Probes []CLIProbe

	lookPath func(string) (string, error)
	run      func(ctx context.Context, path string, args ...string) ([]byte, error)
	logger   zerolog.Logger
}

// NewCLIAdvisor creates a CLI advisor with the default probe list.
func NewCLIAdvisor(logger zerolog.Logger) *CLIAdvisor {
	return &CLIAdvisor{
		Probes:   DefaultCLIProbes(),
		lookPath: exec.LookPath,
		run: func(ctx context.Context, path string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, path, args...).Output()
		},
		logger: logger,
	}
}

// Advise implements Advisor by trying each probe until one produces
// usable text.
func (c *CLIAdvisor) Advise(ctx context.Context, prompt string) (string, error) {
	var errs []error

	for _, probe := range c.Probes {
		path, err := c.lookPath(probe.Bin)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: not installed", probe.Bin))
			continue
		}

		args := append(append([]string{}, probe.Args...), prompt)
		out, err := c.run(ctx, path, args...)
		if err != nil {
			c.logger.Debug().Str("probe", probe.Bin).Err(err).Msg("advisory probe failed")
			errs = append(errs, fmt.Errorf("%s %s: %w", probe.Bin, strings.Join(probe.Args, " "), err))
			continue
		}

		if text := strings.TrimSpace(string(out)); text != "" {
			return text, nil
		}
		errs = append(errs, fmt.Errorf("%s: empty output", probe.Bin))
	}

	return "", fmt.Errorf("no advisory CLI produced output: %w", errors.Join(errs...))
}
