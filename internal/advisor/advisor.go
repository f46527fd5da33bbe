// Package advisor wraps the external AI collaborator behind a small
// interface. The engine only ever consumes opaque text from it, and every
// feature path degrades to a canned fallback when the collaborator is
// missing, slow, or broken. Nothing here is allowed to be fatal.
package advisor

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultProbeTimeout bounds availability/status probes.
	DefaultProbeTimeout = 3 * time.Second

	// DefaultGenerateTimeout bounds content generation.
	DefaultGenerateTimeout = 30 * time.Second
)

// Feature-specific fallbacks, used whenever the collaborator degrades.
const (
	FallbackRemediation = "Rotate the leaked credential immediately, purge it from git history " +
		"(git filter-repo or BFG), and move secrets into environment variables or a secret manager."

	FallbackComplexity = "No automated complexity analysis available. Review the largest files " +
		"by hand for nested loops and quadratic access patterns."

	FallbackWellness = "You have been heads-down for a while. Stand up, stretch, and drink " +
		"some water before the next commit."

	FallbackStory = "Another quiet chapter: files changed, tests ran, and the workspace kept " +
		"its secrets to itself."
)

// Advisor produces free-form advisory text for a prompt. Implementations
// must respect ctx cancellation and return an error rather than block.
type Advisor interface {
	Advise(ctx context.Context, prompt string) (string, error)
}

// Static is the fixed-fallback advisor: it always answers with the same
// text. It keeps ComplexityGrader and the display layer deterministic in
// tests and when advisory features are disabled.
type Static struct {
	Text string
}

// Advise implements Advisor.
func (s Static) Advise(_ context.Context, _ string) (string, error) {
	return s.Text, nil
}

// Config selects and tunes the advisor.
type Config struct {
	Enabled bool
	Model   string
	APIKey  string
}

// New picks the best available collaborator: the API client when a key is
// configured (or present in the environment), otherwise the CLI probes.
// Returns nil when advisory features are disabled; callers treat nil as
// "always use the fallback".
func New(cfg Config, logger zerolog.Logger) Advisor {
	if !cfg.Enabled {
		return nil
	}

	key := cfg.APIKey
	if key == "" {
		key = os.Getenv("ANTHROPIC_API_KEY")
	}
	if key != "" {
		c, err := NewClient(key, cfg.Model)
		if err == nil {
			return c
		}
		logger.Debug().Err(err).Msg("API advisor unavailable, falling back to CLI probes")
	}

	return NewCLIAdvisor(logger)
}

// AdviseOrFallback asks the advisor with a bounded timeout and returns
// the fallback on any failure: nil advisor, timeout, error, or empty
// output. The second return reports whether the text came from the
// collaborator.
func AdviseOrFallback(ctx context.Context, a Advisor, prompt, fallback string, timeout time.Duration) (string, bool) {
	if a == nil {
		return fallback, false
	}

	adviseCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := a.Advise(adviseCtx, prompt)
	text = strings.TrimSpace(text)
	if err != nil || text == "" {
		return fallback, false
	}
	return text, true
}

// AdviseWithShortRetry is AdviseOrFallback plus exactly one bounded retry
// with a shorter prompt. The complexity-analysis path uses it: a long
// prompt that times out gets one more chance as a condensed question, and
// nothing more.
func AdviseWithShortRetry(ctx context.Context, a Advisor, prompt, shortPrompt, fallback string, timeout time.Duration) (string, bool) {
	if a == nil {
		return fallback, false
	}

	if text, ok := AdviseOrFallback(ctx, a, prompt, "", timeout); ok {
		return text, true
	}
	return AdviseOrFallback(ctx, a, shortPrompt, fallback, timeout)
}
