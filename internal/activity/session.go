package activity

import (
	"context"
	"os"
	"os/exec"
	"os/user"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultProbeTimeout bounds each session-listing probe.
const DefaultProbeTimeout = 3 * time.Second

// Probe is one candidate session-listing command. Probes run in order
// and the first one that yields a parseable idle value wins.
type Probe struct {
	Name string
	Args []string

	// IdleField is the position of the idle column in a session line.
	IdleField int
}

// DefaultProbes returns the ordered candidate commands for reading
// terminal session idle time.
func DefaultProbes() []Probe {
	return []Probe{
		// w -h: USER TTY FROM LOGIN@ IDLE JCPU PCPU WHAT
		{Name: "w", Args: []string{"-h"}, IdleField: 4},
		// who -u: USER TTY DATE TIME IDLE PID (COMMENT)
		{Name: "who", Args: []string{"-u"}, IdleField: 4},
	}
}

// runFunc executes a probe command; swappable for tests.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// SessionProber reads terminal idle time from session-listing utilities.
type SessionProber struct {
	Probes  []Probe
	Timeout time.Duration

	// User filters session lines; defaults to the current user.
	User string

	run    runFunc
	logger zerolog.Logger
}

// NewSessionProber creates a prober with the default probe list.
func NewSessionProber(logger zerolog.Logger) *SessionProber {
	return &SessionProber{
		Probes:  DefaultProbes(),
		Timeout: DefaultProbeTimeout,
		User:    currentUsername(),
		run:     runCommand,
		logger:  logger,
	}
}

// IdleMinutes returns the current terminal idle time in minutes, or nil
// when no probe produced a usable value. A missing utility, timeout,
// non-zero exit, or unparsable output all degrade to nil, never to an
// error: unknown idle must not trip the idle decision.
func (p *SessionProber) IdleMinutes(ctx context.Context) *float64 {
	for _, probe := range p.Probes {
		probeCtx, cancel := context.WithTimeout(ctx, p.Timeout)
		out, err := p.run(probeCtx, probe.Name, probe.Args...)
		cancel()
		if err != nil {
			p.logger.Debug().Str("probe", probe.Name).Err(err).Msg("session probe failed")
			continue
		}

		if idle, ok := p.extract(probe, string(out)); ok {
			return &idle
		}
	}
	return nil
}

// extract scans probe output for lines belonging to the current user and
// returns the smallest parseable idle value: with several sessions open,
// the most recently active one describes the developer.
func (p *SessionProber) extract(probe Probe, output string) (float64, bool) {
	best := 0.0
	found := false

	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) <= probe.IdleField {
			continue
		}
		if p.User != "" && fields[0] != p.User {
			continue
		}

		idle, ok := ParseIdleField(fields[probe.IdleField])
		if !ok {
			continue
		}
		if !found || idle < best {
			best = idle
			found = true
		}
	}

	return best, found
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, err
	}
	return exec.CommandContext(ctx, path, args...).Output()
}

func currentUsername() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
