package activity

import (
	"time"

	"github.com/aura-cli/aura/internal/workspace"
)

const (
	// DefaultWindowHours is the histogram window.
	DefaultWindowHours = 6

	// DefaultBuckets is the fixed histogram bucket count.
	DefaultBuckets = 6

	// DefaultIdleThresholdMinutes is the edit/terminal idle cutoff.
	DefaultIdleThresholdMinutes = 15.0

	// focusDecayMinutes is how long the focus score takes to decay to zero.
	focusDecayMinutes = 120.0
)

// State classifies how recently the developer touched the workspace.
type State string

const (
	StateFlow   State = "FLOW"   // edited under 5 minutes ago
	StateSteady State = "STEADY" // 5 to 30 minutes
	StateRest   State = "REST"   // over 30 minutes
)

// Options tunes an activity analysis. Zero values fall back to defaults.
type Options struct {
	WindowHours          int
	Buckets              int
	IdleThresholdMinutes float64

	// TerminalIdleMinutes is the parsed session idle time, when a
	// session probe produced one. nil means unknown; unknown never
	// contributes to the idle decision.
	TerminalIdleMinutes *float64

	// ForceIdle overrides the idle decision to true.
	ForceIdle bool
}

func (o Options) withDefaults() Options {
	if o.WindowHours <= 0 {
		o.WindowHours = DefaultWindowHours
	}
	if o.Buckets <= 0 {
		o.Buckets = DefaultBuckets
	}
	if o.IdleThresholdMinutes <= 0 {
		o.IdleThresholdMinutes = DefaultIdleThresholdMinutes
	}
	return o
}

// Bucket is one range of the recency histogram. Index 0 covers the most
// recent ages.
type Bucket struct {
	Index int
	Start time.Duration // youngest age covered, inclusive
	End   time.Duration // oldest age covered
	Count int
}

// Histogram partitions file ages into equal-width buckets.
type Histogram []Bucket

// MaxCount returns the largest bucket count, floored at 1 so bar scaling
// never divides by zero. The scale is local to this histogram.
func (h Histogram) MaxCount() int {
	max := 1
	for _, b := range h {
		if b.Count > max {
			max = b.Count
		}
	}
	return max
}

// Total returns the number of files counted across all buckets.
func (h Histogram) Total() int {
	n := 0
	for _, b := range h {
		n += b.Count
	}
	return n
}

// Summary is the output of one activity analysis.
type Summary struct {
	// Empty is set when no files were found; the remaining fields are
	// then zero apart from the idle decision, which still honors the
	// terminal and force overrides.
	Empty bool

	NewestPath       string
	NewestModTime    time.Time
	MinutesSinceEdit float64

	Histogram Histogram

	// Quick counters: files touched within the trailing window.
	Touched5m  int
	Touched30m int
	Touched60m int
	Touched24h int

	// FocusScore decays linearly from 1 to 0 over two hours since the
	// last edit.
	FocusScore float64
	State      State

	Idle bool
}

// Analyze turns file records into a recency histogram, quick counters,
// a focus score, and an idle decision. It never fails: an empty record
// set yields an empty summary.
func Analyze(records []workspace.FileRecord, now time.Time, opts Options) Summary {
	opts = opts.withDefaults()

	if len(records) == 0 {
		return Summary{
			Empty: true,
			Idle:  opts.ForceIdle || terminalIdle(opts),
		}
	}

	newest := records[0]
	for _, rec := range records[1:] {
		if rec.ModTime.After(newest.ModTime) {
			newest = rec
		}
	}

	minutesSinceEdit := now.Sub(newest.ModTime).Minutes()
	if minutesSinceEdit < 0 {
		// Clock skew: a file stamped in the future counts as just edited.
		minutesSinceEdit = 0
	}

	summary := Summary{
		NewestPath:       newest.Path,
		NewestModTime:    newest.ModTime,
		MinutesSinceEdit: minutesSinceEdit,
		Histogram:        buildHistogram(records, now, opts),
	}

	for _, rec := range records {
		age := now.Sub(rec.ModTime).Minutes()
		if age < 0 {
			age = 0
		}
		if age <= 5 {
			summary.Touched5m++
		}
		if age <= 30 {
			summary.Touched30m++
		}
		if age <= 60 {
			summary.Touched60m++
		}
		if age <= 24*60 {
			summary.Touched24h++
		}
	}

	summary.FocusScore = clamp(1-minutesSinceEdit/focusDecayMinutes, 0, 1)
	switch {
	case minutesSinceEdit < 5:
		summary.State = StateFlow
	case minutesSinceEdit <= 30:
		summary.State = StateSteady
	default:
		summary.State = StateRest
	}

	summary.Idle = opts.ForceIdle ||
		minutesSinceEdit > opts.IdleThresholdMinutes ||
		terminalIdle(opts)

	return summary
}

// buildHistogram partitions ages into equal-width buckets spanning the
// window. Files older than the window land in no bucket.
func buildHistogram(records []workspace.FileRecord, now time.Time, opts Options) Histogram {
	window := time.Duration(opts.WindowHours) * time.Hour
	span := window / time.Duration(opts.Buckets)

	h := make(Histogram, opts.Buckets)
	for i := range h {
		h[i] = Bucket{
			Index: i,
			Start: time.Duration(i) * span,
			End:   time.Duration(i+1) * span,
		}
	}

	for _, rec := range records {
		age := now.Sub(rec.ModTime)
		if age < 0 {
			age = 0
		}
		if age > window {
			continue
		}
		idx := int(age / span)
		if idx >= opts.Buckets {
			idx = opts.Buckets - 1
		}
		h[idx].Count++
	}

	return h
}

func terminalIdle(opts Options) bool {
	return opts.TerminalIdleMinutes != nil &&
		*opts.TerminalIdleMinutes > opts.IdleThresholdMinutes
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
