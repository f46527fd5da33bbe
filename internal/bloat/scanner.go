package bloat

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/aura-cli/aura/internal/workspace"
)

const (
	// DefaultMaxSizeMB is the size above which a file counts as energy-heavy.
	DefaultMaxSizeMB = 50.0

	// DefaultTopN is how many of the largest files a report keeps.
	DefaultTopN = 5

	bytesPerMB = 1024 * 1024
)

// Impact labels a ranked file.
type Impact string

const (
	ImpactOK          Impact = "OK"
	ImpactEnergyHeavy Impact = "ENERGY HEAVY"
)

// Entry is one ranked file in a bloat report.
type Entry struct {
	Path   string
	SizeMB float64
	Impact Impact
}

// Report ranks the largest files in a workspace.
//
// TotalDisplayedMB sums only the returned top-N entries, not the whole
// workspace. That is the contract: it is the "at a glance" total for the
// table being shown, and callers wanting a tree-wide total must compute
// it themselves.
type Report struct {
	Entries          []Entry
	TotalDisplayedMB float64
}

// HeavyCount returns how many entries are labeled energy-heavy.
func (r *Report) HeavyCount() int {
	n := 0
	for _, e := range r.Entries {
		if e.Impact == ImpactEnergyHeavy {
			n++
		}
	}
	return n
}

// Scanner ranks files by size and classifies them against a threshold.
type Scanner struct {
	walker *workspace.Walker

	// MaxSizeMB marks a file energy-heavy when its size strictly
	// exceeds this value. A file of exactly MaxSizeMB is OK.
	MaxSizeMB float64

	// TopN limits the report to the N largest files.
	TopN int
}

// NewScanner creates a bloat scanner with default thresholds.
func NewScanner(rootPath string, logger zerolog.Logger) (*Scanner, error) {
	w, err := workspace.NewWalker(rootPath, logger)
	if err != nil {
		return nil, fmt.Errorf("creating walker: %w", err)
	}
	return &Scanner{
		walker:    w,
		MaxSizeMB: DefaultMaxSizeMB,
		TopN:      DefaultTopN,
	}, nil
}

// Walker exposes the underlying walker so callers can extend exclusions.
func (s *Scanner) Walker() *workspace.Walker { return s.walker }

// Scan collects every file's size, sorts descending, and keeps the top N.
// The sort is stable: files of equal size stay in enumeration order.
func (s *Scanner) Scan(ctx context.Context) (*Report, error) {
	records, err := s.walker.Walk(ctx)
	if err != nil {
		return nil, fmt.Errorf("scanning for bloat: %w", err)
	}

	entries := make([]Entry, 0, len(records))
	for _, rec := range records {
		sizeMB := float64(rec.Size) / bytesPerMB
		impact := ImpactOK
		if sizeMB > s.MaxSizeMB {
			impact = ImpactEnergyHeavy
		}
		entries = append(entries, Entry{
			Path:   rec.Path,
			SizeMB: sizeMB,
			Impact: impact,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SizeMB > entries[j].SizeMB
	})

	topN := s.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}
	if len(entries) > topN {
		entries = entries[:topN]
	}

	report := &Report{Entries: entries}
	for _, e := range entries {
		report.TotalDisplayedMB += e.SizeMB
	}
	return report, nil
}
