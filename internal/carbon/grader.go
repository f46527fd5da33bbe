// Package carbon turns bloat findings and free-form complexity commentary
// into an ordinal A-F grade and tracks grade progression across runs
// through an append-only journal.
package carbon

import (
	"strings"

	"github.com/aura-cli/aura/internal/bloat"
)

// Grade is an ordinal carbon grade, A best.
//
// GradeE exists for display styling but is unreachable under the grading
// rules below. The asymmetry is inherited behavior and deliberately kept;
// inventing a path to E would change every journal comparison that
// follows. See DESIGN.md.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeE Grade = "E"
	GradeF Grade = "F"
)

// Rank maps a grade to its ordinal: A=1 (best) through F=6 (worst).
// Unknown grades rank 0.
func (g Grade) Rank() int {
	switch g {
	case GradeA:
		return 1
	case GradeB:
		return 2
	case GradeC:
		return 3
	case GradeD:
		return 4
	case GradeE:
		return 5
	case GradeF:
		return 6
	}
	return 0
}

// Valid reports whether g is one of the six defined grades.
func (g Grade) Valid() bool { return g.Rank() != 0 }

// majorBloatMB is the displayed-total and single-file size at which
// bloat counts as major.
const majorBloatMB = 200.0

// GradeAudit combines bloat entries with complexity commentary into a
// grade. The commentary is an opaque string from an external advisor
// (or a canned fallback); this function never calls the advisor itself.
//
// The rules run in priority order, first match wins:
//
//  1. nested loops mentioned and bloat is major        -> F
//  2. quadratic complexity, or >=2 energy-heavy files  -> C
//  3. cheap complexity and zero energy-heavy files     -> A
//  4. nested loops, or any energy-heavy file           -> D
//  5. otherwise                                        -> B
func GradeAudit(entries []bloat.Entry, complexityText string) Grade {
	text := strings.ToLower(complexityText)

	heavy := 0
	totalMB := 0.0
	anyGiantHeavy := false
	for _, e := range entries {
		totalMB += e.SizeMB
		if e.Impact == bloat.ImpactEnergyHeavy {
			heavy++
			if e.SizeMB >= majorBloatMB {
				anyGiantHeavy = true
			}
		}
	}

	majorBloat := heavy >= 3 || totalMB >= majorBloatMB || anyGiantHeavy
	nestedLoops := strings.Contains(text, "nested loop")

	switch {
	case nestedLoops && majorBloat:
		return GradeF
	case mentionsAny(text, "quadratic", "o(n^2)", "o(n²)") || heavy >= 2:
		return GradeC
	case mentionsAny(text, "o(1)", "constant", "o(log", "logarithmic", "o(n)", "linear") && heavy == 0:
		return GradeA
	case nestedLoops || heavy >= 1:
		return GradeD
	default:
		return GradeB
	}
}

func mentionsAny(text string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// Verdict describes grade progression relative to the prior audit.
type Verdict string

const (
	VerdictFirstAudit Verdict = "first audit"
	VerdictImproved   Verdict = "improved"
	VerdictRegressed  Verdict = "regressed"
	VerdictStable     Verdict = "stable"
)

// Progress compares the new grade against the prior one by ordinal rank.
func Progress(prev Grade, hasPrev bool, next Grade) Verdict {
	if !hasPrev {
		return VerdictFirstAudit
	}
	switch {
	case next.Rank() < prev.Rank():
		return VerdictImproved
	case next.Rank() > prev.Rank():
		return VerdictRegressed
	default:
		return VerdictStable
	}
}
