package carbon

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aura-cli/aura/internal/bloat"
	"github.com/aura-cli/aura/internal/journal"
)

// DefaultJournalPath is the carbon journal location relative to the
// workspace root.
const DefaultJournalPath = ".aura/carbon.md"

const timestampLayout = "2006-01-02 15:04:05"

// gradeLine tolerantly matches a recorded grade. Case and surrounding
// whitespace vary across hand-edited journals; the letter is what counts.
var gradeLine = regexp.MustCompile(`(?im)^\s*carbon grade:\s*([A-F])\b`)

// AuditRecord is one appended carbon audit.
type AuditRecord struct {
	ID               string
	Time             time.Time
	Grade            Grade
	Verdict          Verdict
	Entries          []bloat.Entry
	TotalDisplayedMB float64
	ComplexityText   string
}

// Journal is the append-only carbon audit history. Prior grades are
// parsed back from the file, never held in memory between runs.
type Journal struct {
	Path   string
	logger zerolog.Logger
}

// NewJournal creates a journal over the given file.
func NewJournal(path string, logger zerolog.Logger) *Journal {
	if path == "" {
		path = DefaultJournalPath
	}
	return &Journal{Path: path, logger: logger}
}

// LastGrade parses the most recent grade recorded in the journal.
// A missing or malformed journal is simply "no prior audit".
func (j *Journal) LastGrade() (Grade, bool) {
	content, err := journal.Read(j.Path)
	if err != nil {
		j.logger.Debug().Err(err).Msg("carbon journal unreadable, treating as no history")
		return "", false
	}

	matches := gradeLine.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return "", false
	}

	g := Grade(strings.ToUpper(matches[len(matches)-1][1]))
	return g, g.Valid()
}

// Record computes the progress verdict against the prior entry and
// appends a new timestamped audit. The returned record is complete even
// when the append fails, so callers can still display the run's results
// and downgrade the write failure to a warning.
func (j *Journal) Record(now time.Time, grade Grade, entries []bloat.Entry, totalMB float64, complexityText string) (*AuditRecord, error) {
	prev, hasPrev := j.LastGrade()

	rec := &AuditRecord{
		ID:               uuid.New().String(),
		Time:             now,
		Grade:            grade,
		Verdict:          Progress(prev, hasPrev, grade),
		Entries:          entries,
		TotalDisplayedMB: totalMB,
		ComplexityText:   complexityText,
	}

	if err := journal.Append(j.Path, formatRecord(rec)); err != nil {
		return rec, err
	}
	return rec, nil
}

// formatRecord renders an audit in the journal's markdown-like format.
// The header and grade lines are the parseable contract; everything else
// is for humans.
func formatRecord(rec *AuditRecord) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "### Audit - %s\n", rec.Time.Format(timestampLayout))
	fmt.Fprintf(&sb, "Run-ID: %s\n", rec.ID)
	fmt.Fprintf(&sb, "Carbon Grade: %s\n", rec.Grade)
	fmt.Fprintf(&sb, "Progress: %s\n", rec.Verdict)
	fmt.Fprintf(&sb, "Total displayed: %.1f MB\n", rec.TotalDisplayedMB)

	if len(rec.Entries) > 0 {
		sb.WriteString("Files:\n")
		for _, e := range rec.Entries {
			fmt.Fprintf(&sb, "- %s (%.1f MB, %s)\n", e.Path, e.SizeMB, e.Impact)
		}
	}

	if text := strings.TrimSpace(rec.ComplexityText); text != "" {
		sb.WriteString("Complexity notes:\n")
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	return sb.String()
}
