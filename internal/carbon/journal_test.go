package carbon

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aura-cli/aura/internal/bloat"
)

func testJournal(t *testing.T) *Journal {
	t.Helper()
	return NewJournal(filepath.Join(t.TempDir(), "carbon.md"), zerolog.Nop())
}

func TestJournal_LastGrade_MissingFile(t *testing.T) {
	j := testJournal(t)
	_, ok := j.LastGrade()
	assert.False(t, ok)
}

func TestJournal_LastGrade_MalformedContent(t *testing.T) {
	j := testJournal(t)
	require.NoError(t, os.WriteFile(j.Path, []byte("not a journal at all\n"), 0644))

	_, ok := j.LastGrade()
	assert.False(t, ok)
}

func TestJournal_RecordAndReadBack(t *testing.T) {
	j := testJournal(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	entries := []bloat.Entry{
		{Path: "/ws/model.bin", SizeMB: 60, Impact: bloat.ImpactEnergyHeavy},
		{Path: "/ws/logo.png", SizeMB: 1.5, Impact: bloat.ImpactOK},
	}

	rec, err := j.Record(now, GradeD, entries, 61.5, "nested loop in the export path")
	require.NoError(t, err)
	assert.Equal(t, VerdictFirstAudit, rec.Verdict)
	assert.NotEmpty(t, rec.ID)

	content, err := os.ReadFile(j.Path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "### Audit - 2025-06-01 12:00:00")
	assert.Contains(t, string(content), "Carbon Grade: D")
	assert.Contains(t, string(content), "Progress: first audit")
	assert.Contains(t, string(content), "/ws/model.bin (60.0 MB, ENERGY HEAVY)")

	grade, ok := j.LastGrade()
	require.True(t, ok)
	assert.Equal(t, GradeD, grade)
}

func TestJournal_ProgressAcrossRuns(t *testing.T) {
	j := testJournal(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	first, err := j.Record(now, GradeD, nil, 0, "")
	require.NoError(t, err)
	assert.Equal(t, VerdictFirstAudit, first.Verdict)

	improved, err := j.Record(now.Add(time.Hour), GradeB, nil, 0, "")
	require.NoError(t, err)
	assert.Equal(t, VerdictImproved, improved.Verdict)

	regressed, err := j.Record(now.Add(2*time.Hour), GradeF, nil, 0, "")
	require.NoError(t, err)
	assert.Equal(t, VerdictRegressed, regressed.Verdict)

	stable, err := j.Record(now.Add(3*time.Hour), GradeF, nil, 0, "")
	require.NoError(t, err)
	assert.Equal(t, VerdictStable, stable.Verdict)

	// The parser must pick the LAST recorded grade.
	grade, ok := j.LastGrade()
	require.True(t, ok)
	assert.Equal(t, GradeF, grade)
}

func TestJournal_LastGrade_TolerantParsing(t *testing.T) {
	j := testJournal(t)
	content := "### Audit - sometime\n" +
		"junk line\n" +
		"  carbon grade:  c\n" +
		"more junk\n"
	require.NoError(t, os.WriteFile(j.Path, []byte(content), 0644))

	grade, ok := j.LastGrade()
	require.True(t, ok)
	assert.Equal(t, GradeC, grade)
}

func TestJournal_RecordAppendsDoesNotOverwrite(t *testing.T) {
	j := testJournal(t)
	require.NoError(t, os.WriteFile(j.Path, []byte("### Audit - earlier\nCarbon Grade: A\n\n"), 0644))

	_, err := j.Record(time.Now(), GradeB, nil, 0, "")
	require.NoError(t, err)

	content, err := os.ReadFile(j.Path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Carbon Grade: A")
	assert.Contains(t, string(content), "Carbon Grade: B")
}

func TestJournal_RecordReturnsRecordOnWriteFailure(t *testing.T) {
	dir := t.TempDir()
	// Journal path is a directory: the append must fail, but the record
	// (with its verdict) still comes back for display.
	j := NewJournal(dir, zerolog.Nop())

	rec, err := j.Record(time.Now(), GradeB, nil, 0, "")
	require.Error(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, GradeB, rec.Grade)
	assert.Equal(t, VerdictFirstAudit, rec.Verdict)
}
