package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aura-cli/aura/internal/workspace"
)

func recordsAgedMinutes(now time.Time, minutes ...float64) []workspace.FileRecord {
	records := make([]workspace.FileRecord, 0, len(minutes))
	for i, m := range minutes {
		records = append(records, workspace.FileRecord{
			Path:    "file" + string(rune('a'+i)),
			ModTime: now.Add(-time.Duration(m * float64(time.Minute))),
		})
	}
	return records
}

func TestAnalyze_EndToEnd(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	records := recordsAgedMinutes(now, 1, 10, 130)

	s := Analyze(records, now, Options{WindowHours: 6, IdleThresholdMinutes: 15})

	assert.False(t, s.Empty)
	assert.InDelta(t, 1.0, s.MinutesSinceEdit, 0.001)
	assert.Equal(t, StateFlow, s.State)
	assert.False(t, s.Idle)

	assert.Equal(t, 1, s.Touched5m)
	assert.Equal(t, 2, s.Touched30m)
	assert.Equal(t, 2, s.Touched60m)
	assert.Equal(t, 3, s.Touched24h)
}

func TestAnalyze_HistogramCountsSumToFilesInWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	// 6h window: ages 1m..300m are inside, 500m and 2000m outside.
	records := recordsAgedMinutes(now, 1, 50, 90, 200, 300, 500, 2000)

	s := Analyze(records, now, Options{WindowHours: 6})

	require.Len(t, s.Histogram, DefaultBuckets)
	assert.Equal(t, 5, s.Histogram.Total())
}

func TestAnalyze_BucketZeroIsMostRecent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	// 6h window, 6 buckets: each bucket spans 60 minutes.
	records := recordsAgedMinutes(now, 5, 10, 70, 350)

	s := Analyze(records, now, Options{WindowHours: 6})

	assert.Equal(t, 2, s.Histogram[0].Count)
	assert.Equal(t, 1, s.Histogram[1].Count)
	assert.Equal(t, 1, s.Histogram[5].Count)
	assert.Equal(t, time.Duration(0), s.Histogram[0].Start)
	assert.Equal(t, time.Hour, s.Histogram[0].End)
}

func TestHistogram_MaxCountFloorsAtOne(t *testing.T) {
	empty := Histogram{{Index: 0}, {Index: 1}}
	assert.Equal(t, 1, empty.MaxCount())

	loaded := Histogram{{Count: 2}, {Count: 7}, {Count: 3}}
	assert.Equal(t, 7, loaded.MaxCount())
}

func TestAnalyze_FocusScore(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		ageMin    float64
		wantScore float64
		wantState State
	}{
		{"just edited", 0, 1.0, StateFlow},
		{"four minutes", 4, 1 - 4.0/120, StateFlow},
		{"fifteen minutes", 15, 1 - 15.0/120, StateSteady},
		{"thirty minutes", 30, 0.75, StateSteady},
		{"ninety minutes", 90, 0.25, StateRest},
		{"three hours decays to zero", 180, 0, StateRest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Analyze(recordsAgedMinutes(now, tt.ageMin), now, Options{})
			assert.InDelta(t, tt.wantScore, s.FocusScore, 0.001)
			assert.Equal(t, tt.wantState, s.State)
		})
	}
}

func TestAnalyze_IdleDecision(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	terminalIdle := func(m float64) *float64 { return &m }

	tests := []struct {
		name     string
		ageMin   float64
		opts     Options
		wantIdle bool
	}{
		{"recent edit not idle", 1, Options{}, false},
		{"stale edit idle", 20, Options{}, true},
		{"threshold is strict", 15, Options{}, false},
		{"terminal idle triggers", 1, Options{TerminalIdleMinutes: terminalIdle(16)}, true},
		{"terminal active does not", 1, Options{TerminalIdleMinutes: terminalIdle(2)}, false},
		{"unknown terminal does not", 20, Options{IdleThresholdMinutes: 25}, false},
		{"force idle wins", 1, Options{ForceIdle: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Analyze(recordsAgedMinutes(now, tt.ageMin), now, tt.opts)
			assert.Equal(t, tt.wantIdle, s.Idle)
		})
	}
}

func TestAnalyze_NoFiles(t *testing.T) {
	now := time.Now()

	s := Analyze(nil, now, Options{})
	assert.True(t, s.Empty)
	assert.False(t, s.Idle)

	forced := Analyze(nil, now, Options{ForceIdle: true})
	assert.True(t, forced.Empty)
	assert.True(t, forced.Idle)
}

func TestAnalyze_FutureTimestampClamped(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	records := []workspace.FileRecord{
		{Path: "future", ModTime: now.Add(10 * time.Minute)},
	}

	s := Analyze(records, now, Options{})
	assert.Zero(t, s.MinutesSinceEdit)
	assert.Equal(t, 1, s.Histogram[0].Count)
	assert.Equal(t, 1.0, s.FocusScore)
}
