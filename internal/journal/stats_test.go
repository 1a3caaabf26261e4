package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTopPattern(t *testing.T) {
	assert.Equal(t, None, TopPattern(nil))
	assert.Equal(t, None, TopPattern([]Entry{{Pattern: UnknownPattern}, {}}))

	entries := []Entry{
		{Pattern: "perfectionism"},
		{Pattern: "comparison"},
		{Pattern: "comparison"},
		{Pattern: "perfectionism"},
		{Pattern: UnknownPattern},
		{Pattern: UnknownPattern},
		{Pattern: UnknownPattern},
	}
	// tie goes to the first pattern seen
	assert.Equal(t, "perfectionism (2)", TopPattern(entries))

	entries = append(entries, Entry{Pattern: "comparison"})
	assert.Equal(t, "comparison (3)", TopPattern(entries))
}

func TestDoneToday(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	now := time.Date(2024, 3, 2, 10, 0, 0, 0, loc)
	earlyToday := time.Date(2024, 3, 1, 16, 30, 0, 0, time.UTC) // 00:30 local
	yesterday := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)   // 23:00 local
	entries := []Entry{
		{DoneTS: &earlyToday},
		{DoneTS: &yesterday},
		{},
	}
	assert.Equal(t, 1, DoneToday(entries, now))
}

func TestComputeKPIs(t *testing.T) {
	now := t0.Add(time.Hour)
	done := t0
	entries := []Entry{{Pattern: "other", DoneTS: &done}, {Pattern: "other"}}

	k := ComputeKPIs(entries, time.Time{}, now)
	assert.Equal(t, KPIs{Total: 2, TopPattern: "other (2)", LastRun: None, DoneToday: 1}, k)

	k = ComputeKPIs(entries, t0, now)
	assert.Equal(t, "2024/03/01 09:00", k.LastRun)
}

func TestInsights(t *testing.T) {
	var entries []Entry
	for i := 0; i < 5; i++ {
		entries = append(entries, Entry{Pattern: "comparison", TS: t0.Add(time.Duration(i) * 24 * time.Hour)})
	}
	entries = append(entries, Entry{Pattern: "other", TS: t0})

	in := Insights(entries, "comparison")
	assert.Equal(t, 5, in.Count)
	assert.Len(t, in.Recent, 3)
	assert.True(t, in.Recent[0].Equal(t0.Add(4*24*time.Hour)))
	assert.True(t, strings.HasPrefix(in.String(), "This pattern has appeared 5 time(s). Recent: "))
	assert.Equal(t, 2, strings.Count(in.String(), ", "))

	assert.Equal(t, "", Insights(entries, "perfectionism").String())
	assert.Zero(t, Insights(entries, UnknownPattern).Count)
}
