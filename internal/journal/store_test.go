package journal

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasonroy7dct/site/internal/agent"
	"github.com/jasonroy7dct/site/internal/kv"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) (*Store, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory(0)
	s := NewStore(mem)
	s.SetClock(func() time.Time { return t0 })
	return s, mem
}

func entryAt(id string, ts time.Time) Entry {
	return Entry{ID: id, TS: ts, Text: "text " + id, Pattern: string(agent.Comparison), Evidence: []string{}}
}

func TestLoadEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	entries := s.Load()
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestCreateKeepsMostRecent200(t *testing.T) {
	s, _ := newTestStore(t)
	for i := 0; i < 205; i++ {
		s.Create(entryAt(fmt.Sprintf("e%03d", i), t0.Add(time.Duration(i)*time.Minute)))
	}

	entries := s.Load()
	require.Len(t, entries, MaxEntries)
	assert.Equal(t, "e005", entries[0].ID)
	assert.Equal(t, "e204", entries[len(entries)-1].ID)
	for i, e := range entries {
		assert.Equal(t, fmt.Sprintf("e%03d", i+5), e.ID)
	}
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	s, _ := newTestStore(t)
	a := s.Create(entryAt("same", t0))
	b := s.Create(entryAt("same", t0))
	c := s.Create(Entry{Text: "no id"})

	assert.Equal(t, "same", a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.True(t, strings.HasPrefix(c.ID, "rb_"))
	assert.Equal(t, t0, c.TS)
	assert.Len(t, s.Load(), 3)
}

func TestCorruptDataLoadsEmpty(t *testing.T) {
	s, mem := newTestStore(t)
	require.NoError(t, mem.Set(EntriesKey, "{not json"))
	assert.Empty(t, s.Load())

	// the next write replaces the corrupt value
	s.Create(entryAt("a", t0))
	assert.Len(t, s.Load(), 1)
}

func TestCorruptSlotIsolated(t *testing.T) {
	mem := kv.NewMemory(0)
	s := NewStore(mem)
	p := NewPrefs(mem, nil)
	p.SetLanguage("en")
	require.NoError(t, mem.Set(EntriesKey, "[[["))

	assert.Empty(t, s.Load())
	assert.Equal(t, "en", p.Language())
}

func TestQuotaWriteFailureIsSilent(t *testing.T) {
	mem := kv.NewMemory(64)
	s := NewStore(mem)

	assert.NotPanics(t, func() {
		s.Create(Entry{ID: "big", TS: t0, Text: strings.Repeat("x", 500)})
	})
	assert.Empty(t, s.Load())
}

func TestUpdatePinAndDone(t *testing.T) {
	s, _ := newTestStore(t)
	s.Create(entryAt("a", t0))

	yes, no := true, false
	e, err := s.Update("a", Patch{Pinned: &yes, Done: &yes})
	require.NoError(t, err)
	assert.True(t, e.Pinned)
	require.NotNil(t, e.DoneTS)
	assert.Equal(t, t0, *e.DoneTS)

	e, err = s.Update("a", Patch{Done: &no})
	require.NoError(t, err)
	assert.Nil(t, e.DoneTS)
	assert.True(t, e.Pinned, "nil field changed")

	got, err := s.Get("a")
	require.NoError(t, err)
	assert.True(t, got.Pinned)
	assert.False(t, got.Done())

	_, err = s.Update("missing", Patch{Pinned: &yes})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	s, _ := newTestStore(t)
	for _, id := range []string{"a", "b", "c"} {
		s.Create(entryAt(id, t0))
	}

	assert.Equal(t, 2, s.Delete("a", "c", "zzz"))
	assert.Equal(t, 0, s.Delete())
	entries := s.Load()
	require.Len(t, entries, 1)
	assert.Equal(t, "b", entries[0].ID)

	_, err := s.Get("a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSnapshotsAreCopies(t *testing.T) {
	s, _ := newTestStore(t)
	e := entryAt("a", t0)
	e.Evidence = []string{"one"}
	s.Create(e)

	got, err := s.Get("a")
	require.NoError(t, err)
	got.Evidence[0] = "changed"
	got.Pinned = true

	again, _ := s.Get("a")
	assert.Equal(t, "one", again.Evidence[0])
	assert.False(t, again.Pinned)
}

func TestImportExistingWins(t *testing.T) {
	s, _ := newTestStore(t)
	orig := entryAt("a", t0)
	orig.Name = "original"
	s.Create(orig)

	changed := entryAt("a", t0)
	changed.Name = "overwritten"
	added, err := s.Import([]Entry{changed, entryAt("b", t0.Add(-time.Hour)), {Text: "no id"}})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	entries := s.Load()
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].ID, "not resorted by ts")
	assert.Equal(t, "original", entries[1].Name)
}

func TestImportCaps(t *testing.T) {
	s, _ := newTestStore(t)
	var list []Entry
	for i := 0; i < 250; i++ {
		list = append(list, entryAt(fmt.Sprintf("i%03d", i), t0.Add(time.Duration(i)*time.Second)))
	}
	added, err := s.Import(list)
	require.NoError(t, err)
	assert.Equal(t, MaxEntries, added)
	assert.Equal(t, "i050", s.Load()[0].ID)
}

func TestImportJSON(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.ImportJSON(strings.NewReader(`{"id":"a"}`))
	assert.ErrorIs(t, err, ErrNotArray)

	_, err = s.ImportJSON(strings.NewReader(`[{"id":`))
	assert.Error(t, err)

	added, err := s.ImportJSON(strings.NewReader(`[{"id":"x1","ts":"2024-01-02T03:04:05.000Z","text":"hi","pattern":"other","done_ts":null,"pinned":true}]`))
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	got, err := s.Get("x1")
	require.NoError(t, err)
	assert.True(t, got.Pinned)
	assert.Equal(t, 2024, got.TS.Year())
}

func TestExportRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	var buf bytes.Buffer
	assert.ErrorIs(t, s.ExportJSON(&buf), ErrNothingToExport)

	s.Create(entryAt("a", t0))
	s.Create(entryAt("b", t0.Add(time.Minute)))
	require.NoError(t, s.ExportJSON(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "[\n  {"))

	other, _ := newTestStore(t)
	added, err := other.ImportJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Equal(t, s.ExportAll(), other.ExportAll())
}

func TestWipe(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Wipe())
	s.Create(entryAt("a", t0))
	require.NoError(t, s.Wipe())
	assert.Empty(t, s.Load())
}
