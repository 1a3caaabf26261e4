package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ids(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func sampleEntries() []Entry {
	done := t0.Add(time.Hour)
	return []Entry{
		{ID: "a", TS: t0, Text: "Why did I SAY that?", Pattern: "uncertainty_loop"},
		{ID: "b", TS: t0.Add(1 * time.Minute), Text: "比較 同事", Summary: "Comparison loop · list wins", Pattern: "comparison", DoneTS: &done},
		{ID: "c", TS: t0.Add(2 * time.Minute), Text: "future plans", Pattern: "future_projection", Pinned: true},
		{ID: "d", TS: t0.Add(3 * time.Minute), Text: "say it again", Pattern: "uncertainty_loop"},
	}
}

func TestFilterSortsPinnedFirst(t *testing.T) {
	entries := sampleEntries()
	assert.Equal(t, []string{"c", "d", "b", "a"}, ids(Filter(entries, Query{})))
	assert.Equal(t, []string{"c", "a", "b", "d"}, ids(Filter(entries, Query{Order: Oldest})))
}

func TestFilterText(t *testing.T) {
	entries := sampleEntries()
	tests := []struct {
		text string
		want []string
	}{
		{"say", []string{"d", "a"}},
		{"  SAY!! ", []string{"d", "a"}},
		{"list wins", []string{"b"}},
		{"同事", []string{"b"}},
		{"nothing here", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(entries, Query{Text: tt.text})))
		})
	}
}

func TestFilterPatternAndStatus(t *testing.T) {
	entries := sampleEntries()
	assert.Equal(t, []string{"d", "a"}, ids(Filter(entries, Query{Pattern: "uncertainty_loop"})))
	assert.Len(t, Filter(entries, Query{Pattern: PatternAll}), 4)
	assert.Equal(t, []string{"c"}, ids(Filter(entries, Query{Status: StatusPinned})))
	assert.Equal(t, []string{"b"}, ids(Filter(entries, Query{Status: StatusDone})))
	assert.Equal(t, []string{"c", "d", "a"}, ids(Filter(entries, Query{Status: StatusTodo})))
	assert.Empty(t, Filter(entries, Query{Pattern: "comparison", Status: StatusTodo}))
}

func TestPagerClamp(t *testing.T) {
	tests := []struct {
		page, size, total int
		wantPage, pages   int
	}{
		{1, 10, 0, 1, 1},
		{5, 10, 0, 1, 1},
		{3, 10, 25, 3, 3},
		{4, 10, 25, 3, 3},
		{0, 10, 25, 1, 3},
		{-2, 20, 41, 1, 3},
		{2, 50, 50, 1, 1},
	}
	for _, tt := range tests {
		p := Pager{Page: tt.page, Size: tt.size}
		p.Clamp(tt.total)
		assert.Equal(t, tt.wantPage, p.Page, "page for %+v", tt)
		assert.Equal(t, tt.pages, p.TotalPages(tt.total), "pages for %+v", tt)
	}
}

func TestPagerSliceAndLabel(t *testing.T) {
	var entries []Entry
	for i := 0; i < 25; i++ {
		entries = append(entries, Entry{ID: string(rune('a' + i))})
	}
	p := NewPager(10)
	p.Page = 3
	p.Clamp(len(entries))
	assert.Len(t, p.Slice(entries), 5)
	assert.Equal(t, "Page 3 / 3 · 25 items", p.Label(len(entries)))
	assert.True(t, p.HasPrev())
	assert.False(t, p.HasNext(len(entries)))

	assert.Empty(t, p.Slice(nil))
}

func TestNewPagerRejectsOddSizes(t *testing.T) {
	assert.Equal(t, DefaultPageSize, NewPager(15).Size)
	assert.Equal(t, 50, NewPager(50).Size)
	assert.False(t, ValidPageSize(0))
}
