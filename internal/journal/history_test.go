package journal

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededHistory(t *testing.T, n int) *History {
	t.Helper()
	s, _ := newTestStore(t)
	for i := 0; i < n; i++ {
		e := entryAt(fmt.Sprintf("e%02d", i), t0.Add(time.Duration(i)*time.Minute))
		if i%2 == 0 {
			e.Pattern = "other"
		}
		s.Create(e)
	}
	return NewHistory(s, 10)
}

func TestHistoryPaging(t *testing.T) {
	h := seededHistory(t, 25)
	assert.Equal(t, 25, h.Total())
	assert.Len(t, h.Visible(), 10)
	assert.Equal(t, "e24", h.Visible()[0].ID)

	h.SetPage(99)
	assert.Equal(t, 3, h.Pager().Page)
	assert.Len(t, h.Visible(), 5)

	h.NextPage()
	assert.Equal(t, 3, h.Pager().Page)
	h.PrevPage()
	assert.Equal(t, 2, h.Pager().Page)

	h.SetPageSize(20)
	assert.Equal(t, 1, h.Pager().Page)
	assert.Len(t, h.Visible(), 20)
	h.SetPageSize(7)
	assert.Equal(t, 20, h.Pager().Size)
}

func TestHistoryClampsAfterDelete(t *testing.T) {
	h := seededHistory(t, 21)
	h.SetPage(3)
	require.Len(t, h.Visible(), 1)

	assert.True(t, h.Delete(h.Visible()[0].ID))
	assert.Equal(t, 2, h.Pager().Page)
	assert.Equal(t, "Page 2 / 2 · 20 items", h.PageLabel())
}

func TestHistorySelection(t *testing.T) {
	h := seededHistory(t, 25)
	h.SelectPage()
	assert.Equal(t, 10, h.SelectedCount())

	h.Toggle("e24")
	assert.False(t, h.IsSelected("e24"))
	h.Toggle("e24")
	assert.True(t, h.IsSelected("e24"))

	h.ClearSelection()
	assert.Zero(t, h.SelectedCount())
}

func TestHistoryDeleteSelected(t *testing.T) {
	h := seededHistory(t, 25)
	h.SetPage(2)
	h.Toggle("e00")
	h.Toggle("e01")

	assert.Equal(t, 2, h.DeleteSelected())
	assert.Zero(t, h.SelectedCount())
	assert.Equal(t, 1, h.Pager().Page)
	assert.Equal(t, 23, h.Total())
	assert.Equal(t, 0, h.DeleteSelected())
}

func TestHistoryDeleteFiltered(t *testing.T) {
	h := seededHistory(t, 25)
	h.Toggle("e03")
	h.SetQuery(Query{Pattern: "other"})
	assert.Equal(t, 13, h.Total())

	assert.Equal(t, 13, h.DeleteFiltered())
	assert.Zero(t, h.SelectedCount())
	assert.Zero(t, h.Total())

	h.SetQuery(Query{})
	assert.Equal(t, 12, h.Total())
	assert.Equal(t, 12, h.DeleteFiltered())
	assert.Equal(t, 0, h.DeleteFiltered())
}

func TestHistoryPinAndDone(t *testing.T) {
	h := seededHistory(t, 3)
	require.NoError(t, h.TogglePin("e00"))
	assert.Equal(t, "e00", h.Visible()[0].ID)

	require.NoError(t, h.ToggleDone("e01"))
	e, _ := h.Store().Get("e01")
	assert.True(t, e.Done())
	require.NoError(t, h.ToggleDone("e01"))
	e, _ = h.Store().Get("e01")
	assert.False(t, e.Done())

	assert.ErrorIs(t, h.TogglePin("nope"), ErrNotFound)
}

func TestHistoryWipe(t *testing.T) {
	h := seededHistory(t, 5)
	h.SelectPage()
	require.NoError(t, h.Wipe())
	assert.Zero(t, h.Total())
	assert.Zero(t, h.SelectedCount())
}
