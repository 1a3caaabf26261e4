package journal

import "sort"

// History is the state behind the history list: a query, a pager and the
// set of checked entries.
type History struct {
	store    *Store
	query    Query
	pager    Pager
	selected map[string]bool

	filtered []Entry
	visible  []Entry
}

// NewHistory returns a history view over store, already refreshed.
func NewHistory(store *Store, pageSize int) *History {
	h := &History{
		store:    store,
		query:    Query{Pattern: PatternAll, Status: StatusAll, Order: Newest},
		pager:    NewPager(pageSize),
		selected: make(map[string]bool),
	}
	h.Refresh()
	return h
}

// Refresh reloads the store, reapplies the query and clamps the page.
func (h *History) Refresh() {
	h.filtered = Filter(h.store.Load(), h.query)
	h.pager.Clamp(len(h.filtered))
	h.visible = h.pager.Slice(h.filtered)
}

func (h *History) Query() Query { return h.query }
func (h *History) Pager() Pager { return h.pager }
func (h *History) Filtered() []Entry { return h.filtered }
func (h *History) Visible() []Entry { return h.visible }
func (h *History) Total() int { return len(h.filtered) }
func (h *History) PageLabel() string { return h.pager.Label(len(h.filtered)) }
func (h *History) Store() *Store { return h.store }
func (h *History) SelectedCount() int { return len(h.selected) }

// SetQuery replaces the query and returns to page 1.
func (h *History) SetQuery(q Query) {
	h.query = q
	h.pager.Page = 1
	h.Refresh()
}

// SetPageSize changes the page size and returns to page 1. Invalid sizes
// are ignored.
func (h *History) SetPageSize(n int) {
	if !ValidPageSize(n) {
		return
	}
	h.pager.Size = n
	h.pager.Page = 1
	h.Refresh()
}

// SetPage jumps to page n, clamped.
func (h *History) SetPage(n int) {
	h.pager.Page = n
	h.Refresh()
}

func (h *History) NextPage() { h.SetPage(h.pager.Page + 1) }

func (h *History) PrevPage() { h.SetPage(h.pager.Page - 1) }

// Toggle flips the selection of id.
func (h *History) Toggle(id string) {
	if h.selected[id] {
		delete(h.selected, id)
		return
	}
	h.selected[id] = true
}

// IsSelected reports whether id is checked.
func (h *History) IsSelected(id string) bool { return h.selected[id] }

// Selected returns the checked ids, sorted.
func (h *History) Selected() []string {
	ids := make([]string, 0, len(h.selected))
	for id := range h.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SelectPage checks every visible entry.
func (h *History) SelectPage() {
	for _, e := range h.visible {
		h.selected[e.ID] = true
	}
}

// ClearSelection unchecks everything.
func (h *History) ClearSelection() {
	clear(h.selected)
}

// DeleteSelected removes the checked entries, clears the selection and
// returns to page 1.
func (h *History) DeleteSelected() int {
	if len(h.selected) == 0 {
		return 0
	}
	n := h.store.Delete(h.Selected()...)
	h.ClearSelection()
	h.pager.Page = 1
	h.Refresh()
	return n
}

// DeleteFiltered removes every entry matching the current query, across all
// pages, and clears the selection.
func (h *History) DeleteFiltered() int {
	if len(h.filtered) == 0 {
		return 0
	}
	ids := make([]string, len(h.filtered))
	for i, e := range h.filtered {
		ids[i] = e.ID
	}
	n := h.store.Delete(ids...)
	h.ClearSelection()
	h.pager.Page = 1
	h.Refresh()
	return n
}

// Delete removes one entry and drops it from the selection.
func (h *History) Delete(id string) bool {
	n := h.store.Delete(id)
	delete(h.selected, id)
	h.Refresh()
	return n > 0
}

// TogglePin flips the pinned flag of id.
func (h *History) TogglePin(id string) error {
	e, err := h.store.Get(id)
	if err != nil {
		return err
	}
	pinned := !e.Pinned
	if _, err := h.store.Update(id, Patch{Pinned: &pinned}); err != nil {
		return err
	}
	h.Refresh()
	return nil
}

// ToggleDone marks id done, or undoes it.
func (h *History) ToggleDone(id string) error {
	e, err := h.store.Get(id)
	if err != nil {
		return err
	}
	done := !e.Done()
	if _, err := h.store.Update(id, Patch{Done: &done}); err != nil {
		return err
	}
	h.Refresh()
	return nil
}

// Wipe clears the store and the selection.
func (h *History) Wipe() error {
	if err := h.store.Wipe(); err != nil {
		return err
	}
	h.ClearSelection()
	h.pager.Page = 1
	h.Refresh()
	return nil
}
