package router

import "github.com/jasonroy7dct/site/internal/route"

// History records the address bar. Push adds an entry, Replace rewrites
// the current one.
type History interface {
	Push(path string, in route.Intent)
	Replace(path string, in route.Intent)
	Current() (string, route.Intent)
}

// Entry is one history slot.
type Entry struct {
	Path   string
	Intent route.Intent
}

// MemoryHistory is a browser-style history stack.
type MemoryHistory struct {
	entries []Entry
	index   int
}

// NewMemoryHistory starts with a single entry at path.
func NewMemoryHistory(path string) *MemoryHistory {
	p := route.Normalize(path)
	return &MemoryHistory{entries: []Entry{{Path: p, Intent: route.Parse(p)}}}
}

// Push drops any forward entries and appends a new one.
func (h *MemoryHistory) Push(path string, in route.Intent) {
	h.entries = append(h.entries[:h.index+1], Entry{Path: path, Intent: in})
	h.index = len(h.entries) - 1
}

// Replace rewrites the current entry.
func (h *MemoryHistory) Replace(path string, in route.Intent) {
	h.entries[h.index] = Entry{Path: path, Intent: in}
}

// Current returns the current entry.
func (h *MemoryHistory) Current() (string, route.Intent) {
	e := h.entries[h.index]
	return e.Path, e.Intent
}

// Back moves one entry back. ok is false at the start of history.
func (h *MemoryHistory) Back() (Entry, bool) {
	if h.index == 0 {
		return Entry{}, false
	}
	h.index--
	return h.entries[h.index], true
}

// Forward moves one entry forward. ok is false at the end of history.
func (h *MemoryHistory) Forward() (Entry, bool) {
	if h.index >= len(h.entries)-1 {
		return Entry{}, false
	}
	h.index++
	return h.entries[h.index], true
}

// Len returns the number of entries.
func (h *MemoryHistory) Len() int {
	return len(h.entries)
}
