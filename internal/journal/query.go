package journal

import (
	"sort"
	"strings"

	"github.com/jasonroy7dct/site/internal/similarity"
)

// Status filters entries by pin and done state.
type Status string

const (
	StatusAll    Status = "all"
	StatusPinned Status = "pinned"
	StatusDone   Status = "done"
	StatusTodo   Status = "todo"
)

// Statuses lists the status filters in menu order.
var Statuses = []Status{StatusAll, StatusPinned, StatusDone, StatusTodo}

// Order is the timestamp sort direction.
type Order string

const (
	Newest Order = "newest"
	Oldest Order = "oldest"
)

// PatternAll disables the pattern filter.
const PatternAll = "all"

// Query selects and orders entries for the history list.
type Query struct {
	Text    string
	Pattern string
	Status  Status
	Order   Order
}

// Match reports whether e passes every filter in q.
func (q Query) Match(e Entry) bool {
	if needle := similarity.Normalize(q.Text); needle != "" {
		if !strings.Contains(similarity.Normalize(e.Text), needle) &&
			!strings.Contains(similarity.Normalize(e.Summary), needle) {
			return false
		}
	}
	if q.Pattern != "" && q.Pattern != PatternAll && e.Pattern != q.Pattern {
		return false
	}
	switch q.Status {
	case StatusPinned:
		return e.Pinned
	case StatusDone:
		return e.Done()
	case StatusTodo:
		return !e.Done()
	}
	return true
}

// Filter returns the entries matching q, pinned first, then by timestamp in
// q.Order (newest when unset). Entries with equal keys keep their order.
func Filter(entries []Entry, q Query) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if q.Match(e) {
			out = append(out, e.clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Pinned != b.Pinned {
			return a.Pinned
		}
		if q.Order == Oldest {
			return a.TS.Before(b.TS)
		}
		return a.TS.After(b.TS)
	})
	return out
}
