// Package journal keeps the Rumination Breaker history on a kv.Slots
// backend.
//
// The whole collection lives in one slot and is replaced on every write.
// Callers only ever see copies; mutations go back through Store.
package journal

import (
	"time"

	"github.com/jasonroy7dct/site/internal/agent"
)

// Version is stamped on entries built by this package.
const Version = "1.0.4"

// UnknownPattern marks entries saved without a recognised pattern.
const UnknownPattern = "unknown"

// Entry is one saved analysis.
type Entry struct {
	ID               string        `json:"id"`
	TS               time.Time     `json:"ts"`
	Text             string        `json:"text"`
	Pattern          string        `json:"pattern"`
	Name             string        `json:"name"`
	Summary          string        `json:"summary"`
	Evidence         []string      `json:"evidence"`
	OneAction        *agent.Action `json:"one_action"`
	Reframe          string        `json:"reframe"`
	FollowupQuestion string        `json:"followup_question"`
	Tags             []string      `json:"tags,omitempty"`
	Confidence       *float64      `json:"confidence,omitempty"`
	DoneTS           *time.Time    `json:"done_ts"`
	Pinned           bool          `json:"pinned"`
	Version          string        `json:"version,omitempty"`
}

// Done reports whether the entry has been marked done.
func (e Entry) Done() bool { return e.DoneTS != nil }

// Title is the label shown in lists.
func (e Entry) Title() string {
	switch {
	case e.Name != "":
		return e.Name
	case e.Pattern != "":
		return e.Pattern
	}
	return "entry"
}

// Snippet is the start of the text shown under the title.
func (e Entry) Snippet() string {
	r := []rune(e.Text)
	if len(r) <= 160 {
		return e.Text
	}
	return string(r[:160]) + "…"
}

// Meta is the detail line: "date · pattern", then done and pinned flags.
func (e Entry) Meta() string {
	pattern := e.Pattern
	if pattern == "" {
		pattern = UnknownPattern
	}
	s := FormatDate(e.TS.Local()) + " · " + pattern
	if e.Done() {
		s += " · done"
	}
	if e.Pinned {
		s += " · pinned"
	}
	return s
}

// Memory adapts the entry for the analysis request.
func (e Entry) Memory(score float64) agent.Memory {
	summary := e.Summary
	if summary == "" {
		summary = "(no summary yet)"
	}
	pattern := e.Pattern
	if pattern == "" {
		pattern = UnknownPattern
	}
	return agent.Memory{
		TS:        e.TS.UTC().Format(time.RFC3339),
		Summary:   summary,
		Pattern:   pattern,
		OneAction: e.OneAction,
		Score:     score,
	}
}

func (e Entry) clone() Entry {
	c := e
	c.Evidence = copyStrings(e.Evidence)
	c.Tags = copyStrings(e.Tags)
	if e.OneAction != nil {
		a := *e.OneAction
		c.OneAction = &a
	}
	if e.Confidence != nil {
		v := *e.Confidence
		c.Confidence = &v
	}
	if e.DoneTS != nil {
		t := *e.DoneTS
		c.DoneTS = &t
	}
	return c
}

func cloneAll(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = e.clone()
	}
	return out
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}
