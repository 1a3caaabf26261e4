package journal

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// None is shown for an empty KPI.
const None = "—"

// KPIs are the numbers at the top of the journal.
type KPIs struct {
	Total      int
	TopPattern string
	LastRun    string
	DoneToday  int
}

// ComputeKPIs summarises entries as of now. lastRun may be zero.
func ComputeKPIs(entries []Entry, lastRun time.Time, now time.Time) KPIs {
	k := KPIs{
		Total:      len(entries),
		TopPattern: TopPattern(entries),
		LastRun:    None,
		DoneToday:  DoneToday(entries, now),
	}
	if !lastRun.IsZero() {
		k.LastRun = FormatDate(lastRun.In(now.Location()))
	}
	return k
}

// TopPattern returns the most frequent known pattern as "pattern (count)".
// The first pattern to reach the highest count wins.
func TopPattern(entries []Entry) string {
	counts := make(map[string]int)
	var order []string
	for _, e := range entries {
		p := e.Pattern
		if p == "" || p == UnknownPattern {
			continue
		}
		if counts[p] == 0 {
			order = append(order, p)
		}
		counts[p]++
	}
	best, bestN := "", 0
	for _, p := range order {
		if counts[p] > bestN {
			best, bestN = p, counts[p]
		}
	}
	if best == "" {
		return None
	}
	return fmt.Sprintf("%s (%d)", best, bestN)
}

// DoneToday counts entries marked done on now's calendar day, in now's
// location.
func DoneToday(entries []Entry, now time.Time) int {
	y, m, d := now.Date()
	n := 0
	for _, e := range entries {
		if e.DoneTS == nil {
			continue
		}
		ey, em, ed := e.DoneTS.In(now.Location()).Date()
		if ey == y && em == m && ed == d {
			n++
		}
	}
	return n
}

// Insight describes how often a pattern has come up.
type Insight struct {
	Pattern string
	Count   int
	Recent  []time.Time
}

// Insights counts entries with pattern and keeps the three newest
// timestamps.
func Insights(entries []Entry, pattern string) Insight {
	in := Insight{Pattern: pattern}
	if pattern == "" || pattern == UnknownPattern {
		return in
	}
	for _, e := range entries {
		if e.Pattern == pattern {
			in.Count++
			in.Recent = append(in.Recent, e.TS)
		}
	}
	sort.Slice(in.Recent, func(i, j int) bool { return in.Recent[i].After(in.Recent[j]) })
	if len(in.Recent) > 3 {
		in.Recent = in.Recent[:3]
	}
	return in
}

// String renders the insight line, or "" when the pattern is new.
func (in Insight) String() string {
	if in.Count == 0 {
		return ""
	}
	dates := make([]string, len(in.Recent))
	for i, t := range in.Recent {
		dates[i] = FormatDate(t.Local())
	}
	return fmt.Sprintf("This pattern has appeared %d time(s). Recent: %s", in.Count, strings.Join(dates, ", "))
}

// FormatDate renders t for lists and KPIs.
func FormatDate(t time.Time) string {
	return t.Format("2006/01/02 15:04")
}
