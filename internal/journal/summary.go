package journal

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jasonroy7dct/site/internal/agent"
	"github.com/jasonroy7dct/site/internal/similarity"
)

const maxSummaryRunes = 140

// BuildSummary condenses a result to "name · task", falling back to
// whichever exists, then to the reframe.
func BuildSummary(r *agent.Result) string {
	if r == nil {
		return ""
	}
	name := r.Name
	task := r.OneAction.Task
	var base string
	switch {
	case name != "" && task != "":
		base = name + " · " + task
	case name != "":
		base = name
	case task != "":
		base = task
	default:
		base = r.Reframe
	}
	s := strings.Join(strings.Fields(base), " ")
	if rs := []rune(s); len(rs) > maxSummaryRunes {
		s = string(rs[:maxSummaryRunes-3]) + "…"
	}
	return s
}

// NewID returns a fresh entry id, "rb_<random hex>_<unix ms hex>".
func NewID(now time.Time) string {
	u := uuid.New()
	return "rb_" + strings.ReplaceAll(u.String(), "-", "")[:12] + "_" + strconv.FormatInt(now.UnixMilli(), 16)
}

// BuildEntry turns a successful analysis of text into an entry ready for
// Store.Create.
func BuildEntry(text string, r *agent.Result, done bool, now time.Time) Entry {
	e := Entry{
		ID:       NewID(now),
		TS:       now,
		Text:     text,
		Pattern:  UnknownPattern,
		Evidence: []string{},
		Version:  Version,
	}
	if r == nil {
		return e
	}
	if r.Pattern != "" {
		e.Pattern = string(r.Pattern)
	}
	e.Name = r.Name
	e.Summary = BuildSummary(r)
	if r.Evidence != nil {
		e.Evidence = copyStrings(r.Evidence)
	}
	action := r.OneAction
	e.OneAction = &action
	e.Reframe = r.Reframe
	e.FollowupQuestion = r.FollowupQuestion
	e.Tags = copyStrings(r.Tags)
	conf := r.Confidence
	e.Confidence = &conf
	if done {
		t := now
		e.DoneTS = &t
	}
	return e
}

// Memories returns up to k past entries most similar to text, as request
// memories.
func Memories(text string, entries []Entry, mode similarity.Mode, k int) []agent.Memory {
	top := similarity.TopSimilar(similarity.New(mode), text, entries, func(e Entry) string { return e.Text }, k)
	out := make([]agent.Memory, 0, len(top))
	for _, s := range top {
		out = append(out, s.Item.Memory(s.Score))
	}
	return out
}

// Chip is a prefilled draft for an area of life.
type Chip struct {
	Key  string
	Text string
}

// Chips lists the draft templates in display order.
var Chips = []Chip{
	{"career", "我一直在職涯上反覆想：下一步到底要怎麼選，會不會選錯，結果越想越卡。"},
	{"money", "我一直在金錢上反覆想：未來會不會不夠，忍不住跟別人比較，焦慮停不下來。"},
	{"relationship", "我一直在關係上反覆想：對方那句話到底什麼意思，我該怎麼回應，越想越亂。"},
	{"health", "我一直在健康上反覆想：這些症狀是不是很嚴重，最壞情況是什麼，我有沒有做夠。"},
	{"blank", ""},
}

// ChipText returns the template for key and whether it exists.
func ChipText(key string) (string, bool) {
	for _, c := range Chips {
		if c.Key == key {
			return c.Text, true
		}
	}
	return "", false
}
