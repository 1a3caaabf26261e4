package journal

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasonroy7dct/site/internal/agent"
	"github.com/jasonroy7dct/site/internal/similarity"
)

func sampleResult() *agent.Result {
	return &agent.Result{
		Pattern:          agent.Comparison,
		Name:             "Comparison loop",
		Evidence:         []string{"everyone got promoted"},
		OneAction:        agent.Action{Task: "List 3 controllables", TimeboxMin: 15, DefinitionOfDone: "3 lines"},
		Reframe:          "Their timeline is not yours.",
		FollowupQuestion: "Which one first?",
		Tags:             []string{"career"},
		Confidence:       0.8,
	}
}

func TestBuildSummary(t *testing.T) {
	r := sampleResult()
	assert.Equal(t, "Comparison loop · List 3 controllables", BuildSummary(r))

	r.OneAction.Task = ""
	assert.Equal(t, "Comparison loop", BuildSummary(r))

	r.Name = ""
	assert.Equal(t, "Their timeline is not yours.", BuildSummary(r))

	r.Reframe = "  spread \n\t out  "
	assert.Equal(t, "spread out", BuildSummary(r))

	r.Name = strings.Repeat("長", 200)
	s := BuildSummary(r)
	assert.Equal(t, maxSummaryRunes-2, len([]rune(s)))
	assert.True(t, strings.HasSuffix(s, "…"))

	assert.Equal(t, "", BuildSummary(nil))
}

func TestBuildEntry(t *testing.T) {
	now := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	e := BuildEntry("my loop", sampleResult(), true, now)

	assert.Regexp(t, regexp.MustCompile(`^rb_[0-9a-f]{12}_[0-9a-f]+$`), e.ID)
	assert.Equal(t, now, e.TS)
	assert.Equal(t, "comparison", e.Pattern)
	assert.Equal(t, "Comparison loop · List 3 controllables", e.Summary)
	require.NotNil(t, e.OneAction)
	assert.Equal(t, 15.0, e.OneAction.TimeboxMin)
	require.NotNil(t, e.DoneTS)
	assert.False(t, e.Pinned)
	assert.Equal(t, Version, e.Version)

	todo := BuildEntry("x", sampleResult(), false, now)
	assert.Nil(t, todo.DoneTS)
	assert.NotEqual(t, e.ID, todo.ID)

	bare := BuildEntry("x", &agent.Result{}, false, now)
	assert.Equal(t, UnknownPattern, bare.Pattern)
	assert.NotNil(t, bare.Evidence)
}

func TestMemories(t *testing.T) {
	entries := []Entry{
		{ID: "a", TS: t0, Text: "我一直在比較同事的升遷", Pattern: "comparison", Summary: "比較"},
		{ID: "b", TS: t0, Text: "weekend hiking plans"},
		{ID: "c", TS: t0, Text: "同事又升遷了我在比較"},
	}
	mems := Memories("同事升遷比較", entries, similarity.Mixed, 3)
	require.Len(t, mems, 2)

	// c shares 3 of 11 bigrams, a shares 3 of 12
	assert.InDelta(t, 3.0/11, mems[0].Score, 1e-9)
	assert.Equal(t, UnknownPattern, mems[0].Pattern)
	assert.Equal(t, "(no summary yet)", mems[0].Summary)
	assert.InDelta(t, 0.25, mems[1].Score, 1e-9)
	assert.Equal(t, "comparison", mems[1].Pattern)

	assert.Empty(t, Memories("同事升遷比較", entries, similarity.Latin, 3))
	assert.Len(t, Memories("同事升遷比較", entries, similarity.Mixed, 1), 1)
}

func TestChipText(t *testing.T) {
	text, ok := ChipText("career")
	require.True(t, ok)
	assert.Contains(t, text, "職涯")

	text, ok = ChipText("blank")
	assert.True(t, ok)
	assert.Empty(t, text)

	_, ok = ChipText("hobby")
	assert.False(t, ok)
	assert.Len(t, Chips, 5)
}
