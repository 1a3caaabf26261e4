package rumination

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jasonroy7dct/site/internal/agent"
	"github.com/jasonroy7dct/site/internal/journal"
	"github.com/jasonroy7dct/site/internal/kv"
	"github.com/jasonroy7dct/site/internal/similarity"
)

var testNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

type fakeAnalyzer struct {
	result    *agent.Result
	err       error
	remaining time.Duration
	requests  []agent.Request
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, req agent.Request) (*agent.Result, error) {
	f.requests = append(f.requests, req)
	return f.result, f.err
}

func (f *fakeAnalyzer) Remaining() time.Duration { return f.remaining }

func sampleResult() *agent.Result {
	return &agent.Result{
		Pattern:          agent.Comparison,
		Name:             "Comparison loop",
		Language:         "en",
		Evidence:         []string{"everyone else is ahead"},
		OneAction:        agent.Action{Task: "List 3 controllables", TimeboxMin: 15, DefinitionOfDone: "3 lines"},
		Reframe:          "Their timeline is not yours.",
		FollowupQuestion: "Which one first?",
		Confidence:       0.8,
	}
}

type fixture struct {
	m        *Model
	store    *journal.Store
	prefs    *journal.Prefs
	analyzer *fakeAnalyzer
	copied   []string
}

func newFixture(t *testing.T, draft string) *fixture {
	t.Helper()
	local, session := kv.NewMemory(0), kv.NewMemory(0)
	store := journal.NewStore(local)
	store.SetClock(func() time.Time { return testNow })
	prefs := journal.NewPrefs(local, session)
	if draft != "" {
		prefs.SetDraft(draft)
	}
	f := &fixture{store: store, prefs: prefs, analyzer: &fakeAnalyzer{result: sampleResult()}}
	f.m = New(Options{
		Store:      store,
		Prefs:      prefs,
		Analyzer:   f.analyzer,
		ExportPath: filepath.Join(t.TempDir(), "history.json"),
		Now:        func() time.Time { return testNow },
		Copy: func(s string) error {
			f.copied = append(f.copied, s)
			return nil
		},
	})
	return f
}

func (f *fixture) seed(n int) {
	for i := 0; i < n; i++ {
		f.store.Create(journal.Entry{
			ID:      fmt.Sprintf("e%02d", i),
			TS:      testNow.Add(time.Duration(i-n) * time.Hour),
			Text:    fmt.Sprintf("entry number %d", i),
			Pattern: string(agent.Comparison),
			Summary: fmt.Sprintf("summary %d", i),
		})
	}
	f.m.History().Refresh()
}

func keyMsg(k string) tea.KeyMsg {
	types := map[string]tea.KeyType{
		"enter":  tea.KeyEnter,
		"esc":    tea.KeyEsc,
		"tab":    tea.KeyTab,
		"down":   tea.KeyDown,
		"ctrl+r": tea.KeyCtrlR,
		"ctrl+g": tea.KeyCtrlG,
		"ctrl+s": tea.KeyCtrlS,
		"ctrl+o": tea.KeyCtrlO,
		"ctrl+l": tea.KeyCtrlL,
		"f1":     tea.KeyF1,
		"f5":     tea.KeyF5,
	}
	if k == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	if t, ok := types[k]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends keys and delivers any analysis result they started.
func (f *fixture) press(keys ...string) {
	for _, k := range keys {
		_, cmd := f.m.Update(keyMsg(k))
		f.deliver(cmd)
	}
}

func (f *fixture) deliver(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			f.deliver(c)
		}
	case analyzedMsg:
		f.m.Update(msg)
	}
}

func TestDraftRestoredAndPersisted(t *testing.T) {
	f := newFixture(t, "hello")
	if got := f.m.Editor(); got != "hello" {
		t.Fatalf("editor = %q, want restored draft", got)
	}
	f.press("!")
	if got := f.prefs.Draft(); got != "hello!" {
		t.Errorf("draft = %q, want hello!", got)
	}
	f.press("ctrl+l")
	if f.m.Editor() != "" || f.prefs.Draft() != "" {
		t.Error("clear should empty editor and draft")
	}
}

func TestAnalyzeSendsMemoriesAndSaves(t *testing.T) {
	f := newFixture(t, "entry number 3 again")
	f.seed(5)

	f.press("ctrl+r")
	if len(f.analyzer.requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(f.analyzer.requests))
	}
	req := f.analyzer.requests[0]
	if req.Strict || req.Language != "auto" {
		t.Errorf("request = %+v", req)
	}
	if len(req.Memories) == 0 || len(req.Memories) > TopMemories {
		t.Errorf("memories = %d, want 1..%d", len(req.Memories), TopMemories)
	}
	if f.m.Result() == nil {
		t.Fatal("result not shown")
	}
	if last, ok := f.prefs.LastRun(); !ok || !last.Equal(testNow) {
		t.Errorf("last run = %v %v", last, ok)
	}
	if !strings.HasPrefix(f.m.insight, "This pattern has appeared 5 time(s)") {
		t.Errorf("insight = %q", f.m.insight)
	}
	if !strings.Contains(f.m.View(), "Comparison loop") {
		t.Error("result missing from view")
	}

	f.press("ctrl+s", "ctrl+s")
	entries := f.store.Load()
	if len(entries) != 6 {
		t.Fatalf("entries = %d, want 6 (saved once)", len(entries))
	}
	saved := entries[len(entries)-1]
	if saved.Text != "entry number 3 again" || saved.Done() {
		t.Errorf("saved entry = %+v", saved)
	}
	if saved.Summary != "Comparison loop · List 3 controllables" {
		t.Errorf("summary = %q", saved.Summary)
	}
}

func TestSaveDone(t *testing.T) {
	f := newFixture(t, "loop")
	f.press("ctrl+r", "ctrl+o")
	entries := f.store.Load()
	if len(entries) != 1 || !entries[0].Done() {
		t.Fatalf("entries = %+v, want one done entry", entries)
	}
}

func TestAnalyzeGuards(t *testing.T) {
	f := newFixture(t, "")
	f.press("ctrl+r")
	if len(f.analyzer.requests) != 0 || !strings.Contains(f.m.Status(), "Paste something first") {
		t.Errorf("empty text: requests %d status %q", len(f.analyzer.requests), f.m.Status())
	}

	f = newFixture(t, "loop")
	f.press("ctrl+g")
	if len(f.analyzer.requests) != 0 {
		t.Error("strict redo ran without a result")
	}

	f.analyzer.remaining = time.Second
	f.press("ctrl+r")
	if len(f.analyzer.requests) != 0 || !strings.Contains(f.m.Status(), "cooldown") {
		t.Errorf("cooldown: requests %d status %q", len(f.analyzer.requests), f.m.Status())
	}
}

func TestStrictRedo(t *testing.T) {
	f := newFixture(t, "loop")
	f.press("ctrl+r")

	f.analyzer.err = errors.New("agent: HTTP 502: bad gateway")
	f.press("ctrl+g")
	if !f.analyzer.requests[1].Strict {
		t.Error("redo should be strict")
	}
	if f.m.Result() == nil {
		t.Error("failed strict redo should keep the previous result")
	}
	if !strings.HasPrefix(f.m.Status(), "Error: ") {
		t.Errorf("status = %q", f.m.Status())
	}

	f.press("ctrl+r")
	if f.m.Result() != nil {
		t.Error("failed analysis should clear the result")
	}
}

func TestChips(t *testing.T) {
	f := newFixture(t, "")
	f.press("f1")
	if got := f.m.Editor(); got != journal.Chips[0].Text {
		t.Errorf("editor = %q", got)
	}
	if f.prefs.Draft() != journal.Chips[0].Text {
		t.Error("chip text should become the draft")
	}
	f.press("f5")
	if f.m.Editor() != "" || f.m.Status() != "Cleared." {
		t.Errorf("blank chip: editor %q status %q", f.m.Editor(), f.m.Status())
	}
}

func TestHistoryPagingAndSelection(t *testing.T) {
	f := newFixture(t, "")
	f.seed(12)
	f.press("tab")

	h := f.m.History()
	if len(h.Visible()) != 10 {
		t.Fatalf("visible = %d, want 10", len(h.Visible()))
	}
	f.press("]")
	if h.Pager().Page != 2 || len(h.Visible()) != 2 {
		t.Errorf("page 2: page %d visible %d", h.Pager().Page, len(h.Visible()))
	}
	f.press("[", "down", " ")
	if h.SelectedCount() != 1 {
		t.Fatalf("selected = %d, want 1", h.SelectedCount())
	}

	f.press("X", "n")
	if len(f.store.Load()) != 12 {
		t.Error("declined delete removed entries")
	}
	f.press("X", "y")
	if len(f.store.Load()) != 11 || h.SelectedCount() != 0 {
		t.Errorf("after delete: %d entries, %d selected", len(f.store.Load()), h.SelectedCount())
	}
}

func TestHistoryPinAndDone(t *testing.T) {
	f := newFixture(t, "")
	f.seed(3)
	f.press("tab", "down", "p")

	first := f.m.History().Visible()[0]
	if !first.Pinned {
		t.Errorf("pinned entry should sort first, got %+v", first)
	}
	f.press("k", "d")
	got, err := f.store.Get(first.ID)
	if err != nil || !got.Done() {
		t.Errorf("done toggle: %+v %v", got, err)
	}
}

func TestSearchAndFilters(t *testing.T) {
	f := newFixture(t, "")
	f.seed(12)
	f.press("tab", "/")
	f.press(strings.Split("number 1", "")...)
	f.press("enter")

	h := f.m.History()
	if h.Total() != 3 { // 1, 10, 11
		t.Errorf("search total = %d, want 3", h.Total())
	}

	f.press("s")
	if h.Query().Status != journal.StatusPinned || h.Total() != 0 {
		t.Errorf("status filter: %s total %d", h.Query().Status, h.Total())
	}

	f.press("D")
	if !strings.Contains(f.m.Status(), "No matching") {
		t.Errorf("status = %q", f.m.Status())
	}
}

func TestPrefsCycle(t *testing.T) {
	f := newFixture(t, "")
	f.press("tab", "z", "M", "L")

	if f.prefs.PageSize() != 20 || f.m.History().Pager().Size != 20 {
		t.Errorf("page size = %d", f.prefs.PageSize())
	}
	if f.prefs.SimMode() != similarity.CJK {
		t.Errorf("mode = %s", f.prefs.SimMode())
	}
	if f.prefs.Language() != "zh-Hant" {
		t.Errorf("language = %s", f.prefs.Language())
	}
}

func TestExportWipeImport(t *testing.T) {
	f := newFixture(t, "")
	f.press("tab", "e")
	if !strings.Contains(f.m.Status(), "No entries to export") {
		t.Errorf("status = %q", f.m.Status())
	}

	f.seed(4)
	f.press("e")
	if _, err := os.Stat(f.m.exportPath); err != nil {
		t.Fatalf("export file: %v", err)
	}

	f.press("W", "y")
	if len(f.store.Load()) != 0 {
		t.Fatal("wipe left entries")
	}

	f.press("i")
	if f.m.Status() != "Imported 4." {
		t.Errorf("status = %q", f.m.Status())
	}
	if f.m.History().Total() != 4 {
		t.Errorf("history total = %d", f.m.History().Total())
	}
}

type failingCloser struct {
	strings.Builder
}

func (failingCloser) Close() error { return errors.New("disk full") }

func TestExportReportsCloseError(t *testing.T) {
	f := newFixture(t, "")
	f.seed(2)
	f.m.create = func(string) (io.WriteCloser, error) { return &failingCloser{}, nil }

	f.press("tab", "e")
	if f.m.Status() != "Export failed: disk full" {
		t.Errorf("status = %q", f.m.Status())
	}
	if f.m.statusKind != statusError {
		t.Errorf("status kind = %v, want error", f.m.statusKind)
	}
}

func TestCopy(t *testing.T) {
	f := newFixture(t, "loop")
	f.press("ctrl+r", "tab", "y", "Y")

	if len(f.copied) != 2 {
		t.Fatalf("copied = %d, want 2", len(f.copied))
	}
	if f.copied[0] != "List 3 controllables\nTimebox: 15 min\nDone when: 3 lines" {
		t.Errorf("action copy = %q", f.copied[0])
	}
	if f.copied[1] != "Which one first?" {
		t.Errorf("follow-up copy = %q", f.copied[1])
	}
}
