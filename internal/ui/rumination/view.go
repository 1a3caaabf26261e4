package rumination

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/jasonroy7dct/site/internal/agent"
	"github.com/jasonroy7dct/site/internal/journal"
)

// View renders the screen.
func (m *Model) View() string {
	sections := []string{
		m.renderHeader(),
		m.renderEditor(),
	}
	if len(m.memories) > 0 {
		sections = append(sections, m.renderMemories())
	}
	if out := m.renderOutput(); out != "" {
		sections = append(sections, out)
	}
	sections = append(sections, m.renderHistory(), m.renderStatus())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) pane(f focus) lipgloss.Style {
	st := m.styles.pane
	if m.focus == f || (f == focusHistory && m.focus == focusSearch) {
		st = m.styles.focused
	}
	if m.width > 0 {
		st = st.Width(m.width - 2)
	}
	return st
}

func (m *Model) renderHeader() string {
	lastRun, _ := m.prefs.LastRun()
	k := journal.ComputeKPIs(m.store.Load(), lastRun, m.now())
	kpis := fmt.Sprintf("Entries %d · Top pattern %s · Last run %s · Done today %d",
		k.Total, k.TopPattern, k.LastRun, k.DoneToday)
	return m.styles.title.Render("Rumination Breaker") + " " + m.styles.muted.Render(kpis)
}

func (m *Model) renderEditor() string {
	var b strings.Builder
	count := utf8.RuneCountInString(m.editor.Value())
	b.WriteString(m.styles.header.Render("What keeps looping?"))
	b.WriteString(m.styles.muted.Render(fmt.Sprintf("  %d/%d", count, agent.MaxTextRunes)))
	b.WriteString("\n")

	var chips []string
	for i, c := range journal.Chips {
		chips = append(chips, m.styles.chip.Render(fmt.Sprintf("F%d %s", i+1, c.Key)))
	}
	b.WriteString(strings.Join(chips, ""))
	b.WriteString("\n")
	b.WriteString(m.editor.View())
	b.WriteString("\n")
	b.WriteString(m.styles.muted.Render(fmt.Sprintf(
		"ctrl+r analyze · ctrl+g strict redo · ctrl+s save · ctrl+o save+done · ctrl+l clear · tab history   [%s · %s]",
		m.prefs.Language(), m.prefs.SimMode())))
	return m.pane(focusEditor).Render(b.String())
}

func (m *Model) renderMemories() string {
	var b strings.Builder
	b.WriteString(m.styles.header.Render("Similar past loops"))
	for _, mem := range m.memories {
		b.WriteString("\n")
		b.WriteString(m.styles.label.Render(fmt.Sprintf("%.2f", mem.Score)))
		b.WriteString(m.styles.muted.Render(" · " + mem.Pattern + " · "))
		b.WriteString(m.styles.text.Render(mem.Summary))
	}
	return m.styles.pane.Render(b.String())
}

func (m *Model) renderOutput() string {
	switch {
	case m.analyzing:
		return m.styles.pane.Render(m.spinner.View() + " " + m.status)
	case m.opened != nil:
		return m.styles.pane.Render(m.renderEntry(*m.opened))
	case m.result != nil:
		return m.styles.pane.Render(m.renderResult(m.result))
	}
	return ""
}

func (m *Model) field(label, value string) string {
	return m.styles.label.Render(label+": ") + m.styles.text.Render(value)
}

func (m *Model) renderAction(a agent.Action) []string {
	return []string{
		m.field("One action", fmt.Sprintf("%s (%g min)", a.Task, a.TimeboxMin)),
		m.field("Done when", a.DefinitionOfDone),
	}
}

func (m *Model) renderResult(r *agent.Result) string {
	lines := []string{
		m.styles.header.Render(r.Name) + m.styles.muted.Render(fmt.Sprintf("  %s · confidence %.2f", r.Pattern, r.Confidence)),
	}
	for _, ev := range r.Evidence {
		lines = append(lines, m.styles.muted.Render("• "+ev))
	}
	lines = append(lines, m.renderAction(r.OneAction)...)
	lines = append(lines,
		m.field("Reframe", r.Reframe),
		m.field("Follow-up", r.FollowupQuestion),
	)
	if r.Meta != nil && r.Meta.Mode != "live" {
		lines = append(lines, m.styles.muted.Render(fmt.Sprintf("mode %s (%s)", r.Meta.Mode, r.Meta.FallbackReason)))
	}
	if m.insight != "" {
		lines = append(lines, m.styles.pinned.Render(m.insight))
	}
	if !m.saved {
		lines = append(lines, m.styles.muted.Render("y copy action · Y copy follow-up · J copy JSON (from history)"))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderEntry(e journal.Entry) string {
	lines := []string{
		m.styles.header.Render(e.Title()) + m.styles.muted.Render("  "+e.Meta()),
		m.styles.text.Render(e.Text),
	}
	if e.Summary != "" {
		lines = append(lines, m.field("Summary", e.Summary))
	}
	if e.OneAction != nil {
		lines = append(lines, m.renderAction(*e.OneAction)...)
	}
	if e.Reframe != "" {
		lines = append(lines, m.field("Reframe", e.Reframe))
	}
	if e.FollowupQuestion != "" {
		lines = append(lines, m.field("Follow-up", e.FollowupQuestion))
	}
	lines = append(lines, m.styles.muted.Render("esc close · x delete · y/Y/J copy"))
	return strings.Join(lines, "\n")
}

func (m *Model) renderHistory() string {
	var b strings.Builder
	q := m.history.Query()
	pattern := q.Pattern
	if pattern == "" {
		pattern = journal.PatternAll
	}
	status := q.Status
	if status == "" {
		status = journal.StatusAll
	}
	order := q.Order
	if order == "" {
		order = journal.Newest
	}

	b.WriteString(m.styles.header.Render("History"))
	b.WriteString(m.styles.muted.Render(fmt.Sprintf("  pattern %s · status %s · order %s · %d per page",
		pattern, status, order, m.history.Pager().Size)))
	b.WriteString("\n")
	if m.focus == focusSearch || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}

	visible := m.history.Visible()
	if len(visible) == 0 {
		b.WriteString(m.styles.muted.Render("No entries yet."))
		b.WriteString("\n")
	}
	for i, e := range visible {
		mark := "[ ]"
		if m.history.IsSelected(e.ID) {
			mark = "[x]"
		}
		title := e.Title()
		if e.Pinned {
			title = "★ " + title
		}
		row := fmt.Sprintf("%s %s", mark, title)
		if m.focus == focusHistory && i == m.cursor {
			b.WriteString(m.styles.selected.Render(row))
		} else if e.Pinned {
			b.WriteString(m.styles.pinned.Render(row))
		} else {
			b.WriteString(m.styles.text.Render(row))
		}
		b.WriteString(m.styles.muted.Render("  " + e.Meta()))
		b.WriteString("\n")
		b.WriteString(m.styles.muted.Render("    " + e.Snippet()))
		b.WriteString("\n")
	}

	footer := m.history.PageLabel()
	if n := m.history.SelectedCount(); n > 0 {
		footer += fmt.Sprintf(" · %d selected", n)
	}
	b.WriteString(m.styles.muted.Render(footer))
	b.WriteString("\n")
	b.WriteString(m.styles.muted.Render(
		"j/k move · [ ] page · / search · f pattern · s status · o order · z size · space select · a page · c clear · p pin · d done · x delete · X selected · D filtered · W wipe · e export · i import · M mode · L lang"))
	return m.pane(focusHistory).Render(b.String())
}

func (m *Model) renderStatus() string {
	if m.status == "" || m.analyzing {
		return ""
	}
	return m.styles.status[m.statusKind].Render(m.status)
}
