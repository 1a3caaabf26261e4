package rumination

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jasonroy7dct/site/internal/agent"
	"github.com/jasonroy7dct/site/internal/journal"
	"github.com/jasonroy7dct/site/internal/similarity"
)

var chipKeys = map[string]int{"f1": 0, "f2": 1, "f3": 2, "f4": 3, "f5": 4}

func (m *Model) editorKey(msg tea.KeyMsg) tea.Cmd {
	switch k := msg.String(); k {
	case "ctrl+r":
		return m.analyze(false)
	case "ctrl+g":
		return m.analyze(true)
	case "ctrl+s":
		m.save(false)
		return nil
	case "ctrl+o":
		m.save(true)
		return nil
	case "ctrl+l":
		m.clear()
		return nil
	case "tab", "esc":
		m.focusOn(focusHistory)
		return nil
	default:
		if i, ok := chipKeys[k]; ok {
			m.insertChip(i)
			return nil
		}
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if v := m.editor.Value(); v != before {
		m.prefs.SetDraft(v)
	}
	return cmd
}

func (m *Model) searchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "esc", "tab":
		m.focusOn(focusHistory)
		return nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	q := m.history.Query()
	if q.Text != m.search.Value() {
		q.Text = m.search.Value()
		m.history.SetQuery(q)
		m.cursor = 0
	}
	return cmd
}

func (m *Model) historyKey(msg tea.KeyMsg) tea.Cmd {
	visible := m.history.Visible()
	current := func() (journal.Entry, bool) {
		if m.cursor < 0 || m.cursor >= len(visible) {
			return journal.Entry{}, false
		}
		return visible[m.cursor], true
	}

	switch msg.String() {
	case "q":
		return tea.Quit
	case "tab":
		m.focusOn(focusEditor)
	case "/":
		m.focusOn(focusSearch)
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "]", "right":
		m.history.NextPage()
		m.cursor = 0
	case "[", "left":
		m.history.PrevPage()
		m.cursor = 0
	case "enter":
		if e, ok := current(); ok {
			m.opened = &e
		}
	case "esc":
		m.opened = nil
	case " ":
		if e, ok := current(); ok {
			m.history.Toggle(e.ID)
		}
	case "a":
		m.history.SelectPage()
	case "c":
		m.history.ClearSelection()
	case "p":
		if e, ok := current(); ok {
			m.reportErr(m.history.TogglePin(e.ID))
		}
	case "d":
		if e, ok := current(); ok {
			m.reportErr(m.history.ToggleDone(e.ID))
		}
	case "x":
		if e, ok := current(); ok && m.history.Delete(e.ID) {
			if m.opened != nil && m.opened.ID == e.ID {
				m.opened = nil
			}
			m.setStatus(statusOK, "Deleted.")
		}
	case "X":
		if m.history.SelectedCount() == 0 {
			m.setStatus(statusWarn, "Nothing selected.")
			break
		}
		m.ask(confirmDeleteSelected, fmt.Sprintf("Delete %d selected entries? (y/n)", m.history.SelectedCount()))
	case "D":
		if m.history.Total() == 0 {
			m.setStatus(statusWarn, "No matching entries.")
			break
		}
		m.ask(confirmDeleteFiltered, fmt.Sprintf("Delete all %d filtered entries? (y/n)", m.history.Total()))
	case "W":
		m.ask(confirmWipe, "Wipe all local history? This cannot be undone. (y/n)")
	case "f":
		m.cyclePattern()
	case "s":
		m.cycleStatus()
	case "o":
		q := m.history.Query()
		if q.Order == journal.Oldest {
			q.Order = journal.Newest
		} else {
			q.Order = journal.Oldest
		}
		m.history.SetQuery(q)
		m.cursor = 0
	case "z":
		m.cyclePageSize()
	case "M":
		m.cycleSimMode()
	case "L":
		m.cycleLanguage()
	case "e":
		m.export()
	case "i":
		m.importFile()
	case "y":
		m.copyAction()
	case "Y":
		if r := m.result; r != nil {
			m.copyText(r.FollowupQuestion, "Follow-up copied.")
		} else if m.opened != nil {
			m.copyText(m.opened.FollowupQuestion, "Follow-up copied.")
		}
	case "J":
		m.copyJSON()
	}
	m.clampCursor()
	return nil
}

func (m *Model) focusOn(f focus) {
	m.focus = f
	m.editor.Blur()
	m.search.Blur()
	switch f {
	case focusEditor:
		m.editor.Focus()
	case focusSearch:
		m.search.Focus()
	}
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.history.Visible())
	m.cursor = min(max(m.cursor, 0), max(n-1, 0))
}

func (m *Model) reportErr(err error) {
	if err != nil {
		m.setStatus(statusError, err.Error())
	}
}

func (m *Model) ask(action confirmAction, prompt string) {
	m.confirm = action
	m.setStatus(statusWarn, prompt)
}

// resolveConfirm runs the pending destructive action on "y" and cancels it
// on any other key.
func (m *Model) resolveConfirm(key string) {
	action := m.confirm
	m.confirm = confirmNone
	if key != "y" && key != "Y" {
		m.setStatus(statusInfo, "Cancelled.")
		return
	}

	switch action {
	case confirmDeleteSelected:
		n := m.history.DeleteSelected()
		m.setStatus(statusOK, fmt.Sprintf("Deleted %d entries.", n))
	case confirmDeleteFiltered:
		n := m.history.DeleteFiltered()
		m.setStatus(statusOK, fmt.Sprintf("Deleted %d entries.", n))
	case confirmWipe:
		if err := m.history.Wipe(); err != nil {
			m.setStatus(statusError, "Wipe failed: "+err.Error())
			return
		}
		m.result = nil
		m.memories = nil
		m.insight = ""
		m.setStatus(statusOK, "Local history wiped.")
	}
	m.opened = nil
	m.cursor = 0
}

func (m *Model) cyclePattern() {
	options := []string{journal.PatternAll}
	for _, p := range agent.Patterns {
		options = append(options, string(p))
	}
	q := m.history.Query()
	q.Pattern = next(options, q.Pattern)
	m.history.SetQuery(q)
	m.cursor = 0
}

func (m *Model) cycleStatus() {
	q := m.history.Query()
	options := make([]string, len(journal.Statuses))
	for i, s := range journal.Statuses {
		options[i] = string(s)
	}
	q.Status = journal.Status(next(options, string(q.Status)))
	m.history.SetQuery(q)
	m.cursor = 0
}

func (m *Model) cyclePageSize() {
	size := journal.PageSizes[0]
	for i, s := range journal.PageSizes {
		if s == m.history.Pager().Size {
			size = journal.PageSizes[(i+1)%len(journal.PageSizes)]
		}
	}
	m.history.SetPageSize(size)
	m.prefs.SetPageSize(size)
	m.cursor = 0
	m.setStatus(statusInfo, fmt.Sprintf("Page size %d.", size))
}

func (m *Model) cycleSimMode() {
	modes := []string{string(similarity.Mixed), string(similarity.CJK), string(similarity.Latin)}
	mode := similarity.Mode(next(modes, string(m.prefs.SimMode())))
	m.prefs.SetSimMode(mode)
	m.setStatus(statusInfo, "Similarity mode: "+string(mode)+".")
}

func (m *Model) cycleLanguage() {
	lang := next(journal.Languages, m.prefs.Language())
	m.prefs.SetLanguage(lang)
	m.setStatus(statusInfo, "Language: "+lang+".")
}

// next returns the option after cur, or the first when cur is unknown.
func next(options []string, cur string) string {
	for i, o := range options {
		if o == cur {
			return options[(i+1)%len(options)]
		}
	}
	if len(options) > 1 && (cur == "" || cur == options[0]) {
		return options[1]
	}
	return options[0]
}

func (m *Model) export() {
	if len(m.store.Load()) == 0 {
		m.setStatus(statusWarn, "No entries to export.")
		return
	}
	f, err := m.create(m.exportPath)
	if err != nil {
		m.setStatus(statusError, "Export failed: "+err.Error())
		return
	}
	err = m.store.ExportJSON(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if errors.Is(err, journal.ErrNothingToExport) {
			m.setStatus(statusWarn, "No entries to export.")
			return
		}
		m.setStatus(statusError, "Export failed: "+err.Error())
		return
	}
	m.setStatus(statusOK, "Exported to "+m.exportPath+".")
}

func (m *Model) importFile() {
	f, err := os.Open(m.exportPath)
	if err != nil {
		m.setStatus(statusError, "Import failed: "+err.Error())
		return
	}
	defer f.Close()
	n, err := m.store.ImportJSON(f)
	if err != nil {
		m.setStatus(statusError, "Import failed: "+err.Error())
		return
	}
	m.history.Refresh()
	m.setStatus(statusOK, fmt.Sprintf("Imported %d.", n))
}

func (m *Model) copyAction() {
	var task, done string
	var timebox float64
	switch {
	case m.result != nil:
		a := m.result.OneAction
		task, timebox, done = a.Task, a.TimeboxMin, a.DefinitionOfDone
	case m.opened != nil && m.opened.OneAction != nil:
		a := m.opened.OneAction
		task, timebox, done = a.Task, a.TimeboxMin, a.DefinitionOfDone
	default:
		m.setStatus(statusWarn, "Nothing to copy.")
		return
	}
	m.copyText(fmt.Sprintf("%s\nTimebox: %g min\nDone when: %s", task, timebox, done), "Action copied.")
}

func (m *Model) copyJSON() {
	var v any
	switch {
	case m.result != nil:
		v = m.result
	case m.opened != nil:
		v = m.opened
	default:
		m.setStatus(statusWarn, "Nothing to copy.")
		return
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		m.setStatus(statusError, err.Error())
		return
	}
	m.copyText(string(data), "JSON copied.")
}

func (m *Model) copyText(text, ok string) {
	if text == "" {
		m.setStatus(statusWarn, "Nothing to copy.")
		return
	}
	if err := m.copy(text); err != nil {
		m.setStatus(statusError, "Copy failed: "+err.Error())
		return
	}
	m.setStatus(statusOK, ok)
}
