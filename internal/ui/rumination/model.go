// Package rumination is the Bubble Tea front end for the Rumination
// Breaker journal.
package rumination

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jasonroy7dct/site/internal/agent"
	"github.com/jasonroy7dct/site/internal/journal"
	"github.com/jasonroy7dct/site/internal/logging"
)

// TopMemories is how many similar entries go along with an analysis.
const TopMemories = 3

// DefaultExportFile is where export and import read and write.
const DefaultExportFile = "rumination_history.json"

// Analyzer runs one analysis. *agent.Client implements it.
type Analyzer interface {
	Analyze(ctx context.Context, req agent.Request) (*agent.Result, error)
	Remaining() time.Duration
}

type focus int

const (
	focusEditor focus = iota
	focusHistory
	focusSearch
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

type confirmAction int

const (
	confirmNone confirmAction = iota
	confirmWipe
	confirmDeleteSelected
	confirmDeleteFiltered
)

// analyzedMsg carries the outcome of one analysis call.
type analyzedMsg struct {
	text   string
	strict bool
	result *agent.Result
	err    error
}

// Options configures a Model. Store, Prefs and Analyzer are required.
type Options struct {
	Store      *journal.Store
	Prefs      *journal.Prefs
	Analyzer   Analyzer
	ExportPath string
	Now        func() time.Time
	// Copy writes text to the clipboard.
	Copy func(string) error
}

// Model is the journal screen.
type Model struct {
	store    *journal.Store
	prefs    *journal.Prefs
	analyzer Analyzer
	history  *journal.History

	editor  textarea.Model
	search  textinput.Model
	spinner spinner.Model
	styles  styles

	focus     focus
	analyzing bool
	result    *agent.Result
	memories  []agent.Memory
	insight   string
	saved     bool
	opened    *journal.Entry
	cursor    int
	confirm   confirmAction

	status     string
	statusKind statusKind

	exportPath string
	create     func(string) (io.WriteCloser, error)
	now        func() time.Time
	copy       func(string) error

	width  int
	height int
}

// New builds the journal screen with the editor focused and the saved
// draft restored.
func New(opts Options) *Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	cp := opts.Copy
	if cp == nil {
		cp = clipboard.WriteAll
	}
	exportPath := opts.ExportPath
	if exportPath == "" {
		exportPath = DefaultExportFile
	}

	ed := textarea.New()
	ed.Placeholder = "Paste the thought that keeps looping..."
	ed.CharLimit = agent.MaxTextRunes
	ed.ShowLineNumbers = false
	ed.SetWidth(76)
	ed.SetHeight(6)
	ed.SetValue(opts.Prefs.Draft())
	ed.Focus()

	search := textinput.New()
	search.Placeholder = "search text or summary"
	search.Prompt = "/ "
	search.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		store:      opts.Store,
		prefs:      opts.Prefs,
		analyzer:   opts.Analyzer,
		history:    journal.NewHistory(opts.Store, opts.Prefs.PageSize()),
		editor:     ed,
		search:     search,
		spinner:    sp,
		exportPath: exportPath,
		create:     createFile,
		now:        now,
		copy:       cp,
	}
	m.applyTheme()
	return m
}

func createFile(path string) (io.WriteCloser, error) { return os.Create(path) }

func (m *Model) applyTheme() {
	theme, ok := m.prefs.Theme()
	if !ok {
		theme = journal.DefaultTheme()
	}
	m.styles = newStyles(theme)
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))
}

// Init starts the cursor blink.
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages and returns the updated model and any commands.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(max(20, msg.Width-4))
		return m, nil

	case analyzedMsg:
		m.finishAnalysis(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.analyzing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.confirm != confirmNone {
			m.resolveConfirm(msg.String())
			return m, nil
		}
		switch m.focus {
		case focusEditor:
			return m, m.editorKey(msg)
		case focusSearch:
			return m, m.searchKey(msg)
		default:
			return m, m.historyKey(msg)
		}
	}
	return m, nil
}

func (m *Model) setStatus(kind statusKind, msg string) {
	m.status = msg
	m.statusKind = kind
}

// analyze starts an analysis of the editor text. Strict redo needs a
// previous result.
func (m *Model) analyze(strict bool) tea.Cmd {
	if m.analyzing {
		return nil
	}
	text := strings.TrimSpace(m.editor.Value())
	if text == "" {
		m.setStatus(statusWarn, "Paste something first.")
		return nil
	}
	if strict && m.result == nil {
		m.setStatus(statusWarn, "Run an analysis first.")
		return nil
	}
	if m.analyzer.Remaining() > 0 {
		m.setStatus(statusWarn, "Slow down, cooldown is active.")
		return nil
	}

	if !strict {
		m.prefs.SetLastRun(m.now())
	}
	m.memories = journal.Memories(text, m.store.Load(), m.prefs.SimMode(), TopMemories)
	m.analyzing = true
	if strict {
		m.setStatus(statusInfo, "Running (strict)...")
	} else {
		m.setStatus(statusInfo, "Calling agent...")
	}

	req := agent.Request{
		Text:     text,
		Memories: m.memories,
		Language: m.prefs.Language(),
		Strict:   strict,
	}
	analyzer := m.analyzer
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		res, err := analyzer.Analyze(context.Background(), req)
		return analyzedMsg{text: text, strict: strict, result: res, err: err}
	})
}

func (m *Model) finishAnalysis(msg analyzedMsg) {
	m.analyzing = false
	if msg.err != nil {
		logging.Warn("analysis failed", "strict", msg.strict, "error", msg.err)
		if !msg.strict {
			m.result = nil
			m.insight = ""
		}
		m.setStatus(statusError, "Error: "+msg.err.Error())
		return
	}

	m.result = msg.result
	m.opened = nil
	m.insight = journal.Insights(m.store.Load(), string(msg.result.Pattern)).String()
	if msg.strict {
		m.setStatus(statusOK, "Strict redo complete.")
		return
	}
	m.saved = false
	m.setStatus(statusOK, "Analysis ready.")
}

// save stores the current result once.
func (m *Model) save(done bool) {
	text := strings.TrimSpace(m.editor.Value())
	if text == "" || m.result == nil || m.saved {
		return
	}
	m.store.Create(journal.BuildEntry(text, m.result, done, m.now()))
	m.saved = true
	m.history.Refresh()
	if done {
		m.setStatus(statusOK, "Saved and marked done.")
	} else {
		m.setStatus(statusOK, "Saved locally.")
	}
}

func (m *Model) clear() {
	m.editor.Reset()
	m.prefs.SetDraft("")
	m.result = nil
	m.memories = nil
	m.insight = ""
	m.saved = false
	m.setStatus(statusOK, "Cleared.")
}

func (m *Model) insertChip(i int) {
	if i < 0 || i >= len(journal.Chips) {
		return
	}
	chip := journal.Chips[i]
	m.editor.SetValue(chip.Text)
	m.prefs.SetDraft(chip.Text)
	if chip.Key == "blank" {
		m.setStatus(statusOK, "Cleared.")
	} else {
		m.setStatus(statusOK, "Template inserted.")
	}
}

// Result returns the analysis on screen (for testing).
func (m *Model) Result() *agent.Result { return m.result }

// Status returns the status line text (for testing).
func (m *Model) Status() string { return m.status }

// History returns the history view state (for testing).
func (m *Model) History() *journal.History { return m.history }

// Editor returns the editor text (for testing).
func (m *Model) Editor() string { return m.editor.Value() }
