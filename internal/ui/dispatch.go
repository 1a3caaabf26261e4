package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jasonroy7dct/site/internal/route"
)

// Component is the part of the screen that receives a key.
type Component string

const (
	CompApp    Component = "app"
	CompDrawer Component = "drawer"
	CompList   Component = "list"
	CompDetail Component = "detail"
)

// Action is what a key asks a component to do.
type Action string

const (
	ActQuit     Action = "quit"
	ActMenu     Action = "menu"
	ActGoto     Action = "goto"
	ActNextLink Action = "next_link"
	ActPrevLink Action = "prev_link"
	ActBack     Action = "back"
	ActForward  Action = "forward"
	ActUp       Action = "up"
	ActDown     Action = "down"
	ActOpen     Action = "open"
	ActClose    Action = "close"
)

// Binding keys the dispatch table.
type Binding struct {
	Component Component
	Action    Action
}

// Event is a key translated into a typed command.
type Event struct {
	Binding
	Key string
}

// Handler runs one event against the app.
type Handler func(a *App, ev Event) tea.Cmd

// keymap maps a key to an action per component. CompApp keys apply
// wherever the focused component has no binding of its own.
var keymap = map[Component]map[string]Action{
	CompApp: {
		"q":         ActQuit,
		"ctrl+c":    ActQuit,
		"m":         ActMenu,
		"1":         ActGoto,
		"2":         ActGoto,
		"3":         ActGoto,
		"4":         ActGoto,
		"tab":       ActNextLink,
		"shift+tab": ActPrevLink,
		"backspace": ActBack,
		"h":         ActBack,
		"l":         ActForward,
	},
	CompDrawer: {
		"j":     ActDown,
		"down":  ActDown,
		"k":     ActUp,
		"up":    ActUp,
		"enter": ActOpen,
		"esc":   ActClose,
		"m":     ActClose,
	},
	CompList: {
		"j":     ActDown,
		"down":  ActDown,
		"k":     ActUp,
		"up":    ActUp,
		"enter": ActOpen,
		" ":     ActOpen,
	},
	CompDetail: {
		"esc": ActBack,
		"b":   ActBack,
	},
}

// dispatch is the single table of UI behavior.
var dispatch = map[Binding]Handler{
	{CompApp, ActQuit}:     func(a *App, ev Event) tea.Cmd { return tea.Quit },
	{CompApp, ActMenu}:     func(a *App, ev Event) tea.Cmd { a.openDrawer(); return nil },
	{CompApp, ActGoto}:     (*App).gotoLink,
	{CompApp, ActNextLink}: func(a *App, ev Event) tea.Cmd { return a.stepLink(1) },
	{CompApp, ActPrevLink}: func(a *App, ev Event) tea.Cmd { return a.stepLink(-1) },
	{CompApp, ActBack}:     func(a *App, ev Event) tea.Cmd { return a.back() },
	{CompApp, ActForward}:  func(a *App, ev Event) tea.Cmd { return a.forward() },

	{CompDrawer, ActUp}:    func(a *App, ev Event) tea.Cmd { a.moveDrawer(-1); return nil },
	{CompDrawer, ActDown}:  func(a *App, ev Event) tea.Cmd { a.moveDrawer(1); return nil },
	{CompDrawer, ActOpen}:  func(a *App, ev Event) tea.Cmd { return a.openDrawerLink() },
	{CompDrawer, ActClose}: func(a *App, ev Event) tea.Cmd { a.engine.Drawer().Close(); return nil },

	{CompList, ActUp}:   func(a *App, ev Event) tea.Cmd { a.moveCursor(-1); return nil },
	{CompList, ActDown}: func(a *App, ev Event) tea.Cmd { a.moveCursor(1); return nil },
	{CompList, ActOpen}: func(a *App, ev Event) tea.Cmd { return a.openSelected() },

	{CompDetail, ActBack}: func(a *App, ev Event) tea.Cmd { return a.back() },
}

// focus returns the component that receives keys right now.
func (a *App) focus() Component {
	if a.engine.Drawer().IsOpen() {
		return CompDrawer
	}
	if route.IsDetail(a.engine.Active()) {
		return CompDetail
	}
	return CompList
}

// translate turns a key into an event for the focused component, falling
// back to the app-wide bindings. The drawer captures every key.
func (a *App) translate(key string) (Event, bool) {
	comp := a.focus()
	if act, ok := keymap[comp][key]; ok {
		return Event{Binding: Binding{comp, act}, Key: key}, true
	}
	if comp == CompDrawer && key != "q" && key != "ctrl+c" {
		return Event{}, false
	}
	if act, ok := keymap[CompApp][key]; ok {
		return Event{Binding: Binding{CompApp, act}, Key: key}, true
	}
	return Event{}, false
}
