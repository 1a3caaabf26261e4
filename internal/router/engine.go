// Package router drives page transitions for the site front end.
//
// An Engine owns the active page, the single pending navigation intent and
// the nav/drawer state. A transition runs leave, swap, enter and settle
// phases as tea messages; navigation that arrives mid-transition only
// overwrites the pending intent, which is routed once the transition has
// settled.
package router

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jasonroy7dct/site/internal/logging"
	"github.com/jasonroy7dct/site/internal/route"
)

// Phase durations.
const (
	LeaveDuration  = 180 * time.Millisecond
	SettleDuration = 260 * time.Millisecond
)

// Resolver answers whether a detail entity exists.
type Resolver interface {
	Exists(page route.Page, id string) bool
}

// LeaveDoneMsg ends the leave phase.
type LeaveDoneMsg struct{ Seq int }

// EnterFrameMsg is one frame of the enter phase. The entering flag is
// released on the second frame.
type EnterFrameMsg struct {
	Seq int
	N   int
}

// SettledMsg ends a transition.
type SettledMsg struct{ Seq int }

// Options configures an Engine. Pages, History and Scheduler are required.
type Options struct {
	Pages       *Pages
	History     History
	Scheduler   Scheduler
	Resolver    Resolver // nil accepts every id
	Links       []NavLink
	DrawerBreak int

	// OnEnter runs when a page becomes active mid-transition. The UI uses
	// it to scroll the viewport back to the top.
	OnEnter func(route.Page)
}

// Engine is the page router and transition state machine.
type Engine struct {
	pages    *Pages
	history  History
	sched    Scheduler
	resolver Resolver
	nav      *Nav
	drawer   *Drawer
	onEnter  func(route.Page)

	active        route.Page
	shown         route.Intent
	transitioning bool
	target        route.Page
	pending       *route.Intent
	seq           int
	passes        int
}

// New builds an engine with Home active.
func New(opts Options) *Engine {
	links := opts.Links
	if links == nil {
		links = DefaultLinks()
	}
	e := &Engine{
		pages:    opts.Pages,
		history:  opts.History,
		sched:    opts.Scheduler,
		resolver: opts.Resolver,
		nav:      NewNav(links),
		drawer:   NewDrawer(opts.DrawerBreak),
		onEnter:  opts.OnEnter,
		active:   route.Home,
		shown:    route.Intent{Page: route.Home},
	}
	e.pages.HardSync(e.active)
	return e
}

func (e *Engine) Active() route.Page { return e.active }
func (e *Engine) Shown() route.Intent { return e.shown }
func (e *Engine) Transitioning() bool { return e.transitioning }
func (e *Engine) Nav() *Nav { return e.nav }
func (e *Engine) Drawer() *Drawer { return e.drawer }
func (e *Engine) Pages() *Pages { return e.pages }
func (e *Engine) Passes() int { return e.passes }
func (e *Engine) SetResolver(r Resolver) { e.resolver = r }

// Pending returns the queued intent, if any.
func (e *Engine) Pending() (route.Intent, bool) {
	if e.pending == nil {
		return route.Intent{}, false
	}
	return *e.pending, true
}

// Path returns the current history path.
func (e *Engine) Path() string {
	p, _ := e.history.Current()
	return p
}

// Boot shows the page for path without animating. Deep-linked entities are
// routed later through RouteCurrent once their content is available.
func (e *Engine) Boot(path string) {
	p := route.Normalize(path)
	in := route.Parse(p)
	e.history.Replace(p, in)
	e.shown = in
	e.SetImmediate(in.Page)
}

// SetImmediate activates p with no transition.
func (e *Engine) SetImmediate(p route.Page) {
	if !e.pages.Has(p) {
		p = route.Home
	}
	e.active = p
	e.pages.HardSync(p)
	e.nav.Sync(e.Path())
}

// RouteCurrent routes the current history entry again.
func (e *Engine) RouteCurrent() tea.Cmd {
	_, in := e.history.Current()
	return e.route(in)
}

// Navigate is the entry point for user navigation. History and nav
// highlighting follow the request immediately; the page transition starts
// now or after the running one settles.
func (e *Engine) Navigate(path string, push bool) tea.Cmd {
	p := route.Normalize(path)
	in := route.Parse(p)

	e.drawer.Close()
	e.nav.Sync(p)
	if push {
		e.history.Push(p, in)
	} else {
		e.history.Replace(p, in)
	}
	return e.route(in)
}

// Pop handles a history move (back/forward) to path.
func (e *Engine) Pop(path string) tea.Cmd {
	p := route.Normalize(path)
	e.pending = nil
	e.drawer.Close()
	e.nav.Sync(p)
	return e.route(route.Parse(p))
}

// SyncWidth closes the drawer on wide viewports.
func (e *Engine) SyncWidth(width int) {
	e.drawer.SyncWidth(width)
}

// Update advances a running transition. Messages of other types, and phase
// messages from superseded transitions, are ignored.
func (e *Engine) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case LeaveDoneMsg:
		if msg.Seq != e.seq || !e.transitioning {
			return nil
		}
		e.pages.swap(e.active, e.target)
		e.active = e.target
		if e.onEnter != nil {
			e.onEnter(e.active)
		}
		e.nav.Sync(e.Path())
		return tea.Batch(
			e.sched.Frame(EnterFrameMsg{Seq: msg.Seq, N: 1}),
			e.sched.After(SettleDuration, SettledMsg{Seq: msg.Seq}),
		)

	case EnterFrameMsg:
		if msg.Seq != e.seq {
			return nil
		}
		if msg.N < 2 {
			return e.sched.Frame(EnterFrameMsg{Seq: msg.Seq, N: msg.N + 1})
		}
		e.pages.clearEntering(e.active)

	case SettledMsg:
		if msg.Seq != e.seq || !e.transitioning {
			return nil
		}
		e.transitioning = false
		if e.pending != nil {
			next := *e.pending
			e.pending = nil
			return e.route(next)
		}
		e.pages.HardSync(e.active)
		e.nav.Sync(e.Path())
	}
	return nil
}

func (e *Engine) route(in route.Intent) tea.Cmd {
	if e.transitioning {
		e.pending = &in
		return nil
	}

	if route.IsDetail(in.Page) && !e.exists(in) {
		list := route.Intent{Page: route.ListPage(in.Page)}
		logging.Debug("detail not found, redirecting", "page", in.Page, "id", in.ID)
		listPath := list.Path()
		e.history.Replace(listPath, list)
		e.nav.Sync(listPath)
		in = list
	}

	e.shown = in
	return e.activate(in.Page)
}

func (e *Engine) exists(in route.Intent) bool {
	if in.ID == "" {
		return false
	}
	if e.resolver == nil {
		return true
	}
	return e.resolver.Exists(in.Page, in.ID)
}

func (e *Engine) activate(p route.Page) tea.Cmd {
	if !e.pages.Has(p) {
		logging.Warn("no view registered, falling back to home", "page", p)
		p = route.Home
		e.shown = route.Intent{Page: route.Home}
		e.nav.Sync(e.Path())
		if !e.pages.Has(p) {
			return nil
		}
	}

	if p == e.active {
		e.pages.HardSync(p)
		e.nav.Sync(e.Path())
		return nil
	}

	e.transitioning = true
	e.seq++
	e.passes++
	e.target = p
	e.pages.markLeaving(e.active)
	return e.sched.After(LeaveDuration, LeaveDoneMsg{Seq: e.seq})
}
