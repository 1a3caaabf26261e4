package ui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jasonroy7dct/site/internal/content"
	"github.com/jasonroy7dct/site/internal/logging"
	"github.com/jasonroy7dct/site/internal/route"
	"github.com/jasonroy7dct/site/internal/router"
)

// DrawerBreak is the width in columns above which the nav drawer closes
// and the links show inline.
const DrawerBreak = 72

// Options configures an App.
type Options struct {
	// Path is the deep link to start on.
	Path string
	// Load returns a Cmd that fetches content and answers ContentLoaded.
	Load func() tea.Cmd
	// Scheduler defaults to a tea.Tick scheduler.
	Scheduler router.Scheduler
	// DrawerBreak defaults to the DrawerBreak constant.
	DrawerBreak int
}

// App is the root Bubble Tea model. It owns the application session: the
// loaded catalog and the router engine.
type App struct {
	engine  *router.Engine
	history *router.MemoryHistory
	catalog *content.Catalog
	load    func() tea.Cmd

	detail       route.Intent
	cursors      map[route.Page]int
	drawerCursor int
	viewport     viewport.Model

	drawerBreak int
	width       int
	height      int
	ready       bool
	loading     bool
}

// NewApp boots the router on opts.Path without animation. Deep-linked
// posts and episodes are resolved once content arrives.
func NewApp(opts Options) *App {
	sched := opts.Scheduler
	if sched == nil {
		sched = router.NewTickScheduler()
	}
	path := opts.Path
	if path == "" {
		path = "/"
	}
	brk := opts.DrawerBreak
	if brk <= 0 {
		brk = DrawerBreak
	}

	a := &App{
		history:     router.NewMemoryHistory(path),
		catalog:     content.NewCatalog(nil, nil),
		load:        opts.Load,
		cursors:     make(map[route.Page]int),
		viewport:    viewport.New(80, 20),
		drawerBreak: brk,
	}
	a.engine = router.New(router.Options{
		Pages:       router.NewPages(route.Pages...),
		History:     a.history,
		Scheduler:   sched,
		Resolver:    a.catalog,
		DrawerBreak: brk,
		OnEnter:     func(route.Page) { a.viewport.GotoTop() },
	})
	a.engine.Boot(path)
	return a
}

// Init starts loading content.
func (a *App) Init() tea.Cmd {
	if a.load == nil {
		return nil
	}
	a.loading = true
	return a.load()
}

// Update handles messages and returns the updated model and any commands.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.engine.SyncWidth(msg.Width)
		a.viewport.Width = msg.Width
		a.viewport.Height = max(1, msg.Height-a.chromeHeight())

	case ContentLoaded:
		a.loading = false
		if msg.Catalog != nil {
			a.catalog = msg.Catalog
		}
		a.engine.SetResolver(a.catalog)
		logging.Info("content loaded", "posts", len(a.catalog.Posts()), "episodes", len(a.catalog.Episodes()))
		cmd = a.engine.RouteCurrent()

	case router.LeaveDoneMsg, router.EnterFrameMsg, router.SettledMsg:
		cmd = a.engine.Update(msg)

	case tea.KeyMsg:
		ev, ok := a.translate(msg.String())
		if !ok {
			if a.focus() == CompDetail {
				a.viewport, cmd = a.viewport.Update(msg)
			}
			return a, cmd
		}
		if h, ok := dispatch[ev.Binding]; ok {
			cmd = h(a, ev)
		}

	case tea.MouseMsg:
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}

	a.refresh()
	return a, cmd
}

// chromeHeight is the header plus the status bar.
func (a *App) chromeHeight() int { return 2 }

// refresh renders the active page into the viewport and keeps the list
// cursor in view.
func (a *App) refresh() {
	body, line := a.renderPage(a.engine.Active())
	a.viewport.SetContent(body)
	if line < 0 {
		return
	}
	if line < a.viewport.YOffset {
		a.viewport.SetYOffset(line)
	} else if line >= a.viewport.YOffset+a.viewport.Height {
		a.viewport.SetYOffset(line - a.viewport.Height + 1)
	}
}

// View renders the UI.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	body := a.viewport.View()
	if a.engine.Drawer().IsOpen() {
		body = a.renderDrawer()
	} else if shell, _ := a.engine.Pages().Shell(a.engine.Active()); shell.Leaving {
		body = Leaving.Render(body)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(),
		body,
		a.renderStatusBar(),
	)
}

// Engine exposes the router (for testing).
func (a *App) Engine() *router.Engine { return a.engine }

// Catalog returns the loaded content.
func (a *App) Catalog() *content.Catalog { return a.catalog }

// Cursor returns the list cursor of page (for testing).
func (a *App) Cursor(page route.Page) int { return a.cursors[page] }
