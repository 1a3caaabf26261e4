package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jasonroy7dct/site/internal/content"
	"github.com/jasonroy7dct/site/internal/route"
)

// instantScheduler delivers every engine message right away.
type instantScheduler struct{}

func (instantScheduler) After(d time.Duration, msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (instantScheduler) Frame(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func testCatalog() *content.Catalog {
	posts := []content.Post{
		{ID: "p1", Title: "Post One", Date: "Feb 1, 2024", DateISO: "2024-02-01T00:00:00Z", ContentHTML: "<p>first body</p>"},
		{ID: "p2", Title: "Post Two", Date: "Mar 3, 2023", DateISO: "2023-03-03T00:00:00Z", ContentHTML: "<p>second body</p>"},
	}
	episodes := []content.Episode{
		{ID: "e1", Title: "Episode One", Date: "2024-01-01", Duration: "30 min", Description: "talking about things"},
		{ID: "e2", Title: "Episode Two", Date: "2023-12-01", Duration: "42 min"},
	}
	return content.NewCatalog(posts, episodes)
}

func newTestApp(t *testing.T, path string, catalog *content.Catalog) *App {
	t.Helper()
	a := NewApp(Options{
		Path:      path,
		Scheduler: instantScheduler{},
		Load: func() tea.Cmd {
			return func() tea.Msg { return ContentLoaded{Catalog: catalog} }
		},
	})
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	pump(t, a, a.Init())
	return a
}

// pump runs cmd and every command it produces until nothing is left.
func pump(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 200 {
			t.Fatal("commands did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
			continue
		case tea.QuitMsg, nil:
			continue
		}
		_, next := a.Update(msg)
		queue = append(queue, next)
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, a *App, keys ...string) {
	t.Helper()
	for _, k := range keys {
		_, cmd := a.Update(keyMsg(k))
		pump(t, a, cmd)
	}
}

func TestBootDeepLinkLoadsIntoActiveShell(t *testing.T) {
	a := NewApp(Options{Path: "/blog/p1/", Scheduler: instantScheduler{}})
	if a.Engine().Active() != route.Post {
		t.Fatalf("boot active = %s, want post", a.Engine().Active())
	}

	a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	_, cmd := a.Update(ContentLoaded{Catalog: testCatalog()})
	pump(t, a, cmd)

	if a.Engine().Passes() != 0 {
		t.Errorf("deep link animated %d transitions", a.Engine().Passes())
	}
	if got := a.Engine().Shown(); got.ID != "p1" {
		t.Errorf("shown = %+v, want p1", got)
	}
	if !strings.Contains(a.View(), "Post One") {
		t.Error("post title not rendered")
	}
}

func TestBootUnknownPostRedirectsToBlog(t *testing.T) {
	a := newTestApp(t, "/blog/missing", testCatalog())

	if a.Engine().Active() != route.Blog {
		t.Errorf("active = %s, want blog", a.Engine().Active())
	}
	if a.Engine().Path() != "/blog" {
		t.Errorf("path = %q, want /blog", a.Engine().Path())
	}
	if !a.Engine().Pages().Consistent() {
		t.Error("pages not consistent after settle")
	}
}

func TestNavigateOpenAndBack(t *testing.T) {
	a := newTestApp(t, "/", testCatalog())

	press(t, a, "2")
	if a.Engine().Active() != route.Blog {
		t.Fatalf("active = %s, want blog", a.Engine().Active())
	}

	press(t, a, "enter")
	if a.Engine().Active() != route.Post || a.Engine().Path() != "/blog/p1" {
		t.Fatalf("open: active %s path %q", a.Engine().Active(), a.Engine().Path())
	}
	if !strings.Contains(a.View(), "first body") {
		t.Error("post body not rendered")
	}

	press(t, a, "esc")
	if a.Engine().Active() != route.Blog || a.Engine().Path() != "/blog" {
		t.Errorf("back: active %s path %q", a.Engine().Active(), a.Engine().Path())
	}

	press(t, a, "l")
	if a.Engine().Path() != "/blog/p1" {
		t.Errorf("forward: path %q", a.Engine().Path())
	}
}

func TestListCursorStaysInBounds(t *testing.T) {
	a := newTestApp(t, "/podcast", testCatalog())

	press(t, a, "down", "down", "down")
	if got := a.Cursor(route.Podcast); got != 1 {
		t.Errorf("cursor = %d, want 1", got)
	}
	press(t, a, "k", "k")
	if got := a.Cursor(route.Podcast); got != 0 {
		t.Errorf("cursor = %d, want 0", got)
	}

	press(t, a, "down", "enter")
	if got := a.Engine().Shown(); got.Page != route.Episode || got.ID != "e2" {
		t.Errorf("shown = %+v, want episode e2", got)
	}
}

func TestBackFromDeepLinkFallsBackToList(t *testing.T) {
	a := newTestApp(t, "/podcast/e1", testCatalog())

	press(t, a, "b")
	if a.Engine().Active() != route.Podcast {
		t.Errorf("active = %s, want podcast", a.Engine().Active())
	}
}

func TestDrawer(t *testing.T) {
	a := newTestApp(t, "/", testCatalog())
	a.Update(tea.WindowSizeMsg{Width: 60, Height: 30})

	if !strings.Contains(a.View(), "menu") {
		t.Error("narrow header should offer the menu")
	}

	press(t, a, "m")
	if !a.Engine().Drawer().IsOpen() {
		t.Fatal("drawer did not open")
	}

	// Number keys are captured by the drawer.
	press(t, a, "3")
	if a.Engine().Active() != route.Home {
		t.Errorf("drawer leaked key to app, active = %s", a.Engine().Active())
	}

	press(t, a, "down", "enter")
	if a.Engine().Drawer().IsOpen() {
		t.Error("navigation should close the drawer")
	}
	if a.Engine().Active() != route.Blog {
		t.Errorf("active = %s, want blog", a.Engine().Active())
	}

	press(t, a, "m")
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	if a.Engine().Drawer().IsOpen() {
		t.Error("wide viewport should close the drawer")
	}

	press(t, a, "m", "esc")
	if a.Engine().Drawer().IsOpen() {
		t.Error("escape should close the drawer")
	}
}

func TestEmptyStates(t *testing.T) {
	a := newTestApp(t, "/", nil)

	view := a.View()
	for _, want := range []string{"No episodes yet.", "No posts yet."} {
		if !strings.Contains(view, want) {
			t.Errorf("home view missing %q", want)
		}
	}

	press(t, a, "3")
	if !strings.Contains(a.View(), "No episodes yet.") {
		t.Error("podcast empty state missing")
	}
}

func TestTabCyclesNavLinks(t *testing.T) {
	a := newTestApp(t, "/projects", testCatalog())

	press(t, a, "tab")
	if a.Engine().Active() != route.Home {
		t.Errorf("tab from projects = %s, want home", a.Engine().Active())
	}
}

func TestEveryKeyHasHandler(t *testing.T) {
	for comp, keys := range keymap {
		for k, act := range keys {
			if _, ok := dispatch[Binding{comp, act}]; !ok {
				t.Errorf("key %q on %s maps to %s with no handler", k, comp, act)
			}
		}
	}
}
