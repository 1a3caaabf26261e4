package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jasonroy7dct/site/internal/content"
	"github.com/jasonroy7dct/site/internal/route"
)

// homePosts is how many posts the home page lists.
const homePosts = 3

// item is one selectable row of a list page.
type item struct {
	path string
}

// items returns the selectable rows of page in display order.
func (a *App) items(page route.Page) []item {
	var out []item
	addEpisodes := func(eps []content.Episode) {
		for _, ep := range eps {
			out = append(out, item{path: route.Intent{Page: route.Episode, ID: ep.ID}.Path()})
		}
	}
	addPosts := func(posts []content.Post) {
		for _, p := range posts {
			out = append(out, item{path: route.Intent{Page: route.Post, ID: p.ID}.Path()})
		}
	}

	switch page {
	case route.Home:
		addEpisodes(a.catalog.Recent())
		addPosts(latestPosts(a.catalog.Posts()))
	case route.Blog:
		for _, g := range a.catalog.ByYear() {
			addPosts(g.Posts)
		}
	case route.Podcast:
		addEpisodes(a.catalog.Episodes())
	}
	return out
}

func latestPosts(posts []content.Post) []content.Post {
	if len(posts) > homePosts {
		return posts[:homePosts]
	}
	return posts
}

func (a *App) moveCursor(delta int) {
	page := a.engine.Active()
	n := len(a.items(page))
	if n == 0 {
		return
	}
	c := a.cursors[page] + delta
	a.cursors[page] = min(max(c, 0), n-1)
}

func (a *App) openSelected() tea.Cmd {
	page := a.engine.Active()
	rows := a.items(page)
	c := a.cursors[page]
	if c < 0 || c >= len(rows) {
		return nil
	}
	return a.engine.Navigate(rows[c].path, true)
}

// gotoLink follows nav link 1-4.
func (a *App) gotoLink(ev Event) tea.Cmd {
	links := a.engine.Nav().Links()
	i := int(ev.Key[0] - '1')
	if i < 0 || i >= len(links) {
		return nil
	}
	return a.engine.Navigate(links[i].Route, true)
}

// stepLink moves the nav highlight by delta, wrapping around.
func (a *App) stepLink(delta int) tea.Cmd {
	links := a.engine.Nav().Links()
	if len(links) == 0 {
		return nil
	}
	cur := 0
	active := a.engine.Nav().ActiveRoute()
	for i, l := range links {
		if l.Route == active {
			cur = i
			break
		}
	}
	next := (cur + delta + len(links)) % len(links)
	return a.engine.Navigate(links[next].Route, true)
}

// back moves one history entry back. With nothing behind a detail page it
// navigates to the list page instead.
func (a *App) back() tea.Cmd {
	if entry, ok := a.history.Back(); ok {
		return a.engine.Pop(entry.Path)
	}
	page := a.engine.Active()
	if route.IsDetail(page) {
		return a.engine.Navigate(route.PagePath(page), true)
	}
	return nil
}

func (a *App) forward() tea.Cmd {
	if entry, ok := a.history.Forward(); ok {
		return a.engine.Pop(entry.Path)
	}
	return nil
}

func (a *App) openDrawer() {
	a.engine.Drawer().Open()
	a.drawerCursor = 0
	active := a.engine.Nav().ActiveRoute()
	for i, l := range a.engine.Nav().Links() {
		if l.Route == active {
			a.drawerCursor = i
		}
	}
}

func (a *App) moveDrawer(delta int) {
	n := len(a.engine.Nav().Links())
	if n == 0 {
		return
	}
	a.drawerCursor = min(max(a.drawerCursor+delta, 0), n-1)
}

// openDrawerLink navigates to the highlighted drawer link. Navigation
// closes the drawer.
func (a *App) openDrawerLink() tea.Cmd {
	links := a.engine.Nav().Links()
	if a.drawerCursor < 0 || a.drawerCursor >= len(links) {
		a.engine.Drawer().Close()
		return nil
	}
	return a.engine.Navigate(links[a.drawerCursor].Route, true)
}
