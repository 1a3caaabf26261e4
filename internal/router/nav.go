package router

import "github.com/jasonroy7dct/site/internal/route"

// NavLink is one entry of the navigation bar.
type NavLink struct {
	Route  string
	Label  string
	Active bool
}

// DefaultLinks is the site navigation.
func DefaultLinks() []NavLink {
	return []NavLink{
		{Route: "/", Label: "Home"},
		{Route: "/blog", Label: "Blog"},
		{Route: "/podcast", Label: "Podcast"},
		{Route: "/projects", Label: "Projects"},
	}
}

// Nav tracks link highlighting. It follows the latest requested path, not
// the page currently on screen.
type Nav struct {
	links []NavLink
}

// NewNav builds a nav bar from links.
func NewNav(links []NavLink) *Nav {
	return &Nav{links: append([]NavLink(nil), links...)}
}

// Sync highlights the links matching path.
func (n *Nav) Sync(path string) {
	page := route.Resolve(path)
	for i := range n.links {
		n.links[i].Active = route.NavActive(n.links[i].Route, page)
	}
}

// Links returns a snapshot of the links.
func (n *Nav) Links() []NavLink {
	return append([]NavLink(nil), n.links...)
}

// ActiveRoute returns the route of the highlighted link, or "".
func (n *Nav) ActiveRoute() string {
	for _, l := range n.links {
		if l.Active {
			return l.Route
		}
	}
	return ""
}

// Drawer is the mobile navigation drawer.
type Drawer struct {
	open     bool
	breakout int
}

// NewDrawer returns a closed drawer that auto-closes once the viewport is
// wider than breakout.
func NewDrawer(breakout int) *Drawer {
	return &Drawer{breakout: breakout}
}

func (d *Drawer) Open() { d.open = true }
func (d *Drawer) Close() { d.open = false }
func (d *Drawer) Toggle() { d.open = !d.open }
func (d *Drawer) IsOpen() bool { return d.open }

// SyncWidth closes the drawer on wide viewports.
func (d *Drawer) SyncWidth(width int) {
	if width > d.breakout {
		d.open = false
	}
}
