// Package route maps URL paths to page keys and back.
package route

import (
	"net/url"
	"strings"
)

// Page is one of the fixed application views.
type Page string

const (
	Home     Page = "home"
	Blog     Page = "blog"
	Post     Page = "post"
	Podcast  Page = "podcast"
	Episode  Page = "episode"
	Projects Page = "projects"
)

// Pages lists every page key in display order.
var Pages = []Page{Home, Blog, Post, Podcast, Episode, Projects}

// Intent is what the user asked to see next.
type Intent struct {
	Page Page
	ID   string // entity id for Post and Episode
}

// Normalize strips trailing slashes except on the root path.
func Normalize(path string) string {
	if path == "" || path == "/" {
		return "/"
	}
	trimmed := strings.TrimRight(path, "/")
	if trimmed == "" {
		return "/"
	}
	return trimmed
}

// Resolve returns the page key for path. Unknown paths resolve to Home.
func Resolve(path string) Page {
	return Parse(path).Page
}

// Parse resolves path and extracts the entity id of detail pages.
func Parse(path string) Intent {
	p := Normalize(path)
	switch {
	case p == "/":
		return Intent{Page: Home}
	case p == "/blog":
		return Intent{Page: Blog}
	case strings.HasPrefix(p, "/blog/"):
		return Intent{Page: Post, ID: decode(strings.TrimPrefix(p, "/blog/"))}
	case p == "/podcast":
		return Intent{Page: Podcast}
	case strings.HasPrefix(p, "/podcast/"):
		return Intent{Page: Episode, ID: decode(strings.TrimPrefix(p, "/podcast/"))}
	case p == "/projects":
		return Intent{Page: Projects}
	}
	return Intent{Page: Home}
}

func decode(raw string) string {
	id, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return id
}

// Path returns the canonical path for the intent. Detail intents without an
// id fall back to their list page.
func (in Intent) Path() string {
	switch in.Page {
	case Post:
		if in.ID != "" {
			return "/blog/" + url.PathEscape(in.ID)
		}
	case Episode:
		if in.ID != "" {
			return "/podcast/" + url.PathEscape(in.ID)
		}
	}
	return PagePath(in.Page)
}

// PagePath returns the path of a page's list view.
func PagePath(p Page) string {
	switch p {
	case Blog, Post:
		return "/blog"
	case Podcast, Episode:
		return "/podcast"
	case Projects:
		return "/projects"
	}
	return "/"
}

// ListPage returns the list page a detail page belongs to.
func ListPage(p Page) Page {
	switch p {
	case Post:
		return Blog
	case Episode:
		return Podcast
	}
	return p
}

// IsDetail reports whether p shows a single entity.
func IsDetail(p Page) bool {
	return p == Post || p == Episode
}

// NavActive reports whether the nav link for linkRoute should be
// highlighted while page is shown.
func NavActive(linkRoute string, page Page) bool {
	switch Normalize(linkRoute) {
	case "/":
		return page == Home
	case "/blog":
		return page == Blog || page == Post
	case "/podcast":
		return page == Podcast || page == Episode
	case "/projects":
		return page == Projects
	}
	return false
}
