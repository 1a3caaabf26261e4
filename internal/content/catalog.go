package content

import (
	"strconv"

	"github.com/jasonroy7dct/site/internal/route"
)

// RecentEpisodes is how many episodes the home page shows.
const RecentEpisodes = 3

// Catalog is the loaded site content.
type Catalog struct {
	posts    []Post
	episodes []Episode
}

// NewCatalog wraps posts and episodes as given.
func NewCatalog(posts []Post, episodes []Episode) *Catalog {
	return &Catalog{posts: posts, episodes: episodes}
}

func (c *Catalog) Posts() []Post { return c.posts }

func (c *Catalog) Episodes() []Episode { return c.episodes }

// Post finds a post by id.
func (c *Catalog) Post(id string) (Post, bool) {
	for _, p := range c.posts {
		if p.ID == id {
			return p, true
		}
	}
	return Post{}, false
}

// Episode finds an episode by id.
func (c *Catalog) Episode(id string) (Episode, bool) {
	for _, e := range c.episodes {
		if e.ID == id {
			return e, true
		}
	}
	return Episode{}, false
}

// Recent returns the newest episodes for the home page.
func (c *Catalog) Recent() []Episode {
	if len(c.episodes) <= RecentEpisodes {
		return c.episodes
	}
	return c.episodes[:RecentEpisodes]
}

// Exists reports whether a detail page has something to show. List pages
// always exist.
func (c *Catalog) Exists(page route.Page, id string) bool {
	switch page {
	case route.Post:
		_, ok := c.Post(id)
		return ok
	case route.Episode:
		_, ok := c.Episode(id)
		return ok
	}
	return true
}

// YearGroup is a run of posts from the same year.
type YearGroup struct {
	Year  string
	Posts []Post
}

// ByYear groups consecutive posts by year for the blog list. Undated posts
// join the group before them, or an unnamed first group.
func (c *Catalog) ByYear() []YearGroup {
	var groups []YearGroup
	for _, p := range c.posts {
		year := ""
		if t, ok := p.Time(); ok {
			year = strconv.Itoa(t.Year())
		}
		if len(groups) == 0 || (year != "" && year != groups[len(groups)-1].Year) {
			groups = append(groups, YearGroup{Year: year})
		}
		last := &groups[len(groups)-1]
		last.Posts = append(last.Posts, p)
	}
	return groups
}
