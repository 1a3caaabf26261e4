package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jasonroy7dct/site/internal/content"
	"github.com/jasonroy7dct/site/internal/route"
)

const (
	siteAuthor     = "Jason Hsieh"
	previewLength  = 90
	defaultColumns = 80
)

// Project is one entry of the projects page.
type Project struct {
	Name        string
	Description string
	URL         string
}

// Projects is the static projects page.
var Projects = []Project{
	{
		Name:        "Rumination Breaker",
		Description: "A local-first journal that names the thought loop you are stuck in and suggests one small action.",
		URL:         "/rumination",
	},
	{
		Name:        "Podcast",
		Description: "Conversations published on Spotify, listed on the podcast page.",
		URL:         "/podcast",
	},
	{
		Name:        "This site",
		Description: "Blog, podcast directory and projects with page transitions driven by a small router.",
		URL:         "/",
	},
}

// pageBuilder collects page lines and remembers where the selected row is.
type pageBuilder struct {
	b        strings.Builder
	lines    int
	selected int
}

func newPageBuilder() *pageBuilder { return &pageBuilder{selected: -1} }

func (p *pageBuilder) add(s string) {
	p.b.WriteString(s)
	p.b.WriteString("\n")
	p.lines += lipgloss.Height(s)
}

func (p *pageBuilder) row(s string, selected bool) {
	if selected {
		p.selected = p.lines
	}
	p.add(s)
}

func (p *pageBuilder) String() string { return p.b.String() }

func (a *App) columns() int {
	if a.width <= 0 {
		return defaultColumns
	}
	return a.width
}

// renderPage renders page and returns the line of the selected row, or -1.
func (a *App) renderPage(page route.Page) (string, int) {
	if shown := a.engine.Shown(); route.IsDetail(shown.Page) && shown.Page == page {
		a.detail = shown
	}

	p := newPageBuilder()
	switch page {
	case route.Home:
		a.renderHome(p)
	case route.Blog:
		a.renderBlog(p)
	case route.Post:
		a.renderPost(p)
	case route.Podcast:
		a.renderPodcast(p)
	case route.Episode:
		a.renderEpisode(p)
	case route.Projects:
		a.renderProjects(p)
	}
	return p.String(), p.selected
}

func (a *App) listRow(title, meta string, selected bool) string {
	style := NormalItem
	if selected {
		style = SelectedItem
	}
	line := style.Render(title)
	if meta != "" {
		line += ItemMeta.Render(meta)
	}
	return line
}

func (a *App) renderEpisodeRows(p *pageBuilder, eps []content.Episode, offset, cursor int) {
	for i, ep := range eps {
		p.row(a.listRow(ep.Title, ep.Meta(), offset+i == cursor), offset+i == cursor)
		if desc := strings.TrimSpace(ep.Description); desc != "" {
			p.add(ItemMeta.Render(content.Preview(desc, previewLength)))
		}
	}
}

func (a *App) renderPostRows(p *pageBuilder, posts []content.Post, offset, cursor int) {
	for i, post := range posts {
		p.row(a.listRow(post.DisplayTitle(), post.Date, offset+i == cursor), offset+i == cursor)
	}
}

func (a *App) renderHome(p *pageBuilder) {
	cursor := a.cursors[route.Home]
	recent := a.catalog.Recent()

	p.add(SectionHeader.Render("Recent episodes"))
	if len(recent) == 0 {
		p.add(HelpStyle.Render(a.emptyText("No episodes yet.")))
	}
	a.renderEpisodeRows(p, recent, 0, cursor)

	p.add(SectionHeader.Render("Latest posts"))
	posts := latestPosts(a.catalog.Posts())
	if len(posts) == 0 {
		p.add(HelpStyle.Render(a.emptyText("No posts yet.")))
	}
	a.renderPostRows(p, posts, len(recent), cursor)
}

func (a *App) renderBlog(p *pageBuilder) {
	groups := a.catalog.ByYear()
	if len(groups) == 0 {
		p.add(HelpStyle.Render(a.emptyText("No posts yet.")))
		return
	}
	cursor := a.cursors[route.Blog]
	offset := 0
	for _, g := range groups {
		if g.Year != "" {
			p.add(SectionHeader.Render(g.Year))
		}
		a.renderPostRows(p, g.Posts, offset, cursor)
		offset += len(g.Posts)
	}
}

func (a *App) renderPodcast(p *pageBuilder) {
	eps := a.catalog.Episodes()
	if len(eps) == 0 {
		p.add(HelpStyle.Render(a.emptyText("No episodes yet.")))
		return
	}
	p.add(SectionHeader.Render("All episodes"))
	a.renderEpisodeRows(p, eps, 0, a.cursors[route.Podcast])
}

func (a *App) renderPost(p *pageBuilder) {
	post, ok := a.catalog.Post(a.detail.ID)
	if !ok {
		p.add(HelpStyle.Render("Loading post..."))
		return
	}
	width := a.columns() - 2
	p.add(PageTitle.Render(post.DisplayTitle()))
	p.add(ItemMeta.Render(siteAuthor + " · " + post.Date))
	p.add("")
	p.add(Body.Width(width).Render(content.Render(post.ContentHTML)))
	if link := postLink(post); link != "" {
		p.add("")
		p.add(Body.Render("Read on Medium: " + LinkStyle.Render(link)))
	}
}

func postLink(post content.Post) string {
	if post.Source == content.SourceMedium && post.Link != "" {
		return post.Link
	}
	return post.MediumURL
}

func (a *App) renderEpisode(p *pageBuilder) {
	ep, ok := a.catalog.Episode(a.detail.ID)
	if !ok {
		p.add(HelpStyle.Render("Loading episode..."))
		return
	}
	width := a.columns() - 2
	title := ep.Title
	if ep.Number != nil {
		title = fmt.Sprintf("EP%d · %s", *ep.Number, ep.Title)
	}
	p.add(PageTitle.Render(title))
	p.add(ItemMeta.Render(ep.Meta()))
	p.add("")
	p.add(Body.Width(width).Render(ep.Description))
	p.add("")
	p.add(Body.Render("Listen on Spotify: " + LinkStyle.Render(ep.SpotifyLink)))
}

func (a *App) renderProjects(p *pageBuilder) {
	width := a.columns() - 2
	p.add(SectionHeader.Render("Projects"))
	for _, pr := range Projects {
		p.add(PageTitle.Render(pr.Name))
		p.add(Body.Width(width).Render(pr.Description))
		p.add(ItemMeta.Render(pr.URL))
	}
}

func (a *App) emptyText(text string) string {
	if a.loading {
		return "Loading..."
	}
	return text
}

func (a *App) renderHeader() string {
	title := SiteTitle.Render(siteAuthor)
	if a.columns() <= a.drawerBreak {
		return title + NavLink.Render("☰ menu (m)")
	}
	var links []string
	for i, l := range a.engine.Nav().Links() {
		label := fmt.Sprintf("%d %s", i+1, l.Label)
		if l.Active {
			links = append(links, NavLinkActive.Render(label))
		} else {
			links = append(links, NavLink.Render(label))
		}
	}
	return title + strings.Join(links, "")
}

func (a *App) renderDrawer() string {
	var b strings.Builder
	for i, l := range a.engine.Nav().Links() {
		style := NormalItem
		if i == a.drawerCursor {
			style = SelectedItem
		}
		label := l.Label
		if l.Active {
			label += " •"
		}
		b.WriteString(style.Render(label))
		b.WriteString("\n")
	}
	return Drawer.Render(strings.TrimRight(b.String(), "\n"))
}

func (a *App) renderStatusBar() string {
	left := " " + a.engine.Path() + " "
	if a.loading {
		left = " Loading... "
	}

	keys := []string{
		StatusBarKey.Render("1-4") + StatusBarText.Render(":pages"),
		StatusBarKey.Render("j/k") + StatusBarText.Render(":move"),
		StatusBarKey.Render("Enter") + StatusBarText.Render(":open"),
		StatusBarKey.Render("h/l") + StatusBarText.Render(":back/fwd"),
		StatusBarKey.Render("m") + StatusBarText.Render(":menu"),
		StatusBarKey.Render("q") + StatusBarText.Render(":quit"),
	}
	hints := strings.Join(keys, " ")

	padding := a.columns() - lipgloss.Width(left) - lipgloss.Width(hints)
	if padding < 0 {
		padding = 0
	}
	return StatusBar.Width(a.columns()).Render(left + strings.Repeat(" ", padding) + hints)
}
