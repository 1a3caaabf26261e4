package proxy

import (
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/jasonroy7dct/site/internal/content"
	"github.com/jasonroy7dct/site/internal/logging"
)

func (s *Server) handleMedium(w http.ResponseWriter, r *http.Request) {
	feed, err := s.feed.ParseURLWithContext(s.cfg.MediumFeedURL, r.Context())
	if err != nil {
		logging.Error("medium feed failed", "url", s.cfg.MediumFeedURL, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load Medium RSS")
		return
	}

	posts := make([]content.Post, 0, len(feed.Items))
	for _, item := range feed.Items {
		posts = append(posts, mapItem(item))
	}
	content.SortPosts(posts)

	w.Header().Set("Cache-Control", "public, max-age=300")
	respondJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

func mapItem(item *gofeed.Item) content.Post {
	html := item.Content
	if strings.TrimSpace(html) == "" {
		html = item.Description
	}
	if strings.TrimSpace(html) == "" {
		html = "<p>(No content)</p>"
	}

	p := content.Post{
		ID:          item.GUID,
		Title:       strings.TrimSpace(item.Title),
		Summary:     content.Preview(content.PlainText(html), 200),
		Link:        item.Link,
		ContentHTML: html,
		Source:      content.SourceMedium,
	}
	if p.ID == "" {
		p.ID = item.Link
	}
	if p.Title == "" {
		p.Title = "(No title)"
	}
	if t := item.PublishedParsed; t != nil {
		p.Date = t.Format("Jan 2, 2006")
		p.DateISO = t.UTC().Format(time.RFC3339)
	} else {
		p.Date = item.Published
	}
	return p
}
