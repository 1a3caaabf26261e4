// Package content holds the site's blog posts and podcast episodes.
//
// Posts come from two places: a few built-in local posts and the Medium
// feed served by the proxy. Episodes only come from the proxy. A failed
// fetch degrades to an empty list so the site still renders.
package content

import (
	"strings"
	"time"
)

// Source says where a post came from.
type Source string

const (
	SourceLocal  Source = "local"
	SourceMedium Source = "medium"
)

// Post is one blog post.
type Post struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	DateISO     string `json:"dateISO,omitempty"`
	Summary     string `json:"summary"`
	Link        string `json:"link,omitempty"`
	MediumURL   string `json:"mediumUrl,omitempty"`
	ContentHTML string `json:"contentHtml"`
	Source      Source `json:"source,omitempty"`
}

var dateLayouts = []string{
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01-02",
}

// Time parses DateISO, then Date. Unparseable dates report false.
func (p Post) Time() (time.Time, bool) {
	for _, raw := range []string{p.DateISO, p.Date} {
		if t, ok := parseDate(raw); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DisplayTitle falls back to "(Untitled)".
func (p Post) DisplayTitle() string {
	if strings.TrimSpace(p.Title) == "" {
		return "(Untitled)"
	}
	return p.Title
}

// Episode is one podcast episode.
type Episode struct {
	ID           string `json:"id"`
	Number       *int   `json:"number"`
	Title        string `json:"title"`
	Date         string `json:"date"`
	Duration     string `json:"duration"`
	Description  string `json:"description"`
	ImageURL     string `json:"imageUrl"`
	SpotifyLink  string `json:"spotifyLink"`
	SpotifyEmbed string `json:"spotifyEmbed"`
}

// Meta is the "date · duration" line.
func (e Episode) Meta() string {
	return e.Date + " · " + e.Duration
}
