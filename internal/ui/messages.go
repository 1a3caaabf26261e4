// Package ui provides the Bubble Tea front end for the site.
package ui

import "github.com/jasonroy7dct/site/internal/content"

// ContentLoaded is sent once posts and episodes have been fetched. A nil
// Catalog means nothing could be loaded.
type ContentLoaded struct {
	Catalog *content.Catalog
}
