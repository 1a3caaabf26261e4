package content

import (
	"sort"
	"strings"
	"time"
)

// Merge combines fetched Medium posts with local posts. A local post whose
// MediumURL matches a fetched link is dropped in favour of the feed copy.
// The result is sorted newest first; undated posts sort as the epoch.
func Merge(local, medium []Post) []Post {
	links := make(map[string]bool, len(medium))
	for _, p := range medium {
		if l := strings.TrimSpace(p.Link); l != "" {
			links[l] = true
		}
	}

	out := make([]Post, 0, len(local)+len(medium))
	out = append(out, medium...)
	for _, p := range local {
		mu := strings.TrimSpace(p.MediumURL)
		if mu != "" && p.Source != SourceMedium && links[mu] {
			continue
		}
		out = append(out, p)
	}
	SortPosts(out)
	return out
}

// SortPosts orders posts newest first, keeping the order of equal dates.
func SortPosts(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return postTime(posts[i]).After(postTime(posts[j]))
	})
}

func postTime(p Post) time.Time {
	if t, ok := p.Time(); ok {
		return t
	}
	return time.Unix(0, 0)
}
