package journal

import "fmt"

// PageSizes are the allowed history page sizes.
var PageSizes = []int{10, 20, 50}

// DefaultPageSize is used for unknown sizes.
const DefaultPageSize = 10

// ValidPageSize reports whether n is one of PageSizes.
func ValidPageSize(n int) bool {
	for _, s := range PageSizes {
		if s == n {
			return true
		}
	}
	return false
}

// Pager tracks the current page of a list. Page is 1-based.
type Pager struct {
	Page int
	Size int
}

// NewPager starts on page 1 with size, or DefaultPageSize if it is invalid.
func NewPager(size int) Pager {
	if !ValidPageSize(size) {
		size = DefaultPageSize
	}
	return Pager{Page: 1, Size: size}
}

func (p Pager) size() int {
	if p.Size <= 0 {
		return DefaultPageSize
	}
	return p.Size
}

// TotalPages is ceil(total/size), at least 1.
func (p Pager) TotalPages(total int) int {
	size := p.size()
	return max(1, (total+size-1)/size)
}

// Clamp moves Page into [1, TotalPages(total)].
func (p *Pager) Clamp(total int) {
	if last := p.TotalPages(total); p.Page > last {
		p.Page = last
	}
	if p.Page < 1 {
		p.Page = 1
	}
}

// Slice returns the items on the current page. Call Clamp first.
func (p Pager) Slice(entries []Entry) []Entry {
	size := p.size()
	start := (p.Page - 1) * size
	if start < 0 || start >= len(entries) {
		return []Entry{}
	}
	end := min(start+size, len(entries))
	return entries[start:end]
}

// HasPrev reports whether there is a page before this one.
func (p Pager) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether there is a page after this one.
func (p Pager) HasNext(total int) bool { return p.Page < p.TotalPages(total) }

// Label renders "Page p / T · N items".
func (p Pager) Label(total int) string {
	return fmt.Sprintf("Page %d / %d · %d items", p.Page, p.TotalPages(total), total)
}
