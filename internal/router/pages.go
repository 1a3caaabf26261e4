package router

import "github.com/jasonroy7dct/site/internal/route"

// Shell holds the presentation flags of one page view.
type Shell struct {
	Active   bool
	Leaving  bool
	Entering bool
	Hidden   bool
}

// Pages is the registry of page views that can be shown.
type Pages struct {
	shells map[route.Page]*Shell
}

// NewPages registers the given pages, all hidden.
func NewPages(pages ...route.Page) *Pages {
	r := &Pages{shells: make(map[route.Page]*Shell, len(pages))}
	for _, p := range pages {
		r.shells[p] = &Shell{Hidden: true}
	}
	return r
}

// Has reports whether p has a registered view.
func (r *Pages) Has(p route.Page) bool {
	_, ok := r.shells[p]
	return ok
}

// Shell returns a copy of p's flags.
func (r *Pages) Shell(p route.Page) (Shell, bool) {
	s, ok := r.shells[p]
	if !ok {
		return Shell{}, false
	}
	return *s, true
}

// HardSync makes p the only active page and clears all transition flags.
func (r *Pages) HardSync(p route.Page) {
	for key, s := range r.shells {
		on := key == p
		s.Active = on
		s.Hidden = !on
		s.Leaving = false
		s.Entering = false
	}
}

// ActiveCount returns how many pages carry the active flag.
func (r *Pages) ActiveCount() int {
	n := 0
	for _, s := range r.shells {
		if s.Active {
			n++
		}
	}
	return n
}

// Consistent reports whether exactly one page is active, every other page
// is hidden and no page is mid-animation.
func (r *Pages) Consistent() bool {
	if r.ActiveCount() != 1 {
		return false
	}
	for _, s := range r.shells {
		if s.Leaving || s.Entering || s.Active == s.Hidden {
			return false
		}
	}
	return true
}

func (r *Pages) markLeaving(p route.Page) {
	if s, ok := r.shells[p]; ok {
		s.Leaving = true
	}
}

// swap deactivates from and activates to with the entering flag set.
func (r *Pages) swap(from, to route.Page) {
	if s, ok := r.shells[from]; ok {
		s.Active = false
		s.Leaving = false
		s.Hidden = true
	}
	if s, ok := r.shells[to]; ok {
		s.Active = true
		s.Hidden = false
		s.Entering = true
	}
}

func (r *Pages) clearEntering(p route.Page) {
	if s, ok := r.shells[p]; ok {
		s.Entering = false
	}
}
