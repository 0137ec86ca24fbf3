package model

import (
	"strings"
)

// Filter narrows the set of thinkers shown on the canvas. All active
// predicates must pass (combinatorial AND); zero-valued predicates are
// inactive.
type Filter struct {
	TimelineID string   // membership in a specific timeline
	Tags       []string // thinker must carry every listed tag
	Search     string   // case-insensitive substring over name/field/biography
	Field      string   // exact field match
	YearFrom   *int     // lifespan must overlap [YearFrom, YearTo]
	YearTo     *int
	AliveAt    *int // animation scrubber: alive at this exact year
}

// IsZero reports whether no predicate is active.
func (f Filter) IsZero() bool {
	return f.TimelineID == "" && len(f.Tags) == 0 && f.Search == "" &&
		f.Field == "" && f.YearFrom == nil && f.YearTo == nil && f.AliveAt == nil
}

// Match reports whether the thinker passes every active predicate.
func (f Filter) Match(t Thinker) bool {
	if f.TimelineID != "" && t.TimelineID != f.TimelineID {
		return false
	}
	for _, tag := range f.Tags {
		if !t.HasTag(tag) {
			return false
		}
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		hay := strings.ToLower(t.Name + " " + t.Field + " " + t.Biography)
		if !strings.Contains(hay, needle) {
			return false
		}
	}
	if f.Field != "" && t.Field != f.Field {
		return false
	}
	if f.YearFrom != nil || f.YearTo != nil {
		if !f.overlapsYears(t) {
			return false
		}
	}
	if f.AliveAt != nil && !t.AliveAt(*f.AliveAt) {
		return false
	}
	return true
}

// overlapsYears reports whether the thinker's known span intersects the
// filter's year range. A thinker with no years at all never overlaps.
func (f Filter) overlapsYears(t Thinker) bool {
	lo, hasLo := t.BirthYear, t.BirthYear != nil
	hi, hasHi := t.DeathYear, t.DeathYear != nil
	if !hasLo && !hasHi {
		if y, ok := t.PlacementYear(); ok {
			// Anchor-only thinkers count as a single-year span.
			return (f.YearFrom == nil || y >= *f.YearFrom) &&
				(f.YearTo == nil || y <= *f.YearTo)
		}
		return false
	}
	if f.YearTo != nil && hasLo && *lo > *f.YearTo {
		return false
	}
	if f.YearFrom != nil && hasHi && *hi < *f.YearFrom {
		return false
	}
	return true
}

// Apply returns the thinkers passing every active predicate, preserving
// input order.
func (f Filter) Apply(thinkers []Thinker) []Thinker {
	if f.IsZero() {
		return thinkers
	}
	out := make([]Thinker, 0, len(thinkers))
	for _, t := range thinkers {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
