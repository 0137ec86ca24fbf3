// Package timescale implements the year-to-pixel coordinate system of the
// timeline canvas: the active chronology window, the bidirectional mapper,
// and the pan/zoom camera.
package timescale

import (
	"gonum.org/v1/gonum/floats"

	"ideatlas/internal/model"
)

// Fixed fallback window used when the data carries no years at all.
const (
	DefaultStartYear = -500
	DefaultEndYear   = 2000
)

// synthSpan is the window synthesized around a lone bound.
const synthSpan = 100

// Range is the active [StartYear, EndYear] chronology window.
type Range struct {
	StartYear int `json:"start_year"`
	EndYear   int `json:"end_year"`
}

// Span returns the window's year span.
func (r Range) Span() int {
	return r.EndYear - r.StartYear
}

// ResolveRange computes the chronology window for the current data. It is a
// pure function of its inputs and must be recomputed whenever they change;
// entity edits legitimately shift the window.
//
// A selected timeline supplies its declared bounds directly, with fixed
// defaults per missing bound. Otherwise the window covers every thinker's
// birth/death year and every timeline's declared bounds, padded by
// max(50, 10% of span) and rounded outward to decade boundaries.
func ResolveRange(selected *model.Timeline, thinkers []model.Thinker, timelines []model.Timeline) Range {
	if selected != nil {
		r := Range{StartYear: DefaultStartYear, EndYear: DefaultEndYear}
		if selected.StartYear != nil {
			r.StartYear = *selected.StartYear
		}
		if selected.EndYear != nil {
			r.EndYear = *selected.EndYear
		}
		return ensureSpan(r)
	}

	var lows, highs []float64
	for _, t := range thinkers {
		if t.BirthYear != nil {
			lows = append(lows, float64(*t.BirthYear))
			highs = append(highs, float64(*t.BirthYear))
		}
		if t.DeathYear != nil {
			lows = append(lows, float64(*t.DeathYear))
			highs = append(highs, float64(*t.DeathYear))
		}
		if t.AnchorYear != nil {
			lows = append(lows, float64(*t.AnchorYear))
			highs = append(highs, float64(*t.AnchorYear))
		}
	}
	for _, tl := range timelines {
		if tl.StartYear != nil {
			lows = append(lows, float64(*tl.StartYear))
			highs = append(highs, float64(*tl.StartYear))
		}
		if tl.EndYear != nil {
			lows = append(lows, float64(*tl.EndYear))
			highs = append(highs, float64(*tl.EndYear))
		}
	}

	if len(lows) == 0 {
		return Range{StartYear: DefaultStartYear, EndYear: DefaultEndYear}
	}

	start := int(floats.Min(lows))
	end := int(floats.Max(highs))
	if start == end {
		// Degenerate single-year data: synthesize a window around it.
		start -= synthSpan
		end += synthSpan
	}

	span := end - start
	pad := span / 10
	if pad < 50 {
		pad = 50
	}
	start -= pad
	end += pad

	return ensureSpan(Range{
		StartYear: floorToDecade(start),
		EndYear:   ceilToDecade(end),
	})
}

// ensureSpan corrects a zero or negative span defensively rather than
// surfacing it as an error.
func ensureSpan(r Range) Range {
	if r.Span() <= 0 {
		mid := r.StartYear
		r.StartYear = mid - synthSpan
		r.EndYear = mid + synthSpan
	}
	return r
}

func floorToDecade(year int) int {
	if year >= 0 {
		return year / 10 * 10
	}
	return -((-year + 9) / 10 * 10)
}

func ceilToDecade(year int) int {
	if year >= 0 {
		return (year + 9) / 10 * 10
	}
	return -(-year / 10 * 10)
}
