// Package hittest inverse-maps pointer positions to the objects drawn at
// them. It consumes the same frame (and therefore the same position table)
// the renderer used, so picking never desynchronizes from the visuals.
package hittest

import (
	"ideatlas/internal/render"
	"ideatlas/pkg/geometry"
)

// Pick priorities and thresholds.
const (
	// EventHitHalf is the half-size of the generous square hit area
	// around an event glyph.
	EventHitHalf = 12.0

	// CurveSampleStep is the Bézier parameter step used when sampling
	// connection curves.
	CurveSampleStep = 0.02

	// CurveHitDistance accepts a pointer within this many pixels of a
	// sampled curve point.
	CurveHitDistance = 10.0
)

// Kind identifies what a pick resolved to.
type Kind int

const (
	KindThinker Kind = iota
	KindNote
	KindEvent
	KindConnection
)

// Target is the topmost object under a pointer position.
type Target struct {
	Kind Kind
	ID   string
}

// Pick resolves the topmost object under p, in draw-stack priority: sticky
// notes (topmost-drawn, i.e. reverse list order), then thinker labels, then
// dated events, then connection curves. Returns nil when nothing is hit.
func Pick(p geometry.Point2D, f *render.Frame) *Target {
	if f == nil || f.Table == nil {
		return nil
	}

	// Notes draw last, so the last note in list order is topmost.
	for i := len(f.Notes) - 1; i >= 0; i-- {
		n := f.Notes[i]
		if rect, ok := f.Table.Notes[n.ID]; ok && rect.Contains(p) {
			return &Target{Kind: KindNote, ID: n.ID}
		}
	}

	for i := len(f.Thinkers) - 1; i >= 0; i-- {
		th := f.Thinkers[i]
		if rect, ok := f.Table.Thinkers[th.ID]; ok && rect.Contains(p) {
			return &Target{Kind: KindThinker, ID: th.ID}
		}
	}

	for _, ev := range f.Events {
		pos, ok := f.Table.Events[ev.ID]
		if !ok {
			continue
		}
		hit := geometry.NewRect(pos.X-EventHitHalf, pos.Y-EventHitHalf, 2*EventHitHalf, 2*EventHitHalf)
		if hit.Contains(p) {
			return &Target{Kind: KindEvent, ID: ev.ID}
		}
	}

	for _, pc := range f.Curves {
		if pc.Curve.DistanceTo(p, CurveSampleStep) <= CurveHitDistance {
			return &Target{Kind: KindConnection, ID: pc.Conn.ID}
		}
	}

	return nil
}
