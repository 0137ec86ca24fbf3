// Package render draws the timeline canvas: background grid, chronology
// axis with tiered ticks, dated-event glyphs, connection curves, thinker
// labels, and sticky notes, composited in a fixed z-order. Every frame is a
// full redraw; drawing is a pure function of the Frame value.
package render

import (
	"ideatlas/internal/layout"
	"ideatlas/internal/model"
	"ideatlas/internal/timescale"
	"ideatlas/pkg/geometry"
)

// Frame aggregates every input one rendered frame depends on. Building a
// new Frame is the single "something changed, redraw" dispatch point.
type Frame struct {
	Viewport geometry.Size
	Camera   timescale.Camera
	Mapper   *timescale.Mapper

	Thinkers    []model.Thinker // filtered, visible set
	Connections []model.Connection
	Events      []model.DatedEvent
	Notes       []model.StickyNote
	Selection   model.Selection

	Table  *layout.Table
	Curves []layout.PlacedConnection

	// Dragged marks objects currently following the pointer.
	Dragged map[string]geometry.Point2D
}

// BuildInput carries the externally-owned data a frame is derived from.
type BuildInput struct {
	Thinkers    []model.Thinker
	Connections []model.Connection
	Events      []model.DatedEvent
	Notes       []model.StickyNote
	Timelines   []model.Timeline

	SelectedTimeline *model.Timeline
	Filter           model.Filter
	Selection        model.Selection

	Camera   timescale.Camera
	Viewport geometry.Size

	// Overrides carries transient drag positions keyed by object id.
	Overrides map[string]geometry.Point2D
}

// BuildFrame resolves the chronology window, lays out the filtered data,
// and assembles the frame the renderer and hit-tester share. The range is
// resolved from the full data set so filtering doesn't shift the window;
// layout sees only the visible set.
func BuildFrame(in BuildInput, engine *layout.Engine) *Frame {
	rng := timescale.ResolveRange(in.SelectedTimeline, in.Thinkers, in.Timelines)
	mapper := timescale.NewMapper(rng)

	visible := in.Filter.Apply(in.Thinkers)

	table := engine.Layout(layout.Input{
		Thinkers:  visible,
		Notes:     in.Notes,
		Events:    in.Events,
		Viewport:  in.Viewport,
		Camera:    in.Camera,
		Mapper:    mapper,
		Overrides: in.Overrides,
	})

	conns := make([]model.Connection, 0, len(in.Connections))
	for _, c := range in.Connections {
		if in.Selection.ConnectionVisible(c) {
			conns = append(conns, c)
		}
	}

	return &Frame{
		Viewport:    in.Viewport,
		Camera:      in.Camera,
		Mapper:      mapper,
		Thinkers:    visible,
		Connections: conns,
		Events:      in.Events,
		Notes:       in.Notes,
		Selection:   in.Selection,
		Table:       table,
		Curves:      layout.ConnectionCurves(conns, table),
		Dragged:     in.Overrides,
	}
}
