// Package layout places thinker labels, sticky notes, and dated events on
// the canvas for one frame. The renderer and the hit-tester both consume
// the resulting table, which keeps visuals and picking in sync.
package layout

import (
	"math"
	"sort"

	"golang.org/x/image/font"

	"ideatlas/internal/model"
	"ideatlas/internal/timescale"
	"ideatlas/pkg/geometry"
)

// Layout tuning constants. Gaps are constant, not zoom-scaled: text
// legibility is resolution-independent once rendered, so overlap thresholds
// live in the same pixel units as the measured text.
const (
	LabelPaddingX = 8.0
	LabelPaddingY = 5.0
	MinGapX       = 6.0
	MinGapY       = 4.0

	// BaseElevation lifts default labels just above the axis line.
	BaseElevation = 10.0

	// EventElevation is the fixed height of event glyphs above the axis.
	EventElevation = 60.0

	// DefaultMaxAttempts bounds the collision displacement loop. Past the
	// cap the candidate position is accepted as-is: best-effort placement
	// in pathological density, never an infinite loop.
	DefaultMaxAttempts = 30

	// Sticky note card bounds.
	NoteMinWidth  = 120.0
	NoteMaxWidth  = 260.0
	NotePadding   = 10.0
	NoteTitleRoom = 24.0
)

// Table is the per-frame position table.
type Table struct {
	Thinkers map[string]geometry.Rect
	Notes    map[string]geometry.Rect
	Events   map[string]geometry.Point2D
	AxisY    float64
}

// Input carries everything one layout pass depends on.
type Input struct {
	Thinkers []model.Thinker
	Notes    []model.StickyNote
	Events   []model.DatedEvent
	Viewport geometry.Size
	Camera   timescale.Camera
	Mapper   *timescale.Mapper

	// Overrides replaces an object's position with a transient drag
	// position (rect center for thinkers, card origin for notes).
	Overrides map[string]geometry.Point2D
}

// Engine computes collision-free label placements. The zero value is not
// usable; construct with NewEngine.
type Engine struct {
	face font.Face

	// MaxAttempts is the displacement retry budget per label. Exposed so
	// tests can exercise the bounded-degradation path deliberately.
	MaxAttempts int
}

// NewEngine creates a layout engine with the default font face.
func NewEngine() *Engine {
	return &Engine{face: NewFace(DefaultFontSize), MaxAttempts: DefaultMaxAttempts}
}

// Face returns the measuring face so the renderer can draw with it.
func (e *Engine) Face() font.Face {
	return e.face
}

// LabelSize measures a thinker label's box: text metrics plus fixed padding.
func (e *Engine) LabelSize(name string) (w, h float64) {
	return measureString(e.face, name) + 2*LabelPaddingX,
		lineHeight(e.face) + 2*LabelPaddingY
}

// Layout produces the frame's position table. Thinkers start at their base
// position anchored to the axis and are displaced vertically until they no
// longer overlap any already-placed label; resolution order is x ascending
// (ties by id) so placement is deterministic regardless of data order.
// Dated events are placed at fixed elevation and never displaced.
func (e *Engine) Layout(in Input) *Table {
	t := &Table{
		Thinkers: make(map[string]geometry.Rect, len(in.Thinkers)),
		Notes:    make(map[string]geometry.Rect, len(in.Notes)),
		Events:   make(map[string]geometry.Point2D, len(in.Events)),
		AxisY:    in.Viewport.Height/2 + in.Camera.OffsetY,
	}
	if in.Mapper == nil || in.Viewport.Width <= 0 || in.Viewport.Height <= 0 {
		return t
	}

	e.placeThinkers(in, t)

	for _, n := range in.Notes {
		if !n.OnCanvas {
			continue
		}
		t.Notes[n.ID] = e.noteRect(n, in)
	}

	for _, ev := range in.Events {
		x := in.Mapper.YearToX(ev.Year, in.Viewport.Width, in.Camera.Scale) + in.Camera.OffsetX
		t.Events[ev.ID] = geometry.Point2D{X: x, Y: t.AxisY - EventElevation}
	}

	return t
}

type candidate struct {
	id    string
	rect  geometry.Rect
	baseY float64
}

func (e *Engine) placeThinkers(in Input, t *Table) {
	attempts := e.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	var placed []geometry.Rect
	var pending []candidate

	for _, th := range in.Thinkers {
		w, h := e.LabelSize(th.Name)

		if pos, ok := in.Overrides[th.ID]; ok {
			// A dragged label follows the pointer verbatim; it still
			// occupies space so later labels avoid it.
			r := geometry.NewRect(pos.X-w/2, pos.Y-h/2, w, h)
			t.Thinkers[th.ID] = r
			placed = append(placed, r)
			continue
		}

		var cx float64
		if year, ok := th.PlacementYear(); ok {
			cx = in.Mapper.YearToX(year, in.Viewport.Width, in.Camera.Scale) + in.Camera.OffsetX
		} else if th.PosX != nil {
			cx = in.Mapper.ScaleStored(*th.PosX, in.Viewport.Width) + in.Camera.OffsetX
		} else {
			continue // unplaced
		}

		var offset float64
		if th.PosY != nil {
			offset = in.Mapper.ScaleStored(*th.PosY, in.Viewport.Width)
		}
		top := t.AxisY + offset - h - BaseElevation

		pending = append(pending, candidate{
			id:    th.ID,
			rect:  geometry.NewRect(cx-w/2, top, w, h),
			baseY: top,
		})
	}

	sort.Slice(pending, func(i, j int) bool {
		if pending[i].rect.X != pending[j].rect.X {
			return pending[i].rect.X < pending[j].rect.X
		}
		return pending[i].id < pending[j].id
	})

	for _, c := range pending {
		step := c.rect.Height + MinGapY
		r := c.rect
		for attempt := 0; attempt < attempts; attempt++ {
			if !overlapsAny(r, placed) {
				break
			}
			// Alternate upward then downward in growing steps.
			n := float64(attempt/2 + 1)
			if attempt%2 == 0 {
				r.Y = c.baseY - n*step
			} else {
				r.Y = c.baseY + n*step
			}
		}
		t.Thinkers[c.id] = r
		placed = append(placed, r)
	}
}

// overlapsAny tests r against placed labels with the minimum gaps applied
// on each axis.
func overlapsAny(r geometry.Rect, placed []geometry.Rect) bool {
	rc := r.Center()
	for _, p := range placed {
		pc := p.Center()
		if math.Abs(rc.X-pc.X) < (r.Width+p.Width)/2+MinGapX &&
			math.Abs(rc.Y-pc.Y) < (r.Height+p.Height)/2+MinGapY {
			return true
		}
	}
	return false
}

// noteRect sizes a sticky note card to its title/content preview within the
// min/max width bound and positions it at its stored pixel anchor.
func (e *Engine) noteRect(n model.StickyNote, in Input) geometry.Rect {
	preview := n.Title
	if measureString(e.face, n.Content) > measureString(e.face, preview) {
		preview = n.Content
	}
	w := measureString(e.face, preview) + 2*NotePadding
	if w < NoteMinWidth {
		w = NoteMinWidth
	}
	if w > NoteMaxWidth {
		w = NoteMaxWidth
	}

	lines := 0
	if n.Title != "" {
		lines++
	}
	if n.Content != "" {
		lines++
	}
	if lines == 0 {
		lines = 1
	}
	h := 2*NotePadding + float64(lines)*NoteTitleRoom

	var x, y float64
	if pos, ok := in.Overrides[n.ID]; ok {
		x, y = pos.X, pos.Y
	} else {
		x = in.Mapper.ScaleStored(n.X, in.Viewport.Width) + in.Camera.OffsetX
		y = in.Mapper.ScaleStored(n.Y, in.Viewport.Width) + in.Camera.OffsetY
	}
	return geometry.NewRect(x, y, w, h)
}
