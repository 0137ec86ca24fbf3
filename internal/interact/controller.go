// Package interact owns the pan/zoom/drag state machine. It is driven by
// abstract pointer events so the gesture logic is testable without a
// display; ui/canvas adapts the toolkit's events into it.
package interact

import (
	"math"
	"time"

	"ideatlas/internal/hittest"
	"ideatlas/internal/layout"
	"ideatlas/internal/render"
	"ideatlas/internal/timescale"
	"ideatlas/pkg/geometry"
)

const (
	// DragThreshold is the pointer displacement at which a gesture becomes
	// a drag rather than a click.
	DragThreshold = 5.0

	// ClickSuppressWindow swallows the click event that immediately
	// follows a committed drag so click handlers don't double-fire.
	ClickSuppressWindow = 50 * time.Millisecond

	// WheelPanMultiplier converts wheel deltas to pan pixels.
	WheelPanMultiplier = 1.5

	// ZoomStep is the per-notch wheel zoom factor.
	ZoomStep = 1.25
)

// Modifiers are the modifier keys held during a pointer event.
type Modifiers struct {
	Ctrl  bool
	Shift bool
	Alt   bool
	Meta  bool
}

// Mode gates what an empty-canvas click means.
type Mode int

const (
	// ModeNormal: empty-canvas presses pan; ctrl-click emits a canvas click.
	ModeNormal Mode = iota
	// ModePlace: the next empty-canvas click places an object instead of
	// panning.
	ModePlace
)

// Callbacks are invoked on completed user actions, never internally. The
// controller proposes committed positions through them; it never persists.
type Callbacks struct {
	ThinkerClicked    func(id string, mods Modifiers)
	ConnectionClicked func(id string)
	EventClicked      func(id string)
	NoteClicked       func(id string)

	// CanvasClicked fires for empty-canvas clicks, gated by mode and
	// modifier. pos is in world coordinates (camera pan removed).
	CanvasClicked func(year int, pos geometry.Point2D, mods Modifiers)

	// ThinkerDragged commits a drag as a proposed anchor year plus a
	// vertical offset from the axis in stored pixel units.
	ThinkerDragged func(id string, anchorYear int, offsetY float64)

	// NoteDragged commits a dragged note's stored pixel position.
	NoteDragged func(id string, x, y float64)
}

type gestureState int

const (
	stateIdle gestureState = iota
	statePanning
	stateDragThinker
	stateDragNote
)

// Controller translates pointer and wheel events into camera updates and
// object repositioning. Exactly one gesture is active at a time.
type Controller struct {
	Camera    *timescale.Camera
	Callbacks Callbacks
	Mode      Mode

	// Now is an injectable clock for the click-suppression window.
	Now func() time.Time

	state      gestureState
	downPos    geometry.Point2D
	lastPos    geometry.Point2D
	moved      bool
	dragID     string
	grabOffset geometry.Point2D

	suppressUntil time.Time
}

// NewController creates a controller over the given camera.
func NewController(cam *timescale.Camera, cb Callbacks) *Controller {
	return &Controller{Camera: cam, Callbacks: cb, Now: time.Now}
}

// Dragging reports whether a drag gesture is in progress.
func (c *Controller) Dragging() bool {
	return c.state == stateDragThinker || c.state == stateDragNote
}

// Overrides returns the transient position of the dragged object for frame
// building: the label center for a thinker, the card origin for a note.
// Nil when no drag has crossed the movement threshold.
func (c *Controller) Overrides() map[string]geometry.Point2D {
	if !c.Dragging() || !c.moved {
		return nil
	}
	return map[string]geometry.Point2D{c.dragID: c.lastPos.Sub(c.grabOffset)}
}

// PointerDown begins a gesture. Presses on a draggable object arm a drag;
// presses on empty canvas arm a pan, unless a place mode or the open/create
// modifier reserves the click.
func (c *Controller) PointerDown(p geometry.Point2D, mods Modifiers, f *render.Frame) {
	if f == nil || f.Table == nil {
		return
	}
	c.downPos = p
	c.lastPos = p
	c.moved = false

	hit := hittest.Pick(p, f)
	if hit == nil {
		if c.Mode == ModePlace || mods.Ctrl {
			// Reserved for a canvas click on release.
			return
		}
		c.state = statePanning
		return
	}

	switch hit.Kind {
	case hittest.KindNote:
		if c.Callbacks.NoteDragged == nil {
			return
		}
		rect := f.Table.Notes[hit.ID]
		c.state = stateDragNote
		c.dragID = hit.ID
		c.grabOffset = p.Sub(geometry.Point2D{X: rect.X, Y: rect.Y})
	case hittest.KindThinker:
		if c.Callbacks.ThinkerDragged == nil {
			return
		}
		rect := f.Table.Thinkers[hit.ID]
		c.state = stateDragThinker
		c.dragID = hit.ID
		c.grabOffset = p.Sub(rect.Center())
	}
	// Events and connections only ever click; no gesture armed.
}

// PointerMove advances the active gesture.
func (c *Controller) PointerMove(p geometry.Point2D, f *render.Frame) {
	switch c.state {
	case statePanning:
		c.Camera.Pan(p.X-c.lastPos.X, p.Y-c.lastPos.Y)
		c.clampPan(f)
		c.moved = true
	case stateDragThinker, stateDragNote:
		if p.Distance(c.downPos) >= DragThreshold {
			c.moved = true
		}
	}
	c.lastPos = p
}

// PointerUp completes the gesture: a moved drag commits through the drag
// callback and suppresses the trailing click; anything else dispatches as a
// click to the hit-tested target or, for empty canvas, to the gated canvas
// click callback.
func (c *Controller) PointerUp(p geometry.Point2D, mods Modifiers, f *render.Frame) {
	state := c.state
	moved := c.moved
	dragID := c.dragID
	grab := c.grabOffset
	c.reset()

	if f == nil || f.Table == nil {
		return
	}

	if moved && state == stateDragThinker {
		c.commitThinker(dragID, p.Sub(grab), f)
		c.suppressUntil = c.Now().Add(ClickSuppressWindow)
		return
	}
	if moved && state == stateDragNote {
		c.commitNote(dragID, p.Sub(grab), f)
		c.suppressUntil = c.Now().Add(ClickSuppressWindow)
		return
	}
	if moved && state == statePanning {
		// A completed pan is not a click.
		return
	}
	if c.Now().Before(c.suppressUntil) {
		return
	}
	c.dispatchClick(p, mods, f)
}

// Cancel discards any in-progress gesture without side effects (Escape or
// pointer leaving the canvas).
func (c *Controller) Cancel() {
	c.reset()
}

func (c *Controller) reset() {
	c.state = stateIdle
	c.moved = false
	c.dragID = ""
	c.grabOffset = geometry.Point2D{}
}

func (c *Controller) commitThinker(id string, center geometry.Point2D, f *render.Frame) {
	if c.Callbacks.ThinkerDragged == nil {
		return
	}
	rect, ok := f.Table.Thinkers[id]
	if !ok {
		return
	}

	worldX := center.X - c.Camera.OffsetX
	year := f.Mapper.XToYear(worldX, f.Viewport.Width, c.Camera.Scale)

	// Invert the layout's base-y formula to recover the stored offset.
	screenOffset := center.Y - f.Table.AxisY + rect.Height/2 + layout.BaseElevation
	offsetY := f.Mapper.UnscaleStored(screenOffset, f.Viewport.Width)

	c.Callbacks.ThinkerDragged(id, year, offsetY)
}

func (c *Controller) commitNote(id string, origin geometry.Point2D, f *render.Frame) {
	if c.Callbacks.NoteDragged == nil {
		return
	}
	x := f.Mapper.UnscaleStored(origin.X-c.Camera.OffsetX, f.Viewport.Width)
	y := f.Mapper.UnscaleStored(origin.Y-c.Camera.OffsetY, f.Viewport.Width)
	c.Callbacks.NoteDragged(id, x, y)
}

func (c *Controller) dispatchClick(p geometry.Point2D, mods Modifiers, f *render.Frame) {
	if hit := hittest.Pick(p, f); hit != nil {
		switch hit.Kind {
		case hittest.KindThinker:
			if c.Callbacks.ThinkerClicked != nil {
				c.Callbacks.ThinkerClicked(hit.ID, mods)
			}
		case hittest.KindNote:
			if c.Callbacks.NoteClicked != nil {
				c.Callbacks.NoteClicked(hit.ID)
			}
		case hittest.KindEvent:
			if c.Callbacks.EventClicked != nil {
				c.Callbacks.EventClicked(hit.ID)
			}
		case hittest.KindConnection:
			if c.Callbacks.ConnectionClicked != nil {
				c.Callbacks.ConnectionClicked(hit.ID)
			}
		}
		return
	}

	// Empty canvas: gated by mode and modifier.
	if c.Mode != ModePlace && !mods.Ctrl {
		return
	}
	if c.Callbacks.CanvasClicked == nil {
		return
	}
	worldX := p.X - c.Camera.OffsetX
	year := f.Mapper.XToYear(worldX, f.Viewport.Width, c.Camera.Scale)
	pos := geometry.Point2D{X: worldX, Y: p.Y - c.Camera.OffsetY}
	c.Callbacks.CanvasClicked(year, pos, mods)
}

// Wheel handles scroll input: with the pan modifier held it translates the
// camera, otherwise it zooms the horizontal scale toward the pointer's x.
func (c *Controller) Wheel(dx, dy float64, p geometry.Point2D, mods Modifiers, f *render.Frame) {
	if f == nil {
		return
	}
	if mods.Shift {
		c.Camera.Pan(dx*WheelPanMultiplier, dy*WheelPanMultiplier)
		c.clampPan(f)
		return
	}

	factor := ZoomStep
	if dy < 0 {
		factor = 1 / ZoomStep
	} else if dy == 0 {
		if dx == 0 {
			return
		}
		factor = math.Pow(ZoomStep, dx/math.Abs(dx))
	}
	minScale := f.Mapper.MinScale(f.Viewport.Width)
	c.Camera.ZoomAt(p.X, factor, minScale)
	c.clampPan(f)
}

func (c *Controller) clampPan(f *render.Frame) {
	if f == nil {
		return
	}
	ww := f.Mapper.WindowWidth(f.Viewport.Width, c.Camera.Scale)
	c.Camera.ClampPanX(ww, f.Viewport.Width)
}
