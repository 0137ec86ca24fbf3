// Package canvas provides the interactive timeline canvas widget: pan,
// zoom, drag, and click resolution over the rendered genealogy diagram.
package canvas

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"ideatlas/internal/app"
	"ideatlas/internal/interact"
	"ideatlas/internal/layout"
	"ideatlas/internal/model"
	"ideatlas/internal/render"
	"ideatlas/internal/timescale"
	"ideatlas/pkg/geometry"
)

// TimelineCanvas displays the genealogy diagram and resolves pointer input
// into semantic actions. It owns the camera and the per-frame position
// table; all data it draws is read from the application state each frame.
type TimelineCanvas struct {
	widget.BaseWidget

	state    *app.State
	raster   *fynecanvas.Raster
	engine   *layout.Engine
	renderer *render.Renderer

	cam  timescale.Camera
	ctrl *interact.Controller

	frame      *render.Frame
	frameDirty bool
	viewport   geometry.Size

	// External callbacks, invoked after the default state updates.
	onThinkerClicked    func(id string, mods interact.Modifiers)
	onConnectionClicked func(id string)
	onEventClicked      func(id string)
	onNoteClicked       func(id string)
	onCanvasClicked     func(year int, pos geometry.Point2D, mods interact.Modifiers)
	onThinkerDragged    func(id string, anchorYear int, offsetY float64)
	onNoteDragged       func(id string, x, y float64)
}

// NewTimelineCanvas creates the canvas widget over the application state.
func NewTimelineCanvas(state *app.State) *TimelineCanvas {
	engine := layout.NewEngine()
	c := &TimelineCanvas{
		state:      state,
		engine:     engine,
		renderer:   render.NewRenderer(engine),
		cam:        timescale.NewCamera(),
		frameDirty: true,
	}

	c.ctrl = interact.NewController(&c.cam, interact.Callbacks{
		ThinkerClicked: func(id string, mods interact.Modifiers) {
			if mods.Shift {
				state.ToggleBulk(id)
			} else {
				state.SelectThinker(id)
			}
			if c.onThinkerClicked != nil {
				c.onThinkerClicked(id, mods)
			}
		},
		ConnectionClicked: func(id string) {
			if c.onConnectionClicked != nil {
				c.onConnectionClicked(id)
			}
		},
		EventClicked: func(id string) {
			if c.onEventClicked != nil {
				c.onEventClicked(id)
			}
		},
		NoteClicked: func(id string) {
			if c.onNoteClicked != nil {
				c.onNoteClicked(id)
			}
		},
		CanvasClicked: func(year int, pos geometry.Point2D, mods interact.Modifiers) {
			if c.onCanvasClicked != nil {
				c.onCanvasClicked(year, pos, mods)
			}
		},
		ThinkerDragged: func(id string, anchorYear int, offsetY float64) {
			state.MoveThinker(id, anchorYear, offsetY)
			if c.onThinkerDragged != nil {
				c.onThinkerDragged(id, anchorYear, offsetY)
			}
		},
		NoteDragged: func(id string, x, y float64) {
			state.MoveNote(id, x, y)
			if c.onNoteDragged != nil {
				c.onNoteDragged(id, x, y)
			}
		},
	})

	c.raster = fynecanvas.NewRaster(c.draw)
	c.raster.ScaleMode = fynecanvas.ImageScalePixels

	invalidate := func(interface{}) { c.Invalidate() }
	state.On(app.EventDataChanged, invalidate)
	state.On(app.EventSelectionChanged, invalidate)
	state.On(app.EventFilterChanged, invalidate)
	state.On(app.EventDocumentLoaded, func(interface{}) {
		c.ResetCamera()
	})

	c.ExtendBaseWidget(c)
	return c
}

// Invalidate marks the frame stale and schedules a redraw.
func (c *TimelineCanvas) Invalidate() {
	c.frameDirty = true
	c.raster.Refresh()
}

// ResetCamera returns to the home view: minimum zoom, no pan.
func (c *TimelineCanvas) ResetCamera() {
	c.cam = timescale.NewCamera()
	c.frameDirty = true
	if c.frame != nil {
		c.cam.Scale = c.frame.Mapper.MinScale(c.viewport.Width)
	}
	c.Invalidate()
}

// Camera returns the current camera value (for the status display).
func (c *TimelineCanvas) Camera() timescale.Camera {
	return c.cam
}

// ZoomIn zooms toward the viewport center.
func (c *TimelineCanvas) ZoomIn() { c.zoomCenter(interact.ZoomStep) }

// ZoomOut zooms out from the viewport center.
func (c *TimelineCanvas) ZoomOut() { c.zoomCenter(1 / interact.ZoomStep) }

func (c *TimelineCanvas) zoomCenter(factor float64) {
	f := c.ensureFrame()
	if f == nil {
		return
	}
	c.cam.ZoomAt(c.viewport.Width/2, factor, f.Mapper.MinScale(c.viewport.Width))
	c.cam.ClampPanX(f.Mapper.WindowWidth(c.viewport.Width, c.cam.Scale), c.viewport.Width)
	c.Invalidate()
}

// SetPlaceMode arms or disarms click-to-place for the next canvas click.
func (c *TimelineCanvas) SetPlaceMode(on bool) {
	if on {
		c.ctrl.Mode = interact.ModePlace
	} else {
		c.ctrl.Mode = interact.ModeNormal
	}
}

// CancelGesture discards any in-progress gesture (Escape key).
func (c *TimelineCanvas) CancelGesture() {
	c.ctrl.Cancel()
	c.Invalidate()
}

// Callback registration, invoked on user actions only.

func (c *TimelineCanvas) OnThinkerClicked(cb func(id string, mods interact.Modifiers)) {
	c.onThinkerClicked = cb
}
func (c *TimelineCanvas) OnConnectionClicked(cb func(id string)) { c.onConnectionClicked = cb }
func (c *TimelineCanvas) OnEventClicked(cb func(id string))      { c.onEventClicked = cb }
func (c *TimelineCanvas) OnNoteClicked(cb func(id string))       { c.onNoteClicked = cb }
func (c *TimelineCanvas) OnCanvasClicked(cb func(year int, pos geometry.Point2D, mods interact.Modifiers)) {
	c.onCanvasClicked = cb
}
func (c *TimelineCanvas) OnThinkerDragged(cb func(id string, year int, offsetY float64)) {
	c.onThinkerDragged = cb
}
func (c *TimelineCanvas) OnNoteDragged(cb func(id string, x, y float64)) { c.onNoteDragged = cb }

// StoredPoint converts a world position (as delivered by the canvas click
// callback) into stored document units.
func (c *TimelineCanvas) StoredPoint(p geometry.Point2D) geometry.Point2D {
	f := c.ensureFrame()
	if f == nil {
		return p
	}
	return geometry.Point2D{
		X: f.Mapper.UnscaleStored(p.X, c.viewport.Width),
		Y: f.Mapper.UnscaleStored(p.Y, c.viewport.Width),
	}
}

// ensureFrame rebuilds the frame when data, camera, or viewport changed.
// The same frame serves the renderer and the hit-tester, which keeps
// picking aligned with what is on screen.
func (c *TimelineCanvas) ensureFrame() *render.Frame {
	if c.viewport.Width <= 0 || c.viewport.Height <= 0 {
		return nil
	}
	if c.frame != nil && !c.frameDirty {
		return c.frame
	}

	selected := c.state.SelectedTimeline()
	c.frame = render.BuildFrame(render.BuildInput{
		Thinkers:         c.state.Thinkers,
		Connections:      c.state.Connections,
		Events:           c.state.Events,
		Notes:            onCanvasNotes(c.state.Notes),
		Timelines:        c.state.Timelines,
		SelectedTimeline: selected,
		Filter:           c.state.Filter,
		Selection:        c.state.Selection,
		Camera:           c.cam,
		Viewport:         c.viewport,
		Overrides:        c.ctrl.Overrides(),
	}, c.engine)
	c.frameDirty = false
	return c.frame
}

// onCanvasNotes filters to the notes that live on the canvas.
func onCanvasNotes(notes []model.StickyNote) []model.StickyNote {
	out := make([]model.StickyNote, 0, len(notes))
	for _, n := range notes {
		if n.OnCanvas {
			out = append(out, n)
		}
	}
	return out
}

// draw is the raster drawing function; it runs on every refresh.
func (c *TimelineCanvas) draw(w, h int) image.Image {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	vp := geometry.NewSize(float64(w), float64(h))
	if vp != c.viewport {
		c.viewport = vp
		c.frameDirty = true
	}

	f := c.ensureFrame()
	if f == nil {
		return image.NewRGBA(image.Rect(0, 0, w, h))
	}

	// The viewport-fill invariant: the window may never render narrower
	// than the viewport, so the scale floor tracks viewport changes.
	min := f.Mapper.MinScale(vp.Width)
	if c.cam.Scale < min {
		c.cam.ClampScale(min)
		c.frameDirty = true
		f = c.ensureFrame()
	}

	img := c.renderer.Render(f)
	if img == nil {
		return image.NewRGBA(image.Rect(0, 0, w, h))
	}
	return img
}

// Pointer event adaptation. The controller does the actual gesture work.

func pointOf(pos fyne.Position) geometry.Point2D {
	return geometry.Point2D{X: float64(pos.X), Y: float64(pos.Y)}
}

func currentModifiers() interact.Modifiers {
	if d, ok := fyne.CurrentApp().Driver().(desktop.Driver); ok {
		m := d.CurrentKeyModifiers()
		return interact.Modifiers{
			Ctrl:  m&fyne.KeyModifierControl != 0,
			Shift: m&fyne.KeyModifierShift != 0,
			Alt:   m&fyne.KeyModifierAlt != 0,
			Meta:  m&fyne.KeyModifierSuper != 0,
		}
	}
	return interact.Modifiers{}
}

// MouseDown implements desktop.Mouseable.
func (c *TimelineCanvas) MouseDown(ev *desktop.MouseEvent) {
	if f := c.ensureFrame(); f != nil {
		c.ctrl.PointerDown(pointOf(ev.Position), currentModifiers(), f)
	}
}

// MouseUp implements desktop.Mouseable.
func (c *TimelineCanvas) MouseUp(ev *desktop.MouseEvent) {
	if f := c.ensureFrame(); f != nil {
		c.ctrl.PointerUp(pointOf(ev.Position), currentModifiers(), f)
		c.Invalidate()
	}
}

// Dragged implements fyne.Draggable; it feeds pointer movement while a
// button is held.
func (c *TimelineCanvas) Dragged(ev *fyne.DragEvent) {
	if f := c.ensureFrame(); f != nil {
		c.ctrl.PointerMove(pointOf(ev.Position), f)
		c.Invalidate()
	}
}

// DragEnd implements fyne.Draggable. MouseUp carries the commit; nothing
// to do here.
func (c *TimelineCanvas) DragEnd() {}

// MouseIn implements desktop.Hoverable.
func (c *TimelineCanvas) MouseIn(*desktop.MouseEvent) {}

// MouseMoved implements desktop.Hoverable.
func (c *TimelineCanvas) MouseMoved(ev *desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable: leaving the canvas discards any
// in-progress gesture.
func (c *TimelineCanvas) MouseOut() {
	c.CancelGesture()
}

// Scrolled implements fyne.Scrollable: wheel zooms toward the pointer, or
// pans when the pan modifier is held.
func (c *TimelineCanvas) Scrolled(ev *fyne.ScrollEvent) {
	f := c.ensureFrame()
	if f == nil {
		return
	}
	c.ctrl.Wheel(float64(ev.Scrolled.DX), float64(ev.Scrolled.DY), pointOf(ev.Position), currentModifiers(), f)
	c.Invalidate()
}

// CreateRenderer implements fyne.Widget.
func (c *TimelineCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.raster)
}
