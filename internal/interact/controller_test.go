package interact

import (
	"testing"
	"time"

	"ideatlas/internal/layout"
	"ideatlas/internal/model"
	"ideatlas/internal/render"
	"ideatlas/internal/timescale"
	"ideatlas/pkg/geometry"
)

func yr(y int) *int { return &y }

type recorder struct {
	thinkerClicks []string
	canvasClicks  []int
	drags         []struct {
		id      string
		year    int
		offsetY float64
	}
	noteDrags []struct {
		id   string
		x, y float64
	}
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		ThinkerClicked: func(id string, mods Modifiers) {
			r.thinkerClicks = append(r.thinkerClicks, id)
		},
		CanvasClicked: func(year int, pos geometry.Point2D, mods Modifiers) {
			r.canvasClicks = append(r.canvasClicks, year)
		},
		ThinkerDragged: func(id string, year int, offsetY float64) {
			r.drags = append(r.drags, struct {
				id      string
				year    int
				offsetY float64
			}{id, year, offsetY})
		},
		NoteDragged: func(id string, x, y float64) {
			r.noteDrags = append(r.noteDrags, struct {
				id   string
				x, y float64
			}{id, x, y})
		},
	}
}

func testFrame(t *testing.T) *render.Frame {
	t.Helper()
	f := render.BuildFrame(render.BuildInput{
		Thinkers: []model.Thinker{
			{ID: "kant", Name: "Immanuel Kant", BirthYear: yr(1724), DeathYear: yr(1804)},
		},
		Notes: []model.StickyNote{
			{ID: "n1", Title: "Note", X: 1500, Y: 900, OnCanvas: true},
		},
		Camera:   timescale.NewCamera(),
		Viewport: geometry.NewSize(1280, 800),
	}, layout.NewEngine())
	if _, ok := f.Table.Thinkers["kant"]; !ok {
		t.Fatal("fixture thinker not placed")
	}
	return f
}

// fakeClock advances only when told, so the suppression window is exact.
type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestController(rec *recorder) (*Controller, *timescale.Camera, *fakeClock) {
	cam := timescale.NewCamera()
	clock := &fakeClock{now: time.Unix(1000, 0)}
	ctrl := NewController(&cam, rec.callbacks())
	ctrl.Now = clock.Now
	return ctrl, &cam, clock
}

func TestClickSelectsThinker(t *testing.T) {
	f := testFrame(t)
	rec := &recorder{}
	ctrl, _, _ := newTestController(rec)

	p := f.Table.Thinkers["kant"].Center()
	ctrl.PointerDown(p, Modifiers{}, f)
	ctrl.PointerUp(p, Modifiers{}, f)

	if len(rec.thinkerClicks) != 1 || rec.thinkerClicks[0] != "kant" {
		t.Fatalf("clicks = %v, want [kant]", rec.thinkerClicks)
	}
	if len(rec.drags) != 0 {
		t.Fatalf("unmoved press committed a drag: %v", rec.drags)
	}
}

func TestSmallJitterStaysAClick(t *testing.T) {
	f := testFrame(t)
	rec := &recorder{}
	ctrl, _, _ := newTestController(rec)

	p := f.Table.Thinkers["kant"].Center()
	ctrl.PointerDown(p, Modifiers{}, f)
	ctrl.PointerMove(p.Add(geometry.Point2D{X: DragThreshold - 1}), f)
	ctrl.PointerUp(p.Add(geometry.Point2D{X: DragThreshold - 1}), Modifiers{}, f)

	if len(rec.thinkerClicks) != 1 {
		t.Fatalf("sub-threshold movement lost the click: %v", rec.thinkerClicks)
	}
	if len(rec.drags) != 0 {
		t.Fatalf("sub-threshold movement committed a drag: %v", rec.drags)
	}
}

func TestExactThresholdDisplacementIsADrag(t *testing.T) {
	f := testFrame(t)
	rec := &recorder{}
	ctrl, _, _ := newTestController(rec)

	p := f.Table.Thinkers["kant"].Center()
	ctrl.PointerDown(p, Modifiers{}, f)
	ctrl.PointerMove(p.Add(geometry.Point2D{X: DragThreshold}), f)
	ctrl.PointerUp(p.Add(geometry.Point2D{X: DragThreshold}), Modifiers{}, f)

	if len(rec.drags) != 1 {
		t.Fatalf("threshold displacement must commit a drag, got %v", rec.drags)
	}
	if len(rec.thinkerClicks) != 0 {
		t.Fatalf("threshold displacement also dispatched a click: %v", rec.thinkerClicks)
	}
}

func TestDragCommitsAndSuppressesClick(t *testing.T) {
	f := testFrame(t)
	rec := &recorder{}
	ctrl, cam, clock := newTestController(rec)

	rect := f.Table.Thinkers["kant"]
	start := rect.Center()
	end := start.Add(geometry.Point2D{X: 80, Y: -30})

	ctrl.PointerDown(start, Modifiers{}, f)
	ctrl.PointerMove(end, f)
	if ov := ctrl.Overrides(); ov == nil || ov["kant"] != end {
		t.Fatalf("override during drag = %v, want %v", ov, end)
	}
	ctrl.PointerUp(end, Modifiers{}, f)

	if len(rec.drags) != 1 {
		t.Fatalf("drags = %v, want one commit", rec.drags)
	}
	if len(rec.thinkerClicks) != 0 {
		t.Fatalf("drag also dispatched a click: %v", rec.thinkerClicks)
	}

	// The committed year is the dropped center's position on the axis.
	wantYear := f.Mapper.XToYear(end.X-cam.OffsetX, f.Viewport.Width, cam.Scale)
	if rec.drags[0].year != wantYear {
		t.Errorf("committed year %d, want %d", rec.drags[0].year, wantYear)
	}
	wantOffset := f.Mapper.UnscaleStored(
		end.Y-f.Table.AxisY+rect.Height/2+layout.BaseElevation, f.Viewport.Width)
	if rec.drags[0].offsetY != wantOffset {
		t.Errorf("committed offset %v, want %v", rec.drags[0].offsetY, wantOffset)
	}

	// The click that lands right after the drop is swallowed...
	p := f.Table.Thinkers["kant"].Center()
	ctrl.PointerDown(p, Modifiers{}, f)
	ctrl.PointerUp(p, Modifiers{}, f)
	if len(rec.thinkerClicks) != 0 {
		t.Fatalf("click inside suppression window dispatched: %v", rec.thinkerClicks)
	}

	// ...but a later one is not.
	clock.Advance(ClickSuppressWindow + time.Millisecond)
	ctrl.PointerDown(p, Modifiers{}, f)
	ctrl.PointerUp(p, Modifiers{}, f)
	if len(rec.thinkerClicks) != 1 {
		t.Fatalf("click after suppression window lost: %v", rec.thinkerClicks)
	}
}

func TestNoteDragCommitsStoredUnits(t *testing.T) {
	f := testFrame(t)
	rec := &recorder{}
	ctrl, cam, _ := newTestController(rec)

	rect := f.Table.Notes["n1"]
	origin := geometry.Point2D{X: rect.X, Y: rect.Y}
	grab := geometry.Point2D{X: rect.X + 10, Y: rect.Y + 10}
	drop := grab.Add(geometry.Point2D{X: -40, Y: 25})

	ctrl.PointerDown(grab, Modifiers{}, f)
	ctrl.PointerMove(drop, f)
	ctrl.PointerUp(drop, Modifiers{}, f)

	if len(rec.noteDrags) != 1 {
		t.Fatalf("note drags = %v, want one commit", rec.noteDrags)
	}
	wantX := f.Mapper.UnscaleStored(origin.X-40-cam.OffsetX, f.Viewport.Width)
	wantY := f.Mapper.UnscaleStored(origin.Y+25-cam.OffsetY, f.Viewport.Width)
	if rec.noteDrags[0].x != wantX || rec.noteDrags[0].y != wantY {
		t.Errorf("committed (%v, %v), want (%v, %v)",
			rec.noteDrags[0].x, rec.noteDrags[0].y, wantX, wantY)
	}
}

func TestPanIsNotAClick(t *testing.T) {
	f := testFrame(t)
	rec := &recorder{}
	ctrl, cam, _ := newTestController(rec)

	start := geometry.Point2D{X: 30, Y: 700}
	ctrl.PointerDown(start, Modifiers{}, f)
	ctrl.PointerMove(start.Add(geometry.Point2D{X: -60}), f)
	ctrl.PointerUp(start.Add(geometry.Point2D{X: -60}), Modifiers{}, f)

	if cam.OffsetX == 0 {
		t.Error("pan did not move the camera")
	}
	if len(rec.canvasClicks) != 0 || len(rec.thinkerClicks) != 0 {
		t.Errorf("pan dispatched a click: canvas=%v thinkers=%v", rec.canvasClicks, rec.thinkerClicks)
	}
}

func TestCanvasClickGating(t *testing.T) {
	f := testFrame(t)
	rec := &recorder{}
	ctrl, _, _ := newTestController(rec)

	empty := geometry.Point2D{X: 30, Y: 700}

	// Plain empty-canvas click: nothing.
	ctrl.PointerDown(empty, Modifiers{}, f)
	ctrl.PointerUp(empty, Modifiers{}, f)
	if len(rec.canvasClicks) != 0 {
		t.Fatalf("ungated canvas click dispatched: %v", rec.canvasClicks)
	}

	// The open/create modifier unlocks it.
	ctrl.PointerDown(empty, Modifiers{Ctrl: true}, f)
	ctrl.PointerUp(empty, Modifiers{Ctrl: true}, f)
	if len(rec.canvasClicks) != 1 {
		t.Fatalf("ctrl canvas click lost: %v", rec.canvasClicks)
	}

	// Place mode unlocks it without the modifier.
	ctrl.Mode = ModePlace
	ctrl.PointerDown(empty, Modifiers{}, f)
	ctrl.PointerUp(empty, Modifiers{}, f)
	if len(rec.canvasClicks) != 2 {
		t.Fatalf("place-mode canvas click lost: %v", rec.canvasClicks)
	}
}

func TestCancelDiscardsGesture(t *testing.T) {
	f := testFrame(t)
	rec := &recorder{}
	ctrl, _, _ := newTestController(rec)

	start := f.Table.Thinkers["kant"].Center()
	ctrl.PointerDown(start, Modifiers{}, f)
	ctrl.PointerMove(start.Add(geometry.Point2D{X: 100}), f)
	ctrl.Cancel()

	if ctrl.Dragging() {
		t.Error("cancel left a drag active")
	}
	if ov := ctrl.Overrides(); ov != nil {
		t.Errorf("cancel left overrides: %v", ov)
	}
	if len(rec.drags) != 0 {
		t.Errorf("cancel committed a drag: %v", rec.drags)
	}
}

func TestWheelZoomAndPan(t *testing.T) {
	f := testFrame(t)
	rec := &recorder{}
	ctrl, cam, _ := newTestController(rec)
	p := geometry.Point2D{X: 640, Y: 400}

	before := cam.Scale
	ctrl.Wheel(0, 1, p, Modifiers{}, f)
	if cam.Scale != before*ZoomStep {
		t.Errorf("zoom in: scale %v, want %v", cam.Scale, before*ZoomStep)
	}

	// Zooming back out clamps at the viewport-filling floor.
	for i := 0; i < 20; i++ {
		ctrl.Wheel(0, -1, p, Modifiers{}, f)
	}
	if min := f.Mapper.MinScale(f.Viewport.Width); cam.Scale < min {
		t.Errorf("zoom out went below the floor: %v < %v", cam.Scale, min)
	}

	// Shift-wheel pans instead of zooming.
	scale := cam.Scale
	offY := cam.OffsetY
	ctrl.Wheel(0, 4, p, Modifiers{Shift: true}, f)
	if cam.Scale != scale {
		t.Error("shift-wheel changed the scale")
	}
	if cam.OffsetY != offY+4*WheelPanMultiplier {
		t.Errorf("shift-wheel pan: offsetY %v", cam.OffsetY)
	}
}
