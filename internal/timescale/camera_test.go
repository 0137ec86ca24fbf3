package timescale

import (
	"math"
	"testing"
)

func TestZoomAtKeepsPointerAnchor(t *testing.T) {
	m := NewMapper(Range{StartYear: 1600, EndYear: 1800})
	const w = 1280.0

	cam := NewCamera()
	cam.Scale = 2
	cam.OffsetX = -150

	year := 1750
	pointer := m.YearToX(year, w, cam.Scale) + cam.OffsetX

	for _, factor := range []float64{1.25, 1 / 1.25, 3} {
		cam.ZoomAt(pointer, factor, m.MinScale(w))
		after := m.YearToX(year, w, cam.Scale) + cam.OffsetX
		if math.Abs(after-pointer) > 1e-6 {
			t.Errorf("factor %v: year %d moved from %v to %v", factor, year, pointer, after)
		}
	}
}

func TestClampScale(t *testing.T) {
	cam := NewCamera()

	cam.Scale = 0.2
	cam.ClampScale(1.0 / ContentFraction)
	if cam.Scale != 1.0/ContentFraction {
		t.Errorf("under-min scale not clamped: %v", cam.Scale)
	}

	cam.Scale = MaxScale * 10
	cam.ClampScale(1)
	if cam.Scale != MaxScale {
		t.Errorf("over-max scale not clamped: %v", cam.Scale)
	}
}

func TestClampPanXWideWindow(t *testing.T) {
	const viewport = 1000.0
	const window = 5000.0

	cam := NewCamera()
	cam.OffsetX = 1e9
	cam.ClampPanX(window, viewport)
	hi := PanHardMarginFrac*viewport - PaddingLeft
	if cam.OffsetX != hi {
		t.Errorf("right clamp: got %v, want %v", cam.OffsetX, hi)
	}

	cam.OffsetX = -1e9
	cam.ClampPanX(window, viewport)
	lo := (1-PanHardMarginFrac)*viewport - PaddingLeft - window
	if cam.OffsetX != lo {
		t.Errorf("left clamp: got %v, want %v", cam.OffsetX, lo)
	}

	if lo > hi {
		t.Fatalf("clamp interval inverted: lo=%v hi=%v", lo, hi)
	}
}

func TestClampPanXNarrowWindow(t *testing.T) {
	const viewport = 1000.0
	const window = 400.0

	cam := NewCamera()
	cam.OffsetX = 1e9
	cam.ClampPanX(window, viewport)
	before := cam.OffsetX

	// A small pan inside the free play must survive the clamp.
	cam.Pan(-10, 0)
	cam.ClampPanX(window, viewport)
	if cam.OffsetX != before-10 {
		t.Errorf("in-bounds pan altered by clamp: %v", cam.OffsetX)
	}
}

func TestPanMovesBothAxes(t *testing.T) {
	cam := NewCamera()
	cam.Pan(12, -7)
	if cam.OffsetX != 12 || cam.OffsetY != -7 {
		t.Errorf("got offsets (%v, %v)", cam.OffsetX, cam.OffsetY)
	}
}
