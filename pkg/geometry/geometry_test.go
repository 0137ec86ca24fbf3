package geometry

import (
	"math"
	"testing"
)

func TestRectIntersection(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 10, 10)
	c := NewRect(20, 20, 5, 5)

	if !a.Intersects(b) {
		t.Error("overlapping rects reported disjoint")
	}
	if a.Intersects(c) {
		t.Error("disjoint rects reported overlapping")
	}

	inter := a.Intersection(b)
	if inter.Area() != 25 {
		t.Errorf("intersection area %v, want 25", inter.Area())
	}
	if a.Intersection(c).Area() != 0 {
		t.Errorf("disjoint intersection area %v, want 0", a.Intersection(c).Area())
	}

	u := a.Union(b)
	if u.X != 0 || u.Y != 0 || u.Width != 15 || u.Height != 15 {
		t.Errorf("union = %+v", u)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 20)
	if !r.Contains(Point2D{X: 10, Y: 10}) {
		t.Error("origin corner should be inside")
	}
	if !r.Contains(r.Center()) {
		t.Error("center should be inside")
	}
	if r.Contains(Point2D{X: 31, Y: 15}) {
		t.Error("point past the right edge should be outside")
	}
}

func TestBezierMidpoint(t *testing.T) {
	c := CubicBezier{
		P0: Point2D{X: 0, Y: 0},
		P1: Point2D{X: 10, Y: 30},
		P2: Point2D{X: 20, Y: 30},
		P3: Point2D{X: 30, Y: 0},
	}

	mid := c.Midpoint()
	at := c.Point(0.5)
	if mid != at {
		t.Errorf("Midpoint %+v != Point(0.5) %+v", mid, at)
	}

	// (P0 + 3P1 + 3P2 + P3) / 8
	if want := 22.5; mid.Y != want {
		t.Errorf("midpoint y %v, want %v", mid.Y, want)
	}
}

func TestBezierPointClampsParameter(t *testing.T) {
	c := CubicBezier{P0: Point2D{X: 1, Y: 2}, P3: Point2D{X: 9, Y: 4}}
	if got := c.Point(-1); got != c.P0 {
		t.Errorf("t<0 should clamp to P0, got %+v", got)
	}
	if got := c.Point(2); got != c.P3 {
		t.Errorf("t>1 should clamp to P3, got %+v", got)
	}
}

func TestBezierDistanceTo(t *testing.T) {
	c := CubicBezier{
		P0: Point2D{X: 0, Y: 0},
		P1: Point2D{X: 0, Y: 0},
		P2: Point2D{X: 30, Y: 0},
		P3: Point2D{X: 30, Y: 0},
	}

	if d := c.DistanceTo(Point2D{X: 15, Y: 0}, 0.01); d > 0.5 {
		t.Errorf("on-curve distance %v", d)
	}
	if d := c.DistanceTo(Point2D{X: 15, Y: 40}, 0.01); math.Abs(d-40) > 0.5 {
		t.Errorf("off-curve distance %v, want ~40", d)
	}
}
