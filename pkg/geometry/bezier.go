package geometry

// CubicBezier represents a cubic Bézier curve defined by four control points.
type CubicBezier struct {
	P0 Point2D `json:"p0"`
	P1 Point2D `json:"p1"`
	P2 Point2D `json:"p2"`
	P3 Point2D `json:"p3"`
}

// Point evaluates the curve at parameter t in [0, 1].
func (c CubicBezier) Point(t float64) Point2D {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	u := 1 - t
	// B(t) = u³P0 + 3u²tP1 + 3ut²P2 + t³P3
	a := u * u * u
	b := 3 * u * u * t
	d := 3 * u * t * t
	e := t * t * t
	return Point2D{
		X: a*c.P0.X + b*c.P1.X + d*c.P2.X + e*c.P3.X,
		Y: a*c.P0.Y + b*c.P1.Y + d*c.P2.Y + e*c.P3.Y,
	}
}

// Midpoint returns the point at t = 0.5.
func (c CubicBezier) Midpoint() Point2D {
	return c.Point(0.5)
}

// DistanceTo returns the minimum distance from p to the curve, sampled at
// the given parameter step. A step of 0.02 samples 51 points.
func (c CubicBezier) DistanceTo(p Point2D, step float64) float64 {
	if step <= 0 {
		step = 0.02
	}
	best := p.Distance(c.P0)
	for t := step; t <= 1.0+step/2; t += step {
		if d := p.Distance(c.Point(t)); d < best {
			best = d
		}
	}
	return best
}
