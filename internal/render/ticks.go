package render

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// tickLadder is the fixed "nice number" ladder of candidate tick intervals,
// in years.
var tickLadder = []float64{
	0.01, 0.02, 0.05, 0.1, 0.2, 0.25, 0.5,
	1, 2, 5, 10, 20, 25, 50,
	100, 200, 250, 500,
	1000, 2000, 2500, 5000, 10000,
}

const (
	// MinTickSpacing is the minimum pixel spacing between primary tick
	// labels.
	MinTickSpacing = 80.0

	// Zoom thresholds gating the finer tick tiers.
	quarterTickMinScale = 1.0
	twelfthTickMinScale = 4.0

	// coincidenceTol absorbs floating-point error when skipping tick
	// positions already covered by a coarser tier.
	coincidenceTol = 1e-4
)

// TickInterval picks the smallest ladder member whose implied pixel spacing
// is at least MinTickSpacing at the given pixel density.
func TickInterval(pixelsPerYear float64) float64 {
	if pixelsPerYear <= 0 {
		return tickLadder[len(tickLadder)-1]
	}
	for _, v := range tickLadder {
		if v*pixelsPerYear >= MinTickSpacing {
			return v
		}
	}
	return tickLadder[len(tickLadder)-1]
}

// tickMark is one axis tick at a year position.
type tickMark struct {
	year float64
	tier int // 0 primary, 1 quarter, 2 twelfth
}

// tickMarks enumerates the visible tick positions for the window at the
// given scale. Finer tiers appear only above their zoom thresholds and skip
// positions coincident with a coarser tier.
func tickMarks(startYear, endYear, pixelsPerYear, scale float64) []tickMark {
	interval := TickInterval(pixelsPerYear)

	var marks []tickMark
	emit := func(step float64, tier int) {
		first := math.Ceil(startYear/step) * step
		for y := first; y <= endYear+coincidenceTol; y += step {
			if tier > 0 && coincides(y, interval) {
				continue
			}
			if tier == 2 && coincides(y, interval/4) {
				continue
			}
			marks = append(marks, tickMark{year: y, tier: tier})
		}
	}

	emit(interval, 0)
	if scale >= quarterTickMinScale {
		emit(interval/4, 1)
	}
	if scale >= twelfthTickMinScale {
		emit(interval/12, 2)
	}
	return marks
}

// coincides reports whether y sits on a multiple of step within tolerance.
func coincides(y, step float64) bool {
	if step <= 0 {
		return false
	}
	m := math.Mod(math.Abs(y), step)
	return scalar.EqualWithinAbs(m, 0, coincidenceTol) ||
		scalar.EqualWithinAbs(m, step, coincidenceTol)
}
