package render

import (
	"math"
	"testing"
)

func TestTickInterval(t *testing.T) {
	tests := []struct {
		name          string
		pixelsPerYear float64
		want          float64
	}{
		// 200-year window across a 1000px viewport at scale 1:
		// 1000 * 0.9 / 200 = 4.5 px/year, 20-year ticks land at 90px.
		{"default zoom", 4.5, 20},
		{"deep zoom", 1000, 0.1},
		{"far out", 0.05, 2000},
		{"degenerate density", 0, 10000},
		{"beyond ladder", 0.001, 10000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TickInterval(tt.pixelsPerYear); got != tt.want {
				t.Errorf("TickInterval(%v) = %v, want %v", tt.pixelsPerYear, got, tt.want)
			}
		})
	}
}

func TestTickIntervalMeetsSpacing(t *testing.T) {
	for _, ppy := range []float64{0.1, 0.5, 1, 4.5, 30, 500} {
		v := TickInterval(ppy)
		if v*ppy < MinTickSpacing {
			t.Errorf("ppy=%v: interval %v yields %vpx spacing", ppy, v, v*ppy)
		}
	}
}

func TestTickMarksTiers(t *testing.T) {
	// interval 20 at this density; quarter tier arms at scale 1.
	marks := tickMarks(0, 100, 4.5, 1)

	primaries := map[float64]bool{}
	for _, m := range marks {
		if m.tier == 0 {
			primaries[m.year] = true
		}
	}
	for _, want := range []float64{0, 20, 40, 60, 80, 100} {
		if !primaries[want] {
			t.Errorf("missing primary tick at %v", want)
		}
	}

	// Quarter ticks must skip positions the primary tier already covers.
	for _, m := range marks {
		if m.tier == 1 && math.Mod(m.year, 20) == 0 {
			t.Errorf("quarter tick at %v coincides with a primary", m.year)
		}
	}
}

func TestTickMarksTierGating(t *testing.T) {
	coarse := tickMarks(0, 100, 4.5, 0.5)
	for _, m := range coarse {
		if m.tier != 0 {
			t.Errorf("scale 0.5 emitted tier %d tick at %v", m.tier, m.year)
		}
	}

	fine := tickMarks(0, 100, 4.5, 4)
	var sawTwelfth bool
	for _, m := range fine {
		if m.tier == 2 {
			sawTwelfth = true
			break
		}
	}
	if !sawTwelfth {
		t.Error("scale 4 should emit twelfth-tier ticks")
	}
}
