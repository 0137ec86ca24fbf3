package timescale

// Presentation tuning constants for pan and zoom clamping. These are
// empirically chosen fractions of the viewport width, not derived
// invariants; keep them named rather than inlined.
const (
	// MaxScale is the hard upper bound on horizontal zoom.
	MaxScale = 100.0

	// PanHardMarginFrac keeps a window wider than the viewport from being
	// dragged further than this fraction of the viewport past either edge.
	PanHardMarginFrac = 0.10

	// PanFreePlayFrac is the slack allowed when the window is narrower
	// than the viewport.
	PanFreePlayFrac = 0.20
)

// Camera is the transient pan/zoom state applied on top of the mapper's
// output: screen x = YearToX(...) + OffsetX, screen y = axis + OffsetY.
// It is core-owned, never persisted, and reset on canvas remount.
type Camera struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// NewCamera returns a camera at scale 1 with no pan.
func NewCamera() Camera {
	return Camera{Scale: 1}
}

// ClampScale bounds the scale to [minScale, MaxScale].
func (c *Camera) ClampScale(minScale float64) {
	if c.Scale < minScale {
		c.Scale = minScale
	}
	if c.Scale > MaxScale {
		c.Scale = MaxScale
	}
}

// ZoomAt rescales by factor toward the pointer's x position: the world x
// under the pointer before the rescale stays under the pointer after it.
func (c *Camera) ZoomAt(pointerX, factor, minScale float64) {
	oldScale := c.Scale
	if oldScale <= 0 || factor <= 0 {
		return
	}
	c.Scale *= factor
	c.ClampScale(minScale)

	// Mapped positions are PaddingLeft + u*scale for some year fraction u,
	// so the world offset past the padding scales proportionally.
	worldX := pointerX - c.OffsetX
	newWorldX := PaddingLeft + (worldX-PaddingLeft)*(c.Scale/oldScale)
	c.OffsetX = pointerX - newWorldX
}

// Pan translates both camera axes.
func (c *Camera) Pan(dx, dy float64) {
	c.OffsetX += dx
	c.OffsetY += dy
}

// ClampPanX bounds the horizontal offset so the chronology window's ends
// cannot leave the viewport by more than the hard margin when the window is
// wider than the viewport, or drift beyond the free play when narrower.
func (c *Camera) ClampPanX(windowWidth, viewportWidth float64) {
	if viewportWidth <= 0 {
		return
	}
	var lo, hi float64
	if windowWidth > viewportWidth {
		lo = (1-PanHardMarginFrac)*viewportWidth - PaddingLeft - windowWidth
		hi = PanHardMarginFrac*viewportWidth - PaddingLeft
	} else {
		lo = -PanFreePlayFrac*viewportWidth - PaddingLeft
		hi = (1+PanFreePlayFrac)*viewportWidth - PaddingLeft - windowWidth
	}
	if c.OffsetX < lo {
		c.OffsetX = lo
	}
	if c.OffsetX > hi {
		c.OffsetX = hi
	}
}
