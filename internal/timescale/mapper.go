package timescale

import (
	"math"
)

const (
	// PaddingLeft is the fixed pixel margin reserved left of year zero of
	// the window.
	PaddingLeft = 80.0

	// ContentFraction is the fraction of the viewport width the chronology
	// window occupies at scale 1.
	ContentFraction = 0.9

	// referenceWidth is the design viewport width stored pixel positions
	// were authored against.
	referenceWidth = 1920.0
)

// Mapper converts calendar years to screen x positions and back for a fixed
// chronology window. The horizontal scale realizes zoom; it stretches
// chronological spacing only and never touches stored pixel offsets (see
// ScaleStored).
type Mapper struct {
	Range Range
}

// NewMapper creates a mapper over the given window.
func NewMapper(r Range) *Mapper {
	return &Mapper{Range: ensureSpan(r)}
}

// YearToX maps a calendar year to an unpanned x position: the fixed left
// padding plus the year's fraction of the window mapped across the content
// width, multiplied by the horizontal scale.
func (m *Mapper) YearToX(year int, viewportWidth, scale float64) float64 {
	span := float64(m.Range.Span())
	content := viewportWidth * ContentFraction
	return PaddingLeft + float64(year-m.Range.StartYear)/span*content*scale
}

// XToYear is the exact inverse of YearToX, rounded to the nearest year.
func (m *Mapper) XToYear(x, viewportWidth, scale float64) int {
	content := viewportWidth * ContentFraction * scale
	if content <= 0 {
		return m.Range.StartYear
	}
	span := float64(m.Range.Span())
	return m.Range.StartYear + int(math.Round((x-PaddingLeft)/content*span))
}

// WindowWidth returns the rendered pixel width of the chronology window.
func (m *Mapper) WindowWidth(viewportWidth, scale float64) float64 {
	return viewportWidth * ContentFraction * scale
}

// MinScale returns the smallest horizontal scale at which the chronology
// window still fills the viewport width. Recomputed whenever the active
// range or viewport changes.
func (m *Mapper) MinScale(viewportWidth float64) float64 {
	if viewportWidth <= 0 {
		return 1
	}
	return viewportWidth / (viewportWidth * ContentFraction)
}

// ScaleStored maps a stored pixel coordinate (manual thinker positions,
// note anchors) to the current viewport. This uniform scale is deliberately
// decoupled from the horizontal zoom: zooming changes chronological spacing
// but must not change a manually placed object's stored offset ratio.
func (m *Mapper) ScaleStored(v, viewportWidth float64) float64 {
	if viewportWidth <= 0 {
		return v
	}
	return v * viewportWidth / referenceWidth
}

// UnscaleStored is the inverse of ScaleStored, used when a drag gesture
// commits a screen offset back into stored pixel units.
func (m *Mapper) UnscaleStored(v, viewportWidth float64) float64 {
	if viewportWidth <= 0 {
		return v
	}
	return v * referenceWidth / viewportWidth
}
