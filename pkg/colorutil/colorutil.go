// Package colorutil provides shared color utilities for the timeline canvas.
package colorutil

import (
	"image/color"
)

// Common colors used throughout the application.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Blue    = color.RGBA{R: 59, G: 130, B: 246, A: 255}
	Green   = color.RGBA{R: 34, G: 197, B: 94, A: 255}
	Red     = color.RGBA{R: 239, G: 68, B: 68, A: 255}
	Purple  = color.RGBA{R: 168, G: 85, B: 247, A: 255}
	Orange  = color.RGBA{R: 249, G: 115, B: 22, A: 255}
	Gray    = color.RGBA{R: 107, G: 114, B: 128, A: 255}
	DimGray = color.RGBA{R: 203, G: 213, B: 225, A: 255}
)

// WithAlpha returns c with its alpha channel replaced. Alpha is given as a
// fraction in [0, 1]. The result is non-premultiplied so partial opacity
// blends correctly.
func WithAlpha(c color.RGBA, alpha float64) color.NRGBA {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(alpha * 255)}
}

// Lighten mixes c toward white by the given fraction in [0, 1].
func Lighten(c color.RGBA, frac float64) color.RGBA {
	if frac < 0 {
		frac = 0
	} else if frac > 1 {
		frac = 1
	}
	mix := func(ch uint8) uint8 {
		return uint8(float64(ch) + (255-float64(ch))*frac)
	}
	return color.RGBA{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: c.A}
}

// Darken mixes c toward black by the given fraction in [0, 1].
func Darken(c color.RGBA, frac float64) color.RGBA {
	if frac < 0 {
		frac = 0
	} else if frac > 1 {
		frac = 1
	}
	mix := func(ch uint8) uint8 {
		return uint8(float64(ch) * (1 - frac))
	}
	return color.RGBA{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: c.A}
}
