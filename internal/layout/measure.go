package layout

import (
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFontSize is the label text size in points at 72 DPI.
const DefaultFontSize = 13.0

// NewFace builds a font face for label measurement and rendering. The
// layout engine and renderer must measure with the same face or label boxes
// and drawn text desynchronize.
func NewFace(size float64) font.Face {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		// goregular.TTF is embedded and known-good; parse cannot fail on it.
		panic(err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// measureString returns the advance width of s in pixels.
func measureString(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64.0
}

// lineHeight returns the ascent+descent of the face in pixels.
func lineHeight(face font.Face) float64 {
	m := face.Metrics()
	return float64(m.Ascent+m.Descent) / 64.0
}
