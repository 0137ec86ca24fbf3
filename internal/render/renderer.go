package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"ideatlas/internal/layout"
	"ideatlas/internal/model"
	"ideatlas/internal/timescale"
	"ideatlas/pkg/colorutil"
	"ideatlas/pkg/geometry"
)

const (
	smallFontSize = 11.0

	tickLenPrimary = 12.0
	tickLenQuarter = 7.0
	tickLenTwelfth = 4.0

	eventGlyphSize = 7.0

	// Connection label collision handling.
	connLabelNudge    = 12.0
	connLabelMaxTries = 10

	labelCornerRadius = 6.0
	noteCornerRadius  = 8.0

	checkboxSize = 12.0

	dimmedEdgeAlpha = 0.35
	normalEdgeAlpha = 0.9

	emptyStateMessage = "No thinkers to display"
)

var (
	backgroundColor = color.RGBA{R: 250, G: 250, B: 252, A: 255}
	gridColor       = color.RGBA{R: 226, G: 232, B: 240, A: 255}
	axisColor       = color.RGBA{R: 71, G: 85, B: 105, A: 255}
	tickTextColor   = colorutil.Gray
	labelFillColor  = colorutil.White
	labelTextColor  = color.RGBA{R: 30, G: 41, B: 59, A: 255}
	selectedColor   = colorutil.Blue
	selectedFill    = color.RGBA{R: 219, G: 234, B: 254, A: 255}
	bulkFill        = color.RGBA{R: 237, G: 233, B: 254, A: 255}
)

// eventColors keys event kinds to glyph colors.
var eventColors = map[model.EventKind]color.RGBA{
	model.EventPublication: colorutil.Blue,
	model.EventFounding:    colorutil.Green,
	model.EventMeeting:     colorutil.Purple,
	model.EventAward:       colorutil.Orange,
	model.EventOther:       colorutil.Gray,
}

// Renderer draws frames onto an RGBA surface. It shares the layout engine's
// font face so drawn text matches the measured label boxes.
type Renderer struct {
	engine    *layout.Engine
	labelFace font.Face
	smallFace font.Face
}

// NewRenderer creates a renderer bound to the layout engine.
func NewRenderer(engine *layout.Engine) *Renderer {
	return &Renderer{
		engine:    engine,
		labelFace: engine.Face(),
		smallFace: layout.NewFace(smallFontSize),
	}
}

// Render fully redraws the frame and returns the surface. A nil frame or a
// zero-size viewport yields nil rather than an error; the canvas simply has
// nothing to show yet.
func (r *Renderer) Render(f *Frame) image.Image {
	if f == nil || f.Viewport.Width <= 0 || f.Viewport.Height <= 0 || f.Table == nil {
		return nil
	}
	w := int(f.Viewport.Width)
	h := int(f.Viewport.Height)

	dc := gg.NewContext(w, h)
	dc.SetColor(backgroundColor)
	dc.Clear()

	// Z-order is fixed: later layers occlude earlier ones.
	r.drawGridAndAxis(dc, f)
	r.drawEvents(dc, f)
	r.drawConnections(dc, f)
	r.drawThinkers(dc, f)
	r.drawNotes(dc, f)

	if len(f.Thinkers) == 0 {
		dc.SetFontFace(r.labelFace)
		dc.SetColor(colorutil.Gray)
		dc.DrawStringAnchored(emptyStateMessage, f.Viewport.Width/2, f.Viewport.Height/2-60, 0.5, 0.5)
	}

	return dc.Image()
}

// drawGridAndAxis draws the background grid, the chronology axis, and the
// tiered tick marks with year labels on the primary tier.
func (r *Renderer) drawGridAndAxis(dc *gg.Context, f *Frame) {
	axisY := f.Table.AxisY
	span := float64(f.Mapper.Range.Span())
	ppy := f.Mapper.WindowWidth(f.Viewport.Width, f.Camera.Scale) / span

	marks := tickMarks(float64(f.Mapper.Range.StartYear), float64(f.Mapper.Range.EndYear), ppy, f.Camera.Scale)

	// Grid: faint vertical lines at primary ticks across the full height.
	dc.SetLineWidth(1)
	dc.SetColor(gridColor)
	for _, m := range marks {
		if m.tier != 0 {
			continue
		}
		x := r.yearValueToX(m.year, f)
		dc.DrawLine(x, 0, x, f.Viewport.Height)
		dc.Stroke()
	}

	// Axis centerline.
	dc.SetColor(axisColor)
	dc.SetLineWidth(2)
	dc.DrawLine(0, axisY, f.Viewport.Width, axisY)
	dc.Stroke()

	// Ticks, finest first so primary marks draw on top.
	dc.SetLineWidth(1)
	dc.SetFontFace(r.smallFace)
	for tier := 2; tier >= 0; tier-- {
		length := tickLenTwelfth
		switch tier {
		case 0:
			length = tickLenPrimary
		case 1:
			length = tickLenQuarter
		}
		for _, m := range marks {
			if m.tier != tier {
				continue
			}
			x := r.yearValueToX(m.year, f)
			if x < -MinTickSpacing || x > f.Viewport.Width+MinTickSpacing {
				continue
			}
			dc.SetColor(axisColor)
			dc.DrawLine(x, axisY-length/2, x, axisY+length/2)
			dc.Stroke()
			if tier == 0 {
				dc.SetColor(tickTextColor)
				dc.DrawStringAnchored(formatYear(m.year), x, axisY+tickLenPrimary+8, 0.5, 0.5)
			}
		}
	}
}

// yearValueToX maps a (possibly fractional) year to screen x.
func (r *Renderer) yearValueToX(year float64, f *Frame) float64 {
	span := float64(f.Mapper.Range.Span())
	content := f.Viewport.Width * f.Camera.Scale * timescale.ContentFraction
	return timescale.PaddingLeft + (year-float64(f.Mapper.Range.StartYear))/span*content + f.Camera.OffsetX
}

func formatYear(y float64) string {
	if y == math.Trunc(y) {
		return fmt.Sprintf("%d", int(y))
	}
	return fmt.Sprintf("%.2f", y)
}

// drawEvents draws the dated-event glyphs above the axis with their labels.
func (r *Renderer) drawEvents(dc *gg.Context, f *Frame) {
	dc.SetFontFace(r.smallFace)
	for _, ev := range f.Events {
		pos, ok := f.Table.Events[ev.ID]
		if !ok {
			continue
		}
		col := eventColors[ev.Kind]
		if col.A == 0 {
			col = colorutil.Gray
		}
		dc.SetColor(col)
		drawEventGlyph(dc, ev.Kind, pos.X, pos.Y, eventGlyphSize)
		dc.Fill()

		dc.SetColor(labelTextColor)
		dc.DrawStringAnchored(ev.Name, pos.X, pos.Y-eventGlyphSize-8, 0.5, 0.5)
	}
}

// drawEventGlyph traces the glyph path for an event kind: triangle,
// rectangle, diamond, five-point star, or the default circle.
func drawEventGlyph(dc *gg.Context, kind model.EventKind, x, y, s float64) {
	switch kind {
	case model.EventPublication:
		dc.MoveTo(x, y-s)
		dc.LineTo(x+s, y+s)
		dc.LineTo(x-s, y+s)
		dc.ClosePath()
	case model.EventFounding:
		dc.DrawRectangle(x-s, y-s, 2*s, 2*s)
	case model.EventMeeting:
		dc.MoveTo(x, y-s)
		dc.LineTo(x+s, y)
		dc.LineTo(x, y+s)
		dc.LineTo(x-s, y)
		dc.ClosePath()
	case model.EventAward:
		outer, inner := s, s*0.45
		for i := 0; i < 10; i++ {
			radius := outer
			if i%2 == 1 {
				radius = inner
			}
			a := float64(i)*math.Pi/5 - math.Pi/2
			px := x + radius*math.Cos(a)
			py := y + radius*math.Sin(a)
			if i == 0 {
				dc.MoveTo(px, py)
			} else {
				dc.LineTo(px, py)
			}
		}
		dc.ClosePath()
	default:
		dc.DrawCircle(x, y, s)
	}
}

// drawConnections strokes every placed curve, non-highlighted first so
// highlighted edges end up topmost among edges, then places their labels.
func (r *Renderer) drawConnections(dc *gg.Context, f *Frame) {
	emphasis := f.Selection.EmphasisID != ""

	var plain, bright []layout.PlacedConnection
	for _, pc := range f.Curves {
		if emphasis && f.Selection.ConnectionEmphasized(pc.Conn) {
			bright = append(bright, pc)
		} else {
			plain = append(plain, pc)
		}
	}

	for _, pc := range plain {
		alpha := normalEdgeAlpha
		if emphasis {
			alpha = dimmedEdgeAlpha
		}
		r.strokeConnection(dc, pc, alpha, false)
	}
	for _, pc := range bright {
		r.strokeConnection(dc, pc, 1.0, true)
	}

	occupied := make([]geometry.Rect, 0, len(f.Table.Thinkers))
	for _, rect := range f.Table.Thinkers {
		occupied = append(occupied, rect)
	}
	for _, pc := range f.Curves {
		dimmed := emphasis && !f.Selection.ConnectionEmphasized(pc.Conn)
		r.drawConnectionLabel(dc, pc, occupied, dimmed)
	}
}

func (r *Renderer) strokeConnection(dc *gg.Context, pc layout.PlacedConnection, alpha float64, highlighted bool) {
	style := pc.Conn.Type.Style()
	width := 1 + 0.5*float64(pc.Conn.ClampedStrength()-1)
	col := style.Color
	if highlighted {
		width += 1.5
		col = colorutil.Darken(col, 0.15)
	}

	dc.SetColor(colorutil.WithAlpha(col, alpha))
	dc.SetLineWidth(width)
	if style.Dash != nil {
		dc.SetDash(style.Dash...)
	}
	c := pc.Curve
	dc.MoveTo(c.P0.X, c.P0.Y)
	dc.CubicTo(c.P1.X, c.P1.Y, c.P2.X, c.P2.Y, c.P3.X, c.P3.Y)
	dc.Stroke()
	dc.SetDash()

	// Arrowheads scale with strength.
	size := 5 + float64(pc.Conn.ClampedStrength())
	drawArrowhead(dc, c.Point(0.97), c.P3, size)
	if pc.Conn.Bidirectional {
		drawArrowhead(dc, c.Point(0.03), c.P0, size)
	}
}

// drawArrowhead fills a triangular cap at tip, oriented from tail to tip.
func drawArrowhead(dc *gg.Context, tail, tip geometry.Point2D, size float64) {
	dx := tip.X - tail.X
	dy := tip.Y - tail.Y
	length := math.Hypot(dx, dy)
	if length < 1e-6 {
		return
	}
	dx /= length
	dy /= length

	const spread = 0.4
	dc.MoveTo(tip.X, tip.Y)
	dc.LineTo(tip.X-size*dx+size*dy*spread, tip.Y-size*dy-size*dx*spread)
	dc.LineTo(tip.X-size*dx-size*dy*spread, tip.Y-size*dy+size*dx*spread)
	dc.ClosePath()
	dc.Fill()
}

// drawConnectionLabel centers the connection's label on the curve midpoint,
// nudging it downward in fixed steps while it collides with a thinker label
// box, up to a bounded retry count.
func (r *Renderer) drawConnectionLabel(dc *gg.Context, pc layout.PlacedConnection, occupied []geometry.Rect, dimmed bool) {
	text := pc.Conn.DisplayLabel()
	if text == "" {
		return
	}
	dc.SetFontFace(r.smallFace)
	tw, th := dc.MeasureString(text)

	mid := pc.Curve.Midpoint()
	box := geometry.NewRect(mid.X-tw/2, mid.Y-th/2, tw, th)
	for try := 0; try < connLabelMaxTries; try++ {
		clear := true
		for _, occ := range occupied {
			if box.Intersects(occ) {
				clear = false
				break
			}
		}
		if clear {
			break
		}
		box.Y += connLabelNudge
	}

	alpha := 1.0
	if dimmed {
		alpha = dimmedEdgeAlpha
	}
	dc.SetColor(colorutil.WithAlpha(pc.Conn.Type.Style().Color, alpha))
	dc.DrawStringAnchored(text, box.Center().X, box.Center().Y, 0.5, 0.5)
}

// drawThinkers draws the rounded label boxes in their three visual states:
// default, single-selected, and bulk-selected (with a checkbox glyph).
func (r *Renderer) drawThinkers(dc *gg.Context, f *Frame) {
	dc.SetFontFace(r.labelFace)
	for _, th := range f.Thinkers {
		rect, ok := f.Table.Thinkers[th.ID]
		if !ok {
			continue
		}

		selected := f.Selection.SelectedID == th.ID
		bulk := f.Selection.IsBulkSelected(th.ID)
		_, dragging := f.Dragged[th.ID]

		base := labelFillColor
		border := colorutil.Gray
		borderWidth := 1.0
		switch {
		case selected:
			base = selectedFill
			border = selectedColor
			borderWidth = 2.5
		case bulk:
			base = bulkFill
			border = colorutil.Purple
			borderWidth = 1.5
		}
		var fill color.Color = base
		if dragging {
			fill = colorutil.WithAlpha(base, 0.8)
		}

		dc.SetColor(fill)
		dc.DrawRoundedRectangle(rect.X, rect.Y, rect.Width, rect.Height, labelCornerRadius)
		dc.FillPreserve()
		dc.SetColor(border)
		dc.SetLineWidth(borderWidth)
		dc.Stroke()

		dc.SetColor(labelTextColor)
		c := rect.Center()
		dc.DrawStringAnchored(th.Name, c.X, c.Y, 0.5, 0.35)

		if bulk {
			drawCheckbox(dc, rect.X-checkboxSize-6, c.Y-checkboxSize/2)
		}
	}
}

// drawCheckbox draws the bulk-selection checkbox-with-checkmark glyph.
func drawCheckbox(dc *gg.Context, x, y float64) {
	dc.SetColor(colorutil.Purple)
	dc.SetLineWidth(1.5)
	dc.DrawRoundedRectangle(x, y, checkboxSize, checkboxSize, 2)
	dc.Stroke()

	dc.MoveTo(x+3, y+checkboxSize/2)
	dc.LineTo(x+checkboxSize/2-1, y+checkboxSize-3.5)
	dc.LineTo(x+checkboxSize-2.5, y+3)
	dc.Stroke()
}

// drawNotes draws the sticky note cards last so they sit on top.
func (r *Renderer) drawNotes(dc *gg.Context, f *Frame) {
	dc.SetFontFace(r.smallFace)
	for _, n := range f.Notes {
		rect, ok := f.Table.Notes[n.ID]
		if !ok {
			continue
		}

		base := n.Color.Fill()
		var fill color.Color = base
		if _, dragging := f.Dragged[n.ID]; dragging {
			fill = colorutil.WithAlpha(base, 0.85)
		}
		dc.SetColor(fill)
		dc.DrawRoundedRectangle(rect.X, rect.Y, rect.Width, rect.Height, noteCornerRadius)
		dc.FillPreserve()
		dc.SetColor(colorutil.Darken(base, 0.35))
		dc.SetLineWidth(1)
		dc.Stroke()

		maxTextW := rect.Width - 2*layout.NotePadding
		textX := rect.X + layout.NotePadding
		textY := rect.Y + layout.NotePadding

		dc.SetColor(labelTextColor)
		line := 0
		if n.Title != "" {
			dc.DrawStringAnchored(r.truncate(dc, n.Title, maxTextW), textX, textY+layout.NoteTitleRoom/2, 0, 0.4)
			line++
		}
		if n.Content != "" {
			dc.DrawStringAnchored(r.truncate(dc, n.Content, maxTextW), textX,
				textY+float64(line)*layout.NoteTitleRoom+layout.NoteTitleRoom/2, 0, 0.4)
		}
		if n.Title != "" && n.Content != "" {
			// Ellipsis glyph signals there is more than the preview.
			dc.DrawStringAnchored("…", rect.X+rect.Width-layout.NotePadding, rect.Y+rect.Height-8, 1, 0.5)
		}
	}
}

// truncate shortens s to fit maxW pixels, appending an ellipsis when cut.
func (r *Renderer) truncate(dc *gg.Context, s string, maxW float64) string {
	if w, _ := dc.MeasureString(s); w <= maxW {
		return s
	}
	runes := []rune(s)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		if w, _ := dc.MeasureString(string(runes) + "…"); w <= maxW {
			break
		}
	}
	return string(runes) + "…"
}
