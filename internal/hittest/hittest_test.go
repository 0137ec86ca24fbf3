package hittest

import (
	"testing"

	"ideatlas/internal/layout"
	"ideatlas/internal/model"
	"ideatlas/internal/render"
	"ideatlas/internal/timescale"
	"ideatlas/pkg/geometry"
)

func yr(y int) *int { return &y }

func buildFrame(t *testing.T) *render.Frame {
	t.Helper()
	f := render.BuildFrame(render.BuildInput{
		Thinkers: []model.Thinker{
			{ID: "hume", Name: "David Hume", BirthYear: yr(1711), DeathYear: yr(1776)},
			{ID: "kant", Name: "Immanuel Kant", BirthYear: yr(1724), DeathYear: yr(1804)},
		},
		Connections: []model.Connection{
			{ID: "c1", FromID: "hume", ToID: "kant", Type: model.ConnInfluenced, Strength: 5},
		},
		Events: []model.DatedEvent{
			{ID: "e1", Name: "First Critique", Year: 1781, Kind: model.EventPublication},
		},
		Notes: []model.StickyNote{
			{ID: "n1", Title: "Note", X: 1200, Y: 200, OnCanvas: true},
		},
		Camera:   timescale.NewCamera(),
		Viewport: geometry.NewSize(1280, 800),
	}, layout.NewEngine())
	if len(f.Curves) != 1 {
		t.Fatalf("expected 1 curve, got %d", len(f.Curves))
	}
	return f
}

func TestPickThinker(t *testing.T) {
	f := buildFrame(t)
	p := f.Table.Thinkers["hume"].Center()

	hit := Pick(p, f)
	if hit == nil || hit.Kind != KindThinker || hit.ID != "hume" {
		t.Fatalf("got %+v, want thinker hume", hit)
	}
}

func TestPickNote(t *testing.T) {
	f := buildFrame(t)
	p := f.Table.Notes["n1"].Center()

	hit := Pick(p, f)
	if hit == nil || hit.Kind != KindNote || hit.ID != "n1" {
		t.Fatalf("got %+v, want note n1", hit)
	}
}

func TestPickEventGenerousArea(t *testing.T) {
	f := buildFrame(t)
	pos := f.Table.Events["e1"]

	// Just inside the square hit area, away from the glyph itself.
	p := geometry.Point2D{X: pos.X + EventHitHalf - 1, Y: pos.Y - EventHitHalf + 1}
	hit := Pick(p, f)
	if hit == nil || hit.Kind != KindEvent || hit.ID != "e1" {
		t.Fatalf("got %+v, want event e1", hit)
	}
}

func TestPickConnectionNearCurve(t *testing.T) {
	f := buildFrame(t)
	mid := f.Curves[0].Curve.Midpoint()

	hit := Pick(geometry.Point2D{X: mid.X, Y: mid.Y + CurveHitDistance/2}, f)
	if hit == nil || hit.Kind != KindConnection || hit.ID != "c1" {
		t.Fatalf("got %+v, want connection c1", hit)
	}
}

func TestPickMiss(t *testing.T) {
	f := buildFrame(t)
	if hit := Pick(geometry.Point2D{X: 5, Y: 5}, f); hit != nil {
		t.Fatalf("corner pick resolved to %+v", hit)
	}
}

func TestPickPriorityNoteOverThinker(t *testing.T) {
	f := buildFrame(t)
	th := f.Table.Thinkers["kant"]

	// Drop a note on top of the thinker label via its table rect.
	f.Notes = append(f.Notes, model.StickyNote{ID: "cover", OnCanvas: true})
	f.Table.Notes["cover"] = th

	hit := Pick(th.Center(), f)
	if hit == nil || hit.Kind != KindNote || hit.ID != "cover" {
		t.Fatalf("got %+v, want covering note", hit)
	}
}

func TestPickNilFrame(t *testing.T) {
	if hit := Pick(geometry.Point2D{}, nil); hit != nil {
		t.Fatalf("nil frame resolved to %+v", hit)
	}
}
