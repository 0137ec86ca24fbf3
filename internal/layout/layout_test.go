package layout

import (
	"fmt"
	"math"
	"testing"

	"ideatlas/internal/model"
	"ideatlas/internal/timescale"
	"ideatlas/pkg/geometry"
)

func yr(y int) *int { return &y }

func testInput(thinkers []model.Thinker) Input {
	return testInputAt(thinkers, 1280, 1)
}

func testInputAt(thinkers []model.Thinker, width, scale float64) Input {
	cam := timescale.NewCamera()
	cam.Scale = scale
	return Input{
		Thinkers: thinkers,
		Viewport: geometry.NewSize(width, 800),
		Camera:   cam,
		Mapper:   timescale.NewMapper(timescale.Range{StartYear: 1500, EndYear: 2000}),
	}
}

// crowd returns n thinkers anchored to the same year, the worst case for
// the displacement loop.
func crowd(n, year int) []model.Thinker {
	out := make([]model.Thinker, n)
	for i := range out {
		out[i] = model.Thinker{
			ID:         string(rune('a' + i)),
			Name:       "Thinker " + string(rune('A'+i)),
			AnchorYear: yr(year),
		}
	}
	return out
}

func TestLayoutNoOverlap(t *testing.T) {
	e := NewEngine()
	for _, width := range []float64{375, 768, 1280, 1920} {
		for _, scale := range []float64{0.1, 1, 5, 20} {
			t.Run(fmt.Sprintf("w%.0f_s%g", width, scale), func(t *testing.T) {
				table := e.Layout(testInputAt(crowd(12, 1700), width, scale))

				if len(table.Thinkers) != 12 {
					t.Fatalf("placed %d labels, want 12", len(table.Thinkers))
				}

				ids := make([]string, 0, len(table.Thinkers))
				for id := range table.Thinkers {
					ids = append(ids, id)
				}
				for i := 0; i < len(ids); i++ {
					for j := i + 1; j < len(ids); j++ {
						a, b := table.Thinkers[ids[i]], table.Thinkers[ids[j]]
						if a.Intersects(b) {
							t.Errorf("labels %s and %s overlap: %+v vs %+v", ids[i], ids[j], a, b)
						}
					}
				}
			})
		}
	}
}

func TestLayoutDeterministicAcrossInputOrder(t *testing.T) {
	e := NewEngine()
	thinkers := crowd(8, 1700)

	forward := e.Layout(testInput(thinkers))

	reversed := make([]model.Thinker, len(thinkers))
	for i, th := range thinkers {
		reversed[len(thinkers)-1-i] = th
	}
	backward := e.Layout(testInput(reversed))

	for id, r := range forward.Thinkers {
		if got := backward.Thinkers[id]; got != r {
			t.Errorf("label %s moved with input order: %+v vs %+v", id, r, got)
		}
	}
}

func TestLayoutRetryBudgetDegradesGracefully(t *testing.T) {
	e := NewEngine()
	e.MaxAttempts = 1

	table := e.Layout(testInput(crowd(20, 1700)))
	if len(table.Thinkers) != 20 {
		t.Fatalf("exhausted budget must still place every label, got %d", len(table.Thinkers))
	}
}

func TestLayoutSkipsUnplacedThinkers(t *testing.T) {
	e := NewEngine()
	thinkers := []model.Thinker{
		{ID: "dated", Name: "Dated", AnchorYear: yr(1700)},
		{ID: "nowhere", Name: "Nowhere"},
	}
	table := e.Layout(testInput(thinkers))

	if _, ok := table.Thinkers["dated"]; !ok {
		t.Error("dated thinker missing from table")
	}
	if _, ok := table.Thinkers["nowhere"]; ok {
		t.Error("thinker with no placement year must not be placed")
	}
}

func TestLayoutManualPositionOffsets(t *testing.T) {
	e := NewEngine()
	offset := 200.0
	thinkers := []model.Thinker{
		{ID: "a", Name: "Base", AnchorYear: yr(1700)},
		{ID: "b", Name: "Moved", AnchorYear: yr(1900), PosY: &offset},
	}
	in := testInput(thinkers)
	table := e.Layout(in)

	base := table.Thinkers["a"]
	moved := table.Thinkers["b"]
	want := in.Mapper.ScaleStored(offset, in.Viewport.Width)
	if got := moved.Y - base.Y; math.Abs(got-want) > 1e-9 {
		t.Errorf("manual offset: got %v, want %v", got, want)
	}
}

func TestLayoutOverrideFollowsPointer(t *testing.T) {
	e := NewEngine()
	pos := geometry.Point2D{X: 640, Y: 300}
	in := testInput(crowd(1, 1700))
	in.Overrides = map[string]geometry.Point2D{"a": pos}

	table := e.Layout(in)
	if got := table.Thinkers["a"].Center(); got != pos {
		t.Errorf("override center: got %+v, want %+v", got, pos)
	}
}

func TestLayoutEventsAtFixedElevation(t *testing.T) {
	e := NewEngine()
	in := testInput(nil)
	in.Events = []model.DatedEvent{{ID: "e1", Name: "Event", Year: 1700}}

	table := e.Layout(in)
	pos, ok := table.Events["e1"]
	if !ok {
		t.Fatal("event not placed")
	}
	if want := table.AxisY - EventElevation; pos.Y != want {
		t.Errorf("event y: got %v, want %v", pos.Y, want)
	}
}

func TestLayoutNoteWidthClamped(t *testing.T) {
	e := NewEngine()
	in := testInput(nil)
	in.Notes = []model.StickyNote{
		{ID: "short", Title: "x", OnCanvas: true},
		{ID: "long", Content: "an extremely long sticky note body that would run far past the maximum card width", OnCanvas: true},
		{ID: "hidden", Title: "off canvas"},
	}

	table := e.Layout(in)
	if got := table.Notes["short"].Width; got != NoteMinWidth {
		t.Errorf("short note width %v, want min %v", got, NoteMinWidth)
	}
	if got := table.Notes["long"].Width; got != NoteMaxWidth {
		t.Errorf("long note width %v, want max %v", got, NoteMaxWidth)
	}
	if _, ok := table.Notes["hidden"]; ok {
		t.Error("off-canvas note must not be placed")
	}
}

func TestLayoutDegenerateViewport(t *testing.T) {
	e := NewEngine()
	in := testInput(crowd(3, 1700))
	in.Viewport = geometry.Size{}

	table := e.Layout(in)
	if len(table.Thinkers) != 0 {
		t.Errorf("zero viewport placed %d labels", len(table.Thinkers))
	}
}
