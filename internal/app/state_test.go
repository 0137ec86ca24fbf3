package app

import (
	"path/filepath"
	"testing"

	"ideatlas/internal/model"
)

func yr(y int) *int { return &y }

func TestEventListeners(t *testing.T) {
	s := NewState()

	var fired []interface{}
	s.On(EventSelectionChanged, func(data interface{}) {
		fired = append(fired, data)
	})

	s.SelectThinker("kant")
	if len(fired) != 1 || fired[0] != "kant" {
		t.Fatalf("fired = %v", fired)
	}
}

func TestSelectThinkerSetsEmphasis(t *testing.T) {
	s := NewState()
	s.SelectThinker("hume")

	if s.Selection.SelectedID != "hume" || s.Selection.EmphasisID != "hume" {
		t.Errorf("selection = %+v", s.Selection)
	}
}

func TestToggleBulk(t *testing.T) {
	s := NewState()

	s.ToggleBulk("a")
	if !s.Selection.IsBulkSelected("a") {
		t.Fatal("first toggle did not add")
	}
	s.ToggleBulk("a")
	if s.Selection.IsBulkSelected("a") {
		t.Fatal("second toggle did not remove")
	}
}

func TestToggleConnectionType(t *testing.T) {
	s := NewState()
	conn := model.Connection{Type: model.ConnOpposed}

	s.ToggleConnectionType(model.ConnOpposed)
	if s.Selection.ConnectionVisible(conn) {
		t.Fatal("toggle did not hide the type")
	}
	s.ToggleConnectionType(model.ConnOpposed)
	if !s.Selection.ConnectionVisible(conn) {
		t.Fatal("toggle did not restore the type")
	}
}

func TestMoveThinkerCommitsProposal(t *testing.T) {
	s := NewState()
	s.Thinkers = []model.Thinker{{ID: "kant", Name: "Kant", BirthYear: yr(1724), DeathYear: yr(1804)}}

	var modified bool
	s.On(EventModified, func(data interface{}) {
		modified, _ = data.(bool)
	})

	s.MoveThinker("kant", 1770, 120)

	th := s.Thinkers[0]
	if th.AnchorYear == nil || *th.AnchorYear != 1770 {
		t.Errorf("anchor year = %v", th.AnchorYear)
	}
	if th.PosY == nil || *th.PosY != 120 {
		t.Errorf("pos y = %v", th.PosY)
	}
	if !modified {
		t.Error("move did not mark the document modified")
	}
}

func TestMoveNote(t *testing.T) {
	s := NewState()
	s.Notes = []model.StickyNote{{ID: "n1", X: 10, Y: 20, OnCanvas: true}}

	s.MoveNote("n1", 300, 400)
	if s.Notes[0].X != 300 || s.Notes[0].Y != 400 {
		t.Errorf("note at (%v, %v)", s.Notes[0].X, s.Notes[0].Y)
	}
}

func TestDocumentRoundTripThroughState(t *testing.T) {
	s := NewState()
	s.Thinkers = []model.Thinker{{ID: "hume", Name: "Hume", BirthYear: yr(1711), DeathYear: yr(1776)}}
	s.Timelines = []model.Timeline{{ID: "modern", Name: "Modern"}}

	path := filepath.Join(t.TempDir(), "state.atlas")
	if err := s.SaveDocument(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if s.Modified {
		t.Error("save did not clear the modified flag")
	}

	loaded := NewState()
	if err := loaded.LoadDocument(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Thinkers) != 1 || loaded.Thinkers[0].ID != "hume" {
		t.Errorf("thinkers = %+v", loaded.Thinkers)
	}
	if loaded.DocumentPath != path {
		t.Errorf("document path %q", loaded.DocumentPath)
	}
}

func TestSelectTimelineScopesFilter(t *testing.T) {
	s := NewState()
	s.Timelines = []model.Timeline{{ID: "ancient", Name: "Ancient"}}

	s.SelectTimeline("ancient")
	if s.Filter.TimelineID != "ancient" {
		t.Errorf("filter timeline %q", s.Filter.TimelineID)
	}
	if tl := s.SelectedTimeline(); tl == nil || tl.ID != "ancient" {
		t.Errorf("selected timeline = %+v", tl)
	}

	s.SelectTimeline("")
	if s.SelectedTimeline() != nil {
		t.Error("clearing the selection should resolve to nil")
	}
}
