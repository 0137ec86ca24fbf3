// Command seedgen writes a demo genealogy document covering the western
// philosophical canon, useful for exercising the canvas without hand-editing
// JSON.
package main

import (
	"flag"
	"log"

	"ideatlas/internal/document"
	"ideatlas/internal/model"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	out := flag.String("o", "demo.atlas", "output document path")
	flag.Parse()

	doc := document.New("Genealogy of Western Philosophy")
	doc.Thinkers = thinkers()
	doc.Connections = connections()
	doc.Events = events()
	doc.Notes = notes()
	doc.Timelines = timelines()

	if err := doc.Save(*out); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
	log.Printf("Wrote %s: %d thinkers, %d connections, %d events",
		*out, len(doc.Thinkers), len(doc.Connections), len(doc.Events))
}

func yr(y int) *int { return &y }

func thinkers() []model.Thinker {
	return []model.Thinker{
		{ID: "socrates", Name: "Socrates", BirthYear: yr(-470), DeathYear: yr(-399),
			Field: "philosophy", Tags: []string{"ancient", "ethics"}, TimelineID: "ancient"},
		{ID: "plato", Name: "Plato", BirthYear: yr(-428), DeathYear: yr(-348),
			Field: "philosophy", Tags: []string{"ancient", "metaphysics"}, TimelineID: "ancient"},
		{ID: "aristotle", Name: "Aristotle", BirthYear: yr(-384), DeathYear: yr(-322),
			Field: "philosophy", Tags: []string{"ancient", "logic"}, TimelineID: "ancient"},
		{ID: "epicurus", Name: "Epicurus", BirthYear: yr(-341), DeathYear: yr(-270),
			Field: "philosophy", Tags: []string{"ancient", "ethics"}, TimelineID: "ancient"},
		{ID: "aquinas", Name: "Thomas Aquinas", BirthYear: yr(1225), DeathYear: yr(1274),
			Field: "theology", Tags: []string{"medieval"}},
		{ID: "descartes", Name: "René Descartes", BirthYear: yr(1596), DeathYear: yr(1650),
			Field: "philosophy", Tags: []string{"modern", "rationalism"}, TimelineID: "modern"},
		{ID: "spinoza", Name: "Baruch Spinoza", BirthYear: yr(1632), DeathYear: yr(1677),
			Field: "philosophy", Tags: []string{"modern", "rationalism"}, TimelineID: "modern"},
		{ID: "leibniz", Name: "Gottfried Leibniz", BirthYear: yr(1646), DeathYear: yr(1716),
			Field: "philosophy", Tags: []string{"modern", "rationalism"}, TimelineID: "modern"},
		{ID: "locke", Name: "John Locke", BirthYear: yr(1632), DeathYear: yr(1704),
			Field: "philosophy", Tags: []string{"modern", "empiricism"}, TimelineID: "modern"},
		{ID: "hume", Name: "David Hume", BirthYear: yr(1711), DeathYear: yr(1776),
			Field: "philosophy", Tags: []string{"modern", "empiricism"}, TimelineID: "modern"},
		{ID: "kant", Name: "Immanuel Kant", BirthYear: yr(1724), DeathYear: yr(1804),
			Field: "philosophy", Tags: []string{"modern", "idealism"}, TimelineID: "modern"},
		{ID: "hegel", Name: "G. W. F. Hegel", BirthYear: yr(1770), DeathYear: yr(1831),
			Field: "philosophy", Tags: []string{"modern", "idealism"}, TimelineID: "modern"},
		{ID: "nietzsche", Name: "Friedrich Nietzsche", BirthYear: yr(1844), DeathYear: yr(1900),
			Field: "philosophy", Tags: []string{"modern"}},
		{ID: "wittgenstein", Name: "Ludwig Wittgenstein", BirthYear: yr(1889), DeathYear: yr(1951),
			Field: "philosophy", Tags: []string{"analytic", "logic"}},
		// An anchor-only figure: traditional dates are unreliable.
		{ID: "pythagoras", Name: "Pythagoras", AnchorYear: yr(-530),
			Field: "mathematics", Tags: []string{"ancient"}, TimelineID: "ancient"},
	}
}

func connections() []model.Connection {
	return []model.Connection{
		{ID: "c1", FromID: "socrates", ToID: "plato", Type: model.ConnTaught, Strength: 5},
		{ID: "c2", FromID: "plato", ToID: "aristotle", Type: model.ConnTaught, Strength: 5},
		{ID: "c3", FromID: "aristotle", ToID: "aquinas", Type: model.ConnInfluenced, Strength: 4},
		{ID: "c4", FromID: "plato", ToID: "aquinas", Type: model.ConnInfluenced, Strength: 2},
		{ID: "c5", FromID: "descartes", ToID: "spinoza", Type: model.ConnInfluenced, Strength: 4},
		{ID: "c6", FromID: "descartes", ToID: "leibniz", Type: model.ConnInfluenced, Strength: 3},
		{ID: "c7", FromID: "spinoza", ToID: "leibniz", Type: model.ConnCorresponded, Strength: 2,
			Note: "met in The Hague, 1676"},
		{ID: "c8", FromID: "locke", ToID: "hume", Type: model.ConnInfluenced, Strength: 4},
		{ID: "c9", FromID: "hume", ToID: "kant", Type: model.ConnInfluenced, Strength: 5,
			Name: "woke from dogmatic slumber"},
		{ID: "c10", FromID: "leibniz", ToID: "kant", Type: model.ConnInfluenced, Strength: 3},
		{ID: "c11", FromID: "kant", ToID: "hegel", Type: model.ConnInfluenced, Strength: 4},
		{ID: "c12", FromID: "hegel", ToID: "nietzsche", Type: model.ConnOpposed, Strength: 3},
		// Two parallel edges between the same pair exercise the fan-out.
		{ID: "c13", FromID: "plato", ToID: "epicurus", Type: model.ConnOpposed, Strength: 2},
		{ID: "c14", FromID: "plato", ToID: "epicurus", Type: model.ConnInfluenced, Strength: 1},
	}
}

func events() []model.DatedEvent {
	return []model.DatedEvent{
		{ID: "e1", Name: "Trial of Socrates", Year: -399, Kind: model.EventOther},
		{ID: "e2", Name: "Academy founded", Year: -387, Kind: model.EventFounding},
		{ID: "e3", Name: "Discourse on the Method", Year: 1637, Kind: model.EventPublication},
		{ID: "e4", Name: "Ethics published", Year: 1677, Kind: model.EventPublication},
		{ID: "e5", Name: "Critique of Pure Reason", Year: 1781, Kind: model.EventPublication},
		{ID: "e6", Name: "Tractatus published", Year: 1921, Kind: model.EventPublication},
	}
}

func notes() []model.StickyNote {
	return []model.StickyNote{
		{ID: "n1", Title: "Rationalists", Content: "Descartes, Spinoza, Leibniz: reason over the senses.",
			X: 900, Y: 120, OnCanvas: true, Color: model.NoteBlue},
		{ID: "n2", Title: "Check dates", Content: "Pythagoras is anchored, not dated.",
			X: 200, Y: 520, OnCanvas: true, Color: model.NoteYellow},
		{ID: "n3", Title: "Reading list", Content: "Off-canvas scratch note.",
			OnCanvas: false, Color: model.NoteGreen},
	}
}

func timelines() []model.Timeline {
	return []model.Timeline{
		{ID: "ancient", Name: "Ancient Greece", StartYear: yr(-600), EndYear: yr(-200)},
		{ID: "modern", Name: "Early Modern", StartYear: yr(1550), EndYear: yr(1850)},
	}
}
