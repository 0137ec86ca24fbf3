// Package model defines the data records the timeline canvas operates on.
// The canvas reads these as injected, externally-owned data; it never
// creates, mutates, or persists them itself.
package model

import (
	"image/color"

	"ideatlas/pkg/colorutil"
)

// Thinker is an intellectual figure plotted on the timeline.
type Thinker struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	BirthYear  *int   `json:"birth_year,omitempty"`
	DeathYear  *int   `json:"death_year,omitempty"`
	AnchorYear *int   `json:"anchor_year,omitempty"`

	// Manual pixel position. PosY is an offset from the chronology axis,
	// PosX an absolute stored x used only when no placement year exists.
	PosX *float64 `json:"pos_x,omitempty"`
	PosY *float64 `json:"pos_y,omitempty"`

	TimelineID string   `json:"timeline_id,omitempty"`
	Field      string   `json:"field,omitempty"`
	Biography  string   `json:"biography,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// PlacementYear returns the year the thinker is anchored to on the axis:
// the explicit anchor year when set, otherwise the birth/death midpoint,
// otherwise whichever of death or birth is known. ok is false when the
// thinker has no placement year at all.
func (t Thinker) PlacementYear() (year int, ok bool) {
	switch {
	case t.AnchorYear != nil:
		return *t.AnchorYear, true
	case t.BirthYear != nil && t.DeathYear != nil:
		return (*t.BirthYear + *t.DeathYear) / 2, true
	case t.DeathYear != nil:
		return *t.DeathYear, true
	case t.BirthYear != nil:
		return *t.BirthYear, true
	}
	return 0, false
}

// AliveAt reports whether the thinker's known lifespan covers the year.
// A thinker with no birth or death year is never considered alive.
func (t Thinker) AliveAt(year int) bool {
	if t.BirthYear == nil && t.DeathYear == nil {
		return false
	}
	if t.BirthYear != nil && year < *t.BirthYear {
		return false
	}
	if t.DeathYear != nil && year > *t.DeathYear {
		return false
	}
	return true
}

// HasTag reports whether the thinker carries the given tag.
func (t Thinker) HasTag(tag string) bool {
	for _, tg := range t.Tags {
		if tg == tag {
			return true
		}
	}
	return false
}

// ConnectionType classifies a relationship between two thinkers.
type ConnectionType string

const (
	ConnInfluenced   ConnectionType = "influenced"
	ConnTaught       ConnectionType = "taught"
	ConnOpposed      ConnectionType = "opposed"
	ConnCollaborated ConnectionType = "collaborated"
	ConnCorresponded ConnectionType = "corresponded"
)

// ConnectionStyle is the fixed visual treatment of a connection type.
type ConnectionStyle struct {
	Color color.RGBA
	Dash  []float64 // stroke dash pattern; nil means solid
	Label string
}

// connectionStyles is the closed set of connection types and their styles.
var connectionStyles = map[ConnectionType]ConnectionStyle{
	ConnInfluenced:   {Color: colorutil.Blue, Label: "influenced"},
	ConnTaught:       {Color: colorutil.Green, Label: "taught"},
	ConnOpposed:      {Color: colorutil.Red, Dash: []float64{8, 4}, Label: "opposed"},
	ConnCollaborated: {Color: colorutil.Purple, Label: "collaborated"},
	ConnCorresponded: {Color: colorutil.Orange, Dash: []float64{2, 3}, Label: "corresponded"},
}

// Style returns the visual treatment for the connection type. Unknown types
// fall back to a gray solid line so stale data still renders.
func (ct ConnectionType) Style() ConnectionStyle {
	if s, ok := connectionStyles[ct]; ok {
		return s
	}
	return ConnectionStyle{Color: colorutil.Gray, Label: string(ct)}
}

// ConnectionTypes lists the closed set in a stable order.
func ConnectionTypes() []ConnectionType {
	return []ConnectionType{
		ConnInfluenced, ConnTaught, ConnOpposed, ConnCollaborated, ConnCorresponded,
	}
}

// Connection is a typed directional relationship between two thinkers.
// FromID != ToID is enforced by the data layer, not here; the canvas must
// tolerate a self-reference without crashing.
type Connection struct {
	ID            string         `json:"id"`
	FromID        string         `json:"from_id"`
	ToID          string         `json:"to_id"`
	Type          ConnectionType `json:"type"`
	Name          string         `json:"name,omitempty"`
	Strength      int            `json:"strength"` // ordinal 1-5, controls line width
	Bidirectional bool           `json:"bidirectional,omitempty"`
	Note          string         `json:"note,omitempty"`
}

// DisplayLabel is the text drawn at the curve midpoint: the custom name
// when present, otherwise the type's default label.
func (c Connection) DisplayLabel() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Type.Style().Label
}

// ClampedStrength bounds the ordinal strength to the 1-5 scale.
func (c Connection) ClampedStrength() int {
	if c.Strength < 1 {
		return 1
	}
	if c.Strength > 5 {
		return 5
	}
	return c.Strength
}

// EventKind classifies a dated event, keyed to a distinct glyph shape.
type EventKind string

const (
	EventPublication EventKind = "publication" // triangle
	EventFounding    EventKind = "founding"    // rectangle
	EventMeeting     EventKind = "meeting"     // diamond
	EventAward       EventKind = "award"       // five-point star
	EventOther       EventKind = "other"       // circle
)

// DatedEvent is a discrete occurrence at a single year. Events render above
// the axis and are never displaced by label layout.
type DatedEvent struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Year        int       `json:"year"`
	Kind        EventKind `json:"kind"`
	Description string    `json:"description,omitempty"`
}

// NoteColor selects a card color from the fixed sticky note palette.
type NoteColor string

const (
	NoteYellow NoteColor = "yellow"
	NoteGreen  NoteColor = "green"
	NoteBlue   NoteColor = "blue"
	NotePink   NoteColor = "pink"
	NoteOrange NoteColor = "orange"
)

// notePalette maps note colors to card fill colors.
var notePalette = map[NoteColor]color.RGBA{
	NoteYellow: {R: 254, G: 240, B: 138, A: 255},
	NoteGreen:  {R: 187, G: 247, B: 208, A: 255},
	NoteBlue:   {R: 191, G: 219, B: 254, A: 255},
	NotePink:   {R: 251, G: 207, B: 232, A: 255},
	NoteOrange: {R: 254, G: 215, B: 170, A: 255},
}

// Fill returns the card fill color, defaulting to yellow for unknown values.
func (nc NoteColor) Fill() color.RGBA {
	if c, ok := notePalette[nc]; ok {
		return c
	}
	return notePalette[NoteYellow]
}

// StickyNote is a free-floating annotation card. Only notes flagged OnCanvas
// participate in canvas rendering and hit-testing.
type StickyNote struct {
	ID       string    `json:"id"`
	Title    string    `json:"title,omitempty"`
	Content  string    `json:"content,omitempty"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	OnCanvas bool      `json:"on_canvas"`
	Color    NoteColor `json:"color,omitempty"`
}

// Timeline scopes which thinkers are shown and, when selected, defines the
// coordinate window directly.
type Timeline struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartYear *int   `json:"start_year,omitempty"`
	EndYear   *int   `json:"end_year,omitempty"`
}

// Selection is the externally-owned selection context for a frame.
type Selection struct {
	SelectedID string
	Bulk       map[string]bool
	// EmphasisID, when set, highlights every connection touching the
	// thinker and dims the rest.
	EmphasisID string
	// HiddenTypes removes whole connection types from rendering.
	HiddenTypes map[ConnectionType]bool
}

// IsBulkSelected reports whether the thinker id is in the bulk set.
func (s Selection) IsBulkSelected(id string) bool {
	return s.Bulk != nil && s.Bulk[id]
}

// ConnectionVisible reports whether the connection passes the type toggles.
func (s Selection) ConnectionVisible(c Connection) bool {
	return s.HiddenTypes == nil || !s.HiddenTypes[c.Type]
}

// ConnectionEmphasized reports whether the connection touches the
// emphasized thinker.
func (s Selection) ConnectionEmphasized(c Connection) bool {
	return s.EmphasisID != "" && (c.FromID == s.EmphasisID || c.ToID == s.EmphasisID)
}
