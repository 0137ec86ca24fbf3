// Package app provides application lifecycle management, shared state, and
// events.
package app

import (
	"fmt"
	"sync"

	"ideatlas/internal/document"
	"ideatlas/internal/model"
)

// State holds the externally-owned data the canvas renders, plus the
// selection and filter context. The canvas reads it per frame and proposes
// changes only through callbacks; State is where those proposals land.
type State struct {
	mu sync.RWMutex

	// Document
	DocumentPath string
	Modified     bool

	Thinkers    []model.Thinker
	Connections []model.Connection
	Events      []model.DatedEvent
	Notes       []model.StickyNote
	Timelines   []model.Timeline

	// View context
	SelectedTimelineID string
	Filter             model.Filter
	Selection          model.Selection

	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventDocumentLoaded EventType = iota
	EventDocumentSaved
	EventDataChanged
	EventSelectionChanged
	EventFilterChanged
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates an empty application state.
func NewState() *State {
	return &State{
		Selection: model.Selection{Bulk: make(map[string]bool)},
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the document as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// SelectedTimeline resolves the selected timeline id against the loaded
// timelines; nil when none is selected or it no longer exists.
func (s *State) SelectedTimeline() *model.Timeline {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.SelectedTimelineID == "" {
		return nil
	}
	for i := range s.Timelines {
		if s.Timelines[i].ID == s.SelectedTimelineID {
			tl := s.Timelines[i]
			return &tl
		}
	}
	return nil
}

// SelectTimeline switches the timeline scope and filter.
func (s *State) SelectTimeline(id string) {
	s.mu.Lock()
	s.SelectedTimelineID = id
	s.Filter.TimelineID = id
	s.mu.Unlock()
	s.Emit(EventFilterChanged, id)
}

// SetSearch updates the free-text search filter.
func (s *State) SetSearch(query string) {
	s.mu.Lock()
	s.Filter.Search = query
	s.mu.Unlock()
	s.Emit(EventFilterChanged, query)
}

// UpdateFilter mutates the active filter in place and notifies listeners.
func (s *State) UpdateFilter(mutate func(f *model.Filter)) {
	s.mu.Lock()
	mutate(&s.Filter)
	s.mu.Unlock()
	s.Emit(EventFilterChanged, nil)
}

// SelectThinker makes id the single selection (and the connection emphasis
// anchor). Empty id clears the selection.
func (s *State) SelectThinker(id string) {
	s.mu.Lock()
	s.Selection.SelectedID = id
	s.Selection.EmphasisID = id
	s.mu.Unlock()
	s.Emit(EventSelectionChanged, id)
}

// ToggleBulk flips id's membership in the bulk selection set.
func (s *State) ToggleBulk(id string) {
	s.mu.Lock()
	if s.Selection.Bulk == nil {
		s.Selection.Bulk = make(map[string]bool)
	}
	if s.Selection.Bulk[id] {
		delete(s.Selection.Bulk, id)
	} else {
		s.Selection.Bulk[id] = true
	}
	s.mu.Unlock()
	s.Emit(EventSelectionChanged, id)
}

// ToggleConnectionType shows or hides a whole connection type.
func (s *State) ToggleConnectionType(ct model.ConnectionType) {
	s.mu.Lock()
	if s.Selection.HiddenTypes == nil {
		s.Selection.HiddenTypes = make(map[model.ConnectionType]bool)
	}
	s.Selection.HiddenTypes[ct] = !s.Selection.HiddenTypes[ct]
	s.mu.Unlock()
	s.Emit(EventSelectionChanged, ct)
}

// MoveThinker lands a drag-committed anchor year and axis offset. This is
// the only way the canvas changes a thinker, and it goes through here, not
// through the canvas core.
func (s *State) MoveThinker(id string, anchorYear int, offsetY float64) {
	s.mu.Lock()
	for i := range s.Thinkers {
		if s.Thinkers[i].ID == id {
			year := anchorYear
			off := offsetY
			s.Thinkers[i].AnchorYear = &year
			s.Thinkers[i].PosY = &off
			break
		}
	}
	s.mu.Unlock()
	s.SetModified(true)
	s.Emit(EventDataChanged, id)
}

// MoveNote lands a drag-committed note position.
func (s *State) MoveNote(id string, x, y float64) {
	s.mu.Lock()
	for i := range s.Notes {
		if s.Notes[i].ID == id {
			s.Notes[i].X = x
			s.Notes[i].Y = y
			break
		}
	}
	s.mu.Unlock()
	s.SetModified(true)
	s.Emit(EventDataChanged, id)
}

// AddThinker appends a new thinker.
func (s *State) AddThinker(t model.Thinker) {
	s.mu.Lock()
	s.Thinkers = append(s.Thinkers, t)
	s.mu.Unlock()
	s.SetModified(true)
	s.Emit(EventDataChanged, t.ID)
}

// AddNote appends a new sticky note.
func (s *State) AddNote(n model.StickyNote) {
	s.mu.Lock()
	s.Notes = append(s.Notes, n)
	s.mu.Unlock()
	s.SetModified(true)
	s.Emit(EventDataChanged, n.ID)
}

// ClearFilters resets every filter except the timeline scope.
func (s *State) ClearFilters() {
	s.mu.Lock()
	s.Filter = model.Filter{TimelineID: s.SelectedTimelineID}
	s.mu.Unlock()
	s.Emit(EventFilterChanged, nil)
}

// NewDocument clears the state for a fresh, unsaved document.
func (s *State) NewDocument() {
	s.mu.Lock()
	s.DocumentPath = ""
	s.Modified = false
	s.Thinkers = nil
	s.Connections = nil
	s.Events = nil
	s.Notes = nil
	s.Timelines = nil
	s.SelectedTimelineID = ""
	s.Filter = model.Filter{}
	s.Selection = model.Selection{Bulk: make(map[string]bool)}
	s.mu.Unlock()

	s.Emit(EventDataChanged, nil)
}

// LoadDocument reads a document file into the state.
func (s *State) LoadDocument(path string) error {
	doc, err := document.Load(path)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	s.mu.Lock()
	s.DocumentPath = path
	s.Modified = false
	s.Thinkers = doc.Thinkers
	s.Connections = doc.Connections
	s.Events = doc.Events
	s.Notes = doc.Notes
	s.Timelines = doc.Timelines
	s.mu.Unlock()

	s.Emit(EventDocumentLoaded, path)
	s.Emit(EventDataChanged, nil)
	return nil
}

// SaveDocument writes the state back to a document file.
func (s *State) SaveDocument(path string) error {
	s.mu.RLock()
	doc := &document.File{
		Version:     document.CurrentVersion,
		Thinkers:    s.Thinkers,
		Connections: s.Connections,
		Events:      s.Events,
		Notes:       s.Notes,
		Timelines:   s.Timelines,
	}
	s.mu.RUnlock()

	if err := doc.Save(path); err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	s.mu.Lock()
	s.DocumentPath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventDocumentSaved, path)
	return nil
}
