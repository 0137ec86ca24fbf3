// Package document provides genealogy document file handling.
package document

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"ideatlas/internal/model"
)

// CurrentVersion is the document format version this build writes.
const CurrentVersion = 1

// File is a genealogy document (.ideatlas): the full data set the canvas
// renders, as one JSON file.
type File struct {
	Version  int       `json:"version"`
	Name     string    `json:"name,omitempty"`
	Created  time.Time `json:"created,omitempty"`
	Modified time.Time `json:"modified,omitempty"`

	Thinkers    []model.Thinker    `json:"thinkers"`
	Connections []model.Connection `json:"connections,omitempty"`
	Events      []model.DatedEvent `json:"events,omitempty"`
	Notes       []model.StickyNote `json:"notes,omitempty"`
	Timelines   []model.Timeline   `json:"timelines,omitempty"`
}

// New creates an empty document.
func New(name string) *File {
	now := time.Now()
	return &File{
		Version:  CurrentVersion,
		Name:     name,
		Created:  now,
		Modified: now,
	}
}

// Load reads a document from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if f.Version > CurrentVersion {
		return nil, fmt.Errorf("%s: document version %d is newer than supported version %d",
			path, f.Version, CurrentVersion)
	}
	return &f, nil
}

// Save writes the document to disk, refreshing its modified stamp.
func (f *File) Save(path string) error {
	f.Modified = time.Now()
	if f.Version == 0 {
		f.Version = CurrentVersion
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
