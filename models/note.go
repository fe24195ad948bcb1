package models

import "time"

// NoteCategory classifies a free-text note
type NoteCategory string

const (
	NoteGeneral    NoteCategory = "GENERAL"
	NoteLegal      NoteCategory = "LEGAL"
	NoteStrategy   NoteCategory = "STRATEGY"
	NoteResearch   NoteCategory = "RESEARCH"
	NoteActionItem NoteCategory = "ACTION_ITEM"
)

// Valid reports whether c is one of the known note categories
func (c NoteCategory) Valid() bool {
	switch c {
	case NoteGeneral, NoteLegal, NoteStrategy, NoteResearch, NoteActionItem:
		return true
	}
	return false
}

// GeneralEntity is the entity type and id used for unattached notes
const GeneralEntity = "general"

// Note is a free-text annotation. EntityType/EntityID is a lookup key for
// what the note annotates, not an ownership relation.
type Note struct {
	ID         string       `json:"id" yaml:"id"`
	Content    string       `json:"content" yaml:"content"`
	Category   NoteCategory `json:"category" yaml:"category"`
	EntityType string       `json:"entity_type" yaml:"entity_type"`
	EntityID   string       `json:"entity_id" yaml:"entity_id"`
	Pinned     bool         `json:"pinned" yaml:"pinned"`
	CreatedAt  time.Time    `json:"created_at" yaml:"created_at"`
}
