package repository

import (
	"commandcenter-backend/models"
)

// Notes returns every note, newest additions first
func (s *CaseStore) Notes() []models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Note{}, s.data.Notes...)
}

// AddNote validates and prepends a note. Notes without an entity reference
// are filed under "general".
func (s *CaseStore) AddNote(n models.Note) (models.Note, error) {
	if n.Content == "" {
		return models.Note{}, missing("content")
	}
	if n.Category == "" {
		n.Category = models.NoteGeneral
	}
	if !n.Category.Valid() {
		return models.Note{}, invalid("category", n.Category)
	}
	if n.EntityType == "" {
		n.EntityType = models.GeneralEntity
	}
	if n.EntityID == "" {
		n.EntityID = models.GeneralEntity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n.ID = newID(n.ID)
	if s.noteIndex(n.ID) >= 0 {
		return models.Note{}, duplicate("note", n.ID)
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now()
	}
	s.data.Notes = append([]models.Note{n}, s.data.Notes...)
	return n, nil
}

// ToggleNotePinned flips a note's pinned flag
func (s *CaseStore) ToggleNotePinned(id string) (models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.noteIndex(id)
	if i < 0 {
		return models.Note{}, notFound("note", id)
	}
	s.data.Notes[i].Pinned = !s.data.Notes[i].Pinned
	return s.data.Notes[i], nil
}

// DeleteNote removes a note
func (s *CaseStore) DeleteNote(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.noteIndex(id)
	if i < 0 {
		return notFound("note", id)
	}
	s.data.Notes = append(s.data.Notes[:i], s.data.Notes[i+1:]...)
	return nil
}

func (s *CaseStore) noteIndex(id string) int {
	for i, n := range s.data.Notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}
