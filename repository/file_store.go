package repository

import (
	"commandcenter-backend/models"
)

// Files returns every file record
func (s *CaseStore) Files() []models.ProjectFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ProjectFile, len(s.data.Files))
	for i, f := range s.data.Files {
		out[i] = f.Clone()
	}
	return out
}

// File returns one file record by ID
func (s *CaseStore) File(id string) (models.ProjectFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.fileIndex(id)
	if i < 0 {
		return models.ProjectFile{}, notFound("file", id)
	}
	return s.data.Files[i].Clone(), nil
}

// AddFile validates and appends a file record
func (s *CaseStore) AddFile(f models.ProjectFile) (models.ProjectFile, error) {
	if f.Filename == "" {
		return models.ProjectFile{}, missing("filename")
	}
	if f.Size < 0 {
		return models.ProjectFile{}, invalid("size", f.Size)
	}
	if f.Category == "" {
		f.Category = models.CategoryOther
	}
	if !f.Category.Valid() {
		return models.ProjectFile{}, invalid("category", f.Category)
	}
	if f.OriginalName == "" {
		f.OriginalName = f.Filename
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f = f.Clone()
	f.ID = newID(f.ID)
	if s.fileIndex(f.ID) >= 0 {
		return models.ProjectFile{}, duplicate("file", f.ID)
	}
	if f.UploadedAt.IsZero() {
		f.UploadedAt = s.now()
	}
	s.data.Files = append(s.data.Files, f)
	return f.Clone(), nil
}

// SetFileNotes replaces a file's notes. An empty string clears them.
func (s *CaseStore) SetFileNotes(id, notes string) (models.ProjectFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.fileIndex(id)
	if i < 0 {
		return models.ProjectFile{}, notFound("file", id)
	}
	if notes == "" {
		s.data.Files[i].Notes = nil
	} else {
		s.data.Files[i].Notes = &notes
	}
	return s.data.Files[i].Clone(), nil
}

// DeleteFile removes a file record and returns it so the caller can
// release the stored blob
func (s *CaseStore) DeleteFile(id string) (models.ProjectFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.fileIndex(id)
	if i < 0 {
		return models.ProjectFile{}, notFound("file", id)
	}
	removed := s.data.Files[i]
	s.data.Files = append(s.data.Files[:i], s.data.Files[i+1:]...)
	return removed, nil
}

func (s *CaseStore) fileIndex(id string) int {
	for i, f := range s.data.Files {
		if f.ID == id {
			return i
		}
	}
	return -1
}
