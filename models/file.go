package models

import "time"

// FileCategory classifies a document in the case library
type FileCategory string

const (
	CategoryDiscovery      FileCategory = "DISCOVERY"
	CategoryCourtFiling    FileCategory = "COURT_FILING"
	CategoryCorrespondence FileCategory = "CORRESPONDENCE"
	CategoryContract       FileCategory = "CONTRACT"
	CategoryEvidence       FileCategory = "EVIDENCE"
	CategoryOther          FileCategory = "OTHER"
)

// Valid reports whether c is one of the known categories
func (c FileCategory) Valid() bool {
	switch c {
	case CategoryDiscovery, CategoryCourtFiling, CategoryCorrespondence, CategoryContract, CategoryEvidence, CategoryOther:
		return true
	}
	return false
}

// ProjectFile represents a document in the case library
type ProjectFile struct {
	ID           string       `json:"id" yaml:"id"`
	Filename     string       `json:"filename" yaml:"filename"`
	OriginalName string       `json:"original_name" yaml:"original_name"`
	MimeType     string       `json:"mime_type" yaml:"mime_type"`
	Size         int64        `json:"size" yaml:"size"`
	Category     FileCategory `json:"category" yaml:"category"`
	URL          string       `json:"url" yaml:"url"`
	StoragePath  string       `json:"-" yaml:"-"`
	Notes        *string      `json:"notes,omitempty" yaml:"notes"` // overwritten, never appended
	UploadedAt   time.Time    `json:"uploaded_at" yaml:"uploaded_at"`
}

// Clone returns a deep copy of the file record
func (f ProjectFile) Clone() ProjectFile {
	out := f
	out.Notes = cloneString(f.Notes)
	return out
}
