package models

import "time"

// PartyRole identifies how a party relates to the case
type PartyRole string

const (
	RolePlaintiff PartyRole = "PLAINTIFF"
	RoleDefendant PartyRole = "DEFENDANT"
	RoleAttorney  PartyRole = "ATTORNEY"
	RoleWitness   PartyRole = "WITNESS"
	RoleExpert    PartyRole = "EXPERT"
	RoleOther     PartyRole = "OTHER"
)

// Valid reports whether r is one of the known roles
func (r PartyRole) Valid() bool {
	switch r {
	case RolePlaintiff, RoleDefendant, RoleAttorney, RoleWitness, RoleExpert, RoleOther:
		return true
	}
	return false
}

// IntelSource identifies where an intel update came from
type IntelSource string

const (
	SourceLinkedIn    IntelSource = "LINKEDIN"
	SourceTwitter     IntelSource = "TWITTER"
	SourceNews        IntelSource = "NEWS"
	SourceCourtFiling IntelSource = "COURT_FILING"
	SourceManual      IntelSource = "MANUAL"
)

// Valid reports whether s is one of the known sources
func (s IntelSource) Valid() bool {
	switch s {
	case SourceLinkedIn, SourceTwitter, SourceNews, SourceCourtFiling, SourceManual:
		return true
	}
	return false
}

// Party represents a person or entity involved in the case
type Party struct {
	ID           string        `json:"id" yaml:"id"`
	Name         string        `json:"name" yaml:"name"`
	Role         PartyRole     `json:"role" yaml:"role"`
	Company      *string       `json:"company,omitempty" yaml:"company"`
	Email        *string       `json:"email,omitempty" yaml:"email"`
	Phone        *string       `json:"phone,omitempty" yaml:"phone"`
	Address      *string       `json:"address,omitempty" yaml:"address"`
	LinkedIn     *string       `json:"linkedin,omitempty" yaml:"linkedin"`
	Twitter      *string       `json:"twitter,omitempty" yaml:"twitter"`
	PhotoURL     *string       `json:"photo_url,omitempty" yaml:"photo_url"`
	IntelUpdates []IntelUpdate `json:"intel_updates" yaml:"intel_updates"`
}

// IntelUpdate is a note about a monitored party. It is owned by exactly one
// Party and the only mutation is marking it read.
type IntelUpdate struct {
	ID        string      `json:"id" yaml:"id"`
	Source    IntelSource `json:"source" yaml:"source"`
	Title     string      `json:"title" yaml:"title"`
	Content   string      `json:"content" yaml:"content"`
	URL       *string     `json:"url,omitempty" yaml:"url"`
	Important bool        `json:"important" yaml:"important"`
	Read      bool        `json:"read" yaml:"read"`
	CreatedAt time.Time   `json:"created_at" yaml:"created_at"`
}

// Clone returns a deep copy of the party
func (p Party) Clone() Party {
	out := p
	out.Company = cloneString(p.Company)
	out.Email = cloneString(p.Email)
	out.Phone = cloneString(p.Phone)
	out.Address = cloneString(p.Address)
	out.LinkedIn = cloneString(p.LinkedIn)
	out.Twitter = cloneString(p.Twitter)
	out.PhotoURL = cloneString(p.PhotoURL)
	out.IntelUpdates = make([]IntelUpdate, len(p.IntelUpdates))
	for i, u := range p.IntelUpdates {
		u.URL = cloneString(u.URL)
		out.IntelUpdates[i] = u
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
