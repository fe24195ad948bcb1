package repository

import (
	"commandcenter-backend/models"
)

// Parties returns every party with its intel updates
func (s *CaseStore) Parties() []models.Party {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Party, len(s.data.Parties))
	for i, p := range s.data.Parties {
		out[i] = p.Clone()
	}
	return out
}

// Party returns a single party by ID
func (s *CaseStore) Party(id string) (models.Party, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.partyIndex(id)
	if i < 0 {
		return models.Party{}, notFound("party", id)
	}
	return s.data.Parties[i].Clone(), nil
}

// AddParty validates and appends a party, assigning an ID if empty
func (s *CaseStore) AddParty(p models.Party) (models.Party, error) {
	if p.Name == "" {
		return models.Party{}, missing("name")
	}
	if !p.Role.Valid() {
		return models.Party{}, invalid("role", p.Role)
	}
	for _, u := range p.IntelUpdates {
		if !u.Source.Valid() {
			return models.Party{}, invalid("source", u.Source)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p = p.Clone()
	p.ID = newID(p.ID)
	if s.partyIndex(p.ID) >= 0 {
		return models.Party{}, duplicate("party", p.ID)
	}
	for i := range p.IntelUpdates {
		p.IntelUpdates[i].ID = newID(p.IntelUpdates[i].ID)
	}
	s.data.Parties = append(s.data.Parties, p)
	return p.Clone(), nil
}

// AddIntelUpdate prepends an intel update to a party's feed
func (s *CaseStore) AddIntelUpdate(partyID string, u models.IntelUpdate) (models.IntelUpdate, error) {
	if u.Title == "" {
		return models.IntelUpdate{}, missing("title")
	}
	if !u.Source.Valid() {
		return models.IntelUpdate{}, invalid("source", u.Source)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.partyIndex(partyID)
	if i < 0 {
		return models.IntelUpdate{}, notFound("party", partyID)
	}
	u.ID = newID(u.ID)
	for _, existing := range s.data.Parties[i].IntelUpdates {
		if existing.ID == u.ID {
			return models.IntelUpdate{}, duplicate("intel update", u.ID)
		}
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}
	updates := s.data.Parties[i].IntelUpdates
	s.data.Parties[i].IntelUpdates = append([]models.IntelUpdate{u}, updates...)
	return u, nil
}

// MarkIntelRead marks one intel update read. Marking an already-read
// update is a no-op.
func (s *CaseStore) MarkIntelRead(partyID, intelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.partyIndex(partyID)
	if i < 0 {
		return notFound("party", partyID)
	}
	for j := range s.data.Parties[i].IntelUpdates {
		if s.data.Parties[i].IntelUpdates[j].ID == intelID {
			s.data.Parties[i].IntelUpdates[j].Read = true
			return nil
		}
	}
	return notFound("intel update", intelID)
}

func (s *CaseStore) partyIndex(id string) int {
	for i, p := range s.data.Parties {
		if p.ID == id {
			return i
		}
	}
	return -1
}
