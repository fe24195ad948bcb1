package repository

import (
	"commandcenter-backend/models"
)

// Alerts returns every alert, dismissed ones included
func (s *CaseStore) Alerts() []models.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Alert, len(s.data.Alerts))
	for i, a := range s.data.Alerts {
		out[i] = a.Clone()
	}
	return out
}

// AddAlert validates and appends an active alert
func (s *CaseStore) AddAlert(a models.Alert) (models.Alert, error) {
	if a.Title == "" {
		return models.Alert{}, missing("title")
	}
	if a.Priority == "" {
		a.Priority = models.PriorityNormal
	}
	if !a.Priority.Valid() {
		return models.Alert{}, invalid("priority", a.Priority)
	}
	if !a.Type.Valid() {
		return models.Alert{}, invalid("type", a.Type)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a = a.Clone()
	a.ID = newID(a.ID)
	a.Dismissed = false
	if s.alertIndex(a.ID) >= 0 {
		return models.Alert{}, duplicate("alert", a.ID)
	}
	s.data.Alerts = append(s.data.Alerts, a)
	return a.Clone(), nil
}

// DismissAlert moves an alert to DISMISSED. Dismissing an already
// dismissed alert is a no-op. The alert stays in the store.
func (s *CaseStore) DismissAlert(id string) (models.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.alertIndex(id)
	if i < 0 {
		return models.Alert{}, notFound("alert", id)
	}
	s.data.Alerts[i].Dismissed = true
	return s.data.Alerts[i].Clone(), nil
}

// PurgeDismissedAlerts drops dismissed alerts and reports how many were removed
func (s *CaseStore) PurgeDismissedAlerts() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.data.Alerts[:0]
	for _, a := range s.data.Alerts {
		if !a.Dismissed {
			kept = append(kept, a)
		}
	}
	removed := len(s.data.Alerts) - len(kept)
	s.data.Alerts = kept
	return removed
}

func (s *CaseStore) alertIndex(id string) int {
	for i, a := range s.data.Alerts {
		if a.ID == id {
			return i
		}
	}
	return -1
}
