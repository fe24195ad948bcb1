package repository

import (
	"commandcenter-backend/models"
)

// TimelineEvents returns every event in insertion order
func (s *CaseStore) TimelineEvents() []models.TimelineEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.TimelineEvent, len(s.data.TimelineEvents))
	for i, e := range s.data.TimelineEvents {
		out[i] = e.Clone()
	}
	return out
}

// AddTimelineEvent validates and appends an event
func (s *CaseStore) AddTimelineEvent(e models.TimelineEvent) (models.TimelineEvent, error) {
	if e.Title == "" {
		return models.TimelineEvent{}, missing("title")
	}
	if e.EventDate.IsZero() {
		return models.TimelineEvent{}, missing("event_date")
	}
	if !e.EventType.Valid() {
		return models.TimelineEvent{}, invalid("event_type", e.EventType)
	}
	if e.Priority == "" {
		e.Priority = models.PriorityNormal
	}
	if !e.Priority.Valid() {
		return models.TimelineEvent{}, invalid("priority", e.Priority)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e = e.Clone()
	e.ID = newID(e.ID)
	if s.eventIndex(e.ID) >= 0 {
		return models.TimelineEvent{}, duplicate("timeline event", e.ID)
	}
	s.data.TimelineEvents = append(s.data.TimelineEvents, e)
	return e.Clone(), nil
}

// ToggleEventCompleted flips an event's completed flag and returns the
// updated event. The event date is untouched.
func (s *CaseStore) ToggleEventCompleted(id string) (models.TimelineEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.eventIndex(id)
	if i < 0 {
		return models.TimelineEvent{}, notFound("timeline event", id)
	}
	s.data.TimelineEvents[i].Completed = !s.data.TimelineEvents[i].Completed
	return s.data.TimelineEvents[i].Clone(), nil
}

func (s *CaseStore) eventIndex(id string) int {
	for i, e := range s.data.TimelineEvents {
		if e.ID == id {
			return i
		}
	}
	return -1
}
