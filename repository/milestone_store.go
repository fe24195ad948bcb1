package repository

import (
	"commandcenter-backend/models"
)

// Milestones returns the domestication checklist in order
func (s *CaseStore) Milestones() []models.Milestone {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Milestone{}, s.data.Milestones...)
}

// ToggleMilestone flips the completed flag of the milestone with the given step code
func (s *CaseStore) ToggleMilestone(step string) (models.Milestone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.Milestones {
		if s.data.Milestones[i].Step == step {
			s.data.Milestones[i].Completed = !s.data.Milestones[i].Completed
			return s.data.Milestones[i], nil
		}
	}
	return models.Milestone{}, notFound("milestone", step)
}
