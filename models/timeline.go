package models

import "time"

// EventType classifies a timeline entry
type EventType string

const (
	EventFiling    EventType = "FILING"
	EventHearing   EventType = "HEARING"
	EventDeadline  EventType = "DEADLINE"
	EventMilestone EventType = "MILESTONE"
	EventAction    EventType = "ACTION"
	EventNote      EventType = "NOTE"
)

// Valid reports whether t is one of the known event types
func (t EventType) Valid() bool {
	switch t {
	case EventFiling, EventHearing, EventDeadline, EventMilestone, EventAction, EventNote:
		return true
	}
	return false
}

// Priority is shared by timeline events and alerts
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityNormal Priority = "NORMAL"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Rank orders priorities: URGENT > HIGH > NORMAL > LOW. Unknown values rank lowest.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 3
	case PriorityHigh:
		return 2
	case PriorityNormal:
		return 1
	case PriorityLow:
		return 0
	}
	return -1
}

// TimelineEvent represents a dated entry in the case chronology
type TimelineEvent struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description *string   `json:"description,omitempty" yaml:"description"`
	EventType   EventType `json:"event_type" yaml:"event_type"`
	EventDate   time.Time `json:"event_date" yaml:"event_date"`
	Completed   bool      `json:"completed" yaml:"completed"`
	Priority    Priority  `json:"priority" yaml:"priority"`
}

// Clone returns a deep copy of the event
func (e TimelineEvent) Clone() TimelineEvent {
	out := e
	out.Description = cloneString(e.Description)
	return out
}
