package models

import "time"

// AlertType classifies what an alert is about
type AlertType string

const (
	AlertDeadline AlertType = "deadline"
	AlertIntel    AlertType = "intel"
	AlertAction   AlertType = "action"
	AlertReminder AlertType = "reminder"
)

// Valid reports whether t is one of the known alert types
func (t AlertType) Valid() bool {
	switch t {
	case AlertDeadline, AlertIntel, AlertAction, AlertReminder:
		return true
	}
	return false
}

// AlertState is derived from Dismissed. ACTIVE -> DISMISSED is terminal.
type AlertState string

const (
	AlertActive    AlertState = "ACTIVE"
	AlertDismissed AlertState = "DISMISSED"
)

// Alert is a priority-tagged, dismissible notice
type Alert struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	Message   *string    `json:"message,omitempty" yaml:"message"`
	Priority  Priority   `json:"priority" yaml:"priority"`
	DueDate   *time.Time `json:"due_date,omitempty" yaml:"due_date"`
	Dismissed bool       `json:"dismissed" yaml:"dismissed"`
	Type      AlertType  `json:"type" yaml:"type"`
}

// State returns the alert's lifecycle state
func (a Alert) State() AlertState {
	if a.Dismissed {
		return AlertDismissed
	}
	return AlertActive
}

// Clone returns a deep copy of the alert
func (a Alert) Clone() Alert {
	out := a
	out.Message = cloneString(a.Message)
	out.DueDate = cloneTime(a.DueDate)
	return out
}
