package repository

import (
	"errors"

	"commandcenter-backend/models"
)

// ValidateSnapshot applies the checks the Add operations enforce to a whole
// snapshot: IDs present and unique per collection, enumerations closed.
// All violations are reported together.
func ValidateSnapshot(snap models.Snapshot) error {
	var errs []error
	check := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	partyIDs := ids{}
	for _, p := range snap.Parties {
		check(partyIDs.add("party", p.ID))
		if p.Name == "" {
			check(missing("party " + p.ID + " name"))
		}
		if !p.Role.Valid() {
			check(invalid("party "+p.ID+" role", p.Role))
		}
		intelIDs := ids{}
		for _, u := range p.IntelUpdates {
			check(intelIDs.add("intel update", u.ID))
			if !u.Source.Valid() {
				check(invalid("intel update "+u.ID+" source", u.Source))
			}
		}
	}

	eventIDs := ids{}
	for _, e := range snap.TimelineEvents {
		check(eventIDs.add("timeline event", e.ID))
		if !e.EventType.Valid() {
			check(invalid("timeline event "+e.ID+" event_type", e.EventType))
		}
		if !e.Priority.Valid() {
			check(invalid("timeline event "+e.ID+" priority", e.Priority))
		}
	}

	fileIDs := ids{}
	for _, f := range snap.Files {
		check(fileIDs.add("file", f.ID))
		if !f.Category.Valid() {
			check(invalid("file "+f.ID+" category", f.Category))
		}
		if f.Size < 0 {
			check(invalid("file "+f.ID+" size", f.Size))
		}
	}

	noteIDs := ids{}
	for _, n := range snap.Notes {
		check(noteIDs.add("note", n.ID))
		if !n.Category.Valid() {
			check(invalid("note "+n.ID+" category", n.Category))
		}
	}

	alertIDs := ids{}
	for _, a := range snap.Alerts {
		check(alertIDs.add("alert", a.ID))
		if !a.Priority.Valid() {
			check(invalid("alert "+a.ID+" priority", a.Priority))
		}
		if !a.Type.Valid() {
			check(invalid("alert "+a.ID+" type", a.Type))
		}
	}

	steps := ids{}
	for _, m := range snap.Milestones {
		check(steps.add("milestone", m.Step))
	}

	return errors.Join(errs...)
}

// ids tracks the IDs seen in one collection
type ids map[string]bool

func (seen ids) add(kind, id string) error {
	if id == "" {
		return missing(kind + " id")
	}
	if seen[id] {
		return duplicate(kind, id)
	}
	seen[id] = true
	return nil
}
