package models

// Milestone is one step of the domestication checklist
type Milestone struct {
	Step      string `json:"step" yaml:"step"`
	Label     string `json:"label" yaml:"label"`
	State     string `json:"state" yaml:"state"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// CaseParty is a named participant on the judgment record
type CaseParty struct {
	Name    string `json:"name" yaml:"name"`
	Contact string `json:"contact,omitempty" yaml:"contact"`
	Status  string `json:"status,omitempty" yaml:"status"`
	Firm    string `json:"firm,omitempty" yaml:"firm"`
	Email   string `json:"email,omitempty" yaml:"email"`
	Phone   string `json:"phone,omitempty" yaml:"phone"`
	Address string `json:"address,omitempty" yaml:"address"`
	State   string `json:"state,omitempty" yaml:"state"`
}

// Judgment holds the terms of the judgment being collected
type Judgment struct {
	CaseNumber         string  `json:"case_number" yaml:"case_number"`
	Court              string  `json:"court" yaml:"court"`
	Amount             float64 `json:"amount" yaml:"amount"`
	DamagesAmount      float64 `json:"damages_amount" yaml:"damages_amount"`
	FeesAmount         float64 `json:"fees_amount" yaml:"fees_amount"`
	JudgmentDate       string  `json:"judgment_date" yaml:"judgment_date"`
	DefaultEnteredDate string  `json:"default_entered_date,omitempty" yaml:"default_entered_date"`
	ServiceDate        string  `json:"service_date,omitempty" yaml:"service_date"`
}

// CaseRecord describes the matter the dashboard tracks
type CaseRecord struct {
	Plaintiff            CaseParty `json:"plaintiff" yaml:"plaintiff"`
	Defendant            CaseParty `json:"defendant" yaml:"defendant"`
	Attorney             CaseParty `json:"attorney" yaml:"attorney"`
	Judgment             Judgment  `json:"judgment" yaml:"judgment"`
	DomesticationTargets []string  `json:"domestication_targets" yaml:"domestication_targets"`
}

// Snapshot is a point-in-time copy of every collection in the store
type Snapshot struct {
	Case           CaseRecord      `json:"case" yaml:"case"`
	Parties        []Party         `json:"parties" yaml:"parties"`
	TimelineEvents []TimelineEvent `json:"timeline_events" yaml:"timeline_events"`
	Files          []ProjectFile   `json:"files" yaml:"files"`
	Notes          []Note          `json:"notes" yaml:"notes"`
	Alerts         []Alert         `json:"alerts" yaml:"alerts"`
	Milestones     []Milestone     `json:"milestones" yaml:"milestones"`
}

// Clone returns a deep copy of the snapshot
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{Case: s.Case}
	out.Case.DomesticationTargets = append([]string(nil), s.Case.DomesticationTargets...)
	out.Parties = make([]Party, len(s.Parties))
	for i, p := range s.Parties {
		out.Parties[i] = p.Clone()
	}
	out.TimelineEvents = make([]TimelineEvent, len(s.TimelineEvents))
	for i, e := range s.TimelineEvents {
		out.TimelineEvents[i] = e.Clone()
	}
	out.Files = make([]ProjectFile, len(s.Files))
	for i, f := range s.Files {
		out.Files[i] = f.Clone()
	}
	out.Notes = append([]Note(nil), s.Notes...)
	if out.Notes == nil {
		out.Notes = []Note{}
	}
	out.Alerts = make([]Alert, len(s.Alerts))
	for i, a := range s.Alerts {
		out.Alerts[i] = a.Clone()
	}
	out.Milestones = append([]Milestone(nil), s.Milestones...)
	if out.Milestones == nil {
		out.Milestones = []Milestone{}
	}
	return out
}
