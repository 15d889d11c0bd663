package model

import "github.com/google/uuid"

// DiagnosticSession holds the inputs accumulated over one interactive
// diagnosis. It is ephemeral: created when the interaction starts and
// discarded with the final report. Nothing here is persisted.
type DiagnosticSession struct {
	ID             uuid.UUID
	Name           string   // patient name, used only for greeting text
	InitialSymptom string   // the disambiguated starting symptom
	Days           int      // duration of the initial symptom
	Confirmed      []string // initial symptom plus confirmed follow-ups
	PresentDisease string   // initial prediction
	SecondDisease  string   // refined prediction
}

// NewDiagnosticSession creates a session with a fresh id.
func NewDiagnosticSession(name string) *DiagnosticSession {
	return &DiagnosticSession{ID: uuid.New(), Name: name}
}
