// Package engine drives the two-stage diagnostic flow: match the reported
// symptom, predict an initial disease, collect characteristic follow-up
// symptoms, refine the prediction with the full confirmed set, and score
// severity against the reported duration.
package engine

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/engine/classifier"
	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/engine/matcher"
	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/engine/profile"
	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/engine/severity"
	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/model"
	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/refdata"
)

// NoDescription is the placeholder used when a disease has no description
// entry. Missing entries degrade to this text instead of failing the request.
const NoDescription = "No description available."

// ErrInvalidDuration is returned when the reported number of days is not a
// positive integer.
var ErrInvalidDuration = errors.New("duration must be a positive number of days")

// Engine serves diagnostic requests against one shared, read-only snapshot
// of reference data and one loaded classifier. Requests are independent and
// need no mutual exclusion; every request reads a consistent snapshot.
type Engine struct {
	store *refdata.Store
	model *classifier.Model
}

// Request is one complete diagnostic input: a disambiguated initial symptom,
// the duration in days, and the follow-up symptoms the user confirmed.
type Request struct {
	Symptom    string
	Days       int
	Additional []string
}

// New creates an Engine. The store must be loaded and the model's feature
// columns must match the store's vocabulary exactly, in order — otherwise
// indicator vectors built from the vocabulary would be meaningless to the
// classifier.
func New(store *refdata.Store, m *classifier.Model) (*Engine, error) {
	snap, err := store.Snapshot()
	if err != nil {
		return nil, err
	}
	if m == nil || len(m.Features()) == 0 {
		return nil, classifier.ErrModelNotLoaded
	}
	if !slices.Equal(snap.Vocabulary().Names(), m.Features()) {
		return nil, fmt.Errorf("engine: store vocabulary does not match model feature columns")
	}
	return &Engine{store: store, model: m}, nil
}

// MatchSymptoms resolves free-text input to known symptom names, in
// vocabulary order. Returns matcher.ErrNoMatch when nothing matches; with
// more than one result the caller disambiguates.
func (e *Engine) MatchSymptoms(query string) ([]string, error) {
	snap, err := e.store.Snapshot()
	if err != nil {
		return nil, err
	}
	return matcher.Match(query, snap.Vocabulary().Names())
}

// Followups predicts a disease from the single reported symptom and returns
// that disease plus its characteristic symptoms, minus the reported one.
// A predicted disease without a training profile yields no follow-ups; the
// diagnosis then proceeds on the initial symptom alone.
func (e *Engine) Followups(symptom string) (string, []string, error) {
	snap, err := e.store.Snapshot()
	if err != nil {
		return "", nil, err
	}
	if !snap.Vocabulary().Contains(symptom) {
		return "", nil, fmt.Errorf("%q: %w", symptom, matcher.ErrNoMatch)
	}

	vec, _ := snap.Vocabulary().Vector([]string{symptom})
	disease, err := e.model.Predict(vec)
	if err != nil {
		return "", nil, err
	}

	followups := profile.NewResolver(snap.ProfileTable()).Followups(disease, symptom)
	return disease, followups, nil
}

// Diagnose runs the full two-stage prediction and assembles the report.
//
// The initial prediction uses only the reported symptom; the refined one
// uses the full confirmed set. When both predictions agree, the second
// disease is omitted from the report entirely. Confirmed symptoms outside
// the vocabulary stay in the reported list but are dropped from the
// indicator vector.
func (e *Engine) Diagnose(req Request) (model.Report, error) {
	snap, err := e.store.Snapshot()
	if err != nil {
		return model.Report{}, err
	}
	if req.Days <= 0 {
		return model.Report{}, ErrInvalidDuration
	}
	vocab := snap.Vocabulary()
	if !vocab.Contains(req.Symptom) {
		return model.Report{}, fmt.Errorf("%q: %w", req.Symptom, matcher.ErrNoMatch)
	}

	confirmed := append([]string{req.Symptom}, req.Additional...)

	initialVec, _ := vocab.Vector([]string{req.Symptom})
	present, err := e.model.Predict(initialVec)
	if err != nil {
		return model.Report{}, err
	}

	fullVec, _ := vocab.Vector(confirmed)
	second, err := e.model.Predict(fullVec)
	if err != nil {
		return model.Report{}, err
	}

	rec := severity.NewScorer(snap.SeverityTable()).Score(confirmed, req.Days)

	precautions := snap.Precautions(present)
	if precautions == nil {
		precautions = []string{}
	}

	rep := model.Report{
		Severity:    rec.Advice(),
		Symptoms:    confirmed,
		Disease:     present,
		Description: snap.Description(present, NoDescription),
		Precautions: precautions,
	}
	if second != present {
		rep.SecondDisease = second
		rep.SecondDescription = snap.Description(second, NoDescription)
	}
	return rep, nil
}

// Reload replaces the reference data snapshot. In-flight requests keep the
// snapshot they started with.
func (e *Engine) Reload() error {
	return e.store.Load()
}
