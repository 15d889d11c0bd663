package triage

import (
	"fmt"

	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/engine"
	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/engine/classifier"
	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/model"
	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/refdata"
)

// Report is the outcome of one diagnosis. SecondDisease and
// SecondDescription are empty when the initial and refined predictions
// agree.
type Report struct {
	Severity          string
	Symptoms          []string
	Disease           string
	Description       string
	Precautions       []string
	SecondDisease     string
	SecondDescription string
}

// Triage is a symptom-based triage engine. Safe for concurrent use.
type Triage struct {
	store  *refdata.Store
	engine *engine.Engine
}

// New creates a Triage instance, loading the reference CSVs and the trained
// model artifact. Create once, reuse across requests.
func New(opts ...Option) (*Triage, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	store := refdata.New(o.dataDir)
	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("triage: %w", err)
	}

	m, err := classifier.Load(o.modelPath)
	if err != nil {
		return nil, fmt.Errorf("triage: %w", err)
	}

	eng, err := engine.New(store, m)
	if err != nil {
		return nil, fmt.Errorf("triage: %w", err)
	}
	return &Triage{store: store, engine: eng}, nil
}

// MatchSymptoms resolves free-text input to known symptom names. More than
// one result means the caller should ask the user to pick one.
func (t *Triage) MatchSymptoms(query string) ([]string, error) {
	return t.engine.MatchSymptoms(query)
}

// Followups predicts a disease from the single reported symptom and returns
// that disease plus the follow-up symptoms worth confirming.
func (t *Triage) Followups(symptom string) (string, []string, error) {
	return t.engine.Followups(symptom)
}

// Diagnose runs the full two-stage prediction for a confirmed symptom set.
func (t *Triage) Diagnose(symptom string, days int, additional []string) (Report, error) {
	rep, err := t.engine.Diagnose(engine.Request{
		Symptom:    symptom,
		Days:       days,
		Additional: additional,
	})
	if err != nil {
		return Report{}, err
	}
	return reportFromInternal(rep), nil
}

// Reload re-reads the reference CSVs. In-flight calls keep the data they
// started with.
func (t *Triage) Reload() error {
	return t.store.Load()
}

func reportFromInternal(rep model.Report) Report {
	return Report{
		Severity:          rep.Severity,
		Symptoms:          rep.Symptoms,
		Disease:           rep.Disease,
		Description:       rep.Description,
		Precautions:       rep.Precautions,
		SecondDisease:     rep.SecondDisease,
		SecondDescription: rep.SecondDescription,
	}
}
