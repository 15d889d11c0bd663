package advice

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/model"
)

var sampleReport = model.Report{
	Severity:    "It might not be serious, but take precautions.",
	Symptoms:    []string{"chills", "vomiting"},
	Disease:     "Malaria",
	Description: "Malaria is an infectious disease.",
	Precautions: []string{"consult nearest hospital", "avoid oily food"},
}

func TestRenderSingleDisease(t *testing.T) {
	out := Render(sampleReport, "Asha")

	for _, want := range []string{
		"Hello, Asha.",
		"You may have Malaria.",
		"Malaria is an infectious disease.",
		"It might not be serious, but take precautions.",
		"1) consult nearest hospital",
		"2) avoid oily food",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, " or ") {
		t.Errorf("single-disease narration must not mention a second disease:\n%s", out)
	}
}

func TestRenderTwoDiseases(t *testing.T) {
	rep := sampleReport
	rep.SecondDisease = "Typhoid"
	rep.SecondDescription = "An acute illness."

	out := Render(rep, "")
	if !strings.Contains(out, "You may have Malaria or Typhoid.") {
		t.Errorf("Render() missing combined disease line:\n%s", out)
	}
	if !strings.Contains(out, "An acute illness.") {
		t.Errorf("Render() missing second description:\n%s", out)
	}
	if strings.Contains(out, "Hello") {
		t.Errorf("no greeting expected without a name:\n%s", out)
	}
}

type stubClient struct {
	out string
	err error
}

func (s *stubClient) Complete(ctx context.Context, system, user string) (string, error) {
	return s.out, s.err
}

func TestNarrateUsesClient(t *testing.T) {
	n := NewNarrator(&stubClient{out: "phrased response"})
	got := n.Narrate(context.Background(), sampleReport, "")
	if got != "phrased response" {
		t.Fatalf("Narrate() = %q", got)
	}
}

func TestNarrateFallsBackOnError(t *testing.T) {
	n := NewNarrator(&stubClient{err: errors.New("api down")})
	got := n.Narrate(context.Background(), sampleReport, "")
	if got != Render(sampleReport, "") {
		t.Fatalf("Narrate() should fall back to template, got %q", got)
	}
}

func TestNarrateFallsBackOnEmptyCompletion(t *testing.T) {
	n := NewNarrator(&stubClient{out: "   "})
	got := n.Narrate(context.Background(), sampleReport, "")
	if got != Render(sampleReport, "") {
		t.Fatalf("Narrate() should fall back on blank output, got %q", got)
	}
}

func TestNarrateNilClient(t *testing.T) {
	n := NewNarrator(nil)
	if got := n.Narrate(context.Background(), sampleReport, ""); got != Render(sampleReport, "") {
		t.Fatalf("Narrate() with nil client = %q", got)
	}
}
