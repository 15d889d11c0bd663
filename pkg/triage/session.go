package triage

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/advice"
	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/engine/matcher"
	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/model"
)

// maxAttempts bounds every interactive prompt. Invalid input is re-asked
// up to this many times, then the session fails instead of looping forever.
const maxAttempts = 3

// ErrRetriesExhausted is returned when a prompt received invalid input on
// every allowed attempt.
var ErrRetriesExhausted = errors.New("triage: too many invalid answers")

// Prompter is the conversational surface a Session drives. Ask poses a
// question and returns the raw answer; Say prints a statement.
type Prompter interface {
	Ask(prompt string) (string, error)
	Say(msg string)
}

// Session walks one user through the full triage conversation: initial
// symptom, disambiguation, duration, follow-up confirmation, diagnosis.
type Session struct {
	triage *Triage
	prompt Prompter
}

// NewSession creates a Session over a Triage instance and a Prompter.
func NewSession(t *Triage, p Prompter) *Session {
	return &Session{triage: t, prompt: p}
}

// Run drives the conversation to completion and returns the final report.
// The report narration is also spoken through the Prompter.
func (s *Session) Run() (Report, error) {
	name, err := s.prompt.Ask("Your name? ->")
	if err != nil {
		return Report{}, err
	}
	state := model.NewDiagnosticSession(strings.TrimSpace(name))
	s.prompt.Say(fmt.Sprintf("Hello, %s", state.Name))

	state.InitialSymptom, err = s.askSymptom()
	if err != nil {
		return Report{}, err
	}

	state.Days, err = s.askDays()
	if err != nil {
		return Report{}, err
	}

	disease, followups, err := s.triage.Followups(state.InitialSymptom)
	if err != nil {
		return Report{}, err
	}
	state.PresentDisease = disease

	var confirmed []string
	if len(followups) > 0 {
		s.prompt.Say(fmt.Sprintf("Are you experiencing any of these symptoms related to %s?", disease))
		for _, f := range followups {
			yes, err := s.askYesNo(f + "? (yes/no):")
			if err != nil {
				return Report{}, err
			}
			if yes {
				confirmed = append(confirmed, f)
			}
		}
	}

	rep, err := s.triage.Diagnose(state.InitialSymptom, state.Days, confirmed)
	if err != nil {
		return Report{}, err
	}
	state.Confirmed = rep.Symptoms
	state.SecondDisease = rep.SecondDisease
	slog.Debug("session complete",
		"id", state.ID,
		"disease", rep.Disease,
		"second", state.SecondDisease,
		"symptoms", len(state.Confirmed))

	s.prompt.Say(advice.Render(internalReport(rep), state.Name))
	return rep, nil
}

// askSymptom reads free text, matches it against the vocabulary, and
// disambiguates when more than one symptom matches.
func (s *Session) askSymptom() (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		raw, err := s.prompt.Ask("Enter the symptom you are experiencing ->")
		if err != nil {
			return "", err
		}

		matches, err := s.triage.MatchSymptoms(raw)
		if errors.Is(err, matcher.ErrNoMatch) {
			s.prompt.Say("Enter a valid symptom.")
			continue
		}
		if err != nil {
			return "", err
		}
		if len(matches) == 1 {
			return matches[0], nil
		}
		return s.askSelection(matches)
	}
	return "", ErrRetriesExhausted
}

// askSelection has the user pick one symptom from an ambiguous match list.
func (s *Session) askSelection(matches []string) (string, error) {
	s.prompt.Say("Searches related to input:")
	for i, m := range matches {
		s.prompt.Say(fmt.Sprintf("%d ) %s", i, m))
	}

	question := fmt.Sprintf("Select the one you meant (0 - %d):", len(matches)-1)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		raw, err := s.prompt.Ask(question)
		if err != nil {
			return "", err
		}
		idx, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || idx < 0 || idx >= len(matches) {
			s.prompt.Say("Enter a valid choice.")
			continue
		}
		return matches[idx], nil
	}
	return "", ErrRetriesExhausted
}

// askDays reads the symptom duration as a positive integer.
func (s *Session) askDays() (int, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		raw, err := s.prompt.Ask("Okay. From how many days?")
		if err != nil {
			return 0, err
		}
		days, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || days <= 0 {
			s.prompt.Say("Enter a valid number of days.")
			continue
		}
		return days, nil
	}
	return 0, ErrRetriesExhausted
}

// askYesNo accepts the informal spellings real users type.
func (s *Session) askYesNo(question string) (bool, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		raw, err := s.prompt.Ask(question)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "yes", "y", "yess":
			return true, nil
		case "no", "n":
			return false, nil
		}
		s.prompt.Say("Provide proper answers i.e. (yes/no):")
	}
	return false, ErrRetriesExhausted
}

func internalReport(rep Report) model.Report {
	return model.Report{
		Severity:          rep.Severity,
		Symptoms:          rep.Symptoms,
		Disease:           rep.Disease,
		Description:       rep.Description,
		Precautions:       rep.Precautions,
		SecondDisease:     rep.SecondDisease,
		SecondDescription: rep.SecondDescription,
	}
}
