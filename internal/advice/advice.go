// Package advice renders a triage report as conversational text. When an
// LLM client is configured the text is phrased by the model; otherwise a
// deterministic template produces the same information.
package advice

import (
	"context"
	"fmt"
	"strings"

	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/model"
)

const systemPrompt = "You are a cautious triage assistant. Rephrase the " +
	"given findings in plain, calm language. Do not add diagnoses, " +
	"medication advice, or facts that are not in the findings. Keep it short."

// Client is the completion surface the narrator needs from an LLM.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Narrator turns reports into user-facing text. A nil client means template
// output only.
type Narrator struct {
	llm Client
}

// NewNarrator creates a Narrator. llm may be nil.
func NewNarrator(llm Client) *Narrator {
	return &Narrator{llm: llm}
}

// Narrate renders the report. LLM failures fall back to the template, so
// this never fails a request.
func (n *Narrator) Narrate(ctx context.Context, rep model.Report, name string) string {
	fallback := Render(rep, name)
	if n == nil || n.llm == nil {
		return fallback
	}
	out, err := n.llm.Complete(ctx, systemPrompt, fallback)
	if err != nil || strings.TrimSpace(out) == "" {
		return fallback
	}
	return out
}

// Render produces the template narration for a report.
func Render(rep model.Report, name string) string {
	var b strings.Builder

	if name != "" {
		fmt.Fprintf(&b, "Hello, %s.\n", name)
	}
	if rep.SecondDisease != "" {
		fmt.Fprintf(&b, "You may have %s or %s.\n", rep.Disease, rep.SecondDisease)
		b.WriteString(rep.Description + "\n")
		b.WriteString(rep.SecondDescription + "\n")
	} else {
		fmt.Fprintf(&b, "You may have %s.\n", rep.Disease)
		b.WriteString(rep.Description + "\n")
	}

	b.WriteString(rep.Severity + "\n")

	if len(rep.Precautions) > 0 {
		b.WriteString("Take the following measures:\n")
		for i, p := range rep.Precautions {
			fmt.Fprintf(&b, "%d) %s\n", i+1, p)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
