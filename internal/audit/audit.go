// Package audit records completed diagnoses as an NDJSON trail. Each entry
// captures the report that was returned plus who asked and when. The trail
// is append-only and never read back by the service.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/model"
)

// Entry is one recorded diagnosis.
type Entry struct {
	ID     uuid.UUID    `json:"id"`
	Time   time.Time    `json:"time"`
	Name   string       `json:"name,omitempty"`
	Report model.Report `json:"report"`
}

// NewEntry stamps a report with an id and the current time.
func NewEntry(name string, rep model.Report) Entry {
	return Entry{
		ID:     uuid.New(),
		Time:   time.Now().UTC(),
		Name:   name,
		Report: rep,
	}
}

// Sink is a destination for audit entries.
type Sink interface {
	Write(ctx context.Context, e Entry) error
	Close() error
}

// Nop discards every entry. Used when auditing is not configured.
type Nop struct{}

func (Nop) Write(context.Context, Entry) error { return nil }
func (Nop) Close() error                       { return nil }
