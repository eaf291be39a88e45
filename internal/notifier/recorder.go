package notifier

import (
	"context"
	"time"
)

// Record is one audit entry describing a dispatched (or lost) notification.
type Record struct {
	EventStart  time.Time `json:"event_start"`
	Kind        string    `json:"kind"`
	LeadMinutes int       `json:"lead_minutes"`
	SentAt      time.Time `json:"sent_at"`
	Outcome     string    `json:"outcome"` // "sent" or "failed"
}

// Recorder persists notification audit records. Recording is best-effort:
// failures are logged by the caller and never affect dispatch.
type Recorder interface {
	Record(ctx context.Context, rec Record) error
	Close() error
}

// NopRecorder drops all records. Used when the audit log is disabled.
type NopRecorder struct{}

func (NopRecorder) Record(_ context.Context, _ Record) error { return nil }

func (NopRecorder) Close() error { return nil }
