package models

import "time"

// AuditEntry is a single line recorded by the audit server.
type AuditEntry struct {
	EntryID    string    `json:"entry_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Kind       EventKind `json:"kind"`
	Line       string    `json:"line"` // timestamp prefix included, no trailing newline
	Metadata   any       `json:"metadata,omitempty"`
}
