package models

import "time"

// ConnectionState tracks the cloud link as seen by the dispatcher.
type ConnectionState struct {
	Connected bool      `json:"connected"`
	PingMs    int       `json:"ping_ms"`
	ChangedAt time.Time `json:"changed_at"`
}
