package models

// ServerStatus is what the audit server's status page and /api/v1/status show.
type ServerStatus struct {
	Version       string               `json:"version"`
	Host          string               `json:"host"`
	Port          string               `json:"port"`
	UptimeSeconds uint64               `json:"uptime_seconds"`
	Load1         float64              `json:"load1"`
	Latest        map[EventKind]string `json:"latest,omitempty"`
}
