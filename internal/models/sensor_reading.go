package models

import "time"

// ReadStatus tells whether a sensor sample could be taken.
type ReadStatus string

const (
	ReadOK    ReadStatus = "OK"
	ReadError ReadStatus = "READ_ERROR"
)

// SensorReading is one temperature/humidity sample.
type SensorReading struct {
	TemperatureC int        `json:"temperature_c"`
	HumidityPct  uint       `json:"humidity_pct"`
	Status       ReadStatus `json:"status"`
	Err          string     `json:"error,omitempty"`
	TakenAt      time.Time  `json:"taken_at"`
}

// OK reports whether the sample is usable.
func (r SensorReading) OK() bool { return r.Status == ReadOK }
