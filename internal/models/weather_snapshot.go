package models

import "time"

// WeatherSnapshot is one normalised weather-service response.
type WeatherSnapshot struct {
	TemperatureC float64   `json:"temperature_c"`
	HumidityPct  int       `json:"humidity_pct"`
	PressureKPa  float64   `json:"pressure_kpa"`
	Description  string    `json:"description"`
	FetchedAt    time.Time `json:"fetched_at"`
	StatusCode   int       `json:"status_code"` // 0 when the request never got a response
}

// OK reports a 2xx fetch.
func (w WeatherSnapshot) OK() bool { return w.StatusCode >= 200 && w.StatusCode < 300 }
