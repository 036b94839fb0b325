package controller

import (
	"context"
	"strconv"

	"home_automation/internal/logger"
	"home_automation/internal/models"
	"home_automation/internal/weather"
)

// WeatherPoller mirrors outdoor conditions to the dashboard.
type WeatherPoller struct {
	reporter
	fetcher WeatherFetcher
}

func NewWeatherPoller(fetcher WeatherFetcher, bridge CloudBridge, clock TimeSource, audit Forwarder, log *logger.Logger) *WeatherPoller {
	return &WeatherPoller{
		reporter: reporter{cloud: bridge, clock: clock, audit: audit, log: log},
		fetcher:  fetcher,
	}
}

// Poll fetches once. Telemetry is only written for a usable snapshot.
func (p *WeatherPoller) Poll(ctx context.Context) {
	snap, err := p.fetcher.Fetch(ctx)
	if err != nil || !snap.OK() {
		code := snap.StatusCode
		if err != nil && snap.OK() {
			// undecodable 2xx body
			code = 0
		}
		p.log.Errorw("weather_fetch_failed", "status", snap.StatusCode, "err", err)
		p.display(ctx, weather.FailureSummary(code))
		p.emit(ctx, models.WeatherFailed{Code: code})
		return
	}

	p.telemetry(PinWeatherTemp, formatFloat(snap.TemperatureC))
	p.telemetry(PinWeatherHumidity, strconv.Itoa(snap.HumidityPct))
	p.telemetry(PinWeatherReport, snap.Description)
	p.telemetry(PinWeatherPressure, formatFloat(snap.PressureKPa))

	p.log.Infow("weather_reported",
		"temperature_c", snap.TemperatureC,
		"humidity_pct", snap.HumidityPct,
		"pressure_kpa", snap.PressureKPa,
		"report", snap.Description,
	)
	p.display(ctx, weather.Summary(snap))
	p.emit(ctx, models.WeatherReported{Snapshot: snap})
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
