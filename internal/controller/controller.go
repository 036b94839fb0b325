package controller

import (
	"context"

	"home_automation/internal/logger"
	"home_automation/internal/models"
)

// Dashboard pins written by the pollers.
const (
	PinSensorTemperature = 8
	PinSensorHumidity    = 9
	PinWeatherTemp       = 10
	PinWeatherHumidity   = 11
	PinWeatherReport     = 12
	PinWeatherPressure   = 13
)

// CloudBridge is the outbound half of the dashboard link.
type CloudBridge interface {
	WriteDisplay(text string) error
	WriteTelemetry(pin int, value string) error
	RequestResync(pins []int) error
}

type Forwarder interface {
	Send(ctx context.Context, ev models.AuditEvent)
}

// TimeSource returns the "YYYY-MM-DD HH:MM:SS " prefix, or an error marker.
type TimeSource interface {
	Stamp(ctx context.Context) string
}

type Relays interface {
	SetChannel(index int, desiredOn bool) (bool, error)
	Channel(index int) (models.Channel, bool)
	Indices() []int
}

type Indicator interface {
	Set(on bool)
	Pulse()
}

type Sensor interface {
	Read(ctx context.Context) (models.SensorReading, error)
}

type AlertNotifier interface {
	Notify(ctx context.Context, r models.SensorReading) (int, error)
}

type WeatherFetcher interface {
	Fetch(ctx context.Context) (models.WeatherSnapshot, error)
}

// reporter pushes stamped lines to the display pin and audit events to the
// collector. Neither path can fail the caller.
type reporter struct {
	cloud CloudBridge
	clock TimeSource
	audit Forwarder
	log   *logger.Logger
}

func (r reporter) display(ctx context.Context, text string) {
	if err := r.cloud.WriteDisplay(r.clock.Stamp(ctx) + text); err != nil {
		r.log.Errorw("display_write_failed", "err", err)
	}
}

func (r reporter) telemetry(pin int, value string) {
	if err := r.cloud.WriteTelemetry(pin, value); err != nil {
		r.log.Errorw("telemetry_write_failed", "pin", pin, "err", err)
	}
}

func (r reporter) emit(ctx context.Context, ev models.AuditEvent) {
	r.audit.Send(ctx, ev)
}
