package controller

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"home_automation/internal/logger"
	"home_automation/internal/models"
)

const DefaultAlertThresholdC = 40

var errSensorRead = errors.New("sensor read failed")

// SensorPoller samples the room sensor and raises the high-temperature alert.
type SensorPoller struct {
	reporter
	sensor     Sensor
	alert      AlertNotifier
	thresholdC int
}

func NewSensorPoller(sensor Sensor, alert AlertNotifier, thresholdC int, bridge CloudBridge, clock TimeSource, audit Forwarder, log *logger.Logger) *SensorPoller {
	return &SensorPoller{
		reporter:   reporter{cloud: bridge, clock: clock, audit: audit, log: log},
		sensor:     sensor,
		alert:      alert,
		thresholdC: thresholdC,
	}
}

// Poll takes one reading. Telemetry pins are written on every run, with
// zeros when the read failed.
func (p *SensorPoller) Poll(ctx context.Context) {
	r, err := p.sensor.Read(ctx)
	if err == nil && !r.OK() {
		err = errSensorRead
		if r.Err != "" {
			err = errors.New(r.Err)
		}
	}
	if err != nil && err.Error() == "" {
		err = errSensorRead
	}

	if err != nil {
		msg := fmt.Sprintf("Unable to get sensor data: '%v'", err)
		p.log.Errorw("sensor_read_failed", "err", err)
		p.display(ctx, msg)
		p.emit(ctx, models.SensorFailed{Err: err.Error()})
		r = models.SensorReading{Status: models.ReadError, Err: err.Error()}
	} else {
		msg := fmt.Sprintf("Sending sensor readings : Temperature=%d Humidity=%d to cloud", r.TemperatureC, r.HumidityPct)
		p.log.Infow("sensor_reported", "temperature_c", r.TemperatureC, "humidity_pct", r.HumidityPct)
		p.display(ctx, msg)
		p.emit(ctx, models.SensorReported{Reading: r})

		if r.TemperatureC > p.thresholdC {
			p.raiseAlert(ctx, r)
		}
	}

	p.telemetry(PinSensorTemperature, strconv.Itoa(r.TemperatureC))
	p.telemetry(PinSensorHumidity, strconv.FormatUint(uint64(r.HumidityPct), 10))
}

func (p *SensorPoller) raiseAlert(ctx context.Context, r models.SensorReading) {
	code, err := p.alert.Notify(ctx, r)
	if err == nil && code >= 200 && code < 300 {
		p.log.Infow("alert_triggered", "temperature_c", r.TemperatureC, "status", code)
		p.display(ctx, "High room temperature detected. Alert webhook triggered successfully")
		p.emit(ctx, models.AlertTriggered{Reading: r})
		return
	}

	p.log.Errorw("alert_failed", "temperature_c", r.TemperatureC, "status", code, "err", err)
	p.display(ctx, fmt.Sprintf("Alert webhook call failed. Request returned with status code: %d. Please verify the webhook settings", code))
	p.emit(ctx, models.AlertFailed{Reading: r, Code: code})
}
