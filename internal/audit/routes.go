package audit

import (
	"fmt"
	"strconv"

	"home_automation/internal/models"
)

// Collector endpoints. The paths are kept byte-for-byte so older firmware
// builds keep logging to the same collector.
const (
	PathConnection     = "/blynk-connection"
	PathDisconnect     = "/blynkDisconnect"
	PathAlertSuccess   = "/highTempEmailSuccess"
	PathAlertFail      = "/highTempEmailFail"
	PathWeatherSuccess = "/updateWeatherSuccess"
	PathWeatherFail    = "/updateWeatherFail"
	PathSensorSuccess  = "/updateDHTSuccess"
	PathSensorFail     = "/updateDHTFail"
	PathRelayStatus    = "/updateRelayStatus"
)

// Request bodies, one per endpoint that carries fields.
type (
	PingBody struct {
		PingValue int `json:"ping_value"`
	}
	AlertFailBody struct {
		Error string `json:"error"`
	}
	WeatherBody struct {
		Temp     float64 `json:"temp"`
		Hum      int     `json:"hum"`
		Report   string  `json:"report"`
		Pressure float64 `json:"pressure"`
	}
	WeatherFailBody struct {
		Code string `json:"code"`
	}
	SensorBody struct {
		Temp int  `json:"temp"`
		Hum  uint `json:"hum"`
	}
	SensorFailBody struct {
		Error string `json:"error"`
	}
	RelayBody struct {
		Pin   string `json:"pin"`
		Value string `json:"value"`
	}
)

// Route maps an event to its collector path and JSON body. A nil body means
// the endpoint takes none.
func Route(ev models.AuditEvent) (string, any, error) {
	switch e := ev.(type) {
	case models.ConnectionEstablished:
		return PathConnection, PingBody{PingValue: e.PingMs}, nil
	case models.ConnectionLost:
		return PathDisconnect, nil, nil
	case models.AlertTriggered:
		return PathAlertSuccess, nil, nil
	case models.AlertFailed:
		return PathAlertFail, AlertFailBody{Error: strconv.Itoa(e.Code)}, nil
	case models.WeatherReported:
		s := e.Snapshot
		return PathWeatherSuccess, WeatherBody{
			Temp:     s.TemperatureC,
			Hum:      s.HumidityPct,
			Report:   s.Description,
			Pressure: s.PressureKPa,
		}, nil
	case models.WeatherFailed:
		return PathWeatherFail, WeatherFailBody{Code: strconv.Itoa(e.Code)}, nil
	case models.SensorReported:
		return PathSensorSuccess, SensorBody{Temp: e.Reading.TemperatureC, Hum: e.Reading.HumidityPct}, nil
	case models.SensorFailed:
		return PathSensorFail, SensorFailBody{Error: e.Err}, nil
	case models.ChannelChanged:
		return PathRelayStatus, RelayBody{Pin: strconv.Itoa(e.Index), Value: e.RawValue}, nil
	case nil:
		return "", nil, fmt.Errorf("nil audit event")
	default:
		return "", nil, fmt.Errorf("no collector route for %s", ev.Kind())
	}
}
