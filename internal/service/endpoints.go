package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"home_automation/internal/audit"
	"home_automation/internal/models"
	"home_automation/internal/relay"
)

var (
	ErrMalformedBody   = errors.New("malformed audit body")
	ErrUnknownEndpoint = errors.New("unknown audit endpoint")
	ErrUnknownPin      = errors.New("unknown relay pin")
)

// record is what one collector request turns into.
type record struct {
	message string
	meta    map[string]any // decoded body, stored with the entry
	fields  map[string]any // numeric values for the telemetry mirror
}

type endpoint struct {
	kind   models.EventKind
	decode func(body []byte) (record, error)
}

func (s *RecorderService) buildEndpoints() map[string]endpoint {
	return map[string]endpoint{
		audit.PathConnection: {models.KindConnectionEstablished, func(b []byte) (record, error) {
			m, err := decodeFields(b, "ping_value")
			if err != nil {
				return record{}, err
			}
			return record{
				message: fmt.Sprintf("Controller connected to cloud with ping:%v", m["ping_value"]),
				meta:    m,
				fields:  numericFields(m, "ping_value"),
			}, nil
		}},
		audit.PathDisconnect: {models.KindConnectionLost, func([]byte) (record, error) {
			return record{message: "Critical: Controller has disconnected from the cloud. Please check on priority"}, nil
		}},
		audit.PathAlertSuccess: {models.KindAlertTriggered, func([]byte) (record, error) {
			return record{message: "Controller has triggered a successful alert webhook event due to high temperature detection."}, nil
		}},
		audit.PathAlertFail: {models.KindAlertFailed, func(b []byte) (record, error) {
			m, err := decodeFields(b, "error")
			if err != nil {
				return record{}, err
			}
			return record{
				message: fmt.Sprintf("Controller has attempted to trigger an alert webhook event but the event has failed with status code: %v Due to this the alert has not been sent", m["error"]),
				meta:    m,
			}, nil
		}},
		audit.PathWeatherSuccess: {models.KindWeatherReported, func(b []byte) (record, error) {
			m, err := decodeFields(b, "temp", "hum", "report", "pressure")
			if err != nil {
				return record{}, err
			}
			return record{
				message: fmt.Sprintf("Controller received weather data from the weather service and sent data to the cloud (Temperature = %v Humidity = %v Report = %v Pressure = %v)",
					m["temp"], m["hum"], m["report"], m["pressure"]),
				meta:   m,
				fields: numericFields(m, "temp", "hum", "pressure"),
			}, nil
		}},
		audit.PathWeatherFail: {models.KindWeatherFailed, func(b []byte) (record, error) {
			m, err := decodeFields(b, "code")
			if err != nil {
				return record{}, err
			}
			return record{
				message: fmt.Sprintf("Controller received error response code %v when trying to connect with the weather service. The cloud may not have the latest weather data due to this.", m["code"]),
				meta:    m,
			}, nil
		}},
		audit.PathSensorSuccess: {models.KindSensorReported, func(b []byte) (record, error) {
			m, err := decodeFields(b, "temp", "hum")
			if err != nil {
				return record{}, err
			}
			return record{
				message: fmt.Sprintf("Controller received sensor readings and updated the sensor data to the cloud. (Temperature: %v Humidity: %v)", m["temp"], m["hum"]),
				meta:    m,
				fields:  numericFields(m, "temp", "hum"),
			}, nil
		}},
		audit.PathSensorFail: {models.KindSensorFailed, func(b []byte) (record, error) {
			m, err := decodeFields(b, "error")
			if err != nil {
				return record{}, err
			}
			return record{
				message: fmt.Sprintf("Controller could not read the sensor. Sensor returned error: %v Please check connection or if the sensor is faulty", m["error"]),
				meta:    m,
			}, nil
		}},
		audit.PathRelayStatus: {models.KindChannelChanged, s.decodeRelay},
	}
}

// decodeRelay resolves the physical line through the same channel table the
// controller drives.
func (s *RecorderService) decodeRelay(b []byte) (record, error) {
	m, err := decodeFields(b, "pin", "value")
	if err != nil {
		return record{}, err
	}
	pin, value := fmt.Sprint(m["pin"]), fmt.Sprint(m["value"])
	line, err := relay.LineFor(s.channels, pin)
	if err != nil {
		return record{}, fmt.Errorf("%w: %v", ErrUnknownPin, err)
	}
	m["line"] = line

	fields := map[string]any{"line": line}
	if v, ok := m["value"].(json.Number); ok {
		if n, err := v.Int64(); err == nil {
			fields["value"] = n
		}
	}
	return record{
		message: relay.StatusMessage(pin, line, value),
		meta:    m,
		fields:  fields,
	}, nil
}

// decodeFields parses a JSON object and checks that every required key is
// present and not null. Numbers keep their literal text. Strings holding a
// CR or LF are rejected.
func decodeFields(body []byte, required ...string) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformedBody)
	}
	for _, key := range required {
		if v, ok := m[key]; !ok || v == nil {
			return nil, fmt.Errorf("%w: missing %q", ErrMalformedBody, key)
		}
	}
	// every request is exactly one line in the audit file
	for key, v := range m {
		if str, ok := v.(string); ok && strings.ContainsAny(str, "\r\n") {
			return nil, fmt.Errorf("%w: %q contains a line break", ErrMalformedBody, key)
		}
	}
	return m, nil
}

func numericFields(m map[string]any, keys ...string) map[string]any {
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		n, ok := m[k].(json.Number)
		if !ok {
			continue
		}
		if f, err := n.Float64(); err == nil {
			out[k] = f
		}
	}
	return out
}
