package models

// EventKind names an audit event variant. The same names are stored by the
// audit server so the history can be filtered by kind.
type EventKind string

const (
	KindConnectionEstablished EventKind = "CONNECTION_ESTABLISHED"
	KindConnectionLost        EventKind = "CONNECTION_LOST"
	KindChannelChanged        EventKind = "CHANNEL_CHANGED"
	KindSensorReported        EventKind = "SENSOR_REPORTED"
	KindSensorFailed          EventKind = "SENSOR_FAILED"
	KindWeatherReported       EventKind = "WEATHER_REPORTED"
	KindWeatherFailed         EventKind = "WEATHER_FAILED"
	KindAlertTriggered        EventKind = "ALERT_TRIGGERED"
	KindAlertFailed           EventKind = "ALERT_FAILED"
)

// AuditEvent is a state transition produced by the controller and forwarded
// once to the audit collector.
type AuditEvent interface {
	Kind() EventKind
}

type ConnectionEstablished struct {
	PingMs int
}

type ConnectionLost struct{}

type ChannelChanged struct {
	Index      int
	Line       int
	RawValue   string // command value exactly as received from the cloud
	LineActive bool
}

type SensorReported struct {
	Reading SensorReading
}

type SensorFailed struct {
	Err string
}

type WeatherReported struct {
	Snapshot WeatherSnapshot
}

type WeatherFailed struct {
	Code int
}

type AlertTriggered struct {
	Reading SensorReading
}

type AlertFailed struct {
	Reading SensorReading
	Code    int
}

func (ConnectionEstablished) Kind() EventKind { return KindConnectionEstablished }
func (ConnectionLost) Kind() EventKind        { return KindConnectionLost }
func (ChannelChanged) Kind() EventKind        { return KindChannelChanged }
func (SensorReported) Kind() EventKind        { return KindSensorReported }
func (SensorFailed) Kind() EventKind          { return KindSensorFailed }
func (WeatherReported) Kind() EventKind       { return KindWeatherReported }
func (WeatherFailed) Kind() EventKind         { return KindWeatherFailed }
func (AlertTriggered) Kind() EventKind        { return KindAlertTriggered }
func (AlertFailed) Kind() EventKind           { return KindAlertFailed }
