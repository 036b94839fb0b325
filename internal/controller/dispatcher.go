package controller

import (
	"context"
	"strconv"
	"strings"
	"time"

	"home_automation/internal/cloud"
	"home_automation/internal/logger"
	"home_automation/internal/models"
	"home_automation/internal/relay"
)

const disconnectedText = "Cloud disconnected"

// Dispatcher reacts to cloud callbacks: connection changes and channel
// commands. It is driven from the controller loop only.
type Dispatcher struct {
	reporter
	relays Relays
	led    Indicator
	state  models.ConnectionState
	now    func() time.Time
}

func NewDispatcher(bridge CloudBridge, relays Relays, led Indicator, clock TimeSource, audit Forwarder, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		reporter: reporter{cloud: bridge, clock: clock, audit: audit, log: log},
		relays:   relays,
		led:      led,
		now:      time.Now,
	}
}

func (d *Dispatcher) State() models.ConnectionState { return d.state }

func (d *Dispatcher) Handle(ctx context.Context, ev cloud.Event) {
	switch ev.Kind {
	case cloud.EventConnected:
		d.Connected(ctx, ev.PingMs)
	case cloud.EventDisconnected:
		d.Disconnected(ctx)
	case cloud.EventCommand:
		d.ChannelCommand(ctx, ev.Pin, ev.Value)
	default:
		d.log.Errorw("cloud_event_unknown", "kind", ev.Kind)
	}
}

// Connected records the link, reports it, then asks the dashboard to replay
// every channel's stored value once.
func (d *Dispatcher) Connected(ctx context.Context, pingMs int) {
	d.led.Set(true)
	d.state = models.ConnectionState{Connected: true, PingMs: pingMs, ChangedAt: d.now().UTC()}
	d.log.Infow("cloud_connection_established", "ping_ms", pingMs)

	d.emit(ctx, models.ConnectionEstablished{PingMs: pingMs})

	indices := d.relays.Indices()
	if err := d.cloud.RequestResync(indices); err != nil {
		d.log.Errorw("cloud_resync_failed", "pins", indices, "err", err)
		return
	}
	d.log.Infow("cloud_resync_requested", "pins", indices)
}

func (d *Dispatcher) Disconnected(ctx context.Context) {
	d.led.Set(false)
	d.state = models.ConnectionState{Connected: false, ChangedAt: d.now().UTC()}
	d.log.Errorw("cloud_disconnected", "severity", "critical")

	d.display(ctx, disconnectedText)
	d.emit(ctx, models.ConnectionLost{})
}

// ChannelCommand applies a dashboard write to a relay channel. Surrounding
// whitespace is dropped from the value. Invalid pins and values are logged
// and dropped. The LED pulses in every case.
func (d *Dispatcher) ChannelCommand(ctx context.Context, pin int, raw string) {
	defer d.led.Pulse()

	// the value ends up on one display line and one audit line
	raw = strings.TrimSpace(raw)

	ch, ok := d.relays.Channel(pin)
	if !ok {
		d.log.Errorw("relay_command_invalid_pin", "pin", pin, "value", raw)
		return
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		d.log.Errorw("relay_command_invalid_value", "pin", pin, "value", raw)
		return
	}

	desiredOn := value != 0
	prev, err := d.relays.SetChannel(pin, desiredOn)
	if err != nil {
		d.log.Errorw("relay_drive_failed", "pin", pin, "line", ch.Line, "err", err)
		return
	}

	msg := relay.StatusMessage(strconv.Itoa(pin), ch.Line, raw)
	d.log.Infow("relay_changed", "pin", pin, "line", ch.Line, "on", desiredOn, "was_on", prev)
	d.display(ctx, msg)
	d.emit(ctx, models.ChannelChanged{
		Index:      pin,
		Line:       ch.Line,
		RawValue:   raw,
		LineActive: relay.LevelFor(desiredOn) == relay.High,
	})
}
