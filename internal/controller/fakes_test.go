package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"home_automation/internal/cloud"
	"home_automation/internal/models"
)

const testStamp = "2026-03-26 10:11:12 "

// trace records the order of outbound side effects across fakes.
type trace struct {
	mu    sync.Mutex
	steps []string
}

func (t *trace) add(step string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.steps = append(t.steps, step)
}

func (t *trace) all() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.steps...)
}

type fakeBridge struct {
	trace     *trace
	displays  []string
	telemetry map[int]string
	resyncs   [][]int
	err       error
}

func newFakeBridge(tr *trace) *fakeBridge {
	return &fakeBridge{trace: tr, telemetry: map[int]string{}}
}

func (b *fakeBridge) WriteDisplay(text string) error {
	b.displays = append(b.displays, text)
	b.trace.add("display")
	return b.err
}

func (b *fakeBridge) WriteTelemetry(pin int, value string) error {
	b.telemetry[pin] = value
	b.trace.add(fmt.Sprintf("telemetry:%d", pin))
	return b.err
}

func (b *fakeBridge) RequestResync(pins []int) error {
	b.resyncs = append(b.resyncs, pins)
	b.trace.add("resync:" + cloud.SyncPayload(pins))
	return b.err
}

type fakeForwarder struct {
	trace  *trace
	events []models.AuditEvent
}

func (f *fakeForwarder) Send(_ context.Context, ev models.AuditEvent) {
	f.events = append(f.events, ev)
	f.trace.add("audit:" + string(ev.Kind()))
}

func (f *fakeForwarder) kinds() []models.EventKind {
	out := make([]models.EventKind, 0, len(f.events))
	for _, ev := range f.events {
		out = append(out, ev.Kind())
	}
	return out
}

type fixedClock struct{}

func (fixedClock) Stamp(context.Context) string { return testStamp }

type fakeIndicator struct {
	sets   []bool
	pulses int
}

func (i *fakeIndicator) Set(on bool) { i.sets = append(i.sets, on) }
func (i *fakeIndicator) Pulse()      { i.pulses++ }

type fakeSensor struct {
	reading models.SensorReading
	err     error
}

func (s fakeSensor) Read(context.Context) (models.SensorReading, error) {
	return s.reading, s.err
}

func okReading(temp int, hum uint) fakeSensor {
	return fakeSensor{reading: models.SensorReading{TemperatureC: temp, HumidityPct: hum, Status: models.ReadOK}}
}

func failedRead(msg string) fakeSensor {
	return fakeSensor{
		reading: models.SensorReading{Status: models.ReadError, Err: msg},
		err:     errors.New(msg),
	}
}

type fakeAlert struct {
	code  int
	err   error
	calls []models.SensorReading
}

func (a *fakeAlert) Notify(_ context.Context, r models.SensorReading) (int, error) {
	a.calls = append(a.calls, r)
	return a.code, a.err
}

func equalKinds(a, b []models.EventKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
