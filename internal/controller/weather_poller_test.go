package controller

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"home_automation/internal/logger"
	"home_automation/internal/models"
	"home_automation/internal/weather"
)

type fakeWeather struct {
	snap models.WeatherSnapshot
	err  error
}

func (f fakeWeather) Fetch(context.Context) (models.WeatherSnapshot, error) { return f.snap, f.err }

func newWeatherFixture(f WeatherFetcher) (*WeatherPoller, *fakeBridge, *fakeForwarder) {
	tr := &trace{}
	bridge := newFakeBridge(tr)
	audit := &fakeForwarder{trace: tr}
	return NewWeatherPoller(f, bridge, fixedClock{}, audit, logger.NewNop()), bridge, audit
}

func TestWeatherPoll_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod":"404","message":"city not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	p, bridge, audit := newWeatherFixture(weather.New(srv.URL, "Nowhere", "key", time.Second))
	p.Poll(context.Background())

	if len(audit.events) != 1 {
		t.Fatalf("events: %v", audit.kinds())
	}
	if ev, ok := audit.events[0].(models.WeatherFailed); !ok || ev.Code != 404 {
		t.Fatalf("event: %+v", audit.events[0])
	}
	if len(bridge.telemetry) != 0 {
		t.Fatalf("no telemetry expected, got %v", bridge.telemetry)
	}
	if len(bridge.displays) != 1 || bridge.displays[0] != testStamp+weather.FailureSummary(404) {
		t.Fatalf("display: %v", bridge.displays)
	}
}

func TestWeatherPoll_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"main":{"temp":301.4,"humidity":74,"pressure":1012},"weather":[{"description":"light rain"}]}`))
	}))
	defer srv.Close()

	p, bridge, audit := newWeatherFixture(weather.New(srv.URL, "Colombo", "key", time.Second))
	p.Poll(context.Background())

	if !equalKinds(audit.kinds(), []models.EventKind{models.KindWeatherReported}) {
		t.Fatalf("events: %v", audit.kinds())
	}
	snap := audit.events[0].(models.WeatherReported).Snapshot
	if snap.Description != "Light rain" || snap.HumidityPct != 74 {
		t.Fatalf("snapshot: %+v", snap)
	}
	if bridge.telemetry[PinWeatherTemp] != formatFloat(snap.TemperatureC) {
		t.Fatalf("temp telemetry: %q", bridge.telemetry[PinWeatherTemp])
	}
	if bridge.telemetry[PinWeatherHumidity] != "74" || bridge.telemetry[PinWeatherReport] != "Light rain" {
		t.Fatalf("telemetry: %v", bridge.telemetry)
	}
	if bridge.telemetry[PinWeatherPressure] != formatFloat(snap.PressureKPa) {
		t.Fatalf("pressure telemetry: %q", bridge.telemetry[PinWeatherPressure])
	}
	if len(bridge.displays) != 1 || bridge.displays[0] != testStamp+weather.Summary(snap) {
		t.Fatalf("display: %v", bridge.displays)
	}
}

func TestWeatherPoll_TransportErrorIsCodeZero(t *testing.T) {
	p, bridge, audit := newWeatherFixture(fakeWeather{err: errors.New("dial tcp: i/o timeout")})
	p.Poll(context.Background())

	if ev, ok := audit.events[0].(models.WeatherFailed); !ok || ev.Code != 0 {
		t.Fatalf("event: %+v", audit.events[0])
	}
	if len(bridge.telemetry) != 0 {
		t.Fatalf("telemetry: %v", bridge.telemetry)
	}
}

func TestWeatherPoll_UndecodableBody(t *testing.T) {
	p, _, audit := newWeatherFixture(fakeWeather{
		snap: models.WeatherSnapshot{StatusCode: http.StatusOK},
		err:  errors.New("decode weather response: unexpected EOF"),
	})
	p.Poll(context.Background())

	if ev, ok := audit.events[0].(models.WeatherFailed); !ok || ev.Code != 0 {
		t.Fatalf("event: %+v", audit.events[0])
	}
}
