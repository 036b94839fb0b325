package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"home_automation/internal/models"
)

func TestLogsHandler_ListAndValidation(t *testing.T) {
	s, _, logs, _ := newTestService()
	now := time.Now().UTC().Truncate(time.Second)
	logs.resp = []models.AuditEntry{
		{EntryID: "e1", OccurredAt: now, Kind: models.KindConnectionEstablished, Line: "a"},
		{EntryID: "e2", OccurredAt: now.Add(time.Second), Kind: models.KindChannelChanged, Line: "b"},
	}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs?from=notatime", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid 'from', got %d", w.Code)
	}
	if logs.calls != 0 {
		t.Fatalf("service must not be called on bad input")
	}

	w = httptest.NewRecorder()
	q := "/api/v1/logs?from=" + now.Format(time.RFC3339) + "&to=" + now.Add(2*time.Second).Format(time.RFC3339) + "&kind=channel_changed"
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, q, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("logs status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count   int                 `json:"count"`
		Entries []models.AuditEntry `json:"entries"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || len(out.Entries) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if logs.lastKind != "CHANNEL_CHANGED" {
		t.Fatalf("expected lastKind CHANNEL_CHANGED, got %q", logs.lastKind)
	}
	if !logs.lastFrom.Equal(now) {
		t.Fatalf("from=%v want %v", logs.lastFrom, now)
	}
}

func TestLogsHandler_DateOnlyToIsEndOfDay(t *testing.T) {
	s, _, logs, _ := newTestService()
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs?to=2026-03-26", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	want := time.Date(2026, 3, 26, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	if !logs.lastTo.Equal(want) {
		t.Fatalf("to=%v want %v", logs.lastTo, want)
	}
}

func TestLogsHandler_RangeAndServiceErrors(t *testing.T) {
	s, _, logs, _ := newTestService()
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs?from=2026-03-27&to=2026-03-26", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("reversed range: got %d", w.Code)
	}

	logs.err = errors.New("db down")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("service error: got %d", w.Code)
	}
}

func TestLogsHandler_EmptyHistoryIsEmptyArray(t *testing.T) {
	s, _, _, _ := newTestService()
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs?from=2026-03-26+10:00:00", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if body := w.Body.String(); body != `{"count":0,"entries":[]}` {
		t.Fatalf("body=%s", body)
	}
}
