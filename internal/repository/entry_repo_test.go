package repository

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"home_automation/internal/models"
)

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

const insertEntry = `
		INSERT INTO audit_entries (id, occurred_at, kind, line, meta)
		VALUES (?, ?, ?, ?, ?)
	`

const selectEntries = `SELECT id, occurred_at, kind, line, meta FROM audit_entries`

func TestEntryAppend_FillsIDAndTime(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(insertEntry)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(),
			"CHANNEL_CHANGED",
			"2026-03-26 10:11:12 Virtual pin V3 mapped to relay GPIO15 changed state to 0",
			`{"pin":"3","value":"0"}`,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewEntrySQLite(db).Append(ctx(t), models.AuditEntry{
		Kind:     models.KindChannelChanged,
		Line:     "2026-03-26 10:11:12 Virtual pin V3 mapped to relay GPIO15 changed state to 0",
		Metadata: map[string]string{"pin": "3", "value": "0"},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestEntryAppend_KeepsGivenTime(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	at := time.Date(2026, 3, 26, 10, 11, 12, 0, time.FixedZone("IST", 5*3600+1800))
	mock.ExpectExec(regexp.QuoteMeta(insertEntry)).
		WithArgs("id-1", "2026-03-26 04:41:12", "CONNECTION_LOST", "x", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewEntrySQLite(db).Append(ctx(t), models.AuditEntry{
		EntryID: "id-1", OccurredAt: at, Kind: models.KindConnectionLost, Line: "x",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestEntryAppend_DBError(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO audit_entries").WillReturnError(errors.New("disk I/O error"))

	err = NewEntrySQLite(db).Append(ctx(t), models.AuditEntry{Kind: models.KindSensorFailed, Line: "x"})
	if err == nil || !strings.Contains(err.Error(), "disk I/O error") {
		t.Fatalf("expected error, got %v", err)
	}
}

func TestEntryList_NoFilters(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	js, _ := json.Marshal(map[string]any{"temp": 45.0, "hum": 50.0})
	rows := sqlmock.NewRows([]string{"id", "occurred_at", "kind", "line", "meta"}).
		AddRow("1", now, "SENSOR_REPORTED", "l1", string(js)).
		AddRow("2", now.Add(time.Hour), "CONNECTION_LOST", "l2", nil).
		AddRow("3", now.Add(2*time.Hour), "SENSOR_FAILED", "l3", "not json")

	mock.ExpectQuery(regexp.QuoteMeta(selectEntries + ` ORDER BY occurred_at ASC, rowid ASC`)).WillReturnRows(rows)

	got, err := NewEntrySQLite(db).List(ctx(t), time.Time{}, time.Time{}, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3, got %d", len(got))
	}
	if got[0].Kind != models.KindSensorReported || got[0].Line != "l1" {
		t.Fatalf("first: %+v", got[0])
	}
	if b, _ := json.Marshal(got[0].Metadata); string(b) != string(js) {
		t.Fatalf("metadata: %s", b)
	}
	if got[1].Metadata != nil {
		t.Fatalf("expected nil meta, got %#v", got[1].Metadata)
	}
	if got[2].Metadata != "not json" {
		t.Fatalf("raw meta should be kept, got %#v", got[2].Metadata)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestEntryList_WithFilters(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	from := time.Date(2026, 1, 1, 11, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	query := selectEntries + ` WHERE occurred_at >= ? AND occurred_at <= ? AND kind = ? ORDER BY occurred_at ASC, rowid ASC`

	rows := sqlmock.NewRows([]string{"id", "occurred_at", "kind", "line", "meta"}).
		AddRow("2", from, "WEATHER_FAILED", "b", nil)
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs("2026-01-01 11:00:00", "2026-01-01 12:00:00", "WEATHER_FAILED").
		WillReturnRows(rows)

	got, err := NewEntrySQLite(db).List(ctx(t), from, to, " weather_failed ")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].EntryID != "2" {
		t.Fatalf("unexpected results: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestEntryList_ScanError(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "occurred_at", "kind", "line", "meta"}).
		AddRow("x", 123, "SENSOR_FAILED", "msg", nil)
	mock.ExpectQuery(regexp.QuoteMeta(selectEntries + ` ORDER BY occurred_at ASC, rowid ASC`)).WillReturnRows(rows)

	if _, err := NewEntrySQLite(db).List(ctx(t), time.Time{}, time.Time{}, ""); err == nil {
		t.Fatal("expected scan error")
	}
}
