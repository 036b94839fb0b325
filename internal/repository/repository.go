package repository

import (
	"context"
	"database/sql"
	"time"

	"home_automation/internal/models"
)

// LineLog is the authoritative audit trail: one text line per request.
type LineLog interface {
	Append(line string) error
}

type EntryRepo interface {
	Append(ctx context.Context, e models.AuditEntry) error
	List(ctx context.Context, from, to time.Time, kind models.EventKind) ([]models.AuditEntry, error)
}

// LatestCache remembers the newest line per event kind for the status page.
type LatestCache interface {
	Put(ctx context.Context, kind models.EventKind, line string) error
	All(ctx context.Context) (map[models.EventKind]string, error)
}

type Telemetry interface {
	Write(ctx context.Context, kind models.EventKind, at time.Time, fields map[string]any) error
	Close()
}

type Repository struct {
	Lines     LineLog
	Entries   EntryRepo
	Latest    LatestCache
	Telemetry Telemetry
}

func NewRepository(db *sql.DB, lines LineLog, latest LatestCache, telemetry Telemetry) *Repository {
	return &Repository{
		Lines:     lines,
		Entries:   NewEntrySQLite(db),
		Latest:    latest,
		Telemetry: telemetry,
	}
}
