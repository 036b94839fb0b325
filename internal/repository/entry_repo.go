package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"home_automation/internal/models"
)

const sqliteTimestamp = "2006-01-02 15:04:05"

// Timestamps have second precision; rowid keeps lines recorded within the
// same second in insertion order.
const entryOrder = "occurred_at ASC, rowid ASC"

type EntrySQLite struct {
	db *sql.DB
}

func NewEntrySQLite(db *sql.DB) *EntrySQLite { return &EntrySQLite{db: db} }

// Append inserts one recorded line. Missing ids and times are filled in.
func (r *EntrySQLite) Append(ctx context.Context, e models.AuditEntry) error {
	if e.EntryID == "" {
		e.EntryID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}

	var meta *string
	if e.Metadata != nil {
		if b, err := json.Marshal(e.Metadata); err == nil {
			s := string(b)
			meta = &s
		}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_entries (id, occurred_at, kind, line, meta)
		VALUES (?, ?, ?, ?, ?)
	`,
		e.EntryID,
		e.OccurredAt.UTC().Format(sqliteTimestamp),
		string(e.Kind),
		e.Line,
		meta,
	)
	return err
}

// List returns entries in [from, to] (either bound optional), optionally of
// one kind, oldest first and in insertion order within a second.
func (r *EntrySQLite) List(ctx context.Context, from, to time.Time, kind models.EventKind) ([]models.AuditEntry, error) {
	var (
		conds []string
		args  []any
	)
	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC().Format(sqliteTimestamp))
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC().Format(sqliteTimestamp))
	}
	if k := strings.ToUpper(strings.TrimSpace(string(kind))); k != "" {
		conds = append(conds, "kind = ?")
		args = append(args, k)
	}

	q := `SELECT id, occurred_at, kind, line, meta FROM audit_entries`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY " + entryOrder

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.AuditEntry, 0, 64)
	for rows.Next() {
		var (
			e    models.AuditEntry
			kind string
			meta sql.NullString
		)
		if err := rows.Scan(&e.EntryID, &e.OccurredAt, &kind, &e.Line, &meta); err != nil {
			return nil, err
		}
		e.Kind = models.EventKind(kind)
		e.OccurredAt = e.OccurredAt.UTC()
		if meta.Valid && meta.String != "" {
			var v any
			if err := json.Unmarshal([]byte(meta.String), &v); err == nil {
				e.Metadata = v
			} else {
				e.Metadata = meta.String
			}
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
