package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"home_automation/internal/models"
	"home_automation/internal/repository"
)

// LogFilter narrows the recorded history.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Kind string    // "" or an EventKind name, any case
}

type EventLogService struct {
	entries repository.EntryRepo
}

func NewEventLogService(entries repository.EntryRepo) *EventLogService {
	return &EventLogService{entries: entries}
}

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func normalizeKind(s string) models.EventKind {
	return models.EventKind(strings.TrimSpace(strings.ToUpper(s)))
}

func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, models.EventKind, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}
	return from, to, normalizeKind(f.Kind), nil
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.AuditEntry, error) {
	from, to, kind, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.entries.List(ctx, from, to, kind)
}
