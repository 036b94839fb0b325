package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"home_automation/internal/logger"
	"home_automation/internal/models"
	"home_automation/internal/repository"
)

// TimeSource returns the "YYYY-MM-DD HH:MM:SS " line prefix.
type TimeSource interface {
	Stamp(ctx context.Context) string
}

// RecorderService turns collector requests into audit lines. The line file
// is authoritative; the sqlite history, latest cache and telemetry mirror
// are best effort.
type RecorderService struct {
	repos     *repository.Repository
	clock     TimeSource
	channels  []models.Channel
	log       *logger.Logger
	endpoints map[string]endpoint
	now       func() time.Time
}

func NewRecorderService(repos *repository.Repository, clock TimeSource, channels []models.Channel, log *logger.Logger) *RecorderService {
	s := &RecorderService{
		repos:    repos,
		clock:    clock,
		channels: channels,
		log:      log,
		now:      time.Now,
	}
	s.endpoints = s.buildEndpoints()
	return s
}

// Paths lists the collector endpoints in a stable order.
func (s *RecorderService) Paths() []string {
	out := make([]string, 0, len(s.endpoints))
	for p := range s.endpoints {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Record decodes one request and appends its line. ErrUnknownEndpoint,
// ErrMalformedBody and ErrUnknownPin are returned wrapped; nothing is written
// in those cases.
func (s *RecorderService) Record(ctx context.Context, path string, body []byte) (models.AuditEntry, error) {
	ep, ok := s.endpoints[path]
	if !ok {
		return models.AuditEntry{}, fmt.Errorf("%s: %w", path, ErrUnknownEndpoint)
	}
	rec, err := ep.decode(body)
	if err != nil {
		return models.AuditEntry{}, fmt.Errorf("%s: %w", path, err)
	}

	entry := models.AuditEntry{
		OccurredAt: s.now().UTC(),
		Kind:       ep.kind,
		Line:       s.clock.Stamp(ctx) + rec.message,
	}
	if rec.meta != nil {
		entry.Metadata = rec.meta
	}
	if err := s.repos.Lines.Append(entry.Line); err != nil {
		return models.AuditEntry{}, fmt.Errorf("append audit line: %w", err)
	}

	s.mirror(ctx, entry, rec.fields)
	return entry, nil
}

func (s *RecorderService) mirror(ctx context.Context, e models.AuditEntry, fields map[string]any) {
	if err := s.repos.Entries.Append(ctx, e); err != nil {
		s.log.Errorw("audit_history_append_failed", "kind", e.Kind, "err", err)
	}
	if err := s.repos.Latest.Put(ctx, e.Kind, e.Line); err != nil {
		s.log.Errorw("audit_latest_put_failed", "kind", e.Kind, "err", err)
	}
	if err := s.repos.Telemetry.Write(ctx, e.Kind, e.OccurredAt, fields); err != nil {
		s.log.Errorw("audit_telemetry_write_failed", "kind", e.Kind, "err", err)
	}
}
