package service

import (
	"context"

	"home_automation/internal/logger"
	"home_automation/internal/models"
	"home_automation/internal/repository"
)

// Recorder appends one audit line per collector request.
type Recorder interface {
	Record(ctx context.Context, path string, body []byte) (models.AuditEntry, error)
	Paths() []string
}

// EventLog exposes the recorded history with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.AuditEntry, error)
}

// Status reports the server's identity, host health and latest lines.
type Status interface {
	Status(ctx context.Context) (models.ServerStatus, error)
}

type Service struct {
	Recorder
	EventLog
	Status
}

func NewService(repos *repository.Repository, clock TimeSource, channels []models.Channel, info ServerInfo, log *logger.Logger) *Service {
	return &Service{
		Recorder: NewRecorderService(repos, clock, channels, log),
		EventLog: NewEventLogService(repos.Entries),
		Status:   NewStatusService(info, repos.Latest, log),
	}
}
