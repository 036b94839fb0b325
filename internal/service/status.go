package service

import (
	"context"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"

	"home_automation/internal/logger"
	"home_automation/internal/models"
	"home_automation/internal/repository"
)

// ServerInfo is the static part of the status page.
type ServerInfo struct {
	Version string
	Host    string
	Port    string
}

type StatusService struct {
	info   ServerInfo
	latest repository.LatestCache
	log    *logger.Logger

	uptime func(ctx context.Context) (uint64, error)
	load1  func(ctx context.Context) (float64, error)
}

func NewStatusService(info ServerInfo, latest repository.LatestCache, log *logger.Logger) *StatusService {
	return &StatusService{
		info:   info,
		latest: latest,
		log:    log,
		uptime: host.UptimeWithContext,
		load1: func(ctx context.Context) (float64, error) {
			avg, err := load.AvgWithContext(ctx)
			if err != nil {
				return 0, err
			}
			return avg.Load1, nil
		},
	}
}

// Status never fails: host metrics and the latest lines are filled in when
// available and left empty otherwise.
func (s *StatusService) Status(ctx context.Context) (models.ServerStatus, error) {
	st := models.ServerStatus{
		Version: s.info.Version,
		Host:    s.info.Host,
		Port:    s.info.Port,
		Latest:  map[models.EventKind]string{},
	}
	if up, err := s.uptime(ctx); err == nil {
		st.UptimeSeconds = up
	} else {
		s.log.Errorw("status_uptime_failed", "err", err)
	}
	if l1, err := s.load1(ctx); err == nil {
		st.Load1 = l1
	} else {
		s.log.Errorw("status_load_failed", "err", err)
	}
	if latest, err := s.latest.All(ctx); err == nil {
		st.Latest = latest
	} else {
		s.log.Errorw("status_latest_failed", "err", err)
	}
	return st, nil
}
