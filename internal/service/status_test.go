package service

import (
	"context"
	"errors"
	"testing"

	"home_automation/internal/logger"
	"home_automation/internal/models"
	"home_automation/internal/repository"
)

func TestStatus_CombinesInfoHostAndLatest(t *testing.T) {
	latest := repository.NewMemoryLatest()
	_ = latest.Put(context.Background(), models.KindSensorReported, "l1")

	s := NewStatusService(ServerInfo{Version: "1.0", Host: "0.0.0.0", Port: "8080"}, latest, logger.NewNop())
	s.uptime = func(context.Context) (uint64, error) { return 3600, nil }
	s.load1 = func(context.Context) (float64, error) { return 0.25, nil }

	st, err := s.Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.Version != "1.0" || st.Port != "8080" || st.UptimeSeconds != 3600 || st.Load1 != 0.25 {
		t.Fatalf("status: %+v", st)
	}
	if st.Latest[models.KindSensorReported] != "l1" {
		t.Fatalf("latest: %v", st.Latest)
	}
}

func TestStatus_HostMetricsUnavailable(t *testing.T) {
	s := NewStatusService(ServerInfo{Version: "1.0"}, repository.NewMemoryLatest(), logger.NewNop())
	s.uptime = func(context.Context) (uint64, error) { return 0, errors.New("no /proc") }
	s.load1 = func(context.Context) (float64, error) { return 0, errors.New("no /proc") }

	st, err := s.Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.UptimeSeconds != 0 || st.Load1 != 0 || st.Latest == nil {
		t.Fatalf("status: %+v", st)
	}
}
