package handlers

import (
	"context"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"home_automation/internal/models"
	"home_automation/internal/service"
)

// ---- Service Mocks ----

type mockRecorder struct {
	paths []string
	entry models.AuditEntry
	err   error

	calls    int
	lastPath string
	lastBody string
}

func (m *mockRecorder) Record(ctx context.Context, path string, body []byte) (models.AuditEntry, error) {
	m.calls++
	m.lastPath = path
	m.lastBody = string(body)
	return m.entry, m.err
}

func (m *mockRecorder) Paths() []string {
	out := append([]string(nil), m.paths...)
	sort.Strings(out)
	return out
}

type mockEventLog struct {
	resp     []models.AuditEntry
	err      error
	calls    int
	lastFrom time.Time
	lastTo   time.Time
	lastKind string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.AuditEntry, error) {
	m.calls++
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastKind = f.Kind
	return m.resp, m.err
}

type mockStatus struct {
	status models.ServerStatus
	err    error
}

func (m *mockStatus) Status(ctx context.Context) (models.ServerStatus, error) {
	return m.status, m.err
}

// ---- Shared Test Helpers ----

func newTestService() (*service.Service, *mockRecorder, *mockEventLog, *mockStatus) {
	rec := &mockRecorder{paths: []string{"/blynk-connection", "/updateRelayStatus"}}
	logs := &mockEventLog{}
	st := &mockStatus{status: models.ServerStatus{Version: "1.0", Host: "10.0.0.5", Port: "8080"}}
	return &service.Service{Recorder: rec, EventLog: logs, Status: st}, rec, logs, st
}

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil)
	return h.InitRoutes()
}
