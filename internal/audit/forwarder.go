package audit

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"home_automation/internal/logger"
	"home_automation/internal/models"
)

// Forwarder delivers audit events to the collector once, best effort.
// Nothing is queued or retried; a lost event is only logged.
type Forwarder struct {
	http *resty.Client
	log  *logger.Logger
}

func NewForwarder(baseURL string, timeout time.Duration, log *logger.Logger) *Forwarder {
	return &Forwarder{
		http: resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
		log:  log,
	}
}

// Send makes at most one request and never reports failure to the caller.
func (f *Forwarder) Send(ctx context.Context, ev models.AuditEvent) {
	path, body, err := Route(ev)
	if err != nil {
		f.log.Errorw("audit_route_failed", "err", err)
		return
	}

	req := f.http.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	resp, err := req.Post(path)
	if err != nil {
		f.log.Errorw("audit_forward_failed", "path", path, "kind", ev.Kind(), "err", err)
		return
	}
	if !resp.IsSuccess() {
		f.log.Errorw("audit_forward_rejected", "path", path, "kind", ev.Kind(), "status", resp.StatusCode())
		return
	}
	f.log.Debugw("audit_forwarded", "path", path, "kind", ev.Kind())
}
