package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait   = 10 * time.Second
	wsPongWait    = 60 * time.Second
	wsPingEvery   = wsPongWait * 9 / 10
	wsReadLimit   = 512 // clients only send control frames
	wsDefaultTick = 5 * time.Second
	wsMinTick     = 100 * time.Millisecond
	wsMaxTick     = time.Minute
)

type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// The status stream is read-only and carries no credentials.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// statusStream pushes ServerStatus snapshots to one dashboard client.
type statusStream struct {
	h    *Handler
	conn *websocket.Conn
	tick time.Duration
}

// @Summary      Stream server status
// @Description  Upgrades to a WebSocket and pushes {"type":"status"} envelopes every interval (?every=5s or ?every_ms=5000, 100ms..1m).
// @Tags         status
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	tick := streamInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	s := &statusStream{h: h, conn: conn, tick: tick}
	s.serve(c.Request.Context())
}

// streamInterval reads ?every=<duration> or ?every_ms=<n>. Out of range or
// unparsable values fall back to the default.
func streamInterval(c *gin.Context) time.Duration {
	inRange := func(d time.Duration) bool { return d >= wsMinTick && d <= wsMaxTick }

	if s := c.Query("every"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && inRange(d) {
			return d
		}
	}
	if s := c.Query("every_ms"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && inRange(time.Duration(n)*time.Millisecond) {
			return time.Duration(n) * time.Millisecond
		}
	}
	return wsDefaultTick
}

func (s *statusStream) serve(ctx context.Context) {
	defer func() { _ = s.conn.Close() }()

	s.conn.SetReadLimit(wsReadLimit)
	_ = s.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	closed := s.drain()

	if err := s.push(ctx); err != nil {
		s.h.logInfo("ws_initial_push_failed", "err", err)
		return
	}

	updates := time.NewTicker(s.tick)
	defer updates.Stop()
	pings := time.NewTicker(wsPingEvery)
	defer pings.Stop()

	for {
		select {
		case <-closed:
			return
		case <-ctx.Done():
			return
		case <-pings.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				s.h.logInfo("ws_ping_failed", "err", err)
				return
			}
		case <-updates.C:
			if err := s.push(ctx); err != nil {
				s.h.logInfo("ws_push_failed", "err", err)
				return
			}
		}
	}
}

// drain reads until the peer goes away so pongs and close frames are processed.
func (s *statusStream) drain() <-chan struct{} {
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := s.conn.NextReader(); err != nil {
				s.h.logInfo("ws_peer_closed", "err", err)
				return
			}
		}
	}()
	return closed
}

// push writes one status snapshot. A status failure is reported to the
// client as an error envelope before the stream ends.
func (s *statusStream) push(ctx context.Context) error {
	st, err := s.h.services.Status.Status(ctx)
	_ = s.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err != nil {
		if s.h.log != nil {
			s.h.log.Errorw("ws_status_failed", "err", err)
		}
		_ = s.conn.WriteJSON(wsEnvelope{Type: "error", Error: "status unavailable"})
		return err
	}
	return s.conn.WriteJSON(wsEnvelope{Type: "status", Data: st})
}

func (h *Handler) logInfo(msg string, kv ...interface{}) {
	if h.log != nil {
		h.log.Infow(msg, kv...)
	}
}
