package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"home_automation/internal/service"
)

const (
	statusOK      = "ok"
	statusLogged  = "logged"
	statusIgnored = "ignored"

	errInvalidBodyPref = "invalid body: "
	errRecordFailed    = "failed to record audit line"

	maxBodyBytes = 1 << 16
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Record a controller audit event
// @Description  One endpoint per event kind. The JSON body carries the fields of that kind.
// @Tags         collector
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /updateRelayStatus [post]
func (h *Handler) record(c *gin.Context) {
	path := c.FullPath()

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, errInvalidBodyPref+err.Error(), "audit_body_read_failed", err, "path", path)
		return
	}

	entry, err := h.services.Recorder.Record(c.Request.Context(), path, body)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": statusLogged, "kind": entry.Kind})
	case errors.Is(err, service.ErrUnknownPin):
		if h.log != nil {
			h.log.Infow("audit_relay_pin_ignored", "path", path, "err", err)
		}
		c.JSON(http.StatusOK, gin.H{"status": statusIgnored})
	case errors.Is(err, service.ErrMalformedBody):
		h.logAndJSONError(c, http.StatusBadRequest, errInvalidBodyPref+err.Error(), "audit_body_invalid", err, "path", path)
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errRecordFailed, "audit_record_failed", err, "path", path)
	}
}
