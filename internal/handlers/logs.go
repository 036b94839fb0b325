package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"home_automation/internal/models"
	"home_automation/internal/service"
)

// Accepted query time layouts, most specific first. The audit lines
// themselves use the second one.
var queryTimeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

var (
	errBadFrom  = errors.New("invalid 'from' time; use RFC3339, 'YYYY-MM-DD HH:MM:SS' or YYYY-MM-DD")
	errBadTo    = errors.New("invalid 'to' time; use RFC3339, 'YYYY-MM-DD HH:MM:SS' or YYYY-MM-DD")
	errBadRange = errors.New("'from' must be <= 'to'")
)

// bindLogFilter turns ?from, ?to and ?kind into a service filter. A
// date-only 'to' covers the whole day.
func bindLogFilter(c *gin.Context) (service.LogFilter, error) {
	var f service.LogFilter
	f.Kind = strings.ToUpper(strings.TrimSpace(c.Query("kind")))

	if raw := c.Query("from"); raw != "" {
		t, _, ok := parseQueryTime(raw)
		if !ok {
			return f, errBadFrom
		}
		f.From = t
	}
	if raw := c.Query("to"); raw != "" {
		t, dateOnly, ok := parseQueryTime(raw)
		if !ok {
			return f, errBadTo
		}
		if dateOnly {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		f.To = t
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return f, errBadRange
	}
	return f, nil
}

func parseQueryTime(raw string) (t time.Time, dateOnly bool, ok bool) {
	for i, layout := range queryTimeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), i == len(queryTimeLayouts)-1, true
		}
	}
	return time.Time{}, false, false
}

// @Summary      List recorded audit lines
// @Description  Filter by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). If 'to' is date-only, it is treated as end-of-day inclusive.
// @Tags         logs
// @Produce      json
// @Param        from  query   string  false  "Start of range"  example(2026-03-01)
// @Param        to    query   string  false  "End of range. Date-only treated as end of day."  example(2026-03-31)
// @Param        kind  query   string  false  "Event kind"  Enums(CONNECTION_ESTABLISHED,CONNECTION_LOST,CHANNEL_CHANGED,SENSOR_REPORTED,SENSOR_FAILED,WEATHER_REPORTED,WEATHER_FAILED,ALERT_TRIGGERED,ALERT_FAILED)
// @Success      200   {object}  map[string]interface{}  "count, entries"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/logs [get]
func (h *Handler) getLogs(c *gin.Context) {
	f, err := bindLogFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := h.services.EventLog.List(c.Request.Context(), f)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load logs", "logs_list_failed", err,
			"from", f.From, "to", f.To, "kind", f.Kind)
		return
	}
	if entries == nil {
		entries = []models.AuditEntry{}
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(entries),
		"entries": entries,
	})
}
