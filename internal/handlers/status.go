package handlers

import (
	"html/template"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"home_automation/internal/models"
)

var statusPageTmpl = template.Must(template.New("status").Parse(`<html>
<body style="width:960px; margin: 20px auto;">
<h1><center>Home Automation Audit Server Version {{.Version}}</center></h1>
<p style="color:green">Audit Server Status: Online</p>
<p>Audit Server Address: {{.Host}}</p>
<p>Audit Server Port   : {{.Port}}</p>
<p>Uptime: {{.UptimeSeconds}} s, load: {{printf "%.2f" .Load1}}</p>
{{if .Latest}}<h2>Latest events</h2>
<table>
{{range .Latest}}<tr><td>{{.Kind}}</td><td>{{.Line}}</td></tr>
{{end}}</table>
{{end}}</body>
</html>
`))

type latestRow struct {
	Kind models.EventKind
	Line string
}

type statusPageData struct {
	models.ServerStatus
	Latest []latestRow
}

func sortedLatest(m map[models.EventKind]string) []latestRow {
	rows := make([]latestRow, 0, len(m))
	for k, v := range m {
		rows = append(rows, latestRow{Kind: k, Line: v})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Kind < rows[j].Kind })
	return rows
}

// statusPage answers every unrecognised path.
func (h *Handler) statusPage(c *gin.Context) {
	st, err := h.services.Status.Status(c.Request.Context())
	if err != nil && h.log != nil {
		h.log.Errorw("status_page_failed", "err", err)
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := statusPageTmpl.Execute(c.Writer, statusPageData{ServerStatus: st, Latest: sortedLatest(st.Latest)}); err != nil && h.log != nil {
		h.log.Errorw("status_page_render_failed", "err", err)
	}
}

// @Summary      Server status
// @Tags         status
// @Produce      json
// @Success      200  {object}  models.ServerStatus
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/status [get]
func (h *Handler) getStatus(c *gin.Context) {
	st, err := h.services.Status.Status(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load status", "status_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}
