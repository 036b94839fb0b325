package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"home_automation/internal/models"
)

// Webhook posts high-temperature readings to an IFTTT-style maker endpoint.
type Webhook struct {
	http *resty.Client
	url  string
}

func NewWebhook(url string, timeout time.Duration) *Webhook {
	return &Webhook{
		http: resty.New().SetTimeout(timeout),
		url:  url,
	}
}

type payload struct {
	Value1 int  `json:"value1"`
	Value2 uint `json:"value2"`
}

// Notify sends one reading. It returns the HTTP status code; a transport
// failure returns code 0 and the error. A non-2xx code is not an error.
func (w *Webhook) Notify(ctx context.Context, r models.SensorReading) (int, error) {
	resp, err := w.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload{Value1: r.TemperatureC, Value2: r.HumidityPct}).
		Post(w.url)
	if err != nil {
		return 0, fmt.Errorf("alert webhook request: %w", err)
	}
	return resp.StatusCode(), nil
}
