package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"

	"home_automation/internal/models"
)

// pressureFactor converts the service's pressure reading to the unit shown
// on the dashboard. The controller has always used this factor.
const pressureFactor = 0.001

// Client queries an OpenWeather-compatible current-weather endpoint for one city.
type Client struct {
	http  *resty.Client
	url   string
	city  string
	appID string
	now   func() time.Time
}

func New(url, city, appID string, timeout time.Duration) *Client {
	return &Client{
		http:  resty.New().SetTimeout(timeout),
		url:   url,
		city:  city,
		appID: appID,
		now:   time.Now,
	}
}

type currentWeather struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
		Pressure float64 `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// Fetch issues one request. A non-2xx answer is not an error: the snapshot
// carries the status code and the caller decides. Transport and decode
// failures return an error together with whatever status was seen.
func (c *Client) Fetch(ctx context.Context) (models.WeatherSnapshot, error) {
	snap := models.WeatherSnapshot{FetchedAt: c.now().UTC()}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"q": c.city, "appid": c.appID}).
		Get(c.url)
	if err != nil {
		return snap, fmt.Errorf("weather request: %w", err)
	}
	snap.StatusCode = resp.StatusCode()
	if !resp.IsSuccess() {
		return snap, nil
	}

	var body currentWeather
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return snap, fmt.Errorf("decode weather response: %w", err)
	}
	if len(body.Weather) == 0 {
		return snap, fmt.Errorf("weather response has no description")
	}

	snap.TemperatureC = KelvinToCelsius(body.Main.Temp)
	snap.HumidityPct = body.Main.Humidity
	snap.PressureKPa = body.Main.Pressure * pressureFactor
	snap.Description = Capitalize(body.Weather[0].Description)
	return snap, nil
}

// KelvinToCelsius rounds to the nearest whole Kelvin (ties to even) before
// subtracting 273.15, so the result keeps the .15 fraction.
func KelvinToCelsius(k float64) float64 {
	return math.RoundToEven(k) - 273.15
}

// Capitalize upper-cases the first letter only.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Summary is the display/log line for a successful fetch.
func Summary(s models.WeatherSnapshot) string {
	return fmt.Sprintf("Weather service call successful. Sending response to cloud. Temperature=%v Humidity=%v Report=%s Pressure=%v",
		s.TemperatureC, s.HumidityPct, s.Description, s.PressureKPa)
}

// FailureSummary is the display/log line for a failed fetch.
func FailureSummary(code int) string {
	return fmt.Sprintf("Weather service call failed. Request returned status code: %d. Please verify the weather settings", code)
}

