package timeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrorPrefix replaces the timestamp when the time service cannot be reached.
const ErrorPrefix = "**Time API Error**: "

// Client asks a WorldTimeAPI-compatible service for the local date and time.
type Client struct {
	http *resty.Client
	url  string
}

func New(url string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().SetTimeout(timeout),
		url:  url,
	}
}

type timeResponse struct {
	DateTime string `json:"datetime"`
}

// Now returns the service's local time as "YYYY-MM-DD HH:MM:SS".
func (c *Client) Now(ctx context.Context) (string, error) {
	resp, err := c.http.R().SetContext(ctx).Get(c.url)
	if err != nil {
		return "", fmt.Errorf("time service request: %w", err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("time service returned status %d", resp.StatusCode())
	}
	var body timeResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("decode time service response: %w", err)
	}
	if body.DateTime == "" {
		return "", fmt.Errorf("time service response has no datetime")
	}
	return FormatDateTime(body.DateTime), nil
}

// Stamp returns the prefix put in front of every display and audit line:
// the current time followed by a space, or ErrorPrefix.
func (c *Client) Stamp(ctx context.Context) string {
	now, err := c.Now(ctx)
	if err != nil {
		return ErrorPrefix
	}
	return now + " "
}

// FormatDateTime turns "2022-03-26T10:11:12.123456+05:30" into "2022-03-26 10:11:12".
func FormatDateTime(s string) string {
	s = strings.Replace(s, "T", " ", 1)
	s, _, _ = strings.Cut(s, ".")
	return s
}
