package timeapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFormatDateTime(t *testing.T) {
	cases := map[string]string{
		"2022-03-26T10:11:12.123456+05:30": "2022-03-26 10:11:12",
		"2022-03-26T10:11:12":              "2022-03-26 10:11:12",
		"2022-03-26 10:11:12.5":            "2022-03-26 10:11:12",
	}
	for in, want := range cases {
		if got := FormatDateTime(in); got != want {
			t.Errorf("FormatDateTime(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStamp(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"ok", http.StatusOK, `{"datetime":"2022-03-26T10:11:12.123456+05:30"}`, "2022-03-26 10:11:12 "},
		{"server error", http.StatusInternalServerError, `{}`, ErrorPrefix},
		{"bad json", http.StatusOK, `not json`, ErrorPrefix},
		{"missing field", http.StatusOK, `{"abbreviation":"IST"}`, ErrorPrefix},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := New(srv.URL, time.Second)
			if got := c.Stamp(context.Background()); got != tc.want {
				t.Fatalf("Stamp() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestStamp_Unreachable(t *testing.T) {
	c := New("http://127.0.0.1:1/api/ip", 200*time.Millisecond)
	if got := c.Stamp(context.Background()); got != ErrorPrefix {
		t.Fatalf("want error prefix, got %q", got)
	}
}
