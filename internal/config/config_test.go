package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadController_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := LoadController(t.TempDir())
	if err != nil {
		t.Fatalf("LoadController: %v", err)
	}
	if c.Sensor.Interval != 1800*time.Second || c.Weather.Interval != 2700*time.Second {
		t.Fatalf("intervals: %v %v", c.Sensor.Interval, c.Weather.Interval)
	}
	if c.Alert.ThresholdC != 40 || c.Cloud.TopicPrefix != "home" || c.GPIO.Driver != "periph" {
		t.Fatalf("defaults: %+v", c)
	}
}

func TestLoadController_FileAndEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	writeFile(t, dir, "controller.yml", `
log_level: debug
gpio:
  driver: memory
cloud:
  broker: tcp://broker:1883
  topic_prefix: flat
sensor:
  interval: 10s
alert:
  threshold_c: 35
`)
	t.Setenv("HA_ALERT_WEBHOOK_URL", "http://hooks.local/trigger")
	t.Setenv("HA_CLOUD_BROKER", "tcp://other:1883")

	c, err := LoadController(dir)
	if err != nil {
		t.Fatalf("LoadController: %v", err)
	}
	if c.LogLevel != "debug" || c.GPIO.Driver != "memory" || c.Cloud.TopicPrefix != "flat" {
		t.Fatalf("file values: %+v", c)
	}
	if c.Sensor.Interval != 10*time.Second || c.Alert.ThresholdC != 35 {
		t.Fatalf("file values: %+v", c)
	}
	if c.Alert.WebhookURL != "http://hooks.local/trigger" || c.Cloud.Broker != "tcp://other:1883" {
		t.Fatalf("env overrides: %+v", c)
	}
}

func TestLoadController_DotEnv(t *testing.T) {
	wd := t.TempDir()
	t.Chdir(wd)
	writeFile(t, wd, ".env", "HA_WEATHER_CITY=Kandy\n")
	t.Cleanup(func() { os.Unsetenv("HA_WEATHER_CITY") })

	c, err := LoadController(t.TempDir())
	if err != nil {
		t.Fatalf("LoadController: %v", err)
	}
	if c.Weather.City != "Kandy" {
		t.Fatalf("city: %q", c.Weather.City)
	}
}

func TestLoadController_BadInterval(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	writeFile(t, dir, "controller.yml", "sensor:\n  interval: 0s\n")

	if _, err := LoadController(dir); err == nil {
		t.Fatal("expected error for zero interval")
	}
}

func TestLoadAuditServer(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	writeFile(t, dir, "auditserver.yml", "port: \"9090\"\nredis:\n  addr: localhost:6379\n")

	c, err := LoadAuditServer(dir)
	if err != nil {
		t.Fatalf("LoadAuditServer: %v", err)
	}
	if c.Port != "9090" || c.Redis.Addr != "localhost:6379" || c.DB.Path != "audit.db" {
		t.Fatalf("config: %+v", c)
	}
	if c.Redis.TTL != 24*time.Hour {
		t.Fatalf("ttl: %v", c.Redis.TTL)
	}
}
