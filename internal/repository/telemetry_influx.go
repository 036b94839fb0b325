package repository

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"home_automation/internal/models"
)

const measurement = "home_audit"

// InfluxTelemetry mirrors numeric fields of recorded entries as points.
type InfluxTelemetry struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
}

func NewInfluxTelemetry(url, token, org, bucket string) *InfluxTelemetry {
	client := influxdb2.NewClient(url, token)
	return &InfluxTelemetry{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
	}
}

// Write stores one point tagged with the entry kind. Entries without
// numeric fields are skipped.
func (t *InfluxTelemetry) Write(ctx context.Context, kind models.EventKind, at time.Time, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	p := influxdb2.NewPoint(measurement, map[string]string{"kind": string(kind)}, fields, at)
	if err := t.writeAPI.WritePoint(ctx, p); err != nil {
		return fmt.Errorf("influx write %s: %w", kind, err)
	}
	return nil
}

func (t *InfluxTelemetry) Close() { t.client.Close() }

// NopTelemetry is used when no InfluxDB URL is configured.
type NopTelemetry struct{}

func (NopTelemetry) Write(context.Context, models.EventKind, time.Time, map[string]any) error {
	return nil
}

func (NopTelemetry) Close() {}
