package sensor

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"home_automation/internal/models"
)

// Attribute files exposed by the kernel dht11 IIO driver, in milli-units.
const (
	tempFile     = "in_temp_input"
	humidityFile = "in_humidityrelative_input"
)

// DHT reads a DHT11/DHT22 bound to the kernel IIO driver, e.g.
// /sys/bus/iio/devices/iio:device0.
type DHT struct {
	dir      string
	readFile func(string) ([]byte, error)
	now      func() time.Time
}

func NewDHT(dir string) *DHT {
	return &DHT{dir: dir, readFile: os.ReadFile, now: time.Now}
}

// Read takes one sample. On failure the returned reading has status READ_ERROR
// and zero values.
func (d *DHT) Read(ctx context.Context) (models.SensorReading, error) {
	r := models.SensorReading{TakenAt: d.now().UTC()}
	if err := ctx.Err(); err != nil {
		return d.failed(r, err)
	}

	temp, err := d.milli(tempFile)
	if err != nil {
		return d.failed(r, err)
	}
	hum, err := d.milli(humidityFile)
	if err != nil {
		return d.failed(r, err)
	}
	if hum < 0 || hum > 100 {
		return d.failed(r, fmt.Errorf("humidity %.1f%% out of range", hum))
	}

	r.TemperatureC = int(math.Round(temp))
	r.HumidityPct = uint(math.Round(hum))
	r.Status = models.ReadOK
	return r, nil
}

func (d *DHT) failed(r models.SensorReading, err error) (models.SensorReading, error) {
	r.Status = models.ReadError
	r.Err = err.Error()
	return r, err
}

// milli reads one attribute and scales it from milli-units.
func (d *DHT) milli(name string) (float64, error) {
	raw, err := d.readFile(filepath.Join(d.dir, name))
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", name, err)
	}
	v, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", name, err)
	}
	return float64(v) / 1000, nil
}
