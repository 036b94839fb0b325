package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "HA"

type Controller struct {
	LogLevel string        `mapstructure:"log_level"`
	GPIO     GPIOConfig    `mapstructure:"gpio"`
	Cloud    CloudConfig   `mapstructure:"cloud"`
	Audit    AuditConfig   `mapstructure:"audit"`
	TimeAPI  TimeAPIConfig `mapstructure:"time_api"`
	Weather  WeatherConfig `mapstructure:"weather"`
	Sensor   SensorConfig  `mapstructure:"sensor"`
	Alert    AlertConfig   `mapstructure:"alert"`
}

type GPIOConfig struct {
	Driver        string `mapstructure:"driver"` // periph | memory
	IndicatorLine int    `mapstructure:"indicator_line"`
}

type CloudConfig struct {
	Broker         string        `mapstructure:"broker"`
	ClientID       string        `mapstructure:"client_id"`
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	TopicPrefix    string        `mapstructure:"topic_prefix"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type AuditConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type TimeAPIConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type WeatherConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	City     string        `mapstructure:"city"`
	AppID    string        `mapstructure:"app_id"`
	Interval time.Duration `mapstructure:"interval"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type SensorConfig struct {
	DeviceDir string        `mapstructure:"device_dir"`
	Interval  time.Duration `mapstructure:"interval"`
}

type AlertConfig struct {
	WebhookURL string        `mapstructure:"webhook_url"`
	ThresholdC int           `mapstructure:"threshold_c"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type AuditServer struct {
	LogLevel string        `mapstructure:"log_level"`
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Version  string        `mapstructure:"version"`
	LogFile  string        `mapstructure:"log_file"`
	DB       DBConfig      `mapstructure:"db"`
	TimeAPI  TimeAPIConfig `mapstructure:"time_api"`
	Influx   InfluxConfig  `mapstructure:"influx"`
	Redis    RedisConfig   `mapstructure:"redis"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

// InfluxConfig leaves the mirror disabled when URL is empty.
type InfluxConfig struct {
	URL    string `mapstructure:"url"`
	Token  string `mapstructure:"token"`
	Org    string `mapstructure:"org"`
	Bucket string `mapstructure:"bucket"`
}

// RedisConfig falls back to an in-process cache when Addr is empty.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

func controllerDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("gpio.driver", "periph")
	v.SetDefault("gpio.indicator_line", 2)
	v.SetDefault("cloud.broker", "tcp://localhost:1883")
	v.SetDefault("cloud.client_id", "home-controller")
	v.SetDefault("cloud.username", "")
	v.SetDefault("cloud.password", "")
	v.SetDefault("cloud.topic_prefix", "home")
	v.SetDefault("cloud.connect_timeout", 10*time.Second)
	v.SetDefault("audit.base_url", "http://localhost:8080")
	v.SetDefault("audit.timeout", 5*time.Second)
	v.SetDefault("time_api.url", "http://worldtimeapi.org/api/ip")
	v.SetDefault("time_api.timeout", 5*time.Second)
	v.SetDefault("weather.base_url", "https://api.openweathermap.org/data/2.5/weather")
	v.SetDefault("weather.city", "")
	v.SetDefault("weather.app_id", "")
	v.SetDefault("weather.interval", 2700*time.Second)
	v.SetDefault("weather.timeout", 10*time.Second)
	v.SetDefault("sensor.device_dir", "/sys/bus/iio/devices/iio:device0")
	v.SetDefault("sensor.interval", 1800*time.Second)
	v.SetDefault("alert.webhook_url", "")
	v.SetDefault("alert.threshold_c", 40)
	v.SetDefault("alert.timeout", 10*time.Second)
}

func auditServerDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", "8080")
	v.SetDefault("version", "1.0")
	v.SetDefault("log_file", "audit.log")
	v.SetDefault("db.path", "audit.db")
	v.SetDefault("time_api.url", "http://worldtimeapi.org/api/ip")
	v.SetDefault("time_api.timeout", 5*time.Second)
	v.SetDefault("influx.url", "")
	v.SetDefault("influx.token", "")
	v.SetDefault("influx.org", "")
	v.SetDefault("influx.bucket", "home")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 24*time.Hour)
}

// LoadController reads <dir>/controller.yml, then HA_* environment overrides.
func LoadController(dir string) (Controller, error) {
	var c Controller
	v, err := load(dir, "controller", controllerDefaults)
	if err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode controller config: %w", err)
	}
	if c.Sensor.Interval <= 0 || c.Weather.Interval <= 0 {
		return c, fmt.Errorf("poll intervals must be positive")
	}
	return c, nil
}

// LoadAuditServer reads <dir>/auditserver.yml, then HA_* environment overrides.
func LoadAuditServer(dir string) (AuditServer, error) {
	var c AuditServer
	v, err := load(dir, "auditserver", auditServerDefaults)
	if err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode audit server config: %w", err)
	}
	return c, nil
}

// load applies a .env file from the working directory (if any) before viper
// reads the YAML file. A missing YAML file is not an error.
func load(dir, name string, defaults func(*viper.Viper)) (*viper.Viper, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	defaults(v)
	v.SetConfigFile(filepath.Join(dir, name+".yml"))
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s config: %w", name, err)
	}
	return v, nil
}
