package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"home_automation/internal/alert"
	"home_automation/internal/audit"
	"home_automation/internal/cloud"
	"home_automation/internal/config"
	"home_automation/internal/controller"
	"home_automation/internal/logger"
	"home_automation/internal/relay"
	"home_automation/internal/sensor"
	"home_automation/internal/timeapi"
	"home_automation/internal/weather"
)

const configDir = "configs"

func main() {
	cfg, err := config.LoadController(configDir)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.LogLevel)

	drv, err := openDriver(cfg.GPIO.Driver, log)
	if err != nil {
		log.Fatalw("failed to init gpio", "err", err, "driver", cfg.GPIO.Driver)
	}
	bank, err := relay.NewBank(relay.DefaultTable, drv)
	if err != nil {
		log.Fatalw("failed to init relay bank", "err", err)
	}
	ledLine, err := drv.Line(cfg.GPIO.IndicatorLine)
	if err != nil {
		log.Fatalw("failed to init indicator led", "err", err, "line", cfg.GPIO.IndicatorLine)
	}
	led := relay.NewIndicator(ledLine)
	led.Set(false)

	clock := timeapi.New(cfg.TimeAPI.URL, cfg.TimeAPI.Timeout)
	forwarder := audit.NewForwarder(cfg.Audit.BaseURL, cfg.Audit.Timeout, log.Named("audit"))

	bridge := cloud.NewBridge(cloud.Options{
		Broker:         cfg.Cloud.Broker,
		ClientID:       cfg.Cloud.ClientID,
		Username:       cfg.Cloud.Username,
		Password:       cfg.Cloud.Password,
		TopicPrefix:    cfg.Cloud.TopicPrefix,
		ConnectTimeout: cfg.Cloud.ConnectTimeout,
	}, log.Named("cloud"))
	if err := bridge.Connect(); err != nil {
		log.Fatalw("failed to connect to cloud broker", "err", err, "broker", cfg.Cloud.Broker)
	}
	defer bridge.Close()

	dispatcher := controller.NewDispatcher(bridge, bank, led, clock, forwarder, log.Named("dispatcher"))
	sensorPoller := controller.NewSensorPoller(
		sensor.NewDHT(cfg.Sensor.DeviceDir),
		alert.NewWebhook(cfg.Alert.WebhookURL, cfg.Alert.Timeout),
		cfg.Alert.ThresholdC,
		bridge, clock, forwarder, log.Named("sensor"),
	)
	weatherPoller := controller.NewWeatherPoller(
		weather.New(cfg.Weather.BaseURL, cfg.Weather.City, cfg.Weather.AppID, cfg.Weather.Timeout),
		bridge, clock, forwarder, log.Named("weather"),
	)

	loop := controller.NewLoop(bridge.Events(), dispatcher, log.Named("loop"),
		controller.Task{Name: "sensor", Every: cfg.Sensor.Interval, Run: sensorPoller.Poll},
		controller.Task{Name: "weather", Every: cfg.Weather.Interval, Run: weatherPoller.Poll},
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		loop.Run(ctx)
	}()

	log.Infow("controller_started", "broker", cfg.Cloud.Broker, "channels", len(bank.Channels()))
	waitForShutdown(cancel, stopped, log)
	led.Set(false)
}

// openDriver picks the GPIO backend. "memory" runs the controller without hardware.
func openDriver(name string, log *logger.Logger) (relay.Driver, error) {
	if name == "memory" {
		log.Infow("gpio_dry_run", "driver", name)
		return relay.NewMemoryDriver(), nil
	}
	return relay.NewPeriphDriver()
}

// waitForShutdown blocks until SIGINT/SIGTERM, then stops the loop and waits
// for the callback in progress to finish.
func waitForShutdown(cancel context.CancelFunc, stopped <-chan struct{}, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down controller...")
	cancel()
	<-stopped
}
