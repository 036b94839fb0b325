// @title        Home Automation Audit Server
// @version      1.0
// @description  Collects one timestamped line per controller event and serves the recorded history.
// @BasePath     /
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	_ "home_automation/docs"
	"home_automation/internal/config"
	"home_automation/internal/handlers"
	"home_automation/internal/logger"
	"home_automation/internal/relay"
	"home_automation/internal/repository"
	"home_automation/internal/repository/db"
	"home_automation/internal/server"
	"home_automation/internal/service"
	"home_automation/internal/timeapi"
)

const (
	configDir       = "configs"
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.LoadAuditServer(configDir)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.LogLevel)

	sqlDB, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err, "path", cfg.DB.Path)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	latest, closeLatest := openLatest(cfg.Redis, log)
	defer closeLatest()
	telemetry := openTelemetry(cfg.Influx, log)
	defer telemetry.Close()

	repos := repository.NewRepository(sqlDB, repository.NewFileLineLog(cfg.LogFile), latest, telemetry)
	services := service.NewService(
		repos,
		timeapi.New(cfg.TimeAPI.URL, cfg.TimeAPI.Timeout),
		relay.DefaultTable,
		service.ServerInfo{Version: cfg.Version, Host: cfg.Host, Port: cfg.Port},
		log.Named("service"),
	)
	apiHandler := handlers.NewHandler(services, log.Named("http"))

	srv := &server.Server{}
	runHTTPServer(srv, cfg.Host, cfg.Port, apiHandler, log)
	log.Infow("audit_server_started", "addr", server.Addr(cfg.Host, cfg.Port), "log_file", cfg.LogFile, "db", cfg.DB.Path)

	waitForShutdown(srv, log)
}

// openLatest uses Redis when an address is configured and an in-process map otherwise.
func openLatest(cfg config.RedisConfig, log *logger.Logger) (repository.LatestCache, func()) {
	if cfg.Addr == "" {
		return repository.NewMemoryLatest(), func() {}
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Errorw("redis_unreachable", "err", err, "addr", cfg.Addr)
	}
	return repository.NewRedisLatest(rdb, cfg.TTL), func() { _ = rdb.Close() }
}

func openTelemetry(cfg config.InfluxConfig, log *logger.Logger) repository.Telemetry {
	if cfg.URL == "" {
		return repository.NopTelemetry{}
	}
	log.Infow("influx_mirror_enabled", "url", cfg.URL, "bucket", cfg.Bucket)
	return repository.NewInfluxTelemetry(cfg.URL, cfg.Token, cfg.Org, cfg.Bucket)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, host, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(host, port, handler.Handler()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
