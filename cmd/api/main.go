// Package main is the entry point for the PayOnTime API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/redis/go-redis/v9"

	"github.com/payontime/backend/config"
	"github.com/payontime/backend/internal/domain/valueobject"
	"github.com/payontime/backend/internal/infra/db"
	"github.com/payontime/backend/internal/infra/dependency"
	"github.com/payontime/backend/internal/infra/scheduler"
	"github.com/payontime/backend/internal/integration/cache"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	cfg := config.Load()
	slog.SetDefault(newLogger(cfg))

	slog.Info("Starting PayOnTime API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.Migrate(); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	redisClient := connectRedis(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	injector, err := dependency.NewInjector(cfg, database.DB(), dependency.External{Redis: redisClient})
	if err != nil {
		slog.Error("Failed to wire application", "error", err)
		os.Exit(1)
	}

	if cfg.Reminder.SchedulerEnabled {
		loc, ok := valueobject.LoadLocation(cfg.Reminder.SchedulerTimezone, time.UTC)
		if !ok {
			slog.Warn("Unknown scheduler timezone, using UTC", "timezone", cfg.Reminder.SchedulerTimezone)
		}
		s, err := scheduler.Start(injector.Reminders, cfg.Reminder.Cron, loc)
		if err != nil {
			slog.Error("Failed to start reminder scheduler", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := s.Shutdown(); err != nil {
				slog.Error("Failed to stop reminder scheduler", "error", err)
			}
		}()
	}

	engine := injector.Router.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return
	}

	slog.Info("Server exited properly")
}

// newLogger uses colored output in development and JSON everywhere else.
func newLogger(cfg *config.Config) *slog.Logger {
	level := parseLevel(cfg.Log.Level)
	if cfg.IsDevelopment() {
		return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}

func parseLevel(value string) slog.Level {
	switch value {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// connectRedis returns nil when no Redis is configured or reachable; identity lookups then go
// straight to the database.
func connectRedis(cfg *config.Config) *redis.Client {
	if cfg.Redis.URL == "" {
		return nil
	}
	client, err := cache.NewRedisClient(cfg.Redis.URL, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		slog.Warn("Redis configuration invalid, identity cache disabled", "error", err)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis unreachable, identity cache disabled", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}
