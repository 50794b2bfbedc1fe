package config

import (
	"os"
	"testing"
	"time"
)

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("failed to unset %s: %v", key, err)
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"REMINDERS_BATCH_SIZE", "REMINDERS_CONCURRENCY", "DEFAULT_TIMEZONE",
		"REMINDERS_SCHEDULER_TIMEZONE", "REMINDERS_SCHEDULER_ENABLED", "REMINDERS_CRON",
		"EMAIL_SEND_TIMEOUT", "LOG_LEVEL", "RESEND_FROM_NAME",
	} {
		unsetEnv(t, key)
	}

	cfg := Load()

	if cfg.Reminder.DefaultTimezone != "Europe/Warsaw" {
		t.Errorf("expected Europe/Warsaw, got %s", cfg.Reminder.DefaultTimezone)
	}
	if cfg.Reminder.SchedulerTimezone != "Europe/Warsaw" {
		t.Errorf("expected scheduler timezone Europe/Warsaw, got %s", cfg.Reminder.SchedulerTimezone)
	}
	if cfg.Reminder.BatchSize != 1000 {
		t.Errorf("expected batch size 1000, got %d", cfg.Reminder.BatchSize)
	}
	if cfg.Reminder.Concurrency != 1 {
		t.Errorf("expected concurrency 1, got %d", cfg.Reminder.Concurrency)
	}
	if cfg.Reminder.SchedulerEnabled {
		t.Error("expected scheduler disabled")
	}
	if cfg.Reminder.Cron != "0 6 * * *" {
		t.Errorf("expected daily 06:00 cron, got %q", cfg.Reminder.Cron)
	}
	if cfg.Email.SendTimeout != 15*time.Second {
		t.Errorf("expected 15s send timeout, got %s", cfg.Email.SendTimeout)
	}
	if cfg.Email.FromName != "ZapłaćNaCzas" {
		t.Errorf("expected default sender name, got %s", cfg.Email.FromName)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected info, got %s", cfg.Log.Level)
	}
}

func TestLoadReminderOverrides(t *testing.T) {
	unsetEnv(t, "REMINDERS_SCHEDULER_TIMEZONE")
	t.Setenv("REMINDERS_BATCH_SIZE", "0")
	t.Setenv("REMINDERS_CONCURRENCY", "4")
	t.Setenv("DEFAULT_TIMEZONE", "America/New_York")
	t.Setenv("REMINDERS_SCHEDULER_ENABLED", "true")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg := Load()

	if cfg.Reminder.BatchSize != 1 {
		t.Errorf("expected batch size clamped to 1, got %d", cfg.Reminder.BatchSize)
	}
	if cfg.Reminder.Concurrency != 4 {
		t.Errorf("expected concurrency 4, got %d", cfg.Reminder.Concurrency)
	}
	if cfg.Reminder.SchedulerTimezone != "America/New_York" {
		t.Errorf("expected scheduler timezone to follow the default, got %s", cfg.Reminder.SchedulerTimezone)
	}
	if !cfg.Reminder.SchedulerEnabled {
		t.Error("expected scheduler enabled")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected debug, got %s", cfg.Log.Level)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("SERVER_PORT", "eighty")
	t.Setenv("EMAIL_SEND_TIMEOUT", "soon")

	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Email.SendTimeout != 15*time.Second {
		t.Errorf("expected default send timeout, got %s", cfg.Email.SendTimeout)
	}
}
