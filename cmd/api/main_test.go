package main

import (
	"log/slog"
	"testing"

	"github.com/payontime/backend/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		value    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := parseLevel(tt.value); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestConnectRedisDisabledWithoutURL(t *testing.T) {
	cfg := &config.Config{}
	if client := connectRedis(cfg); client != nil {
		t.Error("expected no client without a Redis URL")
	}
}
