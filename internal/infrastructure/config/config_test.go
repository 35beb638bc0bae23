package config_test

import (
	"testing"
	"time"

	"github.com/iho/paymentsengine/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("REJECT_DUPLICATE_TX", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.LogFormat != "json" {
		t.Fatalf("expected default log format json, got %q", cfg.LogFormat)
	}

	if cfg.RejectDuplicateTx {
		t.Fatalf("expected duplicate rejection to be disabled by default")
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.HTTPShutdownTimeout != 10*time.Second {
		t.Fatalf("expected default shutdown timeout 10s, got %s", cfg.HTTPShutdownTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("REJECT_DUPLICATE_TX", "true")
	t.Setenv("METRICS_FILE", "/tmp/engine.prom")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HTTP_READ_TIMEOUT", "45s")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.LogLevel != "debug" || cfg.LogFormat != "console" {
		t.Fatalf("expected logging overrides, got level=%s format=%s", cfg.LogLevel, cfg.LogFormat)
	}

	if !cfg.RejectDuplicateTx {
		t.Fatalf("expected duplicate rejection override")
	}

	if cfg.MetricsFile != "/tmp/engine.prom" {
		t.Fatalf("expected metrics file override, got %s", cfg.MetricsFile)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.HTTPReadTimeout != 45*time.Second {
		t.Fatalf("expected read timeout override, got %s", cfg.HTTPReadTimeout)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}

	t.Setenv("HTTP_READ_TIMEOUT", "30s")
	t.Setenv("REJECT_DUPLICATE_TX", "maybe")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid bool")
	}
}
