package worker

import (
	"log/slog"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.CronSchedule != "30 5 * * *" {
		t.Errorf("CronSchedule = %q", cfg.CronSchedule)
	}
	if cfg.RefreshTimeout != 30*time.Minute {
		t.Errorf("RefreshTimeout = %v", cfg.RefreshTimeout)
	}
}

func TestConfigValidateCollectsErrors(t *testing.T) {
	cfg := WorkerConfig{
		CronSchedule:        "not a cron",
		Timezone:            "Mars/Olympus",
		NotifyMaxConcurrent: 0,
		RefreshTimeout:      -time.Minute,
		HealthPort:          80,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() = nil, want error for every field")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CRON_SCHEDULE", "0 */6 * * *")
	t.Setenv("WORKER_TIMEZONE", "UTC")
	t.Setenv("NOTIFY_MAX_CONCURRENT", "5")
	t.Setenv("REFRESH_TIMEOUT", "10m")
	t.Setenv("WORKER_HEALTH_PORT", "9099")

	cfg := LoadConfigFromEnv(slog.Default(), testMetrics)

	if cfg.CronSchedule != "0 */6 * * *" {
		t.Errorf("CronSchedule = %q", cfg.CronSchedule)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
	if cfg.NotifyMaxConcurrent != 5 {
		t.Errorf("NotifyMaxConcurrent = %d", cfg.NotifyMaxConcurrent)
	}
	if cfg.RefreshTimeout != 10*time.Minute {
		t.Errorf("RefreshTimeout = %v", cfg.RefreshTimeout)
	}
	if cfg.HealthPort != 9099 {
		t.Errorf("HealthPort = %d", cfg.HealthPort)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config should validate: %v", err)
	}
}

func TestLoadConfigFromEnvFallsBackOnInvalidValues(t *testing.T) {
	t.Setenv("CRON_SCHEDULE", "every day at noon")
	t.Setenv("REFRESH_TIMEOUT", "10h") // above the 4h ceiling
	t.Setenv("WORKER_HEALTH_PORT", "80")

	cfg := LoadConfigFromEnv(slog.Default(), testMetrics)
	defaults := DefaultConfig()

	if cfg.CronSchedule != defaults.CronSchedule {
		t.Errorf("CronSchedule = %q, want default %q", cfg.CronSchedule, defaults.CronSchedule)
	}
	if cfg.RefreshTimeout != defaults.RefreshTimeout {
		t.Errorf("RefreshTimeout = %v, want default %v", cfg.RefreshTimeout, defaults.RefreshTimeout)
	}
	if cfg.HealthPort != defaults.HealthPort {
		t.Errorf("HealthPort = %d, want default %d", cfg.HealthPort, defaults.HealthPort)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("fail-open config should still validate: %v", err)
	}
}
