package worker

import (
	"fmt"
	"log/slog"
	"time"

	"foundry-catchup/internal/pkg/config"
)

// WorkerConfig controls the scheduled digest refresh: cron schedule,
// timezone, notification concurrency, and the health endpoint port.
//
// Loaded from environment variables via LoadConfigFromEnv with a fail-open
// strategy: invalid values fall back to defaults with a warning instead of
// stopping the worker.
type WorkerConfig struct {
	// CronSchedule is the 5-field cron expression for digest refresh runs.
	// Default: "30 5 * * *" (every day at 5:30).
	CronSchedule string

	// Timezone is the IANA timezone name used for cron scheduling.
	// Default: "Asia/Tokyo".
	Timezone string

	// NotifyMaxConcurrent caps concurrent notification sends. Range 1-50.
	// Default: 10.
	NotifyMaxConcurrent int

	// RefreshTimeout bounds one full refresh run (both feeds, generation
	// included). Range 1m-4h. Default: 30 minutes.
	RefreshTimeout time.Duration

	// HealthPort is the port for the worker health endpoints.
	// Range 1024-65535. Default: 9091.
	HealthPort int
}

// DefaultConfig returns production-ready defaults: a daily 5:30 JST refresh
// with a 30-minute timeout.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule:        "30 5 * * *",
		Timezone:            "Asia/Tokyo",
		NotifyMaxConcurrent: 10,
		RefreshTimeout:      30 * time.Minute,
		HealthPort:          9091,
	}
}

// Validate checks every field and returns the collected errors.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidateIntRange(c.NotifyMaxConcurrent, 1, 50); err != nil {
		errs = append(errs, fmt.Errorf("notify max concurrent: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.RefreshTimeout); err != nil {
		errs = append(errs, fmt.Errorf("refresh timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv loads the worker configuration with fail-open fallback.
// Each invalid value is replaced by its default, logged as a warning, and
// counted in the config metrics; the returned config is always valid.
//
// Environment variables:
//   - CRON_SCHEDULE: cron expression (default "30 5 * * *")
//   - WORKER_TIMEZONE: IANA timezone (default "Asia/Tokyo")
//   - NOTIFY_MAX_CONCURRENT: 1-50 (default 10)
//   - REFRESH_TIMEOUT: duration 1m-4h (default 30m)
//   - WORKER_HEALTH_PORT: 1024-65535 (default 9091)
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) *WorkerConfig {
	cfg := DefaultConfig()
	fallbackApplied := false

	applyFallback := func(field string, warnings []string) {
		fallbackApplied = true
		metrics.RecordValidationError(field)
		metrics.RecordFallback(field)
		for _, warning := range warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", field),
				slog.String("warning", warning))
		}
	}

	schedule := config.LoadEnvWithFallback("CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = schedule.Value
	if schedule.FallbackApplied {
		applyFallback("cron_schedule", schedule.Warnings)
	}

	timezone := config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = timezone.Value
	if timezone.FallbackApplied {
		applyFallback("timezone", timezone.Warnings)
	}

	concurrent := config.LoadEnvInt("NOTIFY_MAX_CONCURRENT", cfg.NotifyMaxConcurrent, func(v int) error {
		return config.ValidateIntRange(v, 1, 50)
	})
	cfg.NotifyMaxConcurrent = concurrent.Value
	if concurrent.FallbackApplied {
		applyFallback("notify_max_concurrent", concurrent.Warnings)
	}

	timeout := config.LoadEnvDuration("REFRESH_TIMEOUT", cfg.RefreshTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 1*time.Minute, 4*time.Hour)
	})
	cfg.RefreshTimeout = timeout.Value
	if timeout.FallbackApplied {
		applyFallback("refresh_timeout", timeout.Warnings)
	}

	port := config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = port.Value
	if port.FallbackApplied {
		applyFallback("health_port", port.Warnings)
	}

	metrics.SetFallbackActive(fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg
}
