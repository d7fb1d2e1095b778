package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadEnvString(t *testing.T) {
	t.Setenv("APP_NAME", "digest")
	if got := LoadEnvString("APP_NAME", "fallback"); got != "digest" {
		t.Errorf("LoadEnvString() = %q", got)
	}
	if got := LoadEnvString("APP_NAME_UNSET", "fallback"); got != "fallback" {
		t.Errorf("LoadEnvString() unset = %q", got)
	}
}

func TestLoadEnvWithFallback(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		want         string
		wantFallback bool
	}{
		{"unset uses default silently", "", "30 5 * * *", false},
		{"valid value passes", "0 */6 * * *", "0 */6 * * *", false},
		{"invalid value falls back with warning", "not a cron", "30 5 * * *", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				t.Setenv("TEST_CRON", tt.envValue)
			}
			result := LoadEnvWithFallback("TEST_CRON", "30 5 * * *", ValidateCronSchedule)
			if result.Value != tt.want {
				t.Errorf("Value = %q, want %q", result.Value, tt.want)
			}
			if result.FallbackApplied != tt.wantFallback {
				t.Errorf("FallbackApplied = %v, want %v", result.FallbackApplied, tt.wantFallback)
			}
			if tt.wantFallback && len(result.Warnings) == 0 {
				t.Error("fallback should carry a warning")
			}
		})
	}
}

func TestLoadEnvDuration(t *testing.T) {
	t.Setenv("TEST_TIMEOUT", "45m")
	result := LoadEnvDuration("TEST_TIMEOUT", 30*time.Minute, ValidatePositiveDuration)
	if result.Value != 45*time.Minute {
		t.Errorf("Value = %v", result.Value)
	}

	t.Setenv("TEST_TIMEOUT", "not-a-duration")
	result = LoadEnvDuration("TEST_TIMEOUT", 30*time.Minute, ValidatePositiveDuration)
	if result.Value != 30*time.Minute || !result.FallbackApplied {
		t.Errorf("parse failure: Value = %v, FallbackApplied = %v", result.Value, result.FallbackApplied)
	}

	t.Setenv("TEST_TIMEOUT", "-5m")
	result = LoadEnvDuration("TEST_TIMEOUT", 30*time.Minute, ValidatePositiveDuration)
	if !result.FallbackApplied {
		t.Error("negative duration should fall back")
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "TEST_TIMEOUT") {
		t.Errorf("Warnings = %v", result.Warnings)
	}
}

func TestLoadEnvInt(t *testing.T) {
	t.Setenv("TEST_PORT", "9095")
	validator := func(v int) error { return ValidateIntRange(v, 1024, 65535) }

	result := LoadEnvInt("TEST_PORT", 9091, validator)
	if result.Value != 9095 {
		t.Errorf("Value = %d", result.Value)
	}

	t.Setenv("TEST_PORT", "80")
	result = LoadEnvInt("TEST_PORT", 9091, validator)
	if result.Value != 9091 || !result.FallbackApplied {
		t.Errorf("out-of-range: Value = %d, FallbackApplied = %v", result.Value, result.FallbackApplied)
	}

	t.Setenv("TEST_PORT", "nine")
	result = LoadEnvInt("TEST_PORT", 9091, validator)
	if result.Value != 9091 || !result.FallbackApplied {
		t.Errorf("parse failure: Value = %d, FallbackApplied = %v", result.Value, result.FallbackApplied)
	}
}

func TestLoadEnvBool(t *testing.T) {
	t.Setenv("TEST_FLAG", "true")
	if result := LoadEnvBool("TEST_FLAG", false); result.Value != true {
		t.Errorf("Value = %v", result.Value)
	}

	t.Setenv("TEST_FLAG", "yes")
	result := LoadEnvBool("TEST_FLAG", true)
	if result.Value != true || !result.FallbackApplied {
		t.Errorf("invalid bool: Value = %v, FallbackApplied = %v", result.Value, result.FallbackApplied)
	}
}
