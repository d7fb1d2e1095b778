package agent

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config holds configuration shared by the scout providers.
// Configuration is loaded from environment variables with fallback to defaults.
type Config struct {
	// MaxItems is the number of feed entries a scouting run keeps.
	// Loaded from SCOUT_MAX_ITEMS. Valid range: 1-10. Default: 5.
	MaxItems int

	// Timeout is the maximum duration for a single generation API call.
	Timeout time.Duration

	// Model is the provider-specific model identifier.
	Model string

	// MaxTokens is the maximum number of tokens for the API response.
	// Only the Claude and OpenAI adapters use it.
	MaxTokens int
}

// LoadConfig loads shared scout configuration from environment variables.
// Invalid values fall back to the default with a warning log.
//
// Environment variables:
//   - SCOUT_MAX_ITEMS: entries kept per feed (default: 5, range: 1-10)
//   - SCOUT_TIMEOUT: per-call timeout (default: 60s)
func LoadConfig(model string) Config {
	const (
		defaultMaxItems = 5
		minMaxItems     = 1
		maxMaxItems     = 10
	)

	maxItems := defaultMaxItems
	if envItems := os.Getenv("SCOUT_MAX_ITEMS"); envItems != "" {
		parsed, err := strconv.Atoi(envItems)
		if err != nil {
			slog.Warn("Invalid SCOUT_MAX_ITEMS format, using default",
				slog.String("value", envItems),
				slog.Int("default", defaultMaxItems),
				slog.String("error", err.Error()))
		} else if parsed < minMaxItems || parsed > maxMaxItems {
			slog.Warn("SCOUT_MAX_ITEMS out of valid range, using default",
				slog.Int("value", parsed),
				slog.Int("min", minMaxItems),
				slog.Int("max", maxMaxItems),
				slog.Int("default", defaultMaxItems))
		} else {
			maxItems = parsed
		}
	}

	timeout := 60 * time.Second
	if envTimeout := os.Getenv("SCOUT_TIMEOUT"); envTimeout != "" {
		parsed, err := time.ParseDuration(envTimeout)
		if err != nil || parsed <= 0 {
			slog.Warn("Invalid SCOUT_TIMEOUT, using default",
				slog.String("value", envTimeout),
				slog.String("default", timeout.String()))
		} else {
			timeout = parsed
		}
	}

	return Config{
		MaxItems:  maxItems,
		Timeout:   timeout,
		Model:     model,
		MaxTokens: 2048,
	}
}
