package fetcher

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config holds the configuration for citation metadata fetching.
//
// Security settings:
//   - DenyPrivateIPs: Prevents SSRF attacks by blocking private IP addresses
//   - MaxBodySize: Prevents memory exhaustion from oversized responses
//   - MaxRedirects: Prevents infinite redirect loops
//   - Timeout: Prevents resource starvation from slow servers
type Config struct {
	// Enabled controls whether metadata fetching runs at all. When false,
	// citations render as bare URLs.
	Enabled bool

	// Timeout is the maximum duration for a single HTTP request.
	Timeout time.Duration

	// Parallelism is the maximum number of concurrent fetches.
	Parallelism int

	// MaxBodySize is the maximum HTTP response body size in bytes.
	MaxBodySize int64

	// MaxRedirects is the maximum number of HTTP redirects to follow.
	// Each redirect target is validated for security (SSRF check).
	MaxRedirects int

	// DenyPrivateIPs controls whether to block access to private IP
	// addresses. Should always be true in production.
	DenyPrivateIPs bool
}

// DefaultConfig returns the default configuration for metadata fetching.
func DefaultConfig() Config {
	return Config{
		Enabled:        true,
		Timeout:        10 * time.Second,
		Parallelism:    5,
		MaxBodySize:    10 * 1024 * 1024, // 10MB
		MaxRedirects:   5,
		DenyPrivateIPs: true,
	}
}

// Validate checks if the configuration values are valid and safe.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}

	if c.Parallelism < 1 || c.Parallelism > 50 {
		return fmt.Errorf("parallelism must be between 1 and 50, got %d", c.Parallelism)
	}

	minBodySize := int64(1024)              // 1KB
	maxBodySize := int64(100 * 1024 * 1024) // 100MB
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d",
			minBodySize, maxBodySize, c.MaxBodySize)
	}

	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}

	return nil
}

// LoadConfigFromEnv loads configuration from environment variables, falling
// back to defaults for unset or invalid values.
//
// Environment variables:
//   - CITATION_FETCH_ENABLED: "true" or "false" (default: true)
//   - CITATION_FETCH_TIMEOUT: duration, e.g. "10s" (default: 10s)
//   - CITATION_FETCH_PARALLELISM: integer (default: 5)
//   - CITATION_FETCH_MAX_BODY_SIZE: bytes (default: 10485760)
//   - CITATION_FETCH_MAX_REDIRECTS: integer (default: 5)
//   - CITATION_FETCH_DENY_PRIVATE_IPS: "true" or "false" (default: true)
func LoadConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("CITATION_FETCH_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = b
		} else {
			slog.Warn("invalid CITATION_FETCH_ENABLED, using default",
				slog.String("value", v), slog.Bool("default", cfg.Enabled))
		}
	}

	if v := os.Getenv("CITATION_FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		} else {
			slog.Warn("invalid CITATION_FETCH_TIMEOUT, using default",
				slog.String("value", v), slog.Duration("default", cfg.Timeout))
		}
	}

	if v := os.Getenv("CITATION_FETCH_PARALLELISM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 50 {
			cfg.Parallelism = n
		} else {
			slog.Warn("invalid CITATION_FETCH_PARALLELISM, using default",
				slog.String("value", v), slog.Int("default", cfg.Parallelism))
		}
	}

	if v := os.Getenv("CITATION_FETCH_MAX_BODY_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxBodySize = n
		} else {
			slog.Warn("invalid CITATION_FETCH_MAX_BODY_SIZE, using default",
				slog.String("value", v), slog.Int64("default", cfg.MaxBodySize))
		}
	}

	if v := os.Getenv("CITATION_FETCH_MAX_REDIRECTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 10 {
			cfg.MaxRedirects = n
		} else {
			slog.Warn("invalid CITATION_FETCH_MAX_REDIRECTS, using default",
				slog.String("value", v), slog.Int("default", cfg.MaxRedirects))
		}
	}

	if v := os.Getenv("CITATION_FETCH_DENY_PRIVATE_IPS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DenyPrivateIPs = b
		} else {
			slog.Warn("invalid CITATION_FETCH_DENY_PRIVATE_IPS, using default",
				slog.String("value", v), slog.Bool("default", cfg.DenyPrivateIPs))
		}
	}

	return cfg
}
