package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// CORSConfig holds the CORS policy.
type CORSConfig struct {
	// AllowedOrigins is the origin whitelist. Empty means no cross-origin
	// access: the API only serves its own pages.
	AllowedOrigins []string

	// AllowedMethods for preflight responses.
	AllowedMethods []string

	// AllowedHeaders for preflight responses.
	AllowedHeaders []string

	// MaxAge is how long preflight results may be cached, in seconds.
	MaxAge int
}

// LoadCORSConfig reads the CORS policy from the environment.
//
// Environment variables:
//   - CORS_ALLOWED_ORIGINS: comma-separated origin whitelist (default empty)
//   - CORS_MAX_AGE: preflight cache seconds (default 86400)
//
// Origins must be scheme://host[:port] with no path. Invalid entries fail
// loading instead of being dropped.
func LoadCORSConfig(getenv func(string) string) (*CORSConfig, error) {
	config := &CORSConfig{
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
		MaxAge:         86400,
	}

	if raw := getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			origin = strings.TrimSpace(origin)
			if origin == "" {
				continue
			}
			if err := validateOrigin(origin); err != nil {
				return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS: %w", err)
			}
			config.AllowedOrigins = append(config.AllowedOrigins, origin)
		}
	}

	if raw := getenv("CORS_MAX_AGE"); raw != "" {
		maxAge, err := strconv.Atoi(raw)
		if err != nil || maxAge < 0 {
			return nil, fmt.Errorf("CORS_MAX_AGE: invalid value %q", raw)
		}
		config.MaxAge = maxAge
	}

	return config, nil
}

func validateOrigin(origin string) error {
	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("invalid origin %q: %w", origin, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("origin %q must use http or https", origin)
	}
	if u.Host == "" {
		return fmt.Errorf("origin %q has no host", origin)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("origin %q must not contain a path", origin)
	}
	return nil
}

func (c *CORSConfig) allowed(origin string) bool {
	for _, o := range c.AllowedOrigins {
		if o == origin {
			return true
		}
	}
	return false
}

// CORS returns middleware handling cross-origin requests against the
// configured whitelist. Same-origin requests (no Origin header) pass
// through untouched; disallowed origins get no CORS headers and the
// browser blocks the response.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !config.allowed(origin) {
				slog.Warn("CORS: origin not allowed",
					slog.String("origin", origin),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method))
				next.ServeHTTP(w, r)
				return
			}

			// Echo the request origin (required for credentialed requests)
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
