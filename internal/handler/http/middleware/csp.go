// Package middleware provides the security middleware for the HTTP surface:
// Content-Security-Policy headers and CORS handling.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"foundry-catchup/pkg/security/csp"
)

// CSPConfig holds configuration for the CSP middleware.
type CSPConfig struct {
	// Enabled controls whether CSP headers are applied. CSP_ENABLED=false
	// turns the middleware into a pass-through.
	Enabled bool

	// DefaultPolicy applies when no path-specific policy matches.
	DefaultPolicy *csp.CSPBuilder

	// PathPolicies maps path prefixes to policies. The longest matching
	// prefix wins.
	PathPolicies map[string]*csp.CSPBuilder

	// ReportOnly emits Content-Security-Policy-Report-Only instead of the
	// enforcing header. CSP_REPORT_ONLY=true.
	ReportOnly bool
}

// LoadCSPConfig builds the CSP configuration from the environment with the
// policies for this server: strict for the API, relaxed only where Swagger
// UI needs it, and a no-script policy for the rendered pages.
func LoadCSPConfig(getenv func(string) string) CSPConfig {
	return CSPConfig{
		Enabled:       getenv("CSP_ENABLED") != "false",
		ReportOnly:    getenv("CSP_REPORT_ONLY") == "true",
		DefaultPolicy: csp.StrictPolicy(),
		PathPolicies: map[string]*csp.CSPBuilder{
			"/swagger/":     csp.SwaggerUIPolicy(),
			"/news":         csp.PagesPolicy(),
			"/improvements": csp.PagesPolicy(),
			"/sources":      csp.PagesPolicy(),
			"/":             csp.PagesPolicy(),
			"/api/":         csp.StrictPolicy(),
		},
	}
}

// CSP returns middleware that sets Content-Security-Policy headers chosen
// per request path.
func CSP(config CSPConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			policy := selectPolicy(config, r.URL.Path)
			if policy == nil {
				next.ServeHTTP(w, r)
				return
			}

			if config.ReportOnly {
				policy = policy.ReportOnly(true)
			}

			value := policy.Build()
			if value == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set(policy.HeaderName(), value)

			slog.Debug("CSP header applied",
				slog.String("path", r.URL.Path),
				slog.String("header", policy.HeaderName()))

			next.ServeHTTP(w, r)
		})
	}
}

// selectPolicy picks the policy whose prefix is the longest match for path,
// falling back to the default policy.
func selectPolicy(config CSPConfig, path string) *csp.CSPBuilder {
	longestPrefix := ""
	var matched *csp.CSPBuilder

	for prefix, policy := range config.PathPolicies {
		if strings.HasPrefix(path, prefix) && len(prefix) > len(longestPrefix) {
			longestPrefix = prefix
			matched = policy
		}
	}

	if matched != nil {
		return matched
	}
	return config.DefaultPolicy
}
