package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func serveCORS(t *testing.T, config CORSConfig, method, origin string) *httptest.ResponseRecorder {
	t.Helper()

	handler := CORS(config)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(method, "/api/news", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCORSSameOriginPassesThrough(t *testing.T) {
	config := CORSConfig{AllowedOrigins: []string{"https://app.example.com"}}

	rec := serveCORS(t, config, http.MethodGet, "")

	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("same-origin request should not get CORS headers")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestCORSAllowedOrigin(t *testing.T) {
	config := CORSConfig{AllowedOrigins: []string{"https://app.example.com"}}

	rec := serveCORS(t, config, http.MethodGet, "https://app.example.com")

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("Allow-Origin = %q, want the request origin", got)
	}
	if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("Allow-Credentials should be true")
	}
}

func TestCORSDisallowedOrigin(t *testing.T) {
	config := CORSConfig{AllowedOrigins: []string{"https://app.example.com"}}

	rec := serveCORS(t, config, http.MethodGet, "https://evil.example.com")

	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("disallowed origin should not get CORS headers")
	}
	// Request still reaches the handler; the browser does the blocking
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	config := CORSConfig{
		AllowedOrigins: []string{"https://app.example.com"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         3600,
	}

	rec := serveCORS(t, config, http.MethodOptions, "https://app.example.com")

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, OPTIONS" {
		t.Errorf("Allow-Methods = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Max-Age"); got != "3600" {
		t.Errorf("Max-Age = %q, want 3600", got)
	}
}

func TestLoadCORSConfig(t *testing.T) {
	config, err := LoadCORSConfig(fakeEnv(map[string]string{
		"CORS_ALLOWED_ORIGINS": "https://app.example.com, http://localhost:3000",
		"CORS_MAX_AGE":         "600",
	}))
	if err != nil {
		t.Fatalf("LoadCORSConfig: %v", err)
	}

	if len(config.AllowedOrigins) != 2 {
		t.Fatalf("origins = %v, want 2 entries", config.AllowedOrigins)
	}
	if config.AllowedOrigins[1] != "http://localhost:3000" {
		t.Errorf("second origin = %q", config.AllowedOrigins[1])
	}
	if config.MaxAge != 600 {
		t.Errorf("MaxAge = %d, want 600", config.MaxAge)
	}
}

func TestLoadCORSConfigDefaults(t *testing.T) {
	config, err := LoadCORSConfig(fakeEnv(nil))
	if err != nil {
		t.Fatalf("LoadCORSConfig: %v", err)
	}

	if len(config.AllowedOrigins) != 0 {
		t.Errorf("default origins should be empty, got %v", config.AllowedOrigins)
	}
	if config.MaxAge != 86400 {
		t.Errorf("default MaxAge = %d, want 86400", config.MaxAge)
	}
}

func TestLoadCORSConfigRejectsInvalidOrigins(t *testing.T) {
	cases := []string{
		"ftp://example.com",
		"https://example.com/path",
		"not-a-url-at-all://",
	}
	for _, origin := range cases {
		_, err := LoadCORSConfig(fakeEnv(map[string]string{
			"CORS_ALLOWED_ORIGINS": origin,
		}))
		if err == nil {
			t.Errorf("origin %q should be rejected", origin)
		}
	}
}
