package entity

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidateURL(t *testing.T) {
	cases := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid https", "https://learn.microsoft.com/azure", false},
		{"valid http", "http://example.com/feed", false},
		{"empty", "", true},
		{"ftp scheme", "ftp://example.com/file", true},
		{"no host", "https://", true},
		{"too long", "https://example.com/" + strings.Repeat("a", 2048), true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := ValidateURL(c.url)
			if (err != nil) != c.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", c.url, err, c.wantErr)
			}
		})
	}
}

func TestValidateURLReturnsValidationError(t *testing.T) {
	err := ValidateURL("")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if verr.Field != "url" {
		t.Errorf("field = %q, want url", verr.Field)
	}
}

func TestDigestValidate(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name    string
		digest  Digest
		wantErr bool
	}{
		{"valid", Digest{Kind: FeedNews, Provider: "gemini", GeneratedAt: now}, false},
		{"bad kind", Digest{Kind: "weather", Provider: "gemini", GeneratedAt: now}, true},
		{"no provider", Digest{Kind: FeedNews, GeneratedAt: now}, true},
		{"zero time", Digest{Kind: FeedNews, Provider: "gemini"}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.digest.Validate()
			if (err != nil) != c.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, c.wantErr)
			}
		})
	}
}
