package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"foundry-catchup/internal/domain/entity"
)

func TestDiscordNotifyDigest(t *testing.T) {
	var got DiscordWebhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("unmarshal payload: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewDiscordNotifier(DiscordConfig{Enabled: true, WebhookURL: srv.URL, Timeout: 5 * time.Second})
	if err := n.NotifyDigest(context.Background(), testDigest()); err != nil {
		t.Fatalf("NotifyDigest() error = %v", err)
	}

	if len(got.Embeds) != 1 {
		t.Fatalf("got %d embeds, want 1", len(got.Embeds))
	}
	embed := got.Embeds[0]
	if embed.Title != "AI news digest" {
		t.Errorf("embed title = %q", embed.Title)
	}
	if !strings.Contains(embed.Description, "[Model v2 released](https://example.com/v2)") {
		t.Errorf("description missing markdown link: %q", embed.Description)
	}
	if !strings.Contains(embed.Description, "Untitled") {
		t.Errorf("description should default missing headline to Untitled: %q", embed.Description)
	}
	if embed.Color != discordBlueColor {
		t.Errorf("embed color = %d, want %d", embed.Color, discordBlueColor)
	}
	if !strings.Contains(embed.Footer.Text, "gemini") {
		t.Errorf("footer = %q, want provider name", embed.Footer.Text)
	}
	if embed.Timestamp != "2026-03-01T09:00:00Z" {
		t.Errorf("timestamp = %q", embed.Timestamp)
	}
}

func TestDiscordNotifyDigestServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message": "Invalid Webhook Token", "code": 50027}`))
	}))
	defer srv.Close()

	n := NewDiscordNotifier(DiscordConfig{WebhookURL: srv.URL, Timeout: 5 * time.Second})
	err := n.NotifyDigest(context.Background(), testDigest())
	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		t.Fatalf("error = %v, want *ClientError", err)
	}
	if clientErr.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", clientErr.StatusCode)
	}
}

func TestDiscordNotifyDigestRetriesAfterRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"message": "You are being rate limited.", "retry_after": 0.01, "code": 0}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewDiscordNotifier(DiscordConfig{WebhookURL: srv.URL, Timeout: 5 * time.Second})
	if err := n.NotifyDigest(context.Background(), testDigest()); err != nil {
		t.Fatalf("NotifyDigest() error = %v, want success after backoff", err)
	}
	if calls.Load() != 2 {
		t.Errorf("server called %d times, want 2", calls.Load())
	}
}

func TestExtractRetryAfter(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		header string
		want   time.Duration
	}{
		{"json body", `{"retry_after": 2.5}`, "", 2500 * time.Millisecond},
		{"header fallback", `not json`, "3", 3 * time.Second},
		{"default", `{}`, "", 5 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{Header: http.Header{}}
			if tt.header != "" {
				resp.Header.Set("Retry-After", tt.header)
			}
			if got := extractRetryAfter(resp, []byte(tt.body)); got != tt.want {
				t.Errorf("extractRetryAfter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscordPayloadTruncatesLongDescriptions(t *testing.T) {
	digest := testDigest()
	digest.Items = append(digest.Items, entity.ContentItem{
		Headline: "Long",
		Summary:  strings.Repeat("y", maxDescriptionLength),
	})

	n := NewDiscordNotifier(DiscordConfig{WebhookURL: "http://unused", Timeout: time.Second})
	payload := n.buildEmbedPayload(digest)

	desc := payload.Embeds[0].Description
	if len(desc) > maxDescriptionLength {
		t.Errorf("description length = %d, want <= %d", len(desc), maxDescriptionLength)
	}
	if !strings.HasSuffix(desc, truncationSuffix) {
		t.Errorf("truncated description should end with %q", truncationSuffix)
	}
}
