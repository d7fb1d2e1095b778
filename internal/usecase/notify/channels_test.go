package notify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foundry-catchup/internal/infra/notifier"
)

func TestDiscordChannelDisabled(t *testing.T) {
	ch := NewDiscordChannel(notifier.DiscordConfig{Enabled: false})

	if ch.IsEnabled() {
		t.Error("IsEnabled() = true, want false")
	}
	if err := ch.Send(context.Background(), sampleDigest()); !errors.Is(err, ErrChannelDisabled) {
		t.Errorf("Send() error = %v, want ErrChannelDisabled", err)
	}
}

func TestSlackChannelNilDigest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("webhook should not be called for nil digest")
	}))
	defer srv.Close()

	ch := NewSlackChannel(notifier.SlackConfig{Enabled: true, WebhookURL: srv.URL, Timeout: time.Second})
	if err := ch.Send(context.Background(), nil); !errors.Is(err, ErrInvalidDigest) {
		t.Errorf("Send(nil) error = %v, want ErrInvalidDigest", err)
	}
}

func TestChannelsDeliverThroughNotifier(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	discord := NewDiscordChannel(notifier.DiscordConfig{Enabled: true, WebhookURL: srv.URL, Timeout: 5 * time.Second})
	if discord.Name() != "discord" {
		t.Errorf("Name() = %q", discord.Name())
	}
	if err := discord.Send(context.Background(), sampleDigest()); err != nil {
		t.Errorf("discord Send() error = %v", err)
	}

	slack := NewSlackChannel(notifier.SlackConfig{Enabled: true, WebhookURL: srv.URL, Timeout: 5 * time.Second})
	if slack.Name() != "slack" {
		t.Errorf("Name() = %q", slack.Name())
	}
	if err := slack.Send(context.Background(), sampleDigest()); err != nil {
		t.Errorf("slack Send() error = %v", err)
	}

	if calls != 2 {
		t.Errorf("webhook called %d times, want 2", calls)
	}
}
