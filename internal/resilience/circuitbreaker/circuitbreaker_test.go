package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func TestExecuteSuccess(t *testing.T) {
	cb := New(DefaultConfig("test"))
	got, err := cb.Execute(func() (interface{}, error) {
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.(string) != "ok" {
		t.Errorf("result = %v, want ok", got)
	}
	if cb.IsOpen() {
		t.Error("breaker should stay closed after success")
	}
}

func TestTripsAfterFailureRatio(t *testing.T) {
	cfg := Config{
		Name:             "trip-test",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 0.5,
		MinRequests:      4,
	}
	cb := New(cfg)

	boom := errors.New("boom")
	for i := 0; i < 4; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, boom })
	}

	if !cb.IsOpen() {
		t.Fatalf("breaker should be open after 100%% failures, state = %v", cb.State())
	}

	_, err := cb.Execute(func() (interface{}, error) { return "unreached", nil })
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected ErrOpenState while open, got %v", err)
	}
}

func TestBelowMinRequestsDoesNotTrip(t *testing.T) {
	cfg := DefaultConfig("min-test")
	cfg.MinRequests = 10
	cb := New(cfg)

	boom := errors.New("boom")
	for i := 0; i < 5; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, boom })
	}
	if cb.IsOpen() {
		t.Error("breaker must not trip below MinRequests")
	}
}

func TestNamedConfigs(t *testing.T) {
	for _, cfg := range []Config{GeminiAPIConfig(), ClaudeAPIConfig(), OpenAIAPIConfig(), ScoutFeedConfig()} {
		if cfg.Name == "" {
			t.Errorf("config missing name: %+v", cfg)
		}
		if cfg.FailureThreshold <= 0 || cfg.FailureThreshold > 1 {
			t.Errorf("config %s has invalid threshold %v", cfg.Name, cfg.FailureThreshold)
		}
	}
}
