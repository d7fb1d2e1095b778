package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"foundry-catchup/internal/domain/entity"
	"foundry-catchup/internal/resilience/circuitbreaker"
	"foundry-catchup/internal/resilience/retry"
)

// Claude implements Provider using Anthropic's Claude API. Claude has no web
// grounding tool here, so citations come solely from the URL fallback over
// the report text. Includes circuit breaker and retry logic.
type Claude struct {
	client          anthropic.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	retryConfig     retry.Config
	config          Config
	metricsRecorder ScoutMetricsRecorder
}

// NewClaude creates a new Claude scout with the given API key.
func NewClaude(apiKey string) *Claude {
	config := LoadConfig(string(anthropic.ModelClaudeSonnet4_5_20250929))

	slog.Info("Initialized Claude scout with configuration",
		slog.String("model", config.Model),
		slog.Int("max_items", config.MaxItems))

	return &Claude{
		client:          anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
		retryConfig:     retry.AgentAPIConfig(),
		config:          config,
		metricsRecorder: NewPrometheusScoutMetrics(),
	}
}

// Name identifies the provider in logs, metrics and persisted digests.
func (c *Claude) Name() string { return "claude" }

// Scout generates a report for the given feed kind.
// It uses circuit breaker and retry logic for improved reliability.
func (c *Claude) Scout(ctx context.Context, kind entity.FeedKind) (*Report, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	var report *Report

	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doScout(ctx, kind)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("claude api circuit breaker open, request rejected",
					slog.String("service", "claude-api"),
					slog.String("state", c.circuitBreaker.State().String()))
				return fmt.Errorf("claude api unavailable: circuit breaker open")
			}
			return err
		}

		report = cbResult.(*Report)
		return nil
	})

	if retryErr != nil {
		c.metricsRecorder.RecordFailure(c.Name())
		return nil, fmt.Errorf("claude scout failed after retries: %w", retryErr)
	}

	return report, nil
}

// doScout performs the actual API call without retry or circuit breaker.
func (c *Claude) doScout(ctx context.Context, kind entity.FeedKind) (*Report, error) {
	requestID := uuid.New().String()

	slog.InfoContext(ctx, "Starting scout run",
		slog.String("request_id", requestID),
		slog.String("provider", c.Name()),
		slog.String("kind", string(kind)))

	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(PromptFor(kind)),
			),
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Scout run failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		return nil, fmt.Errorf("claude api returned empty response")
	}

	var text strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("claude api returned no text blocks")
	}

	c.metricsRecorder.RecordDuration(c.Name(), duration)
	return &Report{Text: text.String()}, nil
}
