package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"foundry-catchup/internal/domain/entity"
	"foundry-catchup/internal/resilience/circuitbreaker"
	"foundry-catchup/internal/resilience/retry"
)

// OpenAI implements Provider using OpenAI's chat completion API. As with
// Claude, citations come from the URL fallback over the report text.
type OpenAI struct {
	client          *openai.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	retryConfig     retry.Config
	config          Config
	metricsRecorder ScoutMetricsRecorder
}

// NewOpenAI creates a new OpenAI scout with the given API key.
func NewOpenAI(apiKey string) *OpenAI {
	config := LoadConfig(openai.GPT4oMini)

	slog.Info("Initialized OpenAI scout with configuration",
		slog.String("model", config.Model),
		slog.Int("max_items", config.MaxItems))

	return &OpenAI{
		client:          openai.NewClient(apiKey),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		retryConfig:     retry.AgentAPIConfig(),
		config:          config,
		metricsRecorder: NewPrometheusScoutMetrics(),
	}
}

// Name identifies the provider in logs, metrics and persisted digests.
func (o *OpenAI) Name() string { return "openai" }

// Scout generates a report for the given feed kind.
// It uses circuit breaker and retry logic for improved reliability.
func (o *OpenAI) Scout(ctx context.Context, kind entity.FeedKind) (*Report, error) {
	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	var report *Report

	retryErr := retry.WithBackoff(ctx, o.retryConfig, func() error {
		cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
			return o.doScout(ctx, kind)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("openai api circuit breaker open, request rejected",
					slog.String("service", "openai-api"),
					slog.String("state", o.circuitBreaker.State().String()))
				return fmt.Errorf("openai api unavailable: circuit breaker open")
			}
			return err
		}

		report = cbResult.(*Report)
		return nil
	})

	if retryErr != nil {
		o.metricsRecorder.RecordFailure(o.Name())
		return nil, fmt.Errorf("openai scout failed after retries: %w", retryErr)
	}

	return report, nil
}

// doScout performs the actual API call without retry or circuit breaker.
func (o *OpenAI) doScout(ctx context.Context, kind entity.FeedKind) (*Report, error) {
	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.config.Model,
		MaxTokens: o.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: PromptFor(kind),
			},
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Scout run failed",
			slog.String("provider", o.Name()),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("openai api returned empty response")
	}

	o.metricsRecorder.RecordDuration(o.Name(), duration)
	return &Report{Text: resp.Choices[0].Message.Content}, nil
}
