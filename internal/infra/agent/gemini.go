package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/sony/gobreaker"
	"google.golang.org/api/option"

	"foundry-catchup/internal/domain/entity"
	"foundry-catchup/internal/resilience/circuitbreaker"
	"foundry-catchup/internal/resilience/retry"
)

// defaultGeminiModel matches the original deployment; override via GEMINI_MODEL.
const defaultGeminiModel = "gemini-2.5-pro"

// Gemini implements Provider using Google's Gemini API with web grounding.
// This is the primary production provider: grounded search gives the feeds
// their citations. Includes circuit breaker and retry logic.
type Gemini struct {
	client          *genai.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	retryConfig     retry.Config
	config          Config
	metricsRecorder ScoutMetricsRecorder
}

// NewGemini creates a new Gemini scout with the given API key.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	config := LoadConfig(model)
	slog.Info("Initialized Gemini scout with configuration",
		slog.String("model", config.Model),
		slog.Int("max_items", config.MaxItems),
		slog.Duration("timeout", config.Timeout))

	return &Gemini{
		client:          client,
		circuitBreaker:  circuitbreaker.New(circuitbreaker.GeminiAPIConfig()),
		retryConfig:     retry.AgentAPIConfig(),
		config:          config,
		metricsRecorder: NewPrometheusScoutMetrics(),
	}, nil
}

// Name identifies the provider in logs, metrics and persisted digests.
func (g *Gemini) Name() string { return "gemini" }

// Close releases the underlying API client.
func (g *Gemini) Close() error { return g.client.Close() }

// Scout generates a grounded report for the given feed kind.
// It uses circuit breaker and retry logic for improved reliability.
func (g *Gemini) Scout(ctx context.Context, kind entity.FeedKind) (*Report, error) {
	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	var report *Report

	retryErr := retry.WithBackoff(ctx, g.retryConfig, func() error {
		cbResult, err := g.circuitBreaker.Execute(func() (interface{}, error) {
			return g.doScout(ctx, kind)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("gemini api circuit breaker open, request rejected",
					slog.String("service", "gemini-api"),
					slog.String("state", g.circuitBreaker.State().String()))
				return fmt.Errorf("gemini api unavailable: circuit breaker open")
			}
			return err
		}

		report = cbResult.(*Report)
		return nil
	})

	if retryErr != nil {
		g.metricsRecorder.RecordFailure(g.Name())
		return nil, fmt.Errorf("gemini scout failed after retries: %w", retryErr)
	}

	return report, nil
}

func (g *Gemini) doScout(ctx context.Context, kind entity.FeedKind) (*Report, error) {
	start := time.Now()

	model := g.client.GenerativeModel(g.config.Model)
	// Web grounding supplies the citation metadata the sources feed is
	// built from.
	model.Tools = []*genai.Tool{{GoogleSearchRetrieval: &genai.GoogleSearchRetrieval{}}}

	resp, err := model.GenerateContent(ctx, genai.Text(PromptFor(kind)))
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	report := reportFromGemini(resp)
	if report.Text == "" {
		return nil, fmt.Errorf("gemini returned empty report for %s", kind)
	}

	g.metricsRecorder.RecordDuration(g.Name(), time.Since(start))
	g.metricsRecorder.RecordCitations(g.Name(), len(report.Citations))
	return report, nil
}

// reportFromGemini flattens the candidate parts into text and collects
// citation URIs from the citation metadata. SDK response shapes vary across
// versions, so every optional field is nil-checked.
func reportFromGemini(resp *genai.GenerateContentResponse) *Report {
	var (
		text      strings.Builder
		citations []string
	)
	for _, cand := range resp.Candidates {
		if cand == nil {
			continue
		}
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
		if cand.CitationMetadata != nil {
			for _, cs := range cand.CitationMetadata.CitationSources {
				if cs != nil && cs.URI != nil && *cs.URI != "" {
					citations = append(citations, *cs.URI)
				}
			}
		}
	}
	return &Report{Text: text.String(), Citations: citations}
}
