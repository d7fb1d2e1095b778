// Package main provides a one-shot scouting CLI.
// Usage: foundry-scout [--kind news|improvements] [--output text|json] [--resolve]
package main

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"foundry-catchup/internal/domain/entity"
	"foundry-catchup/internal/handler/http/respond"
	"foundry-catchup/internal/infra/adapter/persistence/memory"
	"foundry-catchup/internal/infra/agent"
	"foundry-catchup/internal/infra/fetcher"
	"foundry-catchup/internal/infra/scout"
	"foundry-catchup/internal/observability/logging"
	feedUC "foundry-catchup/internal/usecase/feed"
)

// FeedOutput represents the JSON output format for a generated feed.
type FeedOutput struct {
	Kind        string         `json:"kind"`
	Provider    string         `json:"provider"`
	GeneratedAt string         `json:"generated_at"`
	Count       int            `json:"count"`
	Items       []ItemOutput   `json:"items"`
	Sources     []SourceOutput `json:"sources"`
}

// ItemOutput represents a single feed entry.
type ItemOutput struct {
	Headline string `json:"headline"`
	Summary  string `json:"summary,omitempty"`
	Why      string `json:"why,omitempty"`
	Link     string `json:"link,omitempty"`
}

// SourceOutput represents a citation URL, with page metadata when --resolve
// is set and the page could be fetched.
type SourceOutput struct {
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Excerpt string `json:"excerpt,omitempty"`
}

func main() {
	var (
		kindArg      string
		outputFormat string
		resolve      bool
		timeout      time.Duration
	)

	flag.StringVar(&kindArg, "kind", "news", "Feed kind to generate: news or improvements")
	flag.StringVar(&outputFormat, "output", "text", "Output format: text or json")
	flag.BoolVar(&resolve, "resolve", false, "Resolve citation URLs to page titles and excerpts")
	flag.DurationVar(&timeout, "timeout", 2*time.Minute, "Overall generation timeout")
	flag.Parse()

	var kind entity.FeedKind
	switch kindArg {
	case "news":
		kind = entity.FeedNews
	case "improvements":
		kind = entity.FeedImprovements
	default:
		fmt.Fprintf(os.Stderr, "Error: Invalid kind '%s' (must be 'news' or 'improvements')\n", kindArg)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage: foundry-scout [--kind news|improvements] [--output text|json] [--resolve]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Examples:")
		fmt.Fprintln(os.Stderr, "  foundry-scout")
		fmt.Fprintln(os.Stderr, "  foundry-scout --kind improvements")
		fmt.Fprintln(os.Stderr, "  foundry-scout --kind news --resolve --output json")
		os.Exit(1)
	}

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	sc := createScout(ctx, logger)
	svc := &feedUC.Service{
		Scout:     sc,
		Citations: memory.NewCitationStore(),
	}

	resp, err := svc.Generate(ctx, kind)
	if err != nil {
		logger.Error("feed generation failed", slog.Any("error", respond.SanitizeError(err)))
		fmt.Fprintf(os.Stderr, "Error: Feed generation failed: %v\n", respond.SanitizeError(err))
		os.Exit(1)
	}

	out := FeedOutput{
		Kind:        string(kind),
		Provider:    sc.Name(),
		GeneratedAt: resp.GeneratedAt.Format(time.RFC3339),
		Count:       resp.Count,
	}
	for _, item := range resp.Items {
		out.Items = append(out.Items, ItemOutput{
			Headline: item.Headline,
			Summary:  item.Summary,
			Why:      item.Why,
			Link:     item.Link,
		})
	}

	metas := map[string]*fetcher.Metadata{}
	if resolve {
		f := fetcher.NewMetadataFetcher(fetcher.LoadConfigFromEnv())
		metas = f.ResolveAll(ctx, resp.Sources)
	}
	for _, u := range resp.Sources {
		src := SourceOutput{URL: u}
		if meta, ok := metas[u]; ok {
			src.Title = meta.Title
			src.Excerpt = meta.Excerpt
		}
		out.Sources = append(out.Sources, src)
	}

	switch outputFormat {
	case "json":
		printJSON(out)
	default:
		printText(out)
	}
}

func printJSON(out FeedOutput) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to encode output: %v\n", err)
		os.Exit(1)
	}
}

func printText(out FeedOutput) {
	fmt.Printf("Feed: %s (%s, %d items, generated %s)\n\n", out.Kind, out.Provider, out.Count, out.GeneratedAt)
	for i, item := range out.Items {
		fmt.Printf("%d. %s\n", i+1, item.Headline)
		if item.Summary != "" {
			fmt.Printf("   %s\n", item.Summary)
		}
		if item.Why != "" {
			fmt.Printf("   Why: %s\n", item.Why)
		}
		if item.Link != "" {
			fmt.Printf("   %s\n", item.Link)
		}
		fmt.Println()
	}
	if len(out.Sources) > 0 {
		fmt.Println("Sources:")
		for _, src := range out.Sources {
			if src.Title != "" {
				fmt.Printf("  - %s (%s)\n", src.Title, src.URL)
			} else {
				fmt.Printf("  - %s\n", src.URL)
			}
		}
	}
}

// createScout picks the scout backend from SCOUT_PROVIDER: gemini (default),
// claude, openai, rss, or noop.
func createScout(ctx context.Context, logger *slog.Logger) feedUC.Scout {
	provider := os.Getenv("SCOUT_PROVIDER")
	if provider == "" {
		provider = "gemini"
	}

	switch provider {
	case "gemini":
		apiKey := os.Getenv("GOOGLE_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(os.Stderr, "Error: GOOGLE_API_KEY is required when SCOUT_PROVIDER=gemini")
			os.Exit(1)
		}
		g, err := agent.NewGemini(ctx, apiKey, os.Getenv("GEMINI_MODEL"))
		if err != nil {
			logger.Error("failed to create Gemini scout", slog.Any("error", respond.SanitizeError(err)))
			os.Exit(1)
		}
		return g
	case "claude":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(os.Stderr, "Error: ANTHROPIC_API_KEY is required when SCOUT_PROVIDER=claude")
			os.Exit(1)
		}
		return agent.NewClaude(apiKey)
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(os.Stderr, "Error: OPENAI_API_KEY is required when SCOUT_PROVIDER=openai")
			os.Exit(1)
		}
		return agent.NewOpenAI(apiKey)
	case "rss":
		feeds, err := scout.LoadFeedConfig()
		if err != nil {
			logger.Error("failed to load feed configuration", slog.Any("error", err))
			os.Exit(1)
		}
		return scout.NewRSS(&http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
			},
		}, feeds)
	case "noop":
		logger.Warn("Using no-op scout, feed will be empty")
		return agent.NewNoOp()
	default:
		fmt.Fprintf(os.Stderr, "Error: Invalid SCOUT_PROVIDER '%s' (must be gemini, claude, openai, rss or noop)\n", provider)
		os.Exit(1)
		return nil
	}
}
