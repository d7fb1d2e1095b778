// Command diagnose_feeds checks every RSS/Atom feed in the scout feed list
// and reports which ones are healthy. Run it when the rss provider starts
// returning empty feeds to find dead or relocated URLs.
//
// Usage: go run scripts/diagnose_feeds.go [-json report.json]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/mmcdole/gofeed"

	"foundry-catchup/internal/domain/entity"
	"foundry-catchup/internal/infra/scout"
)

// FeedDiagnostic represents the diagnostic result for a single feed
type FeedDiagnostic struct {
	Kind         string `json:"kind"`
	URL          string `json:"url"`
	Status       string `json:"status"` // "OK", "HTTP_ERROR", "PARSE_ERROR", "EMPTY", "TIMEOUT"
	FeedTitle    string `json:"feed_title,omitempty"`
	FeedType     string `json:"feed_type,omitempty"` // "rss", "atom", "json"
	ItemCount    int    `json:"item_count"`
	LatestDate   string `json:"latest_date,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	ResponseTime int64  `json:"response_time_ms"`
}

func main() {
	jsonPath := flag.String("json", "", "Write the JSON report to this file")
	flag.Parse()

	feeds, err := scout.LoadFeedConfig()
	if err != nil {
		log.Fatalf("Failed to load feed configuration: %v", err)
	}

	targets := []struct {
		kind entity.FeedKind
		urls []string
	}{
		{entity.FeedNews, feeds.News},
		{entity.FeedImprovements, feeds.Improvements},
	}

	total := len(feeds.News) + len(feeds.Improvements)
	log.Printf("Diagnosing %d feed URLs...", total)

	diagnostics := make([]FeedDiagnostic, 0, total)
	i := 0
	for _, t := range targets {
		for _, u := range t.urls {
			i++
			log.Printf("[%d/%d] %s", i, total, u)
			diagnostics = append(diagnostics, diagnoseFeed(string(t.kind), u, 30*time.Second))
			// フィード提供側への負荷を抑える
			time.Sleep(500 * time.Millisecond)
		}
	}

	printReport(diagnostics)
	if *jsonPath != "" {
		writeJSONReport(*jsonPath, diagnostics)
	}
}

func diagnoseFeed(kind, url string, timeout time.Duration) FeedDiagnostic {
	diag := FeedDiagnostic{Kind: kind, URL: url}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}

	start := time.Now()
	feed, err := parser.ParseURLWithContext(url, ctx)
	diag.ResponseTime = time.Since(start).Milliseconds()

	if err != nil {
		diag.ErrorMessage = err.Error()
		var httpErr gofeed.HTTPError
		switch {
		case ctx.Err() != nil:
			diag.Status = "TIMEOUT"
		case errors.As(err, &httpErr):
			diag.Status = "HTTP_ERROR"
		default:
			diag.Status = "PARSE_ERROR"
		}
		return diag
	}

	diag.FeedTitle = feed.Title
	diag.FeedType = feed.FeedType
	diag.ItemCount = len(feed.Items)
	if diag.ItemCount == 0 {
		diag.Status = "EMPTY"
		return diag
	}

	diag.Status = "OK"
	if latest := feed.Items[0]; latest.PublishedParsed != nil {
		diag.LatestDate = latest.PublishedParsed.Format(time.RFC3339)
	} else if latest.UpdatedParsed != nil {
		diag.LatestDate = latest.UpdatedParsed.Format(time.RFC3339)
	}
	return diag
}

func printReport(diagnostics []FeedDiagnostic) {
	counts := make(map[string]int)
	for _, d := range diagnostics {
		counts[d.Status]++
	}

	fmt.Println()
	fmt.Println("=== Feed Diagnostic Report ===")
	fmt.Printf("Total: %d  OK: %d  Empty: %d  Errors: %d\n\n",
		len(diagnostics), counts["OK"], counts["EMPTY"],
		counts["HTTP_ERROR"]+counts["PARSE_ERROR"]+counts["TIMEOUT"])

	for _, d := range diagnostics {
		fmt.Printf("[%s] %-11s %s\n", d.Kind, d.Status, d.URL)
		if d.Status == "OK" {
			fmt.Printf("    %q (%s, %d items, latest %s, %dms)\n",
				d.FeedTitle, d.FeedType, d.ItemCount, d.LatestDate, d.ResponseTime)
		} else if d.ErrorMessage != "" {
			fmt.Printf("    %s\n", d.ErrorMessage)
		}
	}
}

func writeJSONReport(path string, diagnostics []FeedDiagnostic) {
	data, err := json.MarshalIndent(diagnostics, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode report: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
	log.Printf("JSON report written to %s", path)
}
