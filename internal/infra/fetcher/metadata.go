package fetcher

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/sync/errgroup"

	"foundry-catchup/internal/observability/metrics"
	"foundry-catchup/internal/resilience/circuitbreaker"
	"foundry-catchup/internal/resilience/retry"
)

// maxExcerptLen bounds the excerpt text taken from a cited page.
const maxExcerptLen = 240

// Metadata is the extracted page metadata for one citation URL.
type Metadata struct {
	URL     string
	Title   string
	Excerpt string
}

// MetadataFetcher resolves citation URLs to page titles and excerpts.
// Titles come from og:title or the document title (goquery); excerpts from
// the Readability extraction of the page body.
//
// Thread safety: MetadataFetcher is safe for concurrent use.
type MetadataFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	config         Config
}

// NewMetadataFetcher creates a MetadataFetcher with the given configuration.
// The HTTP client validates every redirect target for SSRF.
func NewMetadataFetcher(config Config) *MetadataFetcher {
	f := &MetadataFetcher{
		circuitBreaker: circuitbreaker.New(circuitbreaker.Config{
			Name:             "citation-fetch",
			MaxRequests:      5,
			Interval:         60 * time.Second,
			Timeout:          60 * time.Second,
			FailureThreshold: 0.6,
			MinRequests:      5,
		}),
		retryConfig: retry.MetadataFetchConfig(),
		config:      config,
	}

	f.client = &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= f.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", ErrTooManyRedirects, len(via))
			}
			// リダイレクト先も検証する（SSRF対策）
			if err := validateURL(req.URL.String(), f.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}
	return f
}

// Fetch resolves one citation URL to its metadata.
func (f *MetadataFetcher) Fetch(ctx context.Context, urlStr string) (*Metadata, error) {
	if err := validateURL(urlStr, f.config.DenyPrivateIPs); err != nil {
		metrics.RecordCitationFetchSkipped()
		return nil, err
	}

	var meta *Metadata
	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		result, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, urlStr)
		})
		if err != nil {
			return err
		}
		meta = result.(*Metadata)
		return nil
	})
	if retryErr != nil {
		return nil, retryErr
	}
	return meta, nil
}

// ResolveAll resolves metadata for every URL concurrently, bounded by the
// configured parallelism. URLs that fail to resolve are simply absent from
// the result; a citation without metadata still renders as a bare link.
func (f *MetadataFetcher) ResolveAll(ctx context.Context, urls []string) map[string]*Metadata {
	out := make(map[string]*Metadata, len(urls))
	if !f.config.Enabled {
		return out
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.config.Parallelism)

	for _, u := range urls {
		g.Go(func() error {
			meta, err := f.Fetch(ctx, u)
			if err != nil {
				// 失敗したURLはスキップ
				return nil
			}
			mu.Lock()
			out[u] = meta
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// doFetch performs the HTTP request and extraction without retry or circuit
// breaker.
func (f *MetadataFetcher) doFetch(ctx context.Context, urlStr string) (interface{}, error) {
	start := time.Now()
	meta, size, err := f.fetchAndExtract(ctx, urlStr)
	if err != nil {
		metrics.RecordCitationFetchFailed(time.Since(start))
		return nil, err
	}
	metrics.RecordCitationFetchSuccess(time.Since(start), size)
	return meta, nil
}

func (f *MetadataFetcher) fetchAndExtract(ctx context.Context, urlStr string) (*Metadata, int, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: failed to create request: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", "FoundryCatchupBot/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		if urlErr, ok := err.(*url.Error); ok && urlErr.Err != nil {
			return nil, 0, urlErr.Err
		}
		return nil, 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, &retry.HTTPError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	// サイズ制限付きで読み込む
	limitedReader := io.LimitReader(resp.Body, f.config.MaxBodySize+1)
	htmlBytes, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(htmlBytes)) > f.config.MaxBodySize {
		return nil, 0, fmt.Errorf("%w: response size exceeds %d bytes", ErrBodyTooLarge, f.config.MaxBodySize)
	}

	finalURL := resp.Request.URL

	title, err := extractTitle(htmlBytes)
	if err != nil {
		return nil, 0, err
	}
	excerpt := extractExcerpt(htmlBytes, finalURL)

	if title == "" && excerpt == "" {
		return nil, 0, fmt.Errorf("%w: no title or readable content", ErrExtractFailed)
	}

	return &Metadata{URL: urlStr, Title: title, Excerpt: excerpt}, len(htmlBytes), nil
}

// extractTitle prefers og:title over the document title.
func extractTitle(html []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractFailed, err)
	}

	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if t := strings.TrimSpace(og); t != "" {
			return t, nil
		}
	}
	return strings.TrimSpace(doc.Find("title").First().Text()), nil
}

// extractExcerpt runs Readability over the page and truncates the result.
// Extraction failure yields an empty excerpt, not an error.
func extractExcerpt(html []byte, pageURL *url.URL) string {
	article, err := readability.FromReader(bytes.NewReader(html), pageURL)
	if err != nil {
		return ""
	}

	text := strings.TrimSpace(strings.Join(strings.Fields(article.TextContent), " "))
	if len(text) > maxExcerptLen {
		cut := text[:maxExcerptLen]
		if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
			cut = cut[:idx]
		}
		text = cut + "…"
	}
	return text
}
