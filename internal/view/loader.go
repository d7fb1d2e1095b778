package view

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// TransportError indicates the feed request could not complete or returned a
// non-success status.
type TransportError struct {
	Endpoint string
	Status   int
	Err      error
}

// Error returns a human-readable description of the transport failure.
func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.Endpoint, e.Status)
}

// Unwrap returns the underlying error, implementing the errors.Unwrap interface.
func (e *TransportError) Unwrap() error { return e.Err }

// ParseError indicates the response body was not valid JSON.
type ParseError struct {
	Endpoint string
	Err      error
}

// Error returns a human-readable description of the parse failure.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s response: %v", e.Endpoint, e.Err)
}

// Unwrap returns the underlying error, implementing the errors.Unwrap interface.
func (e *ParseError) Unwrap() error { return e.Err }

// Loader performs the fetch-render-error cycle for one feed endpoint.
// The zero value is not usable; BaseURL must point at the API origin.
type Loader struct {
	BaseURL string
	Client  *http.Client // nil means http.DefaultClient
	Logger  *slog.Logger // nil means slog.Default()
}

func (l *Loader) client() *http.Client {
	if l.Client != nil {
		return l.Client
	}
	return http.DefaultClient
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

// Load fetches endpoint, decodes its JSON body into T, and hands the decoded
// value to populate. Every target container is switched to the loading
// placeholder before the request starts; after Load returns each target is
// either populated or carries the error message, never still loading.
//
// The cycle runs exactly once: no retry, no timeout beyond the transport's
// own defaults, no cancellation other than ctx. The returned error mirrors
// what the containers already display; callers log it rather than rethrow.
func Load[T any](ctx context.Context, l *Loader, endpoint string, populate func(T), targets ...*Container) error {
	for _, c := range targets {
		c.SetLoading()
	}

	body, err := l.fetch(ctx, endpoint)
	if err != nil {
		return l.fail(endpoint, err, targets)
	}

	var decoded T
	if err := json.Unmarshal(body, &decoded); err != nil {
		return l.fail(endpoint, &ParseError{Endpoint: endpoint, Err: err}, targets)
	}

	// Containers are cleared inside populate, immediately before the
	// item-by-item render. A decode failure above never touches them.
	populate(decoded)
	for _, c := range targets {
		c.settle()
	}
	return nil
}

// fetch performs the single GET request and returns the response body.
func (l *Loader) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.BaseURL+endpoint, nil)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client().Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			l.logger().Warn("failed to close response body",
				slog.String("endpoint", endpoint),
				slog.Any("error", cerr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{Endpoint: endpoint, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	return body, nil
}

// fail switches every target into the error state and returns err for the
// caller's log line. The failure is swallowed at this boundary; the page
// still renders with the inline message.
func (l *Loader) fail(endpoint string, err error, targets []*Container) error {
	l.logger().Warn("feed load failed",
		slog.String("endpoint", endpoint),
		slog.Any("error", err))
	for _, c := range targets {
		c.Fail(err.Error())
	}
	return err
}
