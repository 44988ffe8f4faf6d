package retrieval

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultEndpoint is the flag endpoint used when none is configured.
const DefaultEndpoint = "https://wgg522pwivhvi5gqsn675gth3q0otdja.lambda-url.us-east-1.on.aws/747269"

// Fetcher retrieves the flag text from its source.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) (string, error)

// Fetch calls f(ctx).
func (f FetcherFunc) Fetch(ctx context.Context) (string, error) {
	return f(ctx)
}

// HTTPFetcher performs a single GET against a fixed endpoint and returns the
// whole body as text.
type HTTPFetcher struct {
	endpoint string
	client   *http.Client
	timeout  *time.Duration
}

// HTTPOption configures an HTTPFetcher.
type HTTPOption func(*HTTPFetcher)

// WithHTTPClient replaces the default client. The fetcher never modifies c.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(f *HTTPFetcher) {
		f.client = c
	}
}

// WithTimeout sets the request timeout, overriding the client's own. Zero
// means no timeout.
func WithTimeout(d time.Duration) HTTPOption {
	return func(f *HTTPFetcher) {
		f.timeout = &d
	}
}

// NewHTTPFetcher creates a fetcher for the given endpoint.
func NewHTTPFetcher(endpoint string, opts ...HTTPOption) *HTTPFetcher {
	f := &HTTPFetcher{
		endpoint: endpoint,
		client:   &http.Client{},
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.timeout != nil {
		client := *f.client
		client.Timeout = *f.timeout
		f.client = &client
	}
	return f
}

// Endpoint returns the URL the fetcher requests.
func (f *HTTPFetcher) Endpoint() string {
	return f.endpoint
}

// Fetch issues the GET and returns the body. Non-2xx responses are errors.
func (f *HTTPFetcher) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %s", resp.Status)
	}

	return string(body), nil
}
