// Package feed fetches the inventory feed over HTTP.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// MaxFeedBytes caps the feed body.
	MaxFeedBytes = 32 << 20

	defaultMaxRetries = 3
	defaultBaseDelay  = 500 * time.Millisecond
)

// HTTPFeed implements services.FeedSource against a static JSON URL.
// Network errors, 429 and 5xx responses are retried with exponential backoff.
type HTTPFeed struct {
	url        string
	client     *http.Client
	maxRetries uint64
	baseDelay  time.Duration
}

// Option configures an HTTPFeed.
type Option func(*HTTPFeed)

// WithRetries overrides the retry budget and the first backoff delay.
func WithRetries(maxRetries uint64, baseDelay time.Duration) Option {
	return func(f *HTTPFeed) {
		f.maxRetries = maxRetries
		f.baseDelay = baseDelay
	}
}

// WithHTTPClient replaces the default instrumented client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *HTTPFeed) { f.client = c }
}

// NewHTTPFeed returns a feed reading url. timeout bounds each attempt.
func NewHTTPFeed(url string, timeout time.Duration, opts ...Option) *HTTPFeed {
	f := &HTTPFeed{
		url: url,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads the feed body.
func (f *HTTPFeed) Fetch(ctx context.Context) ([]byte, error) {
	var body []byte
	backoff := retry.WithMaxRetries(f.maxRetries, retry.NewExponential(f.baseDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		b, err := f.fetchOnce(ctx)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", f.url, err)
	}
	return body, nil
}

func (f *HTTPFeed) fetchOnce(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, retry.RetryableError(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode >= http.StatusInternalServerError:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, retry.RetryableError(fmt.Errorf("feed responded %s", resp.Status))
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("feed responded %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxFeedBytes+1))
	if err != nil {
		return nil, retry.RetryableError(fmt.Errorf("read body: %w", err))
	}
	if len(body) > MaxFeedBytes {
		return nil, fmt.Errorf("feed larger than %d bytes", MaxFeedBytes)
	}
	return body, nil
}
