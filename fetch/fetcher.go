// Package fetch provides document downloading with retry, circuit breaking,
// and DNS caching for canonical and absolute-url source resolution.
package fetch

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/dnscache"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrRateLimited  = errors.New("rate limited by content host")
	ErrUpstreamDown = errors.New("content host unavailable")
)

// Documents referenced by canonical IRIs are FHIR resources or similar
// structured content; anything larger than this is not a component source.
const maxDocumentSize = 16 << 20 // 16 MiB

// Document is the response from fetching a referenced resource.
type Document struct {
	Body        []byte
	ContentType string
	ETag        string
}

// Fetcher is the interface consumed by the resolver and the remote gateway.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Document, error)
}

// HTTPFetcher downloads referenced documents over HTTP(S).
type HTTPFetcher struct {
	client     *http.Client
	userAgent  string
	maxRetries int
	baseDelay  time.Duration
	authFn     func(url string) (headerName, headerValue string)
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *HTTPFetcher) {
		f.client = c
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) {
		f.userAgent = ua
	}
}

// WithMaxRetries sets the maximum retry attempts.
func WithMaxRetries(n int) Option {
	return func(f *HTTPFetcher) {
		f.maxRetries = n
	}
}

// WithBaseDelay sets the base delay for exponential backoff.
func WithBaseDelay(d time.Duration) Option {
	return func(f *HTTPFetcher) {
		f.baseDelay = d
	}
}

// WithAuthFunc sets a function that returns auth headers for a given URL.
// Return empty strings to skip authentication for that URL.
func WithAuthFunc(fn func(url string) (headerName, headerValue string)) Option {
	return func(f *HTTPFetcher) {
		f.authFn = fn
	}
}

// NewHTTPFetcher creates a new HTTPFetcher with the given options.
func NewHTTPFetcher(opts ...Option) *HTTPFetcher {
	// DNS cache with 5 minute refresh interval
	resolver := &dnscache.Resolver{}
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			resolver.Refresh(true)
		}
	}()

	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	f := &HTTPFetcher{
		client: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
					host, port, err := net.SplitHostPort(addr)
					if err != nil {
						return nil, err
					}
					ips, err := resolver.LookupHost(ctx, host)
					if err != nil {
						return nil, err
					}
					for _, ip := range ips {
						conn, err := dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
						if err == nil {
							return conn, nil
						}
					}
					return nil, fmt.Errorf("failed to dial any resolved IP")
				},
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		userAgent:  "dakit/1.0",
		maxRetries: 3,
		baseDelay:  500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads the document at the given URL, retrying transient
// upstream failures with exponential backoff.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*Document, error) {
	var lastErr error

	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff with 10% jitter to prevent thundering herd
			delay := f.baseDelay * time.Duration(math.Pow(2, float64(attempt-1)))
			jitter := time.Duration(float64(delay) * (rand.Float64() * 0.1))
			delay += jitter

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		doc, err := f.doFetch(ctx, url)
		if err == nil {
			return doc, nil
		}

		lastErr = err

		// Don't retry on not found
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}

		// Retry on rate limit and server errors
		if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrUpstreamDown) {
			continue
		}

		return nil, err
	}

	return nil, lastErr
}

func (f *HTTPFetcher) doFetch(ctx context.Context, url string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json, */*")

	if f.authFn != nil {
		if name, value := f.authFn(url); name != "" && value != "" {
			req.Header.Set(name, value)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetching document")
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
		if err != nil {
			return nil, errors.Wrap(err, "reading document body")
		}
		return &Document{
			Body:        body,
			ContentType: resp.Header.Get("Content-Type"),
			ETag:        resp.Header.Get("ETag"),
		}, nil

	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.Wrapf(ErrNotFound, "%s", url)

	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, errors.Wrapf(ErrRateLimited, "%s", url)

	case resp.StatusCode >= 500:
		return nil, errors.Wrapf(ErrUpstreamDown, "%s: status %d", url, resp.StatusCode)

	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, errors.Newf("unexpected status %d fetching %s: %s", resp.StatusCode, url, string(body))
	}
}
