package fetch

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/cenk/backoff"
	"github.com/cockroachdb/errors"
	circuit "github.com/rubyist/circuitbreaker"
)

// BreakerFetcher wraps a Fetcher with per-host circuit breakers, so a dead
// canonical host or content root trips open instead of eating retries on
// every source that references it.
type BreakerFetcher struct {
	fetcher  Fetcher
	breakers map[string]*circuit.Breaker
	mu       sync.RWMutex
}

// NewBreakerFetcher creates a circuit breaker wrapper for a fetcher.
func NewBreakerFetcher(f Fetcher) *BreakerFetcher {
	return &BreakerFetcher{
		fetcher:  f,
		breakers: make(map[string]*circuit.Breaker),
	}
}

// getBreaker returns or creates a circuit breaker for the given host.
func (bf *BreakerFetcher) getBreaker(host string) *circuit.Breaker {
	bf.mu.RLock()
	breaker, exists := bf.breakers[host]
	bf.mu.RUnlock()

	if exists {
		return breaker
	}

	bf.mu.Lock()
	defer bf.mu.Unlock()

	// Double-check after acquiring write lock
	if breaker, exists := bf.breakers[host]; exists {
		return breaker
	}

	// Trips after 5 consecutive failures, reopens on an exponential schedule
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = 30 * time.Second
	expBackoff.MaxInterval = 5 * time.Minute
	expBackoff.Multiplier = 2.0
	expBackoff.Reset()

	opts := &circuit.Options{
		BackOff:    expBackoff,
		ShouldTrip: circuit.ThresholdTripFunc(5),
	}
	breaker = circuit.NewBreakerWithOptions(opts)

	bf.breakers[host] = breaker
	return breaker
}

// Fetch wraps the underlying fetcher's Fetch with circuit breaker logic.
func (bf *BreakerFetcher) Fetch(ctx context.Context, fetchURL string) (*Document, error) {
	host := hostOf(fetchURL)
	breaker := bf.getBreaker(host)

	if !breaker.Ready() {
		return nil, errors.Wrapf(ErrUpstreamDown, "circuit breaker open for host %s", host)
	}

	var doc *Document
	err := breaker.Call(func() error {
		var fetchErr error
		doc, fetchErr = bf.fetcher.Fetch(ctx, fetchURL)
		return fetchErr
	}, 0)

	if err != nil {
		return nil, err
	}

	return doc, nil
}

// BreakerStates returns the current state of circuit breakers, keyed by
// host (for health checks).
func (bf *BreakerFetcher) BreakerStates() map[string]string {
	bf.mu.RLock()
	defer bf.mu.RUnlock()

	states := make(map[string]string)
	for host, breaker := range bf.breakers {
		if breaker.Tripped() {
			states[host] = "open"
		} else {
			states[host] = "closed"
		}
	}
	return states
}

// hostOf extracts the host from a URL for circuit breaker grouping.
func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		// Fallback to simple truncation
		if len(rawURL) > 50 {
			return rawURL[:50]
		}
		return rawURL
	}
	return parsed.Host
}
