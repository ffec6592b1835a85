// Package resolve turns polymorphic component source references into
// concrete data: inline values verbatim, canonical IRIs and absolute URLs
// by fetching, relative paths through the persistence gateway's input/
// tree. Results are cached with a TTL, and concurrent resolutions of the
// same key share one underlying fetch.
package resolve

import (
	"context"
	"encoding/json"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/litlfred/dakit/fetch"
	"github.com/litlfred/dakit/gateway"
	"github.com/litlfred/dakit/internal/core"
)

// DefaultTTL is how long a resolution result is served from cache.
const DefaultTTL = 5 * time.Minute

// Resolver resolves component sources against a repository content root.
type Resolver struct {
	fetcher fetch.Fetcher
	gw      gateway.Gateway
	cache   *ttlCache
	group   singleflight.Group
	logger  *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTTL sets the cache time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(r *Resolver) {
		r.cache.ttl = ttl
	}
}

// WithFetcher sets the fetcher used for canonical and absolute-url sources.
func WithFetcher(f fetch.Fetcher) Option {
	return func(r *Resolver) {
		r.fetcher = f
	}
}

// WithGateway enables relative-url resolution through the given gateway's
// load-content-file operation. Without a gateway, relative sources fail
// with ErrRelativeUnsupported.
func WithGateway(gw gateway.Gateway) Option {
	return func(r *Resolver) {
		r.gw = gw
	}
}

// WithLogger sets the logger; default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		r.logger = l
	}
}

// New creates a Resolver with the given options.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		cache:  newTTLCache(DefaultTTL),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.fetcher == nil {
		r.fetcher = fetch.NewBreakerFetcher(fetch.NewHTTPFetcher())
	}
	return r
}

// DetermineKind infers the reference kind of a source. Priority when more
// than one field is populated: data, then url (absolute or relative by URL
// parseability), then canonical.
func DetermineKind(s core.ComponentSource) (core.SourceKind, error) {
	switch {
	case s.Data != nil:
		return core.KindInline, nil
	case s.URL != "":
		if u, err := url.Parse(s.URL); err == nil && u.IsAbs() {
			return core.KindURLAbsolute, nil
		}
		return core.KindURLRelative, nil
	case s.Canonical != "":
		return core.KindCanonical, nil
	}
	return "", errors.WithStack(core.ErrSourceIndeterminate)
}

// CacheKey computes the composite cache identity of a source within a
// repository context: kind, owner/repo/branch, and a kind-specific token.
func CacheKey(s core.ComponentSource, repo core.RepositoryContext) (string, error) {
	kind, err := DetermineKind(s)
	if err != nil {
		return "", err
	}

	var token string
	switch kind {
	case core.KindInline:
		buf, err := json.Marshal(s.Data)
		if err != nil {
			return "", errors.Wrap(err, "serializing inline data for cache key")
		}
		token = string(buf)
	case core.KindCanonical:
		token = s.Canonical
	default:
		token = s.URL
	}

	return string(kind) + "|" + repo.Slug() + "|" + token, nil
}

// Resolve produces a ResolvedSource for one component source. Cached
// results within the TTL are returned with MethodCache; otherwise the kind's
// strategy runs and the result is written into the shared cache. Concurrent
// resolutions of the same key await a single underlying fetch.
func (r *Resolver) Resolve(ctx context.Context, s core.ComponentSource, repo core.RepositoryContext) (*core.ResolvedSource, error) {
	kind, err := DetermineKind(s)
	if err != nil {
		return nil, err
	}

	key, err := CacheKey(s, repo)
	if err != nil {
		return nil, err
	}

	if data, ok := r.cache.get(key); ok {
		r.logger.Debug("resolution cache hit", zap.String("key", key))
		return &core.ResolvedSource{
			Data:       data,
			Source:     s,
			Method:     core.MethodCache,
			ResolvedAt: time.Now(),
		}, nil
	}

	data, err, _ := r.group.Do(key, func() (any, error) {
		data, err := r.dispatch(ctx, kind, s)
		if err != nil {
			return nil, err
		}
		r.cache.set(key, data)
		return data, nil
	})
	if err != nil {
		return nil, err
	}

	return &core.ResolvedSource{
		Data:       data,
		Source:     s,
		Method:     kind.Method(),
		ResolvedAt: time.Now(),
	}, nil
}

func (r *Resolver) dispatch(ctx context.Context, kind core.SourceKind, s core.ComponentSource) (any, error) {
	switch kind {
	case core.KindInline:
		return s.Data, nil
	case core.KindCanonical:
		return r.fetchDocument(ctx, s.Canonical)
	case core.KindURLAbsolute:
		return r.fetchDocument(ctx, s.URL)
	case core.KindURLRelative:
		return r.loadRelative(ctx, s.URL)
	}
	return nil, errors.Newf("unhandled source kind %q", kind)
}

// fetchDocument fetches a canonical or absolute-url reference. JSON bodies
// are decoded; everything else is returned as raw text.
func (r *Resolver) fetchDocument(ctx context.Context, rawURL string) (any, error) {
	doc, err := r.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, errors.Wrapf(errors.Mark(err, core.ErrFetchFailed), "resolving %s", rawURL)
	}
	return decodeBody(doc.Body, strings.Contains(doc.ContentType, "json"))
}

// loadRelative loads input/<url> through the gateway's content-file
// operation.
func (r *Resolver) loadRelative(ctx context.Context, relURL string) (any, error) {
	if r.gw == nil {
		return nil, errors.WithStack(core.ErrRelativeUnsupported)
	}

	target := path.Join("input", relURL)
	content, err := r.gw.LoadFile(ctx, target)
	if err != nil {
		return nil, errors.Wrapf(errors.Mark(err, core.ErrFetchFailed), "loading %s", target)
	}
	return decodeBody(content, strings.HasSuffix(relURL, ".json"))
}

func decodeBody(body []byte, isJSON bool) (any, error) {
	if !isJSON {
		return string(body), nil
	}
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, errors.Wrap(errors.Mark(err, core.ErrParseFailed), "decoding json body")
	}
	return data, nil
}

// ClearCache removes all cached resolution results.
func (r *Resolver) ClearCache() {
	r.cache.clear()
}

// ClearCacheForSource removes the cached result for one source, if any.
func (r *Resolver) ClearCacheForSource(s core.ComponentSource, repo core.RepositoryContext) error {
	key, err := CacheKey(s, repo)
	if err != nil {
		return err
	}
	r.cache.delete(key)
	return nil
}
