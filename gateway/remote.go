package gateway

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/litlfred/dakit/fetch"
	"github.com/litlfred/dakit/internal/core"
)

// Remote is a read-only gateway over a published repository content root.
// Loads fetch the raw file URL for the pinned owner/repo/branch; writes
// fail with ErrReadOnly. The surrounding system pairs it with a Memory
// buffer for staged edits.
type Remote struct {
	repo         core.RepositoryContext
	fetcher      fetch.Fetcher
	urls         ContentURLs
	manifestPath string
}

// RemoteOption configures a Remote gateway.
type RemoteOption func(*Remote)

// WithFetcher sets the fetcher used for raw-content loads.
func WithFetcher(f fetch.Fetcher) RemoteOption {
	return func(r *Remote) {
		r.fetcher = f
	}
}

// WithContentURLs sets the raw-URL builder (e.g. for GitHub Enterprise or a
// test server).
func WithContentURLs(u ContentURLs) RemoteOption {
	return func(r *Remote) {
		r.urls = u
	}
}

// WithManifestPath overrides the manifest location, default dak.json.
func WithManifestPath(path string) RemoteOption {
	return func(r *Remote) {
		r.manifestPath = path
	}
}

// NewRemote creates a read-only gateway for the given repository context.
func NewRemote(repo core.RepositoryContext, opts ...RemoteOption) *Remote {
	r := &Remote{
		repo:         repo,
		urls:         ContentURLs{},
		manifestPath: ManifestFile,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.fetcher == nil {
		r.fetcher = fetch.NewBreakerFetcher(fetch.NewHTTPFetcher())
	}
	return r
}

func (r *Remote) LoadManifest(ctx context.Context) ([]byte, error) {
	return r.LoadFile(ctx, r.manifestPath)
}

func (r *Remote) LoadFile(ctx context.Context, path string) ([]byte, error) {
	doc, err := r.fetcher.Fetch(ctx, r.urls.Raw(r.repo, path))
	if err != nil {
		if errors.Is(err, fetch.ErrNotFound) {
			return nil, errors.Wrapf(ErrMissing, "%s", path)
		}
		return nil, err
	}
	return doc.Body, nil
}

func (r *Remote) SaveManifest(ctx context.Context, content []byte) error {
	return errors.Wrap(ErrReadOnly, "save manifest")
}

func (r *Remote) SaveFile(ctx context.Context, path string, content []byte, meta SaveMeta) error {
	return errors.Wrapf(ErrReadOnly, "save %s", path)
}

func (r *Remote) RemoveFile(ctx context.Context, path string) error {
	return errors.Wrapf(ErrReadOnly, "remove %s", path)
}
