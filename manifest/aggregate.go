// Package manifest owns DAK-level metadata and one component manager per
// component type, keeping a single exportable document synchronized with
// every mutation.
package manifest

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/litlfred/dakit/component"
	"github.com/litlfred/dakit/gateway"
	"github.com/litlfred/dakit/internal/core"
	"github.com/litlfred/dakit/resolve"
)

// Aggregate is the editing session's view of one DAK: metadata plus the
// nine component managers. Every successful mutation re-serializes the
// whole manifest and stores it through the gateway.
type Aggregate struct {
	repo     core.RepositoryContext
	gw       gateway.Gateway
	resolver *resolve.Resolver
	logger   *zap.Logger
	author   string

	meta     core.Metadata
	managers map[core.ComponentType]*component.Manager
}

// Option configures an Aggregate.
type Option func(*Aggregate)

// WithLogger sets the logger; default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Aggregate) {
		a.logger = l
	}
}

// WithResolver sets the source resolver. The default resolver routes
// relative urls through the aggregate's gateway.
func WithResolver(r *resolve.Resolver) Option {
	return func(a *Aggregate) {
		a.resolver = r
	}
}

// WithAuthor sets the addedBy provenance recorded on sources created in
// this session.
func WithAuthor(author string) Option {
	return func(a *Aggregate) {
		a.author = author
	}
}

// New creates an aggregate with default metadata synthesized from the
// repository context: id owner.repo, draft status, CC-BY-4.0 license.
func New(repo core.RepositoryContext, gw gateway.Gateway, opts ...Option) (*Aggregate, error) {
	return build(repo, gw, nil, opts)
}

// Load constructs an aggregate from the gateway's stored manifest. A
// missing manifest yields the same default document New synthesizes.
func Load(ctx context.Context, repo core.RepositoryContext, gw gateway.Gateway, opts ...Option) (*Aggregate, error) {
	content, err := gw.LoadManifest(ctx)
	if err != nil {
		if errors.Is(err, gateway.ErrMissing) {
			return build(repo, gw, nil, opts)
		}
		return nil, errors.Wrap(err, "loading manifest")
	}

	var doc core.Manifest
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}
	return build(repo, gw, &doc, opts)
}

func build(repo core.RepositoryContext, gw gateway.Gateway, doc *core.Manifest, opts []Option) (*Aggregate, error) {
	a := &Aggregate{
		repo:     repo,
		gw:       gw,
		logger:   zap.NewNop(),
		managers: make(map[core.ComponentType]*component.Manager),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.resolver == nil {
		a.resolver = resolve.New(resolve.WithGateway(gw), resolve.WithLogger(a.logger))
	}

	if doc != nil {
		a.meta = doc.Metadata
	} else {
		a.meta = defaultMetadata(repo)
	}

	for _, t := range core.AllTypes() {
		mgr, err := component.New(t, repo, a.resolver, gw, a,
			component.WithLogger(a.logger),
			component.WithAuthor(a.author))
		if err != nil {
			return nil, err
		}
		if doc != nil {
			if sources := doc.Sources(t); len(sources) > 0 {
				mgr.InitializeSources(sources)
			}
		}
		a.managers[t] = mgr
	}

	return a, nil
}

func defaultMetadata(repo core.RepositoryContext) core.Metadata {
	return core.Metadata{
		ID:      repo.Owner + "." + repo.Repo,
		Name:    repo.Repo,
		Status:  "draft",
		License: "CC-BY-4.0",
	}
}

// Repository returns the immutable repository context of this session.
func (a *Aggregate) Repository() core.RepositoryContext {
	return a.repo
}

// Component returns the manager for a component type. The nine managers
// exist from construction; an unknown type is a defensive failure only.
func (a *Aggregate) Component(t core.ComponentType) (*component.Manager, error) {
	mgr, ok := a.managers[t]
	if !ok {
		return nil, errors.Wrapf(core.ErrComponentNotFound, "%s", t)
	}
	return mgr, nil
}

// Metadata returns a copy of the DAK metadata.
func (a *Aggregate) Metadata() core.Metadata {
	return a.meta
}

// UpdateMetadata merges the patch onto the metadata and persists
// immediately. The previous metadata is restored if the save fails.
func (a *Aggregate) UpdateMetadata(ctx context.Context, patch core.MetadataPatch) error {
	prev := a.meta
	a.meta = patch.Apply(prev)

	if err := a.Save(ctx); err != nil {
		a.meta = prev
		return err
	}
	return nil
}

// Document builds the full manifest: base metadata plus, for each component
// type holding at least one source, the property populated with the current
// list in order. Types with zero sources are omitted entirely.
func (a *Aggregate) Document() *core.Manifest {
	doc := &core.Manifest{
		ResourceType: "DAK",
		Metadata:     a.meta,
	}
	for t, mgr := range a.managers {
		if sources := mgr.Sources(); len(sources) > 0 {
			doc.SetSources(t, sources)
		}
	}
	return doc
}

// MarshalJSON serializes the current document.
func (a *Aggregate) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Document())
}

// Save serializes the current document and stores it through the gateway.
func (a *Aggregate) Save(ctx context.Context) error {
	content, err := json.MarshalIndent(a.Document(), "", "  ")
	if err != nil {
		return errors.Wrap(err, "serializing manifest")
	}
	if err := a.gw.SaveManifest(ctx, content); err != nil {
		return errors.Wrap(err, "saving manifest")
	}
	return nil
}

// ComponentChanged implements component.Notifier: every component mutation
// triggers a full manifest re-write, not an incremental patch.
func (a *Aggregate) ComponentChanged(ctx context.Context, t core.ComponentType, sources []core.ComponentSource) error {
	a.logger.Debug("component sources changed",
		zap.String("component", string(t)),
		zap.Int("sources", len(sources)))
	return a.Save(ctx)
}
