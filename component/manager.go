// Package component manages the ordered source list for one component type
// and mediates between raw source references and resolved, usable data.
package component

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/litlfred/dakit/gateway"
	"github.com/litlfred/dakit/internal/core"
	"github.com/litlfred/dakit/resolve"
)

// Notifier receives the full source list after every successful mutation.
// The manifest aggregate implements it to re-serialize and persist the
// document; a failed notification rolls the mutation back.
type Notifier interface {
	ComponentChanged(ctx context.Context, t core.ComponentType, sources []core.ComponentSource) error
}

// Manager owns the ordered, index-addressable source list for exactly one
// component type. It applies no internal locking: callers follow a
// single-writer-per-component-per-session discipline.
type Manager struct {
	typ      core.ComponentType
	def      core.Definition
	repo     core.RepositoryContext
	resolver *resolve.Resolver
	gw       gateway.Gateway
	notifier Notifier
	logger   *zap.Logger
	author   string

	sources []core.ComponentSource
	byID    map[string]any
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger; default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithAuthor sets the addedBy provenance recorded on sources this manager
// creates.
func WithAuthor(author string) Option {
	return func(m *Manager) {
		m.author = author
	}
}

// New creates a manager for the given component type. The type must have a
// registered definition (blank-import the all package to register the nine
// standard types).
func New(t core.ComponentType, repo core.RepositoryContext, resolver *resolve.Resolver, gw gateway.Gateway, notifier Notifier, opts ...Option) (*Manager, error) {
	def, err := core.Lookup(t)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		typ:      t,
		def:      def,
		repo:     repo,
		resolver: resolver,
		gw:       gw,
		notifier: notifier,
		logger:   zap.NewNop(),
		byID:     make(map[string]any),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Type returns the component type this manager serves.
func (m *Manager) Type() core.ComponentType {
	return m.typ
}

// Sources returns a defensive copy of the current source list.
func (m *Manager) Sources() []core.ComponentSource {
	out := make([]core.ComponentSource, len(m.sources))
	copy(out, m.sources)
	return out
}

// InitializeSources bulk-replaces the source list without notifying the
// aggregate. Used only when loading an existing manifest.
func (m *Manager) InitializeSources(sources []core.ComponentSource) {
	m.sources = make([]core.ComponentSource, len(sources))
	copy(m.sources, sources)
}

// AddSource validates and appends a source, then synchronizes the manifest.
// An invalid source is rejected with no mutation.
func (m *Manager) AddSource(ctx context.Context, s core.ComponentSource) error {
	result := resolve.ValidateSource(s)
	if !result.Valid {
		return errors.Wrapf(core.ErrInvalidSource, "%s", strings.Join(result.Errors, "; "))
	}

	prev := m.sources
	m.sources = append(m.sources[:len(m.sources):len(m.sources)], s)

	if err := m.notifyChanged(ctx); err != nil {
		m.sources = prev
		return err
	}
	return nil
}

// UpdateSource merges a patch onto the source at index and synchronizes.
// An out-of-bounds index fails with the list unchanged.
func (m *Manager) UpdateSource(ctx context.Context, index int, patch core.SourcePatch) error {
	if index < 0 || index >= len(m.sources) {
		return errors.Wrapf(core.ErrIndexOutOfRange, "index %d, length %d", index, len(m.sources))
	}

	prev := m.sources[index]
	m.sources[index] = patch.Apply(prev)

	if err := m.notifyChanged(ctx); err != nil {
		m.sources[index] = prev
		return err
	}
	return nil
}

// RemoveSource deletes the source at index and synchronizes.
func (m *Manager) RemoveSource(ctx context.Context, index int) error {
	if index < 0 || index >= len(m.sources) {
		return errors.Wrapf(core.ErrIndexOutOfRange, "index %d, length %d", index, len(m.sources))
	}

	prev := m.sources
	next := make([]core.ComponentSource, 0, len(prev)-1)
	next = append(next, prev[:index]...)
	next = append(next, prev[index+1:]...)
	m.sources = next

	if err := m.notifyChanged(ctx); err != nil {
		m.sources = prev
		return err
	}
	return nil
}

func (m *Manager) notifyChanged(ctx context.Context) error {
	if m.notifier == nil {
		return nil
	}
	return m.notifier.ComponentChanged(ctx, m.typ, m.Sources())
}

// RetrieveAll resolves every source sequentially, in list order, with a
// fail-soft policy: an individual failure is logged and skipped, never
// aborting the remaining resolutions or raising to the caller. Resolved
// values carrying an id are cached locally by id.
func (m *Manager) RetrieveAll(ctx context.Context) []core.ResolvedSource {
	resolved := make([]core.ResolvedSource, 0, len(m.sources))

	for i, s := range m.sources {
		rs, err := m.resolver.Resolve(ctx, s, m.repo)
		if err != nil {
			m.logger.Warn("skipping unresolvable source",
				zap.String("component", string(m.typ)),
				zap.Int("index", i),
				zap.Error(err))
			continue
		}

		if id := core.ExtractID(rs.Data); id != "" {
			m.byID[id] = rs.Data
		}
		resolved = append(resolved, *rs)
	}

	return resolved
}

// RetrieveByID returns the resolved value carrying the given id, resolving
// all sources on a local-cache miss.
func (m *Manager) RetrieveByID(ctx context.Context, id string) (any, error) {
	if data, ok := m.byID[id]; ok {
		return data, nil
	}

	for _, rs := range m.RetrieveAll(ctx) {
		if core.ExtractID(rs.Data) == id {
			return rs.Data, nil
		}
	}
	return nil, errors.Wrapf(core.ErrNotFound, "%s %q", m.typ, id)
}

// SaveOptions selects the persistence strategy for Save.
type SaveOptions struct {
	// Path saves to this content-file path (relative to input/). Empty
	// means the component type's convention computes one from the data.
	Path string

	// Inline stores the value inside the manifest instead of a file.
	Inline bool

	// Message is provenance passed to the gateway on file writes.
	Message string

	// UpdateExisting controls whether an existing matching source is
	// updated in place rather than a new one appended. Nil means true.
	UpdateExisting *bool
}

func (o SaveOptions) updateExisting() bool {
	return o.UpdateExisting == nil || *o.UpdateExisting
}

// Save persists a component value: inline into the manifest, to an explicit
// file path, or to the type's conventional path.
func (m *Manager) Save(ctx context.Context, data any, opts SaveOptions) error {
	if opts.Inline {
		return m.saveInline(ctx, data, opts)
	}

	filePath := opts.Path
	if filePath == "" {
		p, err := m.def.FilePath(data)
		if err != nil {
			return errors.Wrapf(err, "computing file path for %s", m.typ)
		}
		filePath = p
	}
	return m.saveToFile(ctx, data, filePath, opts)
}

func (m *Manager) saveInline(ctx context.Context, data any, opts SaveOptions) error {
	if opts.updateExisting() {
		for i, s := range m.sources {
			if s.Data == nil {
				continue
			}
			now := time.Now()
			meta := core.SourceMetadata{SourceType: string(core.KindInline)}
			if s.Metadata != nil {
				meta = *s.Metadata
			}
			meta.LastValidated = &now
			return m.UpdateSource(ctx, i, core.SourcePatch{Data: data, Metadata: &meta})
		}
	}

	now := time.Now()
	return m.AddSource(ctx, core.ComponentSource{
		Data: data,
		Metadata: &core.SourceMetadata{
			AddedAt:    &now,
			AddedBy:    m.author,
			SourceType: string(core.KindInline),
		},
	})
}

func (m *Manager) saveToFile(ctx context.Context, data any, filePath string, opts SaveOptions) error {
	content, err := m.def.Serialize(data)
	if err != nil {
		return errors.Wrapf(err, "serializing %s value", m.typ)
	}

	target := path.Join("input", filePath)
	if err := m.gw.SaveFile(ctx, target, content, gateway.SaveMeta{Message: opts.Message, Author: m.author}); err != nil {
		return errors.Wrapf(err, "writing %s", target)
	}

	if err := m.recordFileSource(ctx, filePath, opts); err != nil {
		return err
	}

	if id := core.ExtractID(data); id != "" {
		m.byID[id] = data
	}
	return nil
}

// recordFileSource points a source at the written file: the existing source
// whose url equals the path is refreshed, otherwise a new relative-url
// source is appended.
func (m *Manager) recordFileSource(ctx context.Context, filePath string, opts SaveOptions) error {
	now := time.Now()

	if opts.updateExisting() {
		for i, s := range m.sources {
			if s.URL != filePath {
				continue
			}
			meta := core.SourceMetadata{SourceType: string(core.KindURLRelative)}
			if s.Metadata != nil {
				meta = *s.Metadata
			}
			meta.LastValidated = &now
			return m.UpdateSource(ctx, i, core.SourcePatch{Metadata: &meta})
		}
	}

	return m.AddSource(ctx, core.ComponentSource{
		URL: filePath,
		Metadata: &core.SourceMetadata{
			AddedAt:    &now,
			AddedBy:    m.author,
			SourceType: string(core.KindURLRelative),
		},
	})
}

// Validate applies the shared rules plus the component type's own rules to
// one resolved value.
func (m *Manager) Validate(data any) core.DataValidation {
	v := core.DataValidation{ID: core.ExtractID(data), Valid: true}

	if v.ID == "" {
		v.Warnings = append(v.Warnings, "value has no id field")
	}

	errs, warns := m.def.Validate(data)
	v.Errors = append(v.Errors, errs...)
	v.Warnings = append(v.Warnings, warns...)
	v.Valid = len(v.Errors) == 0
	return v
}

// ValidateAll resolves all sources and validates each resolved value,
// aggregating results with the same fail-soft policy as RetrieveAll.
func (m *Manager) ValidateAll(ctx context.Context) []core.DataValidation {
	resolved := m.RetrieveAll(ctx)
	out := make([]core.DataValidation, 0, len(resolved))
	for _, rs := range resolved {
		out = append(out, m.Validate(rs.Data))
	}
	return out
}
