// Package dakit reads, edits, and persists WHO SMART Guidelines Digital
// Adaptation Kits (DAKs): structured content packages organized into nine
// standardized components.
//
// Each component's content may live in three places: embedded inline in the
// manifest, referenced by a path relative to the content root's input/
// subtree, or referenced by a canonical IRI. The resolve package turns any
// of these into concrete data; the component package manages each ordered
// source list; the manifest package keeps the single aggregate document
// synchronized with every mutation.
//
// Basic usage:
//
//	import (
//		"context"
//		"github.com/litlfred/dakit"
//		"github.com/litlfred/dakit/gateway"
//		_ "github.com/litlfred/dakit/all"
//	)
//
//	gw := gateway.NewMemory()
//	dak, err := dakit.New(dakit.RepositoryContext{Owner: "who", Repo: "anc-dak"}, gw)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	personas, _ := dak.Component(dakit.Personas)
//	err = personas.AddSource(context.Background(), dakit.ComponentSource{URL: "actors/clinician.json"})
package dakit

import (
	"github.com/litlfred/dakit/component"
	"github.com/litlfred/dakit/internal/core"
	"github.com/litlfred/dakit/manifest"
)

// Re-export types from internal/core
type (
	// ComponentType identifies one of the nine standardized DAK components.
	ComponentType = core.ComponentType

	// ComponentSource is a polymorphic reference to component content.
	ComponentSource = core.ComponentSource

	// SourceMetadata is provenance carried alongside a component source.
	SourceMetadata = core.SourceMetadata

	// SourcePatch is an explicit partial update of a ComponentSource.
	SourcePatch = core.SourcePatch

	// ResolvedSource is the concrete result of resolving one source.
	ResolvedSource = core.ResolvedSource

	// SourceKind is the inferred reference kind of a ComponentSource.
	SourceKind = core.SourceKind

	// Method records how a ResolvedSource was produced.
	Method = core.Method

	// RepositoryContext identifies the remote content root.
	RepositoryContext = core.RepositoryContext

	// Metadata holds the DAK-level descriptive fields of the manifest.
	Metadata = core.Metadata

	// MetadataPatch is an explicit partial update of the DAK metadata.
	MetadataPatch = core.MetadataPatch

	// Manifest is the exportable aggregate document.
	Manifest = core.Manifest

	// ValidationResult reports I/O-free validation of a single source.
	ValidationResult = core.ValidationResult
)

// Re-export the component types
const (
	HealthInterventions = core.HealthInterventions
	Personas            = core.Personas
	UserScenarios       = core.UserScenarios
	BusinessProcesses   = core.BusinessProcesses
	DataElements        = core.DataElements
	DecisionLogic       = core.DecisionLogic
	Indicators          = core.Indicators
	Requirements        = core.Requirements
	TestScenarios       = core.TestScenarios
)

// Re-export the source kinds and resolution methods
const (
	KindInline      = core.KindInline
	KindURLAbsolute = core.KindURLAbsolute
	KindURLRelative = core.KindURLRelative
	KindCanonical   = core.KindCanonical

	MethodInline      = core.MethodInline
	MethodURLAbsolute = core.MethodURLAbsolute
	MethodURLRelative = core.MethodURLRelative
	MethodCanonical   = core.MethodCanonical
	MethodCache       = core.MethodCache
)

// Re-export errors
var (
	ErrSourceIndeterminate = core.ErrSourceIndeterminate
	ErrFetchFailed         = core.ErrFetchFailed
	ErrParseFailed         = core.ErrParseFailed
	ErrRelativeUnsupported = core.ErrRelativeUnsupported
	ErrIndexOutOfRange     = core.ErrIndexOutOfRange
	ErrInvalidSource       = core.ErrInvalidSource
	ErrComponentNotFound   = core.ErrComponentNotFound
	ErrNotFound            = core.ErrNotFound
)

// Aggregate is the editing session's view of one DAK.
type Aggregate = manifest.Aggregate

// Option configures an Aggregate.
type Option = manifest.Option

// Manager owns the ordered source list for one component type.
type Manager = component.Manager

// SaveOptions selects the persistence strategy for Manager.Save.
type SaveOptions = component.SaveOptions

// New creates an aggregate with default metadata synthesized from the
// repository context. Component types must be registered first; blank-import
// the all package for the nine standard types.
var New = manifest.New

// Load constructs an aggregate from the gateway's stored manifest.
var Load = manifest.Load

// WithLogger, WithResolver, and WithAuthor configure an Aggregate.
var (
	WithLogger   = manifest.WithLogger
	WithResolver = manifest.WithResolver
	WithAuthor   = manifest.WithAuthor
)

// AllTypes returns the nine component types in manifest order.
func AllTypes() []ComponentType {
	return core.AllTypes()
}

// RegisteredTypes returns all registered component types, sorted.
// Note: component packages must be imported to be registered.
func RegisteredTypes() []ComponentType {
	return core.RegisteredTypes()
}
