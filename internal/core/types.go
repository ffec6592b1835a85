// Package core provides the shared data model and the component-type
// definition registry.
package core

import "time"

// ComponentType identifies one of the nine standardized DAK components.
type ComponentType string

const (
	HealthInterventions ComponentType = "health-interventions"
	Personas            ComponentType = "personas"
	UserScenarios       ComponentType = "user-scenarios"
	BusinessProcesses   ComponentType = "business-processes"
	DataElements        ComponentType = "data-elements"
	DecisionLogic       ComponentType = "decision-logic"
	Indicators          ComponentType = "indicators"
	Requirements        ComponentType = "requirements"
	TestScenarios       ComponentType = "test-scenarios"
)

// AllTypes returns the nine component types in manifest order.
func AllTypes() []ComponentType {
	return []ComponentType{
		HealthInterventions,
		Personas,
		UserScenarios,
		BusinessProcesses,
		DataElements,
		DecisionLogic,
		Indicators,
		Requirements,
		TestScenarios,
	}
}

// Property returns the manifest property name for the component type.
func (t ComponentType) Property() string {
	switch t {
	case HealthInterventions:
		return "healthInterventions"
	case Personas:
		return "personas"
	case UserScenarios:
		return "userScenarios"
	case BusinessProcesses:
		return "businessProcesses"
	case DataElements:
		return "dataElements"
	case DecisionLogic:
		return "decisionLogic"
	case Indicators:
		return "indicators"
	case Requirements:
		return "requirements"
	case TestScenarios:
		return "testScenarios"
	}
	return ""
}

// SourceKind is the inferred reference kind of a ComponentSource.
type SourceKind string

const (
	KindInline      SourceKind = "inline"
	KindURLAbsolute SourceKind = "url-absolute"
	KindURLRelative SourceKind = "url-relative"
	KindCanonical   SourceKind = "canonical"
)

// Method records how a ResolvedSource was produced. It matches the source
// kind for fresh resolutions, or MethodCache for a cache hit.
type Method string

const (
	MethodInline      = Method(KindInline)
	MethodURLAbsolute = Method(KindURLAbsolute)
	MethodURLRelative = Method(KindURLRelative)
	MethodCanonical   = Method(KindCanonical)
	MethodCache       = Method("cache")
)

// Method returns the resolution method corresponding to the kind.
func (k SourceKind) Method() Method {
	return Method(k)
}

// RepositoryContext identifies the remote content root used for
// relative-path resolution. Immutable for the lifetime of an Aggregate.
type RepositoryContext struct {
	Owner  string
	Repo   string
	Branch string
}

// Slug returns "owner/repo/branch" with the branch defaulting to "main".
func (r RepositoryContext) Slug() string {
	branch := r.Branch
	if branch == "" {
		branch = "main"
	}
	return r.Owner + "/" + r.Repo + "/" + branch
}

// SourceMetadata is provenance carried alongside a component source.
type SourceMetadata struct {
	AddedAt       *time.Time `json:"addedAt,omitempty"`
	AddedBy       string     `json:"addedBy,omitempty"`
	LastValidated *time.Time `json:"lastValidated,omitempty"`
	SourceType    string     `json:"sourceType,omitempty"`
}

// ComponentSource is a polymorphic reference to component content. At least
// one of Canonical, URL, or Data must be populated; when more than one is,
// Data wins over URL, which wins over Canonical.
type ComponentSource struct {
	// Canonical is an IRI to a published external resource.
	Canonical string `json:"canonical,omitempty"`

	// URL is absolute if it parses as one, otherwise a path relative to
	// the content root's input/ subtree.
	URL string `json:"url,omitempty"`

	// Data is an inline value.
	Data any `json:"data,omitempty"`

	Metadata *SourceMetadata `json:"metadata,omitempty"`
}

// ResolvedSource is the concrete result of resolving one ComponentSource.
type ResolvedSource struct {
	Data       any
	Source     ComponentSource
	Method     Method
	ResolvedAt time.Time
}

// Metadata holds the DAK-level descriptive fields of the manifest.
type Metadata struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name,omitempty"`
	Title          string `json:"title,omitempty"`
	Description    string `json:"description,omitempty"`
	Version        string `json:"version,omitempty"`
	Status         string `json:"status,omitempty"`
	PublicationURL string `json:"publicationUrl,omitempty"`
	License        string `json:"license,omitempty"`
	CopyrightYear  string `json:"copyrightYear,omitempty"`
	Publisher      string `json:"publisher,omitempty"`
}

// Manifest is the exportable aggregate document. Component arrays with zero
// sources are omitted entirely rather than emitted empty.
type Manifest struct {
	ResourceType string `json:"resourceType"`
	Metadata

	HealthInterventions []ComponentSource `json:"healthInterventions,omitempty"`
	Personas            []ComponentSource `json:"personas,omitempty"`
	UserScenarios       []ComponentSource `json:"userScenarios,omitempty"`
	BusinessProcesses   []ComponentSource `json:"businessProcesses,omitempty"`
	DataElements        []ComponentSource `json:"dataElements,omitempty"`
	DecisionLogic       []ComponentSource `json:"decisionLogic,omitempty"`
	Indicators          []ComponentSource `json:"indicators,omitempty"`
	Requirements        []ComponentSource `json:"requirements,omitempty"`
	TestScenarios       []ComponentSource `json:"testScenarios,omitempty"`
}

// Sources returns the component array for the given type.
func (m *Manifest) Sources(t ComponentType) []ComponentSource {
	switch t {
	case HealthInterventions:
		return m.HealthInterventions
	case Personas:
		return m.Personas
	case UserScenarios:
		return m.UserScenarios
	case BusinessProcesses:
		return m.BusinessProcesses
	case DataElements:
		return m.DataElements
	case DecisionLogic:
		return m.DecisionLogic
	case Indicators:
		return m.Indicators
	case Requirements:
		return m.Requirements
	case TestScenarios:
		return m.TestScenarios
	}
	return nil
}

// SetSources replaces the component array for the given type.
func (m *Manifest) SetSources(t ComponentType, sources []ComponentSource) {
	switch t {
	case HealthInterventions:
		m.HealthInterventions = sources
	case Personas:
		m.Personas = sources
	case UserScenarios:
		m.UserScenarios = sources
	case BusinessProcesses:
		m.BusinessProcesses = sources
	case DataElements:
		m.DataElements = sources
	case DecisionLogic:
		m.DecisionLogic = sources
	case Indicators:
		m.Indicators = sources
	case Requirements:
		m.Requirements = sources
	case TestScenarios:
		m.TestScenarios = sources
	}
}

// ExtractID returns the "id" field of a resolved value, or "" if the value
// carries none.
func ExtractID(data any) string {
	obj, ok := data.(map[string]any)
	if !ok {
		return ""
	}
	id, _ := obj["id"].(string)
	return id
}

// ValidationResult reports I/O-free validation of a single source.
type ValidationResult struct {
	Valid    bool
	Kind     SourceKind
	Errors   []string
	Warnings []string
}

// DataValidation aggregates validation of one resolved value.
type DataValidation struct {
	ID       string
	Valid    bool
	Errors   []string
	Warnings []string
}
