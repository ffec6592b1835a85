package core

import (
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
)

// Definition is the per-component-type behavior: where files for the type
// live under input/, how values serialize to and parse from files, and any
// type-specific validation beyond the shared rules.
type Definition interface {
	// Type returns the component type this definition serves.
	Type() ComponentType

	// FilePath computes the content-file path (relative to input/) for a
	// value being saved without an explicit path.
	FilePath(data any) (string, error)

	// Serialize renders a value into its content-file representation.
	Serialize(data any) ([]byte, error)

	// Parse decodes a content-file representation back into a value.
	Parse(content []byte) (any, error)

	// Validate applies type-specific rules. Shared rules (presence of an
	// id) are applied by the component manager, not here.
	Validate(data any) (errs, warns []string)
}

var (
	definitions = make(map[ComponentType]Definition)
	mu          sync.RWMutex
)

// Register adds a component-type definition to the global registry. Each of
// the nine component packages calls this from init().
func Register(def Definition) {
	mu.Lock()
	defer mu.Unlock()
	definitions[def.Type()] = def
}

// Lookup returns the definition for a component type.
func Lookup(t ComponentType) (Definition, error) {
	mu.RLock()
	def, ok := definitions[t]
	mu.RUnlock()

	if !ok {
		return nil, errors.Wrapf(ErrComponentNotFound, "%s", t)
	}
	return def, nil
}

// RegisteredTypes returns all registered component types, sorted.
// Note: component packages must be imported to be registered.
func RegisteredTypes() []ComponentType {
	mu.RLock()
	defer mu.RUnlock()

	types := make([]ComponentType, 0, len(definitions))
	for t := range definitions {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
