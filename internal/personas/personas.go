// Package personas provides the definition for the generic personas
// (actors) component.
package personas

import (
	"encoding/json"
	"path"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/litlfred/dakit/internal/core"
)

// Persona files live under input/actors/.
const dir = "actors"

func init() {
	core.Register(Definition{})
}

type Definition struct{}

func (Definition) Type() core.ComponentType {
	return core.Personas
}

func (Definition) FilePath(data any) (string, error) {
	id := core.ExtractID(data)
	if id == "" {
		// Fall back to a slug of the persona's name.
		if obj, ok := data.(map[string]any); ok {
			if name, _ := obj["name"].(string); name != "" {
				id = strings.ToLower(strings.ReplaceAll(name, " ", "-"))
			}
		}
	}
	if id == "" {
		return "", errors.New("persona has neither id nor name to derive a file path from")
	}
	return path.Join(dir, id+".json"), nil
}

func (Definition) Serialize(data any) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}

func (Definition) Parse(content []byte) (any, error) {
	var v any
	if err := json.Unmarshal(content, &v); err != nil {
		return nil, errors.Wrap(err, "parsing persona file")
	}
	return v, nil
}

func (Definition) Validate(data any) (errs, warns []string) {
	obj, ok := data.(map[string]any)
	if !ok {
		return []string{"persona must be a json object"}, nil
	}
	if name, _ := obj["name"].(string); name == "" {
		warns = append(warns, "persona has no name")
	}
	if _, ok := obj["description"]; !ok {
		warns = append(warns, "persona has no description")
	}
	return nil, warns
}
