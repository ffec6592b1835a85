// Package userscenarios provides the definition for the user scenarios
// (narrative walkthrough) component.
package userscenarios

import (
	"encoding/json"
	"path"

	"github.com/cockroachdb/errors"

	"github.com/litlfred/dakit/internal/core"
)

// Scenario files live under input/scenarios/.
const dir = "scenarios"

func init() {
	core.Register(Definition{})
}

type Definition struct{}

func (Definition) Type() core.ComponentType {
	return core.UserScenarios
}

func (Definition) FilePath(data any) (string, error) {
	id := core.ExtractID(data)
	if id == "" {
		return "", errors.New("scenario has no id to derive a file path from")
	}
	return path.Join(dir, id+".json"), nil
}

func (Definition) Serialize(data any) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}

func (Definition) Parse(content []byte) (any, error) {
	var v any
	if err := json.Unmarshal(content, &v); err != nil {
		return nil, errors.Wrap(err, "parsing scenario file")
	}
	return v, nil
}

func (Definition) Validate(data any) (errs, warns []string) {
	obj, ok := data.(map[string]any)
	if !ok {
		return []string{"scenario must be a json object"}, nil
	}
	if steps, ok := obj["steps"].([]any); !ok || len(steps) == 0 {
		warns = append(warns, "scenario has no steps")
	}
	if _, ok := obj["personas"]; !ok {
		warns = append(warns, "scenario names no personas")
	}
	return nil, warns
}
