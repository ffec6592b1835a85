// Package healthinterventions provides the definition for the health
// interventions and recommendations component.
package healthinterventions

import (
	"encoding/json"
	"path"

	"github.com/cockroachdb/errors"

	"github.com/litlfred/dakit/internal/core"
)

// Intervention files live under input/interventions/.
const dir = "interventions"

func init() {
	core.Register(Definition{})
}

type Definition struct{}

func (Definition) Type() core.ComponentType {
	return core.HealthInterventions
}

func (Definition) FilePath(data any) (string, error) {
	id := core.ExtractID(data)
	if id == "" {
		return "", errors.New("intervention has no id to derive a file path from")
	}
	return path.Join(dir, id+".json"), nil
}

func (Definition) Serialize(data any) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}

func (Definition) Parse(content []byte) (any, error) {
	var v any
	if err := json.Unmarshal(content, &v); err != nil {
		return nil, errors.Wrap(err, "parsing intervention file")
	}
	return v, nil
}

func (Definition) Validate(data any) (errs, warns []string) {
	obj, ok := data.(map[string]any)
	if !ok {
		return []string{"intervention must be a json object"}, nil
	}
	if title, _ := obj["title"].(string); title == "" {
		warns = append(warns, "intervention has no title")
	}
	// Interventions cite the guideline recommendation they adapt.
	if _, ok := obj["reference"]; !ok {
		warns = append(warns, "intervention cites no guideline reference")
	}
	return nil, warns
}
