// Package dataelements provides the definition for the core data elements
// (data dictionary) component.
package dataelements

import (
	"encoding/json"
	"path"

	"github.com/cockroachdb/errors"

	"github.com/litlfred/dakit/internal/core"
)

// Data element files live under input/dataelements/.
const dir = "dataelements"

func init() {
	core.Register(Definition{})
}

type Definition struct{}

func (Definition) Type() core.ComponentType {
	return core.DataElements
}

func (Definition) FilePath(data any) (string, error) {
	id := core.ExtractID(data)
	if id == "" {
		return "", errors.New("data element has no id to derive a file path from")
	}
	return path.Join(dir, id+".json"), nil
}

func (Definition) Serialize(data any) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}

func (Definition) Parse(content []byte) (any, error) {
	var v any
	if err := json.Unmarshal(content, &v); err != nil {
		return nil, errors.Wrap(err, "parsing data element file")
	}
	return v, nil
}

func (Definition) Validate(data any) (errs, warns []string) {
	obj, ok := data.(map[string]any)
	if !ok {
		return []string{"data element must be a json object"}, nil
	}
	if t, _ := obj["type"].(string); t == "" {
		warns = append(warns, "data element has no type")
	}
	if _, ok := obj["valueSet"]; !ok {
		if t, _ := obj["type"].(string); t == "coding" || t == "code" {
			warns = append(warns, "coded data element binds no value set")
		}
	}
	return nil, warns
}
