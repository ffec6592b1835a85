// Package requirements provides the definition for the functional and
// non-functional requirements component.
package requirements

import (
	"encoding/json"
	"path"

	"github.com/cockroachdb/errors"

	"github.com/litlfred/dakit/internal/core"
)

// Requirement files live under input/requirements/.
const dir = "requirements"

func init() {
	core.Register(Definition{})
}

type Definition struct{}

func (Definition) Type() core.ComponentType {
	return core.Requirements
}

func (Definition) FilePath(data any) (string, error) {
	id := core.ExtractID(data)
	if id == "" {
		return "", errors.New("requirement has no id to derive a file path from")
	}
	return path.Join(dir, id+".json"), nil
}

func (Definition) Serialize(data any) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}

func (Definition) Parse(content []byte) (any, error) {
	var v any
	if err := json.Unmarshal(content, &v); err != nil {
		return nil, errors.Wrap(err, "parsing requirement file")
	}
	return v, nil
}

func (Definition) Validate(data any) (errs, warns []string) {
	obj, ok := data.(map[string]any)
	if !ok {
		return []string{"requirement must be a json object"}, nil
	}
	if stmt, _ := obj["statement"].(string); stmt == "" {
		warns = append(warns, "requirement has no statement")
	}
	if cat, _ := obj["category"].(string); cat != "" && cat != "functional" && cat != "non-functional" {
		errs = append(errs, "requirement category must be functional or non-functional")
	}
	return errs, warns
}
