// Package indicators provides the definition for the program indicators
// component.
package indicators

import (
	"encoding/json"
	"path"

	"github.com/cockroachdb/errors"

	"github.com/litlfred/dakit/internal/core"
)

// Indicator files live under input/indicators/.
const dir = "indicators"

func init() {
	core.Register(Definition{})
}

type Definition struct{}

func (Definition) Type() core.ComponentType {
	return core.Indicators
}

func (Definition) FilePath(data any) (string, error) {
	id := core.ExtractID(data)
	if id == "" {
		return "", errors.New("indicator has no id to derive a file path from")
	}
	return path.Join(dir, id+".json"), nil
}

func (Definition) Serialize(data any) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}

func (Definition) Parse(content []byte) (any, error) {
	var v any
	if err := json.Unmarshal(content, &v); err != nil {
		return nil, errors.Wrap(err, "parsing indicator file")
	}
	return v, nil
}

func (Definition) Validate(data any) (errs, warns []string) {
	obj, ok := data.(map[string]any)
	if !ok {
		return []string{"indicator must be a json object"}, nil
	}
	if _, ok := obj["numerator"]; !ok {
		warns = append(warns, "indicator defines no numerator")
	}
	if _, ok := obj["denominator"]; !ok {
		warns = append(warns, "indicator defines no denominator")
	}
	return nil, warns
}
