// Package decisionlogic provides the definition for the decision-support
// logic (decision table) component.
package decisionlogic

import (
	"encoding/json"
	"path"

	"github.com/cockroachdb/errors"

	"github.com/litlfred/dakit/internal/core"
)

// Decision tables live under input/decision-tables/.
const dir = "decision-tables"

func init() {
	core.Register(Definition{})
}

type Definition struct{}

func (Definition) Type() core.ComponentType {
	return core.DecisionLogic
}

func (Definition) FilePath(data any) (string, error) {
	id := core.ExtractID(data)
	if id == "" {
		return "", errors.New("decision table has no id to derive a file path from")
	}
	return path.Join(dir, id+".json"), nil
}

func (Definition) Serialize(data any) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}

func (Definition) Parse(content []byte) (any, error) {
	var v any
	if err := json.Unmarshal(content, &v); err != nil {
		return nil, errors.Wrap(err, "parsing decision table file")
	}
	return v, nil
}

func (Definition) Validate(data any) (errs, warns []string) {
	obj, ok := data.(map[string]any)
	if !ok {
		return []string{"decision table must be a json object"}, nil
	}
	if rules, ok := obj["rules"].([]any); !ok || len(rules) == 0 {
		warns = append(warns, "decision table has no rules")
	}
	if _, ok := obj["inputs"]; !ok {
		warns = append(warns, "decision table declares no inputs")
	}
	return nil, warns
}
