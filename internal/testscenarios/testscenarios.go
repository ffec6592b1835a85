// Package testscenarios provides the definition for the test scenarios
// component. Scenario values may embed a gherkin feature as a string, in
// which case the file representation is the raw feature text.
package testscenarios

import (
	"encoding/json"
	"path"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/litlfred/dakit/internal/core"
)

// Test scenario files live under input/testing/.
const dir = "testing"

func init() {
	core.Register(Definition{})
}

type Definition struct{}

func (Definition) Type() core.ComponentType {
	return core.TestScenarios
}

func (Definition) FilePath(data any) (string, error) {
	id := core.ExtractID(data)
	if id == "" {
		return "", errors.New("test scenario has no id to derive a file path from")
	}
	if featureOf(data) != "" {
		return path.Join(dir, id+".feature"), nil
	}
	return path.Join(dir, id+".json"), nil
}

func (Definition) Serialize(data any) ([]byte, error) {
	if feature := featureOf(data); feature != "" {
		return []byte(feature), nil
	}
	return json.MarshalIndent(data, "", "  ")
}

func (Definition) Parse(content []byte) (any, error) {
	trimmed := strings.TrimSpace(string(content))
	if strings.HasPrefix(trimmed, "Feature:") {
		return map[string]any{"feature": trimmed}, nil
	}

	var v any
	if err := json.Unmarshal(content, &v); err != nil {
		return nil, errors.Wrap(err, "parsing test scenario file")
	}
	return v, nil
}

func (Definition) Validate(data any) (errs, warns []string) {
	obj, ok := data.(map[string]any)
	if !ok {
		return []string{"test scenario must be a json object"}, nil
	}
	if featureOf(obj) == "" {
		if _, ok := obj["steps"]; !ok {
			warns = append(warns, "test scenario has neither a feature nor steps")
		}
	}
	return nil, warns
}

func featureOf(data any) string {
	obj, ok := data.(map[string]any)
	if !ok {
		return ""
	}
	feature, _ := obj["feature"].(string)
	return feature
}
