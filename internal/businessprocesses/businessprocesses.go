// Package businessprocesses provides the definition for the business
// processes and workflows component. Process values may embed their BPMN
// diagram as an xml string, in which case the file representation is the
// raw BPMN document rather than json.
package businessprocesses

import (
	"encoding/json"
	"path"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/litlfred/dakit/internal/core"
)

// Process files live under input/processes/.
const dir = "processes"

func init() {
	core.Register(Definition{})
}

type Definition struct{}

func (Definition) Type() core.ComponentType {
	return core.BusinessProcesses
}

func (Definition) FilePath(data any) (string, error) {
	id := core.ExtractID(data)
	if id == "" {
		return "", errors.New("process has no id to derive a file path from")
	}
	if bpmnOf(data) != "" {
		return path.Join(dir, id+".bpmn"), nil
	}
	return path.Join(dir, id+".json"), nil
}

func (Definition) Serialize(data any) ([]byte, error) {
	if bpmn := bpmnOf(data); bpmn != "" {
		return []byte(bpmn), nil
	}
	return json.MarshalIndent(data, "", "  ")
}

func (Definition) Parse(content []byte) (any, error) {
	trimmed := strings.TrimSpace(string(content))
	if strings.HasPrefix(trimmed, "<") {
		return map[string]any{"bpmn": trimmed}, nil
	}

	var v any
	if err := json.Unmarshal(content, &v); err != nil {
		return nil, errors.Wrap(err, "parsing process file")
	}
	return v, nil
}

func (Definition) Validate(data any) (errs, warns []string) {
	obj, ok := data.(map[string]any)
	if !ok {
		return []string{"process must be a json object"}, nil
	}
	if bpmnOf(obj) == "" {
		if _, ok := obj["activities"]; !ok {
			warns = append(warns, "process has neither a bpmn diagram nor activities")
		}
	}
	return nil, warns
}

func bpmnOf(data any) string {
	obj, ok := data.(map[string]any)
	if !ok {
		return ""
	}
	bpmn, _ := obj["bpmn"].(string)
	return bpmn
}
