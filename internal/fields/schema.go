package fields

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildConfigJSONSchema returns the JSON-Schema of a field configuration
// file as a generic map. "type" is not an enum: an unknown type
// is resolved per rule at extraction time, not rejected at load time.
func BuildConfigJSONSchema() map[string]any {
	field := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":        map[string]any{"type": "string"},
			"type":        map[string]any{"type": "string"},
			"location":    map[string]any{"type": "string"},
			"pattern":     map[string]any{"type": "string"},
			"default":     map[string]any{"type": "string"},
			"table_index": map[string]any{"type": "integer"},
			"row":         map[string]any{"type": "integer"},
			"column":      map[string]any{"type": "integer"},
		},
	}
	return map[string]any{
		"type":     "object",
		"required": []string{"fields"},
		"properties": map[string]any{
			"fields": map[string]any{
				"type":  "array",
				"items": field,
			},
		},
	}
}

var configSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	b, err := json.Marshal(BuildConfigJSONSchema())
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("fields.schema.json", bytes.NewReader(b)); err != nil {
		return nil, err
	}
	return compiler.Compile("fields.schema.json")
})

// checkConfigShape validates a raw configuration document against
// BuildConfigJSONSchema. A mismatch names the first offending JSON pointer,
// e.g. `at "/fields/0/row": expected integer, but got number`.
func checkConfigShape(data []byte) error {
	schema, err := configSchema()
	if err != nil {
		return fmt.Errorf("field configuration schema: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("not valid JSON: %w", err)
	}
	err = schema.Validate(v)
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	leaf := ve
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	at := leaf.InstanceLocation
	if at == "" {
		at = "/"
	}
	return fmt.Errorf("at %q: %s", at, leaf.Message)
}
