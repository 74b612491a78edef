package aiquiz

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var schemaCache sync.Map // map[string]*jsonschema.Schema

func blockSchema(kind BlockKind) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			kind.Field(): map[string]any{"type": "string", "minLength": 1},
			"mcqs": map[string]any{
				"type":     "array",
				"minItems": 3,
				"maxItems": 3,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"q": map[string]any{"type": "string", "minLength": 1},
						"options": map[string]any{
							"type":     "array",
							"minItems": 3,
							"maxItems": 3,
							"items":    map[string]any{"type": "string", "minLength": 1},
						},
						"answer": map[string]any{"type": "string", "minLength": 1},
					},
					"required": []any{"q", "options", "answer"},
				},
			},
		},
		"required": []any{kind.Field(), "mcqs"},
	}
}

var subtopicListSchema = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

func checkSchema(name string, definition map[string]any, raw json.RawMessage) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compiledSchema(name, definition)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compiledSchema(name string, definition map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a plain decoded JSON value, not Go maps with typed slices.
	defBytes, err := json.Marshal(definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}
