// Package schema provides an opt-in, strictly structural validation mode for
// tool output. It layers on top of, and never replaces, the mandatory
// textual substring-presence check the interpreter performs on every tool
// call: see interp.validateToolOutput.
package schema

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/axiom-lang/axiom/ast"
	"github.com/axiom-lang/axiom/registry"
)

// Validator compiles a JSON Schema document and validates tool output
// payloads against it.
type Validator struct {
	schema *jsonschema.Schema
}

// Compile builds a Validator from a JSON Schema document's raw bytes.
func Compile(schemaJSON []byte) (*Validator, error) {
	var doc any
	if err := json.Unmarshal(schemaJSON, &doc); err != nil {
		return nil, fmt.Errorf("schema: invalid JSON: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", doc); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	return &Validator{schema: compiled}, nil
}

// FromToolSignature derives a minimal object schema from a tool's declared
// output fields: every field is required and its type is mapped from
// ast.Type to the corresponding JSON Schema primitive.
func FromToolSignature(sig ast.ToolSignature) (*Validator, error) {
	properties := map[string]any{}
	var required []string
	for name, t := range sig.Output {
		properties[name] = map[string]any{"type": jsonType(t)}
		required = append(required, name)
	}
	doc := map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return Compile(raw)
}

func jsonType(t ast.Type) string {
	switch t {
	case ast.Integer:
		return "integer"
	case ast.Boolean:
		return "boolean"
	case ast.Text:
		return "string"
	default:
		return "string"
	}
}

// Validate parses outputJSON and checks it against the compiled schema.
func (v *Validator) Validate(outputJSON string) error {
	var doc any
	if err := json.Unmarshal([]byte(outputJSON), &doc); err != nil {
		return fmt.Errorf("schema: tool output is not valid JSON: %w", err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return fmt.Errorf("schema: tool output failed strict validation: %w", err)
	}
	return nil
}

// StrictRegistry wraps a registry.Registry, additionally validating every
// tool's output against a schema derived from its declared output fields
// before returning it to the caller. It never replaces the interpreter's own
// substring-presence check; it only adds a stricter, opt-in layer in front
// of it.
type StrictRegistry struct {
	Inner registry.Registry
	Tools map[string]ast.ToolSignature
}

// Call implements registry.Registry.
func (r StrictRegistry) Call(ctx context.Context, name string, inputJSON string) (string, error) {
	out, err := r.Inner.Call(ctx, name, inputJSON)
	if err != nil {
		return "", err
	}
	sig, ok := r.Tools[name]
	if !ok || len(sig.Output) == 0 {
		return out, nil
	}
	v, err := FromToolSignature(sig)
	if err != nil {
		return "", fmt.Errorf("schema: %s: %w", name, err)
	}
	if err := v.Validate(out); err != nil {
		return "", fmt.Errorf("schema: %s: %w", name, err)
	}
	return out, nil
}
