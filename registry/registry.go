// Package registry defines the Registry interface through which the
// interpreter performs tool calls, plus a Mock implementation for tests and
// the standalone MockEcho tool it ships with.
package registry

import (
	"context"
	"fmt"
)

// Registry resolves a tool name to a callable and invokes it with a JSON
// input payload, returning the tool's JSON output payload.
type Registry interface {
	Call(ctx context.Context, name string, inputJSON string) (string, error)
}

// Func is a single tool implementation: given a JSON input payload, it
// returns a JSON output payload or an error.
type Func func(ctx context.Context, inputJSON string) (string, error)

// Mock is an in-memory Registry backed by registered Funcs. It is the
// registry used by tests and by the CLI's default run mode.
type Mock struct {
	tools map[string]Func
}

// NewMock returns an empty Mock registry.
func NewMock() *Mock {
	return &Mock{tools: map[string]Func{}}
}

// NewMockWithDefaults returns a Mock registry pre-populated with the
// standard MockEcho tool.
func NewMockWithDefaults() *Mock {
	m := NewMock()
	m.RegisterFunc("MockEcho", MockEcho)
	return m
}

// RegisterFunc binds name to f, replacing any prior registration under the
// same name.
func (m *Mock) RegisterFunc(name string, f Func) {
	m.tools[name] = f
}

// Call implements Registry.
func (m *Mock) Call(ctx context.Context, name string, inputJSON string) (string, error) {
	f, ok := m.tools[name]
	if !ok {
		return "", fmt.Errorf("unknown tool: %s", name)
	}
	return f(ctx, inputJSON)
}

// MockEcho is the canonical test tool: it wraps its input payload verbatim
// under an "echo" key.
func MockEcho(_ context.Context, inputJSON string) (string, error) {
	return fmt.Sprintf(`{"echo":%s}`, inputJSON), nil
}
