// Package check implements axiom's type/effect checker: it lifts a parsed
// ast.Program to an ast.TypedProgram annotated with an overall effect and a
// sorted, deduplicated capability manifest.
package check

import (
	"fmt"
	"sort"

	"github.com/axiom-lang/axiom/ast"
)

// TypeError is a terminal type-checking failure. No partial TypedProgram is
// ever returned alongside one.
type TypeError struct {
	Message string
}

func (e *TypeError) Error() string {
	return "type error: " + e.Message
}

func typeErrf(format string, args ...any) error {
	return &TypeError{Message: fmt.Sprintf(format, args...)}
}

// Typecheck runs the two-pass algorithm described in the language spec:
// first it collects every ToolDecl's signature (later declarations of the
// same name silently overwrite earlier ones — last-writer-wins, a known,
// intentionally preserved quirk), then it walks statements in source order,
// inferring expression types, validating tool calls against their declared
// signature, and accumulating the set of capabilities any tool call requires.
func Typecheck(program ast.Program) (*ast.TypedProgram, error) {
	tools := collectToolSignatures(program)

	env := map[string]ast.Type{}
	effect := ast.Pure
	caps := map[string]struct{}{}

	for _, stmt := range program.Statements {
		switch s := stmt.(type) {
		case ast.ToolDecl:
			// no-op: already registered in the first pass.
		case ast.Let:
			t, err := inferExpr(s.Expr, env)
			if err != nil {
				return nil, err
			}
			env[s.Name] = t
		case ast.Print:
			if _, err := inferExpr(s.Expr, env); err != nil {
				return nil, err
			}
		case ast.ToolCall:
			if err := checkToolCall(s, tools, env); err != nil {
				return nil, err
			}
			effect = ast.Tool
			caps[s.Cap] = struct{}{}
		default:
			return nil, typeErrf("unknown statement type %T", stmt)
		}
	}

	required := make([]string, 0, len(caps))
	for c := range caps {
		required = append(required, c)
	}
	sort.Strings(required)

	return &ast.TypedProgram{
		Program: program,
		Effect:  effect,
		Tools:   tools,
		Manifest: ast.CapabilityManifest{
			RequiredCaps: required,
		},
	}, nil
}

func collectToolSignatures(program ast.Program) map[string]ast.ToolSignature {
	tools := map[string]ast.ToolSignature{}
	for _, stmt := range program.Statements {
		decl, ok := stmt.(ast.ToolDecl)
		if !ok {
			continue
		}
		input := make(map[string]ast.Type, len(decl.Input))
		for _, f := range decl.Input {
			input[f.Name] = f.Type
		}
		output := make(map[string]ast.Type, len(decl.Output))
		for _, f := range decl.Output {
			output[f.Name] = f.Type
		}
		tools[decl.Name] = ast.ToolSignature{Input: input, Output: output, Cap: decl.Cap}
	}
	return tools
}

func checkToolCall(call ast.ToolCall, tools map[string]ast.ToolSignature, env map[string]ast.Type) error {
	sig, ok := tools[call.Tool]
	if !ok {
		return typeErrf("unknown tool declaration: %s", call.Tool)
	}
	if sig.Cap != call.Cap {
		return typeErrf("tool %s requires cap %s, got %s", call.Tool, sig.Cap, call.Cap)
	}
	// Extra call-site arguments beyond the signature's input set are
	// accepted silently; this is a known, intentionally preserved quirk.
	for field, expected := range sig.Input {
		arg, ok := findArg(call.Input, field)
		if !ok {
			return typeErrf("missing required tool field: %s", field)
		}
		actual, err := inferExpr(arg.Expr, env)
		if err != nil {
			return err
		}
		if actual != expected {
			return typeErrf("tool field %s expected %s, got %s", field, expected, actual)
		}
	}
	return nil
}

func findArg(args []ast.Arg, name string) (ast.Arg, bool) {
	for _, a := range args {
		if a.Name == name {
			return a, true
		}
	}
	return ast.Arg{}, false
}

func inferExpr(expr ast.Expr, env map[string]ast.Type) (ast.Type, error) {
	switch e := expr.(type) {
	case ast.IntLit:
		return ast.Integer, nil
	case ast.BoolLit:
		return ast.Boolean, nil
	case ast.TextLit:
		return ast.Text, nil
	case ast.VarRef:
		t, ok := env[e.Name]
		if !ok {
			return 0, typeErrf("unknown variable: %s", e.Name)
		}
		return t, nil
	case ast.BinaryExpr:
		l, err := inferExpr(e.Left, env)
		if err != nil {
			return 0, err
		}
		r, err := inferExpr(e.Right, env)
		if err != nil {
			return 0, err
		}
		if l == ast.Integer && r == ast.Integer {
			return ast.Integer, nil
		}
		return 0, typeErrf("binary operations require integer operands")
	default:
		return 0, typeErrf("unknown expression type %T", expr)
	}
}
