package interp_test

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/axiom-lang/axiom/ast"
	"github.com/axiom-lang/axiom/check"
	"github.com/axiom-lang/axiom/interp"
	"github.com/axiom-lang/axiom/parser"
	"github.com/axiom-lang/axiom/registry"
	"github.com/axiom-lang/axiom/replay"
)

// pureProgramSource builds a source program out of n "let"/"print" pairs over
// fresh variable names, so the generator can vary its shape without ever
// producing a syntactically invalid program.
func pureProgramSource(n int, seed int64) string {
	src := ""
	for i := 0; i < n; i++ {
		v := seed + int64(i)
		src += "let v" + itoa(i) + " = " + itoa64(v) + " + " + itoa(i) + ";\n"
		src += "print v" + itoa(i) + ";\n"
	}
	return src
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}

func itoa64(n int64) string {
	return itoa(int(n))
}

// TestDeterminismProperty verifies that executing the same typed program
// under the same seed always yields byte-identical replay text and digest,
// regardless of the program's shape.
func TestDeterminismProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("same program, same seed, same digest", prop.ForAll(
		func(n int, seed int64) bool {
			if n < 0 {
				n = -n
			}
			n = n%5 + 1
			src := pureProgramSource(n, seed)
			prog, err := parser.Parse(src)
			if err != nil {
				return false
			}
			typed, err := check.Typecheck(prog)
			if err != nil {
				return false
			}
			log1, err := interp.Execute(context.Background(), typed, nil, registry.NewMock(), nil, interp.DefaultOptions())
			if err != nil {
				return false
			}
			log2, err := interp.Execute(context.Background(), typed, nil, registry.NewMock(), nil, interp.DefaultOptions())
			if err != nil {
				return false
			}
			return log1.ToText() == log2.ToText() && log1.DigestHex() == log2.DigestHex()
		},
		gen.Int(),
		gen.Int64(),
	))

	properties.TestingRun(t)
}

// TestManifestSortednessProperty verifies that a typed program's required
// capability manifest is always sorted and deduplicated, independent of the
// order in which ToolCall statements request capabilities.
func TestManifestSortednessProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	capNames := []string{"aCap", "bCap", "cCap", "dCap"}

	properties.Property("required caps are sorted and unique", prop.ForAll(
		func(picks []int) bool {
			var stmts []ast.Stmt
			seen := map[string]bool{}
			for _, p := range picks {
				name := capNames[((p%len(capNames))+len(capNames))%len(capNames)]
				if !seen[name] {
					stmts = append(stmts, ast.ToolDecl{Name: "T" + name, Cap: name})
					seen[name] = true
				}
				stmts = append(stmts, ast.ToolCall{Tool: "T" + name, Cap: name, TimeoutMS: 1})
			}
			prog := ast.Program{Statements: stmts}
			typed, err := check.Typecheck(prog)
			if err != nil {
				return false
			}
			caps := typed.Manifest.RequiredCaps
			for i := 1; i < len(caps); i++ {
				if caps[i-1] >= caps[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 100)),
	))

	properties.TestingRun(t)
}

// TestEffectSoundnessProperty verifies that a typed program's Effect is Tool
// if and only if its statement list contains at least one ToolCall.
func TestEffectSoundnessProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("effect reflects presence of a tool call", prop.ForAll(
		func(withCall bool) bool {
			var stmts []ast.Stmt
			stmts = append(stmts, ast.Let{Name: "x", Expr: ast.IntLit{Value: 1}})
			if withCall {
				stmts = append(stmts, ast.ToolDecl{Name: "T", Cap: "cap"})
				stmts = append(stmts, ast.ToolCall{Tool: "T", Cap: "cap", TimeoutMS: 1})
			}
			typed, err := check.Typecheck(ast.Program{Statements: stmts})
			if err != nil {
				return false
			}
			if withCall {
				return typed.Effect == ast.Tool
			}
			return typed.Effect == ast.Pure
		},
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// TestReplayRoundTripProperty verifies that a replay log built only from
// pipe-free field values round-trips exactly through ToText/FromText.
func TestReplayRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("print events round-trip when free of '|'", prop.ForAll(
		func(value string) bool {
			log := &replay.Log{}
			log.Push(replay.PrintEvent{Value: value})
			parsed, err := replay.FromText(log.ToText())
			if err != nil {
				return false
			}
			if len(parsed.Events) != 1 {
				return false
			}
			got, ok := parsed.Events[0].(replay.PrintEvent)
			return ok && got.Value == value
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
