// Package parser implements axiom's line-oriented recursive-descent parser:
// one statement per source line, four statement forms (tool, let, print,
// call), and a small expression grammar of literals, variable references,
// and left-to-right top-level binary operators.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/axiom-lang/axiom/ast"
)

// SyntaxError is a terminal parse failure carrying the 1-based source line
// on which it was detected.
type SyntaxError struct {
	Line    int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

func syntaxErrf(line int, format string, args ...any) error {
	return &SyntaxError{Line: line, Message: fmt.Sprintf(format, args...)}
}

// Parse parses src into a Program. Blank lines and lines whose trimmed text
// starts with "//" are skipped.
func Parse(src string) (ast.Program, error) {
	var statements []ast.Stmt
	for i, raw := range strings.Split(src, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "tool "):
			stmt, err := parseToolDecl(line[len("tool "):], lineNo)
			if err != nil {
				return ast.Program{}, err
			}
			statements = append(statements, stmt)
		case strings.HasPrefix(line, "let "):
			stmt, err := parseLet(line[len("let "):], lineNo)
			if err != nil {
				return ast.Program{}, err
			}
			statements = append(statements, stmt)
		case strings.HasPrefix(line, "print "):
			expr, err := parseExpr(trimTrailingSemi(strings.TrimSpace(line[len("print "):])), lineNo)
			if err != nil {
				return ast.Program{}, err
			}
			statements = append(statements, ast.Print{Expr: expr})
		case strings.HasPrefix(line, "call "):
			stmt, err := parseToolCall(line[len("call "):], lineNo)
			if err != nil {
				return ast.Program{}, err
			}
			statements = append(statements, stmt)
		default:
			return ast.Program{}, syntaxErrf(lineNo, "unrecognized statement")
		}
	}
	return ast.Program{Statements: statements}, nil
}

func trimTrailingSemi(s string) string {
	return strings.TrimSpace(strings.TrimSuffix(s, ";"))
}

// tool Name input {a: Int} output {b: String} cap toolCap;
func parseToolDecl(rest string, lineNo int) (ast.Stmt, error) {
	name, tail, ok := strings.Cut(rest, " input ")
	if !ok {
		return nil, syntaxErrf(lineNo, "invalid tool decl")
	}
	inputRaw, tail, err := parseBracedSection(tail, lineNo)
	if err != nil {
		return nil, err
	}
	tail = strings.TrimSpace(tail)
	tail, ok = cutPrefix(tail, "output ")
	if !ok {
		return nil, syntaxErrf(lineNo, "expected output")
	}
	outputRaw, tail, err := parseBracedSection(tail, lineNo)
	if err != nil {
		return nil, err
	}
	tail = strings.TrimSpace(tail)
	tail, ok = cutPrefix(tail, "cap ")
	if !ok {
		return nil, syntaxErrf(lineNo, "expected cap")
	}
	cap := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(tail), ";"))

	input, err := parseTypedFields(inputRaw, lineNo)
	if err != nil {
		return nil, err
	}
	output, err := parseTypedFields(outputRaw, lineNo)
	if err != nil {
		return nil, err
	}
	return ast.ToolDecl{
		Name:   strings.TrimSpace(name),
		Input:  input,
		Output: output,
		Cap:    cap,
	}, nil
}

func parseLet(rest string, lineNo int) (ast.Stmt, error) {
	name, exprPart, ok := strings.Cut(rest, "=")
	if !ok {
		return nil, syntaxErrf(lineNo, "invalid let")
	}
	expr, err := parseExpr(trimTrailingSemi(strings.TrimSpace(exprPart)), lineNo)
	if err != nil {
		return nil, err
	}
	return ast.Let{Name: strings.TrimSpace(name), Expr: expr}, nil
}

// call Tool {a: 1, b: "x"} using toolCap timeout 1000;
func parseToolCall(rest string, lineNo int) (ast.Stmt, error) {
	tool, tail, ok := strings.Cut(rest, "{")
	if !ok {
		return nil, syntaxErrf(lineNo, "missing '{'")
	}
	inputRaw, tail, ok := strings.Cut(tail, "}")
	if !ok {
		return nil, syntaxErrf(lineNo, "missing '}'")
	}

	var input []ast.Arg
	for _, part := range splitNonEmpty(inputRaw, ',') {
		k, v, ok := strings.Cut(part, ":")
		if !ok {
			return nil, syntaxErrf(lineNo, "invalid tool input")
		}
		expr, err := parseExpr(strings.TrimSpace(v), lineNo)
		if err != nil {
			return nil, err
		}
		input = append(input, ast.Arg{Name: strings.TrimSpace(k), Expr: expr})
	}

	tail = trimTrailingSemi(strings.TrimSpace(tail))
	tail, ok = cutPrefix(tail, "using ")
	if !ok {
		return nil, syntaxErrf(lineNo, "expected using")
	}
	cap, timeoutPart, ok := strings.Cut(tail, " timeout ")
	if !ok {
		return nil, syntaxErrf(lineNo, "expected timeout")
	}
	timeoutMS, err := strconv.ParseUint(strings.TrimSpace(timeoutPart), 10, 64)
	if err != nil {
		return nil, syntaxErrf(lineNo, "%s", err)
	}
	return ast.ToolCall{
		Tool:      strings.TrimSpace(tool),
		Input:     input,
		Cap:       strings.TrimSpace(cap),
		TimeoutMS: timeoutMS,
	}, nil
}

func parseBracedSection(tail string, lineNo int) (inside string, rest string, err error) {
	tail = strings.TrimSpace(tail)
	tail, ok := cutPrefix(tail, "{")
	if !ok {
		return "", "", syntaxErrf(lineNo, "expected '{'")
	}
	inside, rest, ok = strings.Cut(tail, "}")
	if !ok {
		return "", "", syntaxErrf(lineNo, "missing '}'")
	}
	return inside, strings.TrimSpace(rest), nil
}

func parseTypedFields(raw string, lineNo int) ([]ast.Field, error) {
	var fields []ast.Field
	for _, part := range splitNonEmpty(raw, ',') {
		k, t, ok := strings.Cut(part, ":")
		if !ok {
			return nil, syntaxErrf(lineNo, "invalid typed field")
		}
		typ, err := parseType(strings.TrimSpace(t), lineNo)
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.Field{Name: strings.TrimSpace(k), Type: typ})
	}
	return fields, nil
}

func parseType(raw string, lineNo int) (ast.Type, error) {
	switch raw {
	case "Int":
		return ast.Integer, nil
	case "Bool":
		return ast.Boolean, nil
	case "String":
		return ast.Text, nil
	default:
		return 0, syntaxErrf(lineNo, "unknown type: %s", raw)
	}
}

func parseExpr(raw string, lineNo int) (ast.Expr, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`) && len(raw) >= 2 {
		return ast.TextLit{Value: strings.Trim(raw, `"`)}, nil
	}
	if raw == "true" {
		return ast.BoolLit{Value: true}, nil
	}
	if raw == "false" {
		return ast.BoolLit{Value: false}, nil
	}
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return ast.IntLit{Value: v}, nil
	}

	ops := []struct {
		ch rune
		op ast.BinOp
	}{
		{'+', ast.Add},
		{'-', ast.Sub},
		{'*', ast.Mul},
		{'/', ast.Div},
	}
	for _, o := range ops {
		if lhs, rhs, ok := splitOnceTopLevel(raw, o.ch); ok {
			left, err := parseExpr(lhs, lineNo)
			if err != nil {
				return nil, err
			}
			right, err := parseExpr(rhs, lineNo)
			if err != nil {
				return nil, err
			}
			return ast.BinaryExpr{Left: left, Op: o.op, Right: right}, nil
		}
	}
	return ast.VarRef{Name: raw}, nil
}

// splitOnceTopLevel finds the first occurrence of needle outside of a
// double-quoted string and splits raw there.
func splitOnceTopLevel(s string, needle rune) (lhs string, rhs string, ok bool) {
	inString := false
	for idx, ch := range s {
		switch {
		case ch == '"':
			inString = !inString
		case !inString && ch == needle:
			return s[:idx], s[idx+len(string(needle)):], true
		}
	}
	return "", "", false
}

func splitNonEmpty(s string, sep byte) []string {
	var out []string
	for _, part := range strings.Split(s, string(sep)) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func cutPrefix(s, prefix string) (string, bool) {
	return strings.CutPrefix(s, prefix)
}
