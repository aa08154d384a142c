package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/axiom-lang/axiom/ast"
)

func TestTypeString(t *testing.T) {
	assert.Equal(t, "Int", ast.Integer.String())
	assert.Equal(t, "Bool", ast.Boolean.String())
	assert.Equal(t, "String", ast.Text.String())
}

func TestEffectString(t *testing.T) {
	assert.Equal(t, "Pure", ast.Pure.String())
	assert.Equal(t, "Tool", ast.Tool.String())
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ast.Integer, ast.TypeOf(ast.IntValue{Value: 1}))
	assert.Equal(t, ast.Boolean, ast.TypeOf(ast.BoolValue{Value: true}))
	assert.Equal(t, ast.Text, ast.TypeOf(ast.TextValue{Value: "x"}))
}

func TestTypeOfPanicsOnUnknownVariant(t *testing.T) {
	assert.Panics(t, func() {
		ast.TypeOf(nil)
	})
}

func TestExprVariantsSatisfyExpr(t *testing.T) {
	var exprs = []ast.Expr{
		ast.IntLit{Value: 1},
		ast.BoolLit{Value: true},
		ast.TextLit{Value: "s"},
		ast.VarRef{Name: "x"},
		ast.BinaryExpr{Left: ast.IntLit{Value: 1}, Op: ast.Add, Right: ast.IntLit{Value: 2}},
	}
	assert.Len(t, exprs, 5)
}

func TestStmtVariantsSatisfyStmt(t *testing.T) {
	var stmts = []ast.Stmt{
		ast.ToolDecl{Name: "T"},
		ast.Let{Name: "x"},
		ast.Print{},
		ast.ToolCall{Tool: "T"},
	}
	assert.Len(t, stmts, 4)
}
