package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miniml/internal/ast"
	"miniml/internal/parser"
)

func TestParsesArithmeticWithPrecedence(t *testing.T) {
	e, err := parser.ParseSource("t", "1 + 2 * 3")
	require.NoError(t, err)
	top, ok := e.(*ast.BinOp)
	require.True(t, ok)
	assert.Equal(t, ast.Add, top.Kind)
	_, rhsIsMul := top.Right.(*ast.BinOp)
	require.True(t, rhsIsMul)
}

func TestParsesJuxtapositionApplication(t *testing.T) {
	e, err := parser.ParseSource("t", "f x y")
	require.NoError(t, err)
	outer, ok := e.(*ast.Apply)
	require.True(t, ok)
	inner, ok := outer.Fn.(*ast.Apply)
	require.True(t, ok)
	_, ok = inner.Fn.(*ast.Var)
	assert.True(t, ok)
}

func TestParsesLetFun(t *testing.T) {
	e, err := parser.ParseSource("t", "let fun f(x: int): int is x in f 1")
	require.NoError(t, err)
	letFun, ok := e.(*ast.LetFun)
	require.True(t, ok)
	assert.Equal(t, "f", letFun.Fun.FunName)
	assert.Equal(t, "x", letFun.Fun.ArgName)
	assert.Equal(t, ast.IntType{}, letFun.Fun.ArgType)
}

func TestParsesLetRecWithMultipleFunctions(t *testing.T) {
	source := "let rec fun odd(n: int): bool is false and fun even(n: int): bool is true in odd 1"
	e, err := parser.ParseSource("t", source)
	require.NoError(t, err)
	letRec, ok := e.(*ast.LetRec)
	require.True(t, ok)
	require.Len(t, letRec.Funs, 2)
	assert.Equal(t, "odd", letRec.Funs[0].FunName)
	assert.Equal(t, "even", letRec.Funs[1].FunName)
}

func TestChainedComparisonIsAParseError(t *testing.T) {
	_, err := parser.ParseSource("t", "1 < 2 < 3")
	assert.Error(t, err)
}

func TestParsesArrowTypeRightAssociatively(t *testing.T) {
	source := "let fun f(g: int -> int -> bool): bool is g 1 2 in f g"
	_, err := parser.ParseSource("t", source)
	// g is free here, which is a type error, not a parse error; this only
	// checks the arrow-type grammar itself accepts the annotation.
	assert.NoError(t, err)
}

func TestParensGroupExpressions(t *testing.T) {
	e, err := parser.ParseSource("t", "(1 + 2) * 3")
	require.NoError(t, err)
	top, ok := e.(*ast.BinOp)
	require.True(t, ok)
	assert.Equal(t, ast.Mul, top.Kind)
	_, lhsIsAdd := top.Left.(*ast.BinOp)
	assert.True(t, lhsIsAdd)
}
