package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"miniml/internal/ast"
)

func TestEqualStructuralComparison(t *testing.T) {
	assert.True(t, ast.Equal(ast.IntType{}, ast.IntType{}))
	assert.False(t, ast.Equal(ast.IntType{}, ast.BoolType{}))

	a := &ast.ArrowType{Param: ast.IntType{}, Result: ast.BoolType{}}
	b := &ast.ArrowType{Param: ast.IntType{}, Result: ast.BoolType{}}
	c := &ast.ArrowType{Param: ast.BoolType{}, Result: ast.BoolType{}}
	assert.True(t, ast.Equal(a, b))
	assert.False(t, ast.Equal(a, c))
}

func TestArrowTypeStringIsRightAssociative(t *testing.T) {
	nested := &ast.ArrowType{Param: ast.IntType{}, Result: &ast.ArrowType{Param: ast.IntType{}, Result: ast.BoolType{}}}
	assert.Equal(t, "(int -> (int -> bool))", nested.String())
}
