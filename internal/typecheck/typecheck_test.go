package typecheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miniml/internal/ast"
	"miniml/internal/errors"
	"miniml/internal/typecheck"
)

func check(t *testing.T, e ast.Expr) (ast.Type, []errors.CompilerError) {
	t.Helper()
	return typecheck.NewChecker().Check(e)
}

func TestArithmeticRequiresIntOperands(t *testing.T) {
	e := &ast.BinOp{Kind: ast.Add, Left: &ast.IntLit{Value: 1}, Right: &ast.BoolLit{Value: true}}
	_, errs := check(t, e)
	assert.NotEmpty(t, errs)
}

func TestArithmeticOfIntsIsWellTyped(t *testing.T) {
	e := &ast.BinOp{Kind: ast.Add, Left: &ast.IntLit{Value: 1}, Right: &ast.IntLit{Value: 2}}
	ty, errs := check(t, e)
	require.Empty(t, errs)
	assert.Equal(t, ast.IntType{}, ty)
}

func TestComparisonRequiresIntOperandsEvenForEq(t *testing.T) {
	// Per the VM's Cmp semantics, Eq is not polymorphic over bool.
	e := &ast.BinOp{Kind: ast.Eq, Left: &ast.BoolLit{Value: true}, Right: &ast.BoolLit{Value: false}}
	_, errs := check(t, e)
	assert.NotEmpty(t, errs)
}

func TestComparisonProducesBool(t *testing.T) {
	e := &ast.BinOp{Kind: ast.Lt, Left: &ast.IntLit{Value: 1}, Right: &ast.IntLit{Value: 2}}
	ty, errs := check(t, e)
	require.Empty(t, errs)
	assert.Equal(t, ast.BoolType{}, ty)
}

func TestIfBranchesMustAgree(t *testing.T) {
	e := &ast.If{
		Cond: &ast.BoolLit{Value: true},
		Tru:  &ast.IntLit{Value: 1},
		Fls:  &ast.BoolLit{Value: false},
	}
	_, errs := check(t, e)
	assert.NotEmpty(t, errs)
}

func TestIfConditionMustBeBool(t *testing.T) {
	e := &ast.If{Cond: &ast.IntLit{Value: 1}, Tru: &ast.IntLit{Value: 1}, Fls: &ast.IntLit{Value: 2}}
	_, errs := check(t, e)
	assert.NotEmpty(t, errs)
}

func TestUndefinedVariableIsReported(t *testing.T) {
	_, errs := check(t, &ast.Var{Name: "ghost"})
	assert.NotEmpty(t, errs)
}

func TestSelfRecursiveFunctionTypeChecks(t *testing.T) {
	fact := &ast.Fun{
		FunName: "f", ArgName: "n", ArgType: ast.IntType{}, RetType: ast.IntType{},
		Body: &ast.If{
			Cond: &ast.BinOp{Kind: ast.Eq, Left: &ast.Var{Name: "n"}, Right: &ast.IntLit{Value: 0}},
			Tru:  &ast.IntLit{Value: 1},
			Fls: &ast.BinOp{Kind: ast.Mul, Left: &ast.Var{Name: "n"},
				Right: &ast.Apply{Fn: &ast.Var{Name: "f"},
					Arg: &ast.BinOp{Kind: ast.Sub, Left: &ast.Var{Name: "n"}, Right: &ast.IntLit{Value: 1}}}},
		},
	}
	ty, errs := check(t, fact)
	require.Empty(t, errs)
	assert.Equal(t, &ast.ArrowType{Param: ast.IntType{}, Result: ast.IntType{}}, ty)
}

func TestLetRecSiblingsSeeEachOthersTypesUpFront(t *testing.T) {
	odd := &ast.Fun{FunName: "odd", ArgName: "n", ArgType: ast.IntType{}, RetType: ast.BoolType{},
		Body: &ast.If{
			Cond: &ast.BinOp{Kind: ast.Eq, Left: &ast.Var{Name: "n"}, Right: &ast.IntLit{Value: 0}},
			Tru:  &ast.BoolLit{Value: false},
			Fls: &ast.Apply{Fn: &ast.Var{Name: "even"},
				Arg: &ast.BinOp{Kind: ast.Sub, Left: &ast.Var{Name: "n"}, Right: &ast.IntLit{Value: 1}}},
		},
	}
	even := &ast.Fun{FunName: "even", ArgName: "n", ArgType: ast.IntType{}, RetType: ast.BoolType{},
		Body: &ast.If{
			Cond: &ast.BinOp{Kind: ast.Eq, Left: &ast.Var{Name: "n"}, Right: &ast.IntLit{Value: 0}},
			Tru:  &ast.BoolLit{Value: true},
			Fls: &ast.Apply{Fn: &ast.Var{Name: "odd"},
				Arg: &ast.BinOp{Kind: ast.Sub, Left: &ast.Var{Name: "n"}, Right: &ast.IntLit{Value: 1}}},
		},
	}
	e := &ast.LetRec{
		Funs: []*ast.Fun{odd, even},
		Body: &ast.Apply{Fn: &ast.Var{Name: "odd"}, Arg: &ast.IntLit{Value: 143}},
	}
	ty, errs := check(t, e)
	require.Empty(t, errs)
	assert.Equal(t, ast.BoolType{}, ty)
}

func TestApplyingANonFunctionIsReported(t *testing.T) {
	e := &ast.Apply{Fn: &ast.IntLit{Value: 1}, Arg: &ast.IntLit{Value: 2}}
	_, errs := check(t, e)
	assert.NotEmpty(t, errs)
}
