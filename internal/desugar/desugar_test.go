package desugar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miniml/internal/ast"
	"miniml/internal/compile"
	"miniml/internal/core"
	"miniml/internal/desugar"
	"miniml/internal/vm"
)

func run(t *testing.T, e ast.Expr) vm.Value {
	t.Helper()
	coreExpr := desugar.Desugar(e)
	prog := compile.Compile(coreExpr)
	result, err := vm.Run(prog)
	require.NoError(t, err)
	return result
}

func TestDesugarLetFunIsAnImmediateApplication(t *testing.T) {
	// let fun f(x) is x + 1 in f 41
	e := &ast.LetFun{
		Fun: &ast.Fun{
			FunName: "f", ArgName: "x", ArgType: ast.IntType{}, RetType: ast.IntType{},
			Body: &ast.BinOp{Kind: ast.Add, Left: &ast.Var{Name: "x"}, Right: &ast.IntLit{Value: 1}},
		},
		Body: &ast.Apply{Fn: &ast.Var{Name: "f"}, Arg: &ast.IntLit{Value: 41}},
	}
	coreExpr := desugar.Desugar(e)
	apply, ok := coreExpr.(*core.Apply)
	require.True(t, ok, "expected the top level to be an Apply, got %T", coreExpr)
	outer, ok := apply.Fun.(*core.Fun)
	require.True(t, ok)
	assert.Equal(t, core.AnonSelf, outer.Self)

	assert.Equal(t, vm.Int{Value: 42}, run(t, e))
}

func TestDesugarLetFunShadowing(t *testing.T) {
	// let fun f(x) is x * 2 in let fun f(x) is x + 2 in f 90
	inner := &ast.Fun{FunName: "f", ArgName: "x", ArgType: ast.IntType{}, RetType: ast.IntType{},
		Body: &ast.BinOp{Kind: ast.Add, Left: &ast.Var{Name: "x"}, Right: &ast.IntLit{Value: 2}}}
	outer := &ast.Fun{FunName: "f", ArgName: "x", ArgType: ast.IntType{}, RetType: ast.IntType{},
		Body: &ast.BinOp{Kind: ast.Mul, Left: &ast.Var{Name: "x"}, Right: &ast.IntLit{Value: 2}}}
	e := &ast.LetFun{
		Fun: outer,
		Body: &ast.LetFun{
			Fun:  inner,
			Body: &ast.Apply{Fn: &ast.Var{Name: "f"}, Arg: &ast.IntLit{Value: 90}},
		},
	}
	assert.Equal(t, vm.Int{Value: 92}, run(t, e))
}

// oddEven builds `let rec fun odd(n) is if n == 0 then false else even(n-1)
// and fun even(n) is if n == 0 then true else odd(n-1) in odd arg`.
func oddEven(arg int64) ast.Expr {
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
	return &ast.LetRec{
		Funs: []*ast.Fun{odd, even},
		Body: &ast.Apply{Fn: &ast.Var{Name: "odd"}, Arg: &ast.IntLit{Value: arg}},
	}
}

func TestDesugarLetRecMutualRecursion(t *testing.T) {
	assert.Equal(t, vm.Bool{Value: true}, run(t, oddEven(143)))
	assert.Equal(t, vm.Bool{Value: false}, run(t, oddEven(144)))
	assert.Equal(t, vm.Bool{Value: false}, run(t, oddEven(0)))
}

func TestDesugarLetRecSingletonMatchesLetFun(t *testing.T) {
	recBody := &ast.LetRec{
		Funs: []*ast.Fun{{
			FunName: "f", ArgName: "x", ArgType: ast.IntType{}, RetType: ast.IntType{},
			Body: &ast.If{
				Cond: &ast.BinOp{Kind: ast.Eq, Left: &ast.Var{Name: "x"}, Right: &ast.IntLit{Value: 0}},
				Tru:  &ast.IntLit{Value: 1},
				Fls: &ast.BinOp{Kind: ast.Mul, Left: &ast.Var{Name: "x"},
					Right: &ast.Apply{Fn: &ast.Var{Name: "f"},
						Arg: &ast.BinOp{Kind: ast.Sub, Left: &ast.Var{Name: "x"}, Right: &ast.IntLit{Value: 1}}}},
			},
		}},
		Body: &ast.Apply{Fn: &ast.Var{Name: "f"}, Arg: &ast.IntLit{Value: 6}},
	}
	assert.Equal(t, vm.Int{Value: 720}, run(t, recBody))
}

func TestDesugarIsDeterministic(t *testing.T) {
	e := oddEven(7)
	first := desugar.Desugar(e)
	second := desugar.Desugar(e)
	assert.Equal(t, coreprint(first), coreprint(second))
}

func coreprint(e core.Expr) string {
	return core.Print(e)
}
