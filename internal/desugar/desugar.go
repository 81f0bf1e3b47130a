package desugar

import (
	"miniml/internal/ast"
	"miniml/internal/core"
)

// Builder lowers a typed surface AST into the core IR. It owns the single
// Interner for one compilation, so every surface identifier maps to the
// same core.Name everywhere it appears — mirroring the teacher's Builder,
// which likewise threads one mutable pass-state struct through a
// post-order AST walk (internal/ir/builder.go in the pack).
type Builder struct {
	interner *core.Interner
}

func NewBuilder() *Builder {
	return &Builder{interner: core.NewInterner()}
}

// Desugar lowers a single closed surface expression.
func Desugar(e ast.Expr) core.Expr {
	return NewBuilder().desugar(e)
}

func (b *Builder) desugar(e ast.Expr) core.Expr {
	switch n := e.(type) {
	case *ast.Var:
		return &core.Var{Name: b.interner.Intern(n.Name)}
	case *ast.IntLit:
		return &core.IntLit{Value: n.Value}
	case *ast.BoolLit:
		return &core.BoolLit{Value: n.Value}
	case *ast.BinOp:
		return &core.BinOp{Kind: n.Kind, Left: b.desugar(n.Left), Right: b.desugar(n.Right)}
	case *ast.If:
		return &core.If{Cond: b.desugar(n.Cond), Tru: b.desugar(n.Tru), Fls: b.desugar(n.Fls)}
	case *ast.Fun:
		return b.desugarFun(n)
	case *ast.LetFun:
		return b.desugarLetFun(n)
	case *ast.LetRec:
		return b.desugarLetRec(n)
	case *ast.Apply:
		return &core.Apply{Fun: b.desugar(n.Fn), Arg: b.desugar(n.Arg)}
	default:
		panic("desugar: unhandled expression node")
	}
}

// desugarFun lowers `fun f(x) is e` directly to one core.Fun: the surface
// Fun node already combines a self-name and an argument-name exactly like
// the core node does, so no lambda-nesting trick is needed here (it is
// needed only where the desugaring introduces bindings the surface grammar
// has no direct node for — see bindLet below).
func (b *Builder) desugarFun(f *ast.Fun) *core.Fun {
	return &core.Fun{
		Self: b.interner.Intern(f.FunName),
		Arg:  b.interner.Intern(f.ArgName),
		Body: b.desugar(f.Body),
	}
}

// desugarLetFun lowers `let fun f(x) is e1 in e2` to `(λ_. λf. e2) (λf. λx. e1)`:
// an immediate application binding f to the non-recursive-group closure.
func (b *Builder) desugarLetFun(l *ast.LetFun) core.Expr {
	fnName := b.interner.Intern(l.Fun.FunName)
	fnValue := b.desugarFun(l.Fun)
	body := b.desugar(l.Body)
	return &core.Apply{
		Fun: &core.Fun{Self: core.AnonSelf, Arg: fnName, Body: body},
		Arg: fnValue,
	}
}

// bindLet encodes `let name = value in body` using the only binding
// mechanism the core IR has: immediate application of a one-argument
// lambda. The core sum type has no Let variant (§3), so every synthetic
// binding the desugarer introduces — not just the surface let forms —
// goes through this helper.
func bindLet(name core.Name, value core.Expr, body core.Expr) core.Expr {
	return &core.Apply{
		Fun: &core.Fun{Self: core.AnonSelf, Arg: name, Body: body},
		Arg: value,
	}
}

func unreachable() core.Expr {
	return &core.BinOp{Kind: ast.Div, Left: &core.IntLit{Value: 0}, Right: &core.IntLit{Value: 0}}
}

// desugarLetRec lowers an n-function `let rec` group to a single
// tag-dispatching function D plus a per-sibling thunk encoding, following
// §4.2 exactly:
//
//  1. D = λd.λt. if t==0 then wrap(0,f1) else if t==1 then wrap(1,f2) ... else ⊥
//  2. wrap(i,fi) re-binds every sibling name fj (j≠i) to `λx. D j x` around
//     fi's own closure, so any call from inside fi to a sibling re-enters
//     through D instead of needing a cyclic environment.
//  3. The whole group becomes (λd. bind_all(body)) D, where bind_all
//     installs fi := D i for every i around the group's body.
func (b *Builder) desugarLetRec(l *ast.LetRec) core.Expr {
	names := make([]core.Name, len(l.Funs))
	for i, fn := range l.Funs {
		names[i] = b.interner.Intern(fn.FunName)
	}

	var ifChain core.Expr = unreachable()
	for i := len(l.Funs) - 1; i >= 0; i-- {
		cond := &core.BinOp{Kind: ast.Eq, Left: &core.Var{Name: core.DispatchArg}, Right: &core.IntLit{Value: int64(i)}}
		ifChain = &core.If{Cond: cond, Tru: b.wrap(i, l.Funs, names), Fls: ifChain}
	}
	dispatch := &core.Fun{Self: core.DispatchFun, Arg: core.DispatchArg, Body: ifChain}

	bound := b.desugar(l.Body)
	for i := len(l.Funs) - 1; i >= 0; i-- {
		value := &core.Apply{Fun: &core.Var{Name: core.DispatchFun}, Arg: &core.IntLit{Value: int64(i)}}
		bound = bindLet(names[i], value, bound)
	}

	outer := &core.Fun{Self: core.AnonSelf, Arg: core.DispatchFun, Body: bound}
	return &core.Apply{Fun: outer, Arg: dispatch}
}

// wrap builds wrap(i, funs[i]): funs[i]'s own closure, surrounded by one
// thunk binding per sibling. Thunks never reference each other, so the
// order they are nested in is immaterial.
func (b *Builder) wrap(i int, funs []*ast.Fun, names []core.Name) core.Expr {
	fi := funs[i]
	inner := core.Expr(&core.Fun{
		Self: names[i],
		Arg:  b.interner.Intern(fi.ArgName),
		Body: b.desugar(fi.Body),
	})
	for j := range funs {
		if j == i {
			continue
		}
		thunk := &core.Fun{
			Self: core.AnonSelf,
			Arg:  core.ThunkArg,
			Body: &core.Apply{
				Fun: &core.Apply{Fun: &core.Var{Name: core.DispatchFun}, Arg: &core.IntLit{Value: int64(j)}},
				Arg: &core.Var{Name: core.ThunkArg},
			},
		}
		inner = bindLet(names[j], thunk, inner)
	}
	return inner
}
