package typecheck

import (
	"miniml/internal/ast"
	"miniml/internal/errors"
)

// Checker runs a straightforward syntax-directed check over the tiny type
// language int | bool | τ→τ. It collects every error it finds rather than
// aborting on the first one, the same batching behaviour as the teacher's
// semantic analyzer.
type Checker struct {
	errs []errors.CompilerError
}

func NewChecker() *Checker {
	return &Checker{}
}

// Check type-checks a closed expression and returns its type together with
// any errors found. A non-empty error slice means the returned type (if
// any) should not be trusted.
func (c *Checker) Check(e ast.Expr) (ast.Type, []errors.CompilerError) {
	c.errs = nil
	t := c.check(e, NewScope(nil))
	return t, c.errs
}

func (c *Checker) fail(err errors.CompilerError) ast.Type {
	c.errs = append(c.errs, err)
	return nil
}

func (c *Checker) check(e ast.Expr, scope *Scope) ast.Type {
	switch n := e.(type) {
	case *ast.IntLit:
		return ast.IntType{}
	case *ast.BoolLit:
		return ast.BoolType{}
	case *ast.Var:
		t, ok := scope.Lookup(n.Name)
		if !ok {
			return c.fail(errors.NewUndefinedVariableError(n.Pos, n.Name))
		}
		return t
	case *ast.BinOp:
		return c.checkBinOp(n, scope)
	case *ast.If:
		return c.checkIf(n, scope)
	case *ast.Fun:
		return c.checkFun(n, scope)
	case *ast.LetFun:
		return c.checkLetFun(n, scope)
	case *ast.LetRec:
		return c.checkLetRec(n, scope)
	case *ast.Apply:
		return c.checkApply(n, scope)
	default:
		panic("typecheck: unhandled expression node")
	}
}

// binOpResult reports, for each operator, the type its two operands must
// have (always int — the core VM's Cmp instruction never inspects bools)
// and the type of the result.
func binOpResult(k ast.BinOpKind) (operand, result ast.Type) {
	switch k {
	case ast.Add, ast.Sub, ast.Mul, ast.Div:
		return ast.IntType{}, ast.IntType{}
	case ast.Lt, ast.Eq, ast.Gt:
		return ast.IntType{}, ast.BoolType{}
	default:
		panic("typecheck: unhandled binop kind")
	}
}

func (c *Checker) checkBinOp(n *ast.BinOp, scope *Scope) ast.Type {
	operand, result := binOpResult(n.Kind)
	lt := c.check(n.Left, scope)
	rt := c.check(n.Right, scope)
	if lt != nil && !ast.Equal(lt, operand) {
		c.fail(errors.NewTypeError(n.Left.NodePos(), "left operand of "+n.Kind.String()+" has the wrong type", operand, lt))
	}
	if rt != nil && !ast.Equal(rt, operand) {
		c.fail(errors.NewTypeError(n.Right.NodePos(), "right operand of "+n.Kind.String()+" has the wrong type", operand, rt))
	}
	return result
}

func (c *Checker) checkIf(n *ast.If, scope *Scope) ast.Type {
	ct := c.check(n.Cond, scope)
	if ct != nil && !ast.Equal(ct, ast.BoolType{}) {
		c.fail(errors.NewTypeError(n.Cond.NodePos(), "if condition must be bool", ast.BoolType{}, ct))
	}
	tt := c.check(n.Tru, scope)
	ft := c.check(n.Fls, scope)
	if tt == nil || ft == nil {
		return nil
	}
	if !ast.Equal(tt, ft) {
		c.fail(errors.NewTypeError(n.Fls.NodePos(), "if branches must agree in type", tt, ft))
		return nil
	}
	return tt
}

// checkFun type-checks a function literal's body with both its self-name
// (bound to its own arrow type, enabling self-recursion) and its argument
// in scope.
func (c *Checker) checkFun(n *ast.Fun, scope *Scope) ast.Type {
	fnType := &ast.ArrowType{Param: n.ArgType, Result: n.RetType}
	inner := scope.Extend(n.FunName, fnType).Extend(n.ArgName, n.ArgType)
	bodyType := c.check(n.Body, inner)
	if bodyType != nil && !ast.Equal(bodyType, n.RetType) {
		c.fail(errors.NewTypeError(n.Body.NodePos(), "function body does not match declared return type", n.RetType, bodyType))
	}
	return fnType
}

func (c *Checker) checkLetFun(n *ast.LetFun, scope *Scope) ast.Type {
	fnType := c.check(n.Fun, scope)
	if fnType == nil {
		return nil
	}
	inner := scope.Extend(n.Fun.FunName, fnType)
	return c.check(n.Body, inner)
}

// checkLetRec binds every sibling's declared type up front so each body can
// call any other sibling, then checks each body under that shared scope.
func (c *Checker) checkLetRec(n *ast.LetRec, scope *Scope) ast.Type {
	inner := NewScope(scope)
	for _, fn := range n.Funs {
		inner.Define(fn.FunName, &ast.ArrowType{Param: fn.ArgType, Result: fn.RetType})
	}
	for _, fn := range n.Funs {
		argScope := inner.Extend(fn.ArgName, fn.ArgType)
		bodyType := c.check(fn.Body, argScope)
		if bodyType != nil && !ast.Equal(bodyType, fn.RetType) {
			c.fail(errors.NewTypeError(fn.Body.NodePos(), "function body does not match declared return type", fn.RetType, bodyType))
		}
	}
	return c.check(n.Body, inner)
}

func (c *Checker) checkApply(n *ast.Apply, scope *Scope) ast.Type {
	fnType := c.check(n.Fn, scope)
	argType := c.check(n.Arg, scope)
	if fnType == nil {
		return nil
	}
	arrow, ok := fnType.(*ast.ArrowType)
	if !ok {
		return c.fail(errors.NewNotAFunctionError(n.Fn.NodePos(), fnType))
	}
	if argType != nil && !ast.Equal(arrow.Param, argType) {
		c.fail(errors.NewTypeError(n.Arg.NodePos(), "argument has the wrong type", arrow.Param, argType))
	}
	return arrow.Result
}
