package parser

import (
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"

	"miniml/grammar"
	"miniml/internal/ast"
)

// convert lowers the participle parse tree into the surface AST. It is kept
// separate from grammar construction so the grammar can stay a direct
// transcription of the precedence levels without any semantic baggage.
func convert(e *grammar.Expr, file string) ast.Expr {
	switch {
	case e.LetFun != nil:
		return convertLetFun(e.LetFun, file)
	case e.LetRec != nil:
		return convertLetRec(e.LetRec, file)
	case e.If != nil:
		return convertIf(e.If, file)
	case e.Cmp != nil:
		return convertCmp(e.Cmp, file)
	default:
		panic("parser: empty Expr alternation")
	}
}

func pos(p lexer.Position, file string) ast.Position {
	return ast.Position{Filename: file, Line: p.Line, Column: p.Column, Offset: p.Offset}
}

func convertLetFun(l *grammar.LetFunExpr, file string) ast.Expr {
	return &ast.LetFun{
		Pos:  pos(l.Pos, file),
		Fun:  convertFunDef(l.Fun, file),
		Body: convert(l.Body, file),
	}
}

func convertLetRec(l *grammar.LetRecExpr, file string) ast.Expr {
	funs := make([]*ast.Fun, len(l.Funs))
	for i, f := range l.Funs {
		funs[i] = convertFunDef(f, file)
	}
	return &ast.LetRec{
		Pos:  pos(l.Pos, file),
		Funs: funs,
		Body: convert(l.Body, file),
	}
}

func convertFunDef(f *grammar.FunDef, file string) *ast.Fun {
	return &ast.Fun{
		Pos:     pos(f.Pos, file),
		FunName: f.Name,
		ArgName: f.ArgName,
		ArgType: convertType(f.ArgType),
		RetType: convertType(f.RetType),
		Body:    convert(f.Body, file),
	}
}

func convertType(t *grammar.Type) ast.Type {
	atom := convertAtomType(t.Atom)
	if t.Result == nil {
		return atom
	}
	return &ast.ArrowType{Param: atom, Result: convertType(t.Result)}
}

func convertAtomType(t *grammar.AtomType) ast.Type {
	if t.Paren != nil {
		return convertType(t.Paren)
	}
	switch t.Name {
	case "int":
		return ast.IntType{}
	case "bool":
		return ast.BoolType{}
	default:
		panic("parser: unknown atomic type " + t.Name)
	}
}

func convertIf(i *grammar.IfExpr, file string) ast.Expr {
	return &ast.If{
		Pos:  pos(i.Pos, file),
		Cond: convert(i.Cond, file),
		Tru:  convert(i.Tru, file),
		Fls:  convert(i.Fls, file),
	}
}

func convertCmp(c *grammar.CmpExpr, file string) ast.Expr {
	left := convertAdd(c.Left, file)
	if c.Tail == nil {
		return left
	}
	var kind ast.BinOpKind
	switch c.Tail.Operator {
	case "<":
		kind = ast.Lt
	case "==":
		kind = ast.Eq
	case ">":
		kind = ast.Gt
	}
	return &ast.BinOp{Pos: pos(c.Pos, file), Kind: kind, Left: left, Right: convertAdd(c.Tail.Right, file)}
}

func convertAdd(a *grammar.AddExpr, file string) ast.Expr {
	result := convertMul(a.Left, file)
	for _, op := range a.Ops {
		kind := ast.Add
		if op.Operator == "-" {
			kind = ast.Sub
		}
		result = &ast.BinOp{Pos: pos(a.Pos, file), Kind: kind, Left: result, Right: convertMul(op.Right, file)}
	}
	return result
}

func convertMul(m *grammar.MulExpr, file string) ast.Expr {
	result := convertApp(m.Left, file)
	for _, op := range m.Ops {
		kind := ast.Mul
		if op.Operator == "/" {
			kind = ast.Div
		}
		result = &ast.BinOp{Pos: pos(m.Pos, file), Kind: kind, Left: result, Right: convertApp(op.Right, file)}
	}
	return result
}

func convertApp(a *grammar.AppExpr, file string) ast.Expr {
	result := convertPrimary(a.Head, file)
	for _, arg := range a.Rest {
		result = &ast.Apply{Pos: pos(a.Pos, file), Fn: result, Arg: convertPrimary(arg, file)}
	}
	return result
}

func convertPrimary(p *grammar.Primary, file string) ast.Expr {
	switch {
	case p.Int != nil:
		n, err := strconv.ParseInt(*p.Int, 10, 64)
		if err != nil {
			panic("parser: malformed integer literal " + *p.Int)
		}
		return &ast.IntLit{Pos: pos(p.Pos, file), Value: n}
	case p.Bool != nil:
		return &ast.BoolLit{Pos: pos(p.Pos, file), Value: *p.Bool == "true"}
	case p.Fun != nil:
		return convertFunDef(p.Fun, file)
	case p.Ident != nil:
		return &ast.Var{Pos: pos(p.Pos, file), Name: *p.Ident}
	case p.Paren != nil:
		return convert(p.Paren, file)
	default:
		panic("parser: empty Primary alternation")
	}
}
