package grammar

import "github.com/alecthomas/participle/v2/lexer"

// Program is the participle entry rule: a MiniML source file is exactly
// one expression.
type Program struct {
	Pos  lexer.Position
	Expr *Expr `@@`
}

// Expr is the lowest-precedence alternation: the two binding forms and
// the conditional all extend as far right as possible, exactly as in the
// reference grammar (§6.1).
type Expr struct {
	Pos    lexer.Position
	LetFun *LetFunExpr `  @@`
	LetRec *LetRecExpr `| @@`
	If     *IfExpr     `| @@`
	Cmp    *CmpExpr    `| @@`
}

// LetFunExpr is `let fun f(x: t1): t2 is e1 in e2`.
type LetFunExpr struct {
	Pos  lexer.Position
	Fun  *FunDef `"let" @@`
	Body *Expr   `"in" @@`
}

// LetRecExpr is `let rec fun f1(x1) is e1 and fun f2(x2) is e2 ... in body`.
type LetRecExpr struct {
	Pos  lexer.Position
	Funs []*FunDef `"let" "rec" @@ ("and" @@)*`
	Body *Expr      `"in" @@`
}

// FunDef covers both the binder used by let-forms and a bare `fun ... is ...`
// expression used on its own, e.g. applied immediately as in the factorial
// example in §8.
type FunDef struct {
	Pos     lexer.Position
	Name    string `"fun" @Ident "("`
	ArgName string `@Ident ":"`
	ArgType *Type  `@@ ")" ":"`
	RetType *Type  `@@ "is"`
	Body    *Expr  `@@`
}

type IfExpr struct {
	Pos  lexer.Position
	Cond *Expr `"if" @@`
	Tru  *Expr `"then" @@`
	Fls  *Expr `"else" @@`
}

// Type is right-associative: int -> int -> bool parses as int -> (int -> bool).
type Type struct {
	Pos    lexer.Position
	Atom   *AtomType `@@`
	Result *Type     `[ "->" @@ ]`
}

type AtomType struct {
	Pos   lexer.Position
	Name  string `  @("int" | "bool")`
	Paren *Type  `| "(" @@ ")"`
}

// CmpExpr is deliberately non-chaining: at most one comparison operator may
// appear, so `1 < 2 < 3` is a parse error rather than a silently wrong tree.
type CmpExpr struct {
	Pos  lexer.Position
	Left *AddExpr `@@`
	Tail *CmpTail `@@?`
}

type CmpTail struct {
	Operator string   `@("<" | "==" | ">")`
	Right    *AddExpr `@@`
}

type AddExpr struct {
	Pos  lexer.Position
	Left *MulExpr `@@`
	Ops  []*AddOp `{ @@ }`
}

type AddOp struct {
	Operator string   `@("+" | "-")`
	Right    *MulExpr `@@`
}

type MulExpr struct {
	Pos  lexer.Position
	Left *AppExpr `@@`
	Ops  []*MulOp `{ @@ }`
}

type MulOp struct {
	Operator string   `@("*" | "/")`
	Right    *AppExpr `@@`
}

// AppExpr is left-associative juxtaposition application: `f x y` parses as
// `(f x) y`, binding tighter than any binary operator.
type AppExpr struct {
	Pos  lexer.Position
	Head *Primary   `@@`
	Rest []*Primary `{ @@ }`
}

type Primary struct {
	Pos   lexer.Position
	Int   *string `  @Int`
	Bool  *string `| @("true" | "false")`
	Fun   *FunDef `| @@`
	Ident *string `| @Ident`
	Paren *Expr   `| "(" @@ ")"`
}
