package compile

import (
	"miniml/internal/ast"
	"miniml/internal/bytecode"
	"miniml/internal/core"
)

// Compiler emits one frame per lambda body and per if-branch continuation,
// post-order over the core IR (§4.3). It carries no other state: frames
// are addressed by index into the Program being built, so nothing needs
// threading through the recursion besides the Program itself.
type Compiler struct {
	prog *bytecode.Program
}

// Compile lowers a core expression to a Program whose entry frame, when
// executed, leaves that expression's value as the sole element of the
// value stack.
func Compile(e core.Expr) *bytecode.Program {
	c := &Compiler{prog: &bytecode.Program{}}
	entry := c.prog.NewFrameIndex()
	c.prog.SetFrame(entry, c.compileInto(e, nil))
	c.prog.Entry = entry
	return c.prog
}

func (c *Compiler) compileInto(e core.Expr, frame bytecode.Frame) bytecode.Frame {
	switch n := e.(type) {
	case *core.IntLit:
		return append(frame, bytecode.PushInt{Value: n.Value})
	case *core.BoolLit:
		return append(frame, bytecode.PushBool{Value: n.Value})
	case *core.Var:
		return append(frame, bytecode.VarInstr{Name: n.Name})
	case *core.BinOp:
		frame = c.compileInto(n.Left, frame)
		frame = c.compileInto(n.Right, frame)
		return append(frame, binOpInstruction(n.Kind))
	case *core.If:
		frame = c.compileInto(n.Cond, frame)
		truIx := c.compileContinuation(n.Tru)
		flsIx := c.compileContinuation(n.Fls)
		return append(frame, bytecode.Branch{Tru: truIx, Fls: flsIx})
	case *core.Fun:
		bodyIx := c.compileClosureBody(n.Body)
		return append(frame, bytecode.ClosureInstr{Self: n.Self, Arg: n.Arg, Body: bodyIx})
	case *core.Apply:
		frame = c.compileInto(n.Fun, frame)
		frame = c.compileInto(n.Arg, frame)
		return append(frame, bytecode.CallInstr{})
	default:
		panic("compile: unhandled core expression")
	}
}

// compileContinuation compiles e into a brand new frame with no trailing
// PopEnv: if and branch arms are continuations of the calling frame, not
// lambda bodies, so they fall off the edge rather than popping an
// environment (§4.3).
func (c *Compiler) compileContinuation(e core.Expr) int {
	ix := c.prog.NewFrameIndex()
	c.prog.SetFrame(ix, c.compileInto(e, nil))
	return ix
}

// compileClosureBody compiles e into a new frame terminated by PopEnv,
// matching the environment Call pushed on entry to this frame.
func (c *Compiler) compileClosureBody(e core.Expr) int {
	ix := c.prog.NewFrameIndex()
	body := append(c.compileInto(e, nil), bytecode.PopEnvInstr{})
	c.prog.SetFrame(ix, body)
	return ix
}

func binOpInstruction(k ast.BinOpKind) bytecode.Instruction {
	switch k {
	case ast.Add:
		return bytecode.ArithInstr{Op: bytecode.Add}
	case ast.Sub:
		return bytecode.ArithInstr{Op: bytecode.Sub}
	case ast.Mul:
		return bytecode.ArithInstr{Op: bytecode.Mul}
	case ast.Div:
		return bytecode.ArithInstr{Op: bytecode.Div}
	case ast.Lt:
		return bytecode.CmpInstr{Op: bytecode.Lt}
	case ast.Eq:
		return bytecode.CmpInstr{Op: bytecode.Eq}
	case ast.Gt:
		return bytecode.CmpInstr{Op: bytecode.Gt}
	default:
		panic("compile: unhandled binop kind")
	}
}
