package bytecode

import "miniml/internal/core"

// ArithOp and CmpOp are the two families of binary operator the machine
// executes; Eq lives in CmpOp even though the surface spells it "==",
// since the VM treats it exactly like Lt/Gt (§4.4).
type ArithOp int

const (
	Add ArithOp = iota
	Sub
	Mul
	Div
)

func (o ArithOp) String() string {
	return [...]string{"add", "sub", "mul", "div"}[o]
}

type CmpOp int

const (
	Lt CmpOp = iota
	Eq
	Gt
)

func (o CmpOp) String() string {
	return [...]string{"lt", "eq", "gt"}[o]
}

// Instruction is implemented by every opcode the machine can fetch and
// execute. Dispatch happens via a type switch in the VM's fetch-execute
// loop (§4.4), not through virtual methods (§9): the marker method below
// exists only to close the Instruction sum, not to carry behaviour.
type Instruction interface {
	isInstruction()
}

type PushInt struct{ Value int64 }
type PushBool struct{ Value bool }
type ArithInstr struct{ Op ArithOp }
type CmpInstr struct{ Op CmpOp }
type VarInstr struct{ Name core.Name }

// Branch names the two frames to push as continuations; the fetch step has
// already returned the current frame's remaining tail to the activation
// stack before a Branch executes, so execution resumes there once the
// chosen branch frame falls off its own edge.
type Branch struct {
	Tru int
	Fls int
}

// ClosureInstr allocates a closure over the current environment.
type ClosureInstr struct {
	Self Name
	Arg  Name
	Body int
}

type CallInstr struct{}

// PopEnvInstr discards one environment; emitted at the end of every lambda
// body frame, never at the end of entry or branch-continuation frames.
type PopEnvInstr struct{}

// Name re-exports core.Name so bytecode consumers never need to import
// core directly just to read an instruction's operand.
type Name = core.Name

func (PushInt) isInstruction()      {}
func (PushBool) isInstruction()     {}
func (ArithInstr) isInstruction()   {}
func (CmpInstr) isInstruction()     {}
func (VarInstr) isInstruction()     {}
func (Branch) isInstruction()       {}
func (ClosureInstr) isInstruction() {}
func (CallInstr) isInstruction()    {}
func (PopEnvInstr) isInstruction()  {}
