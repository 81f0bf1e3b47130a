package vm

import (
	"fmt"

	"miniml/internal/bytecode"
	"miniml/internal/core"
)

// defaultGCInterval mirrors the reference's K≈92 (§4.5): arbitrary, and
// chosen only to stress the collector in tests rather than to model any
// real heap-pressure threshold (§9 open questions).
const defaultGCInterval = 92

// Machine is a single, self-contained fetch-execute loop over one
// Program (§3, §5 "Global state: none"). Nothing about it is shared
// across instances, so a host may run several independently.
type Machine struct {
	prog *bytecode.Program

	values []Value
	envs   []Environment
	acts   []bytecode.Frame
	heap   []Environment

	instrCount int
	gcInterval int
}

func NewMachine(prog *bytecode.Program) *Machine {
	return &Machine{prog: prog, gcInterval: defaultGCInterval}
}

// WithGCInterval overrides the collection period. GC must be a no-op on
// observable behaviour for any interval ≥ 1 (§8); a interval of 0
// disables collection entirely, which is how tests pin down the
// never-GC reference behaviour.
func (m *Machine) WithGCInterval(k int) *Machine {
	m.gcInterval = k
	return m
}

// Run is a convenience wrapper for the common case of executing a whole
// program with default settings.
func Run(prog *bytecode.Program) (Value, error) {
	return NewMachine(prog).Exec()
}

// Exec runs the program to completion, returning the single resulting
// value or the first error encountered (§4.4, §7: no recovery is
// attempted inside the VM).
func (m *Machine) Exec() (Value, error) {
	m.values = nil
	m.acts = nil
	m.heap = nil
	m.instrCount = 0
	m.envs = []Environment{{}}

	entry, err := m.frame(m.prog.Entry)
	if err != nil {
		return nil, err
	}
	m.acts = []bytecode.Frame{entry}

	for len(m.acts) > 0 {
		top := m.acts[len(m.acts)-1]
		m.acts = m.acts[:len(m.acts)-1]
		if len(top) == 0 {
			// A frame falling off its own edge: entry frames and
			// branch continuations terminate this way, not via PopEnv.
			continue
		}
		instr := top[0]
		if len(top) > 1 {
			m.acts = append(m.acts, top[1:])
		}
		if err := m.execute(instr); err != nil {
			return nil, err
		}
		m.instrCount++
		if m.gcInterval > 0 && m.instrCount%m.gcInterval == 0 {
			m.gc()
		}
	}

	if len(m.values) != 1 {
		return nil, newFatal("LeftoverStack", fmt.Sprintf("expected exactly one value on termination, found %d", len(m.values)))
	}
	if len(m.envs) != 1 {
		return nil, newFatal("NoEnvironment", fmt.Sprintf("expected exactly the initial environment on termination, found %d", len(m.envs)))
	}
	return m.values[0], nil
}

func (m *Machine) execute(instr bytecode.Instruction) error {
	switch in := instr.(type) {
	case bytecode.PushInt:
		m.values = append(m.values, Int{Value: in.Value})
		return nil
	case bytecode.PushBool:
		m.values = append(m.values, Bool{Value: in.Value})
		return nil
	case bytecode.ArithInstr:
		return m.execArith(in.Op)
	case bytecode.CmpInstr:
		return m.execCmp(in.Op)
	case bytecode.VarInstr:
		return m.execVar(in.Name)
	case bytecode.Branch:
		return m.execBranch(in)
	case bytecode.ClosureInstr:
		return m.execClosure(in)
	case bytecode.CallInstr:
		return m.execCall()
	case bytecode.PopEnvInstr:
		return m.execPopEnv()
	default:
		return newFatal("RuntimeTypeError", "unrecognised instruction")
	}
}

// Operand order: the left operand is pushed first and so popped second
// (§4.4 tie-breaks), which is why op2 is read before op1 below.

func (m *Machine) execArith(op bytecode.ArithOp) error {
	op2, err := m.popInt()
	if err != nil {
		return err
	}
	op1, err := m.popInt()
	if err != nil {
		return err
	}
	var result int64
	switch op {
	case bytecode.Add:
		result = op1 + op2
	case bytecode.Sub:
		result = op1 - op2
	case bytecode.Mul:
		result = op1 * op2
	case bytecode.Div:
		if op2 == 0 {
			return NewDivisionByZero()
		}
		result = op1 / op2
	}
	m.values = append(m.values, Int{Value: result})
	return nil
}

func (m *Machine) execCmp(op bytecode.CmpOp) error {
	op2, err := m.popInt()
	if err != nil {
		return err
	}
	op1, err := m.popInt()
	if err != nil {
		return err
	}
	var result bool
	switch op {
	case bytecode.Lt:
		result = op1 < op2
	case bytecode.Eq:
		result = op1 == op2
	case bytecode.Gt:
		result = op1 > op2
	}
	m.values = append(m.values, Bool{Value: result})
	return nil
}

func (m *Machine) execVar(name core.Name) error {
	if len(m.envs) == 0 {
		return newFatal("NoEnvironment", "no active environment")
	}
	env := m.envs[len(m.envs)-1]
	v, ok := env[name]
	if !ok {
		return newFatal("UndefinedVariable", fmt.Sprintf("undefined variable n%d", name))
	}
	m.values = append(m.values, v)
	return nil
}

func (m *Machine) execBranch(in bytecode.Branch) error {
	b, err := m.popBool()
	if err != nil {
		return err
	}
	ix := in.Fls
	if b {
		ix = in.Tru
	}
	frame, err := m.frame(ix)
	if err != nil {
		return err
	}
	m.acts = append(m.acts, frame)
	return nil
}

func (m *Machine) execClosure(in bytecode.ClosureInstr) error {
	if len(m.envs) == 0 {
		return newFatal("NoEnvironment", "no active environment to capture")
	}
	current := m.envs[len(m.envs)-1]

	// The self-binding must name the very closure being built, so the
	// heap slot is reserved before the value it will hold is complete.
	ix := len(m.heap)
	m.heap = append(m.heap, nil)
	closureValue := Closure{Arg: in.Arg, Body: in.Body, EnvIndex: ix}
	m.heap[ix] = current.Extend(in.Self, closureValue)
	m.values = append(m.values, closureValue)
	return nil
}

func (m *Machine) execCall() error {
	arg, err := m.popValue()
	if err != nil {
		return err
	}
	callee, err := m.popClosure()
	if err != nil {
		return err
	}
	if callee.EnvIndex < 0 || callee.EnvIndex >= len(m.heap) {
		return newFatal("RuntimeTypeError", "closure env_index out of range")
	}
	bodyFrame, err := m.frame(callee.Body)
	if err != nil {
		return err
	}
	extended := m.heap[callee.EnvIndex].Extend(callee.Arg, arg)
	m.envs = append(m.envs, extended)
	m.acts = append(m.acts, bodyFrame)
	return nil
}

func (m *Machine) execPopEnv() error {
	if len(m.envs) == 0 {
		return newFatal("NoEnvironment", "PopEnv with no active environment")
	}
	m.envs = m.envs[:len(m.envs)-1]
	return nil
}

func (m *Machine) frame(ix int) (bytecode.Frame, error) {
	if ix < 0 || ix >= len(m.prog.Frames) {
		return nil, newFatal("IllegalJump", fmt.Sprintf("frame index %d out of range", ix))
	}
	return m.prog.Frames[ix], nil
}

func (m *Machine) popValue() (Value, error) {
	if len(m.values) == 0 {
		return nil, newFatal("EmptyStack", "popped an empty value stack")
	}
	v := m.values[len(m.values)-1]
	m.values = m.values[:len(m.values)-1]
	return v, nil
}

func (m *Machine) popInt() (int64, error) {
	v, err := m.popValue()
	if err != nil {
		return 0, err
	}
	i, ok := v.(Int)
	if !ok {
		return 0, newFatal("RuntimeTypeError", "expected an Int operand")
	}
	return i.Value, nil
}

func (m *Machine) popBool() (bool, error) {
	v, err := m.popValue()
	if err != nil {
		return false, err
	}
	b, ok := v.(Bool)
	if !ok {
		return false, newFatal("RuntimeTypeError", "expected a Bool operand")
	}
	return b.Value, nil
}

func (m *Machine) popClosure() (Closure, error) {
	v, err := m.popValue()
	if err != nil {
		return Closure{}, err
	}
	c, ok := v.(Closure)
	if !ok {
		return Closure{}, newFatal("RuntimeTypeError", "expected a Closure")
	}
	return c, nil
}
