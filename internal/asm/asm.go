package asm

import (
	"fmt"
	"strconv"
	"strings"

	"miniml/internal/bytecode"
	"miniml/internal/core"
)

// Parse reads the small textual assembly described for tests (§6.2): one
// instruction per line, or several separated by semicolons on one line;
// frames are separated by a blank line, and frame 0 is always the entry.
// This surface exists only for tests and diagnostics, never for the
// compiler's own output.
func Parse(source string) (*bytecode.Program, error) {
	blocks := splitFrames(source)
	if len(blocks) == 0 {
		return nil, fmt.Errorf("asm: empty program")
	}
	prog := &bytecode.Program{Entry: 0}
	for range blocks {
		prog.NewFrameIndex()
	}
	for i, block := range blocks {
		frame, err := parseFrame(block)
		if err != nil {
			return nil, fmt.Errorf("asm: frame %d: %w", i, err)
		}
		prog.SetFrame(i, frame)
	}
	return prog, nil
}

func splitFrames(source string) []string {
	var blocks []string
	var current []string
	flush := func() {
		text := strings.TrimSpace(strings.Join(current, "\n"))
		if text != "" {
			blocks = append(blocks, text)
		}
		current = nil
	}
	for _, line := range strings.Split(source, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return blocks
}

func parseFrame(block string) (bytecode.Frame, error) {
	var frame bytecode.Frame
	for _, line := range strings.Split(block, "\n") {
		for _, stmt := range strings.Split(line, ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" || strings.HasPrefix(stmt, "#") {
				continue
			}
			instr, err := parseInstruction(stmt)
			if err != nil {
				return nil, err
			}
			frame = append(frame, instr)
		}
	}
	return frame, nil
}

func parseInstruction(stmt string) (bytecode.Instruction, error) {
	fields := strings.Fields(stmt)
	op, args := fields[0], fields[1:]
	switch op {
	case "push":
		return parsePush(args)
	case "add":
		return bytecode.ArithInstr{Op: bytecode.Add}, nil
	case "sub":
		return bytecode.ArithInstr{Op: bytecode.Sub}, nil
	case "mul":
		return bytecode.ArithInstr{Op: bytecode.Mul}, nil
	case "div":
		return bytecode.ArithInstr{Op: bytecode.Div}, nil
	case "lt":
		return bytecode.CmpInstr{Op: bytecode.Lt}, nil
	case "eq":
		return bytecode.CmpInstr{Op: bytecode.Eq}, nil
	case "gt":
		return bytecode.CmpInstr{Op: bytecode.Gt}, nil
	case "var":
		n, err := parseInts(args, 1)
		if err != nil {
			return nil, err
		}
		return bytecode.VarInstr{Name: core.Name(n[0])}, nil
	case "branch":
		n, err := parseInts(args, 2)
		if err != nil {
			return nil, err
		}
		return bytecode.Branch{Tru: int(n[0]), Fls: int(n[1])}, nil
	case "clos":
		n, err := parseInts(args, 3)
		if err != nil {
			return nil, err
		}
		return bytecode.ClosureInstr{Self: core.Name(n[0]), Arg: core.Name(n[1]), Body: int(n[2])}, nil
	case "call":
		return bytecode.CallInstr{}, nil
	case "ret":
		return bytecode.PopEnvInstr{}, nil
	default:
		return nil, fmt.Errorf("unknown instruction %q", op)
	}
}

func parsePush(args []string) (bytecode.Instruction, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("push takes exactly one operand")
	}
	switch args[0] {
	case "true":
		return bytecode.PushBool{Value: true}, nil
	case "false":
		return bytecode.PushBool{Value: false}, nil
	default:
		v, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("push: invalid operand %q", args[0])
		}
		return bytecode.PushInt{Value: v}, nil
	}
}

func parseInts(args []string, n int) ([]int64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("expected %d operand(s), got %d", n, len(args))
	}
	out := make([]int64, n)
	for i, a := range args {
		v, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid operand %q", a)
		}
		out[i] = v
	}
	return out, nil
}
