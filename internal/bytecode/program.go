package bytecode

import (
	"fmt"
	"strings"
)

// Frame is a straight-line instruction sequence. It ends either by falling
// off the end (the entry frame and branch continuations) or by executing
// PopEnvInstr (every lambda body, §3 Glossary).
type Frame []Instruction

// Program is an ordered collection of frames; Entry names the frame that
// executes first. Every other frame is reached only via a ClosureInstr or
// Branch naming its index.
type Program struct {
	Frames []Frame
	Entry  int
}

// NewFrameIndex reserves space for a frame that will be filled in later and
// returns its index, so the compiler can emit a Branch/ClosureInstr that
// references a frame before that frame's body has been compiled.
func (p *Program) NewFrameIndex() int {
	p.Frames = append(p.Frames, nil)
	return len(p.Frames) - 1
}

func (p *Program) SetFrame(ix int, f Frame) {
	p.Frames[ix] = f
}

// Print renders the program in the instruction syntax of the §6.2
// assembly, one instruction per line, frames separated by a blank line.
// Each frame is headed by a "; frame N" label line, which asm.Parse does
// not accept, so the output is for reading and does not round-trip.
func (p *Program) Print() string {
	var b strings.Builder
	for i, frame := range p.Frames {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "; frame %d\n", i)
		for _, instr := range frame {
			b.WriteString(printInstruction(instr))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func printInstruction(instr Instruction) string {
	switch in := instr.(type) {
	case PushInt:
		return fmt.Sprintf("push %d", in.Value)
	case PushBool:
		return fmt.Sprintf("push %t", in.Value)
	case ArithInstr:
		return in.Op.String()
	case CmpInstr:
		return in.Op.String()
	case VarInstr:
		return fmt.Sprintf("var %d", in.Name)
	case Branch:
		return fmt.Sprintf("branch %d %d", in.Tru, in.Fls)
	case ClosureInstr:
		return fmt.Sprintf("clos %d %d %d", in.Self, in.Arg, in.Body)
	case CallInstr:
		return "call"
	case PopEnvInstr:
		return "ret"
	default:
		return "???"
	}
}
