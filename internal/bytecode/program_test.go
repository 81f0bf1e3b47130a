package bytecode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miniml/internal/bytecode"
)

func TestNewFrameIndexReservesThenSetFrameFills(t *testing.T) {
	prog := &bytecode.Program{}
	ix := prog.NewFrameIndex()
	assert.Equal(t, 0, ix)
	assert.Nil(t, prog.Frames[ix])

	prog.SetFrame(ix, bytecode.Frame{bytecode.PushInt{Value: 1}})
	require.Len(t, prog.Frames[ix], 1)
}

func TestPrintRendersAssemblySyntax(t *testing.T) {
	prog := &bytecode.Program{
		Frames: []bytecode.Frame{
			{
				bytecode.PushInt{Value: 90},
				bytecode.PushInt{Value: 2},
				bytecode.ArithInstr{Op: bytecode.Add},
			},
		},
		Entry: 0,
	}
	out := prog.Print()
	assert.Contains(t, out, "push 90")
	assert.Contains(t, out, "push 2")
	assert.Contains(t, out, "add")
}

func TestPrintSeparatesFramesWithABlankLine(t *testing.T) {
	prog := &bytecode.Program{
		Frames: []bytecode.Frame{
			{bytecode.ClosureInstr{Self: 1, Arg: 2, Body: 1}},
			{bytecode.VarInstr{Name: 2}, bytecode.PopEnvInstr{}},
		},
	}
	out := prog.Print()
	assert.Contains(t, out, "clos 1 2 1")
	assert.Contains(t, out, "clos 1 2 1\n\n")
	assert.Contains(t, out, "var 2")
	assert.Contains(t, out, "ret")
}
