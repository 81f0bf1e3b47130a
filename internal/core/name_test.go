package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"miniml/internal/core"
)

func TestInternAssignsDenseEvenNames(t *testing.T) {
	in := core.NewInterner()
	assert.Equal(t, core.Name(0), in.Intern("x"))
	assert.Equal(t, core.Name(2), in.Intern("y"))
	assert.Equal(t, core.Name(4), in.Intern("z"))
}

func TestInternIsStablePerIdentifier(t *testing.T) {
	in := core.NewInterner()
	first := in.Intern("count")
	in.Intern("other")
	second := in.Intern("count")
	assert.Equal(t, first, second)
}

func TestReservedNamesAreOddAndDistinct(t *testing.T) {
	reserved := []core.Name{core.AnonSelf, core.DispatchFun, core.DispatchArg, core.ThunkArg}
	seen := make(map[core.Name]bool)
	for _, n := range reserved {
		assert.Equal(t, int64(1), int64(n)%2, "reserved name %d must be odd", n)
		assert.False(t, seen[n], "reserved name %d duplicated", n)
		seen[n] = true
	}
}

func TestInternedNamesNeverCollideWithReserved(t *testing.T) {
	in := core.NewInterner()
	reserved := map[core.Name]bool{
		core.AnonSelf: true, core.DispatchFun: true, core.DispatchArg: true, core.ThunkArg: true,
	}
	for i, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		n := in.Intern(id)
		assert.False(t, reserved[n], "surface identifier %d (%q) collided with a reserved name", i, id)
	}
}
