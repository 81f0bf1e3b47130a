package vm

import (
	"fmt"

	"miniml/internal/core"
)

// Value is implemented by every runtime value the machine can produce.
// Values are cheap and copyable; a Closure's captured environment lives
// on the environment heap, referenced by index rather than by pointer
// (§3, §9 "Closures and environments").
type Value interface{ isValue() }

type Int struct{ Value int64 }
type Bool struct{ Value bool }

// Closure pairs an argument name and a body frame with an index into the
// owning Machine's environment heap. EnvIndex is rewritten by GC; nothing
// else about a Closure ever changes after it is created.
type Closure struct {
	Arg      core.Name
	Body     int
	EnvIndex int
}

func (Int) isValue()     {}
func (Bool) isValue()    {}
func (Closure) isValue() {}

// Display renders a value the way the CLI and end-to-end tests expect
// results printed, e.g. "Int(92)".
func Display(v Value) string {
	switch val := v.(type) {
	case Int:
		return fmt.Sprintf("Int(%d)", val.Value)
	case Bool:
		return fmt.Sprintf("Bool(%t)", val.Value)
	case Closure:
		return "<closure>"
	default:
		return "<?>"
	}
}
