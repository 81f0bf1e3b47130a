package core

import (
	"fmt"
	"strconv"
)

// Print renders a core expression for debugging; names print as their bare
// integer since the core has already discarded the surface spelling.
func Print(e Expr) string {
	switch n := e.(type) {
	case *Var:
		return "n" + strconv.Itoa(int(n.Name))
	case *IntLit:
		return strconv.FormatInt(n.Value, 10)
	case *BoolLit:
		return strconv.FormatBool(n.Value)
	case *BinOp:
		return fmt.Sprintf("(%s %s %s)", Print(n.Left), n.Kind, Print(n.Right))
	case *If:
		return fmt.Sprintf("if %s then %s else %s", Print(n.Cond), Print(n.Tru), Print(n.Fls))
	case *Fun:
		return fmt.Sprintf("(fun[self=n%d] n%d -> %s)", n.Self, n.Arg, Print(n.Body))
	case *Apply:
		return fmt.Sprintf("(%s %s)", Print(n.Fun), Print(n.Arg))
	default:
		return "<?>"
	}
}
