package ast

import (
	"fmt"
	"strconv"
	"strings"
)

func (v *Var) String() string { return v.Name }

func (v *IntLit) String() string { return strconv.FormatInt(v.Value, 10) }

func (v *BoolLit) String() string { return strconv.FormatBool(v.Value) }

func (b *BinOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Kind, b.Right)
}

func (i *If) String() string {
	return fmt.Sprintf("if %s then %s else %s", i.Cond, i.Tru, i.Fls)
}

func (f *Fun) String() string {
	var b strings.Builder
	b.WriteString("fun ")
	if f.FunName != "" {
		b.WriteString(f.FunName)
	}
	fmt.Fprintf(&b, "(%s: %s): %s is %s", f.ArgName, f.ArgType, f.RetType, f.Body)
	return b.String()
}

func (l *LetFun) String() string {
	return fmt.Sprintf("let %s in %s", l.Fun, l.Body)
}

func (l *LetRec) String() string {
	parts := make([]string, len(l.Funs))
	for i, fn := range l.Funs {
		parts[i] = fn.String()
	}
	return fmt.Sprintf("let rec %s in %s", strings.Join(parts, " and "), l.Body)
}

func (a *Apply) String() string {
	return fmt.Sprintf("(%s %s)", a.Fn, a.Arg)
}
