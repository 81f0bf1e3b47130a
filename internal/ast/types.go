package ast

import "fmt"

// Type is the tiny surface type language: int | bool | τ→τ.
type Type interface {
	isType()
	String() string
}

type IntType struct{}

func (IntType) isType()       {}
func (IntType) String() string { return "int" }

type BoolType struct{}

func (BoolType) isType()       {}
func (BoolType) String() string { return "bool" }

// ArrowType is a monomorphic function type, right-associative.
type ArrowType struct {
	Param  Type
	Result Type
}

func (*ArrowType) isType() {}
func (a *ArrowType) String() string {
	return fmt.Sprintf("(%s -> %s)", a.Param, a.Result)
}

// Equal performs structural comparison; the type language has no variables
// so this is the only notion of equality the checker needs.
func Equal(a, b Type) bool {
	switch x := a.(type) {
	case IntType:
		_, ok := b.(IntType)
		return ok
	case BoolType:
		_, ok := b.(BoolType)
		return ok
	case *ArrowType:
		y, ok := b.(*ArrowType)
		return ok && Equal(x.Param, y.Param) && Equal(x.Result, y.Result)
	default:
		return false
	}
}
