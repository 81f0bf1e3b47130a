package typecheck

import "miniml/internal/ast"

// Scope is a lexical chain of name-to-type bindings, the same shape as the
// teacher's SymbolTable but specialised to the tiny type language: no
// mutability or usage tracking is needed since MiniML has no assignment.
type Scope struct {
	bindings map[string]ast.Type
	parent   *Scope
}

func NewScope(parent *Scope) *Scope {
	return &Scope{bindings: make(map[string]ast.Type), parent: parent}
}

func (s *Scope) Define(name string, t ast.Type) {
	s.bindings[name] = t
}

func (s *Scope) Lookup(name string) (ast.Type, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if t, ok := scope.bindings[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// Extend returns a fresh child scope with one binding installed, leaving the
// receiver untouched; the checker uses this so sibling branches of an
// expression never see each other's bindings.
func (s *Scope) Extend(name string, t ast.Type) *Scope {
	child := NewScope(s)
	child.Define(name, t)
	return child
}
