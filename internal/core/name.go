package core

// Name is a dense non-negative integer identifying a binding occurrence.
// The renamer assigns 2·k to the k-th distinct surface identifier, leaving
// every odd name free for the desugarer to synthesise without ever
// colliding with a user binding (§4.1).
type Name int

const (
	// AnonSelf is the self-name used for lambdas that never recurse by
	// name: the ignored outer binder of `let fun`, and the thunk wrappers
	// produced while desugaring `let rec`.
	AnonSelf Name = 1
	// DispatchFun names the single tag-dispatching function a `let rec`
	// group desugars to, both as its own self-name and as the parameter
	// through which sibling thunks reach it.
	DispatchFun Name = 3
	// DispatchArg names the tag parameter of the dispatch function.
	DispatchArg Name = 5
	// ThunkArg names the argument of each `λx. D j x` sibling thunk. Every
	// thunk is independent — none is nested inside another — so reusing
	// one reserved constant across all of them cannot capture anything.
	ThunkArg Name = 7
)

// Interner maps surface identifier strings to dense Names, stably for the
// lifetime of one desugaring run.
type Interner struct {
	ids  map[string]Name
	next int
}

func NewInterner() *Interner {
	return &Interner{ids: make(map[string]Name)}
}

// Intern returns the Name for s, allocating a fresh even Name the first
// time s is seen and returning the same Name on every later call.
func (in *Interner) Intern(s string) Name {
	if n, ok := in.ids[s]; ok {
		return n
	}
	n := Name(2 * in.next)
	in.next++
	in.ids[s] = n
	return n
}
