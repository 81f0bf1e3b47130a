// Package pipeline wires the external collaborators (parser, typechecker)
// to the core: parse -> typecheck -> desugar -> compile -> execute. It is
// the one place that assembles the whole data flow described in §2, and
// is what both the CLI and the REPL call into.
package pipeline

import (
	"fmt"

	"github.com/alecthomas/participle/v2"

	"miniml/internal/ast"
	"miniml/internal/compile"
	"miniml/internal/desugar"
	"miniml/internal/errors"
	"miniml/internal/parser"
	"miniml/internal/typecheck"
	"miniml/internal/vm"
)

// TypeError wraps the batch of errors a failed type check produced, so
// callers can format them with the shared diagnostics reporter.
type TypeError struct {
	Errors []errors.CompilerError
}

func (e *TypeError) Error() string {
	if len(e.Errors) == 0 {
		return "type error"
	}
	return e.Errors[0].Message
}

// ParseError wraps a single parser failure as a CompilerError so callers
// can format it through the same ErrorReporter as a TypeError, rather than
// an unstructured string.
type ParseError struct {
	Err errors.CompilerError
}

func (e *ParseError) Error() string { return e.Err.Message }

// wrapParseError turns a raw parser error into a *ParseError when it
// carries a source position (every participle.Error does), following the
// same type assertion the CLI front end uses (cmd/kanso-cli/main.go in the
// pack). Errors that don't implement participle.Error are returned wrapped
// with a "parse error:" prefix.
func wrapParseError(err error) error {
	perr, ok := err.(participle.Error)
	if !ok {
		return fmt.Errorf("parse error: %w", err)
	}
	pos := perr.Position()
	return &ParseError{Err: errors.NewParseError(
		ast.Position{Filename: pos.Filename, Line: pos.Line, Column: pos.Column, Offset: pos.Offset},
		perr.Message(),
	)}
}

// RunSource parses, type-checks, desugars, compiles, and executes a
// single MiniML expression, using name only to tag diagnostics.
func RunSource(name, source string) (vm.Value, error) {
	surface, err := parser.ParseSource(name, source)
	if err != nil {
		return nil, wrapParseError(err)
	}
	return run(surface)
}

// RunFile is the file-driven counterpart of RunSource.
func RunFile(path string) (vm.Value, error) {
	surface, err := parser.ParseFile(path)
	if err != nil {
		return nil, wrapParseError(err)
	}
	return run(surface)
}

// Diagnose parses and type-checks source without compiling or executing it,
// returning every CompilerError the typechecker collected. A non-nil parse
// error means the typechecker never ran. It is the entry point editor
// tooling uses, since running untrusted in-progress edits through the VM
// would be both pointless and unsafe.
func Diagnose(name, source string) (ast.Expr, ast.Type, []errors.CompilerError, error) {
	surface, err := parser.ParseSource(name, source)
	if err != nil {
		return nil, nil, nil, err
	}
	ty, typeErrs := typecheck.NewChecker().Check(surface)
	return surface, ty, typeErrs, nil
}

func run(surface ast.Expr) (vm.Value, error) {
	_, typeErrs := typecheck.NewChecker().Check(surface)
	if len(typeErrs) > 0 {
		return nil, &TypeError{Errors: typeErrs}
	}
	coreExpr := desugar.Desugar(surface)
	prog := compile.Compile(coreExpr)
	return vm.Run(prog)
}
