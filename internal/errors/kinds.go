package errors

import "miniml/internal/ast"

// Error codes for the MiniML toolchain. Only the two collaborators that
// sit in front of the core — the parser and the typechecker — report
// through CompilerError; the core itself never constructs one (§7).
const (
	ErrorParse        = "E0100"
	ErrorUndefinedVar = "E0001"
	ErrorTypeMismatch = "E0002"
	ErrorNotAFunction = "E0003"
)

// NewParseError wraps a participle parse failure in a CompilerError so it
// can go through the same ErrorReporter as type errors instead of a bare
// fmt.Errorf string. pos and message come straight from the participle.Error
// the caller already type-asserted (see pipeline.RunSource).
func NewParseError(pos ast.Position, message string) CompilerError {
	return CompilerError{
		Level:    Error,
		Code:     ErrorParse,
		Message:  message,
		Position: pos,
		Length:   1,
	}
}

// NewTypeError builds a one-line type error at pos, with an expected/actual
// pair rendered as a help note.
func NewTypeError(pos ast.Position, message string, expected, actual ast.Type) CompilerError {
	err := CompilerError{
		Level:    Error,
		Code:     ErrorTypeMismatch,
		Message:  message,
		Position: pos,
		Length:   1,
	}
	if expected != nil && actual != nil {
		err.HelpText = "expected " + expected.String() + ", found " + actual.String()
	}
	return err
}

// NewUndefinedVariableError reports a use of an identifier with no binding
// in scope.
func NewUndefinedVariableError(pos ast.Position, name string) CompilerError {
	return CompilerError{
		Level:    Error,
		Code:     ErrorUndefinedVar,
		Message:  "undefined variable `" + name + "`",
		Position: pos,
		Length:   len(name),
	}
}

// NewNotAFunctionError reports an application whose callee did not type to
// an arrow type.
func NewNotAFunctionError(pos ast.Position, actual ast.Type) CompilerError {
	return CompilerError{
		Level:    Error,
		Code:     ErrorNotAFunction,
		Message:  "cannot apply a value of type " + actual.String(),
		Position: pos,
		Length:   1,
	}
}
