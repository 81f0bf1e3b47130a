package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"miniml/internal/ast"
)

// ErrorLevel is the severity of a CompilerError.
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
)

// CompilerError is one position-tagged diagnostic from the parser or the
// typechecker — the core itself never constructs one (§7 keeps the VM's
// own RuntimeError/FatalError pair entirely separate from this type).
// MiniML's checkers report one fact per error and nothing builds a list
// of suggested fixes or a trail of notes, so this is just a code, a
// message, and an optional one-line elaboration.
type CompilerError struct {
	Level    ErrorLevel
	Code     string // e.g. E0001
	Message  string
	Position ast.Position
	Length   int // width, in columns, of the offending span
	HelpText string
}

// ErrorReporter renders CompilerErrors against the source they came from:
// a colored "error[CODE]: message" header, a `-->` location line, the
// source line itself with a caret underline beneath the offending span,
// and an optional help line.
type ErrorReporter struct {
	filename string
	lines    []string
}

func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{filename: filename, lines: strings.Split(source, "\n")}
}

// FormatError renders a single diagnostic, newline-terminated and padded
// with one trailing blank line so multiple diagnostics can be printed
// back to back.
func (r *ErrorReporter) FormatError(e CompilerError) string {
	gutter := max(3, digits(e.Position.Line))
	pad := strings.Repeat(" ", gutter)
	dim := color.New(color.Faint).SprintFunc()

	var b strings.Builder
	fmt.Fprintln(&b, r.renderHeader(e))
	fmt.Fprintf(&b, "%s%s %s:%d:%d\n", pad, dim("-->"), r.filename, e.Position.Line, e.Position.Column)
	fmt.Fprintf(&b, "%s %s\n", pad, dim("│"))

	if line, ok := r.lineAt(e.Position.Line); ok {
		fmt.Fprintf(&b, "%*d %s %s\n", gutter, e.Position.Line, dim("│"), line)
		fmt.Fprintf(&b, "%s %s %s\n", pad, dim("│"), r.renderUnderline(e))
	}

	if e.HelpText != "" {
		help := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(&b, "%s %s %s %s\n", pad, dim("│"), help("help:"), e.HelpText)
	}
	b.WriteString("\n")
	return b.String()
}

func (r *ErrorReporter) renderHeader(e CompilerError) string {
	paint := levelColor(e.Level)
	if e.Code == "" {
		return fmt.Sprintf("%s: %s", paint(string(e.Level)), e.Message)
	}
	return fmt.Sprintf("%s[%s]: %s", paint(string(e.Level)), e.Code, e.Message)
}

func (r *ErrorReporter) renderUnderline(e CompilerError) string {
	width := e.Length
	if width <= 0 {
		width = 1
	}
	lead := strings.Repeat(" ", max(0, e.Position.Column-1))
	return lead + levelColor(e.Level)(strings.Repeat("^", width))
}

func (r *ErrorReporter) lineAt(line int) (string, bool) {
	if line <= 0 || line > len(r.lines) {
		return "", false
	}
	return r.lines[line-1], true
}

func levelColor(level ErrorLevel) func(...interface{}) string {
	if level == Warning {
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	}
	return color.New(color.FgRed, color.Bold).SprintFunc()
}

func digits(n int) int {
	return len(fmt.Sprintf("%d", n))
}
