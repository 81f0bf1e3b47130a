package lsp

import (
	"github.com/alecthomas/participle/v2"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"miniml/internal/errors"
)

// convertParseError turns a participle parse error into a single LSP
// diagnostic. Participle positions are 1-based; LSP wants 0-based.
func convertParseError(err error) protocol.Diagnostic {
	if perr, ok := err.(participle.Error); ok {
		pos := perr.Position()
		return protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: uint32(max0(pos.Line - 1)), Character: uint32(max0(pos.Column - 1))},
				End:   protocol.Position{Line: uint32(max0(pos.Line - 1)), Character: uint32(pos.Column + 4)},
			},
			Severity: severity(protocol.DiagnosticSeverityError),
			Source:   strptr("miniml-parser"),
			Message:  perr.Message(),
		}
	}
	return protocol.Diagnostic{
		Range:    protocol.Range{},
		Severity: severity(protocol.DiagnosticSeverityError),
		Source:   strptr("miniml-parser"),
		Message:  err.Error(),
	}
}

// convertCompilerErrors turns typechecker diagnostics into LSP diagnostics.
func convertCompilerErrors(errs []errors.CompilerError) []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, 0, len(errs))
	for _, e := range errs {
		length := e.Length
		if length <= 0 {
			length = 1
		}
		message := e.Message
		if e.HelpText != "" {
			message = message + " (" + e.HelpText + ")"
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: uint32(max0(e.Position.Line - 1)), Character: uint32(max0(e.Position.Column - 1))},
				End:   protocol.Position{Line: uint32(max0(e.Position.Line - 1)), Character: uint32(max0(e.Position.Column-1) + length)},
			},
			Severity: severity(levelToSeverity(e.Level)),
			Source:   strptr("miniml-typecheck"),
			Message:  e.Code + ": " + message,
		})
	}
	return diagnostics
}

func levelToSeverity(level errors.ErrorLevel) protocol.DiagnosticSeverity {
	if level == errors.Warning {
		return protocol.DiagnosticSeverityWarning
	}
	return protocol.DiagnosticSeverityError
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func severity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity { return &s }
func strptr(s string) *string                                            { return &s }
func boolptr(b bool) *bool                                                { return &b }
