package parser

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"

	"miniml/grammar"
	"miniml/internal/ast"
)

var build = newParser()

func newParser() *participle.Parser[grammar.Program] {
	p, err := participle.Build[grammar.Program](
		participle.Lexer(grammar.MiniMLLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(3),
	)
	if err != nil {
		panic(fmt.Errorf("failed to build parser: %w", err))
	}
	return p
}

// ParseFile reads and parses a MiniML source file into a surface AST.
func ParseFile(path string) (ast.Expr, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseSource(path, string(source))
}

// ParseSource parses a string of MiniML source, tagging positions with
// sourceName for diagnostics.
func ParseSource(sourceName, source string) (ast.Expr, error) {
	prog, err := build.ParseString(sourceName, source)
	if err != nil {
		return nil, err
	}
	return convert(prog.Expr, sourceName), nil
}
