package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// MiniMLLexer tokenises MiniML source. Order matters: longer operators must
// be tried before their single-character prefixes, and keywords must be
// tried before Ident so that a keyword never lexes as an identifier.
var MiniMLLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `//[^\n]*`, nil},
		{"Keyword", `(let|rec|fun|is|in|and|if|then|else|true|false|int|bool)\b`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Int", `[0-9]+`, nil},
		{"Arrow", `->`, nil},
		{"Operator", `(==|[-+*/<>():])`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
