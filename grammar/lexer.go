package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var SymtabLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{Name: "Comment", Pattern: `//[^\n]*`, Action: nil},

		// String literals; c"..." is a string constant, "..." a quoted name
		{Name: "CString", Pattern: `c"(\\.|[^"\\])*"`, Action: nil},
		{Name: "String", Pattern: `"(\\.|[^"\\])*"`, Action: nil},

		// Integer literals with an optional width suffix (order matters: before operators)
		{Name: "Integer", Pattern: `-?[0-9]+([iu][0-9]+)?`, Action: nil},

		// Keywords and Identifiers
		{Name: "Ident", Pattern: `[a-zA-Z_$][a-zA-Z0-9_$]*`, Action: nil},

		// Operators
		{Name: "Operator", Pattern: `(>>>|<<|>>|=>|==|!=|<=|>=|&&|\|\||->|[-+*/%&|^<>=!~])`, Action: nil},

		// Punctuation (must come after operators)
		{Name: "Punctuation", Pattern: `(\.\.\.|[{}[\]():;,.])`, Action: nil},

		// Whitespace
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`, Action: nil},
	},
})

// Keywords are the reserved words of the textual format. Quote a name to use one
// of them as a symbol.
var Keywords = []string{
	"array", "as", "assert", "assume", "auxiliary", "cast", "decl", "else", "extern",
	"false", "file_local", "fn", "global", "goto", "if", "label", "machine", "nondet",
	"overflow", "reinterpret", "return", "rol", "ror", "select", "skip", "static",
	"struct", "thread_local", "true", "type", "union", "while",
}

// IsKeyword reports whether word is reserved.
func IsKeyword(word string) bool {
	for _, k := range Keywords {
		if k == word {
			return true
		}
	}
	return false
}

// IsPrimitiveType reports whether word names a built-in type such as bool or u32.
func IsPrimitiveType(word string) bool {
	return word == "bool" || word == "void" || bitVectorType.MatchString(word)
}
