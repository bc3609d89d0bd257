package lsp

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"

	"gotox/grammar"
	"gotox/internal/program"
)

// SemanticTokenTypes is the token type legend advertised to clients.
var SemanticTokenTypes = []string{
	"keyword",
	"type",
	"function",
	"variable",
	"parameter",
	"property",
	"number",
	"string",
	"operator",
	"comment",
}

// SemanticTokenModifiers is the modifier legend; a token's modifiers are a bitmask
// over it.
var SemanticTokenModifiers = []string{
	"declaration",
	"static",
}

// SemanticToken is one entry before delta encoding. Line and StartChar are
// 0-based.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

func tokenType(name string) int {
	for i, t := range SemanticTokenTypes {
		if t == name {
			return i
		}
	}
	return -1
}

func modifierMask(names ...string) int {
	mask := 0
	for _, name := range names {
		for i, m := range SemanticTokenModifiers {
			if m == name {
				mask |= 1 << i
			}
		}
	}
	return mask
}

// words after which a name is being defined
var declaring = map[string]bool{"fn": true, "global": true, "type": true, "decl": true}

// words after which a name is a label or a component
var naming = map[string]bool{"goto": true, "label": true, ".": true}

// collectSemanticTokens lexes source and classifies each token. Names are looked
// up in table, which may be nil or stale; unknown names stay unclassified
// unless the preceding token shows they are labels or components.
func collectSemanticTokens(filename, source string, table *program.SymbolTable) []SemanticToken {
	symbols := grammar.SymtabLexer.Symbols()
	kinds := make(map[lexer.TokenType]string, len(symbols))
	for name, t := range symbols {
		kinds[t] = name
	}

	lex, err := grammar.SymtabLexer.LexString(filename, source)
	if err != nil {
		return nil
	}

	var tokens []SemanticToken
	prev := ""
	for {
		tok, err := lex.Next()
		if err != nil || tok.EOF() {
			break
		}
		kind := kinds[tok.Type]
		if kind == "Whitespace" {
			continue
		}

		typ, mods := classify(kind, tok.Value, prev, table)
		if typ >= 0 && !strings.Contains(tok.Value, "\n") {
			tokens = append(tokens, SemanticToken{
				Line:           uint32(tok.Pos.Line - 1),
				StartChar:      uint32(tok.Pos.Column - 1),
				Length:         uint32(utf8.RuneCountInString(tok.Value)),
				TokenType:      typ,
				TokenModifiers: mods,
			})
		}
		if kind != "Comment" {
			prev = tok.Value
		}
	}
	return tokens
}

func classify(kind, value, prev string, table *program.SymbolTable) (int, int) {
	switch kind {
	case "Comment":
		return tokenType("comment"), 0
	case "CString":
		return tokenType("string"), 0
	case "Integer":
		return tokenType("number"), 0
	case "Operator":
		return tokenType("operator"), 0
	case "Ident":
		if grammar.IsKeyword(value) {
			return tokenType("keyword"), 0
		}
		if grammar.IsPrimitiveType(value) {
			return tokenType("type"), 0
		}
		return classifyName(value, prev, table)
	case "String":
		name, err := strconv.Unquote(value)
		if err != nil {
			return -1, 0
		}
		return classifyName(name, prev, table)
	}
	return -1, 0
}

func classifyName(name, prev string, table *program.SymbolTable) (int, int) {
	if naming[prev] {
		return tokenType("property"), 0
	}
	mods := 0
	if declaring[prev] {
		mods = modifierMask("declaration")
	}
	if table == nil {
		return -1, 0
	}
	sym, ok := table.Lookup(name)
	if !ok {
		return -1, 0
	}

	switch {
	case sym.IsType:
		return tokenType("type"), mods
	case sym.IsParameter:
		return tokenType("parameter"), mods
	}
	if _, ok := sym.Type.(*program.CodeType); ok {
		return tokenType("function"), mods
	}
	if sym.IsStaticLifetime {
		mods |= modifierMask("static")
	}
	return tokenType("variable"), mods
}
