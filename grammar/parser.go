package grammar

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"

	"gotox/internal/errors"
	"gotox/internal/program"
)

var parser = participle.MustBuild[File](
	participle.Lexer(SymtabLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.Unquote("String"),
	participle.UseLookahead(3),
)

// Parse parses source into its syntax tree. Syntax errors are reported as
// InvalidInput pipeline errors carrying the offending position.
func Parse(filename, source string) (*File, error) {
	file, err := parser.ParseString(filename, source)
	if err != nil {
		return nil, syntaxError(filename, err)
	}
	return file, nil
}

// Load parses a textual symbol table and converts it into a program.SymbolTable.
// References to names the file does not define are kept as they are, so the
// result may fail the closure check.
func Load(filename, source string) (*program.SymbolTable, error) {
	file, err := Parse(filename, source)
	if err != nil {
		return nil, err
	}
	return Convert(filename, file)
}

// LoadFile reads and loads the file at path.
func LoadFile(path string) (*program.SymbolTable, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Load(path, string(source))
}

func syntaxError(filename string, err error) error {
	pe, ok := err.(participle.Error)
	if !ok {
		return errors.InvalidInput(err.Error(), program.Location{File: filename})
	}
	pos := pe.Position()
	return errors.InvalidInput("syntax error: "+pe.Message(), program.Location{
		File:   filename,
		Line:   pos.Line,
		Column: pos.Column,
	})
}
