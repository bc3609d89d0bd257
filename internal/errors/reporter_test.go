package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotox/internal/program"
)

func init() {
	color.NoColor = true
}

func TestErrorReporter(t *testing.T) {
	source := "fn main() -> i32 {\n    return missing();\n}"

	reporter := NewErrorReporter()
	reporter.AddSource("test.symtab", source)

	err := UnresolvedReference("main", "missing", []string{"main", "missng"})
	err.Location = program.Location{File: "test.symtab", Line: 2, Column: 12}
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "error["+ErrorUnresolvedReference+"]")
	assert.Contains(t, formatted, "reference to unknown symbol 'missing'")
	assert.Contains(t, formatted, "test.symtab:2:12")
	assert.Contains(t, formatted, "return missing();")
	assert.Contains(t, formatted, "did you mean 'missng'?")
	assert.Contains(t, formatted, "symbol: main")
}

func TestUnresolvedReferenceWithoutSimilarNames(t *testing.T) {
	err := UnresolvedReference("main", "xyz", []string{"completely_different"})
	assert.Equal(t, ErrorUnresolvedReference, err.Code)
	assert.Equal(t, "xyz", err.Reference)
	assert.Empty(t, err.Suggestions)
	assert.Len(t, err.Notes, 1)
}

func TestUnsupportedConstructError(t *testing.T) {
	err := UnsupportedConstruct("expr", "overflow", "no C rendering")
	err.Symbol = "main"

	assert.Equal(t, KindUnsupportedConstruct, err.Kind)
	assert.Equal(t, "overflow", err.Construct)
	assert.Equal(t, `[E0003] expr: symbol "main": cannot lower overflow: no C rendering`, err.Error())
}

func TestErrorsIsMatchesKind(t *testing.T) {
	wrapped := fmt.Errorf("running pipeline: %w", UnsupportedConstruct("expr", "overflow", ""))

	assert.True(t, stderrors.Is(wrapped, ErrUnsupportedConstruct))
	assert.False(t, stderrors.Is(wrapped, ErrUnresolvedReference))

	pe, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "expr", pe.Pass)
}

func TestUnknownModeSuggestion(t *testing.T) {
	err := UnknownMode("dbug", []string{"c", "debug", "goto"})
	assert.Equal(t, ErrorUnknownMode, err.Code)
	assert.Contains(t, err.Suggestions[0], "debug")
	assert.Contains(t, err.Notes[0], "c, debug, goto")
}

func TestFindSimilarNamesOrdersByDistance(t *testing.T) {
	similar := findSimilarNames("counter", []string{"countr", "counter", "count", "xyz"})
	assert.Equal(t, []string{"countr", "count"}, similar)
}

func TestFormatPlainError(t *testing.T) {
	reporter := NewErrorReporter()
	assert.Equal(t, "error: boom\n", reporter.Format(stderrors.New("boom")))
}

func TestErrorCategories(t *testing.T) {
	assert.Equal(t, "Pipeline", GetErrorCategory(ErrorUnsupportedConstruct))
	assert.Equal(t, "Input", GetErrorCategory(ErrorInvalidInput))
	assert.Equal(t, "Driver", GetErrorCategory(ErrorUnknownMode))
	assert.True(t, IsUpstreamDefect(KindUnresolvedReference))
	assert.False(t, IsUpstreamDefect(KindUnsupportedConstruct))
}
