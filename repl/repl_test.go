package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"gotox/internal/config"
)

func session(input string) string {
	var out bytes.Buffer
	NewSession(config.Default(), &out).Run(strings.NewReader(input))
	return out.String()
}

func TestRunPrintsC(t *testing.T) {
	out := session(`global g: i32 = 1i32;
:run
`)
	assert.Contains(t, out, "int32_t g = 1;")
}

func TestMultiLineItemsUseTheContinuationPrompt(t *testing.T) {
	out := session("fn main() -> i32 {\nreturn 0i32;\n}\n:quit\nglobal never: i32;\n")
	assert.Contains(t, out, CONTINUE)
	assert.Equal(t, 2, strings.Count(out, CONTINUE))
}

func TestModeAndFormat(t *testing.T) {
	out := session(`global "a::b": u8;
:mode goto
:format symtab
:run
`)
	assert.Contains(t, out, `global "a::b": u8;`)

	out = session(`global "a::b": u8;
:format symtab
:run c
`)
	assert.Contains(t, out, "a__b")
}

func TestPasses(t *testing.T) {
	out := session(":passes\n:mode debug\n:passes\n")
	assert.Contains(t, out, "1. name:")
	assert.Contains(t, out, "3. nondet:")
	assert.Contains(t, out, "1. identity:")
}

func TestCheckAndReset(t *testing.T) {
	out := session("fn main() -> i32 { return mian(); }\n:check\n:reset\n:check\n")
	assert.Contains(t, out, "mian")
	assert.Contains(t, out, "ok: 0 symbol(s)")
}

func TestErrorsAreReported(t *testing.T) {
	out := session(":mode fast\n:format xml\n:frobnicate\nfn (\n:run\n")
	assert.Contains(t, out, "unknown mode 'fast'")
	assert.Contains(t, out, "unknown output format")
	assert.Contains(t, out, "unknown command :frobnicate")
	assert.Contains(t, out, "syntax error")
}

func TestDump(t *testing.T) {
	out := session("global x: bool = true;\n:dump\n")
	assert.Contains(t, out, "global x: bool = true;")
}
