package printer

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotox/internal/errors"
	"gotox/internal/pipeline"
	"gotox/internal/program"
)

func templateTable() *program.SymbolTable {
	i32 := program.Signed(32)
	callee := program.Function("x::y<i32>", &program.CodeType{Return: i32})
	local := program.Variable("main::r", i32, program.Location{Function: "main"})
	main := &program.Symbol{
		Name:             "main",
		BaseName:         "main",
		Type:             &program.CodeType{Return: i32},
		IsStaticLifetime: true,
		Body: &program.Block{Stmts: []program.Stmt{
			&program.Decl{Symbol: local.Expr(), Value: program.Call(callee.Expr())},
			&program.Assign{LHS: local.Expr(), RHS: &program.NondetExpr{Typ: i32}},
			&program.Return{Value: local.Expr()},
		}},
	}
	return program.NewSymbolTable(program.DefaultMachineModel()).MustInsert(callee, local, main)
}

const prelude = `#include <assert.h>
#include <stdbool.h>
#include <stddef.h>
#include <stdint.h>

void __CPROVER_assume(_Bool assumption);
void __CPROVER_assert(_Bool assertion, const char *description);
`

func TestNewPrinter(t *testing.T) {
	printer := NewPrinter(program.NewSymbolTable(program.DefaultMachineModel()))
	require.NotNil(t, printer)
	assert.Equal(t, 0, printer.indent)
	assert.Equal(t, 0, printer.output.Len())
}

func TestPrintTemplateAfterCMode(t *testing.T) {
	out, err := pipeline.Run(pipeline.ModeC, templateTable())
	require.NoError(t, err)

	text, err := Print(out)
	require.NoError(t, err)

	expected := prelude + `
int32_t x__y_LT_i32_GT_(void);
int32_t nondet_i32(void);
int32_t main(void);

int32_t main(void)
{
  int32_t main__r = x__y_LT_i32_GT_();
  main__r = nondet_i32();
  return main__r;
}
`
	assert.Equal(t, expected, text)
}

func TestPrintTypesAndGlobals(t *testing.T) {
	pair := &program.Symbol{
		Name:   "tag_Pair",
		IsType: true,
		Type: &program.StructType{Tag: "Pair", Components: []program.Component{
			{Name: "a", Type: program.Signed(32)},
			{Name: "next", Type: program.Pointer(program.StructTag("tag_Pair"))},
		}},
	}
	counter := &program.Symbol{
		Name:             "counter",
		Type:             program.Unsigned(64),
		Value:            program.Int("0", program.Unsigned(64)),
		IsStaticLifetime: true,
		IsFileLocal:      true,
		IsLValue:         true,
	}
	errno := &program.Symbol{Name: "errno", Type: program.Signed(32), IsExtern: true, IsThreadLocal: true}
	origin := &program.Symbol{
		Name: "origin",
		Type: program.StructTag("tag_Pair"),
		Value: &program.StructExpr{
			Values: []program.Expr{program.Int("-1", program.Signed(32)), program.Int("0", program.Pointer(program.StructTag("tag_Pair")))},
			Typ:    program.StructTag("tag_Pair"),
		},
	}
	table := program.NewSymbolTable(program.DefaultMachineModel()).MustInsert(pair, counter, errno, origin)

	text, err := Print(table)
	require.NoError(t, err)

	expected := prelude + `
struct tag_Pair;
struct tag_Pair {
  int32_t a;
  struct tag_Pair *next;
};

static uint64_t counter = 0ull;
extern _Thread_local int32_t errno;
struct tag_Pair origin = {(-1), ((struct tag_Pair *)0)};
`
	assert.Equal(t, expected, text)
}

func TestDeclarators(t *testing.T) {
	p := NewPrinter(nil)
	fn := &program.CodeType{
		Parameters: []program.Parameter{{Identifier: "x", Type: program.Float(64)}},
		Return:     program.Bool(),
	}
	variadic := &program.CodeType{
		Parameters: []program.Parameter{{Type: program.Pointer(program.Unsigned(8))}},
		Return:     program.Signed(32),
		Variadic:   true,
	}

	tests := []struct {
		typ      program.Type
		name     string
		expected string
	}{
		{program.Signed(32), "x", "int32_t x"},
		{program.Unsigned(12), "x", "unsigned __CPROVER_bitvector[12] x"},
		{program.Float(32), "x", "float x"},
		{program.Pointer(program.Void()), "p", "void *p"},
		{program.Array(program.Unsigned(8), 4), "buf", "uint8_t buf[4]"},
		{program.Array(program.Array(program.Signed(16), 3), 2), "m", "int16_t m[2][3]"},
		{program.Pointer(program.Array(program.Signed(32), 8)), "row", "int32_t (*row)[8]"},
		{program.Array(program.Pointer(program.Signed(32)), 8), "rows", "int32_t *rows[8]"},
		{fn, "f", "_Bool f(double x)"},
		{program.Pointer(fn), "cb", "_Bool (*cb)(double x)"},
		{variadic, "printf", "int32_t printf(uint8_t *, ...)"},
		{program.Pointer(program.Signed(8)), "", "int8_t *"},
		{program.UnionTag("u"), "v", "union u v"},
		{&program.UnionType{Components: []program.Component{
			{Name: "in", Type: program.Float(32)},
			{Name: "out", Type: program.Unsigned(32)},
		}}, "pun", "union { float in; uint32_t out; } pun"},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			assert.Equal(t, test.expected, p.declare(test.typ, test.name))
		})
	}
	assert.NoError(t, p.err)
}

func TestExpressions(t *testing.T) {
	a := program.Sym("a", program.Signed(32))
	b := program.Sym("b", program.Signed(32))
	u := program.Sym("u", program.Unsigned(8))
	flag := program.Sym("flag", program.Bool())
	s := program.Sym("s", program.StructTag("tag_Pair"))

	tests := []struct {
		expr     program.Expr
		expected string
	}{
		{program.Int("7", program.Signed(32)), "7"},
		{program.Int("-7", program.Signed(64)), "(-7ll)"},
		{program.Int("7", program.Unsigned(32)), "7u"},
		{program.Int("7", program.Unsigned(8)), "((uint8_t)7u)"},
		{program.Int("1", program.Bool()), "true"},
		{&program.BinaryExpr{Op: program.OpLShr, LHS: u, RHS: u, Typ: program.Unsigned(8)}, "(u >> u)"},
		{&program.BinaryExpr{Op: program.OpLShr, LHS: a, RHS: b, Typ: program.Signed(32)}, "((int32_t)((uint32_t)a >> b))"},
		{&program.BinaryExpr{Op: program.OpAShr, LHS: a, RHS: b, Typ: program.Signed(32)}, "(a >> b)"},
		{&program.BinaryExpr{Op: program.OpImplies, LHS: flag, RHS: flag, Typ: program.Bool()}, "(!flag || flag)"},
		{&program.UnaryExpr{Op: program.OpNeg, Operand: a, Typ: program.Signed(32)}, "(-a)"},
		{&program.CastExpr{Operand: a, Typ: program.Float(64)}, "((double)a)"},
		{&program.MemberExpr{Operand: s, Field: "a", Typ: program.Signed(32)}, "s.a"},
		{&program.MemberExpr{
			Operand: &program.DereferenceExpr{Operand: program.Sym("p", program.Pointer(program.StructTag("tag_Pair"))), Typ: program.StructTag("tag_Pair")},
			Field:   "a",
			Typ:     program.Signed(32),
		}, "((*p)).a"},
		{&program.IfExpr{Cond: flag, Then: a, Else: b, Typ: program.Signed(32)}, "(flag ? a : b)"},
		{&program.StringConstant{Value: "a \"b\"\n\x01", Typ: program.Array(program.Unsigned(8), 8)}, `"a \"b\"\n\001"`},
		{&program.ArrayExpr{Elems: []program.Expr{u, u}, Typ: program.Array(program.Unsigned(8), 2)}, "((uint8_t [2]){u, u})"},
		{&program.UnionExpr{Field: "in", Value: a, Typ: program.UnionTag("u")}, "((union u){.in = a})"},
		{&program.StatementExpr{
			Stmts: []program.Stmt{
				&program.Decl{Symbol: program.Sym("t", program.Signed(32)), Value: a},
				&program.ExprStmt{Expr: program.Sym("t", program.Signed(32))},
			},
			Typ: program.Signed(32),
		}, "({ int32_t t = a; t; })"},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			p := NewPrinter(nil)
			assert.Equal(t, test.expected, p.expr(test.expr))
			assert.NoError(t, p.err)
		})
	}
}

func TestStatements(t *testing.T) {
	x := program.Sym("x", program.Signed(32))
	cond := &program.BinaryExpr{Op: program.OpGt, LHS: x, RHS: program.Int("0", program.Signed(32)), Typ: program.Bool()}
	body := &program.Block{Stmts: []program.Stmt{
		&program.Label{Label: "loop_head", Body: &program.While{
			Cond: cond,
			Body: &program.Assign{LHS: x, RHS: &program.BinaryExpr{Op: program.OpMinus, LHS: x, RHS: program.Int("1", program.Signed(32)), Typ: program.Signed(32)}},
		}},
		&program.IfThenElse{Cond: program.Sym("flag", program.Bool()), Then: &program.Goto{Label: "loop_head"}, Else: &program.Skip{}},
		&program.Assume{Cond: cond},
		&program.Assert{Cond: cond},
		&program.Assert{Cond: cond, Message: "positive"},
		&program.Return{},
	}}

	p := NewPrinter(nil)
	p.printStmt(body)
	require.NoError(t, p.err)

	expected := `{
  loop_head: while (x > 0) {
    x = (x - 1);
  }
  if (flag) {
    goto loop_head;
  } else {
    ;
  }
  __CPROVER_assume((x > 0));
  assert((x > 0));
  __CPROVER_assert((x > 0), "positive");
  return;
}`
	assert.Equal(t, expected, p.output.String())
}

func TestRejectsUnloweredConstructs(t *testing.T) {
	x := program.Sym("x", program.Unsigned(8))
	tests := []struct {
		name      string
		expr      program.Expr
		construct string
	}{
		{"rotate", &program.BinaryExpr{Op: program.OpRol, LHS: x, RHS: x, Typ: program.Unsigned(8)}, "rol"},
		{"reinterpret", &program.ReinterpretExpr{Operand: x, Typ: program.Signed(8)}, "reinterpret"},
		{"nondet", &program.NondetExpr{Typ: program.Signed(8)}, "nondet"},
		{"overflow", &program.OverflowExpr{Op: program.OpPlus, LHS: x, RHS: x}, "overflow"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			table := program.NewSymbolTable(program.DefaultMachineModel()).MustInsert(
				&program.Symbol{Name: "x", Type: program.Unsigned(8)},
				&program.Symbol{Name: "g", Type: test.expr.Type(), Value: test.expr},
			)
			text, err := Print(table)
			require.Error(t, err)
			assert.Empty(t, text)
			assert.True(t, stderrors.Is(err, errors.ErrUnsupportedConstruct))

			pe, ok := errors.As(err)
			require.True(t, ok)
			assert.Equal(t, test.construct, pe.Construct)
		})
	}
}
