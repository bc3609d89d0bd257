package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotox/internal/program"
)

func TestNondetTransformerLowersI32(t *testing.T) {
	i32 := program.Signed(32)
	x := program.Variable("f::x", i32, program.Location{Function: "f"})
	table := program.NewSymbolTable(program.DefaultMachineModel()).MustInsert(x,
		function("f", i32,
			&program.Decl{Symbol: x.Expr(), Value: &program.NondetExpr{Typ: i32}},
			&program.Assign{LHS: x.Expr(), RHS: &program.NondetExpr{Typ: i32}},
			&program.Return{Value: x.Expr()},
		))

	out, err := NewNondetTransformer("").Transform(table)
	require.NoError(t, err)
	requireClosed(t, out)

	assert.Equal(t, []string{"f::x", "nondet_i32", "f"}, out.Names())
	fn, ok := out.Lookup("nondet_i32")
	require.True(t, ok)
	assert.True(t, fn.IsExtern)
	assert.Nil(t, fn.Body)
	code := fn.Type.(*program.CodeType)
	assert.Empty(t, code.Parameters)
	assert.True(t, program.TypesEqual(i32, code.ReturnType()))

	stmts := body(t, out, "f")
	call, ok := stmts[0].(*program.Decl).Value.(*program.CallExpr)
	require.True(t, ok)
	assert.Equal(t, "nondet_i32", call.Function.(*program.SymbolExpr).Identifier)
	assert.Empty(t, call.Args)
	assert.True(t, program.TypesEqual(i32, call.Typ))
	assert.Equal(t, "nondet_i32()", stmts[1].(*program.Assign).RHS.String())

	assert.Zero(t, program.CountNodes(out, func(n program.Node) bool {
		_, ok := n.(*program.NondetExpr)
		return ok
	}))
}

func TestNondetTransformerOneFunctionPerType(t *testing.T) {
	ptr := program.Pointer(program.Unsigned(8))
	table := program.NewSymbolTable(program.DefaultMachineModel()).MustInsert(
		function("f", program.Void(),
			&program.ExprStmt{Expr: &program.NondetExpr{Typ: program.Bool()}},
			&program.ExprStmt{Expr: &program.NondetExpr{Typ: ptr}},
			&program.ExprStmt{Expr: &program.NondetExpr{Typ: program.Bool()}},
		),
		function("g", program.Void(),
			&program.ExprStmt{Expr: &program.NondetExpr{Typ: program.Pointer(program.Unsigned(8))}},
		),
	)

	out, err := NewNondetTransformer("").Transform(table)
	require.NoError(t, err)
	requireClosed(t, out)

	assert.Equal(t, []string{"nondet_bool", "nondet_ptr_u8", "f", "g"}, out.Names())
}

func TestNondetTransformerPrefixAndCollisions(t *testing.T) {
	u16 := program.Unsigned(16)
	taken := program.Function("havoc_u16", &program.CodeType{Return: program.Void()})
	table := program.NewSymbolTable(program.DefaultMachineModel()).MustInsert(taken,
		function("f", u16, &program.Return{Value: &program.NondetExpr{Typ: u16}}))

	out, err := NewNondetTransformer("havoc_").Transform(table)
	require.NoError(t, err)
	requireClosed(t, out)

	assert.True(t, out.Contains("havoc_u16$1"))
}

func TestNondetTransformerDistinctTypesSharingAnIdent(t *testing.T) {
	tagA := program.StructTag("FooBar")
	tagB := program.StructTag("foo_bar")
	table := program.NewSymbolTable(program.DefaultMachineModel()).MustInsert(
		&program.Symbol{Name: "FooBar", IsType: true, Type: &program.StructType{Tag: "FooBar"}},
		&program.Symbol{Name: "foo_bar", IsType: true, Type: &program.StructType{Tag: "foo_bar"}},
		function("f", program.Void(),
			&program.ExprStmt{Expr: &program.NondetExpr{Typ: tagA}},
			&program.ExprStmt{Expr: &program.NondetExpr{Typ: tagB}},
		),
	)

	out, err := NewNondetTransformer("").Transform(table)
	require.NoError(t, err)
	requireClosed(t, out)

	assert.True(t, out.Contains("nondet_struct_foo_bar"))
	assert.True(t, out.Contains("nondet_struct_foo_bar$1"))
}

func TestTypeIdent(t *testing.T) {
	tests := []struct {
		typ      program.Type
		expected string
	}{
		{program.Signed(32), "i32"},
		{program.Unsigned(8), "u8"},
		{program.Float(64), "f64"},
		{program.Bool(), "bool"},
		{program.Void(), "void"},
		{program.Pointer(program.Pointer(program.Signed(8))), "ptr_ptr_i8"},
		{program.Array(program.Unsigned(8), 16), "arr16_u8"},
		{program.StructTag("tag-Pair"), "struct_tag_pair"},
		{program.UnionTag("Value"), "union_value"},
		{&program.StructType{}, "struct_anon"},
		{&program.CodeType{}, "fn"},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			assert.Equal(t, test.expected, TypeIdent(test.typ))
		})
	}
}
