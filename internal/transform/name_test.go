package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotox/internal/program"
)

func TestNameTransformerTemplateScenario(t *testing.T) {
	out, err := NewNameTransformer().Transform(templateTable())
	require.NoError(t, err)

	assert.Equal(t, []string{"x__y_LT_i32_GT_", "main__r", "main"}, out.Names())
	requireClosed(t, out)

	callee, _ := out.Lookup("x__y_LT_i32_GT_")
	assert.Equal(t, "x::y<i32>", callee.PrettyName)

	stmts := body(t, out, "main")
	decl := stmts[0].(*program.Decl)
	assert.Equal(t, "main__r", decl.Symbol.Identifier)
	call := decl.Value.(*program.CallExpr)
	assert.Equal(t, "x__y_LT_i32_GT_", call.Function.(*program.SymbolExpr).Identifier)
	ret := stmts[1].(*program.Return)
	assert.Equal(t, "main__r", ret.Value.(*program.SymbolExpr).Identifier)
}

func TestNameTransformerCollisionSuffix(t *testing.T) {
	i32 := program.Signed(32)
	table := program.NewSymbolTable(program.DefaultMachineModel()).MustInsert(
		program.Variable("foo", i32, program.Location{}),
		program.Variable("foo$1", i32, program.Location{}),
		program.Variable("foo ", i32, program.Location{}),
		function("use", i32, &program.Return{Value: program.Sym("foo ", i32)}),
	)

	out, err := NewNameTransformer().Transform(table)
	require.NoError(t, err)

	assert.Equal(t, []string{"foo", "foo$1", "foo$2", "use"}, out.Names())
	ret := body(t, out, "use")[0].(*program.Return)
	assert.Equal(t, "foo$2", ret.Value.(*program.SymbolExpr).Identifier)
	requireClosed(t, out)
}

func TestNameTransformerLegalNamesWinOverEarlierIllegalOnes(t *testing.T) {
	i32 := program.Signed(32)
	table := program.NewSymbolTable(program.DefaultMachineModel()).MustInsert(
		program.Variable("a-b", i32, program.Location{}),
		program.Variable("a_b", i32, program.Location{}),
	)

	out, err := NewNameTransformer().Transform(table)
	require.NoError(t, err)

	assert.Equal(t, []string{"a_b$1", "a_b"}, out.Names())
}

func TestNameTransformerNamesAreLegalAndUnique(t *testing.T) {
	i32 := program.Signed(32)
	table := program.NewSymbolTable(program.DefaultMachineModel()).MustInsert(
		program.Variable("int", i32, program.Location{}),
		program.Variable("int_", i32, program.Location{}),
		program.Variable("x::y", i32, program.Location{}),
		program.Variable("x__y", i32, program.Location{}),
		program.Variable("x.y", i32, program.Location{}),
		program.Variable("0", i32, program.Location{}),
		program.Variable(" ", i32, program.Location{}),
	)

	out, err := NewNameTransformer().Transform(table)
	require.NoError(t, err)
	require.Equal(t, table.Len(), out.Len())

	seen := make(map[string]bool)
	for _, name := range out.Names() {
		assert.True(t, IsLegal(name), "%q is not legal", name)
		assert.False(t, seen[name], "%q is not unique", name)
		seen[name] = true
	}
	assert.Equal(t, []string{"int_$1", "int_", "x__y$1", "x__y", "x_y", "_0", "_"}, out.Names())
}

func TestNameTransformerRenamesComponentsAndTags(t *testing.T) {
	i32, u8 := program.Signed(32), program.Unsigned(8)
	pair := &program.Symbol{
		Name:   "tag-Pair",
		IsType: true,
		Type: &program.StructType{Tag: "Pair", Components: []program.Component{
			{Name: "a", Type: i32},
			{Name: "0", Type: u8},
		}},
	}
	tag := program.StructTag("tag-Pair")
	global := &program.Symbol{Name: "p", Type: tag, IsStaticLifetime: true, IsLValue: true}
	reader := function("read", u8, &program.Return{
		Value: &program.MemberExpr{Operand: global.Expr(), Field: "0", Typ: u8},
	})
	table := program.NewSymbolTable(program.DefaultMachineModel()).MustInsert(reader, pair, global)

	out, err := NewNameTransformer().Transform(table)
	require.NoError(t, err)
	requireClosed(t, out)

	def, ok := out.Lookup("tag_Pair")
	require.True(t, ok)
	components := def.Type.(*program.StructType).Components
	assert.Equal(t, "a", components[0].Name)
	assert.Equal(t, "_0", components[1].Name)

	p, _ := out.Lookup("p")
	assert.Equal(t, "tag_Pair", p.Type.(*program.StructTagType).Identifier)

	member := body(t, out, "read")[0].(*program.Return).Value.(*program.MemberExpr)
	assert.Equal(t, "_0", member.Field)
}

func TestNameTransformerRenamesInlineUnionFields(t *testing.T) {
	u32 := program.Unsigned(32)
	union := &program.UnionType{Components: []program.Component{
		{Name: "as int", Type: u32},
		{Name: "raw", Type: program.Array(program.Unsigned(8), 4)},
	}}
	fn := function("pick", u32, &program.Return{
		Value: &program.MemberExpr{
			Operand: &program.UnionExpr{Field: "as int", Value: program.Int("7", u32), Typ: union},
			Field:   "as int",
			Typ:     u32,
		},
	})
	table := program.NewSymbolTable(program.DefaultMachineModel()).MustInsert(fn)

	out, err := NewNameTransformer().Transform(table)
	require.NoError(t, err)

	member := body(t, out, "pick")[0].(*program.Return).Value.(*program.MemberExpr)
	assert.Equal(t, "as_int", member.Field)
	assert.Equal(t, "as_int", member.Operand.(*program.UnionExpr).Field)
}

func TestNameTransformerRenamesLabelsPerFunction(t *testing.T) {
	loop := func(name string) *program.Symbol {
		return function(name, program.Void(),
			&program.Label{Label: "loop head", Body: &program.Skip{}},
			&program.Goto{Label: "loop head"},
			&program.Label{Label: "loop_head", Body: &program.Skip{}},
		)
	}
	table := program.NewSymbolTable(program.DefaultMachineModel()).MustInsert(loop("f"), loop("g"))

	out, err := NewNameTransformer().Transform(table)
	require.NoError(t, err)

	for _, name := range []string{"f", "g"} {
		stmts := body(t, out, name)
		assert.Equal(t, "loop_head$1", stmts[0].(*program.Label).Label)
		assert.Equal(t, "loop_head$1", stmts[1].(*program.Goto).Label)
		assert.Equal(t, "loop_head", stmts[2].(*program.Label).Label)
	}
}

func TestNameTransformerRenamesLabelsInInitializers(t *testing.T) {
	i32 := program.Signed(32)
	g := program.Variable("g", i32, program.Location{})
	g.Value = &program.StatementExpr{
		Stmts: []program.Stmt{
			&program.Label{Label: "l::x", Body: &program.Skip{}},
			&program.Goto{Label: "l::x"},
			&program.ExprStmt{Expr: program.Int("1", i32)},
		},
		Typ: i32,
	}
	table := program.NewSymbolTable(program.DefaultMachineModel()).MustInsert(g)

	out, err := NewNameTransformer().Transform(table)
	require.NoError(t, err)

	sym, ok := out.Lookup("g")
	require.True(t, ok)
	se, ok := sym.Value.(*program.StatementExpr)
	require.True(t, ok, "expected statement expression, got %s", sym.Value)
	require.Len(t, se.Stmts, 3)
	assert.Equal(t, "l__x", se.Stmts[0].(*program.Label).Label)
	assert.Equal(t, "l__x", se.Stmts[1].(*program.Goto).Label)
}

func TestNameTransformerRenamesParameters(t *testing.T) {
	i32 := program.Signed(32)
	param := program.Variable("f::x", i32, program.Location{Function: "f::"})
	param.IsParameter = true
	param.BaseName = "x"
	fn := &program.Symbol{
		Name: "f::",
		Type: &program.CodeType{
			Parameters: []program.Parameter{{Identifier: "f::x", BaseName: "x", Type: i32}},
			Return:     i32,
		},
		Body: &program.Block{Stmts: []program.Stmt{&program.Return{Value: param.Expr()}}},
	}
	table := program.NewSymbolTable(program.DefaultMachineModel()).MustInsert(param, fn)

	out, err := NewNameTransformer().Transform(table)
	require.NoError(t, err)
	requireClosed(t, out)

	renamed, ok := out.Lookup("f__")
	require.True(t, ok)
	assert.Equal(t, "f__x", renamed.Type.(*program.CodeType).Parameters[0].Identifier)

	x, _ := out.Lookup("f__x")
	assert.Equal(t, "f__", x.Location.Function)
	assert.Equal(t, "f::x", x.PrettyName)
}

func TestNameTransformerIsDeterministic(t *testing.T) {
	first, err := NewNameTransformer().Transform(templateTable())
	require.NoError(t, err)
	second, err := NewNameTransformer().Transform(templateTable())
	require.NoError(t, err)

	requireSameTable(t, first, second)
}
