package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fn(name string, ret Type, params []Parameter, stmts ...Stmt) *Symbol {
	return &Symbol{
		Name:             name,
		BaseName:         name,
		Type:             &CodeType{Parameters: params, Return: ret},
		IsStaticLifetime: true,
		Body:             &Block{Stmts: stmts},
	}
}

func TestReferencesAreDeduplicatedInTraversalOrder(t *testing.T) {
	i32 := Signed(32)
	callee := Function("callee", &CodeType{Return: i32})
	main := fn("main", i32, []Parameter{{Identifier: "main::p", Type: StructTag("tag")}},
		&Return{Value: &BinaryExpr{
			Op:  OpPlus,
			LHS: Call(callee.Expr()),
			RHS: Call(callee.Expr()),
			Typ: i32,
		}},
	)

	refs := References(main)
	var ids []string
	for _, r := range refs {
		assert.Equal(t, "main", r.From)
		ids = append(ids, r.Identifier)
	}
	assert.ElementsMatch(t, []string{"main::p", "tag", "callee"}, ids)

	kinds := map[string]ReferenceKind{}
	for _, r := range refs {
		kinds[r.Identifier] = r.Kind
	}
	assert.Equal(t, RefParameter, kinds["main::p"])
	assert.Equal(t, RefTag, kinds["tag"])
	assert.Equal(t, RefSymbol, kinds["callee"])
}

func TestUnresolved(t *testing.T) {
	i32 := Signed(32)
	x := Variable("x", i32, Location{})
	table := NewSymbolTable(DefaultMachineModel()).MustInsert(
		x,
		fn("f", i32, nil, &Return{Value: x.Expr()}),
		fn("g", i32, nil, &Return{Value: Sym("y", i32)}),
	)

	refs := Unresolved(table)
	require.Len(t, refs, 1)
	assert.Equal(t, Reference{From: "g", Identifier: "y", Kind: RefSymbol}, refs[0])

	require.NoError(t, table.Insert(Variable("y", i32, Location{})))
	assert.Empty(t, Unresolved(table))
}

func TestCheckTypes(t *testing.T) {
	i32, u8 := Signed(32), Unsigned(8)
	x := Variable("x", i32, Location{})
	callee := Function("callee", &CodeType{Return: i32})
	table := NewSymbolTable(DefaultMachineModel()).MustInsert(
		x,
		callee,
		&Symbol{Name: "bad_init", Type: u8, Value: Int("1", i32), IsLValue: true},
		fn("f", Void(), nil,
			&Assign{LHS: x.Expr(), RHS: Sym("x", u8)},
			&ExprStmt{Expr: &CallExpr{Function: callee.Expr(), Typ: u8}},
			&Decl{Symbol: Sym("f::t", i32), Value: Int("0", u8)},
		),
	)

	var nodes []string
	for _, m := range CheckTypes(table) {
		nodes = append(nodes, m.Symbol+": "+m.Node)
	}
	assert.Equal(t, []string{
		"bad_init: initializer",
		"f: assignment",
		"f: reference to x",
		"f: call result",
		"f: declaration of f::t",
	}, nodes)
}

func TestImplied(t *testing.T) {
	i32 := Signed(32)
	main := fn("main", i32, []Parameter{{Identifier: "main::argc", Type: i32}, {Type: i32}},
		&Decl{Symbol: Sym("main::r", i32)},
		&IfThenElse{
			Cond: &BoolConstant{Value: true},
			Then: &Decl{Symbol: Sym("main::nested", i32)},
		},
		&Return{Value: Sym("main::r", i32)},
	)
	decl := Function("decl", &CodeType{Parameters: []Parameter{{Identifier: "decl::x", Type: i32}}})
	tag := &Symbol{Name: "t", IsType: true, Type: &CodeType{Parameters: []Parameter{{Identifier: "t::x", Type: i32}}}}
	table := NewSymbolTable(DefaultMachineModel()).MustInsert(main, decl, tag)

	assert.Equal(t, map[string]bool{
		"main::argc":   true,
		"main::r":      true,
		"main::nested": true,
		"decl::x":      true,
	}, Implied(table))
}

func TestCountNodes(t *testing.T) {
	i32 := Signed(32)
	table := NewSymbolTable(DefaultMachineModel()).MustInsert(
		fn("f", i32, nil, &Return{Value: &NondetExpr{Typ: i32}}, &Return{Value: &NondetExpr{Typ: i32}}),
	)
	n := CountNodes(table, func(n Node) bool {
		_, ok := n.(*NondetExpr)
		return ok
	})
	assert.Equal(t, 2, n)
}
