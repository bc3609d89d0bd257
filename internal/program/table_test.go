package program

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolTableKeepsInsertionOrder(t *testing.T) {
	table := NewSymbolTable(DefaultMachineModel()).MustInsert(
		Variable("z", Signed(32), Location{}),
		Variable("a", Signed(32), Location{}),
		Variable("m", Signed(32), Location{}),
	)

	assert.Equal(t, []string{"z", "a", "m"}, table.Names())
	assert.Equal(t, 3, table.Len())
	syms := table.Symbols()
	require.Len(t, syms, 3)
	assert.Equal(t, "m", syms[2].Name)
}

func TestSymbolTableRejectsDuplicates(t *testing.T) {
	table := NewSymbolTable(DefaultMachineModel()).MustInsert(Variable("x", Bool(), Location{}))

	err := table.Insert(Variable("x", Signed(8), Location{}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateSymbol))
	assert.Error(t, table.Insert(&Symbol{}))
	assert.Equal(t, 1, table.Len())

	assert.Panics(t, func() { table.MustInsert(Variable("x", Bool(), Location{})) })
}

func TestSymbolTableCloneIsIndependent(t *testing.T) {
	table := NewSymbolTable(DefaultMachineModel()).MustInsert(Variable("x", Bool(), Location{}))
	clone := table.Clone()

	sym, _ := clone.Lookup("x")
	sym.IsFileLocal = true
	require.NoError(t, clone.Insert(Variable("y", Bool(), Location{})))

	orig, _ := table.Lookup("x")
	assert.False(t, orig.IsFileLocal)
	assert.False(t, table.Contains("y"))
	assert.Equal(t, table.Machine, clone.Machine)
}

func TestResolveTagAndComponents(t *testing.T) {
	pair := &StructType{Tag: "Pair", Components: []Component{{Name: "a", Type: Signed(32)}}}
	table := NewSymbolTable(DefaultMachineModel()).MustInsert(
		&Symbol{Name: "tag-Pair", Type: pair, IsType: true},
		Variable("not-a-type", pair, Location{}),
	)

	assert.Same(t, pair, table.ResolveTag(StructTag("tag-Pair")))
	assert.Equal(t, StructTag("missing"), table.ResolveTag(StructTag("missing")))
	assert.Equal(t, StructTag("not-a-type"), table.ResolveTag(StructTag("not-a-type")))
	assert.Equal(t, Bool(), table.ResolveTag(Bool()))

	comps, ok := table.Components(StructTag("tag-Pair"))
	require.True(t, ok)
	assert.Equal(t, "a", comps[0].Name)

	_, ok = table.Components(Signed(32))
	assert.False(t, ok)
}

func TestTypesEqual(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Type
		equal bool
	}{
		{"same width", Signed(32), Signed(32), true},
		{"signedness", Signed(32), Unsigned(32), false},
		{"width", Unsigned(8), Unsigned(16), false},
		{"pointers", Pointer(Float(64)), Pointer(Float(64)), true},
		{"pointee", Pointer(Float(64)), Pointer(Float(32)), false},
		{"array size", Array(Bool(), 2), Array(Bool(), 3), false},
		{"tags by identifier", StructTag("a"), StructTag("a"), true},
		{"struct vs union tag", StructTag("a"), UnionTag("a"), false},
		{"nil return is void", &CodeType{}, &CodeType{Return: Void()}, true},
		{"parameter names ignored",
			&CodeType{Parameters: []Parameter{{Identifier: "f::x", Type: Bool()}}},
			&CodeType{Parameters: []Parameter{{Identifier: "g::y", Type: Bool()}}}, true},
		{"variadic", &CodeType{Variadic: true}, &CodeType{}, false},
		{"component names",
			&StructType{Components: []Component{{Name: "a", Type: Bool()}}},
			&StructType{Components: []Component{{Name: "b", Type: Bool()}}}, false},
		{"nil", nil, nil, true},
		{"nil and void", nil, Void(), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.equal, TypesEqual(test.a, test.b))
			assert.Equal(t, test.equal, TypesEqual(test.b, test.a))
		})
	}
}

func TestWidthAndClassification(t *testing.T) {
	w, ok := Width(Unsigned(16))
	assert.True(t, ok)
	assert.Equal(t, 16, w)

	w, ok = Width(Bool())
	assert.True(t, ok)
	assert.Equal(t, 1, w)

	_, ok = Width(Pointer(Bool()))
	assert.False(t, ok)

	assert.True(t, IsScalar(Pointer(Void())))
	assert.False(t, IsScalar(StructTag("s")))
	assert.True(t, IsInteger(Signed(8)))
	assert.False(t, IsInteger(Float(32)))
}
