package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"main", "main"},
		{"_x1", "_x1"},
		{"main::r", `"main::r"`},
		{"1st", `"1st"`},
		{"while", `"while"`},
		{"i32", `"i32"`},
		{"u8x", "u8x"},
		{"", `""`},
		{"a b", `"a b"`},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			assert.Equal(t, test.expected, FormatName(test.input))
		})
	}
}

func TestTypeStrings(t *testing.T) {
	tests := []struct {
		typ      Type
		expected string
	}{
		{Pointer(Array(Unsigned(8), 4)), "*[4]u8"},
		{StructTag("tag-Pair"), `struct "tag-Pair"`},
		{&UnionType{Components: []Component{{Name: "f", Type: Float(32)}}}, "union { f: f32 }"},
		{&StructType{Tag: "Empty"}, "struct {} as Empty"},
		{&CodeType{
			Parameters: []Parameter{{Identifier: "f::x", Type: Signed(32)}, {Type: Bool()}},
			Variadic:   true,
		}, `fn("f::x": i32, bool, ...) -> void`},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			assert.Equal(t, test.expected, test.typ.String())
		})
	}
}

func TestExpressionStrings(t *testing.T) {
	i32 := Signed(32)
	x := Sym("x", i32)
	p := Sym("p", Pointer(StructTag("s")))

	tests := []struct {
		expr     Expr
		expected string
	}{
		{Int("-3", i32), "-3i32"},
		{Int("7", Unsigned(64)), "7u64"},
		{&UnaryExpr{Op: OpNeg, Operand: Int("2", i32), Typ: i32}, "(- 2i32)"},
		{&UnaryExpr{Op: OpNot, Operand: &BoolConstant{Value: false}, Typ: Bool()}, "(!false)"},
		{&BinaryExpr{Op: OpRol, LHS: x, RHS: Int("1", i32), Typ: i32}, "(x rol 1i32)"},
		{&MemberExpr{Operand: &DereferenceExpr{Operand: p, Typ: StructTag("s")}, Field: "0", Typ: i32}, `(*p)."0"`},
		{&IndexExpr{Array: Sym("a", Array(i32, 2)), Index: Int("1", i32), Typ: i32}, "a[1i32]"},
		{&CallExpr{Function: &DereferenceExpr{Operand: Sym("fp", Pointer(&CodeType{})), Typ: &CodeType{}}, Typ: Void()}, "((*fp))()"},
		{&CastExpr{Operand: x, Typ: Unsigned(8)}, "cast<u8>(x)"},
		{&NondetExpr{Typ: Bool()}, "nondet<bool>"},
		{&OverflowExpr{Op: OpShl, LHS: x, RHS: x}, "overflow(<<, x, x)"},
		{&IfExpr{Cond: &BoolConstant{Value: true}, Then: x, Else: x, Typ: i32}, "select(true, x, x)"},
		{&StringConstant{Value: "hi\n", Typ: Array(Unsigned(8), 4)}, `c"hi\n"`},
		{&StatementExpr{Stmts: []Stmt{&ExprStmt{Expr: x}}, Typ: i32}, "({ x; } : i32)"},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			assert.Equal(t, test.expected, test.expr.String())
		})
	}
}

func TestFormatStmt(t *testing.T) {
	i32 := Signed(32)
	body := &Block{Stmts: []Stmt{
		&Decl{Symbol: Sym("f::r", i32), Value: Int("0", i32)},
		&IfThenElse{
			Cond: &BinaryExpr{Op: OpLt, LHS: Sym("f::r", i32), RHS: Int("3", i32), Typ: Bool()},
			Then: &Goto{Label: "done"},
			Else: &Skip{},
		},
		&Label{Label: "done", Body: &Assert{Cond: &BoolConstant{Value: true}, Message: "ok"}},
		&Return{},
	}}

	expected := `{
    decl "f::r": i32 = 0i32;
    if ("f::r" < 3i32) {
        goto done;
    } else {
        skip;
    }
    label done: assert(true, c"ok");
    return;
}`
	assert.Equal(t, expected, FormatStmt(body, 0))

	assert.Equal(t, `{ decl "f::r": i32 = 0i32; if ("f::r" < 3i32) { goto done; } else { skip; } label done: assert(true, c"ok"); return; }`,
		FormatStmt(body, -1))
}
