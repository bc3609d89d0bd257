package transform

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotox/internal/program"
)

// templateTable is the table a C++ front end produces for
//
//	template<class T> T x::y();
//	int main() { int r = x::y<int>(); return r; }
func templateTable() *program.SymbolTable {
	i32 := program.Signed(32)
	callee := program.Function("x::y<i32>", &program.CodeType{Return: i32})
	local := program.Variable("main::r", i32, program.Location{File: "main.cpp", Function: "main", Line: 2})
	local.BaseName = "r"

	main := &program.Symbol{
		Name:             "main",
		BaseName:         "main",
		Type:             &program.CodeType{Return: i32},
		IsStaticLifetime: true,
		Location:         program.Location{File: "main.cpp", Line: 2},
		Body: &program.Block{Stmts: []program.Stmt{
			&program.Decl{Symbol: local.Expr(), Value: program.Call(callee.Expr())},
			&program.Return{Value: local.Expr()},
		}},
	}
	return program.NewSymbolTable(program.DefaultMachineModel()).MustInsert(callee, local, main)
}

// function returns a defined function of type fn() -> ret with the given body.
func function(name string, ret program.Type, stmts ...program.Stmt) *program.Symbol {
	return &program.Symbol{
		Name:             name,
		BaseName:         name,
		Type:             &program.CodeType{Return: ret},
		IsStaticLifetime: true,
		Body:             &program.Block{Stmts: stmts},
	}
}

func body(t *testing.T, table *program.SymbolTable, name string) []program.Stmt {
	t.Helper()
	sym, ok := table.Lookup(name)
	require.True(t, ok, "symbol %s missing", name)
	block, ok := sym.Body.(*program.Block)
	require.True(t, ok, "symbol %s has no block body", name)
	return block.Stmts
}

func requireClosed(t *testing.T, table *program.SymbolTable) {
	t.Helper()
	assert.Empty(t, program.Unresolved(table), "table is not referentially closed")
	assert.Empty(t, program.CheckTypes(table), "table is not type consistent")
}

func requireSameTable(t *testing.T, want, got *program.SymbolTable) {
	t.Helper()
	assert.Equal(t, want.Machine, got.Machine)
	assert.Equal(t, want.Names(), got.Names())
	if diff := cmp.Diff(want.Symbols(), got.Symbols()); diff != "" {
		t.Errorf("tables differ (-want +got):\n%s", diff)
	}
}
