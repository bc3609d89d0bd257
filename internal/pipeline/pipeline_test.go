package pipeline

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotox/internal/errors"
	"gotox/internal/program"
	"gotox/internal/transform"
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

func TestPassSequences(t *testing.T) {
	tests := []struct {
		mode     Mode
		expected []string
	}{
		{ModeGoto, []string{"identity"}},
		{ModeC, []string{"name", "expr", "nondet"}},
		{ModeDebug, []string{"identity"}},
	}

	for _, test := range tests {
		t.Run(string(test.mode), func(t *testing.T) {
			p, err := New(test.mode, DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, test.expected, p.PassNames())
			for _, name := range p.PassNames() {
				assert.NotEmpty(t, Describe(name))
			}
		})
	}
}

func TestUnknownMode(t *testing.T) {
	_, err := Run("rust", templateTable())
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrUnknownMode))

	_, err = ParseMode("debg")
	require.Error(t, err)
	pe, ok := errors.As(err)
	require.True(t, ok)
	assert.Contains(t, pe.Suggestions[0], "debug")
}

func TestTemplateScenarioInCMode(t *testing.T) {
	out, err := Run(ModeC, templateTable())
	require.NoError(t, err)

	assert.Equal(t, []string{"x__y_LT_i32_GT_", "main__r", "nondet_i32", "main"}, out.Names())
	assert.Empty(t, program.Unresolved(out))
	assert.Empty(t, program.CheckTypes(out))

	callee, _ := out.Lookup("x__y_LT_i32_GT_")
	assert.Equal(t, "x::y<i32>", callee.PrettyName)

	main, _ := out.Lookup("main")
	assert.Equal(t,
		`{ decl main__r: i32 = x__y_LT_i32_GT_(); main__r = nondet_i32(); return main__r; }`,
		program.FormatStmt(main.Body, -1))
}

func TestGotoModeLeavesTableUnchanged(t *testing.T) {
	in := templateTable()
	out, err := Run(ModeGoto, in)
	require.NoError(t, err)

	if diff := cmp.Diff(in.Symbols(), out.Symbols()); diff != "" {
		t.Errorf("goto mode changed the table (-in +out):\n%s", diff)
	}
}

func TestRejectsUnclosedInput(t *testing.T) {
	table := templateTable()
	table.MustInsert(&program.Symbol{
		Name:  "g",
		Type:  program.Signed(32),
		Value: program.Sym("mian", program.Signed(32)),
	})

	out, err := Run(ModeC, table)
	require.Error(t, err)
	assert.Nil(t, out)

	pe, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.KindUnresolvedReference, pe.Kind)
	assert.Equal(t, "g", pe.Symbol)
	assert.Equal(t, "mian", pe.Reference)
	assert.Empty(t, pe.Pass)
	assert.Contains(t, pe.Suggestions[0], "main")
}

// dropping removes a symbol while leaving references to it behind.
type dropping struct{ victim string }

func (dropping) Name() string { return "dropping" }

func (d dropping) Transform(in *program.SymbolTable) (*program.SymbolTable, error) {
	out := program.NewSymbolTable(in.Machine)
	for _, sym := range in.Symbols() {
		if sym.Name != d.victim {
			out.MustInsert(sym)
		}
	}
	return out, nil
}

func TestClosureIsCheckedAfterEveryPass(t *testing.T) {
	p := &Pipeline{mode: ModeDebug, opts: DefaultOptions()}
	p.AddPass(transform.NewIdentityTransformer())
	p.AddPass(dropping{victim: "x::y<i32>"})
	p.AddPass(transform.NewIdentityTransformer())

	out, err := p.Run(templateTable())
	require.Error(t, err)
	assert.Nil(t, out)

	pe, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, "dropping", pe.Pass)
	assert.Equal(t, "x::y<i32>", pe.Reference)
}

func TestUnsupportedConstructAbortsRun(t *testing.T) {
	table := templateTable()
	x := program.Sym("main::r", program.Signed(32))
	table.MustInsert(&program.Symbol{
		Name: "check",
		Type: &program.CodeType{Return: program.Bool()},
		Body: &program.Return{Value: &program.OverflowExpr{Op: program.OpMult, LHS: x, RHS: x}},
	})

	out, err := Run(ModeC, table)
	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, stderrors.Is(err, errors.ErrUnsupportedConstruct))

	// the native format carries overflow predicates as they are
	_, err = Run(ModeGoto, table)
	assert.NoError(t, err)
}

func TestTypeCheckingOption(t *testing.T) {
	table := templateTable()
	table.MustInsert(&program.Symbol{
		Name:  "bad",
		Type:  program.Signed(64),
		Value: program.Int("1", program.Signed(32)),
	})

	_, err := Run(ModeGoto, table)
	require.NoError(t, err)

	p, err := New(ModeGoto, Options{CheckTypes: true})
	require.NoError(t, err)
	_, err = p.Run(table)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrTypeInconsistency))
}

func TestRunAllKeepsOrder(t *testing.T) {
	tables := []*program.SymbolTable{templateTable(), templateTable(), templateTable()}
	results, err := RunAll(context.Background(), ModeC, DefaultOptions(), tables)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for _, out := range results {
		assert.Equal(t, results[0].Names(), out.Names())
		if diff := cmp.Diff(results[0].Symbols(), out.Symbols()); diff != "" {
			t.Errorf("independent runs differ:\n%s", diff)
		}
	}
}

func TestRunAllReportsFailure(t *testing.T) {
	broken := templateTable()
	broken.MustInsert(&program.Symbol{Name: "g", Type: program.Bool(), Value: program.Sym("nope", program.Bool())})

	_, err := RunAll(context.Background(), ModeC, DefaultOptions(), []*program.SymbolTable{templateTable(), broken})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrUnresolvedReference))
}

func TestDiagnoseReportsEveryProblem(t *testing.T) {
	table := templateTable()
	table.MustInsert(
		&program.Symbol{Name: "g", Type: program.Bool(), Value: program.Sym("nope", program.Bool()), Location: program.Location{File: "t.symtab", Line: 4}},
		&program.Symbol{Name: "h", Type: program.Bool(), Value: program.Sym("mian", program.Bool())},
		&program.Symbol{Name: "bad", Type: program.Signed(64), Value: program.Int("1", program.Signed(32))},
	)

	diags := Diagnose(table, DefaultOptions())
	require.Len(t, diags, 2)
	assert.Equal(t, "nope", diags[0].Reference)
	assert.Equal(t, 4, diags[0].Location.Line)
	assert.Equal(t, "mian", diags[1].Reference)

	diags = Diagnose(table, Options{CheckTypes: true})
	require.Len(t, diags, 3)
	assert.Equal(t, errors.KindTypeInconsistency, diags[2].Kind)
	assert.Equal(t, "bad", diags[2].Symbol)

	assert.Empty(t, Diagnose(templateTable(), Options{CheckTypes: true}))
}
