package transform

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotox/internal/errors"
	"gotox/internal/program"
)

func TestIdentityPreservesTable(t *testing.T) {
	in := templateTable()

	out, err := NewIdentityTransformer().Transform(in)
	require.NoError(t, err)

	requireSameTable(t, in, out)
	assert.NotSame(t, in, out)
	for _, name := range in.Names() {
		before, _ := in.Lookup(name)
		after, _ := out.Lookup(name)
		assert.NotSame(t, before, after, "symbol %s was not rebuilt", name)
	}
}

func TestIdentityIsIdempotent(t *testing.T) {
	once, err := NewIdentityTransformer().Transform(templateTable())
	require.NoError(t, err)
	twice, err := NewIdentityTransformer().Transform(once)
	require.NoError(t, err)

	requireSameTable(t, once, twice)
}

func TestApplyLeavesInputUntouched(t *testing.T) {
	in := templateTable()
	snapshot := templateTable()

	_, err := NewNameTransformer().Transform(in)
	require.NoError(t, err)

	requireSameTable(t, snapshot, in)
}

type failingHooks struct {
	Base
}

func (failingHooks) Expr(ctx *Context, e program.Expr) (program.Expr, error) {
	if _, ok := e.(*program.CallExpr); ok {
		return nil, errors.UnsupportedConstruct(ctx.Pass, program.Kind(e), "")
	}
	return e, nil
}

func TestApplyAnnotatesHookErrors(t *testing.T) {
	out, err := Apply("failing", failingHooks{}, templateTable(), nil)
	require.Error(t, err)
	assert.Nil(t, out)

	pe, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, "failing", pe.Pass)
	assert.Equal(t, "main", pe.Symbol)
	assert.Equal(t, "call", pe.Construct)
	assert.Equal(t, "main.cpp", pe.Location.File)
	assert.True(t, stderrors.Is(err, errors.ErrUnsupportedConstruct))
}

// strayExpr is an expression node the walker has no case for.
type strayExpr struct {
	program.Expr
}

func TestApplyReportsUnknownNodesAsStructuredErrors(t *testing.T) {
	i32 := program.Signed(32)
	table := program.NewSymbolTable(program.DefaultMachineModel()).
		MustInsert(function("f", i32, &program.Return{Value: &strayExpr{program.Int("1", i32)}}))

	_, err := Apply("identity", Base{}, table, nil)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrUnsupportedConstruct))

	pe, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, "identity", pe.Pass)
	assert.Equal(t, "f", pe.Symbol)
	assert.Equal(t, "*transform.strayExpr", pe.Construct)
}

type clashingHooks struct {
	Base
}

func (clashingHooks) Symbol(_ *Context, sym *program.Symbol) (*program.Symbol, error) {
	sym.Name = "same"
	return sym, nil
}

func TestApplyReportsDuplicateOutputNames(t *testing.T) {
	_, err := Apply("clash", clashingHooks{}, templateTable(), nil)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrDuplicateSymbol))
}

func TestTemporaryIsDeclaredBeforeUse(t *testing.T) {
	table := program.NewSymbolTable(program.DefaultMachineModel()).
		MustInsert(function("f", program.Void(), &program.Skip{}))
	ctx := &Context{
		Pass:   "test",
		Input:  table,
		Output: program.NewSymbolTable(table.Machine),
		Namer:  NewNamer(table.Names()...),
	}
	ctx.Symbol, _ = table.Lookup("f")

	first, err := ctx.Temporary("tmp", program.Signed(8))
	require.NoError(t, err)
	second, err := ctx.Temporary("tmp", program.Signed(8))
	require.NoError(t, err)

	assert.Equal(t, "f__tmp", first.Identifier)
	assert.Equal(t, "f__tmp$1", second.Identifier)

	sym, ok := ctx.Output.Lookup("f__tmp")
	require.True(t, ok)
	assert.True(t, sym.IsAuxiliary)
	assert.True(t, sym.IsLValue)
	assert.Equal(t, "f", sym.Location.Function)
}
