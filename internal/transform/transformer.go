// Package transform holds the rewrite passes applied to a goto program's symbol
// table before it is handed to a consumer.
//
// Every pass is built on Apply: the table is rebuilt symbol by symbol in insertion
// order, every node is reconstructed post-order, and a pass only overrides the
// hooks for the node kinds it rewrites. Kinds a pass does not mention are rebuilt
// unchanged, so no node can be skipped.
package transform

import (
	stderrors "errors"

	"github.com/tliron/commonlog"

	"gotox/internal/errors"
	"gotox/internal/program"
)

var log = commonlog.GetLogger("gotox.transform")

// Transformer is one stage of the pipeline. Transform consumes the input table and
// returns a new one; the input is not modified. Implementations keep no state
// between calls.
type Transformer interface {
	Name() string
	Transform(table *program.SymbolTable) (*program.SymbolTable, error)
}

// Hooks receive each node after its children were rebuilt. The returned node
// replaces it in the output.
type Hooks interface {
	Type(ctx *Context, t program.Type) (program.Type, error)
	Expr(ctx *Context, e program.Expr) (program.Expr, error)
	Stmt(ctx *Context, s program.Stmt) (program.Stmt, error)
	Symbol(ctx *Context, sym *program.Symbol) (*program.Symbol, error)
}

// Base implements Hooks by returning every node as rebuilt. Passes embed it and
// override what they rewrite.
type Base struct{}

func (Base) Type(_ *Context, t program.Type) (program.Type, error) { return t, nil }
func (Base) Expr(_ *Context, e program.Expr) (program.Expr, error) { return e, nil }
func (Base) Stmt(_ *Context, s program.Stmt) (program.Stmt, error) { return s, nil }
func (Base) Symbol(_ *Context, sym *program.Symbol) (*program.Symbol, error) {
	return sym, nil
}

// Context is the per-run state shared with the hooks of one Apply call.
type Context struct {
	Pass   string
	Input  *program.SymbolTable
	Output *program.SymbolTable

	// Symbol is the input symbol currently being rebuilt.
	Symbol *program.Symbol

	// Namer hands out fresh names; nil for passes that synthesize none.
	Namer *Namer
}

// Declare inserts a synthesized symbol into the output table right away, so it is
// present before any node referring to it is emitted.
func (c *Context) Declare(sym *program.Symbol) error {
	if err := c.Output.Insert(sym); err != nil {
		if stderrors.Is(err, program.ErrDuplicateSymbol) {
			return errors.DuplicateSymbol(sym.Name, sym.Location)
		}
		return err
	}
	log.Debugf("%s: declared %s", c.Pass, sym.Name)
	return nil
}

// Temporary declares a fresh auxiliary local of the given type, named after the
// enclosing symbol and hint.
func (c *Context) Temporary(hint string, typ program.Type) (*program.SymbolExpr, error) {
	base := hint
	if c.Symbol != nil {
		base = c.Symbol.Name + "__" + hint
	}
	name, err := c.Namer.Fresh(Sanitize(base))
	if err != nil {
		return nil, err
	}
	sym := program.Variable(name, typ, program.Location{})
	sym.BaseName = hint
	sym.IsAuxiliary = true
	if c.Symbol != nil {
		sym.Location = c.Symbol.Location
		sym.Location.Function = c.Symbol.Name
	}
	if err := c.Declare(sym); err != nil {
		return nil, err
	}
	return sym.Expr(), nil
}

// Apply rebuilds in through hooks and returns the output table. On error nothing
// of the partially built output escapes.
func Apply(pass string, hooks Hooks, in *program.SymbolTable, namer *Namer) (*program.SymbolTable, error) {
	ctx := &Context{
		Pass:   pass,
		Input:  in,
		Output: program.NewSymbolTable(in.Machine),
		Namer:  namer,
	}
	w := &walker{hooks: hooks, ctx: ctx}

	for _, sym := range in.Symbols() {
		ctx.Symbol = sym
		rebuilt, err := w.symbol(sym)
		if err != nil {
			return nil, annotate(err, pass, sym)
		}
		if err := ctx.Output.Insert(rebuilt); err != nil {
			if stderrors.Is(err, program.ErrDuplicateSymbol) {
				return nil, annotate(errors.DuplicateSymbol(rebuilt.Name, rebuilt.Location), pass, sym)
			}
			return nil, err
		}
	}
	return ctx.Output, nil
}

// annotate fills in the pass and symbol of structured errors raised by hooks.
func annotate(err error, pass string, sym *program.Symbol) error {
	pe, ok := errors.As(err)
	if !ok {
		return err
	}
	if pe.Pass == "" {
		pe.Pass = pass
	}
	if pe.Symbol == "" {
		pe.Symbol = sym.Name
	}
	if pe.Location.IsNone() {
		pe.Location = sym.Location
	}
	return pe
}
