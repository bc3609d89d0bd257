package transform

import (
	"fmt"

	"github.com/iancoleman/strcase"

	"gotox/internal/program"
)

// DefaultNondetPrefix starts the names of synthesized nondet functions.
const DefaultNondetPrefix = "nondet_"

// NondetTransformer replaces every nondet value of type T by a call to an extern,
// body-less function returning T. One function is declared per distinct type,
// on first use.
type NondetTransformer struct {
	Prefix string
}

func NewNondetTransformer(prefix string) *NondetTransformer {
	if prefix == "" {
		prefix = DefaultNondetPrefix
	}
	return &NondetTransformer{Prefix: prefix}
}

func (*NondetTransformer) Name() string { return "nondet" }

func (t *NondetTransformer) Transform(table *program.SymbolTable) (*program.SymbolTable, error) {
	hooks := &nondetHooks{
		prefix:    t.Prefix,
		functions: make(map[string][]*program.Symbol),
	}
	out, err := Apply(t.Name(), hooks, table, NewNamer(table.Names()...))
	if err != nil {
		return nil, err
	}
	log.Debugf("nondet: %d functions declared", hooks.declared)
	return out, nil
}

type nondetHooks struct {
	Base
	prefix string

	// declared functions by type ident; distinct types may share an ident
	functions map[string][]*program.Symbol
	declared  int
}

func (h *nondetHooks) Expr(ctx *Context, e program.Expr) (program.Expr, error) {
	nd, ok := e.(*program.NondetExpr)
	if !ok {
		return e, nil
	}
	fn, err := h.function(ctx, nd.Typ)
	if err != nil {
		return nil, err
	}
	return &program.CallExpr{Function: fn.Expr(), Typ: nd.Typ}, nil
}

func (h *nondetHooks) function(ctx *Context, t program.Type) (*program.Symbol, error) {
	ident := TypeIdent(t)
	for _, fn := range h.functions[ident] {
		if program.TypesEqual(fn.Type.(*program.CodeType).ReturnType(), t) {
			return fn, nil
		}
	}

	name, err := ctx.Namer.Fresh(Sanitize(h.prefix + ident))
	if err != nil {
		return nil, err
	}
	fn := program.Function(name, &program.CodeType{Return: t})
	fn.IsAuxiliary = true
	if err := ctx.Declare(fn); err != nil {
		return nil, err
	}
	h.functions[ident] = append(h.functions[ident], fn)
	h.declared++
	return fn, nil
}

// TypeIdent spells a type as an identifier fragment, e.g. i32, ptr_u8 or
// arr4_struct_pair.
func TypeIdent(t program.Type) string {
	switch t := t.(type) {
	case *program.BoolType:
		return "bool"
	case *program.EmptyType:
		return "void"
	case *program.SignedBVType, *program.UnsignedBVType, *program.FloatType:
		return t.String()
	case *program.PointerType:
		return "ptr_" + TypeIdent(t.Elem)
	case *program.ArrayType:
		return fmt.Sprintf("arr%d_%s", t.Size, TypeIdent(t.Elem))
	case *program.StructTagType:
		return "struct_" + tagIdent(t.Identifier)
	case *program.UnionTagType:
		return "union_" + tagIdent(t.Identifier)
	case *program.StructType:
		return "struct_" + tagIdent(t.Tag)
	case *program.UnionType:
		return "union_" + tagIdent(t.Tag)
	case *program.CodeType:
		return "fn"
	}
	return "unknown"
}

func tagIdent(tag string) string {
	if tag == "" {
		return "anon"
	}
	return strcase.ToSnake(Sanitize(tag))
}
