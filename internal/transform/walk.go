package transform

import (
	"fmt"

	"gotox/internal/errors"
	"gotox/internal/program"
)

// walker performs the default structural recursion: every child is rebuilt first,
// then a fresh copy of the node is handed to the matching hook.
type walker struct {
	hooks Hooks
	ctx   *Context
}

func (w *walker) symbol(sym *program.Symbol) (*program.Symbol, error) {
	out := *sym
	var err error
	if out.Type, err = w.typ(sym.Type); err != nil {
		return nil, err
	}
	if sym.Value != nil {
		if out.Value, err = w.expr(sym.Value); err != nil {
			return nil, err
		}
	}
	if sym.Body != nil {
		if out.Body, err = w.stmt(sym.Body); err != nil {
			return nil, err
		}
	}
	return w.hooks.Symbol(w.ctx, &out)
}

func (w *walker) typ(t program.Type) (program.Type, error) {
	if t == nil {
		return nil, nil
	}
	var out program.Type
	switch t := t.(type) {
	case *program.BoolType:
		out = &program.BoolType{}
	case *program.EmptyType:
		out = &program.EmptyType{}
	case *program.SignedBVType:
		out = &program.SignedBVType{Width: t.Width}
	case *program.UnsignedBVType:
		out = &program.UnsignedBVType{Width: t.Width}
	case *program.FloatType:
		out = &program.FloatType{Width: t.Width}
	case *program.PointerType:
		elem, err := w.typ(t.Elem)
		if err != nil {
			return nil, err
		}
		out = &program.PointerType{Elem: elem}
	case *program.ArrayType:
		elem, err := w.typ(t.Elem)
		if err != nil {
			return nil, err
		}
		out = &program.ArrayType{Elem: elem, Size: t.Size}
	case *program.StructType:
		components, err := w.components(t.Components)
		if err != nil {
			return nil, err
		}
		out = &program.StructType{Tag: t.Tag, Components: components}
	case *program.UnionType:
		components, err := w.components(t.Components)
		if err != nil {
			return nil, err
		}
		out = &program.UnionType{Tag: t.Tag, Components: components}
	case *program.StructTagType:
		out = &program.StructTagType{Identifier: t.Identifier}
	case *program.UnionTagType:
		out = &program.UnionTagType{Identifier: t.Identifier}
	case *program.CodeType:
		var params []program.Parameter
		if t.Parameters != nil {
			params = make([]program.Parameter, len(t.Parameters))
		}
		for i, p := range t.Parameters {
			pt, err := w.typ(p.Type)
			if err != nil {
				return nil, err
			}
			params[i] = program.Parameter{Identifier: p.Identifier, BaseName: p.BaseName, Type: pt}
		}
		ret, err := w.typ(t.Return)
		if err != nil {
			return nil, err
		}
		out = &program.CodeType{Parameters: params, Return: ret, Variadic: t.Variadic}
	default:
		return nil, errors.UnsupportedConstruct(w.ctx.Pass, fmt.Sprintf("%T", t), "unknown type node")
	}
	return w.hooks.Type(w.ctx, out)
}

func (w *walker) components(in []program.Component) ([]program.Component, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]program.Component, len(in))
	for i, c := range in {
		ct, err := w.typ(c.Type)
		if err != nil {
			return nil, err
		}
		out[i] = program.Component{Name: c.Name, Type: ct}
	}
	return out, nil
}

func (w *walker) exprs(in []program.Expr) ([]program.Expr, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]program.Expr, len(in))
	for i, e := range in {
		rebuilt, err := w.expr(e)
		if err != nil {
			return nil, err
		}
		out[i] = rebuilt
	}
	return out, nil
}

func (w *walker) expr(e program.Expr) (program.Expr, error) {
	if e == nil {
		return nil, nil
	}
	var out program.Expr
	switch e := e.(type) {
	case *program.SymbolExpr:
		t, err := w.typ(e.Typ)
		if err != nil {
			return nil, err
		}
		out = &program.SymbolExpr{Identifier: e.Identifier, Typ: t}
	case *program.IntConstant:
		t, err := w.typ(e.Typ)
		if err != nil {
			return nil, err
		}
		out = &program.IntConstant{Value: e.Value, Typ: t}
	case *program.BoolConstant:
		out = &program.BoolConstant{Value: e.Value}
	case *program.StringConstant:
		t, err := w.typ(e.Typ)
		if err != nil {
			return nil, err
		}
		out = &program.StringConstant{Value: e.Value, Typ: t}
	case *program.BinaryExpr:
		lhs, rhs, err := w.pair(e.LHS, e.RHS)
		if err != nil {
			return nil, err
		}
		t, err := w.typ(e.Typ)
		if err != nil {
			return nil, err
		}
		out = &program.BinaryExpr{Op: e.Op, LHS: lhs, RHS: rhs, Typ: t}
	case *program.UnaryExpr:
		operand, t, err := w.operand(e.Operand, e.Typ)
		if err != nil {
			return nil, err
		}
		out = &program.UnaryExpr{Op: e.Op, Operand: operand, Typ: t}
	case *program.CallExpr:
		fn, err := w.expr(e.Function)
		if err != nil {
			return nil, err
		}
		args, err := w.exprs(e.Args)
		if err != nil {
			return nil, err
		}
		t, err := w.typ(e.Typ)
		if err != nil {
			return nil, err
		}
		out = &program.CallExpr{Function: fn, Args: args, Typ: t}
	case *program.CastExpr:
		operand, t, err := w.operand(e.Operand, e.Typ)
		if err != nil {
			return nil, err
		}
		out = &program.CastExpr{Operand: operand, Typ: t}
	case *program.ReinterpretExpr:
		operand, t, err := w.operand(e.Operand, e.Typ)
		if err != nil {
			return nil, err
		}
		out = &program.ReinterpretExpr{Operand: operand, Typ: t}
	case *program.NondetExpr:
		t, err := w.typ(e.Typ)
		if err != nil {
			return nil, err
		}
		out = &program.NondetExpr{Typ: t}
	case *program.StructExpr:
		values, err := w.exprs(e.Values)
		if err != nil {
			return nil, err
		}
		t, err := w.typ(e.Typ)
		if err != nil {
			return nil, err
		}
		out = &program.StructExpr{Values: values, Typ: t}
	case *program.UnionExpr:
		value, t, err := w.operand(e.Value, e.Typ)
		if err != nil {
			return nil, err
		}
		out = &program.UnionExpr{Field: e.Field, Value: value, Typ: t}
	case *program.ArrayExpr:
		elems, err := w.exprs(e.Elems)
		if err != nil {
			return nil, err
		}
		t, err := w.typ(e.Typ)
		if err != nil {
			return nil, err
		}
		out = &program.ArrayExpr{Elems: elems, Typ: t}
	case *program.MemberExpr:
		operand, t, err := w.operand(e.Operand, e.Typ)
		if err != nil {
			return nil, err
		}
		out = &program.MemberExpr{Operand: operand, Field: e.Field, Typ: t}
	case *program.AddressOfExpr:
		operand, t, err := w.operand(e.Operand, e.Typ)
		if err != nil {
			return nil, err
		}
		out = &program.AddressOfExpr{Operand: operand, Typ: t}
	case *program.DereferenceExpr:
		operand, t, err := w.operand(e.Operand, e.Typ)
		if err != nil {
			return nil, err
		}
		out = &program.DereferenceExpr{Operand: operand, Typ: t}
	case *program.IndexExpr:
		array, index, err := w.pair(e.Array, e.Index)
		if err != nil {
			return nil, err
		}
		t, err := w.typ(e.Typ)
		if err != nil {
			return nil, err
		}
		out = &program.IndexExpr{Array: array, Index: index, Typ: t}
	case *program.IfExpr:
		cond, err := w.expr(e.Cond)
		if err != nil {
			return nil, err
		}
		then, els, err := w.pair(e.Then, e.Else)
		if err != nil {
			return nil, err
		}
		t, err := w.typ(e.Typ)
		if err != nil {
			return nil, err
		}
		out = &program.IfExpr{Cond: cond, Then: then, Else: els, Typ: t}
	case *program.OverflowExpr:
		lhs, rhs, err := w.pair(e.LHS, e.RHS)
		if err != nil {
			return nil, err
		}
		out = &program.OverflowExpr{Op: e.Op, LHS: lhs, RHS: rhs}
	case *program.StatementExpr:
		stmts, err := w.stmts(e.Stmts)
		if err != nil {
			return nil, err
		}
		t, err := w.typ(e.Typ)
		if err != nil {
			return nil, err
		}
		out = &program.StatementExpr{Stmts: stmts, Typ: t}
	default:
		return nil, errors.UnsupportedConstruct(w.ctx.Pass, fmt.Sprintf("%T", e), "unknown expression node")
	}
	return w.hooks.Expr(w.ctx, out)
}

func (w *walker) pair(a, b program.Expr) (program.Expr, program.Expr, error) {
	ra, err := w.expr(a)
	if err != nil {
		return nil, nil, err
	}
	rb, err := w.expr(b)
	if err != nil {
		return nil, nil, err
	}
	return ra, rb, nil
}

func (w *walker) operand(e program.Expr, t program.Type) (program.Expr, program.Type, error) {
	re, err := w.expr(e)
	if err != nil {
		return nil, nil, err
	}
	rt, err := w.typ(t)
	if err != nil {
		return nil, nil, err
	}
	return re, rt, nil
}

func (w *walker) stmts(in []program.Stmt) ([]program.Stmt, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]program.Stmt, len(in))
	for i, s := range in {
		rebuilt, err := w.stmt(s)
		if err != nil {
			return nil, err
		}
		out[i] = rebuilt
	}
	return out, nil
}

func (w *walker) stmt(s program.Stmt) (program.Stmt, error) {
	if s == nil {
		return nil, nil
	}
	var out program.Stmt
	switch s := s.(type) {
	case *program.Block:
		stmts, err := w.stmts(s.Stmts)
		if err != nil {
			return nil, err
		}
		out = &program.Block{Stmts: stmts}
	case *program.Decl:
		sym, err := w.expr(s.Symbol)
		if err != nil {
			return nil, err
		}
		ref, ok := sym.(*program.SymbolExpr)
		if !ok {
			return nil, errors.UnsupportedConstruct(w.ctx.Pass, fmt.Sprintf("%T", sym), "declaration target must stay a symbol")
		}
		value, err := w.expr(s.Value)
		if err != nil {
			return nil, err
		}
		out = &program.Decl{Symbol: ref, Value: value}
	case *program.Assign:
		lhs, rhs, err := w.pair(s.LHS, s.RHS)
		if err != nil {
			return nil, err
		}
		out = &program.Assign{LHS: lhs, RHS: rhs}
	case *program.ExprStmt:
		e, err := w.expr(s.Expr)
		if err != nil {
			return nil, err
		}
		out = &program.ExprStmt{Expr: e}
	case *program.Return:
		value, err := w.expr(s.Value)
		if err != nil {
			return nil, err
		}
		out = &program.Return{Value: value}
	case *program.IfThenElse:
		cond, err := w.expr(s.Cond)
		if err != nil {
			return nil, err
		}
		then, err := w.stmt(s.Then)
		if err != nil {
			return nil, err
		}
		els, err := w.stmt(s.Else)
		if err != nil {
			return nil, err
		}
		out = &program.IfThenElse{Cond: cond, Then: then, Else: els}
	case *program.While:
		cond, err := w.expr(s.Cond)
		if err != nil {
			return nil, err
		}
		body, err := w.stmt(s.Body)
		if err != nil {
			return nil, err
		}
		out = &program.While{Cond: cond, Body: body}
	case *program.Goto:
		out = &program.Goto{Label: s.Label}
	case *program.Label:
		body, err := w.stmt(s.Body)
		if err != nil {
			return nil, err
		}
		out = &program.Label{Label: s.Label, Body: body}
	case *program.Assume:
		cond, err := w.expr(s.Cond)
		if err != nil {
			return nil, err
		}
		out = &program.Assume{Cond: cond}
	case *program.Assert:
		cond, err := w.expr(s.Cond)
		if err != nil {
			return nil, err
		}
		out = &program.Assert{Cond: cond, Message: s.Message}
	case *program.Skip:
		out = &program.Skip{}
	default:
		return nil, errors.UnsupportedConstruct(w.ctx.Pass, fmt.Sprintf("%T", s), "unknown statement node")
	}
	return w.hooks.Stmt(w.ctx, out)
}
