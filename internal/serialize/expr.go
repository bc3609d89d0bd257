package serialize

import (
	"fmt"
	"strconv"

	"gotox/internal/program"
)

var binaryIDs = map[program.BinaryOp]string{
	program.OpPlus:    "+",
	program.OpMinus:   "-",
	program.OpMult:    "*",
	program.OpDiv:     "/",
	program.OpMod:     "mod",
	program.OpShl:     "shl",
	program.OpAShr:    "ashr",
	program.OpLShr:    "lshr",
	program.OpBitAnd:  "bitand",
	program.OpBitOr:   "bitor",
	program.OpBitXor:  "bitxor",
	program.OpAnd:     "and",
	program.OpOr:      "or",
	program.OpEq:      "=",
	program.OpNotEq:   "notequal",
	program.OpLt:      "<",
	program.OpLe:      "<=",
	program.OpGt:      ">",
	program.OpGe:      ">=",
	program.OpImplies: "=>",
	program.OpRol:     "rol",
	program.OpRor:     "ror",
}

var unaryIDs = map[program.UnaryOp]string{
	program.OpNot:    "not",
	program.OpNeg:    "unary-",
	program.OpBitNot: "bitnot",
}

var overflowIDs = map[program.BinaryOp]string{
	program.OpPlus:  "overflow-+",
	program.OpMinus: "overflow--",
	program.OpMult:  "overflow-*",
	program.OpShl:   "overflow-shl",
}

// typed builds an expression irep carrying its type.
func (c *converter) typed(id string, t program.Type, sub ...*Irep) (*Irep, error) {
	ti, err := c.typ(t)
	if err != nil {
		return nil, err
	}
	return node(id, sub...).set("type", ti), nil
}

func (c *converter) exprs(in []program.Expr) ([]*Irep, error) {
	out := make([]*Irep, 0, len(in))
	for _, e := range in {
		x, err := c.expr(e)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}

func (c *converter) sideEffect(statement string, t program.Type, sub ...*Irep) (*Irep, error) {
	out, err := c.typed("side_effect", t, sub...)
	if err != nil {
		return nil, err
	}
	return out.set("statement", leaf(statement)), nil
}

func (c *converter) expr(e program.Expr) (*Irep, error) {
	switch e := e.(type) {
	case *program.SymbolExpr:
		out, err := c.typed("symbol", e.Typ)
		if err != nil {
			return nil, err
		}
		return out.set("identifier", leaf(e.Identifier)), nil
	case *program.IntConstant:
		out, err := c.typed("constant", e.Typ)
		if err != nil {
			return nil, err
		}
		return out.set("value", leaf(e.Value)), nil
	case *program.BoolConstant:
		out, err := c.typed("constant", program.Bool())
		if err != nil {
			return nil, err
		}
		return out.set("value", leaf(strconv.FormatBool(e.Value))), nil
	case *program.StringConstant:
		out, err := c.typed("string_constant", e.Typ)
		if err != nil {
			return nil, err
		}
		return out.set("value", leaf(e.Value)), nil
	case *program.BinaryExpr:
		ops, err := c.exprs([]program.Expr{e.LHS, e.RHS})
		if err != nil {
			return nil, err
		}
		id, ok := binaryIDs[e.Op]
		if !ok {
			return nil, fmt.Errorf("unknown binary operator %q", e.Op)
		}
		return c.typed(id, e.Typ, ops...)
	case *program.UnaryExpr:
		op, err := c.expr(e.Operand)
		if err != nil {
			return nil, err
		}
		id, ok := unaryIDs[e.Op]
		if !ok {
			return nil, fmt.Errorf("unknown unary operator %q", e.Op)
		}
		return c.typed(id, e.Typ, op)
	case *program.CallExpr:
		fn, err := c.expr(e.Function)
		if err != nil {
			return nil, err
		}
		args, err := c.exprs(e.Args)
		if err != nil {
			return nil, err
		}
		return c.sideEffect("function_call", e.Typ, fn, &Irep{ID: "arguments", Sub: args})
	case *program.CastExpr:
		op, err := c.expr(e.Operand)
		if err != nil {
			return nil, err
		}
		return c.typed("typecast", e.Typ, op)
	case *program.ReinterpretExpr:
		op, err := c.expr(e.Operand)
		if err != nil {
			return nil, err
		}
		id := "byte_extract_big_endian"
		if c.machine.LittleEndian {
			id = "byte_extract_little_endian"
		}
		offset := leaf("constant").
			set("value", leaf("0")).
			set("type", leaf("signedbv").set("width", leaf(strconv.Itoa(c.machine.PointerWidth))))
		return c.typed(id, e.Typ, op, offset)
	case *program.NondetExpr:
		return c.sideEffect("nondet", e.Typ)
	case *program.StructExpr:
		ops, err := c.exprs(e.Values)
		if err != nil {
			return nil, err
		}
		return c.typed("struct", e.Typ, ops...)
	case *program.UnionExpr:
		op, err := c.expr(e.Value)
		if err != nil {
			return nil, err
		}
		out, err := c.typed("union", e.Typ, op)
		if err != nil {
			return nil, err
		}
		return out.set("component_name", leaf(e.Field)), nil
	case *program.ArrayExpr:
		ops, err := c.exprs(e.Elems)
		if err != nil {
			return nil, err
		}
		return c.typed("array", e.Typ, ops...)
	case *program.MemberExpr:
		op, err := c.expr(e.Operand)
		if err != nil {
			return nil, err
		}
		out, err := c.typed("member", e.Typ, op)
		if err != nil {
			return nil, err
		}
		return out.set("component_name", leaf(e.Field)), nil
	case *program.AddressOfExpr:
		op, err := c.expr(e.Operand)
		if err != nil {
			return nil, err
		}
		return c.typed("address_of", e.Typ, op)
	case *program.DereferenceExpr:
		op, err := c.expr(e.Operand)
		if err != nil {
			return nil, err
		}
		return c.typed("dereference", e.Typ, op)
	case *program.IndexExpr:
		ops, err := c.exprs([]program.Expr{e.Array, e.Index})
		if err != nil {
			return nil, err
		}
		return c.typed("index", e.Typ, ops...)
	case *program.IfExpr:
		ops, err := c.exprs([]program.Expr{e.Cond, e.Then, e.Else})
		if err != nil {
			return nil, err
		}
		return c.typed("if", e.Typ, ops...)
	case *program.OverflowExpr:
		ops, err := c.exprs([]program.Expr{e.LHS, e.RHS})
		if err != nil {
			return nil, err
		}
		id, ok := overflowIDs[e.Op]
		if !ok {
			return nil, fmt.Errorf("no overflow predicate for operator %q", e.Op)
		}
		return c.typed(id, program.Bool(), ops...)
	case *program.StatementExpr:
		block, err := c.stmt(&program.Block{Stmts: e.Stmts})
		if err != nil {
			return nil, err
		}
		return c.sideEffect("statement_expression", e.Typ, block)
	}
	return nil, fmt.Errorf("unknown expression node %T", e)
}
