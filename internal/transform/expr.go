package transform

import (
	"strconv"

	"gotox/internal/errors"
	"gotox/internal/program"
)

// EmptyComponent is the placeholder member added to structs without components,
// which C does not allow.
const EmptyComponent = "__empty"

// ExprTransformer lowers the expression forms the C printer cannot render:
// reinterpretations and aggregate casts, pointer/float casts, rotations,
// implication and empty structs. Overflow predicates have no C rendering and are
// rejected.
type ExprTransformer struct{}

func NewExprTransformer() *ExprTransformer {
	return &ExprTransformer{}
}

func (*ExprTransformer) Name() string { return "expr" }

func (t *ExprTransformer) Transform(table *program.SymbolTable) (*program.SymbolTable, error) {
	return Apply(t.Name(), exprHooks{}, table, NewNamer(table.Names()...))
}

type exprHooks struct {
	Base
}

func (exprHooks) Type(_ *Context, t program.Type) (program.Type, error) {
	if st, ok := t.(*program.StructType); ok && len(st.Components) == 0 {
		return &program.StructType{
			Tag:        st.Tag,
			Components: []program.Component{{Name: EmptyComponent, Type: program.Unsigned(8)}},
		}, nil
	}
	return t, nil
}

func (h exprHooks) Expr(ctx *Context, e program.Expr) (program.Expr, error) {
	switch e := e.(type) {
	case *program.ReinterpretExpr:
		if program.TypesEqual(e.Operand.Type(), e.Typ) {
			return e.Operand, nil
		}
		return pun(ctx, e.Operand, e.Typ)

	case *program.CastExpr:
		return lowerCast(ctx, e)

	case *program.BinaryExpr:
		switch e.Op {
		case program.OpImplies:
			return &program.BinaryExpr{
				Op:  program.OpOr,
				LHS: &program.UnaryExpr{Op: program.OpNot, Operand: e.LHS, Typ: program.Bool()},
				RHS: e.RHS,
				Typ: e.Typ,
			}, nil
		case program.OpRol, program.OpRor:
			return lowerRotate(ctx, e)
		}

	case *program.OverflowExpr:
		return nil, errors.UnsupportedConstruct(ctx.Pass, program.Kind(e),
			"overflow predicates have no C rendering")

	case *program.StructExpr:
		if len(e.Values) == 0 && h.isEmptyStruct(ctx, e.Typ) {
			return &program.StructExpr{
				Values: []program.Expr{program.Int("0", program.Unsigned(8))},
				Typ:    e.Typ,
			}, nil
		}
	}
	return e, nil
}

// isEmptyStruct reports whether t is a struct that had no components in the input.
// Inline definitions were already padded by the Type hook.
func (exprHooks) isEmptyStruct(ctx *Context, t program.Type) bool {
	switch t := t.(type) {
	case *program.StructType:
		return len(t.Components) == 1 && t.Components[0].Name == EmptyComponent
	case *program.StructTagType:
		def, ok := ctx.Input.ResolveTag(t).(*program.StructType)
		return ok && len(def.Components) == 0
	}
	return false
}

// pun reads the bits of operand as target through a union temporary:
//
//	({ union { S in; T out; } tmp; tmp.in = operand; tmp.out; })
func pun(ctx *Context, operand program.Expr, target program.Type) (program.Expr, error) {
	union := &program.UnionType{Components: []program.Component{
		{Name: "in", Type: operand.Type()},
		{Name: "out", Type: target},
	}}
	tmp, err := ctx.Temporary("pun", union)
	if err != nil {
		return nil, err
	}
	return &program.StatementExpr{
		Stmts: []program.Stmt{
			&program.Decl{Symbol: tmp},
			&program.Assign{
				LHS: &program.MemberExpr{Operand: tmp, Field: "in", Typ: operand.Type()},
				RHS: operand,
			},
			&program.ExprStmt{Expr: &program.MemberExpr{Operand: tmp, Field: "out", Typ: target}},
		},
		Typ: target,
	}, nil
}

func lowerCast(ctx *Context, e *program.CastExpr) (program.Expr, error) {
	from, to := e.Operand.Type(), e.Typ
	if _, ok := to.(*program.EmptyType); ok {
		return e, nil
	}
	if program.TypesEqual(from, to) {
		return e, nil
	}

	_, fromPtr := from.(*program.PointerType)
	_, toPtr := to.(*program.PointerType)
	_, fromFloat := from.(*program.FloatType)
	_, toFloat := to.(*program.FloatType)
	if fromPtr && toFloat || fromFloat && toPtr {
		word := program.Unsigned(ctx.Input.Machine.PointerWidth)
		return &program.CastExpr{
			Operand: &program.CastExpr{Operand: e.Operand, Typ: word},
			Typ:     to,
		}, nil
	}

	// arrays decay to pointers in C
	if _, ok := from.(*program.ArrayType); ok && toPtr {
		return e, nil
	}
	if program.IsScalar(from) && program.IsScalar(to) {
		return e, nil
	}
	return pun(ctx, e.Operand, to)
}

// lowerRotate rewrites a rotation on the unsigned view of its operand:
//
//	k  = b % w, taken in the wider of the two operand widths
//	rol(a, b) = (a << k) | (a >>> ((w - k) % w))
//	ror(a, b) = (a >>> k) | (a << ((w - k) % w))
//
// Operands that are not plain symbols or constants are bound to temporaries first,
// since each is used twice.
func lowerRotate(ctx *Context, e *program.BinaryExpr) (program.Expr, error) {
	if !program.IsInteger(e.Typ) {
		return nil, errors.UnsupportedConstruct(ctx.Pass, string(e.Op),
			"rotation of non bit-vector type "+e.Typ.String())
	}
	width, _ := program.Width(e.Typ)
	unsigned := program.Unsigned(width)

	var stmts []program.Stmt
	bind := func(x program.Expr, hint string) (program.Expr, error) {
		if isSimple(x) {
			return x, nil
		}
		tmp, err := ctx.Temporary(hint, x.Type())
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, &program.Decl{Symbol: tmp, Value: x})
		return tmp, nil
	}

	a, err := bind(e.LHS, "rot_value")
	if err != nil {
		return nil, err
	}
	b, err := bind(e.RHS, "rot_amount")
	if err != nil {
		return nil, err
	}

	// the amount is reduced in its own width before narrowing, as narrowing first
	// is only sound when w is a power of two
	amountWidth, ok := program.Width(b.Type())
	if !ok || amountWidth < width {
		amountWidth = width
	}
	amount := program.Unsigned(amountWidth)
	k := convert(&program.BinaryExpr{
		Op:  program.OpMod,
		LHS: convert(b, amount),
		RHS: program.Int(strconv.Itoa(width), amount),
		Typ: amount,
	}, unsigned)

	ua := convert(a, unsigned)
	w := program.Int(strconv.Itoa(width), unsigned)
	rk := &program.BinaryExpr{
		Op:  program.OpMod,
		LHS: &program.BinaryExpr{Op: program.OpMinus, LHS: w, RHS: k, Typ: unsigned},
		RHS: w,
		Typ: unsigned,
	}

	first, second := program.OpShl, program.OpLShr
	if e.Op == program.OpRor {
		first, second = program.OpLShr, program.OpShl
	}
	var result program.Expr = &program.BinaryExpr{
		Op:  program.OpBitOr,
		LHS: &program.BinaryExpr{Op: first, LHS: ua, RHS: k, Typ: unsigned},
		RHS: &program.BinaryExpr{Op: second, LHS: ua, RHS: rk, Typ: unsigned},
		Typ: unsigned,
	}
	result = convert(result, e.Typ)

	if len(stmts) == 0 {
		return result, nil
	}
	return &program.StatementExpr{
		Stmts: append(stmts, &program.ExprStmt{Expr: result}),
		Typ:   e.Typ,
	}, nil
}

// convert casts x to t unless it already has that type.
func convert(x program.Expr, t program.Type) program.Expr {
	if program.TypesEqual(x.Type(), t) {
		return x
	}
	return &program.CastExpr{Operand: x, Typ: t}
}

func isSimple(x program.Expr) bool {
	switch x.(type) {
	case *program.SymbolExpr, *program.IntConstant, *program.BoolConstant:
		return true
	}
	return false
}
