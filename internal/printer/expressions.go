package printer

import (
	"fmt"
	"strings"

	"gotox/internal/program"
)

func (p *Printer) exprs(in []program.Expr) string {
	parts := make([]string, len(in))
	for i, e := range in {
		parts[i] = p.expr(e)
	}
	return strings.Join(parts, ", ")
}

func (p *Printer) expr(e program.Expr) string {
	switch e := e.(type) {
	case *program.SymbolExpr:
		return e.Identifier
	case *program.IntConstant:
		return p.integer(e)
	case *program.BoolConstant:
		if e.Value {
			return "true"
		}
		return "false"
	case *program.StringConstant:
		return quote(e.Value)
	case *program.BinaryExpr:
		return p.binary(e)
	case *program.UnaryExpr:
		return fmt.Sprintf("(%s%s)", e.Op, p.expr(e.Operand))
	case *program.CallExpr:
		callee := p.expr(e.Function)
		if _, ok := e.Function.(*program.SymbolExpr); !ok {
			callee = "(" + callee + ")"
		}
		return fmt.Sprintf("%s(%s)", callee, p.exprs(e.Args))
	case *program.CastExpr:
		return fmt.Sprintf("((%s)%s)", p.declare(e.Typ, ""), p.expr(e.Operand))
	case *program.StructExpr, *program.UnionExpr, *program.ArrayExpr:
		return fmt.Sprintf("((%s)%s)", p.declare(e.Type(), ""), p.initializer(e))
	case *program.MemberExpr:
		return fmt.Sprintf("%s.%s", p.postfixOperand(e.Operand), e.Field)
	case *program.AddressOfExpr:
		return fmt.Sprintf("(&%s)", p.expr(e.Operand))
	case *program.DereferenceExpr:
		return fmt.Sprintf("(*%s)", p.expr(e.Operand))
	case *program.IndexExpr:
		return fmt.Sprintf("%s[%s]", p.postfixOperand(e.Array), p.expr(e.Index))
	case *program.IfExpr:
		return fmt.Sprintf("(%s ? %s : %s)", p.expr(e.Cond), p.expr(e.Then), p.expr(e.Else))
	case *program.StatementExpr:
		return p.statementExpr(e)
	case *program.ReinterpretExpr:
		return p.unsupported("reinterpret", "bit reinterpretation must be lowered before printing")
	case *program.NondetExpr:
		return p.unsupported("nondet", "nondeterministic values must be lowered before printing")
	case *program.OverflowExpr:
		return p.unsupported("overflow", "overflow predicates have no C rendering")
	}
	return p.unsupported(fmt.Sprintf("%T", e), "expression has no C spelling")
}

func (p *Printer) postfixOperand(e program.Expr) string {
	switch e.(type) {
	case *program.SymbolExpr, *program.MemberExpr, *program.IndexExpr, *program.CallExpr:
		return p.expr(e)
	}
	return "(" + p.expr(e) + ")"
}

// integer writes a constant with the suffix or cast its C type needs.
func (p *Printer) integer(e *program.IntConstant) string {
	value := e.Value
	switch t := e.Typ.(type) {
	case *program.SignedBVType:
		switch {
		case t.Width == 64:
			value += "ll"
		case t.Width != 32:
			return fmt.Sprintf("((%s)%s)", p.typeName(t), value)
		}
	case *program.UnsignedBVType:
		switch {
		case t.Width == 64:
			value += "ull"
		case t.Width == 32:
			value += "u"
		default:
			return fmt.Sprintf("((%s)%su)", p.typeName(t), value)
		}
	case *program.BoolType:
		if value == "0" {
			return "false"
		}
		return "true"
	default:
		return fmt.Sprintf("((%s)%s)", p.declare(e.Typ, ""), value)
	}
	if strings.HasPrefix(value, "-") {
		return "(" + value + ")"
	}
	return value
}

func (p *Printer) binary(e *program.BinaryExpr) string {
	lhs, rhs := p.expr(e.LHS), p.expr(e.RHS)
	switch e.Op {
	case program.OpImplies:
		return fmt.Sprintf("(!%s || %s)", lhs, rhs)
	case program.OpLShr:
		if signed, ok := e.LHS.Type().(*program.SignedBVType); ok {
			unsigned := program.Unsigned(signed.Width)
			return fmt.Sprintf("((%s)((%s)%s >> %s))", p.typeName(signed), p.typeName(unsigned), lhs, rhs)
		}
		return fmt.Sprintf("(%s >> %s)", lhs, rhs)
	case program.OpRol, program.OpRor:
		return p.unsupported(string(e.Op), "rotations must be lowered before printing")
	}
	return fmt.Sprintf("(%s %s %s)", lhs, e.Op, rhs)
}

// initializer writes aggregate values as brace lists so they can initialize
// declarations directly; other values are written as expressions.
func (p *Printer) initializer(e program.Expr) string {
	switch e := e.(type) {
	case *program.StructExpr:
		if len(e.Values) == 0 {
			return "{0}"
		}
		return "{" + p.initializers(e.Values) + "}"
	case *program.ArrayExpr:
		if len(e.Elems) == 0 {
			return "{0}"
		}
		return "{" + p.initializers(e.Elems) + "}"
	case *program.UnionExpr:
		return fmt.Sprintf("{.%s = %s}", e.Field, p.initializer(e.Value))
	}
	return p.expr(e)
}

func (p *Printer) initializers(in []program.Expr) string {
	parts := make([]string, len(in))
	for i, e := range in {
		parts[i] = p.initializer(e)
	}
	return strings.Join(parts, ", ")
}

// statementExpr writes a GNU statement expression on a single line.
func (p *Printer) statementExpr(e *program.StatementExpr) string {
	sub := &Printer{table: p.table, inline: true}
	for _, s := range e.Stmts {
		sub.write(" ")
		sub.printStmt(s)
	}
	if sub.err != nil && p.err == nil {
		p.err = sub.err
	}
	return "({" + sub.output.String() + " })"
}

// quote writes a C string literal; bytes outside printable ASCII use octal escapes.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c < 0x20 || c >= 0x7f {
				b.WriteString(fmt.Sprintf(`\%03o`, c))
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
