package program

import (
	"fmt"
	"strconv"
	"strings"
)

// Expression and statement spellings of the textual symbol-table format. Binary and
// unary operators are always parenthesized so the output reparses without a
// precedence table.

func (e *SymbolExpr) String() string { return FormatName(e.Identifier) }

func (e *IntConstant) String() string {
	return e.Value + constantSuffix(e.Typ)
}

func constantSuffix(t Type) string {
	switch t := t.(type) {
	case *SignedBVType:
		return fmt.Sprintf("i%d", t.Width)
	case *UnsignedBVType:
		return fmt.Sprintf("u%d", t.Width)
	}
	return ""
}

func (e *BoolConstant) String() string { return strconv.FormatBool(e.Value) }

func (e *StringConstant) String() string { return "c" + strconv.Quote(e.Value) }

func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.LHS, e.Op, e.RHS)
}

func (e *UnaryExpr) String() string {
	if e.Op == OpNeg {
		// "-1" would read back as a negative constant
		return fmt.Sprintf("(- %s)", e.Operand)
	}
	return fmt.Sprintf("(%s%s)", e.Op, e.Operand)
}

func (e *CallExpr) String() string {
	callee := e.Function.String()
	if _, ok := e.Function.(*SymbolExpr); !ok {
		callee = "(" + callee + ")"
	}
	return fmt.Sprintf("%s(%s)", callee, joinExprs(e.Args))
}

func (e *CastExpr) String() string {
	return fmt.Sprintf("cast<%s>(%s)", e.Typ, e.Operand)
}

func (e *ReinterpretExpr) String() string {
	return fmt.Sprintf("reinterpret<%s>(%s)", e.Typ, e.Operand)
}

func (e *NondetExpr) String() string { return fmt.Sprintf("nondet<%s>", e.Typ) }

func (e *StructExpr) String() string {
	return fmt.Sprintf("struct<%s>{%s}", e.Typ, joinExprs(e.Values))
}

func (e *UnionExpr) String() string {
	return fmt.Sprintf("union<%s>{%s: %s}", e.Typ, FormatName(e.Field), e.Value)
}

func (e *ArrayExpr) String() string {
	return fmt.Sprintf("array<%s>{%s}", e.Typ, joinExprs(e.Elems))
}

func (e *MemberExpr) String() string {
	return fmt.Sprintf("%s.%s", postfixOperand(e.Operand), FormatName(e.Field))
}

func (e *AddressOfExpr) String() string { return fmt.Sprintf("(&%s)", e.Operand) }

func (e *DereferenceExpr) String() string { return fmt.Sprintf("(*%s)", e.Operand) }

func (e *IndexExpr) String() string {
	return fmt.Sprintf("%s[%s]", postfixOperand(e.Array), e.Index)
}

func (e *IfExpr) String() string {
	return fmt.Sprintf("select(%s, %s, %s)", e.Cond, e.Then, e.Else)
}

func (e *OverflowExpr) String() string {
	return fmt.Sprintf("overflow(%s, %s, %s)", e.Op, e.LHS, e.RHS)
}

func (e *StatementExpr) String() string {
	var b strings.Builder
	b.WriteString("({ ")
	for _, s := range e.Stmts {
		b.WriteString(FormatStmt(s, -1))
		b.WriteString(" ")
	}
	b.WriteString(fmt.Sprintf("} : %s)", e.Typ))
	return b.String()
}

// postfixOperand wraps operands that would otherwise bind looser than a postfix.
func postfixOperand(e Expr) string {
	switch e.(type) {
	case *SymbolExpr, *MemberExpr, *IndexExpr, *CallExpr, *BinaryExpr, *UnaryExpr,
		*AddressOfExpr, *DereferenceExpr:
		return e.String()
	}
	return "(" + e.String() + ")"
}

func joinExprs(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

// FormatStmt renders s in the textual format. A negative level renders on a single line.
func FormatStmt(s Stmt, level int) string {
	var b strings.Builder
	writeStmt(&b, s, level)
	return b.String()
}

func writeIndent(b *strings.Builder, level int) {
	if level > 0 {
		b.WriteString(strings.Repeat("    ", level))
	}
}

func newline(b *strings.Builder, level int) {
	if level >= 0 {
		b.WriteString("\n")
	} else {
		b.WriteString(" ")
	}
}

func writeStmt(b *strings.Builder, s Stmt, level int) {
	switch s := s.(type) {
	case *Block:
		b.WriteString("{")
		inner := level
		if level >= 0 {
			inner = level + 1
		}
		newline(b, level)
		for _, st := range s.Stmts {
			writeIndent(b, inner)
			writeStmt(b, st, inner)
			newline(b, level)
		}
		writeIndent(b, level)
		b.WriteString("}")
	case *Decl:
		b.WriteString(fmt.Sprintf("decl %s: %s", s.Symbol, s.Symbol.Typ))
		if s.Value != nil {
			b.WriteString(" = " + s.Value.String())
		}
		b.WriteString(";")
	case *Assign:
		b.WriteString(fmt.Sprintf("%s = %s;", s.LHS, s.RHS))
	case *ExprStmt:
		b.WriteString(s.Expr.String() + ";")
	case *Return:
		if s.Value == nil {
			b.WriteString("return;")
		} else {
			b.WriteString("return " + s.Value.String() + ";")
		}
	case *IfThenElse:
		b.WriteString(fmt.Sprintf("if %s ", s.Cond))
		writeStmt(b, asBlock(s.Then), level)
		if s.Else != nil {
			b.WriteString(" else ")
			writeStmt(b, asBlock(s.Else), level)
		}
	case *While:
		b.WriteString(fmt.Sprintf("while %s ", s.Cond))
		writeStmt(b, asBlock(s.Body), level)
	case *Goto:
		b.WriteString("goto " + FormatName(s.Label) + ";")
	case *Label:
		b.WriteString("label " + FormatName(s.Label) + ": ")
		writeStmt(b, s.Body, level)
	case *Assume:
		b.WriteString(fmt.Sprintf("assume(%s);", s.Cond))
	case *Assert:
		if s.Message != "" {
			b.WriteString(fmt.Sprintf("assert(%s, c%s);", s.Cond, strconv.Quote(s.Message)))
		} else {
			b.WriteString(fmt.Sprintf("assert(%s);", s.Cond))
		}
	case *Skip:
		b.WriteString("skip;")
	default:
		b.WriteString(fmt.Sprintf("/* unknown statement %T */", s))
	}
}

func asBlock(s Stmt) Stmt {
	if _, ok := s.(*Block); ok {
		return s
	}
	return &Block{Stmts: []Stmt{s}}
}
