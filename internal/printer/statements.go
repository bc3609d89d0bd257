package printer

import (
	"fmt"

	"gotox/internal/program"
)

func asBlock(s program.Stmt) program.Stmt {
	if _, ok := s.(*program.Block); ok {
		return s
	}
	return &program.Block{Stmts: []program.Stmt{s}}
}

// printStmt writes s starting at the current position; nested statements are
// written on lines of their own.
func (p *Printer) printStmt(s program.Stmt) {
	switch s := s.(type) {
	case *program.Block:
		p.write("{")
		p.newline()
		p.indent++
		for _, st := range s.Stmts {
			p.writeIndent()
			p.printStmt(st)
			p.newline()
		}
		p.indent--
		p.writeIndent()
		p.write("}")
	case *program.Decl:
		decl := p.declare(s.Symbol.Typ, s.Symbol.Identifier)
		if s.Value != nil {
			decl += " = " + p.initializer(s.Value)
		}
		p.write("%s;", decl)
	case *program.Assign:
		p.write("%s = %s;", p.expr(s.LHS), p.expr(s.RHS))
	case *program.ExprStmt:
		p.write("%s;", p.expr(s.Expr))
	case *program.Return:
		if s.Value == nil {
			p.write("return;")
		} else {
			p.write("return %s;", p.expr(s.Value))
		}
	case *program.IfThenElse:
		p.write("if %s ", p.condition(s.Cond))
		p.printStmt(asBlock(s.Then))
		if s.Else != nil {
			p.write(" else ")
			if elseIf, ok := s.Else.(*program.IfThenElse); ok {
				p.printStmt(elseIf)
			} else {
				p.printStmt(asBlock(s.Else))
			}
		}
	case *program.While:
		p.write("while %s ", p.condition(s.Cond))
		p.printStmt(asBlock(s.Body))
	case *program.Goto:
		p.write("goto %s;", s.Label)
	case *program.Label:
		p.write("%s: ", s.Label)
		p.printStmt(s.Body)
	case *program.Assume:
		p.write("__CPROVER_assume(%s);", p.expr(s.Cond))
	case *program.Assert:
		if s.Message != "" {
			p.write("__CPROVER_assert(%s, %s);", p.expr(s.Cond), quote(s.Message))
		} else {
			p.write("assert(%s);", p.expr(s.Cond))
		}
	case *program.Skip:
		p.write(";")
	default:
		p.write("%s", p.unsupported(fmt.Sprintf("%T", s), "statement has no C spelling"))
	}
}

// condition parenthesizes e unless its spelling already is.
func (p *Printer) condition(e program.Expr) string {
	text := p.expr(e)
	switch e.(type) {
	case *program.BinaryExpr, *program.UnaryExpr, *program.IfExpr, *program.CastExpr:
		return text
	}
	return "(" + text + ")"
}
