package serialize

import (
	"fmt"

	"gotox/internal/program"
)

func codeNode(statement string, sub ...*Irep) *Irep {
	return node("code", sub...).
		set("statement", leaf(statement)).
		set("type", leaf("empty"))
}

func (c *converter) stmts(in []program.Stmt) ([]*Irep, error) {
	out := make([]*Irep, 0, len(in))
	for _, s := range in {
		x, err := c.stmt(s)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}

func (c *converter) stmt(s program.Stmt) (*Irep, error) {
	switch s := s.(type) {
	case *program.Block:
		sub, err := c.stmts(s.Stmts)
		if err != nil {
			return nil, err
		}
		return codeNode("block", sub...), nil
	case *program.Decl:
		sym, err := c.expr(s.Symbol)
		if err != nil {
			return nil, err
		}
		if s.Value == nil {
			return codeNode("decl", sym), nil
		}
		value, err := c.expr(s.Value)
		if err != nil {
			return nil, err
		}
		return codeNode("decl", sym, value), nil
	case *program.Assign:
		ops, err := c.exprs([]program.Expr{s.LHS, s.RHS})
		if err != nil {
			return nil, err
		}
		return codeNode("assign", ops...), nil
	case *program.ExprStmt:
		e, err := c.expr(s.Expr)
		if err != nil {
			return nil, err
		}
		return codeNode("expression", e), nil
	case *program.Return:
		if s.Value == nil {
			return codeNode("return"), nil
		}
		value, err := c.expr(s.Value)
		if err != nil {
			return nil, err
		}
		return codeNode("return", value), nil
	case *program.IfThenElse:
		cond, err := c.expr(s.Cond)
		if err != nil {
			return nil, err
		}
		then, err := c.stmt(s.Then)
		if err != nil {
			return nil, err
		}
		els := Nil()
		if s.Else != nil {
			if els, err = c.stmt(s.Else); err != nil {
				return nil, err
			}
		}
		return codeNode("ifthenelse", cond, then, els), nil
	case *program.While:
		cond, err := c.expr(s.Cond)
		if err != nil {
			return nil, err
		}
		body, err := c.stmt(s.Body)
		if err != nil {
			return nil, err
		}
		return codeNode("while", cond, body), nil
	case *program.Goto:
		return codeNode("goto").set("destination", leaf(s.Label)), nil
	case *program.Label:
		body, err := c.stmt(s.Body)
		if err != nil {
			return nil, err
		}
		return codeNode("label", body).set("label", leaf(s.Label)), nil
	case *program.Assume:
		cond, err := c.expr(s.Cond)
		if err != nil {
			return nil, err
		}
		return codeNode("assume", cond), nil
	case *program.Assert:
		cond, err := c.expr(s.Cond)
		if err != nil {
			return nil, err
		}
		out := codeNode("assert", cond)
		if s.Message != "" {
			out.set("#source_location", leaf("").set("comment", leaf(s.Message)))
		}
		return out, nil
	case *program.Skip:
		return codeNode("skip"), nil
	}
	return nil, fmt.Errorf("unknown statement node %T", s)
}
