package grammar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"gotox/internal/errors"
	"gotox/internal/program"
)

var (
	bitVectorType = regexp.MustCompile(`^([iuf])([0-9]+)$`)
	integerToken  = regexp.MustCompile(`^(-?[0-9]+)(?:([iu])([0-9]+))?$`)
)

// Value returns the name as written, without quotes.
func (n *Name) Value() string {
	if n.Bare != "" {
		return n.Bare
	}
	return n.Quoted
}

// converter turns a parsed file into a symbol table in two phases: first every
// item's name and type is registered, then values and bodies are converted in
// item order. Locals declared in a body and the parameters of a function are
// inserted right before the function itself.
type converter struct {
	filename string
	table    *program.SymbolTable

	globals map[string]program.Type
	types   map[string]program.Type

	// current function
	fn     string
	scope  map[string]program.Type
	locals []*program.Symbol
}

// Convert builds the symbol table described by file.
func Convert(filename string, file *File) (*program.SymbolTable, error) {
	c := &converter{
		filename: filename,
		table:    program.NewSymbolTable(program.DefaultMachineModel()),
		globals:  make(map[string]program.Type),
		types:    make(map[string]program.Type),
	}
	if err := c.register(file); err != nil {
		return nil, err
	}
	for _, item := range file.Items {
		if err := c.item(item); err != nil {
			return nil, err
		}
	}
	return c.table, nil
}

func (c *converter) loc(pos lexer.Position) program.Location {
	return program.Location{File: c.filename, Line: pos.Line, Column: pos.Column}
}

func (c *converter) invalid(pos lexer.Position, format string, args ...any) error {
	return errors.InvalidInput(fmt.Sprintf(format, args...), c.loc(pos))
}

func (c *converter) name(n *Name) (string, error) {
	if v := n.Value(); v != "" {
		return v, nil
	}
	return "", c.invalid(n.Pos, "empty name")
}

// register is the first phase.
func (c *converter) register(file *File) error {
	declare := func(n *Name, t program.Type) error {
		name, err := c.name(n)
		if err != nil {
			return err
		}
		if _, exists := c.globals[name]; exists {
			return errors.DuplicateSymbol(name, c.loc(n.Pos))
		}
		c.globals[name] = t
		return nil
	}

	for _, item := range file.Items {
		switch {
		case item.Type != nil:
			t, err := c.typ(item.Type.Type)
			if err != nil {
				return err
			}
			if err := declare(item.Type.Name, t); err != nil {
				return err
			}
			name, _ := c.name(item.Type.Name)
			c.types[name] = t
		case item.Symbol != nil && item.Symbol.Function != nil:
			fn := item.Symbol.Function
			code, err := c.codeType(fn.Params, fn.Return)
			if err != nil {
				return err
			}
			if err := declare(fn.Name, code); err != nil {
				return err
			}
		case item.Symbol != nil && item.Symbol.Global != nil:
			t, err := c.typ(item.Symbol.Global.Type)
			if err != nil {
				return err
			}
			if err := declare(item.Symbol.Global.Name, t); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *converter) item(item *Item) error {
	switch {
	case item.Machine != nil:
		return c.machine(item.Machine)
	case item.Type != nil:
		name, _ := c.name(item.Type.Name)
		return c.insert(&program.Symbol{
			Name:     name,
			BaseName: baseName(name),
			Type:     c.types[name],
			Location: c.loc(item.Type.Pos),
			IsType:   true,
		}, item.Type.Pos)
	case item.Symbol != nil && item.Symbol.Function != nil:
		return c.function(item.Symbol)
	case item.Symbol != nil && item.Symbol.Global != nil:
		return c.global(item.Symbol)
	}
	return c.invalid(item.Pos, "empty item")
}

func (c *converter) insert(sym *program.Symbol, pos lexer.Position) error {
	if err := c.table.Insert(sym); err != nil {
		return errors.DuplicateSymbol(sym.Name, c.loc(pos))
	}
	return nil
}

func (c *converter) machine(m *MachineItem) error {
	for _, s := range m.Settings {
		value, err := strconv.Atoi(s.Value)
		if err != nil {
			return c.invalid(s.Pos, "machine setting %s: %q is not a number", s.Key, s.Value)
		}
		switch s.Key {
		case "pointer_width":
			c.table.Machine.PointerWidth = value
		case "int_width":
			c.table.Machine.IntWidth = value
		case "long_width":
			c.table.Machine.LongWidth = value
		case "little_endian":
			c.table.Machine.LittleEndian = value != 0
		default:
			return c.invalid(s.Pos, "unknown machine setting %q", s.Key)
		}
	}
	return nil
}

func applyFlags(sym *program.Symbol, flags []string) {
	for _, f := range flags {
		switch f {
		case "static":
			sym.IsStaticLifetime = true
		case "extern":
			sym.IsExtern = true
		case "thread_local":
			sym.IsThreadLocal = true
		case "file_local":
			sym.IsFileLocal = true
		case "auxiliary":
			sym.IsAuxiliary = true
		}
	}
}

func (c *converter) global(item *SymbolItem) error {
	g := item.Global
	name, _ := c.name(g.Name)
	sym := &program.Symbol{
		Name:     name,
		BaseName: baseName(name),
		Type:     c.globals[name],
		Location: c.loc(item.Pos),
		IsLValue: true,
	}
	applyFlags(sym, item.Flags)

	// statement expressions in the initializer may declare temporaries
	c.fn, c.scope, c.locals = name, make(map[string]program.Type), nil
	if g.Value != nil {
		value, err := c.expr(g.Value)
		if err != nil {
			return err
		}
		sym.Value = value
	}
	for _, local := range c.locals {
		if err := c.insert(local, g.Pos); err != nil {
			return err
		}
	}
	c.fn, c.scope, c.locals = "", nil, nil
	return c.insert(sym, item.Pos)
}

func (c *converter) function(item *SymbolItem) error {
	fn := item.Function
	name, _ := c.name(fn.Name)
	code := c.globals[name].(*program.CodeType)
	sym := &program.Symbol{
		Name:             name,
		BaseName:         baseName(name),
		Type:             code,
		Location:         c.loc(item.Pos),
		IsStaticLifetime: true,
	}
	applyFlags(sym, item.Flags)

	c.fn = name
	c.scope = make(map[string]program.Type)
	c.locals = nil
	for i, p := range code.Parameters {
		if p.Identifier == "" {
			continue
		}
		if _, exists := c.globals[p.Identifier]; exists {
			return errors.DuplicateSymbol(p.Identifier, c.loc(fn.Params.Params[i].Name.Pos))
		}
		param := program.Variable(p.Identifier, p.Type, program.Location{
			File:     c.filename,
			Function: name,
			Line:     fn.Params.Params[i].Name.Pos.Line,
			Column:   fn.Params.Params[i].Name.Pos.Column,
		})
		param.BaseName = p.BaseName
		param.IsParameter = true
		if err := c.insert(param, fn.Params.Params[i].Name.Pos); err != nil {
			return err
		}
		c.scope[p.Identifier] = p.Type
	}

	if fn.Body != nil {
		body, err := c.block(fn.Body)
		if err != nil {
			return err
		}
		sym.Body = body
	}
	for _, local := range c.locals {
		if err := c.insert(local, fn.Pos); err != nil {
			return err
		}
	}
	c.fn, c.scope, c.locals = "", nil, nil
	return c.insert(sym, item.Pos)
}

// Types

func (c *converter) typ(t *TypeExpr) (program.Type, error) {
	switch {
	case t.Pointer != nil:
		elem, err := c.typ(t.Pointer)
		if err != nil {
			return nil, err
		}
		return program.Pointer(elem), nil
	case t.Array != nil:
		size, err := strconv.ParseInt(t.Array.Size, 10, 64)
		if err != nil || size < 0 {
			return nil, c.invalid(t.Pos, "invalid array size %q", t.Array.Size)
		}
		elem, err := c.typ(t.Array.Elem)
		if err != nil {
			return nil, err
		}
		return program.Array(elem, size), nil
	case t.Struct != nil:
		return c.aggregate(t.Struct, false)
	case t.Union != nil:
		return c.aggregate(t.Union, true)
	case t.Code != nil:
		return c.codeType(t.Code.Params, t.Code.Return)
	}

	switch t.Named {
	case "bool":
		return program.Bool(), nil
	case "void":
		return program.Void(), nil
	}
	if m := bitVectorType.FindStringSubmatch(t.Named); m != nil {
		width, _ := strconv.Atoi(m[2])
		if width == 0 {
			return nil, c.invalid(t.Pos, "zero width type %q", t.Named)
		}
		switch m[1] {
		case "i":
			return program.Signed(width), nil
		case "u":
			return program.Unsigned(width), nil
		default:
			return program.Float(width), nil
		}
	}
	return nil, c.invalid(t.Pos, "unknown type %q", t.Named)
}

func (c *converter) aggregate(a *Aggregate, union bool) (program.Type, error) {
	if a.Ref != nil {
		name, err := c.name(a.Ref)
		if err != nil {
			return nil, err
		}
		if union {
			return program.UnionTag(name), nil
		}
		return program.StructTag(name), nil
	}

	var components []program.Component
	for _, comp := range a.Definition.Components {
		name, err := c.name(comp.Name)
		if err != nil {
			return nil, err
		}
		t, err := c.typ(comp.Type)
		if err != nil {
			return nil, err
		}
		components = append(components, program.Component{Name: name, Type: t})
	}
	tag := ""
	if a.Definition.Tag != nil {
		tag = a.Definition.Tag.Value()
	}
	if union {
		return &program.UnionType{Tag: tag, Components: components}, nil
	}
	return &program.StructType{Tag: tag, Components: components}, nil
}

func (c *converter) codeType(params *ParamList, ret *TypeExpr) (*program.CodeType, error) {
	code := &program.CodeType{Variadic: params.Variadic}
	for _, p := range params.Params {
		t, err := c.typ(p.Type)
		if err != nil {
			return nil, err
		}
		param := program.Parameter{Type: t}
		if p.Name != nil {
			param.Identifier = p.Name.Value()
			param.BaseName = baseName(param.Identifier)
		}
		code.Parameters = append(code.Parameters, param)
	}
	r, err := c.typ(ret)
	if err != nil {
		return nil, err
	}
	code.Return = r
	return code, nil
}

// components resolves the members of a struct or union type, following tags.
func (c *converter) components(t program.Type) ([]program.Component, bool) {
	switch tag := t.(type) {
	case *program.StructTagType:
		t = c.types[tag.Identifier]
	case *program.UnionTagType:
		t = c.types[tag.Identifier]
	}
	switch def := t.(type) {
	case *program.StructType:
		return def.Components, true
	case *program.UnionType:
		return def.Components, true
	}
	return nil, false
}

// Statements

func (c *converter) block(b *Block) (*program.Block, error) {
	stmts, err := c.stmts(b.Stmts)
	if err != nil {
		return nil, err
	}
	return &program.Block{Stmts: stmts}, nil
}

func (c *converter) stmts(in []*Stmt) ([]program.Stmt, error) {
	var out []program.Stmt
	for _, s := range in {
		st, err := c.stmt(s)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

func (c *converter) stmt(s *Stmt) (program.Stmt, error) {
	switch {
	case s.Block != nil:
		return c.block(s.Block)
	case s.Decl != nil:
		return c.decl(s)
	case s.Return != nil:
		if s.Return.Value == nil {
			return &program.Return{}, nil
		}
		value, err := c.expr(s.Return.Value)
		if err != nil {
			return nil, err
		}
		return &program.Return{Value: value}, nil
	case s.If != nil:
		cond, err := c.expr(s.If.Cond)
		if err != nil {
			return nil, err
		}
		then, err := c.block(s.If.Then)
		if err != nil {
			return nil, err
		}
		out := &program.IfThenElse{Cond: cond, Then: then}
		if s.If.Else != nil {
			els, err := c.block(s.If.Else)
			if err != nil {
				return nil, err
			}
			out.Else = els
		}
		return out, nil
	case s.While != nil:
		cond, err := c.expr(s.While.Cond)
		if err != nil {
			return nil, err
		}
		body, err := c.block(s.While.Body)
		if err != nil {
			return nil, err
		}
		return &program.While{Cond: cond, Body: body}, nil
	case s.Goto != nil:
		label, err := c.name(s.Goto)
		if err != nil {
			return nil, err
		}
		return &program.Goto{Label: label}, nil
	case s.Label != nil:
		label, err := c.name(s.Label.Label)
		if err != nil {
			return nil, err
		}
		body, err := c.stmt(s.Label.Body)
		if err != nil {
			return nil, err
		}
		return &program.Label{Label: label, Body: body}, nil
	case s.Assume != nil:
		cond, err := c.expr(s.Assume)
		if err != nil {
			return nil, err
		}
		return &program.Assume{Cond: cond}, nil
	case s.Assert != nil:
		cond, err := c.expr(s.Assert.Cond)
		if err != nil {
			return nil, err
		}
		out := &program.Assert{Cond: cond}
		if s.Assert.Message != nil {
			msg, err := unquoteCString(*s.Assert.Message)
			if err != nil {
				return nil, c.invalid(s.Pos, "invalid string %s", *s.Assert.Message)
			}
			out.Message = msg
		}
		return out, nil
	case s.Skip:
		return &program.Skip{}, nil
	case s.Expr != nil:
		lhs, err := c.expr(s.Expr.LHS)
		if err != nil {
			return nil, err
		}
		if s.Expr.RHS == nil {
			return &program.ExprStmt{Expr: lhs}, nil
		}
		rhs, err := c.expr(s.Expr.RHS)
		if err != nil {
			return nil, err
		}
		return &program.Assign{LHS: lhs, RHS: rhs}, nil
	}
	return nil, c.invalid(s.Pos, "empty statement")
}

// decl declares a local of the current function.
func (c *converter) decl(s *Stmt) (program.Stmt, error) {
	if c.scope == nil {
		return nil, c.invalid(s.Pos, "declaration outside of a function body")
	}
	name, err := c.name(s.Decl.Name)
	if err != nil {
		return nil, err
	}
	t, err := c.typ(s.Decl.Type)
	if err != nil {
		return nil, err
	}
	if _, exists := c.globals[name]; exists {
		return nil, errors.DuplicateSymbol(name, c.loc(s.Decl.Name.Pos))
	}
	if _, exists := c.scope[name]; exists {
		return nil, errors.DuplicateSymbol(name, c.loc(s.Decl.Name.Pos))
	}

	out := &program.Decl{Symbol: program.Sym(name, t)}
	if s.Decl.Value != nil {
		if out.Value, err = c.expr(s.Decl.Value); err != nil {
			return nil, err
		}
	}

	local := program.Variable(name, t, program.Location{
		File:     c.filename,
		Function: c.fn,
		Line:     s.Pos.Line,
		Column:   s.Pos.Column,
	})
	local.BaseName = baseName(name)
	c.scope[name] = t
	c.locals = append(c.locals, local)
	return out, nil
}

// Expressions

var precedence = map[string]int{
	"=>": 1,
	"||": 2,
	"&&": 3,
	"|":  4,
	"^":  5,
	"&":  6,
	"==": 7, "!=": 7,
	"<": 8, "<=": 8, ">": 8, ">=": 8,
	"<<": 9, ">>": 9, ">>>": 9, "rol": 9, "ror": 9,
	"+": 10, "-": 10,
	"*": 11, "/": 11, "%": 11,
}

func (c *converter) expr(e *Expr) (program.Expr, error) {
	left, err := c.unary(e.Left)
	if err != nil {
		return nil, err
	}
	if len(e.Ops) == 0 {
		return left, nil
	}

	// shunting-yard over the flat operator chain, all operators left-associative
	operands := []program.Expr{left}
	var ops []string
	reduce := func() {
		op := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		rhs := operands[len(operands)-1]
		lhs := operands[len(operands)-2]
		operands = operands[:len(operands)-2]
		operands = append(operands, binary(program.BinaryOp(op), lhs, rhs))
	}
	for _, op := range e.Ops {
		right, err := c.unary(op.Right)
		if err != nil {
			return nil, err
		}
		for len(ops) > 0 && precedence[ops[len(ops)-1]] >= precedence[op.Operator] {
			reduce()
		}
		ops = append(ops, op.Operator)
		operands = append(operands, right)
	}
	for len(ops) > 0 {
		reduce()
	}
	return operands[0], nil
}

func binary(op program.BinaryOp, lhs, rhs program.Expr) *program.BinaryExpr {
	t := lhs.Type()
	if op.IsComparison() || op.IsLogical() {
		t = program.Bool()
	}
	return &program.BinaryExpr{Op: op, LHS: lhs, RHS: rhs, Typ: t}
}

func (c *converter) unary(u *UnaryExpr) (program.Expr, error) {
	if u.Value != nil {
		return c.postfix(u.Value)
	}
	operand, err := c.unary(u.Operand)
	if err != nil {
		return nil, err
	}
	switch *u.Operator {
	case "!":
		return &program.UnaryExpr{Op: program.OpNot, Operand: operand, Typ: program.Bool()}, nil
	case "-":
		return &program.UnaryExpr{Op: program.OpNeg, Operand: operand, Typ: operand.Type()}, nil
	case "~":
		return &program.UnaryExpr{Op: program.OpBitNot, Operand: operand, Typ: operand.Type()}, nil
	case "&":
		return &program.AddressOfExpr{Operand: operand, Typ: program.Pointer(operand.Type())}, nil
	case "*":
		ptr, ok := operand.Type().(*program.PointerType)
		if !ok {
			return nil, c.invalid(u.Pos, "dereference of non-pointer %s", operand)
		}
		return &program.DereferenceExpr{Operand: operand, Typ: ptr.Elem}, nil
	}
	return nil, c.invalid(u.Pos, "unknown unary operator %q", *u.Operator)
}

func (c *converter) postfix(p *PostfixExpr) (program.Expr, error) {
	e, err := c.primary(p.Primary)
	if err != nil {
		return nil, err
	}
	for _, op := range p.Suffix {
		switch {
		case op.Field != nil:
			field := op.Field.Value()
			components, ok := c.components(e.Type())
			if !ok {
				return nil, c.invalid(op.Pos, "member access on %s of type %s", e, e.Type())
			}
			var ft program.Type
			for _, comp := range components {
				if comp.Name == field {
					ft = comp.Type
				}
			}
			if ft == nil {
				return nil, c.invalid(op.Pos, "type %s has no component %q", e.Type(), field)
			}
			e = &program.MemberExpr{Operand: e, Field: field, Typ: ft}
		case op.Index != nil:
			index, err := c.expr(op.Index)
			if err != nil {
				return nil, err
			}
			var elem program.Type
			switch t := e.Type().(type) {
			case *program.ArrayType:
				elem = t.Elem
			case *program.PointerType:
				elem = t.Elem
			default:
				return nil, c.invalid(op.Pos, "index into %s of type %s", e, e.Type())
			}
			e = &program.IndexExpr{Array: e, Index: index, Typ: elem}
		case op.Call != nil:
			args, err := c.exprs(op.Call.Values)
			if err != nil {
				return nil, err
			}
			e = &program.CallExpr{Function: e, Args: args, Typ: returnType(e.Type())}
		}
	}
	return e, nil
}

// returnType is the result type of calling a value of type t; unknown callees
// yield void so that dangling references survive until the closure check.
func returnType(t program.Type) program.Type {
	switch t := t.(type) {
	case *program.CodeType:
		return t.ReturnType()
	case *program.PointerType:
		if code, ok := t.Elem.(*program.CodeType); ok {
			return code.ReturnType()
		}
	}
	return program.Void()
}

func (c *converter) exprs(in []*Expr) ([]program.Expr, error) {
	var out []program.Expr
	for _, e := range in {
		x, err := c.expr(e)
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}

func (c *converter) lookup(name string) program.Type {
	if t, ok := c.scope[name]; ok {
		return t
	}
	if t, ok := c.globals[name]; ok {
		return t
	}
	return program.Void()
}

func (c *converter) primary(p *PrimaryExpr) (program.Expr, error) {
	switch {
	case p.Integer != nil:
		return c.integer(p.Pos, *p.Integer)
	case p.True:
		return &program.BoolConstant{Value: true}, nil
	case p.False:
		return &program.BoolConstant{Value: false}, nil
	case p.CString != nil:
		value, err := unquoteCString(*p.CString)
		if err != nil {
			return nil, c.invalid(p.Pos, "invalid string %s", *p.CString)
		}
		return &program.StringConstant{
			Value: value,
			Typ:   program.Array(program.Unsigned(8), int64(len(value)+1)),
		}, nil
	case p.Cast != nil:
		t, operand, err := c.typedOperand(p.Cast)
		if err != nil {
			return nil, err
		}
		return &program.CastExpr{Operand: operand, Typ: t}, nil
	case p.Reinterpret != nil:
		t, operand, err := c.typedOperand(p.Reinterpret)
		if err != nil {
			return nil, err
		}
		return &program.ReinterpretExpr{Operand: operand, Typ: t}, nil
	case p.Nondet != nil:
		t, err := c.typ(p.Nondet)
		if err != nil {
			return nil, err
		}
		return &program.NondetExpr{Typ: t}, nil
	case p.Struct != nil:
		t, values, err := c.typedValues(p.Struct)
		if err != nil {
			return nil, err
		}
		return &program.StructExpr{Values: values, Typ: t}, nil
	case p.Array != nil:
		t, values, err := c.typedValues(p.Array)
		if err != nil {
			return nil, err
		}
		return &program.ArrayExpr{Elems: values, Typ: t}, nil
	case p.Union != nil:
		t, err := c.typ(p.Union.Type)
		if err != nil {
			return nil, err
		}
		value, err := c.expr(p.Union.Value)
		if err != nil {
			return nil, err
		}
		return &program.UnionExpr{Field: p.Union.Field.Value(), Value: value, Typ: t}, nil
	case p.Select != nil:
		args, err := c.exprs(p.Select.Values)
		if err != nil {
			return nil, err
		}
		if len(args) != 3 {
			return nil, c.invalid(p.Pos, "select takes 3 operands, got %d", len(args))
		}
		return &program.IfExpr{Cond: args[0], Then: args[1], Else: args[2], Typ: args[1].Type()}, nil
	case p.Overflow != nil:
		lhs, err := c.expr(p.Overflow.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := c.expr(p.Overflow.RHS)
		if err != nil {
			return nil, err
		}
		return &program.OverflowExpr{Op: program.BinaryOp(p.Overflow.Operator), LHS: lhs, RHS: rhs}, nil
	case p.StmtExpr != nil:
		stmts, err := c.stmts(p.StmtExpr.Stmts)
		if err != nil {
			return nil, err
		}
		t, err := c.typ(p.StmtExpr.Type)
		if err != nil {
			return nil, err
		}
		return &program.StatementExpr{Stmts: stmts, Typ: t}, nil
	case p.Parens != nil:
		return c.expr(p.Parens)
	case p.Name != nil:
		name, err := c.name(p.Name)
		if err != nil {
			return nil, err
		}
		return program.Sym(name, c.lookup(name)), nil
	}
	return nil, c.invalid(p.Pos, "empty expression")
}

func (c *converter) typedOperand(t *TypedOperand) (program.Type, program.Expr, error) {
	typ, err := c.typ(t.Type)
	if err != nil {
		return nil, nil, err
	}
	operand, err := c.expr(t.Operand)
	if err != nil {
		return nil, nil, err
	}
	return typ, operand, nil
}

func (c *converter) typedValues(t *TypedValues) (program.Type, []program.Expr, error) {
	typ, err := c.typ(t.Type)
	if err != nil {
		return nil, nil, err
	}
	values, err := c.exprs(t.Values)
	if err != nil {
		return nil, nil, err
	}
	return typ, values, nil
}

// integer converts 42, -1i8 or 7u64. Unsuffixed literals are i32.
func (c *converter) integer(pos lexer.Position, tok string) (program.Expr, error) {
	m := integerToken.FindStringSubmatch(tok)
	if m == nil {
		return nil, c.invalid(pos, "invalid integer %q", tok)
	}
	var t program.Type = program.Signed(32)
	if m[2] != "" {
		width, _ := strconv.Atoi(m[3])
		if width == 0 {
			return nil, c.invalid(pos, "zero width integer %q", tok)
		}
		if m[2] == "u" {
			if strings.HasPrefix(m[1], "-") {
				return nil, c.invalid(pos, "negative unsigned integer %q", tok)
			}
			t = program.Unsigned(width)
		} else {
			t = program.Signed(width)
		}
	}
	return program.Int(m[1], t), nil
}

func unquoteCString(tok string) (string, error) {
	return strconv.Unquote(strings.TrimPrefix(tok, "c"))
}

// baseName is the last component of a qualified name.
func baseName(name string) string {
	if i := strings.LastIndex(name, "::"); i >= 0 && i+2 < len(name) {
		return name[i+2:]
	}
	return name
}
