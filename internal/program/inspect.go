package program

// Inspect traverses n in depth-first pre-order, calling f for every type,
// expression and statement reached. Children are skipped when f returns false.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	switch n := n.(type) {
	// types
	case *PointerType:
		Inspect(n.Elem, f)
	case *ArrayType:
		Inspect(n.Elem, f)
	case *StructType:
		for _, c := range n.Components {
			Inspect(c.Type, f)
		}
	case *UnionType:
		for _, c := range n.Components {
			Inspect(c.Type, f)
		}
	case *CodeType:
		for _, p := range n.Parameters {
			Inspect(p.Type, f)
		}
		if n.Return != nil {
			Inspect(n.Return, f)
		}

	// expressions
	case *SymbolExpr:
		Inspect(n.Typ, f)
	case *IntConstant:
		Inspect(n.Typ, f)
	case *StringConstant:
		Inspect(n.Typ, f)
	case *BinaryExpr:
		Inspect(n.LHS, f)
		Inspect(n.RHS, f)
		Inspect(n.Typ, f)
	case *UnaryExpr:
		Inspect(n.Operand, f)
		Inspect(n.Typ, f)
	case *CallExpr:
		Inspect(n.Function, f)
		for _, a := range n.Args {
			Inspect(a, f)
		}
		Inspect(n.Typ, f)
	case *CastExpr:
		Inspect(n.Operand, f)
		Inspect(n.Typ, f)
	case *ReinterpretExpr:
		Inspect(n.Operand, f)
		Inspect(n.Typ, f)
	case *NondetExpr:
		Inspect(n.Typ, f)
	case *StructExpr:
		for _, v := range n.Values {
			Inspect(v, f)
		}
		Inspect(n.Typ, f)
	case *UnionExpr:
		Inspect(n.Value, f)
		Inspect(n.Typ, f)
	case *ArrayExpr:
		for _, e := range n.Elems {
			Inspect(e, f)
		}
		Inspect(n.Typ, f)
	case *MemberExpr:
		Inspect(n.Operand, f)
		Inspect(n.Typ, f)
	case *AddressOfExpr:
		Inspect(n.Operand, f)
		Inspect(n.Typ, f)
	case *DereferenceExpr:
		Inspect(n.Operand, f)
		Inspect(n.Typ, f)
	case *IndexExpr:
		Inspect(n.Array, f)
		Inspect(n.Index, f)
		Inspect(n.Typ, f)
	case *IfExpr:
		Inspect(n.Cond, f)
		Inspect(n.Then, f)
		Inspect(n.Else, f)
		Inspect(n.Typ, f)
	case *OverflowExpr:
		Inspect(n.LHS, f)
		Inspect(n.RHS, f)
	case *StatementExpr:
		for _, s := range n.Stmts {
			Inspect(s, f)
		}
		Inspect(n.Typ, f)

	// statements
	case *Block:
		for _, s := range n.Stmts {
			Inspect(s, f)
		}
	case *Decl:
		Inspect(n.Symbol, f)
		if n.Value != nil {
			Inspect(n.Value, f)
		}
	case *Assign:
		Inspect(n.LHS, f)
		Inspect(n.RHS, f)
	case *ExprStmt:
		Inspect(n.Expr, f)
	case *Return:
		if n.Value != nil {
			Inspect(n.Value, f)
		}
	case *IfThenElse:
		Inspect(n.Cond, f)
		Inspect(n.Then, f)
		if n.Else != nil {
			Inspect(n.Else, f)
		}
	case *While:
		Inspect(n.Cond, f)
		Inspect(n.Body, f)
	case *Label:
		Inspect(n.Body, f)
	case *Assume:
		Inspect(n.Cond, f)
	case *Assert:
		Inspect(n.Cond, f)
	}
}

// InspectSymbol runs Inspect over the symbol's type and value or body.
func InspectSymbol(sym *Symbol, f func(Node) bool) {
	Inspect(sym.Type, f)
	if sym.Value != nil {
		Inspect(sym.Value, f)
	}
	if sym.Body != nil {
		Inspect(sym.Body, f)
	}
}
