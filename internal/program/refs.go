package program

import "fmt"

// ReferenceKind says where a reference to another symbol occurs.
type ReferenceKind string

const (
	RefSymbol    ReferenceKind = "symbol"
	RefTag       ReferenceKind = "tag"
	RefParameter ReferenceKind = "parameter"
)

// Reference is one occurrence of a symbol name inside another symbol.
type Reference struct {
	From       string
	Identifier string
	Kind       ReferenceKind
}

// References lists the names sym refers to, in traversal order, without duplicates.
func References(sym *Symbol) []Reference {
	var refs []Reference
	seen := make(map[string]bool)
	add := func(id string, kind ReferenceKind) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		refs = append(refs, Reference{From: sym.Name, Identifier: id, Kind: kind})
	}
	InspectSymbol(sym, func(n Node) bool {
		switch n := n.(type) {
		case *SymbolExpr:
			add(n.Identifier, RefSymbol)
		case *StructTagType:
			add(n.Identifier, RefTag)
		case *UnionTagType:
			add(n.Identifier, RefTag)
		case *CodeType:
			for _, p := range n.Parameters {
				add(p.Identifier, RefParameter)
			}
		}
		return true
	})
	return refs
}

// Unresolved returns every reference that names no key of the table, in table order.
// An empty result means the table is referentially closed.
func Unresolved(t *SymbolTable) []Reference {
	var dangling []Reference
	for _, sym := range t.Symbols() {
		for _, ref := range References(sym) {
			if !t.Contains(ref.Identifier) {
				dangling = append(dangling, ref)
			}
		}
	}
	return dangling
}

// TypeMismatch is a node whose declared type disagrees with the table.
type TypeMismatch struct {
	Symbol   string
	Node     string
	Expected Type
	Actual   Type
}

func (m TypeMismatch) String() string {
	return fmt.Sprintf("%s: %s has type %s, expected %s", m.Symbol, m.Node, m.Actual, m.Expected)
}

// CheckTypes verifies the type rules the front end establishes for references,
// calls, declarations and assignments. Unresolved references are not reported here.
func CheckTypes(t *SymbolTable) []TypeMismatch {
	var out []TypeMismatch
	for _, sym := range t.Symbols() {
		report := func(node string, expected, actual Type) {
			out = append(out, TypeMismatch{Symbol: sym.Name, Node: node, Expected: expected, Actual: actual})
		}
		if sym.Value != nil && !sym.IsType && !TypesEqual(sym.Type, sym.Value.Type()) {
			report("initializer", sym.Type, sym.Value.Type())
		}
		InspectSymbol(sym, func(n Node) bool {
			switch n := n.(type) {
			case *SymbolExpr:
				if target, ok := t.Lookup(n.Identifier); ok && !TypesEqual(target.Type, n.Typ) {
					report("reference to "+n.Identifier, target.Type, n.Typ)
				}
			case *CallExpr:
				if code := calleeCodeType(n.Function.Type()); code != nil {
					if !TypesEqual(code.ReturnType(), n.Typ) {
						report("call result", code.ReturnType(), n.Typ)
					}
				}
			case *Decl:
				if n.Value != nil && !TypesEqual(n.Symbol.Typ, n.Value.Type()) {
					report("declaration of "+n.Symbol.Identifier, n.Symbol.Typ, n.Value.Type())
				}
			case *Assign:
				if !TypesEqual(n.LHS.Type(), n.RHS.Type()) {
					report("assignment", n.LHS.Type(), n.RHS.Type())
				}
			}
			return true
		})
	}
	return out
}

func calleeCodeType(t Type) *CodeType {
	switch t := t.(type) {
	case *CodeType:
		return t
	case *PointerType:
		if code, ok := t.Elem.(*CodeType); ok {
			return code
		}
	}
	return nil
}

// CountNodes returns how many nodes of the table satisfy pred.
func CountNodes(t *SymbolTable, pred func(Node) bool) int {
	n := 0
	for _, sym := range t.Symbols() {
		InspectSymbol(sym, func(node Node) bool {
			if pred(node) {
				n++
			}
			return true
		})
	}
	return n
}

// Implied returns the names that are introduced as part of another symbol: named
// parameters of code types and locals declared by Decl statements. Printers write
// them where they occur rather than as items of their own.
func Implied(t *SymbolTable) map[string]bool {
	implied := make(map[string]bool)
	for _, sym := range t.Symbols() {
		if sym.IsType {
			continue
		}
		if code, ok := sym.Type.(*CodeType); ok {
			for _, p := range code.Parameters {
				if p.Identifier != "" {
					implied[p.Identifier] = true
				}
			}
		}
		InspectSymbol(sym, func(n Node) bool {
			if decl, ok := n.(*Decl); ok {
				implied[decl.Symbol.Identifier] = true
			}
			return true
		})
	}
	return implied
}
