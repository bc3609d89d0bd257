package program

import "fmt"

// Location is a source position; the zero value means no location is known.
type Location struct {
	File     string
	Function string
	Line     int
	Column   int
}

// IsNone reports whether the location carries no information.
func (l Location) IsNone() bool {
	return l == Location{}
}

func (l Location) String() string {
	if l.IsNone() {
		return "<builtin>"
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// Symbol is one named entity of the goto program: a function, a global or local
// variable, a parameter or a type declaration.
type Symbol struct {
	Name       string // unique key in the table
	BaseName   string // unqualified name as written in source
	PrettyName string // human readable name kept for diagnostics
	Module     string
	Type       Type

	// At most one of Value and Body is set. Functions carry a Body, variables an
	// initializer Value, declarations neither.
	Value Expr
	Body  Stmt

	Location Location

	IsType           bool
	IsExtern         bool
	IsStaticLifetime bool
	IsParameter      bool
	IsAuxiliary      bool
	IsLValue         bool
	IsThreadLocal    bool
	IsFileLocal      bool
}

// IsFunction reports whether the symbol declares or defines a function.
func (s *Symbol) IsFunction() bool {
	_, ok := s.Type.(*CodeType)
	return ok && !s.IsType
}

// DisplayName prefers the pretty name for diagnostics.
func (s *Symbol) DisplayName() string {
	if s.PrettyName != "" {
		return s.PrettyName
	}
	return s.Name
}

// Expr returns a reference to the symbol.
func (s *Symbol) Expr() *SymbolExpr {
	return &SymbolExpr{Identifier: s.Name, Typ: s.Type}
}

// Function returns an extern, body-less function declaration.
func Function(name string, typ *CodeType) *Symbol {
	return &Symbol{
		Name:             name,
		BaseName:         name,
		Type:             typ,
		IsExtern:         true,
		IsStaticLifetime: true,
	}
}

// Variable returns a local lvalue symbol.
func Variable(name string, typ Type, loc Location) *Symbol {
	return &Symbol{
		Name:     name,
		BaseName: name,
		Type:     typ,
		Location: loc,
		IsLValue: true,
	}
}
