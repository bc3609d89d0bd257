package program

import (
	"errors"
	"fmt"
)

// ErrDuplicateSymbol is returned when a symbol is inserted under a name the table already holds.
var ErrDuplicateSymbol = errors.New("duplicate symbol")

// MachineModel describes the target the goto program was translated for.
type MachineModel struct {
	PointerWidth int
	IntWidth     int
	LongWidth    int
	LittleEndian bool
}

// DefaultMachineModel is a 64-bit little-endian LP64 target.
func DefaultMachineModel() MachineModel {
	return MachineModel{PointerWidth: 64, IntWidth: 32, LongWidth: 64, LittleEndian: true}
}

// SymbolTable maps unique names to symbols. Iteration follows insertion order so
// every consumer sees the same sequence for equal tables.
type SymbolTable struct {
	Machine MachineModel
	order   []string
	symbols map[string]*Symbol
}

// NewSymbolTable creates an empty table for the given machine.
func NewSymbolTable(machine MachineModel) *SymbolTable {
	return &SymbolTable{
		Machine: machine,
		symbols: make(map[string]*Symbol),
	}
}

// Insert adds sym at the end of the table.
func (t *SymbolTable) Insert(sym *Symbol) error {
	if sym == nil || sym.Name == "" {
		return fmt.Errorf("insert: symbol without a name")
	}
	if _, exists := t.symbols[sym.Name]; exists {
		return fmt.Errorf("insert %q: %w", sym.Name, ErrDuplicateSymbol)
	}
	t.order = append(t.order, sym.Name)
	t.symbols[sym.Name] = sym
	return nil
}

// MustInsert is Insert for table literals in tests and fixtures.
func (t *SymbolTable) MustInsert(syms ...*Symbol) *SymbolTable {
	for _, sym := range syms {
		if err := t.Insert(sym); err != nil {
			panic(err)
		}
	}
	return t
}

func (t *SymbolTable) Lookup(name string) (*Symbol, bool) {
	sym, ok := t.symbols[name]
	return sym, ok
}

func (t *SymbolTable) Contains(name string) bool {
	_, ok := t.symbols[name]
	return ok
}

func (t *SymbolTable) Len() int {
	return len(t.order)
}

// Names returns the keys in insertion order.
func (t *SymbolTable) Names() []string {
	names := make([]string, len(t.order))
	copy(names, t.order)
	return names
}

// Symbols returns the symbols in insertion order.
func (t *SymbolTable) Symbols() []*Symbol {
	syms := make([]*Symbol, len(t.order))
	for i, name := range t.order {
		syms[i] = t.symbols[name]
	}
	return syms
}

// Clone returns a table with the same order and machine whose symbol structs are
// copied. Types and expressions are shared; passes never mutate nodes in place.
func (t *SymbolTable) Clone() *SymbolTable {
	out := NewSymbolTable(t.Machine)
	for _, sym := range t.Symbols() {
		cp := *sym
		out.order = append(out.order, cp.Name)
		out.symbols[cp.Name] = &cp
	}
	return out
}

// ResolveTag returns the definition behind a struct or union tag type, or t itself
// when it is not a tag or the tag is unknown.
func (t *SymbolTable) ResolveTag(typ Type) Type {
	var id string
	switch tag := typ.(type) {
	case *StructTagType:
		id = tag.Identifier
	case *UnionTagType:
		id = tag.Identifier
	default:
		return typ
	}
	if sym, ok := t.symbols[id]; ok && sym.IsType {
		return sym.Type
	}
	return typ
}

// Components returns the components of a struct or union type, following tags.
func (t *SymbolTable) Components(typ Type) ([]Component, bool) {
	switch def := t.ResolveTag(typ).(type) {
	case *StructType:
		return def.Components, true
	case *UnionType:
		return def.Components, true
	}
	return nil, false
}
