package printer

import (
	"fmt"
	"strings"

	"gotox/internal/errors"
	"gotox/internal/program"
)

// Printer renders a symbol table as C text. The table is expected to have gone
// through the c pipeline mode: names are legal identifiers and no reinterpret,
// rotate, overflow or nondet nodes remain.
type Printer struct {
	indent int
	output strings.Builder
	table  *program.SymbolTable
	err    error

	// inline writes statements on a single line
	inline bool
}

// NewPrinter creates a printer for table.
func NewPrinter(table *program.SymbolTable) *Printer {
	return &Printer{table: table}
}

// Print returns the C translation unit for table.
func Print(table *program.SymbolTable) (string, error) {
	p := NewPrinter(table)
	p.printTable()
	if p.err != nil {
		return "", p.err
	}
	return p.output.String(), nil
}

// Helper methods

func (p *Printer) writeIndent() {
	if p.inline {
		return
	}
	for i := 0; i < p.indent; i++ {
		p.output.WriteString("  ")
	}
}

func (p *Printer) newline() {
	if p.inline {
		p.output.WriteString(" ")
		return
	}
	p.output.WriteString("\n")
}

func (p *Printer) writeLine(format string, args ...interface{}) {
	p.writeIndent()
	p.output.WriteString(fmt.Sprintf(format, args...))
	p.output.WriteString("\n")
}

func (p *Printer) write(format string, args ...interface{}) {
	p.output.WriteString(fmt.Sprintf(format, args...))
}

// unsupported records the first node the printer has no C spelling for.
func (p *Printer) unsupported(construct, detail string) string {
	if p.err == nil {
		p.err = errors.UnsupportedConstruct("printer", construct, detail)
	}
	return "/* " + construct + " */"
}

func (p *Printer) printTable() {
	p.writeLine("#include <assert.h>")
	p.writeLine("#include <stdbool.h>")
	p.writeLine("#include <stddef.h>")
	p.writeLine("#include <stdint.h>")
	p.writeLine("")
	p.writeLine("void __CPROVER_assume(_Bool assumption);")
	p.writeLine("void __CPROVER_assert(_Bool assertion, const char *description);")

	implied := program.Implied(p.table)
	var types, functions, globals []*program.Symbol
	for _, sym := range p.table.Symbols() {
		switch {
		case implied[sym.Name] || sym.IsParameter:
		case sym.IsType:
			types = append(types, sym)
		case sym.IsFunction():
			functions = append(functions, sym)
		default:
			globals = append(globals, sym)
		}
	}

	// Tags first so that definitions may point at each other
	if len(types) > 0 {
		p.writeLine("")
		for _, sym := range types {
			if kw, ok := aggregateKeyword(sym.Type); ok {
				p.writeLine("%s %s;", kw, sym.Name)
			}
		}
		for _, sym := range types {
			p.printTypeSymbol(sym)
		}
	}

	if len(functions) > 0 {
		p.writeLine("")
		for _, sym := range functions {
			p.writeLine("%s;", p.functionHeader(sym))
		}
	}

	if len(globals) > 0 {
		p.writeLine("")
		for _, sym := range globals {
			p.printGlobal(sym)
		}
	}

	for _, sym := range functions {
		if sym.Body == nil {
			continue
		}
		p.writeLine("")
		p.write("%s\n", p.functionHeader(sym))
		p.printStmt(asBlock(sym.Body))
		p.write("\n")
	}
}

func aggregateKeyword(t program.Type) (string, bool) {
	switch t.(type) {
	case *program.StructType:
		return "struct", true
	case *program.UnionType:
		return "union", true
	}
	return "", false
}

func (p *Printer) printTypeSymbol(sym *program.Symbol) {
	var components []program.Component
	switch t := sym.Type.(type) {
	case *program.StructType:
		components = t.Components
	case *program.UnionType:
		components = t.Components
	default:
		p.writeLine("typedef %s;", p.declare(sym.Type, sym.Name))
		return
	}

	kw, _ := aggregateKeyword(sym.Type)
	p.writeLine("%s %s {", kw, sym.Name)
	p.indent++
	for _, c := range components {
		p.writeLine("%s;", p.declare(c.Type, c.Name))
	}
	p.indent--
	p.writeLine("};")
}

func storageClass(sym *program.Symbol) string {
	var parts []string
	if sym.IsExtern && sym.Value == nil && sym.Body == nil {
		parts = append(parts, "extern")
	}
	if sym.IsFileLocal {
		parts = append(parts, "static")
	}
	if sym.IsThreadLocal {
		parts = append(parts, "_Thread_local")
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " ") + " "
}

func (p *Printer) functionHeader(sym *program.Symbol) string {
	prefix := ""
	if sym.IsFileLocal {
		prefix = "static "
	}
	return prefix + p.declare(sym.Type, sym.Name)
}

func (p *Printer) printGlobal(sym *program.Symbol) {
	decl := storageClass(sym) + p.declare(sym.Type, sym.Name)
	if sym.Value != nil {
		decl += " = " + p.initializer(sym.Value)
	}
	p.writeLine("%s;", decl)
}

// Types

// declare writes a declaration of name with type t, building the C declarator
// inside out.
func (p *Printer) declare(t program.Type, name string) string {
	switch t := t.(type) {
	case *program.PointerType:
		inner := "*" + name
		switch t.Elem.(type) {
		case *program.ArrayType, *program.CodeType:
			inner = "(" + inner + ")"
		}
		return p.declare(t.Elem, inner)
	case *program.ArrayType:
		return p.declare(t.Elem, fmt.Sprintf("%s[%d]", name, t.Size))
	case *program.CodeType:
		return p.declare(t.ReturnType(), name+"("+p.parameters(t)+")")
	}
	base := p.typeName(t)
	if name == "" {
		return base
	}
	return base + " " + name
}

func (p *Printer) parameters(t *program.CodeType) string {
	if len(t.Parameters) == 0 && !t.Variadic {
		return "void"
	}
	params := make([]string, 0, len(t.Parameters)+1)
	for _, param := range t.Parameters {
		params = append(params, p.declare(param.Type, param.Identifier))
	}
	if t.Variadic {
		params = append(params, "...")
	}
	return strings.Join(params, ", ")
}

// typeName spells types that need no declarator.
func (p *Printer) typeName(t program.Type) string {
	switch t := t.(type) {
	case *program.BoolType:
		return "_Bool"
	case *program.SignedBVType:
		switch t.Width {
		case 8, 16, 32, 64:
			return fmt.Sprintf("int%d_t", t.Width)
		}
		return fmt.Sprintf("signed __CPROVER_bitvector[%d]", t.Width)
	case *program.UnsignedBVType:
		switch t.Width {
		case 8, 16, 32, 64:
			return fmt.Sprintf("uint%d_t", t.Width)
		}
		return fmt.Sprintf("unsigned __CPROVER_bitvector[%d]", t.Width)
	case *program.FloatType:
		switch t.Width {
		case 32:
			return "float"
		case 64:
			return "double"
		}
		return "long double"
	case *program.EmptyType:
		return "void"
	case *program.StructTagType:
		return "struct " + t.Identifier
	case *program.UnionTagType:
		return "union " + t.Identifier
	case *program.StructType:
		return "struct " + p.inlineComponents(t.Components)
	case *program.UnionType:
		return "union " + p.inlineComponents(t.Components)
	case *program.PointerType, *program.ArrayType, *program.CodeType:
		return p.declare(t, "")
	}
	return p.unsupported(fmt.Sprintf("%T", t), "type has no C spelling")
}

func (p *Printer) inlineComponents(components []program.Component) string {
	var b strings.Builder
	b.WriteString("{ ")
	for _, c := range components {
		b.WriteString(p.declare(c.Type, c.Name))
		b.WriteString("; ")
	}
	b.WriteString("}")
	return b.String()
}
