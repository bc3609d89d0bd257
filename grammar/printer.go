package grammar

import (
	"fmt"
	"strings"

	"gotox/internal/program"
)

// Format writes table in the textual format. The output loads back into a table
// with the same names, types and bodies; parameters and locals declared in bodies
// are implied by their functions and not written as items.
func Format(table *program.SymbolTable) string {
	var b strings.Builder

	m := table.Machine
	endian := 0
	if m.LittleEndian {
		endian = 1
	}
	b.WriteString(fmt.Sprintf("machine pointer_width = %d, int_width = %d, long_width = %d, little_endian = %d;\n",
		m.PointerWidth, m.IntWidth, m.LongWidth, endian))

	implied := program.Implied(table)
	for _, sym := range table.Symbols() {
		if implied[sym.Name] {
			continue
		}
		b.WriteString("\n")
		b.WriteString(FormatSymbol(sym))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatSymbol writes one item.
func FormatSymbol(sym *program.Symbol) string {
	var b strings.Builder
	if sym.IsType {
		b.WriteString(fmt.Sprintf("type %s = %s;", program.FormatName(sym.Name), sym.Type))
		return b.String()
	}

	code, isFunction := sym.Type.(*program.CodeType)
	for _, flag := range flags(sym, isFunction) {
		b.WriteString(flag + " ")
	}
	if isFunction {
		b.WriteString("fn " + program.FormatName(sym.Name))
		b.WriteString(strings.TrimPrefix(code.String(), "fn"))
		if sym.Body == nil {
			b.WriteString(";")
		} else {
			b.WriteString(" ")
			b.WriteString(program.FormatStmt(blockOf(sym.Body), 0))
		}
		return b.String()
	}

	b.WriteString(fmt.Sprintf("global %s: %s", program.FormatName(sym.Name), sym.Type))
	if sym.Value != nil {
		b.WriteString(" = " + sym.Value.String())
	}
	b.WriteString(";")
	return b.String()
}

func flags(sym *program.Symbol, function bool) []string {
	var out []string
	if sym.IsStaticLifetime && !function {
		out = append(out, "static")
	}
	if sym.IsExtern {
		out = append(out, "extern")
	}
	if sym.IsThreadLocal {
		out = append(out, "thread_local")
	}
	if sym.IsFileLocal {
		out = append(out, "file_local")
	}
	if sym.IsAuxiliary {
		out = append(out, "auxiliary")
	}
	return out
}

func blockOf(s program.Stmt) program.Stmt {
	if _, ok := s.(*program.Block); ok {
		return s
	}
	return &program.Block{Stmts: []program.Stmt{s}}
}
