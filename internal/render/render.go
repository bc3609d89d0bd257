// Package render writes a symbol table in one of the output formats.
package render

import (
	"fmt"
	"io"

	"gotox/grammar"
	"gotox/internal/config"
	"gotox/internal/printer"
	"gotox/internal/program"
	"gotox/internal/serialize"
)

// Write renders table to w in format: irep JSON, C text or the textual
// symbol-table format.
func Write(w io.Writer, format string, table *program.SymbolTable) error {
	switch format {
	case config.FormatJSON:
		return serialize.WriteJSON(w, table)
	case config.FormatC:
		text, err := printer.Print(table)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, text)
		return err
	case config.FormatSymtab:
		_, err := io.WriteString(w, grammar.Format(table))
		return err
	}
	return fmt.Errorf("unknown output format %q", format)
}
