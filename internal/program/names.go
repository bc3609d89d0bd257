package program

import (
	"strconv"
)

// formatKeywords are words of the textual symbol-table format that cannot be
// written as bare names.
var formatKeywords = map[string]bool{
	"machine": true, "type": true, "extern": true, "static": true, "global": true,
	"fn": true, "struct": true, "union": true, "void": true, "bool": true,
	"true": true, "false": true, "nondet": true, "cast": true, "reinterpret": true,
	"array": true, "select": true, "overflow": true, "decl": true, "return": true,
	"if": true, "else": true, "while": true, "goto": true, "label": true,
	"assume": true, "assert": true, "skip": true, "rol": true, "ror": true,
	"parameter": true, "auxiliary": true, "thread_local": true, "file_local": true, "as": true,
}

// IsBareName reports whether name can be written without quotes in the textual format.
func IsBareName(name string) bool {
	if name == "" || formatKeywords[name] || isBuiltinTypeName(name) {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// FormatName writes a symbol name the way the textual format expects it.
func FormatName(name string) string {
	if IsBareName(name) {
		return name
	}
	return strconv.Quote(name)
}

// isBuiltinTypeName matches i<N>, u<N> and f<N> spellings.
func isBuiltinTypeName(name string) bool {
	if len(name) < 2 {
		return false
	}
	switch name[0] {
	case 'i', 'u', 'f':
	default:
		return false
	}
	_, err := strconv.Atoi(name[1:])
	return err == nil
}
