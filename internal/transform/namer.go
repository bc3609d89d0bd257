package transform

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"gotox/internal/errors"
)

// SuffixSeparator joins a sanitized candidate and its disambiguating counter. It is
// legal in C identifiers but never produced by Sanitize from a plain name, so
// suffixed names do not collide with sanitized ones by construction.
const SuffixSeparator = "$"

// defaultSuffixLimit bounds the counter Fresh tries for one candidate.
const defaultSuffixLimit = 1 << 20

// cKeywords are the C99 keywords plus the names the C printer emits itself.
var cKeywords = map[string]bool{
	"auto": true, "break": true, "case": true, "char": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extern": true, "float": true, "for": true, "goto": true,
	"if": true, "inline": true, "int": true, "long": true, "register": true,
	"restrict": true, "return": true, "short": true, "signed": true, "sizeof": true,
	"static": true, "struct": true, "switch": true, "typedef": true, "union": true,
	"unsigned": true, "void": true, "volatile": true, "while": true,
	"_Bool": true, "_Complex": true, "_Imaginary": true,

	// <stdint.h> and <stddef.h>
	"int8_t": true, "int16_t": true, "int32_t": true, "int64_t": true,
	"uint8_t": true, "uint16_t": true, "uint32_t": true, "uint64_t": true,
	"intptr_t": true, "uintptr_t": true, "size_t": true, "NULL": true,

	// verifier primitives
	"assert": true, "__CPROVER_assume": true,
}

// substitutions are tried in order at every position; longer keys come first.
var substitutions = []struct {
	from string
	to   string
}{
	{"::", "__"},
	{"<", "_LT_"},
	{">", "_GT_"},
	{",", "_C_"},
	{"&", "_R_"},
	{"*", "_P_"},
	{"[", "_LB_"},
	{"]", "_RB_"},
	{"(", "_LP_"},
	{")", "_RP_"},
	{"{", "_LC_"},
	{"}", "_RC_"},
	{";", "_S_"},
	{"'", "_Q_"},
	{"#", "_H_"},
	{"-", "_"},
	{".", "_"},
	{":", "_"},
}

// IsReserved reports whether name is a C keyword or a name the printer emits.
func IsReserved(name string) bool {
	return cKeywords[name]
}

// IsLegal reports whether name is a C identifier that is not reserved.
func IsLegal(name string) bool {
	if name == "" || cKeywords[name] {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_' || c == '$':
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// Sanitize maps an arbitrary name onto the identifier grammar. The mapping is
// context-free: equal inputs give equal outputs. The result may still collide with
// other names; callers resolve that through a Namer.
func Sanitize(name string) string {
	name = strings.TrimSpace(name)
	if IsLegal(name) && !strings.Contains(name, SuffixSeparator) {
		return name
	}

	var b strings.Builder
	rest := name
outer:
	for rest != "" {
		for _, s := range substitutions {
			if strings.HasPrefix(rest, s.from) {
				b.WriteString(s.to)
				rest = rest[len(s.from):]
				continue outer
			}
		}
		r, size := utf8.DecodeRuneInString(rest)
		rest = rest[size:]
		switch {
		case r == '_' || r < 0x80 && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte('_')
		default:
			fmt.Fprintf(&b, "_u%04X_", r)
		}
	}

	out := b.String()
	switch {
	case out == "":
		return "_"
	case out[0] >= '0' && out[0] <= '9':
		out = "_" + out
	}
	if cKeywords[out] {
		out += "_"
	}
	return out
}

// Namer hands out unique names within one table. Every table processed by the
// pipeline gets its own Namer; none is shared between tables.
type Namer struct {
	taken map[string]bool
	next  map[string]int
	limit int
}

// NewNamer returns a Namer with names already taken.
func NewNamer(taken ...string) *Namer {
	n := &Namer{
		taken: make(map[string]bool, len(taken)),
		next:  make(map[string]int),
		limit: defaultSuffixLimit,
	}
	for _, name := range taken {
		n.taken[name] = true
	}
	return n
}

// Reserve marks name as taken.
func (n *Namer) Reserve(name string) {
	n.taken[name] = true
}

// Taken reports whether name was reserved or handed out.
func (n *Namer) Taken(name string) bool {
	return n.taken[name]
}

// Fresh returns candidate if it is free, otherwise candidate$k for the smallest
// free k >= 1. The returned name is reserved.
func (n *Namer) Fresh(candidate string) (string, error) {
	if !n.taken[candidate] {
		n.taken[candidate] = true
		return candidate, nil
	}
	k := n.next[candidate]
	if k < 1 {
		k = 1
	}
	for ; k <= n.limit; k++ {
		name := candidate + SuffixSeparator + strconv.Itoa(k)
		if !n.taken[name] {
			n.taken[name] = true
			n.next[candidate] = k + 1
			return name, nil
		}
	}
	return "", errors.NameCollisionExhausted("", candidate)
}
