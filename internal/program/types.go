package program

import (
	"fmt"
	"strings"
)

// Node is implemented by every type, expression and statement of a goto program.
type Node interface {
	isNode()
}

// Type is the declared type of a symbol or expression node.
type Type interface {
	Node
	String() string
	isType()
}

// BoolType is the C99 _Bool type.
type BoolType struct{}

// SignedBVType is a two's complement integer of Width bits.
type SignedBVType struct {
	Width int
}

// UnsignedBVType is an unsigned integer of Width bits.
type UnsignedBVType struct {
	Width int
}

// FloatType is an IEEE float of Width bits (32 or 64).
type FloatType struct {
	Width int
}

// PointerType points to Elem.
type PointerType struct {
	Elem Type
}

// ArrayType is a fixed-size array.
type ArrayType struct {
	Elem Type
	Size int64
}

// Component is one field of a struct or union.
type Component struct {
	Name string
	Type Type
}

// StructType is a struct definition. Tag is the source-level tag name, which may be
// empty for anonymous aggregates.
type StructType struct {
	Tag        string
	Components []Component
}

// UnionType is a union definition.
type UnionType struct {
	Tag        string
	Components []Component
}

// StructTagType refers to the type symbol holding a struct definition.
type StructTagType struct {
	Identifier string
}

// UnionTagType refers to the type symbol holding a union definition.
type UnionTagType struct {
	Identifier string
}

// Parameter is a formal parameter of a code type. Identifier names the parameter
// symbol and may be empty for declarations without bodies.
type Parameter struct {
	Identifier string
	BaseName   string
	Type       Type
}

// CodeType is the type of a function.
type CodeType struct {
	Parameters []Parameter
	Return     Type
	Variadic   bool
}

// EmptyType is void.
type EmptyType struct{}

func (*BoolType) isNode()       {}
func (*SignedBVType) isNode()   {}
func (*UnsignedBVType) isNode() {}
func (*FloatType) isNode()      {}
func (*PointerType) isNode()    {}
func (*ArrayType) isNode()      {}
func (*StructType) isNode()     {}
func (*UnionType) isNode()      {}
func (*StructTagType) isNode()  {}
func (*UnionTagType) isNode()   {}
func (*CodeType) isNode()       {}
func (*EmptyType) isNode()      {}

func (*BoolType) isType()       {}
func (*SignedBVType) isType()   {}
func (*UnsignedBVType) isType() {}
func (*FloatType) isType()      {}
func (*PointerType) isType()    {}
func (*ArrayType) isType()      {}
func (*StructType) isType()     {}
func (*UnionType) isType()      {}
func (*StructTagType) isType()  {}
func (*UnionTagType) isType()   {}
func (*CodeType) isType()       {}
func (*EmptyType) isType()      {}

func (*BoolType) String() string         { return "bool" }
func (t *SignedBVType) String() string   { return fmt.Sprintf("i%d", t.Width) }
func (t *UnsignedBVType) String() string { return fmt.Sprintf("u%d", t.Width) }
func (t *FloatType) String() string      { return fmt.Sprintf("f%d", t.Width) }
func (t *PointerType) String() string    { return "*" + t.Elem.String() }
func (t *ArrayType) String() string      { return fmt.Sprintf("[%d]%s", t.Size, t.Elem) }
func (t *StructTagType) String() string  { return "struct " + FormatName(t.Identifier) }
func (t *UnionTagType) String() string   { return "union " + FormatName(t.Identifier) }
func (*EmptyType) String() string        { return "void" }

func (t *StructType) String() string {
	return "struct" + formatAggregate(t.Tag, t.Components)
}

func (t *UnionType) String() string {
	return "union" + formatAggregate(t.Tag, t.Components)
}

// formatAggregate writes the body of an inline struct or union. The tag follows the
// components so that a tag reference is never followed by a brace.
func formatAggregate(tag string, components []Component) string {
	var b strings.Builder
	b.WriteString(" {")
	for i, c := range components {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(fmt.Sprintf(" %s: %s", FormatName(c.Name), c.Type))
	}
	if len(components) > 0 {
		b.WriteString(" ")
	}
	b.WriteString("}")
	if tag != "" {
		b.WriteString(" as " + FormatName(tag))
	}
	return b.String()
}

func (t *CodeType) String() string {
	params := make([]string, 0, len(t.Parameters)+1)
	for _, p := range t.Parameters {
		if p.Identifier != "" {
			params = append(params, fmt.Sprintf("%s: %s", FormatName(p.Identifier), p.Type))
		} else {
			params = append(params, p.Type.String())
		}
	}
	if t.Variadic {
		params = append(params, "...")
	}
	ret := Type(&EmptyType{})
	if t.Return != nil {
		ret = t.Return
	}
	return fmt.Sprintf("fn(%s) -> %s", strings.Join(params, ", "), ret)
}

// Convenience constructors used throughout the passes and tests.

func Bool() Type                { return &BoolType{} }
func Signed(width int) Type     { return &SignedBVType{Width: width} }
func Unsigned(width int) Type   { return &UnsignedBVType{Width: width} }
func Float(width int) Type      { return &FloatType{Width: width} }
func Pointer(elem Type) Type    { return &PointerType{Elem: elem} }
func Void() Type                { return &EmptyType{} }
func StructTag(id string) Type  { return &StructTagType{Identifier: id} }
func UnionTag(id string) Type   { return &UnionTagType{Identifier: id} }
func Array(elem Type, n int64) Type {
	return &ArrayType{Elem: elem, Size: n}
}

// Width returns the bit width of a bit-vector or float type and false otherwise.
func Width(t Type) (int, bool) {
	switch t := t.(type) {
	case *SignedBVType:
		return t.Width, true
	case *UnsignedBVType:
		return t.Width, true
	case *FloatType:
		return t.Width, true
	case *BoolType:
		return 1, true
	}
	return 0, false
}

// IsScalar reports whether values of t can be converted with a plain C cast.
func IsScalar(t Type) bool {
	switch t.(type) {
	case *BoolType, *SignedBVType, *UnsignedBVType, *FloatType, *PointerType:
		return true
	}
	return false
}

// IsInteger reports whether t is a signed or unsigned bit-vector.
func IsInteger(t Type) bool {
	switch t.(type) {
	case *SignedBVType, *UnsignedBVType:
		return true
	}
	return false
}

// TypesEqual compares two types structurally. Tag types compare by identifier.
func TypesEqual(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case *BoolType:
		_, ok := b.(*BoolType)
		return ok
	case *EmptyType:
		_, ok := b.(*EmptyType)
		return ok
	case *SignedBVType:
		b, ok := b.(*SignedBVType)
		return ok && a.Width == b.Width
	case *UnsignedBVType:
		b, ok := b.(*UnsignedBVType)
		return ok && a.Width == b.Width
	case *FloatType:
		b, ok := b.(*FloatType)
		return ok && a.Width == b.Width
	case *PointerType:
		b, ok := b.(*PointerType)
		return ok && TypesEqual(a.Elem, b.Elem)
	case *ArrayType:
		b, ok := b.(*ArrayType)
		return ok && a.Size == b.Size && TypesEqual(a.Elem, b.Elem)
	case *StructTagType:
		b, ok := b.(*StructTagType)
		return ok && a.Identifier == b.Identifier
	case *UnionTagType:
		b, ok := b.(*UnionTagType)
		return ok && a.Identifier == b.Identifier
	case *StructType:
		b, ok := b.(*StructType)
		return ok && a.Tag == b.Tag && componentsEqual(a.Components, b.Components)
	case *UnionType:
		b, ok := b.(*UnionType)
		return ok && a.Tag == b.Tag && componentsEqual(a.Components, b.Components)
	case *CodeType:
		b, ok := b.(*CodeType)
		if !ok || a.Variadic != b.Variadic || len(a.Parameters) != len(b.Parameters) {
			return false
		}
		for i := range a.Parameters {
			if !TypesEqual(a.Parameters[i].Type, b.Parameters[i].Type) {
				return false
			}
		}
		return TypesEqual(returnOrVoid(a.Return), returnOrVoid(b.Return))
	}
	return false
}

func componentsEqual(a, b []Component) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || !TypesEqual(a[i].Type, b[i].Type) {
			return false
		}
	}
	return true
}

func returnOrVoid(t Type) Type {
	if t == nil {
		return &EmptyType{}
	}
	return t
}

// ReturnType returns the declared return type of a code type, void when unset.
func (t *CodeType) ReturnType() Type {
	return returnOrVoid(t.Return)
}
