package serialize

import (
	"fmt"
	"strconv"

	"gotox/internal/program"
)

// Irep is the generic tree CBMC uses for every type, expression and statement:
// an id, positional operands and named operands. Named operands are a map, so
// encoding/json writes them in key order.
type Irep struct {
	ID       string           `json:"id"`
	Sub      []*Irep          `json:"sub,omitempty"`
	NamedSub map[string]*Irep `json:"namedSub,omitempty"`
}

// Nil is the irep of an absent value.
func Nil() *Irep { return &Irep{ID: "nil"} }

func leaf(id string) *Irep { return &Irep{ID: id} }

func node(id string, sub ...*Irep) *Irep { return &Irep{ID: id, Sub: sub} }

func (i *Irep) set(name string, value *Irep) *Irep {
	if i.NamedSub == nil {
		i.NamedSub = make(map[string]*Irep)
	}
	i.NamedSub[name] = value
	return i
}

// converter turns program nodes into ireps for one machine model.
type converter struct {
	machine program.MachineModel
}

// Types

func (c *converter) typ(t program.Type) (*Irep, error) {
	switch t := t.(type) {
	case *program.BoolType:
		return leaf("bool"), nil
	case *program.SignedBVType:
		return leaf("signedbv").set("width", leaf(strconv.Itoa(t.Width))), nil
	case *program.UnsignedBVType:
		return leaf("unsignedbv").set("width", leaf(strconv.Itoa(t.Width))), nil
	case *program.FloatType:
		return leaf("floatbv").
			set("width", leaf(strconv.Itoa(t.Width))).
			set("f", leaf(strconv.Itoa(fractionBits(t.Width)))), nil
	case *program.PointerType:
		elem, err := c.typ(t.Elem)
		if err != nil {
			return nil, err
		}
		return node("pointer", elem).set("width", leaf(strconv.Itoa(c.machine.PointerWidth))), nil
	case *program.ArrayType:
		elem, err := c.typ(t.Elem)
		if err != nil {
			return nil, err
		}
		size := leaf("constant").
			set("value", leaf(strconv.FormatInt(t.Size, 10))).
			set("type", leaf("unsignedbv").set("width", leaf(strconv.Itoa(c.machine.PointerWidth))))
		return node("array", elem).set("size", size), nil
	case *program.StructType:
		return c.aggregate("struct", t.Tag, t.Components)
	case *program.UnionType:
		return c.aggregate("union", t.Tag, t.Components)
	case *program.StructTagType:
		return leaf("struct_tag").set("identifier", leaf(t.Identifier)), nil
	case *program.UnionTagType:
		return leaf("union_tag").set("identifier", leaf(t.Identifier)), nil
	case *program.CodeType:
		return c.code(t)
	case *program.EmptyType:
		return leaf("empty"), nil
	}
	return nil, fmt.Errorf("unknown type node %T", t)
}

// fractionBits follows IEEE 754 for the common widths.
func fractionBits(width int) int {
	switch width {
	case 16:
		return 10
	case 32:
		return 23
	case 64:
		return 52
	case 80:
		return 64
	case 128:
		return 112
	}
	return width - 1 - width/4
}

func (c *converter) aggregate(id, tag string, components []program.Component) (*Irep, error) {
	list := leaf("")
	for _, comp := range components {
		t, err := c.typ(comp.Type)
		if err != nil {
			return nil, err
		}
		list.Sub = append(list.Sub, leaf("").set("name", leaf(comp.Name)).set("type", t))
	}
	out := leaf(id).set("components", list)
	if tag != "" {
		out.set("tag", leaf(tag))
	}
	return out, nil
}

func (c *converter) code(t *program.CodeType) (*Irep, error) {
	params := leaf("")
	for _, p := range t.Parameters {
		pt, err := c.typ(p.Type)
		if err != nil {
			return nil, err
		}
		param := leaf("parameter").set("type", pt)
		if p.Identifier != "" {
			param.set("#identifier", leaf(p.Identifier))
		}
		if p.BaseName != "" {
			param.set("#base_name", leaf(p.BaseName))
		}
		params.Sub = append(params.Sub, param)
	}
	ret, err := c.typ(t.ReturnType())
	if err != nil {
		return nil, err
	}
	out := leaf("code").set("parameters", params).set("return_type", ret)
	if t.Variadic {
		out.set("ellipsis", leaf("1"))
	}
	return out, nil
}

func location(loc program.Location) *Irep {
	if loc.IsNone() {
		return Nil()
	}
	out := leaf("")
	if loc.File != "" {
		out.set("file", leaf(loc.File))
	}
	if loc.Line > 0 {
		out.set("line", leaf(strconv.Itoa(loc.Line)))
	}
	if loc.Column > 0 {
		out.set("column", leaf(strconv.Itoa(loc.Column)))
	}
	if loc.Function != "" {
		out.set("function", leaf(loc.Function))
	}
	return out
}
