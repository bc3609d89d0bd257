package transform

import "gotox/internal/program"

// NameTransformer rewrites every symbol name, reference, struct component and goto
// label into a legal, non-reserved C identifier.
//
// Names that are already legal keep their spelling. The remaining names are
// sanitized in table order and, on collision, suffixed with the smallest free
// counter: with foo and foo$1 present, "foo " becomes foo$2.
type NameTransformer struct{}

func NewNameTransformer() *NameTransformer {
	return &NameTransformer{}
}

func (*NameTransformer) Name() string { return "name" }

func (t *NameTransformer) Transform(table *program.SymbolTable) (*program.SymbolTable, error) {
	namer := NewNamer()
	names := table.Names()
	for _, name := range names {
		if IsLegal(name) {
			namer.Reserve(name)
		}
	}

	renames := make(map[string]string, len(names))
	for _, name := range names {
		if IsLegal(name) {
			renames[name] = name
			continue
		}
		fresh, err := namer.Fresh(Sanitize(name))
		if err != nil {
			sym, _ := table.Lookup(name)
			return nil, annotate(err, t.Name(), sym)
		}
		renames[name] = fresh
		log.Debugf("name: %q -> %s", name, fresh)
	}

	hooks := &nameHooks{
		renames:   renames,
		tagFields: make(map[string]map[string]string),
		inline:    make(map[program.Type]map[string]string),
		labels:    make(map[string]map[string]string),
	}
	for _, sym := range table.Symbols() {
		if !sym.IsType {
			continue
		}
		if components, ok := aggregateComponents(sym.Type); ok {
			fields, err := componentRenames(components)
			if err != nil {
				return nil, annotate(err, t.Name(), sym)
			}
			hooks.tagFields[renames[sym.Name]] = fields
		}
	}

	return Apply(t.Name(), hooks, table, namer)
}

type nameHooks struct {
	Base

	renames map[string]string

	// component renames of aggregates defined by type symbols, keyed by the new
	// symbol name
	tagFields map[string]map[string]string

	// component renames of inline aggregates, keyed by the rebuilt type
	inline map[program.Type]map[string]string

	// label renames per function, keyed by the input symbol name
	labels map[string]map[string]string
}

func (h *nameHooks) rename(name string) string {
	if renamed, ok := h.renames[name]; ok {
		return renamed
	}
	return name
}

func (h *nameHooks) Type(_ *Context, t program.Type) (program.Type, error) {
	switch t := t.(type) {
	case *program.StructTagType:
		return &program.StructTagType{Identifier: h.rename(t.Identifier)}, nil
	case *program.UnionTagType:
		return &program.UnionTagType{Identifier: h.rename(t.Identifier)}, nil
	case *program.StructType:
		fields, components, err := h.renameComponents(t.Components)
		if err != nil {
			return nil, err
		}
		out := &program.StructType{Tag: sanitizeTag(t.Tag), Components: components}
		h.inline[out] = fields
		return out, nil
	case *program.UnionType:
		fields, components, err := h.renameComponents(t.Components)
		if err != nil {
			return nil, err
		}
		out := &program.UnionType{Tag: sanitizeTag(t.Tag), Components: components}
		h.inline[out] = fields
		return out, nil
	case *program.CodeType:
		// the walker handed us a fresh parameter slice
		for i := range t.Parameters {
			t.Parameters[i].Identifier = h.rename(t.Parameters[i].Identifier)
		}
		return t, nil
	}
	return t, nil
}

func (h *nameHooks) renameComponents(in []program.Component) (map[string]string, []program.Component, error) {
	fields, err := componentRenames(in)
	if err != nil {
		return nil, nil, err
	}
	if in == nil {
		return fields, nil, nil
	}
	out := make([]program.Component, len(in))
	for i, c := range in {
		out[i] = program.Component{Name: fields[c.Name], Type: c.Type}
	}
	return fields, out, nil
}

// fields returns the component renames for a rebuilt aggregate or tag type.
func (h *nameHooks) fields(t program.Type) map[string]string {
	switch t := t.(type) {
	case *program.StructTagType:
		return h.tagFields[t.Identifier]
	case *program.UnionTagType:
		return h.tagFields[t.Identifier]
	}
	return h.inline[t]
}

func (h *nameHooks) field(t program.Type, name string) string {
	if renamed, ok := h.fields(t)[name]; ok {
		return renamed
	}
	return name
}

func (h *nameHooks) Expr(_ *Context, e program.Expr) (program.Expr, error) {
	switch e := e.(type) {
	case *program.SymbolExpr:
		return &program.SymbolExpr{Identifier: h.rename(e.Identifier), Typ: e.Typ}, nil
	case *program.MemberExpr:
		return &program.MemberExpr{
			Operand: e.Operand,
			Field:   h.field(e.Operand.Type(), e.Field),
			Typ:     e.Typ,
		}, nil
	case *program.UnionExpr:
		return &program.UnionExpr{Field: h.field(e.Typ, e.Field), Value: e.Value, Typ: e.Typ}, nil
	}
	return e, nil
}

func (h *nameHooks) Stmt(ctx *Context, s program.Stmt) (program.Stmt, error) {
	switch s := s.(type) {
	case *program.Goto:
		labels, err := h.labelsOf(ctx.Symbol)
		if err != nil {
			return nil, err
		}
		return &program.Goto{Label: relabel(labels, s.Label)}, nil
	case *program.Label:
		labels, err := h.labelsOf(ctx.Symbol)
		if err != nil {
			return nil, err
		}
		return &program.Label{Label: relabel(labels, s.Label), Body: s.Body}, nil
	}
	return s, nil
}

// relabel keeps a label that has no rename as it is.
func relabel(labels map[string]string, label string) string {
	if to, ok := labels[label]; ok {
		return to
	}
	return label
}

// labelsOf computes the label renames of one symbol on first use. Labels are
// scoped to the symbol, so each gets its own Namer. Statement expressions in an
// initializer carry labels too, hence the walk over the whole symbol.
func (h *nameHooks) labelsOf(sym *program.Symbol) (map[string]string, error) {
	if labels, ok := h.labels[sym.Name]; ok {
		return labels, nil
	}

	var seen []string
	add := func(label string) {
		for _, l := range seen {
			if l == label {
				return
			}
		}
		seen = append(seen, label)
	}
	program.InspectSymbol(sym, func(n program.Node) bool {
		switch n := n.(type) {
		case *program.Label:
			add(n.Label)
		case *program.Goto:
			add(n.Label)
		}
		return true
	})

	labels, err := renameAll(seen)
	if err != nil {
		return nil, err
	}
	h.labels[sym.Name] = labels
	return labels, nil
}

func (h *nameHooks) Symbol(_ *Context, sym *program.Symbol) (*program.Symbol, error) {
	renamed := h.rename(sym.Name)
	if renamed != sym.Name {
		if sym.PrettyName == "" {
			sym.PrettyName = sym.Name
		}
		sym.Name = renamed
	}
	if sym.BaseName != "" && !IsLegal(sym.BaseName) {
		sym.BaseName = Sanitize(sym.BaseName)
	}
	if sym.Location.Function != "" {
		sym.Location.Function = h.rename(sym.Location.Function)
	}
	return sym, nil
}

func aggregateComponents(t program.Type) ([]program.Component, bool) {
	switch t := t.(type) {
	case *program.StructType:
		return t.Components, true
	case *program.UnionType:
		return t.Components, true
	}
	return nil, false
}

// componentRenames maps the component names of one aggregate. The mapping only
// depends on the components, so a definition and every inline copy of it agree.
func componentRenames(components []program.Component) (map[string]string, error) {
	names := make([]string, len(components))
	for i, c := range components {
		names[i] = c.Name
	}
	return renameAll(names)
}

// renameAll applies the legal-first suffix rule to one scope of names.
func renameAll(names []string) (map[string]string, error) {
	scope := NewNamer()
	for _, name := range names {
		if IsLegal(name) {
			scope.Reserve(name)
		}
	}
	out := make(map[string]string, len(names))
	for _, name := range names {
		if IsLegal(name) {
			out[name] = name
			continue
		}
		fresh, err := scope.Fresh(Sanitize(name))
		if err != nil {
			return nil, err
		}
		out[name] = fresh
	}
	return out, nil
}

func sanitizeTag(tag string) string {
	if tag == "" || IsLegal(tag) {
		return tag
	}
	return Sanitize(tag)
}
