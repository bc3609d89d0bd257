package transform

import "gotox/internal/program"

// IdentityTransformer rebuilds the table without changing it. Modes whose consumer
// accepts the front end's output unchanged run only this pass.
type IdentityTransformer struct{}

func NewIdentityTransformer() *IdentityTransformer {
	return &IdentityTransformer{}
}

func (*IdentityTransformer) Name() string { return "identity" }

func (t *IdentityTransformer) Transform(table *program.SymbolTable) (*program.SymbolTable, error) {
	return Apply(t.Name(), Base{}, table, nil)
}
