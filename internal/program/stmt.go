package program

// Stmt is a statement of a function body.
type Stmt interface {
	Node
	isStmt()
}

type Block struct {
	Stmts []Stmt
}

// Decl declares the local symbol named by Symbol, optionally initialized.
type Decl struct {
	Symbol *SymbolExpr
	Value  Expr
}

type Assign struct {
	LHS Expr
	RHS Expr
}

type ExprStmt struct {
	Expr Expr
}

// Return leaves the function; Value is nil for void functions.
type Return struct {
	Value Expr
}

type IfThenElse struct {
	Cond Expr
	Then Stmt
	Else Stmt
}

type While struct {
	Cond Expr
	Body Stmt
}

type Goto struct {
	Label string
}

// Label names Body as a goto target.
type Label struct {
	Label string
	Body  Stmt
}

type Assume struct {
	Cond Expr
}

type Assert struct {
	Cond    Expr
	Message string
}

type Skip struct{}

func (*Block) isNode()      {}
func (*Decl) isNode()       {}
func (*Assign) isNode()     {}
func (*ExprStmt) isNode()   {}
func (*Return) isNode()     {}
func (*IfThenElse) isNode() {}
func (*While) isNode()      {}
func (*Goto) isNode()       {}
func (*Label) isNode()      {}
func (*Assume) isNode()     {}
func (*Assert) isNode()     {}
func (*Skip) isNode()       {}

func (*Block) isStmt()      {}
func (*Decl) isStmt()       {}
func (*Assign) isStmt()     {}
func (*ExprStmt) isStmt()   {}
func (*Return) isStmt()     {}
func (*IfThenElse) isStmt() {}
func (*While) isStmt()      {}
func (*Goto) isStmt()       {}
func (*Label) isStmt()      {}
func (*Assume) isStmt()     {}
func (*Assert) isStmt()     {}
func (*Skip) isStmt()       {}
