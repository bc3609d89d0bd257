package program

// Expr is an expression node. Every node carries the type it was declared with
// by the front end.
type Expr interface {
	Node
	Type() Type
	String() string
	isExpr()
}

// BinaryOp is the operator of a BinaryExpr.
type BinaryOp string

const (
	OpPlus    BinaryOp = "+"
	OpMinus   BinaryOp = "-"
	OpMult    BinaryOp = "*"
	OpDiv     BinaryOp = "/"
	OpMod     BinaryOp = "%"
	OpShl     BinaryOp = "<<"
	OpAShr    BinaryOp = ">>"
	OpLShr    BinaryOp = ">>>"
	OpBitAnd  BinaryOp = "&"
	OpBitOr   BinaryOp = "|"
	OpBitXor  BinaryOp = "^"
	OpAnd     BinaryOp = "&&"
	OpOr      BinaryOp = "||"
	OpEq      BinaryOp = "=="
	OpNotEq   BinaryOp = "!="
	OpLt      BinaryOp = "<"
	OpLe      BinaryOp = "<="
	OpGt      BinaryOp = ">"
	OpGe      BinaryOp = ">="
	OpImplies BinaryOp = "=>"
	OpRol     BinaryOp = "rol"
	OpRor     BinaryOp = "ror"
)

// BinaryOps lists every binary operator, used by parsers and serializers.
var BinaryOps = []BinaryOp{
	OpPlus, OpMinus, OpMult, OpDiv, OpMod, OpShl, OpAShr, OpLShr,
	OpBitAnd, OpBitOr, OpBitXor, OpAnd, OpOr, OpEq, OpNotEq,
	OpLt, OpLe, OpGt, OpGe, OpImplies, OpRol, OpRor,
}

// IsComparison reports whether op yields a bool from two operands of the same type.
func (op BinaryOp) IsComparison() bool {
	switch op {
	case OpEq, OpNotEq, OpLt, OpLe, OpGt, OpGe:
		return true
	}
	return false
}

// IsLogical reports whether op takes and yields bools.
func (op BinaryOp) IsLogical() bool {
	switch op {
	case OpAnd, OpOr, OpImplies:
		return true
	}
	return false
}

// UnaryOp is the operator of a UnaryExpr.
type UnaryOp string

const (
	OpNot    UnaryOp = "!"
	OpNeg    UnaryOp = "-"
	OpBitNot UnaryOp = "~"
)

// SymbolExpr references a symbol of the table by its unique name.
type SymbolExpr struct {
	Identifier string
	Typ        Type
}

// IntConstant is a bit-vector literal. Value holds canonical decimal digits.
type IntConstant struct {
	Value string
	Typ   Type
}

// BoolConstant is true or false.
type BoolConstant struct {
	Value bool
}

// StringConstant is a string literal of type [N]u8.
type StringConstant struct {
	Value string
	Typ   Type
}

type BinaryExpr struct {
	Op  BinaryOp
	LHS Expr
	RHS Expr
	Typ Type
}

type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
	Typ     Type
}

// CallExpr calls Function, which has a code type or a pointer to one.
type CallExpr struct {
	Function Expr
	Args     []Expr
	Typ      Type
}

// CastExpr is a value conversion to Typ.
type CastExpr struct {
	Operand Expr
	Typ     Type
}

// ReinterpretExpr reads the bits of Operand as a value of Typ.
type ReinterpretExpr struct {
	Operand Expr
	Typ     Type
}

// NondetExpr stands for an arbitrary value of Typ chosen by the verifier.
type NondetExpr struct {
	Typ Type
}

// StructExpr builds a struct value, one operand per component.
type StructExpr struct {
	Values []Expr
	Typ    Type
}

// UnionExpr builds a union value with Field initialized.
type UnionExpr struct {
	Field string
	Value Expr
	Typ   Type
}

type ArrayExpr struct {
	Elems []Expr
	Typ   Type
}

// MemberExpr selects a component of a struct or union value.
type MemberExpr struct {
	Operand Expr
	Field   string
	Typ     Type
}

type AddressOfExpr struct {
	Operand Expr
	Typ     Type
}

type DereferenceExpr struct {
	Operand Expr
	Typ     Type
}

type IndexExpr struct {
	Array Expr
	Index Expr
	Typ   Type
}

// IfExpr is the ternary conditional.
type IfExpr struct {
	Cond Expr
	Then Expr
	Else Expr
	Typ  Type
}

// OverflowExpr is true when Op applied to LHS and RHS overflows their type.
type OverflowExpr struct {
	Op  BinaryOp
	LHS Expr
	RHS Expr
}

// StatementExpr runs Stmts and yields the value of the trailing expression statement.
type StatementExpr struct {
	Stmts []Stmt
	Typ   Type
}

func (*SymbolExpr) isNode()      {}
func (*IntConstant) isNode()     {}
func (*BoolConstant) isNode()    {}
func (*StringConstant) isNode()  {}
func (*BinaryExpr) isNode()      {}
func (*UnaryExpr) isNode()       {}
func (*CallExpr) isNode()        {}
func (*CastExpr) isNode()        {}
func (*ReinterpretExpr) isNode() {}
func (*NondetExpr) isNode()      {}
func (*StructExpr) isNode()      {}
func (*UnionExpr) isNode()       {}
func (*ArrayExpr) isNode()       {}
func (*MemberExpr) isNode()      {}
func (*AddressOfExpr) isNode()   {}
func (*DereferenceExpr) isNode() {}
func (*IndexExpr) isNode()       {}
func (*IfExpr) isNode()          {}
func (*OverflowExpr) isNode()    {}
func (*StatementExpr) isNode()   {}

func (*SymbolExpr) isExpr()      {}
func (*IntConstant) isExpr()     {}
func (*BoolConstant) isExpr()    {}
func (*StringConstant) isExpr()  {}
func (*BinaryExpr) isExpr()      {}
func (*UnaryExpr) isExpr()       {}
func (*CallExpr) isExpr()        {}
func (*CastExpr) isExpr()        {}
func (*ReinterpretExpr) isExpr() {}
func (*NondetExpr) isExpr()      {}
func (*StructExpr) isExpr()      {}
func (*UnionExpr) isExpr()       {}
func (*ArrayExpr) isExpr()       {}
func (*MemberExpr) isExpr()      {}
func (*AddressOfExpr) isExpr()   {}
func (*DereferenceExpr) isExpr() {}
func (*IndexExpr) isExpr()       {}
func (*IfExpr) isExpr()          {}
func (*OverflowExpr) isExpr()    {}
func (*StatementExpr) isExpr()   {}

func (e *SymbolExpr) Type() Type      { return e.Typ }
func (e *IntConstant) Type() Type     { return e.Typ }
func (*BoolConstant) Type() Type      { return &BoolType{} }
func (e *StringConstant) Type() Type  { return e.Typ }
func (e *BinaryExpr) Type() Type      { return e.Typ }
func (e *UnaryExpr) Type() Type       { return e.Typ }
func (e *CallExpr) Type() Type        { return e.Typ }
func (e *CastExpr) Type() Type        { return e.Typ }
func (e *ReinterpretExpr) Type() Type { return e.Typ }
func (e *NondetExpr) Type() Type      { return e.Typ }
func (e *StructExpr) Type() Type      { return e.Typ }
func (e *UnionExpr) Type() Type       { return e.Typ }
func (e *ArrayExpr) Type() Type       { return e.Typ }
func (e *MemberExpr) Type() Type      { return e.Typ }
func (e *AddressOfExpr) Type() Type   { return e.Typ }
func (e *DereferenceExpr) Type() Type { return e.Typ }
func (e *IndexExpr) Type() Type       { return e.Typ }
func (e *IfExpr) Type() Type          { return e.Typ }
func (*OverflowExpr) Type() Type      { return &BoolType{} }
func (e *StatementExpr) Type() Type   { return e.Typ }

// Kind names the node kind the way error messages and the native format refer to it.
func Kind(n Node) string {
	switch n.(type) {
	case *SymbolExpr:
		return "symbol"
	case *IntConstant, *BoolConstant, *StringConstant:
		return "constant"
	case *BinaryExpr:
		return "binary"
	case *UnaryExpr:
		return "unary"
	case *CallExpr:
		return "call"
	case *CastExpr:
		return "typecast"
	case *ReinterpretExpr:
		return "reinterpret"
	case *NondetExpr:
		return "nondet"
	case *StructExpr:
		return "struct"
	case *UnionExpr:
		return "union"
	case *ArrayExpr:
		return "array"
	case *MemberExpr:
		return "member"
	case *AddressOfExpr:
		return "address_of"
	case *DereferenceExpr:
		return "dereference"
	case *IndexExpr:
		return "index"
	case *IfExpr:
		return "if"
	case *OverflowExpr:
		return "overflow"
	case *StatementExpr:
		return "statement_expression"
	case Stmt:
		return "code"
	case Type:
		return "type"
	}
	return "unknown"
}

// Helpers for building expressions in passes and tests.

func Sym(id string, t Type) *SymbolExpr { return &SymbolExpr{Identifier: id, Typ: t} }

func Int(value string, t Type) *IntConstant { return &IntConstant{Value: value, Typ: t} }

func Call(fn Expr, args ...Expr) *CallExpr {
	var ret Type = &EmptyType{}
	if code, ok := fn.Type().(*CodeType); ok {
		ret = code.ReturnType()
	}
	return &CallExpr{Function: fn, Args: args, Typ: ret}
}
