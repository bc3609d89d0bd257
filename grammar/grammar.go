package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// File is a textual symbol table: a sequence of items.
type File struct {
	Items []*Item `parser:"@@*"`
}

type Item struct {
	Pos     lexer.Position
	Machine *MachineItem `parser:"  @@"`
	Type    *TypeItem    `parser:"| @@"`
	Symbol  *SymbolItem  `parser:"| @@"`
}

type MachineItem struct {
	Pos      lexer.Position
	Settings []*MachineSetting `parser:"\"machine\" @@ { \",\" @@ } \";\""`
}

type MachineSetting struct {
	Pos   lexer.Position
	Key   string `parser:"@Ident \"=\""`
	Value string `parser:"@Integer"`
}

type TypeItem struct {
	Pos  lexer.Position
	Name *Name     `parser:"\"type\" @@ \"=\""`
	Type *TypeExpr `parser:"@@ \";\""`
}

// SymbolItem declares a function or a variable. Flags come first:
//
//	extern fn "x::y<i32>"() -> i32;
//	static global counter: u64 = 0u64;
type SymbolItem struct {
	Pos      lexer.Position
	Flags    []string      `parser:"@( \"static\" | \"extern\" | \"thread_local\" | \"file_local\" | \"auxiliary\" )*"`
	Function *FunctionItem `parser:"( \"fn\" @@"`
	Global   *GlobalItem   `parser:"| \"global\" @@ )"`
}

type FunctionItem struct {
	Pos    lexer.Position
	Name   *Name      `parser:"@@"`
	Params *ParamList `parser:"@@"`
	Return *TypeExpr  `parser:"\"->\" @@"`
	Body   *Block     `parser:"( @@ | \";\" )"`
}

type GlobalItem struct {
	Pos   lexer.Position
	Name  *Name     `parser:"@@ \":\""`
	Type  *TypeExpr `parser:"@@"`
	Value *Expr     `parser:"[ \"=\" @@ ] \";\""`
}

// Name is a bare identifier or a quoted string holding any text.
type Name struct {
	Pos    lexer.Position
	Bare   string `parser:"  @Ident"`
	Quoted string `parser:"| @String"`
}

// Types

type TypeExpr struct {
	Pos     lexer.Position
	Pointer *TypeExpr      `parser:"  \"*\" @@"`
	Array   *ArrayTypeExpr `parser:"| @@"`
	Struct  *Aggregate     `parser:"| \"struct\" @@"`
	Union   *Aggregate     `parser:"| \"union\" @@"`
	Code    *CodeTypeExpr  `parser:"| \"fn\" @@"`
	Named   string         `parser:"| @Ident"`
}

type ArrayTypeExpr struct {
	Size string    `parser:"\"[\" @Integer \"]\""`
	Elem *TypeExpr `parser:"@@"`
}

// Aggregate is either a reference to a type symbol or an inline definition.
type Aggregate struct {
	Definition *AggregateDef `parser:"  @@"`
	Ref        *Name         `parser:"| @@"`
}

type AggregateDef struct {
	Components []*ComponentDecl `parser:"\"{\" [ @@ { \",\" @@ } ] \"}\""`
	Tag        *Name            `parser:"[ \"as\" @@ ]"`
}

type ComponentDecl struct {
	Name *Name     `parser:"@@ \":\""`
	Type *TypeExpr `parser:"@@"`
}

type CodeTypeExpr struct {
	Params *ParamList `parser:"@@"`
	Return *TypeExpr  `parser:"\"->\" @@"`
}

type ParamList struct {
	Params   []*Param `parser:"\"(\" [ @@ { \",\" @@ } ]"`
	Variadic bool     `parser:"[ \",\"? @\"...\" ] \")\""`
}

type Param struct {
	Name *Name     `parser:"[ @@ \":\" ]"`
	Type *TypeExpr `parser:"@@"`
}

// Statements

type Block struct {
	Pos   lexer.Position
	Stmts []*Stmt `parser:"\"{\" @@* \"}\""`
}

type Stmt struct {
	Pos    lexer.Position
	Block  *Block      `parser:"  @@"`
	Decl   *DeclStmt   `parser:"| @@"`
	Return *ReturnStmt `parser:"| @@"`
	If     *IfStmt     `parser:"| @@"`
	While  *WhileStmt  `parser:"| @@"`
	Goto   *Name       `parser:"| \"goto\" @@ \";\""`
	Label  *LabelStmt  `parser:"| @@"`
	Assume *Expr       `parser:"| \"assume\" \"(\" @@ \")\" \";\""`
	Assert *AssertStmt `parser:"| @@"`
	Skip   bool        `parser:"| @\"skip\" \";\""`
	Expr   *ExprStmt   `parser:"| @@"`
}

type DeclStmt struct {
	Name  *Name     `parser:"\"decl\" @@ \":\""`
	Type  *TypeExpr `parser:"@@"`
	Value *Expr     `parser:"[ \"=\" @@ ] \";\""`
}

type ReturnStmt struct {
	Value *Expr `parser:"\"return\" [ @@ ] \";\""`
}

type IfStmt struct {
	Cond *Expr  `parser:"\"if\" @@"`
	Then *Block `parser:"@@"`
	Else *Block `parser:"[ \"else\" @@ ]"`
}

type WhileStmt struct {
	Cond *Expr  `parser:"\"while\" @@"`
	Body *Block `parser:"@@"`
}

type LabelStmt struct {
	Label *Name `parser:"\"label\" @@ \":\""`
	Body  *Stmt `parser:"@@"`
}

type AssertStmt struct {
	Cond    *Expr   `parser:"\"assert\" \"(\" @@"`
	Message *string `parser:"[ \",\" @CString ] \")\" \";\""`
}

// ExprStmt is an expression statement or, with a right-hand side, an assignment.
type ExprStmt struct {
	LHS *Expr `parser:"@@"`
	RHS *Expr `parser:"[ \"=\" @@ ] \";\""`
}

// Expressions

// Expr is a flat operator chain; precedence is applied when it is converted.
type Expr struct {
	Pos  lexer.Position
	Left *UnaryExpr `parser:"@@"`
	Ops  []*BinOp   `parser:"{ @@ }"`
}

type BinOp struct {
	Pos      lexer.Position
	Operator string     `parser:"@( \">>>\" | \"<<\" | \">>\" | \"=>\" | \"==\" | \"!=\" | \"<=\" | \">=\" | \"&&\" | \"||\" | \"+\" | \"-\" | \"*\" | \"/\" | \"%\" | \"&\" | \"|\" | \"^\" | \"<\" | \">\" | \"rol\" | \"ror\" )"`
	Right    *UnaryExpr `parser:"@@"`
}

type UnaryExpr struct {
	Pos      lexer.Position
	Operator *string      `parser:"(   @( \"!\" | \"-\" | \"~\" | \"&\" | \"*\" )"`
	Operand  *UnaryExpr   `parser:"    @@ )"`
	Value    *PostfixExpr `parser:"| @@"`
}

type PostfixExpr struct {
	Pos     lexer.Position
	Primary *PrimaryExpr `parser:"@@"`
	Suffix  []*PostfixOp `parser:"{ @@ }"`
}

type PostfixOp struct {
	Pos   lexer.Position
	Field *Name `parser:"  \".\" @@"`
	Index *Expr `parser:"| \"[\" @@ \"]\""`
	Call  *Args `parser:"| @@"`
}

type Args struct {
	Values []*Expr `parser:"\"(\" [ @@ { \",\" @@ } ] \")\""`
}

type PrimaryExpr struct {
	Pos         lexer.Position
	Integer     *string         `parser:"  @Integer"`
	True        bool            `parser:"| @\"true\""`
	False       bool            `parser:"| @\"false\""`
	CString     *string         `parser:"| @CString"`
	Cast        *TypedOperand   `parser:"| \"cast\" @@"`
	Reinterpret *TypedOperand   `parser:"| \"reinterpret\" @@"`
	Nondet      *TypeExpr       `parser:"| \"nondet\" \"<\" @@ \">\""`
	Struct      *TypedValues    `parser:"| \"struct\" @@"`
	Union       *UnionValue     `parser:"| \"union\" @@"`
	Array       *TypedValues    `parser:"| \"array\" @@"`
	Select      *Args           `parser:"| \"select\" @@"`
	Overflow    *OverflowValue  `parser:"| \"overflow\" @@"`
	StmtExpr    *StatementValue `parser:"| @@"`
	Parens      *Expr           `parser:"| \"(\" @@ \")\""`
	Name        *Name           `parser:"| @@"`
}

type TypedOperand struct {
	Type    *TypeExpr `parser:"\"<\" @@ \">\""`
	Operand *Expr     `parser:"\"(\" @@ \")\""`
}

type TypedValues struct {
	Type   *TypeExpr `parser:"\"<\" @@ \">\""`
	Values []*Expr   `parser:"\"{\" [ @@ { \",\" @@ } ] \"}\""`
}

type UnionValue struct {
	Type  *TypeExpr `parser:"\"<\" @@ \">\""`
	Field *Name     `parser:"\"{\" @@ \":\""`
	Value *Expr     `parser:"@@ \"}\""`
}

type OverflowValue struct {
	Operator string `parser:"\"(\" @( \"+\" | \"-\" | \"*\" | \"<<\" ) \",\""`
	LHS      *Expr  `parser:"@@ \",\""`
	RHS      *Expr  `parser:"@@ \")\""`
}

type StatementValue struct {
	Stmts []*Stmt   `parser:"\"(\" \"{\" @@* \"}\""`
	Type  *TypeExpr `parser:"\":\" @@ \")\""`
}
