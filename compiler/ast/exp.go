package ast

/*
exp ::=  nil | false | true | Numeral | LiteralString | ‘...’ | functiondef |
	 prefixexp | tableconstructor | exp binop exp | unop exp

prefixexp ::= var | functioncall | ‘(’ exp ‘)’

var ::=  Name | prefixexp ‘[’ exp ‘]’ | prefixexp ‘.’ Name

functioncall ::=  prefixexp args | prefixexp ‘:’ Name args
*/

// Expr is satisfied by every expression node.
type Expr interface {
	Node
	exprNode()
}

type NilExp struct {
	Meta
}
type TrueExp struct {
	Meta
}
type FalseExp struct {
	Meta
}
type VarargExp struct {
	Meta
}

type IntegerExp struct {
	Meta
	Int int64
}
type FloatExp struct {
	Meta
	Float float64
}

type StringExp struct {
	Meta
	Str string
}

// UnopExp is `op exp`, for `not # - ~`.
type UnopExp struct {
	Meta
	Op  int
	Exp Expr
}

// BinopExp is `exp1 op exp2`.
type BinopExp struct {
	Meta
	Op    int
	Left  Expr
	Right Expr
}

// tableconstructor ::= ‘{’ [fieldlist] ‘}’
// fieldlist ::= field {fieldsep field} [fieldsep]
// field ::= ‘[’ exp ‘]’ ‘=’ exp | Name ‘=’ exp | exp
// fieldsep ::= ‘,’ | ‘;’
//
// KeyExps[i] == nil means ValExps[i] is a plain array-style field.
type TableConstructorExp struct {
	Meta
	LastLine int
	KeyExps  []Expr
	ValExps  []Expr
}

// funcbody ::= ‘(’ [parlist] ‘)’ block end
// parlist ::= namelist [‘,’ ‘...’] | ‘...’
type FuncDefExp struct {
	Meta
	LastLine int
	ParList  []string
	IsVararg bool
	Block    *Block
}

/*
prefixexp ::= Name |
              ‘(’ exp ‘)’ |
              prefixexp ‘[’ exp ‘]’ |
              prefixexp ‘.’ Name |
              prefixexp ‘:’ Name args |
              prefixexp args
*/

type NameExp struct {
	Meta
	Name string
}

type ParensExp struct {
	Meta
	Exp Expr
}

type TableAccessExp struct {
	Meta
	LastLine  int
	PrefixExp Expr
	KeyExp    Expr
}

// FuncCallExp covers both `f(args)` and `o:m(args)`; Method is non-empty
// for the latter (args implicitly gains `o` as its first argument during
// codegen, via OP_SELF).
type FuncCallExp struct {
	Meta
	LastLine  int
	PrefixExp Expr
	Method    string
	Args      []Expr
}

func (*NilExp) exprNode()               {}
func (*TrueExp) exprNode()              {}
func (*FalseExp) exprNode()             {}
func (*VarargExp) exprNode()            {}
func (*IntegerExp) exprNode()           {}
func (*FloatExp) exprNode()             {}
func (*StringExp) exprNode()            {}
func (*UnopExp) exprNode()              {}
func (*BinopExp) exprNode()             {}
func (*TableConstructorExp) exprNode()  {}
func (*FuncDefExp) exprNode()           {}
func (*NameExp) exprNode()              {}
func (*ParensExp) exprNode()            {}
func (*TableAccessExp) exprNode()       {}
func (*FuncCallExp) exprNode()          {}
