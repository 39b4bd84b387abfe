package ast

/*
stat ::=  ‘;’ |
	varlist ‘=’ explist |
	functioncall |
	do block end |
	while exp do block end |
	repeat block until exp |
	if exp then block {elseif exp then block} [else block] end |
	for Name ‘=’ exp ‘,’ exp [‘,’ exp] do block end |
	for namelist in explist do block end |
	function funcname funcbody |
	local function Name funcbody |
	local namelist [‘=’ explist]
*/

// Stat is satisfied by every statement node.
type Stat interface {
	Node
	statNode()
}

// EmptyStat is a bare `;`.
type EmptyStat struct {
	Meta
}

// BreakStat is `break`.
type BreakStat struct {
	Meta
}

// LabelStat is `::Name::`. Goto validation is out of scope; the label
// is recorded so the parser accepts the syntax without erroring.
type LabelStat struct {
	Meta
	Name string
}

// GotoStat is `goto Name`.
type GotoStat struct {
	Meta
	Name string
}

// DoStat is `do block end`.
type DoStat struct {
	Meta
	Block *Block
}

// WhileStat is `while exp do block end`.
type WhileStat struct {
	Meta
	Exp   Expr
	Block *Block
}

// RepeatStat is `repeat block until exp`. The until-condition can see
// locals declared inside Block, unlike WhileStat's condition.
type RepeatStat struct {
	Meta
	Block *Block
	Exp   Expr
}

// IfStat is `if exp then block {elseif exp then block} [else block] end`,
// flattened: Exps[i]/Blocks[i] are the if/elseif arms in order, and a
// last Blocks entry with no matching Exps entry (len(Exps) ==
// len(Blocks)-1) is the final `else`.
type IfStat struct {
	Meta
	Exps   []Expr
	Blocks []*Block
}

// ForNumStat is `for Name = start, limit [, step] do block end`.
type ForNumStat struct {
	Meta
	LineOfFor int
	LineOfDo  int
	VarName   string
	InitExp   Expr
	LimitExp  Expr
	StepExp   Expr
	Block     *Block
}

// ForInStat is `for namelist in explist do block end`.
type ForInStat struct {
	Meta
	LineOfDo int
	NameList []string
	ExpList  []Expr
	Block    *Block
}

// LocalVarDeclStat is `local namelist [attrib] [‘=’ explist]`. Attrib
// (<const>/<close>) is recorded per-name but not enforced.
type LocalVarDeclStat struct {
	Meta
	NameList   []string
	AttribList []string
	ExpList    []Expr
}

// AssignStat is `varlist ‘=’ explist`.
type AssignStat struct {
	Meta
	VarList []Expr
	ExpList []Expr
}

// LocalFuncDefStat is `local function Name funcbody`. Unlike a plain
// `local Name = function ... end`, Name is in scope inside its own
// body (reached there as an upvalue), enabling direct recursion.
type LocalFuncDefStat struct {
	Meta
	Name string
	Exp  *FuncDefExp
}

// FuncCallStat wraps a FuncCallExp used as a statement, its results
// discarded.
type FuncCallStat struct {
	Meta
	Call *FuncCallExp
}

// AssignFuncStat is `function funcname funcbody`, i.e. `function
// a.b.c:d(...) ... end`, lowered to an assignment whose target is the
// dotted/colon path and whose value is the function literal. IsMethod
// means the body implicitly gains a leading `self` parameter.
type AssignFuncStat struct {
	Meta
	Target   Expr
	IsMethod bool
	Exp      *FuncDefExp
}

func (*EmptyStat) statNode()         {}
func (*BreakStat) statNode()         {}
func (*LabelStat) statNode()         {}
func (*GotoStat) statNode()          {}
func (*DoStat) statNode()            {}
func (*WhileStat) statNode()         {}
func (*RepeatStat) statNode()        {}
func (*IfStat) statNode()            {}
func (*ForNumStat) statNode()        {}
func (*ForInStat) statNode()         {}
func (*LocalVarDeclStat) statNode()  {}
func (*AssignStat) statNode()        {}
func (*LocalFuncDefStat) statNode()  {}
func (*FuncCallStat) statNode()      {}
func (*AssignFuncStat) statNode()    {}
