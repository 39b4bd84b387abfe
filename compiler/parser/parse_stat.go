package parser

import (
	"github.com/embedlua/golua/compiler/ast"
	"github.com/embedlua/golua/compiler/lexer"
)

var statEmpty = &ast.EmptyStat{}

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
func (p *Parser) parseStat() ast.Stat {
	leading := p.takeLeading()
	pos := p.peek().Pos

	var stat ast.Stat
	switch p.peekKind() {
	case lexer.TOKEN_SEP_SEMI:
		stat = p.parseEmptyStat()
	case lexer.TOKEN_SEP_LABEL:
		stat = p.parseLabelStat()
	case lexer.TOKEN_KW_BREAK:
		stat = p.parseBreakStat()
	case lexer.TOKEN_KW_GOTO:
		stat = p.parseGotoStat()
	case lexer.TOKEN_KW_DO:
		stat = p.parseDoStat()
	case lexer.TOKEN_KW_WHILE:
		stat = p.parseWhileStat()
	case lexer.TOKEN_KW_REPEAT:
		stat = p.parseRepeatStat()
	case lexer.TOKEN_KW_IF:
		stat = p.parseIfStat()
	case lexer.TOKEN_KW_FOR:
		stat = p.parseForStat()
	case lexer.TOKEN_KW_FUNCTION:
		stat = p.parseFuncDefStat()
	case lexer.TOKEN_KW_LOCAL:
		stat = p.parseLocalStat()
	default:
		stat = p.parseAssignOrFuncCallStat()
	}

	m := stat.GetMeta()
	m.Pos = pos
	m.LeadingComments = leading
	lastLine := p.lastConsumedLine
	m.TrailingComment = p.takeTrailing(lastLine)
	return stat
}

// markLine is a no-op pass-through kept for call-site clarity: next()
// and expect() already update lastConsumedLine themselves.
func (p *Parser) markLine(tok lexer.Token) lexer.Token {
	return tok
}

// ;
func (p *Parser) parseEmptyStat() *ast.EmptyStat {
	p.markLine(p.expect(lexer.TOKEN_SEP_SEMI))
	return statEmpty
}

// ::Name::
func (p *Parser) parseLabelStat() *ast.LabelStat {
	p.expect(lexer.TOKEN_SEP_LABEL)
	name := p.expect(lexer.TOKEN_IDENTIFIER).Value
	p.markLine(p.expect(lexer.TOKEN_SEP_LABEL))
	return &ast.LabelStat{Name: name}
}

// break
func (p *Parser) parseBreakStat() *ast.BreakStat {
	p.markLine(p.expect(lexer.TOKEN_KW_BREAK))
	return &ast.BreakStat{}
}

// goto Name
func (p *Parser) parseGotoStat() *ast.GotoStat {
	p.expect(lexer.TOKEN_KW_GOTO)
	name := p.markLine(p.expect(lexer.TOKEN_IDENTIFIER)).Value
	return &ast.GotoStat{Name: name}
}

// do block end
func (p *Parser) parseDoStat() *ast.DoStat {
	opener := p.expect(lexer.TOKEN_KW_DO)
	p.pushDelim("do", opener.Pos)
	block := p.parseBlock()
	p.markLine(p.expect(lexer.TOKEN_KW_END))
	p.popDelim()
	return &ast.DoStat{Block: block}
}

// while exp do block end
func (p *Parser) parseWhileStat() *ast.WhileStat {
	opener := p.expect(lexer.TOKEN_KW_WHILE)
	exp := p.parseExp()
	p.expect(lexer.TOKEN_KW_DO)
	p.pushDelim("while", opener.Pos)
	block := p.parseBlock()
	p.markLine(p.expect(lexer.TOKEN_KW_END))
	p.popDelim()
	return &ast.WhileStat{Exp: exp, Block: block}
}

// repeat block until exp
func (p *Parser) parseRepeatStat() *ast.RepeatStat {
	opener := p.expect(lexer.TOKEN_KW_REPEAT)
	p.pushDelim("repeat", opener.Pos)
	block := p.parseBlock()
	p.expect(lexer.TOKEN_KW_UNTIL)
	p.popDelim()
	exp := p.parseExp()
	return &ast.RepeatStat{Block: block, Exp: exp}
}

// if exp then block {elseif exp then block} [else block] end
func (p *Parser) parseIfStat() *ast.IfStat {
	exps := make([]ast.Expr, 0, 4)
	blocks := make([]*ast.Block, 0, 4)

	opener := p.expect(lexer.TOKEN_KW_IF)
	p.pushDelim("if", opener.Pos)
	exps = append(exps, p.parseExp())
	p.expect(lexer.TOKEN_KW_THEN)
	blocks = append(blocks, p.parseBlock())

	for p.peekKind() == lexer.TOKEN_KW_ELSEIF {
		p.next()
		exps = append(exps, p.parseExp())
		p.expect(lexer.TOKEN_KW_THEN)
		blocks = append(blocks, p.parseBlock())
	}

	if p.peekKind() == lexer.TOKEN_KW_ELSE {
		p.next()
		blocks = append(blocks, p.parseBlock())
	}

	p.markLine(p.expect(lexer.TOKEN_KW_END))
	p.popDelim()
	return &ast.IfStat{Exps: exps, Blocks: blocks}
}

// for Name ‘=’ exp ‘,’ exp [‘,’ exp] do block end
// for namelist in explist do block end
func (p *Parser) parseForStat() ast.Stat {
	opener := p.expect(lexer.TOKEN_KW_FOR)
	name := p.expect(lexer.TOKEN_IDENTIFIER).Value
	if p.peekKind() == lexer.TOKEN_OP_ASSIGN {
		return p.finishForNumStat(opener, name)
	}
	return p.finishForInStat(opener, name)
}

func (p *Parser) finishForNumStat(opener lexer.Token, varName string) *ast.ForNumStat {
	p.next() // =
	initExp := p.parseExp()
	p.expect(lexer.TOKEN_SEP_COMMA)
	limitExp := p.parseExp()

	var stepExp ast.Expr
	if p.peekKind() == lexer.TOKEN_SEP_COMMA {
		p.next()
		stepExp = p.parseExp()
	} else {
		stepExp = &ast.IntegerExp{Int: 1}
	}

	doTok := p.expect(lexer.TOKEN_KW_DO)
	p.pushDelim("for", opener.Pos)
	block := p.parseBlock()
	p.markLine(p.expect(lexer.TOKEN_KW_END))
	p.popDelim()

	return &ast.ForNumStat{
		LineOfFor: opener.Pos.Line, LineOfDo: doTok.Pos.Line,
		VarName: varName, InitExp: initExp, LimitExp: limitExp, StepExp: stepExp, Block: block,
	}
}

func (p *Parser) finishForInStat(opener lexer.Token, name0 string) *ast.ForInStat {
	nameList := p.finishNameList(name0)
	p.expect(lexer.TOKEN_KW_IN)
	expList := p.parseExpList()
	doTok := p.expect(lexer.TOKEN_KW_DO)
	p.pushDelim("for", opener.Pos)
	block := p.parseBlock()
	p.markLine(p.expect(lexer.TOKEN_KW_END))
	p.popDelim()
	return &ast.ForInStat{LineOfDo: doTok.Pos.Line, NameList: nameList, ExpList: expList, Block: block}
}

func (p *Parser) finishNameList(name0 string) []string {
	names := []string{name0}
	for p.peekKind() == lexer.TOKEN_SEP_COMMA {
		p.next()
		names = append(names, p.expect(lexer.TOKEN_IDENTIFIER).Value)
	}
	return names
}

// local function Name funcbody
// local namelist [attrib] [‘=’ explist]
func (p *Parser) parseLocalStat() ast.Stat {
	p.expect(lexer.TOKEN_KW_LOCAL)
	if p.peekKind() == lexer.TOKEN_KW_FUNCTION {
		return p.finishLocalFuncDefStat()
	}
	return p.finishLocalVarDeclStat()
}

func (p *Parser) finishLocalFuncDefStat() *ast.LocalFuncDefStat {
	p.expect(lexer.TOKEN_KW_FUNCTION)
	name := p.expect(lexer.TOKEN_IDENTIFIER).Value
	fdExp := p.parseFuncDefExp()
	return &ast.LocalFuncDefStat{Name: name, Exp: fdExp}
}

func (p *Parser) finishLocalVarDeclStat() *ast.LocalVarDeclStat {
	name0 := p.expect(lexer.TOKEN_IDENTIFIER).Value
	nameList := []string{name0}
	attribList := []string{p.parseAttrib()}
	for p.peekKind() == lexer.TOKEN_SEP_COMMA {
		p.next()
		nameList = append(nameList, p.expect(lexer.TOKEN_IDENTIFIER).Value)
		attribList = append(attribList, p.parseAttrib())
	}
	var expList []ast.Expr
	if p.peekKind() == lexer.TOKEN_OP_ASSIGN {
		p.next()
		expList = p.parseExpList()
	}
	return &ast.LocalVarDeclStat{NameList: nameList, AttribList: attribList, ExpList: expList}
}

// attrib ::= [‘<’ Name ‘>’] -- <const>/<close>, recorded but unenforced
func (p *Parser) parseAttrib() string {
	if p.peekKind() != lexer.TOKEN_OP_LT {
		return ""
	}
	p.next()
	name := p.expect(lexer.TOKEN_IDENTIFIER).Value
	p.expect(lexer.TOKEN_OP_GT)
	return name
}

// varlist ‘=’ explist
// functioncall
func (p *Parser) parseAssignOrFuncCallStat() ast.Stat {
	prefixExp := p.parsePrefixExp()
	if fc, ok := prefixExp.(*ast.FuncCallExp); ok && p.peekKind() != lexer.TOKEN_OP_ASSIGN && p.peekKind() != lexer.TOKEN_SEP_COMMA {
		return &ast.FuncCallStat{Call: fc}
	}
	return p.parseAssignStat(prefixExp)
}

func (p *Parser) parseAssignStat(var0 ast.Expr) *ast.AssignStat {
	varList := p.finishVarList(var0)
	p.expect(lexer.TOKEN_OP_ASSIGN)
	expList := p.parseExpList()
	return &ast.AssignStat{VarList: varList, ExpList: expList}
}

func (p *Parser) finishVarList(var0 ast.Expr) []ast.Expr {
	vars := []ast.Expr{p.checkVar(var0)}
	for p.peekKind() == lexer.TOKEN_SEP_COMMA {
		p.next()
		vars = append(vars, p.checkVar(p.parsePrefixExp()))
	}
	return vars
}

func (p *Parser) checkVar(exp ast.Expr) ast.Expr {
	switch exp.(type) {
	case *ast.NameExp, *ast.TableAccessExp:
		return exp
	}
	p.errorUnexpected(p.peek(), "(not an assignable expression)")
	panic("unreachable")
}

// function funcname funcbody
// funcname ::= Name {‘.’ Name} [‘:’ Name]
func (p *Parser) parseFuncDefStat() *ast.AssignFuncStat {
	p.expect(lexer.TOKEN_KW_FUNCTION)
	target, isMethod := p.parseFuncName()
	fdExp := p.parseFuncDefExp()
	if isMethod {
		fdExp.ParList = append([]string{"self"}, fdExp.ParList...)
	}
	p.lastConsumedLine = fdExp.LastLine
	return &ast.AssignFuncStat{Target: target, IsMethod: isMethod, Exp: fdExp}
}

func (p *Parser) parseFuncName() (exp ast.Expr, isMethod bool) {
	tok := p.expect(lexer.TOKEN_IDENTIFIER)
	exp = &ast.NameExp{Name: tok.Value}

	for p.peekKind() == lexer.TOKEN_SEP_DOT {
		p.next()
		name := p.expect(lexer.TOKEN_IDENTIFIER).Value
		exp = &ast.TableAccessExp{PrefixExp: exp, KeyExp: &ast.StringExp{Str: name}}
	}
	if p.peekKind() == lexer.TOKEN_SEP_COLON {
		p.next()
		name := p.expect(lexer.TOKEN_IDENTIFIER).Value
		exp = &ast.TableAccessExp{PrefixExp: exp, KeyExp: &ast.StringExp{Str: name}}
		isMethod = true
	}
	return
}
