package parser

import (
	"github.com/embedlua/golua/compiler/ast"
	"github.com/embedlua/golua/compiler/lexer"
	"github.com/embedlua/golua/utils"
)

// binding power table, grounded on the reference implementation's
// luaK priority table: left/right priority per binary operator, with
// a lower right-priority than left marking right-associativity ('..'
// and '^').
type bindingPower struct{ left, right int }

var binPriority = map[lexer.Kind]bindingPower{
	lexer.TOKEN_OP_OR:    {1, 1},
	lexer.TOKEN_OP_AND:   {2, 2},
	lexer.TOKEN_OP_LT:    {3, 3},
	lexer.TOKEN_OP_GT:    {3, 3},
	lexer.TOKEN_OP_LE:    {3, 3},
	lexer.TOKEN_OP_GE:    {3, 3},
	lexer.TOKEN_OP_NE:    {3, 3},
	lexer.TOKEN_OP_EQ:    {3, 3},
	lexer.TOKEN_OP_BOR:   {4, 4},
	lexer.TOKEN_OP_BXOR:  {5, 5},
	lexer.TOKEN_OP_BAND:  {6, 6},
	lexer.TOKEN_OP_SHL:   {7, 7},
	lexer.TOKEN_OP_SHR:   {7, 7},
	lexer.TOKEN_OP_CONCAT: {9, 8}, // right-assoc
	lexer.TOKEN_OP_ADD:   {10, 10},
	lexer.TOKEN_OP_MINUS: {10, 10},
	lexer.TOKEN_OP_MUL:   {11, 11},
	lexer.TOKEN_OP_MOD:   {11, 11},
	lexer.TOKEN_OP_DIV:   {11, 11},
	lexer.TOKEN_OP_IDIV:  {11, 11},
	lexer.TOKEN_OP_POW:   {14, 13}, // right-assoc, binds tighter than unary
}

const unaryPriority = 12

func isUnaryOp(k lexer.Kind) bool {
	switch k {
	case lexer.TOKEN_OP_NOT, lexer.TOKEN_OP_LEN, lexer.TOKEN_OP_MINUS, lexer.TOKEN_OP_WAVE:
		return true
	}
	return false
}

// explist ::= exp {‘,’ exp}
func (p *Parser) parseExpList() []ast.Expr {
	exps := make([]ast.Expr, 0, 4)
	exps = append(exps, p.parseExp())
	for p.peekKind() == lexer.TOKEN_SEP_COMMA {
		p.next()
		exps = append(exps, p.parseExp())
	}
	return exps
}

// parseExp is the Pratt-parser entry point: climb binary operators
// with a binding power of at least 0 (i.e. all of them).
func (p *Parser) parseExp() ast.Expr {
	return p.parseExpBP(0)
}

func (p *Parser) parseExpBP(limit int) ast.Expr {
	var left ast.Expr
	pos := p.peek().Pos

	if isUnaryOp(p.peekKind()) {
		opTok := p.next()
		operand := p.parseExpBP(unaryPriority)
		u := &ast.UnopExp{Op: int(opTok.Kind), Exp: operand}
		u.Pos = pos
		left = optimizeUnaryOp(u)
	} else {
		left = p.parseSimpleExp()
	}

	for {
		bp, ok := binPriority[p.peekKind()]
		if !ok || bp.left <= limit {
			break
		}
		opTok := p.next()
		right := p.parseExpBP(bp.right)
		b := &ast.BinopExp{Op: int(opTok.Kind), Left: left, Right: right}
		b.Pos = pos
		left = p.foldBinop(opTok.Kind, b)
	}
	return left
}

func (p *Parser) foldBinop(op lexer.Kind, b *ast.BinopExp) ast.Expr {
	switch op {
	case lexer.TOKEN_OP_OR:
		return optimizeLogicalOr(b)
	case lexer.TOKEN_OP_AND:
		return optimizeLogicalAnd(b)
	case lexer.TOKEN_OP_BAND, lexer.TOKEN_OP_BOR, lexer.TOKEN_OP_BXOR, lexer.TOKEN_OP_SHL, lexer.TOKEN_OP_SHR:
		return optimizeBitwiseBinaryOp(b)
	case lexer.TOKEN_OP_ADD, lexer.TOKEN_OP_MINUS, lexer.TOKEN_OP_MUL, lexer.TOKEN_OP_DIV, lexer.TOKEN_OP_IDIV, lexer.TOKEN_OP_MOD:
		return optimizeArithBinaryOp(b)
	case lexer.TOKEN_OP_POW:
		return optimizePow(b)
	default:
		return b
	}
}

// simpleexp ::= nil | false | true | Numeral | LiteralString
//             | ‘...’ | functiondef | prefixexp | tableconstructor
func (p *Parser) parseSimpleExp() ast.Expr {
	tok := p.peek()
	switch tok.Kind {
	case lexer.TOKEN_VARARG:
		p.next()
		e := &ast.VarargExp{}
		e.Pos = tok.Pos
		return e
	case lexer.TOKEN_KW_NIL:
		p.next()
		e := &ast.NilExp{}
		e.Pos = tok.Pos
		return e
	case lexer.TOKEN_KW_TRUE:
		p.next()
		e := &ast.TrueExp{}
		e.Pos = tok.Pos
		return e
	case lexer.TOKEN_KW_FALSE:
		p.next()
		e := &ast.FalseExp{}
		e.Pos = tok.Pos
		return e
	case lexer.TOKEN_STRING:
		p.next()
		e := &ast.StringExp{Str: tok.Value}
		e.Pos = tok.Pos
		return e
	case lexer.TOKEN_NUMBER:
		return p.parseNumberExp()
	case lexer.TOKEN_SEP_LCURLY:
		return p.parseTableConstructorExp()
	case lexer.TOKEN_KW_FUNCTION:
		p.next()
		return p.parseFuncDefExp()
	default:
		return p.parsePrefixExp()
	}
}

func (p *Parser) parseNumberExp() ast.Expr {
	tok := p.next()
	if i, ok := utils.ParseInteger(tok.Value); ok {
		e := &ast.IntegerExp{Int: i}
		e.Pos = tok.Pos
		return e
	}
	if f, ok := utils.ParseFloat(tok.Value); ok {
		e := &ast.FloatExp{Float: f}
		e.Pos = tok.Pos
		return e
	}
	panic(&SyntaxError{Kind: ErrUnexpectedToken, ChunkName: p.chunkName, Pos: tok.Pos, Msg: "malformed number near '" + tok.Value + "'"})
}

// funcbody ::= ‘(’ [parlist] ‘)’ block end
func (p *Parser) parseFuncDefExp() *ast.FuncDefExp {
	pos := p.peek().Pos
	p.expect(lexer.TOKEN_SEP_LPAREN)
	parList, isVararg := p.parseParList()
	p.expect(lexer.TOKEN_SEP_RPAREN)
	block := p.parseBlock()
	endTok := p.expect(lexer.TOKEN_KW_END)
	e := &ast.FuncDefExp{LastLine: endTok.Pos.Line, ParList: parList, IsVararg: isVararg, Block: block}
	e.Pos = pos
	return e
}

// parlist ::= namelist [‘,’ ‘...’] | ‘...’
func (p *Parser) parseParList() (names []string, isVararg bool) {
	switch p.peekKind() {
	case lexer.TOKEN_SEP_RPAREN:
		return nil, false
	case lexer.TOKEN_VARARG:
		p.next()
		return nil, true
	}

	names = append(names, p.expect(lexer.TOKEN_IDENTIFIER).Value)
	for p.peekKind() == lexer.TOKEN_SEP_COMMA {
		p.next()
		if p.peekKind() == lexer.TOKEN_VARARG {
			p.next()
			isVararg = true
			break
		}
		names = append(names, p.expect(lexer.TOKEN_IDENTIFIER).Value)
	}
	return
}

// tableconstructor ::= ‘{’ [fieldlist] ‘}’
func (p *Parser) parseTableConstructorExp() *ast.TableConstructorExp {
	opener := p.expect(lexer.TOKEN_SEP_LCURLY)
	p.pushDelim("{", opener.Pos)
	keyExps, valExps := p.parseFieldList()
	closer := p.expect(lexer.TOKEN_SEP_RCURLY)
	p.popDelim()
	e := &ast.TableConstructorExp{LastLine: closer.Pos.Line, KeyExps: keyExps, ValExps: valExps}
	e.Pos = opener.Pos
	return e
}

// fieldlist ::= field {fieldsep field} [fieldsep]
// fieldsep  ::= ‘,’ | ‘;’
func (p *Parser) parseFieldList() (ks, vs []ast.Expr) {
	for p.peekKind() != lexer.TOKEN_SEP_RCURLY {
		k, v := p.parseField()
		ks = append(ks, k)
		vs = append(vs, v)
		if p.peekKind() == lexer.TOKEN_SEP_COMMA || p.peekKind() == lexer.TOKEN_SEP_SEMI {
			p.next()
		} else {
			break
		}
	}
	return
}

// field ::= ‘[’ exp ‘]’ ‘=’ exp | Name ‘=’ exp | exp
func (p *Parser) parseField() (k, v ast.Expr) {
	if p.peekKind() == lexer.TOKEN_SEP_LBRACK {
		p.next()
		k = p.parseExp()
		p.expect(lexer.TOKEN_SEP_RBRACK)
		p.expect(lexer.TOKEN_OP_ASSIGN)
		v = p.parseExp()
		return
	}

	if p.peekKind() == lexer.TOKEN_IDENTIFIER {
		save := p.peek()
		if p.peekIsNameAssign() {
			p.next() // Name
			p.next() // =
			k = &ast.StringExp{Str: save.Value}
			k.GetMeta().Pos = save.Pos
			v = p.parseExp()
			return
		}
	}

	return nil, p.parseExp()
}

// peekIsNameAssign looks two tokens ahead through the lexer's
// PeekSecond, consuming nothing, so it must be called only right after
// confirming the current token is a Name (parseField is the only user).
func (p *Parser) peekIsNameAssign() bool {
	return p.lx.PeekSecond().Kind == lexer.TOKEN_OP_ASSIGN
}

/*
prefixexp ::= Name |
              ‘(’ exp ‘)’ |
              prefixexp ‘[’ exp ‘]’ |
              prefixexp ‘.’ Name |
              prefixexp ‘:’ Name args |
              prefixexp args
*/
func (p *Parser) parsePrefixExp() ast.Expr {
	var exp ast.Expr
	if p.peekKind() == lexer.TOKEN_IDENTIFIER {
		tok := p.next()
		exp = &ast.NameExp{Name: tok.Value}
		exp.GetMeta().Pos = tok.Pos
	} else {
		exp = p.parseParensExp()
	}
	return p.parsePrefixExpSuffixes(exp)
}

func (p *Parser) parseParensExp() ast.Expr {
	opener := p.expect(lexer.TOKEN_SEP_LPAREN)
	p.pushDelim("(", opener.Pos)
	inner := p.parseExp()
	p.expect(lexer.TOKEN_SEP_RPAREN)
	p.popDelim()
	e := &ast.ParensExp{Exp: inner}
	e.Pos = opener.Pos
	return e
}

func (p *Parser) parsePrefixExpSuffixes(exp ast.Expr) ast.Expr {
	for {
		switch p.peekKind() {
		case lexer.TOKEN_SEP_DOT:
			pos := p.next().Pos
			name := p.expect(lexer.TOKEN_IDENTIFIER)
			key := &ast.StringExp{Str: name.Value}
			key.Pos = name.Pos
			e := &ast.TableAccessExp{LastLine: name.Pos.Line, PrefixExp: exp, KeyExp: key}
			e.Pos = pos
			exp = e
		case lexer.TOKEN_SEP_LBRACK:
			pos := p.next().Pos
			key := p.parseExp()
			last := p.expect(lexer.TOKEN_SEP_RBRACK)
			e := &ast.TableAccessExp{LastLine: last.Pos.Line, PrefixExp: exp, KeyExp: key}
			e.Pos = pos
			exp = e
		case lexer.TOKEN_SEP_COLON:
			pos := p.next().Pos
			method := p.expect(lexer.TOKEN_IDENTIFIER).Value
			args, lastLine := p.parseArgs()
			e := &ast.FuncCallExp{LastLine: lastLine, PrefixExp: exp, Method: method, Args: args}
			e.Pos = pos
			exp = e
		case lexer.TOKEN_SEP_LPAREN, lexer.TOKEN_STRING, lexer.TOKEN_SEP_LCURLY:
			pos := p.peek().Pos
			args, lastLine := p.parseArgs()
			e := &ast.FuncCallExp{LastLine: lastLine, PrefixExp: exp, Args: args}
			e.Pos = pos
			exp = e
		default:
			return exp
		}
	}
}

// args ::=  ‘(’ [explist] ‘)’ | tableconstructor | LiteralString
func (p *Parser) parseArgs() ([]ast.Expr, int) {
	switch p.peekKind() {
	case lexer.TOKEN_SEP_LPAREN:
		opener := p.next()
		p.pushDelim("(", opener.Pos)
		var args []ast.Expr
		if p.peekKind() != lexer.TOKEN_SEP_RPAREN {
			args = p.parseExpList()
		}
		last := p.expect(lexer.TOKEN_SEP_RPAREN)
		p.popDelim()
		return args, last.Pos.Line
	case lexer.TOKEN_SEP_LCURLY:
		t := p.parseTableConstructorExp()
		return []ast.Expr{t}, t.LastLine
	default:
		tok := p.expect(lexer.TOKEN_STRING)
		s := &ast.StringExp{Str: tok.Value}
		s.Pos = tok.Pos
		return []ast.Expr{s}, tok.Pos.Line
	}
}
