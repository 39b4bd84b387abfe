package parser

import (
	"github.com/embedlua/golua/compiler/ast"
	"github.com/embedlua/golua/compiler/lexer"
)

// block ::= {stat} [retstat]
func (p *Parser) parseBlock() *ast.Block {
	stats := p.parseStats()
	retExps, retPos := p.parseRetExps()
	return &ast.Block{
		Stats:    stats,
		RetExps:  retExps,
		RetPos:   retPos,
		LastLine: p.line(),
	}
}

func (p *Parser) parseStats() []ast.Stat {
	stats := make([]ast.Stat, 0, 8)
	for !isBlockEnd(p.peekKind()) {
		stat := p.parseStat()
		if _, ok := stat.(*ast.EmptyStat); !ok {
			stats = append(stats, stat)
		}
	}
	return stats
}

func isBlockEnd(k lexer.Kind) bool {
	switch k {
	case lexer.TOKEN_EOF, lexer.TOKEN_KW_END, lexer.TOKEN_KW_ELSE,
		lexer.TOKEN_KW_ELSEIF, lexer.TOKEN_KW_UNTIL, lexer.TOKEN_KW_RETURN:
		return true
	}
	return false
}

// retstat ::= return [explist] [‘;’]
func (p *Parser) parseRetExps() ([]ast.Expr, ast.Position) {
	if p.peekKind() != lexer.TOKEN_KW_RETURN {
		return nil, ast.Position{}
	}
	pos := p.next().Pos
	switch p.peekKind() {
	case lexer.TOKEN_EOF, lexer.TOKEN_KW_END, lexer.TOKEN_KW_ELSE, lexer.TOKEN_KW_ELSEIF, lexer.TOKEN_KW_UNTIL:
		return []ast.Expr{}, pos
	case lexer.TOKEN_SEP_SEMI:
		p.next()
		return []ast.Expr{}, pos
	default:
		exps := p.parseExpList()
		if p.peekKind() == lexer.TOKEN_SEP_SEMI {
			p.next()
		}
		return exps, pos
	}
}
