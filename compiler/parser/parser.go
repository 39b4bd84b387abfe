// Package parser turns a token stream into the ast package's typed
// tree: a recursive-descent layer for statements and blocks, and a
// table-driven Pratt parser for expressions.
package parser

import (
	"github.com/embedlua/golua/compiler/ast"
	"github.com/embedlua/golua/compiler/lexer"
)

type comment struct {
	text string
	pos  ast.Position
}

// Parser holds the lexer plus the bits needed
// for comment attachment and delimiter-aware error messages.
type Parser struct {
	lx        *lexer.Lexer
	chunkName string
	pending   []comment
	delims    []delimiter

	// lastConsumedLine is the source line of the most recently consumed
	// token; parseStat uses it to decide whether a following comment is
	// a same-line trailing comment or the next statement's leading one.
	lastConsumedLine int
}

// Parse lexes and parses chunk into a Block. Lexical and syntactic
// errors are raised as a panic (*lexer.Error or *SyntaxError); the
// caller (the compiler package, and ultimately the host façade) is
// expected to recover it into its own error type.
func Parse(chunk, chunkName string) *ast.Block {
	p := &Parser{lx: lexer.NewLexer(chunk, chunkName), chunkName: chunkName}
	block := p.parseBlock()
	p.expect(lexer.TOKEN_EOF)
	return block
}

// drain pulls any comment tokens sitting in front of the next real
// token out of the lexer and files them as pending, since the lexer's
// next-token slot might be holding a comment.
func (p *Parser) drain() {
	for {
		t := p.lx.Peek()
		if t.Kind != lexer.TOKEN_COMMENT {
			return
		}
		p.lx.NextRaw()
		p.pending = append(p.pending, comment{t.Value, t.Pos})
	}
}

func (p *Parser) peek() lexer.Token {
	p.drain()
	return p.lx.Peek()
}

func (p *Parser) peekKind() lexer.Kind { return p.peek().Kind }

func (p *Parser) line() int { return p.peek().Pos.Line }

func (p *Parser) next() lexer.Token {
	p.drain()
	t := p.lx.NextRaw()
	p.lastConsumedLine = t.Pos.Line
	return t
}

func (p *Parser) expect(k lexer.Kind) lexer.Token {
	p.drain()
	t := p.lx.Peek()
	if t.Kind != k {
		p.errorExpected(k, t)
	}
	p.lx.NextRaw()
	p.lastConsumedLine = t.Pos.Line
	return t
}

func (p *Parser) errorExpected(want lexer.Kind, got lexer.Token) {
	if got.Kind == lexer.TOKEN_EOF {
		p.unclosedError(got.Pos, "'"+lexer.TokenName(want)+"' expected")
		return
	}
	panic(&SyntaxError{
		Kind:      ErrExpectedToken,
		ChunkName: p.chunkName,
		Pos:       got.Pos,
		Msg:       "'" + lexer.TokenName(want) + "' expected near '" + p.describe(got) + "'",
	})
}

func (p *Parser) errorUnexpected(got lexer.Token, context string) {
	if got.Kind == lexer.TOKEN_EOF {
		panic(&SyntaxError{Kind: ErrUnexpectedEOF, ChunkName: p.chunkName, Pos: got.Pos, Msg: "unexpected <eof> " + context})
	}
	panic(&SyntaxError{Kind: ErrUnexpectedToken, ChunkName: p.chunkName, Pos: got.Pos, Msg: "unexpected symbol near '" + p.describe(got) + "'"})
}

func (p *Parser) describe(t lexer.Token) string {
	if t.Kind == lexer.TOKEN_EOF {
		return "<eof>"
	}
	if t.Value != "" {
		return t.Value
	}
	return lexer.TokenName(t.Kind)
}

// takeLeading returns and clears the comments collected since the last
// call, for attachment to the statement about to be parsed.
func (p *Parser) takeLeading() []string {
	p.drain()
	if len(p.pending) == 0 {
		return nil
	}
	out := make([]string, len(p.pending))
	for i, c := range p.pending {
		out[i] = c.text
	}
	p.pending = nil
	return out
}

// takeTrailing looks for a comment immediately following a statement
// that ended on lastLine; only a same-line comment counts as trailing,
// anything else is left pending as the next statement's leading
// comment.
func (p *Parser) takeTrailing(lastLine int) string {
	p.drain()
	if len(p.pending) > 0 && p.pending[0].pos.Line == lastLine {
		c := p.pending[0].text
		p.pending = p.pending[1:]
		return c
	}
	return ""
}

func (p *Parser) meta(pos ast.Position, leading []string, trailing string) ast.Meta {
	return ast.Meta{Pos: pos, LeadingComments: leading, TrailingComment: trailing}
}
