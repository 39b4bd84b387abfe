package parser

import (
	"fmt"

	"github.com/embedlua/golua/compiler/ast"
)

// ErrorKind classifies a SyntaxError for callers that want to react
// differently to, say, an unclosed delimiter than to a plain typo.
type ErrorKind int

const (
	ErrUnexpectedToken ErrorKind = iota
	ErrExpectedToken
	ErrUnclosedDelimiter
	ErrUnexpectedEOF
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedToken:
		return "unexpected_token"
	case ErrExpectedToken:
		return "expected_token"
	case ErrUnclosedDelimiter:
		return "unclosed_delimiter"
	case ErrUnexpectedEOF:
		return "unexpected_end"
	}
	return "unknown"
}

// SyntaxError is raised (as a Go panic) by the parser on malformed
// input; the lexer raises its own *lexer.Error for lexical failures,
// which the top-level Parse lets propagate unchanged.
type SyntaxError struct {
	Kind      ErrorKind
	ChunkName string
	Pos       ast.Position
	Msg       string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.ChunkName, e.Pos.Line, e.Pos.Column, e.Msg)
}

// delimiter tracks an open bracket/keyword awaiting its closer, so an
// EOF reached with the stack non-empty can be reported against the
// opener's position ("'end' expected (to close 'if' at line 3)")
// rather than just "unexpected <eof>".
type delimiter struct {
	what string
	pos  ast.Position
}

func (p *Parser) pushDelim(what string, pos ast.Position) {
	p.delims = append(p.delims, delimiter{what, pos})
}

func (p *Parser) popDelim() {
	if len(p.delims) > 0 {
		p.delims = p.delims[:len(p.delims)-1]
	}
}

func (p *Parser) unclosedError(pos ast.Position, msg string) {
	if len(p.delims) > 0 {
		top := p.delims[len(p.delims)-1]
		msg = fmt.Sprintf("%s (to close '%s' at line %d)", msg, top.what, top.pos.Line)
	}
	panic(&SyntaxError{Kind: ErrUnclosedDelimiter, ChunkName: p.chunkName, Pos: pos, Msg: msg})
}
