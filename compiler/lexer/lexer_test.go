package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func kinds(src string) []Kind {
	l := NewLexer(src, "test")
	var ks []Kind
	for {
		t := l.NextToken()
		ks = append(ks, t.Kind)
		if t.Kind == TOKEN_EOF {
			break
		}
	}
	return ks
}

func TestDelimitersAndOperators(t *testing.T) {
	got := kinds("local a = {1, 2} -- trailing\n")
	want := []Kind{
		TOKEN_KW_LOCAL, TOKEN_IDENTIFIER, TOKEN_OP_ASSIGN,
		TOKEN_SEP_LCURLY, TOKEN_NUMBER, TOKEN_SEP_COMMA, TOKEN_NUMBER, TOKEN_SEP_RCURLY,
		TOKEN_EOF,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestCommentsArePreservedAsTokens(t *testing.T) {
	l := NewLexer("-- hi\nlocal x", "test")
	first := l.NextRaw()
	if first.Kind != TOKEN_COMMENT || first.Value != " hi" {
		t.Fatalf("expected leading comment token, got %+v", first)
	}
	second := l.NextRaw()
	if second.Kind != TOKEN_KW_LOCAL {
		t.Fatalf("expected local keyword after comment, got %+v", second)
	}
}

func TestLongBracketString(t *testing.T) {
	l := NewLexer("[[line1\nline2]]", "test")
	tok := l.NextToken()
	if tok.Kind != TOKEN_STRING || tok.Value != "line1\nline2" {
		t.Fatalf("long string mismatch: %+v", tok)
	}
}

func TestLongBracketWithLevel(t *testing.T) {
	l := NewLexer("[=[ a]]b ]=]", "test")
	tok := l.NextToken()
	if tok.Kind != TOKEN_STRING || tok.Value != " a]]b " {
		t.Fatalf("level-bracketed string mismatch: %+v", tok)
	}
}

func TestNumberLiterals(t *testing.T) {
	cases := []string{"42", "3.14", ".5", "5.", "2e10", "2.E-1", "0xFF", "0xF0.0", "0xABCp-3", "0x1p0"}
	for _, c := range cases {
		l := NewLexer(c, "test")
		tok := l.NextToken()
		if tok.Kind != TOKEN_NUMBER || tok.Value != c {
			t.Fatalf("number literal %q: got %+v", c, tok)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	l := NewLexer(`"a\tb\65\x41\u{48}"`, "test")
	tok := l.NextToken()
	want := "a\tbAAH"
	if tok.Value != want {
		t.Fatalf("escapes: got %q want %q", tok.Value, want)
	}
}

func TestPositionsAreOrdered(t *testing.T) {
	l := NewLexer("local\na = 1", "test")
	var last Position
	for {
		tok := l.NextToken()
		if tok.Pos.Line < last.Line || (tok.Pos.Line == last.Line && tok.Pos.Column < last.Column) {
			t.Fatalf("token %+v out of order after %+v", tok, last)
		}
		last = tok.Pos
		if tok.Kind == TOKEN_EOF {
			break
		}
	}
}

func TestUnterminatedStringErrors(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected lexer error for unterminated string")
		}
	}()
	l := NewLexer(`"abc`, "test")
	l.NextToken()
}
