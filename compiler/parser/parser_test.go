package parser

import (
	"strings"
	"testing"

	"github.com/embedlua/golua/compiler/ast"
)

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	block := Parse("return "+src, "test")
	if len(block.RetExps) != 1 {
		t.Fatalf("expected one return expression, got %d", len(block.RetExps))
	}
	return block.RetExps[0]
}

func TestUnaryMinusBindsLooserThanPow(t *testing.T) {
	// -2^2 == -(2^2) == -4, not (-2)^2 == 4. The optimizer folds both the
	// power and the unary minus on the resulting literal.
	exp := parseExpr(t, "-2^2")
	lit, ok := exp.(*ast.FloatExp)
	if !ok || lit.Float != -4 {
		t.Fatalf("expected -(2^2) folded to -4.0, got %#v", exp)
	}
}

func TestConcatIsRightAssociative(t *testing.T) {
	exp := parseExpr(t, `a .. b .. c`)
	top, ok := exp.(*ast.BinopExp)
	if !ok {
		t.Fatalf("expected BinopExp, got %T", exp)
	}
	if _, ok := top.Right.(*ast.BinopExp); !ok {
		t.Fatalf("expected right-associative concat, got left-leaning tree")
	}
	if _, ok := top.Left.(*ast.NameExp); !ok {
		t.Fatalf("expected left operand to be the bare Name 'a', got %T", top.Left)
	}
}

func TestAndOrPrecedence(t *testing.T) {
	// a or b and c  ==  a or (b and c)
	exp := parseExpr(t, "a or b and c")
	top, ok := exp.(*ast.BinopExp)
	if !ok {
		t.Fatalf("expected BinopExp, got %T", exp)
	}
	if _, ok := top.Right.(*ast.BinopExp); !ok {
		t.Fatalf("expected 'and' subexpression on the right of 'or', got %T", top.Right)
	}
}

func TestMethodCallProducesDistinctNode(t *testing.T) {
	exp := parseExpr(t, "obj:method(1, 2)")
	call, ok := exp.(*ast.FuncCallExp)
	if !ok {
		t.Fatalf("expected FuncCallExp, got %T", exp)
	}
	if call.Method != "method" {
		t.Fatalf("expected Method == \"method\", got %q", call.Method)
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(call.Args))
	}
}

func TestTableConstructorMixedFields(t *testing.T) {
	exp := parseExpr(t, `{1, 2, x = 3, [4+1] = 5}`)
	tc, ok := exp.(*ast.TableConstructorExp)
	if !ok {
		t.Fatalf("expected TableConstructorExp, got %T", exp)
	}
	if len(tc.ValExps) != 4 {
		t.Fatalf("expected 4 fields, got %d", len(tc.ValExps))
	}
	if tc.KeyExps[0] != nil || tc.KeyExps[1] != nil {
		t.Fatalf("expected first two fields to be array-style (nil key)")
	}
	sk, ok := tc.KeyExps[2].(*ast.StringExp)
	if !ok || sk.Str != "x" {
		t.Fatalf("expected third field keyed by string \"x\", got %#v", tc.KeyExps[2])
	}
	if _, ok := tc.KeyExps[3].(*ast.IntegerExp); !ok {
		t.Fatalf("expected fourth field's computed key to fold to a literal, got %#v", tc.KeyExps[3])
	}
}

func TestIfElseifElse(t *testing.T) {
	block := Parse(`
if a then
  return 1
elseif b then
  return 2
else
  return 3
end
`, "test")
	if len(block.Stats) != 1 {
		t.Fatalf("expected a single if statement, got %d stats", len(block.Stats))
	}
	ifs, ok := block.Stats[0].(*ast.IfStat)
	if !ok {
		t.Fatalf("expected IfStat, got %T", block.Stats[0])
	}
	if len(ifs.Exps) != 2 || len(ifs.Blocks) != 3 {
		t.Fatalf("expected 2 conditions and 3 blocks (if/elseif/else), got %d/%d", len(ifs.Exps), len(ifs.Blocks))
	}
}

func TestNumericForDefaultStep(t *testing.T) {
	block := Parse("for i = 1, 10 do end", "test")
	f, ok := block.Stats[0].(*ast.ForNumStat)
	if !ok {
		t.Fatalf("expected ForNumStat, got %T", block.Stats[0])
	}
	step, ok := f.StepExp.(*ast.IntegerExp)
	if !ok || step.Int != 1 {
		t.Fatalf("expected default step of 1, got %#v", f.StepExp)
	}
}

func TestLocalFunctionDistinctFromLocalAssign(t *testing.T) {
	block := Parse("local function f() return 1 end", "test")
	if _, ok := block.Stats[0].(*ast.LocalFuncDefStat); !ok {
		t.Fatalf("expected LocalFuncDefStat, got %T", block.Stats[0])
	}
}

func TestDottedFunctionNameWithSelf(t *testing.T) {
	block := Parse("function obj:method(x) return x end", "test")
	fn, ok := block.Stats[0].(*ast.AssignFuncStat)
	if !ok {
		t.Fatalf("expected AssignFuncStat, got %T", block.Stats[0])
	}
	if !fn.IsMethod {
		t.Fatalf("expected IsMethod true for colon syntax")
	}
	if len(fn.Exp.ParList) != 2 || fn.Exp.ParList[0] != "self" {
		t.Fatalf("expected implicit leading 'self' parameter, got %v", fn.Exp.ParList)
	}
}

func TestTrailingCommentAttachesToSameLineStatement(t *testing.T) {
	block := Parse("local x = 1 -- note\nlocal y = 2\n", "test")
	first := block.Stats[0].GetMeta()
	if first.TrailingComment != " note" {
		t.Fatalf("expected trailing comment \" note\", got %q", first.TrailingComment)
	}
	second := block.Stats[1].GetMeta()
	if len(second.LeadingComments) != 0 {
		t.Fatalf("expected no leading comments stolen by the second statement, got %v", second.LeadingComments)
	}
}

func TestLeadingCommentAttachesToNextStatement(t *testing.T) {
	block := Parse("-- about x\nlocal x = 1\n", "test")
	m := block.Stats[0].GetMeta()
	if len(m.LeadingComments) != 1 || m.LeadingComments[0] != " about x" {
		t.Fatalf("expected one leading comment, got %v", m.LeadingComments)
	}
}

func TestUnclosedIfReportsOpenerLine(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic for unclosed 'if'")
		}
		se, ok := r.(*SyntaxError)
		if !ok {
			t.Fatalf("expected *SyntaxError, got %T (%v)", r, r)
		}
		if se.Kind != ErrUnclosedDelimiter {
			t.Fatalf("expected ErrUnclosedDelimiter, got %v", se.Kind)
		}
		if !strings.Contains(se.Msg, "(to close 'if' at line 1)") {
			t.Fatalf("expected message to name the opener's line, got %q", se.Msg)
		}
	}()
	Parse("if true then\n  local x = 1\n", "test")
}
