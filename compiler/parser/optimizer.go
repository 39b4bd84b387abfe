package parser

import (
	"math"

	"github.com/embedlua/golua/compiler/ast"
	"github.com/embedlua/golua/compiler/lexer"
	"github.com/embedlua/golua/utils"
)

// Constant folding at parse time: `2+3`, `1 << 4`, `not nil`, and unary
// minus/bnot on a literal collapse into a single literal node instead of
// a runtime ADD/SHL/NOT/UNM/BNOT instruction.

func optimizeLogicalOr(exp *ast.BinopExp) ast.Expr {
	if isTrue(exp.Left) {
		return exp.Left // true or x => true
	}
	if isFalse(exp.Left) && !isVarargOrFuncCall(exp.Right) {
		return exp.Right // false or x => x
	}
	return exp
}

func optimizeLogicalAnd(exp *ast.BinopExp) ast.Expr {
	if isFalse(exp.Left) {
		return exp.Left // false and x => false
	}
	if isTrue(exp.Left) && !isVarargOrFuncCall(exp.Right) {
		return exp.Right // true and x => x
	}
	return exp
}

func optimizeBitwiseBinaryOp(exp *ast.BinopExp) ast.Expr {
	i, ok := castToInt(exp.Left)
	if !ok {
		return exp
	}
	j, ok := castToInt(exp.Right)
	if !ok {
		return exp
	}
	lit := &ast.IntegerExp{}
	lit.Pos = exp.Pos
	switch lexer.Kind(exp.Op) {
	case lexer.TOKEN_OP_BAND:
		lit.Int = i & j
	case lexer.TOKEN_OP_BOR:
		lit.Int = i | j
	case lexer.TOKEN_OP_BXOR:
		lit.Int = i ^ j
	case lexer.TOKEN_OP_SHL:
		lit.Int = utils.ShiftLeft(i, j)
	case lexer.TOKEN_OP_SHR:
		lit.Int = utils.ShiftRight(i, j)
	default:
		return exp
	}
	return lit
}

func optimizeArithBinaryOp(exp *ast.BinopExp) ast.Expr {
	if x, ok := exp.Left.(*ast.IntegerExp); ok {
		if y, ok := exp.Right.(*ast.IntegerExp); ok {
			if lit, ok := foldIntArith(exp, x.Int, y.Int); ok {
				return lit
			}
		}
	}
	if f, ok := castToFloat(exp.Left); ok {
		if g, ok := castToFloat(exp.Right); ok {
			if lit, ok := foldFloatArith(exp, f, g); ok {
				return lit
			}
		}
	}
	return exp
}

func foldIntArith(exp *ast.BinopExp, x, y int64) (ast.Expr, bool) {
	lit := &ast.IntegerExp{}
	lit.Pos = exp.Pos
	switch lexer.Kind(exp.Op) {
	case lexer.TOKEN_OP_ADD:
		lit.Int = x + y
	case lexer.TOKEN_OP_SUB:
		lit.Int = x - y
	case lexer.TOKEN_OP_MUL:
		lit.Int = x * y
	case lexer.TOKEN_OP_IDIV:
		if y == 0 {
			return nil, false
		}
		lit.Int = utils.IFloorDiv(x, y)
	case lexer.TOKEN_OP_MOD:
		if y == 0 {
			return nil, false
		}
		lit.Int = utils.IMod(x, y)
	default:
		return nil, false
	}
	return lit, true
}

func foldFloatArith(exp *ast.BinopExp, f, g float64) (ast.Expr, bool) {
	lit := &ast.FloatExp{}
	lit.Pos = exp.Pos
	switch lexer.Kind(exp.Op) {
	case lexer.TOKEN_OP_ADD:
		lit.Float = f + g
	case lexer.TOKEN_OP_SUB:
		lit.Float = f - g
	case lexer.TOKEN_OP_MUL:
		lit.Float = f * g
	case lexer.TOKEN_OP_DIV:
		lit.Float = f / g
	case lexer.TOKEN_OP_IDIV:
		lit.Float = utils.FFloorDiv(f, g)
	case lexer.TOKEN_OP_MOD:
		lit.Float = utils.FMod(f, g)
	case lexer.TOKEN_OP_POW:
		lit.Float = math.Pow(f, g)
	default:
		return nil, false
	}
	return lit, true
}

func optimizePow(exp ast.Expr) ast.Expr {
	if binop, ok := exp.(*ast.BinopExp); ok {
		if lexer.Kind(binop.Op) == lexer.TOKEN_OP_POW {
			binop.Right = optimizePow(binop.Right)
		}
		return optimizeArithBinaryOp(binop)
	}
	return exp
}

func optimizeUnaryOp(exp *ast.UnopExp) ast.Expr {
	switch lexer.Kind(exp.Op) {
	case lexer.TOKEN_OP_UNM:
		return optimizeUnm(exp)
	case lexer.TOKEN_OP_NOT:
		return optimizeNot(exp)
	case lexer.TOKEN_OP_BNOT:
		return optimizeBnot(exp)
	default:
		return exp
	}
}

func optimizeUnm(exp *ast.UnopExp) ast.Expr {
	switch x := exp.Exp.(type) {
	case *ast.IntegerExp:
		x.Int = -x.Int
		return x
	case *ast.FloatExp:
		x.Float = -x.Float
		return x
	}
	return exp
}

func optimizeNot(exp *ast.UnopExp) ast.Expr {
	switch exp.Exp.(type) {
	case *ast.NilExp, *ast.FalseExp:
		lit := &ast.TrueExp{}
		lit.Pos = exp.Pos
		return lit
	case *ast.TrueExp, *ast.IntegerExp, *ast.FloatExp, *ast.StringExp:
		lit := &ast.FalseExp{}
		lit.Pos = exp.Pos
		return lit
	default:
		return exp
	}
}

func optimizeBnot(exp *ast.UnopExp) ast.Expr {
	switch x := exp.Exp.(type) {
	case *ast.IntegerExp:
		x.Int = ^x.Int
		return x
	case *ast.FloatExp:
		if i, ok := utils.FloatToInteger(x.Float); ok {
			lit := &ast.IntegerExp{Int: ^i}
			lit.Pos = x.Pos
			return lit
		}
	}
	return exp
}

func isFalse(exp ast.Expr) bool {
	switch exp.(type) {
	case *ast.FalseExp, *ast.NilExp:
		return true
	default:
		return false
	}
}

func isTrue(exp ast.Expr) bool {
	switch exp.(type) {
	case *ast.TrueExp, *ast.IntegerExp, *ast.FloatExp, *ast.StringExp:
		return true
	default:
		return false
	}
}

func isVarargOrFuncCall(exp ast.Expr) bool {
	switch exp.(type) {
	case *ast.VarargExp, *ast.FuncCallExp:
		return true
	}
	return false
}

func castToInt(exp ast.Expr) (int64, bool) {
	switch x := exp.(type) {
	case *ast.IntegerExp:
		return x.Int, true
	case *ast.FloatExp:
		return utils.FloatToInteger(x.Float)
	default:
		return 0, false
	}
}

func castToFloat(exp ast.Expr) (float64, bool) {
	switch x := exp.(type) {
	case *ast.IntegerExp:
		return float64(x.Int), true
	case *ast.FloatExp:
		return x.Float, true
	default:
		return 0, false
	}
}
