package codegen

import . "github.com/embedlua/golua/compiler/ast"

func isVarargOrFuncCall(exp Expr) bool {
	switch exp.(type) {
	case *VarargExp, *FuncCallExp:
		return true
	}
	return false
}

func lineOf(exp Expr) int {
	switch x := exp.(type) {
	case *TableAccessExp:
		return lineOf(x.PrefixExp)
	case *BinopExp:
		return lineOf(x.Left)
	default:
		return x.GetMeta().Pos.Line
	}
}

func lastLineOf(exp Expr) int {
	switch x := exp.(type) {
	case *FuncDefExp:
		return x.LastLine
	case *FuncCallExp:
		return x.LastLine
	case *TableConstructorExp:
		return x.LastLine
	case *TableAccessExp:
		return x.LastLine
	case *BinopExp:
		return lastLineOf(x.Right)
	case *UnopExp:
		return lastLineOf(x.Exp)
	default:
		return x.GetMeta().Pos.Line
	}
}
