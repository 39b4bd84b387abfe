package codegen

import . "github.com/embedlua/golua/compiler/ast"

func cgBlock(fi *funcInfo, node *Block) {
	for _, stat := range node.Stats {
		cgStat(fi, stat)
	}
	if node.RetExps != nil {
		cgRetStat(fi, node.RetExps, node.LastLine)
	}
}

func cgRetStat(fi *funcInfo, exps []Expr, lastLine int) {
	nExps := len(exps)
	if nExps == 0 {
		fi.emitReturn(lastLine, 0, 0)
		return
	}

	if nExps == 1 {
		if nameExp, ok := exps[0].(*NameExp); ok {
			if r := fi.slotOfLocVar(nameExp.Name); r >= 0 {
				fi.emitReturn(lastLine, r, 1)
				return
			}
		}
		if fcExp, ok := exps[0].(*FuncCallExp); ok {
			r := fi.allocReg()
			cgTailCallExp(fi, fcExp, r)
			fi.freeReg()
			fi.emitReturn(lastLine, r, -1)
			return
		}
	}

	multRet := isVarargOrFuncCall(exps[nExps-1])
	a := fi.usedRegs
	for i, exp := range exps {
		tmp := fi.allocReg()
		if i == nExps-1 && multRet {
			cgExp(fi, exp, tmp, -1)
		} else {
			cgExp(fi, exp, tmp, 1)
		}
	}
	fi.freeRegs(fi.usedRegs - a)

	if multRet {
		fi.emitReturn(lastLine, a, -1)
	} else {
		fi.emitReturn(lastLine, a, nExps)
	}
}

func cgStat(fi *funcInfo, stat Stat) {
	switch node := stat.(type) {
	case *LocalFuncDefStat:
		cgLocalFuncDefStat(fi, node)
	case *FuncCallStat:
		cgFuncCallStat(fi, node)
	case *BreakStat:
		cgBreakStat(fi, node)
	case *DoStat:
		cgDoStat(fi, node)
	case *WhileStat:
		cgWhileStat(fi, node)
	case *RepeatStat:
		cgRepeatStat(fi, node)
	case *IfStat:
		cgIfStat(fi, node)
	case *ForNumStat:
		cgForNumStat(fi, node)
	case *ForInStat:
		cgForInStat(fi, node)
	case *AssignStat:
		cgAssignStat(fi, node)
	case *AssignFuncStat:
		cgAssignFuncStat(fi, node)
	case *LocalVarDeclStat:
		cgLocalVarDeclStat(fi, node)
	case *LabelStat, *GotoStat, *EmptyStat:
		// labels/gotos are accepted syntactically but never resolved into
		// jumps; an empty statement emits nothing.
	}
}

func cgLocalFuncDefStat(fi *funcInfo, node *LocalFuncDefStat) {
	r := fi.addLocVar(node.Name, fi.pc()+1)
	cgFuncDefExp(fi, node.Exp, r)
}

func cgFuncCallStat(fi *funcInfo, node *FuncCallStat) {
	r := fi.allocReg()
	cgFuncCallExp(fi, node.Call, r, 0)
	fi.freeReg()
}

func cgBreakStat(fi *funcInfo, node *BreakStat) {
	pc := fi.emitJmp(node.Pos.Line, 0, 0)
	fi.addBreakJmp(pc)
}

func cgDoStat(fi *funcInfo, node *DoStat) {
	fi.enterScope(false)
	cgBlock(fi, node.Block)
	fi.closeOpenUpvals(node.Block.LastLine)
	fi.exitScope(fi.pc() + 1)
}

func cgWhileStat(fi *funcInfo, node *WhileStat) {
	pcBeforeExp := fi.pc()

	oldRegs := fi.usedRegs
	a, _ := expToOpArg(fi, node.Exp, ARG_REG)
	fi.usedRegs = oldRegs

	line := lastLineOf(node.Exp)
	fi.emitTest(line, a, 0)
	pcJmpToEnd := fi.emitJmp(line, 0, 0)

	fi.enterScope(true)
	cgBlock(fi, node.Block)
	fi.closeOpenUpvals(node.Block.LastLine)
	fi.emitJmp(node.Block.LastLine, 0, pcBeforeExp-fi.pc()-1)
	fi.exitScope(fi.pc() + 1)

	fi.fixSbx(pcJmpToEnd, fi.pc()-pcJmpToEnd)
}

func cgRepeatStat(fi *funcInfo, node *RepeatStat) {
	fi.enterScope(true)

	pcBeforeBlock := fi.pc()
	cgBlock(fi, node.Block)

	oldRegs := fi.usedRegs
	a, _ := expToOpArg(fi, node.Exp, ARG_REG)
	fi.usedRegs = oldRegs

	line := lastLineOf(node.Exp)
	fi.emitTest(line, a, 0)
	fi.emitJmp(line, fi.getJmpArgA(), pcBeforeBlock-fi.pc()-1)
	fi.closeOpenUpvals(line)

	fi.exitScope(fi.pc() + 1)
}

// if/elseif arms are Exps[i]/Blocks[i] in lockstep; a trailing Blocks
// entry with no matching Exps entry is the final else.
func cgIfStat(fi *funcInfo, node *IfStat) {
	nExps := len(node.Exps)
	hasElse := len(node.Blocks) > nExps

	var pcJmpToEnds []int
	pcJmpToNextTest := -1

	for i := 0; i < nExps; i++ {
		if pcJmpToNextTest >= 0 {
			fi.fixSbx(pcJmpToNextTest, fi.pc()-pcJmpToNextTest)
		}

		oldRegs := fi.usedRegs
		a, _ := expToOpArg(fi, node.Exps[i], ARG_REG)
		fi.usedRegs = oldRegs

		line := lastLineOf(node.Exps[i])
		fi.emitTest(line, a, 0)
		pcJmpToNextTest = fi.emitJmp(line, 0, 0)

		block := node.Blocks[i]
		fi.enterScope(false)
		cgBlock(fi, block)
		fi.closeOpenUpvals(block.LastLine)
		fi.exitScope(fi.pc() + 1)

		if i < nExps-1 || hasElse {
			pcJmpToEnds = append(pcJmpToEnds, fi.emitJmp(block.LastLine, 0, 0))
		}
	}

	if pcJmpToNextTest >= 0 {
		fi.fixSbx(pcJmpToNextTest, fi.pc()-pcJmpToNextTest)
	}

	if hasElse {
		block := node.Blocks[nExps]
		fi.enterScope(false)
		cgBlock(fi, block)
		fi.closeOpenUpvals(block.LastLine)
		fi.exitScope(fi.pc() + 1)
	}

	for _, pc := range pcJmpToEnds {
		fi.fixSbx(pc, fi.pc()-pc)
	}
}

func cgForNumStat(fi *funcInfo, node *ForNumStat) {
	fi.enterScope(true)

	cgLocalVarDeclStat(fi, &LocalVarDeclStat{
		NameList: []string{"(for index)", "(for limit)", "(for step)"},
		ExpList:  []Expr{node.InitExp, node.LimitExp, node.StepExp},
	})
	fi.addLocVar(node.VarName, fi.pc()+2)

	a := fi.usedRegs - 4
	pcForPrep := fi.emitForPrep(node.LineOfFor, a, 0)
	cgBlock(fi, node.Block)
	fi.closeOpenUpvals(node.Block.LastLine)
	pcForLoop := fi.emitForLoop(node.LineOfDo, a, 0)

	fi.fixSbx(pcForPrep, pcForLoop-pcForPrep-1)
	fi.fixSbx(pcForLoop, pcForPrep-pcForLoop)

	fi.exitScope(fi.pc() + 1)
	fi.fixEndPC("(for index)", 1)
	fi.fixEndPC("(for limit)", 1)
	fi.fixEndPC("(for step)", 1)
	fi.fixEndPC(node.VarName, 1)
}

func cgForInStat(fi *funcInfo, node *ForInStat) {
	fi.enterScope(true)

	cgLocalVarDeclStat(fi, &LocalVarDeclStat{
		NameList: []string{"(for generator)", "(for state)", "(for control)"},
		ExpList:  node.ExpList,
	})
	for _, name := range node.NameList {
		fi.addLocVar(name, fi.pc()+2)
	}

	pcJmpToTFC := fi.emitJmp(node.LineOfDo, 0, 0)
	cgBlock(fi, node.Block)
	fi.closeOpenUpvals(node.Block.LastLine)
	fi.fixSbx(pcJmpToTFC, fi.pc()-pcJmpToTFC)

	rGenerator := fi.slotOfLocVar("(for generator)")
	line := node.LineOfDo
	fi.emitTForCall(line, rGenerator, len(node.NameList))
	fi.emitTForLoop(line, rGenerator+2, pcJmpToTFC-fi.pc())

	fi.exitScope(fi.pc() + 1)
	fi.fixEndPC("(for generator)", 1)
	fi.fixEndPC("(for state)", 1)
	fi.fixEndPC("(for control)", 1)
	for _, name := range node.NameList {
		fi.fixEndPC(name, 1)
	}
}

func cgLocalVarDeclStat(fi *funcInfo, node *LocalVarDeclStat) {
	oldRegs := fi.usedRegs
	cgExpListN(fi, node.ExpList, len(node.NameList), node.Pos.Line)
	fi.usedRegs = oldRegs

	startPC := fi.pc() + 1
	for _, name := range node.NameList {
		fi.addLocVar(name, startPC)
	}
}

func cgAssignStat(fi *funcInfo, node *AssignStat) {
	oldRegs := fi.usedRegs
	cgExpListN(fi, node.ExpList, len(node.VarList), node.Pos.Line)

	line := node.Pos.Line
	for i, target := range node.VarList {
		assignFromReg(fi, target, oldRegs+i, line)
	}

	fi.usedRegs = oldRegs
}

// function a.b.c:d(...) ... end, lowered by the parser to an assignment
// of a function literal to the dotted/colon target; for IsMethod the
// parser has already prepended the implicit self parameter to ParList.
func cgAssignFuncStat(fi *funcInfo, node *AssignFuncStat) {
	fdExp := node.Exp

	r := fi.allocReg()
	cgFuncDefExp(fi, fdExp, r)
	assignFromReg(fi, node.Target, r, node.Pos.Line)
	fi.freeReg()
}

func assignFromReg(fi *funcInfo, target Expr, v int, line int) {
	switch t := target.(type) {
	case *NameExp:
		if r := fi.slotOfLocVar(t.Name); r >= 0 {
			fi.emitMove(line, r, v)
		} else if idx := fi.indexOfUpval(t.Name); idx >= 0 {
			fi.emitSetUpval(line, v, idx)
		} else {
			envIdx := fi.indexOfUpval("_ENV")
			kIdx := 0x100 + fi.indexOfConstant(t.Name)
			fi.emitSetTabUp(line, envIdx, kIdx, v)
		}
	case *TableAccessExp:
		oldRegs := fi.usedRegs
		tReg := fi.allocReg()
		cgExp(fi, t.PrefixExp, tReg, 1)
		kReg := fi.allocReg()
		cgExp(fi, t.KeyExp, kReg, 1)
		fi.emitSetTable(line, tReg, kReg, v)
		fi.usedRegs = oldRegs
	}
}

// cgExpListN evaluates exps into n freshly allocated, consecutive
// registers: a trailing vararg/call expands to fill any shortfall, a
// shortfall with no such expansion is padded with nil, and values past n
// are discarded.
func cgExpListN(fi *funcInfo, exps []Expr, n int, line int) {
	nExps := len(exps)
	if nExps == 0 {
		if n > 0 {
			a := fi.allocRegs(n)
			fi.emitLoadNil(line, a, n)
		}
		return
	}

	multRet := isVarargOrFuncCall(exps[nExps-1])
	for i, exp := range exps {
		a := fi.allocReg()
		if i == nExps-1 && multRet {
			want := -1
			if n > nExps-1 {
				want = n - nExps + 1
			}
			cgExp(fi, exp, a, want)
			if want > 1 {
				fi.allocRegs(want - 1)
			}
		} else {
			cgExp(fi, exp, a, 1)
		}
	}

	if n > nExps && !multRet {
		a := fi.allocRegs(n - nExps)
		fi.emitLoadNil(line, a, n-nExps)
	}
}
