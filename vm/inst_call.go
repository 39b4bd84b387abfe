package vm

import . "github.com/embedlua/golua/api"

// R(A+1) := R(B); R(A) := R(B)[RK(C)]
func self(i Instruction, vm LkVM) {
	a, b, c := i.ABC()
	a += 1
	b += 1

	vm.Copy(b, a+1)
	vm.GetRK(c)
	vm.GetTable(b)
	vm.Replace(a)
}

// R(A), ... ,R(A+C-2) := R(A)(R(A+1), ... ,R(A+B-1))
func call(i Instruction, vm LkVM) {
	a, b, c := i.ABC()
	a += 1

	nArgs := _pushFuncAndArgs(a, b, vm)
	vm.Call(nArgs, c-1)
	_popResults(a, c, vm)
}

// return R(A)(R(A+1), ... ,R(A+B-1))
func tailCall(i Instruction, vm LkVM) {
	a, b, _ := i.ABC()
	a += 1

	nArgs := _pushFuncAndArgs(a, b, vm)
	vm.Call(nArgs, LK_MULTRET)
	_popResults(a, 0, vm)
}

// return R(A), ... ,R(A+B-2)
func _return(i Instruction, vm LkVM) {
	a, b, _ := i.ABC()
	a += 1

	if b == 1 {
		// no results
	} else if b > 1 {
		vm.CheckStack(b - 1)
		for j := a; j <= a+b-2; j++ {
			vm.PushValue(j)
		}
	} else {
		fixStack(a, vm)
	}
}

// R(A) := closure(KPROTO[Bx])
func closure(i Instruction, vm LkVM) {
	a, bx := i.ABx()
	a += 1

	vm.LoadProto(bx)
	vm.Replace(a)
}

// R(A), R(A+1), ..., R(A+B-2) = vararg
func vararg(i Instruction, vm LkVM) {
	a, b, _ := i.ABC()
	a += 1

	if b != 1 {
		vm.LoadVararg(b - 1)
		_popResults(a, b, vm)
	}
}

func _pushFuncAndArgs(a, b int, vm LkVM) (nArgs int) {
	if b >= 1 {
		vm.CheckStack(b)
		for i := a; i < a+b; i++ {
			vm.PushValue(i)
		}
		return b - 1
	}

	fixStack(a, vm)
	return vm.GetTop() - vm.RegisterCount() - 1
}

// fixStack moves a multi-result expansion sitting above the register
// window (left there by a preceding CALL/VARARG with open results) down
// next to the function/args being assembled at a.
func fixStack(a int, vm LkVM) {
	x := int(vm.ToInteger(-1))
	vm.Pop(1)

	vm.CheckStack(x - a)
	for i := a; i < x; i++ {
		vm.PushValue(i)
	}
	vm.Rotate(vm.RegisterCount()+1, x-a)
}

func _popResults(a, c int, vm LkVM) {
	if c == 1 {
		// no results
	} else if c > 1 {
		for i := a + c - 2; i >= a; i-- {
			vm.Replace(i)
		}
	} else {
		// leave results open on the stack, remembering where they start
		vm.CheckStack(1)
		vm.PushInteger(int64(a))
	}
}
