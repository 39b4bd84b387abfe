package state

func (self *lkState) PC() int {
	return self.stack.pc
}

func (self *lkState) AddPC(n int) {
	self.stack.lastPC = self.stack.pc
	self.stack.pc += n
}

func (self *lkState) Fetch() uint32 {
	i := self.stack.closure.proto.Code[self.stack.pc]
	self.stack.lastPC = self.stack.pc
	self.stack.pc++
	return i
}

func (self *lkState) GetConst(idx int) {
	c := self.stack.closure.proto.Constants[idx]
	self.stack.push(c)
}

func (self *lkState) GetRK(rk int) {
	if rk > 0xFF { // constant
		self.GetConst(rk & 0xFF)
	} else { // register
		self.PushValue(rk + 1)
	}
}

func (self *lkState) RegisterCount() int {
	return int(self.stack.closure.proto.MaxStackSize)
}

func (self *lkState) LoadVararg(n int) {
	if n < 0 {
		n = len(self.stack.varargs)
	}

	self.stack.check(n)
	self.stack.pushN(self.stack.varargs, n)
}

func (self *lkState) LoadProto(idx int) {
	stack := self.stack
	subProto := stack.closure.proto.Protos[idx]
	closure := newLuaClosure(subProto)
	stack.push(closure)

	for i := range subProto.Upvalues {
		uvIdx := int(subProto.Upvalues[i].Idx)
		if subProto.Upvalues[i].Instack == 1 {
			if stack.openuvs == nil {
				stack.openuvs = map[int]*upvalCell{}
			}

			if cell, found := stack.openuvs[uvIdx]; found {
				closure.upVals[i] = cell
			} else {
				cell := &upvalCell{stack: stack, idx: uvIdx}
				stack.openuvs[uvIdx] = cell
				closure.upVals[i] = cell
			}
		} else {
			closure.upVals[i] = stack.closure.upVals[uvIdx]
		}
	}
}

// CloseUpvalues detaches every open upvalue cell at or above register a
// from this frame's stack slots, migrating its current value into the
// cell itself. Closures that already captured the cell keep the same
// pointer, so they keep observing the frozen value; any later closure
// created over the same register gets a fresh cell instead of reusing
// this one (e.g. each loop iteration's local gets its own capture).
func (self *lkState) CloseUpvalues(a int) {
	for i, cell := range self.stack.openuvs {
		if i >= a-1 {
			cell.close()
			delete(self.stack.openuvs, i)
		}
	}
}
