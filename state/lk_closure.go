package state

import (
	"fmt"

	. "github.com/embedlua/golua/api"
	"github.com/embedlua/golua/binchunk"
)

type lkClosure struct {
	proto  *binchunk.Prototype // lua closure
	goFunc GoFunction          // go closure
	upVals []*upvalCell
}

// upvalCell is the shared storage behind one upvalue. While open it
// aliases a slot in the owning stack frame, so every closure that
// captured it and the frame itself observe the same mutations. close()
// migrates the current value into the cell so it keeps working after
// the frame (or loop iteration) that hosted it is gone.
type upvalCell struct {
	stack  *lkStack
	idx    int
	closed bool
	val    any
}

func (c *upvalCell) get() any {
	if c.closed {
		return c.val
	}
	return c.stack.slots[c.idx]
}

func (c *upvalCell) set(v any) {
	if c.closed {
		c.val = v
		return
	}
	c.stack.slots[c.idx] = v
}

func (c *upvalCell) close() {
	if c.closed {
		return
	}
	c.val = c.stack.slots[c.idx]
	c.closed = true
	c.stack = nil
}

func newLuaClosure(proto *binchunk.Prototype) *lkClosure {
	c := &lkClosure{proto: proto}
	if nUpvals := len(proto.Upvalues); nUpvals > 0 {
		c.upVals = make([]*upvalCell, nUpvals)
	}
	return c
}

func newGoClosure(f GoFunction, nUpvals int) *lkClosure {
	c := &lkClosure{goFunc: f}
	if nUpvals > 0 {
		c.upVals = make([]*upvalCell, nUpvals)
	}
	return c
}

func (c *lkClosure) String() string {
	if c.goFunc != nil {
		return fmt.Sprintf("%p", c.goFunc)
	}
	return fmt.Sprintf("%p", c.proto)
}
