package state

import (
	"fmt"
	"reflect"

	. "github.com/embedlua/golua/api"
)

// [-0, +1, –]
// http://www.lua.org/manual/5.3/manual.html#lua_pushnil
func (self *lkState) PushNil() {
	self.stack.push(nil)
}

// [-0, +1, –]
// http://www.lua.org/manual/5.3/manual.html#lua_pushboolean
func (self *lkState) PushBoolean(b bool) {
	self.stack.push(b)
}

// [-0, +1, –]
// http://www.lua.org/manual/5.3/manual.html#lua_pushinteger
func (self *lkState) PushInteger(n int64) {
	self.stack.push(n)
}

// [-0, +1, –]
// http://www.lua.org/manual/5.3/manual.html#lua_pushnumber
func (self *lkState) PushNumber(n float64) {
	self.stack.push(n)
}

// [-0, +1, m]
// http://www.lua.org/manual/5.3/manual.html#lua_pushstring
func (self *lkState) PushString(s string) {
	self.stack.push(s)
}

// [-0, +1, e]
// http://www.lua.org/manual/5.3/manual.html#lua_pushfstring
func (self *lkState) PushFString(fmtStr string, a ...interface{}) {
	str := fmt.Sprintf(fmtStr, a...)
	self.stack.push(str)
}

// [-0, +1, –]
// http://www.lua.org/manual/5.3/manual.html#lua_pushcfunction
func (self *lkState) PushGoFunction(f GoFunction) {
	self.stack.push(newGoClosure(f, 0))
}

// [-n, +1, m]
// http://www.lua.org/manual/5.3/manual.html#lua_pushcclosure
func (self *lkState) PushGoClosure(f GoFunction, n int) {
	closure := newGoClosure(f, n)
	for i := n; i > 0; i-- {
		val := self.stack.pop()
		closure.upVals[i-1] = &upvalCell{closed: true, val: val}
	}
	self.stack.push(closure)
}

// [-0, +1, –]
// http://www.lua.org/manual/5.3/manual.html#lua_pushglobaltable
func (self *lkState) PushGlobalTable() {
	global := self.registry.get(LK_RIDX_GLOBALS)
	self.stack.push(global)
}

// [-0, +1, –]
// http://www.lua.org/manual/5.3/manual.html#lua_pushthread
func (self *lkState) PushThread() bool {
	self.stack.push(self)
	return self.isMainThread()
}

// Push encodes an arbitrary host value as a Lua value and pushes it.
// Scalars push directly; slices and maps are recursively converted into a
// fresh table. This is the host->guest half of the embedding façade's
// value encoding contract.
func (self *lkState) Push(item any) {
	switch v := item.(type) {
	case nil:
		self.PushNil()
	case bool:
		self.PushBoolean(v)
	case int:
		self.PushInteger(int64(v))
	case int64:
		self.PushInteger(v)
	case float64:
		self.PushNumber(v)
	case string:
		self.PushString(v)
	case GoFunction:
		self.PushGoFunction(v)
	case *lkTable:
		self.stack.push(v)
	default:
		rv := reflect.ValueOf(item)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			self.CreateTable(rv.Len(), 0)
			for i := 0; i < rv.Len(); i++ {
				self.Push(rv.Index(i).Interface())
				self.SetI(-2, int64(i+1))
			}
		case reflect.Map:
			keys := rv.MapKeys()
			self.CreateTable(0, len(keys))
			for _, k := range keys {
				self.Push(rv.MapIndex(k).Interface())
				self.SetField(-2, fmt.Sprintf("%v", k.Interface()))
			}
		default:
			panic(fmt.Sprintf("unsupported host value type: %T", item))
		}
	}
}

// [-0, +1, –]
// PushCopyTable pushes a shallow copy of the table at idx: a new table
// whose array and keyed entries are copied from the source (nested tables
// are shared by reference, matching Lua's own table-assignment semantics).
func (self *lkState) PushCopyTable(idx int) {
	val := self.stack.get(idx)
	tbl, ok := val.(*lkTable)
	if !ok {
		panic(fmt.Sprintf("attempt to copy a %T value", val))
	}
	cp := newLkTable(len(tbl.arr), len(tbl._map))
	cp.combine(tbl)
	self.stack.push(cp)
}
