package host

import (
	"fmt"

	. "github.com/embedlua/golua/api"
)

// Call invokes target, which is either a dotted global path (string) or
// a *Chunk returned by LoadChunk, with args encoded as Lua values, and
// decodes its results back to host values.
func (h *VM) Call(target any, args []any) (results []any, err error) {
	ls := h.ls
	top0 := ls.GetTop()
	defer func() {
		if r := recover(); r != nil {
			results, err = nil, classify(r)
			ls.SetTop(top0)
		}
	}()

	switch t := target.(type) {
	case string:
		found, e := h.pushPath(t)
		if e != nil {
			return nil, e
		}
		if !found {
			return nil, fmt.Errorf("host: no such function: %q", t)
		}
		// pushPath leaves the tables it walked under the function; drop
		// them so only the call's results end up above top0.
		ls.Insert(top0 + 1)
		ls.SetTop(top0 + 1)
	case *Chunk:
		ls.LoadProto(t.proto)
	default:
		return nil, fmt.Errorf("host: unsupported call target %T", target)
	}

	for _, a := range args {
		ls.Push(a)
	}
	if ls.PCall(len(args), LK_MULTRET, 0) != LK_OK {
		val := h.Decode(-1)
		ls.Pop(1)
		return nil, newRuntimeError(ls, val)
	}

	n := ls.GetTop() - top0
	results = make([]any, n)
	for i := 0; i < n; i++ {
		results[i] = h.Decode(top0 + 1 + i)
	}
	ls.SetTop(top0)
	return results, nil
}

// HostFunc is a host-implemented function bound into the guest global
// table via Register. It receives decoded arguments and returns either a
// single value or a []any of values; any other return shape is wrapped
// as a single-value list, per the embedding façade's calling contract.
type HostFunc func(args []any) any

// Register binds fn at the given dotted global path, creating
// intermediate tables as needed (like Set).
func (h *VM) Register(path string, fn HostFunc) error {
	return h.Set(path, h.wrap(fn))
}

// RegisterWithVM is Register for host functions that also need the VM
// handle itself (to call back into the guest, read other globals, etc).
func (h *VM) RegisterWithVM(path string, fn func(vm *VM, args []any) any) error {
	return h.Register(path, func(args []any) any { return fn(h, args) })
}

func (h *VM) wrap(fn HostFunc) GoFunction {
	return func(ls LkState) int {
		n := ls.GetTop()
		args := make([]any, n)
		for i := 1; i <= n; i++ {
			args[i-1] = h.Decode(i)
		}

		result := fn(args)
		values, ok := result.([]any)
		if !ok {
			values = []any{result}
		}
		for _, v := range values {
			ls.Push(v)
		}
		return len(values)
	}
}
