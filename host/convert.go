package host

import (
	"fmt"
	"strconv"

	. "github.com/embedlua/golua/api"
)

// Encode pushes a host value onto the VM's stack as its Lua equivalent
// and returns its absolute stack index. Scalars (nil, bool, int, int64,
// float64, string), slices/arrays, and maps are supported, mirroring
// api.LkState.Push; see DESIGN.md for why this stays on Push rather than
// a reflection-heavy struct mapper.
func (h *VM) Encode(value any) int {
	h.ls.Push(value)
	return h.ls.GetTop()
}

// Decode reads the Lua value at idx back into a host Go value: nil,
// bool, int64, float64, string, []any (for table with a pure 1..n
// integer key sequence), or map[string]any (otherwise).
func (h *VM) Decode(idx int) any {
	ls := h.ls
	idx = ls.AbsIndex(idx)
	switch ls.Type(idx) {
	case LK_TNIL:
		return nil
	case LK_TBOOLEAN:
		return ls.ToBoolean(idx)
	case LK_TNUMBER:
		if ls.IsInteger(idx) {
			return ls.ToInteger(idx)
		}
		return ls.ToNumber(idx)
	case LK_TSTRING:
		return ls.ToString(idx)
	case LK_TTABLE:
		return h.decodeTable(idx)
	default:
		return fmt.Sprintf("<%s>", ls.TypeName2(idx))
	}
}

func (h *VM) decodeTable(idx int) any {
	ls := h.ls
	idx = ls.AbsIndex(idx)

	var arr []any
	m := map[string]any{}
	expected := int64(1)
	pureArray := true

	top0 := ls.GetTop()
	ls.PushNil()
	for ls.Next(idx) {
		kIdx := ls.GetTop() - 1
		vIdx := ls.GetTop()
		key := h.Decode(kIdx)
		val := h.Decode(vIdx)
		if ik, ok := key.(int64); ok && pureArray && ik == expected {
			arr = append(arr, val)
			expected++
		} else {
			pureArray = false
			m[fmt.Sprintf("%v", key)] = val
		}
		ls.Pop(1) // drop value, keep key for the next Next
	}
	ls.SetTop(top0)

	if pureArray {
		return arr
	}
	for i, v := range arr {
		m[strconv.Itoa(i+1)] = v
	}
	return m
}
