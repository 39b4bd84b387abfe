package host

import (
	"strings"

	. "github.com/embedlua/golua/api"
)

// pushPath walks a dotted global path, leaving the final value on top of
// the stack. It reports found=false (with err=nil) if any segment is
// simply absent (nil), and returns an *InvalidIndexError if a
// non-final segment exists but isn't a table.
func (h *VM) pushPath(path string) (found bool, err error) {
	ls := h.ls
	segs := strings.Split(path, ".")

	ls.PushGlobalTable()
	cur := ls.GetTop()
	for i, seg := range segs {
		typ := ls.GetField(cur, seg)
		cur = ls.GetTop()
		if typ == LK_TNIL {
			return false, nil
		}
		if i < len(segs)-1 && typ != LK_TTABLE {
			return false, &InvalidIndexError{Path: path, Segment: seg}
		}
	}
	return true, nil
}

// Get reads a nested dotted global path (e.g. "a.b.c"), returning nil if
// any segment along the way is missing. It fails with *InvalidIndexError
// if a non-final segment names something that isn't a table.
func (h *VM) Get(path string) (value any, err error) {
	ls := h.ls
	top0 := ls.GetTop()
	defer ls.SetTop(top0)

	found, err := h.pushPath(path)
	if err != nil || !found {
		return nil, err
	}
	return h.Decode(-1), nil
}

// Set writes value at a nested dotted global path, creating intermediate
// tables as needed. It fails with *InvalidIndexError if a non-final path
// element already exists as a non-table.
func (h *VM) Set(path string, value any) error {
	ls := h.ls
	top0 := ls.GetTop()
	defer ls.SetTop(top0)

	segs := strings.Split(path, ".")
	ls.PushGlobalTable()
	cur := ls.GetTop()

	for i, seg := range segs {
		last := i == len(segs)-1
		if last {
			ls.Push(value)
			ls.SetField(cur, seg)
			return nil
		}

		typ := ls.GetField(cur, seg)
		if typ == LK_TNIL {
			ls.Pop(1)
			ls.CreateTable(0, 0)
			ls.PushValue(-1)
			ls.SetField(cur, seg)
		} else if typ != LK_TTABLE {
			return &InvalidIndexError{Path: path, Segment: seg}
		}
		cur = ls.GetTop()
	}
	return nil
}
