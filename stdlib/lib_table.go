package stdlib

import (
	"sort"
	"strings"

	. "github.com/embedlua/golua/api"
)

var tableLib = map[string]GoFunction{
	"len":      tableLen,
	"keys":     tableKeys,
	"values":   tableValues,
	"contains": tableHave,
	"insert":   tableInsert,
	"remove":   tableRemove,
	"concat":   tableConcat,
	"pack":     tablePack,
	"unpack":   tableUnpack,
	"sort":     tableSort,
	"move":     tableMove,
}

func OpenTableLib(ls LkState) int {
	ls.NewLib(tableLib)
	return 1
}

func tableLen(ls LkState) int {
	t := CheckTable(&ls, 1)
	ls.PushInteger(int64(len(t)))
	return 1
}

func tableKeys(ls LkState) int {
	t := CheckTable(&ls, 1)
	keys := make([]interface{}, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	pushList(&ls, keys)
	return 1
}

func tableValues(ls LkState) int {
	t := CheckTable(&ls, 1)
	values := make([]interface{}, 0, len(t))
	for _, v := range t {
		values = append(values, v)
	}
	pushList(&ls, values)
	return 1
}

func tableHave(ls LkState) int {
	t := CheckTable(&ls, 1)
	key := ls.CheckString(2)
	_, okKey := t[key]
	okValue := false
	for _, v := range t {
		if s, ok := v.(string); ok && s == key {
			okValue = true
			break
		}
	}
	ls.PushBoolean(okKey)
	ls.PushBoolean(okValue)
	return 2
}

// table.insert (list, [pos,] value)
// lua-5.3.4/src/ltablib.c#tinsert()
func tableInsert(ls LkState) int {
	e := ls.Len2(1) + 1 /* first empty element */
	var pos int64
	switch ls.GetTop() {
	case 2: /* called with only 2 arguments */
		pos = e /* insert new element at the end */
	case 3:
		pos = ls.CheckInteger(2) /* 2nd argument is the position */
		if pos < 1 || pos > e {
			ls.Error2("bad argument #2 to 'insert' (position out of bounds)")
		}
		for i := e; i > pos; i-- { /* move up elements */
			ls.GetI(1, i-1)
			ls.SetI(1, i)
		}
	default:
		return ls.Error2("wrong number of arguments to 'insert'")
	}
	ls.SetI(1, pos) /* t[pos] = v */
	return 0
}

// table.remove (list [, pos])
// lua-5.3.4/src/ltablib.c#tremove()
func tableRemove(ls LkState) int {
	size := ls.Len2(1)
	pos := ls.OptInteger(2, size)

	if pos != size { /* validate 'pos' if given */
		if pos < 1 || pos > size+1 {
			ls.Error2("bad argument #1 to 'remove' (position out of bounds)")
		}
	}

	if pos >= size { /* nothing to move */
		ls.GetI(1, pos)
		ls.PushNil()
		ls.SetI(1, pos)
		return 1
	}

	ls.GetI(1, pos)
	for ; pos < size; pos++ {
		ls.GetI(1, pos+1)
		ls.SetI(1, pos)
	}
	ls.PushNil()
	ls.SetI(1, pos)
	return 1
}

// table.concat (list [, sep [, i [, j]]])
// lua-5.3.4/src/ltablib.c#tconcat()
func tableConcat(ls LkState) int {
	sep := ls.OptString(2, "")
	i := ls.OptInteger(3, 1)
	j := ls.OptInteger(4, ls.Len2(1))

	var b strings.Builder
	for ; i <= j; i++ {
		ls.GetI(1, i)
		if !ls.IsString(-1) {
			ls.Error2("invalid value (at index %d) in table for 'concat'", i)
		}
		b.WriteString(ls.ToString(-1))
		ls.Pop(1)
		if i != j {
			b.WriteString(sep)
		}
	}

	ls.PushString(b.String())
	return 1
}

// table.pack (···)
// lua-5.3.4/src/ltablib.c#pack()
func tablePack(ls LkState) int {
	n := ls.GetTop() /* number of elements to pack */
	ls.CreateTable(n, 1)
	ls.Insert(1)
	for i := n; i >= 1; i-- {
		ls.SetI(1, int64(i))
	}
	ls.PushInteger(int64(n))
	ls.SetField(1, "n") /* t.n = number of elements */
	return 1
}

// table.unpack (list [, i [, j]])
// lua-5.3.4/src/lbaselib.c#luaB_unpack()
func tableUnpack(ls LkState) int {
	i := ls.OptInteger(2, 1)
	j := ls.OptInteger(3, ls.Len2(1))
	if i > j {
		return 0
	}
	n := j - i + 1
	if n <= 0 || !ls.CheckStack(int(n)) {
		return ls.Error2("too many results to unpack")
	}
	for ; i <= j; i++ {
		ls.GetI(1, i)
	}
	return int(n)
}

// table.sort (list [, comp])
// lua-5.3.4/src/ltablib.c#sort()
func tableSort(ls LkState) int {
	n := int(ls.Len2(1))
	hasComp := !ls.IsNoneOrNil(2)

	get := func(i int) any {
		ls.GetI(1, int64(i))
		v := ls.ToPointer(-1)
		ls.Pop(1)
		return v
	}
	set := func(i int, v any) {
		pushValue(&ls, v)
		ls.SetI(1, int64(i))
	}

	vals := make([]any, n)
	for i := 1; i <= n; i++ {
		vals[i-1] = get(i)
	}

	less := func(i, j int) bool {
		if !hasComp {
			return lessDefault(vals[i], vals[j])
		}
		ls.PushValue(2)
		pushValue(&ls, vals[i])
		pushValue(&ls, vals[j])
		ls.Call(2, 1)
		res := ls.ToBoolean(-1)
		ls.Pop(1)
		return res
	}

	// sort.SliceStable rather than a hand-rolled quicksort. An
	// inconsistent comparator is not detected and raises no error; the
	// table keeps the same elements, in an unspecified order.
	sort.SliceStable(vals, less)
	for i, v := range vals {
		set(i+1, v)
	}
	return 0
}

func lessDefault(a, b any) bool {
	switch av := a.(type) {
	case int64:
		if bv, ok := toFloat(b); ok {
			return float64(av) < bv
		}
	case float64:
		if bv, ok := toFloat(b); ok {
			return av < bv
		}
	case string:
		if bv, ok := b.(string); ok {
			return av < bv
		}
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

// table.move (a1, f, e, t [,a2])
// lua-5.3.4/src/ltablib.c#tmove()
func tableMove(ls LkState) int {
	f := ls.CheckInteger(2)
	e := ls.CheckInteger(3)
	t := ls.CheckInteger(4)
	tt := 1 /* destination table index */
	if !ls.IsNoneOrNil(5) {
		tt = 5
	}
	if e >= f {
		if t > e || t <= f || (tt != 1 && !ls.Compare(1, tt, LK_OPEQ)) {
			for i := f; i <= e; i++ {
				ls.GetI(1, i)
				ls.SetI(tt, t+(i-f))
			}
		} else {
			for i := e; i >= f; i-- {
				ls.GetI(1, i)
				ls.SetI(tt, t+(i-f))
			}
		}
	}
	ls.PushValue(tt)
	return 1
}
