package stdlib

import (
	"strconv"
	"strings"

	. "github.com/embedlua/golua/api"
	"github.com/embedlua/golua/consts"
	"github.com/embedlua/golua/term"
)

var baseFuncs = map[string]GoFunction{
	"assert":       baseAssert,
	"error":        baseError,
	"ipairs":       baseIPairs,
	"pairs":        basePairs,
	"next":         baseNext,
	"load":         baseLoad,
	"loadfile":     baseLoadFile,
	"dofile":       baseDoFile,
	"pcall":        basePCall,
	"xpcall":       baseXPCall,
	"select":       baseSelect,
	"rawget":       baseRawGet,
	"rawset":       baseRawSet,
	"rawequal":     baseRawEqual,
	"setmetatable": baseSetMetatable,
	"getmetatable": baseGetMetatable,
	"type":         baseType,
	"tostring":     baseToString,
	"tonumber":     baseToNumber,
	"print":        basePrint,
	// extra convenience globals, not part of the standard language
	// surface but harmless to expose.
	"new":   baseNew,
	"input": baseInput,
	"kv":    baseKV,
}

// lua-5.3.4/src/lbaselib.c#luaopen_base()
func OpenBaseLib(ls LkState) int {
	/* open lib into global table */
	ls.PushGlobalTable()
	ls.SetFuncs(baseFuncs, 0)
	/* set global _G */
	ls.PushValue(-1)
	ls.SetField(-2, "_G")
	/* set global _VERSION */
	ls.PushString(consts.VERSION)
	ls.SetField(-2, "_VERSION")
	return 1
}

func baseNew(ls LkState) int {
	ls.CheckType(1, LK_TTABLE)
	ls.CreateTable(0, 0)
	ls.PushNil()
	for ls.Next(1) {
		ls.PushValue(-2)
		ls.PushValue(-2)
		ls.SetTable(-5)
		ls.Pop(1)
	}
	return 1
}

func baseInput(ls LkState) int {
	ls.PushString(term.ReadLine(term.ReadLineConfig{}))
	return 1
}

func baseKV(ls LkState) int {
	tb := getTable(&ls, 1)
	keys := make([]any, 0, len(tb))
	for k := range tb {
		keys = append(keys, k)
	}
	values := make([]any, 0, len(tb))
	for k := range tb {
		values = append(values, tb[k])
	}
	pushList(&ls, keys)
	pushList(&ls, values)
	return 2
}

// print (···)
// http://www.lua.org/manual/5.3/manual.html#pdf-print
// lua-5.3.4/src/lbaselib.c#luaB_print()
func basePrint(ls LkState) int {
	n := ls.GetTop() /* number of arguments */
	for i := 1; i <= n; i++ {
		if i > 1 {
			print("\t")
		}
		print(ls.ToString2(i))
		ls.Pop(1) /* pop result */
	}
	println()
	return 0
}

// assert (v [, message])
// http://www.lua.org/manual/5.3/manual.html#pdf-assert
// lua-5.3.4/src/lbaselib.c#luaB_assert()
func baseAssert(ls LkState) int {
	if ls.ToBoolean(1) { /* condition is true? */
		return ls.GetTop() /* return all arguments */
	} else { /* error */
		ls.CheckAny(1)                     /* there must be a condition */
		ls.Remove(1)                       /* remove it */
		ls.PushString("assertion failed!") /* default message */
		ls.SetTop(1)                       /* leave only message (default if no other one) */
		return baseError(ls)               /* call 'error' */
	}
}

// error (message [, level])
// http://www.lua.org/manual/5.3/manual.html#pdf-error
// lua-5.3.4/src/lbaselib.c#luaB_error()
func baseError(ls LkState) int {
	level := int(ls.OptInteger(2, 1))
	ls.SetTop(1)
	if ls.Type(1) == LK_TSTRING && level > 0 {
		if where := ls.Where(level); where != "" {
			ls.PushString(where + ls.ToString(1)) /* add position information */
			ls.Replace(1)
		}
	}
	return ls.Error()
}

// ipairs (t)
// http://www.lua.org/manual/5.3/manual.html#pdf-ipairs
// lua-5.3.4/src/lbaselib.c#luaB_ipairs()
func baseIPairs(ls LkState) int {
	ls.CheckAny(1)
	ls.PushGoFunction(iPairsAux) /* iteration function */
	ls.PushValue(1)              /* state */
	ls.PushInteger(0)            /* initial value */
	return 3
}

func iPairsAux(ls LkState) int {
	i := ls.CheckInteger(2) + 1
	ls.PushInteger(i)
	if ls.GetI(1, i) == LK_TNIL {
		return 1
	} else {
		return 2
	}
}

// pairs (t)
// http://www.lua.org/manual/5.3/manual.html#pdf-pairs
// lua-5.3.4/src/lbaselib.c#luaB_pairs()
func basePairs(ls LkState) int {
	ls.CheckAny(1)
	if ls.GetMetafield(1, "__range") == LK_TNIL { /* no metamethod? */
		ls.PushGoFunction(baseNext) /* will return generator, */
		ls.PushValue(1)             /* state, */
		ls.PushNil()
	} else {
		ls.PushValue(1) /* argument 'self' to metamethod */
		ls.Call(1, 3)   /* get 3 values from metamethod */
	}
	return 3
}

// next (table [, index])
// http://www.lua.org/manual/5.3/manual.html#pdf-next
// lua-5.3.4/src/lbaselib.c#luaB_next()
func baseNext(ls LkState) int {
	ls.CheckType(1, LK_TTABLE)
	ls.SetTop(2) /* create a 2nd argument if there isn't one */
	if ls.Next(1) {
		return 2
	} else {
		ls.PushNil()
		return 1
	}
}

// load (chunk [, chunkname [, mode [, env]]])
// http://www.lua.org/manual/5.3/manual.html#pdf-load
// lua-5.3.4/src/lbaselib.c#luaB_load()
func baseLoad(ls LkState) int {
	var status int
	chunk, isStr := ls.ToStringX(1)
	mode := ls.OptString(3, "bt")
	env := 0 /* 'env' index or 0 if no 'env' */
	if !ls.IsNone(4) {
		env = 4
	}
	if isStr { /* loading a string? */
		chunkname := ls.OptString(2, chunk)
		status = func() (st int) {
			defer func() { /* a compile error becomes nil plus message */
				if r := recover(); r != nil {
					e, ok := r.(error)
					if !ok {
						panic(r)
					}
					ls.PushString(e.Error())
					st = LK_ERRSYNTAX
				}
			}()
			return ls.Load([]byte(chunk), chunkname, mode)
		}()
	} else { /* loading from a reader function */
		panic("loading from a reader function") // todo
	}
	return loadAux(ls, status, env)
}

// lua-5.3.4/src/lbaselib.c#load_aux()
func loadAux(ls LkState, status, envIdx int) int {
	if status == LK_OK {
		if envIdx != 0 { /* 'env' parameter? */
			panic("todo!")
		}
		return 1
	} else { /* error (message is on top of the stack) */
		ls.PushNil()
		ls.Insert(-2) /* put before error message */
		return 2      /* return nil plus error message */
	}
}

// loadfile ([filename [, mode [, env]]])
// http://www.lua.org/manual/5.3/manual.html#pdf-loadfile
// lua-5.3.4/src/lbaselib.c#luaB_loadfile()
func baseLoadFile(ls LkState) int {
	fname := ls.OptString(1, "")
	mode := ls.OptString(2, "bt")
	env := 0 /* 'env' index or 0 if no 'env' */
	if !ls.IsNone(3) {
		env = 3
	}
	status := ls.LoadFileX(fname, mode)
	return loadAux(ls, status, env)
}

// dofile ([filename])
// http://www.lua.org/manual/5.3/manual.html#pdf-dofile
// lua-5.3.4/src/lbaselib.c#luaB_dofile()
func baseDoFile(ls LkState) int {
	fname := ls.OptString(1, "")
	ls.SetTop(1)
	if ls.LoadFile(fname) != LK_OK {
		return ls.Error()
	}
	ls.Call(0, LK_MULTRET)
	return ls.GetTop() - 1
}

// pcall (f [, arg1, ···])
// http://www.lua.org/manual/5.3/manual.html#pdf-pcall
func basePCall(ls LkState) int {
	nArgs := ls.GetTop() - 1
	status := ls.PCall(nArgs, -1, 0)
	ls.PushBoolean(status == LK_OK)
	ls.Insert(1)
	return ls.GetTop()
}

// rawget (table, index)
// http://www.lua.org/manual/5.3/manual.html#pdf-rawget
// lua-5.3.4/src/lbaselib.c#luaB_rawget()
func baseRawGet(ls LkState) int {
	ls.CheckType(1, LK_TTABLE)
	ls.CheckAny(2)
	ls.SetTop(2)
	ls.RawGet(1)
	return 1
}

// rawset (table, index, value)
// http://www.lua.org/manual/5.3/manual.html#pdf-rawset
// lua-5.3.4/src/lbaselib.c#luaB_rawset()
func baseRawSet(ls LkState) int {
	ls.CheckType(1, LK_TTABLE)
	ls.CheckAny(2)
	ls.CheckAny(3)
	ls.SetTop(3)
	ls.RawSet(1)
	return 1
}

// type (v)
// http://www.lua.org/manual/5.3/manual.html#pdf-type
// lua-5.3.4/src/lbaselib.c#luaB_type()
func baseType(ls LkState) int {
	t := ls.Type(1)
	ls.ArgCheck(t != LK_TNONE, 1, "value expected")
	ls.PushString(ls.TypeName(t))
	return 1
}

// tostring (v)
// http://www.lua.org/manual/5.3/manual.html#pdf-tostring
// lua-5.3.4/src/lbaselib.c#luaB_tostring()
func baseToString(ls LkState) int {
	ls.CheckAny(1)
	ls.PushString(ls.ToString2(1))
	return 1
}

// xpcall (f, msgh [, arg1, ···])
// http://www.lua.org/manual/5.3/manual.html#pdf-xpcall
// lua-5.3.4/src/lbaselib.c#luaB_xpcall()
func baseXPCall(ls LkState) int {
	n := ls.GetTop()
	ls.ArgCheck(n >= 2, 2, "value expected")
	ls.CheckAny(1)

	ls.PushValue(1)
	for i := 3; i <= n; i++ {
		ls.PushValue(i)
	}
	status := ls.PCall(n-2, -1, 0)

	if status == LK_OK {
		nres := ls.GetTop() - n
		ls.PushBoolean(true)
		ls.Insert(n + 1)
		for i := 0; i < n; i++ {
			ls.Remove(1)
		}
		return nres + 1
	}

	ls.PushBoolean(false)
	ls.PushValue(2)
	ls.PushValue(n + 1)
	ls.Call(1, 1)
	ls.Remove(n + 1)
	for i := 0; i < n; i++ {
		ls.Remove(1)
	}
	return 2
}

// select (n, ···)
// http://www.lua.org/manual/5.3/manual.html#pdf-select
// lua-5.3.4/src/lbaselib.c#luaB_select()
func baseSelect(ls LkState) int {
	n := ls.GetTop()
	if ls.Type(1) == LK_TSTRING && ls.CheckString(1) == "#" {
		ls.PushInteger(int64(n - 1))
		return 1
	}

	i := ls.CheckInteger(1)
	if i < 0 {
		i = int64(n) + i
	} else if i == 0 {
		return ls.Error2("index out of range")
	}
	ls.ArgCheck(i >= 1, 1, "index out of range")
	if i > int64(n-1) {
		return 0
	}
	for k := int64(0); k < i; k++ {
		ls.Remove(1)
	}
	return n - int(i)
}

// rawequal (v1, v2)
// http://www.lua.org/manual/5.3/manual.html#pdf-rawequal
func baseRawEqual(ls LkState) int {
	ls.CheckAny(1)
	ls.CheckAny(2)
	ls.PushBoolean(ls.RawEqual(1, 2))
	return 1
}

// setmetatable (table, metatable)
// http://www.lua.org/manual/5.3/manual.html#pdf-setmetatable
func baseSetMetatable(ls LkState) int {
	t := ls.Type(2)
	ls.CheckType(1, LK_TTABLE)
	ls.ArgCheck(t == LK_TNIL || t == LK_TTABLE, 2, "nil or table expected")
	ls.SetTop(2)
	ls.SetMetatable(1)
	return 1
}

// getmetatable (object)
// http://www.lua.org/manual/5.3/manual.html#pdf-getmetatable
func baseGetMetatable(ls LkState) int {
	ls.CheckAny(1)
	if !ls.GetMetatable(1) {
		ls.PushNil()
	}
	return 1
}

// tonumber (e [, base])
// http://www.lua.org/manual/5.3/manual.html#pdf-tonumber
// lua-5.3.4/src/lbaselib.c#luaB_tonumber()
func baseToNumber(ls LkState) int {
	if ls.IsNoneOrNil(2) { /* standard conversion? */
		ls.CheckAny(1)
		if ls.Type(1) == LK_TNUMBER { /* already a number? */
			ls.SetTop(1) /* yes; return it */
			return 1
		} else {
			if s, ok := ls.ToStringX(1); ok {
				if ls.StringToNumber(s) {
					return 1 /* successful conversion to number */
				} /* else not a number */
			}
		}
	} else {
		ls.CheckType(1, LK_TSTRING) /* no numbers as strings */
		s := strings.TrimSpace(ls.ToString(1))
		base := int(ls.CheckInteger(2))
		ls.ArgCheck(2 <= base && base <= 36, 2, "base out of range")
		if n, err := strconv.ParseInt(s, base, 64); err == nil {
			ls.PushInteger(n)
			return 1
		} /* else not a number */
	} /* else not a number */
	ls.PushNil() /* not a number */
	return 1
}
