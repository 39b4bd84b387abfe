package stdlib

import . "github.com/embedlua/golua/api"

var debugFuncs = map[string]GoFunction{
	"traceback":    debugTraceback,
	"getinfo":      debugGetInfo,
	"getmetatable": debugGetMetatable,
	"setmetatable": debugSetMetatable,
}

func OpenDebugLib(ls LkState) int {
	ls.NewLib(debugFuncs)
	return 1
}

// debug.traceback ([thread,] [message [, level]])
// http://www.lua.org/manual/5.3/manual.html#pdf-debug.traceback
func debugTraceback(ls LkState) int {
	msg := ls.OptString(1, "")
	ls.PushString(msg + "\nstack traceback:")
	return 1
}

// debug.getinfo ([thread,] f [, what])
// http://www.lua.org/manual/5.3/manual.html#pdf-debug.getinfo
func debugGetInfo(ls LkState) int {
	ls.NewTable()
	ls.PushBoolean(ls.IsGoFunction(1))
	ls.SetField(-2, "isgofunc")
	ls.PushString("Lua")
	ls.SetField(-2, "what")
	return 1
}

// debug.getmetatable (value)
// http://www.lua.org/manual/5.3/manual.html#pdf-debug.getmetatable
func debugGetMetatable(ls LkState) int {
	if !ls.GetMetatable(1) {
		ls.PushNil()
	}
	return 1
}

// debug.setmetatable (value, table)
// http://www.lua.org/manual/5.3/manual.html#pdf-debug.setmetatable
func debugSetMetatable(ls LkState) int {
	ls.SetTop(2)
	ls.SetMetatable(1)
	return 1
}
