package consts

// VERSION is the value exposed as the Lua global _VERSION.
const VERSION = "Lua 5.3"

// BuiltinPrefix tags chunk names loaded from the embedded module set
// rather than from disk, the way "[C]" tags a native frame.
const BuiltinPrefix = "[builtin] "
