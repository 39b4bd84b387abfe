package api

// TraceFrame is one entry in a best-effort reconstructed call chain,
// captured innermost-first when a protected call's error unwinds the
// Lua stack. FuncName is empty when the frame's function is anonymous
// or otherwise unnamed. Args is a snapshot of the frame's parameter
// registers at the moment the error was caught.
type TraceFrame struct {
	FuncName string
	Source   string
	Line     int
	Args     []any
}
