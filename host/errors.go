package host

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"

	. "github.com/embedlua/golua/api"
	"github.com/embedlua/golua/compiler/lexer"
	"github.com/embedlua/golua/compiler/parser"
)

// CompilerError is returned by LoadChunk/Eval when the guest source
// fails to lex, parse, or compile. It is never catchable from inside the
// guest (there is no chunk to run pcall from yet); the host must check
// the error return.
type CompilerError struct {
	Message string
	Source  string
	Line    int
	Column  int
}

func (e *CompilerError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Source, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Line, e.Column, e.Message)
}

// RuntimeError is anything that goes wrong while a compiled chunk is
// actually running: a raised Lua error, a sandbox violation, a type
// error from an operator or the standard library. Inside the guest it is
// exactly what pcall/xpcall would have caught; at the host boundary it
// surfaces as this type instead.
type RuntimeError struct {
	Message string
	// Value is the original Lua error value (often a string, but Lua
	// allows error() to raise any value); Message is its string form.
	Value any
	// Source and Line are the innermost trace frame's position, when
	// one was captured; both are zero otherwise.
	Source string
	Line   int
	// Trace is the best-effort reconstructed call chain, innermost
	// frame first.
	Trace []TraceEntry
}

func (e *RuntimeError) Error() string { return e.Message }

// TraceEntry is one frame of RuntimeError's reconstructed call chain.
type TraceEntry struct {
	// FuncName is "main chunk" for a main chunk's frame and empty for
	// every other frame; names of Lua functions are not recorded.
	FuncName string
	Source   string
	Line     int
	// Args is a rendered snapshot of the frame's parameter registers at
	// the moment the error was caught.
	Args string
}

// newRuntimeError builds a RuntimeError from a failed PCall's error
// value, filling in Source/Line/Trace from the state's best-effort
// captured call chain.
func newRuntimeError(ls LkState, val any) *RuntimeError {
	re := &RuntimeError{Message: fmt.Sprint(val), Value: val}

	frames := ls.LastTrace()
	if len(frames) == 0 {
		return re
	}

	re.Source = frames[0].Source
	re.Line = frames[0].Line
	re.Trace = make([]TraceEntry, len(frames))
	for i, f := range frames {
		re.Trace[i] = TraceEntry{
			FuncName: f.FuncName,
			Source:   f.Source,
			Line:     f.Line,
			Args:     snapshotArgs(f.Args),
		}
	}
	return re
}

// InvalidIndexError is raised by Set/Get when a non-final path segment
// names something that already exists but is not a table.
type InvalidIndexError struct {
	Path    string
	Segment string
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("invalid_index: %q in path %q is not a table", e.Segment, e.Path)
}

// classify turns a recovered panic value (from the compiler or the VM)
// into the host-facing error taxonomy: lex/parse/compile failures
// become *CompilerError, everything else becomes *RuntimeError.
func classify(recovered any) error {
	switch v := recovered.(type) {
	case *lexer.Error:
		return &CompilerError{Message: v.Msg, Source: v.ChunkName, Line: v.Pos.Line, Column: v.Pos.Column}
	case *parser.SyntaxError:
		return &CompilerError{Message: v.Msg, Source: v.ChunkName, Line: v.Pos.Line, Column: v.Pos.Column}
	case *CompilerError:
		return v
	case *RuntimeError:
		return v
	case error:
		return &RuntimeError{Message: v.Error(), Value: v}
	default:
		return &RuntimeError{Message: fmt.Sprintf("%v", v), Value: v}
	}
}

// snapshotArgs renders one trace frame's argument snapshot (a Lua
// frame's parameter registers, or a Go frame's stack slots) for
// inclusion in a reconstructed stack trace, using a real pretty-printer
// (go-spew) instead of ad hoc %#v so cyclic or deeply nested values
// don't produce unreadable traces.
func snapshotArgs(args []any) string {
	return spew.Sdump(args)
}
