package state

import (
	"fmt"

	. "github.com/embedlua/golua/api"
	"github.com/embedlua/golua/binchunk"
)

// lineForPC looks up the source line of the instruction at pc in a
// prototype's per-instruction line map, falling back to the function's
// defining line if the map is short (e.g. a main chunk compiled before
// LineInfo was populated for every instruction).
func lineForPC(proto *binchunk.Prototype, pc int) int {
	if pc >= 0 && pc < len(proto.LineInfo) {
		return int(proto.LineInfo[pc])
	}
	return int(proto.LineDefined)
}

// frameLocation reports the source name and current line of a call
// frame, or ("", 0) if the frame has no Lua prototype (a Go closure's
// own frame, or the implicit frame below the main chunk).
func frameLocation(st *lkStack) (source string, line int) {
	if st == nil || st.closure == nil || st.closure.proto == nil {
		return "", 0
	}
	return st.closure.proto.Source, lineForPC(st.closure.proto, st.lastPC)
}

// Where returns "source:line: " for the frame level levels above the
// running Go function (level 1 is the Lua function that called it, e.g.
// the caller of error()), matching luaL_where. It returns "" when the
// level walks off the top of the stack or lands on a Go closure, since
// neither has a meaningful source position.
func (self *lkState) Where(level int) string {
	st := self.stack
	for i := 0; i < level && st != nil; i++ {
		st = st.prev
	}
	source, line := frameLocation(st)
	if source == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d: ", source, line)
}

// LastTrace returns the best-effort call chain captured by the most
// recent PCall that caught an error, innermost frame first. It is
// overwritten by every failing PCall and is meaningless after a PCall
// that succeeded.
func (self *lkState) LastTrace() []TraceFrame {
	return self.lastTrace
}

// captureTrace walks frames from self.stack up to (but not including)
// floor, recording each frame's function name ("main chunk" for a main
// chunk, empty for every other frame; names of Lua functions are not
// looked up), source position, and a snapshot of its parameter
// registers. Called from PCall's recover handler before the frames are
// unwound, since that's the only point the chain is still intact.
func (self *lkState) captureTrace(floor *lkStack) {
	var frames []TraceFrame
	for st := self.stack; st != nil && st != floor; st = st.prev {
		if st.closure == nil {
			continue
		}

		var name, source string
		var line int
		var args []any

		if st.closure.proto != nil {
			source, line = frameLocation(st)
			nParams := int(st.closure.proto.NumParams)
			args = make([]any, 0, nParams)
			for i := 0; i < nParams && i < len(st.slots); i++ {
				args = append(args, st.slots[i])
			}
			if st.closure.proto.LineDefined == 0 {
				name = "main chunk"
			}
		} else {
			args = append(args, st.slots[:st.top]...)
		}

		frames = append(frames, TraceFrame{FuncName: name, Source: source, Line: line, Args: args})
	}
	self.lastTrace = frames
}
