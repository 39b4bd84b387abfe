package host

import (
	"fmt"
	"strings"

	. "github.com/embedlua/golua/api"
)

func defaultAndCustomPaths(opts Options) []string {
	paths := append([]string{}, DefaultSandboxedPaths...)
	paths = append(paths, opts.Sandboxed...)
	return paths
}

// applySandbox replaces every path in DefaultSandboxedPaths plus
// opts.Sandboxed, minus opts.Exclude, with a function that raises a
// RuntimeError naming the path. It runs once at VM construction, after
// OpenLibs, so it overrides whatever the standard library installed.
func (h *VM) applySandbox(opts Options) {
	excluded := make(map[string]bool, len(opts.Exclude))
	for _, p := range opts.Exclude {
		excluded[p] = true
	}

	seen := make(map[string]bool)
	for _, path := range defaultAndCustomPaths(opts) {
		if excluded[path] || seen[path] {
			continue
		}
		seen[path] = true
		h.sandboxPath(path)
	}
}

func (h *VM) sandboxPath(path string) {
	ls := h.ls
	segs := strings.Split(path, ".")
	last := segs[len(segs)-1]
	parentPath := strings.Join(segs[:len(segs)-1], ".")

	if parentPath == "" {
		ls.PushGlobalTable()
	} else {
		found, err := h.pushPath(parentPath)
		if err != nil || !found {
			return
		}
	}

	ls.PushGoFunction(sandboxStub(path))
	ls.SetField(-2, last)
	ls.Pop(1)
}

// sandboxStub builds the GoFunction installed at a sandboxed path: it
// raises (as a Go panic, like every other runtime error in this
// interpreter) a message naming the dotted path, matching the
// "<dotted.path>(_) is sandboxed" contract.
func sandboxStub(path string) GoFunction {
	return func(ls LkState) int {
		panic(fmt.Sprintf("%s(_) is sandboxed", path))
	}
}
