// Package host is the embedding façade: the contract a Go application
// uses to create a VM, push host values and functions into it, and pull
// guest scripts' results back out. It owns sandbox policy and host/guest
// value translation; the actual language implementation lives in
// compiler, vm, and state.
package host

// Options configures a VM at construction time, using a plain
// "struct + apply" pattern (state.New / ls.OpenLibs) rather than a
// generic options map or functional-options chain.
type Options struct {
	// Sandboxed lists additional dotted global paths to replace with a
	// raising stub, on top of DefaultSandboxedPaths.
	Sandboxed []string
	// Exclude lists dotted global paths that would otherwise be
	// sandboxed (by default or via Sandboxed) but should be left alone.
	Exclude []string
	// ProtoCacheSize bounds the LRU cache of compiled chunks keyed by
	// source hash. Zero selects a small default.
	ProtoCacheSize int
}

// DefaultSandboxedPaths is the default set of dotted global paths
// replaced with a raising stub in every VM; Options.Sandboxed adds to
// it and Options.Exclude removes paths from it.
var DefaultSandboxedPaths = []string{
	"io",
	"file",
	"os.execute",
	"os.exit",
	"os.getenv",
	"os.remove",
	"os.rename",
	"os.tmpname",
	"package",
	"load",
	"loadfile",
	"require",
	"dofile",
	"loadstring",
}

func (o Options) withDefaults() Options {
	if o.ProtoCacheSize <= 0 {
		o.ProtoCacheSize = 128
	}
	return o
}
