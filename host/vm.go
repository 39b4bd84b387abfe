package host

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/google/uuid"

	"github.com/embedlua/golua/api"
	"github.com/embedlua/golua/state"
	"github.com/embedlua/golua/term"
)

// VM is a single embeddable Lua 5.3 instance: one global table, one
// sandbox policy, one compiled-chunk cache. An instance is not
// safe for concurrent use from more than one goroutine; create one VM
// per host thread that needs guest scripting.
type VM struct {
	ls    api.LkState
	id    uuid.UUID
	opts  Options
	chunk *lru.Cache // source hash -> *Chunk
}

// New creates a VM with the standard library loaded and the sandbox
// policy from opts applied. The returned VM's global table is private to
// it; nothing is shared across instances.
func New(opts Options) (*VM, error) {
	opts = opts.withDefaults()

	cache, err := lru.New(opts.ProtoCacheSize)
	if err != nil {
		return nil, fmt.Errorf("host: create chunk cache: %w", err)
	}

	ls := state.New()
	ls.OpenLibs()

	h := &VM{
		ls:    ls,
		id:    uuid.New(),
		opts:  opts,
		chunk: cache,
	}
	h.applySandbox(opts)

	term.Debug("host: vm %s created (sandboxed=%d excluded=%d)",
		h.id, len(defaultAndCustomPaths(opts)), len(opts.Exclude))

	return h, nil
}

// ID returns the VM's instance identifier, used in log lines.
func (h *VM) ID() uuid.UUID { return h.id }

// Raw exposes the underlying low-level state for callers that need the
// C-API-shaped surface directly (e.g. a REPL printing raw stack values).
// Most callers should prefer the Eval/Get/Set/Call/Encode/Decode methods.
func (h *VM) Raw() api.LkState { return h.ls }
