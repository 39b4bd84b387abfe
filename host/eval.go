package host

import (
	"fmt"
	"os"

	. "github.com/embedlua/golua/api"
	"github.com/embedlua/golua/binchunk"
	"github.com/embedlua/golua/compiler"
	"github.com/embedlua/golua/utils"
)

// Chunk is a compiled-but-not-yet-run unit of source, returned by
// LoadChunk. It holds the in-memory *binchunk.Prototype so re-running it
// doesn't re-lex/re-parse/re-compile the source; the VM caches these by
// source hash in h.chunk. It also keeps the binchunk.Dump-serialized
// form (Bytes), for callers persisting a compiled chunk to disk — the VM
// itself never re-parses that form, since bouncing a prototype's numeric
// constants through JSON would lose the integer/float distinction.
type Chunk struct {
	Hash      string
	ChunkName string
	proto     *binchunk.Prototype
	bytes     []byte
}

// Bytes returns the chunk's binchunk.Dump-serialized form, suitable for
// writing to disk and later reloading with binchunk.Load.
func (c *Chunk) Bytes() []byte { return c.bytes }

// LoadChunk compiles source without running it. Calling LoadChunk again
// with identical source returns the cached chunk instead of recompiling.
func (h *VM) LoadChunk(source, chunkName string) (chunk *Chunk, err error) {
	defer func() {
		if r := recover(); r != nil {
			chunk, err = nil, classify(r)
		}
	}()

	hash := utils.Md5([]byte(source))
	if cached, ok := h.chunk.Get(hash); ok {
		return cached.(*Chunk), nil
	}

	proto := compiler.Compile(source, chunkName)
	data, derr := proto.Dump(hash)
	if derr != nil {
		return nil, fmt.Errorf("host: dump compiled chunk: %w", derr)
	}

	c := &Chunk{Hash: hash, ChunkName: chunkName, proto: proto, bytes: data}
	h.chunk.Add(hash, c)
	return c, nil
}

// Eval compiles and runs source as a top-level chunk, returning the
// values of its top-level return statement (empty if there isn't one).
func (h *VM) Eval(source string) ([]any, error) {
	return h.EvalNamed(source, "=eval")
}

// EvalNamed is Eval with an explicit chunk name, used for error messages.
// The compiled-chunk cache is keyed by source alone, so identical source
// evaluated under a second name reuses the chunk cached under the first.
func (h *VM) EvalNamed(source, chunkName string) ([]any, error) {
	chunk, err := h.LoadChunk(source, chunkName)
	if err != nil {
		return nil, err
	}
	return h.EvalChunk(chunk)
}

// EvalChunk runs a previously compiled Chunk and returns its top-level
// return values.
func (h *VM) EvalChunk(chunk *Chunk) (results []any, err error) {
	ls := h.ls
	top0 := ls.GetTop()
	defer func() {
		if r := recover(); r != nil {
			results, err = nil, classify(r)
			ls.SetTop(top0)
		}
	}()

	ls.LoadProto(chunk.proto)
	if ls.PCall(0, LK_MULTRET, 0) != LK_OK {
		val := h.Decode(-1)
		ls.Pop(1)
		return nil, newRuntimeError(ls, val)
	}

	n := ls.GetTop() - top0
	results = make([]any, n)
	for i := 0; i < n; i++ {
		results[i] = h.Decode(top0 + 1 + i)
	}
	ls.SetTop(top0)
	return results, nil
}

// LoadFile reads and executes a file, discarding its return values.
func (h *VM) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("host: read %s: %w", path, err)
	}
	_, err = h.EvalNamed(string(data), "@"+path)
	return err
}
