package state

import (
	"io/ioutil"
	"strings"

	. "github.com/embedlua/golua/api"
	"github.com/embedlua/golua/binchunk"
	"github.com/embedlua/golua/compiler"
	"github.com/embedlua/golua/term"
	"github.com/embedlua/golua/utils"
)

// Compile reads source from disk, compiles it, and caches the compiled
// prototype alongside it (the ".luac" sibling file) keyed by the source's
// content hash, so a later Compile of the same unmodified source can skip
// straight to binchunk.Load instead of re-running the lexer/parser/codegen.
func Compile(source string) *binchunk.Prototype {
	if !utils.Exist(source) {
		term.Error("[compile] file not found: " + source)
	}

	data, err := ioutil.ReadFile(source)
	if err != nil {
		term.Error("[compile] can't read file: " + err.Error())
	}
	hash := utils.Md5(data)

	cachePath := source + "c"
	if cached, err := ioutil.ReadFile(cachePath); err == nil {
		if cachedHash, ok := binchunk.PeekHash(cached); ok && cachedHash == hash {
			if proto, err := binchunk.Load(cached); err == nil {
				return proto
			}
		}
	}

	bin := compiler.Compile(string(data), source)

	compiledData, err := bin.Dump(hash)
	if err != nil {
		term.Error("[compile] dump file failed: " + err.Error())
	}
	if err := ioutil.WriteFile(cachePath, compiledData, 0744); err != nil {
		term.Error("[compile] write file failed: " + err.Error())
	}
	return bin
}

// [-0, +1, –]
// http://www.lua.org/manual/5.3/manual.html#lua_load
func (self *lkState) Load(chunk []byte, chunkName, mode string) LkStatus {
	var proto *binchunk.Prototype
	if chunkName == "stdin" || strings.HasSuffix(chunkName, ".lua") || mode == "t" || !binchunk.IsJsonChunk(chunk) {
		proto = compiler.Compile(string(chunk), chunkName)
	} else {
		var err error
		proto, err = binchunk.Load(chunk)
		if err != nil {
			term.Error("[load] load chunk failed: " + err.Error())
		}
	}

	c := newLuaClosure(proto)
	self.stack.push(c)
	if len(proto.Upvalues) > 0 {
		env := self.registry.get(LK_RIDX_GLOBALS)
		c.upVals[0] = &upvalCell{closed: true, val: env}
	}
	return LK_OK
}

// LoadProto pushes a closure over an already-compiled prototype,
// skipping the Dump/Load byte round trip Load takes for source text and
// on-disk caches. The embedding façade's chunk cache keeps compiled
// *binchunk.Prototype values in memory and uses this directly, since
// bouncing them through Dump's JSON encoding would lose the
// integer/float distinction in constants typed as interface{}.
func (self *lkState) LoadProto(proto *binchunk.Prototype) {
	c := newLuaClosure(proto)
	self.stack.push(c)
	if len(proto.Upvalues) > 0 {
		env := self.registry.get(LK_RIDX_GLOBALS)
		c.upVals[0] = &upvalCell{closed: true, val: env}
	}
}
