package binchunk

import (
	"bytes"
	"fmt"
	"math"

	jsoniter "github.com/json-iterator/go"
)

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary
)

const (
	TAG_NIL       = 0x00
	TAG_BOOLEAN   = 0x01
	TAG_NUMBER    = 0x03
	TAG_INTEGER   = 0x13
	TAG_SHORT_STR = 0x04
	TAG_LONG_STR  = 0x14

	VERSION   = 0.1
	SIGNATURE = `LANG_LK`

	// hashLen is the width of the content-hash field stamped into a
	// compiled chunk's header (a hex-encoded MD5 digest, see utils.Md5),
	// so a cached chunk on disk can be checked for staleness without
	// re-parsing its JSON body.
	hashLen = 32
)

func headerLen() int {
	return 2 + len(SIGNATURE) + hashLen
}

// function prototype
type Prototype struct {
	Source          string        `json:"s"` // debug
	LineDefined     uint32        `json:"ld"`
	LastLineDefined uint32        `json:"lld"`
	NumParams       byte          `json:"np"`
	IsVararg        byte          `json:"iv"`
	MaxStackSize    byte          `json:"ms"`
	Code            []uint32      `json:"c"`
	Constants       []interface{} `json:"cs"`
	Upvalues        []Upvalue     `json:"us"`
	Protos          []*Prototype  `json:"ps"`
	LineInfo        []uint32      `json:"li"`  // debug
	LocVars         []LocVar      `json:"lvs"` // debug
	UpvalueNames    []string      `json:"uns"` // debug
}

type Upvalue struct {
	Instack byte `json:"is"`
	Idx     byte `json:"idx"`
}

type LocVar struct {
	VarName string `json:"vn"`
	StartPC uint32 `json:"spc"`
	EndPC   uint32 `json:"epc"`
}

// PeekHash reports the content-hash stamped in a compiled chunk's header
// without parsing its body, so a cache can decide to skip recompilation.
func PeekHash(data []byte) (string, bool) {
	n := headerLen()
	if len(data) < n || data[0] != '\x1b' {
		return "", false
	}
	if data[1] != byte(math.Float64bits(VERSION)) {
		return "", false
	}
	if !bytes.HasPrefix(data[2:], []byte(SIGNATURE)) {
		return "", false
	}
	return string(data[2+len(SIGNATURE) : n]), true
}

// IsJsonChunk reports whether data looks like a chunk produced by Dump.
func IsJsonChunk(data []byte) bool {
	_, ok := PeekHash(data)
	return ok
}

// Load parses a chunk previously produced by Dump.
func Load(data []byte) (*Prototype, error) {
	n := headerLen()
	if len(data) < n || data[0] != '\x1b' {
		return nil, fmt.Errorf("binchunk: not a compiled chunk")
	}
	if data[1] != byte(math.Float64bits(VERSION)) {
		return nil, fmt.Errorf("binchunk: version mismatch")
	}
	if !bytes.HasPrefix(data[2:], []byte(SIGNATURE)) {
		return nil, fmt.Errorf("binchunk: bad signature")
	}
	var proto Prototype
	if err := json.Unmarshal(data[n:], &proto); err != nil {
		return nil, err
	}
	return &proto, nil
}

// Dump serializes proto, stamping hash (the source's content hash) into
// the header so a later load can detect whether the source changed.
func (proto *Prototype) Dump(hash string) ([]byte, error) {
	data, err := json.Marshal(proto)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('\x1b')
	buf.WriteByte(byte(math.Float64bits(VERSION)))
	buf.WriteString(SIGNATURE)
	buf.WriteString(hash)
	buf.Write(data)
	return buf.Bytes(), nil
}
