package stdlib

import (
	. "github.com/embedlua/golua/api"
	lru "github.com/hashicorp/golang-lru"
	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"
)

var (
	jsonLib = map[string]GoFunction{
		"get":    jsonGet,
		"decode": jsonDecode,
		"encode": jsonEncode,
	}
	// gjsonCache avoids re-parsing the same JSON source across repeated
	// json.get calls in a loop (common when scripts poll a single
	// response body for several fields).
	gjsonCache, _ = lru.New(32)

	jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary
)

func OpenJsonLib(ls LkState) int {
	ls.NewLib(jsonLib)
	return 1
}

// json.get (source, path)
// return bool, result
func jsonGet(ls LkState) int {
	source := ls.CheckString(1)
	path := ls.CheckString(2)

	var result gjson.Result
	if cached, ok := gjsonCache.Get(source); ok {
		result = cached.(gjson.Result)
	} else {
		result = gjson.Parse(source)
		gjsonCache.Add(source, result)
	}

	got := result.Get(path)
	if !got.Exists() {
		ls.PushBoolean(false)
		ls.PushString("")
		return 2
	}
	ls.PushBoolean(true)
	ls.PushString(got.String())
	return 2
}

// json.decode (source) -> value, or nil, err on failure
func jsonDecode(ls LkState) int {
	source := ls.CheckString(1)
	if !gjson.Valid(source) {
		ls.PushNil()
		ls.PushString("invalid json")
		return 2
	}
	var v any
	if err := jsonCodec.UnmarshalFromString(source, &v); err != nil {
		ls.PushNil()
		ls.PushString(err.Error())
		return 2
	}
	pushJsonValue(ls, v)
	return 1
}

// json.encode (value) -> string, or nil, err on failure
func jsonEncode(ls LkState) int {
	v := toJsonValue(ls, 1)
	s, err := jsonCodec.MarshalToString(v)
	if err != nil {
		ls.PushNil()
		ls.PushString(err.Error())
		return 2
	}
	ls.PushString(s)
	return 1
}

// pushJsonValue pushes a tree decoded by jsonCodec.Unmarshal (nil, bool,
// float64, string, []any, map[string]any) onto the stack as Lua values.
func pushJsonValue(ls LkState, v any) {
	pushValue(&ls, v)
}

// toJsonValue reads the Lua value at idx into a tree jsonCodec can marshal,
// recursing into tables (as a JSON array when the table is a proper
// sequence, else as an object).
func toJsonValue(ls LkState, idx int) any {
	switch ls.Type(idx) {
	case LK_TNIL:
		return nil
	case LK_TBOOLEAN:
		return ls.ToBoolean(idx)
	case LK_TNUMBER:
		if ls.IsInteger(idx) {
			return ls.ToInteger(idx)
		}
		return ls.ToNumber(idx)
	case LK_TSTRING:
		return ls.ToString(idx)
	case LK_TTABLE:
		return tableToJson(ls, idx)
	default:
		panic("cannot json.encode a " + ls.TypeName2(idx) + " value")
	}
}

func tableToJson(ls LkState, idx int) any {
	top := ls.GetTop()
	abs := idx
	if abs < 0 {
		abs = top + abs + 1
	}

	n := ls.Len2(abs)
	count := int64(0)
	ls.PushNil()
	for ls.Next(abs) {
		count++
		ls.Pop(1)
	}
	if n > 0 && count == n {
		arr := make([]any, n)
		for i := int64(1); i <= n; i++ {
			ls.GetI(abs, i)
			arr[i-1] = toJsonValue(ls, -1)
			ls.Pop(1)
		}
		return arr
	}

	obj := make(map[string]any)
	ls.PushNil()
	for ls.Next(abs) {
		ls.PushValue(-2) // ToString converts numbers in place; convert a copy
		key := ls.ToString(-1)
		ls.Pop(1)
		obj[key] = toJsonValue(ls, -1)
		ls.Pop(1)
	}
	return obj
}
