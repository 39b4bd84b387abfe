package stdlib

import (
	"strings"

	. "github.com/embedlua/golua/api"
)

// Lua pattern matching (string.find/match/gmatch/gsub), ported from the
// classic lstrlib.c backtracking matcher, with captures (including
// position captures), %b balanced matches, and %f frontier patterns.

const (
	patternMaxCaptures = 32
	patternSpecials    = "^$*+?.([%-"
	maxMatchDepth       = 200
)

type capture struct {
	start int
	end   int // -1: unfinished, -2: position capture
}

type matchState struct {
	ls         LkState
	depth      int
	src        string
	srcEnd     int
	pattern    string
	captures   []capture
	numCapture int
}

func matchClass(c byte, cl byte) bool {
	var res bool
	switch cl | 0x20 {
	case 'a':
		res = (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
	case 'c':
		res = c < 32 || c == 127
	case 'd':
		res = c >= '0' && c <= '9'
	case 'g':
		res = c > 32 && c < 127
	case 'l':
		res = c >= 'a' && c <= 'z'
	case 'p':
		res = (c >= 33 && c <= 47) || (c >= 58 && c <= 64) ||
			(c >= 91 && c <= 96) || (c >= 123 && c <= 126)
	case 's':
		res = c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
	case 'u':
		res = c >= 'A' && c <= 'Z'
	case 'w':
		res = (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
	case 'x':
		res = (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	case 'z':
		res = c == 0
	default:
		return c == cl
	}
	if cl >= 'A' && cl <= 'Z' {
		return !res
	}
	return res
}

func classEnd(ms *matchState, p int) int {
	pat := ms.pattern
	p++
	if p < len(pat) && pat[p] == '^' {
		p++
	}
	if p < len(pat) && pat[p] == ']' {
		p++
	}
	for {
		if p >= len(pat) {
			ms.ls.Error2("malformed pattern (missing ']')")
		}
		c := pat[p]
		p++
		if c == ']' {
			return p
		}
		if c == '%' {
			if p >= len(pat) {
				ms.ls.Error2("malformed pattern (ends with '%%')")
			}
			p++
		}
	}
}

func (ms *matchState) matchBracketClass(c byte, p, end int) bool {
	pat := ms.pattern
	sig := true
	p++
	if p < end && pat[p] == '^' {
		sig = false
		p++
	}
	for p < end-1 {
		if pat[p] == '%' {
			p++
			if p < end-1 && matchClass(c, pat[p]) {
				return sig
			}
			p++
		} else if p+2 < end-1 && pat[p+1] == '-' {
			if pat[p] <= c && c <= pat[p+2] {
				return sig
			}
			p += 3
		} else {
			if pat[p] == c {
				return sig
			}
			p++
		}
	}
	return !sig
}

func (ms *matchState) singleMatch(s, p, ep int) bool {
	if s >= ms.srcEnd {
		return false
	}
	c := ms.src[s]
	switch ms.pattern[p] {
	case '.':
		return true
	case '%':
		return matchClass(c, ms.pattern[p+1])
	case '[':
		return ms.matchBracketClass(c, p, ep)
	default:
		return ms.pattern[p] == c
	}
}

func (ms *matchState) startCapture(s, p, what int) (int, bool) {
	if ms.numCapture >= patternMaxCaptures {
		ms.ls.Error2("too many captures")
	}
	ms.captures = append(ms.captures, capture{start: s, end: what})
	ms.numCapture++
	res, ok := ms.match(s, p)
	if !ok {
		ms.numCapture--
		ms.captures = ms.captures[:ms.numCapture]
	}
	return res, ok
}

func (ms *matchState) endCapture(s, p int) (int, bool) {
	for i := ms.numCapture - 1; i >= 0; i-- {
		if ms.captures[i].end == -1 {
			ms.captures[i].end = s
			res, ok := ms.match(s, p)
			if !ok {
				ms.captures[i].end = -1
			}
			return res, ok
		}
	}
	ms.ls.Error2("invalid pattern capture")
	return 0, false
}

func (ms *matchState) matchBalance(s, p int) (int, bool) {
	if p+1 >= len(ms.pattern) {
		ms.ls.Error2("malformed pattern (missing arguments to '%%b')")
	}
	open, close := ms.pattern[p], ms.pattern[p+1]
	if s >= ms.srcEnd || ms.src[s] != open {
		return 0, false
	}
	count := 1
	s++
	for s < ms.srcEnd {
		if ms.src[s] == close {
			count--
			if count == 0 {
				return s + 1, true
			}
		} else if ms.src[s] == open {
			count++
		}
		s++
	}
	return 0, false
}

func (ms *matchState) checkCapture(c byte) int {
	n := int(c - '1')
	if c < '1' || c > '9' || n >= ms.numCapture || ms.captures[n].end == -1 {
		ms.ls.Error2("invalid capture index %%%d", n+1)
	}
	return n
}

func (ms *matchState) matchCapture(s, p int) (int, bool) {
	n := ms.checkCapture(ms.pattern[p])
	c := ms.captures[n]
	length := c.end - c.start
	if ms.srcEnd-s < length {
		return 0, false
	}
	if ms.src[c.start:c.end] != ms.src[s:s+length] {
		return 0, false
	}
	return s + length, true
}

func (ms *matchState) matchFrontier(s, p int) (int, bool) {
	if p >= len(ms.pattern) || ms.pattern[p] != '[' {
		ms.ls.Error2("missing '[' after '%%f' in pattern")
	}
	end := classEnd(ms, p)
	var prev, curr byte
	if s > 0 {
		prev = ms.src[s-1]
	}
	if s < ms.srcEnd {
		curr = ms.src[s]
	}
	if !ms.matchBracketClass(prev, p, end) && ms.matchBracketClass(curr, p, end) {
		return s, true
	}
	return 0, false
}

func (ms *matchState) maxExpand(s, p, ep int) (int, bool) {
	i := 0
	for ms.singleMatch(s+i, p, ep) {
		i++
	}
	for i >= 0 {
		if res, ok := ms.match(s+i, ep+1); ok {
			return res, true
		}
		i--
	}
	return 0, false
}

func (ms *matchState) minExpand(s, p, ep int) (int, bool) {
	for {
		if res, ok := ms.match(s, ep+1); ok {
			return res, true
		}
		if ms.singleMatch(s, p, ep) {
			s++
		} else {
			return 0, false
		}
	}
}

func (ms *matchState) match(s, p int) (int, bool) {
	ms.depth++
	if ms.depth > maxMatchDepth {
		ms.ls.Error2("pattern too complex")
	}
	defer func() { ms.depth-- }()

	pat := ms.pattern
	for {
		if p >= len(pat) {
			return s, true
		}
		switch pat[p] {
		case '(':
			if p+1 < len(pat) && pat[p+1] == ')' {
				return ms.startCapture(s, p+2, -2)
			}
			return ms.startCapture(s, p+1, -1)
		case ')':
			return ms.endCapture(s, p+1)
		case '$':
			if p+1 == len(pat) {
				if s == ms.srcEnd {
					return s, true
				}
				return 0, false
			}
		case '%':
			if p+1 < len(pat) {
				switch pat[p+1] {
				case 'b':
					news, ok := ms.matchBalance(s, p+2)
					if !ok {
						return 0, false
					}
					s = news
					p += 4
					continue
				case 'f':
					news, ok := ms.matchFrontier(s, p+2)
					if !ok {
						return 0, false
					}
					s = news
					p = classEnd(ms, p+2)
					continue
				case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
					news, ok := ms.matchCapture(s, p+1)
					if !ok {
						return 0, false
					}
					s = news
					p += 2
					continue
				}
			}
		}

		ep := p
		switch pat[p] {
		case '%':
			ep = p + 2
		case '[':
			ep = classEnd(ms, p)
		default:
			ep = p + 1
		}

		if ep < len(pat) {
			switch pat[ep] {
			case '*':
				return ms.maxExpand(s, p, ep)
			case '+':
				if ms.singleMatch(s, p, ep) {
					return ms.maxExpand(s+1, p, ep)
				}
				return 0, false
			case '-':
				return ms.minExpand(s, p, ep)
			case '?':
				if ms.singleMatch(s, p, ep) {
					if res, ok := ms.match(s+1, ep+1); ok {
						return res, true
					}
				}
				p = ep + 1
				continue
			}
		}

		if !ms.singleMatch(s, p, ep) {
			return 0, false
		}
		s++
		p = ep
	}
}

func (ms *matchState) pushCaptures(sstart, send int) int {
	if ms.numCapture == 0 {
		ms.ls.PushString(ms.src[sstart:send])
		return 1
	}
	for i := 0; i < ms.numCapture; i++ {
		ms.pushOneCapture(i, sstart, send)
	}
	return ms.numCapture
}

func (ms *matchState) pushOneCapture(i, sstart, send int) {
	if i >= ms.numCapture {
		if i == 0 {
			ms.ls.PushString(ms.src[sstart:send])
			return
		}
		ms.ls.Error2("invalid capture index %%%d", i+1)
	}
	c := ms.captures[i]
	if c.end == -1 {
		ms.ls.Error2("unfinished capture")
	}
	if c.end == -2 {
		ms.ls.PushInteger(int64(c.start + 1))
	} else {
		ms.ls.PushString(ms.src[c.start:c.end])
	}
}

func noSpecials(pattern string) bool {
	return !strings.ContainsAny(pattern, patternSpecials)
}

func newMatchState(ls LkState, s, p string) *matchState {
	anchor := len(p) > 0 && p[0] == '^'
	start := 0
	if anchor {
		start = 1
	}
	return &matchState{ls: ls, src: s, srcEnd: len(s), pattern: p[start:]}
}

func isAnchored(p string) bool {
	return len(p) > 0 && p[0] == '^'
}

// string.find (s, pattern [, init [, plain]])
// lua-5.3.4/src/lstrlib.c#str_find_aux(lua_State *L, int find)
func strFind(ls LkState) int {
	return findAux(ls, true)
}

// string.match (s, pattern [, init])
func strMatch(ls LkState) int {
	return findAux(ls, false)
}

func findAux(ls LkState, isFind bool) int {
	s := ls.CheckString(1)
	p := ls.CheckString(2)
	init := posRelat(ls.OptInteger(3, 1), len(s))
	if init < 1 {
		init = 1
	} else if init > len(s)+1 {
		ls.PushNil()
		return 1
	}

	if isFind && (ls.ToBoolean(4) || noSpecials(p)) {
		idx := strings.Index(s[init-1:], p)
		if idx < 0 {
			ls.PushNil()
			return 1
		}
		ls.PushInteger(int64(idx + init))
		ls.PushInteger(int64(idx + init + len(p) - 1))
		return 2
	}

	ms := newMatchState(ls, s, p)
	anchor := isAnchored(p)
	spos := init - 1
	for {
		ms.captures = ms.captures[:0]
		ms.numCapture = 0
		ms.depth = 0
		if end, ok := ms.match(spos, 0); ok {
			if isFind {
				ls.PushInteger(int64(spos + 1))
				ls.PushInteger(int64(end))
				return 2 + ms.pushCaptures(spos, end)
			}
			return ms.pushCaptures(spos, end)
		}
		spos++
		if spos > len(s) || anchor {
			break
		}
	}
	ls.PushNil()
	return 1
}

// string.gmatch (s, pattern)
// closure-captured via Go upvalues: source, pattern, next scan position.
func strGmatch(ls LkState) int {
	ls.CheckString(1)
	ls.CheckString(2)
	ls.SetTop(2)
	ls.PushInteger(0)
	ls.PushGoClosure(gmatchAux, 3)
	return 1
}

func gmatchAux(ls LkState) int {
	s := ls.ToString(LkUpvalueIndex(1))
	p := ls.ToString(LkUpvalueIndex(2))
	pos := ls.ToInteger(LkUpvalueIndex(3))

	ms := newMatchState(ls, s, p)
	anchor := isAnchored(p)
	spos := int(pos)
	for spos <= len(s) {
		ms.captures = ms.captures[:0]
		ms.numCapture = 0
		ms.depth = 0
		if end, ok := ms.match(spos, 0); ok {
			next := end
			if next == spos {
				next++
			}
			ls.PushInteger(int64(next))
			ls.Replace(LkUpvalueIndex(3))
			return ms.pushCaptures(spos, end)
		}
		spos++
		if anchor {
			break
		}
	}
	ls.PushNil()
	return 1
}

// string.gsub (s, pattern, repl [, n])
func strGsub(ls LkState) int {
	s := ls.CheckString(1)
	p := ls.CheckString(2)
	replType := ls.Type(3)
	if replType != LK_TSTRING && replType != LK_TNUMBER && replType != LK_TTABLE && replType != LK_TFUNCTION {
		ls.Error2("bad argument #3 to 'gsub' (string/function/table expected)")
	}
	maxN := ls.OptInteger(4, int64(len(s))+1)

	ms := newMatchState(ls, s, p)
	anchor := isAnchored(p)

	var b strings.Builder
	n := int64(0)
	spos := 0
	for n < maxN {
		ms.captures = ms.captures[:0]
		ms.numCapture = 0
		ms.depth = 0
		end, ok := ms.match(spos, 0)
		if ok {
			n++
			gsubReplace(ls, ms, &b, spos, end, replType)
			if end > spos {
				spos = end
			} else if spos < len(s) {
				b.WriteByte(s[spos])
				spos++
			} else {
				break
			}
		} else if spos < len(s) {
			b.WriteByte(s[spos])
			spos++
		} else {
			break
		}
		if anchor {
			break
		}
	}
	if spos <= len(s) {
		b.WriteString(s[spos:])
	}

	ls.PushString(b.String())
	ls.PushInteger(n)
	return 2
}

func gsubReplace(ls LkState, ms *matchState, b *strings.Builder, sstart, send int, replType LkType) {
	switch replType {
	case LK_TSTRING, LK_TNUMBER:
		repl := ls.ToString(3)
		for i := 0; i < len(repl); i++ {
			if repl[i] != '%' {
				b.WriteByte(repl[i])
				continue
			}
			i++
			if i >= len(repl) {
				ls.Error2("invalid use of '%%' in replacement string")
			}
			switch {
			case repl[i] == '%':
				b.WriteByte('%')
			case repl[i] == '0':
				b.WriteString(ms.src[sstart:send])
			case repl[i] >= '1' && repl[i] <= '9':
				ms.pushOneCapture(int(repl[i]-'1'), sstart, send)
				b.WriteString(ls.ToString(-1))
				ls.Pop(1)
			default:
				ls.Error2("invalid use of '%%' in replacement string")
			}
		}
	case LK_TFUNCTION:
		ls.PushValue(3)
		nArgs := ms.pushCaptures(sstart, send)
		ls.Call(nArgs, 1)
		if ls.IsNil(-1) || (ls.IsBoolean(-1) && !ls.ToBoolean(-1)) {
			b.WriteString(ms.src[sstart:send])
		} else {
			b.WriteString(ls.ToString2(-1))
		}
		ls.Pop(1)
	case LK_TTABLE:
		ms.pushOneCapture(0, sstart, send)
		ls.GetTable(3)
		if ls.IsNil(-1) || (ls.IsBoolean(-1) && !ls.ToBoolean(-1)) {
			b.WriteString(ms.src[sstart:send])
		} else {
			b.WriteString(ls.ToString2(-1))
		}
		ls.Pop(1)
	}
}
