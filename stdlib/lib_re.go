package stdlib

import (
	"regexp"

	. "github.com/embedlua/golua/api"
	lru "github.com/hashicorp/golang-lru"
)

var (
	reCacher, _ = lru.New(64)
	reLib       = map[string]GoFunction{
		"have": reFound,
		"find": reFind,
	}
)

func OpenReLib(ls LkState) int {
	ls.NewLib(reLib)
	return 1
}

func getExp(pattern string) *regexp.Regexp {
	if cached, ok := reCacher.Get(pattern); ok {
		if exp, ok := cached.(*regexp.Regexp); ok {
			return exp
		}
	}
	exp := regexp.MustCompile(pattern)
	reCacher.Add(pattern, exp)
	return exp
}

func reFound(ls LkState) int {
	pattern := ls.CheckString(1)
	text := ls.CheckString(2)
	ls.PushBoolean(getExp(pattern).MatchString(text))
	return 1
}

func reFind(ls LkState) int {
	pattern := ls.CheckString(1)
	text := ls.CheckString(2)
	matches := getExp(pattern).FindStringSubmatch(text)
	ms := make([]any, len(matches))
	for idx := 0; idx < len(matches); idx++ {
		ms[idx] = matches[idx]
	}
	pushList(&ls, ms)
	return 1
}
