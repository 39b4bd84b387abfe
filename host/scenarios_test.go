package host_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/embedlua/golua/host"
)

// These mirror the literal-input scenarios and operator precedence
// checks a faithful Lua 5.3 core should satisfy: vararg/select,
// per-iteration closure capture, __index metamethods, multi-return
// expansion in table constructors, local-function redeclaration not
// rebinding earlier uses, and load()'s success/failure contract.

func evalOne(t *testing.T, src string) any {
	t.Helper()
	vm, err := host.New(host.Options{})
	if err != nil {
		t.Fatalf("host.New: %v", err)
	}
	results, err := vm.Eval(src)
	if err != nil {
		t.Fatalf("Eval(%q): %v", src, err)
	}
	if len(results) != 1 {
		t.Fatalf("Eval(%q): expected 1 result, got %v", src, results)
	}
	return results[0]
}

func TestVarargSelectCount(t *testing.T) {
	got := evalOne(t, `
		function f(a, ...)
			local arg = {n = select('#', ...), ...}
			for i = 1, arg.n do assert(a[i] == arg[i]) end
			return arg.n
		end
		return f({1, 2, 3}, 1, 2, 3) == 3
	`)
	if got != true {
		t.Fatalf("got %v, want true", got)
	}
}

func TestUpvalueSharedAcrossAssignment(t *testing.T) {
	got := evalOne(t, `
		local A = 0
		local dummy = function() return A end
		A = 1
		assert(dummy() == 1)
		A = 0
		return true
	`)
	if got != true {
		t.Fatalf("got %v, want true", got)
	}
}

func TestPerIterationClosureCapture(t *testing.T) {
	vm, err := host.New(host.Options{})
	if err != nil {
		t.Fatalf("host.New: %v", err)
	}
	results, err := vm.Eval(`
		function f(x)
			local a = {}
			for i = 1, 3 do a[i] = function() return i end end
			return a[1](), a[2](), a[3]()
		end
		return f(10)
	`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	want := []any{int64(1), int64(2), int64(3)}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestIndexMetamethodFunction(t *testing.T) {
	vm, err := host.New(host.Options{})
	if err != nil {
		t.Fatalf("host.New: %v", err)
	}
	results, err := vm.Eval(`
		local t = {}
		setmetatable(t, {__index = function(_, k) return k .. "!" end})
		return t.hello, t.world
	`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	want := []any{"hello!", "world!"}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestMultiReturnExpansionInTableConstructor(t *testing.T) {
	vm, err := host.New(host.Options{})
	if err != nil {
		t.Fatalf("host.New: %v", err)
	}

	results, err := vm.Eval(`
		local function multi() return 10, 20, 30 end
		local t = {multi()}
		return t[1], t[2], t[3]
	`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	want := []any{int64(10), int64(20), int64(30)}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Fatalf("trailing position mismatch (-want +got):\n%s", diff)
	}

	results, err = vm.Eval(`
		local function multi() return 10, 20, 30 end
		local t = {multi(), 99}
		return t[1], t[2]
	`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	want = []any{int64(10), int64(99)}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Fatalf("non-trailing position mismatch (-want +got):\n%s", diff)
	}
}

func TestLocalFunctionRedeclarationDoesNotRetroactivelyRebind(t *testing.T) {
	got := evalOne(t, `
		local function f(x) return x + 1 end
		assert(f(10) == 11)
		local function f(x) return x + 2 end
		assert(f(10) == 12)
		return true
	`)
	if got != true {
		t.Fatalf("got %v, want true", got)
	}
}

func TestLoadSuccessAndFailure(t *testing.T) {
	// load is in DefaultSandboxedPaths, so this VM excludes it.
	vm, err := host.New(host.Options{Exclude: []string{"load"}})
	if err != nil {
		t.Fatalf("host.New: %v", err)
	}
	eval := func(src string) any {
		results, err := vm.Eval(src)
		if err != nil || len(results) != 1 {
			t.Fatalf("Eval(%q): %v, %v", src, results, err)
		}
		return results[0]
	}

	got := eval(`f = load("return 1+2"); return f()`)
	if got != int64(3) {
		t.Fatalf("got %v, want 3", got)
	}

	got = eval(`local _, msg = load("invalid $$"); return type(msg)`)
	if got != "string" {
		t.Fatalf("got %v, want \"string\"", got)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want any
	}{
		{"pow-right-assoc", `return 2^3^2 == 2^(3^2)`, true},
		{"pow-binds-tighter-than-mul", `return 2^3*4 == (2^3)*4`, true},
		{"float-pow-negative-exponent", `return 2.0^-2 == 1/4`, true},
		{"unary-minus-looser-than-pow", `return -2^2 == -4`, true},
		{"parenthesized-neg-then-pow", `return (-2)^2 == 4`, true},
		{"concat-binds-tighter-than-shift", `return "7" .. 3 << 1 == 146`, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := evalOne(t, c.src)
			if got != c.want {
				t.Fatalf("%s: got %v, want %v", c.src, got, c.want)
			}
		})
	}
}

func TestBitwiseOnNilRaisesMentioningType(t *testing.T) {
	vm, err := host.New(host.Options{})
	if err != nil {
		t.Fatalf("host.New: %v", err)
	}
	_, err = vm.Eval("return 1 | nil")
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	rerr, ok := err.(*host.RuntimeError)
	if !ok {
		t.Fatalf("expected *host.RuntimeError, got %T: %v", err, err)
	}
	if !strings.Contains(strings.ToLower(rerr.Message), "nil") {
		t.Fatalf("expected message to mention \"nil\", got %q", rerr.Message)
	}
}
