package host_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/embedlua/golua/host"
)

func newVM(t *testing.T) *host.VM {
	t.Helper()
	vm, err := host.New(host.Options{})
	if err != nil {
		t.Fatalf("host.New: %v", err)
	}
	return vm
}

func TestEvalReturnsTopLevelReturn(t *testing.T) {
	vm := newVM(t)
	results, err := vm.Eval("return 1, 2, 3")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	want := []any{int64(1), int64(2), int64(3)}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestEvalNoReturnIsEmpty(t *testing.T) {
	vm := newVM(t)
	results, err := vm.Eval("local x = 1")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %v", results)
	}
}

func TestEvalCompilerErrorForBadSyntax(t *testing.T) {
	vm := newVM(t)
	_, err := vm.Eval("local $$")
	if err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := err.(*host.CompilerError); !ok {
		t.Fatalf("expected *host.CompilerError, got %T: %v", err, err)
	}
}

func TestEvalRuntimeErrorForIndexNil(t *testing.T) {
	vm := newVM(t)
	_, err := vm.Eval("local t; return t.x")
	if err == nil {
		t.Fatal("expected a runtime error")
	}
}

func TestSetAndGetNestedPath(t *testing.T) {
	vm := newVM(t)
	if err := vm.Set("a.b.c", int64(42)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, err := vm.Get("a.b.c")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != int64(42) {
		t.Fatalf("got %v, want 42", v)
	}

	results, err := vm.Eval("return a.b.c")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if diff := cmp.Diff([]any{int64(42)}, results); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestGetMissingPathIsNilNotError(t *testing.T) {
	vm := newVM(t)
	v, err := vm.Get("nope.nested")
	if err != nil {
		t.Fatalf("expected no error for a missing path, got %v", err)
	}
	if v != nil {
		t.Fatalf("expected nil, got %v", v)
	}
}

func TestSetInvalidIndexOnNonTableIntermediate(t *testing.T) {
	vm := newVM(t)
	if err := vm.Set("leaf", "scalar"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	err := vm.Set("leaf.child", 1)
	if err == nil {
		t.Fatal("expected an InvalidIndexError")
	}
	if _, ok := err.(*host.InvalidIndexError); !ok {
		t.Fatalf("expected *host.InvalidIndexError, got %T: %v", err, err)
	}
}

func TestRegisterHostFunctionRoundTrips(t *testing.T) {
	vm := newVM(t)
	err := vm.Register("hostlib.add", func(args []any) any {
		a := args[0].(int64)
		b := args[1].(int64)
		return a + b
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	results, err := vm.Eval("return hostlib.add(2, 3)")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if diff := cmp.Diff([]any{int64(5)}, results); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestRegisterMultiReturnFromList(t *testing.T) {
	vm := newVM(t)
	err := vm.Register("hostlib.pair", func(args []any) any {
		return []any{int64(1), int64(2)}
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	results, err := vm.Eval("local a, b = hostlib.pair(); return a, b")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if diff := cmp.Diff([]any{int64(1), int64(2)}, results); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultSandboxBlocksOSExit(t *testing.T) {
	vm := newVM(t)
	_, err := vm.Eval("os.exit(1)")
	if err == nil {
		t.Fatal("expected os.exit to be sandboxed")
	}
	rerr, ok := err.(*host.RuntimeError)
	if !ok {
		t.Fatalf("expected *host.RuntimeError, got %T: %v", err, err)
	}
	if !strings.Contains(rerr.Message, "sandboxed") {
		t.Fatalf("expected sandboxed message, got %q", rerr.Message)
	}
}

func TestExcludeUnsandboxesAPath(t *testing.T) {
	vm, err := host.New(host.Options{Exclude: []string{"os.getenv"}})
	if err != nil {
		t.Fatalf("host.New: %v", err)
	}
	// os.getenv is in the default sandboxed set; excluding it leaves the
	// real function in place, so calling it must not raise.
	_, err = vm.Eval("return os.getenv('PATH')")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
}

func TestCallByPath(t *testing.T) {
	vm := newVM(t)
	_, err := vm.Eval("function greet(name) return 'hi ' .. name end")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	results, err := vm.Call("greet", []any{"world"})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if diff := cmp.Diff([]any{"hi world"}, results); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadChunkCachesBySource(t *testing.T) {
	vm := newVM(t)
	a, err := vm.LoadChunk("return 1+1", "chunk")
	if err != nil {
		t.Fatalf("LoadChunk: %v", err)
	}
	b, err := vm.LoadChunk("return 1+1", "chunk")
	if err != nil {
		t.Fatalf("LoadChunk: %v", err)
	}
	if a != b {
		t.Fatalf("expected identical cached chunk, got distinct pointers")
	}

	results, err := vm.EvalChunk(a)
	if err != nil {
		t.Fatalf("EvalChunk: %v", err)
	}
	if diff := cmp.Diff([]any{int64(2)}, results); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
