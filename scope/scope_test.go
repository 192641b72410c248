package scope

import (
	"testing"

	"rbc/ir"
)

// stubLValue is a minimal LValue for exercising frame bookkeeping in
// isolation; its Fetch/Store/Address are never actually called here —
// that behavior is exercised by lvalue_test.go, which runs the real
// ModuleCell/StackSlot/DerefCell/ExternRef kinds on a refvm build.
type stubLValue struct{ name string }

func (s stubLValue) Fetch(ir.Builder) ir.Value    { return nil }
func (s stubLValue) Store(ir.Builder, ir.Value)   {}
func (s stubLValue) Address(ir.Builder) ir.Value  { return nil }

func TestDefineAndLookupWithinOneFrame(t *testing.T) {
	s := New()
	want := stubLValue{name: "x"}
	if err := s.Define("x", want); err != nil {
		t.Fatalf("Define: %v", err)
	}
	got, err := s.Lookup("x")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got != LValue(want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestDuplicateDefinitionInSameFrameFails(t *testing.T) {
	s := New()
	if err := s.Define("x", stubLValue{name: "x"}); err != nil {
		t.Fatalf("first Define: %v", err)
	}
	err := s.Define("x", stubLValue{name: "x2"})
	if _, ok := err.(DuplicateDefinitionError); !ok {
		t.Fatalf("want DuplicateDefinitionError, got %v (%T)", err, err)
	}
}

func TestInnerFrameShadowsOuter(t *testing.T) {
	s := New()
	outer := stubLValue{name: "outer"}
	inner := stubLValue{name: "inner"}
	if err := s.Define("x", outer); err != nil {
		t.Fatalf("Define outer: %v", err)
	}
	s.Push()
	if err := s.Define("x", inner); err != nil {
		t.Fatalf("Define inner: %v", err)
	}
	got, err := s.Lookup("x")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got != LValue(inner) {
		t.Fatalf("got %#v, want inner shadowing outer", got)
	}
	s.Pop()
	got, err = s.Lookup("x")
	if err != nil {
		t.Fatalf("Lookup after Pop: %v", err)
	}
	if got != LValue(outer) {
		t.Fatalf("got %#v, want outer visible again after Pop", got)
	}
}

func TestLookupUndefinedNameFails(t *testing.T) {
	s := New()
	_, err := s.Lookup("nope")
	if _, ok := err.(UndefinedNameError); !ok {
		t.Fatalf("want UndefinedNameError, got %v (%T)", err, err)
	}
}

func TestLookupLazyResolvesAtGetNotAtCallTime(t *testing.T) {
	s := New()
	future := s.LookupLazy("later")
	// Not yet defined: resolving now would fail, but we haven't called Get.
	if err := s.Define("later", stubLValue{name: "later"}); err != nil {
		t.Fatalf("Define: %v", err)
	}
	got, err := future.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != LValue(stubLValue{name: "later"}) {
		t.Fatalf("got %#v, want the binding defined after LookupLazy was called", got)
	}
}

func TestLookupLazyStillUnboundFails(t *testing.T) {
	s := New()
	future := s.LookupLazy("ghost")
	_, err := future.Get()
	if _, ok := err.(UndefinedNameError); !ok {
		t.Fatalf("want UndefinedNameError, got %v (%T)", err, err)
	}
}

func TestLookupLazyCachesResult(t *testing.T) {
	s := New()
	if err := s.Define("x", stubLValue{name: "x"}); err != nil {
		t.Fatalf("Define: %v", err)
	}
	future := s.LookupLazy("x")
	first, err := future.Get()
	if err != nil {
		t.Fatalf("first Get: %v", err)
	}
	s.Push()
	if err := s.Define("x", stubLValue{name: "shadow"}); err != nil {
		t.Fatalf("Define shadow: %v", err)
	}
	second, err := future.Get()
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if second != first {
		t.Fatalf("Future re-resolved instead of caching: first %#v, second %#v", first, second)
	}
}
