package scope

import (
	"testing"

	"rbc/ir"
	"rbc/refvm"
)

// runWithBuilder builds a niladic "b.main" whose body is produced by build
// (which may use and return an LValue), then runs it via refvm and returns
// the result word. This exercises ModuleCell/StackSlot/DerefCell/ExternRef
// against a real ir.Builder rather than a mock, the same way the emitter
// will use them.
func runWithBuilder(t *testing.T, build func(b *refvm.Builder) LValue, use func(b *refvm.Builder, l LValue)) int64 {
	t.Helper()
	b := refvm.NewBuilder(refvm.DefaultBytesPerWord)
	fn := b.DeclareFunction("b.main", 0)
	entry := b.DefineFunction(fn)
	b.SetInsertBlock(entry)

	l := build(b)
	use(b, l)

	vm := refvm.New(b.Module(), refvm.DefaultBytesPerWord)
	result, err := vm.RunMain("b.main")
	if err != nil {
		t.Fatalf("RunMain: %v", err)
	}
	return result
}

func TestModuleCellFetchStore(t *testing.T) {
	got := runWithBuilder(t, func(b *refvm.Builder) LValue {
		return ModuleCell{Global: b.DeclareGlobal("g", 1)}
	}, func(b *refvm.Builder, l LValue) {
		l.Store(b, b.ConstWord(7))
		b.Ret(l.Fetch(b))
	})
	if got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
}

func TestModuleCellAddressIsGlobalWordIndex(t *testing.T) {
	got := runWithBuilder(t, func(b *refvm.Builder) LValue {
		return ModuleCell{Global: b.DeclareGlobal("g", 5)}
	}, func(b *refvm.Builder, l LValue) {
		// &g should be a loadable address: *(&g) == fetch(g).
		b.Ret(b.Load(l.Address(b)))
	})
	if got != 5 {
		t.Fatalf("got %d, want 5", got)
	}
}

func TestStackSlotFetchStore(t *testing.T) {
	got := runWithBuilder(t, func(b *refvm.Builder) LValue {
		return StackSlot{Addr: b.Alloca("x", 1)}
	}, func(b *refvm.Builder, l LValue) {
		l.Store(b, b.ConstWord(42))
		b.Ret(l.Fetch(b))
	})
	if got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestDerefCellFetchStore(t *testing.T) {
	got := runWithBuilder(t, func(b *refvm.Builder) LValue {
		cell := b.Alloca("cell", 1)
		b.Store(cell, b.ConstWord(0))
		return DerefCell{Addr: cell}
	}, func(b *refvm.Builder, l LValue) {
		l.Store(b, b.ConstWord(99))
		b.Ret(l.Fetch(b))
	})
	if got != 99 {
		t.Fatalf("got %d, want 99", got)
	}
}

func TestExternRefDelegatesToResolvedLValue(t *testing.T) {
	s := New()
	got := runWithBuilder(t, func(b *refvm.Builder) LValue {
		g := ModuleCell{Global: b.DeclareGlobal("shared", 3)}
		if err := s.Define("shared", g); err != nil {
			t.Fatalf("Define: %v", err)
		}
		return ExternRef{Future: s.LookupLazy("shared")}
	}, func(b *refvm.Builder, l LValue) {
		l.Store(b, b.BinOp(ir.OpAdd, l.Fetch(b), b.ConstWord(1)))
		b.Ret(l.Fetch(b))
	})
	if got != 4 {
		t.Fatalf("got %d, want 4", got)
	}
}

func TestExternRefUnresolvedPanics(t *testing.T) {
	s := New()
	ref := ExternRef{Future: s.LookupLazy("never-defined")}
	b := refvm.NewBuilder(refvm.DefaultBytesPerWord)
	fn := b.DeclareFunction("b.main", 0)
	entry := b.DefineFunction(fn)
	b.SetInsertBlock(entry)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic resolving an undefined extrn name")
		}
		if _, ok := r.(UndefinedNameError); !ok {
			t.Fatalf("want UndefinedNameError panic, got %v (%T)", r, r)
		}
	}()
	ref.Fetch(b)
}
