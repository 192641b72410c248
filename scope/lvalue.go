package scope

import "rbc/ir"

// LValue is a handle to one word of storage, satisfying spec.md §3's
// "fetch/store" contract: exactly one observable read operation (Fetch)
// and one mutator (Store). Address is the word-index of that storage —
// what "&name" yields — distinct from Fetch, which yields the stored word.
type LValue interface {
	Fetch(b ir.Builder) ir.Value
	Store(b ir.Builder, v ir.Value)
	Address(b ir.Builder) ir.Value
}

// ModuleCell is a module-scope word cell: the storage a SimpleDefinition
// binds its name to, and also what a VectorDefinition's header binds to
// (spec.md §4.4's "emit a header global word whose value is the word-index
// of cell 0; bind name to an LValue whose storage is the header") — both
// are, at the scope level, nothing more than one declared global.
type ModuleCell struct {
	Global ir.Global
}

func (c ModuleCell) Fetch(b ir.Builder) ir.Value   { return b.Load(b.GlobalAddr(c.Global)) }
func (c ModuleCell) Store(b ir.Builder, v ir.Value) { b.Store(b.GlobalAddr(c.Global), v) }
func (c ModuleCell) Address(b ir.Builder) ir.Value { return b.GlobalAddr(c.Global) }

// StackSlot is a word cell on the current function's frame: an auto
// variable's storage, or a parameter's storage once the emitter has copied
// its incoming argument value in (spec.md §4.3's "Function parameters are
// defined in a new scope as auto-like LValues backed by stack slots").
// Addr is the word-index Builder.Alloca already returned; StackSlot does
// not allocate, it only names a cell that was allocated for it.
type StackSlot struct {
	Addr ir.Value
}

func (s StackSlot) Fetch(b ir.Builder) ir.Value   { return b.Load(s.Addr) }
func (s StackSlot) Store(b ir.Builder, v ir.Value) { b.Store(s.Addr, v) }
func (s StackSlot) Address(b ir.Builder) ir.Value { return s.Addr }

// DerefCell is the LValue produced by "*e": storage at a word-index
// computed at emit time from e's rvalue, rather than known at definition
// time (spec.md §4.4: "*e: fetch e as rvalue w; lvalue = storage at
// word-index w"). Addr is that already-computed word-index value.
type DerefCell struct {
	Addr ir.Value
}

func (d DerefCell) Fetch(b ir.Builder) ir.Value   { return b.Load(d.Addr) }
func (d DerefCell) Store(b ir.Builder, v ir.Value) { b.Store(d.Addr, v) }
func (d DerefCell) Address(b ir.Builder) ir.Value { return d.Addr }

// ExternRef is the LValue an "extrn" name resolves to: a lazy indirection
// over module scope, since an extrn declaration only promises that some
// module-scope binding exists, not which LValue kind backs it yet (spec.md
// §4.3: "extrn x, y, z introduces names referring to module-scope LValues;
// resolution is deferred"). Its own Fetch/Store/Address simply force the
// Future and delegate, so callers never need to know a name came from an
// extrn rather than direct module scope.
type ExternRef struct {
	Future *Future
}

func (e ExternRef) resolve() (LValue, error) { return e.Future.Get() }

func (e ExternRef) Fetch(b ir.Builder) ir.Value {
	target, err := e.resolve()
	if err != nil {
		panic(err)
	}
	return target.Fetch(b)
}

func (e ExternRef) Store(b ir.Builder, v ir.Value) {
	target, err := e.resolve()
	if err != nil {
		panic(err)
	}
	target.Store(b, v)
}

func (e ExternRef) Address(b ir.Builder) ir.Value {
	target, err := e.resolve()
	if err != nil {
		panic(err)
	}
	return target.Address(b)
}
