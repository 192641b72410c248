// Package ir declares the abstract IR-builder contract the emitter drives
// (spec.md §4.5). It names operations only; any backend — refvm (this
// module's reference interpreter) or a real code-generation toolkit — may
// implement Builder without the emitter knowing which.
package ir

// Value, Block, Func, and Global are opaque handles a Builder implementation
// hands back to the emitter and later accepts as arguments. The emitter
// never inspects them; it only threads them between Builder calls. A
// register-machine backend (refvm) represents a Value as a virtual
// register; an SSA-form backend would represent it as a real instruction
// result.
type (
	Value  any
	Block  any
	Func   any
	Global any
)

// Op enumerates the binary operators the emitter asks a Builder to apply.
// All operate on the word type with two's-complement wraparound (spec.md
// §4.4 "Operator semantics"); Div and Mod are signed.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpAnd // bitwise/eager logical &
	OpOr  // bitwise/eager logical |
	OpShl
	OpShr
	OpEq
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
)

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	case OpMod:
		return "mod"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpShl:
		return "shl"
	case OpShr:
		return "shr"
	case OpEq:
		return "eq"
	case OpNe:
		return "ne"
	case OpLt:
		return "lt"
	case OpGt:
		return "gt"
	case OpLe:
		return "le"
	case OpGe:
		return "ge"
	default:
		return "op?"
	}
}

// Builder is the collaborator the emitter depends on exclusively (spec.md
// §4.5). It covers module/function/block construction, memory access,
// arithmetic, control flow, and global/constant declaration — nothing more.
type Builder interface {
	// DeclareGlobal emits a module-scope word cell named name, initialized
	// to init, and returns a handle to it.
	DeclareGlobal(name string, init int64) Global
	// DeclareGlobalArray emits len(inits) contiguous module-scope word
	// cells and returns a handle to the first — the backing storage for a
	// VectorDefinition (spec.md §4.4 "Global emission").
	DeclareGlobalArray(name string, inits []int64) Global
	// DeclareConstBytes emits a module-scope read-only byte array, packed
	// BYTES_PER_WORD bytes per word exactly like a character literal.
	DeclareConstBytes(name string, bytes []byte) Global
	// GlobalAddr produces the word-index of g as a Value, usable wherever
	// a runtime-computed value is needed (e.g. loaded through later).
	GlobalAddr(g Global) Value
	// GlobalIndex returns g's word-index as a compile-time literal,
	// usable as another global's constant initializer (spec.md §4.4:
	// "Initializers ... may themselves be ... string literals" — the
	// initializer word is the string global's word-index, known the
	// moment it is declared on a backend with no position-independent
	// relocation to defer it through).
	GlobalIndex(g Global) int64

	// DeclareFunction registers a function of the given arity (word
	// parameters) without a body — the emitter declares every function
	// definition this way before emitting any body, so calls may precede
	// the callee's definition.
	DeclareFunction(name string, arity int) Func
	// DefineFunction begins a definition for a previously-declared
	// function, returning the entry block.
	DefineFunction(fn Func) Block
	// FuncAddr produces the word-index of fn's entry point as a Value.
	FuncAddr(fn Func) Value
	// DeclareFunctionGlobal emits a module-scope global cell whose initial
	// word is fn's address — the storage a function name is bound to in
	// module scope (spec.md §4.3: "main and other functions are
	// module-scope LValues whose stored word is the function's address").
	DeclareFunctionGlobal(name string, fn Func) Global

	// CreateBlock allocates a new basic block within the function
	// currently being defined.
	CreateBlock(name string) Block
	// SetInsertBlock redirects subsequent emission to b.
	SetInsertBlock(b Block)

	// Alloca reserves a word-sized stack cell (or, with count>1, a
	// contiguous run of count cells) in the current function's frame and
	// returns the word-index of its first cell.
	Alloca(name string, count int) Value
	Load(addr Value) Value
	Store(addr Value, v Value)

	ConstWord(w int64) Value
	// Param produces the value of the index-th incoming parameter.
	Param(index int) Value

	BinOp(op Op, l, r Value) Value
	Neg(v Value) Value      // unary -
	Not(v Value) Value      // unary ! (1 if v == 0 else 0)
	Complement(v Value) Value // unary ~

	// ToPointer/FromPointer are the only boundary between word-indexed
	// addresses and byte-addressed pointers (spec.md §4.4). A word-indexed
	// backend may implement both as the identity.
	ToPointer(v Value) Value
	FromPointer(v Value) Value

	Br(target Block)
	CondBr(cond Value, then, els Block)
	// Call converts callee (a word-index) to a function pointer of the
	// given arity and invokes it with args.
	Call(callee Value, args []Value) Value
	Ret(v Value)
}
