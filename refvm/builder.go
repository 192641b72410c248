package refvm

import (
	"rbc/ir"
)

// registerRef is refvm's concrete ir.Value: a virtual register within the
// function currently being built. Every Builder method that "produces a
// value" allocates a fresh register and returns its ref; every method that
// "consumes a value" expects one back.
type registerRef struct{ reg int }

// Builder implements ir.Builder against an in-memory Module, later run by
// a VM. It is the adapted, completed descendant of the teacher's
// compiler package — generalized from nilan's single-opcode bytecode
// emitter into a full register-machine builder (see DESIGN.md).
type Builder struct {
	module       *Module
	bytesPerWord int

	fn    *funcDef
	block *blockDef
	// blockIndex maps a block handle (the *blockDef pointer, wrapped as
	// ir.Block) back to its position in fn.blocks, for Br/CondBr targets.
	blockIndex map[*blockDef]int
}

// DefaultBytesPerWord matches lexer.DefaultBytesPerWord: callers that build
// both a lexer and this Builder (cmd/rbc's pipeline, the emitter tests)
// pass the same word size to each.
const DefaultBytesPerWord = 8

// NewBuilder returns a Builder over a fresh, empty Module, packing string
// constants bytesPerWord bytes to a word (spec.md §3's BYTES_PER_WORD).
func NewBuilder(bytesPerWord int) *Builder {
	return &Builder{module: newModule(), bytesPerWord: bytesPerWord, blockIndex: map[*blockDef]int{}}
}

// Module returns the program built so far, for handing to a VM.
func (b *Builder) Module() *Module { return b.module }

func (b *Builder) newReg() registerRef {
	r := registerRef{reg: b.fn.numRegs}
	b.fn.numRegs++
	return r
}

func reg(v ir.Value) int {
	r, ok := v.(registerRef)
	if !ok {
		panic(newDeveloperError("expected a refvm register value, got %T", v))
	}
	return r.reg
}

func (b *Builder) emit(instr instruction) {
	b.block.instrs = append(b.block.instrs, instr)
}

// ---- globals and constants ----

func (b *Builder) DeclareGlobal(name string, init int64) ir.Global {
	return b.module.addGlobal(name, []int64{init})
}

func (b *Builder) DeclareGlobalArray(name string, inits []int64) ir.Global {
	return b.module.addGlobal(name, inits)
}

// packBytes packs a byte sequence into words exactly like a character
// literal (spec.md §3): byte i goes into byte i%BytesPerWord of word
// i/BytesPerWord, least-significant first.
func packBytes(bytes []byte, bytesPerWord int) []int64 {
	n := (len(bytes) + bytesPerWord - 1) / bytesPerWord
	if n == 0 {
		n = 1
	}
	words := make([]int64, n)
	for i, c := range bytes {
		words[i/bytesPerWord] |= int64(c) << (8 * uint(i%bytesPerWord))
	}
	return words
}

func (b *Builder) DeclareConstBytes(name string, bytes []byte) ir.Global {
	return b.module.addGlobal(name, packBytes(bytes, b.bytesPerWord))
}

func (b *Builder) GlobalAddr(g ir.Global) ir.Value {
	gd := g.(*globalDef)
	dst := b.newReg()
	b.emit(instruction{op: opGlobalAddr, dst: dst.reg, global: gd})
	return dst
}

func (b *Builder) GlobalIndex(g ir.Global) int64 {
	return int64(g.(*globalDef).addr)
}

// ---- functions and blocks ----

func (b *Builder) DeclareFunction(name string, arity int) ir.Func {
	return b.module.addFunction(name, arity)
}

// DeclareNative registers a Go-implemented runtime entry (spec.md §6's
// runtime library contract) under name, callable from B code exactly like
// any other declared function. It is not part of ir.Builder — no emitted
// B code calls it directly — the runtime package calls it once per entry
// before compilation begins.
func (b *Builder) DeclareNative(name string, arity int, fn NativeFunc) ir.Func {
	fd := b.module.addFunction(name, arity)
	fd.native = fn
	return fd
}

func (b *Builder) DefineFunction(fn ir.Func) ir.Block {
	b.fn = fn.(*funcDef)
	b.blockIndex = map[*blockDef]int{}
	return b.CreateBlock("entry")
}

// DeclareFunctionGlobal emits a module-scope global cell whose initial
// word is fn's address — the storage a function name (user-defined or a
// runtime-provided native) binds to in module scope (spec.md §4.3: "main
// and other functions are module-scope LValues whose stored word is the
// function's address"). Because the cell is ordinary global storage, B
// code may later Load/Store through it like any other function pointer.
func (b *Builder) DeclareFunctionGlobal(name string, fn ir.Func) ir.Global {
	fd := fn.(*funcDef)
	return b.module.addGlobal(name, []int64{fd.addr})
}

func (b *Builder) FuncAddr(fn ir.Func) ir.Value {
	fd := fn.(*funcDef)
	dst := b.newReg()
	b.emit(instruction{op: opFuncAddr, dst: dst.reg, fn: fd})
	return dst
}

func (b *Builder) CreateBlock(name string) ir.Block {
	blk := &blockDef{name: name}
	b.blockIndex[blk] = len(b.fn.blocks)
	b.fn.blocks = append(b.fn.blocks, blk)
	return blk
}

func (b *Builder) SetInsertBlock(blk ir.Block) {
	b.block = blk.(*blockDef)
}

// ---- memory ----

func (b *Builder) Alloca(name string, count int) ir.Value {
	dst := b.newReg()
	b.emit(instruction{op: opAlloca, dst: dst.reg, imm: int64(count)})
	return dst
}

func (b *Builder) Load(addr ir.Value) ir.Value {
	dst := b.newReg()
	b.emit(instruction{op: opLoad, dst: dst.reg, a: reg(addr)})
	return dst
}

func (b *Builder) Store(addr ir.Value, v ir.Value) {
	b.emit(instruction{op: opStore, dst: -1, a: reg(addr), b: reg(v)})
}

func (b *Builder) ConstWord(w int64) ir.Value {
	dst := b.newReg()
	b.emit(instruction{op: opConst, dst: dst.reg, imm: w})
	return dst
}

func (b *Builder) Param(index int) ir.Value {
	dst := b.newReg()
	b.emit(instruction{op: opParam, dst: dst.reg, imm: int64(index)})
	return dst
}

// ---- arithmetic ----

func (b *Builder) BinOp(op ir.Op, l, r ir.Value) ir.Value {
	dst := b.newReg()
	b.emit(instruction{op: opBin, dst: dst.reg, a: reg(l), b: reg(r), binOp: op})
	return dst
}

func (b *Builder) Neg(v ir.Value) ir.Value {
	dst := b.newReg()
	b.emit(instruction{op: opNeg, dst: dst.reg, a: reg(v)})
	return dst
}

func (b *Builder) Not(v ir.Value) ir.Value {
	dst := b.newReg()
	b.emit(instruction{op: opNot, dst: dst.reg, a: reg(v)})
	return dst
}

func (b *Builder) Complement(v ir.Value) ir.Value {
	dst := b.newReg()
	b.emit(instruction{op: opCompl, dst: dst.reg, a: reg(v)})
	return dst
}

// ToPointer/FromPointer are the identity in refvm: its memory arena is
// already word-indexed natively, so there is no separate byte-addressed
// space to convert to or from (spec.md §4.4's boundary exists for
// byte-addressed backends; refvm has no such boundary).
func (b *Builder) ToPointer(v ir.Value) ir.Value   { return v }
func (b *Builder) FromPointer(v ir.Value) ir.Value { return v }

// ---- control flow ----

func (b *Builder) Br(target ir.Block) {
	idx := b.blockIndex[target.(*blockDef)]
	b.emit(instruction{op: opBr, dst: -1, thenBlock: idx})
}

func (b *Builder) CondBr(cond ir.Value, then, els ir.Block) {
	b.emit(instruction{
		op: opCondBr, dst: -1, a: reg(cond),
		thenBlock: b.blockIndex[then.(*blockDef)],
		elseBlock: b.blockIndex[els.(*blockDef)],
	})
}

func (b *Builder) Call(callee ir.Value, args []ir.Value) ir.Value {
	argRegs := make([]int, len(args))
	for i, a := range args {
		argRegs[i] = reg(a)
	}
	dst := b.newReg()
	b.emit(instruction{op: opCall, dst: dst.reg, a: reg(callee), args: argRegs})
	return dst
}

func (b *Builder) Ret(v ir.Value) {
	a := -1
	if v != nil {
		a = reg(v)
	}
	b.emit(instruction{op: opRet, dst: -1, a: a})
}
