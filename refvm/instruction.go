package refvm

import "rbc/ir"

// opcode enumerates refvm's register-machine instruction set. Grounded on
// the teacher's bytecode idiom (compiler/code.go's Opcode byte + iota
// table) but generalized to a complete, runnable set: the teacher's own
// opcode table only ever defined OP_CONSTANT, with the VM referencing
// several opcodes (OP_ADD, OPCODE_TOTAL_BYTES) that no version of the
// compiler package actually defines.
type opcode byte

const (
	opConst opcode = iota
	opLoad
	opStore
	opAlloca
	opParam
	opGlobalAddr
	opFuncAddr
	opBin
	opNeg
	opNot
	opCompl
	opBr
	opCondBr
	opCall
	opRet
)

// instruction is one register-machine operation. Unused fields are left at
// their zero value; which fields are meaningful depends on op.
type instruction struct {
	op opcode

	dst int // destination register; -1 when the instruction has none

	a, b int // operand registers, meaning depends on op
	args []int // opCall argument registers, in order

	imm   int64 // opConst's literal, opParam's index, opAlloca's cell count
	binOp ir.Op // opBin's operator

	global *globalDef // opGlobalAddr's target
	fn     *funcDef   // opFuncAddr's target

	thenBlock, elseBlock int // opBr/opCondBr targets, indices into the owning funcDef's blocks
}
