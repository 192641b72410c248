package refvm

import (
	"fmt"
	"strings"
)

// opcodeNames mirrors opcode's iota order; used only for Disassemble's
// textual rendering, never by the VM's own fetch-decode-execute loop.
var opcodeNames = [...]string{
	opConst:      "const",
	opLoad:       "load",
	opStore:      "store",
	opAlloca:     "alloca",
	opParam:      "param",
	opGlobalAddr: "global_addr",
	opFuncAddr:   "func_addr",
	opBin:        "bin",
	opNeg:        "neg",
	opNot:        "not",
	opCompl:      "compl",
	opBr:         "br",
	opCondBr:     "cond_br",
	opCall:       "call",
	opRet:        "ret",
}

// Disassemble renders m as a human-readable instruction listing, one
// function per section and one instruction per line. Grounded on
// informatter-nilan's ASTCompiler.DiassembleBytecode — same
// strings.Builder-accumulated, one-instruction-per-line shape — adapted
// from a flat byte-offset bytecode stream to a block-structured register
// machine, where the unit worth disassembling is an instruction plus its
// register operands rather than an opcode plus its encoded-operand width.
func (m *Module) Disassemble() string {
	var out strings.Builder
	for _, g := range m.globals {
		fmt.Fprintf(&out, "global %s @%d = %v\n", g.name, g.addr, g.init)
	}
	for _, fn := range m.functions {
		if fn.native != nil {
			fmt.Fprintf(&out, "\nnative %s/%d\n", fn.name, fn.arity)
			continue
		}
		fmt.Fprintf(&out, "\nfunc %s/%d {\n", fn.name, fn.arity)
		for bi, blk := range fn.blocks {
			fmt.Fprintf(&out, "%s%d: %s\n", indent, bi, blk.name)
			for _, in := range blk.instrs {
				fmt.Fprintf(&out, "%s%s\n", indent+indent, disasmInstruction(in))
			}
		}
		out.WriteString("}\n")
	}
	return out.String()
}

const indent = "  "

func disasmInstruction(in instruction) string {
	name := opcodeNames[in.op]
	var dst string
	if in.dst >= 0 {
		dst = fmt.Sprintf("r%d = ", in.dst)
	}
	switch in.op {
	case opConst:
		return fmt.Sprintf("%s%s %d", dst, name, in.imm)
	case opLoad:
		return fmt.Sprintf("%s%s r%d", dst, name, in.a)
	case opStore:
		return fmt.Sprintf("%s r%d, r%d", name, in.a, in.b)
	case opAlloca:
		return fmt.Sprintf("%s%s %d", dst, name, in.imm)
	case opParam:
		return fmt.Sprintf("%s%s %d", dst, name, in.imm)
	case opGlobalAddr:
		return fmt.Sprintf("%s%s %s", dst, name, in.global.name)
	case opFuncAddr:
		return fmt.Sprintf("%s%s %s", dst, name, in.fn.name)
	case opBin:
		return fmt.Sprintf("%s%s %s, r%d, r%d", dst, name, in.binOp, in.a, in.b)
	case opNeg, opNot, opCompl:
		return fmt.Sprintf("%s%s r%d", dst, name, in.a)
	case opBr:
		return fmt.Sprintf("%s ->%d", name, in.thenBlock)
	case opCondBr:
		return fmt.Sprintf("%s r%d, ->%d, ->%d", name, in.a, in.thenBlock, in.elseBlock)
	case opCall:
		return fmt.Sprintf("%s%s r%d(%v)", dst, name, in.a, in.args)
	case opRet:
		if in.a < 0 {
			return name
		}
		return fmt.Sprintf("%s r%d", name, in.a)
	default:
		return fmt.Sprintf("%s?", name)
	}
}
