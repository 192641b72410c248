package emitter

import (
	"rbc/ast"
	"rbc/ir"
	"rbc/scope"
)

// emitFunctionBody is phase B's per-function driver (spec.md §4.4's
// function-emission algorithm): it opens a fresh scope frame, binds
// parameters and every auto variable found anywhere in the body, pre-creates
// a block for every label, then walks the body, finally appending an
// implicit "return 0" for a function that falls off its natural end.
func (e *Emitter) emitFunctionBody(d *ast.FunctionDefinition) {
	fn := e.funcs[d.Name]
	labels, autos := collectLabelsAndAutos(d.Body)

	e.scope.Push()
	defer e.scope.Pop()

	entry := e.builder.DefineFunction(fn)
	e.builder.SetInsertBlock(entry)

	for i, name := range d.Params {
		slot := e.builder.Alloca(name, 1)
		e.builder.Store(slot, e.builder.Param(i))
		e.define(name, scope.StackSlot{Addr: slot})
	}

	for _, av := range autos {
		e.bindAuto(av)
	}

	e.labelBlocks = map[string]ir.Block{}
	for _, name := range labels {
		e.labelBlocks[name] = e.builder.CreateBlock("label." + name)
	}

	e.emitStmt(d.Body)
	e.builder.Ret(e.builder.ConstWord(0))
}

// bindAuto reserves av's storage and binds its name, using the same
// header-indirection layout as a global VectorDefinition when av has a
// size (spec.md §4.3: "the LValue bound to a sized auto stores the
// word-index of the vector's first cell, not the cell itself").
func (e *Emitter) bindAuto(av ast.AutoVar) {
	if av.Size == nil {
		slot := e.builder.Alloca(av.Name, 1)
		e.define(av.Name, scope.StackSlot{Addr: slot})
		return
	}
	count := int(*av.Size) + 1
	if count < 1 {
		count = 1
	}
	data := e.builder.Alloca(av.Name+".data", count)
	header := e.builder.Alloca(av.Name, 1)
	e.builder.Store(header, data)
	e.define(av.Name, scope.StackSlot{Addr: header})
}
