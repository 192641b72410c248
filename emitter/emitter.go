// Package emitter walks a B AST (rbc/ast) and drives an rbc/ir.Builder to
// produce a module, resolving names through rbc/scope (spec.md §4). It is
// the adapted descendant of the teacher's ASTCompiler — same panic/recover
// error-reporting shape, same single-pass-over-statements structure — built
// against an abstract Builder instead of a concrete bytecode stream.
package emitter

import (
	"fmt"

	"rbc/ast"
	"rbc/ir"
	"rbc/scope"
)

// Emitter holds the state threaded through one Program's emission: the
// Builder being driven, the name scope (module frame plus whatever function
// frame is currently open), and bookkeeping for anonymous string constants
// and break targets.
type Emitter struct {
	builder  ir.Builder
	scope    *scope.Scope
	wordSize int

	anonCounter int

	// funcs maps a function's source name to the ir.Func phase A declared
	// for it, so phase B can DefineFunction against the same handle.
	funcs map[string]ir.Func

	// breakTargets is a stack of blocks a "break" statement should jump to
	// — the end of the innermost enclosing while or switch (spec.md §4.4's
	// "break transfers to the statement immediately following the
	// innermost enclosing while or switch").
	breakTargets []ir.Block

	// labelBlocks maps a label name to its pre-created block within the
	// function currently being emitted (spec.md §4.4 step 2: label blocks
	// are created before the body is walked, so a goto to a
	// not-yet-encountered label resolves immediately).
	labelBlocks map[string]ir.Block

	// switchCaseBlocks is a stack of (case constant -> pre-created block)
	// maps, one per currently-open switch, innermost last — a case label
	// dispatches into its own switch, never an enclosing one (the same
	// nesting rule collectCases already applies when gathering constants).
	switchCaseBlocks []map[int64]ir.Block
}

// New returns an Emitter over the caller's scope s, ready for EmitProgram.
// Callers that need runtime entries visible to B code (b.putchar and
// friends) must register them into s before calling EmitProgram — see
// rbc/runtime.Register.
func New(builder ir.Builder, s *scope.Scope, wordSize int) *Emitter {
	return &Emitter{builder: builder, scope: s, wordSize: wordSize, funcs: map[string]ir.Func{}}
}

// EmitProgram emits every Def in prog, in two phases (spec.md §4.3's
// forward-reference guarantee): phase A binds every top-level name into
// module scope without emitting any function body, so that a function
// defined earlier in the file may call one defined later; phase B then
// emits each function body in turn. Any emitter invariant violation or
// unresolved-name error surfaces as a returned error rather than a panic,
// mirroring the teacher's CompileAST recover boundary.
func (e *Emitter) EmitProgram(prog *ast.Program) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case error:
				err = v
			default:
				panic(r)
			}
		}
	}()

	var functions []*ast.FunctionDefinition
	for _, def := range prog.Defs {
		if fn, ok := e.bindTopLevel(def); ok {
			functions = append(functions, fn)
		}
	}
	for _, fn := range functions {
		e.emitFunctionBody(fn)
	}
	return nil
}

// bindTopLevel is phase A for one Def: it declares the def's storage and
// binds its name into module scope. A FunctionDefinition is also returned
// (ok=true) so EmitProgram can come back and emit its body in phase B.
func (e *Emitter) bindTopLevel(def ast.Def) (fn *ast.FunctionDefinition, ok bool) {
	switch d := def.(type) {
	case *ast.SimpleDefinition:
		e.bindSimpleDefinition(d)
	case *ast.VectorDefinition:
		e.bindVectorDefinition(d)
	case *ast.FunctionDefinition:
		e.bindFunctionDefinition(d)
		return d, true
	default:
		panic(InternalError{Message: fmt.Sprintf("unknown top-level definition %T", def)})
	}
	return nil, false
}

func (e *Emitter) bindSimpleDefinition(d *ast.SimpleDefinition) {
	var init int64
	if d.Init != nil {
		init = e.evalConstInit(d.Init)
	}
	g := e.builder.DeclareGlobal(ir.Mangle(d.Name), init)
	e.define(d.Name, scope.ModuleCell{Global: g})
}

// bindVectorDefinition emits the vector's backing cells plus a separate
// header cell holding their base word-index, and binds the vector's name
// to the header (spec.md §4.4's "Global emission": "name evaluates to the
// word-index of cell 0, not to cell 0 itself").
func (e *Emitter) bindVectorDefinition(d *ast.VectorDefinition) {
	inits := make([]int64, len(d.Inits))
	for i, iv := range d.Inits {
		inits[i] = e.evalConstInit(iv)
	}
	size := len(inits)
	if d.MaxIndex != nil {
		maxIdx := e.evalConstInit(d.MaxIndex)
		if want := int(maxIdx) + 1; want > size {
			size = want
		}
	}
	if size == 0 {
		size = 1
	}
	for len(inits) < size {
		inits = append(inits, 0)
	}

	body := e.builder.DeclareGlobalArray(ir.Mangle(d.Name)+".data", inits)
	header := e.builder.DeclareGlobal(ir.Mangle(d.Name), e.builder.GlobalIndex(body))
	e.define(d.Name, scope.ModuleCell{Global: header})
}

func (e *Emitter) bindFunctionDefinition(d *ast.FunctionDefinition) {
	mangled := ir.Mangle(d.Name)
	fn := e.builder.DeclareFunction(mangled, len(d.Params))
	g := e.builder.DeclareFunctionGlobal(mangled, fn)
	e.define(d.Name, scope.ModuleCell{Global: g})
	e.funcs[d.Name] = fn
}

func (e *Emitter) define(name string, lvalue scope.LValue) {
	if err := e.scope.Define(name, lvalue); err != nil {
		panic(err)
	}
}

func (e *Emitter) declareAnonString(bytes []byte) ir.Global {
	name := fmt.Sprintf(".str%d", e.anonCounter)
	e.anonCounter++
	return e.builder.DeclareConstBytes(name, bytes)
}
