package emitter

import (
	"rbc/ast"
	"rbc/ir"
	"rbc/scope"
)

// emitStmt dispatches s to the matching Visit method below.
func (e *Emitter) emitStmt(s ast.Stmt) {
	if s == nil {
		return
	}
	s.Accept(e)
}

func (e *Emitter) VisitCompound(s *ast.CompoundStmt) any {
	for _, inner := range s.Stmts {
		e.emitStmt(inner)
	}
	return nil
}

func (e *Emitter) VisitIf(s *ast.IfStmt) any {
	b := e.builder
	cond := e.emitRvalue(s.Cond)
	thenBlk := b.CreateBlock("if.then")
	mergeBlk := b.CreateBlock("if.end")
	elseBlk := mergeBlk
	if s.Else != nil {
		elseBlk = b.CreateBlock("if.else")
	}

	b.CondBr(cond, thenBlk, elseBlk)

	b.SetInsertBlock(thenBlk)
	e.emitStmt(s.Then)
	b.Br(mergeBlk)

	if s.Else != nil {
		b.SetInsertBlock(elseBlk)
		e.emitStmt(s.Else)
		b.Br(mergeBlk)
	}

	b.SetInsertBlock(mergeBlk)
	return nil
}

func (e *Emitter) VisitWhile(s *ast.WhileStmt) any {
	b := e.builder
	condBlk := b.CreateBlock("while.cond")
	bodyBlk := b.CreateBlock("while.body")
	endBlk := b.CreateBlock("while.end")

	b.Br(condBlk)
	b.SetInsertBlock(condBlk)
	cond := e.emitRvalue(s.Cond)
	b.CondBr(cond, bodyBlk, endBlk)

	b.SetInsertBlock(bodyBlk)
	e.breakTargets = append(e.breakTargets, endBlk)
	e.emitStmt(s.Body)
	e.breakTargets = e.breakTargets[:len(e.breakTargets)-1]
	b.Br(condBlk)

	b.SetInsertBlock(endBlk)
	return nil
}

func (e *Emitter) VisitReturn(s *ast.ReturnStmt) any {
	var v ir.Value
	if s.Value != nil {
		v = e.emitRvalue(s.Value)
	}
	e.builder.Ret(v)
	return nil
}

func (e *Emitter) VisitBreak(s *ast.BreakStmt) any {
	if len(e.breakTargets) == 0 {
		panic(BreakOutsideLoopError{})
	}
	e.builder.Br(e.breakTargets[len(e.breakTargets)-1])
	return nil
}

// VisitGoto only supports a statically-named label (spec.md §4.2's grammar
// always parses "goto expr" with expr restricted in practice to a label
// name); a computed goto has no lvalue or module binding to resolve
// through and is out of scope here.
func (e *Emitter) VisitGoto(s *ast.GotoStmt) any {
	name, ok := s.Target.(*ast.NameExpr)
	if !ok {
		panic(InternalError{Message: "goto target must be a label name"})
	}
	blk, ok := e.labelBlocks[name.Name]
	if !ok {
		panic(GotoTargetUnknownError{Label: name.Name})
	}
	e.builder.Br(blk)
	return nil
}

func (e *Emitter) VisitLabel(s *ast.LabelStmt) any {
	blk := e.labelBlocks[s.Name]
	e.builder.Br(blk)
	e.builder.SetInsertBlock(blk)
	e.emitStmt(s.Body)
	return nil
}

// VisitSwitch evaluates s.Expr once, then dispatches to the matching case
// block via a chain of equality comparisons (spec.md §4.4's switch
// emission). B's switch has no "default" label: if no case matches,
// control falls straight through to the statement after the switch.
func (e *Emitter) VisitSwitch(s *ast.SwitchStmt) any {
	b := e.builder
	val := e.emitRvalue(s.Expr)
	cases := collectCases(s.Body)
	after := b.CreateBlock("switch.end")

	caseBlocks := map[int64]ir.Block{}
	for _, c := range cases {
		if _, exists := caseBlocks[c.Value]; !exists {
			caseBlocks[c.Value] = b.CreateBlock("switch.case")
		}
	}

	cmpBlocks := make([]ir.Block, len(cases))
	for i := range cases {
		cmpBlocks[i] = b.CreateBlock("switch.cmp")
	}
	if len(cmpBlocks) == 0 {
		b.Br(after)
	} else {
		b.Br(cmpBlocks[0])
	}
	for i, c := range cases {
		b.SetInsertBlock(cmpBlocks[i])
		eq := b.BinOp(ir.OpEq, val, b.ConstWord(c.Value))
		next := after
		if i+1 < len(cmpBlocks) {
			next = cmpBlocks[i+1]
		}
		b.CondBr(eq, caseBlocks[c.Value], next)
	}

	e.switchCaseBlocks = append(e.switchCaseBlocks, caseBlocks)
	e.breakTargets = append(e.breakTargets, after)

	// Statements textually preceding the switch's first case (if any) are
	// unreachable via normal dispatch, same as in a real C-style switch;
	// they still need a block to live in.
	body := b.CreateBlock("switch.body")
	b.SetInsertBlock(body)
	e.emitStmt(s.Body)
	b.Br(after)

	e.breakTargets = e.breakTargets[:len(e.breakTargets)-1]
	e.switchCaseBlocks = e.switchCaseBlocks[:len(e.switchCaseBlocks)-1]

	b.SetInsertBlock(after)
	return nil
}

func (e *Emitter) VisitCase(s *ast.CaseStmt) any {
	if len(e.switchCaseBlocks) == 0 {
		panic(InternalError{Message: "case statement outside any switch"})
	}
	blocks := e.switchCaseBlocks[len(e.switchCaseBlocks)-1]
	blk, ok := blocks[s.Const]
	if !ok {
		panic(InternalError{Message: "case constant has no pre-created block"})
	}
	e.builder.Br(blk)
	e.builder.SetInsertBlock(blk)
	e.emitStmt(s.Body)
	return nil
}

// VisitAuto only emits Body: the function-wide pre-pass (collectLabelsAndAutos)
// already bound every auto variable's storage at function entry.
func (e *Emitter) VisitAuto(s *ast.AutoStmt) any {
	e.emitStmt(s.Body)
	return nil
}

// VisitExtrn resolves each named extrn eagerly against module scope —
// since phase A has already bound every top-level name before any function
// body is emitted, the binding is always already present — and wraps it in
// an ExternRef so the indirection still reads, at a use site, exactly like
// any other forward-reference lookup (spec.md §4.3).
func (e *Emitter) VisitExtrn(s *ast.ExtrnStmt) any {
	for _, name := range s.Names {
		future := e.scope.LookupLazy(name)
		if _, err := future.Get(); err != nil {
			panic(err)
		}
		e.define(name, scope.ExternRef{Future: future})
	}
	e.emitStmt(s.Body)
	return nil
}

func (e *Emitter) VisitExprStmt(s *ast.ExprStmt) any {
	e.emitRvalue(s.Expr)
	return nil
}

func (e *Emitter) VisitNull(s *ast.NullStmt) any { return nil }
