package emitter

import (
	"fmt"

	"rbc/ast"
	"rbc/ir"
	"rbc/scope"
	"rbc/token"
)

// emitRvalue evaluates expr for its value and returns that word alone; no
// originating lvalue travels with it; "&" instead re-emits its operand
// through emitLvalue. Dispatch goes through ast.ExprVisitor so every
// expression kind is handled in exactly one place.
func (e *Emitter) emitRvalue(expr ast.Expr) ir.Value {
	return expr.Accept(rvalueVisitor{e}).(ir.Value)
}

// emitLvalue evaluates expr for the storage it names, panicking
// NotAnLValueError if expr has no lvalue form (spec.md §3: "not every
// expression has an lvalue form — a literal or the result of a binary
// operator does not").
func (e *Emitter) emitLvalue(expr ast.Expr) scope.LValue {
	return expr.Accept(lvalueVisitor{e}).(scope.LValue)
}

func (e *Emitter) lookupLValue(name string) scope.LValue {
	lv, err := e.scope.Lookup(name)
	if err != nil {
		panic(err)
	}
	return lv
}

// binOpFor maps a plain binary-operator token to the ir.Op it emits.
func binOpFor(tok token.Type) (ir.Op, bool) {
	switch tok {
	case token.PLUS:
		return ir.OpAdd, true
	case token.MINUS:
		return ir.OpSub, true
	case token.STAR:
		return ir.OpMul, true
	case token.SLASH:
		return ir.OpDiv, true
	case token.PERCENT:
		return ir.OpMod, true
	case token.AMP:
		return ir.OpAnd, true
	case token.PIPE:
		return ir.OpOr, true
	case token.SHL:
		return ir.OpShl, true
	case token.SHR:
		return ir.OpShr, true
	case token.EQ:
		return ir.OpEq, true
	case token.NE:
		return ir.OpNe, true
	case token.LT:
		return ir.OpLt, true
	case token.GT:
		return ir.OpGt, true
	case token.LE:
		return ir.OpLe, true
	case token.GE:
		return ir.OpGe, true
	default:
		return 0, false
	}
}

// compoundOpFor maps an "=op" compound-assignment token to the ir.Op it
// applies (spec.md §3's historical "=op" spelling, e.g. "x =+ 1" means
// "x = x + 1").
func compoundOpFor(tok token.Type) (ir.Op, bool) {
	switch tok {
	case token.ASSIGN_PLUS:
		return ir.OpAdd, true
	case token.ASSIGN_MINUS:
		return ir.OpSub, true
	case token.ASSIGN_STAR:
		return ir.OpMul, true
	case token.ASSIGN_SLASH:
		return ir.OpDiv, true
	case token.ASSIGN_PERCENT:
		return ir.OpMod, true
	case token.ASSIGN_PIPE:
		return ir.OpOr, true
	case token.ASSIGN_AMP:
		return ir.OpAnd, true
	case token.ASSIGN_SHL:
		return ir.OpShl, true
	case token.ASSIGN_SHR:
		return ir.OpShr, true
	case token.ASSIGN_EQ:
		return ir.OpEq, true
	case token.ASSIGN_NE:
		return ir.OpNe, true
	case token.ASSIGN_LT:
		return ir.OpLt, true
	case token.ASSIGN_GT:
		return ir.OpGt, true
	case token.ASSIGN_LE:
		return ir.OpLe, true
	case token.ASSIGN_GE:
		return ir.OpGe, true
	default:
		return 0, false
	}
}

// rvalueVisitor emits expr for its value.
type rvalueVisitor struct{ e *Emitter }

func (v rvalueVisitor) VisitNumeric(expr *ast.NumericExpr) any {
	return v.e.builder.ConstWord(expr.Value)
}

func (v rvalueVisitor) VisitCharacter(expr *ast.CharacterExpr) any {
	return v.e.builder.ConstWord(expr.Value)
}

// VisitString evaluates a string literal to the word-index of its first
// packed word (spec.md §3: "a string literal evaluates, as an rvalue, to
// the address of its first word") — the same shape as a vector name.
func (v rvalueVisitor) VisitString(expr *ast.StringExpr) any {
	g := v.e.declareAnonString(expr.Bytes)
	return v.e.builder.GlobalAddr(g)
}

func (v rvalueVisitor) VisitName(expr *ast.NameExpr) any {
	return v.e.lookupLValue(expr.Name).Fetch(v.e.builder)
}

func (v rvalueVisitor) VisitUnary(expr *ast.UnaryExpr) any {
	b := v.e.builder
	switch expr.Op {
	case token.MINUS:
		return b.Neg(v.e.emitRvalue(expr.Operand))
	case token.BANG:
		return b.Not(v.e.emitRvalue(expr.Operand))
	case token.TILDE:
		return b.Complement(v.e.emitRvalue(expr.Operand))
	case token.STAR:
		addr := b.ToPointer(v.e.emitRvalue(expr.Operand))
		return b.Load(addr)
	case token.AMP:
		lv := v.e.emitLvalue(expr.Operand)
		return b.FromPointer(lv.Address(b))
	case token.INCR, token.DECR:
		return v.e.emitIncDec(expr)
	default:
		panic(InternalError{Message: fmt.Sprintf("unsupported unary operator %s", expr.Op)})
	}
}

func (e *Emitter) emitIncDec(expr *ast.UnaryExpr) ir.Value {
	lv := e.emitLvalue(expr.Operand)
	old := lv.Fetch(e.builder)
	op := ir.OpAdd
	if expr.Op == token.DECR {
		op = ir.OpSub
	}
	updated := e.builder.BinOp(op, old, e.builder.ConstWord(1))
	lv.Store(e.builder, updated)
	if expr.Postfix {
		return old
	}
	return updated
}

func (v rvalueVisitor) VisitBinary(expr *ast.BinaryExpr) any {
	op, ok := binOpFor(expr.Op)
	if !ok {
		panic(InternalError{Message: fmt.Sprintf("unsupported binary operator %s", expr.Op)})
	}
	// Both operands are always evaluated (spec.md §3: "& and | are eager
	// bitwise operators, never short-circuiting").
	l := v.e.emitRvalue(expr.Left)
	r := v.e.emitRvalue(expr.Right)
	return v.e.builder.BinOp(op, l, r)
}

func (v rvalueVisitor) VisitTernary(expr *ast.TernaryExpr) any {
	b := v.e.builder
	cond := v.e.emitRvalue(expr.Cond)
	thenBlk := b.CreateBlock("tern.then")
	elseBlk := b.CreateBlock("tern.else")
	mergeBlk := b.CreateBlock("tern.end")
	tmp := b.Alloca("tern.tmp", 1)

	b.CondBr(cond, thenBlk, elseBlk)

	b.SetInsertBlock(thenBlk)
	b.Store(tmp, v.e.emitRvalue(expr.Then))
	b.Br(mergeBlk)

	b.SetInsertBlock(elseBlk)
	b.Store(tmp, v.e.emitRvalue(expr.Else))
	b.Br(mergeBlk)

	b.SetInsertBlock(mergeBlk)
	return b.Load(tmp)
}

func (v rvalueVisitor) VisitAssign(expr *ast.AssignExpr) any {
	lv := v.e.emitLvalue(expr.LValue)
	if expr.Op == token.ASSIGN {
		rv := v.e.emitRvalue(expr.RValue)
		lv.Store(v.e.builder, rv)
		return rv
	}
	op, ok := compoundOpFor(expr.Op)
	if !ok {
		panic(InternalError{Message: fmt.Sprintf("unsupported compound assignment %s", expr.Op)})
	}
	old := lv.Fetch(v.e.builder)
	rv := v.e.emitRvalue(expr.RValue)
	result := v.e.builder.BinOp(op, old, rv)
	lv.Store(v.e.builder, result)
	return result
}

func (v rvalueVisitor) VisitCall(expr *ast.CallExpr) any {
	callee := v.e.emitRvalue(expr.Callee)
	args := make([]ir.Value, len(expr.Args))
	for i, a := range expr.Args {
		args[i] = v.e.emitRvalue(a)
	}
	return v.e.builder.Call(callee, args)
}

// VisitIndex evaluates "base[index]" as *(base + index) (spec.md §3).
func (v rvalueVisitor) VisitIndex(expr *ast.IndexExpr) any {
	return v.e.emitLvalue(expr).Fetch(v.e.builder)
}

// lvalueVisitor emits expr for the storage it names.
type lvalueVisitor struct{ e *Emitter }

func (v lvalueVisitor) VisitNumeric(expr *ast.NumericExpr) any {
	panic(NotAnLValueError{Message: "a numeric literal"})
}

func (v lvalueVisitor) VisitCharacter(expr *ast.CharacterExpr) any {
	panic(NotAnLValueError{Message: "a character literal"})
}

func (v lvalueVisitor) VisitString(expr *ast.StringExpr) any {
	panic(NotAnLValueError{Message: "a string literal"})
}

func (v lvalueVisitor) VisitName(expr *ast.NameExpr) any {
	return v.e.lookupLValue(expr.Name)
}

func (v lvalueVisitor) VisitUnary(expr *ast.UnaryExpr) any {
	if expr.Op != token.STAR {
		panic(NotAnLValueError{Message: fmt.Sprintf("unary %s has no lvalue form", expr.Op)})
	}
	addr := v.e.builder.ToPointer(v.e.emitRvalue(expr.Operand))
	return scope.DerefCell{Addr: addr}
}

func (v lvalueVisitor) VisitBinary(expr *ast.BinaryExpr) any {
	panic(NotAnLValueError{Message: "a binary expression"})
}

func (v lvalueVisitor) VisitTernary(expr *ast.TernaryExpr) any {
	panic(NotAnLValueError{Message: "a ternary expression"})
}

func (v lvalueVisitor) VisitAssign(expr *ast.AssignExpr) any {
	panic(NotAnLValueError{Message: "an assignment expression"})
}

func (v lvalueVisitor) VisitCall(expr *ast.CallExpr) any {
	panic(NotAnLValueError{Message: "a call expression"})
}

// VisitIndex evaluates "base[index]"'s lvalue form: *(base + index).
func (v lvalueVisitor) VisitIndex(expr *ast.IndexExpr) any {
	b := v.e.builder
	base := v.e.emitRvalue(expr.Base)
	idx := v.e.emitRvalue(expr.Index)
	addr := b.ToPointer(b.BinOp(ir.OpAdd, base, idx))
	return scope.DerefCell{Addr: addr}
}
