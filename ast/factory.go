package ast

import "rbc/token"

// NodeFactory is the parser's node-constructor injection point: one method
// per grammar rule of spec.md §4.1/§4.2. The parser never constructs an AST
// node directly — it always calls through a NodeFactory, so an alternate
// backend (e.g. a graph visualizer) can substitute its own node
// representation without touching the grammar or precedence logic.
type NodeFactory interface {
	Program(defs []Def) Def
	SimpleDefinition(name string, init Expr) Def
	VectorDefinition(name string, maxIndex Expr, inits []Expr) Def
	FunctionDefinition(name string, params []string, body Stmt) Def

	Numeric(tok token.Token, value int64) Expr
	Character(tok token.Token, value int64) Expr
	String(tok token.Token, bytes []byte) Expr
	Name(tok token.Token, name string) Expr
	Unary(tok token.Token, op token.Type, operand Expr, postfix bool) Expr
	Binary(tok token.Token, op token.Type, left, right Expr) Expr
	Ternary(cond, then, els Expr) Expr
	Assign(tok token.Token, op token.Type, lvalue, rvalue Expr) Expr
	Call(tok token.Token, callee Expr, args []Expr) Expr
	Index(tok token.Token, base, index Expr) Expr

	Compound(stmts []Stmt) Stmt
	If(cond Expr, then, els Stmt) Stmt
	While(cond Expr, body Stmt) Stmt
	Return(value Expr) Stmt
	Break(tok token.Token) Stmt
	Goto(tok token.Token, target Expr) Stmt
	Label(name string, body Stmt) Stmt
	Switch(expr Expr, body Stmt) Stmt
	Case(value int64, body Stmt) Stmt
	Auto(vars []AutoVar, body Stmt) Stmt
	Extrn(names []string, body Stmt) Stmt
	ExprStmt(expr Expr) Stmt
	Null() Stmt
}

// DefaultFactory builds the real fixed-variant node structs declared in
// this package.
type DefaultFactory struct{}

func (DefaultFactory) Program(defs []Def) Def { return &Program{Defs: defs} }

func (DefaultFactory) SimpleDefinition(name string, init Expr) Def {
	return &SimpleDefinition{Name: name, Init: init}
}

func (DefaultFactory) VectorDefinition(name string, maxIndex Expr, inits []Expr) Def {
	return &VectorDefinition{Name: name, MaxIndex: maxIndex, Inits: inits}
}

func (DefaultFactory) FunctionDefinition(name string, params []string, body Stmt) Def {
	return &FunctionDefinition{Name: name, Params: params, Body: body}
}

func (DefaultFactory) Numeric(tok token.Token, value int64) Expr {
	return &NumericExpr{Value: value, Tok: tok}
}

func (DefaultFactory) Character(tok token.Token, value int64) Expr {
	return &CharacterExpr{Value: value, Tok: tok}
}

func (DefaultFactory) String(tok token.Token, bytes []byte) Expr {
	return &StringExpr{Bytes: bytes, Tok: tok}
}

func (DefaultFactory) Name(tok token.Token, name string) Expr {
	return &NameExpr{Name: name, Tok: tok}
}

func (DefaultFactory) Unary(tok token.Token, op token.Type, operand Expr, postfix bool) Expr {
	return &UnaryExpr{Op: op, Operand: operand, Postfix: postfix, Tok: tok}
}

func (DefaultFactory) Binary(tok token.Token, op token.Type, left, right Expr) Expr {
	return &BinaryExpr{Op: op, Left: left, Right: right, Tok: tok}
}

func (DefaultFactory) Ternary(cond, then, els Expr) Expr {
	return &TernaryExpr{Cond: cond, Then: then, Else: els}
}

func (DefaultFactory) Assign(tok token.Token, op token.Type, lvalue, rvalue Expr) Expr {
	return &AssignExpr{Op: op, LValue: lvalue, RValue: rvalue, Tok: tok}
}

func (DefaultFactory) Call(tok token.Token, callee Expr, args []Expr) Expr {
	return &CallExpr{Callee: callee, Args: args, Tok: tok}
}

func (DefaultFactory) Index(tok token.Token, base, index Expr) Expr {
	return &IndexExpr{Base: base, Index: index, Tok: tok}
}

func (DefaultFactory) Compound(stmts []Stmt) Stmt { return &CompoundStmt{Stmts: stmts} }

func (DefaultFactory) If(cond Expr, then, els Stmt) Stmt {
	return &IfStmt{Cond: cond, Then: then, Else: els}
}

func (DefaultFactory) While(cond Expr, body Stmt) Stmt {
	return &WhileStmt{Cond: cond, Body: body}
}

func (DefaultFactory) Return(value Expr) Stmt { return &ReturnStmt{Value: value} }

func (DefaultFactory) Break(tok token.Token) Stmt { return &BreakStmt{Tok: tok} }

func (DefaultFactory) Goto(tok token.Token, target Expr) Stmt {
	return &GotoStmt{Target: target, Tok: tok}
}

func (DefaultFactory) Label(name string, body Stmt) Stmt {
	return &LabelStmt{Name: name, Body: body}
}

func (DefaultFactory) Switch(expr Expr, body Stmt) Stmt {
	return &SwitchStmt{Expr: expr, Body: body}
}

func (DefaultFactory) Case(value int64, body Stmt) Stmt {
	return &CaseStmt{Const: value, Body: body}
}

func (DefaultFactory) Auto(vars []AutoVar, body Stmt) Stmt {
	return &AutoStmt{Vars: vars, Body: body}
}

func (DefaultFactory) Extrn(names []string, body Stmt) Stmt {
	return &ExtrnStmt{Names: names, Body: body}
}

func (DefaultFactory) ExprStmt(expr Expr) Stmt { return &ExprStmt{Expr: expr} }

func (DefaultFactory) Null() Stmt { return &NullStmt{} }
