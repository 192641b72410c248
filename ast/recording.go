package ast

import "rbc/token"

// Record is one entry in a RecordingFactory's trace: the grammar rule name
// and the field values the parser supplied for it.
type Record struct {
	Rule   string
	Fields []any
}

// RecordingFactory proves spec.md §8 property 8 ("parser-semantics
// independence"): it is a NodeFactory that makes no use of the real AST
// representation, only a flat log of (rule, fields) tuples, yet the parser
// drives it through exactly the same calls it makes against DefaultFactory.
// It still returns values satisfying Expr/Stmt/Def (backed by
// DefaultFactory) purely so the parser can keep composing nested calls;
// the authoritative output for a test is the trace, not the returned node.
type RecordingFactory struct {
	inner DefaultFactory
	Trace []Record
}

func NewRecordingFactory() *RecordingFactory {
	return &RecordingFactory{}
}

func (f *RecordingFactory) record(rule string, fields ...any) {
	f.Trace = append(f.Trace, Record{Rule: rule, Fields: fields})
}

func (f *RecordingFactory) Program(defs []Def) Def {
	f.record("program", defs)
	return f.inner.Program(defs)
}

func (f *RecordingFactory) SimpleDefinition(name string, init Expr) Def {
	f.record("simpledef", name, init)
	return f.inner.SimpleDefinition(name, init)
}

func (f *RecordingFactory) VectorDefinition(name string, maxIndex Expr, inits []Expr) Def {
	f.record("vectordef", name, maxIndex, inits)
	return f.inner.VectorDefinition(name, maxIndex, inits)
}

func (f *RecordingFactory) FunctionDefinition(name string, params []string, body Stmt) Def {
	f.record("functiondef", name, params, body)
	return f.inner.FunctionDefinition(name, params, body)
}

func (f *RecordingFactory) Numeric(tok token.Token, value int64) Expr {
	f.record("numericexpr", value)
	return f.inner.Numeric(tok, value)
}

func (f *RecordingFactory) Character(tok token.Token, value int64) Expr {
	f.record("characterexpr", value)
	return f.inner.Character(tok, value)
}

func (f *RecordingFactory) String(tok token.Token, bytes []byte) Expr {
	f.record("stringexpr", bytes)
	return f.inner.String(tok, bytes)
}

func (f *RecordingFactory) Name(tok token.Token, name string) Expr {
	f.record("nameexpr", name)
	return f.inner.Name(tok, name)
}

func (f *RecordingFactory) Unary(tok token.Token, op token.Type, operand Expr, postfix bool) Expr {
	f.record("unaryexpr", op, operand, postfix)
	return f.inner.Unary(tok, op, operand, postfix)
}

func (f *RecordingFactory) Binary(tok token.Token, op token.Type, left, right Expr) Expr {
	f.record("binaryexpr", op, left, right)
	return f.inner.Binary(tok, op, left, right)
}

func (f *RecordingFactory) Ternary(cond, then, els Expr) Expr {
	f.record("ternaryexpr", cond, then, els)
	return f.inner.Ternary(cond, then, els)
}

func (f *RecordingFactory) Assign(tok token.Token, op token.Type, lvalue, rvalue Expr) Expr {
	f.record("assignexpr", op, lvalue, rvalue)
	return f.inner.Assign(tok, op, lvalue, rvalue)
}

func (f *RecordingFactory) Call(tok token.Token, callee Expr, args []Expr) Expr {
	f.record("callexpr", callee, args)
	return f.inner.Call(tok, callee, args)
}

func (f *RecordingFactory) Index(tok token.Token, base, index Expr) Expr {
	f.record("indexexpr", base, index)
	return f.inner.Index(tok, base, index)
}

func (f *RecordingFactory) Compound(stmts []Stmt) Stmt {
	f.record("compoundstmt", stmts)
	return f.inner.Compound(stmts)
}

func (f *RecordingFactory) If(cond Expr, then, els Stmt) Stmt {
	f.record("ifstmt", cond, then, els)
	return f.inner.If(cond, then, els)
}

func (f *RecordingFactory) While(cond Expr, body Stmt) Stmt {
	f.record("whilestmt", cond, body)
	return f.inner.While(cond, body)
}

func (f *RecordingFactory) Return(value Expr) Stmt {
	f.record("returnstmt", value)
	return f.inner.Return(value)
}

func (f *RecordingFactory) Break(tok token.Token) Stmt {
	f.record("breakstmt")
	return f.inner.Break(tok)
}

func (f *RecordingFactory) Goto(tok token.Token, target Expr) Stmt {
	f.record("gotostmt", target)
	return f.inner.Goto(tok, target)
}

func (f *RecordingFactory) Label(name string, body Stmt) Stmt {
	f.record("labelstmt", name, body)
	return f.inner.Label(name, body)
}

func (f *RecordingFactory) Switch(expr Expr, body Stmt) Stmt {
	f.record("switchstmt", expr, body)
	return f.inner.Switch(expr, body)
}

func (f *RecordingFactory) Case(value int64, body Stmt) Stmt {
	f.record("casestmt", value, body)
	return f.inner.Case(value, body)
}

func (f *RecordingFactory) Auto(vars []AutoVar, body Stmt) Stmt {
	f.record("autostmt", vars, body)
	return f.inner.Auto(vars, body)
}

func (f *RecordingFactory) Extrn(names []string, body Stmt) Stmt {
	f.record("extrnstmt", names, body)
	return f.inner.Extrn(names, body)
}

func (f *RecordingFactory) ExprStmt(expr Expr) Stmt {
	f.record("exprstmt", expr)
	return f.inner.ExprStmt(expr)
}

func (f *RecordingFactory) Null() Stmt {
	f.record("nullstmt")
	return f.inner.Null()
}
