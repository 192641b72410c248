package ast

// Def is satisfied by every top-level definition kind.
type Def interface {
	Accept(v DefVisitor) any
}

// DefVisitor has one method per top-level definition kind, plus Program
// itself (the AST root).
type DefVisitor interface {
	VisitProgram(p *Program) any
	VisitSimpleDefinition(d *SimpleDefinition) any
	VisitVectorDefinition(d *VectorDefinition) any
	VisitFunctionDefinition(d *FunctionDefinition) any
}

// Program is the AST root: a sequence of top-level definitions.
type Program struct {
	Defs []Def
}

func (p *Program) Accept(v DefVisitor) any { return v.VisitProgram(p) }

// SimpleDefinition is "name [ival];" — a single global word cell.
type SimpleDefinition struct {
	Name string
	Init Expr // nil if absent; must be a constant expression
}

func (d *SimpleDefinition) Accept(v DefVisitor) any { return v.VisitSimpleDefinition(d) }

// VectorDefinition is "name[maxidx] ivals...;" — a global word array plus
// a header cell holding its base word-index.
type VectorDefinition struct {
	Name     string
	MaxIndex Expr // nil if absent; must be a constant expression
	Inits    []Expr
}

func (d *VectorDefinition) Accept(v DefVisitor) any { return v.VisitVectorDefinition(d) }

// FunctionDefinition is "name(params...) body".
type FunctionDefinition struct {
	Name   string
	Params []string
	Body   Stmt
}

func (d *FunctionDefinition) Accept(v DefVisitor) any { return v.VisitFunctionDefinition(d) }
