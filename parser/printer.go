package parser

import (
	"encoding/json"

	"rbc/ast"
)

// astPrinter implements every Visitor interface the ast package declares
// and builds a JSON-friendly representation out of maps and slices.
// Grounded on informatter-nilan's parser/printer.go (astPrinter's same
// one-Visit-method-per-node-kind-returning-a-map shape), extended to cover
// def/statement/expression visitors since B's grammar spreads nodes across
// all three where nilan only ever had expressions and statements.
type astPrinter struct{}

func (p astPrinter) VisitProgram(prog *ast.Program) any {
	defs := make([]any, 0, len(prog.Defs))
	for _, d := range prog.Defs {
		defs = append(defs, d.Accept(p))
	}
	return map[string]any{"type": "Program", "defs": defs}
}

func (p astPrinter) VisitSimpleDefinition(d *ast.SimpleDefinition) any {
	return map[string]any{"type": "SimpleDefinition", "name": d.Name, "init": nilOrExpr(d.Init, p)}
}

func (p astPrinter) VisitVectorDefinition(d *ast.VectorDefinition) any {
	inits := make([]any, 0, len(d.Inits))
	for _, iv := range d.Inits {
		inits = append(inits, iv.Accept(p))
	}
	return map[string]any{
		"type":     "VectorDefinition",
		"name":     d.Name,
		"maxIndex": nilOrExpr(d.MaxIndex, p),
		"inits":    inits,
	}
}

func (p astPrinter) VisitFunctionDefinition(d *ast.FunctionDefinition) any {
	return map[string]any{
		"type":   "FunctionDefinition",
		"name":   d.Name,
		"params": d.Params,
		"body":   d.Body.Accept(p),
	}
}

func (p astPrinter) VisitNumeric(e *ast.NumericExpr) any {
	return map[string]any{"type": "Numeric", "value": e.Value}
}

func (p astPrinter) VisitCharacter(e *ast.CharacterExpr) any {
	return map[string]any{"type": "Character", "value": e.Value}
}

func (p astPrinter) VisitString(e *ast.StringExpr) any {
	return map[string]any{"type": "String", "bytes": e.Bytes}
}

func (p astPrinter) VisitName(e *ast.NameExpr) any {
	return map[string]any{"type": "Name", "name": e.Name}
}

func (p astPrinter) VisitUnary(e *ast.UnaryExpr) any {
	return map[string]any{
		"type":    "Unary",
		"op":      string(e.Op),
		"postfix": e.Postfix,
		"operand": e.Operand.Accept(p),
	}
}

func (p astPrinter) VisitBinary(e *ast.BinaryExpr) any {
	return map[string]any{
		"type":  "Binary",
		"op":    string(e.Op),
		"left":  e.Left.Accept(p),
		"right": e.Right.Accept(p),
	}
}

func (p astPrinter) VisitTernary(e *ast.TernaryExpr) any {
	return map[string]any{
		"type": "Ternary",
		"cond": e.Cond.Accept(p),
		"then": e.Then.Accept(p),
		"else": e.Else.Accept(p),
	}
}

func (p astPrinter) VisitAssign(e *ast.AssignExpr) any {
	return map[string]any{
		"type":   "Assign",
		"op":     string(e.Op),
		"lvalue": e.LValue.Accept(p),
		"rvalue": e.RValue.Accept(p),
	}
}

func (p astPrinter) VisitCall(e *ast.CallExpr) any {
	args := make([]any, 0, len(e.Args))
	for _, a := range e.Args {
		args = append(args, a.Accept(p))
	}
	return map[string]any{"type": "Call", "callee": e.Callee.Accept(p), "args": args}
}

func (p astPrinter) VisitIndex(e *ast.IndexExpr) any {
	return map[string]any{"type": "Index", "base": e.Base.Accept(p), "index": e.Index.Accept(p)}
}

func (p astPrinter) VisitCompound(s *ast.CompoundStmt) any {
	stmts := make([]any, 0, len(s.Stmts))
	for _, inner := range s.Stmts {
		stmts = append(stmts, inner.Accept(p))
	}
	return map[string]any{"type": "Compound", "stmts": stmts}
}

func (p astPrinter) VisitIf(s *ast.IfStmt) any {
	return map[string]any{
		"type": "If",
		"cond": s.Cond.Accept(p),
		"then": s.Then.Accept(p),
		"else": nilOrStmt(s.Else, p),
	}
}

func (p astPrinter) VisitWhile(s *ast.WhileStmt) any {
	return map[string]any{"type": "While", "cond": s.Cond.Accept(p), "body": s.Body.Accept(p)}
}

func (p astPrinter) VisitReturn(s *ast.ReturnStmt) any {
	return map[string]any{"type": "Return", "value": nilOrExpr(s.Value, p)}
}

func (p astPrinter) VisitBreak(s *ast.BreakStmt) any {
	return map[string]any{"type": "Break"}
}

func (p astPrinter) VisitGoto(s *ast.GotoStmt) any {
	return map[string]any{"type": "Goto", "target": s.Target.Accept(p)}
}

func (p astPrinter) VisitLabel(s *ast.LabelStmt) any {
	return map[string]any{"type": "Label", "name": s.Name, "body": s.Body.Accept(p)}
}

func (p astPrinter) VisitSwitch(s *ast.SwitchStmt) any {
	return map[string]any{"type": "Switch", "expr": s.Expr.Accept(p), "body": s.Body.Accept(p)}
}

func (p astPrinter) VisitCase(s *ast.CaseStmt) any {
	return map[string]any{"type": "Case", "const": s.Const, "body": s.Body.Accept(p)}
}

func (p astPrinter) VisitAuto(s *ast.AutoStmt) any {
	vars := make([]any, 0, len(s.Vars))
	for _, v := range s.Vars {
		vars = append(vars, map[string]any{"name": v.Name, "size": v.Size})
	}
	return map[string]any{"type": "Auto", "vars": vars, "body": s.Body.Accept(p)}
}

func (p astPrinter) VisitExtrn(s *ast.ExtrnStmt) any {
	return map[string]any{"type": "Extrn", "names": s.Names, "body": s.Body.Accept(p)}
}

func (p astPrinter) VisitExprStmt(s *ast.ExprStmt) any {
	return map[string]any{"type": "ExprStmt", "expr": s.Expr.Accept(p)}
}

func (p astPrinter) VisitNull(s *ast.NullStmt) any {
	return map[string]any{"type": "Null"}
}

func nilOrExpr(expr ast.Expr, p ast.ExprVisitor) any {
	if expr == nil {
		return nil
	}
	return expr.Accept(p)
}

func nilOrStmt(stmt ast.Stmt, p ast.StmtVisitor) any {
	if stmt == nil {
		return nil
	}
	return stmt.Accept(p)
}

// PrintProgramJSON renders prog as prettified JSON, for the "parse"
// subcommand's human-readable dump.
func PrintProgramJSON(prog *ast.Program) (string, error) {
	printer := astPrinter{}
	out, err := json.MarshalIndent(prog.Accept(printer), "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
