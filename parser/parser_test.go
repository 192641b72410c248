package parser

import (
	"testing"

	"rbc/ast"
	"rbc/lexer"
	"rbc/token"
)

func parseProgram(t *testing.T, source string) *ast.Program {
	t.Helper()
	toks, err := lexer.New(source).Scan()
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}
	def, err := New(toks, ast.DefaultFactory{}).Parse()
	if err != nil {
		t.Fatalf("parser error: %v", err)
	}
	program, ok := def.(*ast.Program)
	if !ok {
		t.Fatalf("expected *ast.Program, got %T", def)
	}
	return program
}

func TestParseSimpleDefinition(t *testing.T) {
	prog := parseProgram(t, "x 42;")
	if len(prog.Defs) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(prog.Defs))
	}
	def, ok := prog.Defs[0].(*ast.SimpleDefinition)
	if !ok {
		t.Fatalf("expected *ast.SimpleDefinition, got %T", prog.Defs[0])
	}
	if def.Name != "x" {
		t.Fatalf("expected name x, got %s", def.Name)
	}
	num, ok := def.Init.(*ast.NumericExpr)
	if !ok || num.Value != 42 {
		t.Fatalf("expected initializer 42, got %#v", def.Init)
	}
}

func TestParseVectorDefinition(t *testing.T) {
	prog := parseProgram(t, "v[2] 1, 2, 3;")
	def, ok := prog.Defs[0].(*ast.VectorDefinition)
	if !ok {
		t.Fatalf("expected *ast.VectorDefinition, got %T", prog.Defs[0])
	}
	if def.Name != "v" || len(def.Inits) != 3 {
		t.Fatalf("unexpected vector definition: %+v", def)
	}
	max, ok := def.MaxIndex.(*ast.NumericExpr)
	if !ok || max.Value != 2 {
		t.Fatalf("expected maxidx 2, got %#v", def.MaxIndex)
	}
}

func TestParseFunctionDefinitionWithParams(t *testing.T) {
	prog := parseProgram(t, "add(a, b) return(a+b);")
	fn, ok := prog.Defs[0].(*ast.FunctionDefinition)
	if !ok {
		t.Fatalf("expected *ast.FunctionDefinition, got %T", prog.Defs[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected function definition: %+v", fn)
	}
	ret, ok := fn.Body.(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected *ast.ReturnStmt body, got %T", fn.Body)
	}
	bin, ok := ret.Value.(*ast.BinaryExpr)
	if !ok || bin.Op != token.PLUS {
		t.Fatalf("expected a + binary expr, got %#v", ret.Value)
	}
}

func TestParseCompoundAndControlFlow(t *testing.T) {
	src := `main() {
		auto i;
		i = 0;
		while (i < 3) {
			i =+ 1;
		}
		if (i == 3) return(1); else return(0);
	}`
	prog := parseProgram(t, src)
	fn := prog.Defs[0].(*ast.FunctionDefinition)
	body, ok := fn.Body.(*ast.CompoundStmt)
	if !ok {
		t.Fatalf("expected compound body, got %T", fn.Body)
	}
	autoStmt, ok := body.Stmts[0].(*ast.AutoStmt)
	if !ok {
		t.Fatalf("expected leading AutoStmt, got %T", body.Stmts[0])
	}
	if len(autoStmt.Vars) != 1 || autoStmt.Vars[0].Name != "i" {
		t.Fatalf("unexpected auto vars: %+v", autoStmt.Vars)
	}
	// the auto statement's body is the single statement that follows it.
	if _, ok := autoStmt.Body.(*ast.ExprStmt); !ok {
		t.Fatalf("expected auto body to be the following expression statement, got %T", autoStmt.Body)
	}
	if len(body.Stmts) != 3 {
		t.Fatalf("expected 3 statements in the function body, got %d", len(body.Stmts))
	}
	assign, ok := body.Stmts[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("expected WhileStmt, got %T", body.Stmts[1])
	}
	loopBody := assign.Body.(*ast.CompoundStmt)
	exprStmt, ok := loopBody.Stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt in loop body, got %T", loopBody.Stmts[0])
	}
	assignExpr, ok := exprStmt.Expr.(*ast.AssignExpr)
	if !ok || assignExpr.Op != token.ASSIGN_PLUS {
		t.Fatalf("expected =+ compound assignment, got %#v", exprStmt.Expr)
	}
}

func TestParseGotoLabelSwitchCaseBreak(t *testing.T) {
	src := `main() {
		switch (1) {
			case 1: goto done;
			case 2: break;
		}
		done: return(0);
	}`
	prog := parseProgram(t, src)
	fn := prog.Defs[0].(*ast.FunctionDefinition)
	body := fn.Body.(*ast.CompoundStmt)
	if _, ok := body.Stmts[0].(*ast.SwitchStmt); !ok {
		t.Fatalf("expected SwitchStmt, got %T", body.Stmts[0])
	}
	if _, ok := body.Stmts[1].(*ast.LabelStmt); !ok {
		t.Fatalf("expected LabelStmt, got %T", body.Stmts[1])
	}
}

func TestParseExtrnAndCallIndex(t *testing.T) {
	src := `main() {
		extrn v, putnumb;
		putnumb(v[0]);
	}`
	prog := parseProgram(t, src)
	fn := prog.Defs[0].(*ast.FunctionDefinition)
	body := fn.Body.(*ast.CompoundStmt)
	extrn, ok := body.Stmts[0].(*ast.ExtrnStmt)
	if !ok {
		t.Fatalf("expected ExtrnStmt, got %T", body.Stmts[0])
	}
	if len(extrn.Names) != 2 || extrn.Names[0] != "v" || extrn.Names[1] != "putnumb" {
		t.Fatalf("unexpected extrn names: %v", extrn.Names)
	}
	exprStmt := extrn.Body.(*ast.ExprStmt)
	call, ok := exprStmt.Expr.(*ast.CallExpr)
	if !ok || len(call.Args) != 1 {
		t.Fatalf("expected a 1-arg call, got %#v", exprStmt.Expr)
	}
	if _, ok := call.Args[0].(*ast.IndexExpr); !ok {
		t.Fatalf("expected an IndexExpr argument, got %T", call.Args[0])
	}
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	prog := parseProgram(t, "main() { auto a, b; a = b = 1; }")
	fn := prog.Defs[0].(*ast.FunctionDefinition)
	body := fn.Body.(*ast.CompoundStmt)
	autoStmt := body.Stmts[0].(*ast.AutoStmt)
	exprStmt := autoStmt.Body.(*ast.ExprStmt)
	outer, ok := exprStmt.Expr.(*ast.AssignExpr)
	if !ok {
		t.Fatalf("expected outer AssignExpr, got %T", exprStmt.Expr)
	}
	if _, ok := outer.RValue.(*ast.AssignExpr); !ok {
		t.Fatalf("expected nested AssignExpr as rvalue, got %#v", outer.RValue)
	}
}

func TestTernaryAndPrecedence(t *testing.T) {
	prog := parseProgram(t, "main() { return(1 ? 2+3 : 4*5); }")
	fn := prog.Defs[0].(*ast.FunctionDefinition)
	ret := fn.Body.(*ast.CompoundStmt).Stmts[0].(*ast.ReturnStmt)
	tern, ok := ret.Value.(*ast.TernaryExpr)
	if !ok {
		t.Fatalf("expected TernaryExpr, got %T", ret.Value)
	}
	if _, ok := tern.Then.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected then-branch to be a binary expr, got %#v", tern.Then)
	}
}

func TestUnaryAndAddressOf(t *testing.T) {
	prog := parseProgram(t, "main() { extrn x; return(&x); }")
	fn := prog.Defs[0].(*ast.FunctionDefinition)
	extrn := fn.Body.(*ast.CompoundStmt).Stmts[0].(*ast.ExtrnStmt)
	ret := extrn.Body.(*ast.ReturnStmt)
	unary, ok := ret.Value.(*ast.UnaryExpr)
	if !ok || unary.Op != token.AMP {
		t.Fatalf("expected & unary expr, got %#v", ret.Value)
	}
}

func TestPostfixIncrDecr(t *testing.T) {
	prog := parseProgram(t, "main() { auto i; i++; --i; }")
	body := prog.Defs[0].(*ast.FunctionDefinition).Body.(*ast.CompoundStmt)
	autoStmt := body.Stmts[0].(*ast.AutoStmt)

	first := autoStmt.Body.(*ast.ExprStmt).Expr.(*ast.UnaryExpr)
	if first.Op != token.INCR || !first.Postfix {
		t.Fatalf("expected postfix ++, got %#v", first)
	}
	second := body.Stmts[1].(*ast.ExprStmt).Expr.(*ast.UnaryExpr)
	if second.Op != token.DECR || second.Postfix {
		t.Fatalf("expected prefix --, got %#v", second)
	}
}

func TestMalformedInputFailsTersely(t *testing.T) {
	toks, err := lexer.New("x 1").Scan()
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}
	if _, err := New(toks, ast.DefaultFactory{}).Parse(); err == nil {
		t.Fatal("expected a syntax error for a definition missing its ';', got nil")
	}
}
