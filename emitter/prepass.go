package emitter

import "rbc/ast"

// walkStmt visits s and every statement nested beneath it (including
// through auto/extrn/label wrapping, since those node kinds carry the
// statement that follows them as Body) — used for the function-wide
// auto/label pre-pass (spec.md §4.4 step 1), which must see declarations
// and labels regardless of how deeply they're nested, including inside a
// switch's body.
func walkStmt(s ast.Stmt, visit func(ast.Stmt)) {
	if s == nil {
		return
	}
	visit(s)
	switch node := s.(type) {
	case *ast.CompoundStmt:
		for _, inner := range node.Stmts {
			walkStmt(inner, visit)
		}
	case *ast.IfStmt:
		walkStmt(node.Then, visit)
		walkStmt(node.Else, visit)
	case *ast.WhileStmt:
		walkStmt(node.Body, visit)
	case *ast.LabelStmt:
		walkStmt(node.Body, visit)
	case *ast.AutoStmt:
		walkStmt(node.Body, visit)
	case *ast.ExtrnStmt:
		walkStmt(node.Body, visit)
	case *ast.SwitchStmt:
		walkStmt(node.Body, visit)
	case *ast.CaseStmt:
		walkStmt(node.Body, visit)
	}
}

// collectLabelsAndAutos gathers every label name and auto declaration
// reachable anywhere in a function body, per spec.md §4.4 step 1.
func collectLabelsAndAutos(body ast.Stmt) (labels []string, autos []ast.AutoVar) {
	walkStmt(body, func(s ast.Stmt) {
		switch node := s.(type) {
		case *ast.LabelStmt:
			labels = append(labels, node.Name)
		case *ast.AutoStmt:
			autos = append(autos, node.Vars...)
		}
	})
	return labels, autos
}

// caseEntry is one case constant discovered by collectCases, in source
// order.
type caseEntry struct {
	Value int64
}

// collectCases gathers the case constants belonging to the switch whose
// body is given, stopping at any nested SwitchStmt — its cases belong to
// that inner switch, not this one (spec.md §4.4's switch pre-pass).
func collectCases(body ast.Stmt) []caseEntry {
	var cases []caseEntry
	var walk func(s ast.Stmt)
	walk = func(s ast.Stmt) {
		if s == nil {
			return
		}
		switch node := s.(type) {
		case *ast.CompoundStmt:
			for _, inner := range node.Stmts {
				walk(inner)
			}
		case *ast.IfStmt:
			walk(node.Then)
			walk(node.Else)
		case *ast.WhileStmt:
			walk(node.Body)
		case *ast.LabelStmt:
			walk(node.Body)
		case *ast.AutoStmt:
			walk(node.Body)
		case *ast.ExtrnStmt:
			walk(node.Body)
		case *ast.CaseStmt:
			cases = append(cases, caseEntry{Value: node.Const})
			walk(node.Body)
		case *ast.SwitchStmt:
			// A nested switch owns its own cases; do not descend.
		}
	}
	walk(body)
	return cases
}
