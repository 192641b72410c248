package emitter

import (
	"rbc/ast"
	"rbc/token"
)

// evalConstInit evaluates an ival expression to a literal word, for a
// SimpleDefinition/VectorDefinition initializer (spec.md §4.2: "an
// initializer, if present, must be a constant expression"). The parser's
// ival() only ever produces Numeric, Character, String, Name, or a
// negated ival, so those are the only shapes handled here.
//
// A Name initializer — spec.md §4.4's "Initializers ... may themselves be
// ... other names (deferred to link-time relocation)" — has no home in
// this emitter: folding another global's address into a literal word
// requires a real relocation record the abstract ir.Builder contract
// never defines (spec.md §4.5 lists no such operation), and refvm, having
// no separate link step, cannot synthesize one either. Initializers
// naming another global therefore panic with InternalError; see
// DESIGN.md's Open Questions.
func (e *Emitter) evalConstInit(expr ast.Expr) int64 {
	switch node := expr.(type) {
	case *ast.NumericExpr:
		return node.Value
	case *ast.CharacterExpr:
		return node.Value
	case *ast.StringExpr:
		g := e.declareAnonString(node.Bytes)
		return e.builder.GlobalIndex(g)
	case *ast.UnaryExpr:
		if node.Op != token.MINUS {
			panic(InternalError{Message: "non-constant operator in initializer"})
		}
		return -e.evalConstInit(node.Operand)
	default:
		panic(InternalError{Message: "non-constant initializer expression (name-valued initializers are unsupported; see DESIGN.md)"})
	}
}
