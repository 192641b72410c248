// Package parser implements a hand-written recursive-descent,
// precedence-climbing parser for B (spec.md §4.1). It never constructs AST
// nodes directly: every grammar rule goes through an injected
// ast.NodeFactory, so the grammar and precedence logic are independent of
// the concrete node representation (spec.md's Design Notes on alternate
// backends).
package parser

import (
	"fmt"

	"rbc/ast"
	"rbc/token"
)

// Parser walks a flat token slice produced by the lexer.
//
// NOTE: the parser's position always points one token past the one last
// consumed by advance — mirroring the convention that previous() reads
// tokens[position-1].
type Parser struct {
	tokens   []token.Token
	position int
	factory  ast.NodeFactory
}

// New returns a Parser over tokens, building AST nodes through factory.
func New(tokens []token.Token, factory ast.NodeFactory) *Parser {
	return &Parser{tokens: tokens, factory: factory}
}

// Parse consumes the entire token stream and returns the Program root.
// Per spec.md's Non-goal on diagnostic quality, the parser aborts on the
// first syntax error rather than attempting recovery.
func (p *Parser) Parse() (ast.Def, error) {
	defs := []ast.Def{}
	for !p.isFinished() {
		def, err := p.definition()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return p.factory.Program(defs), nil
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.position]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.position-1]
}

func (p *Parser) isFinished() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) advance() token.Token {
	if !p.isFinished() {
		p.position++
	}
	return p.previous()
}

func (p *Parser) checkType(t token.Type) bool {
	if p.isFinished() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) isMatch(types ...token.Type) bool {
	for _, t := range types {
		if p.checkType(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(t token.Type, message string) (token.Token, error) {
	if p.checkType(t) {
		return p.advance(), nil
	}
	cur := p.peek()
	return token.Token{}, newSyntaxError(cur.Line, cur.Column, message)
}

// ---- top-level definitions ----
// definition = simpledef | vectordef | functiondef
// all three start with a name; the token after it disambiguates.

func (p *Parser) definition() (ast.Def, error) {
	nameTok, err := p.consume(token.IDENT, "expected a definition name")
	if err != nil {
		return nil, err
	}
	name := nameTok.Lexeme

	switch {
	case p.checkType(token.LPAREN):
		return p.functionDefinition(name)
	case p.checkType(token.LBRACKET):
		return p.vectorDefinition(name)
	default:
		return p.simpleDefinition(name)
	}
}

// simpledef = name [ ival ] ";"
func (p *Parser) simpleDefinition(name string) (ast.Def, error) {
	var init ast.Expr
	if !p.checkType(token.SEMICOLON) {
		var err error
		init, err = p.ival()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.SEMICOLON, "expected ';' after definition"); err != nil {
		return nil, err
	}
	return p.factory.SimpleDefinition(name, init), nil
}

// vectordef = name "[" [ constantexpr ] "]" [ ivallist ] ";"
func (p *Parser) vectorDefinition(name string) (ast.Def, error) {
	if _, err := p.consume(token.LBRACKET, "expected '['"); err != nil {
		return nil, err
	}
	var maxIndex ast.Expr
	if !p.checkType(token.RBRACKET) {
		var err error
		maxIndex, err = p.ival()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.RBRACKET, "expected ']'"); err != nil {
		return nil, err
	}

	inits := []ast.Expr{}
	if !p.checkType(token.SEMICOLON) {
		for {
			ival, err := p.ival()
			if err != nil {
				return nil, err
			}
			inits = append(inits, ival)
			if !p.isMatch(token.COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(token.SEMICOLON, "expected ';' after vector definition"); err != nil {
		return nil, err
	}
	return p.factory.VectorDefinition(name, maxIndex, inits), nil
}

// ival is an initializer constant: an optionally-negated number, a
// character or string literal, or a name. A name is accepted here but
// rejected later by the emitter (see emitter.evalConstInit).
func (p *Parser) ival() (ast.Expr, error) {
	if p.isMatch(token.MINUS) {
		op := p.previous()
		operand, err := p.ival()
		if err != nil {
			return nil, err
		}
		return p.factory.Unary(op, token.MINUS, operand, false), nil
	}
	switch {
	case p.checkType(token.NUMBER):
		tok := p.advance()
		return p.factory.Numeric(tok, tok.Literal.(int64)), nil
	case p.checkType(token.CHAR):
		tok := p.advance()
		return p.factory.Character(tok, tok.Literal.(int64)), nil
	case p.checkType(token.STRING):
		tok := p.advance()
		return p.factory.String(tok, tok.Literal.([]byte)), nil
	case p.checkType(token.IDENT):
		tok := p.advance()
		return p.factory.Name(tok, tok.Lexeme), nil
	}
	cur := p.peek()
	return nil, newSyntaxError(cur.Line, cur.Column, "expected a constant initializer")
}

// functiondef = name "(" [ namelist ] ")" statement
func (p *Parser) functionDefinition(name string) (ast.Def, error) {
	if _, err := p.consume(token.LPAREN, "expected '('"); err != nil {
		return nil, err
	}
	params := []string{}
	if !p.checkType(token.RPAREN) {
		for {
			paramTok, err := p.consume(token.IDENT, "expected a parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, paramTok.Lexeme)
			if !p.isMatch(token.COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(token.RPAREN, "expected ')'"); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return p.factory.FunctionDefinition(name, params, body), nil
}

// ---- statements ----

func (p *Parser) statement() (ast.Stmt, error) {
	switch {
	case p.checkType(token.LBRACE):
		p.advance()
		return p.compoundStatement()
	case p.isMatch(token.IF):
		return p.ifStatement()
	case p.isMatch(token.WHILE):
		return p.whileStatement()
	case p.isMatch(token.RETURN):
		return p.returnStatement()
	case p.isMatch(token.GOTO):
		return p.gotoStatement()
	case p.isMatch(token.SWITCH):
		return p.switchStatement()
	case p.isMatch(token.CASE):
		return p.caseStatement()
	case p.isMatch(token.BREAK):
		return p.breakStatement()
	case p.isMatch(token.AUTO):
		return p.autoStatement()
	case p.isMatch(token.EXTRN):
		return p.extrnStatement()
	case p.isMatch(token.SEMICOLON):
		return p.factory.Null(), nil
	}

	// labelstmt = name ":" statement — only a name immediately followed by
	// ':' is a label; otherwise it's the start of an expression statement.
	if p.checkType(token.IDENT) && p.tokens[p.position+1].Type == token.COLON {
		nameTok := p.advance()
		p.advance() // consume ':'
		body, err := p.statement()
		if err != nil {
			return nil, err
		}
		return p.factory.Label(nameTok.Lexeme, body), nil
	}

	return p.exprStatement()
}

func (p *Parser) compoundStatement() (ast.Stmt, error) {
	stmts := []ast.Stmt{}
	for !p.checkType(token.RBRACE) && !p.isFinished() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.consume(token.RBRACE, "expected '}' to close compound statement"); err != nil {
		return nil, err
	}
	return p.factory.Compound(stmts), nil
}

func (p *Parser) ifStatement() (ast.Stmt, error) {
	if _, err := p.consume(token.LPAREN, "expected '(' after 'if'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RPAREN, "expected ')' after if condition"); err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var els ast.Stmt
	if p.isMatch(token.ELSE) {
		els, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return p.factory.If(cond, then, els), nil
}

func (p *Parser) whileStatement() (ast.Stmt, error) {
	if _, err := p.consume(token.LPAREN, "expected '(' after 'while'"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RPAREN, "expected ')' after while condition"); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return p.factory.While(cond, body), nil
}

// returnstmt = "return" [ "(" expression ")" ] ";"
func (p *Parser) returnStatement() (ast.Stmt, error) {
	var value ast.Expr
	if p.isMatch(token.LPAREN) {
		var err error
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RPAREN, "expected ')' after return value"); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.SEMICOLON, "expected ';' after return"); err != nil {
		return nil, err
	}
	return p.factory.Return(value), nil
}

func (p *Parser) gotoStatement() (ast.Stmt, error) {
	tok := p.previous()
	target, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "expected ';' after goto target"); err != nil {
		return nil, err
	}
	return p.factory.Goto(tok, target), nil
}

func (p *Parser) switchStatement() (ast.Stmt, error) {
	if _, err := p.consume(token.LPAREN, "expected '(' after 'switch'"); err != nil {
		return nil, err
	}
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RPAREN, "expected ')' after switch expression"); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return p.factory.Switch(expr, body), nil
}

func (p *Parser) caseStatement() (ast.Stmt, error) {
	if !p.checkType(token.NUMBER) && !p.checkType(token.CHAR) {
		cur := p.peek()
		return nil, newSyntaxError(cur.Line, cur.Column, "expected a numeric or character constant after 'case'")
	}
	constTok := p.advance()
	if _, err := p.consume(token.COLON, "expected ':' after case constant"); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return p.factory.Case(constTok.Literal.(int64), body), nil
}

func (p *Parser) breakStatement() (ast.Stmt, error) {
	tok := p.previous()
	if _, err := p.consume(token.SEMICOLON, "expected ';' after break"); err != nil {
		return nil, err
	}
	return p.factory.Break(tok), nil
}

// autostmt = "auto" autovar { "," autovar } ";" statement
// autovar  = name [ "[" NUMBER "]" ]
func (p *Parser) autoStatement() (ast.Stmt, error) {
	vars := []ast.AutoVar{}
	for {
		nameTok, err := p.consume(token.IDENT, "expected an auto variable name")
		if err != nil {
			return nil, err
		}
		v := ast.AutoVar{Name: nameTok.Lexeme, Tok: nameTok}
		if p.isMatch(token.LBRACKET) {
			sizeTok, err := p.consume(token.NUMBER, "expected a vector size")
			if err != nil {
				return nil, err
			}
			size := sizeTok.Literal.(int64)
			v.Size = &size
			if _, err := p.consume(token.RBRACKET, "expected ']' after vector size"); err != nil {
				return nil, err
			}
		}
		vars = append(vars, v)
		if !p.isMatch(token.COMMA) {
			break
		}
	}
	if _, err := p.consume(token.SEMICOLON, "expected ';' after auto declaration"); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return p.factory.Auto(vars, body), nil
}

// extrnstmt = "extrn" name { "," name } ";" statement
func (p *Parser) extrnStatement() (ast.Stmt, error) {
	names := []string{}
	for {
		nameTok, err := p.consume(token.IDENT, "expected an extrn name")
		if err != nil {
			return nil, err
		}
		names = append(names, nameTok.Lexeme)
		if !p.isMatch(token.COMMA) {
			break
		}
	}
	if _, err := p.consume(token.SEMICOLON, "expected ';' after extrn declaration"); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return p.factory.Extrn(names, body), nil
}

func (p *Parser) exprStatement() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "expected ';' after expression"); err != nil {
		return nil, err
	}
	return p.factory.ExprStmt(expr), nil
}

// ---- expressions, lowest to highest precedence ----
// expression = assignment
// assignment = ternary { assignop assignment }     (right-associative)
// ternary    = logor [ "?" expression ":" ternary ]
// logor      = logand { "|" logand }
// logand     = equality { "&" equality }
// equality   = relational { ("==" | "!=") relational }
// relational = shift { ("<"|">"|"<="|">=") shift }
// shift      = additive { ("<<"|">>") additive }
// additive   = mult { ("+"|"-") mult }
// mult       = unary { ("*"|"/"|"%") unary }
// unary      = ("-"|"!"|"~"|"*"|"&"|"++"|"--") unary | postfix
// postfix    = primary { "(" [arglist] ")" | "[" expression "]" | "++" | "--" }
// primary    = name | numericexpr | characterexpr | stringexpr | "(" expression ")"

var assignOps = []token.Type{
	token.ASSIGN,
	token.ASSIGN_PLUS, token.ASSIGN_MINUS, token.ASSIGN_STAR,
	token.ASSIGN_SLASH, token.ASSIGN_PERCENT,
	token.ASSIGN_PIPE, token.ASSIGN_AMP,
	token.ASSIGN_SHL, token.ASSIGN_SHR,
	token.ASSIGN_EQ, token.ASSIGN_NE,
	token.ASSIGN_LT, token.ASSIGN_GT, token.ASSIGN_LE, token.ASSIGN_GE,
}

func (p *Parser) expression() (ast.Expr, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expr, error) {
	lvalue, err := p.ternary()
	if err != nil {
		return nil, err
	}
	if p.isMatch(assignOps...) {
		opTok := p.previous()
		rvalue, err := p.assignment()
		if err != nil {
			return nil, err
		}
		return p.factory.Assign(opTok, opTok.Type, lvalue, rvalue), nil
	}
	return lvalue, nil
}

func (p *Parser) ternary() (ast.Expr, error) {
	cond, err := p.logor()
	if err != nil {
		return nil, err
	}
	if p.isMatch(token.QUESTION) {
		then, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.COLON, "expected ':' in ternary expression"); err != nil {
			return nil, err
		}
		els, err := p.ternary()
		if err != nil {
			return nil, err
		}
		return p.factory.Ternary(cond, then, els), nil
	}
	return cond, nil
}

// logor and logand are eager (non-short-circuiting) per spec.md §4.4 and
// the "Open question — short-circuit vs eager &/|" Design Note: they are
// plain binary operators at this precedence level, not control-flow forms.
func (p *Parser) logor() (ast.Expr, error) {
	left, err := p.logand()
	if err != nil {
		return nil, err
	}
	for p.isMatch(token.PIPE) {
		op := p.previous()
		right, err := p.logand()
		if err != nil {
			return nil, err
		}
		left = p.factory.Binary(op, token.PIPE, left, right)
	}
	return left, nil
}

func (p *Parser) logand() (ast.Expr, error) {
	left, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.isMatch(token.AMP) {
		op := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		left = p.factory.Binary(op, token.AMP, left, right)
	}
	return left, nil
}

func (p *Parser) equality() (ast.Expr, error) {
	left, err := p.relational()
	if err != nil {
		return nil, err
	}
	for p.isMatch(token.EQ, token.NE) {
		op := p.previous()
		right, err := p.relational()
		if err != nil {
			return nil, err
		}
		left = p.factory.Binary(op, op.Type, left, right)
	}
	return left, nil
}

func (p *Parser) relational() (ast.Expr, error) {
	left, err := p.shift()
	if err != nil {
		return nil, err
	}
	for p.isMatch(token.LT, token.GT, token.LE, token.GE) {
		op := p.previous()
		right, err := p.shift()
		if err != nil {
			return nil, err
		}
		left = p.factory.Binary(op, op.Type, left, right)
	}
	return left, nil
}

func (p *Parser) shift() (ast.Expr, error) {
	left, err := p.additive()
	if err != nil {
		return nil, err
	}
	for p.isMatch(token.SHL, token.SHR) {
		op := p.previous()
		right, err := p.additive()
		if err != nil {
			return nil, err
		}
		left = p.factory.Binary(op, op.Type, left, right)
	}
	return left, nil
}

func (p *Parser) additive() (ast.Expr, error) {
	left, err := p.mult()
	if err != nil {
		return nil, err
	}
	for p.isMatch(token.PLUS, token.MINUS) {
		op := p.previous()
		right, err := p.mult()
		if err != nil {
			return nil, err
		}
		left = p.factory.Binary(op, op.Type, left, right)
	}
	return left, nil
}

func (p *Parser) mult() (ast.Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.isMatch(token.STAR, token.SLASH, token.PERCENT) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = p.factory.Binary(op, op.Type, left, right)
	}
	return left, nil
}

var prefixUnaryOps = []token.Type{
	token.MINUS, token.BANG, token.TILDE, token.STAR, token.AMP,
	token.INCR, token.DECR,
}

func (p *Parser) unary() (ast.Expr, error) {
	if p.isMatch(prefixUnaryOps...) {
		op := p.previous()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return p.factory.Unary(op, op.Type, operand, false), nil
	}
	return p.postfix()
}

func (p *Parser) postfix() (ast.Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.isMatch(token.LPAREN):
			args, err := p.arglist()
			if err != nil {
				return nil, err
			}
			tok := p.previous()
			expr = p.factory.Call(tok, expr, args)
		case p.isMatch(token.LBRACKET):
			index, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.consume(token.RBRACKET, "expected ']' after index"); err != nil {
				return nil, err
			}
			expr = p.factory.Index(p.previous(), expr, index)
		case p.isMatch(token.INCR):
			expr = p.factory.Unary(p.previous(), token.INCR, expr, true)
		case p.isMatch(token.DECR):
			expr = p.factory.Unary(p.previous(), token.DECR, expr, true)
		default:
			return expr, nil
		}
	}
}

func (p *Parser) arglist() ([]ast.Expr, error) {
	args := []ast.Expr{}
	if p.checkType(token.RPAREN) {
		p.advance()
		return args, nil
	}
	for {
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.isMatch(token.COMMA) {
			break
		}
	}
	if _, err := p.consume(token.RPAREN, "expected ')' after call arguments"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) primary() (ast.Expr, error) {
	switch {
	case p.checkType(token.NUMBER):
		tok := p.advance()
		return p.factory.Numeric(tok, tok.Literal.(int64)), nil
	case p.checkType(token.CHAR):
		tok := p.advance()
		return p.factory.Character(tok, tok.Literal.(int64)), nil
	case p.checkType(token.STRING):
		tok := p.advance()
		return p.factory.String(tok, tok.Literal.([]byte)), nil
	case p.checkType(token.IDENT):
		tok := p.advance()
		return p.factory.Name(tok, tok.Lexeme), nil
	case p.isMatch(token.LPAREN):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RPAREN, "expected ')' to close grouping"); err != nil {
			return nil, err
		}
		return expr, nil
	}
	cur := p.peek()
	return nil, newSyntaxError(cur.Line, cur.Column, fmt.Sprintf("unexpected token %q", cur.Lexeme))
}
