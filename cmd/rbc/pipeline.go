package main

import (
	"rbc/ast"
	"rbc/emitter"
	"rbc/lexer"
	"rbc/parser"
	"rbc/refvm"
	"rbc/runtime"
	"rbc/scope"
	"rbc/token"
)

// tokenize runs the lexer alone, for the "tokenize" subcommand.
func tokenize(source string, wordSize int) ([]token.Token, error) {
	return lexer.NewWithWordSize(source, wordSize).Scan()
}

// parseProgram runs the lexer then the parser, for the "parse" subcommand
// and as the first stage of "emit"/"run".
func parseProgram(source string, wordSize int) (*ast.Program, error) {
	tokens, err := tokenize(source, wordSize)
	if err != nil {
		return nil, err
	}
	def, err := parser.New(tokens, ast.DefaultFactory{}).Parse()
	if err != nil {
		return nil, err
	}
	return def.(*ast.Program), nil
}

// buildModule runs the full pipeline — lex, parse, bind the runtime
// library, emit — and returns the Builder it was built against; its
// Module() is ready to hand to a VM ("run", "repl") or to disassemble
// ("emit").
func buildModule(source string, wordSize int) (*refvm.Builder, error) {
	prog, err := parseProgram(source, wordSize)
	if err != nil {
		return nil, err
	}
	builder := refvm.NewBuilder(wordSize)
	s := scope.New()
	runtime.Register(builder, s, wordSize)
	em := emitter.New(builder, s, wordSize)
	if err := em.EmitProgram(prog); err != nil {
		return nil, err
	}
	return builder, nil
}
