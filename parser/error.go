package parser

import "fmt"

// SyntaxError is returned when the token stream does not match the grammar.
type SyntaxError struct {
	Line    int
	Column  int
	Message string
}

func newSyntaxError(line, column int, message string) SyntaxError {
	return SyntaxError{Line: line, Column: column, Message: message}
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("💥 syntax error: line:%d, column:%d - %s", e.Line, e.Column, e.Message)
}
