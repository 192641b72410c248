package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"rbc/refvm"
)

type tokenizeCmd struct {
	wordSize int
}

func (*tokenizeCmd) Name() string     { return "tokenize" }
func (*tokenizeCmd) Synopsis() string { return "Print the token stream for a B source file" }
func (*tokenizeCmd) Usage() string {
	return `tokenize <file.b>:
  Lex a B source file and print one token per line.
`
}

func (c *tokenizeCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.wordSize, "s", refvm.DefaultBytesPerWord, "target word size in bytes")
}

func (c *tokenizeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 file not provided\n")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	tokens, err := tokenize(string(data), c.wordSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 lexing error: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, tok := range tokens {
		fmt.Printf("%-4d %-10s %q\n", tok.Line, tok.Type, tok.Lexeme)
	}
	return subcommands.ExitSuccess
}
