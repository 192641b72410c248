package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"rbc/parser"
	"rbc/refvm"
)

type parseCmd struct {
	wordSize int
}

func (*parseCmd) Name() string     { return "parse" }
func (*parseCmd) Synopsis() string { return "Parse a B source file and print its AST as JSON" }
func (*parseCmd) Usage() string {
	return `parse <file.b>:
  Lex and parse a B source file, printing the resulting AST as indented JSON.
`
}

func (c *parseCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.wordSize, "s", refvm.DefaultBytesPerWord, "target word size in bytes")
}

func (c *parseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	prog, err := parseProgram(string(data), c.wordSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 parse error: %v\n", err)
		return subcommands.ExitFailure
	}

	out, err := parser.PrintProgramJSON(prog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to render AST: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(out)
	return subcommands.ExitSuccess
}
