package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"rbc/ir"
	"rbc/refvm"
	"rbc/runtime"
)

type runCmd struct {
	wordSize int
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Compile and execute a B source file" }
func (*runCmd) Usage() string {
	return `run <file.b>:
  Lex, parse, emit, and execute a B source file against refvm.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.wordSize, "s", refvm.DefaultBytesPerWord, "target word size in bytes")
}

func (c *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	builder, err := buildModule(string(data), c.wordSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 compilation error: %v\n", err)
		return subcommands.ExitFailure
	}

	vm := refvm.New(builder.Module(), c.wordSize)
	out := bufio.NewWriter(os.Stdout)
	vm.Stdout = out
	vm.Stdin = bufio.NewReader(os.Stdin)

	code, runErr := vm.RunMain(ir.Mangle("main"))
	out.Flush()

	if runErr != nil {
		if exitErr, ok := runErr.(runtime.ExitError); ok {
			os.Exit(int(exitErr.Code))
		}
		fmt.Fprintf(os.Stderr, "💥 runtime error: %v\n", runErr)
		return subcommands.ExitFailure
	}
	os.Exit(int(code))
	return subcommands.ExitSuccess
}
