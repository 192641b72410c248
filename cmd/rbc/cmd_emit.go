package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"rbc/refvm"
)

// emitCmd lowers a B source file to refvm's register IR and prints a
// disassembly of it. It accepts -o/-c/--emit-llvm from a native-code
// compiler's flag surface (the backend these flags would otherwise steer
// is out of scope here; see DESIGN.md). -s is not the assemble-only flag
// here: like every other subcommand, it sets the target word size.
type emitCmd struct {
	wordSize  int
	outPath   string
	compileOnly bool
	emitLLVM  bool
}

func (*emitCmd) Name() string { return "emit" }
func (*emitCmd) Synopsis() string {
	return "Emit the lowered IR for a B source file"
}
func (*emitCmd) Usage() string {
	return `emit <file.b>:
  Lex, parse, and emit a B source file, printing a disassembly of the
  resulting module (refvm's register IR, not machine code).
`
}

func (c *emitCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.wordSize, "s", refvm.DefaultBytesPerWord, "target word size in bytes")
	f.StringVar(&c.outPath, "o", "", "write the IR listing to this path instead of stdout")
	f.BoolVar(&c.compileOnly, "c", false, "stop after emitting IR (no further action; this is the only action emit ever takes)")
	f.BoolVar(&c.emitLLVM, "emit-llvm", false, "accepted for interface compatibility; refvm has no LLVM backend, so the reference register IR is printed regardless")
}

func (c *emitCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	if c.emitLLVM {
		fmt.Fprintln(os.Stderr, "note: no LLVM backend is wired into this build; printing refvm's register IR instead")
	}

	builder, err := buildModule(string(data), c.wordSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 compilation error: %v\n", err)
		return subcommands.ExitFailure
	}

	listing := builder.Module().Disassemble()
	if c.outPath == "" {
		fmt.Print(listing)
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.outPath, []byte(listing), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to write %s: %v\n", c.outPath, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
