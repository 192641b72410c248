package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"rbc/ir"
	"rbc/refvm"
	"rbc/runtime"
)

// replCmd reads B source a block at a time (terminated by a blank line)
// and compiles-and-runs each block as a standalone program, since B has
// no incremental top-level-definition model a line-at-a-time REPL could
// evaluate against persistent state (spec.md's scope model binds every
// name at module-compile time, not as each definition streams in).
// Grounded on informatter-nilan's cmd_repl.go prompt-loop shape, swapping
// its bufio.Scanner for github.com/chzyer/readline so the prompt gets
// history and line editing — the teacher's go.mod lists that dependency
// but its own REPL never uses it.
type replCmd struct {
	wordSize int
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive read-compile-run loop" }
func (*replCmd) Usage() string {
	return `repl:
  Read a B program a blank-line-terminated block at a time, compiling and
  running each block as a standalone program.
`
}

func (c *replCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.wordSize, "s", refvm.DefaultBytesPerWord, "target word size in bytes")
}

func (c *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "b> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to start readline: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	fmt.Fprintln(os.Stdout, "rbc repl — enter a full B program, blank line to run it, Ctrl-D to quit")
	c.loop(rl)
	return subcommands.ExitSuccess
}

func (c *replCmd) loop(rl *readline.Instance) {
	var block strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			block.Reset()
			continue
		}
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "💥 %v\n", err)
			return
		}

		if strings.TrimSpace(line) == "" {
			source := block.String()
			block.Reset()
			if strings.TrimSpace(source) == "" {
				continue
			}
			c.runSource(source)
			continue
		}
		block.WriteString(line)
		block.WriteByte('\n')
	}
}

func (c *replCmd) runSource(source string) {
	builder, err := buildModule(source, c.wordSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 %v\n", err)
		return
	}

	vm := refvm.New(builder.Module(), c.wordSize)
	out := bufio.NewWriter(os.Stdout)
	vm.Stdout = out
	vm.Stdin = bufio.NewReader(os.Stdin)

	_, runErr := vm.RunMain(ir.Mangle("main"))
	out.Flush()
	if runErr != nil {
		if exitErr, ok := runErr.(runtime.ExitError); ok {
			fmt.Fprintf(os.Stdout, "[exited with code %d]\n", exitErr.Code)
			return
		}
		fmt.Fprintf(os.Stderr, "💥 %v\n", runErr)
	}
}
