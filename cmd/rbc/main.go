// Command rbc is a CLI front end over the rbc lexer/parser/emitter
// pipeline, driving refvm as the reference backend. Grounded on
// informatter-nilan's cmd_*.go subcommand shape (Name/Synopsis/Usage/
// SetFlags/Execute per subcommands.Command), but — unlike that tree, whose
// cmd_*.go files are never registered against any main() — this one
// actually wires every subcommand up via subcommands.Register.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&tokenizeCmd{}, "")
	subcommands.Register(&parseCmd{}, "")
	subcommands.Register(&emitCmd{}, "")
	subcommands.Register(&runCmd{}, "")
	subcommands.Register(&replCmd{}, "")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
