// Command psav builds a household savings panel from the yearly survey extracts.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/savings/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// shell completion, when invoked by the shell with COMP_LINE set
	completion := &complete.Command{
		Sub: map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
			"force":  predict.Nothing,
		},
	}
	known := map[string]bool{}
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		known[c.Name()] = true
		completion.Sub[c.Name()] = &complete.Command{}
	})
	completion.Complete("psav")

	flag.Parse()
	if name := flag.Arg(0); name != "" && !known[name] {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
