package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/savings/crosswalk"
	"github.com/google/subcommands"
)

type matchCmd struct{}

func (*matchCmd) Name() string     { return "match" }
func (*matchCmd) Synopsis() string { return "list the variables of a category" }
func (*matchCmd) Usage() string {
	return `psav match <prefix>...

  Lists the variables whose category path starts with the given prefixes,
  one prefix per level, case insensitive. For instance:

    psav match family wealth

`
}

func (c *matchCmd) SetFlags(f *flag.FlagSet) {}

func (c *matchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	cw, err := crosswalk.DecodeFile(cfg.Paths.Crosswalk)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading crosswalk %q: %v\n", cfg.Paths.Crosswalk, err)
		return subcommands.ExitFailure
	}
	entries, err := cw.MatchByCategoryPrefix(f.Args()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	fmt.Fprintf(&b, "| Variable | Label | Category | Years |\n")
	fmt.Fprintf(&b, "|:---|:---|:---|---:|\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "| %s | %s | %s | %d |\n", e.Name, e.Label, strings.Join(e.Path, " / "), len(e.Years()))
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
