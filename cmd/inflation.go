package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/savings/inflation"
	"github.com/google/subcommands"
)

type inflationCmd struct{}

func (*inflationCmd) Name() string { return "inflation" }
func (*inflationCmd) Synopsis() string {
	return "print the factor converting dollars of a year into another"
}
func (*inflationCmd) Usage() string {
	return `psav inflation <from> <to>

  Prints the multiplier converting a nominal amount of year <from> into
  dollars of year <to>, from the price levels of paths.price_levels.
`
}

func (c *inflationCmd) SetFlags(f *flag.FlagSet) {}

func (c *inflationCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: <from> and <to> years are required")
		return subcommands.ExitUsageError
	}
	from, err1 := strconv.Atoi(f.Arg(0))
	to, err2 := strconv.Atoi(f.Arg(1))
	if err1 != nil || err2 != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid years %q %q\n", f.Arg(0), f.Arg(1))
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	prices, err := inflation.DecodeFile(cfg.Paths.PriceLevels)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading price levels %q: %v\n", cfg.Paths.PriceLevels, err)
		return subcommands.ExitFailure
	}
	factor, err := prices.Factor(from, to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%.6f\n", factor)
	return subcommands.ExitSuccess
}
