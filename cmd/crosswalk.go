package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/savings/crosswalk"
	"github.com/etnz/savings/wave"
	"github.com/google/subcommands"
)

type crosswalkCmd struct {
	years string
}

func (*crosswalkCmd) Name() string     { return "crosswalk" }
func (*crosswalkCmd) Synopsis() string { return "print the field names of variables, year by year" }
func (*crosswalkCmd) Usage() string {
	return `psav crosswalk [-years <y1,y2,...>] <variable>...

  Prints, as CSV, the field name of every variable in every requested year,
  its category and the number of years it exists in. Years default to
  years_to_include.
`
}

func (c *crosswalkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.years, "years", "", "Comma separated years to print.")
}

func (c *crosswalkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one variable is required")
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	years := cfg.YearsToInclude
	if c.years != "" {
		if years, err = wave.ParseYears(c.years); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing years: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	cw, err := crosswalk.DecodeFile(cfg.Paths.Crosswalk)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading crosswalk %q: %v\n", cfg.Paths.Crosswalk, err)
		return subcommands.ExitFailure
	}
	series, err := cw.SeriesForSample(crosswalk.Names(f.Args()...), years)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := crosswalk.WriteSeries(os.Stdout, series, years); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing series: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
