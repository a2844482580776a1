package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/subcommands"
)

type yearDataCmd struct{}

func (*yearDataCmd) Name() string     { return "yeardata" }
func (*yearDataCmd) Synopsis() string { return "build the cross-sectional table of survey years" }
func (*yearDataCmd) Usage() string {
	return `psav yeardata [<year>...]

  Builds the YearData file of every given year, years_to_include by default.
`
}

func (c *yearDataCmd) SetFlags(f *flag.FlagSet) {}

func (c *yearDataCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.log.Sync()

	years := a.cfg.YearsToInclude
	if f.NArg() > 0 {
		years = nil
		for _, arg := range f.Args() {
			y, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: invalid year %q\n", arg)
				return subcommands.ExitUsageError
			}
			years = append(years, y)
		}
	}

	for _, y := range years {
		t, err := a.panel.YearData(y, a.cfg.ToYear)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building year %d: %v\n", y, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("%s: %d families\n", a.store.YearDataFile(y, a.cfg.ToYear), t.Len())
	}
	return subcommands.ExitSuccess
}
