package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/savings"
	"github.com/google/subcommands"
)

type twoPeriodCmd struct{}

func (*twoPeriodCmd) Name() string     { return "twoperiod" }
func (*twoPeriodCmd) Synopsis() string { return "link households across the waves of timespans" }
func (*twoPeriodCmd) Usage() string {
	return `psav twoperiod [<start>_<end>...]

  Builds the TwoPeriod file of every given timespan. Timespans default to the
  consecutive pairs of years_to_include.
`
}

func (c *twoPeriodCmd) SetFlags(f *flag.FlagSet) {}

func (c *twoPeriodCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.log.Sync()

	spans, err := a.spans(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing timespans: %v\n", err)
		return subcommands.ExitUsageError
	}
	for _, span := range spans {
		t, err := a.panel.TwoPeriod(span, a.cfg.ToYear)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building timespan %v: %v\n", span, err)
			return subcommands.ExitFailure
		}
		kept := 0
		for _, c := range savings.CountStatuses(t, savings.StatusColumn(span)) {
			if c.Status == savings.Keep {
				kept = c.Count
			}
		}
		fmt.Printf("%s: %d households, %d kept\n", a.store.TwoPeriodFile(span, a.cfg.ToYear), t.Len(), kept)
	}
	return subcommands.ExitSuccess
}
