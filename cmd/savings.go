package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/savings"
	"github.com/google/subcommands"
)

type savingsCmd struct{}

func (*savingsCmd) Name() string { return "savings" }
func (*savingsCmd) Synopsis() string {
	return "decompose wealth changes into savings and capital gains"
}
func (*savingsCmd) Usage() string {
	return `psav savings [<start>_<end>...]

  Builds the Savings file of every given timespan, and its clean version when
  use_cleaned_data_only is set. Timespans default to the consecutive pairs of
  years_to_include.
`
}

func (c *savingsCmd) SetFlags(f *flag.FlagSet) {}

func (c *savingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
		t, err := a.savings(span)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error computing savings of %v: %v\n", span, err)
			return subcommands.ExitFailure
		}
		filename := a.store.SavingsFile(span, a.cfg.ToYear)
		fmt.Printf("%s: %d households\n", filename, t.Len())

		if !a.cfg.UseCleanedDataOnly {
			continue
		}
		clean, err := a.cleanSavings(span)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error computing clean savings of %v: %v\n", span, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("%s: %d households\n", savings.CleanFile(filename), clean.Len())
	}
	return subcommands.ExitSuccess
}
