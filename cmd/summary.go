package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/savings/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the cleaning and savings summary of timespans" }
func (*summaryCmd) Usage() string {
	return `psav summary [<start>_<end>...]

  Displays, for every timespan, how many households got each cleaning status
  and the mean savings decomposition of the kept ones.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var b strings.Builder
	for _, span := range spans {
		t, err := a.savings(span)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error computing savings of %v: %v\n", span, err)
			return subcommands.ExitFailure
		}
		b.WriteString(renderer.SummaryMarkdown(renderer.NewSummary(t, span, a.cfg.ToYear, a.calc.Classes)))
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
