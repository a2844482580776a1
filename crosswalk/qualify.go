package crosswalk

import (
	"fmt"

	"github.com/etnz/savings/wave"
)

// Qualify returns the column name of a stable variable observed in year.
//
// This is the only place where year-qualified column names are built.
func Qualify(name string, year int) string { return fmt.Sprintf("%s_%d", name, year) }

// QualifySpan returns the column name of a value computed over a timespan.
func QualifySpan(name string, span wave.Span) string { return name + "_" + span.String() }
