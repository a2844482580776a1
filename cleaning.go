package savings

import (
	"maps"
	"slices"
	"strings"

	"github.com/etnz/savings/crosswalk"
	"github.com/etnz/savings/wave"
)

// Status is the data-quality tag of a record.
type Status string

// Keep is the status of a record that no rule rejected.
const Keep Status = "Keep"

// statusName is the stable name of cleaning status columns.
const statusName = "cleaningStatus"

// Rule assigns Status to the records for which When returns true.
type Rule[R any] struct {
	Status Status
	When   func(R) bool
}

// Classify returns the status of the first rule matching r, in order, or Keep.
//
// Rules that can match the same record are ordered on purpose: the first one wins.
func Classify[R any](r R, rules []Rule[R]) Status {
	for _, rule := range rules {
		if rule.When(r) {
			return rule.Status
		}
	}
	return Keep
}

// StatusColumn returns the cleaning status column of a timespan.
func StatusColumn(span wave.Span) string { return crosswalk.QualifySpan(statusName, span) }

// YearStatusColumn returns the cleaning status column of a single year.
func YearStatusColumn(year int) string { return crosswalk.Qualify(statusName, year) }

// Annotate classifies every row of t into column.
//
// A row already tagged with a status other than Keep by an earlier stage keeps
// it: earlier stages' rules come first in the cascade.
func Annotate(t *Table, column string, rules []Rule[Row]) {
	t.AddColumn(column)
	for r := range t.Rows() {
		if prev := Status(r.Get(column)); prev != "" && prev != Keep {
			continue
		}
		r.Set(column, string(Classify(r, rules)))
	}
}

// KeepOnly returns the rows whose every cleaning status column is Keep.
//
// It is the only place where rows are dropped for quality reasons.
func KeepOnly(t *Table) *Table {
	var columns []string
	for _, c := range t.Columns() {
		if strings.HasPrefix(c, statusName+"_") {
			columns = append(columns, c)
		}
	}
	return t.Filter(func(r Row) bool {
		for _, c := range columns {
			if Status(r.Get(c)) != Keep {
				return false
			}
		}
		return true
	})
}

// StatusCount is the number of rows having a status.
type StatusCount struct {
	Status Status
	Count  int
}

// CountStatuses counts the rows per status of column, Keep first then by name.
func CountStatuses(t *Table, column string) []StatusCount {
	counts := make(map[Status]int)
	for r := range t.Rows() {
		counts[Status(r.Get(column))]++
	}
	statuses := slices.SortedFunc(maps.Keys(counts), func(a, b Status) int {
		switch {
		case a == b:
			return 0
		case a == Keep:
			return -1
		case b == Keep:
			return 1
		}
		return strings.Compare(string(a), string(b))
	})
	res := make([]StatusCount, len(statuses))
	for i, s := range statuses {
		res[i] = StatusCount{s, counts[s]}
	}
	return res
}
