package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/savings"
	"github.com/etnz/savings/crosswalk"
	"github.com/etnz/savings/wave"
	"github.com/shopspring/decimal"
)

// ClassSummary is the weighted mean decomposition of one asset class.
type ClassSummary struct {
	Name           string
	StockChange    decimal.Decimal
	IdentifiedFlow decimal.Decimal
	CapitalGain    decimal.Decimal
	FlowImputed    int // households whose flow was partly missing
}

// Summary describes a savings table of one timespan.
type Summary struct {
	Span       wave.Span
	ToYear     int // 0 for dollars of the end year
	Households int
	Statuses   []savings.StatusCount
	// Kept is the number of households whose every cleaning status is Keep.
	// Classes and the savings rate are computed on them.
	Kept        int
	Classes     []ClassSummary
	Total       ClassSummary
	Income      decimal.Decimal // weighted mean income over the timespan
	SavingsRate decimal.Decimal // aggregate: total savings over total income
}

// NewSummary summarizes the savings table t of span. Means are weighted by the
// longitudinal weight of the end year.
func NewSummary(t *savings.Table, span wave.Span, toYear int, classes []savings.AssetClass) *Summary {
	s := &Summary{
		Span:       span,
		ToYear:     toYear,
		Households: t.Len(),
		Statuses:   savings.CountStatuses(t, savings.StatusColumn(span)),
	}
	kept := savings.KeepOnly(t)
	s.Kept = kept.Len()

	weightColumn := crosswalk.Qualify(savings.VarWeight, span.End)
	weight := func(r savings.Row) decimal.Decimal {
		if w, ok := r.Decimal(weightColumn); ok && w.IsPositive() {
			return w
		}
		return decimal.Zero
	}
	mean := func(column string) decimal.Decimal {
		sum, total := decimal.Zero, decimal.Zero
		for r := range kept.Rows() {
			v, ok := r.Decimal(column)
			if !ok {
				continue
			}
			w := weight(r)
			sum = sum.Add(v.Mul(w))
			total = total.Add(w)
		}
		if total.IsZero() {
			return decimal.Zero
		}
		return sum.DivRound(total, 2)
	}

	for _, c := range classes {
		if !t.Has(savings.ClassColumn(c.Name, savings.ColStockChange, span)) {
			// excluded from the decomposition
			continue
		}
		cs := ClassSummary{
			Name:           c.Name,
			StockChange:    mean(savings.ClassColumn(c.Name, savings.ColStockChange, span)),
			IdentifiedFlow: mean(savings.ClassColumn(c.Name, savings.ColIdentifiedFlow, span)),
			CapitalGain:    mean(savings.ClassColumn(c.Name, savings.ColCapitalGain, span)),
		}
		for r := range kept.Rows() {
			if r.Bool(savings.ClassColumn(c.Name, savings.ColFlowImputed, span)) {
				cs.FlowImputed++
			}
		}
		s.Classes = append(s.Classes, cs)
	}
	s.Total = ClassSummary{
		Name:           "Total",
		StockChange:    mean(crosswalk.QualifySpan(savings.ColTotalStockChange, span)),
		IdentifiedFlow: mean(crosswalk.QualifySpan(savings.ColTotalIdentifiedFlow, span)),
		CapitalGain:    mean(crosswalk.QualifySpan(savings.ColTotalCapitalGain, span)),
	}
	s.Income = mean(crosswalk.QualifySpan(savings.ColTotalIncome, span))
	if s.Income.IsPositive() {
		s.SavingsRate = s.Total.IdentifiedFlow.DivRound(s.Income, 6)
	}
	return s
}

// SummaryMarkdown renders a savings summary.
func SummaryMarkdown(s *Summary) string {
	var b strings.Builder
	year := s.ToYear
	if year == 0 {
		year = s.Span.End
	}
	dollars := fmt.Sprintf("%d dollars", year)
	fmt.Fprintf(&b, "# Savings %d-%d\n\n", s.Span.Start, s.Span.End)
	fmt.Fprintf(&b, "*%d households, %d kept, amounts in %s*\n\n", s.Households, s.Kept, dollars)

	fmt.Fprintf(&b, "## Cleaning Status\n\n")
	fmt.Fprintf(&b, "| Status | Households |\n")
	fmt.Fprintf(&b, "|:---|---:|\n")
	for _, c := range s.Statuses {
		fmt.Fprintf(&b, "| %s | %d |\n", c.Status, c.Count)
	}
	fmt.Fprintf(&b, "\n")

	fmt.Fprintf(&b, "## Savings per Household\n\n")
	fmt.Fprintf(&b, "| Asset Class | Stock Change | Savings | Capital Gain |\n")
	fmt.Fprintf(&b, "|:---|---:|---:|---:|\n")
	row := func(c ClassSummary) {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", c.Name, signedUSD(c.StockChange), signedUSD(c.IdentifiedFlow), signedUSD(c.CapitalGain))
	}
	for _, c := range s.Classes {
		row(c)
	}
	row(ClassSummary{
		Name:           "**" + s.Total.Name + "**",
		StockChange:    s.Total.StockChange,
		IdentifiedFlow: s.Total.IdentifiedFlow,
		CapitalGain:    s.Total.CapitalGain,
	})
	fmt.Fprintf(&b, "\n")
	fmt.Fprintf(&b, "- Income: %s\n", usd(s.Income))
	fmt.Fprintf(&b, "- Savings Rate: %s%%\n\n", s.SavingsRate.Shift(2).StringFixed(2))

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintf(w, "## Imputed Flows\n\n")
		fmt.Fprintf(w, "| Asset Class | Households |\n")
		fmt.Fprintf(w, "|:---|---:|\n")
		printed := false
		for _, c := range s.Classes {
			if c.FlowImputed == 0 {
				continue
			}
			printed = true
			fmt.Fprintf(w, "| %s | %d |\n", c.Name, c.FlowImputed)
		}
		fmt.Fprintf(w, "\n")
		return printed
	})
	return b.String()
}
