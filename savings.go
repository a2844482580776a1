package savings

import (
	"fmt"

	"github.com/etnz/savings/crosswalk"
	"github.com/etnz/savings/wave"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Stable names of the savings columns, qualified by timespan. Per asset class
// columns are prefixed with the class name and an underscore.
const (
	ColStockChange    = "stockChange"
	ColIdentifiedFlow = "identifiedFlow"
	ColCapitalGain    = "capitalGain"
	ColFlowImputed    = "flowImputed"

	ColTotalStockChange    = "totalStockChange"
	ColTotalIdentifiedFlow = "totalIdentifiedFlow"
	ColTotalCapitalGain    = "totalCapitalGain"
	ColTotalIncome         = "totalIncomeHH"
	ColSavingsRate         = "savingsRate"
	ColIncompleteStocks    = "incompleteStocks"
)

// ClassColumn returns the timespan column of an asset class measure.
func ClassColumn(class, measure string, span wave.Span) string {
	return crosswalk.QualifySpan(class+"_"+measure, span)
}

// Calculator decomposes the wealth change of every household of a two-period
// table into savings and capital gains.
type Calculator struct {
	Classes []AssetClass
	// ExcludeRetirement leaves Retirement classes out of the decomposition.
	ExcludeRetirement bool
	// Rules classify savings rows. Nil means SavingsRules.
	Rules func(wave.Span) []Rule[Row]

	Logger *zap.Logger
}

// classes returns the asset classes taking part in the decomposition.
func (c *Calculator) classes() []AssetClass {
	var res []AssetClass
	for _, a := range c.Classes {
		if a.Retirement && c.ExcludeRetirement {
			continue
		}
		res = append(res, a)
	}
	return res
}

// Compute returns a copy of t with savings columns for span.
//
// t is never modified, so Compute can run on a table and on KeepOnly of it.
func (c *Calculator) Compute(t *Table, span wave.Span) (*Table, error) {
	if err := span.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpan, err)
	}
	log := c.Logger
	if log == nil {
		log = zap.NewNop()
	}
	classes := c.classes()
	if len(classes) == 0 {
		return nil, fmt.Errorf("no asset class to compute savings on")
	}

	out := t.Clone()
	imputed := 0
	for r := range out.Rows() {
		var (
			stock, flow, gain decimal.Decimal
			complete          = true
			anyImputed        bool
		)
		for _, a := range classes {
			s, ok := stockChange(r, a, span)
			f, imp := identifiedFlow(r, a, span, s, ok)
			anyImputed = anyImputed || imp

			r.SetBool(ClassColumn(a.Name, ColFlowImputed, span), imp)
			r.SetDecimal(ClassColumn(a.Name, ColIdentifiedFlow, span), f)
			flow = flow.Add(f)
			if !ok {
				complete = false
				r.Set(ClassColumn(a.Name, ColStockChange, span), "")
				r.Set(ClassColumn(a.Name, ColCapitalGain, span), "")
				continue
			}
			g := s.Sub(f)
			r.SetDecimal(ClassColumn(a.Name, ColStockChange, span), s)
			r.SetDecimal(ClassColumn(a.Name, ColCapitalGain, span), g)
			stock = stock.Add(s)
			gain = gain.Add(g)
		}
		if anyImputed {
			imputed++
		}

		r.SetDecimal(crosswalk.QualifySpan(ColTotalIdentifiedFlow, span), flow)
		r.SetBool(crosswalk.QualifySpan(ColIncompleteStocks, span), !complete)
		if complete {
			r.SetDecimal(crosswalk.QualifySpan(ColTotalStockChange, span), stock)
			r.SetDecimal(crosswalk.QualifySpan(ColTotalCapitalGain, span), gain)
		} else {
			r.Set(crosswalk.QualifySpan(ColTotalStockChange, span), "")
			r.Set(crosswalk.QualifySpan(ColTotalCapitalGain, span), "")
		}

		income, ok := periodIncome(r, span)
		if !ok {
			r.Set(crosswalk.QualifySpan(ColTotalIncome, span), "")
			r.Set(crosswalk.QualifySpan(ColSavingsRate, span), "")
			continue
		}
		r.SetDecimal(crosswalk.QualifySpan(ColTotalIncome, span), income)
		if !income.IsPositive() {
			r.Set(crosswalk.QualifySpan(ColSavingsRate, span), "")
			continue
		}
		r.SetDecimal(crosswalk.QualifySpan(ColSavingsRate, span), flow.DivRound(income, 6))
	}

	rules := SavingsRules
	if c.Rules != nil {
		rules = c.Rules
	}
	Annotate(out, StatusColumn(span), rules(span))

	log.Info("savings computed", zap.Stringer("span", span), zap.Int("households", out.Len()),
		zap.Int("classes", len(classes)), zap.Int("flowImputed", imputed))
	return out, nil
}

// netWorth returns stock minus debt of class a in year. A class without a
// stock or debt variable counts zero for it.
func netWorth(r Row, a AssetClass, year int) (decimal.Decimal, bool) {
	v := decimal.Zero
	if a.Stock != "" {
		s, ok := r.Decimal(crosswalk.Qualify(a.Stock, year))
		if !ok {
			return v, false
		}
		v = s
	}
	if a.Debt != "" {
		d, ok := r.Decimal(crosswalk.Qualify(a.Debt, year))
		if !ok {
			return v, false
		}
		v = v.Sub(d)
	}
	return v, true
}

func stockChange(r Row, a AssetClass, span wave.Span) (decimal.Decimal, bool) {
	end, ok1 := netWorth(r, a, span.End)
	start, ok2 := netWorth(r, a, span.Start)
	if !ok1 || !ok2 {
		return decimal.Zero, false
	}
	return end.Sub(start), true
}

// identifiedFlow returns the net amount moved into class a over span and
// whether some of it was missing and counted as zero.
func identifiedFlow(r Row, a AssetClass, span wave.Span, change decimal.Decimal, changeOK bool) (decimal.Decimal, bool) {
	if a.StockIsFlow {
		return change, !changeOK
	}
	flow := decimal.Zero
	imputed := false
	add := func(c string, sign int) {
		if !r.t.Has(c) {
			// not collected that year
			return
		}
		v, ok := r.Decimal(c)
		if !ok {
			imputed = true
			return
		}
		if sign < 0 {
			v = v.Neg()
		}
		flow = flow.Add(v)
	}
	for _, y := range wave.WealthAfter(span.Start, span.End) {
		for _, n := range a.Inflows {
			add(crosswalk.Qualify(n, y), 1)
		}
		for _, n := range a.Outflows {
			add(crosswalk.Qualify(n, y), -1)
		}
	}
	for _, n := range a.SpanInflows {
		add(crosswalk.QualifySpan(n, span), 1)
	}
	if a.Debt != "" {
		// paying back debt is saving
		end, ok1 := r.Decimal(crosswalk.Qualify(a.Debt, span.End))
		start, ok2 := r.Decimal(crosswalk.Qualify(a.Debt, span.Start))
		if ok1 && ok2 {
			flow = flow.Sub(end.Sub(start))
		} else {
			imputed = true
		}
	}
	return flow, imputed
}

// periodIncome returns the household income over span: the mean of the
// observed yearly incomes times the length of the span.
func periodIncome(r Row, span wave.Span) (decimal.Decimal, bool) {
	sum := decimal.Zero
	n := 0
	for _, y := range wave.FamilyAfter(span.Start, span.End) {
		v, ok := r.Decimal(crosswalk.Qualify(VarTotalIncome, y))
		if !ok {
			continue
		}
		sum = sum.Add(v)
		n++
	}
	if n == 0 {
		return decimal.Zero, false
	}
	return sum.Mul(decimal.NewFromInt(int64(span.Years()))).DivRound(decimal.NewFromInt(int64(n)), 2), true
}

// SavingsRules are the default cleaning rules of savings tables.
func SavingsRules(span wave.Span) []Rule[Row] {
	income := crosswalk.QualifySpan(ColTotalIncome, span)
	return []Rule[Row]{
		{
			Status: "Drop_NonPositiveIncome",
			When: func(r Row) bool {
				v, ok := r.Decimal(income)
				return !ok || !v.IsPositive()
			},
		},
		{
			Status: "Drop_IncompleteStocks",
			When: func(r Row) bool {
				return r.Bool(crosswalk.QualifySpan(ColIncompleteStocks, span))
			},
		},
		{
			Status: "Drop_ImplausibleWealthSwing",
			When: func(r Row) bool {
				change, ok1 := r.Decimal(crosswalk.QualifySpan(ColTotalStockChange, span))
				v, ok2 := r.Decimal(income)
				return ok1 && ok2 && change.Abs().GreaterThan(v.Mul(decimal.NewFromInt(20)))
			},
		},
	}
}
