package savings

import (
	"testing"

	"github.com/etnz/savings/crosswalk"
	"github.com/etnz/savings/wave"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

var span8494 = wave.Span{Start: 1984, End: 1994}

var brokerage = AssetClass{
	Name:     "BrokerageStocks",
	Stock:    "BrokerageStocks",
	Inflows:  []string{"StocksBought"},
	Outflows: []string{"StocksSold"},
}

// twoPeriodRow appends a household to tab from stable names qualified by year.
func twoPeriodRow(tab *Table, id string, cells map[string]map[int]string) Row {
	r := tab.Append()
	r.Set(ColConstantIndividualID, id)
	for name, years := range cells {
		for y, v := range years {
			r.Set(crosswalk.Qualify(name, y), v)
		}
	}
	return r
}

func dec(t *testing.T, r Row, c string) decimal.Decimal {
	t.Helper()
	d, ok := r.Decimal(c)
	if !ok {
		t.Fatalf("%s = %q, want a number", c, r.Get(c))
	}
	return d
}

func TestCalculator_CapitalGainIsResidual(t *testing.T) {
	tab := NewTable(ColConstantIndividualID)
	twoPeriodRow(tab, "1", map[string]map[int]string{
		"BrokerageStocks": {1984: "100000", 1994: "130000"},
		"StocksBought":    {1989: "10000", 1994: "10000"},
		"StocksSold":      {1989: "0", 1994: "0"},
		VarTotalIncome:    {1994: "60000"},
	})

	calc := &Calculator{Classes: []AssetClass{brokerage}}
	out, err := calc.Compute(tab, span8494)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	r := out.Row(0)
	for measure, want := range map[string]int64{
		ColStockChange:    30000,
		ColIdentifiedFlow: 20000,
		ColCapitalGain:    10000,
	} {
		c := ClassColumn("BrokerageStocks", measure, span8494)
		if got := dec(t, r, c); !got.Equal(decimal.NewFromInt(want)) {
			t.Errorf("%s = %v, want %d", c, got, want)
		}
	}
	if r.Bool(ClassColumn("BrokerageStocks", ColFlowImputed, span8494)) {
		t.Errorf("flow flagged as imputed while fully observed")
	}
	// one observed income of 60000 over a ten-year span
	if got, want := dec(t, r, crosswalk.QualifySpan(ColTotalIncome, span8494)), decimal.NewFromInt(600000); !got.Equal(want) {
		t.Errorf("totalIncomeHH = %v, want %v", got, want)
	}
	if got, want := r.Get(crosswalk.QualifySpan(ColSavingsRate, span8494)), "0.033333"; got != want {
		t.Errorf("savingsRate = %q, want %q", got, want)
	}
	if got := Status(r.Get(StatusColumn(span8494))); got != Keep {
		t.Errorf("status = %q, want %q", got, Keep)
	}
}

func TestCalculator_ZeroIncome(t *testing.T) {
	tab := NewTable(ColConstantIndividualID)
	twoPeriodRow(tab, "1", map[string]map[int]string{
		"BrokerageStocks": {1984: "1000", 1994: "1500"},
		"StocksBought":    {1989: "100", 1994: "100"},
		"StocksSold":      {1989: "0", 1994: "0"},
		VarTotalIncome:    {1990: "0", 1994: "0"},
	})
	twoPeriodRow(tab, "2", map[string]map[int]string{
		"BrokerageStocks": {1984: "1000", 1994: "1500"},
	})

	out, err := (&Calculator{Classes: []AssetClass{brokerage}}).Compute(tab, span8494)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	rate := crosswalk.QualifySpan(ColSavingsRate, span8494)
	for r := range out.Rows() {
		if !r.IsMissing(rate) {
			t.Errorf("household %s: savingsRate = %q, want missing", r.Get(ColConstantIndividualID), r.Get(rate))
		}
		if got, want := Status(r.Get(StatusColumn(span8494))), Status("Drop_NonPositiveIncome"); got != want {
			t.Errorf("household %s: status = %q, want %q", r.Get(ColConstantIndividualID), got, want)
		}
	}
	if got := out.Row(0).Get(crosswalk.QualifySpan(ColTotalIncome, span8494)); got != "0" {
		t.Errorf("totalIncomeHH = %q, want 0", got)
	}
}

func TestCalculator_MissingFlowIsImputed(t *testing.T) {
	tab := NewTable(ColConstantIndividualID)
	twoPeriodRow(tab, "1", map[string]map[int]string{
		"BrokerageStocks": {1984: "100000", 1994: "130000"},
		"StocksBought":    {1989: "10000", 1994: ""},
		"StocksSold":      {1989: "0", 1994: "0"},
		VarTotalIncome:    {1994: "60000"},
	})
	out, err := (&Calculator{Classes: []AssetClass{brokerage}}).Compute(tab, span8494)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	r := out.Row(0)
	if !r.Bool(ClassColumn("BrokerageStocks", ColFlowImputed, span8494)) {
		t.Errorf("missing flow not flagged")
	}
	if got, want := dec(t, r, ClassColumn("BrokerageStocks", ColIdentifiedFlow, span8494)), decimal.NewFromInt(10000); !got.Equal(want) {
		t.Errorf("identifiedFlow = %v, want %v", got, want)
	}
	if got := Status(r.Get(StatusColumn(span8494))); got != Keep {
		t.Errorf("status = %q, want the household kept", got)
	}
}

func TestCalculator_DebtAndStockIsFlow(t *testing.T) {
	house := AssetClass{Name: "House", Stock: "HouseValue", Debt: "MortgagePrincipal", Inflows: []string{"CostOfHomeImprovements"}}
	checking := AssetClass{Name: "CheckingAndSavings", Stock: "CheckingAndSavings", StockIsFlow: true}

	tab := NewTable(ColConstantIndividualID)
	twoPeriodRow(tab, "1", map[string]map[int]string{
		"HouseValue":             {1984: "200000", 1994: "220000"},
		"MortgagePrincipal":      {1984: "150000", 1994: "130000"},
		"CostOfHomeImprovements": {1989: "5000", 1994: "0"},
		"CheckingAndSavings":     {1984: "10000", 1994: "15000"},
		VarTotalIncome:           {1994: "50000"},
	})
	out, err := (&Calculator{Classes: []AssetClass{house, checking}}).Compute(tab, span8494)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	r := out.Row(0)
	want := map[string]int64{
		ClassColumn("House", ColStockChange, span8494):                 40000,
		ClassColumn("House", ColIdentifiedFlow, span8494):              25000,
		ClassColumn("House", ColCapitalGain, span8494):                 15000,
		ClassColumn("CheckingAndSavings", ColStockChange, span8494):    5000,
		ClassColumn("CheckingAndSavings", ColIdentifiedFlow, span8494): 5000,
		ClassColumn("CheckingAndSavings", ColCapitalGain, span8494):    0,
		crosswalk.QualifySpan(ColTotalStockChange, span8494):           45000,
		crosswalk.QualifySpan(ColTotalIdentifiedFlow, span8494):        30000,
		crosswalk.QualifySpan(ColTotalCapitalGain, span8494):           15000,
	}
	for c, w := range want {
		if got := dec(t, r, c); !got.Equal(decimal.NewFromInt(w)) {
			t.Errorf("%s = %v, want %d", c, got, w)
		}
	}
}

func TestCalculator_IdentityHoldsExactly(t *testing.T) {
	classes := DefaultAssetClasses()
	tab := NewTable(ColConstantIndividualID)
	values := []string{"1234.56", "0.01", "98765.43", "-250.5", "333.33", "0"}
	for i := range 12 {
		cells := map[string]map[int]string{VarTotalIncome: {1994: "40000"}}
		for j, v := range AssetVariables(classes) {
			k := (i + j) % len(values)
			cells[v.Name] = map[int]string{1984: values[k], 1989: values[(k+1)%len(values)], 1994: values[(k+2)%len(values)]}
		}
		twoPeriodRow(tab, string(rune('a'+i)), cells)
	}

	out, err := (&Calculator{Classes: classes}).Compute(tab, span8494)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	for r := range out.Rows() {
		for _, a := range classes {
			s := dec(t, r, ClassColumn(a.Name, ColStockChange, span8494))
			f := dec(t, r, ClassColumn(a.Name, ColIdentifiedFlow, span8494))
			g := dec(t, r, ClassColumn(a.Name, ColCapitalGain, span8494))
			if !s.Equal(f.Add(g)) {
				t.Errorf("household %s, %s: stockChange %v != identifiedFlow %v + capitalGain %v", r.Get(ColConstantIndividualID), a.Name, s, f, g)
			}
		}
	}
}

func TestCalculator_ExcludeRetirement(t *testing.T) {
	tab := NewTable(ColConstantIndividualID)
	twoPeriodRow(tab, "1", map[string]map[int]string{
		"BrokerageStocks":    {1984: "0", 1994: "0"},
		"RetirementAccounts": {1984: "0", 1994: "50000"},
		VarTotalIncome:       {1994: "50000"},
	})
	retirement := DefaultAssetClasses()[len(DefaultAssetClasses())-1]
	if !retirement.Retirement {
		t.Fatalf("last default class %q is not a retirement class", retirement.Name)
	}

	calc := &Calculator{Classes: []AssetClass{brokerage, retirement}, ExcludeRetirement: true}
	out, err := calc.Compute(tab, span8494)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if out.Has(ClassColumn(retirement.Name, ColStockChange, span8494)) {
		t.Errorf("retirement class computed while excluded")
	}
	if got := dec(t, out.Row(0), crosswalk.QualifySpan(ColTotalStockChange, span8494)); !got.IsZero() {
		t.Errorf("totalStockChange = %v, want 0 without retirement", got)
	}

	calc.ExcludeRetirement = false
	out, err = calc.Compute(tab, span8494)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if got := dec(t, out.Row(0), crosswalk.QualifySpan(ColTotalStockChange, span8494)); !got.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("totalStockChange = %v, want 50000 with retirement", got)
	}
}

func TestCalculator_DoesNotMutateInput(t *testing.T) {
	tab := NewTable(ColConstantIndividualID)
	twoPeriodRow(tab, "1", map[string]map[int]string{
		"BrokerageStocks": {1984: "1000", 1994: "2000"},
		VarTotalIncome:    {1994: "50000"},
	})
	twoPeriodRow(tab, "2", map[string]map[int]string{
		"BrokerageStocks": {1984: "1000"},
		VarTotalIncome:    {1994: "50000"},
	})
	before := tab.Clone()
	calc := &Calculator{Classes: []AssetClass{brokerage}}

	full, err := calc.Compute(tab, span8494)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	snapshot := full.Clone()

	clean, err := calc.Compute(KeepOnly(full), span8494)
	if err != nil {
		t.Fatalf("Compute() on kept rows error = %v", err)
	}
	if got, want := clean.Len(), 1; got != want {
		t.Errorf("kept rows = %d, want %d", got, want)
	}

	equal := func(a, b *Table) bool {
		if !cmp.Equal(a.Columns(), b.Columns()) || a.Len() != b.Len() {
			return false
		}
		for i := range a.Len() {
			for _, c := range a.Columns() {
				if a.Row(i).Get(c) != b.Row(i).Get(c) {
					return false
				}
			}
		}
		return true
	}
	if !equal(tab, before) {
		t.Errorf("Compute() modified its input")
	}
	if !equal(full, snapshot) {
		t.Errorf("computing the kept rows modified the unrestricted output")
	}
	if got, want := Status(full.Row(1).Get(StatusColumn(span8494))), Status("Drop_IncompleteStocks"); got != want {
		t.Errorf("status = %q, want %q", got, want)
	}
}
