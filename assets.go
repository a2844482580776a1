package savings

// AssetClass describes how the stocks and flows of one asset class are found
// in a two-period table. Every name is a stable crosswalk variable.
type AssetClass struct {
	Name string

	Stock string // value held, empty for debt-only classes
	Debt  string // amount owed against the class, optional

	// Inflows and Outflows are reported in every wealth wave for the period
	// since the previous one.
	Inflows  []string
	Outflows []string
	// SpanInflows are timespan columns computed during assembly.
	SpanInflows []string

	// StockIsFlow classes have no reported flows: the whole change is saved.
	StockIsFlow bool
	// Retirement classes are only reported from 1999 onward.
	Retirement bool
}

// variables returns the family variables the class reads.
func (c AssetClass) variables() []Variable {
	var vars []Variable
	for _, names := range [][]string{{c.Stock, c.Debt}, c.Inflows, c.Outflows} {
		for _, n := range names {
			if n != "" {
				vars = append(vars, Variable{Name: n, Dollars: true})
			}
		}
	}
	return vars
}

// AssetVariables returns the family variables needed to compute the savings
// of classes.
func AssetVariables(classes []AssetClass) []Variable {
	var vars []Variable
	for _, c := range classes {
		vars = append(vars, c.variables()...)
	}
	return vars
}

// DefaultAssetClasses returns the household balance sheet decomposition.
func DefaultAssetClasses() []AssetClass {
	return []AssetClass{
		{
			Name:        "House",
			Stock:       VarHouseValue,
			Debt:        "MortgagePrincipal",
			Inflows:     []string{"CostOfHomeImprovements"},
			SpanInflows: []string{ColHouseValueIncreaseOnMove},
		},
		{
			Name:     "OtherRealEstate",
			Stock:    "OtherRealEstateValue",
			Debt:     "OtherRealEstateDebt",
			Inflows:  []string{"OtherRealEstateBought"},
			Outflows: []string{"OtherRealEstateSold"},
		},
		{
			Name:        "Vehicle",
			Stock:       "VehicleValue",
			Debt:        "VehicleDebt",
			StockIsFlow: true,
		},
		{
			Name:     "Business",
			Stock:    "BusinessValue",
			Debt:     "BusinessDebt",
			Inflows:  []string{"BusinessInvestment"},
			Outflows: []string{"BusinessSold"},
		},
		{
			Name:        "CheckingAndSavings",
			Stock:       "CheckingAndSavings",
			StockIsFlow: true,
		},
		{
			Name:     "BrokerageStocks",
			Stock:    "BrokerageStocks",
			Inflows:  []string{"StocksBought"},
			Outflows: []string{"StocksSold"},
		},
		{
			Name:     "OtherAssets",
			Stock:    "OtherAssets",
			Inflows:  []string{"MovedInAssets", "GiftsReceived"},
			Outflows: []string{"MovedOutAssets"},
		},
		{
			Name: "OtherDebts",
			Debt: "OtherDebts",
		},
		{
			Name:       "Retirement",
			Stock:      "RetirementAccounts",
			Inflows:    []string{"RetirementContributions"},
			Outflows:   []string{"RetirementWithdrawals"},
			Retirement: true,
		},
	}
}
