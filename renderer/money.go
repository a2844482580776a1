package renderer

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// usd formats an amount in US dollars, rounded to cents.
func usd(d decimal.Decimal) string {
	cur := money.GetCurrency(money.USD)
	return cur.Formatter().Format(d.Shift(int32(cur.Fraction)).Round(0).IntPart())
}

// signedUSD is usd with an explicit sign; zero is represented as "-".
func signedUSD(d decimal.Decimal) string {
	if d.IsZero() {
		return "-"
	}
	if d.IsPositive() {
		return "+" + usd(d)
	}
	return usd(d)
}
