package document

import (
	"github.com/shopspring/decimal"

	"github.com/piwi3910/FrameShop/internal/geom"
)

// amount converts v to a decimal. NaN and infinities, which decimal cannot
// represent, become zero.
func amount(v float64) decimal.Decimal {
	if !geom.Finite(v) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// RoundCents rounds an amount half away from zero to two decimals.
func RoundCents(v float64) float64 {
	return amount(v).Round(2).InexactFloat64()
}

// FormatMoney renders an amount with its currency symbol, e.g. "€318.00".
func FormatMoney(symbol string, v float64) string {
	d := amount(v).Round(2)
	if d.IsNegative() {
		return "-" + symbol + d.Neg().StringFixed(2)
	}
	return symbol + d.StringFixed(2)
}

// SumCents adds amounts exactly in decimal and returns the rounded total.
func SumCents(vs ...float64) float64 {
	total := decimal.Zero
	for _, v := range vs {
		total = total.Add(amount(v))
	}
	return total.Round(2).InexactFloat64()
}
