// Package money centralises the rounding discipline used for every monetary
// amount in the service. All amounts are shopspring decimals rounded to two
// places; line subtotals are rounded individually before summation so that
// aggregate figures never accumulate floating-point drift.
package money

import "github.com/shopspring/decimal"

// Round2 rounds an amount to two decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Sum2 adds the provided amounts and rounds the result to two decimal places.
// Callers are expected to pass amounts that are already individually rounded.
func Sum2(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return Round2(total)
}

// FloorZero clamps negative amounts to zero.
func FloorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
