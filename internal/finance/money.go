// Package finance implements the deterministic money calculators for the
// print-shop back office: percentage allocation across ledger accounts,
// installment plan generation, profit/labor computation for order items,
// order totals aggregation, and recurring-expense date arithmetic.
//
// All functions are pure: they operate on values passed in and perform no
// I/O. Persistence and rule loading live in the service layer.
package finance

import "github.com/shopspring/decimal"

// Round2 rounds an amount to the currency minor unit (2 decimal places),
// half away from zero.
func Round2(amount float64) float64 {
	v, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return v
}

// mulPercent returns amount * pct / 100 rounded to 2 decimal places.
func mulPercent(amount, pct float64) float64 {
	v, _ := decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(pct)).
		Div(decimal.NewFromInt(100)).
		Round(2).
		Float64()
	return v
}

// sub returns a - b exactly in decimal, converted back to float64.
func sub(a, b float64) float64 {
	v, _ := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Float64()
	return v
}
