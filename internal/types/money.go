// README: Decimal money helpers shared across modules.
package types

import "github.com/shopspring/decimal"

// Round2 is the boundary rounding applied by every calculator before
// sub-totals are summed. Half away from zero, cent precision.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Euros builds a decimal amount from a float literal.
func Euros(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// MulRound2 multiplies and rounds at the boundary in one step.
func MulRound2(a, b decimal.Decimal) decimal.Decimal {
	return Round2(a.Mul(b))
}
