// Package money centralizes the currency arithmetic policy: USD amounts carry
// two fractional digits, rates carry six, and every rounding uses half-up.
// Rounding happens at the same step the pricing formulas round so repeated
// runs on identical input produce identical results.
package money

import "github.com/shopspring/decimal"

const (
	// CurrencyScale is the number of fractional digits kept on amounts.
	CurrencyScale = 2
	// RateScale is the number of fractional digits kept on rates/factors.
	RateScale = 6
)

// Zero is the canonical zero amount.
var Zero = decimal.Zero

// Round2 rounds to currency scale with half-up rounding.
func Round2(v decimal.Decimal) decimal.Decimal {
	return v.Round(CurrencyScale)
}

// RoundRate rounds a rate or factor to rate scale.
func RoundRate(v decimal.Decimal) decimal.Decimal {
	return v.Round(RateScale)
}

// MulRound multiplies and rounds the product to currency scale.
func MulRound(a, b decimal.Decimal) decimal.Decimal {
	return Round2(a.Mul(b))
}

// SumRound adds the values and rounds the sum to currency scale.
func SumRound(values ...decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	return Round2(sum)
}

// FromInt builds an amount from an integer quantity.
func FromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// MustParse converts a literal rate string into a decimal. It panics on bad
// input and is reserved for compiled-in rate constants.
func MustParse(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}
