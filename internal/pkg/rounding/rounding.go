// Package rounding divides decimals with an exact rounding mode.
package rounding

import "github.com/shopspring/decimal"

var two = decimal.NewFromInt(2)

// DivHalfEven returns n / d rounded half to even at scale decimal places. The quotient is
// computed exactly before rounding, so no intermediate precision is lost. d must not be zero.
func DivHalfEven(n, d decimal.Decimal, scale int32) decimal.Decimal {
	q, r := n.QuoRem(d, scale)
	if r.IsZero() {
		return q
	}

	unit := decimal.New(1, -scale)
	half := r.Abs().Mul(two).Cmp(d.Abs().Mul(unit))
	odd := !q.Shift(scale).Mod(two).IsZero()
	if half < 0 || (half == 0 && !odd) {
		return q
	}

	if n.Sign()*d.Sign() < 0 {
		return q.Sub(unit)
	}
	return q.Add(unit)
}
