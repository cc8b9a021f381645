// Package money provides the fixed-point monetary representation used by the
// rating and quoting paths. Amounts are integer US cents; percentage charges
// are basis points so that itemized breakdowns always sum exactly.
package money

import (
	"fmt"
	"math"
)

// Cents is a monetary amount in integer cents.
type Cents int64

// FromDollars converts a whole-dollar amount.
func FromDollars(d int64) Cents {
	return Cents(d * 100)
}

// PercentOf applies a basis-point rate to an amount, rounding half up.
// 100 bps = 1%.
func PercentOf(c Cents, bps int64) Cents {
	v := int64(c) * bps
	if v >= 0 {
		return Cents((v + 5_000) / 10_000)
	}
	return Cents((v - 5_000) / 10_000)
}

// MulFloat multiplies a unit rate by a fractional quantity (chargeable kg,
// revenue tons). This is the single place a float touches money: the product
// is rounded to cents once and every later operation is integer arithmetic.
func MulFloat(rate Cents, qty float64) Cents {
	return Cents(math.Round(float64(rate) * qty))
}

// Max returns the larger amount.
func Max(a, b Cents) Cents {
	if a > b {
		return a
	}
	return b
}

// String renders the amount as a dollar figure, e.g. "438.00" or "-4.50".
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
