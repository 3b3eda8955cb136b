// Package types provides the register's amount arithmetic.
//
// Balances and prices are carried as float64 because the balance file is a
// raw IEEE-754 double. Arithmetic is routed through decimal so that sums of
// prices typed by a human (0.75, 11.57, ...) land on the double nearest the
// exact decimal result instead of accumulating binary rounding error.
package types

import (
	"math"

	"github.com/shopspring/decimal"
)

// Add returns a + b.
func Add(a, b float64) float64 {
	return decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)).InexactFloat64()
}

// Sub returns a - b.
func Sub(a, b float64) float64 {
	return decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).InexactFloat64()
}

// Mul returns price × quantity.
func Mul(price float64, quantity int) float64 {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity))).InexactFloat64()
}

// Sum adds values left to right. The sum of no values is 0.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.InexactFloat64()
}

// Cmp compares a and b as decimals, returning -1, 0 or +1.
func Cmp(a, b float64) int {
	return decimal.NewFromFloat(a).Cmp(decimal.NewFromFloat(b))
}

// Format renders an amount with two decimal places.
func Format(a float64) string {
	return decimal.NewFromFloat(a).StringFixed(2)
}

// Finite reports whether a is neither NaN nor infinite.
func Finite(a float64) bool {
	return !math.IsNaN(a) && !math.IsInf(a, 0)
}

// ValidAmount reports whether a is a usable non-negative amount.
func ValidAmount(a float64) bool {
	return Finite(a) && a >= 0
}
